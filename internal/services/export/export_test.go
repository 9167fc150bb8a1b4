package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xelth-com/pcardgo/internal/models"
	"github.com/xelth-com/pcardgo/internal/policy"
)

func sampleRequest() *models.PurchaseRequest {
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	return &models.PurchaseRequest{
		ID:             "11111111-2222-3333-4444-555555555555",
		VendorName:     "Acme Office Co",
		CardholderName: "Dana Fields",
		Category:       "Office Supplies",
		PurchaseAmount: 1800,
		TaxAmount:      144,
		ShippingAmount: 56,
		TotalAmount:    2000,
		Status:         models.RequestStatusPending,
		POBypassReason: policy.ReasonTimeSensitivity,
		SubmittedAt:    &now,
		Signatures: []models.ApprovalSignature{
			{ApproverName: "Merrill Raman", Action: models.SignatureActionApproved, SignedAt: now},
		},
	}
}

func TestRequestsXLSX(t *testing.T) {
	data, err := RequestsXLSX([]models.PurchaseRequest{*sampleRequest()})
	if err != nil {
		t.Fatalf("RequestsXLSX failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty spreadsheet output")
	}
	// XLSX files are zip archives
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Errorf("output does not look like an xlsx archive: % x", data[:4])
	}
}

func TestRequestPDF(t *testing.T) {
	req := sampleRequest()
	result := policy.ValidatePurchaseRequest(policy.Input{
		TotalAmount:    req.TotalAmount,
		Category:       req.Category,
		POBypassReason: req.POBypassReason,
	})

	data, err := RequestPDF(req, result, policy.GetApprovalTier(req.TotalAmount),
		"http://localhost:3310/requests/"+req.ID)
	if err != nil {
		t.Fatalf("RequestPDF failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not look like a PDF: % x", data[:4])
	}
}
