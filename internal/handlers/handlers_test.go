package handlers

import (
	"testing"

	"github.com/xelth-com/pcardgo/internal/ai"
	"github.com/xelth-com/pcardgo/internal/models"
)

func TestPolicyInputMapping(t *testing.T) {
	req := &models.PurchaseRequest{
		PurchaseAmount:         1200,
		TaxAmount:              96,
		ShippingAmount:         4,
		Category:               "Software",
		IsSoftwareSubscription: true,
		ITLicenseConfirmed:     true,
		IsPreferredVendor:      true,
		POBypassReason:         "time_sensitivity",
		POBypassExplanation:    "Renewal deadline",
	}
	req.ComputeTotal()

	in := policyInput(req)
	if in.TotalAmount != 1300 {
		t.Errorf("TotalAmount = %v, want 1300", in.TotalAmount)
	}
	if in.Category != "Software" || !in.IsSoftwareSubscription || !in.ITLicenseConfirmed {
		t.Errorf("category/software flags not carried over: %+v", in)
	}
	if in.POBypassReason != "time_sensitivity" || in.POBypassExplanation != "Renewal deadline" {
		t.Errorf("bypass fields not carried over: %+v", in)
	}
}

func TestRequestPayloadApplyRecomputesTotal(t *testing.T) {
	var req models.PurchaseRequest
	p := RequestPayload{
		VendorName:     "Staples",
		PurchaseAmount: 100,
		TaxAmount:      8,
		ShippingAmount: 2,
	}
	p.apply(&req)

	if req.TotalAmount != 110 {
		t.Errorf("TotalAmount = %v, want 110", req.TotalAmount)
	}
}

func TestReceiptStatusFor(t *testing.T) {
	tests := []struct {
		name    string
		verdict ai.Verdict
		want    string
	}{
		{"confident match", ai.Verdict{OverallMatch: true, Confidence: 0.95}, models.ReceiptStatusVerified},
		{"confident mismatch", ai.Verdict{OverallMatch: false, Confidence: 0.9}, models.ReceiptStatusMismatch},
		{"unsure match", ai.Verdict{OverallMatch: true, Confidence: 0.5}, models.ReceiptStatusNeedsReview},
		{"unsure mismatch", ai.Verdict{OverallMatch: false, Confidence: 0.3}, models.ReceiptStatusNeedsReview},
		{"exactly at floor", ai.Verdict{OverallMatch: true, Confidence: 0.8}, models.ReceiptStatusVerified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := receiptStatusFor(&tt.verdict); got != tt.want {
				t.Errorf("receiptStatusFor(%+v) = %q, want %q", tt.verdict, got, tt.want)
			}
		})
	}
}
