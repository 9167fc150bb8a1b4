package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
	"github.com/xelth-com/pcardgo/internal/models"
	"github.com/xelth-com/pcardgo/internal/policy"
)

// RequestPDF renders a one-page approval summary for a purchase request:
// amounts, tier, checklist outcome and collected signatures, with a QR code
// linking back to the request detail page.
func RequestPDF(req *models.PurchaseRequest, result policy.Result, tierLabel, detailURL string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(150, 10, "P-Card Purchase Request", "", 0, "L", false, 0, "")

	// QR Code top right
	qrPng, err := qrcode.Encode(detailURL, qrcode.Low, 256)
	if err != nil {
		return nil, err
	}
	imgOptions := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	_ = pdf.RegisterImageOptionsReader("qr_detail", imgOptions, bytes.NewReader(qrPng))
	pdf.ImageOptions("qr_detail", 170, 12, 25, 25, false, imgOptions, 0, "")

	pdf.Ln(14)
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(150, 5, fmt.Sprintf("Request %s", req.ID), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	// Key/value block
	kv := func(label, value string) {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(45, 6, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
	}

	kv("Vendor", req.VendorName)
	kv("Cardholder", req.CardholderName)
	kv("Category", req.Category)
	kv("Purchase amount", fmt.Sprintf("$%.2f", req.PurchaseAmount))
	kv("Tax", fmt.Sprintf("$%.2f", req.TaxAmount))
	kv("Shipping", fmt.Sprintf("$%.2f", req.ShippingAmount))
	kv("Total", fmt.Sprintf("$%.2f", req.TotalAmount))
	kv("Status", req.Status)
	kv("Approval tier", tierLabel)
	if req.POBypassReason != "" {
		kv("PO bypass reason", req.POBypassReason)
	}
	pdf.Ln(4)

	// Checklist
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Policy Checklist", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	for _, item := range result.Checklist {
		marker := map[policy.ItemStatus]string{
			policy.StatusPass:    "[PASS]",
			policy.StatusFail:    "[FAIL]",
			policy.StatusWarning: "[WARN]",
			policy.StatusPending: "[PEND]",
		}[item.Status]
		pdf.CellFormat(18, 5, marker, "", 0, "L", false, 0, "")
		pdf.MultiCell(0, 5, fmt.Sprintf("%s - %s", item.Question, item.Message), "", "L", false)
	}
	pdf.Ln(2)

	// Required approvers
	if len(result.RequiredApprovers) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, "Required Approvers", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		for _, a := range result.RequiredApprovers {
			pdf.CellFormat(0, 5, fmt.Sprintf("%d. %s (%s) - %s", a.Order, a.Name, a.Title, a.Email), "", 1, "L", false, 0, "")
		}
		pdf.Ln(2)
	}

	// Signatures collected so far
	if len(req.Signatures) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, "Signatures", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		for _, sig := range req.Signatures {
			line := fmt.Sprintf("%s - %s at %s", sig.ApproverName, sig.Action, sig.SignedAt.Format("2006-01-02 15:04"))
			if sig.Comments != "" {
				line += fmt.Sprintf(" (%s)", sig.Comments)
			}
			pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
