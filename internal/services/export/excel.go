package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xelth-com/pcardgo/internal/models"
	"github.com/xuri/excelize/v2"
)

var requestExportHeaders = []string{
	"ID", "Vendor", "Cardholder", "Category", "Purchase", "Tax", "Shipping",
	"Total", "Status", "PO Bypass Reason", "Preferred Vendor", "Submitted At",
}

// RequestsXLSX renders purchase requests into a spreadsheet for
// finance/leadership review.
func RequestsXLSX(requests []models.PurchaseRequest) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Purchase Requests"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range requestExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for i, req := range requests {
		row := i + 2
		submitted := ""
		if req.SubmittedAt != nil {
			submitted = req.SubmittedAt.Format(time.RFC3339)
		}
		values := []interface{}{
			req.ID,
			req.VendorName,
			req.CardholderName,
			req.Category,
			req.PurchaseAmount,
			req.TaxAmount,
			req.ShippingAmount,
			req.TotalAmount,
			req.Status,
			req.POBypassReason,
			req.IsPreferredVendor,
			submitted,
		}
		for j, v := range values {
			col, _ := excelize.ColumnNumberToName(j + 1)
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), v)
		}
	}

	// Widen the text-heavy columns
	f.SetColWidth(sheet, "A", "A", 38)
	f.SetColWidth(sheet, "B", "C", 24)
	f.SetColWidth(sheet, "J", "L", 22)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}
