package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/xelth-com/pcardgo/internal/utils"
)

// ExpectedReceipt is what the purchase request claims the receipt shows.
type ExpectedReceipt struct {
	Vendor string
	Amount float64
	Date   time.Time
}

// Verdict is the structured match result returned by the reviewer.
type Verdict struct {
	VendorMatch  bool    `json:"vendorMatch"`
	AmountMatch  bool    `json:"amountMatch"`
	DateMatch    bool    `json:"dateMatch"`
	OverallMatch bool    `json:"overallMatch"`
	Confidence   float64 `json:"confidence"`
	Notes        string  `json:"notes,omitempty"`
}

// contentGenerator is the slice of GeminiClient the reviewer needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (string, error)
}

// ReceiptReviewer checks an uploaded receipt against the expected
// vendor/amount/date using the vision model. The model is treated as an
// opaque collaborator: its verdict is stored for human review, it never
// changes request status on its own.
type ReceiptReviewer struct {
	client contentGenerator
}

// NewReceiptReviewer creates a reviewer on top of a Gemini client.
func NewReceiptReviewer(client contentGenerator) *ReceiptReviewer {
	return &ReceiptReviewer{client: client}
}

// Verify sends the receipt bytes plus the expected values to the model and
// parses the JSON verdict.
func (r *ReceiptReviewer) Verify(ctx context.Context, data []byte, contentType string, expected ExpectedReceipt) (*Verdict, error) {
	prompt := fmt.Sprintf(receiptReviewPrompt,
		expected.Vendor,
		expected.Amount,
		expected.Date.Format("2006-01-02"),
	)

	raw, err := r.client.GenerateContent(ctx,
		genai.Blob{MIMEType: contentType, Data: data},
		genai.Text(prompt),
	)
	if err != nil {
		return nil, err
	}

	return ParseVerdict(raw)
}

// ParseVerdict decodes a model response into a Verdict. The model is asked
// for strict JSON but often wraps it in a markdown fence.
func ParseVerdict(raw string) (*Verdict, error) {
	cleaned := utils.SanitizeJSON(raw)

	var v Verdict
	if err := json.Unmarshal([]byte(cleaned), &v); err != nil {
		return nil, fmt.Errorf("unparseable verdict from model: %w (raw: %s)", err, truncate(raw, 200))
	}

	if v.Confidence < 0 {
		v.Confidence = 0
	}
	if v.Confidence > 1 {
		v.Confidence = 1
	}
	return &v, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n]) + "..."
}
