package ai

import "testing"

func TestParseVerdictPlainJSON(t *testing.T) {
	raw := `{"vendorMatch":true,"amountMatch":true,"dateMatch":false,"overallMatch":false,"confidence":0.82,"notes":"Date differs by a week"}`

	v, err := ParseVerdict(raw)
	if err != nil {
		t.Fatalf("ParseVerdict failed: %v", err)
	}
	if !v.VendorMatch || !v.AmountMatch || v.DateMatch || v.OverallMatch {
		t.Errorf("unexpected flags: %+v", v)
	}
	if v.Confidence != 0.82 {
		t.Errorf("confidence = %v, want 0.82", v.Confidence)
	}
}

func TestParseVerdictMarkdownFence(t *testing.T) {
	raw := "```json\n{\"vendorMatch\":true,\"amountMatch\":true,\"dateMatch\":true,\"overallMatch\":true,\"confidence\":0.97}\n```"

	v, err := ParseVerdict(raw)
	if err != nil {
		t.Fatalf("ParseVerdict failed on fenced JSON: %v", err)
	}
	if !v.OverallMatch {
		t.Error("overallMatch should be true")
	}
}

func TestParseVerdictClampsConfidence(t *testing.T) {
	v, err := ParseVerdict(`{"overallMatch":true,"confidence":1.7}`)
	if err != nil {
		t.Fatalf("ParseVerdict failed: %v", err)
	}
	if v.Confidence != 1 {
		t.Errorf("confidence should clamp to 1, got %v", v.Confidence)
	}

	v, err = ParseVerdict(`{"overallMatch":false,"confidence":-0.3}`)
	if err != nil {
		t.Fatalf("ParseVerdict failed: %v", err)
	}
	if v.Confidence != 0 {
		t.Errorf("confidence should clamp to 0, got %v", v.Confidence)
	}
}

func TestParseVerdictRejectsGarbage(t *testing.T) {
	if _, err := ParseVerdict("I could not read the receipt, sorry!"); err == nil {
		t.Error("expected error for non-JSON model output")
	}
}
