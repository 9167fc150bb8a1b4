package policy

import (
	"reflect"
	"testing"
)

func TestApprovalTierBoundaries(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "No approval required"},
		{100, "No approval required"},
		{500, "No approval required"},
		{501, "$501 - $1,499: Merrill Raman only"},
		{1499, "$501 - $1,499: Merrill Raman only"},
		{1500, "$1,500 - $5,000: Merrill Raman + Ryan Greene"},
		{5000, "$1,500 - $5,000: Merrill Raman + Ryan Greene"},
		{5001, "$5,001 - $100,000: Merrill Raman + Ryan Greene"},
		{100000, "$5,001 - $100,000: Merrill Raman + Ryan Greene"},
		{100001, "Over $100,000: Merrill Raman + Ryan Greene + CEO"},
		{250000, "Over $100,000: Merrill Raman + Ryan Greene + CEO"},
	}

	for _, c := range cases {
		got := GetApprovalTier(c.amount)
		if got != c.want {
			t.Errorf("GetApprovalTier(%.0f) = %q, want %q", c.amount, got, c.want)
		}
		// Idempotence: same input, same output across calls.
		if again := GetApprovalTier(c.amount); again != got {
			t.Errorf("GetApprovalTier(%.0f) not stable: %q then %q", c.amount, got, again)
		}
	}
}

func TestTierLabelAndApproversStayConsistent(t *testing.T) {
	// The two $1,500+ brackets carry different labels but must designate
	// the same approver chain.
	low := defaultEngine.RequiredApprovers(3000)
	high := defaultEngine.RequiredApprovers(50000)
	if !reflect.DeepEqual(low, high) {
		t.Errorf("approver chains differ between $1,500-$5,000 and $5,001-$100,000 brackets: %v vs %v", low, high)
	}
}

func TestRequiredApproverChains(t *testing.T) {
	cases := []struct {
		amount float64
		names  []string
	}{
		{100, []string{}},
		{500, []string{}},
		{501, []string{"Merrill Raman"}},
		{1499, []string{"Merrill Raman"}},
		{1500, []string{"Merrill Raman", "Ryan Greene"}},
		{100000, []string{"Merrill Raman", "Ryan Greene"}},
		{100001, []string{"Merrill Raman", "Ryan Greene", "CEO"}},
	}

	for _, c := range cases {
		got := defaultEngine.RequiredApprovers(c.amount)
		if len(got) != len(c.names) {
			t.Errorf("RequiredApprovers(%.0f): got %d approvers, want %d", c.amount, len(got), len(c.names))
			continue
		}
		for i, a := range got {
			if a.Name != c.names[i] {
				t.Errorf("RequiredApprovers(%.0f)[%d].Name = %q, want %q", c.amount, i, a.Name, c.names[i])
			}
			if a.Order != i+1 {
				t.Errorf("RequiredApprovers(%.0f)[%d].Order = %d, want %d", c.amount, i, a.Order, i+1)
			}
		}
	}
}

func TestDirectoryOverrideKeepsChain(t *testing.T) {
	e := NewEngine(Directory{
		KeyMerrill: {Name: "Merrill Raman", Title: "Controller", Email: "mraman@corp.example"},
	})

	got := e.RequiredApprovers(2000)
	if len(got) != 2 {
		t.Fatalf("expected 2 approvers, got %d", len(got))
	}
	if got[0].Email != "mraman@corp.example" {
		t.Errorf("override not applied: email = %q", got[0].Email)
	}
	if got[1].Name != "Ryan Greene" {
		t.Errorf("partial override dropped default approver: %q", got[1].Name)
	}
}
