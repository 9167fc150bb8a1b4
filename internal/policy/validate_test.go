package policy

import (
	"reflect"
	"testing"
)

func findItem(checklist []ChecklistItem, id string) *ChecklistItem {
	for i := range checklist {
		if checklist[i].ID == id {
			return &checklist[i]
		}
	}
	return nil
}

func TestSmallPurchaseIsValidWithNoApprovalItems(t *testing.T) {
	res := ValidatePurchaseRequest(Input{
		TotalAmount: 100,
		Category:    "Office Supplies",
	})

	if !res.IsValid {
		t.Fatalf("expected valid result, checklist: %+v", res.Checklist)
	}
	if len(res.RequiredApprovers) != 0 {
		t.Errorf("expected no required approvers, got %v", res.RequiredApprovers)
	}
	for _, id := range []string{ItemPORuledOut, ItemApproval501_1499, ItemApproval1500Plus} {
		if findItem(res.Checklist, id) != nil {
			t.Errorf("item %s should not be emitted for amounts <= $500", id)
		}
	}
	if item := findItem(res.Checklist, ItemAmountUnder500); item == nil || item.Status != StatusPass {
		t.Errorf("amount_under_500 should pass for $100, got %+v", item)
	}
}

func TestMissingBypassReasonBlocksOver500(t *testing.T) {
	res := ValidatePurchaseRequest(Input{
		TotalAmount: 600,
		Category:    "Office Supplies",
	})

	if res.IsValid {
		t.Error("expected invalid result when no PO bypass reason is given over $500")
	}
	item := findItem(res.Checklist, ItemPORuledOut)
	if item == nil {
		t.Fatal("po_ruled_out item missing")
	}
	if item.Status != StatusFail || !item.Required {
		t.Errorf("po_ruled_out should be a required failure, got %+v", item)
	}
}

func TestProhibitedCategoryAlwaysBlocks(t *testing.T) {
	for _, amount := range []float64{50, 600, 2000, 200000} {
		res := ValidatePurchaseRequest(Input{
			TotalAmount:    amount,
			Category:       "Gift Cards",
			POBypassReason: ReasonOther,
		})
		if res.IsValid {
			t.Errorf("Gift Cards at $%.0f should be invalid", amount)
		}
		item := findItem(res.Checklist, ItemNotProhibited)
		if item == nil || item.Status != StatusFail {
			t.Errorf("not_prohibited should fail for Gift Cards at $%.0f, got %+v", amount, item)
		}
	}
}

func TestCategoryMatchIsCaseSensitive(t *testing.T) {
	// "gift cards" is not in the prohibited list; unrecognized strings are
	// treated as allowed.
	res := ValidatePurchaseRequest(Input{
		TotalAmount: 100,
		Category:    "gift cards",
	})
	if item := findItem(res.Checklist, ItemNotProhibited); item == nil || item.Status != StatusPass {
		t.Errorf("lowercase category should not match prohibited list, got %+v", item)
	}
}

func TestPendingApprovalDoesNotBlockValidity(t *testing.T) {
	res := ValidatePurchaseRequest(Input{
		TotalAmount:    2000,
		Category:       "Office Supplies",
		POBypassReason: ReasonTimeSensitivity,
	})

	if !res.IsValid {
		t.Fatalf("expected valid result, checklist: %+v", res.Checklist)
	}
	item := findItem(res.Checklist, ItemApproval1500Plus)
	if item == nil || item.Status != StatusPending {
		t.Fatalf("approval_1500_plus should be pending, got %+v", item)
	}

	want := []string{"Merrill Raman", "Ryan Greene"}
	if len(res.RequiredApprovers) != len(want) {
		t.Fatalf("got %d approvers, want %d", len(res.RequiredApprovers), len(want))
	}
	for i, a := range res.RequiredApprovers {
		if a.Name != want[i] || a.Order != i+1 {
			t.Errorf("approver[%d] = %s (order %d), want %s (order %d)", i, a.Name, a.Order, want[i], i+1)
		}
	}
}

func TestMidTierApprovalItem(t *testing.T) {
	res := ValidatePurchaseRequest(Input{
		TotalAmount:    900,
		Category:       "Office Supplies",
		POBypassReason: ReasonVendorLimitations,
	})

	if !res.IsValid {
		t.Fatalf("expected valid result, checklist: %+v", res.Checklist)
	}
	item := findItem(res.Checklist, ItemApproval501_1499)
	if item == nil || item.Status != StatusPending || !item.Required {
		t.Fatalf("approval_501_1499 should be a required pending item, got %+v", item)
	}
	if findItem(res.Checklist, ItemApproval1500Plus) != nil {
		t.Error("approval_1500_plus should not be emitted under $1,500")
	}
}

func TestBypassReasonMessageInterpolation(t *testing.T) {
	cases := []struct {
		reason string
		want   string
	}{
		{ReasonVendorLimitations, "PO process ruled out: Vendor limitations"},
		{ReasonTimeSensitivity, "PO process ruled out: Time sensitivity"},
		{ReasonOther, "PO process ruled out: Other"},
		// Unknown codes pass through verbatim.
		{"board_mandate", "PO process ruled out: board_mandate"},
	}

	for _, c := range cases {
		res := ValidatePurchaseRequest(Input{
			TotalAmount:    800,
			Category:       "Office Supplies",
			POBypassReason: c.reason,
		})
		item := findItem(res.Checklist, ItemPORuledOut)
		if item == nil {
			t.Fatalf("po_ruled_out missing for reason %q", c.reason)
		}
		if item.Status != StatusPass {
			t.Errorf("reason %q should pass, got %s", c.reason, item.Status)
		}
		if item.Message != c.want {
			t.Errorf("reason %q: message = %q, want %q", c.reason, item.Message, c.want)
		}
	}
}

func TestSoftwareLicenseAdvisory(t *testing.T) {
	// Only emitted for software subscriptions at or under $500.
	res := ValidatePurchaseRequest(Input{
		TotalAmount:            200,
		Category:               "Software",
		IsSoftwareSubscription: true,
	})
	item := findItem(res.Checklist, ItemSoftwareLicense)
	if item == nil {
		t.Fatal("software_license_check missing for small software subscription")
	}
	if item.Status != StatusWarning || item.Required {
		t.Errorf("unconfirmed license should be an advisory warning, got %+v", item)
	}
	if !res.IsValid {
		t.Error("a warning must not block validity")
	}

	res = ValidatePurchaseRequest(Input{
		TotalAmount:            200,
		Category:               "Software",
		IsSoftwareSubscription: true,
		ITLicenseConfirmed:     true,
	})
	if item := findItem(res.Checklist, ItemSoftwareLicense); item == nil || item.Status != StatusPass {
		t.Errorf("confirmed license should pass, got %+v", item)
	}

	res = ValidatePurchaseRequest(Input{
		TotalAmount:            2000,
		Category:               "Software",
		IsSoftwareSubscription: true,
		POBypassReason:         ReasonOther,
	})
	if findItem(res.Checklist, ItemSoftwareLicense) != nil {
		t.Error("software_license_check should not be emitted over $500")
	}
}

func TestSplitTransactionAlwaysPasses(t *testing.T) {
	res := ValidatePurchaseRequest(Input{TotalAmount: 99999, Category: "Consulting", POBypassReason: ReasonOther})
	item := findItem(res.Checklist, ItemNotSplitTransaction)
	if item == nil || item.Status != StatusPass || !item.Required {
		t.Errorf("not_split_transaction should be a required pass, got %+v", item)
	}
}

func TestPreferredVendorAdvisory(t *testing.T) {
	res := ValidatePurchaseRequest(Input{TotalAmount: 100, Category: "Office Supplies", IsPreferredVendor: true})
	if item := findItem(res.Checklist, ItemPreferredVendor); item == nil || item.Status != StatusPass {
		t.Errorf("preferred vendor should pass, got %+v", item)
	}

	res = ValidatePurchaseRequest(Input{TotalAmount: 100, Category: "Office Supplies"})
	item := findItem(res.Checklist, ItemPreferredVendor)
	if item == nil || item.Status != StatusWarning || item.Required {
		t.Errorf("non-preferred vendor should be an advisory warning, got %+v", item)
	}
	if !res.IsValid {
		t.Error("preferred_vendor warning must not block validity")
	}
}

func TestValidatorIsReferentiallyTransparent(t *testing.T) {
	in := Input{
		TotalAmount:            1750.55,
		Category:               "Marketing",
		IsSoftwareSubscription: false,
		IsPreferredVendor:      true,
		POBypassReason:         ReasonTimeSensitivity,
		POBypassExplanation:    "Conference deadline",
	}

	first := ValidatePurchaseRequest(in)
	second := ValidatePurchaseRequest(in)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("validator output is not stable:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestLenientInputFallsThrough(t *testing.T) {
	// Negative amounts and unknown categories are not rejected; they fall
	// through to whichever branch the comparisons select.
	res := ValidatePurchaseRequest(Input{TotalAmount: -10, Category: "???"})
	if !res.IsValid {
		t.Errorf("negative amount with unknown category should still be valid, checklist: %+v", res.Checklist)
	}
	if got := GetApprovalTier(-10); got != "No approval required" {
		t.Errorf("GetApprovalTier(-10) = %q", got)
	}
}
