package policy

import "fmt"

// prohibitedCategories may never be purchased on a P-Card regardless of
// amount. Matching is a case-sensitive exact comparison; unrecognized
// category strings are treated as allowed (allow-list by exception).
var prohibitedCategories = map[string]bool{
	"Technology Hardware": true,
	"Travel - Air":        true,
	"Travel - Rail":       true,
	"Gift Cards":          true,
}

// bypassReasonLabels maps PO bypass reason codes to the human labels used in
// checklist messages. Unknown codes pass through verbatim.
var bypassReasonLabels = map[string]string{
	ReasonVendorLimitations: "Vendor limitations",
	ReasonTimeSensitivity:   "Time sensitivity",
	ReasonOther:             "Other",
}

func bypassReasonLabel(code string) string {
	if label, ok := bypassReasonLabels[code]; ok {
		return label
	}
	return code
}

// Validate evaluates every policy rule against the request and returns the
// checklist, the validity flag and the required approver chain.
//
// A request is valid when no required item has failed. Items with status
// "pending" or "warning" never block validity: pending approval state lives
// on the persisted request, not in this checklist.
func (e *Engine) Validate(in Input) Result {
	total := in.TotalAmount
	checklist := make([]ChecklistItem, 0, 8)

	// 1. Advisory amount threshold check. Informational only.
	amountItem := ChecklistItem{
		ID:       ItemAmountUnder500,
		Question: "Is the total purchase amount $500 or less?",
		Status:   StatusPass,
		Message:  "No approval required for purchases of $500 or less",
		Required: false,
	}
	if total > 500 {
		amountItem.Status = StatusWarning
		amountItem.Message = fmt.Sprintf("Total of $%.2f exceeds $500 and requires approval", total)
	}
	checklist = append(checklist, amountItem)

	// 2. PO bypass justification, only required above the no-approval threshold.
	if total > 500 {
		poItem := ChecklistItem{
			ID:       ItemPORuledOut,
			Question: "Has the standard Purchase Order process been ruled out?",
			Required: true,
		}
		if in.POBypassReason != "" {
			poItem.Status = StatusPass
			poItem.Message = fmt.Sprintf("PO process ruled out: %s", bypassReasonLabel(in.POBypassReason))
		} else {
			poItem.Status = StatusFail
			poItem.Message = "A reason for bypassing the PO process is required for purchases over $500"
		}
		checklist = append(checklist, poItem)
	}

	// 3. Split-transaction rule. A policy statement only: the system performs
	// no automated detection, so the item always passes.
	checklist = append(checklist, ChecklistItem{
		ID:       ItemNotSplitTransaction,
		Question: "Is this a single transaction (not split to stay under approval thresholds)?",
		Status:   StatusPass,
		Message:  "Cardholder attests this purchase is not a split transaction",
		Required: true,
	})

	// 4. Prohibited category check.
	prohibitedItem := ChecklistItem{
		ID:       ItemNotProhibited,
		Question: "Is the purchase outside the prohibited categories?",
		Status:   StatusPass,
		Message:  "Category is allowed for P-Card purchases",
		Required: true,
	}
	if prohibitedCategories[in.Category] {
		prohibitedItem.Status = StatusFail
		prohibitedItem.Message = fmt.Sprintf("%s purchases are prohibited on the P-Card", in.Category)
	}
	checklist = append(checklist, prohibitedItem)

	// 5. IT license confirmation for small software subscriptions. Larger
	// subscriptions go through the approval chain anyway.
	if in.IsSoftwareSubscription && total <= 500 {
		swItem := ChecklistItem{
			ID:       ItemSoftwareLicense,
			Question: "Has IT confirmed licensing for this software subscription?",
			Status:   StatusPass,
			Message:  "IT license confirmed",
			Required: false,
		}
		if !in.ITLicenseConfirmed {
			swItem.Status = StatusWarning
			swItem.Message = "IT has not confirmed licensing for this software subscription"
		}
		checklist = append(checklist, swItem)
	}

	// 6/7. Approval-tier items. Always "pending" here: the actual approval
	// state lives in the persisted request and its signatures.
	switch {
	case total > 500 && total <= 1499:
		checklist = append(checklist, ChecklistItem{
			ID:       ItemApproval501_1499,
			Question: "Approval for purchases between $501 and $1,499",
			Status:   StatusPending,
			Message:  fmt.Sprintf("Requires approval from %s", e.dir[KeyMerrill].Name),
			Required: true,
		})
	case total >= 1500:
		msg := fmt.Sprintf("Requires approval from %s and %s", e.dir[KeyMerrill].Name, e.dir[KeyRyan].Name)
		if total > 100000 {
			msg = fmt.Sprintf("Requires approval from %s, %s and the %s", e.dir[KeyMerrill].Name, e.dir[KeyRyan].Name, e.dir[KeyCEO].Name)
		}
		checklist = append(checklist, ChecklistItem{
			ID:       ItemApproval1500Plus,
			Question: "Approval for purchases of $1,500 or more",
			Status:   StatusPending,
			Message:  msg,
			Required: true,
		})
	}

	// 8. Preferred vendor advisory.
	vendorItem := ChecklistItem{
		ID:       ItemPreferredVendor,
		Question: "Is this a preferred vendor?",
		Status:   StatusPass,
		Message:  "Vendor is on the preferred vendor list",
		Required: false,
	}
	if !in.IsPreferredVendor {
		vendorItem.Status = StatusWarning
		vendorItem.Message = "Vendor is not on the preferred vendor list; consider a preferred alternative"
	}
	checklist = append(checklist, vendorItem)

	isValid := true
	for _, item := range checklist {
		if item.Required && item.Status == StatusFail {
			isValid = false
			break
		}
	}

	return Result{
		IsValid:           isValid,
		Checklist:         checklist,
		RequiredApprovers: e.RequiredApprovers(total),
	}
}
