// Package policy implements the P-Card purchase policy core: the
// approval-tier classifier and the purchase-request checklist validator.
// Everything in this package is pure and deterministic: the same input
// always produces the same output, which the UI relies on for live
// recomputation while the form is being edited.
package policy

import "math"

// ItemStatus is the outcome of a single checklist rule.
type ItemStatus string

const (
	StatusPass    ItemStatus = "pass"
	StatusFail    ItemStatus = "fail"
	StatusWarning ItemStatus = "warning"
	StatusPending ItemStatus = "pending"
)

// Checklist item IDs. These are stable keys the frontend matches on.
const (
	ItemAmountUnder500      = "amount_under_500"
	ItemPORuledOut          = "po_ruled_out"
	ItemNotSplitTransaction = "not_split_transaction"
	ItemNotProhibited       = "not_prohibited"
	ItemSoftwareLicense     = "software_license_check"
	ItemApproval501_1499    = "approval_501_1499"
	ItemApproval1500Plus    = "approval_1500_plus"
	ItemPreferredVendor     = "preferred_vendor"
)

// PO bypass reason codes.
const (
	ReasonVendorLimitations = "vendor_limitations"
	ReasonTimeSensitivity   = "time_sensitivity"
	ReasonOther             = "other"
)

// Approver is one required sign-off in the approval chain.
type Approver struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Email string `json:"email"`
	Order int    `json:"order"`
}

// ChecklistItem is one evaluated policy rule. Items are ephemeral: they are
// recomputed on every validation call and never persisted directly.
type ChecklistItem struct {
	ID       string     `json:"id"`
	Question string     `json:"question"`
	Status   ItemStatus `json:"status"`
	Message  string     `json:"message,omitempty"`
	Required bool       `json:"required"`
}

// Input holds the request attributes the validator consumes.
type Input struct {
	TotalAmount            float64 `json:"total_amount"`
	Category               string  `json:"category"`
	IsSoftwareSubscription bool    `json:"is_software_subscription"`
	ITLicenseConfirmed     bool    `json:"it_license_confirmed"`
	IsPreferredVendor      bool    `json:"is_preferred_vendor"`
	POBypassReason         string  `json:"po_bypass_reason"`
	POBypassExplanation    string  `json:"po_bypass_explanation"`
}

// Result is the validator output. IsValid means "not policy-violating";
// a valid request can still be awaiting human approval (pending items
// never block validity). Submission gating additionally requires
// approval signatures, which live outside this package.
type Result struct {
	IsValid           bool            `json:"isValid"`
	Checklist         []ChecklistItem `json:"checklist"`
	RequiredApprovers []Approver      `json:"requiredApprovers"`
}

// Directory maps approver keys to identities. The named individuals were
// hard-coded in the original policy; here they are injected configuration
// with defaults that preserve the original behavior.
type Directory map[string]Approver

// Approver directory keys referenced by the tier table.
const (
	KeyMerrill = "merrill_raman"
	KeyRyan    = "ryan_greene"
	KeyCEO     = "ceo"
)

// DefaultDirectory returns the built-in approver directory.
func DefaultDirectory() Directory {
	return Directory{
		KeyMerrill: {Name: "Merrill Raman", Title: "Controller", Email: "merrill.raman@example.com"},
		KeyRyan:    {Name: "Ryan Greene", Title: "VP of Finance", Email: "ryan.greene@example.com"},
		KeyCEO:     {Name: "CEO", Title: "Chief Executive Officer", Email: "ceo@example.com"},
	}
}

// tier is one row of the approval bracket table. Max is the inclusive upper
// bound of the bracket; the row matches any amount not claimed by an earlier
// row. Both the tier label and the required-approver chain are derived from
// this single table so the two can never drift apart.
type tier struct {
	max          float64
	label        string
	approverKeys []string
}

// tierTable is ordered by ascending Max. The $1,500-$5,000 and
// $5,001-$100,000 rows carry distinct labels but an identical approver set;
// that is how the policy is written and callers depend on the exact text.
var tierTable = []tier{
	{max: 500, label: "No approval required"},
	{max: 1499, label: "$501 - $1,499: Merrill Raman only", approverKeys: []string{KeyMerrill}},
	{max: 5000, label: "$1,500 - $5,000: Merrill Raman + Ryan Greene", approverKeys: []string{KeyMerrill, KeyRyan}},
	{max: 100000, label: "$5,001 - $100,000: Merrill Raman + Ryan Greene", approverKeys: []string{KeyMerrill, KeyRyan}},
	{max: math.Inf(1), label: "Over $100,000: Merrill Raman + Ryan Greene + CEO", approverKeys: []string{KeyMerrill, KeyRyan, KeyCEO}},
}

// tierFor returns the bracket row covering amount.
func tierFor(amount float64) tier {
	for _, t := range tierTable {
		if amount <= t.max {
			return t
		}
	}
	return tierTable[len(tierTable)-1]
}

// Engine evaluates the purchase policy against an injected approver
// directory. The zero-cost default (see GetApprovalTier and
// ValidatePurchaseRequest) uses DefaultDirectory.
type Engine struct {
	dir Directory
}

// NewEngine creates a policy engine. Missing directory entries fall back to
// the defaults so a partial override cannot drop an approver from the chain.
func NewEngine(dir Directory) *Engine {
	merged := DefaultDirectory()
	for k, v := range dir {
		merged[k] = v
	}
	return &Engine{dir: merged}
}

// ApprovalTier returns the human-readable approval bracket for an amount.
func (e *Engine) ApprovalTier(amount float64) string {
	return tierFor(amount).label
}

// RequiredApprovers returns the ordered approver chain for an amount.
// The slice is never nil so it serializes as a JSON array.
func (e *Engine) RequiredApprovers(amount float64) []Approver {
	keys := tierFor(amount).approverKeys
	approvers := make([]Approver, 0, len(keys))
	for i, k := range keys {
		a := e.dir[k]
		a.Order = i + 1
		approvers = append(approvers, a)
	}
	return approvers
}

var defaultEngine = NewEngine(nil)

// GetApprovalTier classifies an amount using the default directory.
func GetApprovalTier(amount float64) string {
	return defaultEngine.ApprovalTier(amount)
}

// ValidatePurchaseRequest validates using the default directory.
func ValidatePurchaseRequest(in Input) Result {
	return defaultEngine.Validate(in)
}
