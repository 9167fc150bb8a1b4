package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Purchase request statuses. Transitions: draft -> pending -> approved or
// rejected, except that requests of $500 or less go straight to approved on
// submission. Requests are never hard-deleted; rejection and soft delete are
// the only exits.
const (
	RequestStatusDraft    = "draft"
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// PurchaseRequest represents a P-Card pre-approval request.
// TotalAmount is always the sum of purchase + tax + shipping; it is
// recomputed server-side on every write, never trusted from the client.
type PurchaseRequest struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	VendorName     string `gorm:"not null" json:"vendorName"`
	CardholderName string `gorm:"not null;index" json:"cardholderName"`
	Category       string `gorm:"not null" json:"category"`

	PurchaseAmount float64 `json:"purchaseAmount"`
	TaxAmount      float64 `json:"taxAmount"`
	ShippingAmount float64 `json:"shippingAmount"`
	TotalAmount    float64 `gorm:"index" json:"totalAmount"`

	Status string `gorm:"default:'draft';index" json:"status"`

	IsSoftwareSubscription bool `json:"isSoftwareSubscription"`
	ITLicenseConfirmed     bool `json:"itLicenseConfirmed"`
	IsPreferredVendor      bool `json:"isPreferredVendor"`

	// PO bypass justification, required for purchases over $500.
	POBypassReason      string `json:"poBypassReason,omitempty"`
	POBypassExplanation string `gorm:"type:text" json:"poBypassExplanation,omitempty"`

	Justification string `gorm:"type:text" json:"justification,omitempty"`

	// Cardholder signature captured at submission (image reference).
	SignatureImage string `gorm:"type:text" json:"signatureImage,omitempty"`

	// Checklist snapshot taken at submission time, for audit display.
	ChecklistSnapshot datatypes.JSON `json:"checklistSnapshot,omitempty"`

	SubmittedBy *string    `gorm:"type:uuid;index" json:"submittedBy,omitempty"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
	ResolvedAt  *time.Time `json:"resolvedAt,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Submitter  *UserAuth           `gorm:"foreignKey:SubmittedBy" json:"submitter,omitempty"`
	Signatures []ApprovalSignature `gorm:"foreignKey:RequestID" json:"signatures,omitempty"`
	Receipts   []Receipt           `gorm:"foreignKey:RequestID" json:"receipts,omitempty"`
}

// TableName specifies the table name for PurchaseRequest model
func (PurchaseRequest) TableName() string {
	return "purchase_requests"
}

// ComputeTotal recalculates TotalAmount as the plain float sum of its parts.
func (p *PurchaseRequest) ComputeTotal() {
	p.TotalAmount = p.PurchaseAmount + p.TaxAmount + p.ShippingAmount
}
