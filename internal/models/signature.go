package models

import (
	"time"

	"gorm.io/gorm"
)

// Signature actions.
const (
	SignatureActionApproved = "approved"
	SignatureActionRejected = "rejected"
)

// ApprovalSignature records one approver action on a purchase request.
// At most one signature exists per approver name per request; the handler
// checks for an existing row before creating a new one.
type ApprovalSignature struct {
	ID             string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	RequestID      string    `gorm:"type:uuid;not null;index" json:"requestId"`
	ApproverID     string    `gorm:"type:uuid;index" json:"approverId"`
	ApproverName   string    `gorm:"not null" json:"approverName"`
	Action         string    `gorm:"not null" json:"action"`
	Comments       string    `gorm:"type:text" json:"comments,omitempty"`
	SignatureImage string    `gorm:"type:text" json:"signatureImage,omitempty"`
	SignedAt       time.Time `json:"signedAt"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Request  *PurchaseRequest `gorm:"foreignKey:RequestID" json:"request,omitempty"`
	Approver *UserAuth        `gorm:"foreignKey:ApproverID" json:"approver,omitempty"`
}

// TableName specifies the table name for ApprovalSignature model
func (ApprovalSignature) TableName() string {
	return "approval_signatures"
}
