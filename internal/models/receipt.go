package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Receipt verification statuses.
const (
	ReceiptStatusUploaded    = "uploaded"
	ReceiptStatusVerified    = "verified"
	ReceiptStatusMismatch    = "mismatch"
	ReceiptStatusNeedsReview = "needs_review"
)

// Receipt is an uploaded receipt image or PDF attached to a purchase
// request. Verification is performed by the AI reviewer; the raw verdict is
// kept in Verdict for the review UI.
type Receipt struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	RequestID   string `gorm:"type:uuid;not null;index" json:"requestId"`
	ObjectKey   string `gorm:"not null" json:"objectKey"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`

	Status     string         `gorm:"default:'uploaded'" json:"status"`
	Confidence float64        `json:"confidence"`
	Verdict    datatypes.JSON `json:"verdict,omitempty"`
	VerifiedAt *time.Time     `json:"verifiedAt,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Request *PurchaseRequest `gorm:"foreignKey:RequestID" json:"request,omitempty"`
}

// TableName specifies the table name for Receipt model
func (Receipt) TableName() string {
	return "receipts"
}
