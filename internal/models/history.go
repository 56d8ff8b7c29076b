package models

import "time"

// TransactionHistory is the audit-trail projection of a document request's
// lifecycle, located by (RequestKind, RequestID) and updated in place as
// the source request advances.
type TransactionHistory struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	RequestKind       string     `gorm:"size:30;not null;index:idx_history_request" json:"request_kind"`
	RequestID         uint       `gorm:"not null;index:idx_history_request" json:"request_id"`
	ResidentName      string     `gorm:"size:255;not null" json:"resident_name"`
	Barangay          string     `gorm:"size:100;index" json:"barangay"`
	RequestedDocument string     `gorm:"size:100;not null" json:"requested_document"`
	Action            string     `gorm:"size:50;not null" json:"action"`
	Status            string     `gorm:"size:20;not null;index" json:"status"`
	ApprovedBy        string     `gorm:"size:255" json:"approved_by,omitempty"`
	DateRequested     time.Time  `json:"date_requested"`
	DateApproved      *time.Time `json:"date_approved"`
	DateCompleted     *time.Time `json:"date_completed"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (TransactionHistory) TableName() string {
	return "transaction_histories"
}
