package models

import "time"

// AuditLog is append-only; no handler updates or deletes rows.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id"`
	Action    string    `gorm:"size:100;not null;index" json:"action"`
	Resource  string    `gorm:"size:100;index" json:"resource"`
	Detail    string    `gorm:"type:text" json:"detail"`
	Category  string    `gorm:"size:30;index" json:"category"`
	IP        string    `gorm:"size:45" json:"ip"`
	UserAgent string    `gorm:"size:512" json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
