package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification rows are keyed by recipient; the unread count for a user is
// always computed from rows with a NULL ReadAt, never stored.
type Notification struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	Title       string         `gorm:"size:255" json:"title"`
	Message     string         `gorm:"type:text" json:"message"`
	Category    string         `gorm:"size:30;not null;index" json:"category"`
	RelatedKind string         `gorm:"size:30" json:"related_kind,omitempty"`
	RelatedID   uint           `json:"related_id,omitempty"`
	ReadAt      *time.Time     `json:"read_at"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}
