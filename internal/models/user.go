package models

import (
	"strings"
	"time"

	"baranggo/internal/domain"

	"gorm.io/gorm"
)

type User struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	FirstName          string         `gorm:"size:100;not null" json:"first_name"`
	MiddleName         string         `gorm:"size:100" json:"middle_name"`
	LastName           string         `gorm:"size:100;not null" json:"last_name"`
	Email              string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	ContactNumber      string         `gorm:"size:20" json:"contact_number"`
	Barangay           string         `gorm:"size:100;not null;index" json:"barangay"`
	Purok              string         `gorm:"size:50" json:"purok"`
	PasswordHash       string         `gorm:"size:255" json:"-"`
	Role               string         `gorm:"size:20;not null;index;default:'user'" json:"role"`
	IsVerified         bool           `gorm:"default:false" json:"is_verified"`
	IsActive           bool           `gorm:"default:true" json:"is_active"`
	DeactivationReason string         `gorm:"size:500" json:"deactivation_reason,omitempty"`
	MFAEnabled         bool           `gorm:"default:false" json:"mfa_enabled"`
	MFASecret          string         `gorm:"size:255" json:"-"`
	IDFront            Attachment     `gorm:"embedded;embeddedPrefix:id_front_" json:"id_front"`
	IDBack             Attachment     `gorm:"embedded;embeddedPrefix:id_back_" json:"id_back"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsStaff() bool { return domain.IsStaffRole(u.Role) }

// FullName joins the name parts, skipping an absent middle name.
func (u *User) FullName() string {
	parts := []string{u.FirstName, u.MiddleName, u.LastName}
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, strings.TrimSpace(p))
		}
	}
	return strings.Join(kept, " ")
}
