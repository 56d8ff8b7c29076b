package models

import "time"

// OTPCode is a single-use emailed code. Rows are deleted on consumption
// and whenever an expiry check fails.
type OTPCode struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;not null;index:idx_otp_email_purpose" json:"email"`
	Code      string    `gorm:"size:10;not null" json:"-"`
	Purpose   string    `gorm:"size:20;not null;index:idx_otp_email_purpose" json:"purpose"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (OTPCode) TableName() string {
	return "otp_codes"
}

// EmailVerification holds the bcrypt hash of the unique string embedded in
// a verification link. Deleted once the account is verified.
type EmailVerification struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	UniqueString string    `gorm:"size:255;not null" json:"-"`
	ExpiresAt    time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

func (EmailVerification) TableName() string {
	return "email_verifications"
}
