package repository

import (
	"errors"
	"time"

	"baranggo/internal/models"

	"gorm.io/gorm"
)

var (
	ErrOTPInvalid = errors.New("code is invalid, used, or expired")
)

type OTPRepository struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) *OTPRepository {
	return &OTPRepository{db: db}
}

// Create replaces any outstanding code for the same email and purpose.
func (r *OTPRepository) Create(otp *models.OTPCode) error {
	if err := r.db.Where("email = ? AND purpose = ?", otp.Email, otp.Purpose).
		Delete(&models.OTPCode{}).Error; err != nil {
		return err
	}
	return r.db.Create(otp).Error
}

// Consume validates a code and deletes it. A matching row past its expiry
// is also deleted so the code cannot be replayed after a failed check.
func (r *OTPRepository) Consume(email, code, purpose string) error {
	var otp models.OTPCode
	err := r.db.Where("email = ? AND code = ? AND purpose = ?", email, code, purpose).First(&otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOTPInvalid
		}
		return err
	}
	if err := r.db.Delete(&otp).Error; err != nil {
		return err
	}
	if time.Now().After(otp.ExpiresAt) {
		return ErrOTPInvalid
	}
	return nil
}

func (r *OTPRepository) CreateVerification(v *models.EmailVerification) error {
	if err := r.db.Where("user_id = ?", v.UserID).
		Delete(&models.EmailVerification{}).Error; err != nil {
		return err
	}
	return r.db.Create(v).Error
}

func (r *OTPRepository) GetVerificationByUserID(userID uint) (*models.EmailVerification, error) {
	var v models.EmailVerification
	if err := r.db.Where("user_id = ?", userID).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *OTPRepository) DeleteVerification(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.EmailVerification{}).Error
}
