package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"baranggo/config"
	"baranggo/internal/auth"
	"baranggo/internal/domain"
	"baranggo/internal/models"
	"baranggo/internal/repository"
	"baranggo/pkg/mailer"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCreds       = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is not verified or has been deactivated")
	ErrInvalidPurok       = errors.New("purok must match the form \"Purok <number>\"")
	ErrVerificationFailed = errors.New("verification link is invalid or expired")
	ErrMFANotEnabled      = errors.New("two-factor authentication is not enabled")
)

var purokPattern = regexp.MustCompile(`^Purok \d+$`)

type AuthService struct {
	cfg      *config.Config
	userRepo *repository.UserRepository
	otpRepo  *repository.OTPRepository
	notif    *NotificationService
	mail     *mailer.Mailer
}

func NewAuthService(cfg *config.Config, userRepo *repository.UserRepository, otpRepo *repository.OTPRepository, notif *NotificationService, mail *mailer.Mailer) *AuthService {
	return &AuthService{cfg: cfg, userRepo: userRepo, otpRepo: otpRepo, notif: notif, mail: mail}
}

type SignupInput struct {
	FirstName     string
	MiddleName    string
	LastName      string
	Email         string
	ContactNumber string
	Barangay      string
	Purok         string
	Password      string
	IDFront       models.Attachment
	IDBack        models.Attachment
}

// Signup registers a resident account. The account starts unverified; a
// verification link is emailed and staff must additionally verify the
// uploaded ID images before documents can be requested.
func (s *AuthService) Signup(in SignupInput) (*models.User, error) {
	if !purokPattern.MatchString(in.Purok) {
		return nil, ErrInvalidPurok
	}
	_, err := s.userRepo.GetByEmail(in.Email)
	if err == nil {
		return nil, ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		FirstName:     in.FirstName,
		MiddleName:    in.MiddleName,
		LastName:      in.LastName,
		Email:         in.Email,
		ContactNumber: in.ContactNumber,
		Barangay:      in.Barangay,
		Purok:         in.Purok,
		PasswordHash:  string(hash),
		Role:          domain.RoleResident,
		IsVerified:    false,
		IsActive:      true,
		IDFront:       in.IDFront,
		IDBack:        in.IDBack,
	}
	if err := s.userRepo.Create(u); err != nil {
		return nil, err
	}

	if err := s.sendVerificationEmail(u); err != nil {
		logrus.WithError(err).WithField("user_id", u.ID).Error("send verification email")
	}
	if s.notif != nil {
		_ = s.notif.Notify(u.ID, domain.NotifCategorySystem,
			"Secure your account",
			"You can enable two-factor authentication from your account settings.",
			"", 0)
	}
	return u, nil
}

func (s *AuthService) sendVerificationEmail(u *models.User) error {
	uniqueString := uuid.NewString()
	hashed, err := bcrypt.GenerateFromPassword([]byte(uniqueString), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.otpRepo.CreateVerification(&models.EmailVerification{
		UserID:       u.ID,
		UniqueString: string(hashed),
		ExpiresAt:    time.Now().Add(24 * time.Hour),
	}); err != nil {
		return err
	}
	if s.mail == nil {
		logrus.WithField("user_id", u.ID).Info("mailer disabled, skipping verification email")
		return nil
	}
	link := fmt.Sprintf("%s/api/v1/auth/verify-email/%d/%s", s.cfg.Frontend.BaseURL, u.ID, uniqueString)
	return s.mail.SendVerificationLink(u.Email, link)
}

// VerifyEmailLink compares the link-supplied unique string against the
// stored hash; on match the account is marked verified and the pending
// record deleted.
func (s *AuthService) VerifyEmailLink(userID uint, uniqueString string) error {
	v, err := s.otpRepo.GetVerificationByUserID(userID)
	if err != nil {
		return ErrVerificationFailed
	}
	if time.Now().After(v.ExpiresAt) {
		_ = s.otpRepo.DeleteVerification(userID)
		return ErrVerificationFailed
	}
	if bcrypt.CompareHashAndPassword([]byte(v.UniqueString), []byte(uniqueString)) != nil {
		return ErrVerificationFailed
	}
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return ErrVerificationFailed
	}
	u.IsVerified = true
	if err := s.userRepo.Update(u); err != nil {
		return err
	}
	return s.otpRepo.DeleteVerification(userID)
}

// Login verifies credentials. For MFA-enabled accounts with no code, it
// returns requireMFA=true and no token; supplying a valid unexpired code
// consumes it and completes the login.
func (s *AuthService) Login(email, password, mfaCode string) (u *models.User, token string, requireMFA bool, err error) {
	u, err = s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", false, ErrInvalidCreds
		}
		return nil, "", false, err
	}
	if !u.IsVerified || !u.IsActive {
		return nil, "", false, ErrAccountInactive
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", false, ErrInvalidCreds
	}
	if u.MFAEnabled {
		if mfaCode == "" {
			return u, "", true, nil
		}
		if err := s.otpRepo.Consume(u.Email, mfaCode, domain.OTPPurposeLogin); err != nil {
			return nil, "", false, err
		}
	}
	token, err = auth.GenerateToken(&s.cfg.JWT, u.ID, u.Email, u.Barangay, u.Role)
	if err != nil {
		return nil, "", false, err
	}
	return u, token, false, nil
}

// SendOTP emails a fresh single-use code, replacing any outstanding one for
// the same purpose. Lifetime comes from config (5 minutes).
func (s *AuthService) SendOTP(email, purpose string) error {
	u, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCreds
		}
		return err
	}
	code, err := generateOTPCode()
	if err != nil {
		return err
	}
	if err := s.otpRepo.Create(&models.OTPCode{
		Email:     u.Email,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(s.cfg.OTP.Lifetime),
	}); err != nil {
		return err
	}
	if s.mail == nil {
		logrus.WithField("email", email).Info("mailer disabled, skipping OTP email")
		return nil
	}
	return s.mail.SendOTP(u.Email, code, int(s.cfg.OTP.Lifetime.Minutes()))
}

func (s *AuthService) VerifyOTP(email, code, purpose string) error {
	return s.otpRepo.Consume(email, code, purpose)
}

// ResetPassword consumes a reset code and replaces the password hash.
func (s *AuthService) ResetPassword(email, code, newPassword string) error {
	if err := s.otpRepo.Consume(email, code, domain.OTPPurposeReset); err != nil {
		return err
	}
	u, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return s.userRepo.Update(u)
}

// InitiateMFAChange emails an OTP that gates enabling or disabling MFA.
func (s *AuthService) InitiateMFAChange(userID uint) error {
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	return s.SendOTP(u.Email, domain.OTPPurposeMFA)
}

func (s *AuthService) ConfirmEnableMFA(userID uint, code string) error {
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if err := s.otpRepo.Consume(u.Email, code, domain.OTPPurposeMFA); err != nil {
		return err
	}
	u.MFAEnabled = true
	u.MFASecret = uuid.NewString()
	return s.userRepo.Update(u)
}

func (s *AuthService) ConfirmDisableMFA(userID uint, code string) error {
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if !u.MFAEnabled {
		return ErrMFANotEnabled
	}
	if err := s.otpRepo.Consume(u.Email, code, domain.OTPPurposeMFA); err != nil {
		return err
	}
	u.MFAEnabled = false
	u.MFASecret = ""
	return s.userRepo.Update(u)
}

type StaffInput struct {
	FirstName     string
	MiddleName    string
	LastName      string
	Email         string
	ContactNumber string
	Barangay      string
	Password      string
}

// CreateStaffAccount registers a privileged account (secretary, chairman,
// treasurer). Staff accounts skip ID images and start verified and active.
func (s *AuthService) CreateStaffAccount(in StaffInput, role string) (*models.User, error) {
	_, err := s.userRepo.GetByEmail(in.Email)
	if err == nil {
		return nil, ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		FirstName:     in.FirstName,
		MiddleName:    in.MiddleName,
		LastName:      in.LastName,
		Email:         in.Email,
		ContactNumber: in.ContactNumber,
		Barangay:      in.Barangay,
		PasswordHash:  string(hash),
		Role:          role,
		IsVerified:    true,
		IsActive:      true,
	}
	if err := s.userRepo.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
