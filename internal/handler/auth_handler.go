package handler

import (
	"errors"
	"net/http"
	"strconv"

	"baranggo/config"
	"baranggo/internal/domain"
	"baranggo/internal/middleware"
	"baranggo/internal/repository"
	"baranggo/internal/service"
	"baranggo/pkg/attachment"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	svc       *service.AuthService
	userRepo  *repository.UserRepository
	auditRepo *repository.AuditLogRepository
	cfg       *config.Config
}

func NewAuthHandler(svc *service.AuthService, userRepo *repository.UserRepository, auditRepo *repository.AuditLogRepository, cfg *config.Config) *AuthHandler {
	return &AuthHandler{svc: svc, userRepo: userRepo, auditRepo: auditRepo, cfg: cfg}
}

type SignupRequest struct {
	FirstName     string           `json:"first_name"`
	MiddleName    string           `json:"middle_name"`
	LastName      string           `json:"last_name"`
	Email         string           `json:"email"`
	ContactNumber string           `json:"contact_number"`
	Barangay      string           `json:"barangay"`
	Purok         string           `json:"purok"`
	Password      string           `json:"password"`
	IDFront       attachment.Input `json:"id_front"`
	IDBack        attachment.Input `json:"id_back"`
}

// missingFields collects every absent required field so the 400 response
// can name all of them at once.
func (r *SignupRequest) missingFields() []string {
	var missing []string
	require := func(name, value string) {
		if value == "" {
			missing = append(missing, name)
		}
	}
	require("first_name", r.FirstName)
	require("last_name", r.LastName)
	require("email", r.Email)
	require("contact_number", r.ContactNumber)
	require("barangay", r.Barangay)
	require("purok", r.Purok)
	require("password", r.Password)
	if r.IDFront.Empty() {
		missing = append(missing, "id_front")
	}
	if r.IDBack.Empty() {
		missing = append(missing, "id_back")
	}
	return missing
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if missing := req.missingFields(); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields", "fields": missing})
		return
	}
	front, err := attachment.Normalize(req.IDFront)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id_front: " + err.Error()})
		return
	}
	back, err := attachment.Normalize(req.IDBack)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id_back: " + err.Error()})
		return
	}
	u, err := h.svc.Signup(service.SignupInput{
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		LastName:      req.LastName,
		Email:         req.Email,
		ContactNumber: req.ContactNumber,
		Barangay:      req.Barangay,
		Purok:         req.Purok,
		Password:      req.Password,
		IDFront:       toAttachment(front),
		IDBack:        toAttachment(back),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidPurok):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logrus.WithError(err).WithField("email", req.Email).Error("signup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}
	writeAudit(h.auditRepo, c, u.ID, "signup", "auth", "", domain.NotifCategorySystem)
	c.JSON(http.StatusCreated, gin.H{"user": u})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	MFACode  string `json:"mfa_code"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, token, requireMFA, err := h.svc.Login(req.Email, req.Password, req.MFACode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCreds), errors.Is(err, repository.ErrOTPInvalid):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrAccountInactive):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			logrus.WithError(err).WithField("email", req.Email).Error("login failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		}
		return
	}
	if requireMFA {
		c.JSON(http.StatusOK, gin.H{"require_mfa": true})
		return
	}
	writeAudit(h.auditRepo, c, u.ID, "login", "auth", "", domain.NotifCategorySystem)
	c.JSON(http.StatusOK, gin.H{"user": u, "token": token})
}

type SendOTPRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Purpose string `json:"purpose" binding:"omitempty,oneof=login reset mfa"`
}

func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	purpose := req.Purpose
	if purpose == "" {
		purpose = domain.OTPPurposeLogin
	}
	if err := h.svc.SendOTP(req.Email, purpose); err != nil {
		if errors.Is(err, service.ErrInvalidCreds) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown email"})
			return
		}
		logrus.WithError(err).WithField("email", req.Email).Error("send otp failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type VerifyOTPRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Code    string `json:"code" binding:"required"`
	Purpose string `json:"purpose" binding:"omitempty,oneof=login reset mfa"`
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	purpose := req.Purpose
	if purpose == "" {
		purpose = domain.OTPPurposeLogin
	}
	if err := h.svc.VerifyOTP(req.Email, req.Code, purpose); err != nil {
		if errors.Is(err, repository.ErrOTPInvalid) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "verification failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.ResetPassword(req.Email, req.Code, req.NewPassword); err != nil {
		if errors.Is(err, repository.ErrOTPInvalid) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		logrus.WithError(err).WithField("email", req.Email).Error("reset password failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reset failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// VerifyEmail handles the emailed verification link and redirects to the
// configured frontend on both outcomes.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusFound, h.cfg.Frontend.BaseURL+"/verification-error")
		return
	}
	if err := h.svc.VerifyEmailLink(uint(userID), c.Param("uniqueString")); err != nil {
		c.Redirect(http.StatusFound, h.cfg.Frontend.BaseURL+"/verification-error")
		return
	}
	writeAudit(h.auditRepo, c, uint(userID), "verify_email", "auth", "", domain.NotifCategoryVerification)
	c.Redirect(http.StatusFound, h.cfg.Frontend.BaseURL+"/verified")
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.userRepo.GetByID(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}
