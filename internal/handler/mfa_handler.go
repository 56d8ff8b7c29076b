package handler

import (
	"errors"
	"net/http"

	"baranggo/internal/domain"
	"baranggo/internal/middleware"
	"baranggo/internal/repository"
	"baranggo/internal/service"

	"github.com/gin-gonic/gin"
)

type MFAHandler struct {
	svc       *service.AuthService
	auditRepo *repository.AuditLogRepository
}

func NewMFAHandler(svc *service.AuthService, auditRepo *repository.AuditLogRepository) *MFAHandler {
	return &MFAHandler{svc: svc, auditRepo: auditRepo}
}

// Enable starts MFA enrollment by emailing an OTP.
func (h *MFAHandler) Enable(c *gin.Context) {
	if err := h.svc.InitiateMFAChange(middleware.GetUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type mfaCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// Verify consumes the enrollment OTP and turns MFA on.
func (h *MFAHandler) Verify(c *gin.Context) {
	var req mfaCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := middleware.GetUserID(c)
	if err := h.svc.ConfirmEnableMFA(userID, req.Code); err != nil {
		if errors.Is(err, repository.ErrOTPInvalid) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to enable 2FA"})
		return
	}
	writeAudit(h.auditRepo, c, userID, "mfa_enabled", "auth", "", domain.NotifCategorySystem)
	c.JSON(http.StatusOK, gin.H{"mfa_enabled": true})
}

// InitiateDisable emails an OTP gating the disable step.
func (h *MFAHandler) InitiateDisable(c *gin.Context) {
	if err := h.svc.InitiateMFAChange(middleware.GetUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *MFAHandler) Disable(c *gin.Context) {
	var req mfaCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := middleware.GetUserID(c)
	if err := h.svc.ConfirmDisableMFA(userID, req.Code); err != nil {
		switch {
		case errors.Is(err, repository.ErrOTPInvalid):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrMFANotEnabled):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to disable 2FA"})
		}
		return
	}
	writeAudit(h.auditRepo, c, userID, "mfa_disabled", "auth", "", domain.NotifCategorySystem)
	c.JSON(http.StatusOK, gin.H{"mfa_enabled": false})
}
