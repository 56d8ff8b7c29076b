package handler

import (
	"errors"
	"net/http"
	"strconv"

	"baranggo/internal/domain"
	"baranggo/internal/middleware"
	"baranggo/internal/models"
	"baranggo/internal/repository"
	"baranggo/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type UserHandler struct {
	userRepo  *repository.UserRepository
	authSvc   *service.AuthService
	notif     *service.NotificationService
	auditRepo *repository.AuditLogRepository
}

func NewUserHandler(userRepo *repository.UserRepository, authSvc *service.AuthService, notif *service.NotificationService, auditRepo *repository.AuditLogRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo, authSvc: authSvc, notif: notif, auditRepo: auditRepo}
}

// List handles GET /users (staff).
func (h *UserHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	barangay := c.Query("barangay")
	if middleware.GetRole(c) != domain.RoleSuperAdmin {
		barangay = middleware.GetBarangay(c)
	}
	users, total, err := h.userRepo.List(c.Query("role"), barangay, c.Query("search"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users, "total": total, "page": page, "limit": limit})
}

// Verify handles PATCH /users/:id/verify (staff).
func (h *UserHandler) Verify(c *gin.Context) {
	u, ok := h.load(c)
	if !ok {
		return
	}
	u.IsVerified = true
	if err := h.userRepo.Update(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}
	if h.notif != nil {
		_ = h.notif.NotifyAccountVerified(u.ID)
	}
	writeAudit(h.auditRepo, c, middleware.GetUserID(c), "user_verified", "users", u.Email, domain.NotifCategoryVerification)
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// Reject handles PATCH /users/:id/reject (staff). The account stays
// unverified; the resident is told why.
func (h *UserHandler) Reject(c *gin.Context) {
	u, ok := h.load(c)
	if !ok {
		return
	}
	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&body)
	u.IsVerified = false
	if err := h.userRepo.Update(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}
	if h.notif != nil {
		msg := "Your account verification was rejected."
		if body.Reason != "" {
			msg += " Reason: " + body.Reason
		}
		_ = h.notif.Notify(u.ID, domain.NotifCategoryVerification, "Verification rejected", msg, "", 0)
	}
	writeAudit(h.auditRepo, c, middleware.GetUserID(c), "user_rejected", "users", body.Reason, domain.NotifCategoryVerification)
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// Deactivate handles PATCH /users/:id/deactivate (staff). A reason is
// required.
func (h *UserHandler) Deactivate(c *gin.Context) {
	u, ok := h.load(c)
	if !ok {
		return
	}
	var body struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a deactivation reason is required"})
		return
	}
	u.IsActive = false
	u.DeactivationReason = body.Reason
	if err := h.userRepo.Update(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}
	if h.notif != nil {
		_ = h.notif.Notify(u.ID, domain.NotifCategorySystem, "Account deactivated",
			"Your account has been deactivated. Reason: "+body.Reason, "", 0)
	}
	writeAudit(h.auditRepo, c, middleware.GetUserID(c), "user_deactivated", "users", body.Reason, domain.NotifCategorySystem)
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// Activate handles PATCH /users/:id/activate (staff).
func (h *UserHandler) Activate(c *gin.Context) {
	u, ok := h.load(c)
	if !ok {
		return
	}
	u.IsActive = true
	u.DeactivationReason = ""
	if err := h.userRepo.Update(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}
	if h.notif != nil {
		_ = h.notif.Notify(u.ID, domain.NotifCategorySystem, "Account reactivated",
			"Your account has been reactivated.", "", 0)
	}
	writeAudit(h.auditRepo, c, middleware.GetUserID(c), "user_activated", "users", u.Email, domain.NotifCategorySystem)
	c.JSON(http.StatusOK, gin.H{"user": u})
}

type createStaffBody struct {
	FirstName     string `json:"first_name" binding:"required"`
	MiddleName    string `json:"middle_name"`
	LastName      string `json:"last_name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	ContactNumber string `json:"contact_number" binding:"required"`
	Barangay      string `json:"barangay" binding:"required"`
	Password      string `json:"password" binding:"required,min=8"`
}

// CreateStaff returns a handler that registers a privileged account with
// the role fixed per endpoint (superAdmin only).
func (h *UserHandler) CreateStaff(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body createStaffBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		u, err := h.authSvc.CreateStaffAccount(service.StaffInput{
			FirstName:     body.FirstName,
			MiddleName:    body.MiddleName,
			LastName:      body.LastName,
			Email:         body.Email,
			ContactNumber: body.ContactNumber,
			Barangay:      body.Barangay,
			Password:      body.Password,
		}, role)
		if err != nil {
			if errors.Is(err, service.ErrEmailExists) {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			logrus.WithError(err).WithField("role", role).Error("create staff account failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
			return
		}
		writeAudit(h.auditRepo, c, middleware.GetUserID(c), "staff_created", "users", role+": "+u.Email, domain.NotifCategorySystem)
		c.JSON(http.StatusCreated, gin.H{"user": u})
	}
}

func (h *UserHandler) load(c *gin.Context) (*models.User, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return nil, false
	}
	user, err := h.userRepo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		}
		return nil, false
	}
	return user, true
}
