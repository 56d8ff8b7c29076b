package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"baranggo/internal/domain"
	"baranggo/internal/middleware"
	"baranggo/internal/models"
	"baranggo/internal/repository"
	"baranggo/internal/service"
	"baranggo/pkg/attachment"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type RequestHandler struct {
	svc       *service.RequestService
	repo      *repository.RequestRepository
	userRepo  *repository.UserRepository
	auditRepo *repository.AuditLogRepository
}

func NewRequestHandler(svc *service.RequestService, repo *repository.RequestRepository, userRepo *repository.UserRepository, auditRepo *repository.AuditLogRepository) *RequestHandler {
	return &RequestHandler{svc: svc, repo: repo, userRepo: userRepo, auditRepo: auditRepo}
}

// kindFromPath maps the hyphenated URL segment to the internal kind.
func kindFromPath(segment string) (string, bool) {
	kind := strings.ReplaceAll(segment, "-", "_")
	if domain.ValidDocumentKind(kind) {
		return kind, true
	}
	return "", false
}

type paymentBody struct {
	Method          string           `json:"method"`
	Amount          float64          `json:"amount"`
	ReferenceNumber string           `json:"reference_number"`
	Proof           attachment.Input `json:"proof"`
}

type createRequestBody struct {
	Name            string      `json:"name"`
	Purpose         string      `json:"purpose"`
	BusinessName    string      `json:"business_name"`
	BusinessNature  string      `json:"business_nature"`
	BusinessAddress string      `json:"business_address"`
	DateOfBirth     string      `json:"date_of_birth"`
	PlaceOfBirth    string      `json:"place_of_birth"`
	CivilStatus     string      `json:"civil_status"`
	Occupation      string      `json:"occupation"`
	Tax             float64     `json:"tax"`
	Payment         paymentBody `json:"payment"`
}

// missingFields collects every absent required field for the kind so the
// 400 response names all of them.
func (b *createRequestBody) missingFields(kind string) []string {
	var missing []string
	require := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	switch kind {
	case domain.KindBarangayClearance, domain.KindBarangayIndigency:
		require("purpose", b.Purpose)
	case domain.KindBusinessClearance:
		require("business_name", b.BusinessName)
		require("business_nature", b.BusinessNature)
		require("business_address", b.BusinessAddress)
	case domain.KindCedula:
		require("name", b.Name)
		require("date_of_birth", b.DateOfBirth)
		require("place_of_birth", b.PlaceOfBirth)
		require("civil_status", b.CivilStatus)
		require("occupation", b.Occupation)
	}
	require("payment.method", b.Payment.Method)
	if b.Payment.Method != "" && !strings.EqualFold(b.Payment.Method, domain.PaymentCash) {
		require("payment.reference_number", b.Payment.ReferenceNumber)
	}
	return missing
}

// Create handles POST /document-requests/:type.
func (h *RequestHandler) Create(c *gin.Context) {
	kind, ok := kindFromPath(c.Param("type"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown document type"})
		return
	}
	var body createRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if missing := body.missingFields(kind); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields", "fields": missing})
		return
	}
	if !domain.ValidPaymentMethod(body.Payment.Method) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment method: " + body.Payment.Method})
		return
	}

	payment := models.Payment{
		Method:          strings.ToLower(body.Payment.Method),
		Amount:          body.Payment.Amount,
		ReferenceNumber: body.Payment.ReferenceNumber,
	}
	if !body.Payment.Proof.Empty() {
		proof, err := attachment.Normalize(body.Payment.Proof)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "payment.proof: " + err.Error()})
			return
		}
		payment.Proof = toAttachment(proof)
	}

	userID := middleware.GetUserID(c)
	requesterName := strings.TrimSpace(body.Name)
	if requesterName == "" {
		if u, err := h.userRepo.GetByID(userID); err == nil {
			requesterName = u.FullName()
		}
	}
	core := models.RequestCore{
		UserID:        userID,
		RequesterName: requesterName,
		Email:         middleware.GetEmail(c),
		Barangay:      middleware.GetBarangay(c),
		Payment:       payment,
	}

	req := models.NewRequestByKind(kind)
	switch doc := req.(type) {
	case *models.BarangayClearance:
		doc.RequestCore = core
		doc.Purpose = body.Purpose
	case *models.BarangayIndigency:
		doc.RequestCore = core
		doc.Purpose = body.Purpose
	case *models.BusinessClearance:
		doc.RequestCore = core
		doc.BusinessName = body.BusinessName
		doc.BusinessNature = body.BusinessNature
		doc.BusinessAddress = body.BusinessAddress
	case *models.Cedula:
		doc.RequestCore = core
		doc.DateOfBirth = body.DateOfBirth
		doc.PlaceOfBirth = body.PlaceOfBirth
		doc.CivilStatus = body.CivilStatus
		doc.Occupation = body.Occupation
		doc.Tax = body.Tax
	}

	if err := h.svc.Create(req); err != nil {
		logrus.WithError(err).WithField("kind", kind).Error("create request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create request"})
		return
	}
	writeAudit(h.auditRepo, c, userID, "request_created", kind, requesterName, domain.NotifCategoryRequest)
	c.JSON(http.StatusCreated, gin.H{"request": req})
}

type updateStatusBody struct {
	Status        string `json:"status" binding:"required"`
	SecretaryName string `json:"secretary_name"`
}

// UpdateStatus handles PATCH /document-requests/:type/:id/status (staff).
func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	kind, ok := kindFromPath(c.Param("type"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown document type"})
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var body updateStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	approver := strings.TrimSpace(body.SecretaryName)
	if approver == "" {
		if u, err := h.userRepo.GetByID(middleware.GetUserID(c)); err == nil {
			approver = u.FullName()
		}
	}
	req, err := h.svc.UpdateStatus(kind, uint(id), body.Status, approver)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
		default:
			logrus.WithError(err).WithFields(logrus.Fields{"kind": kind, "id": id}).Error("update status failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
		}
		return
	}
	writeAudit(h.auditRepo, c, middleware.GetUserID(c), "status_updated", kind, req.Core().Status, domain.NotifCategoryStatusUpdate)
	c.JSON(http.StatusOK, gin.H{"request": req})
}

// List handles GET /document-requests (staff). Staff see their own
// barangay; superAdmin sees everything.
func (h *RequestHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	f := repository.RequestFilter{
		Status: c.Query("status"),
	}
	if t := c.Query("type"); t != "" {
		kind, ok := kindFromPath(t)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown document type: " + t})
			return
		}
		f.Kind = kind
	}
	if middleware.GetRole(c) != domain.RoleSuperAdmin {
		f.Barangay = middleware.GetBarangay(c)
	}
	list, total, err := h.repo.List(f, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

// MyRequests handles GET /document-requests/my-requests.
func (h *RequestHandler) MyRequests(c *gin.Context) {
	page, limit := parsePagination(c)
	f := repository.RequestFilter{
		UserID: middleware.GetUserID(c),
		Email:  middleware.GetEmail(c),
	}
	list, total, err := h.repo.List(f, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}
