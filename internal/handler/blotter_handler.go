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

type BlotterHandler struct {
	repo      *repository.BlotterRepository
	notif     *service.NotificationService
	auditRepo *repository.AuditLogRepository
}

func NewBlotterHandler(repo *repository.BlotterRepository, notif *service.NotificationService, auditRepo *repository.AuditLogRepository) *BlotterHandler {
	return &BlotterHandler{repo: repo, notif: notif, auditRepo: auditRepo}
}

type createBlotterBody struct {
	ComplainantName  string           `json:"complainant_name"`
	RespondentName   string           `json:"respondent_name"`
	IncidentDetails  string           `json:"incident_details"`
	IncidentDate     string           `json:"incident_date"`
	IncidentLocation string           `json:"incident_location"`
	Evidence         attachment.Input `json:"evidence"`
	Payment          paymentBody      `json:"payment"`
}

func (b *createBlotterBody) missingFields() []string {
	var missing []string
	require := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	require("complainant_name", b.ComplainantName)
	require("respondent_name", b.RespondentName)
	require("incident_details", b.IncidentDetails)
	require("payment.method", b.Payment.Method)
	if b.Payment.Method != "" && !strings.EqualFold(b.Payment.Method, domain.PaymentCash) {
		require("payment.reference_number", b.Payment.ReferenceNumber)
	}
	if b.Payment.Proof.Empty() {
		missing = append(missing, "payment.proof")
	}
	return missing
}

// Create handles POST /blotter/report. The payment receipt image is
// required at create time.
func (h *BlotterHandler) Create(c *gin.Context) {
	var body createBlotterBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if missing := body.missingFields(); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields", "fields": missing})
		return
	}
	if !domain.ValidPaymentMethod(body.Payment.Method) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment method: " + body.Payment.Method})
		return
	}
	proof, err := attachment.Normalize(body.Payment.Proof)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment.proof: " + err.Error()})
		return
	}
	report := &models.BlotterReport{
		UserID:           middleware.GetUserID(c),
		ComplainantName:  body.ComplainantName,
		RespondentName:   body.RespondentName,
		IncidentDetails:  body.IncidentDetails,
		IncidentDate:     body.IncidentDate,
		IncidentLocation: body.IncidentLocation,
		Barangay:         middleware.GetBarangay(c),
		Status:           domain.BlotterPending,
		Payment: models.Payment{
			Method:          strings.ToLower(body.Payment.Method),
			Amount:          body.Payment.Amount,
			ReferenceNumber: body.Payment.ReferenceNumber,
			Proof:           toAttachment(proof),
		},
	}
	if !body.Evidence.Empty() {
		ev, err := attachment.Normalize(body.Evidence)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "evidence: " + err.Error()})
			return
		}
		report.Evidence = toAttachment(ev)
	}
	if err := h.repo.Create(report); err != nil {
		logrus.WithError(err).Error("create blotter report failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create report"})
		return
	}
	if h.notif != nil {
		h.notif.NotifyStaffNewBlotter(report.Barangay, report.ComplainantName, report.ID)
	}
	writeAudit(h.auditRepo, c, report.UserID, "blotter_created", "blotter", body.ComplainantName, domain.NotifCategoryRequest)
	c.JSON(http.StatusCreated, gin.H{"report": report})
}

// List handles GET /blotter. Staff see their barangay; residents see their
// own reports.
func (h *BlotterHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	var (
		list  []models.BlotterReport
		total int64
		err   error
	)
	if domain.IsStaffRole(middleware.GetRole(c)) {
		list, total, err = h.repo.ListByBarangay(middleware.GetBarangay(c), page, limit)
	} else {
		list, total, err = h.repo.ListByUser(middleware.GetUserID(c), page, limit)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

type updateBlotterBody struct {
	Status           string `json:"status"`
	IncidentDetails  string `json:"incident_details"`
	IncidentDate     string `json:"incident_date"`
	IncidentLocation string `json:"incident_location"`
	RespondentName   string `json:"respondent_name"`
}

// Update handles PUT /blotter/:id. Staff may transition status; the owning
// resident may amend the narrative fields.
func (h *BlotterHandler) Update(c *gin.Context) {
	report, ok := h.loadOwnedOrStaff(c)
	if !ok {
		return
	}
	var body updateBlotterBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	isStaff := domain.IsStaffRole(middleware.GetRole(c))
	if body.Status != "" {
		if !isStaff {
			c.JSON(http.StatusForbidden, gin.H{"error": "only staff may change report status"})
			return
		}
		status, valid := domain.NormalizeBlotterStatus(body.Status)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status: " + body.Status})
			return
		}
		report.Status = status
	}
	if body.IncidentDetails != "" {
		report.IncidentDetails = body.IncidentDetails
	}
	if body.IncidentDate != "" {
		report.IncidentDate = body.IncidentDate
	}
	if body.IncidentLocation != "" {
		report.IncidentLocation = body.IncidentLocation
	}
	if body.RespondentName != "" {
		report.RespondentName = body.RespondentName
	}
	if err := h.repo.Update(report); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update report"})
		return
	}
	if body.Status != "" && h.notif != nil && report.UserID != 0 {
		_ = h.notif.Notify(report.UserID, domain.NotifCategoryStatusUpdate,
			"Blotter report "+report.Status,
			"Your blotter report is now "+report.Status+".",
			domain.KindBlotter, report.ID)
	}
	writeAudit(h.auditRepo, c, middleware.GetUserID(c), "blotter_updated", "blotter", report.Status, domain.NotifCategoryStatusUpdate)
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// Delete handles DELETE /blotter/:id (owner or staff).
func (h *BlotterHandler) Delete(c *gin.Context) {
	report, ok := h.loadOwnedOrStaff(c)
	if !ok {
		return
	}
	if err := h.repo.Delete(report.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete report"})
		return
	}
	writeAudit(h.auditRepo, c, middleware.GetUserID(c), "blotter_deleted", "blotter", strconv.Itoa(int(report.ID)), domain.NotifCategorySystem)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *BlotterHandler) loadOwnedOrStaff(c *gin.Context) (*models.BlotterReport, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return nil, false
	}
	report, err := h.repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load report"})
		}
		return nil, false
	}
	if report.UserID != middleware.GetUserID(c) && !domain.IsStaffRole(middleware.GetRole(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return nil, false
	}
	return report, true
}
