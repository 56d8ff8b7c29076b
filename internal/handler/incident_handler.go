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

type IncidentHandler struct {
	repo      *repository.IncidentRepository
	notif     *service.NotificationService
	auditRepo *repository.AuditLogRepository
}

func NewIncidentHandler(repo *repository.IncidentRepository, notif *service.NotificationService, auditRepo *repository.AuditLogRepository) *IncidentHandler {
	return &IncidentHandler{repo: repo, notif: notif, auditRepo: auditRepo}
}

type createIncidentBody struct {
	Category         string             `json:"category"`
	SubCategory      string             `json:"sub_category"`
	Description      string             `json:"description"`
	IncidentDate     string             `json:"incident_date"`
	IncidentLocation string             `json:"incident_location"`
	Evidence         []attachment.Input `json:"evidence"`
}

func (b *createIncidentBody) missingFields() []string {
	var missing []string
	if strings.TrimSpace(b.Category) == "" {
		missing = append(missing, "category")
	}
	if strings.TrimSpace(b.Description) == "" {
		missing = append(missing, "description")
	}
	return missing
}

// Create handles POST /incident-report. Evidence is optional.
func (h *IncidentHandler) Create(c *gin.Context) {
	var body createIncidentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if missing := body.missingFields(); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields", "fields": missing})
		return
	}
	report := &models.IncidentReport{
		UserID:           middleware.GetUserID(c),
		Category:         body.Category,
		SubCategory:      body.SubCategory,
		Description:      body.Description,
		IncidentDate:     body.IncidentDate,
		IncidentLocation: body.IncidentLocation,
		Barangay:         middleware.GetBarangay(c),
		Status:           domain.IncidentNew,
	}
	for i, in := range body.Evidence {
		if in.Empty() {
			continue
		}
		normalized, err := attachment.Normalize(in)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "evidence[" + strconv.Itoa(i) + "]: " + err.Error()})
			return
		}
		report.Evidence = append(report.Evidence, models.IncidentEvidence{
			FileIndex: len(report.Evidence),
			File:      toAttachment(normalized),
		})
	}
	if err := h.repo.Create(report); err != nil {
		logrus.WithError(err).Error("create incident report failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create report"})
		return
	}
	writeAudit(h.auditRepo, c, report.UserID, "incident_created", "incident", body.Category, domain.NotifCategoryRequest)
	c.JSON(http.StatusCreated, gin.H{"report": report})
}

func (h *IncidentHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	var (
		list  []models.IncidentReport
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

func (h *IncidentHandler) MyReports(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.repo.ListByUser(middleware.GetUserID(c), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

// UpdateStatus handles PATCH /incident-report/:id/status (staff).
func (h *IncidentHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, valid := domain.NormalizeIncidentStatus(body.Status)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status: " + body.Status})
		return
	}
	report, err := h.repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load report"})
		}
		return
	}
	report.Status = status
	if err := h.repo.Update(report); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update report"})
		return
	}
	if h.notif != nil && report.UserID != 0 {
		_ = h.notif.Notify(report.UserID, domain.NotifCategoryStatusUpdate,
			"Incident report "+status,
			"Your incident report is now "+status+".",
			domain.KindIncident, report.ID)
	}
	writeAudit(h.auditRepo, c, middleware.GetUserID(c), "incident_status_updated", "incident", status, domain.NotifCategoryStatusUpdate)
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// GetEvidence handles GET /incident-report/:id/evidence/:fileIndex and
// streams the decoded file with its stored content type.
func (h *IncidentHandler) GetEvidence(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	fileIndex, err := strconv.Atoi(c.Param("fileIndex"))
	if err != nil || fileIndex < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file index"})
		return
	}
	report, err := h.repo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	if report.UserID != middleware.GetUserID(c) && !domain.IsStaffRole(middleware.GetRole(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	ev, err := h.repo.GetEvidence(uint(id), fileIndex)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "evidence not found"})
		return
	}
	raw, err := attachment.Decode(ev.File.Data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stored file is corrupt"})
		return
	}
	c.Data(http.StatusOK, ev.File.ContentType, raw)
}

// Delete handles DELETE /incident-report/:id (owner or staff).
func (h *IncidentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	report, err := h.repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load report"})
		}
		return
	}
	if report.UserID != middleware.GetUserID(c) && !domain.IsStaffRole(middleware.GetRole(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	if err := h.repo.Delete(report.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete report"})
		return
	}
	writeAudit(h.auditRepo, c, middleware.GetUserID(c), "incident_deleted", "incident", strconv.Itoa(int(report.ID)), domain.NotifCategorySystem)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
