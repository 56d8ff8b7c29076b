package handler

import (
	"net/http"

	"baranggo/internal/domain"
	"baranggo/internal/middleware"
	"baranggo/internal/repository"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	repo        *repository.DashboardRepository
	historyRepo *repository.HistoryRepository
	auditRepo   *repository.AuditLogRepository
}

func NewDashboardHandler(repo *repository.DashboardRepository, historyRepo *repository.HistoryRepository, auditRepo *repository.AuditLogRepository) *DashboardHandler {
	return &DashboardHandler{repo: repo, historyRepo: historyRepo, auditRepo: auditRepo}
}

func (h *DashboardHandler) scopedBarangay(c *gin.Context) string {
	if middleware.GetRole(c) == domain.RoleSuperAdmin {
		return c.Query("barangay")
	}
	return middleware.GetBarangay(c)
}

// Stats handles GET /dashboard/stats (staff).
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.repo.GetStats(h.scopedBarangay(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// TreasurerDashboard handles GET /treasurer/dashboard (treasurer only).
func (h *DashboardHandler) TreasurerDashboard(c *gin.Context) {
	stats, err := h.repo.GetTreasurerStats(middleware.GetBarangay(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// TransactionHistory handles GET /dashboard/transactions (staff).
func (h *DashboardHandler) TransactionHistory(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.historyRepo.ListByBarangay(h.scopedBarangay(c), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list transactions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

// Logs handles GET /logs (superAdmin).
func (h *DashboardHandler) Logs(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.auditRepo.List(c.Query("category"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list logs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}
