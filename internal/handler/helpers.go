package handler

import (
	"strconv"

	"baranggo/internal/models"
	"baranggo/internal/repository"
	"baranggo/pkg/attachment"

	"github.com/gin-gonic/gin"
)

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// writeAudit appends an audit row; audit failures never surface to clients.
func writeAudit(repo *repository.AuditLogRepository, c *gin.Context, userID uint, action, resource, detail, category string) {
	if repo == nil {
		return
	}
	actor := userID
	_ = repo.Create(&models.AuditLog{
		UserID:    &actor,
		Action:    action,
		Resource:  resource,
		Detail:    detail,
		Category:  category,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
}

func toAttachment(in attachment.Input) models.Attachment {
	return models.Attachment{
		Filename:    in.Filename,
		ContentType: in.ContentType,
		Data:        in.Data,
	}
}
