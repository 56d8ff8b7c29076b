package repository

import (
	"baranggo/internal/models"

	"gorm.io/gorm"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Create(tx *gorm.DB, h *models.TransactionHistory) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(h).Error
}

// GetByRequest locates the history row for a request by (kind, id).
func (r *HistoryRepository) GetByRequest(tx *gorm.DB, kind string, requestID uint) (*models.TransactionHistory, error) {
	if tx == nil {
		tx = r.db
	}
	var h models.TransactionHistory
	err := tx.Where("request_kind = ? AND request_id = ?", kind, requestID).First(&h).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *HistoryRepository) Save(tx *gorm.DB, h *models.TransactionHistory) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Save(h).Error
}

func (r *HistoryRepository) ListByBarangay(barangay string, page, limit int) ([]models.TransactionHistory, int64, error) {
	q := r.db.Model(&models.TransactionHistory{})
	if barangay != "" {
		q = q.Where("LOWER(barangay) = LOWER(?)", barangay)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.TransactionHistory
	err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}
