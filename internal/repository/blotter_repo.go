package repository

import (
	"baranggo/internal/models"

	"gorm.io/gorm"
)

type BlotterRepository struct {
	db *gorm.DB
}

func NewBlotterRepository(db *gorm.DB) *BlotterRepository {
	return &BlotterRepository{db: db}
}

func (r *BlotterRepository) Create(b *models.BlotterReport) error {
	return r.db.Create(b).Error
}

func (r *BlotterRepository) GetByID(id uint) (*models.BlotterReport, error) {
	var b models.BlotterReport
	if err := r.db.First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BlotterRepository) Update(b *models.BlotterReport) error {
	return r.db.Save(b).Error
}

func (r *BlotterRepository) Delete(id uint) error {
	return r.db.Delete(&models.BlotterReport{}, id).Error
}

func (r *BlotterRepository) ListByBarangay(barangay string, page, limit int) ([]models.BlotterReport, int64, error) {
	q := r.db.Model(&models.BlotterReport{}).Where("LOWER(barangay) = LOWER(?)", barangay)
	return r.list(q, page, limit)
}

func (r *BlotterRepository) ListByUser(userID uint, page, limit int) ([]models.BlotterReport, int64, error) {
	q := r.db.Model(&models.BlotterReport{}).Where("user_id = ?", userID)
	return r.list(q, page, limit)
}

func (r *BlotterRepository) list(q *gorm.DB, page, limit int) ([]models.BlotterReport, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.BlotterReport
	err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}
