package repository

import (
	"baranggo/internal/models"

	"gorm.io/gorm"
)

type IncidentRepository struct {
	db *gorm.DB
}

func NewIncidentRepository(db *gorm.DB) *IncidentRepository {
	return &IncidentRepository{db: db}
}

func (r *IncidentRepository) Create(report *models.IncidentReport) error {
	return r.db.Create(report).Error
}

func (r *IncidentRepository) GetByID(id uint) (*models.IncidentReport, error) {
	var report models.IncidentReport
	if err := r.db.Preload("Evidence").First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *IncidentRepository) Update(report *models.IncidentReport) error {
	return r.db.Save(report).Error
}

func (r *IncidentRepository) Delete(id uint) error {
	return r.db.Delete(&models.IncidentReport{}, id).Error
}

// GetEvidence returns the evidence file at fileIndex for a report.
func (r *IncidentRepository) GetEvidence(reportID uint, fileIndex int) (*models.IncidentEvidence, error) {
	var ev models.IncidentEvidence
	err := r.db.Where("incident_report_id = ? AND file_index = ?", reportID, fileIndex).First(&ev).Error
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *IncidentRepository) ListByBarangay(barangay string, page, limit int) ([]models.IncidentReport, int64, error) {
	q := r.db.Model(&models.IncidentReport{}).Where("LOWER(barangay) = LOWER(?)", barangay)
	return r.list(q, page, limit)
}

func (r *IncidentRepository) ListByUser(userID uint, page, limit int) ([]models.IncidentReport, int64, error) {
	q := r.db.Model(&models.IncidentReport{}).Where("user_id = ?", userID)
	return r.list(q, page, limit)
}

func (r *IncidentRepository) list(q *gorm.DB, page, limit int) ([]models.IncidentReport, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.IncidentReport
	err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}
