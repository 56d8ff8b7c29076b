package repository

import (
	"sort"

	"baranggo/internal/domain"
	"baranggo/internal/models"

	"gorm.io/gorm"
)

// RequestRepository covers all four document request tables behind the
// models.DocumentRequest interface.
type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(tx *gorm.DB, req models.DocumentRequest) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(req).Error
}

func (r *RequestRepository) Save(tx *gorm.DB, req models.DocumentRequest) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Save(req).Error
}

func (r *RequestRepository) GetByKindID(tx *gorm.DB, kind string, id uint) (models.DocumentRequest, error) {
	if tx == nil {
		tx = r.db
	}
	req := models.NewRequestByKind(kind)
	if req == nil {
		return nil, gorm.ErrRecordNotFound
	}
	if err := tx.First(req, id).Error; err != nil {
		return nil, err
	}
	return req, nil
}

// RequestSummary is the cross-kind listing row.
type RequestSummary struct {
	Kind string                 `json:"kind"`
	Core models.RequestCore     `json:"request"`
	Doc  models.DocumentRequest `json:"document"`
}

type RequestFilter struct {
	Kind     string
	Status   string
	Barangay string
	UserID   uint
	Email    string
}

// List queries each request table that matches the filter, merges the rows,
// and pages over the merged set ordered by creation time descending.
func (r *RequestRepository) List(f RequestFilter, page, limit int) ([]RequestSummary, int64, error) {
	kinds := domain.DocumentKinds
	if f.Kind != "" {
		kinds = []string{f.Kind}
	}
	var merged []RequestSummary
	var total int64
	for _, kind := range kinds {
		rows, count, err := r.listKind(kind, f)
		if err != nil {
			return nil, 0, err
		}
		total += count
		merged = append(merged, rows...)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Core.CreatedAt.After(merged[j].Core.CreatedAt)
	})
	start := (page - 1) * limit
	if start >= len(merged) {
		return []RequestSummary{}, total, nil
	}
	end := start + limit
	if end > len(merged) {
		end = len(merged)
	}
	return merged[start:end], total, nil
}

func (r *RequestRepository) listKind(kind string, f RequestFilter) ([]RequestSummary, int64, error) {
	q := r.db.Model(models.NewRequestByKind(kind))
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Barangay != "" {
		q = q.Where("LOWER(barangay) = LOWER(?)", f.Barangay)
	}
	if f.UserID != 0 {
		if f.Email != "" {
			q = q.Where("user_id = ? OR email = ?", f.UserID, f.Email)
		} else {
			q = q.Where("user_id = ?", f.UserID)
		}
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	var out []RequestSummary
	switch kind {
	case domain.KindBarangayClearance:
		var rows []models.BarangayClearance
		if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
			return nil, 0, err
		}
		for i := range rows {
			out = append(out, RequestSummary{Kind: kind, Core: rows[i].RequestCore, Doc: &rows[i]})
		}
	case domain.KindBarangayIndigency:
		var rows []models.BarangayIndigency
		if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
			return nil, 0, err
		}
		for i := range rows {
			out = append(out, RequestSummary{Kind: kind, Core: rows[i].RequestCore, Doc: &rows[i]})
		}
	case domain.KindBusinessClearance:
		var rows []models.BusinessClearance
		if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
			return nil, 0, err
		}
		for i := range rows {
			out = append(out, RequestSummary{Kind: kind, Core: rows[i].RequestCore, Doc: &rows[i]})
		}
	case domain.KindCedula:
		var rows []models.Cedula
		if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
			return nil, 0, err
		}
		for i := range rows {
			out = append(out, RequestSummary{Kind: kind, Core: rows[i].RequestCore, Doc: &rows[i]})
		}
	}
	return out, count, nil
}
