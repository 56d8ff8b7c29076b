package repository

import (
	"baranggo/internal/domain"
	"baranggo/internal/models"

	"gorm.io/gorm"
)

type DashboardStats struct {
	TotalResidents     int64            `json:"total_residents"`
	PendingResidents   int64            `json:"pending_residents"`
	RequestsByKind     map[string]int64 `json:"requests_by_kind"`
	PendingRequests    int64            `json:"pending_requests"`
	ApprovedRequests   int64            `json:"approved_requests"`
	CompletedRequests  int64            `json:"completed_requests"`
	BlotterReports     int64            `json:"blotter_reports"`
	OpenBlotterReports int64            `json:"open_blotter_reports"`
	IncidentReports    int64            `json:"incident_reports"`
	NewIncidentReports int64            `json:"new_incident_reports"`
}

type TreasurerStats struct {
	CollectedByKind   map[string]float64 `json:"collected_by_kind"`
	CollectedByMethod map[string]float64 `json:"collected_by_method"`
	TotalCollected    float64            `json:"total_collected"`
	CompletedRequests int64              `json:"completed_requests"`
}

type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// GetStats aggregates counts for the staff dashboard, scoped to a barangay.
func (r *DashboardRepository) GetStats(barangay string) (*DashboardStats, error) {
	s := &DashboardStats{RequestsByKind: make(map[string]int64)}
	scope := func(q *gorm.DB) *gorm.DB {
		if barangay != "" {
			return q.Where("LOWER(barangay) = LOWER(?)", barangay)
		}
		return q
	}

	scope(r.db.Model(&models.User{}).Where("role = ?", domain.RoleResident)).Count(&s.TotalResidents)
	scope(r.db.Model(&models.User{}).Where("role = ? AND is_verified = ?", domain.RoleResident, false)).Count(&s.PendingResidents)

	for _, kind := range domain.DocumentKinds {
		var kindTotal int64
		scope(r.db.Model(models.NewRequestByKind(kind))).Count(&kindTotal)
		s.RequestsByKind[kind] = kindTotal

		var byStatus int64
		scope(r.db.Model(models.NewRequestByKind(kind)).Where("status = ?", domain.StatusPending)).Count(&byStatus)
		s.PendingRequests += byStatus
		scope(r.db.Model(models.NewRequestByKind(kind)).Where("status = ?", domain.StatusApproved)).Count(&byStatus)
		s.ApprovedRequests += byStatus
		scope(r.db.Model(models.NewRequestByKind(kind)).Where("status = ?", domain.StatusCompleted)).Count(&byStatus)
		s.CompletedRequests += byStatus
	}

	scope(r.db.Model(&models.BlotterReport{})).Count(&s.BlotterReports)
	scope(r.db.Model(&models.BlotterReport{}).Where("status IN ?", []string{domain.BlotterPending, domain.BlotterInvestigating})).Count(&s.OpenBlotterReports)
	scope(r.db.Model(&models.IncidentReport{})).Count(&s.IncidentReports)
	scope(r.db.Model(&models.IncidentReport{}).Where("status = ?", domain.IncidentNew)).Count(&s.NewIncidentReports)

	return s, nil
}

// GetTreasurerStats sums payment amounts of completed requests per kind and
// per payment method.
func (r *DashboardRepository) GetTreasurerStats(barangay string) (*TreasurerStats, error) {
	s := &TreasurerStats{
		CollectedByKind:   make(map[string]float64),
		CollectedByMethod: make(map[string]float64),
	}
	methods := []string{domain.PaymentCash, domain.PaymentGCash, domain.PaymentPayMaya}
	for _, kind := range domain.DocumentKinds {
		q := r.db.Model(models.NewRequestByKind(kind)).Where("status = ?", domain.StatusCompleted)
		if barangay != "" {
			q = q.Where("LOWER(barangay) = LOWER(?)", barangay)
		}

		var sum struct{ Total float64 }
		if err := q.Session(&gorm.Session{}).Select("COALESCE(SUM(payment_amount), 0) as total").Scan(&sum).Error; err != nil {
			return nil, err
		}
		s.CollectedByKind[kind] = sum.Total
		s.TotalCollected += sum.Total

		var count int64
		if err := q.Session(&gorm.Session{}).Count(&count).Error; err != nil {
			return nil, err
		}
		s.CompletedRequests += count

		for _, method := range methods {
			var bySum struct{ Total float64 }
			if err := q.Session(&gorm.Session{}).Where("payment_method = ?", method).
				Select("COALESCE(SUM(payment_amount), 0) as total").Scan(&bySum).Error; err != nil {
				return nil, err
			}
			s.CollectedByMethod[method] += bySum.Total
		}
	}
	return s, nil
}
