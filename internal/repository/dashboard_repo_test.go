package repository

import (
	"testing"

	"baranggo/internal/domain"
	"baranggo/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.BarangayClearance{},
		&models.BarangayIndigency{},
		&models.BusinessClearance{},
		&models.Cedula{},
		&models.BlotterReport{},
		&models.IncidentReport{},
	))
	return db
}

func seedClearance(t *testing.T, db *gorm.DB, barangay, status, method string, amount float64) {
	t.Helper()
	require.NoError(t, db.Create(&models.BarangayClearance{
		RequestCore: models.RequestCore{
			RequesterName: "Juan Dela Cruz",
			Barangay:      barangay,
			Status:        status,
			Payment:       models.Payment{Method: method, Amount: amount},
		},
		Purpose: "employment",
	}).Error)
}

func TestTreasurerStatsSumCompletedOnly(t *testing.T) {
	db := newTestDB(t)
	repo := NewDashboardRepository(db)

	seedClearance(t, db, "San Isidro", domain.StatusCompleted, domain.PaymentCash, 50)
	seedClearance(t, db, "San Isidro", domain.StatusCompleted, domain.PaymentGCash, 75)
	seedClearance(t, db, "San Isidro", domain.StatusPending, domain.PaymentCash, 200) // not collected yet
	seedClearance(t, db, "Poblacion", domain.StatusCompleted, domain.PaymentCash, 999)
	require.NoError(t, db.Create(&models.Cedula{
		RequestCore: models.RequestCore{
			RequesterName: "Maria Santos",
			Barangay:      "San Isidro",
			Status:        domain.StatusCompleted,
			Payment:       models.Payment{Method: domain.PaymentCash, Amount: 55},
		},
		DateOfBirth: "1990-01-01", PlaceOfBirth: "Davao City", CivilStatus: "Single", Occupation: "Nurse",
	}).Error)

	s, err := repo.GetTreasurerStats("San Isidro")
	require.NoError(t, err)
	assert.Equal(t, 125.0, s.CollectedByKind[domain.KindBarangayClearance])
	assert.Equal(t, 55.0, s.CollectedByKind[domain.KindCedula])
	assert.Equal(t, 180.0, s.TotalCollected)
	assert.Equal(t, 105.0, s.CollectedByMethod[domain.PaymentCash])
	assert.Equal(t, 75.0, s.CollectedByMethod[domain.PaymentGCash])
	assert.Equal(t, int64(3), s.CompletedRequests)
}

func TestDashboardStatsScopedToBarangay(t *testing.T) {
	db := newTestDB(t)
	repo := NewDashboardRepository(db)

	require.NoError(t, db.Create(&models.User{
		FirstName: "Juan", LastName: "Dela Cruz", Email: "r1@example.com",
		Barangay: "San Isidro", Role: domain.RoleResident, IsActive: true,
	}).Error)
	require.NoError(t, db.Create(&models.User{
		FirstName: "Ana", LastName: "Lim", Email: "r2@example.com",
		Barangay: "Poblacion", Role: domain.RoleResident, IsActive: true,
	}).Error)
	seedClearance(t, db, "San Isidro", domain.StatusPending, domain.PaymentCash, 50)
	seedClearance(t, db, "Poblacion", domain.StatusPending, domain.PaymentCash, 50)
	require.NoError(t, db.Create(&models.BlotterReport{
		ComplainantName: "Juan Dela Cruz", RespondentName: "Pedro Penduko",
		IncidentDetails: "dispute", Barangay: "San Isidro", Status: domain.BlotterPending,
	}).Error)

	s, err := repo.GetStats("san isidro")
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.TotalResidents)
	assert.Equal(t, int64(1), s.PendingResidents)
	assert.Equal(t, int64(1), s.RequestsByKind[domain.KindBarangayClearance])
	assert.Equal(t, int64(1), s.PendingRequests)
	assert.Equal(t, int64(1), s.BlotterReports)
	assert.Equal(t, int64(1), s.OpenBlotterReports)

	// empty scope sees everything
	all, err := repo.GetStats("")
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.TotalResidents)
	assert.Equal(t, int64(2), all.PendingRequests)
}

func TestRequestListMergesKinds(t *testing.T) {
	db := newTestDB(t)
	repo := NewRequestRepository(db)

	seedClearance(t, db, "San Isidro", domain.StatusPending, domain.PaymentCash, 50)
	require.NoError(t, db.Create(&models.Cedula{
		RequestCore: models.RequestCore{
			RequesterName: "Maria Santos",
			Barangay:      "San Isidro",
			Status:        domain.StatusPending,
			Payment:       models.Payment{Method: domain.PaymentCash},
		},
		DateOfBirth: "1990-01-01", PlaceOfBirth: "Davao City", CivilStatus: "Single", Occupation: "Nurse",
	}).Error)
	seedClearance(t, db, "Poblacion", domain.StatusPending, domain.PaymentCash, 50)

	list, total, err := repo.List(RequestFilter{Barangay: "San Isidro"}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 2)
	kinds := map[string]bool{}
	for _, row := range list {
		kinds[row.Kind] = true
	}
	assert.True(t, kinds[domain.KindBarangayClearance])
	assert.True(t, kinds[domain.KindCedula])

	// filtering by kind narrows to one table
	list, total, err = repo.List(RequestFilter{Kind: domain.KindCedula}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "Maria Santos", list[0].Core.RequesterName)

	// paging past the end returns an empty page, not an error
	list, total, err = repo.List(RequestFilter{}, 5, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Empty(t, list)
}
