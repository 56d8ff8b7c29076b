package service

import (
	"testing"
	"time"

	"baranggo/internal/domain"
	"baranggo/internal/models"
	"baranggo/internal/repository"

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
		&models.Notification{},
		&models.BarangayClearance{},
		&models.BarangayIndigency{},
		&models.BusinessClearance{},
		&models.Cedula{},
		&models.TransactionHistory{},
		&models.OTPCode{},
		&models.EmailVerification{},
	))
	return db
}

func newRequestService(t *testing.T, db *gorm.DB) (*RequestService, *repository.NotificationRepository, *repository.UserRepository) {
	t.Helper()
	notifRepo := repository.NewNotificationRepository(db)
	userRepo := repository.NewUserRepository(db)
	notifSvc := NewNotificationService(notifRepo, userRepo, nil)
	svc := NewRequestService(db, repository.NewRequestRepository(db), repository.NewHistoryRepository(db), notifSvc)
	return svc, notifRepo, userRepo
}

func seedUser(t *testing.T, repo *repository.UserRepository, email, role, barangay string, active bool) *models.User {
	t.Helper()
	u := &models.User{
		FirstName:    "Juan",
		LastName:     "Dela Cruz",
		Email:        email,
		Barangay:     barangay,
		Purok:        "Purok 1",
		PasswordHash: "x",
		Role:         role,
		IsVerified:   true,
		IsActive:     active,
	}
	require.NoError(t, repo.Create(u))
	return u
}

func TestCreateSetsPendingAndWritesHistory(t *testing.T) {
	db := newTestDB(t)
	svc, _, userRepo := newRequestService(t, db)
	resident := seedUser(t, userRepo, "resident@example.com", domain.RoleResident, "San Isidro", true)

	req := &models.Cedula{
		RequestCore: models.RequestCore{
			UserID:        resident.ID,
			RequesterName: "Juan Dela Cruz",
			Email:         resident.Email,
			Barangay:      "San Isidro",
			Status:        "Completed", // client-supplied status must be ignored
			Payment:       models.Payment{Method: domain.PaymentCash, Amount: 55},
		},
		DateOfBirth:  "1990-04-12",
		PlaceOfBirth: "Davao City",
		CivilStatus:  "Single",
		Occupation:   "Carpenter",
	}
	require.NoError(t, svc.Create(req))

	assert.Equal(t, domain.StatusPending, req.Status)
	assert.False(t, req.IsVerified)
	assert.NotZero(t, req.ID)

	var h models.TransactionHistory
	require.NoError(t, db.Where("request_kind = ? AND request_id = ?", domain.KindCedula, req.ID).First(&h).Error)
	assert.Equal(t, "created", h.Action)
	assert.Equal(t, "Cedula", h.RequestedDocument)
	assert.Equal(t, domain.StatusPending, h.Status)
	assert.Equal(t, "San Isidro", h.Barangay)
}

func TestCreateFansOutToBarangayStaffOnly(t *testing.T) {
	db := newTestDB(t)
	svc, notifRepo, userRepo := newRequestService(t, db)

	resident := seedUser(t, userRepo, "resident@example.com", domain.RoleResident, "San Isidro", true)
	secretary := seedUser(t, userRepo, "sec@example.com", domain.RoleSecretary, "san isidro", true)
	chairman := seedUser(t, userRepo, "cap@example.com", domain.RoleChairman, "San Isidro", true)
	outsider := seedUser(t, userRepo, "other@example.com", domain.RoleSecretary, "Poblacion", true)
	inactive := seedUser(t, userRepo, "old@example.com", domain.RoleSecretary, "San Isidro", false)

	req := &models.BarangayClearance{
		RequestCore: models.RequestCore{
			UserID:        resident.ID,
			RequesterName: "Juan Dela Cruz",
			Email:         resident.Email,
			Barangay:      "San Isidro",
			Payment:       models.Payment{Method: domain.PaymentGCash, Amount: 50, ReferenceNumber: "GC-123"},
		},
		Purpose: "employment",
	}
	require.NoError(t, svc.Create(req))

	for _, tc := range []struct {
		user *models.User
		want int64
	}{
		{resident, 1},
		{secretary, 1},
		{chairman, 1},
		{outsider, 0},
		{inactive, 0},
	} {
		unread, err := notifRepo.CountUnread(tc.user.ID)
		require.NoError(t, err)
		assert.Equal(t, tc.want, unread, "user %s", tc.user.Email)
	}
}

func TestUpdateStatusStampsDatesOnce(t *testing.T) {
	db := newTestDB(t)
	svc, _, userRepo := newRequestService(t, db)
	resident := seedUser(t, userRepo, "resident@example.com", domain.RoleResident, "San Isidro", true)

	req := &models.BarangayIndigency{
		RequestCore: models.RequestCore{
			UserID:        resident.ID,
			RequesterName: "Juan Dela Cruz",
			Email:         resident.Email,
			Barangay:      "San Isidro",
			Payment:       models.Payment{Method: domain.PaymentCash},
		},
		Purpose: "medical assistance",
	}
	require.NoError(t, svc.Create(req))

	updated, err := svc.UpdateStatus(domain.KindBarangayIndigency, req.ID, "approved", "Maria Santos")
	require.NoError(t, err)
	core := updated.Core()
	assert.Equal(t, domain.StatusApproved, core.Status)
	assert.True(t, core.IsVerified)
	assert.Equal(t, "Maria Santos", core.ApprovedBy)
	require.NotNil(t, core.DateApproved)
	firstApproved := *core.DateApproved

	updated, err = svc.UpdateStatus(domain.KindBarangayIndigency, req.ID, "For Pickup", "Maria Santos")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusForPickup, updated.Core().Status)
	assert.Nil(t, updated.Core().DateCompleted)

	updated, err = svc.UpdateStatus(domain.KindBarangayIndigency, req.ID, "completed", "Maria Santos")
	require.NoError(t, err)
	core = updated.Core()
	assert.Equal(t, domain.StatusCompleted, core.Status)
	require.NotNil(t, core.DateApproved)
	require.NotNil(t, core.DateCompleted)
	assert.WithinDuration(t, firstApproved, *core.DateApproved, time.Second)

	var h models.TransactionHistory
	require.NoError(t, db.Where("request_kind = ? AND request_id = ?", domain.KindBarangayIndigency, req.ID).First(&h).Error)
	assert.Equal(t, domain.StatusCompleted, h.Status)
	assert.Equal(t, "status_updated", h.Action)
	assert.Equal(t, "Maria Santos", h.ApprovedBy)
	require.NotNil(t, h.DateCompleted)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	db := newTestDB(t)
	svc, _, userRepo := newRequestService(t, db)
	resident := seedUser(t, userRepo, "resident@example.com", domain.RoleResident, "San Isidro", true)

	req := &models.BusinessClearance{
		RequestCore: models.RequestCore{
			UserID:        resident.ID,
			RequesterName: "Juan Dela Cruz",
			Email:         resident.Email,
			Barangay:      "San Isidro",
			Payment:       models.Payment{Method: domain.PaymentCash},
		},
		BusinessName:    "Juan's Sari-Sari",
		BusinessNature:  "retail",
		BusinessAddress: "Purok 1, San Isidro",
	}
	require.NoError(t, svc.Create(req))

	_, err := svc.UpdateStatus(domain.KindBusinessClearance, req.ID, "shipped", "Maria Santos")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Contains(t, err.Error(), `"shipped"`)

	var reloaded models.BusinessClearance
	require.NoError(t, db.First(&reloaded, req.ID).Error)
	assert.Equal(t, domain.StatusPending, reloaded.Status)
	assert.False(t, reloaded.IsVerified)
	assert.Nil(t, reloaded.DateApproved)
}

func TestUpdateStatusMissingRequest(t *testing.T) {
	db := newTestDB(t)
	svc, _, _ := newRequestService(t, db)

	_, err := svc.UpdateStatus(domain.KindCedula, 999, "approved", "Maria Santos")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
