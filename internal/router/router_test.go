package router

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"baranggo/config"
	"baranggo/internal/auth"
	"baranggo/internal/database"
	"baranggo/internal/domain"
	"baranggo/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	cfg := &config.Config{
		Server:   config.ServerConfig{Env: "test"},
		JWT:      config.JWTConfig{Secret: "test-secret", Expiry: time.Hour, Issuer: "baranggo"},
		Frontend: config.FrontendConfig{BaseURL: "http://localhost:3000"},
		OTP:      config.OTPConfig{Lifetime: 5 * time.Minute},
	}
	return Setup(cfg, db, nil), db, cfg
}

func seedAccount(t *testing.T, db *gorm.DB, cfg *config.Config, email, role, barangay string) (*models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("pass123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.User{
		FirstName:    "Test",
		LastName:     "Account",
		Email:        email,
		Barangay:     barangay,
		PasswordHash: string(hash),
		Role:         role,
		IsVerified:   true,
		IsActive:     true,
	}
	require.NoError(t, db.Create(u).Error)
	token, err := auth.GenerateToken(&cfg.JWT, u.ID, u.Email, u.Barangay, u.Role)
	require.NoError(t, err)
	return u, token
}

func jsonRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCedulaRequestLifecycle(t *testing.T) {
	r, db, cfg := newTestApp(t)
	_, residentToken := seedAccount(t, db, cfg, "resident@example.com", domain.RoleResident, "San Isidro")
	_, secretaryToken := seedAccount(t, db, cfg, "sec@example.com", domain.RoleSecretary, "San Isidro")

	body := map[string]interface{}{
		"name":           "Juan Dela Cruz",
		"date_of_birth":  "1990-04-12",
		"place_of_birth": "Davao City",
		"civil_status":   "Single",
		"occupation":     "Carpenter",
		"payment":        map[string]interface{}{"method": "cash", "amount": 55},
	}

	// no token
	w := jsonRequest(t, r, http.MethodPost, "/api/v1/document-requests/cedula", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// unknown document type
	w = jsonRequest(t, r, http.MethodPost, "/api/v1/document-requests/passport", residentToken, body)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// missing fields are all named at once
	w = jsonRequest(t, r, http.MethodPost, "/api/v1/document-requests/cedula", residentToken, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "date_of_birth")
	assert.Contains(t, w.Body.String(), "payment.method")

	// happy path
	w = jsonRequest(t, r, http.MethodPost, "/api/v1/document-requests/cedula", residentToken, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"Pending"`)

	var created models.Cedula
	require.NoError(t, db.First(&created).Error)
	assert.Equal(t, domain.StatusPending, created.Status)
	assert.False(t, created.IsVerified)

	// staff in the same barangay were notified
	w = jsonRequest(t, r, http.MethodGet, "/api/v1/notifications", secretaryToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"unread_count":1`)

	// residents may not transition statuses
	statusBody := map[string]interface{}{"status": "approved"}
	path := "/api/v1/document-requests/cedula/1/status"
	w = jsonRequest(t, r, http.MethodPatch, path, residentToken, statusBody)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// staff approval
	w = jsonRequest(t, r, http.MethodPatch, path, secretaryToken, statusBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"Approved"`)

	require.NoError(t, db.First(&created).Error)
	assert.True(t, created.IsVerified)
	require.NotNil(t, created.DateApproved)

	// unknown status is rejected with the offending value
	w = jsonRequest(t, r, http.MethodPatch, path, secretaryToken, map[string]interface{}{"status": "shipped"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "shipped")

	// the requester sees their own request
	w = jsonRequest(t, r, http.MethodGet, "/api/v1/document-requests/my-requests", residentToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	// listing all requests is staff-only
	w = jsonRequest(t, r, http.MethodGet, "/api/v1/document-requests", residentToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = jsonRequest(t, r, http.MethodGet, "/api/v1/document-requests", secretaryToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSignupValidation(t *testing.T) {
	r, _, _ := newTestApp(t)

	w := jsonRequest(t, r, http.MethodPost, "/api/v1/auth/signup", "", map[string]interface{}{
		"email": "juan@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "first_name")
	assert.Contains(t, w.Body.String(), "id_front")

	idImage := map[string]interface{}{
		"filename":     "id.png",
		"content_type": "image/png",
		"data":         base64.StdEncoding.EncodeToString([]byte("png bytes")),
	}
	full := map[string]interface{}{
		"first_name":     "Juan",
		"last_name":      "Dela Cruz",
		"email":          "juan@example.com",
		"contact_number": "09171234567",
		"barangay":       "San Isidro",
		"purok":          "Purok 3",
		"password":       "s3cret-pass",
		"id_front":       idImage,
		"id_back":        idImage,
	}
	w = jsonRequest(t, r, http.MethodPost, "/api/v1/auth/signup", "", full)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// duplicate email conflicts
	w = jsonRequest(t, r, http.MethodPost, "/api/v1/auth/signup", "", full)
	assert.Equal(t, http.StatusConflict, w.Code)

	// malformed purok
	bad := map[string]interface{}{}
	for k, v := range full {
		bad[k] = v
	}
	bad["email"] = "other@example.com"
	bad["purok"] = "purok three"
	w = jsonRequest(t, r, http.MethodPost, "/api/v1/auth/signup", "", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarkNotificationsRead(t *testing.T) {
	r, db, cfg := newTestApp(t)
	u, token := seedAccount(t, db, cfg, "resident@example.com", domain.RoleResident, "San Isidro")

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.Notification{
			UserID:   u.ID,
			Title:    "note",
			Message:  "hello",
			Category: domain.NotifCategorySystem,
		}).Error)
	}

	w := jsonRequest(t, r, http.MethodGet, "/api/v1/notifications", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"unread_count":3`)

	// an empty id list marks everything read
	w = jsonRequest(t, r, http.MethodPost, "/api/v1/notifications/mark-read", token, map[string]interface{}{"ids": []uint{}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"unread_count":0`)

	// deleting someone else's notification is a 404
	w = jsonRequest(t, r, http.MethodDelete, "/api/v1/notifications/999", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBlotterReportFlow(t *testing.T) {
	r, db, cfg := newTestApp(t)
	complainant, residentToken := seedAccount(t, db, cfg, "resident@example.com", domain.RoleResident, "San Isidro")
	_, otherToken := seedAccount(t, db, cfg, "other@example.com", domain.RoleResident, "San Isidro")
	_, secretaryToken := seedAccount(t, db, cfg, "sec@example.com", domain.RoleSecretary, "San Isidro")

	proof := map[string]interface{}{
		"filename":     "receipt.png",
		"content_type": "image/png",
		"data":         base64.StdEncoding.EncodeToString([]byte("receipt")),
	}
	body := map[string]interface{}{
		"complainant_name":  "Juan Dela Cruz",
		"respondent_name":   "Pedro Penduko",
		"incident_details":  "Noise complaint past midnight",
		"incident_date":     "2026-08-15",
		"incident_location": "Purok 3",
		"payment":           map[string]interface{}{"method": "gcash", "amount": 100, "reference_number": "GC-777", "proof": proof},
	}

	// the receipt image is required
	noProof := map[string]interface{}{}
	for k, v := range body {
		noProof[k] = v
	}
	noProof["payment"] = map[string]interface{}{"method": "cash", "amount": 100}
	w := jsonRequest(t, r, http.MethodPost, "/api/v1/blotter/report", residentToken, noProof)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "payment.proof")

	w = jsonRequest(t, r, http.MethodPost, "/api/v1/blotter/report", residentToken, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var report models.BlotterReport
	require.NoError(t, db.First(&report).Error)
	assert.Equal(t, domain.BlotterPending, report.Status)
	assert.Equal(t, complainant.ID, report.UserID)

	// another resident cannot touch someone else's report
	w = jsonRequest(t, r, http.MethodPut, "/api/v1/blotter/1", otherToken, map[string]interface{}{"incident_details": "edited"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// residents cannot change status even on their own report
	w = jsonRequest(t, r, http.MethodPut, "/api/v1/blotter/1", residentToken, map[string]interface{}{"status": "resolved"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// staff transition, case-insensitive
	w = jsonRequest(t, r, http.MethodPut, "/api/v1/blotter/1", secretaryToken, map[string]interface{}{"status": "under investigation"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, db.First(&report).Error)
	assert.Equal(t, domain.BlotterInvestigating, report.Status)

	// owner deletes
	w = jsonRequest(t, r, http.MethodDelete, "/api/v1/blotter/1", residentToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.ErrorIs(t, db.First(&models.BlotterReport{}, report.ID).Error, gorm.ErrRecordNotFound)
}

func TestIncidentReportEvidence(t *testing.T) {
	r, db, cfg := newTestApp(t)
	_, residentToken := seedAccount(t, db, cfg, "resident@example.com", domain.RoleResident, "San Isidro")
	_, otherToken := seedAccount(t, db, cfg, "other@example.com", domain.RoleResident, "San Isidro")
	_, secretaryToken := seedAccount(t, db, cfg, "sec@example.com", domain.RoleSecretary, "San Isidro")

	photo := []byte{0x89, 'P', 'N', 'G'}
	body := map[string]interface{}{
		"category":    "road hazard",
		"description": "Open manhole on the main road",
		"evidence": []map[string]interface{}{
			{"filename": "photo.png", "content_type": "image/png", "data": base64.StdEncoding.EncodeToString(photo)},
		},
	}
	w := jsonRequest(t, r, http.MethodPost, "/api/v1/incident-report", residentToken, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// the owner downloads the stored file back byte for byte
	w = jsonRequest(t, r, http.MethodGet, "/api/v1/incident-report/1/evidence/0", residentToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, photo, w.Body.Bytes())

	// staff may view it too, strangers may not
	w = jsonRequest(t, r, http.MethodGet, "/api/v1/incident-report/1/evidence/0", secretaryToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = jsonRequest(t, r, http.MethodGet, "/api/v1/incident-report/1/evidence/0", otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// out-of-range index
	w = jsonRequest(t, r, http.MethodGet, "/api/v1/incident-report/1/evidence/5", residentToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// status transitions are staff-only and validated
	w = jsonRequest(t, r, http.MethodPatch, "/api/v1/incident-report/1/status", residentToken, map[string]interface{}{"status": "resolved"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = jsonRequest(t, r, http.MethodPatch, "/api/v1/incident-report/1/status", secretaryToken, map[string]interface{}{"status": "in progress"})
	require.Equal(t, http.StatusOK, w.Code)

	var report models.IncidentReport
	require.NoError(t, db.First(&report).Error)
	assert.Equal(t, domain.IncidentInProgress, report.Status)

	// my-reports lists only the caller's reports
	w = jsonRequest(t, r, http.MethodGet, "/api/v1/incident-report/my-reports", otherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":0`)
}

func TestStaffCreationIsSuperAdminOnly(t *testing.T) {
	r, db, cfg := newTestApp(t)
	_, secretaryToken := seedAccount(t, db, cfg, "sec@example.com", domain.RoleSecretary, "San Isidro")
	_, adminToken := seedAccount(t, db, cfg, "admin@example.com", domain.RoleSuperAdmin, "")

	body := map[string]interface{}{
		"first_name":     "Pedro",
		"last_name":      "Reyes",
		"email":          "pedro@example.com",
		"contact_number": "09170000000",
		"barangay":       "San Isidro",
		"password":       "staff-pass",
	}

	w := jsonRequest(t, r, http.MethodPost, "/api/v1/users/secretary", secretaryToken, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = jsonRequest(t, r, http.MethodPost, "/api/v1/users/secretary", adminToken, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var staff models.User
	require.NoError(t, db.Where("email = ?", "pedro@example.com").First(&staff).Error)
	assert.Equal(t, domain.RoleSecretary, staff.Role)
	assert.True(t, staff.IsVerified)
}
