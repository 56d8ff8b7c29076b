package database

import (
	"os"

	"baranggo/config"
	"baranggo/internal/domain"
	"baranggo/internal/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Notification{},
		&models.BarangayClearance{},
		&models.BarangayIndigency{},
		&models.BusinessClearance{},
		&models.Cedula{},
		&models.BlotterReport{},
		&models.IncidentReport{},
		&models.IncidentEvidence{},
		&models.TransactionHistory{},
		&models.AuditLog{},
		&models.OTPCode{},
		&models.EmailVerification{},
	)
}

// SeedSuperAdmin creates the initial superAdmin account when none exists.
// Credentials come from SUPERADMIN_EMAIL / SUPERADMIN_PASSWORD.
func SeedSuperAdmin(db *gorm.DB) {
	email := os.Getenv("SUPERADMIN_EMAIL")
	password := os.Getenv("SUPERADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}
	var count int64
	db.Model(&models.User{}).Where("role = ?", domain.RoleSuperAdmin).Count(&count)
	if count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("seed: hash superadmin password")
		return
	}
	admin := &models.User{
		FirstName:    "Super",
		LastName:     "Admin",
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleSuperAdmin,
		Barangay:     os.Getenv("SUPERADMIN_BARANGAY"),
		IsVerified:   true,
		IsActive:     true,
	}
	if err := db.Create(admin).Error; err != nil {
		logrus.WithError(err).Error("seed: create superadmin")
		return
	}
	logrus.WithField("email", email).Info("seeded superAdmin account")
}
