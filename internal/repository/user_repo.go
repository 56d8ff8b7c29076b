package repository

import (
	"baranggo/internal/domain"
	"baranggo/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var u models.User
	err := r.db.First(&u, id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var u models.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(u *models.User) error {
	return r.db.Save(u).Error
}

// ListActiveStaffByBarangay returns active secretaries and chairmen in the
// given barangay, matched case-insensitively. Fan-out is always scoped to
// the requester's barangay.
func (r *UserRepository) ListActiveStaffByBarangay(barangay string) ([]models.User, error) {
	var staff []models.User
	err := r.db.
		Where("LOWER(barangay) = LOWER(?)", barangay).
		Where("role IN ?", []string{domain.RoleSecretary, domain.RoleChairman}).
		Where("is_active = ?", true).
		Find(&staff).Error
	return staff, err
}

func (r *UserRepository) List(role, barangay, search string, page, limit int) ([]models.User, int64, error) {
	q := r.db.Model(&models.User{})
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if barangay != "" {
		q = q.Where("LOWER(barangay) = LOWER(?)", barangay)
	}
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ?", like, like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []models.User
	err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&users).Error
	return users, total, err
}
