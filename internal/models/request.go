package models

import (
	"time"

	"baranggo/internal/domain"
)

// RequestCore carries the fields shared by all four document request kinds:
// requester identity, locality, payment, and the status lifecycle
// (Pending -> Approved -> For Pickup -> Completed, or Rejected).
type RequestCore struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"index" json:"user_id"`
	RequesterName string     `gorm:"size:255;not null" json:"requester_name"`
	Email         string     `gorm:"size:255;index" json:"email"`
	Barangay      string     `gorm:"size:100;not null;index" json:"barangay"`
	Status        string     `gorm:"size:20;not null;index;default:'Pending'" json:"status"`
	IsVerified    bool       `gorm:"default:false" json:"is_verified"`
	Payment       Payment    `gorm:"embedded;embeddedPrefix:payment_" json:"payment"`
	ApprovedBy    string     `gorm:"size:255" json:"approved_by,omitempty"`
	DateApproved  *time.Time `json:"date_approved"`
	DateCompleted *time.Time `json:"date_completed"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// DocumentRequest is implemented by the four request models so the
// lifecycle service can treat them uniformly.
type DocumentRequest interface {
	Core() *RequestCore
	Kind() string
}

type BarangayClearance struct {
	RequestCore
	Purpose string `gorm:"size:255;not null" json:"purpose"`
}

func (BarangayClearance) TableName() string { return "barangay_clearances" }
func (r *BarangayClearance) Core() *RequestCore { return &r.RequestCore }
func (BarangayClearance) Kind() string { return domain.KindBarangayClearance }

type BarangayIndigency struct {
	RequestCore
	Purpose string `gorm:"size:255;not null" json:"purpose"`
}

func (BarangayIndigency) TableName() string { return "barangay_indigencies" }
func (r *BarangayIndigency) Core() *RequestCore { return &r.RequestCore }
func (BarangayIndigency) Kind() string { return domain.KindBarangayIndigency }

type BusinessClearance struct {
	RequestCore
	BusinessName    string `gorm:"size:255;not null" json:"business_name"`
	BusinessNature  string `gorm:"size:255;not null" json:"business_nature"`
	BusinessAddress string `gorm:"size:500;not null" json:"business_address"`
}

func (BusinessClearance) TableName() string { return "business_clearances" }
func (r *BusinessClearance) Core() *RequestCore { return &r.RequestCore }
func (BusinessClearance) Kind() string { return domain.KindBusinessClearance }

type Cedula struct {
	RequestCore
	DateOfBirth  string  `gorm:"size:20;not null" json:"date_of_birth"`
	PlaceOfBirth string  `gorm:"size:255;not null" json:"place_of_birth"`
	CivilStatus  string  `gorm:"size:50;not null" json:"civil_status"`
	Occupation   string  `gorm:"size:100;not null" json:"occupation"`
	Tax          float64 `json:"tax"`
}

func (Cedula) TableName() string { return "cedulas" }
func (r *Cedula) Core() *RequestCore { return &r.RequestCore }
func (Cedula) Kind() string { return domain.KindCedula }

// NewRequestByKind returns a zero value of the model for kind, or nil for
// an unknown kind.
func NewRequestByKind(kind string) DocumentRequest {
	switch kind {
	case domain.KindBarangayClearance:
		return &BarangayClearance{}
	case domain.KindBarangayIndigency:
		return &BarangayIndigency{}
	case domain.KindBusinessClearance:
		return &BusinessClearance{}
	case domain.KindCedula:
		return &Cedula{}
	}
	return nil
}
