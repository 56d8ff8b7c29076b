package models

import (
	"time"

	"gorm.io/gorm"
)

type BlotterReport struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	UserID           uint           `gorm:"index" json:"user_id"`
	ComplainantName  string         `gorm:"size:255;not null" json:"complainant_name"`
	RespondentName   string         `gorm:"size:255;not null" json:"respondent_name"`
	IncidentDetails  string         `gorm:"type:text;not null" json:"incident_details"`
	IncidentDate     string         `gorm:"size:20" json:"incident_date"`
	IncidentLocation string         `gorm:"size:255" json:"incident_location"`
	Barangay         string         `gorm:"size:100;not null;index" json:"barangay"`
	Evidence         Attachment     `gorm:"embedded;embeddedPrefix:evidence_" json:"evidence"`
	Payment          Payment        `gorm:"embedded;embeddedPrefix:payment_" json:"payment"`
	Status           string         `gorm:"size:30;not null;index;default:'Pending'" json:"status"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (BlotterReport) TableName() string {
	return "blotter_reports"
}
