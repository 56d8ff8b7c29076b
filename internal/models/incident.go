package models

import (
	"time"

	"gorm.io/gorm"
)

type IncidentReport struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	UserID           uint           `gorm:"not null;index" json:"user_id"`
	Category         string         `gorm:"size:100;not null" json:"category"`
	SubCategory      string         `gorm:"size:100" json:"sub_category"`
	Description      string         `gorm:"type:text;not null" json:"description"`
	IncidentDate     string         `gorm:"size:20" json:"incident_date"`
	IncidentLocation string         `gorm:"size:255" json:"incident_location"`
	Barangay         string         `gorm:"size:100;not null;index" json:"barangay"`
	Status           string         `gorm:"size:20;not null;index;default:'New'" json:"status"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	Evidence []IncidentEvidence `gorm:"foreignKey:IncidentReportID" json:"evidence,omitempty"`
	User     User               `gorm:"foreignKey:UserID" json:"-"`
}

func (IncidentReport) TableName() string {
	return "incident_reports"
}

// IncidentEvidence stores one uploaded evidence file per row; FileIndex is
// the position exposed by GET .../evidence/:fileIndex.
type IncidentEvidence struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	IncidentReportID uint       `gorm:"not null;index" json:"incident_report_id"`
	FileIndex        int        `gorm:"not null" json:"file_index"`
	File             Attachment `gorm:"embedded" json:"file"`
	CreatedAt        time.Time  `json:"created_at"`
}

func (IncidentEvidence) TableName() string {
	return "incident_evidence"
}
