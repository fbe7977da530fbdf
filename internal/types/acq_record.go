package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AcqClassRecord wraps one uploaded subject-specific cohort. Students holds
// the parsed []AcqStudent as jsonb; the storage layer never looks inside it.
type AcqClassRecord struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	School     string         `gorm:"column:school;not null" json:"school"`
	ClassName  string         `gorm:"column:class_name;not null" json:"class_name"`
	Level      string         `gorm:"column:level;not null;index" json:"level"`
	Subject    string         `gorm:"column:subject;not null" json:"subject"`
	UploadDate time.Time      `gorm:"column:upload_date;not null" json:"upload_date"`
	Students   datatypes.JSON `gorm:"column:students;type:jsonb" json:"students"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (AcqClassRecord) TableName() string { return "acq_class_record" }

// AcqGlobalRecord wraps one uploaded omnibus cohort plus the subject labels
// header discovery found in it, in discovery order.
type AcqGlobalRecord struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	School           string         `gorm:"column:school;not null" json:"school"`
	ClassName        string         `gorm:"column:class_name;not null" json:"class_name"`
	UploadDate       time.Time      `gorm:"column:upload_date;not null" json:"upload_date"`
	Students         datatypes.JSON `gorm:"column:students;type:jsonb" json:"students"`
	DetectedSubjects datatypes.JSON `gorm:"column:detected_subjects;type:jsonb" json:"detected_subjects"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (AcqGlobalRecord) TableName() string { return "acq_global_record" }
