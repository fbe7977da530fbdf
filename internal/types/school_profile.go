package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchoolProfile carries the per-school settings feeding the global
// indicators. TamazightTaught is the single applicability switch: when false,
// the Tamazight column is ignored by the elite/acceptable rates.
type SchoolProfile struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"column:name;not null" json:"name"`
	District        string    `gorm:"column:district" json:"district"`
	TamazightTaught bool      `gorm:"column:tamazight_taught;not null;default:true" json:"tamazight_taught"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (SchoolProfile) TableName() string { return "school_profile" }
