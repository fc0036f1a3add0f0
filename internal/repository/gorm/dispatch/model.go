package dispatchgorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecordModel is the GORM persistence model for dispatch records.
// It maps directly to the "dispatches" table in Postgres.
type RecordModel struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID           string    `gorm:"size:64;index"`
	Operation           string    `gorm:"size:20;not null;index"`
	Recipients          int       `gorm:"not null"`
	Success             bool      `gorm:"not null"`
	ResponseCode        string    `gorm:"size:20"`
	ResponseDescription string    `gorm:"size:255"`
	DurationMs          int64     `gorm:"not null"`
	CreatedAt           time.Time `gorm:"not null;index"`
}

// TableName overrides the default table name used by GORM.
func (RecordModel) TableName() string {
	return "dispatches"
}

// BeforeCreate ensures a UUID is set before inserting a new record.
func (m *RecordModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
