package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Resume holds one saved résumé payload. A user may save many; the current
// one is the most recently inserted. Payload is always a JSON document;
// callers sending a JSON-encoded string are normalized at write time.
type Resume struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Payload   JSON      `gorm:"type:jsonb" json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *Resume) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (Resume) TableName() string {
	return "resumes"
}
