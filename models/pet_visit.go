package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VisitPhoto is one photo attached to a visit, stored in object storage
// under Path and listed inline on the visit row.
type VisitPhoto struct {
	Path       string    `json:"path"`
	Filename   string    `json:"filename"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type VisitPhotos []VisitPhoto

func (p VisitPhotos) Value() (driver.Value, error) {
	if p == nil {
		p = VisitPhotos{}
	}
	return json.Marshal(p)
}

func (p *VisitPhotos) Scan(value interface{}) error {
	if value == nil {
		*p = VisitPhotos{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return errors.New("unsupported type for VisitPhotos")
	}
}

// PetVisit records one grooming encounter. Visits are usually created by
// staff, but a synced booking with a resolvable pet creates one too.
type PetVisit struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	PetID   uuid.UUID `gorm:"type:uuid;index;not null"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null"`

	VisitDate time.Time   `gorm:"not null"`
	Notes     string      `gorm:"type:text;not null"`
	Photos    VisitPhotos `gorm:"type:jsonb;default:'[]'"`

	gorm.Model
}

func (v *PetVisit) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return
}
