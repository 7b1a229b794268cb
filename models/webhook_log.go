package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	WebhookStatusProcessing = "processing"
	WebhookStatusSuccess    = "success"
	WebhookStatusError      = "error"
)

// WebhookLog is the append-only audit trail of inbound provider
// notifications. Rows are created as "processing" and transitioned once
// to success or error; they are never deleted.
type WebhookLog struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key"`
	WebhookType string         `gorm:"type:varchar(50);not null"`
	Payload     datatypes.JSON `gorm:"not null"`

	Status        string `gorm:"type:varchar(20);default:'processing'"`
	ErrorMessage  string `gorm:"type:text"`
	CalComEventID string `gorm:"index"`

	gorm.Model
}

func (w *WebhookLog) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return
}
