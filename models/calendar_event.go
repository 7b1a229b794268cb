package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Calendar event statuses mirrored from the provider.
const (
	EventStatusScheduled = "scheduled"
	EventStatusConfirmed = "confirmed"
	EventStatusCancelled = "cancelled"
	EventStatusCompleted = "completed"
)

// CalendarEvent mirrors one Cal.com booking. The unique index on
// CalComEventID is the idempotency guarantee for webhook redelivery;
// the processor's lookup-before-insert is only an early exit.
type CalendarEvent struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	CalComEventID string    `gorm:"uniqueIndex;not null"`

	// Nullable: a booking made without Groomio metadata still gets
	// mirrored for audit, it just never shows in salon-scoped views.
	SalonID  *uuid.UUID `gorm:"type:uuid;index"`
	ClientID *uuid.UUID `gorm:"type:uuid;index"`
	PetID    *uuid.UUID `gorm:"type:uuid;index"`

	Title           string
	Description     string    `gorm:"type:text"`
	StartTime       time.Time `gorm:"index;not null"`
	EndTime         time.Time `gorm:"not null"`
	DurationMinutes int
	Status          string    `gorm:"default:'scheduled'"`

	AttendeeEmail string
	AttendeePhone string
	Location      string
	MeetingURL    string

	SyncedAt *time.Time

	Client *Client `gorm:"foreignKey:ClientID"`
	Pet    *Pet    `gorm:"foreignKey:PetID"`

	gorm.Model
}

func (e *CalendarEvent) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
