package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Salon is the tenant root. Every other record (except webhook logs)
// belongs to exactly one salon.
type Salon struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	OwnerUserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	Name           string `gorm:"not null"`
	Address        string
	NIP            string `gorm:"type:varchar(20)"`
	CalComUsername string

	Clients        []Client        `gorm:"foreignKey:SalonID"`
	Pets           []Pet           `gorm:"foreignKey:SalonID"`
	CalendarEvents []CalendarEvent `gorm:"foreignKey:SalonID"`

	gorm.Model
}

func (s *Salon) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
