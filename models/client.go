package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name        string `gorm:"not null"`
	Surname     string `gorm:"not null"`
	PhoneNumber string `gorm:"not null"`
	Email       string
	Address     string

	HasGDPRConsent  bool `gorm:"default:false"`
	GDPRConsentDate *time.Time

	// A pet can have several owners or none at all. Deleting a client
	// removes the links, never the pets.
	Pets []Pet `gorm:"many2many:client_pets"`

	gorm.Model
}

func (c *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
