package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Pet struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name         string `gorm:"not null"`
	Type         string // dog, cat, ...
	Breed        string
	Age          *int
	Allergies    string `gorm:"type:text"`
	HealthIssues string `gorm:"type:text"`
	Preferences  string `gorm:"type:text"`
	Notes        string `gorm:"type:text"`

	Clients []Client   `gorm:"many2many:client_pets"`
	Visits  []PetVisit `gorm:"foreignKey:PetID"`

	gorm.Model
}

func (p *Pet) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
