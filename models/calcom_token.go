package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CalComToken stores one OAuth token pair per user, upserted on every
// completed handshake.
type CalComToken struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	AccessToken  string `gorm:"type:text;not null"`
	RefreshToken string `gorm:"type:text"`
	TokenType    string `gorm:"default:'Bearer'"`
	ExpiresAt    *time.Time
	Scope        string

	CalUserID   string
	CalUsername string

	gorm.Model
}

func (t *CalComToken) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
