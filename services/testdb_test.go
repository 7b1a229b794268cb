package services

import (
	"testing"
	"time"

	"groomio-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.Salon{},
		&models.Client{},
		&models.Pet{},
		&models.PetVisit{},
		&models.CalendarEvent{},
		&models.WebhookLog{},
		&models.ReminderLog{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedSalonClientPet creates one salon with a client and a pet.
func seedSalonClientPet(t *testing.T, db *gorm.DB) (models.Salon, models.Client, models.Pet) {
	t.Helper()
	salon := models.Salon{OwnerUserID: uuid.New(), Name: "Psi Fryzjer"}
	if err := db.Create(&salon).Error; err != nil {
		t.Fatalf("create salon: %v", err)
	}
	client := models.Client{
		SalonID:     salon.ID,
		Name:        "Anna",
		Surname:     "Kowalska",
		PhoneNumber: "+48123456789",
	}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("create client: %v", err)
	}
	pet := models.Pet{
		SalonID: salon.ID,
		Name:    "Reksio",
		Type:    "dog",
		Breed:   "Beagle",
	}
	if err := db.Create(&pet).Error; err != nil {
		t.Fatalf("create pet: %v", err)
	}
	return salon, client, pet
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return parsed
}
