package services

import (
	"time"

	"groomio-backend/models"
	"groomio-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CalendarService is the read side of booking synchronization: salon-scoped
// event queries with minimal client/pet projections for display. Every call
// re-queries the store; nothing is cached.
type CalendarService struct {
	db *gorm.DB
}

func NewCalendarService(db *gorm.DB) *CalendarService {
	return &CalendarService{db: db}
}

// Statuses shown in upcoming-appointment views.
var activeStatuses = []string{models.EventStatusScheduled, models.EventStatusConfirmed}

func (s *CalendarService) withDetails(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Client", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "surname", "phone_number", "email")
		}).
		Preload("Pet", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "breed", "type", "allergies", "health_issues")
		})
}

// TodaysEvents returns today's active appointments for a salon.
func (s *CalendarService) TodaysEvents(salonID uuid.UUID) ([]models.CalendarEvent, error) {
	today := utils.BeginningOfDay(time.Now())
	tomorrow := today.AddDate(0, 0, 1)
	return s.EventsInRange(salonID, today, tomorrow)
}

// ThisWeeksEvents returns this week's active appointments, Monday through
// Sunday of the current server date.
func (s *CalendarService) ThisWeeksEvents(salonID uuid.UUID) ([]models.CalendarEvent, error) {
	startOfWeek := utils.BeginningOfWeek(time.Now())
	endOfWeek := startOfWeek.AddDate(0, 0, 7)
	return s.EventsInRange(salonID, startOfWeek, endOfWeek)
}

// EventsInRange returns active appointments with start times in [from, to).
func (s *CalendarService) EventsInRange(salonID uuid.UUID, from, to time.Time) ([]models.CalendarEvent, error) {
	var events []models.CalendarEvent
	err := s.withDetails(s.db).
		Where("salon_id = ?", salonID).
		Where("start_time >= ? AND start_time < ?", from, to).
		Where("status IN ?", activeStatuses).
		Order("start_time").
		Find(&events).Error
	return events, err
}

// AllEvents returns every event for a salon ordered by start time,
// regardless of status.
func (s *CalendarService) AllEvents(salonID uuid.UUID) ([]models.CalendarEvent, error) {
	var events []models.CalendarEvent
	err := s.withDetails(s.db).
		Where("salon_id = ?", salonID).
		Order("start_time").
		Find(&events).Error
	return events, err
}

// UpcomingEventsForPet returns the next appointments for one pet.
func (s *CalendarService) UpcomingEventsForPet(petID uuid.UUID) ([]models.CalendarEvent, error) {
	var events []models.CalendarEvent
	err := s.withDetails(s.db).
		Where("pet_id = ?", petID).
		Where("start_time >= ?", time.Now()).
		Where("status IN ?", activeStatuses).
		Order("start_time").
		Limit(10).
		Find(&events).Error
	return events, err
}

// PastEventsForPet returns the visit history of one pet, newest first.
func (s *CalendarService) PastEventsForPet(petID uuid.UUID) ([]models.CalendarEvent, error) {
	var events []models.CalendarEvent
	err := s.withDetails(s.db).
		Where("pet_id = ?", petID).
		Where("end_time < ?", time.Now()).
		Order("start_time DESC").
		Limit(50).
		Find(&events).Error
	return events, err
}
