// services/reminder_service.go
package services

import (
	"fmt"
	"os"
	"strings"
	"time"

	"groomio-backend/models"
	"groomio-backend/utils"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ReminderService sends next-day appointment reminders to booking
// attendees over SMS or WhatsApp.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

// StartScheduler runs the reminder pass every day at 8 AM.
func (s *ReminderService) StartScheduler() {
	c := cron.New()
	if _, err := c.AddFunc("0 8 * * *", s.SendDailyReminders); err != nil {
		log.Error().Err(err).Msg("Failed to schedule reminder job")
		return
	}
	c.Start()
	log.Info().Msg("Reminder scheduler started")
}

// SendDailyReminders processes every salon with appointments tomorrow.
func (s *ReminderService) SendDailyReminders() {
	log.Info().Msg("Starting daily reminder processing")

	var salons []models.Salon
	if err := s.db.Find(&salons).Error; err != nil {
		log.Error().Err(err).Msg("Failed to fetch salons")
		return
	}

	for _, salon := range salons {
		s.ProcessSalonReminders(salon.ID)
	}

	log.Info().Msg("Daily reminder processing completed")
}

// ProcessSalonReminders sends one reminder per tomorrow's scheduled
// appointment that carries an attendee phone and has not been reminded yet.
func (s *ReminderService) ProcessSalonReminders(salonID uuid.UUID) {
	tomorrow := utils.BeginningOfDay(time.Now()).AddDate(0, 0, 1)
	dayAfter := tomorrow.AddDate(0, 0, 1)

	var events []models.CalendarEvent
	err := s.db.
		Where("salon_id = ?", salonID).
		Where("start_time >= ? AND start_time < ?", tomorrow, dayAfter).
		Where("status = ?", models.EventStatusScheduled).
		Where("attendee_phone <> ''").
		Find(&events).Error
	if err != nil {
		log.Error().Err(err).Str("salon_id", salonID.String()).Msg("Failed to fetch tomorrow's events")
		return
	}

	for _, event := range events {
		var sent int64
		s.db.Model(&models.ReminderLog{}).
			Where("calendar_event_id = ? AND status = ?", event.ID, "sent").
			Count(&sent)
		if sent > 0 {
			continue
		}
		s.sendReminder(salonID, event)
	}
}

func (s *ReminderService) sendReminder(salonID uuid.UUID, event models.CalendarEvent) {
	message := fmt.Sprintf("Hi! A reminder about your grooming appointment %q tomorrow at %s.",
		event.Title, utils.FormatTime(event.StartTime))

	// WhatsApp for E.164 numbers, plain SMS otherwise.
	channel := "sms"
	to := event.AttendeePhone
	if strings.HasPrefix(event.AttendeePhone, "+") {
		to = "whatsapp:" + event.AttendeePhone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)
	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	status := "sent"
	errorMsg := ""
	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		log.Warn().Err(err).Str("phone", event.AttendeePhone).Msg("Failed to send reminder")
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Info().Str("phone", event.AttendeePhone).Str("sid", *resp.Sid).Msg("Reminder sent")
	}

	reminderLog := models.ReminderLog{
		SalonID:         salonID,
		CalendarEventID: event.ID,
		Phone:           event.AttendeePhone,
		Message:         message,
		Channel:         channel,
		Status:          status,
		ErrorMessage:    errorMsg,
		SentAt:          time.Now(),
	}
	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Error().Err(err).Msg("Failed to write reminder log")
	}
}
