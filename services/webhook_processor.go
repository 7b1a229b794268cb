package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"groomio-backend/models"
	"groomio-backend/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Cal.com webhook trigger events.
const (
	TriggerBookingCreated     = "BOOKING_CREATED"
	TriggerBookingRescheduled = "BOOKING_RESCHEDULED"
	TriggerBookingCancelled   = "BOOKING_CANCELLED"
	TriggerBookingRejected    = "BOOKING_REJECTED"
	TriggerMeetingEnded       = "MEETING_ENDED"
)

// Processing outcome actions.
const (
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionCancelled = "cancelled"
	ActionSkipped   = "skipped"
)

// BookingMetadata carries the identifiers round-tripped through Cal.com's
// custom-field mechanism at booking time. Unknown keys are dropped at
// decode; only these named fields are trusted downstream.
type BookingMetadata struct {
	ClientID string `json:"groomioClientId"`
	PetID    string `json:"groomioPetId"`
	Source   string `json:"source"`
}

type BookingAttendee struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	TimeZone    string `json:"timeZone"`
	PhoneNumber string `json:"phoneNumber"`
}

type BookingResponses struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

type BookingPayload struct {
	UID               string            `json:"uid"`
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	StartTime         string            `json:"startTime"`
	EndTime           string            `json:"endTime"`
	Status            string            `json:"status"`
	Location          string            `json:"location"`
	SMSReminderNumber string            `json:"smsReminderNumber"`
	Attendees         []BookingAttendee `json:"attendees"`
	Metadata          *BookingMetadata  `json:"metadata"`
	Responses         *BookingResponses `json:"responses"`
}

// WebhookPayload is one Cal.com event notification.
type WebhookPayload struct {
	TriggerEvent string         `json:"triggerEvent"`
	CreatedAt    string         `json:"createdAt"`
	Payload      BookingPayload `json:"payload"`
}

// ProcessResult describes what a delivery did to the local store.
type ProcessResult struct {
	Action  string
	EventID *uuid.UUID
}

// WebhookProcessor reconciles Cal.com booking lifecycle events with local
// calendar_events and pet_visits rows. It holds its store explicitly; no
// package-level client.
type WebhookProcessor struct {
	db *gorm.DB
}

func NewWebhookProcessor(db *gorm.DB) *WebhookProcessor {
	return &WebhookProcessor{db: db}
}

// Process dispatches one decoded notification. A returned error means the
// primary calendar event mutation failed; pet visit side effects never
// fail the operation.
func (p *WebhookProcessor) Process(payload *WebhookPayload) (ProcessResult, error) {
	switch payload.TriggerEvent {
	case TriggerBookingCreated:
		return p.handleCreated(&payload.Payload)
	case TriggerBookingRescheduled:
		return p.handleRescheduled(&payload.Payload)
	case TriggerBookingCancelled, TriggerBookingRejected:
		return p.handleCancelled(&payload.Payload)
	case TriggerMeetingEnded:
		return p.handleMeetingEnded(&payload.Payload)
	default:
		log.Info().Str("trigger", payload.TriggerEvent).Msg("Unhandled webhook trigger, skipping")
		return ProcessResult{Action: ActionSkipped}, nil
	}
}

func (p *WebhookProcessor) handleCreated(booking *BookingPayload) (ProcessResult, error) {
	// Early exit on redelivery. The unique index on cal_com_event_id is
	// the actual guarantee; a concurrent duplicate insert below surfaces
	// as a store error.
	var existing models.CalendarEvent
	err := p.db.Select("id").Where("cal_com_event_id = ?", booking.UID).First(&existing).Error
	if err == nil {
		log.Info().Str("uid", booking.UID).Msg("Booking already exists, skipping create")
		return ProcessResult{Action: ActionSkipped, EventID: &existing.ID}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ProcessResult{}, fmt.Errorf("failed to look up event %s: %w", booking.UID, err)
	}

	startTime, endTime, err := parseBookingTimes(booking)
	if err != nil {
		return ProcessResult{}, err
	}

	clientID, petID, salonID := p.resolveLinkage(booking.Metadata)
	attendeeEmail, attendeePhone := attendeeContact(booking)

	title := booking.Title
	if title == "" {
		title = "Appointment"
	}
	description := booking.Description
	if description == "" && booking.Responses != nil {
		description = booking.Responses.Notes
	}

	now := time.Now()
	event := models.CalendarEvent{
		CalComEventID:   booking.UID,
		SalonID:         salonID,
		ClientID:        clientID,
		PetID:           petID,
		Title:           title,
		Description:     description,
		StartTime:       startTime,
		EndTime:         endTime,
		DurationMinutes: DurationMinutes(startTime, endTime),
		Status:          models.EventStatusScheduled,
		AttendeeEmail:   attendeeEmail,
		AttendeePhone:   attendeePhone,
		Location:        booking.Location,
		SyncedAt:        &now,
	}

	if err := p.db.Create(&event).Error; err != nil {
		return ProcessResult{}, fmt.Errorf("failed to create calendar event: %w", err)
	}
	log.Info().Str("uid", booking.UID).Str("event_id", event.ID.String()).Msg("Created calendar event")

	// Secondary side effect: grooming log entry. Never fails the sync.
	if petID != nil && salonID != nil {
		p.createVisitForBooking(booking, *petID, *salonID, startTime, attendeeEmail, attendeePhone)
	}

	return ProcessResult{Action: ActionCreated, EventID: &event.ID}, nil
}

func (p *WebhookProcessor) handleRescheduled(booking *BookingPayload) (ProcessResult, error) {
	var existing models.CalendarEvent
	err := p.db.Where("cal_com_event_id = ?", booking.UID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Info().Str("uid", booking.UID).Msg("Event not found, creating instead of updating")
		return p.handleCreated(booking)
	}
	if err != nil {
		return ProcessResult{}, fmt.Errorf("failed to look up event %s: %w", booking.UID, err)
	}

	startTime, endTime, err := parseBookingTimes(booking)
	if err != nil {
		return ProcessResult{}, err
	}

	title := booking.Title
	if title == "" {
		title = "Appointment"
	}
	description := booking.Description
	if description == "" && booking.Responses != nil {
		description = booking.Responses.Notes
	}

	now := time.Now()
	updates := map[string]interface{}{
		"title":            title,
		"description":      description,
		"start_time":       startTime,
		"end_time":         endTime,
		"duration_minutes": DurationMinutes(startTime, endTime),
		"status":           models.EventStatusScheduled,
		"synced_at":        &now,
	}
	if err := p.db.Model(&models.CalendarEvent{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
		return ProcessResult{}, fmt.Errorf("failed to update calendar event: %w", err)
	}
	log.Info().Str("uid", booking.UID).Str("event_id", existing.ID.String()).Msg("Updated calendar event")

	// Shift the matching grooming log entry to the new date, best effort.
	if existing.PetID != nil && existing.SalonID != nil {
		oldDay := utils.BeginningOfDay(existing.StartTime.UTC())
		newDay := utils.BeginningOfDay(startTime.UTC())
		err := p.db.Model(&models.PetVisit{}).
			Where("pet_id = ? AND salon_id = ?", existing.PetID, existing.SalonID).
			Where("visit_date >= ? AND visit_date < ?", oldDay, oldDay.AddDate(0, 0, 1)).
			Update("visit_date", newDay).Error
		if err != nil {
			log.Warn().Err(err).Str("uid", booking.UID).Msg("Failed to update pet visit date")
		}
	}

	return ProcessResult{Action: ActionUpdated, EventID: &existing.ID}, nil
}

func (p *WebhookProcessor) handleCancelled(booking *BookingPayload) (ProcessResult, error) {
	var existing models.CalendarEvent
	err := p.db.Where("cal_com_event_id = ?", booking.UID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Info().Str("uid", booking.UID).Msg("Event not found, nothing to cancel")
		return ProcessResult{Action: ActionSkipped}, nil
	}
	if err != nil {
		return ProcessResult{}, fmt.Errorf("failed to look up event %s: %w", booking.UID, err)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":    models.EventStatusCancelled,
		"synced_at": &now,
	}
	if err := p.db.Model(&models.CalendarEvent{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
		return ProcessResult{}, fmt.Errorf("failed to cancel calendar event: %w", err)
	}
	log.Info().Str("uid", booking.UID).Str("event_id", existing.ID.String()).Msg("Cancelled calendar event")

	// Drop the grooming log entry created for the original date, best effort.
	if existing.PetID != nil && existing.SalonID != nil {
		day := utils.BeginningOfDay(existing.StartTime.UTC())
		err := p.db.
			Where("pet_id = ? AND salon_id = ?", existing.PetID, existing.SalonID).
			Where("visit_date >= ? AND visit_date < ?", day, day.AddDate(0, 0, 1)).
			Delete(&models.PetVisit{}).Error
		if err != nil {
			log.Warn().Err(err).Str("uid", booking.UID).Msg("Failed to delete pet visit")
		}
	}

	return ProcessResult{Action: ActionCancelled, EventID: &existing.ID}, nil
}

func (p *WebhookProcessor) handleMeetingEnded(booking *BookingPayload) (ProcessResult, error) {
	var existing models.CalendarEvent
	err := p.db.Select("id").Where("cal_com_event_id = ?", booking.UID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Info().Str("uid", booking.UID).Msg("Event not found for meeting end")
		return ProcessResult{Action: ActionSkipped}, nil
	}
	if err != nil {
		return ProcessResult{}, fmt.Errorf("failed to look up event %s: %w", booking.UID, err)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":    models.EventStatusCompleted,
		"synced_at": &now,
	}
	if err := p.db.Model(&models.CalendarEvent{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
		return ProcessResult{}, fmt.Errorf("failed to complete calendar event: %w", err)
	}
	log.Info().Str("uid", booking.UID).Str("event_id", existing.ID.String()).Msg("Marked calendar event completed")

	return ProcessResult{Action: ActionUpdated, EventID: &existing.ID}, nil
}

// resolveLinkage maps booking metadata to local client/pet rows and, through
// whichever resolves, the owning salon. Unresolvable identifiers are
// dropped; the event is still mirrored with null references.
func (p *WebhookProcessor) resolveLinkage(metadata *BookingMetadata) (clientID, petID, salonID *uuid.UUID) {
	if metadata == nil {
		return nil, nil, nil
	}

	if id, err := uuid.Parse(metadata.ClientID); err == nil {
		var client models.Client
		if err := p.db.Select("id", "salon_id").First(&client, "id = ?", id).Error; err == nil {
			clientID = &client.ID
			salonID = &client.SalonID
		}
	}

	if id, err := uuid.Parse(metadata.PetID); err == nil {
		var pet models.Pet
		if err := p.db.Select("id", "salon_id").First(&pet, "id = ?", id).Error; err == nil {
			petID = &pet.ID
			if salonID == nil {
				salonID = &pet.SalonID
			}
		}
	}

	return clientID, petID, salonID
}

func (p *WebhookProcessor) createVisitForBooking(booking *BookingPayload, petID, salonID uuid.UUID, startTime time.Time, email, phone string) {
	lines := []string{}
	if booking.Title != "" {
		lines = append(lines, booking.Title)
	}
	if booking.Description != "" {
		lines = append(lines, booking.Description)
	}
	if email != "" {
		lines = append(lines, "Email: "+email)
	}
	if phone != "" {
		lines = append(lines, "Tel: "+phone)
	}
	if booking.Location != "" {
		lines = append(lines, "Lokalizacja: "+booking.Location)
	}
	notes := strings.Join(lines, "\n")
	if notes == "" {
		notes = "Wizyta zarezerwowana przez Cal.com"
	}

	visit := models.PetVisit{
		PetID:     petID,
		SalonID:   salonID,
		VisitDate: utils.BeginningOfDay(startTime.UTC()),
		Notes:     notes,
		Photos:    models.VisitPhotos{},
	}
	if err := p.db.Create(&visit).Error; err != nil {
		log.Warn().Err(err).Str("pet_id", petID.String()).Msg("Failed to create pet visit")
		return
	}
	log.Info().Str("visit_id", visit.ID.String()).Str("pet_id", petID.String()).Msg("Created pet visit")
}

func attendeeContact(booking *BookingPayload) (email, phone string) {
	if len(booking.Attendees) > 0 {
		email = booking.Attendees[0].Email
	}
	if email == "" && booking.Responses != nil {
		email = booking.Responses.Email
	}
	phone = booking.SMSReminderNumber
	if phone == "" && booking.Responses != nil {
		phone = booking.Responses.Phone
	}
	if phone == "" && len(booking.Attendees) > 0 {
		phone = booking.Attendees[0].PhoneNumber
	}
	return email, phone
}

func parseBookingTimes(booking *BookingPayload) (time.Time, time.Time, error) {
	startTime, err := time.Parse(time.RFC3339, booking.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start time %q: %w", booking.StartTime, err)
	}
	endTime, err := time.Parse(time.RFC3339, booking.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end time %q: %w", booking.EndTime, err)
	}
	return startTime, endTime, nil
}

// DurationMinutes returns the booking length in whole minutes, rounded.
func DurationMinutes(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Minutes()))
}

// ValidateSignature is the seam for provider payload authentication.
// Cal.com does not sign webhook deliveries yet, so every payload is
// accepted. TODO: verify the X-Cal-Signature-256 header once the provider
// ships signing.
func ValidateSignature(payload []byte, signature, secret string) bool {
	return true
}
