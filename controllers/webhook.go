package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"groomio-backend/config"
	"groomio-backend/models"
	"groomio-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// HandleCalComWebhook receives one Cal.com event notification, audits it
// in webhook_logs and reconciles it against local calendar state.
func HandleCalComWebhook(c *gin.Context) {
	start := time.Now()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		logInvalidWebhook("Failed to read payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	if !services.ValidateSignature(body, c.GetHeader("X-Cal-Signature-256"), "") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
		return
	}

	var payload services.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil || payload.TriggerEvent == "" {
		log.Error().Msg("Invalid webhook payload received")
		logInvalidWebhook("Failed to parse payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	log.Info().
		Str("trigger", payload.TriggerEvent).
		Str("uid", payload.Payload.UID).
		Msg("Received Cal.com webhook")

	logRow := models.WebhookLog{
		WebhookType:   "calcom",
		Payload:       datatypes.JSON(body),
		Status:        models.WebhookStatusProcessing,
		CalComEventID: payload.Payload.UID,
	}
	logged := true
	if err := config.DB.Create(&logRow).Error; err != nil {
		log.Error().Err(err).Msg("Failed to create webhook log")
		logged = false
	}

	processor := services.NewWebhookProcessor(config.DB)
	result, procErr := processor.Process(&payload)

	// The audit row transitions exactly once, regardless of the HTTP
	// response outcome.
	if logged {
		updates := map[string]interface{}{"status": models.WebhookStatusSuccess}
		if procErr != nil {
			updates["status"] = models.WebhookStatusError
			updates["error_message"] = procErr.Error()
		}
		if err := config.DB.Model(&logRow).Updates(updates).Error; err != nil {
			log.Error().Err(err).Msg("Failed to update webhook log")
		}
	}

	duration := time.Since(start).Milliseconds()

	if procErr != nil {
		log.Error().Err(procErr).Int64("duration_ms", duration).Msg("Webhook processing failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"ok":       false,
			"error":    procErr.Error(),
			"duration": duration,
		})
		return
	}

	log.Info().
		Str("action", result.Action).
		Int64("duration_ms", duration).
		Msg("Webhook processed")
	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"action":   result.Action,
		"eventId":  result.EventID,
		"duration": duration,
	})
}

// logInvalidWebhook writes the audit row for an unparseable delivery.
// Best effort; a secondary failure is only logged.
func logInvalidWebhook(reason string) {
	row := models.WebhookLog{
		WebhookType:  "calcom",
		Payload:      datatypes.JSON(`{"error":"` + reason + `"}`),
		Status:       models.WebhookStatusError,
		ErrorMessage: reason,
	}
	if err := config.DB.Create(&row).Error; err != nil {
		log.Error().Err(err).Msg("Failed to log invalid webhook")
	}
}
