package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// WebhookSetupConfig describes one subscription on the provider side.
type WebhookSetupConfig struct {
	SubscriberURL   string   `json:"subscriberUrl"`
	EventTriggers   []string `json:"eventTriggers"`
	Active          bool     `json:"active"`
	PayloadTemplate *string  `json:"payloadTemplate"`
}

// CalComWebhook is the provider's representation of a subscription.
type CalComWebhook struct {
	ID            string   `json:"id"`
	SubscriberURL string   `json:"subscriberUrl"`
	EventTriggers []string `json:"eventTriggers"`
	Active        bool     `json:"active"`
	CreatedAt     string   `json:"createdAt"`
}

// WebhookSetupService registers our receiver with Cal.com during
// onboarding so booking lifecycle events start flowing without manual
// configuration.
type WebhookSetupService struct {
	apiBaseURL string
	client     *http.Client
}

func NewWebhookSetupService() *WebhookSetupService {
	apiBaseURL := os.Getenv("CALCOM_API_BASE_URL")
	if apiBaseURL == "" {
		apiBaseURL = "https://api.cal.com/v1"
	}
	return &WebhookSetupService{
		apiBaseURL: apiBaseURL,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// SetupWebhookForUser subscribes the standard booking triggers for a newly
// connected account. Failures are logged and reported, not fatal; the
// caller treats this as best effort.
func (s *WebhookSetupService) SetupWebhookForUser(accessToken string) (*CalComWebhook, error) {
	config := WebhookSetupConfig{
		SubscriberURL: os.Getenv("APP_URL") + "/api/webhooks/calcom",
		EventTriggers: []string{
			TriggerBookingCreated,
			TriggerBookingRescheduled,
			TriggerBookingCancelled,
			TriggerMeetingEnded,
		},
		Active: true,
	}

	webhook, err := s.CreateWebhook(accessToken, config)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to set up Cal.com webhook")
		return nil, err
	}
	log.Info().Str("webhook_id", webhook.ID).Msg("Cal.com webhook registered")
	return webhook, nil
}

// CreateWebhook creates one subscription via the provider API.
func (s *WebhookSetupService) CreateWebhook(accessToken string, config WebhookSetupConfig) (*CalComWebhook, error) {
	payload, err := json.Marshal(config)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, s.apiBaseURL+"/webhooks", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to create webhook: %s", string(text))
	}

	var webhook CalComWebhook
	if err := json.NewDecoder(resp.Body).Decode(&webhook); err != nil {
		return nil, fmt.Errorf("failed to create webhook: %w", err)
	}
	return &webhook, nil
}
