package model

import "time"

type WidgetPosition string

const (
	WidgetPositionBottomRight WidgetPosition = "bottom-right"
	WidgetPositionBottomLeft  WidgetPosition = "bottom-left"
)

// ChatWidgetConfig is the embeddable assistant widget for an organization.
// AssistantID refers to the hosted voice/chat assistant.
type ChatWidgetConfig struct {
	OrganizationID int64          `json:"organization_id,string"`
	PublicID       string         `json:"public_id"`
	Enabled        bool           `json:"enabled"`
	AssistantID    *string        `json:"assistant_id,omitempty"`
	Title          string         `json:"title"`
	Greeting       string         `json:"greeting"`
	PrimaryColor   string         `json:"primary_color"`
	Position       WidgetPosition `json:"position"`
	VoiceEnabled   bool           `json:"voice_enabled"`
	AllowedOrigins []string       `json:"allowed_origins"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
