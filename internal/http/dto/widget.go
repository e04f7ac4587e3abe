package dto

import (
	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/service"
)

type UpdateWidgetRequest struct {
	Enabled        bool                 `json:"enabled"`
	AssistantID    *string              `json:"assistant_id,omitempty" binding:"omitempty,max=255"`
	Title          string               `json:"title" binding:"max=100"`
	Greeting       string               `json:"greeting" binding:"max=500"`
	PrimaryColor   string               `json:"primary_color" binding:"omitempty,hexcolor"`
	Position       model.WidgetPosition `json:"position"`
	VoiceEnabled   bool                 `json:"voice_enabled"`
	AllowedOrigins []string             `json:"allowed_origins" binding:"omitempty,dive,url"`
}

func (r UpdateWidgetRequest) ToInput() service.WidgetInput {
	return service.WidgetInput{
		Enabled:        r.Enabled,
		AssistantID:    r.AssistantID,
		Title:          r.Title,
		Greeting:       r.Greeting,
		PrimaryColor:   r.PrimaryColor,
		Position:       r.Position,
		VoiceEnabled:   r.VoiceEnabled,
		AllowedOrigins: r.AllowedOrigins,
	}
}

// PublicWidgetResponse is what the embed script sees: no organization or
// origin data.
type PublicWidgetResponse struct {
	PublicID     string               `json:"public_id"`
	AssistantID  *string              `json:"assistant_id,omitempty"`
	Title        string               `json:"title"`
	Greeting     string               `json:"greeting"`
	PrimaryColor string               `json:"primary_color"`
	Position     model.WidgetPosition `json:"position"`
	VoiceEnabled bool                 `json:"voice_enabled"`
}

func ToPublicWidgetResponse(cfg *model.ChatWidgetConfig) *PublicWidgetResponse {
	return &PublicWidgetResponse{
		PublicID:     cfg.PublicID,
		AssistantID:  cfg.AssistantID,
		Title:        cfg.Title,
		Greeting:     cfg.Greeting,
		PrimaryColor: cfg.PrimaryColor,
		Position:     cfg.Position,
		VoiceEnabled: cfg.VoiceEnabled,
	}
}
