package dto

import (
	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/service"
)

type CreateWebhookRequest struct {
	URL         string   `json:"url" binding:"required,url,max=2048"`
	Description *string  `json:"description,omitempty" binding:"omitempty,max=500"`
	EventTypes  []string `json:"event_types" binding:"required,min=1,dive,required"`
	Active      *bool    `json:"active,omitempty"`
}

func (r CreateWebhookRequest) ToInput() service.WebhookInput {
	return service.WebhookInput{
		URL:         r.URL,
		Description: r.Description,
		EventTypes:  r.EventTypes,
		Active:      r.Active,
	}
}

type UpdateWebhookRequest struct {
	URL         *string  `json:"url,omitempty" binding:"omitempty,url,max=2048"`
	Description *string  `json:"description,omitempty" binding:"omitempty,max=500"`
	EventTypes  []string `json:"event_types,omitempty" binding:"omitempty,min=1,dive,required"`
	Active      *bool    `json:"active,omitempty"`
}

func (r UpdateWebhookRequest) ToPatch() service.WebhookPatch {
	return service.WebhookPatch{
		URL:         r.URL,
		Description: r.Description,
		EventTypes:  r.EventTypes,
		Active:      r.Active,
	}
}

// CreatedWebhookResponse carries the signing secret, shown once.
type CreatedWebhookResponse struct {
	*model.WebhookEndpoint
	Secret string `json:"secret"`
}

func ToCreatedWebhookResponse(created *service.CreatedWebhook) *CreatedWebhookResponse {
	return &CreatedWebhookResponse{WebhookEndpoint: created.Endpoint, Secret: created.Secret}
}

type DeliveriesQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=200"`
}
