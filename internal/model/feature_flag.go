package model

import "time"

type FeatureFlag struct {
	OrganizationID int64     `json:"organization_id,string"`
	Key            string    `json:"key"`
	Enabled        bool      `json:"enabled"`
	UpdatedAt      time.Time `json:"updated_at"`
}

const (
	FeatureChatWidget     = "chat_widget"
	FeatureVoiceAssistant = "voice_assistant"
	FeatureIntegrations   = "integrations"
	FeatureQuotes         = "quotes"
	FeatureInvoices       = "invoices"
	FeatureCalendar       = "calendar"
)

// DefaultFeatures is the value of every known flag when an organization has no
// override row.
var DefaultFeatures = map[string]bool{
	FeatureChatWidget:     false,
	FeatureVoiceAssistant: false,
	FeatureIntegrations:   true,
	FeatureQuotes:         true,
	FeatureInvoices:       true,
	FeatureCalendar:       true,
}

func IsKnownFeature(key string) bool {
	_, ok := DefaultFeatures[key]
	return ok
}
