package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within a context.
// Handlers and workers enrich the context once; every slog call below them picks
// the fields up through TraceHandler.
type LogFields struct {
	OrganizationID *int64  // Tenant the request acts on
	UserID         *int64  // Dashboard user, when session-authenticated
	APIKeyID       *int64  // Integration key, when API-key authenticated
	DeliveryID     *int64  // Webhook delivery row
	MessageID      *string // Redis stream message ID
	Action         *string // Gateway action (e.g. "event.create")
	Component      string  // Component name (OTel semantic convention style, e.g. "relay.worker.webhooks")
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking precedence.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.OrganizationID != nil {
		result.OrganizationID = next.OrganizationID
	}
	if next.UserID != nil {
		result.UserID = next.UserID
	}
	if next.APIKeyID != nil {
		result.APIKeyID = next.APIKeyID
	}
	if next.DeliveryID != nil {
		result.DeliveryID = next.DeliveryID
	}
	if next.MessageID != nil {
		result.MessageID = next.MessageID
	}
	if next.Action != nil {
		result.Action = next.Action
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{OrganizationID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}

// Truncate truncates a string to maxLen bytes, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
