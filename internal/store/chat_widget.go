package store

import (
	"context"

	"fieldpro.app/relay/core/db/sqlc"
	"fieldpro.app/relay/internal/model"
)

type chatWidgetStore struct {
	queries *sqlc.Queries
}

func newChatWidgetStore(queries *sqlc.Queries) ChatWidgetStore {
	return &chatWidgetStore{queries: queries}
}

func (s *chatWidgetStore) GetByOrganization(ctx context.Context, orgID int64) (*model.ChatWidgetConfig, error) {
	row, err := s.queries.GetChatWidgetConfig(ctx, orgID)
	if err != nil {
		return nil, mapErr(err)
	}
	return toChatWidgetModel(row), nil
}

func (s *chatWidgetStore) GetByPublicID(ctx context.Context, publicID string) (*model.ChatWidgetConfig, error) {
	row, err := s.queries.GetChatWidgetConfigByPublicID(ctx, publicID)
	if err != nil {
		return nil, mapErr(err)
	}
	return toChatWidgetModel(row), nil
}

// Upsert keeps the existing public id when the organization already has a config.
func (s *chatWidgetStore) Upsert(ctx context.Context, cfg *model.ChatWidgetConfig) error {
	origins := cfg.AllowedOrigins
	if origins == nil {
		origins = []string{}
	}
	row, err := s.queries.UpsertChatWidgetConfig(ctx, sqlc.UpsertChatWidgetConfigParams{
		OrganizationID: cfg.OrganizationID,
		PublicID:       cfg.PublicID,
		Enabled:        cfg.Enabled,
		AssistantID:    cfg.AssistantID,
		Title:          cfg.Title,
		Greeting:       cfg.Greeting,
		PrimaryColor:   cfg.PrimaryColor,
		Position:       string(cfg.Position),
		VoiceEnabled:   cfg.VoiceEnabled,
		AllowedOrigins: origins,
	})
	if err != nil {
		return mapErr(err)
	}
	*cfg = *toChatWidgetModel(row)
	return nil
}

func toChatWidgetModel(row sqlc.ChatWidgetConfig) *model.ChatWidgetConfig {
	origins := row.AllowedOrigins
	if origins == nil {
		origins = []string{}
	}
	return &model.ChatWidgetConfig{
		OrganizationID: row.OrganizationID,
		PublicID:       row.PublicID,
		Enabled:        row.Enabled,
		AssistantID:    row.AssistantID,
		Title:          row.Title,
		Greeting:       row.Greeting,
		PrimaryColor:   row.PrimaryColor,
		Position:       model.WidgetPosition(row.Position),
		VoiceEnabled:   row.VoiceEnabled,
		AllowedOrigins: origins,
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}
