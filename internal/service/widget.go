package service

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/store"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

type WidgetInput struct {
	Enabled        bool
	AssistantID    *string
	Title          string
	Greeting       string
	PrimaryColor   string
	Position       model.WidgetPosition
	VoiceEnabled   bool
	AllowedOrigins []string
}

type WidgetService interface {
	// Get returns the stored config, or unsaved defaults when there is none.
	Get(ctx context.Context, orgID int64) (*model.ChatWidgetConfig, error)
	Update(ctx context.Context, orgID int64, input WidgetInput) (*model.ChatWidgetConfig, error)
	// PublicConfig resolves the embed config for a public id. Disabled widgets,
	// suspended organizations and organizations without the chat_widget flag
	// are reported as not found.
	PublicConfig(ctx context.Context, publicID string) (*model.ChatWidgetConfig, error)
}

type widgetService struct {
	widgets  store.ChatWidgetStore
	orgs     store.OrganizationStore
	features FeatureService
}

func NewWidgetService(widgets store.ChatWidgetStore, orgs store.OrganizationStore, features FeatureService) WidgetService {
	return &widgetService{widgets: widgets, orgs: orgs, features: features}
}

func defaultWidget(orgID int64) *model.ChatWidgetConfig {
	return &model.ChatWidgetConfig{
		OrganizationID: orgID,
		Title:          "Chat with us",
		Greeting:       "Hi! How can we help?",
		PrimaryColor:   "#2563eb",
		Position:       model.WidgetPositionBottomRight,
		AllowedOrigins: []string{},
	}
}

func (s *widgetService) Get(ctx context.Context, orgID int64) (*model.ChatWidgetConfig, error) {
	cfg, err := s.widgets.GetByOrganization(ctx, orgID)
	if err != nil {
		if isNotFound(err) {
			return defaultWidget(orgID), nil
		}
		return nil, fmt.Errorf("loading widget config: %w", err)
	}
	return cfg, nil
}

func (s *widgetService) Update(ctx context.Context, orgID int64, input WidgetInput) (*model.ChatWidgetConfig, error) {
	current, err := s.Get(ctx, orgID)
	if err != nil {
		return nil, err
	}

	origins, err := normalizeOrigins(input.AllowedOrigins)
	if err != nil {
		return nil, err
	}

	cfg := &model.ChatWidgetConfig{
		OrganizationID: orgID,
		PublicID:       current.PublicID,
		Enabled:        input.Enabled,
		AssistantID:    trimmed(input.AssistantID),
		Title:          strings.TrimSpace(input.Title),
		Greeting:       strings.TrimSpace(input.Greeting),
		PrimaryColor:   input.PrimaryColor,
		Position:       input.Position,
		VoiceEnabled:   input.VoiceEnabled,
		AllowedOrigins: origins,
	}
	if cfg.PublicID == "" {
		cfg.PublicID = uuid.NewString()
	}
	if cfg.Title == "" {
		cfg.Title = current.Title
	}
	if cfg.PrimaryColor == "" {
		cfg.PrimaryColor = current.PrimaryColor
	}
	if cfg.Position == "" {
		cfg.Position = current.Position
	}
	if err := validateWidget(cfg); err != nil {
		return nil, err
	}

	if err := s.widgets.Upsert(ctx, cfg); err != nil {
		return nil, fmt.Errorf("saving widget config: %w", err)
	}
	return cfg, nil
}

func (s *widgetService) PublicConfig(ctx context.Context, publicID string) (*model.ChatWidgetConfig, error) {
	if _, err := uuid.Parse(publicID); err != nil {
		return nil, fmt.Errorf("widget %w", ErrNotFound)
	}

	cfg, err := s.widgets.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, lookupErr("widget", err)
	}
	if !cfg.Enabled {
		return nil, fmt.Errorf("widget %w", ErrNotFound)
	}

	org, err := s.orgs.GetByID(ctx, cfg.OrganizationID)
	if err != nil {
		return nil, lookupErr("organization", err)
	}
	if org.IsSuspended() {
		return nil, fmt.Errorf("widget %w", ErrNotFound)
	}

	enabled, err := s.features.IsEnabled(ctx, cfg.OrganizationID, model.FeatureChatWidget)
	if err != nil {
		return nil, err
	}
	if !enabled {
		return nil, fmt.Errorf("widget %w", ErrNotFound)
	}

	return cfg, nil
}

func validateWidget(cfg *model.ChatWidgetConfig) error {
	if !hexColor.MatchString(cfg.PrimaryColor) {
		return invalid("primary color must be a hex color like #2563eb")
	}
	switch cfg.Position {
	case model.WidgetPositionBottomLeft, model.WidgetPositionBottomRight:
	default:
		return invalid(fmt.Sprintf("unknown widget position %q", cfg.Position))
	}
	if cfg.Enabled && cfg.AssistantID == nil {
		return invalid("an assistant id is required to enable the widget")
	}
	return nil
}

// normalizeOrigins keeps scheme://host[:port] of each origin, deduplicated.
func normalizeOrigins(origins []string) ([]string, error) {
	out := make([]string, 0, len(origins))
	seen := make(map[string]bool, len(origins))
	for _, raw := range origins {
		u, err := url.Parse(strings.TrimSpace(raw))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, invalid(fmt.Sprintf("invalid origin %q", raw))
		}
		origin := u.Scheme + "://" + strings.ToLower(u.Host)
		if !seen[origin] {
			seen[origin] = true
			out = append(out, origin)
		}
	}
	return out, nil
}
