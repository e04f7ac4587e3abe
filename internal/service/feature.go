package service

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/store"
)

// Feature is the effective state of one flag for an organization.
type Feature struct {
	Key        string `json:"key"`
	Enabled    bool   `json:"enabled"`
	Default    bool   `json:"default"`
	Overridden bool   `json:"overridden"`
}

type FeatureService interface {
	// Effective lists every known flag with overrides applied, sorted by key.
	Effective(ctx context.Context, orgID int64) ([]Feature, error)
	IsEnabled(ctx context.Context, orgID int64, key string) (bool, error)
	Set(ctx context.Context, orgID int64, key string, enabled bool) (*model.FeatureFlag, error)
	// Reset removes the override so the default applies again.
	Reset(ctx context.Context, orgID int64, key string) error
}

type featureService struct {
	flags store.FeatureFlagStore
	orgs  store.OrganizationStore
}

func NewFeatureService(flags store.FeatureFlagStore, orgs store.OrganizationStore) FeatureService {
	return &featureService{flags: flags, orgs: orgs}
}

func (s *featureService) Effective(ctx context.Context, orgID int64) ([]Feature, error) {
	overrides, err := s.flags.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("listing feature flags: %w", err)
	}

	byKey := make(map[string]bool, len(overrides))
	for _, f := range overrides {
		byKey[f.Key] = f.Enabled
	}

	keys := slices.Sorted(maps.Keys(model.DefaultFeatures))
	features := make([]Feature, 0, len(keys))
	for _, key := range keys {
		def := model.DefaultFeatures[key]
		enabled, overridden := byKey[key]
		if !overridden {
			enabled = def
		}
		features = append(features, Feature{Key: key, Enabled: enabled, Default: def, Overridden: overridden})
	}
	return features, nil
}

func (s *featureService) IsEnabled(ctx context.Context, orgID int64, key string) (bool, error) {
	def, known := model.DefaultFeatures[key]
	if !known {
		return false, invalid(fmt.Sprintf("unknown feature %q", key))
	}
	flag, err := s.flags.Get(ctx, orgID, key)
	if err != nil {
		if isNotFound(err) {
			return def, nil
		}
		return false, fmt.Errorf("loading feature flag: %w", err)
	}
	return flag.Enabled, nil
}

func (s *featureService) Set(ctx context.Context, orgID int64, key string, enabled bool) (*model.FeatureFlag, error) {
	if !model.IsKnownFeature(key) {
		return nil, invalid(fmt.Sprintf("unknown feature %q", key))
	}
	if _, err := s.orgs.GetByID(ctx, orgID); err != nil {
		return nil, lookupErr("organization", err)
	}

	flag, err := s.flags.Set(ctx, orgID, key, enabled)
	if err != nil {
		return nil, fmt.Errorf("setting feature flag: %w", err)
	}

	slog.InfoContext(ctx, "feature flag set", "organization_id", orgID, "key", key, "enabled", enabled)
	return flag, nil
}

func (s *featureService) Reset(ctx context.Context, orgID int64, key string) error {
	if err := s.flags.Delete(ctx, orgID, key); err != nil {
		return lookupErr("feature flag override", err)
	}
	return nil
}
