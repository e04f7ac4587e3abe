package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fieldpro.app/relay/common/id"
	"fieldpro.app/relay/internal/apikey"
	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/store"
)

type APIKeyInput struct {
	Name      string
	Scopes    []string
	ExpiresAt *time.Time
}

// IssuedKey is a stored key plus its plaintext, which is never retrievable again.
type IssuedKey struct {
	Key       *model.APIKey
	Plaintext string
}

type APIKeyService interface {
	Create(ctx context.Context, orgID, userID int64, input APIKeyInput) (*IssuedKey, error)
	Get(ctx context.Context, orgID, id int64) (*model.APIKey, error)
	List(ctx context.Context, orgID int64) ([]model.APIKey, error)
	// Rotate issues a replacement with the same name, scopes and expiry and
	// revokes the old key in one transaction. Expired keys cannot be rotated.
	Rotate(ctx context.Context, orgID, userID, id int64) (*IssuedKey, error)
	Revoke(ctx context.Context, orgID, id int64) (*model.APIKey, error)
}

type apiKeyService struct {
	keys     store.APIKeyStore
	txRunner TxRunner
	now      func() time.Time
}

func NewAPIKeyService(keys store.APIKeyStore, txRunner TxRunner) APIKeyService {
	return &apiKeyService{keys: keys, txRunner: txRunner, now: time.Now}
}

func (s *apiKeyService) Create(ctx context.Context, orgID, userID int64, input APIKeyInput) (*IssuedKey, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalid("key name is required")
	}
	scopes, err := apikey.ValidateScopes(input.Scopes)
	if err != nil {
		return nil, invalid(err.Error())
	}
	if input.ExpiresAt != nil && !input.ExpiresAt.After(s.now()) {
		return nil, invalid("expiry must be in the future")
	}

	issued, err := issueKey(ctx, s.keys, orgID, userID, name, scopes, input.ExpiresAt)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "api key created",
		"api_key_id", issued.Key.ID,
		"prefix", issued.Key.Prefix,
		"scopes", scopes)
	return issued, nil
}

func (s *apiKeyService) Get(ctx context.Context, orgID, id int64) (*model.APIKey, error) {
	key, err := s.keys.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, lookupErr("api key", err)
	}
	return key, nil
}

func (s *apiKeyService) List(ctx context.Context, orgID int64) ([]model.APIKey, error) {
	keys, err := s.keys.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("listing api keys: %w", err)
	}
	return keys, nil
}

func (s *apiKeyService) Rotate(ctx context.Context, orgID, userID, keyID int64) (*IssuedKey, error) {
	var issued *IssuedKey

	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		old, err := sp.APIKeys().GetByID(ctx, orgID, keyID)
		if err != nil {
			return lookupErr("api key", err)
		}
		if old.Revoked() {
			return fmt.Errorf("api key already revoked: %w", ErrConflict)
		}
		if old.Expired(s.now()) {
			// The replacement would inherit the lapsed expiry.
			return fmt.Errorf("api key expired, create a new key instead: %w", ErrConflict)
		}

		if _, err := sp.APIKeys().Revoke(ctx, orgID, keyID); err != nil {
			return lookupErr("api key", err)
		}

		issued, err = issueKey(ctx, sp.APIKeys(), orgID, userID, old.Name, old.Scopes, old.ExpiresAt)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "api key rotated",
		"api_key_id", keyID,
		"replacement_id", issued.Key.ID)
	return issued, nil
}

func (s *apiKeyService) Revoke(ctx context.Context, orgID, id int64) (*model.APIKey, error) {
	key, err := s.keys.Revoke(ctx, orgID, id)
	if err != nil {
		if isNotFound(err) {
			// Revoke only matches live keys; tell "already revoked" apart from "missing".
			if existing, getErr := s.keys.GetByID(ctx, orgID, id); getErr == nil && existing.Revoked() {
				return nil, fmt.Errorf("api key already revoked: %w", ErrConflict)
			}
		}
		return nil, lookupErr("api key", err)
	}

	slog.InfoContext(ctx, "api key revoked", "api_key_id", id)
	return key, nil
}

func issueKey(ctx context.Context, keys store.APIKeyStore, orgID, userID int64, name string, scopes []string, expiresAt *time.Time) (*IssuedKey, error) {
	generated, err := apikey.Generate()
	if err != nil {
		return nil, fmt.Errorf("generating api key: %w", err)
	}

	key := &model.APIKey{
		ID:             id.New(),
		OrganizationID: orgID,
		UserID:         userID,
		Name:           name,
		Prefix:         generated.Prefix,
		Salt:           generated.Salt,
		SecretHash:     generated.SecretHash,
		Scopes:         scopes,
		ExpiresAt:      expiresAt,
	}
	if err := keys.Create(ctx, key); err != nil {
		return nil, fmt.Errorf("storing api key: %w", err)
	}

	return &IssuedKey{Key: key, Plaintext: generated.Plaintext()}, nil
}
