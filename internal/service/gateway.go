package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fieldpro.app/relay/common/logger"
	"fieldpro.app/relay/internal/apikey"
	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/ratelimit"
	"fieldpro.app/relay/internal/store"
)

// GatewaySource is recorded as the source of rows created through the gateway.
const GatewaySource = "n8n"

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrRateLimited  = errors.New("rate limit exceeded")
)

// authError wraps ErrUnauthorized with a caller-facing reason.
type authError struct {
	reason string
}

func (e *authError) Error() string { return e.reason }
func (e *authError) Unwrap() error { return ErrUnauthorized }

func unauthorized(reason string) error {
	return &authError{reason: reason}
}

// GatewayRequest is one signed call from an automation tool. Body is the raw
// request body exactly as signed.
type GatewayRequest struct {
	APIKey    string
	Timestamp string
	Signature string
	Body      []byte
}

// GatewayResult is returned alongside any error raised after the rate limit
// was consulted, so callers can always emit the limit headers.
type GatewayResult struct {
	Action    string              `json:"action"`
	Data      any                 `json:"data,omitempty"`
	Created   bool                `json:"-"`
	APIKeyID  int64               `json:"-"`
	RateLimit *ratelimit.Decision `json:"-"`
}

type gatewayEnvelope struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type GatewayConfig struct {
	TimestampTolerance time.Duration
}

type GatewayService interface {
	// Handle authenticates, authorizes, rate limits and executes one request.
	Handle(ctx context.Context, req GatewayRequest) (*GatewayResult, error)
	Schemas() []ActionSchema
}

type gatewayService struct {
	keys     store.APIKeyStore
	orgs     store.OrganizationStore
	features FeatureService
	limiter  ratelimit.Limiter
	contacts ContactService
	events   EventService
	cfg      GatewayConfig
	now      func() time.Time
}

func NewGatewayService(
	keys store.APIKeyStore,
	orgs store.OrganizationStore,
	features FeatureService,
	limiter ratelimit.Limiter,
	contacts ContactService,
	events EventService,
	cfg GatewayConfig,
) GatewayService {
	if cfg.TimestampTolerance <= 0 {
		cfg.TimestampTolerance = 5 * time.Minute
	}
	return &gatewayService{
		keys:     keys,
		orgs:     orgs,
		features: features,
		limiter:  limiter,
		contacts: contacts,
		events:   events,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *gatewayService) Schemas() []ActionSchema {
	return ActionSchemas()
}

func (s *gatewayService) Handle(ctx context.Context, req GatewayRequest) (*GatewayResult, error) {
	sp := logger.StartSpan(ctx, "gateway.handle")
	defer sp.End()
	ctx = sp.Context()

	key, err := s.authenticate(ctx, req)
	if err != nil {
		sp.Fail(err)
		return nil, err
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		OrganizationID: logger.Ptr(key.OrganizationID),
		APIKeyID:       logger.Ptr(key.ID),
		Component:      "relay.gateway",
	})

	if err := s.checkOrganization(ctx, key.OrganizationID); err != nil {
		sp.Fail(err)
		return nil, err
	}

	result := &GatewayResult{APIKeyID: key.ID}

	decision, err := s.limiter.Allow(ctx, fmt.Sprintf("apikey:%d", key.ID))
	switch {
	case err != nil:
		slog.ErrorContext(ctx, "rate limit check failed, allowing request", "error", err)
	default:
		result.RateLimit = &decision
		if !decision.Allowed {
			slog.WarnContext(ctx, "gateway rate limit exceeded",
				"limit", decision.Limit,
				"retry_after", decision.RetryAfter)
			return result, ErrRateLimited
		}
	}

	var envelope gatewayEnvelope
	if err := json.Unmarshal(req.Body, &envelope); err != nil {
		return result, invalid("body must be a JSON object with action and data")
	}
	envelope.Action = strings.TrimSpace(envelope.Action)
	result.Action = envelope.Action

	scope, ok := ActionScope(envelope.Action)
	if !ok {
		return result, invalid(fmt.Sprintf("unknown action %q", envelope.Action))
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{Action: logger.Ptr(envelope.Action)})

	if !apikey.Allows(key.Scopes, scope) {
		slog.WarnContext(ctx, "gateway scope denied", "required_scope", scope)
		return result, fmt.Errorf("api key lacks scope %s: %w", scope, ErrForbidden)
	}

	payload, err := decodeActionData(envelope.Action, envelope.Data)
	if err != nil {
		return result, err
	}

	data, created, err := s.execute(ctx, key.OrganizationID, envelope.Action, payload)
	if err != nil {
		sp.Fail(err)
		return result, err
	}

	slog.InfoContext(ctx, "gateway action executed")
	result.Data = data
	result.Created = created
	return result, nil
}

// authenticate runs the header, key and signature checks. Hash verification
// happens before the revoked and expired checks so key state is only revealed
// to holders of the secret.
func (s *gatewayService) authenticate(ctx context.Context, req GatewayRequest) (*model.APIKey, error) {
	if req.APIKey == "" || req.Timestamp == "" || req.Signature == "" {
		return nil, unauthorized("missing X-API-Key, X-Timestamp or X-Signature header")
	}

	if _, err := apikey.CheckTimestamp(req.Timestamp, s.now(), s.cfg.TimestampTolerance); err != nil {
		if errors.Is(err, apikey.ErrStaleTimestamp) {
			return nil, unauthorized("timestamp outside allowed window")
		}
		return nil, unauthorized("invalid timestamp")
	}

	prefix, secret, err := apikey.Parse(req.APIKey)
	if err != nil {
		return nil, unauthorized("invalid api key")
	}

	key, err := s.keys.GetByPrefix(ctx, prefix)
	if err != nil {
		if isNotFound(err) {
			return nil, unauthorized("invalid api key")
		}
		return nil, fmt.Errorf("loading api key: %w", err)
	}

	if !apikey.Verify(key.Salt, key.SecretHash, secret) {
		slog.WarnContext(ctx, "api key secret mismatch", "prefix", prefix)
		return nil, unauthorized("invalid api key")
	}
	if key.Revoked() {
		return nil, unauthorized("api key revoked")
	}
	if key.Expired(s.now()) {
		return nil, unauthorized("api key expired")
	}

	if err := apikey.VerifySignature(secret, req.Timestamp, req.Body, req.Signature); err != nil {
		slog.WarnContext(ctx, "gateway signature mismatch", "api_key_id", key.ID)
		return nil, unauthorized("invalid signature")
	}

	if err := s.keys.Touch(ctx, key.ID); err != nil {
		slog.WarnContext(ctx, "updating api key last use failed", "error", err, "api_key_id", key.ID)
	}

	return key, nil
}

func (s *gatewayService) checkOrganization(ctx context.Context, orgID int64) error {
	org, err := s.orgs.GetByID(ctx, orgID)
	if err != nil {
		return lookupErr("organization", err)
	}
	if org.IsSuspended() {
		return ErrOrganizationSuspended
	}

	enabled, err := s.features.IsEnabled(ctx, orgID, model.FeatureIntegrations)
	if err != nil {
		return err
	}
	if !enabled {
		return fmt.Errorf("%s: %w", model.FeatureIntegrations, ErrFeatureDisabled)
	}
	return nil
}

func (s *gatewayService) execute(ctx context.Context, orgID int64, action string, payload any) (any, bool, error) {
	switch p := payload.(type) {
	case *ContactCreateData:
		contact, err := s.contacts.Create(ctx, orgID, ContactInput{
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Email:     p.Email,
			Phone:     p.Phone,
			Company:   p.Company,
			Address:   p.Address,
			Notes:     p.Notes,
			Source:    GatewaySource,
		})
		return contact, err == nil, err

	case *ContactUpdateData:
		contactID, err := parseID("id", p.ID)
		if err != nil {
			return nil, false, err
		}
		contact, err := s.contacts.Update(ctx, orgID, contactID, ContactPatch{
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Email:     p.Email,
			Phone:     p.Phone,
			Company:   p.Company,
			Address:   p.Address,
			Notes:     p.Notes,
		})
		return contact, false, err

	case *EventCreateData:
		contactID, err := parseOptionalID("contact_id", p.ContactID)
		if err != nil {
			return nil, false, err
		}
		jobID, err := parseOptionalID("job_id", p.JobID)
		if err != nil {
			return nil, false, err
		}
		event, err := s.events.Create(ctx, orgID, EventInput{
			ContactID:    contactID,
			JobID:        jobID,
			Title:        p.Title,
			Description:  p.Description,
			Location:     p.Location,
			StartsAt:     p.StartsAt,
			EndsAt:       p.EndsAt,
			Source:       GatewaySource,
			AllowOverlap: p.AllowOverlap,
		})
		return event, err == nil, err

	case *EventUpdateData:
		eventID, err := parseID("id", p.ID)
		if err != nil {
			return nil, false, err
		}
		contactID, err := parseOptionalID("contact_id", p.ContactID)
		if err != nil {
			return nil, false, err
		}
		jobID, err := parseOptionalID("job_id", p.JobID)
		if err != nil {
			return nil, false, err
		}
		event, err := s.events.Update(ctx, orgID, eventID, EventPatch{
			ContactID:     contactID,
			JobID:         jobID,
			UnlinkContact: p.UnlinkContact,
			UnlinkJob:     p.UnlinkJob,
			Title:         p.Title,
			Description:   p.Description,
			Location:      p.Location,
			StartsAt:      p.StartsAt,
			EndsAt:        p.EndsAt,
			AllowOverlap:  p.AllowOverlap,
		})
		return event, false, err

	case *DeleteData:
		targetID, err := parseID("id", p.ID)
		if err != nil {
			return nil, false, err
		}
		if action == ActionContactDelete {
			err = s.contacts.Delete(ctx, orgID, targetID)
		} else {
			err = s.events.Delete(ctx, orgID, targetID)
		}
		if err != nil {
			return nil, false, err
		}
		return deletedRef(targetID), false, nil

	case *AvailabilityData:
		slot := time.Duration(p.SlotMinutes) * time.Minute
		availability, err := s.events.Availability(ctx, orgID, p.Start, p.End, slot)
		return availability, false, err
	}

	return nil, false, fmt.Errorf("no executor for action %s", action)
}

// SignRequest builds the headers an automation caller sends for body. It is
// used by the CLI and by tests.
func SignRequest(plaintextKey string, body []byte, at time.Time) (GatewayRequest, error) {
	_, secret, err := apikey.Parse(plaintextKey)
	if err != nil {
		return GatewayRequest{}, err
	}
	ts := fmt.Sprintf("%d", at.Unix())
	return GatewayRequest{
		APIKey:    plaintextKey,
		Timestamp: ts,
		Signature: apikey.Sign(secret, ts, body),
		Body:      body,
	}, nil
}
