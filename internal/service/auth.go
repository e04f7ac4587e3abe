package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/workos/workos-go/v6/pkg/usermanagement"

	"fieldpro.app/relay/common/id"
	"fieldpro.app/relay/core/config"
	"fieldpro.app/relay/internal/apikey"
	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/store"
)

const sessionTTL = 7 * 24 * time.Hour

var (
	ErrInvalidCode    = errors.New("invalid authorization code")
	ErrUserNotFound   = errors.New("user not found")
	ErrSessionExpired = errors.New("session expired")
)

// IdentityProvider is the hosted login the dashboard signs in through.
type IdentityProvider interface {
	AuthorizationURL(state string) (string, error)
	Authenticate(ctx context.Context, code string) (usermanagement.User, error)
}

type workOSProvider struct {
	cfg config.WorkOSConfig
}

func NewWorkOSProvider(cfg config.WorkOSConfig) IdentityProvider {
	usermanagement.SetAPIKey(cfg.APIKey)
	return &workOSProvider{cfg: cfg}
}

func (p *workOSProvider) AuthorizationURL(state string) (string, error) {
	url, err := usermanagement.GetAuthorizationURL(usermanagement.GetAuthorizationURLOpts{
		ClientID:    p.cfg.ClientID,
		RedirectURI: p.cfg.RedirectURI,
		State:       state,
		Provider:    "authkit",
	})
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

func (p *workOSProvider) Authenticate(ctx context.Context, code string) (usermanagement.User, error) {
	resp, err := usermanagement.AuthenticateWithCode(ctx, usermanagement.AuthenticateWithCodeOpts{
		ClientID: p.cfg.ClientID,
		Code:     code,
	})
	if err != nil {
		return usermanagement.User{}, err
	}
	return resp.User, nil
}

// IssuedSession is a new session plus the cookie token, which is not stored.
type IssuedSession struct {
	Session *model.Session
	Token   string
}

type AuthService interface {
	GetAuthorizationURL(state string) (string, error)
	HandleCallback(ctx context.Context, code string) (*model.User, *IssuedSession, error)
	ValidateSession(ctx context.Context, token string) (*model.User, *model.Session, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	provider     IdentityProvider
	userStore    store.UserStore
	sessionStore store.SessionStore
	orgStore     store.OrganizationStore
	orgs         OrganizationService
}

func NewAuthService(
	provider IdentityProvider,
	userStore store.UserStore,
	sessionStore store.SessionStore,
	orgStore store.OrganizationStore,
	orgs OrganizationService,
) AuthService {
	return &authService{
		provider:     provider,
		userStore:    userStore,
		sessionStore: sessionStore,
		orgStore:     orgStore,
		orgs:         orgs,
	}
}

func (s *authService) GetAuthorizationURL(state string) (string, error) {
	url, err := s.provider.AuthorizationURL(state)
	if err != nil {
		return "", fmt.Errorf("generating authorization URL: %w", err)
	}
	return url, nil
}

func (s *authService) HandleCallback(ctx context.Context, code string) (*model.User, *IssuedSession, error) {
	workosUser, err := s.provider.Authenticate(ctx, code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to authenticate with code", "error", err)
		return nil, nil, ErrInvalidCode
	}

	var avatarURL *string
	if workosUser.ProfilePictureURL != "" {
		avatarURL = &workosUser.ProfilePictureURL
	}

	user := &model.User{
		ID:        id.New(),
		Name:      buildUserName(workosUser),
		Email:     workosUser.Email,
		AvatarURL: avatarURL,
		WorkOSID:  &workosUser.ID,
	}

	if err := s.userStore.Upsert(ctx, user); err != nil {
		slog.ErrorContext(ctx, "failed to upsert user",
			"error", err,
			"email", user.Email,
			"workos_id", workosUser.ID,
		)
		return nil, nil, fmt.Errorf("upserting user: %w", err)
	}

	if err := s.ensureOrganization(ctx, user); err != nil {
		return nil, nil, err
	}

	token, tokenHash, err := apikey.NewToken()
	if err != nil {
		return nil, nil, fmt.Errorf("generating session token: %w", err)
	}
	session := &model.Session{
		ID:        id.New(),
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(sessionTTL),
	}

	if err := s.sessionStore.Create(ctx, session); err != nil {
		slog.ErrorContext(ctx, "failed to create session",
			"error", err,
			"user_id", user.ID,
		)
		return nil, nil, fmt.Errorf("creating session: %w", err)
	}

	slog.InfoContext(ctx, "user authenticated",
		"user_id", user.ID,
		"email", user.Email,
		"session_id", session.ID,
	)

	return user, &IssuedSession{Session: session, Token: token}, nil
}

// ensureOrganization gives a first-time user a workspace of their own.
func (s *authService) ensureOrganization(ctx context.Context, user *model.User) error {
	orgs, err := s.orgStore.ListByUser(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("listing organizations: %w", err)
	}
	if len(orgs) > 0 {
		return nil
	}

	org, err := s.orgs.CreateForOwner(ctx, user.Name+"'s Business", user.ID)
	if err != nil {
		return fmt.Errorf("creating first organization: %w", err)
	}
	slog.InfoContext(ctx, "created first organization", "user_id", user.ID, "organization_id", org.ID)
	return nil
}

// ValidateSession resolves a cookie token. Unknown and expired tokens both
// report ErrSessionExpired.
func (s *authService) ValidateSession(ctx context.Context, token string) (*model.User, *model.Session, error) {
	if token == "" {
		return nil, nil, ErrSessionExpired
	}
	session, err := s.sessionStore.GetValid(ctx, apikey.HashToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrSessionExpired
		}
		return nil, nil, fmt.Errorf("getting session: %w", err)
	}

	user, err := s.userStore.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("getting user: %w", err)
	}

	return user, session, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.sessionStore.Delete(ctx, apikey.HashToken(token)); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func buildUserName(user usermanagement.User) string {
	if user.FirstName != "" && user.LastName != "" {
		return user.FirstName + " " + user.LastName
	}
	if user.FirstName != "" {
		return user.FirstName
	}
	if user.LastName != "" {
		return user.LastName
	}
	return user.Email
}
