package handler

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldpro.app/relay/internal/http/dto"
	"fieldpro.app/relay/internal/http/middleware"
	"fieldpro.app/relay/internal/service"
)

const (
	stateCookieName = "fieldpro_oauth_state"
	sessionMaxAge   = 7 * 24 * 60 * 60
)

type AuthHandler struct {
	authService  service.AuthService
	userService  service.UserService
	dashboardURL string
	isProduction bool
}

func NewAuthHandler(
	authService service.AuthService,
	userService service.UserService,
	dashboardURL string,
	isProduction bool,
) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		userService:  userService,
		dashboardURL: dashboardURL,
		isProduction: isProduction,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	state, err := generateState()
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to generate state", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initiate login"})
		return
	}

	authURL, err := h.authService.GetAuthorizationURL(state)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to get authorization URL", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initiate login"})
		return
	}

	c.SetCookie(stateCookieName, state, 600, "/", "", h.isProduction, true)
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

func (h *AuthHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()

	code := c.Query("code")
	state := c.Query("state")

	if errorParam := c.Query("error"); errorParam != "" {
		slog.WarnContext(ctx, "OAuth error", "error", errorParam, "description", c.Query("error_description"))
		c.Redirect(http.StatusTemporaryRedirect, h.dashboardURL+"?auth_error=oauth")
		return
	}

	storedState, err := c.Cookie(stateCookieName)
	if err != nil || state == "" || state != storedState {
		slog.WarnContext(ctx, "state mismatch")
		c.Redirect(http.StatusTemporaryRedirect, h.dashboardURL+"?auth_error=invalid_state")
		return
	}
	c.SetCookie(stateCookieName, "", -1, "/", "", h.isProduction, true)

	if code == "" {
		c.Redirect(http.StatusTemporaryRedirect, h.dashboardURL+"?auth_error=no_code")
		return
	}

	user, issued, err := h.authService.HandleCallback(ctx, code)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCode) {
			slog.WarnContext(ctx, "invalid authorization code", "error", err)
			c.Redirect(http.StatusTemporaryRedirect, h.dashboardURL+"?auth_error=invalid_code")
			return
		}
		slog.ErrorContext(ctx, "failed to handle callback", "error", err)
		c.Redirect(http.StatusTemporaryRedirect, h.dashboardURL+"?auth_error=callback_failed")
		return
	}

	c.SetCookie(
		middleware.SessionCookieName,
		issued.Token,
		sessionMaxAge,
		"/",
		"",
		h.isProduction,
		true,
	)

	slog.InfoContext(ctx, "user logged in", "user_id", user.ID)
	c.Redirect(http.StatusTemporaryRedirect, h.dashboardURL+"/dashboard")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	if token, err := c.Cookie(middleware.SessionCookieName); err == nil && token != "" {
		if err := h.authService.Logout(ctx, token); err != nil {
			slog.WarnContext(ctx, "failed to delete session", "error", err)
		}
	}

	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", h.isProduction, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me runs behind RequireSession.
func (h *AuthHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()

	user := middleware.GetUser(ctx)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	profile, orgs, err := h.userService.GetProfile(ctx, user.ID)
	if err != nil {
		respondError(c, err, "failed to load profile")
		return
	}

	c.JSON(http.StatusOK, dto.MeResponse{User: profile, Organizations: orgs})
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
