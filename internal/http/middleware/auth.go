package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fieldpro.app/relay/common/logger"
	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/service"
)

type contextKey string

const (
	SessionCookieName    = "fieldpro_session"
	OrganizationIDHeader = "X-Organization-ID"

	userContextKey      contextKey = "user"
	sessionIDContextKey contextKey = "session_id"
	tenantContextKey    contextKey = "tenant"
)

// RequireSession validates the session cookie and stores the user on the
// request context.
func RequireSession(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		user, session, err := authService.ValidateSession(ctx, token)
		if err != nil {
			if errors.Is(err, service.ErrSessionExpired) || errors.Is(err, service.ErrUserNotFound) {
				clearSessionCookie(c)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
				return
			}
			slog.ErrorContext(ctx, "failed to validate session", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to validate session"})
			return
		}

		ctx = context.WithValue(ctx, userContextKey, user)
		ctx = context.WithValue(ctx, sessionIDContextKey, session.ID)
		ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: logger.Ptr(user.ID)})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireTenant resolves the organization the request acts on, from
// X-Organization-ID or the user's first membership. It must run after
// RequireSession.
func RequireTenant(userService service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		user := GetUser(ctx)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		var requested *int64
		if raw := c.GetHeader(OrganizationIDHeader); raw != "" {
			orgID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + OrganizationIDHeader})
				return
			}
			requested = &orgID
		}

		tenant, err := userService.ResolveTenant(ctx, user.ID, requested)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrForbidden):
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not a member of this organization"})
			case errors.Is(err, service.ErrOrganizationSuspended):
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "organization suspended"})
			case errors.Is(err, service.ErrNotFound):
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "no organization found"})
			default:
				slog.ErrorContext(ctx, "failed to resolve organization", "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve organization"})
			}
			return
		}

		ctx = context.WithValue(ctx, tenantContextKey, tenant)
		ctx = logger.WithLogFields(ctx, logger.LogFields{OrganizationID: logger.Ptr(tenant.Organization.ID)})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireManager allows only owners and admins of the resolved organization.
// It must run after RequireTenant.
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant := GetTenant(c.Request.Context())
		if tenant == nil || !tenant.Membership.CanManage() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "owner or admin role required"})
			return
		}
		c.Next()
	}
}

func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

func GetSessionID(ctx context.Context) int64 {
	sessionID, _ := ctx.Value(sessionIDContextKey).(int64)
	return sessionID
}

func GetTenant(ctx context.Context) *service.Tenant {
	tenant, _ := ctx.Value(tenantContextKey).(*service.Tenant)
	return tenant
}

// WithTenant stores user and tenant on ctx the way the auth middleware does.
func WithTenant(ctx context.Context, user *model.User, tenant *service.Tenant) context.Context {
	ctx = context.WithValue(ctx, userContextKey, user)
	return context.WithValue(ctx, tenantContextKey, tenant)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(
		SessionCookieName,
		"",
		-1,
		"/",
		"",
		false,
		true,
	)
}
