package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"fieldpro.app/relay/common/logger"
	"fieldpro.app/relay/internal/http/middleware"
	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/service"
)

const liveToken = "b2Zm0kXq7JcWn4pR1sTuV9yZaEdGhLmN3oQrS5vX8wA"

var _ = Describe("session and tenant middleware", func() {
	var (
		router  *gin.Engine
		auth    *mockAuthService
		users   *mockUserService
		user    *model.User
		tenant  *service.Tenant
		seenOrg int64
	)

	get := func(cookie, orgHeader string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if cookie != "" {
			req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: cookie})
		}
		if orgHeader != "" {
			req.Header.Set(middleware.OrganizationIDHeader, orgHeader)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		seenOrg = 0
		user = &model.User{ID: 7, Email: "ada@example.com"}
		tenant = &service.Tenant{
			Organization: &model.Organization{ID: 100, Status: model.OrganizationStatusActive},
			Membership:   &model.Membership{OrganizationID: 100, UserID: 7, Role: model.RoleMember},
		}
		auth = &mockAuthService{
			validateSessionFn: func(_ context.Context, token string) (*model.User, *model.Session, error) {
				if token == liveToken {
					return user, &model.Session{ID: 55, UserID: user.ID}, nil
				}
				return nil, nil, service.ErrSessionExpired
			},
		}
		users = &mockUserService{
			resolveTenantFn: func(_ context.Context, _ int64, orgID *int64) (*service.Tenant, error) {
				if orgID == nil || *orgID == 100 {
					return tenant, nil
				}
				return nil, service.ErrForbidden
			},
		}

		router = gin.New()
		router.GET("/protected",
			middleware.RequireSession(auth),
			middleware.RequireTenant(users),
			func(c *gin.Context) {
				ctx := c.Request.Context()
				seenOrg = middleware.GetTenant(ctx).Organization.ID
				fields := logger.GetLogFields(ctx)
				Expect(*fields.UserID).To(Equal(int64(7)))
				Expect(*fields.OrganizationID).To(Equal(int64(100)))
				Expect(middleware.GetSessionID(ctx)).To(Equal(int64(55)))
				c.Status(http.StatusOK)
			})
	})

	It("rejects requests without a session cookie", func() {
		w := get("", "")
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("clears the cookie when the session expired", func() {
		w := get("stale-token", "")
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(w.Header().Get("Set-Cookie")).To(ContainSubstring(middleware.SessionCookieName + "=;"))
	})

	It("resolves the default organization", func() {
		w := get(liveToken, "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(seenOrg).To(Equal(int64(100)))
	})

	It("honors the organization header", func() {
		w := get(liveToken, "100")
		Expect(w.Code).To(Equal(http.StatusOK))
	})

	It("refuses organizations the user does not belong to", func() {
		w := get(liveToken, "200")
		Expect(w.Code).To(Equal(http.StatusForbidden))
	})

	It("rejects a malformed organization header", func() {
		w := get(liveToken, "acme")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("blocks suspended organizations", func() {
		users.resolveTenantFn = func(_ context.Context, _ int64, _ *int64) (*service.Tenant, error) {
			return nil, service.ErrOrganizationSuspended
		}
		w := get(liveToken, "")
		Expect(w.Code).To(Equal(http.StatusForbidden))
		Expect(w.Body.String()).To(ContainSubstring("suspended"))
	})

	Describe("RequireManager", func() {
		BeforeEach(func() {
			router = gin.New()
			router.GET("/protected",
				middleware.RequireSession(auth),
				middleware.RequireTenant(users),
				middleware.RequireManager(),
				func(c *gin.Context) { c.Status(http.StatusOK) })
		})

		It("refuses plain members", func() {
			Expect(get(liveToken, "").Code).To(Equal(http.StatusForbidden))
		})

		It("admits admins and owners", func() {
			tenant.Membership.Role = model.RoleAdmin
			Expect(get(liveToken, "").Code).To(Equal(http.StatusOK))

			tenant.Membership.Role = model.RoleOwner
			Expect(get(liveToken, "").Code).To(Equal(http.StatusOK))
		})
	})
})
