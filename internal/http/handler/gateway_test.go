package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"fieldpro.app/relay/internal/http/handler"
	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/ratelimit"
	"fieldpro.app/relay/internal/service"
)

var _ = Describe("GatewayHandler", func() {
	var (
		router  *gin.Engine
		gateway *mockGatewayService
		resetAt time.Time
	)

	decision := func(allowed bool, remaining int) *ratelimit.Decision {
		d := &ratelimit.Decision{Allowed: allowed, Limit: 60, Remaining: remaining, ResetAt: resetAt}
		if !allowed {
			d.RetryAfter = 1500 * time.Millisecond
		}
		return d
	}

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/integrations/n8n", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", "fp_abcdefabcdef.secret")
		req.Header.Set("X-Timestamp", "1767225600")
		req.Header.Set("X-Signature", "sha256=00ff")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		resetAt = time.Unix(1767225660, 0)
		router = gin.New()
		gateway = &mockGatewayService{}
		h := handler.NewGatewayHandler(gateway)
		router.POST("/api/integrations/n8n", h.Handle)
		router.GET("/api/integrations/n8n/schema", h.Schema)
	})

	It("passes the headers and the exact body bytes to the gateway", func() {
		body := `{"action":"availability.check",  "data":{}}`
		post(body)

		Expect(gateway.requests).To(HaveLen(1))
		req := gateway.requests[0]
		Expect(req.APIKey).To(Equal("fp_abcdefabcdef.secret"))
		Expect(req.Timestamp).To(Equal("1767225600"))
		Expect(req.Signature).To(Equal("sha256=00ff"))
		Expect(string(req.Body)).To(Equal(body))
	})

	It("returns 200 with rate limit headers on success", func() {
		gateway.handleFn = func(_ context.Context, _ service.GatewayRequest) (*service.GatewayResult, error) {
			return &service.GatewayResult{
				Action:    service.ActionAvailabilityCheck,
				Data:      map[string]bool{"available": true},
				RateLimit: decision(true, 59),
			}, nil
		}

		w := post(`{}`)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("X-RateLimit-Limit")).To(Equal("60"))
		Expect(w.Header().Get("X-RateLimit-Remaining")).To(Equal("59"))
		Expect(w.Header().Get("X-RateLimit-Reset")).To(Equal("1767225660"))
		Expect(w.Header().Get("Retry-After")).To(BeEmpty())

		var resp map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["action"]).To(Equal("availability.check"))
		Expect(resp["data"]).To(HaveKeyWithValue("available", true))
	})

	It("returns 201 for creates", func() {
		gateway.handleFn = func(_ context.Context, _ service.GatewayRequest) (*service.GatewayResult, error) {
			return &service.GatewayResult{
				Action:    service.ActionContactCreate,
				Data:      &model.Contact{ID: 9007199254740993, FirstName: "Grace"},
				Created:   true,
				RateLimit: decision(true, 10),
			}, nil
		}

		w := post(`{}`)
		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(w.Body.String()).To(ContainSubstring(`"id":"9007199254740993"`))
	})

	It("returns 429 with Retry-After when the limiter denies", func() {
		gateway.handleFn = func(_ context.Context, _ service.GatewayRequest) (*service.GatewayResult, error) {
			return &service.GatewayResult{RateLimit: decision(false, 0)}, service.ErrRateLimited
		}

		w := post(`{}`)
		Expect(w.Code).To(Equal(http.StatusTooManyRequests))
		Expect(w.Header().Get("X-RateLimit-Remaining")).To(Equal("0"))
		Expect(w.Header().Get("Retry-After")).To(Equal("2"))
		Expect(w.Body.String()).To(MatchJSON(`{"error":"rate limit exceeded"}`))
	})

	It("keeps rate limit headers on errors after the limiter ran", func() {
		gateway.handleFn = func(_ context.Context, _ service.GatewayRequest) (*service.GatewayResult, error) {
			return &service.GatewayResult{RateLimit: decision(true, 3)}, fmt.Errorf("scope events:create required: %w", service.ErrForbidden)
		}

		w := post(`{}`)
		Expect(w.Code).To(Equal(http.StatusForbidden))
		Expect(w.Header().Get("X-RateLimit-Remaining")).To(Equal("3"))
	})

	DescribeTable("maps errors to status codes",
		func(err error, status int) {
			gateway.handleFn = func(_ context.Context, _ service.GatewayRequest) (*service.GatewayResult, error) {
				return nil, err
			}

			w := post(`{}`)
			Expect(w.Code).To(Equal(status))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp).To(HaveKey("error"))
			Expect(w.Header().Get("X-RateLimit-Limit")).To(BeEmpty())
		},
		Entry("unauthorized", fmt.Errorf("invalid signature: %w", service.ErrUnauthorized), http.StatusUnauthorized),
		Entry("invalid input", fmt.Errorf("unknown action: %w", service.ErrInvalidInput), http.StatusBadRequest),
		Entry("suspended", service.ErrOrganizationSuspended, http.StatusForbidden),
		Entry("feature disabled", service.ErrFeatureDisabled, http.StatusForbidden),
		Entry("not found", fmt.Errorf("contact %w", service.ErrNotFound), http.StatusNotFound),
		Entry("conflict", service.ErrConflict, http.StatusConflict),
		Entry("unexpected", fmt.Errorf("connection reset"), http.StatusInternalServerError),
	)

	It("returns the overlapping events on a calendar conflict", func() {
		gateway.handleFn = func(_ context.Context, _ service.GatewayRequest) (*service.GatewayResult, error) {
			return nil, &service.ConflictError{Conflicts: []model.Event{{ID: 42, Title: "Leak repair"}}}
		}

		w := post(`{}`)
		Expect(w.Code).To(Equal(http.StatusConflict))

		var resp struct {
			Error     string `json:"error"`
			Conflicts []struct {
				ID    string `json:"id"`
				Title string `json:"title"`
			} `json:"conflicts"`
		}
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Conflicts).To(HaveLen(1))
		Expect(resp.Conflicts[0].ID).To(Equal("42"))
	})

	It("rejects oversized bodies without calling the gateway", func() {
		req := httptest.NewRequest(http.MethodPost, "/api/integrations/n8n", bytes.NewReader(make([]byte, 2<<20)))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusRequestEntityTooLarge))
		Expect(gateway.requests).To(BeEmpty())
	})

	It("publishes a schema per action", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/integrations/n8n/schema", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		var resp struct {
			Actions map[string]struct {
				Scope  string         `json:"scope"`
				Schema map[string]any `json:"schema"`
			} `json:"actions"`
		}
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Actions).To(HaveKey("contact.create"))
		Expect(resp.Actions["event.create"].Scope).To(Equal("events:create"))
		Expect(resp.Actions["event.create"].Schema).To(HaveKey("properties"))
	})
})
