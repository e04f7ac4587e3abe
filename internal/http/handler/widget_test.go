package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"fieldpro.app/relay/internal/http/handler"
	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/service"
)

var _ = Describe("WidgetHandler.PublicConfig", func() {
	var (
		router  *gin.Engine
		widgets *mockWidgetService
		cfg     *model.ChatWidgetConfig
	)

	get := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/widget/pub-123/config", nil)
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		cfg = &model.ChatWidgetConfig{
			OrganizationID: 100,
			PublicID:       "pub-123",
			Enabled:        true,
			Title:          "Chat with us",
			Position:       model.WidgetPositionBottomRight,
			AllowedOrigins: []string{"https://acme.example"},
		}
		widgets = &mockWidgetService{
			publicConfigFn: func(_ context.Context, publicID string) (*model.ChatWidgetConfig, error) {
				if publicID == cfg.PublicID {
					return cfg, nil
				}
				return nil, service.ErrNotFound
			},
		}
		router = gin.New()
		h := handler.NewWidgetHandler(widgets)
		router.GET("/widget/:public_id/config", h.PublicConfig)
	})

	It("serves the embed config without tenant data", func() {
		w := get("https://acme.example")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("https://acme.example"))

		var resp map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["title"]).To(Equal("Chat with us"))
		Expect(resp).NotTo(HaveKey("organization_id"))
		Expect(resp).NotTo(HaveKey("allowed_origins"))
	})

	It("refuses origins outside the allow list", func() {
		w := get("https://evil.example")
		Expect(w.Code).To(Equal(http.StatusForbidden))
	})

	It("allows any origin when the list is empty", func() {
		cfg.AllowedOrigins = nil
		w := get("https://anywhere.example")
		Expect(w.Code).To(Equal(http.StatusOK))
	})

	It("varies cached responses by origin even without one", func() {
		w := get("")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Cache-Control")).To(ContainSubstring("public"))
		Expect(w.Header().Get("Vary")).To(Equal("Origin"))
		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())

		Expect(get("https://acme.example").Header().Get("Vary")).To(Equal("Origin"))
	})

	It("hides disabled widgets", func() {
		widgets.publicConfigFn = nil
		w := get("")
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})
