package middleware_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"fieldpro.app/relay/internal/http/middleware"
)

var _ = Describe("RequireAdminAPIKey", func() {
	newRouter := func(key string) *gin.Engine {
		router := gin.New()
		router.GET("/admin", middleware.RequireAdminAPIKey(key), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return router
	}

	call := func(router *gin.Engine, header, value string) int {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		if header != "" {
			req.Header.Set(header, value)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	It("is unavailable when no key is configured", func() {
		Expect(call(newRouter(""), "X-Admin-API-Key", "")).To(Equal(http.StatusServiceUnavailable))
	})

	It("accepts the key as a header or a bearer token", func() {
		router := newRouter("back-office")
		Expect(call(router, "X-Admin-API-Key", "back-office")).To(Equal(http.StatusOK))
		Expect(call(router, "Authorization", "Bearer back-office")).To(Equal(http.StatusOK))
	})

	It("rejects missing or wrong keys", func() {
		router := newRouter("back-office")
		Expect(call(router, "", "")).To(Equal(http.StatusUnauthorized))
		Expect(call(router, "X-Admin-API-Key", "back-offic")).To(Equal(http.StatusUnauthorized))
		Expect(call(router, "Authorization", "back-office")).To(Equal(http.StatusUnauthorized))
	})
})

var _ = Describe("Recovery and RequestID", func() {
	It("turns a panic into a 500", func() {
		router := gin.New()
		router.Use(middleware.Recovery())
		router.GET("/boom", func(c *gin.Context) { panic("boom") })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).To(MatchJSON(`{"error":"internal server error"}`))
	})

	It("echoes a caller request id and generates one otherwise", func() {
		router := gin.New()
		router.Use(middleware.RequestID())
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		Expect(w.Header().Get(middleware.RequestIDHeader)).To(Equal("req-1"))

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		Expect(w.Header().Get(middleware.RequestIDHeader)).To(HaveLen(36))
	})
})
