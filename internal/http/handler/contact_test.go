package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"fieldpro.app/relay/internal/http/handler"
	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/service"
)

var _ = Describe("ContactHandler", func() {
	var (
		router   *gin.Engine
		contacts *mockContactService
	)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		router = gin.New()
		contacts = &mockContactService{}
		h := handler.NewContactHandler(contacts)
		rg := router.Group("/contacts", withTenant(100, model.RoleMember))
		rg.GET("", h.List)
		rg.POST("", h.Create)
		rg.GET("/:id", h.Get)
		rg.PATCH("/:id", h.Update)
		rg.DELETE("/:id", h.Delete)
	})

	Describe("Create", func() {
		It("creates the contact in the caller's organization", func() {
			var gotOrg int64
			var gotInput service.ContactInput
			contacts.createFn = func(_ context.Context, orgID int64, input service.ContactInput) (*model.Contact, error) {
				gotOrg, gotInput = orgID, input
				return &model.Contact{ID: 5, OrganizationID: orgID, FirstName: input.FirstName}, nil
			}

			w := do(http.MethodPost, "/contacts", `{"first_name":"Grace","email":"grace@example.com"}`)
			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(gotOrg).To(Equal(int64(100)))
			Expect(gotInput.FirstName).To(Equal("Grace"))
			Expect(*gotInput.Email).To(Equal("grace@example.com"))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["id"]).To(Equal("5"))
			Expect(resp["organization_id"]).To(Equal("100"))
		})

		It("rejects a body that fails binding", func() {
			w := do(http.MethodPost, "/contacts", `{"email":"not-an-email"}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("surfaces service validation as 400", func() {
			contacts.createFn = func(_ context.Context, _ int64, _ service.ContactInput) (*model.Contact, error) {
				return nil, fmt.Errorf("email already used: %w", service.ErrInvalidInput)
			}

			w := do(http.MethodPost, "/contacts", `{"first_name":"Grace"}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("email already used"))
		})
	})

	It("returns 404 for a contact outside the organization", func() {
		w := do(http.MethodGet, "/contacts/77", "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("rejects a malformed id", func() {
		w := do(http.MethodGet, "/contacts/abc", "")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("passes search and paging to the service and never returns null", func() {
		var gotSearch string
		var gotPage service.PageRequest
		contacts.listFn = func(_ context.Context, _ int64, search string, page service.PageRequest) ([]model.Contact, error) {
			gotSearch, gotPage = search, page
			return nil, nil
		}

		w := do(http.MethodGet, "/contacts?q=hopper&limit=10&offset=20", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(gotSearch).To(Equal("hopper"))
		Expect(gotPage).To(Equal(service.PageRequest{Limit: 10, Offset: 20}))
		Expect(w.Body.String()).To(MatchJSON(`{"contacts":[]}`))
	})

	It("deletes with 204", func() {
		var deleted int64
		contacts.deleteFn = func(_ context.Context, _, id int64) error {
			deleted = id
			return nil
		}

		w := do(http.MethodDelete, "/contacts/12", "")
		Expect(w.Code).To(Equal(http.StatusNoContent))
		Expect(deleted).To(Equal(int64(12)))
	})

	It("applies a partial update", func() {
		contacts.updateFn = func(_ context.Context, orgID, id int64, patch service.ContactPatch) (*model.Contact, error) {
			Expect(patch.FirstName).To(BeNil())
			Expect(*patch.Phone).To(Equal("+1 555 0100"))
			return &model.Contact{ID: id, OrganizationID: orgID, Phone: patch.Phone}, nil
		}

		w := do(http.MethodPatch, "/contacts/12", `{"phone":"+1 555 0100"}`)
		Expect(w.Code).To(Equal(http.StatusOK))
	})
})
