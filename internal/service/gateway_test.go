package service_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"fieldpro.app/relay/internal/apikey"
	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/ratelimit"
	"fieldpro.app/relay/internal/service"
	"fieldpro.app/relay/internal/store"
)

var _ = Describe("GatewayService", func() {
	const orgID = int64(42)

	var (
		ctx       context.Context
		svc       service.GatewayService
		keys      *mockAPIKeyStore
		orgs      *mockOrganizationStore
		flags     *mockFeatureFlagStore
		contacts  *mockContactStore
		events    *mockEventStore
		limiter   *mockLimiter
		publisher *mockPublisher
		issued    apikey.Issued
		stored    *model.APIKey
	)

	signed := func(body string) service.GatewayRequest {
		req, err := service.SignRequest(issued.Plaintext(), []byte(body), time.Now())
		Expect(err).NotTo(HaveOccurred())
		return req
	}

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		issued, err = apikey.Generate()
		Expect(err).NotTo(HaveOccurred())

		stored = &model.APIKey{
			ID:             7,
			OrganizationID: orgID,
			Name:           "n8n",
			Prefix:         issued.Prefix,
			Salt:           issued.Salt,
			SecretHash:     issued.SecretHash,
			Scopes:         []string{"contacts:*", "events:*"},
		}

		keys = &mockAPIKeyStore{
			getByPrefixFn: func(_ context.Context, prefix string) (*model.APIKey, error) {
				if prefix != stored.Prefix {
					return nil, store.ErrNotFound
				}
				return stored, nil
			},
		}
		orgs = &mockOrganizationStore{}
		flags = &mockFeatureFlagStore{}
		contacts = &mockContactStore{}
		events = &mockEventStore{}
		publisher = &mockPublisher{}
		limiter = &mockLimiter{decision: ratelimit.Decision{
			Allowed:   true,
			Limit:     60,
			Remaining: 59,
			ResetAt:   time.Now().Add(time.Second),
		}}

		features := service.NewFeatureService(flags, orgs)
		svc = service.NewGatewayService(
			keys,
			orgs,
			features,
			limiter,
			service.NewContactService(contacts, publisher),
			service.NewEventService(events, publisher),
			service.GatewayConfig{TimestampTolerance: 5 * time.Minute},
		)
	})

	Describe("authentication", func() {
		It("rejects requests with missing headers before touching the limiter", func() {
			req := signed(`{"action":"contact.create","data":{"first_name":"Ada"}}`)
			req.Signature = ""

			_, err := svc.Handle(ctx, req)
			Expect(errors.Is(err, service.ErrUnauthorized)).To(BeTrue())
			Expect(limiter.keys).To(BeEmpty())
		})

		It("rejects a stale timestamp", func() {
			req, err := service.SignRequest(issued.Plaintext(), []byte(`{}`), time.Now().Add(-10*time.Minute))
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.Handle(ctx, req)
			Expect(errors.Is(err, service.ErrUnauthorized)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("timestamp"))
		})

		It("rejects a non-numeric timestamp", func() {
			req := signed(`{}`)
			req.Timestamp = "yesterday"

			_, err := svc.Handle(ctx, req)
			Expect(errors.Is(err, service.ErrUnauthorized)).To(BeTrue())
		})

		It("rejects an unknown prefix", func() {
			stored.Prefix = "fp_somethingelse"

			_, err := svc.Handle(ctx, signed(`{}`))
			Expect(errors.Is(err, service.ErrUnauthorized)).To(BeTrue())
			Expect(err.Error()).To(Equal("invalid api key"))
		})

		It("rejects a malformed key", func() {
			req := signed(`{}`)
			req.APIKey = "not-a-key"

			_, err := svc.Handle(ctx, req)
			Expect(errors.Is(err, service.ErrUnauthorized)).To(BeTrue())
		})

		It("rejects the right prefix with the wrong secret", func() {
			other, err := apikey.Generate()
			Expect(err).NotTo(HaveOccurred())
			forged := issued.Prefix + "." + other.Secret

			req, err := service.SignRequest(forged, []byte(`{}`), time.Now())
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.Handle(ctx, req)
			Expect(errors.Is(err, service.ErrUnauthorized)).To(BeTrue())
			Expect(keys.touched).To(BeEmpty())
		})

		It("rejects a revoked key", func() {
			revokedAt := time.Now().Add(-time.Hour)
			stored.RevokedAt = &revokedAt

			_, err := svc.Handle(ctx, signed(`{}`))
			Expect(errors.Is(err, service.ErrUnauthorized)).To(BeTrue())
			Expect(err.Error()).To(Equal("api key revoked"))
		})

		It("rejects an expired key", func() {
			expiredAt := time.Now().Add(-time.Minute)
			stored.ExpiresAt = &expiredAt

			_, err := svc.Handle(ctx, signed(`{}`))
			Expect(errors.Is(err, service.ErrUnauthorized)).To(BeTrue())
			Expect(err.Error()).To(Equal("api key expired"))
		})

		It("rejects a body changed after signing", func() {
			req := signed(`{"action":"contact.create","data":{"first_name":"Ada"}}`)
			req.Body = []byte(`{"action":"contact.create","data":{"first_name":"Eve"}}`)

			_, err := svc.Handle(ctx, req)
			Expect(errors.Is(err, service.ErrUnauthorized)).To(BeTrue())
			Expect(err.Error()).To(Equal("invalid signature"))
			Expect(contacts.created).To(BeEmpty())
		})

		It("propagates store failures as internal errors", func() {
			keys.getByPrefixFn = func(_ context.Context, _ string) (*model.APIKey, error) {
				return nil, errors.New("connection reset")
			}

			_, err := svc.Handle(ctx, signed(`{}`))
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, service.ErrUnauthorized)).To(BeFalse())
		})
	})

	Describe("organization checks", func() {
		It("refuses suspended organizations", func() {
			orgs.getByIDFn = func(_ context.Context, id int64) (*model.Organization, error) {
				return &model.Organization{ID: id, Status: model.OrganizationStatusSuspended}, nil
			}

			_, err := svc.Handle(ctx, signed(`{"action":"contact.create","data":{"first_name":"Ada"}}`))
			Expect(errors.Is(err, service.ErrOrganizationSuspended)).To(BeTrue())
		})

		It("refuses organizations with integrations switched off", func() {
			flags.flags = map[string]bool{model.FeatureIntegrations: false}

			_, err := svc.Handle(ctx, signed(`{"action":"contact.create","data":{"first_name":"Ada"}}`))
			Expect(errors.Is(err, service.ErrFeatureDisabled)).To(BeTrue())
		})
	})

	Describe("rate limiting", func() {
		It("limits per api key and reports the decision", func() {
			result, err := svc.Handle(ctx, signed(`{"action":"contact.create","data":{"first_name":"Ada"}}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(limiter.keys).To(Equal([]string{fmt.Sprintf("apikey:%d", stored.ID)}))
			Expect(result.RateLimit).NotTo(BeNil())
			Expect(result.RateLimit.Remaining).To(Equal(59))
		})

		It("returns ErrRateLimited with the decision when denied", func() {
			limiter.decision = ratelimit.Decision{Allowed: false, Limit: 60, RetryAfter: time.Second}

			result, err := svc.Handle(ctx, signed(`{"action":"contact.create","data":{"first_name":"Ada"}}`))
			Expect(errors.Is(err, service.ErrRateLimited)).To(BeTrue())
			Expect(result).NotTo(BeNil())
			Expect(result.RateLimit.RetryAfter).To(Equal(time.Second))
			Expect(contacts.created).To(BeEmpty())
		})

		It("allows the request when the limiter itself fails", func() {
			limiter.err = errors.New("db down")

			result, err := svc.Handle(ctx, signed(`{"action":"contact.create","data":{"first_name":"Ada"}}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(result.RateLimit).To(BeNil())
			Expect(contacts.created).To(HaveLen(1))
		})
	})

	Describe("authorization and validation", func() {
		It("denies actions outside the key's scopes", func() {
			stored.Scopes = []string{"events:read"}

			result, err := svc.Handle(ctx, signed(`{"action":"contact.create","data":{"first_name":"Ada"}}`))
			Expect(errors.Is(err, service.ErrForbidden)).To(BeTrue())
			Expect(result.RateLimit).NotTo(BeNil())
			Expect(contacts.created).To(BeEmpty())
		})

		It("accepts the global wildcard", func() {
			stored.Scopes = []string{"*"}

			_, err := svc.Handle(ctx, signed(`{"action":"contact.delete","data":{"id":"99"}}`))
			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects unknown actions", func() {
			_, err := svc.Handle(ctx, signed(`{"action":"invoice.create","data":{}}`))
			Expect(errors.Is(err, service.ErrInvalidInput)).To(BeTrue())
		})

		It("rejects a body that is not JSON", func() {
			_, err := svc.Handle(ctx, signed(`action=contact.create`))
			Expect(errors.Is(err, service.ErrInvalidInput)).To(BeTrue())
		})

		It("rejects data that fails the action schema", func() {
			_, err := svc.Handle(ctx, signed(`{"action":"event.create","data":{"starts_at":"2026-03-02T09:00:00Z","ends_at":"2026-03-02T10:00:00Z"}}`))
			Expect(errors.Is(err, service.ErrInvalidInput)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("title"))
		})

		It("rejects unexpected properties", func() {
			_, err := svc.Handle(ctx, signed(`{"action":"contact.create","data":{"first_name":"Ada","favourite_color":"teal"}}`))
			Expect(errors.Is(err, service.ErrInvalidInput)).To(BeTrue())
		})

		It("rejects malformed ids", func() {
			_, err := svc.Handle(ctx, signed(`{"action":"contact.delete","data":{"id":"abc"}}`))
			Expect(errors.Is(err, service.ErrInvalidInput)).To(BeTrue())
		})
	})

	Describe("actions", func() {
		It("creates a contact attributed to the integration", func() {
			result, err := svc.Handle(ctx, signed(`{"action":"contact.create","data":{"first_name":"Ada","email":"ADA@example.com"}}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Created).To(BeTrue())
			Expect(result.Action).To(Equal(service.ActionContactCreate))
			Expect(result.APIKeyID).To(Equal(stored.ID))

			Expect(contacts.created).To(HaveLen(1))
			created := contacts.created[0]
			Expect(created.OrganizationID).To(Equal(orgID))
			Expect(created.Source).To(Equal(service.GatewaySource))
			Expect(*created.Email).To(Equal("ada@example.com"))

			Expect(keys.touched).To(Equal([]int64{stored.ID}))
			Expect(publisher.types()).To(Equal([]string{model.EventContactCreated}))
		})

		It("returns not found when updating a missing contact", func() {
			_, err := svc.Handle(ctx, signed(`{"action":"contact.update","data":{"id":"123","first_name":"Ada"}}`))
			Expect(errors.Is(err, service.ErrNotFound)).To(BeTrue())
		})

		It("refuses a booked slot unless overlap is allowed", func() {
			events.events = []model.Event{{
				ID:             1,
				OrganizationID: orgID,
				Title:          "Boiler service",
				StartsAt:       time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
				EndsAt:         time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
			}}
			body := `{"action":"event.create","data":{"title":"Quote visit","starts_at":"2026-03-02T09:30:00Z","ends_at":"2026-03-02T10:30:00Z"%s}}`

			_, err := svc.Handle(ctx, signed(fmt.Sprintf(body, "")))
			var conflict *service.ConflictError
			Expect(errors.As(err, &conflict)).To(BeTrue())
			Expect(conflict.Conflicts).To(HaveLen(1))
			Expect(errors.Is(err, service.ErrConflict)).To(BeTrue())

			result, err := svc.Handle(ctx, signed(fmt.Sprintf(body, `,"allow_overlap":true`)))
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Created).To(BeTrue())
			Expect(events.created).To(HaveLen(1))
			Expect(events.created[0].Source).To(Equal(service.GatewaySource))
		})

		It("checks availability for a window", func() {
			events.events = []model.Event{{
				ID:             1,
				OrganizationID: orgID,
				Title:          "Install",
				StartsAt:       time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
				EndsAt:         time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC),
			}}

			result, err := svc.Handle(ctx, signed(`{"action":"availability.check","data":{"start":"2026-03-02T09:00:00Z","end":"2026-03-02T12:00:00Z","slot_minutes":60}}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Created).To(BeFalse())

			availability, ok := result.Data.(*service.Availability)
			Expect(ok).To(BeTrue())
			Expect(availability.Available).To(BeFalse())
			Expect(availability.FreeSlots).To(HaveLen(2))
		})

		It("deletes an event and reports its id", func() {
			events.events = []model.Event{{ID: 55, OrganizationID: orgID}}

			result, err := svc.Handle(ctx, signed(`{"action":"event.delete","data":{"id":"55"}}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Data).To(Equal(map[string]string{"id": "55"}))
			Expect(publisher.types()).To(Equal([]string{model.EventEventDeleted}))
		})
	})

	It("publishes one schema per action", func() {
		schemas := svc.Schemas()
		Expect(schemas).To(HaveLen(7))
		Expect(schemas[0].Action).To(Equal(service.ActionAvailabilityCheck))
		for _, s := range schemas {
			Expect(s.Schema).NotTo(BeNil())
			Expect(apikey.Scopes).To(ContainElement(s.Scope))
		}
	})
})
