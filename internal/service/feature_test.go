package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/service"
	"fieldpro.app/relay/internal/store"
)

var _ = Describe("FeatureService", func() {
	var (
		ctx   context.Context
		flags *mockFeatureFlagStore
		orgs  *mockOrganizationStore
		svc   service.FeatureService
	)

	BeforeEach(func() {
		ctx = context.Background()
		flags = &mockFeatureFlagStore{}
		orgs = &mockOrganizationStore{}
		svc = service.NewFeatureService(flags, orgs)
	})

	It("falls back to defaults without overrides", func() {
		enabled, err := svc.IsEnabled(ctx, 1, model.FeatureIntegrations)
		Expect(err).NotTo(HaveOccurred())
		Expect(enabled).To(BeTrue())

		enabled, err = svc.IsEnabled(ctx, 1, model.FeatureChatWidget)
		Expect(err).NotTo(HaveOccurred())
		Expect(enabled).To(BeFalse())
	})

	It("applies overrides and marks them in the effective list", func() {
		_, err := svc.Set(ctx, 1, model.FeatureChatWidget, true)
		Expect(err).NotTo(HaveOccurred())

		features, err := svc.Effective(ctx, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(features).To(HaveLen(len(model.DefaultFeatures)))
		Expect(features).To(ContainElement(service.Feature{
			Key:        model.FeatureChatWidget,
			Enabled:    true,
			Default:    false,
			Overridden: true,
		}))
		Expect(features[0].Key).To(Equal(model.FeatureCalendar))
	})

	It("restores the default on reset", func() {
		_, err := svc.Set(ctx, 1, model.FeatureQuotes, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(svc.Reset(ctx, 1, model.FeatureQuotes)).To(Succeed())

		enabled, err := svc.IsEnabled(ctx, 1, model.FeatureQuotes)
		Expect(err).NotTo(HaveOccurred())
		Expect(enabled).To(BeTrue())
	})

	It("rejects unknown flags", func() {
		_, err := svc.Set(ctx, 1, "teleport", true)
		Expect(errors.Is(err, service.ErrInvalidInput)).To(BeTrue())
	})

	It("refuses to set flags for a missing organization", func() {
		orgs.getByIDFn = func(_ context.Context, _ int64) (*model.Organization, error) {
			return nil, store.ErrNotFound
		}
		_, err := svc.Set(ctx, 404, model.FeatureQuotes, true)
		Expect(errors.Is(err, service.ErrNotFound)).To(BeTrue())
	})
})
