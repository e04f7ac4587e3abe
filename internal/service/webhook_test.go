package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/service"
)

var _ = Describe("WebhookService", func() {
	var (
		ctx        context.Context
		endpoints  *mockWebhookEndpointStore
		deliveries *mockWebhookDeliveryStore
		publisher  *mockPublisher
		svc        service.WebhookService
	)

	BeforeEach(func() {
		ctx = context.Background()
		endpoints = &mockWebhookEndpointStore{}
		deliveries = &mockWebhookDeliveryStore{}
		publisher = &mockPublisher{}
		svc = service.NewWebhookService(endpoints, deliveries, publisher)
	})

	It("generates a signing secret and subscribes to everything by default", func() {
		created, err := svc.Create(ctx, 1, service.WebhookInput{URL: "https://hooks.example.com/fieldpro"})
		Expect(err).NotTo(HaveOccurred())
		Expect(created.Secret).To(HavePrefix("whsec_"))
		Expect(created.Endpoint.Secret).To(Equal(created.Secret))
		Expect(created.Endpoint.EventTypes).To(Equal([]string{"*"}))
		Expect(created.Endpoint.Active).To(BeTrue())
	})

	DescribeTable("rejects invalid endpoints",
		func(input service.WebhookInput) {
			_, err := svc.Create(ctx, 1, input)
			Expect(errors.Is(err, service.ErrInvalidInput)).To(BeTrue())
		},
		Entry("relative url", service.WebhookInput{URL: "/hooks"}),
		Entry("unsupported scheme", service.WebhookInput{URL: "ftp://example.com"}),
		Entry("unknown event type", service.WebhookInput{URL: "https://example.com", EventTypes: []string{"invoice.exploded"}}),
	)

	It("refuses to send a test to an inactive endpoint", func() {
		endpoints.endpoints = []model.WebhookEndpoint{{ID: 3, OrganizationID: 1, Active: false}}
		_, err := svc.SendTest(ctx, 1, 3)
		Expect(errors.Is(err, service.ErrConflict)).To(BeTrue())
	})

	It("queues a test delivery", func() {
		endpoints.endpoints = []model.WebhookEndpoint{{ID: 3, OrganizationID: 1, Active: true, EventTypes: []string{"contact.created"}}}
		delivery, err := svc.SendTest(ctx, 1, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(delivery.EventType).To(Equal(model.EventWebhookTest))
	})
})

var _ = Describe("Publisher", func() {
	var (
		ctx        context.Context
		endpoints  *mockWebhookEndpointStore
		deliveries *mockWebhookDeliveryStore
		producer   *mockProducer
		pub        service.Publisher
	)

	BeforeEach(func() {
		ctx = context.Background()
		endpoints = &mockWebhookEndpointStore{endpoints: []model.WebhookEndpoint{
			{ID: 1, OrganizationID: 9, Active: true, EventTypes: []string{"*"}},
			{ID: 2, OrganizationID: 9, Active: true, EventTypes: []string{model.EventEventCreated}},
			{ID: 3, OrganizationID: 9, Active: false, EventTypes: []string{"*"}},
			{ID: 4, OrganizationID: 8, Active: true, EventTypes: []string{"*"}},
		}}
		deliveries = &mockWebhookDeliveryStore{}
		producer = &mockProducer{}
		pub = service.NewPublisher(endpoints, deliveries, producer)
	})

	It("writes and queues one delivery per subscribed active endpoint", func() {
		pub.Publish(ctx, 9, model.EventContactCreated, &model.Contact{ID: 123456789012345678, FirstName: "Ada"})

		Expect(deliveries.created).To(HaveLen(1))
		Expect(producer.messages).To(HaveLen(1))
		Expect(producer.messages[0].EndpointID).To(Equal(int64(1)))
		Expect(producer.messages[0].DeliveryID).To(Equal(deliveries.created[0].ID))

		var envelope map[string]any
		Expect(json.Unmarshal(deliveries.created[0].Payload, &envelope)).To(Succeed())
		Expect(envelope["type"]).To(Equal(model.EventContactCreated))
		Expect(envelope["id"]).To(Equal(strconv.FormatInt(deliveries.created[0].ID, 10)))
		Expect(envelope["data"]).To(HaveKeyWithValue("id", "123456789012345678"))
	})

	It("keeps the delivery row when the queue is unavailable", func() {
		producer.err = errors.New("redis down")
		delivery, err := pub.Deliver(ctx, &endpoints.endpoints[0], model.EventWebhookTest, map[string]string{})
		Expect(err).To(HaveOccurred())
		Expect(delivery).NotTo(BeNil())
		Expect(deliveries.created).To(HaveLen(1))
	})
})
