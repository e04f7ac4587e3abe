package worker_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/queue"
	"fieldpro.app/relay/internal/worker"
)

var _ = Describe("Worker", func() {
	var (
		ctx        context.Context
		consumer   *mockConsumer
		endpoints  *mockEndpointStore
		deliveries *mockDeliveryStore
		sender     *mockSender
		w          *worker.Worker
		endpoint   *model.WebhookEndpoint
		delivery   *model.WebhookDelivery
	)

	message := func(attempt int) queue.Message {
		return queue.Message{
			ID:             "1-0",
			DeliveryID:     100,
			OrganizationID: 1,
			EndpointID:     10,
			EventType:      model.EventContactCreated,
			Attempt:        attempt,
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		endpoint = &model.WebhookEndpoint{ID: 10, OrganizationID: 1, URL: "https://hooks.example.com", Secret: "s", Active: true, EventTypes: []string{"*"}}
		delivery = &model.WebhookDelivery{ID: 100, OrganizationID: 1, EndpointID: 10, EventType: model.EventContactCreated, Status: model.DeliveryStatusPending, Payload: []byte(`{}`)}

		consumer = &mockConsumer{}
		endpoints = &mockEndpointStore{
			lookupFn: func(context.Context, int64) (*model.WebhookEndpoint, error) { return endpoint, nil },
		}
		deliveries = &mockDeliveryStore{
			getByIDFn: func(context.Context, int64) (*model.WebhookDelivery, error) { return delivery, nil },
		}
		sender = &mockSender{}
		w = worker.New(consumer, &mockStores{endpoints: endpoints, deliveries: deliveries}, sender, worker.Config{MaxAttempts: 3})
	})

	Context("when the endpoint answers 2xx", func() {
		It("records delivered and acks", func() {
			Expect(w.Handle(ctx, message(1))).To(Succeed())

			Expect(sender.calls).To(Equal(1))
			Expect(deliveries.attempts).To(HaveLen(1))
			Expect(deliveries.attempts[0].status).To(Equal(model.DeliveryStatusDelivered))
			Expect(*deliveries.attempts[0].statusCode).To(Equal(int32(200)))
			Expect(consumer.acked).To(ConsistOf("1-0"))
			Expect(consumer.requeued).To(BeEmpty())
		})
	})

	Context("when the endpoint fails", func() {
		BeforeEach(func() {
			sender.sendFn = func(context.Context, *model.WebhookEndpoint, *model.WebhookDelivery) (int, error) {
				return 500, errors.New("endpoint returned 500")
			}
		})

		It("keeps the row pending and requeues below max attempts", func() {
			Expect(w.Handle(ctx, message(1))).To(HaveOccurred())

			Expect(deliveries.attempts).To(HaveLen(1))
			Expect(deliveries.attempts[0].status).To(Equal(model.DeliveryStatusPending))
			Expect(*deliveries.attempts[0].lastErr).To(ContainSubstring("500"))
			Expect(consumer.requeued).To(ConsistOf("1-0"))
			Expect(consumer.dlq).To(BeEmpty())
			Expect(consumer.acked).To(BeEmpty())
		})

		It("marks failed and dead-letters at max attempts", func() {
			Expect(w.Handle(ctx, message(3))).To(HaveOccurred())

			Expect(deliveries.attempts[0].status).To(Equal(model.DeliveryStatusFailed))
			Expect(consumer.dlq).To(ConsistOf("1-0"))
			Expect(consumer.requeued).To(BeEmpty())
		})

		It("records no status code when the request never got a response", func() {
			sender.sendFn = func(context.Context, *model.WebhookEndpoint, *model.WebhookDelivery) (int, error) {
				return 0, errors.New("connection refused")
			}
			_ = w.Handle(ctx, message(1))
			Expect(deliveries.attempts[0].statusCode).To(BeNil())
		})
	})

	It("skips deliveries that already succeeded", func() {
		delivery.Status = model.DeliveryStatusDelivered

		Expect(w.Handle(ctx, message(2))).To(Succeed())
		Expect(sender.calls).To(BeZero())
		Expect(consumer.acked).To(ConsistOf("1-0"))
	})

	It("abandons deliveries to inactive endpoints", func() {
		endpoint.Active = false

		Expect(w.Handle(ctx, message(1))).To(Succeed())
		Expect(sender.calls).To(BeZero())
		Expect(deliveries.attempts).To(HaveLen(1))
		Expect(deliveries.attempts[0].status).To(Equal(model.DeliveryStatusFailed))
		Expect(consumer.acked).To(ConsistOf("1-0"))
	})

	It("drops messages whose delivery row is gone", func() {
		deliveries.getByIDFn = nil

		Expect(w.Handle(ctx, message(1))).To(Succeed())
		Expect(sender.calls).To(BeZero())
		Expect(consumer.acked).To(ConsistOf("1-0"))
	})

	It("recovers from a panicking sender and requeues", func() {
		sender.sendFn = func(context.Context, *model.WebhookEndpoint, *model.WebhookDelivery) (int, error) {
			panic("boom")
		}

		err := w.Handle(ctx, message(1))
		Expect(err).To(MatchError(ContainSubstring("panic: boom")))
		Expect(consumer.requeued).To(ConsistOf("1-0"))
	})

	It("abandons a delivery straight to the DLQ without sending", func() {
		Expect(w.Abandon(ctx, message(2), "abandoned after 6 claims")).To(Succeed())

		Expect(sender.calls).To(BeZero())
		Expect(deliveries.attempts).To(HaveLen(1))
		Expect(deliveries.attempts[0].status).To(Equal(model.DeliveryStatusFailed))
		Expect(*deliveries.attempts[0].lastErr).To(Equal("abandoned after 6 claims"))
		Expect(consumer.dlq).To(ConsistOf("1-0"))
	})

	It("promotes due retries before each read, even when promotion fails", func() {
		consumer.promoteFn = func(context.Context) (int, error) {
			return 0, errors.New("redis unavailable")
		}
		promotedAtRead := make(chan int, 1)
		consumer.readFn = func(context.Context) ([]queue.Message, error) {
			select {
			case promotedAtRead <- consumer.promotes:
			default:
			}
			time.Sleep(5 * time.Millisecond)
			return nil, nil
		}

		done := make(chan error, 1)
		go func() { done <- w.Run(ctx) }()

		Eventually(promotedAtRead).Should(Receive(Equal(1)))
		w.Stop()
		Eventually(done).Should(Receive(BeNil()))
	})

	It("processes batches until stopped", func() {
		sent := make(chan struct{}, 1)
		sender.sendFn = func(context.Context, *model.WebhookEndpoint, *model.WebhookDelivery) (int, error) {
			sent <- struct{}{}
			return 200, nil
		}
		reads := 0
		consumer.readFn = func(context.Context) ([]queue.Message, error) {
			reads++
			if reads == 1 {
				return []queue.Message{message(1)}, nil
			}
			time.Sleep(5 * time.Millisecond)
			return nil, nil
		}

		done := make(chan error, 1)
		go func() { done <- w.Run(ctx) }()

		Eventually(sent).Should(Receive())
		w.Stop()
		Eventually(done).Should(Receive(BeNil()))
	})
})

var _ = Describe("Janitor", func() {
	It("prunes buckets older than the retention and clears sessions", func() {
		pruner := &mockPruner{}
		sessionsCleared := 0
		j := worker.NewJanitor(pruner, func(context.Context) error {
			sessionsCleared++
			return nil
		}, time.Minute, time.Hour)

		j.RunOnce(context.Background())

		Expect(pruner.before).To(HaveLen(1))
		Expect(pruner.before[0]).To(BeTemporally("~", time.Now().Add(-time.Hour), time.Second))
		Expect(sessionsCleared).To(Equal(1))
	})
})
