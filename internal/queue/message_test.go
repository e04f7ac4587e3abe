package queue_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"fieldpro.app/relay/internal/queue"
)

var _ = Describe("ParseMessage", func() {
	It("parses a delivery message as written by the producer", func() {
		msg, err := queue.ParseMessage(redis.XMessage{
			ID: "1700000000000-0",
			Values: map[string]any{
				"delivery_id":     "42",
				"organization_id": "7",
				"endpoint_id":     "9",
				"event_type":      "contact.created",
				"attempt":         "2",
				"trace_id":        "abc",
			},
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(msg.ID).To(Equal("1700000000000-0"))
		Expect(msg.DeliveryID).To(Equal(int64(42)))
		Expect(msg.OrganizationID).To(Equal(int64(7)))
		Expect(msg.EndpointID).To(Equal(int64(9)))
		Expect(msg.EventType).To(Equal("contact.created"))
		Expect(msg.Attempt).To(Equal(2))
		Expect(msg.TraceID).To(Equal("abc"))
	})

	It("defaults attempt to 1", func() {
		msg, err := queue.ParseMessage(redis.XMessage{
			Values: map[string]any{
				"delivery_id":     "1",
				"organization_id": "1",
				"endpoint_id":     "1",
				"event_type":      "webhook.test",
			},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(msg.Attempt).To(Equal(1))
	})

	DescribeTable("rejects incomplete messages",
		func(values map[string]any, want string) {
			_, err := queue.ParseMessage(redis.XMessage{Values: values})
			Expect(err).To(MatchError(ContainSubstring(want)))
		},
		Entry("no delivery id", map[string]any{"organization_id": "1", "endpoint_id": "1", "event_type": "x"}, "missing delivery_id"),
		Entry("bad endpoint id", map[string]any{"delivery_id": "1", "organization_id": "1", "endpoint_id": "x", "event_type": "x"}, "parsing endpoint_id"),
		Entry("no event type", map[string]any{"delivery_id": "1", "organization_id": "1", "endpoint_id": "1"}, "missing event_type"),
		Entry("bad attempt", map[string]any{"delivery_id": "1", "organization_id": "1", "endpoint_id": "1", "event_type": "x", "attempt": "two"}, "parsing attempt"),
	)
})

var _ = Describe("RetryDelay", func() {
	It("doubles per attempt up to the cap", func() {
		base := 100 * time.Millisecond
		limit := time.Second

		Expect(queue.RetryDelay(base, limit, 1)).To(Equal(100 * time.Millisecond))
		Expect(queue.RetryDelay(base, limit, 2)).To(Equal(200 * time.Millisecond))
		Expect(queue.RetryDelay(base, limit, 3)).To(Equal(400 * time.Millisecond))
		Expect(queue.RetryDelay(base, limit, 10)).To(Equal(time.Second))
	})

	It("is zero without a base delay", func() {
		Expect(queue.RetryDelay(0, time.Second, 3)).To(BeZero())
	})
})
