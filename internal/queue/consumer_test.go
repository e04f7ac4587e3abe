package queue_test

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"fieldpro.app/relay/internal/queue"
)

// fakeRedis records the stream and sorted-set calls the consumer makes.
// Anything else panics through the nil embedded interface.
type fakeRedis struct {
	redis.Cmdable

	calls    []string
	zadds    map[string][]redis.Z
	xadds    []*redis.XAddArgs
	acked    []string
	zaddErr  error
	evalKeys []string
	evalArgs []any
	promoted int64
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{zadds: map[string][]redis.Z{}}
}

func (f *fakeRedis) XGroupCreateMkStream(ctx context.Context, _, _, _ string) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("OK")
	return cmd
}

func (f *fakeRedis) ZAdd(ctx context.Context, key string, members ...redis.Z) *redis.IntCmd {
	f.calls = append(f.calls, "zadd")
	cmd := redis.NewIntCmd(ctx)
	if f.zaddErr != nil {
		cmd.SetErr(f.zaddErr)
		return cmd
	}
	f.zadds[key] = append(f.zadds[key], members...)
	cmd.SetVal(int64(len(members)))
	return cmd
}

func (f *fakeRedis) XAck(ctx context.Context, _, _ string, ids ...string) *redis.IntCmd {
	f.calls = append(f.calls, "xack")
	f.acked = append(f.acked, ids...)
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(int64(len(ids)))
	return cmd
}

func (f *fakeRedis) XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd {
	f.calls = append(f.calls, "xadd")
	f.xadds = append(f.xadds, a)
	cmd := redis.NewStringCmd(ctx)
	cmd.SetVal("2-0")
	return cmd
}

func (f *fakeRedis) EvalSha(ctx context.Context, _ string, keys []string, args ...any) *redis.Cmd {
	f.calls = append(f.calls, "evalsha")
	f.evalKeys = keys
	f.evalArgs = args
	cmd := redis.NewCmd(ctx)
	cmd.SetVal(f.promoted)
	return cmd
}

var _ = Describe("RedisConsumer", func() {
	var (
		ctx      context.Context
		rdb      *fakeRedis
		consumer *queue.RedisConsumer
		msg      queue.Message
	)

	BeforeEach(func() {
		ctx = context.Background()
		rdb = newFakeRedis()

		var err error
		consumer, err = queue.NewRedisConsumer(ctx, rdb, queue.ConsumerConfig{
			Stream:       "fieldpro_webhooks",
			Group:        "workers",
			Consumer:     "worker-1",
			DLQStream:    "fieldpro_webhooks_dlq",
			BatchSize:    10,
			RequeueDelay: time.Hour,
			MaxDelay:     2 * time.Hour,
		})
		Expect(err).NotTo(HaveOccurred())

		msg = queue.Message{
			ID:             "1700000000000-0",
			DeliveryID:     42,
			OrganizationID: 7,
			EndpointID:     9,
			EventType:      "contact.created",
			Attempt:        1,
		}
	})

	Describe("Requeue", func() {
		It("schedules the retry before acking and does not wait out the delay", func() {
			before := time.Now()
			Expect(consumer.Requeue(ctx, msg, "endpoint returned 500")).To(Succeed())
			Expect(time.Since(before)).To(BeNumerically("<", time.Second))

			Expect(rdb.calls).To(Equal([]string{"zadd", "xack"}))
			Expect(rdb.xadds).To(BeEmpty())
			Expect(rdb.acked).To(ConsistOf(msg.ID))

			scheduled := rdb.zadds["fieldpro_webhooks:delayed"]
			Expect(scheduled).To(HaveLen(1))
			Expect(scheduled[0].Score).To(BeNumerically(">=", float64(before.Add(time.Hour).UnixMilli())))

			var fields map[string]string
			Expect(json.Unmarshal([]byte(scheduled[0].Member.(string)), &fields)).To(Succeed())
			Expect(fields).To(HaveKeyWithValue("delivery_id", "42"))
			Expect(fields).To(HaveKeyWithValue("attempt", "2"))
			Expect(fields).To(HaveKeyWithValue("requeued_from", msg.ID))
			Expect(fields).To(HaveKeyWithValue("last_error", "endpoint returned 500"))
		})

		It("leaves the message pending when the retry cannot be scheduled", func() {
			rdb.zaddErr = errors.New("connection reset")

			Expect(consumer.Requeue(ctx, msg, "boom")).To(MatchError(ContainSubstring("scheduling retry")))
			Expect(rdb.acked).To(BeEmpty())
		})
	})

	It("writes the dead letter copy before acking", func() {
		Expect(consumer.SendDLQ(ctx, msg, "gave up")).To(Succeed())

		Expect(rdb.calls).To(Equal([]string{"xadd", "xack"}))
		Expect(rdb.xadds[0].Stream).To(Equal("fieldpro_webhooks_dlq"))
		Expect(rdb.xadds[0].Values).To(HaveKeyWithValue("error", "gave up"))
	})

	It("promotes due retries from the delayed set onto the stream", func() {
		rdb.promoted = 3

		n, err := consumer.PromoteDue(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(3))
		Expect(rdb.evalKeys).To(Equal([]string{"fieldpro_webhooks:delayed", "fieldpro_webhooks"}))
		Expect(rdb.evalArgs).To(HaveLen(2))
		Expect(rdb.evalArgs[0]).To(BeNumerically("<=", time.Now().UnixMilli()))
	})
})
