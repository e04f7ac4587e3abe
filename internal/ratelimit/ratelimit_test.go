package ratelimit_test

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"fieldpro.app/relay/core/db/sqlc"
	"fieldpro.app/relay/internal/ratelimit"
)

type fakeQuerier struct {
	checkFn  func(ctx context.Context, arg sqlc.CheckRateLimitParams) (sqlc.CheckRateLimitRow, error)
	deleteFn func(ctx context.Context, before pgtype.Timestamptz) (int64, error)
}

func (f *fakeQuerier) CheckRateLimit(ctx context.Context, arg sqlc.CheckRateLimitParams) (sqlc.CheckRateLimitRow, error) {
	return f.checkFn(ctx, arg)
}

func (f *fakeQuerier) DeleteStaleRateLimitBuckets(ctx context.Context, before pgtype.Timestamptz) (int64, error) {
	return f.deleteFn(ctx, before)
}

var _ = Describe("PostgresLimiter", func() {
	var (
		ctx   context.Context
		q     *fakeQuerier
		reset time.Time
	)

	BeforeEach(func() {
		ctx = context.Background()
		q = &fakeQuerier{}
		reset = time.Unix(1_700_000_060, 0)
	})

	It("should pass key, capacity and window to the database", func() {
		var captured sqlc.CheckRateLimitParams
		q.checkFn = func(_ context.Context, arg sqlc.CheckRateLimitParams) (sqlc.CheckRateLimitRow, error) {
			captured = arg
			return sqlc.CheckRateLimitRow{Allowed: true, Remaining: 59, ResetAt: pgtype.Timestamptz{Time: reset, Valid: true}}, nil
		}

		d, err := ratelimit.NewPostgresLimiter(q, 60, time.Minute).Allow(ctx, "apikey:42")

		Expect(err).NotTo(HaveOccurred())
		Expect(captured).To(Equal(sqlc.CheckRateLimitParams{Key: "apikey:42", Capacity: 60, WindowSeconds: 60}))
		Expect(d.Allowed).To(BeTrue())
		Expect(d.Limit).To(Equal(60))
		Expect(d.Remaining).To(Equal(59))
		Expect(d.ResetAt).To(Equal(reset))
		Expect(d.RetryAfter).To(BeZero())
	})

	It("should set RetryAfter to one refill interval when denied", func() {
		q.checkFn = func(_ context.Context, _ sqlc.CheckRateLimitParams) (sqlc.CheckRateLimitRow, error) {
			return sqlc.CheckRateLimitRow{Allowed: false, Remaining: 0, ResetAt: pgtype.Timestamptz{Time: reset, Valid: true}}, nil
		}

		d, err := ratelimit.NewPostgresLimiter(q, 60, time.Minute).Allow(ctx, "k")
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Allowed).To(BeFalse())
		Expect(d.RetryAfter).To(Equal(time.Second))

		d, err = ratelimit.NewPostgresLimiter(q, 10, time.Minute).Allow(ctx, "k")
		Expect(err).NotTo(HaveOccurred())
		Expect(d.RetryAfter).To(Equal(6 * time.Second))

		d, err = ratelimit.NewPostgresLimiter(q, 7, time.Minute).Allow(ctx, "k")
		Expect(err).NotTo(HaveOccurred())
		Expect(d.RetryAfter).To(Equal(9 * time.Second))
	})

	It("should wrap database errors", func() {
		q.checkFn = func(_ context.Context, _ sqlc.CheckRateLimitParams) (sqlc.CheckRateLimitRow, error) {
			return sqlc.CheckRateLimitRow{}, errors.New("connection refused")
		}

		_, err := ratelimit.NewPostgresLimiter(q, 60, time.Minute).Allow(ctx, "k")
		Expect(err).To(MatchError(ContainSubstring("checking rate limit")))
	})

	It("should prune buckets older than the cutoff", func() {
		cutoff := time.Unix(1_700_000_000, 0)
		q.deleteFn = func(_ context.Context, before pgtype.Timestamptz) (int64, error) {
			Expect(before.Time).To(Equal(cutoff))
			Expect(before.Valid).To(BeTrue())
			return 3, nil
		}

		n, err := ratelimit.NewPostgresLimiter(q, 60, time.Minute).Prune(ctx, cutoff)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(int64(3)))
	})
})
