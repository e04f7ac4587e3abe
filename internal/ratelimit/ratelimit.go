// Package ratelimit enforces per-key request budgets using the
// check_rate_limit token bucket function in Postgres.
package ratelimit

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"fieldpro.app/relay/core/db/sqlc"
)

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// Querier is the subset of sqlc.Queries the limiter needs.
type Querier interface {
	CheckRateLimit(ctx context.Context, arg sqlc.CheckRateLimitParams) (sqlc.CheckRateLimitRow, error)
	DeleteStaleRateLimitBuckets(ctx context.Context, before pgtype.Timestamptz) (int64, error)
}

// PostgresLimiter allows Capacity requests per Window per key, refilled
// continuously.
type PostgresLimiter struct {
	q        Querier
	capacity int
	window   time.Duration
}

func NewPostgresLimiter(q Querier, capacity int, window time.Duration) *PostgresLimiter {
	return &PostgresLimiter{q: q, capacity: capacity, window: window}
}

func (l *PostgresLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	row, err := l.q.CheckRateLimit(ctx, sqlc.CheckRateLimitParams{
		Key:           key,
		Capacity:      int32(l.capacity),
		WindowSeconds: int32(l.window / time.Second),
	})
	if err != nil {
		return Decision{}, fmt.Errorf("checking rate limit: %w", err)
	}

	d := Decision{
		Allowed:   row.Allowed,
		Limit:     l.capacity,
		Remaining: int(row.Remaining),
		ResetAt:   row.ResetAt.Time,
	}
	if !d.Allowed {
		d.RetryAfter = l.refillInterval()
	}
	return d, nil
}

// Prune drops buckets untouched since before; they would be full anyway.
func (l *PostgresLimiter) Prune(ctx context.Context, before time.Time) (int64, error) {
	return l.q.DeleteStaleRateLimitBuckets(ctx, pgtype.Timestamptz{Time: before, Valid: true})
}

// refillInterval is the time for one token to come back, rounded up to a
// whole second for the Retry-After header.
func (l *PostgresLimiter) refillInterval() time.Duration {
	per := l.window.Seconds() / float64(l.capacity)
	return time.Duration(math.Ceil(per)) * time.Second
}
