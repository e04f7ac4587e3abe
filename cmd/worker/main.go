package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"fieldpro.app/relay/common/id"
	"fieldpro.app/relay/common/logger"
	"fieldpro.app/relay/common/otel"
	"fieldpro.app/relay/core/config"
	"fieldpro.app/relay/core/db"
	"fieldpro.app/relay/internal/queue"
	"fieldpro.app/relay/internal/ratelimit"
	"fieldpro.app/relay/internal/store"
	"fieldpro.app/relay/internal/worker"
)

const (
	janitorInterval = 10 * time.Minute
	// Buckets idle this long are full again and safe to drop.
	bucketRetention = time.Hour
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeWorker)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	fmt.Printf("%s\n", banner)

	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	slog.InfoContext(ctx, "fieldpro worker starting",
		"env", cfg.Env,
		"consumer_group", cfg.Webhooks.Group,
		"consumer_name", cfg.Webhooks.Consumer)

	if err := id.Init(cfg.NodeID); err != nil {
		slog.ErrorContext(ctx, "failed to initialize id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	redisOpts, err := redis.ParseURL(cfg.Webhooks.RedisURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Webhooks.Stream)

	consumer, err := queue.NewRedisConsumer(ctx, redisClient, queue.ConsumerConfig{
		Stream:       cfg.Webhooks.Stream,
		Group:        cfg.Webhooks.Group,
		Consumer:     cfg.Webhooks.Consumer,
		DLQStream:    cfg.Webhooks.DLQStream,
		BatchSize:    10,
		Block:        5 * time.Second,
		RequeueDelay: 2 * time.Second,
		MaxDelay:     5 * time.Minute,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create consumer", "error", err)
		os.Exit(1)
	}

	stores := store.NewStores(database.Queries())

	sender := worker.NewHTTPSender(worker.HTTPSenderConfig{
		Timeout:   cfg.Webhooks.Timeout,
		PerSecond: cfg.Webhooks.DeliveriesPerSecond,
	})

	w := worker.New(consumer, stores, sender, worker.Config{
		MaxAttempts: cfg.Webhooks.MaxAttempts,
	})

	reclaimer := worker.NewReclaimer(redisClient, worker.ReclaimerConfig{
		Stream:    cfg.Webhooks.Stream,
		Group:     cfg.Webhooks.Group,
		Consumer:  cfg.Webhooks.Consumer + "-reclaimer",
		MinIdle:   5 * time.Minute,
		Interval:  time.Minute,
		BatchSize: 10,
		MaxClaims: int64(cfg.Webhooks.MaxAttempts) * 2,
	}, consumer, w.Handle, w.Abandon)

	limiter := ratelimit.NewPostgresLimiter(stores.Queries(), cfg.Gateway.RateLimit, cfg.Gateway.RateWindow)
	janitor := worker.NewJanitor(limiter, stores.Sessions().DeleteExpired, janitorInterval, bucketRetention)

	quit, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return w.Run(gctx) })
	g.Go(func() error {
		reclaimer.Run(gctx)
		return nil
	})
	g.Go(func() error {
		janitor.Run(gctx)
		return nil
	})
	g.Go(func() error {
		select {
		case <-quit.Done():
			slog.InfoContext(ctx, "shutting down worker...")
		case <-gctx.Done():
		}
		reclaimer.Stop()
		janitor.Stop()
		// Lets the in-flight batch finish.
		w.Stop()
		return nil
	})

	slog.InfoContext(ctx, "worker initialized and running")

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			slog.ErrorContext(ctx, "worker stopped with error", "error", err)
		}
	case <-quitTimeout(quit, 30*time.Second):
		slog.WarnContext(ctx, "shutdown timeout exceeded")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(ctx, "worker shutdown complete")
}

// quitTimeout fires d after the shutdown signal arrives.
func quitTimeout(quit context.Context, d time.Duration) <-chan struct{} {
	ch := make(chan struct{})
	go func() {
		<-quit.Done()
		time.Sleep(d)
		close(ch)
	}()
	return ch
}

const banner = `
███████╗██╗███████╗██╗     ██████╗ ██████╗ ██████╗  ██████╗     ██╗    ██╗ ██████╗ ██████╗ ██╗  ██╗███████╗██████╗
██╔════╝██║██╔════╝██║     ██╔══██╗██╔══██╗██╔══██╗██╔═══██╗    ██║    ██║██╔═══██╗██╔══██╗██║ ██╔╝██╔════╝██╔══██╗
█████╗  ██║█████╗  ██║     ██║  ██║██████╔╝██████╔╝██║   ██║    ██║ █╗ ██║██║   ██║██████╔╝█████╔╝ █████╗  ██████╔╝
██╔══╝  ██║██╔══╝  ██║     ██║  ██║██╔═══╝ ██╔══██╗██║   ██║    ██║███╗██║██║   ██║██╔══██╗██╔═██╗ ██╔══╝  ██╔══██╗
██║     ██║███████╗███████╗██████╔╝██║     ██║  ██║╚██████╔╝    ╚███╔███╔╝╚██████╔╝██║  ██║██║  ██╗███████╗██║  ██║
╚═╝     ╚═╝╚══════╝╚══════╝╚═════╝ ╚═╝     ╚═╝  ╚═╝ ╚═════╝      ╚══╝╚══╝  ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝
`
