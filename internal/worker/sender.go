package worker

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"fieldpro.app/relay/internal/apikey"
	"fieldpro.app/relay/internal/model"
)

const (
	HeaderEvent     = "X-Webhook-Event"
	HeaderID        = "X-Webhook-Id"
	HeaderTimestamp = "X-Timestamp"
	HeaderSignature = "X-Signature"

	maxErrorBody = 512
)

type HTTPSenderConfig struct {
	Timeout time.Duration
	// PerSecond caps outbound requests; 0 disables pacing.
	PerSecond int
}

// HTTPSender POSTs signed delivery payloads.
type HTTPSender struct {
	client  *http.Client
	limiter *rate.Limiter
	now     func() time.Time
}

func NewHTTPSender(cfg HTTPSenderConfig) *HTTPSender {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.PerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.PerSecond), cfg.PerSecond)
	}
	return &HTTPSender{
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		limiter: limiter,
		now:     time.Now,
	}
}

func (s *HTTPSender) Send(ctx context.Context, endpoint *model.WebhookEndpoint, delivery *model.WebhookDelivery) (int, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("waiting for send slot: %w", err)
	}

	body := []byte(delivery.Payload)
	ts := strconv.FormatInt(s.now().Unix(), 10)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.URL, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "fieldpro-webhooks/1.0")
	req.Header.Set(HeaderEvent, delivery.EventType)
	req.Header.Set(HeaderID, strconv.FormatInt(delivery.ID, 10))
	req.Header.Set(HeaderTimestamp, ts)
	req.Header.Set(HeaderSignature, apikey.Sign(endpoint.Secret, ts, body))

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("posting webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return resp.StatusCode, fmt.Errorf("endpoint returned %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
}
