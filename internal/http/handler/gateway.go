package handler

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fieldpro.app/relay/internal/service"
)

const (
	headerAPIKey    = "X-API-Key"
	headerTimestamp = "X-Timestamp"
	headerSignature = "X-Signature"

	maxGatewayBody = 1 << 20
)

type GatewayHandler struct {
	gateway service.GatewayService
}

func NewGatewayHandler(gateway service.GatewayService) *GatewayHandler {
	return &GatewayHandler{gateway: gateway}
}

// Handle serves POST /api/integrations/n8n. The body is read raw because the
// signature covers the exact bytes sent.
func (h *GatewayHandler) Handle(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxGatewayBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return
		}
		slog.WarnContext(ctx, "failed to read gateway body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	result, err := h.gateway.Handle(ctx, service.GatewayRequest{
		APIKey:    c.GetHeader(headerAPIKey),
		Timestamp: c.GetHeader(headerTimestamp),
		Signature: c.GetHeader(headerSignature),
		Body:      body,
	})
	if result != nil {
		setRateLimitHeaders(c, result)
	}
	if err != nil {
		respondError(c, err, "failed to process request")
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"action": result.Action, "data": result.Data})
}

func (h *GatewayHandler) Schema(c *gin.Context) {
	schemas := h.gateway.Schemas()
	actions := make(gin.H, len(schemas))
	for _, s := range schemas {
		actions[s.Action] = gin.H{"scope": s.Scope, "schema": s.Schema}
	}
	c.JSON(http.StatusOK, gin.H{"actions": actions})
}

func setRateLimitHeaders(c *gin.Context, result *service.GatewayResult) {
	d := result.RateLimit
	if d == nil {
		return
	}
	c.Header("X-RateLimit-Limit", strconv.Itoa(d.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))
	if !d.Allowed {
		retry := max(int64(math.Ceil(d.RetryAfter.Seconds())), 1)
		c.Header("Retry-After", strconv.FormatInt(retry, 10))
	}
}
