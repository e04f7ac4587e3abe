package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"fieldpro.app/relay/internal/apikey"
	"fieldpro.app/relay/internal/http/dto"
	"fieldpro.app/relay/internal/http/middleware"
	"fieldpro.app/relay/internal/service"
)

type APIKeyHandler struct {
	keys service.APIKeyService
}

func NewAPIKeyHandler(keys service.APIKeyService) *APIKeyHandler {
	return &APIKeyHandler{keys: keys}
}

func (h *APIKeyHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user := middleware.GetUser(ctx)
	issued, err := h.keys.Create(ctx, tenantID(c), user.ID, req.ToInput())
	if err != nil {
		respondError(c, err, "failed to create api key")
		return
	}

	slog.InfoContext(ctx, "api key created", "api_key_id", issued.Key.ID, "prefix", issued.Key.Prefix)
	c.JSON(http.StatusCreated, dto.ToIssuedKeyResponse(issued))
}

func (h *APIKeyHandler) List(c *gin.Context) {
	keys, err := h.keys.List(c.Request.Context(), tenantID(c))
	if err != nil {
		respondError(c, err, "failed to list api keys")
		return
	}
	c.JSON(http.StatusOK, gin.H{"api_keys": emptyIfNil(keys)})
}

func (h *APIKeyHandler) Get(c *gin.Context) {
	keyID, ok := pathID(c)
	if !ok {
		return
	}

	key, err := h.keys.Get(c.Request.Context(), tenantID(c), keyID)
	if err != nil {
		respondError(c, err, "failed to get api key")
		return
	}
	c.JSON(http.StatusOK, key)
}

func (h *APIKeyHandler) Rotate(c *gin.Context) {
	ctx := c.Request.Context()
	keyID, ok := pathID(c)
	if !ok {
		return
	}

	user := middleware.GetUser(ctx)
	issued, err := h.keys.Rotate(ctx, tenantID(c), user.ID, keyID)
	if err != nil {
		respondError(c, err, "failed to rotate api key")
		return
	}

	slog.InfoContext(ctx, "api key rotated", "old_api_key_id", keyID, "api_key_id", issued.Key.ID)
	c.JSON(http.StatusCreated, dto.ToIssuedKeyResponse(issued))
}

func (h *APIKeyHandler) Revoke(c *gin.Context) {
	ctx := c.Request.Context()
	keyID, ok := pathID(c)
	if !ok {
		return
	}

	key, err := h.keys.Revoke(ctx, tenantID(c), keyID)
	if err != nil {
		respondError(c, err, "failed to revoke api key")
		return
	}

	slog.InfoContext(ctx, "api key revoked", "api_key_id", key.ID)
	c.JSON(http.StatusOK, key)
}

func (h *APIKeyHandler) Scopes(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ScopesResponse{Scopes: apikey.Scopes})
}
