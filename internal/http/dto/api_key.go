package dto

import (
	"time"

	"fieldpro.app/relay/internal/model"
	"fieldpro.app/relay/internal/service"
)

type CreateAPIKeyRequest struct {
	Name      string     `json:"name" binding:"required,min=1,max=100"`
	Scopes    []string   `json:"scopes" binding:"required,min=1,dive,required"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func (r CreateAPIKeyRequest) ToInput() service.APIKeyInput {
	return service.APIKeyInput{Name: r.Name, Scopes: r.Scopes, ExpiresAt: r.ExpiresAt}
}

// IssuedKeyResponse is the only response that ever carries the plaintext key.
type IssuedKeyResponse struct {
	*model.APIKey
	Key string `json:"key"`
}

func ToIssuedKeyResponse(issued *service.IssuedKey) *IssuedKeyResponse {
	return &IssuedKeyResponse{APIKey: issued.Key, Key: issued.Plaintext}
}

type ScopesResponse struct {
	Scopes []string `json:"scopes"`
}
