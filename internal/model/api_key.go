package model

import "time"

// APIKey is the stored half of an integration credential. Only the salted hash
// of the secret is persisted.
type APIKey struct {
	ID             int64      `json:"id,string"`
	OrganizationID int64      `json:"organization_id,string"`
	UserID         int64      `json:"user_id,string"`
	Name           string     `json:"name"`
	Prefix         string     `json:"prefix"`
	Salt           []byte     `json:"-"`
	SecretHash     []byte     `json:"-"`
	Scopes         []string   `json:"scopes"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	LastUsedAt     *time.Time `json:"last_used_at,omitempty"`
	RevokedAt      *time.Time `json:"revoked_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (k APIKey) Revoked() bool {
	return k.RevokedAt != nil
}

func (k APIKey) Expired(now time.Time) bool {
	return k.ExpiresAt != nil && !now.Before(*k.ExpiresAt)
}
