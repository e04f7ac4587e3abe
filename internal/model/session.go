package model

import "time"

// Session is a dashboard login. The cookie carries a random token; only its
// hash is stored.
type Session struct {
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	ID        int64     `json:"id,string"`
	UserID    int64     `json:"user_id,string"`
	TokenHash []byte    `json:"-"`
}
