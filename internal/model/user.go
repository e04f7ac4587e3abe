package model

import "time"

type User struct {
	ID        int64     `json:"id,string"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	WorkOSID  *string   `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

type Membership struct {
	OrganizationID int64     `json:"organization_id,string"`
	UserID         int64     `json:"user_id,string"`
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

// CanManage reports whether the role may manage keys, webhooks and the widget.
func (m Membership) CanManage() bool {
	return m.Role == RoleOwner || m.Role == RoleAdmin
}
