package domain

import "time"

const UserStatusActive = "ACTIVE"

type User struct {
	ID             string
	TenantID       string
	OrganizationID string
	Email          string
	Status         string
	CreatedAt      time.Time
}

// CanUseSystem reports whether the user may authenticate at all.
func (u User) CanUseSystem() bool {
	return u.Status == UserStatusActive
}

type Tenant struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type Organization struct {
	ID        string
	TenantID  string
	Name      string
	CreatedAt time.Time
}

// Credential is a user's login identity (email or username) plus password hash.
type Credential struct {
	UserID       string
	Identifier   string
	PasswordHash string
}

// RoleBindings are a user's current roles and the permissions those roles
// grant, flattened. Always re-resolved at issuance and refresh time.
type RoleBindings struct {
	Roles       []string
	Permissions []string
}
