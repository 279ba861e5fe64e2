package db

import "time"

type TenantModel struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (TenantModel) TableName() string { return "tenants" }

type OrganizationModel struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	TenantID  string    `gorm:"type:uuid;index;not null"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (OrganizationModel) TableName() string { return "organizations" }

type UserModel struct {
	ID             string    `gorm:"type:uuid;primaryKey"`
	TenantID       string    `gorm:"type:uuid;index;not null"`
	OrganizationID string    `gorm:"type:uuid;index;not null"`
	Email          string    `gorm:"index;not null"`
	Status         string    `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
}

func (UserModel) TableName() string { return "users" }

type CredentialModel struct {
	UserID       string    `gorm:"type:uuid;primaryKey"`
	Identifier   string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (CredentialModel) TableName() string { return "credentials" }

type RoleModel struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (RoleModel) TableName() string { return "roles" }

type PermissionModel struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Code      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (PermissionModel) TableName() string { return "permissions" }

type UserRoleModel struct {
	UserID    string    `gorm:"type:uuid;primaryKey"`
	RoleID    string    `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time `gorm:"not null"`
}

func (UserRoleModel) TableName() string { return "user_roles" }

type RolePermissionModel struct {
	RoleID       string    `gorm:"type:uuid;primaryKey"`
	PermissionID string    `gorm:"type:uuid;primaryKey;index"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (RolePermissionModel) TableName() string { return "role_permissions" }

// RefreshTokenModel is the durable side of the refresh-token pair. Keyed by
// user (one active token per user); no TTL column, deletion is explicit.
type RefreshTokenModel struct {
	UserID    string    `gorm:"type:uuid;primaryKey"`
	Token     string    `gorm:"uniqueIndex;not null"`
	IssuedAt  time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
}

func (RefreshTokenModel) TableName() string { return "refresh_tokens" }
