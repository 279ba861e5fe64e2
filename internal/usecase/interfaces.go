package usecase

import (
	"context"

	"authcore/internal/domain"
)

type TokenCache interface {
	Save(ctx context.Context, token domain.RefreshToken) error
	FindByUserID(ctx context.Context, userID string) (*domain.RefreshToken, error)
	FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	DeleteByUserID(ctx context.Context, userID string) error
	DeleteByToken(ctx context.Context, token string) error
}

type DurableTokenRepository interface {
	Persist(ctx context.Context, token domain.RefreshToken) error
	FindByUserID(ctx context.Context, userID string) (*domain.RefreshToken, error)
	FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*domain.User, error)
}

type TenantRepository interface {
	GetByID(ctx context.Context, tenantID string) (*domain.Tenant, error)
}

type OrganizationRepository interface {
	GetByID(ctx context.Context, orgID string) (*domain.Organization, error)
}

type RoleRepository interface {
	GetUserRoles(ctx context.Context, userID string) (domain.RoleBindings, error)
}

type CredentialRepository interface {
	GetByIdentifier(ctx context.Context, identifier string) (*domain.Credential, error)
}

type TokenIssuer interface {
	IssuePair(claims domain.Claims) (domain.TokenPair, domain.RefreshToken, error)
}

type PasswordVerifier interface {
	Verify(hash, plain string) bool
}
