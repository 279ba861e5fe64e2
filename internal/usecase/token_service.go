package usecase

import (
	"context"
	"errors"
	"fmt"

	"authcore/internal/domain"

	"go.uber.org/zap"
)

// TokenService orchestrates the token lifecycle: login, issuance, rotation
// and revocation. Refresh-token state per value is absent → active →
// absent again; revocation deletes, it never tombstones.
type TokenService struct {
	issuer    TokenIssuer
	tokens    *RefreshTokenStore
	users     UserRepository
	tenants   TenantRepository
	orgs      OrganizationRepository
	roles     RoleRepository
	creds     CredentialRepository
	passwords PasswordVerifier
	log       *zap.Logger
}

type TokenServiceDeps struct {
	Issuer        TokenIssuer
	Tokens        *RefreshTokenStore
	Users         UserRepository
	Tenants       TenantRepository
	Organizations OrganizationRepository
	Roles         RoleRepository
	Credentials   CredentialRepository
	Passwords     PasswordVerifier
	Logger        *zap.Logger
}

func NewTokenService(deps TokenServiceDeps) *TokenService {
	return &TokenService{
		issuer:    deps.Issuer,
		tokens:    deps.Tokens,
		users:     deps.Users,
		tenants:   deps.Tenants,
		orgs:      deps.Organizations,
		roles:     deps.Roles,
		creds:     deps.Credentials,
		passwords: deps.Passwords,
		log:       deps.Logger,
	}
}

// Login authenticates a credential and issues a token pair. Unknown
// identifiers and wrong passwords surface as the same error.
func (s *TokenService) Login(ctx context.Context, identifier, password string) (domain.TokenPair, error) {
	cred, err := s.creds.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.TokenPair{}, domain.ErrInvalidCredentials
		}
		return domain.TokenPair{}, fmt.Errorf("load credential: %w", err)
	}
	if !s.passwords.Verify(cred.PasswordHash, password) {
		return domain.TokenPair{}, domain.ErrInvalidCredentials
	}
	user, err := s.users.GetByID(ctx, cred.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.TokenPair{}, domain.ErrInvalidCredentials
		}
		return domain.TokenPair{}, fmt.Errorf("load user: %w", err)
	}
	if !user.CanUseSystem() {
		return domain.TokenPair{}, domain.ErrUserInactive
	}
	return s.Issue(ctx, *user)
}

// Issue resolves the user's current roles and permissions, mints a pair and
// persists the refresh token in both stores. Role lookup and signing
// failures are fatal to the call; nothing is retried here.
func (s *TokenService) Issue(ctx context.Context, user domain.User) (domain.TokenPair, error) {
	bindings, err := s.roles.GetUserRoles(ctx, user.ID)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("resolve user roles: %w", err)
	}
	pair, refresh, err := s.issuer.IssuePair(domain.Claims{
		UserID:         user.ID,
		TenantID:       user.TenantID,
		OrganizationID: user.OrganizationID,
		Roles:          bindings.Roles,
		Permissions:    bindings.Permissions,
	})
	if err != nil {
		return domain.TokenPair{}, err
	}
	if err := s.tokens.Save(ctx, refresh); err != nil {
		return domain.TokenPair{}, err
	}
	s.log.Info("issued token pair", zap.String("user_id", user.ID), zap.String("tenant_id", user.TenantID))
	return pair, nil
}

// Refresh rotates a presented refresh token: resolve it, re-load the caller
// and their tenant and organization, re-resolve roles, mint and persist a
// new pair, and evict the old token from the cache. The rotation is
// single-use: when two callers race on the same token, the winner's persist
// overwrites the user's row and deletes the old cache mapping, so the loser
// resolves nothing and fails with ErrInvalidRefreshToken.
//
// Missing user, tenant and organization all surface as the same
// ErrInvalidRefreshToken so the error does not reveal which lookup failed.
func (s *TokenService) Refresh(ctx context.Context, oldToken string) (domain.TokenPair, error) {
	record, err := s.tokens.ResolveToken(ctx, oldToken)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.TokenPair{}, domain.ErrInvalidRefreshToken
		}
		return domain.TokenPair{}, fmt.Errorf("resolve refresh token: %w", err)
	}

	user, err := s.users.GetByID(ctx, record.UserID)
	if err != nil {
		return domain.TokenPair{}, refreshLookupError(err, "load user")
	}
	if _, err := s.tenants.GetByID(ctx, user.TenantID); err != nil {
		return domain.TokenPair{}, refreshLookupError(err, "load tenant")
	}
	if _, err := s.orgs.GetByID(ctx, user.OrganizationID); err != nil {
		return domain.TokenPair{}, refreshLookupError(err, "load organization")
	}

	pair, err := s.Issue(ctx, *user)
	if err != nil {
		return domain.TokenPair{}, err
	}
	if err := s.tokens.RevokeToken(ctx, oldToken); err != nil {
		// The new pair is already persisted and the user's cache entry
		// points at the new token, so the stale token-keyed entry can no
		// longer resolve; eviction is hygiene, not correctness.
		s.log.Warn("evict rotated token failed", zap.Error(err))
	}
	return pair, nil
}

// RevokeToken invalidates one presented token on the fast path.
func (s *TokenService) RevokeToken(ctx context.Context, token string) error {
	return s.tokens.RevokeToken(ctx, token)
}

// RevokeUser is full logout: the token disappears from cache and durable
// store.
func (s *TokenService) RevokeUser(ctx context.Context, userID string) error {
	return s.tokens.RevokeUser(ctx, userID)
}

func refreshLookupError(err error, op string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrInvalidRefreshToken
	}
	return fmt.Errorf("%s: %w", op, err)
}
