package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"authcore/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeIssuer struct {
	now        time.Time
	minted     int
	lastClaims domain.Claims
}

func (f *fakeIssuer) IssuePair(claims domain.Claims) (domain.TokenPair, domain.RefreshToken, error) {
	f.minted++
	f.lastClaims = claims
	refresh := domain.RefreshToken{
		UserID:    claims.UserID,
		Token:     fmt.Sprintf("refresh-%d", f.minted),
		IssuedAt:  f.now,
		ExpiresAt: f.now.Add(14 * 24 * time.Hour),
	}
	pair := domain.TokenPair{
		AccessToken:       fmt.Sprintf("access-%d", f.minted),
		RefreshToken:      refresh.Token,
		AccessTTLSeconds:  3600,
		RefreshTTLSeconds: 1209600,
		TokenType:         "Bearer",
	}
	return pair, refresh, nil
}

type fakeUserRepo struct{ users map[string]domain.User }

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		return &u, nil
	}
	return nil, domain.ErrNotFound
}

type fakeTenantRepo struct{ tenants map[string]domain.Tenant }

func (f *fakeTenantRepo) GetByID(_ context.Context, id string) (*domain.Tenant, error) {
	if t, ok := f.tenants[id]; ok {
		return &t, nil
	}
	return nil, domain.ErrNotFound
}

type fakeOrgRepo struct{ orgs map[string]domain.Organization }

func (f *fakeOrgRepo) GetByID(_ context.Context, id string) (*domain.Organization, error) {
	if o, ok := f.orgs[id]; ok {
		return &o, nil
	}
	return nil, domain.ErrNotFound
}

type fakeRoleRepo struct{ bindings map[string]domain.RoleBindings }

func (f *fakeRoleRepo) GetUserRoles(_ context.Context, userID string) (domain.RoleBindings, error) {
	return f.bindings[userID], nil
}

type fakeCredRepo struct{ creds map[string]domain.Credential }

func (f *fakeCredRepo) GetByIdentifier(_ context.Context, identifier string) (*domain.Credential, error) {
	if c, ok := f.creds[identifier]; ok {
		return &c, nil
	}
	return nil, domain.ErrNotFound
}

// plainVerifier treats the stored hash as the expected plaintext.
type plainVerifier struct{}

func (plainVerifier) Verify(hash, plain string) bool { return hash == plain }

type serviceFixture struct {
	service *TokenService
	issuer  *fakeIssuer
	cache   *fakeCache
	durable *fakeDurable
	users   *fakeUserRepo
	tenants *fakeTenantRepo
	roles   *fakeRoleRepo
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	cache := newFakeCache()
	durable := newFakeDurable()
	store := newTestStore(cache, durable, now)

	issuer := &fakeIssuer{now: now}
	users := &fakeUserRepo{users: map[string]domain.User{
		"user-1": {ID: "user-1", TenantID: "tenant-1", OrganizationID: "org-1", Status: domain.UserStatusActive},
		"user-2": {ID: "user-2", TenantID: "tenant-1", OrganizationID: "org-1", Status: "SUSPENDED"},
	}}
	tenants := &fakeTenantRepo{tenants: map[string]domain.Tenant{
		"tenant-1": {ID: "tenant-1", Name: "Acme"},
	}}
	orgs := &fakeOrgRepo{orgs: map[string]domain.Organization{
		"org-1": {ID: "org-1", TenantID: "tenant-1", Name: "Engineering"},
	}}
	roles := &fakeRoleRepo{bindings: map[string]domain.RoleBindings{
		"user-1": {Roles: []string{"MEMBER"}, Permissions: []string{"user:read"}},
	}}
	creds := &fakeCredRepo{creds: map[string]domain.Credential{
		"alice@acme.test": {UserID: "user-1", Identifier: "alice@acme.test", PasswordHash: "s3cret"},
		"bob@acme.test":   {UserID: "user-2", Identifier: "bob@acme.test", PasswordHash: "s3cret"},
	}}

	service := NewTokenService(TokenServiceDeps{
		Issuer:        issuer,
		Tokens:        store,
		Users:         users,
		Tenants:       tenants,
		Organizations: orgs,
		Roles:         roles,
		Credentials:   creds,
		Passwords:     plainVerifier{},
		Logger:        zap.NewNop(),
	})
	return &serviceFixture{
		service: service,
		issuer:  issuer,
		cache:   cache,
		durable: durable,
		users:   users,
		tenants: tenants,
		roles:   roles,
	}
}

func TestLoginIssuesAndStoresPair(t *testing.T) {
	fx := newServiceFixture(t)

	pair, err := fx.service.Login(context.Background(), "alice@acme.test", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.NotEmpty(t, pair.AccessToken)

	stored, err := fx.service.tokens.FindByUserID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, pair.RefreshToken, stored.Token)

	assert.Equal(t, []string{"MEMBER"}, fx.issuer.lastClaims.Roles)
	assert.Equal(t, "tenant-1", fx.issuer.lastClaims.TenantID)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	fx := newServiceFixture(t)

	_, err := fx.service.Login(context.Background(), "alice@acme.test", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Equal(t, 0, fx.durable.persists)
}

func TestLoginRejectsUnknownIdentifier(t *testing.T) {
	fx := newServiceFixture(t)

	_, err := fx.service.Login(context.Background(), "nobody@acme.test", "s3cret")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	fx := newServiceFixture(t)

	_, err := fx.service.Login(context.Background(), "bob@acme.test", "s3cret")
	assert.ErrorIs(t, err, domain.ErrUserInactive)
	assert.Equal(t, 0, fx.issuer.minted)
}

func TestRefreshRejectsUnknownToken(t *testing.T) {
	fx := newServiceFixture(t)

	_, err := fx.service.Refresh(context.Background(), "never-issued")
	assert.ErrorIs(t, err, domain.ErrInvalidRefreshToken)
	assert.Equal(t, 0, fx.durable.persists)
	assert.Equal(t, 0, fx.issuer.minted)
}

func TestRefreshRotatesSingleUse(t *testing.T) {
	fx := newServiceFixture(t)

	first, err := fx.service.Login(context.Background(), "alice@acme.test", "s3cret")
	require.NoError(t, err)

	second, err := fx.service.Refresh(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// The consumed token no longer resolves.
	_, err = fx.service.Refresh(context.Background(), first.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrInvalidRefreshToken)

	// The new one does.
	_, err = fx.service.Refresh(context.Background(), second.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshReResolvesRoles(t *testing.T) {
	fx := newServiceFixture(t)

	pair, err := fx.service.Login(context.Background(), "alice@acme.test", "s3cret")
	require.NoError(t, err)

	// Role assignments changed since issuance.
	fx.roles.bindings["user-1"] = domain.RoleBindings{
		Roles:       []string{domain.RoleTenantAdmin},
		Permissions: []string{"organization:update"},
	}

	_, err = fx.service.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.RoleTenantAdmin}, fx.issuer.lastClaims.Roles)
	assert.Equal(t, []string{"organization:update"}, fx.issuer.lastClaims.Permissions)
}

func TestRefreshConflatesMissingTenant(t *testing.T) {
	fx := newServiceFixture(t)

	pair, err := fx.service.Login(context.Background(), "alice@acme.test", "s3cret")
	require.NoError(t, err)

	delete(fx.tenants.tenants, "tenant-1")

	_, err = fx.service.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrInvalidRefreshToken)
}

func TestRefreshConflatesMissingUser(t *testing.T) {
	fx := newServiceFixture(t)

	pair, err := fx.service.Login(context.Background(), "alice@acme.test", "s3cret")
	require.NoError(t, err)

	delete(fx.users.users, "user-1")

	_, err = fx.service.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrInvalidRefreshToken)
}

func TestRevokeUserEndsSession(t *testing.T) {
	fx := newServiceFixture(t)

	pair, err := fx.service.Login(context.Background(), "alice@acme.test", "s3cret")
	require.NoError(t, err)

	require.NoError(t, fx.service.RevokeUser(context.Background(), "user-1"))

	_, err = fx.service.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrInvalidRefreshToken)
}
