package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"authcore/internal/domain"

	"go.uber.org/zap"
)

// RefreshTokenStore pairs the TTL-expiring cache with the durable
// repository behind one read path (cache-aside with warm-on-miss) and one
// write path (write both or fail).
type RefreshTokenStore struct {
	cache   TokenCache
	durable DurableTokenRepository
	log     *zap.Logger
	now     func() time.Time
}

func NewRefreshTokenStore(cache TokenCache, durable DurableTokenRepository, log *zap.Logger) *RefreshTokenStore {
	return &RefreshTokenStore{
		cache:   cache,
		durable: durable,
		log:     log,
		now:     time.Now,
	}
}

// FindByUserID reads through the cache. A durable hit warms the cache with
// the remaining TTL; warm failures are logged and swallowed so they never
// affect the read result.
func (s *RefreshTokenStore) FindByUserID(ctx context.Context, userID string) (*domain.RefreshToken, error) {
	return s.readThrough(ctx,
		func() (*domain.RefreshToken, error) { return s.cache.FindByUserID(ctx, userID) },
		func() (*domain.RefreshToken, error) { return s.durable.FindByUserID(ctx, userID) },
	)
}

// ResolveToken reads through the cache keyed by token value.
func (s *RefreshTokenStore) ResolveToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	return s.readThrough(ctx,
		func() (*domain.RefreshToken, error) { return s.cache.FindByToken(ctx, token) },
		func() (*domain.RefreshToken, error) { return s.durable.FindByToken(ctx, token) },
	)
}

func (s *RefreshTokenStore) readThrough(ctx context.Context, fromCache, fromDurable func() (*domain.RefreshToken, error)) (*domain.RefreshToken, error) {
	cached, err := fromCache()
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		// Treat an unreachable cache like a miss; the durable store is
		// authoritative.
		s.log.Warn("token cache read failed", zap.Error(err))
	}
	record, err := fromDurable()
	if err != nil {
		return nil, err
	}
	if record.Expired(s.now()) {
		return nil, domain.ErrNotFound
	}
	if warmErr := s.cache.Save(ctx, *record); warmErr != nil {
		s.log.Warn("token cache warm failed", zap.Error(warmErr))
	}
	return record, nil
}

// Save writes the durable store and then the cache. A token is never
// considered issued unless both writes succeed; either failure surfaces.
func (s *RefreshTokenStore) Save(ctx context.Context, token domain.RefreshToken) error {
	if err := s.durable.Persist(ctx, token); err != nil {
		return fmt.Errorf("persist refresh token: %w", err)
	}
	if err := s.cache.Save(ctx, token); err != nil {
		return fmt.Errorf("cache refresh token: %w", err)
	}
	return nil
}

// RevokeToken removes a token from the cache. The durable side is keyed by
// user and is revoked through RevokeUser; token-keyed revocation exists only
// on the fast path.
func (s *RefreshTokenStore) RevokeToken(ctx context.Context, token string) error {
	return s.cache.DeleteByToken(ctx, token)
}

// RevokeUser removes the user's token from both stores. Deleting a token
// already absent from either store is not an error.
func (s *RefreshTokenStore) RevokeUser(ctx context.Context, userID string) error {
	if err := s.cache.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("evict refresh token: %w", err)
	}
	if err := s.durable.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}
