package tokencache

import (
	"context"
	"sync"
	"time"

	"authcore/internal/domain"
)

// MemoryCache is the in-process fallback used when no redis address is
// configured, and the cache double in tests.
type MemoryCache struct {
	mu      sync.Mutex
	byUser  map[string]domain.RefreshToken
	byToken map[string]string
	now     func() time.Time
}

func NewMemoryCache(now func() time.Time) *MemoryCache {
	if now == nil {
		now = time.Now
	}
	return &MemoryCache{
		byUser:  make(map[string]domain.RefreshToken),
		byToken: make(map[string]string),
		now:     now,
	}
}

func (c *MemoryCache) Save(_ context.Context, token domain.RefreshToken) error {
	if token.Expired(c.now()) {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byUser[token.UserID] = token
	c.byToken[token.Token] = token.UserID
	return nil
}

func (c *MemoryCache) FindByUserID(_ context.Context, userID string) (*domain.RefreshToken, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	token, ok := c.byUser[userID]
	if !ok || token.Expired(c.now()) {
		return nil, domain.ErrNotFound
	}
	out := token
	return &out, nil
}

func (c *MemoryCache) FindByToken(_ context.Context, tokenValue string) (*domain.RefreshToken, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	userID, ok := c.byToken[tokenValue]
	if !ok {
		return nil, domain.ErrNotFound
	}
	token, ok := c.byUser[userID]
	if !ok || token.Token != tokenValue || token.Expired(c.now()) {
		return nil, domain.ErrNotFound
	}
	out := token
	return &out, nil
}

func (c *MemoryCache) DeleteByUserID(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token, ok := c.byUser[userID]; ok {
		delete(c.byToken, token.Token)
	}
	delete(c.byUser, userID)
	return nil
}

func (c *MemoryCache) DeleteByToken(_ context.Context, tokenValue string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	userID, ok := c.byToken[tokenValue]
	if !ok {
		return nil
	}
	delete(c.byToken, tokenValue)
	if token, ok := c.byUser[userID]; ok && token.Token == tokenValue {
		delete(c.byUser, userID)
	}
	return nil
}
