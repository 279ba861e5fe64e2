// Package tokencache implements the fast, TTL-expiring side of the
// refresh-token store. Tokens are kept under two key spaces so both lookup
// paths are O(1): by user id and by token value.
package tokencache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"authcore/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	userKeyPrefix  = "refresh_token:user:"
	tokenKeyPrefix = "refresh_token:token:"
)

type cacheEntry struct {
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type RedisCache struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisCache(addr, password string, db int, now func() time.Time) (*RedisCache, error) {
	if addr == "" {
		return nil, errors.New("redis addr is required")
	}
	if now == nil {
		now = time.Now
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisCache{client: client, now: now}, nil
}

// Save writes both key spaces with a TTL equal to the token's remaining
// validity. Tokens already past expiry are not cached.
func (c *RedisCache) Save(ctx context.Context, token domain.RefreshToken) error {
	ttl := token.Remaining(c.now())
	if ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(cacheEntry{
		UserID:    token.UserID,
		Token:     token.Token,
		IssuedAt:  token.IssuedAt,
		ExpiresAt: token.ExpiresAt,
	})
	if err != nil {
		return err
	}
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, userKeyPrefix+token.UserID, payload, ttl)
	pipe.Set(ctx, tokenKeyPrefix+token.Token, token.UserID, ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *RedisCache) FindByUserID(ctx context.Context, userID string) (*domain.RefreshToken, error) {
	raw, err := c.client.Get(ctx, userKeyPrefix+userID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return decodeEntry(raw)
}

// FindByToken resolves a presented token value back to its record. A token
// key left over from a rotated token no longer matches the user entry and
// reads as not found.
func (c *RedisCache) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	userID, err := c.client.Get(ctx, tokenKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	record, err := c.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if record.Token != token {
		return nil, domain.ErrNotFound
	}
	return record, nil
}

func (c *RedisCache) DeleteByUserID(ctx context.Context, userID string) error {
	raw, err := c.client.Get(ctx, userKeyPrefix+userID).Bytes()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	keys := []string{userKeyPrefix + userID}
	if err == nil {
		if record, decodeErr := decodeEntry(raw); decodeErr == nil {
			keys = append(keys, tokenKeyPrefix+record.Token)
		}
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *RedisCache) DeleteByToken(ctx context.Context, token string) error {
	userID, err := c.client.Get(ctx, tokenKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}
	keys := []string{tokenKeyPrefix + token}
	if record, findErr := c.FindByUserID(ctx, userID); findErr == nil && record.Token == token {
		keys = append(keys, userKeyPrefix+userID)
	}
	return c.client.Del(ctx, keys...).Err()
}

func decodeEntry(raw []byte) (*domain.RefreshToken, error) {
	var entry cacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, err
	}
	return &domain.RefreshToken{
		UserID:    entry.UserID,
		Token:     entry.Token,
		IssuedAt:  entry.IssuedAt,
		ExpiresAt: entry.ExpiresAt,
	}, nil
}
