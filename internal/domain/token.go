package domain

import "time"

// RefreshToken is the stored half of an issued token pair. One active token
// per user; reissuing overwrites, revoking deletes.
type RefreshToken struct {
	UserID    string
	Token     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func (t RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// Remaining is the validity left at now; zero or negative means expired.
func (t RefreshToken) Remaining(now time.Time) time.Duration {
	return t.ExpiresAt.Sub(now)
}

// TokenPair is the output of issuance. The access token is stateless and
// never stored; the refresh token is tracked by the RefreshTokenStore.
type TokenPair struct {
	AccessToken       string
	RefreshToken      string
	AccessTTLSeconds  int64
	RefreshTTLSeconds int64
	TokenType         string
}
