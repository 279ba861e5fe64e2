// Package auth implements the JWT token codec: verification of bearer access
// tokens and minting of access/refresh pairs, under either an RSA key pair
// loaded from PEM files or a shared HMAC secret.
package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"authcore/internal/config"
	"authcore/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	claimTenantID    = "tid"
	claimOrgID       = "oid"
	claimRoles       = "roles"
	claimPermissions = "permissions"
	claimTokenType   = "token_type"

	accessTokenType = "access"
	bearerTokenType = "Bearer"
)

type Codec struct {
	issuer     string
	method     jwt.SigningMethod
	signKey    any
	verifyKey  any
	keyID      string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewCodec builds the codec from startup configuration. Unreadable or invalid
// RSA key material is a startup failure. RSA enabled without a private key
// path falls back to HMAC with a warning instead of refusing to start.
func NewCodec(cfg config.Config, log *zap.Logger) (*Codec, error) {
	c := &Codec{
		issuer:     cfg.JWTIssuer,
		accessTTL:  cfg.AccessTokenTTL(),
		refreshTTL: cfg.RefreshTokenTTL(),
		now:        time.Now,
	}

	useRSA := cfg.JWTRSAEnabled
	if useRSA && cfg.JWTRSAPrivateKeyPath == "" {
		log.Warn("rsa signing enabled but JWT_RSA_PRIVATE_KEY_PATH is not set, falling back to HMAC")
		useRSA = false
	}

	if useRSA {
		priv, err := loadRSAPrivateKey(cfg.JWTRSAPrivateKeyPath)
		if err != nil {
			return nil, err
		}
		c.method = jwt.SigningMethodRS256
		c.signKey = priv
		c.verifyKey = &priv.PublicKey
		c.keyID = cfg.JWTRSAKeyID
		if cfg.JWTRSAPublicKeyPath != "" {
			pub, err := loadRSAPublicKey(cfg.JWTRSAPublicKeyPath)
			if err != nil {
				return nil, err
			}
			c.verifyKey = pub
		}
		return c, nil
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required when rsa signing is disabled")
	}
	c.method = jwt.SigningMethodHS256
	c.signKey = []byte(cfg.JWTSecret)
	c.verifyKey = []byte(cfg.JWTSecret)
	return c, nil
}

func loadRSAPrivateKey(path string) (*rsa.PrivateKey, error) {
	pemBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rsa private key %s: %w", path, err)
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("parse rsa private key %s: %w", path, err)
	}
	return key, nil
}

func loadRSAPublicKey(path string) (*rsa.PublicKey, error) {
	pemBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rsa public key %s: %w", path, err)
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("parse rsa public key %s: %w", path, err)
	}
	return key, nil
}

// Verify checks the signature and issuer of a bearer token and extracts its
// claims. Every failure mode collapses into domain.ErrTokenInvalid: an
// unverifiable token is normal traffic, not a fault to propagate.
func (c *Codec) Verify(tokenString string) (domain.Claims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return domain.Claims{}, domain.ErrTokenInvalid
	}
	parsed, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (any, error) {
			if t.Method.Alg() != c.method.Alg() {
				return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
			}
			return c.verifyKey, nil
		},
		jwt.WithIssuer(c.issuer),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !parsed.Valid {
		return domain.Claims{}, domain.ErrTokenInvalid
	}
	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Claims{}, domain.ErrTokenInvalid
	}
	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		return domain.Claims{}, domain.ErrTokenInvalid
	}
	return domain.Claims{
		UserID:         sub,
		TenantID:       stringClaim(mapClaims, claimTenantID),
		OrganizationID: stringClaim(mapClaims, claimOrgID),
		Roles:          stringListClaim(mapClaims, claimRoles),
		Permissions:    stringListClaim(mapClaims, claimPermissions),
	}, nil
}

// IssuePair mints an access token carrying the enriched claims and an opaque
// refresh token for the store. The access token is stateless; only the
// refresh record is persisted.
func (c *Codec) IssuePair(claims domain.Claims) (domain.TokenPair, domain.RefreshToken, error) {
	now := c.now()
	access := jwt.NewWithClaims(c.method, jwt.MapClaims{
		"sub":            claims.UserID,
		"iss":            c.issuer,
		"iat":            now.Unix(),
		"exp":            now.Add(c.accessTTL).Unix(),
		claimTokenType:   accessTokenType,
		claimTenantID:    claims.TenantID,
		claimOrgID:       claims.OrganizationID,
		claimRoles:       claims.Roles,
		claimPermissions: claims.Permissions,
	})
	if c.keyID != "" {
		access.Header["kid"] = c.keyID
	}
	signed, err := access.SignedString(c.signKey)
	if err != nil {
		return domain.TokenPair{}, domain.RefreshToken{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh := domain.RefreshToken{
		UserID:    claims.UserID,
		Token:     uuid.NewString(),
		IssuedAt:  now,
		ExpiresAt: now.Add(c.refreshTTL),
	}
	pair := domain.TokenPair{
		AccessToken:       signed,
		RefreshToken:      refresh.Token,
		AccessTTLSeconds:  int64(c.accessTTL / time.Second),
		RefreshTTLSeconds: int64(c.refreshTTL / time.Second),
		TokenType:         bearerTokenType,
	}
	return pair, refresh, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}

// stringListClaim reads a list-valued custom claim. Anything that is not a
// list of strings reads as empty rather than failing the extraction.
func stringListClaim(claims jwt.MapClaims, key string) []string {
	switch v := claims[key].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return v
	default:
		return nil
	}
}
