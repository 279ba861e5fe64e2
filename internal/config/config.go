package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr    string
	PostgresDSN string
	LogLevel    string

	JWTIssuer            string
	JWTSecret            string
	JWTRSAEnabled        bool
	JWTRSAPrivateKeyPath string
	JWTRSAPublicKeyPath  string
	JWTRSAKeyID          string

	AccessTokenTTLSecs  int
	RefreshTokenTTLSecs int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:             addr,
		PostgresDSN:          os.Getenv("POSTGRES_DSN"),
		LogLevel:             envDefault("LOG_LEVEL", "info"),
		JWTIssuer:            envDefault("JWT_ISSUER", "authcore"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		JWTRSAEnabled:        envBoolDefault("JWT_RSA_ENABLED", false),
		JWTRSAPrivateKeyPath: os.Getenv("JWT_RSA_PRIVATE_KEY_PATH"),
		JWTRSAPublicKeyPath:  os.Getenv("JWT_RSA_PUBLIC_KEY_PATH"),
		JWTRSAKeyID:          os.Getenv("JWT_RSA_KEY_ID"),
		AccessTokenTTLSecs:   envIntDefault("ACCESS_TOKEN_TTL_SECONDS", 3600),
		RefreshTokenTTLSecs:  envIntDefault("REFRESH_TOKEN_TTL_SECONDS", 1209600),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		RedisDB:              envIntDefault("REDIS_DB", 0),
	}
}

func envDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func envIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func envBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "Yes":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "No":
		return false
	default:
		return def
	}
}

func (c Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenTTLSecs) * time.Second
}

func (c Config) RefreshTokenTTL() time.Duration {
	return time.Duration(c.RefreshTokenTTLSecs) * time.Second
}
