package main

import (
	"log"
	"time"

	"authcore/internal/auth"
	"authcore/internal/config"
	"authcore/internal/infra/db"
	httpinfra "authcore/internal/infra/http"
	"authcore/internal/infra/tokencache"
	"authcore/internal/usecase"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfg := config.FromEnv()

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	codec, err := auth.NewCodec(cfg, logger)
	if err != nil {
		logger.Fatal("failed to init token codec", zap.Error(err))
	}

	store, err := db.NewStore(cfg, logger)
	if err != nil {
		logger.Fatal("failed to init store", zap.Error(err))
	}
	if err := store.Migrate(); err != nil {
		logger.Fatal("failed to migrate schema", zap.Error(err))
	}

	var cache usecase.TokenCache
	if cfg.RedisAddr != "" {
		rc, err := tokencache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, time.Now)
		if err != nil {
			logger.Fatal("failed to init redis cache", zap.Error(err))
		}
		cache = rc
	} else {
		logger.Warn("REDIS_ADDR not set, using in-process token cache")
		cache = tokencache.NewMemoryCache(time.Now)
	}

	tokens := usecase.NewRefreshTokenStore(cache, db.NewRefreshTokenRepository(store.DB), logger)

	service := usecase.NewTokenService(usecase.TokenServiceDeps{
		Issuer:        codec,
		Tokens:        tokens,
		Users:         db.NewUserRepository(store.DB),
		Tenants:       db.NewTenantRepository(store.DB),
		Organizations: db.NewOrganizationRepository(store.DB),
		Roles:         db.NewRoleRepository(store.DB),
		Credentials:   db.NewCredentialRepository(store.DB),
		Passwords:     auth.BcryptVerifier{},
		Logger:        logger,
	})

	srv := httpinfra.NewServer(cfg, httpinfra.ServerDeps{
		Codec:         codec,
		Tokens:        service,
		Users:         db.NewUserRepository(store.DB),
		Tenants:       db.NewTenantRepository(store.DB),
		Organizations: db.NewOrganizationRepository(store.DB),
		Logger:        logger,
	})

	logger.Info("starting server", zap.String("addr", cfg.HTTPAddr))
	if err := srv.Run(); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
