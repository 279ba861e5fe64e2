package db

import (
	"fmt"

	"authcore/internal/config"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Store struct {
	DB *gorm.DB
}

func NewStore(cfg config.Config, log *zap.Logger) (*Store, error) {
	if cfg.PostgresDSN == "" {
		log.Warn("POSTGRES_DSN not set; starting in no-db mode")
		return &Store{DB: nil}, nil
	}

	gdb, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	return &Store{DB: gdb}, nil
}

func (s *Store) Migrate() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.AutoMigrate(
		&TenantModel{},
		&OrganizationModel{},
		&UserModel{},
		&CredentialModel{},
		&RoleModel{},
		&PermissionModel{},
		&UserRoleModel{},
		&RolePermissionModel{},
		&RefreshTokenModel{},
	)
}
