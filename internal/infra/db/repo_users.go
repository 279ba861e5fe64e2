package db

import (
	"context"
	"errors"

	"authcore/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model UserModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return userFromModel(model), nil
}

func userFromModel(model UserModel) *domain.User {
	return &domain.User{
		ID:             model.ID,
		TenantID:       model.TenantID,
		OrganizationID: model.OrganizationID,
		Email:          model.Email,
		Status:         model.Status,
		CreatedAt:      model.CreatedAt,
	}
}

type CredentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

func (r *CredentialRepository) GetByIdentifier(ctx context.Context, identifier string) (*domain.Credential, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model CredentialModel
	err := r.db.WithContext(ctx).First(&model, "identifier = ?", identifier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &domain.Credential{
		UserID:       model.UserID,
		Identifier:   model.Identifier,
		PasswordHash: model.PasswordHash,
	}, nil
}
