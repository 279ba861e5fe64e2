package db

import (
	"context"
	"errors"

	"authcore/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RefreshTokenRepository is the durable, authoritative side of the
// refresh-token store. Rows never expire on their own; issuance overwrites
// the user's row and revocation deletes it.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Persist(ctx context.Context, token domain.RefreshToken) error {
	if r.db == nil {
		return errDBUnavailable
	}
	model := RefreshTokenModel{
		UserID:    token.UserID,
		Token:     token.Token,
		IssuedAt:  token.IssuedAt,
		ExpiresAt: token.ExpiresAt,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(&model).Error
}

func (r *RefreshTokenRepository) FindByUserID(ctx context.Context, userID string) (*domain.RefreshToken, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model RefreshTokenModel
	err := r.db.WithContext(ctx).First(&model, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return tokenFromModel(model), nil
}

func (r *RefreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model RefreshTokenModel
	err := r.db.WithContext(ctx).First(&model, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return tokenFromModel(model), nil
}

// DeleteByUserID removes the user's row. Deleting an absent row is not an
// error.
func (r *RefreshTokenRepository) DeleteByUserID(ctx context.Context, userID string) error {
	if r.db == nil {
		return errDBUnavailable
	}
	return r.db.WithContext(ctx).Delete(&RefreshTokenModel{}, "user_id = ?", userID).Error
}

func tokenFromModel(model RefreshTokenModel) *domain.RefreshToken {
	return &domain.RefreshToken{
		UserID:    model.UserID,
		Token:     model.Token,
		IssuedAt:  model.IssuedAt,
		ExpiresAt: model.ExpiresAt,
	}
}
