package db

import (
	"context"
	"errors"

	"authcore/internal/domain"

	"gorm.io/gorm"
)

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

func (r *OrganizationRepository) Create(ctx context.Context, org domain.Organization) error {
	if r.db == nil {
		return errDBUnavailable
	}
	model := OrganizationModel{
		ID:        org.ID,
		TenantID:  org.TenantID,
		Name:      org.Name,
		CreatedAt: org.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

func (r *OrganizationRepository) GetByID(ctx context.Context, orgID string) (*domain.Organization, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model OrganizationModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", orgID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &domain.Organization{
		ID:        model.ID,
		TenantID:  model.TenantID,
		Name:      model.Name,
		CreatedAt: model.CreatedAt,
	}, nil
}
