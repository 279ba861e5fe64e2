package db

import (
	"context"

	"authcore/internal/domain"

	"gorm.io/gorm"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// GetUserRoles resolves the user's current roles and the permission codes
// those roles grant, flattened across the user_roles and role_permissions
// join tables.
func (r *RoleRepository) GetUserRoles(ctx context.Context, userID string) (domain.RoleBindings, error) {
	if r.db == nil {
		return domain.RoleBindings{}, errDBUnavailable
	}

	var roles []string
	err := r.db.WithContext(ctx).
		Model(&RoleModel{}).
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Pluck("roles.name", &roles).Error
	if err != nil {
		return domain.RoleBindings{}, err
	}

	var permissions []string
	err = r.db.WithContext(ctx).
		Model(&PermissionModel{}).
		Distinct("permissions.code").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Joins("JOIN user_roles ON user_roles.role_id = role_permissions.role_id").
		Where("user_roles.user_id = ?", userID).
		Pluck("permissions.code", &permissions).Error
	if err != nil {
		return domain.RoleBindings{}, err
	}

	return domain.RoleBindings{Roles: roles, Permissions: permissions}, nil
}
