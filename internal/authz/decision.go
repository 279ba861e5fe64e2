package authz

import "authcore/internal/domain"

// Action names composed into permission codes as "<resource>:<action>".
const (
	ActionRead   = "read"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// CanAccessTenant reports whether the caller may act inside the target
// tenant at all. Global scope always passes; tenant and organization scope
// pass only for the caller's own tenant. An empty target never passes.
func CanAccessTenant(sc domain.SecurityContext, targetTenantID string) bool {
	if targetTenantID == "" {
		return false
	}
	switch ResolveScope(sc) {
	case domain.ScopeGlobal:
		return true
	case domain.ScopeTenant, domain.ScopeOrganization:
		return sc.TenantID != "" && sc.TenantID == targetTenantID
	default:
		return false
	}
}

// CanAccessOrganization reports whether the caller may act inside the target
// organization. A tenant admin governs every organization in their tenant, so
// tenant scope only checks the tenant.
func CanAccessOrganization(sc domain.SecurityContext, targetOrgID, targetTenantID string) bool {
	if targetOrgID == "" {
		return false
	}
	switch ResolveScope(sc) {
	case domain.ScopeGlobal:
		return true
	case domain.ScopeTenant:
		return sc.TenantID != "" && sc.TenantID == targetTenantID
	case domain.ScopeOrganization:
		return sc.OrganizationID != "" && sc.OrganizationID == targetOrgID
	default:
		return false
	}
}

// Tenant decides access to a tenant resource: ownership plus the named
// tenant permission, super admin excepted.
func Tenant(sc domain.SecurityContext, tenantID, action string) bool {
	if sc.IsSuperAdmin() {
		return true
	}
	if !CanAccessTenant(sc, tenantID) {
		return false
	}
	return hasPermission(sc, "tenant:"+action)
}

// Organization decides access to an organization resource. A tenant admin
// with the organization permission reaches every organization in their
// tenant; everyone else is confined to their own.
func Organization(sc domain.SecurityContext, orgID, action string) bool {
	if sc.IsSuperAdmin() {
		return true
	}
	perm := "organization:" + action
	if sc.IsTenantAdmin() && hasPermission(sc, perm) {
		return true
	}
	if !sameOrganization(sc, orgID) {
		return false
	}
	return hasPermission(sc, perm)
}

// User decides access to a user record. A caller may read and update their
// own record without an explicit permission.
func User(sc domain.SecurityContext, userID, action string) bool {
	if sc.IsSuperAdmin() {
		return true
	}
	if isSelf(sc, userID) && (action == ActionRead || action == ActionUpdate) {
		return true
	}
	return hasPermission(sc, "user:"+action)
}

// Role decides access to role management.
func Role(sc domain.SecurityContext, roleID, action string) bool {
	if sc.IsSuperAdmin() {
		return true
	}
	return hasPermission(sc, "role:"+action)
}

// Permission decides access to permission management. Reading the catalog
// only requires authentication; mutating it is reserved for super admins
// with no permission-string escape hatch.
func Permission(sc domain.SecurityContext, permissionID, action string) bool {
	if sc.IsSuperAdmin() {
		return true
	}
	if action == ActionRead {
		return sc.IsAuthenticated()
	}
	return false
}

func isSelf(sc domain.SecurityContext, userID string) bool {
	return sc.UserID != "" && sc.UserID == userID
}

func sameOrganization(sc domain.SecurityContext, orgID string) bool {
	if sc.IsSuperAdmin() || sc.IsTenantAdmin() {
		return true
	}
	return sc.OrganizationID != "" && sc.OrganizationID == orgID
}

// hasPermission is the permission check used inside decisions: super admins
// implicitly hold every permission.
func hasPermission(sc domain.SecurityContext, code string) bool {
	if sc.IsSuperAdmin() {
		return true
	}
	return sc.HasPermission(code)
}
