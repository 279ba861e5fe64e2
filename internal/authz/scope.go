// Package authz holds the scope resolution and resource access decisions.
// Everything here is a pure function of the caller's SecurityContext; nothing
// mutates shared state, so unlimited concurrent calls are safe.
package authz

import "authcore/internal/domain"

// ResolveScope derives the caller's authorization scope from their role set.
// Checks run top-down so a caller holding both admin roles resolves to the
// most permissive one. An empty or unrecognized role set resolves to
// organization scope: the narrowest non-empty scope, not a denial.
func ResolveScope(sc domain.SecurityContext) domain.RoleScope {
	switch {
	case sc.HasRole(domain.RoleSuperAdmin):
		return domain.ScopeGlobal
	case sc.HasRole(domain.RoleTenantAdmin):
		return domain.ScopeTenant
	default:
		return domain.ScopeOrganization
	}
}
