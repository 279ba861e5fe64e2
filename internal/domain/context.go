package domain

// Role names with scope semantics attached. Anything else in a role set is
// an application role and resolves to organization scope.
const (
	RoleSuperAdmin     = "SUPER_ADMIN"
	RoleTenantAdmin    = "TENANT_ADMIN"
	RoleServiceAccount = "SERVICE_ACCOUNT"
)

// SecurityContext is an immutable snapshot of the authenticated caller for
// one request. The zero value is not anonymous; use Anonymous().
type SecurityContext struct {
	UserID         string
	TenantID       string
	OrganizationID string
	Roles          []string
	Permissions    []string
	ServiceAccount bool
	RequestSource  string
	TraceID        string
	CorrelationID  string
	Authenticated  bool
}

// Anonymous is the context for requests that carried no credentials.
func Anonymous() SecurityContext {
	return SecurityContext{}
}

// FromClaims builds the per-request context from verified claims.
func FromClaims(claims Claims) SecurityContext {
	sc := SecurityContext{
		UserID:         claims.UserID,
		TenantID:       claims.TenantID,
		OrganizationID: claims.OrganizationID,
		Roles:          claims.Roles,
		Permissions:    claims.Permissions,
		Authenticated:  claims.UserID != "",
	}
	sc.ServiceAccount = sc.HasRole(RoleServiceAccount)
	return sc
}

func (sc SecurityContext) IsAuthenticated() bool {
	return sc.Authenticated
}

func (sc SecurityContext) HasRole(role string) bool {
	for _, r := range sc.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (sc SecurityContext) HasAnyRole(roles ...string) bool {
	for _, role := range roles {
		if sc.HasRole(role) {
			return true
		}
	}
	return false
}

func (sc SecurityContext) HasPermission(code string) bool {
	for _, p := range sc.Permissions {
		if p == code {
			return true
		}
	}
	return false
}

func (sc SecurityContext) HasAnyPermission(codes ...string) bool {
	for _, code := range codes {
		if sc.HasPermission(code) {
			return true
		}
	}
	return false
}

func (sc SecurityContext) HasAllPermissions(codes ...string) bool {
	for _, code := range codes {
		if !sc.HasPermission(code) {
			return false
		}
	}
	return true
}

func (sc SecurityContext) IsSuperAdmin() bool {
	return sc.HasRole(RoleSuperAdmin)
}

func (sc SecurityContext) IsTenantAdmin() bool {
	return sc.HasRole(RoleTenantAdmin)
}
