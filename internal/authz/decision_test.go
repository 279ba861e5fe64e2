package authz

import (
	"testing"

	"authcore/internal/domain"
)

func member(tenantID, orgID string, perms ...string) domain.SecurityContext {
	return domain.SecurityContext{
		UserID:         "caller",
		TenantID:       tenantID,
		OrganizationID: orgID,
		Roles:          []string{"MEMBER"},
		Permissions:    perms,
		Authenticated:  true,
	}
}

func tenantAdmin(tenantID, orgID string, perms ...string) domain.SecurityContext {
	sc := member(tenantID, orgID, perms...)
	sc.Roles = []string{domain.RoleTenantAdmin}
	return sc
}

func superAdmin() domain.SecurityContext {
	return domain.SecurityContext{
		UserID:        "root",
		Roles:         []string{domain.RoleSuperAdmin},
		Authenticated: true,
	}
}

func TestCanAccessTenant(t *testing.T) {
	cases := []struct {
		name   string
		sc     domain.SecurityContext
		target string
		want   bool
	}{
		{"super admin any tenant", superAdmin(), "t-other", true},
		{"tenant admin own tenant", tenantAdmin("t-1", "o-1"), "t-1", true},
		{"tenant admin other tenant", tenantAdmin("t-1", "o-1"), "t-2", false},
		{"member own tenant", member("t-1", "o-1"), "t-1", true},
		{"member other tenant", member("t-1", "o-1"), "t-2", false},
		{"empty target", superAdmin(), "", false},
		{"member with empty tenant", member("", "o-1"), "t-1", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanAccessTenant(tc.sc, tc.target); got != tc.want {
				t.Fatalf("CanAccessTenant = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanAccessOrganizationTenantAdminReachesWholeTenant(t *testing.T) {
	sc := tenantAdmin("t-1", "o-1")
	if !CanAccessOrganization(sc, "o-2", "t-1") {
		t.Fatal("tenant admin should reach sibling organizations in their tenant")
	}
	if CanAccessOrganization(sc, "o-9", "t-2") {
		t.Fatal("tenant admin should not reach organizations outside their tenant")
	}
}

func TestCanAccessOrganizationMemberConfinedToOwn(t *testing.T) {
	sc := member("t-1", "o-1")
	if !CanAccessOrganization(sc, "o-1", "t-1") {
		t.Fatal("member should reach their own organization")
	}
	if CanAccessOrganization(sc, "o-2", "t-1") {
		t.Fatal("member should not reach sibling organizations")
	}
	if CanAccessOrganization(sc, "", "t-1") {
		t.Fatal("empty target organization should never pass")
	}
}

// Widening the caller's scope never turns an allowed tenant access into a
// denial.
func TestTenantAccessMonotonicity(t *testing.T) {
	targets := []string{"t-1", "t-2"}
	for _, target := range targets {
		asMember := CanAccessTenant(member("t-1", "o-1"), target)
		asTenantAdmin := CanAccessTenant(tenantAdmin("t-1", "o-1"), target)
		asSuper := CanAccessTenant(superAdmin(), target)
		if asMember && !asTenantAdmin {
			t.Fatalf("tenant admin lost access to %s that a member had", target)
		}
		if asTenantAdmin && !asSuper {
			t.Fatalf("super admin lost access to %s that a tenant admin had", target)
		}
	}
}

func TestTenantDecision(t *testing.T) {
	if !Tenant(superAdmin(), "t-9", ActionDelete) {
		t.Fatal("super admin should pass every tenant decision")
	}
	if !Tenant(member("t-1", "o-1", "tenant:read"), "t-1", ActionRead) {
		t.Fatal("member with tenant:read should read their own tenant")
	}
	if Tenant(member("t-1", "o-1", "tenant:read"), "t-2", ActionRead) {
		t.Fatal("permission must not cross the tenant boundary")
	}
	if Tenant(member("t-1", "o-1"), "t-1", ActionRead) {
		t.Fatal("ownership without the permission should not pass")
	}
}

func TestOrganizationDecisionTenantAdminBypass(t *testing.T) {
	sc := tenantAdmin("t-1", "o-1", "organization:update")
	if !Organization(sc, "o-2", ActionUpdate) {
		t.Fatal("tenant admin with the permission should reach sibling organizations")
	}
	without := tenantAdmin("t-1", "o-1")
	if Organization(without, "o-2", ActionDelete) {
		t.Fatal("tenant admin without the permission should be denied")
	}
	plain := member("t-1", "o-1", "organization:update")
	if Organization(plain, "o-2", ActionUpdate) {
		t.Fatal("member should be confined to their own organization")
	}
	if !Organization(plain, "o-1", ActionUpdate) {
		t.Fatal("member with the permission should update their own organization")
	}
}

func TestUserDecisionSelfCarveOut(t *testing.T) {
	sc := member("t-1", "o-1")
	if !User(sc, "caller", ActionRead) {
		t.Fatal("a user should read their own record without a permission")
	}
	if !User(sc, "caller", ActionUpdate) {
		t.Fatal("a user should update their own record without a permission")
	}
	if User(sc, "caller", ActionDelete) {
		t.Fatal("self access must not extend to delete")
	}
	if User(sc, "someone-else", ActionRead) {
		t.Fatal("reading another user requires the permission")
	}
	if !User(member("t-1", "o-1", "user:read"), "someone-else", ActionRead) {
		t.Fatal("user:read should allow reading another user")
	}
}

func TestRoleDecision(t *testing.T) {
	if !Role(member("t-1", "o-1", "role:create"), "r-1", ActionCreate) {
		t.Fatal("role:create should allow role creation")
	}
	if Role(member("t-1", "o-1"), "r-1", ActionCreate) {
		t.Fatal("role creation without the permission should be denied")
	}
	if !Role(superAdmin(), "r-1", ActionDelete) {
		t.Fatal("super admin should pass role decisions")
	}
}

func TestPermissionDecision(t *testing.T) {
	authed := member("t-1", "o-1")
	if !Permission(authed, "p-1", ActionRead) {
		t.Fatal("any authenticated caller should read the permission catalog")
	}
	if Permission(domain.Anonymous(), "p-1", ActionRead) {
		t.Fatal("anonymous callers should not read the permission catalog")
	}
	// Permission strings are no escape hatch for catalog mutations.
	loaded := member("t-1", "o-1", "permission:create", "permission:update", "permission:delete")
	for _, action := range []string{ActionCreate, ActionUpdate, ActionDelete} {
		if Permission(loaded, "p-1", action) {
			t.Fatalf("permission %s should be super-admin only", action)
		}
	}
	if !Permission(superAdmin(), "p-1", ActionDelete) {
		t.Fatal("super admin should mutate the permission catalog")
	}
}
