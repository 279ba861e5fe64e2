package domain

// RoleScope is the breadth of resources a caller's roles entitle them to act
// on. The numeric order is the permissiveness order: a larger scope grants at
// least everything a smaller one does.
type RoleScope int

const (
	ScopeUnknown RoleScope = iota
	ScopeOrganization
	ScopeTenant
	ScopeGlobal
)

func (s RoleScope) String() string {
	switch s {
	case ScopeOrganization:
		return "ORGANIZATION"
	case ScopeTenant:
		return "TENANT"
	case ScopeGlobal:
		return "GLOBAL"
	default:
		return "UNKNOWN"
	}
}

// Compare returns -1, 0 or 1 ordering by permissiveness.
func (s RoleScope) Compare(other RoleScope) int {
	switch {
	case s < other:
		return -1
	case s > other:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether s is at least as permissive as other.
func (s RoleScope) AtLeast(other RoleScope) bool {
	return s.Compare(other) >= 0
}
