package rbac

import "fmt"

// UnknownRoleError is returned when seeding defaults for a role absent from
// the default table. Seeding must fail loudly: silently handing out zero or
// full permissions would be a security bug either way.
type UnknownRoleError struct {
	Role Role
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("rbac: unknown role %q", e.Role)
}

// RegistryInconsistencyError indicates a route id surfaced by resolution that
// the registry cannot resolve. This is a programming error, not a user
// condition.
type RegistryInconsistencyError struct {
	Audience Audience
	RouteID  string
}

func (e *RegistryInconsistencyError) Error() string {
	return fmt.Sprintf("rbac: registry %s has no route %q referenced by visible set", e.Audience, e.RouteID)
}
