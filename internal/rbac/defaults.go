package rbac

// Default grant tables, one row per role. The per-role values are
// configuration owned by the platform team, not derived logic; the only
// rules code enforces are the profile baseline and that admin-audience
// dashboards carry at least the view tag.

var organizationDefaults = map[Role]Grant{
	RoleAdmin: {
		"dashboard":  NewTagSet(TagView, "overview", "calls", "performance"),
		"leads":      NewTagSet(TagView),
		"calls":      NewTagSet(TagView),
		"users":      NewTagSet(TagView),
		"financial":  NewTagSet(TagView),
		"modules":    NewTagSet(TagView),
		"plan":       NewTagSet(TagView),
		"company":    NewTagSet(TagView),
		RouteProfile: NewTagSet(TagView),
	},
	RoleManager: {
		"dashboard":  NewTagSet(TagView, "overview", "calls", "performance"),
		"leads":      NewTagSet(TagView),
		"calls":      NewTagSet(TagView),
		"users":      NewTagSet(TagView),
		RouteProfile: NewTagSet(TagView),
	},
	RoleSeller: {
		"dashboard":  NewTagSet(TagView),
		"leads":      NewTagSet(TagView),
		RouteProfile: NewTagSet(TagView),
	},
}

var adminDefaults = map[Role]Grant{
	RoleLeadlyMaster: {
		"dashboard":       NewTagSet(TagView, "metrics", "revenue", "usage"),
		"organizations":   NewTagSet(TagView),
		"users":           NewTagSet(TagView),
		"plans":           NewTagSet(TagView),
		"modules":         NewTagSet(TagView),
		"prompts":         NewTagSet(TagView),
		"credit-packages": NewTagSet(TagView),
		"financial":       NewTagSet(TagView),
		RouteProfile:      NewTagSet(TagView),
	},
	RoleLeadlyEmployee: {
		"dashboard":     NewTagSet(TagView, "metrics"),
		"organizations": NewTagSet(TagView),
		"users":         NewTagSet(TagView),
		"plans":         NewTagSet(TagView),
		RouteProfile:    NewTagSet(TagView),
	},
}

// DefaultGrant returns the seed grant for a newly provisioned user of the
// given role. The returned grant is a copy; callers may mutate it freely.
func DefaultGrant(role Role) (Grant, error) {
	table := organizationDefaults
	if role.Audience() == AudienceAdmin {
		table = adminDefaults
	}
	grant, ok := table[role]
	if !ok {
		return nil, &UnknownRoleError{Role: role}
	}
	return grant.Clone(), nil
}
