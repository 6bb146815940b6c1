package rbac

import "fmt"

// Audience selects which route catalog a user draws from. Organization-side
// users (sellers, managers, org admins) and Leadly staff see disjoint route
// sets.
type Audience string

const (
	AudienceOrganization Audience = "organization"
	AudienceAdmin        Audience = "admin"
)

// Role represents a user role (matches user_role enum)
type Role string

const (
	// Organization-side roles
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleSeller  Role = "seller"

	// Leadly staff roles
	RoleLeadlyEmployee Role = "leadly_employee"
	RoleLeadlyMaster   Role = "leadly_master"
)

// Audience returns the registry partition the role draws routes from.
func (r Role) Audience() Audience {
	switch r {
	case RoleLeadlyEmployee, RoleLeadlyMaster:
		return AudienceAdmin
	default:
		return AudienceOrganization
	}
}

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleSeller, RoleLeadlyEmployee, RoleLeadlyMaster:
		return true
	}
	return false
}

// Tab is a sub-view within a route. Tabs are granted individually but a tab
// is never visible unless its parent route is.
type Tab struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Route is a navigable top-level section. Routes flagged IsDefault are
// visible to every authenticated user regardless of their grant record.
type Route struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Icon      string `json:"icon"`
	IsDefault bool   `json:"is_default"`
	Tabs      []Tab  `json:"tabs,omitempty"`
}

// Registry is the immutable route catalog for one audience. Declaration
// order is significant: it is the menu order.
type Registry struct {
	audience Audience
	routes   []Route
	byID     map[string]int
}

// NewRegistry builds a registry and validates route id uniqueness. A
// duplicate id is a programming error in the catalog, so construction fails.
func NewRegistry(audience Audience, routes []Route) (*Registry, error) {
	byID := make(map[string]int, len(routes))
	for i, rt := range routes {
		if rt.ID == "" {
			return nil, fmt.Errorf("registry %s: route at index %d has empty id", audience, i)
		}
		if _, dup := byID[rt.ID]; dup {
			return nil, fmt.Errorf("registry %s: duplicate route id %q", audience, rt.ID)
		}
		seen := make(map[string]struct{}, len(rt.Tabs))
		for _, tab := range rt.Tabs {
			if _, dup := seen[tab.ID]; dup {
				return nil, fmt.Errorf("registry %s: route %q: duplicate tab id %q", audience, rt.ID, tab.ID)
			}
			seen[tab.ID] = struct{}{}
		}
		byID[rt.ID] = i
	}
	return &Registry{audience: audience, routes: routes, byID: byID}, nil
}

func mustRegistry(audience Audience, routes []Route) *Registry {
	reg, err := NewRegistry(audience, routes)
	if err != nil {
		panic(err)
	}
	return reg
}

// Audience returns the registry's audience.
func (reg *Registry) Audience() Audience { return reg.audience }

// Routes returns the catalog in declaration order. Callers must not modify
// the returned slice.
func (reg *Registry) Routes() []Route { return reg.routes }

// Route looks up a route by id.
func (reg *Registry) Route(id string) (Route, bool) {
	i, ok := reg.byID[id]
	if !ok {
		return Route{}, false
	}
	return reg.routes[i], true
}

// RouteProfile is always visible and non-revocable for every role and both
// audiences.
const RouteProfile = "profile"

var organizationRegistry = mustRegistry(AudienceOrganization, []Route{
	{ID: "dashboard", Label: "Dashboard", Icon: "layout-dashboard", Tabs: []Tab{
		{ID: "overview", Label: "Overview"},
		{ID: "calls", Label: "Calls"},
		{ID: "performance", Label: "Performance"},
	}},
	{ID: "leads", Label: "Leads", Icon: "target"},
	{ID: "calls", Label: "Calls", Icon: "phone"},
	{ID: "users", Label: "Users", Icon: "users"},
	{ID: "financial", Label: "Financial", Icon: "receipt"},
	{ID: "modules", Label: "AI Modules", Icon: "sparkles"},
	{ID: "plan", Label: "Plan", Icon: "credit-card"},
	{ID: "company", Label: "Company", Icon: "building", IsDefault: true},
	{ID: RouteProfile, Label: "Profile", Icon: "user", IsDefault: true},
})

var adminRegistry = mustRegistry(AudienceAdmin, []Route{
	{ID: "dashboard", Label: "Dashboard", Icon: "layout-dashboard", Tabs: []Tab{
		{ID: "metrics", Label: "Metrics"},
		{ID: "revenue", Label: "Revenue"},
		{ID: "usage", Label: "Usage"},
	}},
	{ID: "organizations", Label: "Organizations", Icon: "building"},
	{ID: "users", Label: "Users", Icon: "users"},
	{ID: "plans", Label: "Plans", Icon: "credit-card"},
	{ID: "modules", Label: "AI Modules", Icon: "sparkles"},
	{ID: "prompts", Label: "Prompts", Icon: "message-square"},
	{ID: "credit-packages", Label: "Credit Packages", Icon: "package"},
	{ID: "financial", Label: "Financial", Icon: "receipt"},
	{ID: RouteProfile, Label: "Profile", Icon: "user", IsDefault: true},
})

// RegistryFor returns the compiled-in registry for an audience.
func RegistryFor(audience Audience) *Registry {
	if audience == AudienceAdmin {
		return adminRegistry
	}
	return organizationRegistry
}

// RegistryForRole returns the registry the role's audience draws from.
func RegistryForRole(role Role) *Registry {
	return RegistryFor(role.Audience())
}
