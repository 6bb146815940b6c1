package rbac

// HasRoutePermission reports whether the grant makes routeID visible.
// Default routes are visible unconditionally. Route ids unknown to the
// registry resolve to false: a false negative costs convenience, a false
// positive is an access-control breach.
func HasRoutePermission(reg *Registry, grant Grant, routeID string) bool {
	route, ok := reg.Route(routeID)
	if !ok {
		return false
	}
	if route.IsDefault {
		return true
	}
	return grant.Has(routeID, TagView)
}

// HasTabPermission reports whether tabID within routeID is visible. A tab is
// never visible while its parent route is not, and a tab the registry does
// not declare for the route resolves to false.
func HasTabPermission(reg *Registry, grant Grant, routeID, tabID string) bool {
	if !HasRoutePermission(reg, grant, routeID) {
		return false
	}
	route, _ := reg.Route(routeID)
	declared := false
	for _, tab := range route.Tabs {
		if tab.ID == tabID {
			declared = true
			break
		}
	}
	if !declared {
		return false
	}
	return grant.Has(routeID, tabID)
}

// VisibleSet is the resolved projection of a grant against a registry:
// which routes the user may open, and which tabs within each, both in
// registry declaration order.
type VisibleSet struct {
	Routes      []string            `json:"routes"`
	TabsByRoute map[string][]string `json:"tabs_by_route"`
}

// ResolveVisibleSet computes the full visible set for menu building. It is
// pure and cheap (the registry holds tens of entries), so callers recompute
// it per request rather than caching.
func ResolveVisibleSet(reg *Registry, grant Grant) VisibleSet {
	vs := VisibleSet{
		Routes:      make([]string, 0, len(reg.Routes())),
		TabsByRoute: make(map[string][]string),
	}
	for _, route := range reg.Routes() {
		if !HasRoutePermission(reg, grant, route.ID) {
			continue
		}
		vs.Routes = append(vs.Routes, route.ID)
		if len(route.Tabs) == 0 {
			continue
		}
		var tabs []string
		for _, tab := range route.Tabs {
			if grant.Has(route.ID, tab.ID) {
				tabs = append(tabs, tab.ID)
			}
		}
		if len(tabs) > 0 {
			vs.TabsByRoute[route.ID] = tabs
		}
	}
	return vs
}
