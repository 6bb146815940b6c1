package rbac

// MenuTab is a renderable tab entry.
type MenuTab struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// MenuEntry is a renderable navigation entry with presentation metadata
// joined in from the registry.
type MenuEntry struct {
	ID    string    `json:"id"`
	Label string    `json:"label"`
	Icon  string    `json:"icon"`
	Tabs  []MenuTab `json:"tabs,omitempty"`
}

// ProjectMenu turns a resolved visible set into navigation entries. Lookup
// failure cannot happen when the visible set came from the same registry,
// but a mismatch is reported as RegistryInconsistencyError instead of
// dereferencing a missing route.
func ProjectMenu(reg *Registry, vs VisibleSet) ([]MenuEntry, error) {
	menu := make([]MenuEntry, 0, len(vs.Routes))
	for _, routeID := range vs.Routes {
		route, ok := reg.Route(routeID)
		if !ok {
			return nil, &RegistryInconsistencyError{Audience: reg.Audience(), RouteID: routeID}
		}
		entry := MenuEntry{ID: route.ID, Label: route.Label, Icon: route.Icon}
		for _, tabID := range vs.TabsByRoute[routeID] {
			for _, tab := range route.Tabs {
				if tab.ID == tabID {
					entry.Tabs = append(entry.Tabs, MenuTab{ID: tab.ID, Label: tab.Label})
					break
				}
			}
		}
		menu = append(menu, entry)
	}
	return menu, nil
}

// BuildMenu resolves and projects in one step, for callers that do not need
// the intermediate visible set.
func BuildMenu(reg *Registry, grant Grant) ([]MenuEntry, error) {
	return ProjectMenu(reg, ResolveVisibleSet(reg, grant))
}
