package rbac

// ApplyPermissionChange toggles the view tag for routeID in an edit draft
// and returns the updated copy. The input grant is never mutated, so the
// editing UI keeps cancel/undo semantics by discarding the returned value.
//
// Two route classes are not editable and make the call a no-op: routes the
// registry flags as default, and the profile route regardless of registry
// flags.
func ApplyPermissionChange(reg *Registry, draft Grant, routeID string) Grant {
	if routeID == RouteProfile {
		return draft
	}
	if route, ok := reg.Route(routeID); ok && route.IsDefault {
		return draft
	}

	next := draft.Clone()
	tags, ok := next[routeID]
	if ok && tags.Has(TagView) {
		delete(tags, TagView)
		return next
	}
	if !ok {
		tags = TagSet{}
		next[routeID] = tags
	}
	tags[TagView] = struct{}{}
	return next
}

// ApplyTabChange toggles a tab tag for routeID in an edit draft and returns
// the updated copy. Tabs the registry does not declare for the route are
// inert, so the call is a no-op for them.
func ApplyTabChange(reg *Registry, draft Grant, routeID, tabID string) Grant {
	route, ok := reg.Route(routeID)
	if !ok || tabID == TagView {
		return draft
	}
	declared := false
	for _, tab := range route.Tabs {
		if tab.ID == tabID {
			declared = true
			break
		}
	}
	if !declared {
		return draft
	}

	next := draft.Clone()
	tags, ok := next[routeID]
	if ok && tags.Has(tabID) {
		delete(tags, tabID)
		return next
	}
	if !ok {
		tags = TagSet{}
		next[routeID] = tags
	}
	tags[tabID] = struct{}{}
	return next
}

// CommitPermissionChanges finalizes an edit draft for persistence. Profile
// is force-granted regardless of what the draft holds, so the non-revocable
// invariant survives any sequence of toggles. Idempotent; does not mutate
// its input.
func CommitPermissionChanges(draft Grant) Grant {
	final := draft.Clone()
	tags, ok := final[RouteProfile]
	if !ok {
		tags = TagSet{}
		final[RouteProfile] = tags
	}
	tags[TagView] = struct{}{}
	return final
}
