package rbac_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/leadly/leadly-api/internal/rbac"
)

func testRegistry(t *testing.T) *rbac.Registry {
	t.Helper()
	reg, err := rbac.NewRegistry(rbac.AudienceOrganization, []rbac.Route{
		{ID: "dashboard", Label: "Dashboard", Tabs: []rbac.Tab{
			{ID: "overview", Label: "Overview"},
			{ID: "calls", Label: "Calls"},
		}},
		{ID: "leads", Label: "Leads"},
		{ID: "users", Label: "Users"},
		{ID: "profile", Label: "Profile", IsDefault: true},
	})
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	return reg
}

func TestHasRoutePermissionFailClosed(t *testing.T) {
	reg := testRegistry(t)

	grant := rbac.Grant{
		"reports": rbac.NewTagSet(rbac.TagView), // not in registry
	}

	if rbac.HasRoutePermission(reg, grant, "reports") {
		t.Fatal("route absent from registry must resolve to false even when granted")
	}
	if rbac.HasRoutePermission(reg, grant, "") {
		t.Fatal("empty route id must resolve to false")
	}
}

func TestHasRoutePermissionDefaultRoute(t *testing.T) {
	reg := testRegistry(t)

	// Even a completely empty grant sees default routes.
	if !rbac.HasRoutePermission(reg, rbac.Grant{}, "profile") {
		t.Fatal("default route must be visible with empty grant")
	}
	if !rbac.HasRoutePermission(reg, nil, "profile") {
		t.Fatal("default route must be visible with nil grant")
	}
	if rbac.HasRoutePermission(reg, rbac.Grant{}, "leads") {
		t.Fatal("gated route must not be visible with empty grant")
	}
}

func TestHasTabPermissionImpliesRoute(t *testing.T) {
	reg := testRegistry(t)

	// Tab tag present but route view missing: tab must stay hidden.
	grant := rbac.Grant{
		"dashboard": rbac.NewTagSet("overview"),
	}
	if rbac.HasTabPermission(reg, grant, "dashboard", "overview") {
		t.Fatal("tab must not be visible while its route is not")
	}

	grant["dashboard"] = rbac.NewTagSet(rbac.TagView, "overview")
	if !rbac.HasTabPermission(reg, grant, "dashboard", "overview") {
		t.Fatal("granted tab on visible route must be visible")
	}
	if rbac.HasTabPermission(reg, grant, "dashboard", "calls") {
		t.Fatal("ungranted tab must not be visible")
	}
}

func TestHasTabPermissionUnknownTab(t *testing.T) {
	reg := testRegistry(t)

	grant := rbac.Grant{
		"dashboard": rbac.NewTagSet(rbac.TagView, "exports"),
		"leads":     rbac.NewTagSet(rbac.TagView, "pipeline"),
	}

	if rbac.HasTabPermission(reg, grant, "dashboard", "exports") {
		t.Fatal("tab the registry does not declare must resolve to false")
	}
	// "leads" declares no tabs at all.
	if rbac.HasTabPermission(reg, grant, "leads", "pipeline") {
		t.Fatal("tab on a tabless route must resolve to false")
	}
}

func TestResolveVisibleSetOrder(t *testing.T) {
	reg := testRegistry(t)

	grant := rbac.Grant{
		"users":     rbac.NewTagSet(rbac.TagView),
		"dashboard": rbac.NewTagSet(rbac.TagView, "calls", "overview"),
	}

	vs := rbac.ResolveVisibleSet(reg, grant)

	// Registry order, not grant order: dashboard, users, profile(default).
	wantRoutes := []string{"dashboard", "users", "profile"}
	if !reflect.DeepEqual(vs.Routes, wantRoutes) {
		t.Fatalf("routes = %v, want %v", vs.Routes, wantRoutes)
	}

	// Tab declaration order preserved as well.
	wantTabs := []string{"overview", "calls"}
	if !reflect.DeepEqual(vs.TabsByRoute["dashboard"], wantTabs) {
		t.Fatalf("dashboard tabs = %v, want %v", vs.TabsByRoute["dashboard"], wantTabs)
	}
}

func TestResolveVisibleSetSubsequence(t *testing.T) {
	reg := rbac.RegistryFor(rbac.AudienceOrganization)

	grants := []rbac.Grant{
		{},
		{"leads": rbac.NewTagSet(rbac.TagView)},
		{"financial": rbac.NewTagSet(rbac.TagView), "dashboard": rbac.NewTagSet(rbac.TagView)},
	}

	for _, grant := range grants {
		vs := rbac.ResolveVisibleSet(reg, grant)
		pos := 0
		for _, routeID := range vs.Routes {
			found := false
			for ; pos < len(reg.Routes()); pos++ {
				if reg.Routes()[pos].ID == routeID {
					found = true
					pos++
					break
				}
			}
			if !found {
				t.Fatalf("visible routes %v are not a subsequence of the registry", vs.Routes)
			}
		}
	}
}

func TestSellerScenario(t *testing.T) {
	reg := testRegistry(t)

	seller := rbac.Grant{
		"dashboard": rbac.NewTagSet(rbac.TagView),
		"leads":     rbac.NewTagSet(rbac.TagView),
		"profile":   rbac.NewTagSet(rbac.TagView),
	}

	if rbac.HasRoutePermission(reg, seller, "users") {
		t.Fatal("seller must not see users")
	}
	if !rbac.HasRoutePermission(reg, seller, "profile") {
		t.Fatal("seller must see profile")
	}
	if !rbac.HasRoutePermission(reg, seller, "leads") {
		t.Fatal("seller must see leads")
	}
}

func TestBooleanMapSugar(t *testing.T) {
	reg := testRegistry(t)

	var legacy rbac.Grant
	if err := json.Unmarshal([]byte(`{"dashboard": true, "users": false}`), &legacy); err != nil {
		t.Fatalf("unmarshal legacy grant: %v", err)
	}

	canonical := rbac.Grant{
		"dashboard": rbac.NewTagSet(rbac.TagView),
		"users":     rbac.NewTagSet(),
	}

	for _, routeID := range []string{"dashboard", "leads", "users", "profile"} {
		got := rbac.HasRoutePermission(reg, legacy, routeID)
		want := rbac.HasRoutePermission(reg, canonical, routeID)
		if got != want {
			t.Fatalf("route %q: legacy grant resolves to %v, canonical to %v", routeID, got, want)
		}
	}
}
