package model

import "testing"

func TestDestinationsByRole(t *testing.T) {
	hasReports := func(ds []Destination) bool {
		for _, d := range ds {
			if d == DestReports {
				return true
			}
		}
		return false
	}

	if hasReports(Destinations(RoleViewer)) {
		t.Fatal("viewer must not see the reports destination")
	}
	if !hasReports(Destinations(RoleAdmin)) {
		t.Fatal("admin must see the reports destination")
	}
	if !hasReports(Destinations(RoleSuperadmin)) {
		t.Fatal("superadmin must see the reports destination")
	}

	// Unknown roles (including anonymous "") degrade to the viewer menu.
	if got := len(Destinations(Role("ospite"))); got != 3 {
		t.Fatalf("unknown role destinations = %d, want 3", got)
	}
}

func TestRoleAllows(t *testing.T) {
	if RoleViewer.Allows(DestReports) {
		t.Fatal("viewer allowed into reports")
	}
	if !RoleViewer.Allows(DestEvents) {
		t.Fatal("viewer refused events")
	}
	if !RoleAdmin.Allows(DestReports) {
		t.Fatal("admin refused reports")
	}
	if RoleAdmin.Allows(Destination("sconosciuta")) {
		t.Fatal("unknown destination allowed")
	}
}

func TestRoleCapabilities(t *testing.T) {
	if RoleViewer.CanManage() || RoleViewer.CanViewReports() {
		t.Fatal("viewer has write or reports capability")
	}
	if !RoleAdmin.CanManage() || !RoleSuperadmin.CanViewReports() {
		t.Fatal("admin capabilities missing")
	}
}

func TestParseRole(t *testing.T) {
	if r, ok := ParseRole("  Admin "); !ok || r != RoleAdmin {
		t.Fatalf("ParseRole(Admin) = %q, %v", r, ok)
	}
	if _, ok := ParseRole("root"); ok {
		t.Fatal("unknown role parsed")
	}
}

func TestParseDestinationAndLabels(t *testing.T) {
	if d, ok := ParseDestination("Events"); !ok || d != DestEvents {
		t.Fatalf("ParseDestination(Events) = %q, %v", d, ok)
	}
	if _, ok := ParseDestination("login"); ok {
		t.Fatal("login is not a destination")
	}
	if DestReports.MenuLabel() != "Riepilogo" {
		t.Fatalf("reports label = %q", DestReports.MenuLabel())
	}
}
