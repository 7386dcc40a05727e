package model

import "strings"

// Role is the backend-assigned capability level of the signed-in user.
type Role string

const (
	RoleViewer     Role = "viewer"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// ParseRole maps a wire role string to a known Role. Unknown values are
// reported explicitly rather than silently treated as viewer.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleViewer:
		return RoleViewer, true
	case RoleAdmin:
		return RoleAdmin, true
	case RoleSuperadmin:
		return RoleSuperadmin, true
	}
	return "", false
}

func (r Role) CanViewReports() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

func (r Role) CanManage() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

// Destination is a navigable page of the client. The set of valid
// destinations is derived from the user's role, never from ad-hoc string
// comparisons at call sites.
type Destination string

const (
	DestDashboard    Destination = "dashboard"
	DestEvents       Destination = "events"
	DestAssociations Destination = "associations"
	DestReports      Destination = "reports"
)

// Destinations returns the pages a role may navigate to, in menu order.
func Destinations(r Role) []Destination {
	out := []Destination{DestDashboard, DestEvents, DestAssociations}
	if r.CanViewReports() {
		out = append(out, DestReports)
	}
	return out
}

// Allows reports whether d is a permitted destination for the role.
// Unknown destinations are never allowed.
func (r Role) Allows(d Destination) bool {
	for _, known := range Destinations(r) {
		if known == d {
			return true
		}
	}
	return false
}

// MenuLabel is the user-facing label for a destination.
func (d Destination) MenuLabel() string {
	switch d {
	case DestDashboard:
		return "Dashboard"
	case DestEvents:
		return "Eventi"
	case DestAssociations:
		return "Associazioni"
	case DestReports:
		return "Riepilogo"
	}
	return string(d)
}

// ParseDestination maps a CLI/router fragment to a Destination.
func ParseDestination(s string) (Destination, bool) {
	switch Destination(strings.ToLower(strings.TrimSpace(s))) {
	case DestDashboard:
		return DestDashboard, true
	case DestEvents:
		return DestEvents, true
	case DestAssociations:
		return DestAssociations, true
	case DestReports:
		return DestReports, true
	}
	return "", false
}

// User mirrors the backend user schema.
type User struct {
	ID          int    `json:"id,omitempty"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
	Role        Role   `json:"role"`
}
