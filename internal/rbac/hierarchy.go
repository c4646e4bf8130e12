// Package rbac holds the route permission table and the role hierarchy.
// Both are compiled once at startup and read-only afterwards; no writer
// exists after init, so concurrent reads need no locking.
package rbac

import "strings"

// Canonical role names.
const (
	RoleOwner      = "owner"
	RoleAdmin      = "admin"
	RoleOrgAdmin   = "org_admin"
	RoleManager    = "manager"
	RoleDispatcher = "dispatcher"
	RoleTechnician = "technician"
	RoleAccountant = "accountant"
	RoleViewer     = "viewer"
)

// hierarchy maps a role to every role it is entitled to act as, itself
// included. Kept as flat per-role lists; small enough that a computed
// transitive closure is not warranted.
var hierarchy = map[string][]string{
	RoleOwner:      {RoleOwner, RoleAdmin, RoleOrgAdmin, RoleManager, RoleDispatcher, RoleTechnician, RoleAccountant, RoleViewer},
	RoleAdmin:      {RoleAdmin, RoleOrgAdmin, RoleManager, RoleDispatcher, RoleTechnician, RoleAccountant, RoleViewer},
	RoleOrgAdmin:   {RoleOrgAdmin, RoleManager, RoleDispatcher, RoleTechnician, RoleAccountant, RoleViewer},
	RoleManager:    {RoleManager, RoleDispatcher, RoleTechnician, RoleViewer},
	RoleDispatcher: {RoleDispatcher, RoleViewer},
	RoleTechnician: {RoleTechnician, RoleViewer},
	RoleAccountant: {RoleAccountant, RoleViewer},
	RoleViewer:     {RoleViewer},
}

// Expand returns the set of roles the given role may act as. An unknown
// role expands to itself only; an empty role expands to nothing.
func Expand(role string) map[string]struct{} {
	role = Normalize(role)
	set := make(map[string]struct{}, 8)
	if role == "" {
		return set
	}
	set[role] = struct{}{}
	for _, r := range hierarchy[role] {
		set[r] = struct{}{}
	}
	return set
}

// Normalize lower-cases and trims a role name. All role comparisons in
// the pipeline go through it.
func Normalize(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}
