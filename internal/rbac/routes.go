package rbac

// DefaultPolicy is the route permission table for the API surface.
// Order matters: the first matching rule wins.
func DefaultPolicy() *Policy {
	return NewPolicy([]Rule{
		{Pattern: "/v1/admin/", Allowed: []string{RoleAdmin, RoleOwner}},
		{Pattern: "/v1/settings/", Allowed: []string{RoleOrgAdmin, RoleAdmin, RoleOwner}},
		{Pattern: "/v1/finance/", Allowed: []string{RoleOrgAdmin, RoleAdmin, RoleOwner, RoleAccountant}},
		{Pattern: "/v1/invoices/", Allowed: []string{RoleAccountant, RoleManager, RoleOrgAdmin, RoleAdmin, RoleOwner}},
		{Pattern: "/v1/dispatch/", Allowed: []string{RoleDispatcher, RoleManager, RoleOrgAdmin, RoleAdmin, RoleOwner}},
		{Pattern: "/v1/jobs/", Allowed: []string{RoleTechnician, RoleDispatcher, RoleManager, RoleOrgAdmin, RoleAdmin, RoleOwner}},
		{Pattern: "/v1/reports/", Allowed: []string{RoleManager, RoleAccountant, RoleOrgAdmin, RoleAdmin, RoleOwner}},
	})
}
