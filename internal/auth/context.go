package auth

import "context"

// DefaultRole is assigned when neither the token nor the user record
// carries a role.
const DefaultRole = "viewer"

// Identity is the validated (org, user, role) triple attached to a
// request after membership validation. It is immutable, request-scoped
// and the only sanctioned source of a trusted tenant id downstream.
type Identity struct {
	OrgID  string
	UserID string
	Role   string
}

type identityKey struct{}

// ContextWithIdentity attaches the validated identity to the context.
// The pipeline calls it exactly once per request.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity set by the authorization
// pipeline. ok is false on public routes and outside a request.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// ScopeFilter copies base and pins it to the identity's organization.
// Handlers build tenant-scoped queries through this helper instead of
// reading org ids from request input.
func (id Identity) ScopeFilter(base map[string]any) map[string]any {
	out := make(map[string]any, len(base)+1)
	for k, v := range base {
		out[k] = v
	}
	out["organization_id"] = id.OrgID
	return out
}

// TenantStamped is implemented by records that carry an owning
// organization.
type TenantStamped interface {
	SetOrganizationID(string)
}

// StampTenant sets the identity's organization on a new record before it
// is persisted.
func (id Identity) StampTenant(rec TenantStamped) {
	if rec != nil {
		rec.SetOrganizationID(id.OrgID)
	}
}
