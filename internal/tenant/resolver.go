package tenant

import (
	"context"
	"fmt"
	"strings"

	"fieldops.dev/internal/auth"
)

const (
	// OrgHeader is the client-supplied organization selector header.
	OrgHeader = "X-Organization-ID"
	// OrgQueryParam is the client-supplied organization selector query
	// parameter.
	OrgQueryParam = "org_id"
)

// Resolver picks the organization a request operates in from a
// trust-ordered chain of sources.
type Resolver struct {
	store Store
}

func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the candidate organization for the request. Sources in
// trust order, first non-empty wins: the verified token's org claim, the
// selector header, the selector query parameter, the user's default
// active membership. Header and query values are untrusted candidates;
// the membership validator is the sole authority that grants access to
// whatever is returned here. Returns "" when no source yields a value.
func (r *Resolver) Resolve(ctx context.Context, userID, tokenOrg, headerOrg, queryOrg string) (string, error) {
	if org := strings.TrimSpace(tokenOrg); org != "" {
		return org, nil
	}
	if org := strings.TrimSpace(headerOrg); org != "" {
		return org, nil
	}
	if org := strings.TrimSpace(queryOrg); org != "" {
		return org, nil
	}
	org, err := r.store.DefaultOrg(ctx, strings.TrimSpace(userID))
	if err != nil {
		return "", fmt.Errorf("default org lookup: %w", err)
	}
	return strings.TrimSpace(org), nil
}

// ResolveRole returns the effective role for the request: the token role
// when present, else the role on the user record, else the viewer
// default. Role lookup failures fall back to viewer rather than failing
// the request; the membership check has already gated access.
func (r *Resolver) ResolveRole(ctx context.Context, userID, tokenRole string) string {
	if role := normalize(tokenRole); role != "" {
		return role
	}
	role, err := r.store.UserRole(ctx, strings.TrimSpace(userID))
	if err != nil {
		return auth.DefaultRole
	}
	if role = normalize(role); role != "" {
		return role
	}
	return auth.DefaultRole
}

func normalize(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}
