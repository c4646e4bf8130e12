package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"fieldops.dev/internal/audit"
	"fieldops.dev/internal/auth"
	"fieldops.dev/internal/obs"
	"fieldops.dev/internal/rbac"
)

// RouteAuthz is stage two of the pipeline: role-based route
// authorization. It consults the same public matcher as stage one so the
// stages agree on what is public, then matches the path against the
// permission table with the caller's expanded role set.
type RouteAuthz struct {
	public *PublicMatcher
	policy *rbac.Policy
}

func NewRouteAuthz(public *PublicMatcher, policy *rbac.Policy) *RouteAuthz {
	return &RouteAuthz{public: public, policy: policy}
}

func (a *RouteAuthz) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions || a.public.IsPublic(r.URL.Path) {
			obs.AuthzDecision("role", "public")
			next.ServeHTTP(w, r)
			return
		}

		// Stage one must have attached an identity; a request without one
		// never reaches a handler.
		id, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			obs.AuthzDecision("role", "auth_required")
			respondError(w, http.StatusUnauthorized, codeAuthRequired, "authentication required")
			return
		}

		dec := a.policy.Authorize(r.URL.Path, id.Role)
		if !dec.Allowed {
			audit.Warn(r.Context(), "rbac.denied",
				zap.String("user_id", id.UserID),
				zap.String("org_id", id.OrgID),
				zap.String("role", id.Role),
				zap.String("path", r.URL.Path),
				zap.Strings("required_roles", dec.RequiredRoles),
			)
			obs.AuthzDecision("role", "denied")
			writeJSON(w, http.StatusForbidden, map[string]any{
				"code":           codeRBACDenied,
				"detail":         "your role does not permit this operation",
				"required_roles": dec.RequiredRoles,
				"your_role":      rbac.Normalize(id.Role),
			})
			return
		}

		obs.AuthzDecision("role", "allow")
		next.ServeHTTP(w, r)
	})
}
