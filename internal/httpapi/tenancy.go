package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"fieldops.dev/internal/auth"
	"fieldops.dev/internal/obs"
	"fieldops.dev/internal/tenant"
)

// Tenancy is stage one of the authorization pipeline. It authenticates
// the caller, resolves the organization through the trust chain,
// validates membership against the store and injects the request
// identity. Public routes bypass it entirely.
type Tenancy struct {
	public    *PublicMatcher
	extractor *auth.Extractor
	resolver  *tenant.Resolver
	validator *tenant.Validator
}

func NewTenancy(public *PublicMatcher, extractor *auth.Extractor, resolver *tenant.Resolver, validator *tenant.Validator) *Tenancy {
	return &Tenancy{
		public:    public,
		extractor: extractor,
		resolver:  resolver,
		validator: validator,
	}
}

// Middleware enforces the tenant layer. Terminal states: pass-through
// with identity attached, 401 (missing or expired credentials), 400 (no
// organization context), 403 (membership denied), 500 (store failure
// during resolution).
func (t *Tenancy) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions || t.public.IsPublic(r.URL.Path) {
			obs.AuthzDecision("tenant", "public")
			next.ServeHTTP(w, r)
			return
		}

		claims, err := t.extractor.Extract(r)
		if err != nil {
			// Only expiry surfaces from extraction; it gets a distinct
			// message so clients re-login instead of retrying.
			obs.AuthzDecision("tenant", "token_expired")
			respondError(w, http.StatusUnauthorized, codeTokenExpired, "token expired, please authenticate again")
			return
		}
		if claims == nil {
			obs.AuthzDecision("tenant", "auth_required")
			respondError(w, http.StatusUnauthorized, codeAuthRequired, "authentication required")
			return
		}

		userID := claims.UserID()
		orgID, err := t.resolver.Resolve(r.Context(), userID, claims.OrgID,
			r.Header.Get(tenant.OrgHeader), r.URL.Query().Get(tenant.OrgQueryParam))
		if err != nil {
			obs.Logger().Error("org_resolution_failed",
				zap.String("user_id", userID),
				zap.Error(err),
			)
			obs.AuthzDecision("tenant", "error")
			respondError(w, http.StatusInternalServerError, codeInternal, "internal error")
			return
		}
		if orgID == "" {
			obs.AuthzDecision("tenant", "org_missing")
			respondError(w, http.StatusBadRequest, codeOrgMissing, "no organization context could be resolved")
			return
		}

		if !t.validator.IsMember(r.Context(), userID, orgID) {
			obs.AuthzDecision("tenant", "denied")
			respondError(w, http.StatusForbidden, codeTenantDenied, "you do not have access to this organization")
			return
		}

		role := t.resolver.ResolveRole(r.Context(), userID, claims.Role)
		obs.AuthzDecision("tenant", "allow")
		ctx := auth.ContextWithIdentity(r.Context(), auth.Identity{
			OrgID:  orgID,
			UserID: userID,
			Role:   role,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
