package httpapi

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"fieldops.dev/internal/auth"
	"fieldops.dev/internal/obs"
	"fieldops.dev/internal/rbac"
	"fieldops.dev/internal/tenant"
)

const (
	mdAuthorization = "authorization"
	mdOrganization  = "x-organization-id"
	bearerScheme    = "Bearer "
)

// GRPCAuth applies both authorization stages to gRPC calls. The bearer
// token travels in "authorization" metadata and the organization selector
// in "x-organization-id"; method patterns follow the same first-match
// policy semantics as HTTP paths.
type GRPCAuth struct {
	verifier      *auth.Verifier
	resolver      *tenant.Resolver
	validator     *tenant.Validator
	policy        *rbac.Policy
	publicMethods []string
}

// NewGRPCAuth builds the interceptor. publicMethods lists full method
// names or "/package.Service/" prefixes that bypass authorization, the
// gRPC mirror of the HTTP public allow-list.
func NewGRPCAuth(verifier *auth.Verifier, resolver *tenant.Resolver, validator *tenant.Validator, policy *rbac.Policy, publicMethods []string) *GRPCAuth {
	return &GRPCAuth{
		verifier:      verifier,
		resolver:      resolver,
		validator:     validator,
		policy:        policy,
		publicMethods: publicMethods,
	}
}

// Unary returns the server interceptor enforcing both stages.
func (g *GRPCAuth) Unary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if g.isPublic(info.FullMethod) {
			obs.AuthzDecision("tenant", "public")
			return handler(ctx, req)
		}

		md, _ := metadata.FromIncomingContext(ctx)
		raw := bearerFromMetadata(md)
		if raw == "" {
			obs.AuthzDecision("tenant", "auth_required")
			return nil, status.Error(codes.Unauthenticated, "authentication required")
		}
		claims, err := g.verifier.ParseAndValidate(raw)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				obs.AuthzDecision("tenant", "token_expired")
				return nil, status.Error(codes.Unauthenticated, "token expired, please authenticate again")
			}
			obs.AuthzDecision("tenant", "auth_required")
			return nil, status.Error(codes.Unauthenticated, "authentication required")
		}

		userID := claims.UserID()
		orgID, err := g.resolver.Resolve(ctx, userID, claims.OrgID, firstMetadata(md, mdOrganization), "")
		if err != nil {
			obs.AuthzDecision("tenant", "error")
			return nil, status.Error(codes.Internal, "internal error")
		}
		if orgID == "" {
			obs.AuthzDecision("tenant", "org_missing")
			return nil, status.Error(codes.InvalidArgument, "no organization context could be resolved")
		}
		if !g.validator.IsMember(ctx, userID, orgID) {
			obs.AuthzDecision("tenant", "denied")
			return nil, status.Error(codes.PermissionDenied, "you do not have access to this organization")
		}

		role := g.resolver.ResolveRole(ctx, userID, claims.Role)
		obs.AuthzDecision("tenant", "allow")

		dec := g.policy.Authorize(info.FullMethod, role)
		if !dec.Allowed {
			obs.AuthzDecision("role", "denied")
			return nil, status.Errorf(codes.PermissionDenied,
				"role %s does not permit this method (required: %s)",
				rbac.Normalize(role), strings.Join(dec.RequiredRoles, ", "))
		}
		obs.AuthzDecision("role", "allow")

		ctx = auth.ContextWithIdentity(ctx, auth.Identity{
			OrgID:  orgID,
			UserID: userID,
			Role:   role,
		})
		return handler(ctx, req)
	}
}

func (g *GRPCAuth) isPublic(fullMethod string) bool {
	for _, m := range g.publicMethods {
		if strings.HasSuffix(m, "/") {
			if strings.HasPrefix(fullMethod, m) {
				return true
			}
			continue
		}
		if fullMethod == m {
			return true
		}
	}
	return false
}

func bearerFromMetadata(md metadata.MD) string {
	header := strings.TrimSpace(firstMetadata(md, mdAuthorization))
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), strings.ToLower(bearerScheme)) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerScheme):])
}

func firstMetadata(md metadata.MD, key string) string {
	if md == nil {
		return ""
	}
	values := md.Get(key)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
