// Package tenant resolves which organization a request operates in and
// validates that the caller actually belongs to it.
package tenant

import "context"

// Store reads membership and user records. Implementations must honor
// context cancellation; these lookups are the only blocking points in the
// authorization pipeline.
type Store interface {
	// IsActiveMember reports whether user holds an active membership in
	// org.
	IsActiveMember(ctx context.Context, userID, orgID string) (bool, error)

	// DefaultOrg returns the organization of the user's oldest active
	// membership, "" when the user has none.
	DefaultOrg(ctx context.Context, userID string) (string, error)

	// UserRole returns the role stored on the user record, "" when the
	// user has none or does not exist.
	UserRole(ctx context.Context, userID string) (string, error)
}
