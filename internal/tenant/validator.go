package tenant

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"fieldops.dev/internal/audit"
)

// DefaultTimeout bounds a single membership check.
const DefaultTimeout = 3 * time.Second

// Validator confirms proposed (user, org) pairs against the membership
// store. It is the security boundary of the pipeline: every resolver only
// proposes an org id, the validator alone grants it.
type Validator struct {
	store   Store
	timeout time.Duration
}

func NewValidator(store Store, timeout time.Duration) *Validator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Validator{store: store, timeout: timeout}
}

// IsMember reports whether user holds an active membership in org. It
// fails closed: store errors, timeouts and cancellation all deny. Denials
// and failures are logged with the attempted pair for cross-tenant audit.
func (v *Validator) IsMember(ctx context.Context, userID, orgID string) bool {
	userID = strings.TrimSpace(userID)
	orgID = strings.TrimSpace(orgID)
	if userID == "" || orgID == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	ok, err := v.store.IsActiveMember(ctx, userID, orgID)
	if err != nil {
		audit.Security(ctx, "tenant.membership_check_failed",
			zap.String("user_id", userID),
			zap.String("org_id", orgID),
			zap.Error(err),
		)
		return false
	}
	if !ok {
		audit.Security(ctx, "tenant.access_denied",
			zap.String("user_id", userID),
			zap.String("org_id", orgID),
		)
	}
	return ok
}
