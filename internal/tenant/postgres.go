package tenant

import (
	"context"
	"database/sql"
	"strings"
)

var _ Store = (*PGStore)(nil)

// PGStore implements Store on PostgreSQL.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) IsActiveMember(ctx context.Context, userID, orgID string) (bool, error) {
	row := s.db.QueryRowContext(ctx,
		`select 1 from org_memberships where user_id=$1 and organization_id=$2 and status='active'`,
		userID, orgID,
	)
	var one int
	if err := row.Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *PGStore) DefaultOrg(ctx context.Context, userID string) (string, error) {
	row := s.db.QueryRowContext(ctx,
		`select organization_id from org_memberships where user_id=$1 and status='active' order by created_at asc limit 1`,
		userID,
	)
	var orgID string
	if err := row.Scan(&orgID); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(orgID), nil
}

func (s *PGStore) UserRole(ctx context.Context, userID string) (string, error) {
	row := s.db.QueryRowContext(ctx,
		`select coalesce(role, '') from users where id=$1`,
		userID,
	)
	var role string
	if err := row.Scan(&role); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(role), nil
}
