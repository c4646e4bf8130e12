// Package auth verifies tokens minted by the external identity issuer and
// carries the validated request identity through the handler chain.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const defaultIssuer = "fieldops"

// Claims is the verified token payload shared with the external issuer.
// Immutable once parsed; lives for one request.
type Claims struct {
	OrgID string `json:"org_id,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the token subject.
func (c *Claims) UserID() string {
	return strings.TrimSpace(c.Subject)
}

// Verifier validates HS256 tokens against the secret shared with the
// issuer. It verifies tokens, it never mints production ones.
type Verifier struct {
	secret []byte
	issuer string
}

// NewVerifier builds a Verifier. The secret is required; a missing secret
// is a startup error, never discovered per request.
func NewVerifier(secret, issuer string) (*Verifier, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("auth secret is required")
	}
	issuer = strings.TrimSpace(issuer)
	if issuer == "" {
		issuer = defaultIssuer
	}
	return &Verifier{secret: []byte(secret), issuer: issuer}, nil
}

// ParseAndValidate verifies signature, issuer and expiry. An expired but
// otherwise authentic token returns ErrTokenExpired; every other failure
// returns ErrInvalidToken.
func (v *Verifier) ParseAndValidate(token string) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	}, jwt.WithIssuer(v.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID() == "" || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}
	claims.OrgID = strings.TrimSpace(claims.OrgID)
	claims.Role = normalizeRole(claims.Role)
	return claims, nil
}

// Issue signs a token the way the external issuer does. Tests and local
// tooling use it; production tokens come from the identity service.
func (v *Verifier) Issue(userID, orgID, role string, ttl time.Duration) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", errors.New("userID is required")
	}
	if ttl == 0 {
		return "", errors.New("ttl must be non-zero")
	}

	now := time.Now().UTC()
	claims := Claims{
		OrgID: strings.TrimSpace(orgID),
		Role:  normalizeRole(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    v.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func normalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}
