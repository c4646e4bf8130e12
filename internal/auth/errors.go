package auth

import "errors"

var (
	// ErrTokenExpired indicates an authentic token whose expiry has
	// passed. Surfaced distinctly so clients can prompt a re-login.
	ErrTokenExpired = errors.New("auth: token expired")

	// ErrInvalidToken indicates the token failed verification for any
	// other reason. Callers treat it the same as a missing token so a
	// probe cannot distinguish a forged signature from no credentials.
	ErrInvalidToken = errors.New("auth: invalid token")
)
