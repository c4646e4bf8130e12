package auth

import (
	"errors"
	"net/http"
	"strings"
)

const (
	authorizationHeader = "Authorization"
	bearerScheme        = "Bearer "

	defaultSessionCookie = "fo_session"
)

// Extractor pulls a verified token from an inbound request, preferring
// the Authorization header over the session cookie.
type Extractor struct {
	verifier *Verifier
	cookie   string
}

// NewExtractor builds an Extractor around a Verifier. cookieName defaults
// to the standard session cookie when empty.
func NewExtractor(v *Verifier, cookieName string) *Extractor {
	cookieName = strings.TrimSpace(cookieName)
	if cookieName == "" {
		cookieName = defaultSessionCookie
	}
	return &Extractor{verifier: v, cookie: cookieName}
}

// Extract returns the verified claims for the request, or nil when the
// request is anonymous. A malformed or forged token is anonymous rather
// than an error: the caller answers with the same generic 401 either way,
// so a probe learns nothing from the distinction. Expired tokens are the
// one surfaced failure (ErrTokenExpired).
func (e *Extractor) Extract(r *http.Request) (*Claims, error) {
	raw := e.rawToken(r)
	if raw == "" {
		return nil, nil
	}
	claims, err := e.verifier.ParseAndValidate(raw)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, nil
	}
	return claims, nil
}

func (e *Extractor) rawToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get(authorizationHeader))
	if header != "" && strings.HasPrefix(strings.ToLower(header), strings.ToLower(bearerScheme)) {
		if token := strings.TrimSpace(header[len(bearerScheme):]); token != "" {
			return token
		}
	}
	if c, err := r.Cookie(e.cookie); err == nil {
		return strings.TrimSpace(c.Value)
	}
	return ""
}
