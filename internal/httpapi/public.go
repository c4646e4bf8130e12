package httpapi

import "strings"

// PublicMatcher is the ordered allow-list of paths reachable without
// authentication or tenant context. Both authorization stages consult the
// same matcher, so a route is consistently public across the pipeline.
type PublicMatcher struct {
	exact    []string
	prefixes []string
}

func NewPublicMatcher(exact, prefixes []string) *PublicMatcher {
	return &PublicMatcher{exact: exact, prefixes: prefixes}
}

// IsPublic reports whether path may bypass the pipeline. First match
// wins; no side effects.
func (m *PublicMatcher) IsPublic(path string) bool {
	for _, p := range m.exact {
		if path == p {
			return true
		}
	}
	for _, prefix := range m.prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// DefaultPublicMatcher covers the operational endpoints, the auth/login
// surface, public job-tracking pages, webhook receivers that verify their
// own signatures, and platform endpoints that authorize internally.
func DefaultPublicMatcher() *PublicMatcher {
	return NewPublicMatcher(
		[]string{"/", "/healthz", "/readyz", "/metrics", "/openapi.yaml", "/v1/info"},
		[]string{"/v1/auth/", "/v1/track/", "/v1/webhooks/", "/v1/platform/", "/assets/"},
	)
}
