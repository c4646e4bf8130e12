package rbac

import "strings"

// Rule maps a path pattern to the roles allowed through it. Patterns
// ending in "/" match as prefixes; everything else matches exactly.
type Rule struct {
	Pattern string
	Allowed []string
}

// Decision is the outcome of a route authorization check.
type Decision struct {
	Allowed bool
	// Matched reports whether any rule covered the path. An unmatched
	// path admits any authenticated caller.
	Matched       bool
	Pattern       string
	RequiredRoles []string
}

type compiledRule struct {
	pattern    string
	prefix     bool
	allowed    []string
	allowedSet map[string]struct{}
}

// Policy is an ordered, first-match-wins route permission table compiled
// once at startup and never mutated.
type Policy struct {
	rules []compiledRule
}

// NewPolicy compiles rules in declared order. Role names are normalized
// at compile time so runtime matching is a set lookup.
func NewPolicy(rules []Rule) *Policy {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		pattern := strings.TrimSpace(r.Pattern)
		if pattern == "" {
			continue
		}
		cr := compiledRule{
			pattern:    pattern,
			prefix:     strings.HasSuffix(pattern, "/"),
			allowedSet: make(map[string]struct{}, len(r.Allowed)),
		}
		for _, role := range r.Allowed {
			role = Normalize(role)
			if role == "" {
				continue
			}
			if _, ok := cr.allowedSet[role]; ok {
				continue
			}
			cr.allowedSet[role] = struct{}{}
			cr.allowed = append(cr.allowed, role)
		}
		compiled = append(compiled, cr)
	}
	return &Policy{rules: compiled}
}

// Authorize checks role against the first rule matching path. A path with
// no matching rule admits any authenticated caller; a matched rule admits
// the caller iff the expanded role set intersects the rule's allowed
// roles.
func (p *Policy) Authorize(path, role string) Decision {
	rule, ok := p.match(path)
	if !ok {
		return Decision{Allowed: true}
	}
	dec := Decision{
		Matched:       true,
		Pattern:       rule.pattern,
		RequiredRoles: rule.allowed,
	}
	for acting := range Expand(role) {
		if _, ok := rule.allowedSet[acting]; ok {
			dec.Allowed = true
			return dec
		}
	}
	return dec
}

func (p *Policy) match(path string) (compiledRule, bool) {
	for _, r := range p.rules {
		if r.prefix {
			if strings.HasPrefix(path, r.pattern) {
				return r, true
			}
			continue
		}
		if path == r.pattern {
			return r, true
		}
	}
	return compiledRule{}, false
}
