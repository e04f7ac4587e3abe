package apikey

import (
	"fmt"
	"slices"
	"strings"
)

const Wildcard = "*"

// Scopes is the catalogue of grantable permissions.
var Scopes = []string{
	"contacts:create",
	"contacts:update",
	"contacts:delete",
	"events:create",
	"events:update",
	"events:delete",
	"events:read",
}

// Allows reports whether granted covers required. "*" covers everything and
// "resource:*" covers every verb on resource.
func Allows(granted []string, required string) bool {
	resource, _, _ := strings.Cut(required, ":")
	for _, g := range granted {
		switch {
		case g == Wildcard, g == required:
			return true
		case strings.HasSuffix(g, ":*") && strings.TrimSuffix(g, ":*") == resource:
			return true
		}
	}
	return false
}

// ValidateScopes rejects empty lists and anything outside the catalogue or
// its wildcards. The returned slice is deduplicated and sorted.
func ValidateScopes(scopes []string) ([]string, error) {
	if len(scopes) == 0 {
		return nil, fmt.Errorf("at least one scope is required")
	}
	out := make([]string, 0, len(scopes))
	for _, s := range scopes {
		s = strings.TrimSpace(s)
		if !knownScope(s) {
			return nil, fmt.Errorf("unknown scope %q", s)
		}
		out = append(out, s)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

func knownScope(s string) bool {
	if s == Wildcard || slices.Contains(Scopes, s) {
		return true
	}
	resource, verb, ok := strings.Cut(s, ":")
	if !ok || verb != Wildcard {
		return false
	}
	return slices.ContainsFunc(Scopes, func(known string) bool {
		return strings.HasPrefix(known, resource+":")
	})
}
