// Package access decides whether a session may open a dashboard path.
package access

import (
	"strings"

	"alcyxob/fitness-dashboard/internal/domain"
)

const (
	// ProtectedRoot is the prefix under which every path needs a session.
	ProtectedRoot = "/dashboard"

	LoginPath = "/login"
	HomePath  = "/"
)

// Session is what the gate knows about the caller. Role must come from the
// decoded token, never from the client-readable role cookie.
type Session struct {
	Token string
	Role  domain.Role
}

// Decision is the result of Authorize. A zero Redirect means the request may proceed.
type Decision struct {
	Redirect string
}

// Allowed reports whether the request may proceed.
func (d Decision) Allowed() bool { return d.Redirect == "" }

// Allow lets the request through.
var Allow = Decision{}

// Rule binds a path prefix to the only role allowed under it.
type Rule struct {
	Prefix string
	Role   domain.Role
}

// Rules is the prefix table. Matching is a plain string prefix, so every
// sub-path inherits its parent's requirement.
//
// /dashboard/trainer is the prefix the first version of the gate checked while
// the trainer pages live under /dashboard/personalTrainer; both are enforced.
var Rules = []Rule{
	{Prefix: "/dashboard/manager", Role: domain.RoleManager},
	{Prefix: "/dashboard/personalTrainer", Role: domain.RolePersonalTrainer},
	{Prefix: "/dashboard/trainer", Role: domain.RolePersonalTrainer},
	{Prefix: "/dashboard/client", Role: domain.RoleClient},
}

// Authorize is a pure per-request decision.
func Authorize(path string, s *Session) Decision {
	if !strings.HasPrefix(path, ProtectedRoot) {
		return Allow
	}
	if s == nil || s.Token == "" || s.Role == "" {
		return Decision{Redirect: LoginPath}
	}
	for _, rule := range Rules {
		if strings.HasPrefix(path, rule.Prefix) && s.Role != rule.Role {
			return Decision{Redirect: HomePath}
		}
	}
	return Allow
}

// RequiredRole returns the role a path demands, if any.
func RequiredRole(path string) (domain.Role, bool) {
	for _, rule := range Rules {
		if strings.HasPrefix(path, rule.Prefix) {
			return rule.Role, true
		}
	}
	return "", false
}
