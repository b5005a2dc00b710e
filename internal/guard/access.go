// Package guard holds the pre-navigation predicates: role-based route access
// and the unsaved-form leave confirmation. Both gate navigation only; the
// backend re-checks the role via identity headers on every call.
package guard

import (
	"github.com/pxlit-projects/project-IanNotermansPXL/internal/blog"
)

// Decision is the outcome of an access check. RedirectTo is set only when
// the navigation is denied.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// CheckAccess gates entry to a route. An empty requiredRole means any
// authenticated identity passes; anonymous users are sent to the login
// surface, wrong-role users back home.
func CheckAccess(identity *blog.Identity, requiredRole blog.Role) Decision {
	if identity == nil {
		return Decision{RedirectTo: "/login"}
	}
	if requiredRole != "" && requiredRole != identity.Role {
		return Decision{RedirectTo: "/"}
	}
	return Decision{Allowed: true}
}
