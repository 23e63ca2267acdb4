// Package guard decides whether the current session may open a view.
package guard

import (
	"fmt"

	"github.com/chinmaya-kumar-behera/ecommerce-frontend/pkg/domain"
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectUnauthorized
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect-login"
	case RedirectUnauthorized:
		return "redirect-unauthorized"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// Redirect returns the route to navigate to instead, or "" for Allow.
func (d Decision) Redirect() string {
	switch d {
	case RedirectLogin:
		return "/login"
	case RedirectUnauthorized:
		return "/unauthorized"
	default:
		return ""
	}
}

// SessionSource reports the current valid session.
type SessionSource interface {
	Current() (domain.Session, bool)
}

// Guard evaluates decisions against a SessionSource. It holds no state of
// its own, so every call sees the session as it is now.
type Guard struct {
	sessions SessionSource
}

// New creates a Guard.
func New(sessions SessionSource) *Guard {
	return &Guard{sessions: sessions}
}

// Authorize requires a valid session and, when required is non-empty, one of
// the listed roles.
func (g *Guard) Authorize(required ...domain.Role) Decision {
	s, ok := g.sessions.Current()
	if !ok {
		return RedirectLogin
	}
	if len(required) == 0 {
		return Allow
	}
	for _, r := range required {
		if s.Role == r {
			return Allow
		}
	}
	return RedirectUnauthorized
}

// Require is Authorize expressed as an error for non-interactive callers.
func (g *Guard) Require(required ...domain.Role) error {
	switch g.Authorize(required...) {
	case RedirectLogin:
		return domain.ErrUnauthenticated
	case RedirectUnauthorized:
		return domain.ErrUnauthorized
	}
	return nil
}

// AuthorizeRoute looks path up in the route table. Unlisted routes are public.
func (g *Guard) AuthorizeRoute(path string) Decision {
	r, ok := Lookup(path)
	if !ok {
		return Allow
	}
	return g.Authorize(r.Roles...)
}
