package guard

import (
	"strings"

	"github.com/chinmaya-kumar-behera/ecommerce-frontend/pkg/domain"
)

// Route is a protected view. A nil Roles means any authenticated user.
type Route struct {
	Pattern string
	Roles   []domain.Role
}

// Routes lists every protected view.
var Routes = []Route{
	{Pattern: "/profile"},
	{Pattern: "/cart"},
	{Pattern: "/checkout"},
	{Pattern: "/checkout/:productId"},
	{Pattern: "/orders"},
	{Pattern: "/products/create", Roles: []domain.Role{domain.RoleSeller}},
	{Pattern: "/products/edit/:id", Roles: []domain.Role{domain.RoleSeller}},
	{Pattern: "/seller/orders", Roles: []domain.Role{domain.RoleSeller}},
}

// Lookup returns the protected route matching path.
func Lookup(path string) (Route, bool) {
	for _, r := range Routes {
		if _, ok := Match(r.Pattern, path); ok {
			return r, true
		}
	}
	return Route{}, false
}

// Match reports whether path fits pattern, where a ":name" segment matches
// any single non-empty segment. The captured segments are returned by name.
func Match(pattern, path string) (map[string]string, bool) {
	ps := splitPath(pattern)
	xs := splitPath(path)
	if len(ps) != len(xs) {
		return nil, false
	}
	params := map[string]string{}
	for i, p := range ps {
		if name, ok := strings.CutPrefix(p, ":"); ok {
			if xs[i] == "" {
				return nil, false
			}
			params[name] = xs[i]
			continue
		}
		if p != xs[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(p string) []string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
