package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chinmaya-kumar-behera/ecommerce-frontend/pkg/domain"
)

type fakeSessions struct {
	session domain.Session
	ok      bool
}

func (f *fakeSessions) Current() (domain.Session, bool) { return f.session, f.ok }

func as(role domain.Role) *fakeSessions {
	return &fakeSessions{session: domain.Session{SubjectID: "u-1", Role: role}, ok: true}
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		sessions *fakeSessions
		required []domain.Role
		want     Decision
	}{
		{"no session", &fakeSessions{}, nil, RedirectLogin},
		{"no session seller route", &fakeSessions{}, []domain.Role{domain.RoleSeller}, RedirectLogin},
		{"customer any role", as(domain.RoleCustomer), nil, Allow},
		{"seller any role", as(domain.RoleSeller), nil, Allow},
		{"customer seller route", as(domain.RoleCustomer), []domain.Role{domain.RoleSeller}, RedirectUnauthorized},
		{"seller seller route", as(domain.RoleSeller), []domain.Role{domain.RoleSeller}, Allow},
		{"customer either role", as(domain.RoleCustomer), []domain.Role{domain.RoleSeller, domain.RoleCustomer}, Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.sessions).Authorize(tt.required...))
		})
	}
}

func TestAuthorize_FollowsSessionChanges(t *testing.T) {
	s := as(domain.RoleSeller)
	g := New(s)
	require.Equal(t, Allow, g.Authorize(domain.RoleSeller))

	s.ok = false
	assert.Equal(t, RedirectLogin, g.Authorize(domain.RoleSeller))
}

func TestRequire(t *testing.T) {
	assert.ErrorIs(t, New(&fakeSessions{}).Require(), domain.ErrUnauthenticated)
	assert.ErrorIs(t, New(as(domain.RoleCustomer)).Require(domain.RoleSeller), domain.ErrUnauthorized)
	assert.NoError(t, New(as(domain.RoleSeller)).Require(domain.RoleSeller))
}

func TestAuthorizeRoute(t *testing.T) {
	tests := []struct {
		path     string
		sessions *fakeSessions
		want     Decision
	}{
		{"/", &fakeSessions{}, Allow},
		{"/products", &fakeSessions{}, Allow},
		{"/login", &fakeSessions{}, Allow},
		{"/cart", &fakeSessions{}, RedirectLogin},
		{"/cart", as(domain.RoleCustomer), Allow},
		{"/checkout/p1", &fakeSessions{}, RedirectLogin},
		{"/checkout/p1", as(domain.RoleCustomer), Allow},
		{"/orders", as(domain.RoleSeller), Allow},
		{"/seller/orders", as(domain.RoleCustomer), RedirectUnauthorized},
		{"/seller/orders", as(domain.RoleSeller), Allow},
		{"/products/edit/42", as(domain.RoleCustomer), RedirectUnauthorized},
		{"/products/create?draft=1", as(domain.RoleCustomer), RedirectUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.sessions).AuthorizeRoute(tt.path))
		})
	}
}

func TestMatch(t *testing.T) {
	params, ok := Match("/checkout/:productId", "/checkout/abc123")
	require.True(t, ok)
	assert.Equal(t, "abc123", params["productId"])

	_, ok = Match("/checkout/:productId", "/checkout")
	assert.False(t, ok)
	_, ok = Match("/checkout/:productId", "/checkout/a/b")
	assert.False(t, ok)
	_, ok = Match("/cart", "/cart/")
	assert.True(t, ok)
}

func TestDecisionRedirect(t *testing.T) {
	assert.Equal(t, "", Allow.Redirect())
	assert.Equal(t, "/login", RedirectLogin.Redirect())
	assert.Equal(t, "/unauthorized", RedirectUnauthorized.Redirect())
	assert.Equal(t, "redirect-unauthorized", RedirectUnauthorized.String())
}
