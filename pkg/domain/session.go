package domain

import "time"

// Role is the access tier carried by a session token.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
)

// ValidRole returns true if r is a known role.
func ValidRole(r Role) bool {
	return r == RoleCustomer || r == RoleSeller
}

// Session is the identity decoded from a bearer token. It is never verified
// client-side; the API does that on every call.
type Session struct {
	SubjectID string    `json:"subject_id"`
	Role      Role      `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Token     string    `json:"-"`
}

// ValidAt reports whether the session has not yet expired at now.
func (s Session) ValidAt(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

// IsSeller reports whether the session carries the seller role.
func (s Session) IsSeller() bool {
	return s.Role == RoleSeller
}
