package domain

import (
	"fmt"
	"strings"
)

// Credentials is the payload of POST /user/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that the email looks like an address and a password is set.
func (c Credentials) Validate() error {
	if !validEmail(c.Email) {
		return fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if c.Password == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	return nil
}

// Registration is the payload of POST /user/register.
type Registration struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Role      Role   `json:"role"`
}

// Validate checks the registration form the same way the login form is checked,
// plus the required profile fields and a known role.
func (r Registration) Validate() error {
	required := []struct {
		name, value string
	}{
		{"first name", r.FirstName},
		{"last name", r.LastName},
		{"password", r.Password},
		{"phone", r.Phone},
		{"address", r.Address},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, f.name)
		}
	}
	if !validEmail(r.Email) {
		return fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if !ValidRole(r.Role) {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, r.Role)
	}
	return nil
}

func validEmail(s string) bool {
	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	return strings.Contains(s[at+1:], ".") && !strings.ContainsAny(s, " \t\n")
}
