package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/chinmaya-kumar-behera/ecommerce-frontend/pkg/domain"
)

// subjectKeys are tried in order when the token has no "sub" claim.
var subjectKeys = []string{"user_id", "id", "_id"}

// Decode reads the claims of token without verifying its signature.
// The token must carry an "exp" claim and a known "role".
func Decode(token string) (domain.Session, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if exp == nil {
		return domain.Session{}, fmt.Errorf("%w: missing exp claim", domain.ErrInvalidToken)
	}

	s := domain.Session{
		SubjectID: subjectOf(claims),
		ExpiresAt: exp.Time,
		Token:     token,
	}

	iat, err := claims.GetIssuedAt()
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if iat != nil {
		s.IssuedAt = iat.Time
	}

	role, _ := claims["role"].(string)
	s.Role = domain.Role(role)
	if !domain.ValidRole(s.Role) {
		return domain.Session{}, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidToken, role)
	}
	return s, nil
}

func subjectOf(claims jwt.MapClaims) string {
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		return sub
	}
	for _, k := range subjectKeys {
		if v, ok := claims[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
