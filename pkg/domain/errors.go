package domain

import "errors"

// Error taxonomy shared by the session, cart and order packages. Callers match
// with errors.Is; wrapping adds the operation and the server's reason.
var (
	ErrUnauthenticated   = errors.New("not authenticated")
	ErrUnauthorized      = errors.New("not authorized for this role")
	ErrInvalidToken      = errors.New("invalid session token")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrOutOfStock        = errors.New("out of stock")
	ErrAlreadyInProgress = errors.New("request already in progress")
	ErrNetwork           = errors.New("network error")
	ErrValidation        = errors.New("validation error")
)
