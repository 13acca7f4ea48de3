package models

import "errors"

// Common errors used throughout the application. Booking failures are
// expected outcomes and surface as distinct values, never panics.
var (
	ErrEventNotFound        = errors.New("event not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrEventNotBookable     = errors.New("event is not open for booking")
	ErrInsufficientCapacity = errors.New("insufficient ticket capacity")
	ErrReferenceExhausted   = errors.New("could not generate a unique order reference")
	ErrInvalidQuantity      = errors.New("quantity must be a positive integer")
	ErrDuplicateEntry       = errors.New("duplicate entry")
	ErrUnauthorized         = errors.New("unauthorized access")
)
