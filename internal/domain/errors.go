package domain

import (
	"errors"
	"fmt"
)

// Error kinds handlers translate to HTTP statuses. Services wrap these
// with context; handlers match with errors.Is.
var (
	// ErrValidation is returned for missing or malformed input, before
	// any side effect.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials is the uniform login failure. It never
	// distinguishes an unknown user from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated is returned when no valid session accompanies
	// a request that requires one.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden is returned when the caller is authenticated but
	// lacks the capability (non-admin, not a purchaser).
	ErrForbidden = errors.New("forbidden")

	// ErrConflict is returned on uniqueness violations.
	ErrConflict = errors.New("already exists")

	// ErrNotFound is returned when an entity id does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrOutOfStock is returned when stock cannot cover a request.
	ErrOutOfStock = errors.New("out of stock")

	// ErrTokenInvalid covers expired, consumed, or unknown tokens.
	ErrTokenInvalid = errors.New("invalid or expired token")

	// ErrPaymentFailed covers gateway rejections and timeouts.
	ErrPaymentFailed = errors.New("payment failed")
)

// Invalid builds a user-safe validation error.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// MissingField builds the uniform missing-field validation error.
func MissingField(name string) error {
	return Invalid("missing field %s", name)
}
