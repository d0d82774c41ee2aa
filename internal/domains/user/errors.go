package user

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	// Not found
	ErrUserNotFound = errors.New("user not found")

	// Conflicts; kept distinct so clients can tell which field collided
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")

	// Invalid input
	ErrReservedUsername = errors.New("username 'me' is reserved")
	ErrInvalidRole      = errors.New("invalid user role")

	// Activation
	ErrInvalidCode = errors.New("invalid or expired confirmation code")

	// Email transport; signup fails loudly when the code cannot be sent
	ErrEmailDelivery = errors.New("failed to deliver confirmation email")
)

// GetHTTPStatusCode maps domain sentinels to HTTP status. Conflicts map
// to 400 rather than 409 to keep the public API contract stable.
func GetHTTPStatusCode(err error) int {
	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		return http.StatusBadRequest
	}

	switch {
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUsernameTaken),
		errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrReservedUsername),
		errors.Is(err, ErrInvalidRole),
		errors.Is(err, ErrInvalidCode):
		return http.StatusBadRequest
	case errors.Is(err, ErrEmailDelivery):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
