package catalog

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrNotFound  = errors.New("catalog entry not found")
	ErrSlugTaken = errors.New("slug already exists")
)

// GetHTTPStatusCode maps catalog sentinels to HTTP status.
func GetHTTPStatusCode(err error) int {
	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		return http.StatusBadRequest
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrSlugTaken):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
