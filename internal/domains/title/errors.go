package title

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrTitleNotFound   = errors.New("title not found")
	ErrUnknownCategory = errors.New("unknown category slug")
	ErrUnknownGenre    = errors.New("unknown genre slug")
)

func GetHTTPStatusCode(err error) int {
	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		return http.StatusBadRequest
	}

	switch {
	case errors.Is(err, ErrTitleNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnknownCategory), errors.Is(err, ErrUnknownGenre):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
