package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/hiresense/internal/db"
	"github.com/jonathan/hiresense/internal/types"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrPayloadTooLarge indicates the request body exceeded MaxRequestBytes
type ErrPayloadTooLarge struct {
	Limit int64
}

func (e *ErrPayloadTooLarge) Error() string {
	return fmt.Sprintf("request too large, limit is %d MB", e.Limit>>20)
}

// ErrStoreDisabled indicates history endpoints were called without a configured store
var ErrStoreDisabled = errors.New("analysis history is not enabled")

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		requestErr    *types.RequestError
		tooLarge      *ErrPayloadTooLarge
		maxBytes      *http.MaxBytesError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &requestErr):
		return http.StatusBadRequest
	case errors.As(err, &tooLarge), errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, db.ErrNotFound), errors.Is(err, ErrStoreDisabled):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
