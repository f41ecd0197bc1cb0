package errors

import (
	"errors"
	"net/http"

	"labreserve/internal/schedule"
)

var (
	// ErrLabNotFound is returned when a lab is not found.
	ErrLabNotFound = errors.New("lab not found")
	// ErrReservationNotFound is returned when a reservation is not found.
	ErrReservationNotFound = errors.New("reservation not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrLabUnavailable is returned when booking a lab that is closed to new reservations.
	ErrLabUnavailable = errors.New("lab is not available for reservations")
	// ErrInvalidStatus is returned when a status value is outside the enum.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrInvalidTransition is returned when the status machine forbids a transition.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrForbidden is returned when the caller lacks role or ownership.
	ErrForbidden = errors.New("access denied")
	// ErrInvalidInput is returned for missing or malformed required fields.
	ErrInvalidInput = errors.New("invalid input")
)

// ConflictError is returned when the availability check fails at
// creation. It carries the overlapping reservations, reduced to their
// display projection, so the caller can render them.
type ConflictError struct {
	Conflicts []schedule.Conflict
}

func (e *ConflictError) Error() string {
	return "lab is not available at the selected time"
}

// AsConflict unwraps a ConflictError if err carries one.
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error     string              `json:"error"`
	Code      string              `json:"code,omitempty"`
	Conflicts []schedule.Conflict `json:"conflicts,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Everything
// unrecognized is a 500 with a generic message; the detail stays in the
// server log.
func MapErrorToHTTP(err error) *HTTPError {
	if _, ok := AsConflict(err); ok {
		return NewHTTPError(http.StatusBadRequest, err.Error(), "TIME_CONFLICT")
	}
	switch {
	case errors.Is(err, ErrLabNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "LAB_NOT_FOUND")
	case errors.Is(err, ErrReservationNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "RESERVATION_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrLabUnavailable):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "LAB_UNAVAILABLE")
	case errors.Is(err, ErrInvalidStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	case errors.Is(err, ErrInvalidTransition):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_TRANSITION")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "ACCESS_DENIED")
	case errors.Is(err, ErrInvalidInput):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_INPUT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
