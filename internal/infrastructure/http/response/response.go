package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lampara23/dise-o-web/internal/app/dto"
	"github.com/lampara23/dise-o-web/internal/domain"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Error sends an error response
func Error(w http.ResponseWriter, status int, err error) {
	errorType := "error"
	switch status {
	case http.StatusNotFound:
		errorType = "not_found"
	case http.StatusBadRequest:
		errorType = "bad_request"
	case http.StatusRequestEntityTooLarge:
		errorType = "request_too_large"
	case http.StatusInternalServerError:
		errorType = "internal_server_error"
	}

	JSON(w, status, ErrorResponse{
		Error:   errorType,
		Message: err.Error(),
	})
}

// StatusFor maps a service error onto the HTTP status it is reported with.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, dto.ErrBodyNotObject), errors.Is(err, dto.ErrTrailingData):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// FromError sends err with the status StatusFor picks.
func FromError(w http.ResponseWriter, err error) {
	Error(w, StatusFor(err), err)
}
