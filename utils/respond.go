package utils

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// ErrorResponse is the body sent on every failure path
type ErrorResponse struct {
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// WriteError writes a JSON error body with a message field
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Message: message})
}

// WriteValidationError writes a 400 with a field-to-message details map
func WriteValidationError(w http.ResponseWriter, details map[string]string) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Message: "validation failed",
		Details: details,
	})
}

// UpstreamStatus maps a storage or payment-provider error to a status code:
// a deadline that ran out becomes 504, anything else 500.
func UpstreamStatus(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
