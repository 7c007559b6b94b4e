package utils

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"food-delivery/models"
	"food-delivery/services"
)

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// WriteError answers with {"error": ...} and the status matching err.
// Unexpected failures are logged under op and hidden from the client.
func WriteError(w http.ResponseWriter, op string, err error) {
	status := StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("%s: %v", op, err)
		message = "internal server error"
	}
	WriteJSON(w, status, map[string]string{"error": message})
}

// StatusFor maps the service error taxonomy to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrUnexpected):
		return http.StatusInternalServerError
	case errors.Is(err, services.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrRestaurantNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrNoMatchingItems),
		errors.Is(err, services.ErrMixedRestaurantCart),
		errors.Is(err, services.ErrRestaurantUnresolvable),
		errors.Is(err, services.ErrInvalidTransition):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
