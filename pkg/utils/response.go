package utils

import (
	"encoding/json"
	"net/http"

	"travel-backend/internal/apperrors"
)

// JSON writes data as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Error maps an error onto an HTTP status via its apperrors kind and
// writes a JSON error body.
func Error(w http.ResponseWriter, err error) {
	JSON(w, apperrors.HTTPStatus(err), map[string]string{"error": err.Error()})
}

// BadRequest writes a 400 with the given message.
func BadRequest(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}
