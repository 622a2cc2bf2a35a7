package handlers

import (
	"encoding/json"
	"net/http"

	"userd/internal/model"
)

// writeJSON serialises v as JSON and writes it to the response with the
// given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a standard JSON error response of the form
// {"detail": "message"}.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeValidationError writes a 422 carrying per-field errors, the
// response for a request body that failed decoding.
func writeValidationError(w http.ResponseWriter, errs []model.FieldError) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"detail": errs})
}
