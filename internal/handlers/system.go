package handlers

import (
	"net/http"
)

// SystemHandler provides the liveness endpoint and the admin-only
// greeting. Admin access control lives in the guard middleware, not
// here.
type SystemHandler struct{}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// Health is a static liveness check.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// AdminSecret greets a caller that passed the admin guard.
func (h *SystemHandler) AdminSecret(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":  true,
		"msg": "Welcome, admin.",
	})
}
