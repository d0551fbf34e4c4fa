package handlers

import (
	"encoding/json"
	"net/http"

	"vogelgpt-backend/internal/models"
)

const (
	msgMissingMessage  = "Missing message"
	msgServerError     = "Server error"
	msgPayloadTooLarge = "Payload too large"
)

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(message string) models.ErrorResponse {
	return models.ErrorResponse{Error: message}
}

// Health is the liveness probe.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
