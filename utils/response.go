package utils

import (
	"encoding/json"
	"net/http"
)

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"error": msg})
}

// SendResponse wraps data in the standard envelope. Warnings carries
// non-fatal aggregate messages (skipped companion synthesis and the like).
func SendResponse(w http.ResponseWriter, status int, data any, message string, warnings ...string) {
	resp := map[string]any{
		"status":  status,
		"message": message,
		"data":    data,
	}
	if len(warnings) > 0 {
		resp["warnings"] = warnings
	}
	RespondWithJSON(w, status, resp)
}

type M map[string]any
