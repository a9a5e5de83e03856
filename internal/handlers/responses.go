package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// respondJSON writes a JSON response body with the given status.
func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// respondError writes a JSON error payload. userMsg is safe to show to
// users; err, when non-nil, is only logged.
func respondError(w http.ResponseWriter, status int, userMsg string, err error) {
	if err != nil {
		log.Printf("%s: %v", userMsg, err)
	}
	respondJSON(w, status, map[string]string{"error": userMsg})
}

// decodeJSON decodes a request body into dst, rejecting unknown
// payloads with a generic message.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
