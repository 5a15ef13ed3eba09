// Package respond writes JSON HTTP responses.
package respond

import (
	"encoding/json"
	"net/http"
)

// MessageResponse is the body of every error response.
type MessageResponse struct {
	Message string `json:"message"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Message writes a MessageResponse with the given status code.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, MessageResponse{Message: message})
}
