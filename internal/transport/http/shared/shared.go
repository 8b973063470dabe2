// Package shared centralizes domain error translation and JSON writing for
// HTTP handlers, keeping error envelopes consistent across modules.
package shared

import (
	"encoding/json"
	"net/http"

	dErrors "peopledesk/pkg/domain-errors"
)

// ErrorResponse is the JSON envelope for all error replies.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// WriteError maps a coded domain error onto its HTTP status. Uncoded errors
// become 500s with a generic message so internals never leak.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := dErrors.ToHTTPStatus(code)
	body := ErrorResponse{Error: string(code)}
	if status < http.StatusInternalServerError {
		body.Message = dErrors.MessageOf(err)
	}
	WriteJSON(w, status, body)
}

// WriteJSON writes a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
