package api

import (
	"encoding/json"
	"net/http"
)

// Client-facing messages. The missing-field message has no trailing period;
// existing clients match on the exact text, so keep both spellings.
const (
	msgMissingField = "Invalid data"
	msgInvalidData  = "Invalid data."
	msgEmptyUpdate  = "Invalid data, must contain fields to update."
	msgNotFound     = "Bookmark not found."
	msgServerError  = "server error"
	msgUnauthorized = "Unauthorized request"
)

// ErrorMessage is the inner object of an error response.
type ErrorMessage struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every 4xx and production 5xx response.
type ErrorResponse struct {
	Error ErrorMessage `json:"error"`
}

// debugErrorResponse is the 5xx body outside production. It carries the raw
// error text.
type debugErrorResponse struct {
	Message string       `json:"message"`
	Error   ErrorMessage `json:"error"`
}

// writeError writes {"error":{"message":...}} with the given status code.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorMessage{Message: message}})
}

// writeJSON writes a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// InternalError writes the 500 response for an unexpected failure. In
// production the body is a fixed message; otherwise it includes err's text.
// Logging is left to the caller.
func InternalError(w http.ResponseWriter, err error, production bool) {
	if production || err == nil {
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}
	writeJSON(w, http.StatusInternalServerError, debugErrorResponse{
		Message: err.Error(),
		Error:   ErrorMessage{Message: err.Error()},
	})
}
