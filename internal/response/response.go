// Package response provides small helpers for writing JSON API responses.
// Relay endpoints write the gateway result as-is; everything else uses a
// consistent envelope.
package response

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/oggyb/textsms-relay/internal/textsms"
)

// JSONResponse is the envelope for non-relay endpoints.
type JSONResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorBody  `json:"error,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// ErrorBody holds details about an API error.
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RespondJSON writes a successful JSON response with the given status code and payload.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	resp := JSONResponse{
		Success:   true,
		Data:      payload,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	writeJSON(w, status, resp)
}

// RespondError writes an error JSON response with the given status code and message.
func RespondError(w http.ResponseWriter, status int, msg string) {
	resp := JSONResponse{
		Success: false,
		Error: &ErrorBody{
			Code:    status,
			Message: msg,
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	writeJSON(w, status, resp)
}

// RespondResult writes a gateway result: the provider body verbatim, or the
// normalised error object.
func RespondResult(w http.ResponseWriter, status int, res textsms.Result) {
	writeJSON(w, status, res)
}

// RespondInvalid writes a 400 with a relay-shaped error, so relay callers
// always parse the same object.
func RespondInvalid(w http.ResponseWriter, msg string) {
	RespondResult(w, http.StatusBadRequest, textsms.Errorf("%s", msg))
}

// writeJSON encodes v as JSON and writes it to the response writer.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
