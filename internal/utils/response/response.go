// Package response provides helpers for writing consistent JSON results.
//
// Every command in this application prints exactly one JSON document to
// stdout. Rather than repeating the encode step in every handler, we
// centralise it here.
//
// Consistent shapes also make life easier for scripts driving the
// CLI — they always know what an error looks like.
package response

import (
	"encoding/json"
	"io"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the standard envelope.
//
//	{ "status": "ok", "data": [...] }
//	{ "status": "ok", "message": "no student records available" }
//	{ "status": "ok", "warning": "Add: persistence write failed: ...", "data": {...} }
//	{ "status": "error", "error": "student not found: \"x9\"" }
//
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status  string `json:"status"`            // "ok" or "error"
	Error   string `json:"error,omitempty"`   // human-readable error detail
	Warning string `json:"warning,omitempty"` // set when the change was kept but not saved
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Status string constants — use these instead of raw string literals so
// a typo is caught by the compiler rather than silently sending "eroor".
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON encodes data to w as indented JSON followed by a newline.
func WriteJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// OK wraps a successful result.
func OK(data any) Response {
	return Response{Status: StatusOK, Data: data}
}

// Empty is an OK result with nothing to show, e.g. analytics on an
// empty roster.
func Empty(message string) Response {
	return Response{Status: StatusOK, Message: message}
}

// Unsaved is an OK result whose change is held in memory only because
// the write-through failed.
func Unsaved(data any, err error) Response {
	return Response{Status: StatusOK, Warning: err.Error(), Data: data}
}

// ─────────────────────────────────────────────────────────────────────────────
// GeneralError wraps any Go error into our standard Response shape.
//
// Example usage:
//
//	response.WriteJSON(w, response.GeneralError(err))
//
// ─────────────────────────────────────────────────────────────────────────────
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}
