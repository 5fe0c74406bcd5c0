package handler

// RESPONSE HELPERS:
// These functions standardise how we send JSON responses and errors.
//
// THE "ALWAYS 200" CONTRACT:
// Clients of this API inspect the BODY, not the status code, for failures:
//   {"Error": "Invalid ID"}     ← bad or missing query parameter, not found
//   {"Status": "Error"}         ← add / add-bulk could not be applied
// Both are sent with HTTP 200. Only genuine server faults (the collection
// could not be read or written) get a real 500, so monitoring still sees them.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/alumni-search/internal/apperror"
)

const (
	contentTypeJSON = "application/json; charset=UTF-8"
	contentTypeText = "text/plain; charset=UTF-8"

	StatusSuccess = "Success"
	StatusError   = "Error"

	msgInternal         = "Internal server error"
	msgNotFound         = "Not found"
	msgMethodNotAllowed = "Method not allowed"
)

// ErrorResponse is the body for lookup and parameter failures.
type ErrorResponse struct {
	Error string `json:"Error"`
}

// StatusResponse is the body of /add and /add-bulk.
type StatusResponse struct {
	Status string `json:"Status"`
}

// writeJSON sends data as indented JSON with the given status code.
//
// HEADER ORDER MATTERS:
// Headers and status must be set BEFORE the body is written.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		// Headers are already on the wire; all we can do is log.
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeError maps a service error onto the response.
//
// An *apperror.AppError anywhere in the chain is a client-side problem and
// goes out as {"Error": <message>} with 200. Anything else is a server fault:
// the detail is logged and the client gets a generic 500.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, http.StatusOK, ErrorResponse{Error: appErr.Message})
		return
	}

	logger.Error("request failed", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: msgInternal})
}

// writeStatus sends a {"Status": ...} body.
func writeStatus(w http.ResponseWriter, status int, value string) {
	writeJSON(w, status, StatusResponse{Status: value})
}

// NotFound answers unknown paths. A GET gets the liveness text, so any path
// nothing else claims doubles as a health check.
func NotFound(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		writeHealth(w)
		return
	}
	writeJSON(w, http.StatusNotFound, ErrorResponse{Error: msgNotFound})
}

// MethodNotAllowed answers a known path hit with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: msgMethodNotAllowed})
}
