// Package handler contains the HTTP request handlers.
//
// HANDLER RESPONSIBILITIES:
// 1. Parse the incoming HTTP request (query params, body)
// 2. Call the service layer
// 3. Write the HTTP response (status code, headers, body)
//
// Handlers hold no business rules. Filtering, ID assignment and
// aggregation all live in internal/service.
package handler

import (
	"io"
	"net/http"
)

// HealthMessage is the liveness text served on GET /.
const HealthMessage = "Alumni Search Engine Backend Active 🚀"

// HandleHealth serves the plain-text liveness message.
//
// HTTP: GET /
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeHealth(w)
}

func writeHealth(w http.ResponseWriter) {
	w.Header().Set("Content-Type", contentTypeText)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, HealthMessage)
}
