// Package httputil centralizes JSON response writing so every handler uses
// the same envelopes and the same error translation.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "github.com/elsaedy55/Revo-backend/pkg/domain-errors"
)

// WriteJSON serializes v with the given status. Encoding failures are ignored
// at this point because the status line is already committed.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates an error into the JSON error envelope. Internal
// errors omit the description so storage details never leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	writeError(w, err, false)
}

// WriteErrorVerbose includes the description for every code, including
// internal errors. Only wire this in development mode.
func WriteErrorVerbose(w http.ResponseWriter, err error) {
	writeError(w, err, true)
}

func writeError(w http.ResponseWriter, err error, verbose bool) {
	code := dErrors.CodeOf(err)
	body := map[string]string{"error": string(code)}
	if code != dErrors.CodeInternal || verbose {
		body["error_description"] = err.Error()
	}
	WriteJSON(w, dErrors.ToHTTPStatus(code), body)
}
