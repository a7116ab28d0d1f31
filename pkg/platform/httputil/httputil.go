// Package httputil centralizes JSON encoding and error translation for HTTP
// handlers so every endpoint speaks the same envelope.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "exhibit/pkg/domain-errors"
)

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the shared JSON error envelope.
// Internal errors omit the description so infrastructure details never leak
// to callers.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeInternal
	message := ""

	var de *dErrors.Error
	if errors.As(err, &de) {
		code = de.Code
		message = de.Message
	}

	body := map[string]string{"error": string(code)}
	if message != "" && code != dErrors.CodeInternal {
		body["error_description"] = message
	}
	WriteJSON(w, dErrors.ToHTTPStatus(code), body)
}

// Decode parses the request body as JSON into a value of type T. A failure
// yields a CodeBadRequest error suitable for WriteError.
func Decode[T any](r *http.Request) (T, error) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		return v, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid JSON body")
	}
	return v, nil
}
