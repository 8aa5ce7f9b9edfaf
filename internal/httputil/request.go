package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes caps every decoded request body.
const MaxBodyBytes = 10 << 20

// ParseJSON decodes JSON from the request body into dest. An empty body leaves
// dest untouched and is not an error.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	// Requires w so an oversized body gets a proper 413
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	// Unknown fields are allowed: tool inputs are free-form mappings
	// validated downstream.
	if err := decoder.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}
