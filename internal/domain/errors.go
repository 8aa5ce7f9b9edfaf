package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound             = errors.New("not found")
	ErrValidation           = errors.New("validation failed")
	ErrRemoteAPI            = errors.New("remote api error")
	ErrClientNotInitialized = errors.New("client not initialized")
)

// ValidationStage tells whether a schema check ran on a tool's input or output.
type ValidationStage string

const (
	StageInput  ValidationStage = "input"
	StageOutput ValidationStage = "output"
)

// ValidationError indicates a raw mapping failed schema coercion.
// Output-stage failures are internal contract violations, not caller mistakes.
type ValidationError struct {
	Stage   ValidationStage
	Fields  []string // offending JSON field names, sorted
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s validation failed: %s", e.Stage, e.Message)
	}
	return fmt.Sprintf("%s validation failed for [%s]: %s", e.Stage, strings.Join(e.Fields, ", "), e.Message)
}

func (e *ValidationError) StatusCode() int {
	if e.Stage == StageOutput {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError indicates a tool name is not registered
type NotFoundError struct {
	Message string
}

// NewToolNotFoundError builds the not-found error for an unregistered tool name.
func NewToolNotFoundError(name string) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf("Tool '%s' not found", name)}
}

func (e *NotFoundError) Error() string { return e.Message }
func (e *NotFoundError) StatusCode() int { return http.StatusNotFound }
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// RemoteAPIError is returned when Leantime answers with a non-2xx status.
// Body holds the decoded JSON error payload, or the raw text when it isn't JSON.
type RemoteAPIError struct {
	Status int
	Body   interface{}
}

func (e *RemoteAPIError) Error() string {
	return fmt.Sprintf("Leantime API error: %d - %s", e.Status, e.bodyText())
}

// bodyText renders Body as it came over the wire: raw text as-is, decoded
// JSON re-encoded.
func (e *RemoteAPIError) bodyText() string {
	switch body := e.Body.(type) {
	case nil:
		return ""
	case string:
		return body
	}
	data, err := json.Marshal(e.Body)
	if err != nil {
		return fmt.Sprint(e.Body)
	}
	return string(data)
}

// StatusCode reports 502: the failure belongs to the upstream service.
func (e *RemoteAPIError) StatusCode() int { return http.StatusBadGateway }
func (e *RemoteAPIError) Is(target error) bool { return target == ErrRemoteAPI }

// ClientNotInitializedError is returned when a backend session is used before
// it was opened or after it was closed.
type ClientNotInitializedError struct{}

func (e *ClientNotInitializedError) Error() string {
	return "client not initialized: open a session before issuing requests"
}
func (e *ClientNotInitializedError) StatusCode() int { return http.StatusInternalServerError }
func (e *ClientNotInitializedError) Is(target error) bool { return target == ErrClientNotInitialized }

// StatusCode returns the HTTP status for err, defaulting to 500.
func StatusCode(err error) int {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode()
	}
	return http.StatusInternalServerError
}
