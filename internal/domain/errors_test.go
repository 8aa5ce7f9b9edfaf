package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"input validation", &ValidationError{Stage: StageInput, Fields: []string{"task_id"}}, http.StatusBadRequest},
		{"output validation", &ValidationError{Stage: StageOutput, Fields: []string{"tasks.0.id"}}, http.StatusInternalServerError},
		{"tool not found", NewToolNotFoundError("x"), http.StatusNotFound},
		{"remote api", &RemoteAPIError{Status: 404, Body: "gone"}, http.StatusBadGateway},
		{"client not initialized", &ClientNotInitializedError{}, http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("dispatch: %w", NewToolNotFoundError("x")), http.StatusNotFound},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusCode(tt.err); got != tt.want {
				t.Errorf("StatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSentinels(t *testing.T) {
	tests := []struct {
		err      error
		sentinel error
	}{
		{&ValidationError{Stage: StageInput}, ErrValidation},
		{NewToolNotFoundError("x"), ErrNotFound},
		{&RemoteAPIError{Status: 500}, ErrRemoteAPI},
		{&ClientNotInitializedError{}, ErrClientNotInitialized},
	}

	for _, tt := range tests {
		if !errors.Is(tt.err, tt.sentinel) {
			t.Errorf("%T should match %v", tt.err, tt.sentinel)
		}
		if errors.Is(tt.err, errors.New(tt.sentinel.Error())) {
			t.Errorf("%T matched an unrelated error", tt.err)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{NewToolNotFoundError("nonexistent_tool"), "Tool 'nonexistent_tool' not found"},
		{&RemoteAPIError{Status: 404, Body: map[string]interface{}{"code": 404, "error": "Ticket not found"}}, `Leantime API error: 404 - {"code":404,"error":"Ticket not found"}`},
		{&RemoteAPIError{Status: 422, Body: []interface{}{"title required"}}, `Leantime API error: 422 - ["title required"]`},
		{&RemoteAPIError{Status: 502, Body: "Bad Gateway"}, "Leantime API error: 502 - Bad Gateway"},
		{&ValidationError{Stage: StageInput, Fields: []string{"date", "hours"}, Message: "required"}, "input validation failed for [date, hours]: required"},
		{&ValidationError{Stage: StageOutput, Message: "bad json"}, "output validation failed: bad json"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
