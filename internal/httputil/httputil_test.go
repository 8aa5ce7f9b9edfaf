package httputil

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, http.StatusNotFound, "Tool 'x' not found")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	if got := rec.Body.String(); got != `{"detail":"Tool 'x' not found"}` {
		t.Errorf("body = %s", got)
	}
}

func TestRespondJSON_EncodingFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusOK, map[string]float64{"bad": math.Inf(1)})

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "failed to encode response") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"object", `{"name":"list_projects","input":{}}`, false},
		{"empty body", ``, false},
		{"truncated", `{"name":`, true},
		{"not json", `name=list_projects`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/tools/list_projects", strings.NewReader(tt.body))
			var dest map[string]interface{}
			err := ParseJSON(httptest.NewRecorder(), req, &dest)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseJSON_BodyLimit(t *testing.T) {
	body := `{"input":{"description":"` + strings.Repeat("a", MaxBodyBytes) + `"}}`
	req := httptest.NewRequest(http.MethodPost, "/tools/create_task", strings.NewReader(body))

	var dest map[string]interface{}
	if err := ParseJSON(httptest.NewRecorder(), req, &dest); err == nil {
		t.Fatal("expected error for oversized body")
	}
}
