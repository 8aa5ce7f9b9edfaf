package leantime_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"
	"time"

	"leantime-mcp/internal/domain"
	"leantime-mcp/internal/leantime"
	"leantime-mcp/internal/tools"
)

var _ tools.Session = (*leantime.Session)(nil)

// capturedRequest is what the fake Leantime server saw.
type capturedRequest struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	ContentType   string
	Body          map[string]interface{}
}

type fakeLeantime struct {
	mu       sync.Mutex
	requests []capturedRequest
	status   int
	body     string
}

func newFakeLeantime(t *testing.T, status int, body string) (*fakeLeantime, *httptest.Server) {
	t.Helper()
	f := &fakeLeantime{status: status, body: body}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured := capturedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			RawQuery:      r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
		}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			_ = json.Unmarshal(data, &captured.Body)
		}

		f.mu.Lock()
		f.requests = append(f.requests, captured)
		f.mu.Unlock()

		w.WriteHeader(f.status)
		_, _ = io.WriteString(w, f.body)
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeLeantime) last(t *testing.T) capturedRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		t.Fatal("fake Leantime received no requests")
	}
	return f.requests[len(f.requests)-1]
}

func openSession(t *testing.T, client *leantime.Client) *leantime.Session {
	t.Helper()
	session, err := client.Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestNewClient_AuthMode(t *testing.T) {
	tests := []struct {
		name  string
		creds leantime.Credentials
		want  leantime.AuthMode
	}{
		{"api key only", leantime.Credentials{APIKey: "k"}, leantime.AuthBearer},
		{"api key beats basic", leantime.Credentials{APIKey: "k", Username: "u", Password: "p"}, leantime.AuthBearer},
		{"basic", leantime.Credentials{Username: "u", Password: "p"}, leantime.AuthBasic},
		{"username without password", leantime.Credentials{Username: "u"}, leantime.AuthNone},
		{"nothing", leantime.Credentials{}, leantime.AuthNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := leantime.NewClient("https://leantime.example.com/", tt.creds)
			if got := client.AuthMode(); got != tt.want {
				t.Errorf("AuthMode() = %s, want %s", got, tt.want)
			}
			if got := client.BaseURL(); got != "https://leantime.example.com" {
				t.Errorf("BaseURL() = %q, trailing slash not trimmed", got)
			}
		})
	}
}

func TestSession_AuthHeaders(t *testing.T) {
	tests := []struct {
		name  string
		creds leantime.Credentials
		want  string
	}{
		{"bearer wins over basic", leantime.Credentials{APIKey: "secret", Username: "u", Password: "p"}, "Bearer secret"},
		{"basic", leantime.Credentials{Username: "ada", Password: "lovelace"}, "Basic YWRhOmxvdmVsYWNl"},
		{"none", leantime.Credentials{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake, srv := newFakeLeantime(t, http.StatusOK, `[]`)
			session := openSession(t, leantime.NewClient(srv.URL, tt.creds))

			if _, err := session.GetProjects(context.Background()); err != nil {
				t.Fatalf("GetProjects: %v", err)
			}
			if got := fake.last(t).Authorization; got != tt.want {
				t.Errorf("Authorization = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSession_Endpoints(t *testing.T) {
	five, seven, zero := 5, 7, 0
	payload := map[string]interface{}{"title": "Fix login"}

	tests := []struct {
		name     string
		call     func(ctx context.Context, s *leantime.Session) (interface{}, error)
		method   string
		path     string
		query    string
		wantBody bool
	}{
		{"GetProjects", func(ctx context.Context, s *leantime.Session) (interface{}, error) { return s.GetProjects(ctx) }, "GET", "/api/projects", "", false},
		{"GetProject", func(ctx context.Context, s *leantime.Session) (interface{}, error) { return s.GetProject(ctx, 3) }, "GET", "/api/projects/3", "", false},
		{"CreateProject", func(ctx context.Context, s *leantime.Session) (interface{}, error) { return s.CreateProject(ctx, payload) }, "POST", "/api/projects", "", true},
		{"UpdateProject", func(ctx context.Context, s *leantime.Session) (interface{}, error) { return s.UpdateProject(ctx, 3, payload) }, "PUT", "/api/projects/3", "", true},
		{"GetTasks filtered", func(ctx context.Context, s *leantime.Session) (interface{}, error) { return s.GetTasks(ctx, &five) }, "GET", "/api/tickets", "projectId=5", false},
		{"GetTasks zero filter", func(ctx context.Context, s *leantime.Session) (interface{}, error) { return s.GetTasks(ctx, &zero) }, "GET", "/api/tickets", "", false},
		{"GetTask", func(ctx context.Context, s *leantime.Session) (interface{}, error) { return s.GetTask(ctx, 7) }, "GET", "/api/tickets/7", "", false},
		{"CreateTask", func(ctx context.Context, s *leantime.Session) (interface{}, error) { return s.CreateTask(ctx, payload) }, "POST", "/api/tickets", "", true},
		{"UpdateTask", func(ctx context.Context, s *leantime.Session) (interface{}, error) { return s.UpdateTask(ctx, 7, payload) }, "PUT", "/api/tickets/7", "", true},
		{"DeleteTask", func(ctx context.Context, s *leantime.Session) (interface{}, error) { return s.DeleteTask(ctx, 7) }, "DELETE", "/api/tickets/7", "", false},
		{"GetMilestones", func(ctx context.Context, s *leantime.Session) (interface{}, error) { return s.GetMilestones(ctx, &five) }, "GET", "/api/milestones", "projectId=5", false},
		{"GetUsers", func(ctx context.Context, s *leantime.Session) (interface{}, error) { return s.GetUsers(ctx) }, "GET", "/api/users", "", false},
		{"GetUser", func(ctx context.Context, s *leantime.Session) (interface{}, error) { return s.GetUser(ctx, 2) }, "GET", "/api/users/2", "", false},
		{"GetTimesheets", func(ctx context.Context, s *leantime.Session) (interface{}, error) { return s.GetTimesheets(ctx, &five, nil, &seven) }, "GET", "/api/timesheets", "ticketId=7&userId=5", false},
		{"CreateTimesheet", func(ctx context.Context, s *leantime.Session) (interface{}, error) { return s.CreateTimesheet(ctx, payload) }, "POST", "/api/timesheets", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake, srv := newFakeLeantime(t, http.StatusOK, `{"ok":true}`)
			session := openSession(t, leantime.NewClient(srv.URL, leantime.Credentials{APIKey: "k"}))

			got, err := tt.call(context.Background(), session)
			if err != nil {
				t.Fatalf("call failed: %v", err)
			}
			if !reflect.DeepEqual(got, map[string]interface{}{"ok": true}) {
				t.Errorf("result = %#v", got)
			}

			req := fake.last(t)
			if req.Method != tt.method || req.Path != tt.path {
				t.Errorf("request = %s %s, want %s %s", req.Method, req.Path, tt.method, tt.path)
			}
			if req.RawQuery != tt.query {
				t.Errorf("query = %q, want %q", req.RawQuery, tt.query)
			}
			if tt.wantBody {
				if req.ContentType != "application/json" {
					t.Errorf("Content-Type = %q", req.ContentType)
				}
				if req.Body["title"] != "Fix login" {
					t.Errorf("body = %#v", req.Body)
				}
			}
		})
	}
}

func TestSession_RemoteErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantBody interface{}
	}{
		{"json error body", http.StatusNotFound, `{"error":"not found"}`, map[string]interface{}{"error": "not found"}},
		{"text error body", http.StatusInternalServerError, "upstream exploded", "upstream exploded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, srv := newFakeLeantime(t, tt.status, tt.body)
			session := openSession(t, leantime.NewClient(srv.URL, leantime.Credentials{}))

			_, err := session.GetProject(context.Background(), 1)

			var remoteErr *domain.RemoteAPIError
			if !errors.As(err, &remoteErr) {
				t.Fatalf("expected *domain.RemoteAPIError, got %v", err)
			}
			if remoteErr.Status != tt.status {
				t.Errorf("Status = %d, want %d", remoteErr.Status, tt.status)
			}
			if !reflect.DeepEqual(remoteErr.Body, tt.wantBody) {
				t.Errorf("Body = %#v, want %#v", remoteErr.Body, tt.wantBody)
			}
			if domain.StatusCode(err) != http.StatusBadGateway {
				t.Errorf("StatusCode = %d, want 502", domain.StatusCode(err))
			}
		})
	}
}

func TestSession_NonJSONSuccess(t *testing.T) {
	_, srv := newFakeLeantime(t, http.StatusOK, "deleted")
	session := openSession(t, leantime.NewClient(srv.URL, leantime.Credentials{}))

	got, err := session.DeleteTask(context.Background(), 7)
	if err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if !reflect.DeepEqual(got, map[string]interface{}{"text": "deleted"}) {
		t.Errorf("result = %#v, want text wrapper", got)
	}
}

func TestSession_UseAfterClose(t *testing.T) {
	_, srv := newFakeLeantime(t, http.StatusOK, `[]`)
	session, err := leantime.NewClient(srv.URL, leantime.Credentials{}).Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err := session.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := session.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	_, err = session.GetUsers(context.Background())
	if !errors.Is(err, domain.ErrClientNotInitialized) {
		t.Fatalf("expected client-not-initialized error, got %v", err)
	}

	var nilSession *leantime.Session
	if _, err := nilSession.GetUsers(context.Background()); !errors.Is(err, domain.ErrClientNotInitialized) {
		t.Fatalf("nil session: expected client-not-initialized error, got %v", err)
	}
}

func TestClient_OpenWithoutBaseURL(t *testing.T) {
	if _, err := leantime.NewClient("", leantime.Credentials{APIKey: "k"}).Open(); err == nil {
		t.Fatal("expected error when the base URL is empty")
	}
}

func TestSession_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)

	client := leantime.NewClient(srv.URL, leantime.Credentials{}, leantime.WithTimeout(50*time.Millisecond))
	session := openSession(t, client)

	_, err := session.GetProjects(context.Background())
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if errors.Is(err, domain.ErrRemoteAPI) {
		t.Errorf("timeout should not be reported as a remote API error: %v", err)
	}
}
