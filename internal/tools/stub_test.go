package tools

import (
	"context"
	"sync"
)

// backendCall records one Backend invocation.
type backendCall struct {
	Method  string
	ID      int
	Payload interface{}
	Filters []*int
}

// stubBackend returns canned responses keyed by method name and records every
// call. It doubles as a Session.
type stubBackend struct {
	mu        sync.Mutex
	responses map[string]interface{}
	errs      map[string]error
	calls     []backendCall
	closed    int
	hook      func(method string) error
}

func newStubBackend() *stubBackend {
	return &stubBackend{
		responses: map[string]interface{}{},
		errs:      map[string]error{},
	}
}

func (s *stubBackend) respond(call backendCall) (interface{}, error) {
	s.mu.Lock()
	s.calls = append(s.calls, call)
	hook := s.hook
	resp, err := s.responses[call.Method], s.errs[call.Method]
	s.mu.Unlock()

	if hook != nil {
		if hookErr := hook(call.Method); hookErr != nil {
			return nil, hookErr
		}
	}
	return resp, err
}

func (s *stubBackend) Calls() []backendCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]backendCall, len(s.calls))
	copy(out, s.calls)
	return out
}

func (s *stubBackend) Close() error {
	s.mu.Lock()
	s.closed++
	s.mu.Unlock()
	return nil
}

func (s *stubBackend) GetProjects(ctx context.Context) (interface{}, error) {
	return s.respond(backendCall{Method: "GetProjects"})
}

func (s *stubBackend) GetProject(ctx context.Context, projectID int) (interface{}, error) {
	return s.respond(backendCall{Method: "GetProject", ID: projectID})
}

func (s *stubBackend) CreateProject(ctx context.Context, payload interface{}) (interface{}, error) {
	return s.respond(backendCall{Method: "CreateProject", Payload: payload})
}

func (s *stubBackend) UpdateProject(ctx context.Context, projectID int, payload interface{}) (interface{}, error) {
	return s.respond(backendCall{Method: "UpdateProject", ID: projectID, Payload: payload})
}

func (s *stubBackend) GetTasks(ctx context.Context, projectID *int) (interface{}, error) {
	return s.respond(backendCall{Method: "GetTasks", Filters: []*int{projectID}})
}

func (s *stubBackend) GetTask(ctx context.Context, taskID int) (interface{}, error) {
	return s.respond(backendCall{Method: "GetTask", ID: taskID})
}

func (s *stubBackend) CreateTask(ctx context.Context, payload interface{}) (interface{}, error) {
	return s.respond(backendCall{Method: "CreateTask", Payload: payload})
}

func (s *stubBackend) UpdateTask(ctx context.Context, taskID int, payload interface{}) (interface{}, error) {
	return s.respond(backendCall{Method: "UpdateTask", ID: taskID, Payload: payload})
}

func (s *stubBackend) DeleteTask(ctx context.Context, taskID int) (interface{}, error) {
	return s.respond(backendCall{Method: "DeleteTask", ID: taskID})
}

func (s *stubBackend) GetMilestones(ctx context.Context, projectID *int) (interface{}, error) {
	return s.respond(backendCall{Method: "GetMilestones", Filters: []*int{projectID}})
}

func (s *stubBackend) GetUsers(ctx context.Context) (interface{}, error) {
	return s.respond(backendCall{Method: "GetUsers"})
}

func (s *stubBackend) GetUser(ctx context.Context, userID int) (interface{}, error) {
	return s.respond(backendCall{Method: "GetUser", ID: userID})
}

func (s *stubBackend) GetTimesheets(ctx context.Context, userID, projectID, taskID *int) (interface{}, error) {
	return s.respond(backendCall{Method: "GetTimesheets", Filters: []*int{userID, projectID, taskID}})
}

func (s *stubBackend) CreateTimesheet(ctx context.Context, payload interface{}) (interface{}, error) {
	return s.respond(backendCall{Method: "CreateTimesheet", Payload: payload})
}

// Response fixtures carry one field no model declares ("extra") so tests can
// check that outputs hold only declared fields.
func projectFixture() map[string]interface{} {
	return map[string]interface{}{"id": 1, "name": "Alpha", "extra": "dropped"}
}

func taskFixture() map[string]interface{} {
	return map[string]interface{}{"id": 7, "title": "Fix login", "projectId": 1, "extra": "dropped"}
}

func userFixture() map[string]interface{} {
	return map[string]interface{}{"id": 3, "username": "ada", "email": "ada@example.com", "extra": "dropped"}
}

func timesheetFixture() map[string]interface{} {
	return map[string]interface{}{"id": 9, "userId": 3, "projectId": 1, "hours": 2.5, "date": "2024-01-02", "extra": "dropped"}
}

func milestoneFixture() map[string]interface{} {
	return map[string]interface{}{"id": 4, "headline": "Beta release", "extra": "dropped"}
}
