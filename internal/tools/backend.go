package tools

import "context"

// Backend is the slice of the Leantime API the tools call. Every method performs
// one HTTP request and returns the decoded JSON body untouched; shaping and
// validation happen in the tool lifecycle.
type Backend interface {
	GetProjects(ctx context.Context) (interface{}, error)
	GetProject(ctx context.Context, projectID int) (interface{}, error)
	CreateProject(ctx context.Context, payload interface{}) (interface{}, error)
	UpdateProject(ctx context.Context, projectID int, payload interface{}) (interface{}, error)

	GetTasks(ctx context.Context, projectID *int) (interface{}, error)
	GetTask(ctx context.Context, taskID int) (interface{}, error)
	CreateTask(ctx context.Context, payload interface{}) (interface{}, error)
	UpdateTask(ctx context.Context, taskID int, payload interface{}) (interface{}, error)
	DeleteTask(ctx context.Context, taskID int) (interface{}, error)

	GetMilestones(ctx context.Context, projectID *int) (interface{}, error)

	GetUsers(ctx context.Context) (interface{}, error)
	GetUser(ctx context.Context, userID int) (interface{}, error)

	GetTimesheets(ctx context.Context, userID, projectID, taskID *int) (interface{}, error)
	CreateTimesheet(ctx context.Context, payload interface{}) (interface{}, error)
}

// Session is a request-scoped backend. Close releases its connections.
type Session interface {
	Backend
	Close() error
}

// SessionOpener acquires a fresh Session for one request.
type SessionOpener func() (Session, error)
