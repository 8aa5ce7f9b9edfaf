package leantime

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Projects

func (s *Session) GetProjects(ctx context.Context) (interface{}, error) {
	return s.Request(ctx, http.MethodGet, "/api/projects", nil, nil)
}

func (s *Session) GetProject(ctx context.Context, projectID int) (interface{}, error) {
	return s.Request(ctx, http.MethodGet, fmt.Sprintf("/api/projects/%d", projectID), nil, nil)
}

func (s *Session) CreateProject(ctx context.Context, payload interface{}) (interface{}, error) {
	return s.Request(ctx, http.MethodPost, "/api/projects", payload, nil)
}

func (s *Session) UpdateProject(ctx context.Context, projectID int, payload interface{}) (interface{}, error) {
	return s.Request(ctx, http.MethodPut, fmt.Sprintf("/api/projects/%d", projectID), payload, nil)
}

// Tasks (Leantime "tickets")

// GetTasks lists tickets, filtered by project when projectID is set and non-zero.
func (s *Session) GetTasks(ctx context.Context, projectID *int) (interface{}, error) {
	query := url.Values{}
	setFilter(query, "projectId", projectID)
	return s.Request(ctx, http.MethodGet, "/api/tickets", nil, query)
}

func (s *Session) GetTask(ctx context.Context, taskID int) (interface{}, error) {
	return s.Request(ctx, http.MethodGet, fmt.Sprintf("/api/tickets/%d", taskID), nil, nil)
}

func (s *Session) CreateTask(ctx context.Context, payload interface{}) (interface{}, error) {
	return s.Request(ctx, http.MethodPost, "/api/tickets", payload, nil)
}

func (s *Session) UpdateTask(ctx context.Context, taskID int, payload interface{}) (interface{}, error) {
	return s.Request(ctx, http.MethodPut, fmt.Sprintf("/api/tickets/%d", taskID), payload, nil)
}

func (s *Session) DeleteTask(ctx context.Context, taskID int) (interface{}, error) {
	return s.Request(ctx, http.MethodDelete, fmt.Sprintf("/api/tickets/%d", taskID), nil, nil)
}

// Milestones

func (s *Session) GetMilestones(ctx context.Context, projectID *int) (interface{}, error) {
	query := url.Values{}
	setFilter(query, "projectId", projectID)
	return s.Request(ctx, http.MethodGet, "/api/milestones", nil, query)
}

// Users

func (s *Session) GetUsers(ctx context.Context) (interface{}, error) {
	return s.Request(ctx, http.MethodGet, "/api/users", nil, nil)
}

func (s *Session) GetUser(ctx context.Context, userID int) (interface{}, error) {
	return s.Request(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d", userID), nil, nil)
}

// Timesheets

func (s *Session) GetTimesheets(ctx context.Context, userID, projectID, taskID *int) (interface{}, error) {
	query := url.Values{}
	setFilter(query, "userId", userID)
	setFilter(query, "projectId", projectID)
	setFilter(query, "ticketId", taskID)
	return s.Request(ctx, http.MethodGet, "/api/timesheets", nil, query)
}

func (s *Session) CreateTimesheet(ctx context.Context, payload interface{}) (interface{}, error) {
	return s.Request(ctx, http.MethodPost, "/api/timesheets", payload, nil)
}

// setFilter adds key when value is set. Zero IDs are treated as unset.
func setFilter(query url.Values, key string, value *int) {
	if value != nil && *value != 0 {
		query.Set(key, strconv.Itoa(*value))
	}
}
