package tools

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"leantime-mcp/internal/domain/models"
)

type ListTimesheetsInput struct {
	UserID    *int `json:"user_id,omitempty" jsonschema:"ID of the user to filter timesheets by"`
	ProjectID *int `json:"project_id,omitempty" jsonschema:"ID of the project to filter timesheets by"`
	TaskID    *int `json:"task_id,omitempty" jsonschema:"ID of the task to filter timesheets by"`
}

type ListTimesheetsOutput struct {
	Timesheets []models.Timesheet `json:"timesheets"`
}

func (o ListTimesheetsOutput) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Timesheets, validation.NotNil),
	)
}

func NewListTimesheetsTool(backend Backend) Tool {
	return newTool[ListTimesheetsInput, ListTimesheetsOutput](
		"list_timesheets",
		"Lists timesheet entries in Leantime, optionally filtered by user, project, or task",
		func(ctx context.Context, in ListTimesheetsInput) (map[string]interface{}, error) {
			timesheets, err := backend.GetTimesheets(ctx, in.UserID, in.ProjectID, in.TaskID)
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{"timesheets": timesheets}, nil
		},
	)
}

type CreateTimesheetInput struct {
	UserID      *int     `json:"userId" jsonschema:"ID of the user"`
	ProjectID   *int     `json:"projectId" jsonschema:"ID of the project"`
	TicketID    *int     `json:"ticketId,omitempty" jsonschema:"ID of the task (ticket)"`
	Hours       *float64 `json:"hours" jsonschema:"Hours worked"`
	Description *string  `json:"description,omitempty" jsonschema:"Description of the work"`
	Date        *string  `json:"date" jsonschema:"Date of the work (YYYY-MM-DD)"`
}

func (i CreateTimesheetInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.UserID, validation.NotNil),
		validation.Field(&i.ProjectID, validation.NotNil),
		validation.Field(&i.Hours, validation.NotNil),
		validation.Field(&i.Date, validation.NotNil),
	)
}

type CreateTimesheetOutput struct {
	Timesheet *models.Timesheet `json:"timesheet"`
	Message   *string           `json:"message"`
}

func (o CreateTimesheetOutput) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Timesheet, validation.NotNil),
		validation.Field(&o.Message, validation.NotNil),
	)
}

func NewCreateTimesheetTool(backend Backend) Tool {
	return newTool[CreateTimesheetInput, CreateTimesheetOutput](
		"create_timesheet",
		"Creates a new timesheet entry in Leantime",
		func(ctx context.Context, in CreateTimesheetInput) (map[string]interface{}, error) {
			timesheet, err := backend.CreateTimesheet(ctx, in)
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{
				"timesheet": timesheet,
				"message":   "Timesheet entry created successfully",
			}, nil
		},
	)
}
