package tools

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"leantime-mcp/internal/domain/models"
)

type ListTasksInput struct {
	ProjectID *int `json:"project_id,omitempty" jsonschema:"ID of the project to filter tasks by"`
}

type ListTasksOutput struct {
	Tasks []models.Task `json:"tasks"`
}

func (o ListTasksOutput) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Tasks, validation.NotNil),
	)
}

func NewListTasksTool(backend Backend) Tool {
	return newTool[ListTasksInput, ListTasksOutput](
		"list_tasks",
		"Lists tasks in Leantime, optionally filtered by project",
		func(ctx context.Context, in ListTasksInput) (map[string]interface{}, error) {
			tasks, err := backend.GetTasks(ctx, in.ProjectID)
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{"tasks": tasks}, nil
		},
	)
}

type GetTaskInput struct {
	TaskID *int `json:"task_id" jsonschema:"ID of the task to retrieve"`
}

func (i GetTaskInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.TaskID, validation.NotNil),
	)
}

type GetTaskOutput struct {
	Task *models.Task `json:"task"`
}

func (o GetTaskOutput) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Task, validation.NotNil),
	)
}

func NewGetTaskTool(backend Backend) Tool {
	return newTool[GetTaskInput, GetTaskOutput](
		"get_task",
		"Gets details of a specific task in Leantime",
		func(ctx context.Context, in GetTaskInput) (map[string]interface{}, error) {
			task, err := backend.GetTask(ctx, *in.TaskID)
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{"task": task}, nil
		},
	)
}

type CreateTaskInput struct {
	Title       *string  `json:"title" jsonschema:"Title of the task"`
	Description *string  `json:"description,omitempty" jsonschema:"Description of the task"`
	ProjectID   *int     `json:"projectId" jsonschema:"ID of the project"`
	Status      *string  `json:"status,omitempty" jsonschema:"Status of the task"`
	Priority    *string  `json:"priority,omitempty" jsonschema:"Priority of the task"`
	AssignedTo  *int     `json:"assignedTo,omitempty" jsonschema:"ID of the user the task is assigned to"`
	StartDate   *string  `json:"startDate,omitempty" jsonschema:"Start date of the task (YYYY-MM-DD)"`
	DueDate     *string  `json:"dueDate,omitempty" jsonschema:"Due date of the task (YYYY-MM-DD)"`
	StoryPoints *int     `json:"storyPoints,omitempty" jsonschema:"Story points of the task"`
	Tags        []string `json:"tags,omitempty" jsonschema:"Tags for the task"`
}

func (i CreateTaskInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Title, validation.NotNil),
		validation.Field(&i.ProjectID, validation.NotNil),
	)
}

type TaskMutationOutput struct {
	Task    *models.Task `json:"task"`
	Message *string      `json:"message"`
}

func (o TaskMutationOutput) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Task, validation.NotNil),
		validation.Field(&o.Message, validation.NotNil),
	)
}

func NewCreateTaskTool(backend Backend) Tool {
	return newTool[CreateTaskInput, TaskMutationOutput](
		"create_task",
		"Creates a new task in Leantime",
		func(ctx context.Context, in CreateTaskInput) (map[string]interface{}, error) {
			task, err := backend.CreateTask(ctx, in)
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{
				"task":    task,
				"message": "Task created successfully",
			}, nil
		},
	)
}

type UpdateTaskInput struct {
	TaskID      *int    `json:"task_id" jsonschema:"ID of the task to update"`
	Title       *string `json:"title,omitempty" jsonschema:"Title of the task"`
	Description *string `json:"description,omitempty" jsonschema:"Description of the task"`
	Status      *string `json:"status,omitempty" jsonschema:"Status of the task"`
	Priority    *string `json:"priority,omitempty" jsonschema:"Priority of the task"`
	AssignedTo  *int    `json:"assignedTo,omitempty" jsonschema:"ID of the user the task is assigned to"`
	StartDate   *string `json:"startDate,omitempty" jsonschema:"Start date of the task (YYYY-MM-DD)"`
	DueDate     *string `json:"dueDate,omitempty" jsonschema:"Due date of the task (YYYY-MM-DD)"`
	StoryPoints *int    `json:"storyPoints,omitempty" jsonschema:"Story points of the task"`
}

func (i UpdateTaskInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.TaskID, validation.NotNil),
	)
}

// NewUpdateTaskTool forwards every provided field except task_id, which
// selects the target ticket.
func NewUpdateTaskTool(backend Backend) Tool {
	return newTool[UpdateTaskInput, TaskMutationOutput](
		"update_task",
		"Updates an existing task in Leantime",
		func(ctx context.Context, in UpdateTaskInput) (map[string]interface{}, error) {
			payload, err := toPayload(in, "task_id")
			if err != nil {
				return nil, err
			}
			task, err := backend.UpdateTask(ctx, *in.TaskID, payload)
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{
				"task":    task,
				"message": "Task updated successfully",
			}, nil
		},
	)
}

type DeleteTaskInput struct {
	TaskID *int `json:"task_id" jsonschema:"ID of the task to delete"`
}

func (i DeleteTaskInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.TaskID, validation.NotNil),
	)
}

type DeleteTaskOutput struct {
	TaskID  *int    `json:"task_id"`
	Message *string `json:"message"`
}

func (o DeleteTaskOutput) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.TaskID, validation.NotNil),
		validation.Field(&o.Message, validation.NotNil),
	)
}

// NewDeleteTaskTool deletes a ticket. Leantime's response body is discarded;
// the output echoes the deleted ID.
func NewDeleteTaskTool(backend Backend) Tool {
	return newTool[DeleteTaskInput, DeleteTaskOutput](
		"delete_task",
		"Deletes a task in Leantime",
		func(ctx context.Context, in DeleteTaskInput) (map[string]interface{}, error) {
			if _, err := backend.DeleteTask(ctx, *in.TaskID); err != nil {
				return nil, err
			}
			return map[string]interface{}{
				"task_id": *in.TaskID,
				"message": "Task deleted successfully",
			}, nil
		},
	)
}
