package tools

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"leantime-mcp/internal/domain/models"
)

type ListProjectsInput struct{}

type ListProjectsOutput struct {
	Projects []models.Project `json:"projects"`
}

func (o ListProjectsOutput) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Projects, validation.NotNil),
	)
}

// NewListProjectsTool lists every project visible to the configured credentials.
func NewListProjectsTool(backend Backend) Tool {
	return newTool[ListProjectsInput, ListProjectsOutput](
		"list_projects",
		"Lists all available projects in Leantime",
		func(ctx context.Context, _ ListProjectsInput) (map[string]interface{}, error) {
			projects, err := backend.GetProjects(ctx)
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{"projects": projects}, nil
		},
	)
}

type GetProjectInput struct {
	ProjectID *int `json:"project_id" jsonschema:"ID of the project to retrieve"`
}

func (i GetProjectInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.ProjectID, validation.NotNil),
	)
}

type GetProjectOutput struct {
	Project *models.Project `json:"project"`
}

func (o GetProjectOutput) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Project, validation.NotNil),
	)
}

func NewGetProjectTool(backend Backend) Tool {
	return newTool[GetProjectInput, GetProjectOutput](
		"get_project",
		"Gets details of a specific project in Leantime",
		func(ctx context.Context, in GetProjectInput) (map[string]interface{}, error) {
			project, err := backend.GetProject(ctx, *in.ProjectID)
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{"project": project}, nil
		},
	)
}

type CreateProjectInput struct {
	Name        *string `json:"name" jsonschema:"Name of the project"`
	Description *string `json:"description,omitempty" jsonschema:"Description of the project"`
	ClientID    *int    `json:"clientId,omitempty" jsonschema:"ID of the client"`
	StartDate   *string `json:"startDate,omitempty" jsonschema:"Start date of the project (YYYY-MM-DD)"`
	EndDate     *string `json:"endDate,omitempty" jsonschema:"End date of the project (YYYY-MM-DD)"`
}

func (i CreateProjectInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Name, validation.NotNil),
	)
}

type ProjectMutationOutput struct {
	Project *models.Project `json:"project"`
	Message *string         `json:"message"`
}

func (o ProjectMutationOutput) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Project, validation.NotNil),
		validation.Field(&o.Message, validation.NotNil),
	)
}

func NewCreateProjectTool(backend Backend) Tool {
	return newTool[CreateProjectInput, ProjectMutationOutput](
		"create_project",
		"Creates a new project in Leantime",
		func(ctx context.Context, in CreateProjectInput) (map[string]interface{}, error) {
			project, err := backend.CreateProject(ctx, in)
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{
				"project": project,
				"message": "Project created successfully",
			}, nil
		},
	)
}

type UpdateProjectInput struct {
	ProjectID   *int    `json:"project_id" jsonschema:"ID of the project to update"`
	Name        *string `json:"name,omitempty" jsonschema:"Name of the project"`
	Description *string `json:"description,omitempty" jsonschema:"Description of the project"`
	ClientID    *int    `json:"clientId,omitempty" jsonschema:"ID of the client"`
	State       *string `json:"state,omitempty" jsonschema:"State of the project"`
	StartDate   *string `json:"startDate,omitempty" jsonschema:"Start date of the project (YYYY-MM-DD)"`
	EndDate     *string `json:"endDate,omitempty" jsonschema:"End date of the project (YYYY-MM-DD)"`
}

func (i UpdateProjectInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.ProjectID, validation.NotNil),
	)
}

// NewUpdateProjectTool sends only the provided fields as a partial update.
func NewUpdateProjectTool(backend Backend) Tool {
	return newTool[UpdateProjectInput, ProjectMutationOutput](
		"update_project",
		"Updates an existing project in Leantime",
		func(ctx context.Context, in UpdateProjectInput) (map[string]interface{}, error) {
			payload, err := toPayload(in, "project_id")
			if err != nil {
				return nil, err
			}
			project, err := backend.UpdateProject(ctx, *in.ProjectID, payload)
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{
				"project": project,
				"message": "Project updated successfully",
			}, nil
		},
	)
}
