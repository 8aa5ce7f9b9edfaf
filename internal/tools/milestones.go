package tools

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"leantime-mcp/internal/domain/models"
)

type ListMilestonesInput struct {
	ProjectID *int `json:"project_id,omitempty" jsonschema:"ID of the project to filter milestones by"`
}

type ListMilestonesOutput struct {
	Milestones []models.Milestone `json:"milestones"`
}

func (o ListMilestonesOutput) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Milestones, validation.NotNil),
	)
}

func NewListMilestonesTool(backend Backend) Tool {
	return newTool[ListMilestonesInput, ListMilestonesOutput](
		"list_milestones",
		"Lists milestones in Leantime, optionally filtered by project",
		func(ctx context.Context, in ListMilestonesInput) (map[string]interface{}, error) {
			milestones, err := backend.GetMilestones(ctx, in.ProjectID)
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{"milestones": milestones}, nil
		},
	)
}
