package tools

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"leantime-mcp/internal/domain/models"
)

type ListUsersInput struct{}

type ListUsersOutput struct {
	Users []models.User `json:"users"`
}

func (o ListUsersOutput) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Users, validation.NotNil),
	)
}

func NewListUsersTool(backend Backend) Tool {
	return newTool[ListUsersInput, ListUsersOutput](
		"list_users",
		"Lists all users in Leantime",
		func(ctx context.Context, _ ListUsersInput) (map[string]interface{}, error) {
			users, err := backend.GetUsers(ctx)
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{"users": users}, nil
		},
	)
}

type GetUserInput struct {
	UserID *int `json:"user_id" jsonschema:"ID of the user to retrieve"`
}

func (i GetUserInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.UserID, validation.NotNil),
	)
}

type GetUserOutput struct {
	User *models.User `json:"user"`
}

func (o GetUserOutput) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.User, validation.NotNil),
	)
}

func NewGetUserTool(backend Backend) Tool {
	return newTool[GetUserInput, GetUserOutput](
		"get_user",
		"Gets details of a specific user in Leantime",
		func(ctx context.Context, in GetUserInput) (map[string]interface{}, error) {
			user, err := backend.GetUser(ctx, *in.UserID)
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{"user": user}, nil
		},
	)
}
