package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"

	"leantime-mcp/internal/domain"
)

// Tool is a named, independently validated operation over the Leantime API.
// Run is the only entry point callers use; it validates the raw input, performs
// exactly one backend call and validates the shaped result before returning it.
type Tool interface {
	Name() string
	Description() string
	// InputSchema describes the accepted input as JSON Schema (used by MCP clients).
	InputSchema() *jsonschema.Schema
	Run(ctx context.Context, input map[string]interface{}) (map[string]interface{}, error)
}

// Constructor binds a tool to a backend. Constructors must not call the backend;
// the registry invokes them with a nil backend to read names and descriptions.
type Constructor func(backend Backend) Tool

// executeFunc is the tool-specific step of the lifecycle. It returns a raw mapping
// shaped for the tool's output schema.
type executeFunc[I any] func(ctx context.Context, input I) (map[string]interface{}, error)

// typedTool implements Tool for one input type I and output type O.
type typedTool[I, O any] struct {
	name        string
	description string
	execute     executeFunc[I]
}

func newTool[I, O any](name, description string, execute executeFunc[I]) *typedTool[I, O] {
	return &typedTool[I, O]{
		name:        name,
		description: description,
		execute:     execute,
	}
}

func (t *typedTool[I, O]) Name() string        { return t.name }
func (t *typedTool[I, O]) Description() string { return t.description }

func (t *typedTool[I, O]) InputSchema() *jsonschema.Schema {
	return schemaFor[I]()
}

// Run implements Tool: validate input, execute, validate output.
func (t *typedTool[I, O]) Run(ctx context.Context, input map[string]interface{}) (map[string]interface{}, error) {
	in, err := decode[I](input, domain.StageInput)
	if err != nil {
		return nil, err
	}

	result, err := t.execute(ctx, in)
	if err != nil {
		return nil, err
	}

	out, err := decode[O](result, domain.StageOutput)
	if err != nil {
		return nil, err
	}

	return encode(out)
}
