package tools

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// Descriptor is the public metadata of a registered tool.
type Descriptor struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema
}

// Registry maps tool names to constructors. It is built once at startup and
// never mutated afterwards, so it is safe for concurrent use without locking.
type Registry struct {
	order        []string
	constructors map[string]Constructor
	descriptors  map[string]Descriptor
}

// NewRegistry builds a registry from constructors. Listing order follows the
// argument order. Duplicate or empty names are rejected.
func NewRegistry(constructors ...Constructor) (*Registry, error) {
	r := &Registry{
		order:        make([]string, 0, len(constructors)),
		constructors: make(map[string]Constructor, len(constructors)),
		descriptors:  make(map[string]Descriptor, len(constructors)),
	}

	for _, construct := range constructors {
		probe := construct(nil)
		name := probe.Name()
		if name == "" {
			return nil, fmt.Errorf("tool registered without a name")
		}
		if _, exists := r.constructors[name]; exists {
			return nil, fmt.Errorf("duplicate tool name: %s", name)
		}

		r.order = append(r.order, name)
		r.constructors[name] = construct
		r.descriptors[name] = Descriptor{
			Name:        name,
			Description: probe.Description(),
			InputSchema: probe.InputSchema(),
		}
	}

	return r, nil
}

// DefaultConstructors returns every Leantime tool in listing order.
func DefaultConstructors() []Constructor {
	return []Constructor{
		// Projects
		NewListProjectsTool,
		NewGetProjectTool,
		NewCreateProjectTool,
		NewUpdateProjectTool,

		// Tasks
		NewListTasksTool,
		NewGetTaskTool,
		NewCreateTaskTool,
		NewUpdateTaskTool,
		NewDeleteTaskTool,

		// Milestones
		NewListMilestonesTool,

		// Users
		NewListUsersTool,
		NewGetUserTool,

		// Timesheets
		NewListTimesheetsTool,
		NewCreateTimesheetTool,
	}
}

// DefaultRegistry builds the registry holding every Leantime tool.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultConstructors()...)
	if err != nil {
		// The default set is static; a failure here is a programming error.
		panic(err)
	}
	return r
}

// Lookup finds a constructor by exact name.
func (r *Registry) Lookup(name string) (Constructor, bool) {
	construct, ok := r.constructors[name]
	return construct, ok
}

// Descriptors returns tool metadata in registration order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, len(r.order))
	for i, name := range r.order {
		out[i] = r.descriptors[name]
	}
	return out
}

// Names returns registered tool names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
