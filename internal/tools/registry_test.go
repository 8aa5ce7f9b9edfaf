package tools

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
)

func TestDefaultRegistry_Names(t *testing.T) {
	want := []string{
		"list_projects",
		"get_project",
		"create_project",
		"update_project",
		"list_tasks",
		"get_task",
		"create_task",
		"update_task",
		"delete_task",
		"list_milestones",
		"list_users",
		"get_user",
		"list_timesheets",
		"create_timesheet",
	}

	registry := DefaultRegistry()
	if got := registry.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	for _, name := range want {
		construct, ok := registry.Lookup(name)
		if !ok {
			t.Errorf("Lookup(%q) failed", name)
			continue
		}
		if got := construct(nil).Name(); got != name {
			t.Errorf("constructor for %q builds tool named %q", name, got)
		}
	}
}

func TestRegistry_DescriptorsMatchTools(t *testing.T) {
	registry := DefaultRegistry()
	descriptors := registry.Descriptors()
	if len(descriptors) != len(registry.Names()) {
		t.Fatalf("got %d descriptors for %d tools", len(descriptors), len(registry.Names()))
	}

	for _, d := range descriptors {
		if d.Description == "" {
			t.Errorf("tool %q has no description", d.Name)
		}
		if d.InputSchema == nil {
			t.Errorf("tool %q has no input schema", d.Name)
		}
	}
}

func TestRegistry_LookupIsExact(t *testing.T) {
	registry := DefaultRegistry()

	for _, name := range []string{"", "LIST_PROJECTS", "list_projects ", "list-projects", "unknown"} {
		if _, ok := registry.Lookup(name); ok {
			t.Errorf("Lookup(%q) should fail", name)
		}
	}
}

func TestNewRegistry_RejectsDuplicates(t *testing.T) {
	_, err := NewRegistry(NewListProjectsTool, NewGetTaskTool, NewListProjectsTool)
	if err == nil {
		t.Fatal("expected duplicate name error")
	}
	if !strings.Contains(err.Error(), "list_projects") {
		t.Errorf("error should name the duplicate, got %v", err)
	}
}

type namelessTool struct{}

func (namelessTool) Name() string                     { return "" }
func (namelessTool) Description() string              { return "" }
func (namelessTool) InputSchema() *jsonschema.Schema { return nil }
func (namelessTool) Run(context.Context, map[string]interface{}) (map[string]interface{}, error) {
	return nil, nil
}

func TestNewRegistry_RejectsEmptyName(t *testing.T) {
	_, err := NewRegistry(func(Backend) Tool { return namelessTool{} })
	if err == nil {
		t.Fatal("expected error for a tool without a name")
	}
}

func TestNewRegistry_KeepsArgumentOrder(t *testing.T) {
	registry, err := NewRegistry(NewGetUserTool, NewListProjectsTool)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	want := []string{"get_user", "list_projects"}
	if got := registry.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}
