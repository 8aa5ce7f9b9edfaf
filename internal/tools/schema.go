package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/jsonschema-go/jsonschema"

	"leantime-mcp/internal/domain"
)

// decode converts an untyped mapping into T and runs T's validation rules.
// Values are first coerced toward the declared field types ("7" for an int,
// "2.5" for a float); unknown keys are ignored. Values that cannot be coerced
// are dropped and reported together with every failed rule in one
// *domain.ValidationError.
func decode[T any](raw map[string]interface{}, stage domain.ValidationStage) (T, error) {
	var value T
	if raw == nil {
		raw = map[string]interface{}{}
	}

	tree, err := normalize(raw)
	if err != nil {
		return value, &domain.ValidationError{Stage: stage, Message: err.Error()}
	}

	c := &coercer{}
	coerced, _ := c.coerce(tree, reflect.TypeOf(value), "")

	data, err := json.Marshal(coerced)
	if err != nil {
		return value, &domain.ValidationError{Stage: stage, Message: err.Error()}
	}
	if err := json.Unmarshal(data, &value); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return value, &domain.ValidationError{Stage: stage, Message: err.Error()}
		}
		field := typeErr.Field
		if field == "" {
			field = "(root)"
		}
		c.reject(field, typeErr.Type.String(), typeErr.Value)
	}

	fields := c.fields
	messages := c.messages
	if v, ok := any(value).(validation.Validatable); ok {
		if err := v.Validate(); err != nil {
			collectFields("", err, &fields)
			messages = append(messages, err.Error())
		}
	}
	if len(fields) == 0 && len(messages) == 0 {
		return value, nil
	}

	return value, &domain.ValidationError{
		Stage:   stage,
		Fields:  uniqueSorted(fields),
		Message: strings.Join(messages, "; "),
	}
}

// normalize round-trips raw through JSON so the walk only sees
// map[string]interface{}, []interface{}, float64, string, bool and nil.
func normalize(raw map[string]interface{}) (interface{}, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var tree interface{}
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// coercer rewrites a decoded JSON tree to match a Go type, recording the paths
// of values it had to drop.
type coercer struct {
	fields   []string
	messages []string
}

func (c *coercer) reject(path, want string, got interface{}) {
	if path == "" {
		path = "(root)"
	}
	c.fields = append(c.fields, path)
	c.messages = append(c.messages, fmt.Sprintf("%s: expected %s, got %s", path, want, jsonKind(got)))
}

// coerce returns v converted toward t. It reports false when v cannot be
// converted and the caller should drop it. Bad values nested in objects and
// arrays are dropped in place.
func (c *coercer) coerce(v interface{}, t reflect.Type, path string) (interface{}, bool) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if v == nil {
		return nil, true
	}

	switch t.Kind() {
	case reflect.Struct:
		obj, ok := v.(map[string]interface{})
		if !ok {
			c.reject(path, "object", v)
			return nil, false
		}
		out := make(map[string]interface{}, len(obj))
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := jsonName(f)
			if name == "" {
				continue
			}
			fv, present := obj[name]
			if !present {
				continue
			}
			if cv, ok := c.coerce(fv, f.Type, joinPath(path, name)); ok {
				out[name] = cv
			}
		}
		return out, true

	case reflect.Slice, reflect.Array:
		items, ok := v.([]interface{})
		if !ok {
			c.reject(path, "array", v)
			return nil, false
		}
		out := make([]interface{}, len(items))
		for i, item := range items {
			out[i], _ = c.coerce(item, t.Elem(), joinPath(path, strconv.Itoa(i)))
		}
		return out, true

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		switch n := v.(type) {
		case float64:
			if n == math.Trunc(n) && !math.IsInf(n, 0) {
				return int64(n), true
			}
		case string:
			if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
				return i, true
			}
		}
		c.reject(path, "int", v)
		return nil, false

	case reflect.Float32, reflect.Float64:
		switch n := v.(type) {
		case float64:
			return n, true
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
			if err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
				return f, true
			}
		}
		c.reject(path, "float", v)
		return nil, false

	case reflect.Bool:
		switch b := v.(type) {
		case bool:
			return b, true
		case string:
			if parsed, err := strconv.ParseBool(strings.TrimSpace(b)); err == nil {
				return parsed, true
			}
		}
		c.reject(path, "bool", v)
		return nil, false

	case reflect.String:
		if _, ok := v.(string); !ok {
			c.reject(path, "string", v)
			return nil, false
		}
		return v, true
	}

	return v, true
}

func jsonName(f reflect.StructField) string {
	if !f.IsExported() {
		return ""
	}
	tag := f.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name
	}
	return f.Name
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func jsonKind(v interface{}) string {
	switch v.(type) {
	case map[string]interface{}:
		return "object"
	case []interface{}:
		return "array"
	case float64:
		return "number"
	case string:
		return "string"
	case bool:
		return "bool"
	}
	return fmt.Sprintf("%T", v)
}

func uniqueSorted(fields []string) []string {
	sort.Strings(fields)
	out := fields[:0]
	for i, f := range fields {
		if i > 0 && f == fields[i-1] {
			continue
		}
		out = append(out, f)
	}
	return out
}

// collectFields flattens nested ozzo errors into dotted field paths
// ("projects.1.name").
func collectFields(prefix string, err error, fields *[]string) {
	var errs validation.Errors
	if errors.As(err, &errs) {
		for key, nested := range errs {
			path := key
			if prefix != "" {
				path = prefix + "." + key
			}
			collectFields(path, nested, fields)
		}
		return
	}
	if prefix != "" {
		*fields = append(*fields, prefix)
	}
}

// encode turns a validated value back into a plain mapping holding only the
// fields its type declares.
func encode(value interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode output: %w", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to encode output: %w", err)
	}
	return out, nil
}

// toPayload converts a tool input into a request body, dropping the given keys.
func toPayload(value interface{}, drop ...string) (map[string]interface{}, error) {
	payload, err := encode(value)
	if err != nil {
		return nil, err
	}
	for _, key := range drop {
		delete(payload, key)
	}
	return payload, nil
}

// schemaFor derives the JSON Schema advertised for I. Extra properties stay
// allowed since decode ignores them.
func schemaFor[I any]() *jsonschema.Schema {
	schema, err := jsonschema.For[I](nil)
	if err != nil {
		return &jsonschema.Schema{Type: "object"}
	}
	schema.AdditionalProperties = nil
	return schema
}

// fieldList renders field names for log lines.
func fieldList(fields []string) string {
	return strings.Join(fields, ",")
}
