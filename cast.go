package complety

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// Caster is the boundary to the type-casting/constraint engine. Cast coerces
// a raw JSON value into the descriptor's kind; ApplyConstraints is the second
// validation pass over the already-cast value (ranges, enums, required
// sub-fields). Implementations return plain errors; complety wraps failures
// into model-facing ValidationErrors at the completion tool.
type Caster interface {
	Cast(d TypeDescriptor, raw any, c Constraints) (any, error)
	ApplyConstraints(d TypeDescriptor, value any, c Constraints) (any, error)
}

// SchemaCaster is the default Caster: structural kind coercion in Cast, and
// JSON Schema validation of descriptor plus constraints in ApplyConstraints.
type SchemaCaster struct{}

// Cast coerces raw into the Go value matching d's kind, recursing into array
// elements and declared object fields. Undeclared object fields are carried
// through untouched. Constraints are not consulted here.
func (SchemaCaster) Cast(d TypeDescriptor, raw any, _ Constraints) (any, error) {
	return castValue(d, raw, resultProperty)
}

// ApplyConstraints validates value against the schema derived from d and c.
// The value is returned unchanged on success.
func (SchemaCaster) ApplyConstraints(d TypeDescriptor, value any, c Constraints) (any, error) {
	sch, err := compileSchema(schemaFor(d, c))
	if err != nil {
		return nil, err
	}
	inst, err := jsonRoundTrip(value)
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(inst); err != nil {
		return nil, err
	}
	return value, nil
}

var _ Caster = SchemaCaster{}

// compileSchema compiles a raw schema map into a validator. The map is not mutated.
func compileSchema(schemaMap map[string]any) (*jsonschema.Schema, error) {
	doc, err := jsonRoundTrip(schemaMap)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("expected.json", doc); err != nil {
		return nil, err
	}
	return compiler.Compile("expected.json")
}

// jsonRoundTrip re-decodes v through jsonschema.UnmarshalJSON so numbers get
// the representation the validator expects.
func jsonRoundTrip(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(data))
}

func castValue(d TypeDescriptor, raw any, path string) (any, error) {
	if raw == nil {
		return nil, fmt.Errorf("%s: value is required", path)
	}
	switch d.Kind {
	case KindAny:
		return raw, nil
	case KindString:
		s, ok := raw.(string)
		if !ok {
			return nil, castError(path, d.Kind, raw)
		}
		return s, nil
	case KindBoolean:
		b, ok := raw.(bool)
		if !ok {
			return nil, castError(path, d.Kind, raw)
		}
		return b, nil
	case KindInteger:
		return castInteger(raw, path)
	case KindNumber:
		return castNumber(raw, path)
	case KindArray:
		items, ok := raw.([]any)
		if !ok {
			return nil, castError(path, d.Kind, raw)
		}
		if d.Elem == nil {
			return items, nil
		}
		out := make([]any, len(items))
		for i, item := range items {
			v, err := castValue(*d.Elem, item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case KindObject:
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, castError(path, d.Kind, raw)
		}
		out := make(map[string]any, len(obj))
		for key, val := range obj {
			field, declared := d.Fields[key]
			if !declared {
				out[key] = val
				continue
			}
			v, err := castValue(field, val, path+"."+key)
			if err != nil {
				return nil, err
			}
			out[key] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s: unsupported kind %q", path, d.Kind)
	}
}

func castInteger(raw any, path string) (any, error) {
	switch n := raw.(type) {
	case float64:
		if n != math.Trunc(n) {
			return nil, fmt.Errorf("%s: expected integer, got fractional number %v", path, n)
		}
		return int64(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return nil, fmt.Errorf("%s: expected integer, got %v", path, n)
		}
		return i, nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	default:
		return nil, castError(path, KindInteger, raw)
	}
}

func castNumber(raw any, path string) (any, error) {
	switch n := raw.(type) {
	case float64:
		return n, nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return nil, fmt.Errorf("%s: expected number, got %v", path, n)
		}
		return f, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return nil, castError(path, KindNumber, raw)
	}
}

func castError(path string, want Kind, raw any) error {
	return fmt.Errorf("%s: expected %s, got %T", path, want, raw)
}
