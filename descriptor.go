package complety

import (
	"encoding/json"
	"fmt"
	"maps"
	"reflect"

	"github.com/invopop/jsonschema"
)

// Kind is the JSON-level kind of an expected value.
type Kind string

// Supported kinds. KindAny accepts any shape; constraints may still apply.
const (
	KindAny     Kind = ""
	KindString  Kind = "string"
	KindBoolean Kind = "boolean"
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
)

// TypeDescriptor describes the shape of the expected result. It is plain data
// so tool definitions stay inspectable and the validation handler can be unit
// tested without a live session.
type TypeDescriptor struct {
	Kind Kind
	// Elem is the element type for KindArray.
	Elem *TypeDescriptor
	// Fields are the declared properties for KindObject. Undeclared fields
	// pass casting; constraints decide whether they are acceptable.
	Fields map[string]TypeDescriptor
}

// Constraints refine a TypeDescriptor beyond its kind. Keys are JSON Schema
// keywords (minimum, maxLength, enum, required, ...) merged into the
// descriptor's structural schema.
type Constraints map[string]any

// Expectation bundles the expected result type descriptor, its constraints,
// and the JSON Schema representation shown to the model.
type Expectation struct {
	Descriptor  TypeDescriptor
	Constraints Constraints
	Schema      map[string]any
}

// NewExpectation builds an Expectation from a descriptor and constraints,
// deriving the JSON Schema from both.
func NewExpectation(d TypeDescriptor, c Constraints) Expectation {
	return Expectation{Descriptor: d, Constraints: c, Schema: schemaFor(d, c)}
}

// Expect reflects the Go type T into an Expectation using its json and
// jsonschema struct tags (e.g. `jsonschema:"minimum=0"`). The extra
// constraints c, if any, are merged into the top level of the generated
// schema. Returns an error if T cannot be reflected into a schema.
func Expect[T any](c Constraints) (Expectation, error) {
	r := &jsonschema.Reflector{DoNotReference: true, Anonymous: true}
	t := reflect.TypeOf((*T)(nil)).Elem()
	schema := r.ReflectFromType(t)
	if schema == nil {
		return Expectation{}, fmt.Errorf("schema reflection returned nil for %v", t)
	}
	data, err := json.Marshal(schema)
	if err != nil {
		return Expectation{}, err
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(data, &schemaMap); err != nil {
		return Expectation{}, err
	}
	stripSchemaIDs(schemaMap)
	maps.Copy(schemaMap, c)
	return Expectation{
		Descriptor:  descriptorFromSchema(schemaMap),
		Constraints: c,
		Schema:      schemaMap,
	}, nil
}

// schemaFor merges the descriptor's structural schema with constraint keywords.
// Constraints win on key collisions.
func schemaFor(d TypeDescriptor, c Constraints) map[string]any {
	m := d.schema()
	maps.Copy(m, c)
	return m
}

func (d TypeDescriptor) schema() map[string]any {
	m := map[string]any{}
	if d.Kind != KindAny {
		m["type"] = string(d.Kind)
	}
	if d.Kind == KindArray && d.Elem != nil {
		m["items"] = d.Elem.schema()
	}
	if d.Kind == KindObject && len(d.Fields) > 0 {
		props := make(map[string]any, len(d.Fields))
		for name, f := range d.Fields {
			props[name] = f.schema()
		}
		m["properties"] = props
	}
	return m
}

// descriptorFromSchema derives a TypeDescriptor from a JSON Schema map.
// Unknown or missing "type" maps to KindAny.
func descriptorFromSchema(m map[string]any) TypeDescriptor {
	var d TypeDescriptor
	typ, _ := m["type"].(string)
	switch Kind(typ) {
	case KindString, KindBoolean, KindInteger, KindNumber:
		d.Kind = Kind(typ)
	case KindArray:
		d.Kind = KindArray
		if items, ok := m["items"].(map[string]any); ok {
			elem := descriptorFromSchema(items)
			d.Elem = &elem
		}
	case KindObject:
		d.Kind = KindObject
		if props, ok := m["properties"].(map[string]any); ok && len(props) > 0 {
			d.Fields = make(map[string]TypeDescriptor, len(props))
			for name, val := range props {
				if sub, ok := val.(map[string]any); ok {
					d.Fields[name] = descriptorFromSchema(sub)
				}
			}
		}
	default:
		d.Kind = KindAny
	}
	return d
}
