package complety

import (
	"encoding/json"
)

// resultProperty is the single declared property of the completion tool
// parameters; its value is the model's candidate result.
const resultProperty = "result"

// AdaptResultSchema returns the schema to place under the "result" property
// of the completion tool parameters, plus the required-field list, for the
// given provider family. Families that reject strict nested schemas get an
// unconstrained object and no required fields; shape validation then happens
// only at runtime casting. Everyone else gets the desired schema verbatim
// with "result" required. Pure function, no error conditions.
func AdaptResultSchema(p Provider, desired map[string]any) (map[string]any, []string) {
	if p.RequiresRelaxedSchema() {
		return map[string]any{"type": "object"}, nil
	}
	return desired, []string{resultProperty}
}

// buildParameters assembles the completion tool parameter schema: an object
// with exactly one declared property, additionalProperties always false.
func buildParameters(resultSchema map[string]any, required []string) map[string]any {
	params := map[string]any{
		"type": "object",
		"properties": map[string]any{
			resultProperty: resultSchema,
		},
		"additionalProperties": false,
	}
	if len(required) > 0 {
		params["required"] = required
	}
	return params
}

// prettySchema renders a schema for inclusion in model-facing error text.
func prettySchema(schema map[string]any) string {
	b, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

// walkSchema recursively visits every map node in the schema tree (including $defs and definitions).
func walkSchema(schemaMap map[string]any, visit func(map[string]any)) {
	if schemaMap == nil {
		return
	}
	visit(schemaMap)
	for _, val := range schemaMap {
		switch v := val.(type) {
		case map[string]any:
			walkSchema(v, visit)
		case []any:
			for _, item := range v {
				if m2, ok := item.(map[string]any); ok {
					walkSchema(m2, visit)
				}
			}
		}
	}
}

// stripSchemaIDs removes $schema, id, and $id from a schema so resolution and
// comparison do not depend on reflector-generated identifiers.
func stripSchemaIDs(schemaMap map[string]any) {
	delete(schemaMap, "$schema")
	walkSchema(schemaMap, func(n map[string]any) {
		delete(n, "id")
		delete(n, "$id")
	})
}
