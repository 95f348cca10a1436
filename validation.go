package complety

import (
	"reflect"
)

// Validatable is implemented by result structs that need custom business
// validation beyond the schema. CompleteAs calls it on the decoded value.
type Validatable interface {
	Validate() error
}

// runValidatable runs Validatable.Validate() on v; if v does not implement
// Validatable, it tries &v for value types (pointer receiver). Never calls
// Validate twice for the same receiver.
func runValidatable[T any](v T) error {
	if val, ok := any(v).(Validatable); ok {
		return val.Validate()
	}
	typ := reflect.TypeOf(v)
	if typ == nil || typ.Kind() == reflect.Pointer {
		return nil
	}
	if val, ok := any(&v).(Validatable); ok {
		return val.Validate()
	}
	return nil
}
