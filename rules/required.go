package rules

import (
	"fmt"
	"reflect"
)

// Required asserts that a value is present: non-nil, and for strings
// non-empty unless AllowEmptyStrings is set.
type Required struct {
	// AllowEmptyStrings accepts "" as a present value.
	AllowEmptyStrings bool
}

// Name implements Rule.
func (Required) Name() string { return "required" }

// Required marks this as a presence rule, see RequiredRule.
func (Required) Required() {}

// Check implements Rule.
func (r Required) Check(t Target) (Outcome, error) {
	if isNilValue(t.Model) {
		return Fail(""), nil
	}
	if s, ok := t.Model.(string); ok && s == "" && !r.AllowEmptyStrings {
		return Fail(""), nil
	}
	return Pass(), nil
}

// FormatMessage implements MessageFormatter.
func (Required) FormatMessage(displayName string) string {
	return fmt.Sprintf("The %s field is required.", displayName)
}

// isNilValue reports whether v is nil or a typed nil of a nilable kind.
func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
