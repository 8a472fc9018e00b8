package rules

import "fmt"

// Numeric constrains the numeric types usable with Range.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Range asserts that a numeric value lies within [Min, Max].
// Nil values pass; presence is the Required rule's concern.
type Range[T Numeric] struct {
	Min T
	Max T
}

// Name implements Rule.
func (Range[T]) Name() string { return "range" }

// Check implements Rule.
func (r Range[T]) Check(t Target) (Outcome, error) {
	if t.Model == nil {
		return Pass(), nil
	}
	v, ok := t.Model.(T)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: range on %T", ErrTypeMismatch, t.Model)
	}
	if v < r.Min || v > r.Max {
		return Fail(""), nil
	}
	return Pass(), nil
}

// FormatMessage implements MessageFormatter.
func (r Range[T]) FormatMessage(displayName string) string {
	return fmt.Sprintf("The %s field must be between %v and %v.", displayName, r.Min, r.Max)
}
