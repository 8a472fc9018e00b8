package rules

import (
	"fmt"
	"regexp"
)

// StringLength asserts that a string's length lies within [Min, Max].
// Max of zero means unbounded. Nil values pass; presence is the Required
// rule's concern.
type StringLength struct {
	Min int
	Max int
}

// Name implements Rule.
func (StringLength) Name() string { return "string_length" }

// Check implements Rule.
func (r StringLength) Check(t Target) (Outcome, error) {
	if t.Model == nil {
		return Pass(), nil
	}
	s, ok := t.Model.(string)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: string_length on %T", ErrTypeMismatch, t.Model)
	}
	if len(s) < r.Min || (r.Max > 0 && len(s) > r.Max) {
		return Fail(""), nil
	}
	return Pass(), nil
}

// FormatMessage implements MessageFormatter.
func (r StringLength) FormatMessage(displayName string) string {
	if r.Max > 0 {
		return fmt.Sprintf("The %s field must be between %d and %d characters long.", displayName, r.Min, r.Max)
	}
	return fmt.Sprintf("The %s field must be at least %d characters long.", displayName, r.Min)
}

// Pattern asserts that a string matches a regular expression. Nil values
// and empty strings pass.
type Pattern struct {
	re *regexp.Regexp
}

// NewPattern creates a Pattern rule. The expression must be a valid
// regular expression; invalid expressions panic, as with regexp.MustCompile.
func NewPattern(expr string) Pattern {
	return Pattern{re: regexp.MustCompile(expr)}
}

// Name implements Rule.
func (Pattern) Name() string { return "pattern" }

// Check implements Rule.
func (p Pattern) Check(t Target) (Outcome, error) {
	if t.Model == nil {
		return Pass(), nil
	}
	s, ok := t.Model.(string)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: pattern on %T", ErrTypeMismatch, t.Model)
	}
	if s == "" || p.re.MatchString(s) {
		return Pass(), nil
	}
	return Fail(""), nil
}

// FormatMessage implements MessageFormatter.
func (p Pattern) FormatMessage(displayName string) string {
	return fmt.Sprintf("The %s field must match the pattern %q.", displayName, p.re.String())
}
