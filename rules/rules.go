// Package rules defines the validation rule abstraction shared by the flat
// facade and the graph visitor: a named check attached to a type or member,
// evaluated synchronously, asynchronously, or asynchronously only.
package rules

import (
	"context"
	"fmt"
)

// Target carries the value under validation and its surroundings into a
// rule check.
type Target struct {
	// Container is the object owning the value, if any.
	Container any

	// Model is the value being validated.
	Model any

	// MemberName is the member the value was read from, empty for
	// type-level or bare-value checks.
	MemberName string

	// DisplayName is the human-readable name used in default messages.
	DisplayName string
}

// Display returns the best available display name for the target.
func (t Target) Display() string {
	if t.DisplayName != "" {
		return t.DisplayName
	}
	if t.MemberName != "" {
		return t.MemberName
	}
	return "value"
}

// Outcome is the result of a single rule check: success, or failure
// carrying a message and zero or more target member names.
type Outcome struct {
	// OK is true when the check passed.
	OK bool

	// Message describes the failure. Empty messages are replaced with a
	// default derived from the target's display name, see Result.
	Message string

	// Members names the members the failure applies to, relative to the
	// validated node. Empty means the node itself.
	Members []string
}

// Pass returns a successful outcome.
func Pass() Outcome {
	return Outcome{OK: true}
}

// Fail returns a failed outcome with the given message and target members.
func Fail(message string, members ...string) Outcome {
	return Outcome{Message: message, Members: members}
}

// Rule is a named validation check with a synchronous entry point.
//
// Callers are expected to prefer the asynchronous entry point via Async;
// the synchronous one exists to satisfy legacy rule-provider ordering and
// fails fast on async-only rules.
type Rule interface {
	// Name identifies the rule, e.g. "required".
	Name() string

	// Check evaluates the rule synchronously.
	Check(t Target) (Outcome, error)
}

// AsyncRule is a Rule that can be evaluated asynchronously, observing ctx
// at every suspension point.
type AsyncRule interface {
	Rule

	// CheckContext evaluates the rule, honoring cancellation.
	CheckContext(ctx context.Context, t Target) (Outcome, error)
}

// RequiredRule marks rules asserting presence of a value. The flat facade
// evaluates a required rule before all others and stops on its failure.
type RequiredRule interface {
	Rule

	// Required is a marker method.
	Required()
}

// AsyncOnly is embedded by rules that must only be evaluated
// asynchronously. Its synchronous entry point fails immediately with
// ErrSyncCheck.
type AsyncOnly struct{}

// Check always fails with ErrSyncCheck.
func (AsyncOnly) Check(Target) (Outcome, error) {
	return Outcome{}, ErrSyncCheck
}

// Async normalizes a Rule to its asynchronous capability. Rules already
// implementing AsyncRule are returned as-is; synchronous rules are wrapped
// in an adapter that checks cancellation before delegating. Adaptation is
// done once, when rule lists are built, not per check.
func Async(r Rule) AsyncRule {
	if ar, ok := r.(AsyncRule); ok {
		return ar
	}
	return syncAdapter{r}
}

type syncAdapter struct {
	Rule
}

func (a syncAdapter) CheckContext(ctx context.Context, t Target) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	return a.Rule.Check(t)
}

// Unwrap returns the adapted synchronous rule.
func (a syncAdapter) Unwrap() Rule {
	return a.Rule
}

// IsRequired reports whether r, possibly behind an Async adapter, is a
// presence rule.
func IsRequired(r Rule) bool {
	for r != nil {
		if _, ok := r.(RequiredRule); ok {
			return true
		}
		u, ok := r.(interface{ Unwrap() Rule })
		if !ok {
			return false
		}
		r = u.Unwrap()
	}
	return false
}

// MessageFormatter is implemented by rules that format their own default
// failure message from the target's display name.
type MessageFormatter interface {
	FormatMessage(displayName string) string
}

// Result runs the rule's asynchronous check and guarantees that a failed
// outcome carries a message: failures lacking one get a default derived
// from the rule and the target's display name.
func Result(ctx context.Context, r Rule, t Target) (Outcome, error) {
	o, err := Async(r).CheckContext(ctx, t)
	if err != nil {
		return Outcome{}, err
	}
	if !o.OK && o.Message == "" {
		o.Message = defaultMessage(r, t)
	}
	return o, nil
}

func defaultMessage(r Rule, t Target) string {
	for r != nil {
		if f, ok := r.(MessageFormatter); ok {
			return f.FormatMessage(t.Display())
		}
		u, ok := r.(interface{ Unwrap() Rule })
		if !ok {
			break
		}
		r = u.Unwrap()
	}
	return fmt.Sprintf("The %s field is not valid.", t.Display())
}

// Validate runs Result and converts a failed outcome into an *Error
// carrying the outcome, the rule name, and the offending value.
func Validate(ctx context.Context, r Rule, t Target) error {
	o, err := Result(ctx, r, t)
	if err != nil {
		return err
	}
	if o.OK {
		return nil
	}
	return &Error{RuleName: r.Name(), Value: t.Model, Outcome: o}
}

// Error is a raised validation failure.
type Error struct {
	// RuleName is the name of the failing rule.
	RuleName string

	// Value is the offending value.
	Value any

	// Outcome is the failed outcome, message always present.
	Outcome Outcome
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("validation failed (%s): %s", e.RuleName, e.Outcome.Message)
}
