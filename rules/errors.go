package rules

import "errors"

// Usage errors. These indicate caller mistakes, propagate immediately, and
// are never recorded in a state dictionary.
var (
	// ErrSyncCheck is returned when an async-only rule is invoked through
	// its synchronous entry point.
	ErrSyncCheck = errors.New("rules: asynchronous rule invoked synchronously")

	// ErrTypeMismatch is returned when a rule is applied to a value of a
	// type it cannot check.
	ErrTypeMismatch = errors.New("rules: rule applied to incompatible value type")
)
