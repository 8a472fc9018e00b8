package rules

import "context"

// Func is an ad-hoc synchronous rule built from a function.
type Func struct {
	// RuleName identifies the rule; defaults to "func" when empty.
	RuleName string

	// Fn performs the check.
	Fn func(t Target) (Outcome, error)
}

// Name implements Rule.
func (f Func) Name() string {
	if f.RuleName == "" {
		return "func"
	}
	return f.RuleName
}

// Check implements Rule.
func (f Func) Check(t Target) (Outcome, error) {
	return f.Fn(t)
}

// AsyncFunc is an ad-hoc asynchronous-only rule built from a function,
// typically one performing an external lookup. Its synchronous entry
// point fails fast with ErrSyncCheck.
type AsyncFunc struct {
	AsyncOnly

	// RuleName identifies the rule; defaults to "async_func" when empty.
	RuleName string

	// Fn performs the check, honoring ctx.
	Fn func(ctx context.Context, t Target) (Outcome, error)
}

// Name implements Rule.
func (f AsyncFunc) Name() string {
	if f.RuleName == "" {
		return "async_func"
	}
	return f.RuleName
}

// CheckContext implements AsyncRule.
func (f AsyncFunc) CheckContext(ctx context.Context, t Target) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	return f.Fn(ctx, t)
}
