// Package flat validates a single instance, property, or bare value
// against its attached rules, without walking the object graph.
//
// The facade layers on the same Rule abstraction as the graph visitor but
// applies a different policy: a required rule is always evaluated first
// and its failure suppresses every other rule for that member, remaining
// rules run in declared order, and type-level cross-field rules only run
// once every property passed.
package flat

import (
	"context"
	"errors"

	"github.com/gomodel/validator/resolver"
	"github.com/gomodel/validator/rules"
	"github.com/gomodel/validator/shape"
)

// Usage errors. Propagated immediately, never collected as failures.
var (
	// ErrNilInstance is returned when an object or property validation
	// is started without an instance.
	ErrNilInstance = errors.New("flat: instance must not be nil")

	// ErrNilShape is returned when validation is started without a
	// shape descriptor.
	ErrNilShape = errors.New("flat: shape descriptor must not be nil")

	// ErrUnknownMember is returned when a property validation names a
	// member the shape does not declare.
	ErrUnknownMember = errors.New("flat: shape does not declare the named member")
)

// Failure is one collected validation failure.
type Failure struct {
	// Member is the member the failure applies to, empty for type-level
	// failures.
	Member string

	// Message describes the failure.
	Message string

	// Rule is the failing rule's name.
	Rule string
}

// Validator is the non-recursive validation facade. It shares the
// process-wide resolver cache and is safe for concurrent use.
type Validator struct {
	rules *resolver.Cache
}

// New creates a Validator resolving rules through cache; a nil cache gets
// a private default resolver.
func New(cache *resolver.Cache) *Validator {
	if cache == nil {
		cache = resolver.New()
	}
	return &Validator{rules: cache}
}

// TryValidateValue validates a bare value against the rules attached to d.
// With a non-nil results collection every failure is collected; with nil,
// evaluation stops at the first failure.
func (v *Validator) TryValidateValue(ctx context.Context, value any, d *shape.Descriptor, results *[]Failure) (bool, error) {
	if d == nil {
		return false, ErrNilShape
	}
	target := rules.Target{
		Model:       value,
		MemberName:  d.Name,
		DisplayName: d.Display(),
	}
	ok, _, err := v.checkRules(ctx, v.rules.Rules(d), target, results)
	return ok, err
}

// ValidateValue validates a bare value in first-error mode and returns a
// *rules.Error for the first failure found.
func (v *Validator) ValidateValue(ctx context.Context, value any, d *shape.Descriptor) error {
	if d == nil {
		return ErrNilShape
	}
	target := rules.Target{
		Model:       value,
		MemberName:  d.Name,
		DisplayName: d.Display(),
	}
	_, first, err := v.checkRules(ctx, v.rules.Rules(d), target, nil)
	if err != nil {
		return err
	}
	if first != nil {
		return first
	}
	return nil
}

// TryValidateProperty validates one named member of instance against that
// member's own rules.
func (v *Validator) TryValidateProperty(ctx context.Context, instance any, d *shape.Descriptor, member string, results *[]Failure) (bool, error) {
	m, target, err := v.propertyTarget(instance, d, member)
	if err != nil {
		return false, err
	}
	ok, _, err := v.checkRules(ctx, v.rules.Rules(m.Shape), target, results)
	return ok, err
}

// ValidateProperty validates one named member in first-error mode and
// returns a *rules.Error for the first failure found.
func (v *Validator) ValidateProperty(ctx context.Context, instance any, d *shape.Descriptor, member string) error {
	m, target, err := v.propertyTarget(instance, d, member)
	if err != nil {
		return err
	}
	_, first, err := v.checkRules(ctx, v.rules.Rules(m.Shape), target, nil)
	if err != nil {
		return err
	}
	if first != nil {
		return first
	}
	return nil
}

// TryValidateObject validates every property of instance against its own
// rules, then the type-level rules of d — the latter only when every
// property passed. With validateAllRules false only each property's
// required rule is checked.
func (v *Validator) TryValidateObject(ctx context.Context, instance any, d *shape.Descriptor, results *[]Failure, validateAllRules bool) (bool, error) {
	ok, _, err := v.validateObject(ctx, instance, d, results, validateAllRules)
	return ok, err
}

// ValidateObject validates instance in first-error mode and returns a
// *rules.Error for the first failure found.
func (v *Validator) ValidateObject(ctx context.Context, instance any, d *shape.Descriptor, validateAllRules bool) error {
	_, first, err := v.validateObject(ctx, instance, d, nil, validateAllRules)
	if err != nil {
		return err
	}
	if first != nil {
		return first
	}
	return nil
}

func (v *Validator) validateObject(ctx context.Context, instance any, d *shape.Descriptor, results *[]Failure, validateAllRules bool) (bool, *rules.Error, error) {
	if instance == nil {
		return false, nil, ErrNilInstance
	}
	if d == nil {
		return false, nil, ErrNilShape
	}

	valid := true
	var first *rules.Error

	for _, m := range logicalMembers(d) {
		if m.Shape == nil {
			continue
		}
		if m.Filter != nil && !m.Filter(instance) {
			continue
		}

		var value any
		if m.Get != nil {
			value = m.Get(instance)
		}
		target := rules.Target{
			Container:   instance,
			Model:       value,
			MemberName:  m.KeyName(),
			DisplayName: memberDisplay(m),
		}

		list := v.rules.Rules(m.Shape)
		if !validateAllRules {
			list = requiredOnly(list)
		}

		ok, memberFirst, err := v.checkRules(ctx, list, target, results)
		if err != nil {
			return false, nil, err
		}
		if !ok {
			valid = false
			if first == nil {
				first = memberFirst
			}
			if results == nil {
				// First-error mode: stop at the first failing
				// property.
				return false, first, nil
			}
		}
	}

	// Type-level cross-field rules are gated on every property passing.
	if valid {
		target := rules.Target{
			Model:       instance,
			DisplayName: d.Display(),
		}
		ok, typeFirst, err := v.checkRules(ctx, v.rules.TypeRules(d), target, results)
		if err != nil {
			return false, nil, err
		}
		if !ok {
			valid = false
			first = typeFirst
		}
	}

	return valid, first, nil
}

// checkRules evaluates list against target with Required-first ordering.
// A failing required rule is reported alone and stops evaluation in both
// modes. results == nil selects first-error mode.
func (v *Validator) checkRules(ctx context.Context, list []rules.AsyncRule, target rules.Target, results *[]Failure) (bool, *rules.Error, error) {
	requiredIdx := -1
	for i, r := range list {
		if rules.IsRequired(r) {
			requiredIdx = i
			break
		}
	}

	if requiredIdx >= 0 {
		r := list[requiredIdx]
		outcome, err := rules.Result(ctx, r, target)
		if err != nil {
			return false, nil, err
		}
		if !outcome.OK {
			record(results, target, r, outcome)
			return false, &rules.Error{RuleName: r.Name(), Value: target.Model, Outcome: outcome}, nil
		}
	}

	valid := true
	var first *rules.Error
	for i, r := range list {
		if i == requiredIdx {
			continue
		}
		outcome, err := rules.Result(ctx, r, target)
		if err != nil {
			return false, nil, err
		}
		if outcome.OK {
			continue
		}
		valid = false
		record(results, target, r, outcome)
		if first == nil {
			first = &rules.Error{RuleName: r.Name(), Value: target.Model, Outcome: outcome}
		}
		if results == nil {
			return false, first, nil
		}
	}

	return valid, first, nil
}

func (v *Validator) propertyTarget(instance any, d *shape.Descriptor, member string) (shape.Member, rules.Target, error) {
	if instance == nil {
		return shape.Member{}, rules.Target{}, ErrNilInstance
	}
	if d == nil {
		return shape.Member{}, rules.Target{}, ErrNilShape
	}
	for _, m := range logicalMembers(d) {
		if m.Name != member && m.KeyName() != member {
			continue
		}
		var value any
		if m.Get != nil {
			value = m.Get(instance)
		}
		return m, rules.Target{
			Container:   instance,
			Model:       value,
			MemberName:  m.KeyName(),
			DisplayName: memberDisplay(m),
		}, nil
	}
	return shape.Member{}, rules.Target{}, ErrUnknownMember
}

// logicalMembers enumerates bound constructor parameters then settable
// properties, skipping properties already covered by a parameter.
func logicalMembers(d *shape.Descriptor) []shape.Member {
	if len(d.ConstructorParams) == 0 {
		return d.Members
	}
	consumed := make(map[string]bool, len(d.ConstructorParams))
	members := make([]shape.Member, 0, len(d.ConstructorParams)+len(d.Members))
	for _, p := range d.ConstructorParams {
		if prop, ok := d.ParameterBoundProperties[p.Name]; ok {
			consumed[prop] = true
		}
		members = append(members, p)
	}
	for _, m := range d.Members {
		if consumed[m.Name] {
			continue
		}
		members = append(members, m)
	}
	return members
}

func memberDisplay(m shape.Member) string {
	if m.Shape != nil && m.Shape.DisplayName != "" {
		return m.Shape.DisplayName
	}
	return shape.Humanize(m.KeyName())
}

func requiredOnly(list []rules.AsyncRule) []rules.AsyncRule {
	var out []rules.AsyncRule
	for _, r := range list {
		if rules.IsRequired(r) {
			out = append(out, r)
		}
	}
	return out
}

func record(results *[]Failure, target rules.Target, r rules.Rule, outcome rules.Outcome) {
	if results == nil {
		return
	}
	if len(outcome.Members) == 0 {
		*results = append(*results, Failure{
			Member:  target.MemberName,
			Message: outcome.Message,
			Rule:    r.Name(),
		})
		return
	}
	for _, member := range outcome.Members {
		*results = append(*results, Failure{
			Member:  member,
			Message: outcome.Message,
			Rule:    r.Name(),
		})
	}
}
