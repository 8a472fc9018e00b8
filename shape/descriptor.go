// Package shape defines the descriptors the validation engine consumes
// from the model-binding collaborator: per-node flags, ordered members
// with accessors and inclusion filters, collection element shapes, and
// constructor-parameter/property mappings.
//
// How descriptors are produced (reflection, schema generation, code
// generation) is outside the engine; the engine only reads them.
package shape

import "github.com/gomodel/validator/rules"

// Descriptor describes the shape of one node type in a model graph.
type Descriptor struct {
	// Name is the natural type or member name, e.g. "Order" or "name".
	Name string

	// DisplayName overrides the human-readable name used in default
	// messages. Empty means derive one from Name.
	DisplayName string

	// IsComplex marks object nodes whose members are enumerated by the
	// object traversal strategy.
	IsComplex bool

	// IsEnumerable marks collection nodes whose elements are enumerated
	// by the collection traversal strategy.
	IsEnumerable bool

	// HasValidators is true when this shape or anything reachable under
	// it carries rules. When false the visitor short-circuits the whole
	// subtree as valid.
	HasValidators bool

	// IsRequired marks members that must be present.
	IsRequired bool

	// ValidateChildren is true when children of this node should be
	// enumerated and validated.
	ValidateChildren bool

	// Element is the shape of collection elements, set when IsEnumerable.
	Element *Descriptor

	// Members are the node's settable properties, in declared order.
	Members []Member

	// ConstructorParams are bound constructor parameters, in declared
	// order. They are enumerated before Members.
	ConstructorParams []Member

	// ParameterBoundProperties maps a constructor parameter name to the
	// property it populates, so each logical member is validated once.
	ParameterBoundProperties map[string]string

	// Rules are the checks attached to this type or member.
	Rules []rules.Rule

	// TypeRules are cross-field checks attached to the type itself,
	// evaluated by the flat facade only after all properties pass.
	TypeRules []rules.Rule
}

// Member describes one member of a complex node.
type Member struct {
	// Name is the natural member name.
	Name string

	// OverrideName, when set, replaces Name in child path keys.
	OverrideName string

	// Shape describes the member's value.
	Shape *Descriptor

	// Get reads the member's value from a non-nil parent model. It is
	// evaluated lazily, never for a nil parent.
	Get func(parent any) any

	// Filter, when set, decides member inclusion per parent instance.
	// Rejected members are marked Skipped instead of validated.
	Filter func(parent any) bool
}

// KeyName returns the name used in path keys: the override name when set,
// otherwise the natural member name.
func (m Member) KeyName() string {
	if m.OverrideName != "" {
		return m.OverrideName
	}
	return m.Name
}

// Display returns the descriptor's display name, deriving one from Name
// when no explicit DisplayName is set.
func (d *Descriptor) Display() string {
	if d.DisplayName != "" {
		return d.DisplayName
	}
	return Humanize(d.Name)
}

// ComputeHasValidators walks the descriptor tree and fills in
// HasValidators and ValidateChildren: a shape has validators when it
// carries rules, is required, or any reachable member or element shape has
// validators. Descriptor graphs may be cyclic; visited shapes are assumed
// validator-free until proven otherwise, matching a lazily discovered
// fixed point.
func (d *Descriptor) ComputeHasValidators() {
	computeHasValidators(d, make(map[*Descriptor]bool))
}

func computeHasValidators(d *Descriptor, seen map[*Descriptor]bool) bool {
	if d == nil {
		return false
	}
	if _, ok := seen[d]; ok {
		return seen[d]
	}
	seen[d] = false

	has := len(d.Rules) > 0 || len(d.TypeRules) > 0 || d.IsRequired
	if computeHasValidators(d.Element, seen) {
		has = true
	}
	for _, m := range d.ConstructorParams {
		if computeHasValidators(m.Shape, seen) {
			has = true
		}
	}
	for _, m := range d.Members {
		if computeHasValidators(m.Shape, seen) {
			has = true
		}
	}

	d.HasValidators = has
	d.ValidateChildren = d.IsComplex || d.IsEnumerable
	seen[d] = has
	return has
}
