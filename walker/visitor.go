package walker

import (
	"context"
	"errors"
	"fmt"

	mv "github.com/gomodel/validator"
	"github.com/gomodel/validator/resolver"
	"github.com/gomodel/validator/rules"
	"github.com/gomodel/validator/shape"
)

// Usage errors. These indicate programmer or configuration mistakes; they
// abort the traversal immediately and are never recorded in the sink.
var (
	// ErrNilShape is returned when validation is started without a
	// shape descriptor.
	ErrNilShape = errors.New("walker: shape descriptor must not be nil")

	// ErrNilState is returned when validation is started without a
	// state dictionary.
	ErrNilState = errors.New("walker: state dictionary must not be nil")

	// ErrMaxDepthExceeded is returned when the graph is deeper than the
	// configured maximum validation depth.
	ErrMaxDepthExceeded = errors.New("walker: model graph exceeds the configured maximum validation depth")

	// ErrRecursionLimit is returned when traversal exceeds the internal
	// recursion ceiling. It exists independently of the configurable
	// maximum depth; hitting it means the graph needs an explicit depth
	// limit.
	ErrRecursionLimit = errors.New("walker: traversal recursion limit reached, configure a maximum validation depth")
)

// maxRecursionDepth guards native recursion regardless of configuration.
const maxRecursionDepth = 1000

// Default strategies, stateless and shared.
var (
	defaultObjectStrategy     Strategy = ObjectStrategy{}
	defaultCollectionStrategy Strategy = CollectionStrategy{}
)

// Config carries the visitor's per-call configuration.
type Config struct {
	// MaxDepth aborts traversal of graphs deeper than this with
	// ErrMaxDepthExceeded; zero means unbounded.
	MaxDepth int

	// ValidateParentsOnChildFailure runs a complex node's own rules
	// even when one of its children failed.
	ValidateParentsOnChildFailure bool

	// Metrics receives traversal counters when non-nil.
	Metrics *mv.Metrics
}

// GraphVisitor recursively validates one object graph. It owns its frame
// stack, current-path set, and sink exclusively: create one visitor per
// top-level validation call and do not reuse it concurrently.
type GraphVisitor struct {
	state     *mv.StateDictionary
	rules     *resolver.Cache
	overrides *StateOverrides
	cfg       Config

	// Current traversal frame. Saved and restored around every
	// recursion, including error unwinds.
	container any
	key       string
	shape     *shape.Descriptor
	model     any
	strategy  Strategy

	path       *pathSet
	visitDepth int
}

// frame is one saved traversal scope.
type frame struct {
	container any
	key       string
	shape     *shape.Descriptor
	model     any
	strategy  Strategy
}

// NewGraphVisitor creates a visitor writing into state and resolving
// rules through cache. overrides may be nil when the binder supplied no
// canonical identities.
func NewGraphVisitor(state *mv.StateDictionary, cache *resolver.Cache, overrides *StateOverrides, cfg Config) *GraphVisitor {
	if overrides == nil {
		overrides = NewStateOverrides()
	}
	return &GraphVisitor{
		state:     state,
		rules:     cache,
		overrides: overrides,
		cfg:       cfg,
		path:      newPathSet(),
	}
}

// ValidateRoot validates the graph rooted at model against d, recording
// outcomes under key. A nil model with a non-empty key short-circuits as
// valid unless alwaysValidateAtTopLevel is set, letting a missing optional
// root pass cheaply. container, when non-nil, is the object owning the
// root value.
//
// The returned bool reports validity; a non-nil error is a usage error or
// cancellation, never a rule failure.
func (v *GraphVisitor) ValidateRoot(ctx context.Context, d *shape.Descriptor, key string, model any, alwaysValidateAtTopLevel bool, container any) (bool, error) {
	if v.state == nil {
		return false, ErrNilState
	}
	if d == nil {
		return false, ErrNilShape
	}

	if model == nil && key != "" && !alwaysValidateAtTopLevel {
		// Existing non-Invalid state for the key upgrades to Valid;
		// nothing to descend into.
		v.state.MarkValidIfPresent(key)
		return true, nil
	}

	// The frame push inside visitImplementation derives each node's
	// container from the enclosing model; seed it so the root sees the
	// caller-supplied container.
	v.container = container
	v.model = container

	return v.visit(ctx, d, key, model)
}

// visit guards one node: cancellation, recursion ceiling, and cycle
// detection, then delegates to visitImplementation with the node on the
// current path.
func (v *GraphVisitor) visit(ctx context.Context, d *shape.Descriptor, key string, model any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	v.visitDepth++
	defer func() { v.visitDepth-- }()
	if v.visitDepth > maxRecursionDepth {
		return false, fmt.Errorf("%w (key %q)", ErrRecursionLimit, key)
	}

	if v.cfg.Metrics != nil {
		v.cfg.Metrics.RecordNodeVisited()
	}

	// An instance already on the active path closes a cycle; its subtree
	// is being validated further up, so treat it as valid here.
	if model != nil && v.path.contains(model) {
		if v.cfg.Metrics != nil {
			v.cfg.Metrics.RecordCycleSkipped()
		}
		return true, nil
	}

	v.path.push(model)
	defer v.path.pop(model)

	return v.visitImplementation(ctx, d, key, model)
}

func (v *GraphVisitor) visitImplementation(ctx context.Context, d *shape.Descriptor, key string, model any) (bool, error) {
	if v.cfg.MaxDepth > 0 && v.path.depth() > v.cfg.MaxDepth {
		return false, fmt.Errorf("%w: depth %d at key %q, limit %d",
			ErrMaxDepthExceeded, v.path.depth(), key, v.cfg.MaxDepth)
	}

	// A binder-supplied override is the canonical identity for this
	// instance and supersedes the path we reached it through.
	var strategy Strategy
	override, hasOverride := v.overrides.Get(model)
	if hasOverride {
		if override.Key != "" {
			key = override.Key
		}
		if override.Shape != nil {
			d = override.Shape
		}
		strategy = override.Strategy
	}

	if v.state.HasReachedMaxErrors() {
		v.suppressValidation(key)
		return false, nil
	}
	if hasOverride && override.SuppressValidation {
		// Suppression is not failure.
		v.suppressValidation(key)
		return true, nil
	}

	if !d.HasValidators && v.state.FieldState(key) != mv.StateInvalid {
		// Nothing under this subtree can ever fail.
		v.state.MarkSubtreeValid(key)
		return true, nil
	}

	saved := frame{
		container: v.container,
		key:       v.key,
		shape:     v.shape,
		model:     v.model,
		strategy:  v.strategy,
	}
	v.container = v.model
	v.key = key
	v.shape = d
	v.model = model
	v.strategy = strategy
	defer func() {
		v.container = saved.container
		v.key = saved.key
		v.shape = saved.shape
		v.model = saved.model
		v.strategy = saved.strategy
	}()

	switch {
	case d.IsEnumerable:
		return v.visitComplexType(ctx, defaultCollectionStrategy)
	case d.IsComplex:
		return v.visitComplexType(ctx, defaultObjectStrategy)
	default:
		return v.visitSimpleType(ctx)
	}
}

func (v *GraphVisitor) visitComplexType(ctx context.Context, defaultStrategy Strategy) (bool, error) {
	isValid := true

	if v.model != nil && v.shape.ValidateChildren {
		strategy := v.strategy
		if strategy == nil {
			strategy = defaultStrategy
		}
		ok, err := v.visitChildren(ctx, strategy)
		if err != nil {
			return false, err
		}
		isValid = ok
	} else if v.model != nil {
		// Children deliberately not validated.
		v.suppressValidation(v.key)
	}

	if (isValid || v.cfg.ValidateParentsOnChildFailure) && !v.state.HasReachedMaxErrors() {
		ok, err := v.validateNode(ctx)
		if err != nil {
			return false, err
		}
		isValid = isValid && ok
	}

	return isValid, nil
}

func (v *GraphVisitor) visitChildren(ctx context.Context, strategy Strategy) (bool, error) {
	isValid := true

	// Exhaustive and strictly sequential: a failing child never stops
	// enumeration of its siblings.
	for entry := range strategy.Children(v.shape, v.key, v.model) {
		if !entry.Included {
			v.suppressValidation(entry.Key)
			continue
		}
		ok, err := v.visit(ctx, entry.Shape, entry.Key, entry.Model())
		if err != nil {
			return false, err
		}
		isValid = isValid && ok
	}

	return isValid, nil
}

func (v *GraphVisitor) visitSimpleType(ctx context.Context) (bool, error) {
	if v.state.HasReachedMaxErrors() {
		v.suppressValidation(v.key)
		return false, nil
	}
	return v.validateNode(ctx)
}

// validateNode runs the current node's own rules and records failures.
func (v *GraphVisitor) validateNode(ctx context.Context) (bool, error) {
	key := v.key

	if v.state.FieldState(key) != mv.StateInvalid {
		target := rules.Target{
			Container:   v.container,
			Model:       v.model,
			MemberName:  v.shape.Name,
			DisplayName: v.shape.Display(),
		}
		for _, r := range v.rules.Rules(v.shape) {
			if v.cfg.Metrics != nil {
				v.cfg.Metrics.RecordRuleExecuted()
			}
			outcome, err := rules.Result(ctx, r, target)
			if err != nil {
				return false, err
			}
			if outcome.OK {
				continue
			}
			if len(outcome.Members) == 0 {
				v.addError(key, outcome.Message)
				continue
			}
			for _, member := range outcome.Members {
				v.addError(shape.Join(key, member), outcome.Message)
			}
		}
	}

	if v.state.FieldState(key) == mv.StateInvalid {
		return false, nil
	}
	// Upgrade only an existing entry; validation never fabricates
	// entries for paths the binder did not record.
	v.state.MarkValidIfPresent(key)
	return true, nil
}

func (v *GraphVisitor) addError(key, message string) {
	v.state.AddError(key, message)
	if v.cfg.Metrics != nil {
		v.cfg.Metrics.RecordError()
	}
}

// suppressValidation marks key and every sink entry under it as Skipped,
// leaving Invalid entries untouched.
func (v *GraphVisitor) suppressValidation(key string) {
	v.state.MarkSubtreeSkipped(key)
}
