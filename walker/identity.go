package walker

import (
	"reflect"

	"github.com/gomodel/validator/shape"
)

// identityKey identifies a model instance by reference. Domain types may
// define value-style equality, so map keys are derived from the instance's
// pointer, never from its value.
type identityKey struct {
	ptr uintptr
	typ reflect.Type
}

// identityOf returns a reference-identity key for model. Only values of
// pointer-shaped kinds are trackable; plain values cannot alias another
// path or close a cycle, so they need no identity.
func identityOf(model any) (identityKey, bool) {
	if model == nil {
		return identityKey{}, false
	}
	rv := reflect.ValueOf(model)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		if rv.IsNil() {
			return identityKey{}, false
		}
		return identityKey{ptr: rv.Pointer(), typ: rv.Type()}, true
	default:
		return identityKey{}, false
	}
}

// pathSet tracks the instances on the active recursion path. It shrinks on
// unwind, so membership means "an ancestor of the current node", not "ever
// visited". depth counts every non-nil model on the path, trackable or not.
type pathSet struct {
	items map[identityKey]struct{}
	count int
}

func newPathSet() *pathSet {
	return &pathSet{items: make(map[identityKey]struct{})}
}

func (s *pathSet) contains(model any) bool {
	key, ok := identityOf(model)
	if !ok {
		return false
	}
	_, present := s.items[key]
	return present
}

func (s *pathSet) push(model any) {
	if model == nil {
		return
	}
	s.count++
	if key, ok := identityOf(model); ok {
		s.items[key] = struct{}{}
	}
}

func (s *pathSet) pop(model any) {
	if model == nil {
		return
	}
	s.count--
	if key, ok := identityOf(model); ok {
		delete(s.items, key)
	}
}

func (s *pathSet) depth() int {
	return s.count
}

// Override is a binder-supplied canonical identity for a model instance,
// used to resolve aliasing when the same instance is reachable through
// multiple paths.
type Override struct {
	// Key is the canonical path key; empty keeps the visitor's key.
	Key string

	// Shape replaces the visitor's descriptor when non-nil.
	Shape *shape.Descriptor

	// Strategy replaces the default traversal strategy when non-nil.
	Strategy Strategy

	// SuppressValidation skips the instance's whole subtree.
	SuppressValidation bool
}

// StateOverrides maps model instances to their canonical validation
// identity. Instances are keyed by reference identity; the map is
// populated during binding, before validation begins, and read-only
// afterwards.
type StateOverrides struct {
	items map[identityKey]Override
}

// NewStateOverrides creates an empty override map.
func NewStateOverrides() *StateOverrides {
	return &StateOverrides{items: make(map[identityKey]Override)}
}

// Set records the canonical identity for model. It reports false for
// instances without reference identity (plain values), which cannot alias
// and need no override.
func (o *StateOverrides) Set(model any, ov Override) bool {
	key, ok := identityOf(model)
	if !ok {
		return false
	}
	o.items[key] = ov
	return true
}

// Get returns the override for model, if any.
func (o *StateOverrides) Get(model any) (Override, bool) {
	key, ok := identityOf(model)
	if !ok {
		return Override{}, false
	}
	ov, present := o.items[key]
	return ov, present
}

// Len returns the number of recorded overrides.
func (o *StateOverrides) Len() int {
	return len(o.items)
}
