package walker

import (
	"iter"
	"reflect"
	"sync"

	"github.com/gomodel/validator/shape"
)

// Entry is one child produced by a traversal strategy.
type Entry struct {
	// Shape describes the child value.
	Shape *shape.Descriptor

	// Key is the child's full path key.
	Key string

	// Model lazily reads the child value. It is only invoked for
	// included children of a non-nil parent, so suppressed or
	// short-circuited subtrees never pay for the accessor.
	Model func() any

	// Included is false when the member's inclusion filter rejected the
	// child; rejected children are marked Skipped, not validated.
	Included bool
}

// Strategy enumerates the children of one node: a finite, single-pass,
// ordered sequence.
type Strategy interface {
	Children(d *shape.Descriptor, key string, model any) iter.Seq[Entry]
}

// ObjectStrategy enumerates an object's bound constructor parameters in
// declared order, then its settable properties in declared order.
// Properties populated from a constructor parameter are skipped so each
// logical member is validated exactly once.
type ObjectStrategy struct{}

// Children implements Strategy.
func (ObjectStrategy) Children(d *shape.Descriptor, key string, model any) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		var consumed map[string]bool
		if len(d.ConstructorParams) > 0 {
			consumed = make(map[string]bool, len(d.ConstructorParams))
		}
		for _, p := range d.ConstructorParams {
			if prop, ok := d.ParameterBoundProperties[p.Name]; ok {
				consumed[prop] = true
			}
			if !yield(memberEntry(p, key, model)) {
				return
			}
		}
		for _, m := range d.Members {
			if consumed[m.Name] {
				continue
			}
			if !yield(memberEntry(m, key, model)) {
				return
			}
		}
	}
}

func memberEntry(m shape.Member, key string, model any) Entry {
	get := m.Get
	return Entry{
		Shape: m.Shape,
		Key:   shape.Join(key, m.KeyName()),
		Model: func() any {
			if model == nil || get == nil {
				return nil
			}
			return get(model)
		},
		Included: m.Filter == nil || m.Filter(model),
	}
}

// Sequence is implemented by models that enumerate their own elements.
// It is the forward-only escape hatch for collections that are not slices
// or arrays.
type Sequence interface {
	Elements() iter.Seq[any]
}

// CollectionStrategy enumerates a collection's elements against the
// shape's element descriptor, producing 0-based "[i]" keys in iteration
// order.
type CollectionStrategy struct{}

// Children implements Strategy.
func (CollectionStrategy) Children(d *shape.Descriptor, key string, model any) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		if model == nil {
			return
		}
		enum := enumeratorFor(reflect.TypeOf(model))
		if enum == nil {
			return
		}
		i := 0
		for v := range enum(model) {
			elem := v
			e := Entry{
				Shape:    d.Element,
				Key:      shape.Index(key, i),
				Model:    func() any { return elem },
				Included: true,
			}
			if !yield(e) {
				return
			}
			i++
		}
	}
}

// enumerator yields the elements of one concrete collection type.
type enumerator func(model any) iter.Seq[any]

var (
	sequenceType = reflect.TypeOf((*Sequence)(nil)).Elem()
	seqAnyType   = reflect.TypeOf((iter.Seq[any])(nil))

	// enumerators memoizes the enumeration mechanism per concrete
	// collection type; resolving it is the dominant per-call cost
	// otherwise.
	enumerators sync.Map // reflect.Type -> enumerator
)

func enumeratorFor(t reflect.Type) enumerator {
	if t == nil {
		return nil
	}
	if v, ok := enumerators.Load(t); ok {
		return v.(enumerator)
	}
	e := buildEnumerator(t)
	actual, _ := enumerators.LoadOrStore(t, e)
	return actual.(enumerator)
}

func buildEnumerator(t reflect.Type) enumerator {
	if t.Implements(sequenceType) {
		return func(model any) iter.Seq[any] {
			return model.(Sequence).Elements()
		}
	}

	switch t.Kind() {
	case reflect.Func:
		if t.ConvertibleTo(seqAnyType) {
			return func(model any) iter.Seq[any] {
				return reflect.ValueOf(model).Convert(seqAnyType).Interface().(iter.Seq[any])
			}
		}
		return nil

	case reflect.Slice, reflect.Array:
		return func(model any) iter.Seq[any] {
			rv := reflect.ValueOf(model)
			return func(yield func(any) bool) {
				for i := 0; i < rv.Len(); i++ {
					if !yield(rv.Index(i).Interface()) {
						return
					}
				}
			}
		}

	case reflect.Pointer:
		elem := buildEnumerator(t.Elem())
		if elem == nil {
			return nil
		}
		return func(model any) iter.Seq[any] {
			rv := reflect.ValueOf(model)
			if rv.IsNil() {
				return func(func(any) bool) {}
			}
			return elem(rv.Elem().Interface())
		}

	default:
		return nil
	}
}
