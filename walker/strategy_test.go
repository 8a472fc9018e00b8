package walker

import (
	"iter"
	"testing"

	"github.com/gomodel/validator/shape"
)

type account struct {
	ID    string
	Name  string
	Email string
}

func accountShape() *shape.Descriptor {
	return &shape.Descriptor{
		Name:      "Account",
		IsComplex: true,
		ConstructorParams: []shape.Member{
			{Name: "id", Shape: &shape.Descriptor{Name: "id"}, Get: func(p any) any { return p.(*account).ID }},
		},
		ParameterBoundProperties: map[string]string{"id": "ID"},
		Members: []shape.Member{
			{Name: "ID", Shape: &shape.Descriptor{Name: "ID"}, Get: func(p any) any { return p.(*account).ID }},
			{Name: "Name", Shape: &shape.Descriptor{Name: "Name"}, Get: func(p any) any { return p.(*account).Name }},
			{Name: "Email", Shape: &shape.Descriptor{Name: "Email"}, Get: func(p any) any { return p.(*account).Email }},
		},
	}
}

func collectEntries(seq iter.Seq[Entry]) []Entry {
	var entries []Entry
	for e := range seq {
		entries = append(entries, e)
	}
	return entries
}

func TestObjectStrategy_Order(t *testing.T) {
	model := &account{ID: "a1", Name: "Alice", Email: "a@example.com"}

	entries := collectEntries(ObjectStrategy{}.Children(accountShape(), "", model))

	// Constructor parameters first, then properties; the ID property is
	// consumed by the id parameter and enumerated only once.
	want := []string{"id", "Name", "Email"}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries; want %d", len(entries), len(want))
	}
	for i, key := range want {
		if entries[i].Key != key {
			t.Errorf("entries[%d].Key = %q; want %q", i, entries[i].Key, key)
		}
	}
}

func TestObjectStrategy_PrefixedKeys(t *testing.T) {
	model := &account{ID: "a1"}

	entries := collectEntries(ObjectStrategy{}.Children(accountShape(), "account", model))

	if entries[0].Key != "account.id" {
		t.Errorf("entries[0].Key = %q; want account.id", entries[0].Key)
	}
	if entries[1].Key != "account.Name" {
		t.Errorf("entries[1].Key = %q; want account.Name", entries[1].Key)
	}
}

func TestObjectStrategy_OverrideName(t *testing.T) {
	d := &shape.Descriptor{
		Name:      "Form",
		IsComplex: true,
		Members: []shape.Member{
			{Name: "Name", OverrideName: "fullName", Shape: &shape.Descriptor{Name: "Name"}},
		},
	}

	entries := collectEntries(ObjectStrategy{}.Children(d, "", struct{}{}))

	if entries[0].Key != "fullName" {
		t.Errorf("Key = %q; want fullName", entries[0].Key)
	}
}

func TestObjectStrategy_LazyAccessor(t *testing.T) {
	calls := 0
	d := &shape.Descriptor{
		Name:      "Box",
		IsComplex: true,
		Members: []shape.Member{
			{Name: "Value", Shape: &shape.Descriptor{Name: "Value"}, Get: func(any) any {
				calls++
				return "inner"
			}},
		},
	}

	entries := collectEntries(ObjectStrategy{}.Children(d, "", struct{}{}))
	if calls != 0 {
		t.Fatalf("accessor ran %d times during enumeration; want 0", calls)
	}

	if got := entries[0].Model(); got != "inner" {
		t.Errorf("Model() = %v; want inner", got)
	}
	if calls != 1 {
		t.Errorf("accessor ran %d times; want 1", calls)
	}
}

func TestObjectStrategy_NilParent(t *testing.T) {
	entries := collectEntries(ObjectStrategy{}.Children(accountShape(), "", nil))

	for _, e := range entries {
		if got := e.Model(); got != nil {
			t.Errorf("Model() = %v for nil parent; want nil", got)
		}
	}
}

func TestObjectStrategy_Filter(t *testing.T) {
	d := &shape.Descriptor{
		Name:      "Doc",
		IsComplex: true,
		Members: []shape.Member{
			{Name: "Draft", Shape: &shape.Descriptor{Name: "Draft"}, Filter: func(any) bool { return false }},
			{Name: "Title", Shape: &shape.Descriptor{Name: "Title"}},
		},
	}

	entries := collectEntries(ObjectStrategy{}.Children(d, "", struct{}{}))

	if entries[0].Included {
		t.Error("filtered member reported Included = true")
	}
	if !entries[1].Included {
		t.Error("unfiltered member reported Included = false")
	}
}

func collectionShape() *shape.Descriptor {
	return &shape.Descriptor{
		Name:         "Tags",
		IsEnumerable: true,
		Element:      &shape.Descriptor{Name: "Tag"},
	}
}

func TestCollectionStrategy_Slice(t *testing.T) {
	entries := collectEntries(CollectionStrategy{}.Children(collectionShape(), "tags", []string{"a", "b", "c"}))

	if len(entries) != 3 {
		t.Fatalf("got %d entries; want 3", len(entries))
	}
	wantKeys := []string{"tags[0]", "tags[1]", "tags[2]"}
	wantVals := []string{"a", "b", "c"}
	for i := range entries {
		if entries[i].Key != wantKeys[i] {
			t.Errorf("entries[%d].Key = %q; want %q", i, entries[i].Key, wantKeys[i])
		}
		if got := entries[i].Model(); got != wantVals[i] {
			t.Errorf("entries[%d].Model() = %v; want %v", i, got, wantVals[i])
		}
		if entries[i].Shape.Name != "Tag" {
			t.Errorf("entries[%d].Shape = %q; want element shape", i, entries[i].Shape.Name)
		}
	}
}

func TestCollectionStrategy_Array(t *testing.T) {
	entries := collectEntries(CollectionStrategy{}.Children(collectionShape(), "", [2]int{1, 2}))

	if len(entries) != 2 {
		t.Fatalf("got %d entries; want 2", len(entries))
	}
	if entries[0].Key != "[0]" || entries[1].Key != "[1]" {
		t.Errorf("keys = %q, %q; want [0], [1]", entries[0].Key, entries[1].Key)
	}
}

func TestCollectionStrategy_PointerToSlice(t *testing.T) {
	tags := []string{"x"}
	entries := collectEntries(CollectionStrategy{}.Children(collectionShape(), "tags", &tags))

	if len(entries) != 1 {
		t.Fatalf("got %d entries; want 1", len(entries))
	}
	if got := entries[0].Model(); got != "x" {
		t.Errorf("Model() = %v; want x", got)
	}
}

type tagSet struct {
	tags []string
}

func (s tagSet) Elements() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, tag := range s.tags {
			if !yield(tag) {
				return
			}
		}
	}
}

func TestCollectionStrategy_Sequence(t *testing.T) {
	entries := collectEntries(CollectionStrategy{}.Children(collectionShape(), "tags", tagSet{tags: []string{"a", "b"}}))

	if len(entries) != 2 {
		t.Fatalf("got %d entries; want 2", len(entries))
	}
	if entries[1].Key != "tags[1]" {
		t.Errorf("Key = %q; want tags[1]", entries[1].Key)
	}
	if got := entries[1].Model(); got != "b" {
		t.Errorf("Model() = %v; want b", got)
	}
}

func TestCollectionStrategy_IterSeq(t *testing.T) {
	seq := iter.Seq[any](func(yield func(any) bool) {
		yield(10)
		yield(20)
	})

	entries := collectEntries(CollectionStrategy{}.Children(collectionShape(), "nums", seq))

	if len(entries) != 2 {
		t.Fatalf("got %d entries; want 2", len(entries))
	}
	if got := entries[0].Model(); got != 10 {
		t.Errorf("Model() = %v; want 10", got)
	}
}

func TestCollectionStrategy_Unsupported(t *testing.T) {
	entries := collectEntries(CollectionStrategy{}.Children(collectionShape(), "", 42))
	if len(entries) != 0 {
		t.Errorf("got %d entries for non-collection model; want 0", len(entries))
	}

	entries = collectEntries(CollectionStrategy{}.Children(collectionShape(), "", nil))
	if len(entries) != 0 {
		t.Errorf("got %d entries for nil model; want 0", len(entries))
	}
}
