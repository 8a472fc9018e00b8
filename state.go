package modelvalidator

import (
	"iter"
	"strings"
)

// FieldState describes the validation state of a single path in the
// StateDictionary.
type FieldState int8

// Validation states for a path.
const (
	// StateUnvalidated means no rule has run for the path yet.
	StateUnvalidated FieldState = iota
	// StateInvalid means at least one rule failed for the path.
	// Invalid is absorbing: once set it is never downgraded.
	StateInvalid
	// StateValid means all rules for the path passed.
	StateValid
	// StateSkipped means validation of the path was suppressed.
	StateSkipped
)

// String returns the string representation of the state.
func (s FieldState) String() string {
	switch s {
	case StateUnvalidated:
		return "unvalidated"
	case StateInvalid:
		return "invalid"
	case StateValid:
		return "valid"
	case StateSkipped:
		return "skipped"
	default:
		return ""
	}
}

// ErrTooManyErrors is the message recorded once when the configured maximum
// error count is reached; further errors are dropped.
const ErrTooManyErrors = "the maximum number of validation errors has been reached"

// Entry holds the validation state and messages for one path.
type Entry struct {
	// RawValue is the value the binder associated with the path, if any.
	RawValue any

	// State is the current validation state of the path.
	State FieldState

	// Messages are the error messages recorded for the path, in the
	// order they were recorded.
	Messages []string
}

// StateDictionary is the keyed error sink for one top-level validation
// call: a mapping from path to validation state and ordered messages.
//
// It is owned by a single validation call and is not safe for concurrent
// use. Keys iterate in insertion order, which together with the strictly
// sequential traversal makes recorded errors deterministic.
type StateDictionary struct {
	entries map[string]*Entry
	keys    []string

	maxErrors  int // 0 means unlimited
	errorCount int
	reachedMax bool
}

// NewStateDictionary creates an empty dictionary. maxErrors caps the total
// number of recorded error messages; zero means unlimited. When the cap is
// reached a single overflow message is recorded under the root key and all
// further errors are dropped.
func NewStateDictionary(maxErrors int) *StateDictionary {
	return &StateDictionary{
		entries:   make(map[string]*Entry),
		maxErrors: maxErrors,
	}
}

func (d *StateDictionary) getOrAdd(key string) *Entry {
	if e, ok := d.entries[key]; ok {
		return e
	}
	e := &Entry{}
	d.entries[key] = e
	d.keys = append(d.keys, key)
	return e
}

// SetValue records a binder-supplied raw value for key, creating an
// Unvalidated entry if none exists. This is how the binding collaborator
// seeds the dictionary before validation begins.
func (d *StateDictionary) SetValue(key string, raw any) {
	e := d.getOrAdd(key)
	e.RawValue = raw
}

// Entry returns the entry for key, or nil if none exists.
func (d *StateDictionary) Entry(key string) *Entry {
	return d.entries[key]
}

// FieldState returns the state for key, StateUnvalidated if no entry exists.
func (d *StateDictionary) FieldState(key string) FieldState {
	if e, ok := d.entries[key]; ok {
		return e.State
	}
	return StateUnvalidated
}

// AddError records an error message for key and marks it Invalid, creating
// the entry if needed. It returns false without recording when the maximum
// error count has been reached.
func (d *StateDictionary) AddError(key, message string) bool {
	if d.reachedMax {
		return false
	}
	// The last slot within the budget is reserved for the overflow marker.
	if d.maxErrors > 0 && d.errorCount >= d.maxErrors-1 {
		d.reachedMax = true
		root := d.getOrAdd("")
		root.State = StateInvalid
		root.Messages = append(root.Messages, ErrTooManyErrors)
		d.errorCount++
		return false
	}
	e := d.getOrAdd(key)
	e.State = StateInvalid
	e.Messages = append(e.Messages, message)
	d.errorCount++
	return true
}

// MarkValidIfPresent marks key Valid if an entry exists and is not Invalid.
// It never creates entries.
func (d *StateDictionary) MarkValidIfPresent(key string) {
	if e, ok := d.entries[key]; ok && e.State != StateInvalid {
		e.State = StateValid
	}
}

// MarkSubtreeValid marks every currently-Unvalidated entry whose key has
// prefix as path prefix to Valid.
func (d *StateDictionary) MarkSubtreeValid(prefix string) {
	for _, key := range d.keys {
		if !isPathPrefix(key, prefix) {
			continue
		}
		if e := d.entries[key]; e.State == StateUnvalidated {
			e.State = StateValid
		}
	}
}

// MarkSubtreeSkipped marks every entry whose key has prefix as path prefix
// (including prefix itself) to Skipped, unless already Invalid.
func (d *StateDictionary) MarkSubtreeSkipped(prefix string) {
	for _, key := range d.keys {
		if !isPathPrefix(key, prefix) {
			continue
		}
		if e := d.entries[key]; e.State != StateInvalid {
			e.State = StateSkipped
		}
	}
}

// isPathPrefix reports whether key equals prefix or extends it across a
// member ('.') or index ('[') boundary. The empty prefix matches every key.
func isPathPrefix(key, prefix string) bool {
	if prefix == "" {
		return true
	}
	if !strings.HasPrefix(key, prefix) {
		return false
	}
	if len(key) == len(prefix) {
		return true
	}
	return key[len(prefix)] == '.' || key[len(prefix)] == '['
}

// ValidationState returns the aggregate state of the dictionary: Invalid if
// any entry is Invalid, Unvalidated if any entry is still Unvalidated, Valid
// otherwise.
func (d *StateDictionary) ValidationState() FieldState {
	state := StateValid
	for _, e := range d.entries {
		switch e.State {
		case StateInvalid:
			return StateInvalid
		case StateUnvalidated:
			state = StateUnvalidated
		}
	}
	return state
}

// IsValid reports whether no entry is Invalid or Unvalidated.
func (d *StateDictionary) IsValid() bool {
	return d.ValidationState() == StateValid
}

// ErrorCount returns the total number of recorded error messages.
func (d *StateDictionary) ErrorCount() int {
	return d.errorCount
}

// HasReachedMaxErrors reports whether the configured error cap was hit.
func (d *StateDictionary) HasReachedMaxErrors() bool {
	return d.reachedMax
}

// Len returns the number of entries.
func (d *StateDictionary) Len() int {
	return len(d.entries)
}

// Keys returns all entry keys in insertion order.
func (d *StateDictionary) Keys() []string {
	keys := make([]string, len(d.keys))
	copy(keys, d.keys)
	return keys
}

// Messages returns the recorded messages for key, nil if none.
func (d *StateDictionary) Messages(key string) []string {
	if e, ok := d.entries[key]; ok {
		return e.Messages
	}
	return nil
}

// Entries iterates over all entries in insertion order.
func (d *StateDictionary) Entries() iter.Seq2[string, *Entry] {
	return func(yield func(string, *Entry) bool) {
		for _, key := range d.keys {
			if !yield(key, d.entries[key]) {
				return
			}
		}
	}
}
