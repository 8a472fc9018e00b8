// Package modelvalidator provides asynchronous validation of live Go object
// graphs against externally supplied shape descriptors.
//
// Given a root model and a shape.Descriptor describing which members are
// simple, complex, or collections and which rules attach where, the engine
// recursively walks the object graph, runs synchronous and asynchronous
// rules at each node, and aggregates per-path outcomes into a keyed
// StateDictionary. The walk is guarded against reference cycles, unbounded
// depth, and runaway error counts.
//
// # Quick Start
//
//	import (
//	    mv "github.com/gomodel/validator"
//	    "github.com/gomodel/validator/engine"
//	)
//
//	v := engine.New(mv.WithMaxDepth(32))
//	state, err := v.Validate(ctx, shape, model)
//	if err != nil {
//	    log.Fatal(err) // usage error or cancellation, never a rule failure
//	}
//	if !state.IsValid() {
//	    for key, entry := range state.Entries() {
//	        fmt.Println(key, entry.Messages)
//	    }
//	}
//
// # Architecture
//
// The module is split along the same lines as the traversal itself:
//
//   - rules: the Rule abstraction (sync, async, and async-only checks),
//     builtin rules, and default-message formatting.
//   - shape: descriptors consumed from the model-binding collaborator.
//   - resolver: the process-wide shape-to-rules cache, populated once per
//     distinct descriptor with get-or-populate-once semantics.
//   - walker: the recursive graph visitor plus the object and collection
//     traversal strategies.
//   - flat: non-recursive validation of a single instance, property, or
//     value with Required-first ordering.
//   - engine: the top-level Validator tying options, resolver, metrics,
//     and batch execution together.
//
// # Concurrency
//
// A single traversal is strictly sequential: siblings are visited in
// enumeration order and the only suspension points are individual
// asynchronous rule checks, so recorded errors are deterministic for a
// fixed model and rule set. Distinct top-level validations may run
// concurrently; only the resolver cache is shared between them.
package modelvalidator
