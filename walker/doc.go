// Package walker implements recursive validation of a live object graph.
//
// The GraphVisitor walks the graph described by shape descriptors, running
// the resolved rules at every node and recording per-path outcomes into a
// StateDictionary. The walk is guarded three ways:
//
//   - a current-path set of instances on the active recursion path detects
//     reference cycles and short-circuits them as valid;
//   - a configurable maximum depth aborts pathological graphs with a usage
//     error before deeper nodes are evaluated;
//   - the sink's error budget suppresses whole subtrees once exhausted.
//
// Child enumeration is pluggable via Strategy: ObjectStrategy walks bound
// constructor parameters then settable properties, CollectionStrategy walks
// elements of any forward-only enumerable.
//
// A GraphVisitor is created per top-level validation call and must not be
// shared between concurrent calls; only the resolver cache it reads from
// is shared state.
package walker
