// Package statemodel defines the hierarchical graph model populated from a
// state-transition diagram: states, transitions, and nested superstate
// scopes, plus the flattening that collapses the nesting into one traversable
// graph.
//
// A Diagram is one scope. States declared inside a superstate live in that
// state's owned child Diagram, recursively; the scopes form an ownership
// tree rooted at the Diagram returned to the caller. State declaration is
// idempotent per scope, and the [*] start/end marker notation canonicalizes
// to the shared START and END sentinel states on first use in a scope.
//
// The model is built by a single writer during parsing and is safe to treat
// as immutable afterwards. FlattenGraph produces a separate read-only
// FlatGraph view in which every superstate is collapsed, with its external
// sources stitched to its internal entry states and its internal exit states
// stitched to its external destinations, so no externally visible path is
// lost.
//
// Validate applies lint rules to a built model and reports findings as
// Diagnostics rather than errors, leaving the caller to decide severity
// policy.
package statemodel
