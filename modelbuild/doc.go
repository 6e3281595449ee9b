// Package modelbuild turns a flat token stream into a populated
// statemodel.Diagram.
//
// The package splits into a generic engine and the grammar bound to it. The
// Dispatcher is the engine: it buffers (kind, value) tokens in a FIFO and
// commits a registered action whenever a second actionable token arrives,
// which guarantees the handler reacting to the oldest actionable token at
// least one actionable token of lookahead to disambiguate variable-length
// grammar rules. The Builder is the grammar: its handlers interpret buffered
// tokens as state, superstate, and transition declarations, maintain the
// stack of open scopes, and mutate the target diagram.
//
// Fatal grammar conditions surface as *BuildError values classified by
// ErrorKind; non-fatal conditions (tokens left unresolved at end of stream,
// scopes never closed) are logged, recorded as diagnostics, and do not
// prevent the best-effort model from being returned.
package modelbuild
