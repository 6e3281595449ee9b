package modelbuild

import (
	"fmt"

	"github.com/pathgen/stategraph/pumllexer"
)

// ErrorKind classifies the grammar conditions that abort a build.
type ErrorKind string

const (
	// MissingDestination means a transition source token was not immediately
	// followed by a destination token.
	MissingDestination ErrorKind = "missing_destination"
	// UnknownState means an operation referenced a state name that could not
	// be resolved in any enclosing scope.
	UnknownState ErrorKind = "unknown_state"
	// StackUnderflow means a scope-close token arrived with no open scope.
	StackUnderflow ErrorKind = "stack_underflow"
	// AliasUnsupported means the input used state aliasing, which the grammar
	// does not support yet.
	AliasUnsupported ErrorKind = "alias_unsupported"
)

// BuildError is the error type returned for fatal grammar conditions.
// The Kind field lets callers decide how to react without string matching.
type BuildError struct {
	Kind    ErrorKind
	Message string
	Pos     pumllexer.Position
	Cause   error
}

func (e *BuildError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("line %d, col %d: %s: %s", e.Pos.Line, e.Pos.Column, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *BuildError) Unwrap() error { return e.Cause }
