package modelbuild

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pathgen/stategraph/internal/logging"
	"github.com/pathgen/stategraph/pumllexer"
	"github.com/pathgen/stategraph/statemodel"
)

// Builder interprets a token stream as state, superstate, and transition
// declarations and populates a statemodel.Diagram. It wires the grammar
// handlers into a Dispatcher and tracks the stack of open superstate scopes.
//
// A Builder may be reused; every Build starts from a fresh diagram, buffer,
// and scope stack.
type Builder struct {
	logger  *slog.Logger
	emitter *EventEmitter

	diagram *statemodel.Diagram
	disp    *Dispatcher
	scopes  []string // names of open superstates; index 0 is the root sentinel
	diags   []statemodel.Diagnostic
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for non-fatal findings.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) { b.logger = logger }
}

// WithEmitter sets the event emitter build progress is published through.
func WithEmitter(emitter *EventEmitter) Option {
	return func(b *Builder) { b.emitter = emitter }
}

// NewBuilder creates a Builder. Without options it logs nowhere and emits to
// an emitter with no listeners.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		logger:  logging.NewNop(),
		emitter: NewEventEmitter(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Events returns the emitter build progress is published through.
func (b *Builder) Events() *EventEmitter { return b.emitter }

// Diagnostics returns the non-fatal findings recorded during the last Build.
func (b *Builder) Diagnostics() []statemodel.Diagnostic { return b.diags }

// Build consumes the token source and returns the populated diagram.
// On a fatal grammar error (*BuildError) no partial model is returned.
func (b *Builder) Build(src TokenSource) (*statemodel.Diagram, error) {
	b.diagram = statemodel.NewDiagram()
	b.scopes = []string{""}
	b.diags = nil

	disp := NewDispatcher(b.logger)
	disp.Ignore(pumllexer.KindText, pumllexer.KindError)
	disp.Register(pumllexer.KindState, b.assignState)
	disp.Register(pumllexer.KindAlias, b.lookupAlias)
	disp.Register(pumllexer.KindScopeClose, b.endSuperstate)
	disp.Register(pumllexer.KindTransSource, b.assignTransition)
	disp.OnDrop = func(tok pumllexer.Token) {
		b.emitter.Emit(EventTokenDropped, map[string]any{
			"kind":  tok.Kind.String(),
			"value": tok.Value,
			"line":  tok.Pos.Line,
		})
	}
	b.disp = disp

	if err := disp.Run(src); err != nil {
		return nil, err
	}
	b.diags = append(b.diags, disp.Diagnostics()...)

	if open := len(b.scopes) - 1; open > 0 {
		b.logger.Warn("superstate scopes left open at end of stream", "count", open)
		b.diags = append(b.diags, statemodel.Diagnostic{
			Rule:      "unclosed_scope",
			Severity:  statemodel.Warning,
			Message:   fmt.Sprintf("%d superstate scope(s) left open at end of stream", open),
			StateName: b.scopes[len(b.scopes)-1],
		})
	}
	return b.diagram, nil
}

// currentScope returns the innermost open superstate name, or "" at the root.
func (b *Builder) currentScope() string {
	return b.scopes[len(b.scopes)-1]
}

// assignState handles a state-name token. A scope-open delimiter next in the
// buffer makes the declaration a superstate; an attribute token next attaches
// a description to the just-declared state.
func (b *Builder) assignState() error {
	tok := b.disp.Pop()
	name := tok.Value

	if next, ok := b.disp.Peek(); ok && next.Kind == pumllexer.KindScopeOpen {
		b.disp.Pop()
		if _, err := b.diagram.AddState(name, b.currentScope()); err != nil {
			return b.unknownState(tok, err)
		}
		b.scopes = append(b.scopes, name)
		b.emitter.Emit(EventSuperstateOpened, map[string]any{"name": name})
	} else {
		if _, err := b.diagram.AddState(name, b.currentScope()); err != nil {
			return b.unknownState(tok, err)
		}
		b.emitter.Emit(EventStateAdded, map[string]any{
			"name":  name,
			"scope": b.currentScope(),
		})
	}

	if next, ok := b.disp.Peek(); ok && next.Kind == pumllexer.KindStateAttr {
		attr := b.disp.Pop().Value
		if err := b.diagram.AddStateAttr(name, attr); err != nil {
			return b.unknownState(tok, err)
		}
	}
	return nil
}

// lookupAlias handles a state-alias token. State aliasing is a known grammar
// gap: invoking it always fails.
func (b *Builder) lookupAlias() error {
	tok := b.disp.Pop()
	return &BuildError{
		Kind:    AliasUnsupported,
		Message: fmt.Sprintf("state alias %q: aliasing is not supported", tok.Value),
		Pos:     tok.Pos,
	}
}

// endSuperstate handles a scope-close token by popping the scope stack.
// Closing with no open superstate is a fatal grammar error.
func (b *Builder) endSuperstate() error {
	tok := b.disp.Pop()
	if len(b.scopes) <= 1 {
		return &BuildError{
			Kind:    StackUnderflow,
			Message: "scope close without a matching open superstate",
			Pos:     tok.Pos,
		}
	}
	closed := b.currentScope()
	b.scopes = b.scopes[:len(b.scopes)-1]
	b.emitter.Emit(EventSuperstateClosed, map[string]any{"name": closed})
	return nil
}

// assignTransition handles a transition-source token. The destination token
// must be next in the buffer; an attribute token after it attaches a label to
// the new transition.
func (b *Builder) assignTransition() error {
	tok := b.disp.Pop()
	source := tok.Value

	next, ok := b.disp.Peek()
	if !ok || next.Kind != pumllexer.KindTransDest {
		return &BuildError{
			Kind:    MissingDestination,
			Message: fmt.Sprintf("transition source %q has no corresponding destination", source),
			Pos:     tok.Pos,
		}
	}
	dest := b.disp.Pop().Value

	var attrs []string
	if next, ok := b.disp.Peek(); ok && next.Kind == pumllexer.KindTransAttr {
		attrs = append(attrs, b.disp.Pop().Value)
	}

	if _, err := b.diagram.AddTransition(source, dest, b.currentScope(), attrs...); err != nil {
		return b.unknownState(tok, err)
	}
	b.emitter.Emit(EventTransitionAdded, map[string]any{
		"source": source,
		"dest":   dest,
		"scope":  b.currentScope(),
	})
	return nil
}

func (b *Builder) unknownState(tok pumllexer.Token, cause error) error {
	return &BuildError{
		Kind:    UnknownState,
		Message: cause.Error(),
		Pos:     tok.Pos,
		Cause:   cause,
	}
}

// ParseSource builds a diagram from PlantUML state-diagram source bytes.
func ParseSource(src []byte) (*statemodel.Diagram, error) {
	return NewBuilder().Build(pumllexer.New(src))
}

// ParseFile builds a diagram from a PlantUML state-diagram file.
func ParseFile(path string) (*statemodel.Diagram, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading diagram file: %w", err)
	}
	return ParseSource(src)
}
