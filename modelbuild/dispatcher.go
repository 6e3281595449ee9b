package modelbuild

import (
	"log/slog"

	"github.com/pathgen/stategraph/internal/logging"
	"github.com/pathgen/stategraph/pumllexer"
	"github.com/pathgen/stategraph/statemodel"
)

// TokenSource is a pull-based supplier of lexical tokens. The second result
// is false once the source is exhausted. *pumllexer.Lexer satisfies it.
type TokenSource interface {
	Next() (pumllexer.Token, bool)
}

// ActionFunc is a registered handler for one token kind. When invoked, the
// head of the buffer is a token of that kind; the handler pops however many
// buffered tokens its grammar rule spans, including its own token and any
// lookahead it needs. A returned error aborts the run.
type ActionFunc func() error

// Dispatcher buffers tokens from a TokenSource and commits registered actions
// with one actionable token of lookahead.
//
// A token whose kind is in the ignored set is dropped before buffering.
// Every other token enters the FIFO buffer; kinds with a registered handler
// count as actionable. An action commits only while a second actionable token
// is resident in the buffer, so the handler reacting to the oldest actionable
// token can always peek past it to resolve local grammar ambiguity. Whatever
// is still pending when the source dries up is flushed by the same rule;
// non-actionable tokens stuck at the head are then logged and dropped.
type Dispatcher struct {
	actions map[pumllexer.Kind]ActionFunc
	ignored map[pumllexer.Kind]bool
	queue   tokenQueue
	pending int
	logger  *slog.Logger
	diags   []statemodel.Diagnostic

	// OnDrop, when set, observes each non-actionable token dropped during the
	// end-of-stream flush.
	OnDrop func(pumllexer.Token)
}

// NewDispatcher creates a Dispatcher with its own empty action table.
// The table is per-instance so independent parses never interfere.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Dispatcher{
		actions: make(map[pumllexer.Kind]ActionFunc),
		ignored: make(map[pumllexer.Kind]bool),
		logger:  logger,
	}
}

// Register installs the handler for a token kind, making that kind actionable.
func (d *Dispatcher) Register(kind pumllexer.Kind, fn ActionFunc) {
	d.actions[kind] = fn
}

// Ignore adds kinds to the ignored set; such tokens never enter the buffer.
func (d *Dispatcher) Ignore(kinds ...pumllexer.Kind) {
	for _, k := range kinds {
		d.ignored[k] = true
	}
}

// Pop removes and returns the token at the head of the buffer.
// It must only be called from inside an ActionFunc, which by the commit rule
// runs with at least its own token buffered.
func (d *Dispatcher) Pop() pumllexer.Token {
	return d.queue.popFront()
}

// Peek returns the token at the head of the buffer without consuming it.
func (d *Dispatcher) Peek() (pumllexer.Token, bool) {
	return d.queue.front()
}

// Len returns the number of buffered tokens.
func (d *Dispatcher) Len() int {
	return d.queue.len()
}

// Diagnostics returns the non-fatal findings recorded during the last run.
func (d *Dispatcher) Diagnostics() []statemodel.Diagnostic {
	return d.diags
}

// Run consumes the token source to exhaustion, committing actions per the
// lookahead rule, then flushes the buffer. A handler error aborts the run
// immediately and is returned as-is.
func (d *Dispatcher) Run(src TokenSource) error {
	d.queue.reset()
	d.pending = 0
	d.diags = nil

	for {
		tok, ok := src.Next()
		if !ok {
			break
		}
		if d.ignored[tok.Kind] {
			continue
		}
		if _, actionable := d.actions[tok.Kind]; actionable {
			d.pending++
		}
		d.queue.pushBack(tok)

		if d.pending > 1 {
			head, _ := d.queue.front()
			if fn, ok := d.actions[head.Kind]; ok {
				if err := fn(); err != nil {
					return err
				}
				d.pending--
			}
		}
	}

	return d.flush()
}

// flush drains remaining actionable tokens once the stream has dried up.
// Handler errors still propagate; a non-actionable head is dropped with a
// diagnostic, never an error.
func (d *Dispatcher) flush() error {
	for d.pending > 0 {
		head, ok := d.queue.front()
		if !ok {
			// Pending count outran the buffer; nothing left to commit.
			d.pending = 0
			break
		}
		if fn, ok := d.actions[head.Kind]; ok {
			if err := fn(); err != nil {
				return err
			}
			d.pending--
			continue
		}
		dropped := d.queue.popFront()
		d.logger.Warn("dropping non-actionable token at end of stream",
			"kind", dropped.Kind.String(),
			"value", dropped.Value,
			"line", dropped.Pos.Line)
		d.diags = append(d.diags, statemodel.Diagnostic{
			Rule:     "pending_token",
			Severity: statemodel.Warning,
			Message:  "non-actionable token " + dropped.Kind.String() + " (" + dropped.Value + ") left unresolved at end of stream",
		})
		if d.OnDrop != nil {
			d.OnDrop(dropped)
		}
	}
	return nil
}
