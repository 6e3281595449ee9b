package statemodel

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a validation diagnostic.
type Severity int

const (
	// Error means the model is unsuitable for downstream path analysis.
	Error Severity = iota
	// Warning means analysis will work but the model looks suspicious.
	Warning
	// Info is an informational note.
	Info
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "ERROR"
	case Warning:
		return "WARNING"
	case Info:
		return "INFO"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Diagnostic is a single validation finding.
type Diagnostic struct {
	Rule      string   // rule identifier (e.g., "unreachable_state")
	Severity  Severity // ERROR, WARNING, or INFO
	Message   string   // human-readable description
	StateName string   // related state name (optional)
	Edge      *EdgeRef // related edge as (from, to) (optional)
	Fix       string   // suggested fix (optional)
}

// EdgeRef identifies an edge by its endpoint names.
type EdgeRef struct {
	From string
	To   string
}

func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s", d.Severity, d.Rule, d.Message)
	if d.StateName != "" {
		fmt.Fprintf(&b, " (state: %s)", d.StateName)
	}
	if d.Edge != nil {
		fmt.Fprintf(&b, " (edge: %s -> %s)", d.Edge.From, d.Edge.To)
	}
	if d.Fix != "" {
		fmt.Fprintf(&b, " -- fix: %s", d.Fix)
	}
	return b.String()
}

// LintRule is the interface for a single validation rule.
type LintRule interface {
	Name() string
	Apply(d *Diagram) []Diagnostic
}

// ValidationError is returned by ValidateOrError when error-severity
// diagnostics exist.
type ValidationError struct {
	Diagnostics []Diagnostic
}

func (e *ValidationError) Error() string {
	var msgs []string
	for _, d := range e.Diagnostics {
		msgs = append(msgs, d.String())
	}
	return fmt.Sprintf("validation failed with %d error(s):\n  %s", len(e.Diagnostics), strings.Join(msgs, "\n  "))
}

// Validate runs all built-in rules (and any extra rules) against the diagram.
// Returns all diagnostics regardless of severity.
func Validate(d *Diagram, extraRules ...LintRule) []Diagnostic {
	rules := builtInRules()
	rules = append(rules, extraRules...)

	var diagnostics []Diagnostic
	for _, rule := range rules {
		diagnostics = append(diagnostics, rule.Apply(d)...)
	}
	return diagnostics
}

// ValidateOrError runs Validate and returns an error if any error-severity
// diagnostics are found. Non-error diagnostics are still returned.
func ValidateOrError(d *Diagram, extraRules ...LintRule) ([]Diagnostic, error) {
	diagnostics := Validate(d, extraRules...)

	var errs []Diagnostic
	for _, diag := range diagnostics {
		if diag.Severity == Error {
			errs = append(errs, diag)
		}
	}
	if len(errs) > 0 {
		return diagnostics, &ValidationError{Diagnostics: errs}
	}
	return diagnostics, nil
}

func builtInRules() []LintRule {
	return []LintRule{
		noStartStateRule{},
		noEndStateRule{},
		emptySuperstateRule{},
		duplicateTransitionRule{},
		unreachableStateRule{},
	}
}

// scopeName describes a scope for diagnostic messages.
func scopeName(d *Diagram) string {
	if d.owner == nil {
		return "top level"
	}
	return fmt.Sprintf("superstate %q", d.owner.Name)
}

// eachScope applies fn to the given scope and, depth-first, to every nested
// scope under it.
func eachScope(d *Diagram, fn func(*Diagram) []Diagnostic) []Diagnostic {
	diags := fn(d)
	for _, st := range d.topLevel {
		if st.HasSubstates() {
			diags = append(diags, eachScope(st.substates, fn)...)
		}
	}
	return diags
}

// no_start_state: a scope with transitions should have at least one state
// that nothing transitions into.
type noStartStateRule struct{}

func (noStartStateRule) Name() string { return "no_start_state" }

func (noStartStateRule) Apply(d *Diagram) []Diagnostic {
	return eachScope(d, func(scope *Diagram) []Diagnostic {
		if len(scope.transitions) == 0 || len(scope.GetStartStates()) > 0 {
			return nil
		}
		return []Diagnostic{{
			Rule:     "no_start_state",
			Severity: Warning,
			Message:  fmt.Sprintf("%s has transitions but no start state; every state is a transition target", scopeName(scope)),
			Fix:      "add a transition from [*] or leave one state without incoming transitions",
		}}
	})
}

// no_end_state: the symmetric check over outgoing transitions.
type noEndStateRule struct{}

func (noEndStateRule) Name() string { return "no_end_state" }

func (noEndStateRule) Apply(d *Diagram) []Diagnostic {
	return eachScope(d, func(scope *Diagram) []Diagnostic {
		if len(scope.transitions) == 0 || len(scope.GetEndStates()) > 0 {
			return nil
		}
		return []Diagnostic{{
			Rule:     "no_end_state",
			Severity: Warning,
			Message:  fmt.Sprintf("%s has transitions but no end state; every state has outgoing transitions", scopeName(scope)),
			Fix:      "add a transition to [*] or leave one state without outgoing transitions",
		}}
	})
}

// empty_superstate: a superstate declared with a body that contains nothing
// flattens into a plain state, which is usually a mistake.
type emptySuperstateRule struct{}

func (emptySuperstateRule) Name() string { return "empty_superstate" }

func (emptySuperstateRule) Apply(d *Diagram) []Diagnostic {
	return eachScope(d, func(scope *Diagram) []Diagnostic {
		var diags []Diagnostic
		for _, st := range scope.topLevel {
			if st.substates != nil && len(st.substates.topLevel) == 0 {
				diags = append(diags, Diagnostic{
					Rule:      "empty_superstate",
					Severity:  Warning,
					Message:   fmt.Sprintf("superstate %q declares an empty body", st.Name),
					StateName: st.Name,
					Fix:       "declare substates or drop the braces",
				})
			}
		}
		return diags
	})
}

// duplicate_transition: the same (source, destination) pair declared twice in
// one scope.
type duplicateTransitionRule struct{}

func (duplicateTransitionRule) Name() string { return "duplicate_transition" }

func (duplicateTransitionRule) Apply(d *Diagram) []Diagnostic {
	return eachScope(d, func(scope *Diagram) []Diagnostic {
		seen := make(map[[2]*State]bool)
		var diags []Diagnostic
		for _, e := range scope.edges {
			key := [2]*State{e.Source, e.Dest}
			if seen[key] {
				diags = append(diags, Diagnostic{
					Rule:     "duplicate_transition",
					Severity: Warning,
					Message:  fmt.Sprintf("transition %s -> %s declared more than once in %s", e.Source.Name, e.Dest.Name, scopeName(scope)),
					Edge:     &EdgeRef{From: e.Source.Name, To: e.Dest.Name},
					Fix:      "merge the duplicate declarations",
				})
				continue
			}
			seen[key] = true
		}
		return diags
	})
}

// unreachable_state: every state in a scope should be reachable from one of
// the scope's start states via BFS over the scope's edges.
type unreachableStateRule struct{}

func (unreachableStateRule) Name() string { return "unreachable_state" }

func (unreachableStateRule) Apply(d *Diagram) []Diagnostic {
	return eachScope(d, func(scope *Diagram) []Diagnostic {
		if len(scope.edges) == 0 {
			return nil
		}
		starts := scope.GetStartStates()
		if len(starts) == 0 {
			// no_start_state reports this; reachability is meaningless here.
			return nil
		}

		adj := make(map[*State][]*State)
		for _, e := range scope.edges {
			adj[e.Source] = append(adj[e.Source], e.Dest)
		}

		visited := make(map[*State]bool)
		queue := append([]*State(nil), starts...)
		for _, st := range starts {
			visited[st] = true
		}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, next := range adj[cur] {
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}

		var diags []Diagnostic
		for _, st := range scope.topLevel {
			if !visited[st] {
				diags = append(diags, Diagnostic{
					Rule:      "unreachable_state",
					Severity:  Error,
					Message:   fmt.Sprintf("state %q is not reachable from any start state of %s", st.Name, scopeName(scope)),
					StateName: st.Name,
					Fix:       fmt.Sprintf("add a transition path to %q or remove it", st.Name),
				})
			}
		}
		return diags
	})
}
