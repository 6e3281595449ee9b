package statemodel

// Edge records one directed (source, destination) pair together with the
// Transition that declared it.
type Edge struct {
	Source *State
	Dest   *State
	Trans  *Transition
}

// Diagram is one scope of the hierarchical state graph. The root Diagram
// holds the top-level states; every superstate owns a nested child Diagram of
// its substates, recursively, forming an ownership tree.
//
// All mutating operations are addressed to the root and routed to the scope
// named by their parent argument, so a single Diagram value represents the
// whole model.
type Diagram struct {
	states      map[string]*State // states declared directly in this scope, by name
	topLevel    []*State          // same states in declaration order
	transitions []*Transition     // transitions declared at this scope
	edges       []Edge            // directed-edge relation of this scope

	owner *State   // superstate owning this scope, nil at the root
	outer *Diagram // scope containing the owner, nil at the root
}

// NewDiagram creates an empty root Diagram.
func NewDiagram() *Diagram {
	return &Diagram{states: make(map[string]*State)}
}

// Owner returns the superstate owning this scope, or nil at the root.
func (d *Diagram) Owner() *State { return d.owner }

// States returns the states declared directly in this scope, in declaration
// order.
func (d *Diagram) States() []*State { return d.topLevel }

// Transitions returns the transitions declared at this scope.
func (d *Diagram) Transitions() []*Transition { return d.transitions }

// Edges returns the directed-edge relation of this scope.
func (d *Diagram) Edges() []Edge { return d.edges }

// AddState declares a state in the scope named by parent ("" for the
// receiving scope). Declaration is idempotent: re-declaring a name in the
// same scope merges the supplied attributes into the existing state instead
// of creating a duplicate.
func (d *Diagram) AddState(name, parent string, attrs ...string) (*State, error) {
	scope, err := d.resolveScope(parent)
	if err != nil {
		return nil, err
	}
	st, ok := scope.states[name]
	if !ok {
		st = scope.declare(name)
	}
	st.Attrs = append(st.Attrs, attrs...)
	return st, nil
}

// AddStateAttr attaches an attribute value to the named state, wherever in
// the scope tree it was declared.
func (d *Diagram) AddStateAttr(name, attr string) error {
	st, _, ok := d.findState(name)
	if !ok {
		return &NotFoundError{Name: name}
	}
	st.AddAttr(attr)
	return nil
}

// AddTransition declares a transition in the scope named by parent ("" for
// the receiving scope). The [*] marker is canonicalized to the shared START
// state as a source and the shared END state as a destination; sentinels
// always resolve within the declaring scope. Other endpoint names resolve
// lexically outward from the declaring scope and are auto-created there when
// absent, tolerating forward references.
func (d *Diagram) AddTransition(source, dest, parent string, attrs ...string) (*Transition, error) {
	if source == startEndMarker {
		source = StartName
	}
	if dest == startEndMarker {
		dest = EndName
	}

	scope, err := d.resolveScope(parent)
	if err != nil {
		return nil, err
	}

	src := scope.resolveEndpoint(source)
	dst := scope.resolveEndpoint(dest)

	t := newTransition(src, dst, attrs...)
	scope.transitions = append(scope.transitions, t)
	scope.edges = append(scope.edges, Edge{Source: src, Dest: dst, Trans: t})

	src.addDestination(dst)
	dst.addSource(src)
	return t, nil
}

// GetState resolves a state name by breadth-first search starting at the
// receiving scope and descending into nested scopes, so an outer declaration
// shadows inner ones of the same name.
func (d *Diagram) GetState(name string) (*State, error) {
	st, _, ok := d.findState(name)
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return st, nil
}

// HasState reports whether the name resolves anywhere in the scope tree.
func (d *Diagram) HasState(name string) bool {
	_, _, ok := d.findState(name)
	return ok
}

// GetTransitions returns this scope's transitions whose endpoints match both
// filters. An empty string matches any endpoint; the [*] marker matches the
// corresponding sentinel.
func (d *Diagram) GetTransitions(source, dest string) []*Transition {
	if source == startEndMarker {
		source = StartName
	}
	if dest == startEndMarker {
		dest = EndName
	}

	var matched []*Transition
	for _, t := range d.transitions {
		if source != "" && !hasEndpointNamed(t.Sources, source) {
			continue
		}
		if dest != "" && !hasEndpointNamed(t.Destinations, dest) {
			continue
		}
		matched = append(matched, t)
	}
	return matched
}

// GetStartStates returns the states of this scope that no transition in the
// scope targets.
func (d *Diagram) GetStartStates() []*State {
	var starts []*State
	for _, st := range d.topLevel {
		if st.IsStartState(false) {
			starts = append(starts, st)
		}
	}
	return starts
}

// GetEndStates returns the states of this scope with no outgoing transitions
// in the scope.
func (d *Diagram) GetEndStates() []*State {
	var ends []*State
	for _, st := range d.topLevel {
		if st.IsEndState(false) {
			ends = append(ends, st)
		}
	}
	return ends
}

// StateCount returns the number of states in this scope and every nested
// scope.
func (d *Diagram) StateCount() int {
	count := len(d.topLevel)
	for _, st := range d.topLevel {
		if st.substates != nil {
			count += st.substates.StateCount()
		}
	}
	return count
}

// TransitionCount returns the number of transitions declared in this scope
// and every nested scope.
func (d *Diagram) TransitionCount() int {
	count := len(d.transitions)
	for _, st := range d.topLevel {
		if st.substates != nil {
			count += st.substates.TransitionCount()
		}
	}
	return count
}

// declare creates and registers a new state directly in this scope.
func (d *Diagram) declare(name string) *State {
	st := &State{Name: name, parent: d.owner}
	d.states[name] = st
	d.topLevel = append(d.topLevel, st)
	return st
}

// resolveEndpoint resolves a transition endpoint name within this scope.
// Sentinels are strictly scope-local; other names are searched lexically
// through the enclosing scopes and auto-created locally when absent.
func (d *Diagram) resolveEndpoint(name string) *State {
	if name == StartName || name == EndName {
		if st, ok := d.states[name]; ok {
			return st
		}
		return d.declare(name)
	}
	for scope := d; scope != nil; scope = scope.outer {
		if st, ok := scope.states[name]; ok {
			return st
		}
	}
	return d.declare(name)
}

// resolveScope maps a parent state name to its child scope. The empty name
// selects the receiving scope.
func (d *Diagram) resolveScope(parent string) (*Diagram, error) {
	if parent == "" {
		return d, nil
	}
	st, holder, ok := d.findState(parent)
	if !ok {
		return nil, &NotFoundError{Name: parent}
	}
	return st.ensureSubstates(holder), nil
}

// findState searches breadth-first, outer scopes before inner, for a state by
// name. Returns the state and the scope that directly declares it.
func (d *Diagram) findState(name string) (*State, *Diagram, bool) {
	queue := []*Diagram{d}
	for len(queue) > 0 {
		scope := queue[0]
		queue = queue[1:]
		if st, ok := scope.states[name]; ok {
			return st, scope, true
		}
		for _, st := range scope.topLevel {
			if st.substates != nil {
				queue = append(queue, st.substates)
			}
		}
	}
	return nil, nil, false
}

func hasEndpointNamed(states []*State, name string) bool {
	for _, st := range states {
		if st.Name == name {
			return true
		}
	}
	return false
}
