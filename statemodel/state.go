package statemodel

// StartName and EndName are the canonical names given to the shared sentinel
// states created from the diagram's anonymous [*] start/end marker.
const (
	StartName = "START"
	EndName   = "END"
)

// startEndMarker is the literal endpoint notation rewritten to the sentinels.
const startEndMarker = "[*]"

// State is a single node of the diagram. A State with substates is a
// superstate: it owns a nested child Diagram holding them.
//
// Sources and Destinations are scope-local: they list the states that
// transition into and out of this state within the scope that declared the
// transition. They reference, never own, their entries.
type State struct {
	Name  string
	Attrs []string

	parent       *State   // enclosing superstate, nil at the root scope
	substates    *Diagram // owned child scope, lazily populated
	sources      []*State
	destinations []*State
	active       bool
}

// Parent returns the enclosing superstate, or nil at the root scope.
func (s *State) Parent() *State { return s.parent }

// Substates returns the child Diagram owned by this state.
// It is empty unless substates were declared.
func (s *State) Substates() *Diagram { return s.substates }

// HasSubstates reports whether this state is a superstate.
func (s *State) HasSubstates() bool {
	return s.substates != nil && len(s.substates.topLevel) > 0
}

// SubstateNames returns the names of the directly nested substates in
// declaration order.
func (s *State) SubstateNames() []string {
	if s.substates == nil {
		return nil
	}
	names := make([]string, 0, len(s.substates.topLevel))
	for _, sub := range s.substates.topLevel {
		names = append(names, sub.Name)
	}
	return names
}

// Sources returns the states that transition into this state in its own scope.
func (s *State) Sources() []*State { return s.sources }

// Destinations returns the states this state transitions to in its own scope.
func (s *State) Destinations() []*State { return s.destinations }

// AddAttr appends an attribute value to the state.
func (s *State) AddAttr(attr string) {
	s.Attrs = append(s.Attrs, attr)
}

// IsStartState reports whether the state is a starting state. The local form
// (global == false) is true iff no transition in the state's own scope targets
// it. The global form also holds when any enclosing superstate is itself a
// global start state, recursing through every ancestor.
func (s *State) IsStartState(global bool) bool {
	local := len(s.sources) == 0
	if global && s.parent != nil {
		return local || s.parent.IsStartState(true)
	}
	return local
}

// IsEndState is the symmetric form of IsStartState over outgoing transitions.
func (s *State) IsEndState(global bool) bool {
	local := len(s.destinations) == 0
	if global && s.parent != nil {
		return local || s.parent.IsEndState(true)
	}
	return local
}

// Activate marks the state active. The flag is a runtime marker for
// downstream consumers; parsing and flattening never read it.
func (s *State) Activate() { s.active = true }

// Deactivate clears the active flag.
func (s *State) Deactivate() { s.active = false }

// IsActive reports whether the state is marked active.
func (s *State) IsActive() bool { return s.active }

func (s *State) addSource(src *State) {
	s.sources = append(s.sources, src)
}

func (s *State) addDestination(dst *State) {
	s.destinations = append(s.destinations, dst)
}

// ensureSubstates lazily creates the owned child Diagram.
func (s *State) ensureSubstates(outer *Diagram) *Diagram {
	if s.substates == nil {
		s.substates = &Diagram{
			states: make(map[string]*State),
			owner:  s,
			outer:  outer,
		}
	}
	return s.substates
}

// Transition connects ordered source states to ordered destination states.
// Endpoint lists reference states owned by the Diagram; a Transition does not
// outlive the Diagram holding it.
type Transition struct {
	Sources      []*State
	Destinations []*State
	Attrs        []string
}

func newTransition(source, dest *State, attrs ...string) *Transition {
	t := &Transition{
		Sources:      []*State{source},
		Destinations: []*State{dest},
	}
	t.Attrs = append(t.Attrs, attrs...)
	return t
}

// AddAttr appends an attribute value to the transition.
func (t *Transition) AddAttr(attr string) {
	t.Attrs = append(t.Attrs, attr)
}

// HasSource reports whether the transition lists the given state as a source.
func (t *Transition) HasSource(s *State) bool {
	for _, src := range t.Sources {
		if src == s {
			return true
		}
	}
	return false
}

// HasDestination reports whether the transition lists the given state as a
// destination.
func (t *Transition) HasDestination(s *State) bool {
	for _, dst := range t.Destinations {
		if dst == s {
			return true
		}
	}
	return false
}
