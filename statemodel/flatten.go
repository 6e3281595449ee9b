package statemodel

// FlatEdge is one directed edge of a flattened graph. Trans is nil for edges
// synthesized while stitching a collapsed superstate's boundary.
type FlatEdge struct {
	From  *State
	To    *State
	Trans *Transition
}

// FlatGraph is the read-only result of flattening a Diagram: a single scope
// with every superstate collapsed. It references the source Diagram's states
// without mutating them.
type FlatGraph struct {
	states  []*State
	present map[*State]bool
	edges   []FlatEdge
	edgeSet map[[2]*State]bool
}

func newFlatGraph() *FlatGraph {
	return &FlatGraph{
		present: make(map[*State]bool),
		edgeSet: make(map[[2]*State]bool),
	}
}

// States returns the flattened states in a stable order.
func (g *FlatGraph) States() []*State { return g.states }

// Edges returns the flattened edges.
func (g *FlatGraph) Edges() []FlatEdge { return g.edges }

// State returns the first flattened state with the given name.
func (g *FlatGraph) State(name string) (*State, bool) {
	for _, st := range g.states {
		if st.Name == name {
			return st, true
		}
	}
	return nil, false
}

// HasEdge reports whether an edge connects states with the given names.
func (g *FlatGraph) HasEdge(from, to string) bool {
	for _, e := range g.edges {
		if e.From.Name == from && e.To.Name == to {
			return true
		}
	}
	return false
}

// StartStates returns the flattened states with no incoming edge.
func (g *FlatGraph) StartStates() []*State {
	hasIncoming := make(map[*State]bool, len(g.states))
	for _, e := range g.edges {
		hasIncoming[e.To] = true
	}
	var starts []*State
	for _, st := range g.states {
		if !hasIncoming[st] {
			starts = append(starts, st)
		}
	}
	return starts
}

// EndStates returns the flattened states with no outgoing edge.
func (g *FlatGraph) EndStates() []*State {
	hasOutgoing := make(map[*State]bool, len(g.states))
	for _, e := range g.edges {
		hasOutgoing[e.From] = true
	}
	var ends []*State
	for _, st := range g.states {
		if !hasOutgoing[st] {
			ends = append(ends, st)
		}
	}
	return ends
}

func (g *FlatGraph) addState(st *State) {
	if g.present[st] {
		return
	}
	g.present[st] = true
	g.states = append(g.states, st)
}

func (g *FlatGraph) addEdge(from, to *State, trans *Transition) {
	key := [2]*State{from, to}
	if g.edgeSet[key] {
		return
	}
	g.edgeSet[key] = true
	g.edges = append(g.edges, FlatEdge{From: from, To: to, Trans: trans})
}

func (g *FlatGraph) edgesTo(st *State) []FlatEdge {
	var in []FlatEdge
	for _, e := range g.edges {
		if e.To == st {
			in = append(in, e)
		}
	}
	return in
}

func (g *FlatGraph) edgesFrom(st *State) []FlatEdge {
	var out []FlatEdge
	for _, e := range g.edges {
		if e.From == st {
			out = append(out, e)
		}
	}
	return out
}

// removeState deletes a state and every edge incident to it.
func (g *FlatGraph) removeState(st *State) {
	if !g.present[st] {
		return
	}
	delete(g.present, st)

	states := g.states[:0]
	for _, s := range g.states {
		if s != st {
			states = append(states, s)
		}
	}
	g.states = states

	edges := g.edges[:0]
	for _, e := range g.edges {
		if e.From == st || e.To == st {
			delete(g.edgeSet, [2]*State{e.From, e.To})
			continue
		}
		edges = append(edges, e)
	}
	g.edges = edges
}

// FlattenGraph collapses every nested scope into a single graph, preserving
// all reachability visible from outside a superstate.
//
// Each superstate's child scope is flattened recursively first. The child's
// entry states (no incoming edge in the flattened child) are stitched to the
// sources currently reaching the superstate in the result graph, and its exit
// states (no outgoing edge) to the destinations currently reached from it.
// The child's states and edges are then merged into the result and the
// superstate itself removed, together with its incident edges. Stitching
// against the result graph rather than the superstate's declared endpoint
// lists keeps chains of adjacent superstates connected regardless of the
// order they collapse in.
func (d *Diagram) FlattenGraph() *FlatGraph {
	g := newFlatGraph()
	for _, st := range d.topLevel {
		g.addState(st)
	}
	for _, e := range d.edges {
		g.addEdge(e.Source, e.Dest, e.Trans)
	}

	for _, st := range d.topLevel {
		if !st.HasSubstates() {
			continue
		}
		child := st.substates.FlattenGraph()
		entries := child.StartStates()
		exits := child.EndStates()

		for _, in := range g.edgesTo(st) {
			for _, entry := range entries {
				g.addEdge(in.From, entry, nil)
			}
		}
		for _, out := range g.edgesFrom(st) {
			for _, exit := range exits {
				g.addEdge(exit, out.To, nil)
			}
		}

		for _, cs := range child.states {
			g.addState(cs)
		}
		for _, ce := range child.edges {
			g.addEdge(ce.From, ce.To, ce.Trans)
		}
		g.removeState(st)
	}
	return g
}
