package modelbuild

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pathgen/stategraph/pumllexer"
	"github.com/pathgen/stategraph/statemodel"
)

func buildSource(t *testing.T, src string) *statemodel.Diagram {
	t.Helper()
	diagram, err := ParseSource([]byte(src))
	require.NoError(t, err)
	return diagram
}

func TestBuildPlainStates(t *testing.T) {
	diagram := buildSource(t, `
state Idle
state Busy
`)
	assert.Equal(t, 2, diagram.StateCount())
	assert.True(t, diagram.HasState("Idle"))
	assert.True(t, diagram.HasState("Busy"))
}

func TestBuildStateDeclaredTwiceMergesAttributes(t *testing.T) {
	diagram := buildSource(t, `
state S : first
state S : second
`)
	assert.Equal(t, 1, diagram.StateCount())
	st, err := diagram.GetState("S")
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, st.Attrs)
}

func TestBuildSuperstateNesting(t *testing.T) {
	diagram := buildSource(t, `
state Outer {
  state Inner {
    state Leaf
  }
}
state Plain
`)
	outer, err := diagram.GetState("Outer")
	require.NoError(t, err)
	assert.Equal(t, []string{"Inner"}, outer.SubstateNames())

	inner, err := diagram.GetState("Inner")
	require.NoError(t, err)
	assert.Equal(t, []string{"Leaf"}, inner.SubstateNames())

	leaf, err := diagram.GetState("Leaf")
	require.NoError(t, err)
	assert.Same(t, inner, leaf.Parent())

	plain, err := diagram.GetState("Plain")
	require.NoError(t, err)
	assert.Nil(t, plain.Parent())
}

func TestBuildStateAfterScopeCloseJoinsOuterScope(t *testing.T) {
	diagram := buildSource(t, `
state Super {
  state Sub
}
state After
`)
	after, err := diagram.GetState("After")
	require.NoError(t, err)
	assert.Nil(t, after.Parent())
	assert.Len(t, diagram.States(), 2) // Super and After at top level
}

func TestBuildTransitions(t *testing.T) {
	diagram := buildSource(t, `
[*] --> Idle
Idle --> Busy : work arrives
Busy --> [*]
`)
	assert.Equal(t, 3, diagram.TransitionCount())
	labeled := diagram.GetTransitions("Idle", "Busy")
	require.Len(t, labeled, 1)
	assert.Equal(t, []string{"work arrives"}, labeled[0].Attrs)

	starts := diagram.GetStartStates()
	require.Len(t, starts, 1)
	assert.Equal(t, statemodel.StartName, starts[0].Name)
}

func TestBuildSentinelsShared(t *testing.T) {
	diagram := buildSource(t, `
[*] --> A
[*] --> B
A --> [*]
B --> [*]
`)
	fromStart := diagram.GetTransitions(statemodel.StartName, "")
	require.Len(t, fromStart, 2)
	assert.Same(t, fromStart[0].Sources[0], fromStart[1].Sources[0])

	toEnd := diagram.GetTransitions("", statemodel.EndName)
	require.Len(t, toEnd, 2)
	assert.Same(t, toEnd[0].Destinations[0], toEnd[1].Destinations[0])
}

func TestBuildTransitionInsideSuperstate(t *testing.T) {
	diagram := buildSource(t, `
state Active {
  Running --> Paused
}
`)
	active, err := diagram.GetState("Active")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Running", "Paused"}, active.SubstateNames())
	assert.Len(t, active.Substates().Transitions(), 1)
	assert.Empty(t, diagram.Transitions())
}

func TestBuildMissingDestinationAborts(t *testing.T) {
	builder := NewBuilder()
	diagram, err := builder.Build(&sliceSource{toks: []pumllexer.Token{
		tok(pumllexer.KindState, "X"),
		tok(pumllexer.KindTransSource, "A"),
	}})

	require.Error(t, err)
	assert.Nil(t, diagram, "no partial model on fatal errors")

	var berr *BuildError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, MissingDestination, berr.Kind)
	assert.Contains(t, berr.Message, "A")
}

func TestBuildAliasUnsupported(t *testing.T) {
	diagram, err := ParseSource([]byte(`state "Long Name" as L`))
	require.Error(t, err)
	assert.Nil(t, diagram)

	var berr *BuildError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, AliasUnsupported, berr.Kind)
}

func TestBuildScopeCloseUnderflow(t *testing.T) {
	diagram, err := ParseSource([]byte(`
state A
}
`))
	require.Error(t, err)
	assert.Nil(t, diagram)

	var berr *BuildError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, StackUnderflow, berr.Kind)
}

func TestBuildUnclosedScopeRecordsDiagnostic(t *testing.T) {
	builder := NewBuilder()
	diagram, err := builder.Build(pumllexer.New([]byte(`
state Open {
  state Inner
`)))
	require.NoError(t, err, "unclosed scopes are best-effort, not fatal")
	require.NotNil(t, diagram)

	diags := builder.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, "unclosed_scope", diags[0].Rule)
	assert.Equal(t, "Open", diags[0].StateName)
}

func TestBuildDroppedTokenDiagnostic(t *testing.T) {
	builder := NewBuilder()
	_, err := builder.Build(&sliceSource{toks: []pumllexer.Token{
		tok(pumllexer.KindTransDest, "orphan"),
		tok(pumllexer.KindState, "A"),
	}})
	require.NoError(t, err)

	diags := builder.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, "pending_token", diags[0].Rule)
}

func TestBuildEvents(t *testing.T) {
	builder := NewBuilder()
	var types []EventType
	builder.Events().On(func(e Event) {
		types = append(types, e.Type)
	})

	_, err := builder.Build(pumllexer.New([]byte(`
state Super {
  state Sub
}
Super --> Done
`)))
	require.NoError(t, err)

	assert.Equal(t, []EventType{
		EventSuperstateOpened,
		EventStateAdded,
		EventSuperstateClosed,
		EventTransitionAdded,
	}, types)
}

func TestBuilderInstancesAreIndependent(t *testing.T) {
	first := NewBuilder()
	second := NewBuilder()

	d1, err := first.Build(pumllexer.New([]byte(`state A`)))
	require.NoError(t, err)
	d2, err := second.Build(pumllexer.New([]byte(`state B`)))
	require.NoError(t, err)

	assert.True(t, d1.HasState("A"))
	assert.False(t, d1.HasState("B"))
	assert.True(t, d2.HasState("B"))
	assert.False(t, d2.HasState("A"))
}

func TestBuilderReuseStartsFresh(t *testing.T) {
	builder := NewBuilder()
	d1, err := builder.Build(pumllexer.New([]byte(`state A`)))
	require.NoError(t, err)
	d2, err := builder.Build(pumllexer.New([]byte(`state B`)))
	require.NoError(t, err)

	assert.NotSame(t, d1, d2)
	assert.False(t, d2.HasState("A"))
}

func TestBuildAndFlattenEndToEnd(t *testing.T) {
	diagram := buildSource(t, `
@startuml
state Idle
state Active {
  state Running
}
Idle --> Active
Active --> [*]
@enduml
`)
	flat := diagram.FlattenGraph()

	var names []string
	for _, st := range flat.States() {
		names = append(names, st.Name)
	}
	assert.ElementsMatch(t, []string{"Idle", "Running", "END"}, names)
	assert.True(t, flat.HasEdge("Idle", "Running"))
	assert.True(t, flat.HasEdge("Running", "END"))
}
