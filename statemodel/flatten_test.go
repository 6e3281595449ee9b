package statemodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatNames(g *FlatGraph) []string {
	names := make([]string, 0, len(g.States()))
	for _, st := range g.States() {
		names = append(names, st.Name)
	}
	return names
}

func TestFlattenNoSuperstates(t *testing.T) {
	d := NewDiagram()
	_, err := d.AddTransition("A", "B", "")
	require.NoError(t, err)

	flat := d.FlattenGraph()
	assert.ElementsMatch(t, []string{"A", "B"}, flatNames(flat))
	assert.True(t, flat.HasEdge("A", "B"))
	assert.Len(t, flat.Edges(), 1)
}

func TestFlattenPreservesReachability(t *testing.T) {
	// A -> B where B contains X -> Y, and B -> C outside.
	d := NewDiagram()
	_, err := d.AddTransition("A", "B", "")
	require.NoError(t, err)
	_, err = d.AddTransition("B", "C", "")
	require.NoError(t, err)
	_, err = d.AddTransition("X", "Y", "B")
	require.NoError(t, err)

	flat := d.FlattenGraph()

	assert.ElementsMatch(t, []string{"A", "C", "X", "Y"}, flatNames(flat))
	assert.True(t, flat.HasEdge("A", "X"), "external sources stitch to internal entry states")
	assert.True(t, flat.HasEdge("Y", "C"), "internal exit states stitch to external destinations")
	assert.True(t, flat.HasEdge("X", "Y"), "internal edges are merged")
	_, found := flat.State("B")
	assert.False(t, found, "collapsed superstate must be removed")
}

func TestFlattenSingleSubstate(t *testing.T) {
	// Idle -> Active where Active contains only Running, then Active -> END.
	// Running is simultaneously start and end of its own scope.
	d := NewDiagram()
	_, err := d.AddState("Active", "")
	require.NoError(t, err)
	_, err = d.AddState("Running", "Active")
	require.NoError(t, err)
	_, err = d.AddTransition("Idle", "Active", "")
	require.NoError(t, err)
	_, err = d.AddTransition("Active", "[*]", "")
	require.NoError(t, err)

	flat := d.FlattenGraph()

	assert.ElementsMatch(t, []string{"Idle", "Running", "END"}, flatNames(flat))
	assert.True(t, flat.HasEdge("Idle", "Running"))
	assert.True(t, flat.HasEdge("Running", "END"))
	assert.Len(t, flat.Edges(), 2)
}

func TestFlattenSuperstateChain(t *testing.T) {
	// B -> A where both are superstates; B's exit must reach A's entry no
	// matter which superstate collapses first.
	d := NewDiagram()
	_, err := d.AddTransition("B", "A", "")
	require.NoError(t, err)
	_, err = d.AddTransition("B1", "B2", "B")
	require.NoError(t, err)
	_, err = d.AddTransition("A1", "A2", "A")
	require.NoError(t, err)

	flat := d.FlattenGraph()

	assert.ElementsMatch(t, []string{"A1", "A2", "B1", "B2"}, flatNames(flat))
	assert.True(t, flat.HasEdge("B1", "B2"))
	assert.True(t, flat.HasEdge("A1", "A2"))
	assert.True(t, flat.HasEdge("B2", "A1"), "exit of B stitches to entry of A")
	assert.Len(t, flat.Edges(), 3)
}

func TestFlattenNestedTwoLevels(t *testing.T) {
	// Outer contains Mid, Mid contains Leaf1 -> Leaf2.
	d := NewDiagram()
	_, err := d.AddState("Outer", "")
	require.NoError(t, err)
	_, err = d.AddState("Mid", "Outer")
	require.NoError(t, err)
	_, err = d.AddTransition("Leaf1", "Leaf2", "Mid")
	require.NoError(t, err)
	_, err = d.AddTransition("Entry", "Outer", "")
	require.NoError(t, err)
	_, err = d.AddTransition("Outer", "Exit", "")
	require.NoError(t, err)

	flat := d.FlattenGraph()

	assert.ElementsMatch(t, []string{"Entry", "Leaf1", "Leaf2", "Exit"}, flatNames(flat))
	assert.True(t, flat.HasEdge("Entry", "Leaf1"))
	assert.True(t, flat.HasEdge("Leaf1", "Leaf2"))
	assert.True(t, flat.HasEdge("Leaf2", "Exit"))
}

func TestFlattenMultipleEntriesAndExits(t *testing.T) {
	// Super contains two disconnected internal states; both are entry and
	// exit, so both must receive the stitched boundary edges.
	d := NewDiagram()
	_, err := d.AddState("Super", "")
	require.NoError(t, err)
	_, err = d.AddState("P", "Super")
	require.NoError(t, err)
	_, err = d.AddState("Q", "Super")
	require.NoError(t, err)
	_, err = d.AddTransition("In", "Super", "")
	require.NoError(t, err)
	_, err = d.AddTransition("Super", "Out", "")
	require.NoError(t, err)

	flat := d.FlattenGraph()

	for _, inner := range []string{"P", "Q"} {
		assert.True(t, flat.HasEdge("In", inner))
		assert.True(t, flat.HasEdge(inner, "Out"))
	}
}

func TestFlattenDoesNotMutateSource(t *testing.T) {
	d := NewDiagram()
	_, err := d.AddTransition("A", "B", "")
	require.NoError(t, err)
	_, err = d.AddTransition("X", "Y", "B")
	require.NoError(t, err)

	statesBefore := d.StateCount()
	transBefore := d.TransitionCount()
	edgesBefore := len(d.Edges())

	_ = d.FlattenGraph()

	assert.Equal(t, statesBefore, d.StateCount())
	assert.Equal(t, transBefore, d.TransitionCount())
	assert.Len(t, d.Edges(), edgesBefore)

	b, err := d.GetState("B")
	require.NoError(t, err)
	assert.True(t, b.HasSubstates(), "superstate keeps its substates after flattening")
}

func TestFlatGraphStartEndStates(t *testing.T) {
	d := NewDiagram()
	_, err := d.AddTransition("A", "B", "")
	require.NoError(t, err)
	_, err = d.AddTransition("B", "C", "")
	require.NoError(t, err)

	flat := d.FlattenGraph()

	starts := flat.StartStates()
	require.Len(t, starts, 1)
	assert.Equal(t, "A", starts[0].Name)

	ends := flat.EndStates()
	require.Len(t, ends, 1)
	assert.Equal(t, "C", ends[0].Name)
}

func TestFlattenStitchedEdgesCarryNoTransition(t *testing.T) {
	d := NewDiagram()
	_, err := d.AddTransition("A", "B", "")
	require.NoError(t, err)
	_, err = d.AddTransition("X", "Y", "B")
	require.NoError(t, err)

	flat := d.FlattenGraph()
	for _, e := range flat.Edges() {
		if e.From.Name == "A" && e.To.Name == "X" {
			assert.Nil(t, e.Trans, "stitched boundary edge has no owning transition")
		}
		if e.From.Name == "X" && e.To.Name == "Y" {
			assert.NotNil(t, e.Trans, "declared edge keeps its transition")
		}
	}
}
