package vm

import (
	"testing"

	"github.com/sarchlab/circuitsim/component"
	"github.com/sarchlab/circuitsim/graph"
)

func buildNotCircuit() *graph.Graph[component.Component, struct{}, []int] {
	g := graph.New[component.Component, struct{}, []int]()

	in := g.Add(component.Component(component.In{ExternalIndex: 0, Bits: 1}), struct{}{})
	not := g.Add(component.Component(component.Not{Bits: 1}), struct{}{})
	out := g.Add(component.Component(component.Out{ExternalIndex: 0, Bits: 1}), struct{}{})

	nex1 := g.NewNexus(nil)
	g.Connect(graph.Port{Side: graph.Output, Node: in, Index: 0}, nex1)
	g.Connect(graph.Port{Side: graph.Input, Node: not, Index: 0}, nex1)

	nex2 := g.NewNexus(nil)
	g.Connect(graph.Port{Side: graph.Output, Node: not, Index: 0}, nex2)
	g.Connect(graph.Port{Side: graph.Input, Node: out, Index: 0}, nex2)

	return g
}

func TestCompileAssignsDenseSlotsAndBoundaryMaps(t *testing.T) {
	g := buildNotCircuit()
	prog := Compile(g)

	if len(prog.NexusMap) != 2 {
		t.Fatalf("NexusMap has %d entries, want 2", len(prog.NexusMap))
	}

	if len(prog.InputMap) != 1 || !prog.InputMap[0].Slot.Valid() {
		t.Fatalf("InputMap = %+v, want one valid entry", prog.InputMap)
	}

	if len(prog.OutputMap) != 1 || !prog.OutputMap[0].Slot.Valid() {
		t.Fatalf("OutputMap = %+v, want one valid entry", prog.OutputMap)
	}

	if len(prog.Nodes) != 3 {
		t.Fatalf("Nodes has %d entries, want 3", len(prog.Nodes))
	}
}

func TestCompileSchedulesSourcesFirst(t *testing.T) {
	g := buildNotCircuit()
	_, index := scheduleNodes(g)

	var inIdx, notIdx int
	g.Nodes(func(h graph.NodeHandle, v component.Component, _ struct{}) {
		switch v.(type) {
		case component.In:
			inIdx = index[h]
		case component.Not:
			notIdx = index[h]
		}
	})

	if inIdx >= notIdx {
		t.Fatalf("pure source (In) scheduled at %d, should precede Not at %d", inIdx, notIdx)
	}
}

func TestCompileFlagsMultiplyDrivenNexus(t *testing.T) {
	g := graph.New[component.Component, struct{}, []int]()

	d1 := g.Add(component.Component(component.In{ExternalIndex: 0, Bits: 1}), struct{}{})
	d2 := g.Add(component.Component(component.In{ExternalIndex: 1, Bits: 1}), struct{}{})
	out := g.Add(component.Component(component.Out{ExternalIndex: 0, Bits: 1}), struct{}{})

	nex := g.NewNexus(nil)
	g.Connect(graph.Port{Side: graph.Output, Node: d1, Index: 0}, nex)
	g.Connect(graph.Port{Side: graph.Output, Node: d2, Index: 0}, nex)
	g.Connect(graph.Port{Side: graph.Input, Node: out, Index: 0}, nex)

	prog := Compile(g)

	if len(prog.Shorted) != 1 {
		t.Fatalf("Shorted = %v, want exactly one flagged slot", prog.Shorted)
	}

	outSlot := prog.OutputMap[0].Slot
	if !prog.Shorted[outSlot] {
		t.Fatalf("expected the output's slot %v to be marked shorted", outSlot)
	}
}
