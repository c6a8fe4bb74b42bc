package vm

import (
	"log/slog"

	"github.com/sarchlab/circuitsim/component"
	"github.com/sarchlab/circuitsim/graph"
	"github.com/sarchlab/circuitsim/isa"
)

// Compile walks g and produces an immutable Program, implementing the four
// phases of spec §4.5: slot assignment, scheduling, per-node emission, and
// boundary maps.
//
// Compile is generic over the graph's metadata type M and nexus user-data
// type U so it has no dependency on package circuit — any graph of
// component.Component nodes compiles, which is what lets the spec describe
// generate_ir as an operation of Graph itself while keeping this package
// free to live below circuit in the import graph.
func Compile[M any, U any](g *graph.Graph[component.Component, M, U]) *Program {
	prog := newProgram()

	slots := assignSlots(g, prog)
	order, nodeIndexOf := scheduleNodes(g)

	cursor := len(slots)
	prog.Nodes = make([]NodeProgram, len(order))

	for i, h := range order {
		emitNode(g, h, slots, prog, i, &cursor)
	}

	prog.MemorySize = cursor

	buildBoundaryMaps(g, slots, nodeIndexOf, prog)

	return prog
}

// assignSlots enumerates live nexuses and assigns each a dense slot
// starting at 0, per phase 1. It also flags multiply-driven nexuses
// (spec's MultiplyDrivenNexus condition) rather than failing: the slot is
// still assigned and IR still runs against it, but external outputs wired
// to it will read back as shorted.
func assignSlots[C component.Component, M any, U any](g *graph.Graph[C, M, U], prog *Program) map[graph.NexusHandle]isa.Slot {
	slots := make(map[graph.NexusHandle]isa.Slot)

	var next isa.Slot
	g.Nexuses(func(h graph.NexusHandle, _ U) {
		slot := next
		next++
		slots[h] = slot
		prog.NexusMap[uint32(h)] = slot

		if len(g.Outputs(h)) > 1 {
			prog.Shorted[slot] = true
			slog.Warn("nexus driven by more than one output",
				"nexus", uint32(h), "slot", uint32(slot), "drivers", len(g.Outputs(h)))
		}
	})

	return slots
}

// scheduleNodes implements phase 2: pure sources (no inputs) first, then
// everything else, both in graph iteration order. Cycles (flip-flops,
// latches) are left as-is; the dirty-set interpreter converges on them at
// runtime rather than requiring an acyclic schedule.
func scheduleNodes[C component.Component, M any, U any](g *graph.Graph[C, M, U]) ([]graph.NodeHandle, map[graph.NodeHandle]int) {
	var sources, rest []graph.NodeHandle

	g.Nodes(func(h graph.NodeHandle, value C, _ M) {
		if value.InputCount() == 0 {
			sources = append(sources, h)
		} else {
			rest = append(rest, h)
		}
	})

	order := append(sources, rest...)

	index := make(map[graph.NodeHandle]int, len(order))
	for i, h := range order {
		index[h] = i
	}

	return order, index
}

// nodeEmitter adapts a Program's op-list-under-construction and table list
// to the isa.Emitter interface components generate through.
type nodeEmitter struct {
	ops  *[]isa.Op
	prog *Program
}

func (e *nodeEmitter) Emit(op isa.Op) {
	*e.ops = append(*e.ops, op)
}

func (e *nodeEmitter) RegisterTable(data []uint32) int {
	e.prog.Tables = append(e.prog.Tables, data)

	return len(e.prog.Tables) - 1
}

// emitNode implements phase 3 for one node: resolve its input/output
// slots, call its GenerateIR, then append a CheckDirty per output slot.
// CheckDirty compares wr[slot] to rd[slot], so it must run after the
// component's own Save has updated wr — the reverse of how the spec's
// prose orders the two ("CheckDirty ... followed by the component's own
// ops ending in Save"); see DESIGN.md for why we order Save first.
func emitNode[C component.Component, M any, U any](
	g *graph.Graph[C, M, U],
	h graph.NodeHandle,
	slots map[graph.NexusHandle]isa.Slot,
	prog *Program,
	nodeIdx int,
	cursor *int,
) int {
	value, _, _ := g.Node(h)

	inSlots := portSlots(g, h, graph.Input, value.InputCount(), slots)
	outSlots := portSlots(g, h, graph.Output, value.OutputCount(), slots)

	var ops []isa.Op
	em := &nodeEmitter{ops: &ops, prog: prog}

	extra := value.GenerateIR(inSlots, outSlots, em, *cursor)
	*cursor += extra

	for _, s := range outSlots {
		ops = append(ops, isa.CheckDirtyOp(s, nodeIdx))
	}

	prog.Nodes[nodeIdx] = NodeProgram{Ops: ops}

	return extra
}

func portSlots[C component.Component, M any, U any](
	g *graph.Graph[C, M, U],
	h graph.NodeHandle,
	side graph.Side,
	count int,
	slots map[graph.NexusHandle]isa.Slot,
) []isa.Slot {
	out := make([]isa.Slot, count)
	for i := range out {
		out[i] = isa.Sentinel

		nex, ok := g.PortNexus(graph.Port{Side: side, Node: h, Index: i})
		if !ok {
			continue
		}

		if s, ok := slots[nex]; ok {
			out[i] = s
		}
	}

	return out
}

// buildBoundaryMaps implements phase 4: scan for In/Out components and
// fill InputMap, OutputMap, and InputNodesMap.
func buildBoundaryMaps[M any, U any](
	g *graph.Graph[component.Component, M, U],
	slots map[graph.NexusHandle]isa.Slot,
	nodeIndexOf map[graph.NodeHandle]int,
	prog *Program,
) {
	g.Nodes(func(h graph.NodeHandle, value component.Component, _ M) {
		switch v := value.(type) {
		case component.In:
			growBoundary(&prog.InputMap, v.ExternalIndex)
			growInputNodes(&prog.InputNodesMap, v.ExternalIndex)

			slot := isa.Sentinel
			if nex, ok := g.PortNexus(graph.Port{Side: graph.Output, Node: h, Index: 0}); ok {
				slot = slots[nex]
			}

			prog.InputMap[v.ExternalIndex] = BoundaryEntry{Slot: slot, Mask: maskOf(v.Bits)}

		case component.Out:
			growBoundary(&prog.OutputMap, v.ExternalIndex)

			slot := isa.Sentinel
			if nex, ok := g.PortNexus(graph.Port{Side: graph.Input, Node: h, Index: 0}); ok {
				slot = slots[nex]
			}

			prog.OutputMap[v.ExternalIndex] = BoundaryEntry{Slot: slot, Mask: maskOf(v.Bits)}
		}
	})

	// Second pass: for each external input, find every node whose inputs
	// touch the nexus that input drives (direct fan-out only).
	for idx, entry := range prog.InputMap {
		if !entry.Slot.Valid() {
			continue
		}

		g.Nodes(func(h graph.NodeHandle, value component.Component, _ M) {
			for i := 0; i < value.InputCount(); i++ {
				nex, ok := g.PortNexus(graph.Port{Side: graph.Input, Node: h, Index: i})
				if !ok {
					continue
				}

				if slots[nex] == entry.Slot {
					prog.InputNodesMap[idx] = append(prog.InputNodesMap[idx], nodeIndexOf[h])
					return
				}
			}
		})
	}
}

func growBoundary(m *[]BoundaryEntry, idx int) {
	for len(*m) <= idx {
		*m = append(*m, BoundaryEntry{Slot: isa.Sentinel})
	}
}

func growInputNodes(m *[][]int, idx int) {
	for len(*m) <= idx {
		*m = append(*m, nil)
	}
}

func maskOf(bits int) uint32 {
	if bits <= 0 {
		return 0
	}
	if bits >= 32 {
		return 0xFFFFFFFF
	}

	return uint32(1)<<uint(bits) - 1
}
