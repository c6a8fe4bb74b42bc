// Package vm holds the compiled program representation and the interpreter
// that executes it — the IR compiler (spec §4.5) and the interpreter
// (spec §4.6) live in one package because they share the Program/op
// vocabulary as tightly as zeonica's own core package shares a compiled
// Program with the emulator that runs it.
package vm

import (
	"github.com/rs/xid"
	"github.com/sarchlab/circuitsim/isa"
)

// BoundaryEntry maps an external input or output index to a memory slot
// and the bit mask that applies to it. Slot is isa.Sentinel if that
// external index has nothing wired to it.
type BoundaryEntry struct {
	Slot isa.Slot
	Mask uint32
}

// NodeProgram is one graph node's compiled instruction sequence.
type NodeProgram struct {
	Ops []isa.Op
}

// Program is the immutable artifact produced by Compile. It may be shared
// by reference across any number of States; each State owns its own
// memory banks and dirty sets exclusively.
type Program struct {
	// ID distinguishes one compiled snapshot from another in logs and
	// hook output — useful when State.Adapt moves a running State onto a
	// Program recompiled from edits to the same circuit.
	ID xid.ID

	Nodes      []NodeProgram
	MemorySize int

	// NexusMap is kept only for introspection/debugging; compiled ops
	// already carry slots directly.
	NexusMap map[uint32]isa.Slot

	InputMap      []BoundaryEntry
	OutputMap     []BoundaryEntry
	InputNodesMap [][]int // external input idx -> node indices touched

	// Tables holds read-only lookup data registered by stateful
	// components (currently only ReadOnlyMemory) during compilation.
	// isa.Op.Memory indexes into this slice. Tables are shared by
	// reference with every State built from this Program.
	Tables [][]uint32

	// Shorted marks nexus slots the compiler found driven by more than
	// one output port (spec's MultiplyDrivenNexus condition). Any
	// external output whose boundary slot is in this set reads back as
	// OutputShort regardless of memory contents.
	Shorted map[isa.Slot]bool
}

// newProgram is used by Compile to build a Program incrementally.
func newProgram() *Program {
	return &Program{
		ID:       xid.New(),
		NexusMap: make(map[uint32]isa.Slot),
		Shorted:  make(map[isa.Slot]bool),
	}
}
