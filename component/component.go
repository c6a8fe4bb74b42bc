// Package component is the registry of primitive component kinds a Circuit
// can place: external I/O labels, the boolean gates, and read-only memory.
// Each kind is a distinct Go type implementing Component, which keeps
// dispatch a plain interface method call in the compiler (package vm), plus
// a type switch over the In/Out kinds for its boundary maps, rather than a
// reflection-based capability table — the Design Notes in the spec call
// this out as the preferred shape.
package component

import "github.com/sarchlab/circuitsim/isa"

// Component is the capability every placeable primitive exposes to the
// graph and IR compiler. A new kind that implements it compiles without
// other changes; circuit's port layout and persist's codec list the known
// kinds explicitly, so an unlisted kind gets no placed ports and cannot be
// encoded or decoded.
type Component interface {
	InputCount() int
	OutputCount() int

	// InputWidth and OutputWidth report the bit width of port i, or ok=false
	// if i is out of range.
	InputWidth(i int) (width int, ok bool)
	OutputWidth(i int) (width int, ok bool)

	// GenerateIR appends this node's instructions through em, reading
	// inputSlots[i] for input port i and writing outputSlots[i] for output
	// port i (isa.Sentinel for an unconnected port). memoryCursor is the
	// next free double-buffered memory slot; the return value is how many
	// additional slots (beyond memoryCursor) this node needs reserved for
	// it. Most kinds return 0.
	GenerateIR(inputSlots, outputSlots []isa.Slot, em isa.Emitter, memoryCursor int) (extraMemory int)
}

func allOnes(bits int) uint32 {
	if bits <= 0 {
		return 0
	}
	if bits >= 32 {
		return 0xFFFFFFFF
	}

	return uint32(1)<<uint(bits) - 1
}

func widthOf(i, count, bits int) (int, bool) {
	if i < 0 || i >= count {
		return 0, false
	}

	return bits, true
}
