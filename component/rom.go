package component

import "github.com/sarchlab/circuitsim/isa"

// ROM is a read-only memory primitive: one address input, one data output.
// Contents is shared by reference with the compiled Program and every
// State built from it, per the spec's shared-resource policy; editing it
// produces a new Program rather than mutating a live one.
type ROM struct {
	Contents []uint32
	AddrBits int
	DataBits int
}

// NewROM returns a ROM with the spec's default 32/32 bit widths.
func NewROM(contents []uint32) ROM {
	return ROM{Contents: contents, AddrBits: 32, DataBits: 32}
}

// InputCount implements Component.
func (ROM) InputCount() int { return 1 }

// OutputCount implements Component.
func (ROM) OutputCount() int { return 1 }

// InputWidth implements Component.
func (r ROM) InputWidth(i int) (int, bool) { return widthOf(i, 1, r.AddrBits) }

// OutputWidth implements Component.
func (r ROM) OutputWidth(i int) (int, bool) { return widthOf(i, 1, r.DataBits) }

// GenerateIR emits Copy in[0] -> acc; Read from a table registered with em;
// Save -> out[0]. ROM needs no extra double-buffered memory slots: its
// contents live in the Program's separate table list, addressed by the
// Read op's Memory index rather than by a Slot.
func (r ROM) GenerateIR(in, out []isa.Slot, em isa.Emitter, _ int) int {
	table := em.RegisterTable(r.Contents)

	em.Emit(startLoad(in[0]))
	em.Emit(isa.ReadOp(table))
	em.Emit(isa.SaveOp(out[0]))

	return 0
}
