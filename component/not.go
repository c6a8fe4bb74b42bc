package component

import "github.com/sarchlab/circuitsim/isa"

// Not is a one-input, one-output inverter.
type Not struct {
	Bits int
}

// InputCount implements Component.
func (Not) InputCount() int { return 1 }

// OutputCount implements Component.
func (Not) OutputCount() int { return 1 }

// InputWidth implements Component.
func (n Not) InputWidth(i int) (int, bool) { return widthOf(i, 1, n.Bits) }

// OutputWidth implements Component.
func (n Not) OutputWidth(i int) (int, bool) { return widthOf(i, 1, n.Bits) }

// GenerateIR emits Copy in[0] -> acc; Xori all-ones(bits); Save -> out[0].
func (n Not) GenerateIR(in, out []isa.Slot, em isa.Emitter, _ int) int {
	em.Emit(startLoad(in[0]))
	em.Emit(isa.XoriOp(allOnes(n.Bits)))
	em.Emit(isa.SaveOp(out[0]))

	return 0
}
