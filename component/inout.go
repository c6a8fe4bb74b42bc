package component

import "github.com/sarchlab/circuitsim/isa"

// In is an external input label: zero inputs, one output, feeding a value
// the upper layer drives through State.WriteInputs at ExternalIndex.
type In struct {
	Label         string
	ExternalIndex int
	Bits          int
}

// InputCount implements Component.
func (In) InputCount() int { return 0 }

// OutputCount implements Component.
func (In) OutputCount() int { return 1 }

// InputWidth implements Component.
func (In) InputWidth(int) (int, bool) { return 0, false }

// OutputWidth implements Component.
func (c In) OutputWidth(i int) (int, bool) { return widthOf(i, 1, c.Bits) }

// GenerateIR keeps the output slot's own value alive across a step: the
// actual external value is written directly into that slot by
// State.WriteInputs, so this node's op list just needs to start from a
// defined value (the spec's "Load-from-input slot") and re-save it so
// downstream CheckDirty/Save bookkeeping stays uniform across node kinds.
func (c In) GenerateIR(_, out []isa.Slot, em isa.Emitter, _ int) int {
	em.Emit(startLoad(out[0]))
	em.Emit(isa.SaveOp(out[0]))

	return 0
}

// Out is an external output label: one input, zero outputs. Its value is
// read directly off the nexus behind its input port via the compiled
// output map, not through an output slot of its own.
type Out struct {
	Label         string
	ExternalIndex int
	Bits          int
}

// InputCount implements Component.
func (Out) InputCount() int { return 1 }

// OutputCount implements Component.
func (Out) OutputCount() int { return 0 }

// InputWidth implements Component.
func (c Out) InputWidth(i int) (int, bool) { return widthOf(i, 1, c.Bits) }

// OutputWidth implements Component.
func (Out) OutputWidth(int) (int, bool) { return 0, false }

// GenerateIR emits nothing: Out has no output slots of its own and
// reading its value back through the output map reads the slot its input
// is wired to directly. An earlier version of this re-saved the input
// slot to mirror the spec's per-node Copy/Save table uniformly, but that
// clobbers whatever value the actual driving node wrote into that shared
// slot during the same step whenever Out happens to be scheduled after
// its driver — a purely passive sink must not write at all.
func (c Out) GenerateIR(_, _ []isa.Slot, _ isa.Emitter, _ int) int {
	return 0
}

func startLoad(slot isa.Slot) isa.Op {
	if slot.Valid() {
		return isa.CopyOp(slot)
	}

	return isa.LoadOp(0)
}
