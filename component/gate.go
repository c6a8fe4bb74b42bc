package component

import "github.com/sarchlab/circuitsim/isa"

// GateOp names the fold operation a Gate performs across its inputs.
type GateOp uint8

const (
	// AndGate folds its inputs with bitwise AND.
	AndGate GateOp = iota
	// OrGate folds its inputs with bitwise OR.
	OrGate
	// XorGate folds its inputs with bitwise XOR.
	XorGate
)

func (op GateOp) String() string {
	switch op {
	case AndGate:
		return "And"
	case OrGate:
		return "Or"
	case XorGate:
		return "Xor"
	default:
		return "Gate"
	}
}

// Gate is an N-input, 1-output AND/OR/XOR primitive, N >= 2.
type Gate struct {
	Op   GateOp
	N    int
	Bits int
}

// InputCount implements Component.
func (g Gate) InputCount() int { return g.N }

// OutputCount implements Component.
func (Gate) OutputCount() int { return 1 }

// InputWidth implements Component.
func (g Gate) InputWidth(i int) (int, bool) { return widthOf(i, g.N, g.Bits) }

// OutputWidth implements Component.
func (g Gate) OutputWidth(i int) (int, bool) { return widthOf(i, 1, g.Bits) }

// GenerateIR emits the fold: Copy in[0] -> acc; <op> with in[1..N-1]; Save
// -> out[0]. An unconnected input (isa.Sentinel) is skipped by the
// interpreter rather than by the compiler, so folding simply emits the op
// for every input past the first regardless of connectivity.
func (g Gate) GenerateIR(in, out []isa.Slot, em isa.Emitter, _ int) int {
	em.Emit(startLoad(in[0]))

	for i := 1; i < g.N; i++ {
		switch g.Op {
		case AndGate:
			em.Emit(isa.AndOp(in[i]))
		case OrGate:
			em.Emit(isa.OrOp(in[i]))
		case XorGate:
			em.Emit(isa.XorOp(in[i]))
		}
	}

	em.Emit(isa.SaveOp(out[0]))

	return 0
}
