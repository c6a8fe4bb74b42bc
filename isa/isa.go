// Package isa defines the single-accumulator instruction set the IR
// compiler emits and the interpreter runs (spec §4.6). It is deliberately
// tiny and has no dependency on graph or component so that both can depend
// on it without creating an import cycle — component.Component.GenerateIR
// emits isa.Op values, and the compiler in package vm turns a graph of
// components into an isa.Op stream per node.
package isa

import "fmt"

// Slot indexes into the interpreter's double-buffered memory banks.
type Slot uint32

// Sentinel marks "no slot" — an unconnected port, per spec §3.
const Sentinel Slot = ^Slot(0)

// Valid reports whether s addresses a real memory slot.
func (s Slot) Valid() bool { return s != Sentinel }

// OpKind names one of the instructions in the single-accumulator IR.
type OpKind uint8

const (
	// Load sets acc to a literal value.
	Load OpKind = iota
	// Copy sets acc to the contents of a memory slot.
	Copy
	// And sets acc to acc & rd[slot].
	And
	// Or sets acc to acc | rd[slot].
	Or
	// Xor sets acc to acc ^ rd[slot].
	Xor
	// Andi sets acc to acc & immediate.
	Andi
	// Xori sets acc to acc ^ immediate.
	Xori
	// Slli sets acc to acc << immediate.
	Slli
	// Srli sets acc to acc >> immediate.
	Srli
	// Read sets acc to memory[acc] (0 if acc is out of range) from the
	// table addressed by Op.Memory.
	Read
	// Save writes acc into wr[slot].
	Save
	// CheckDirty compares wr[slot] and rd[slot]'s low bit and, if they
	// differ, schedules Op.Node for the next dirty set.
	CheckDirty
)

func (k OpKind) String() string {
	switch k {
	case Load:
		return "Load"
	case Copy:
		return "Copy"
	case And:
		return "And"
	case Or:
		return "Or"
	case Xor:
		return "Xor"
	case Andi:
		return "Andi"
	case Xori:
		return "Xori"
	case Slli:
		return "Slli"
	case Srli:
		return "Srli"
	case Read:
		return "Read"
	case Save:
		return "Save"
	case CheckDirty:
		return "CheckDirty"
	default:
		return fmt.Sprintf("OpKind(%d)", uint8(k))
	}
}

// Op is a single instruction. Only the fields relevant to Kind are
// meaningful; the others are left at their zero value by the constructors
// below.
type Op struct {
	Kind   OpKind
	Slot   Slot   // Copy/And/Or/Xor/Save/CheckDirty operand slot
	Imm    uint32 // Load value, Andi/Xori mask, Slli/Srli shift amount
	Memory int    // Read: index of the memory table to read from
	Node   int    // CheckDirty: node index to wake on change
}

// LoadOp sets acc to a literal value.
func LoadOp(value uint32) Op { return Op{Kind: Load, Imm: value} }

// CopyOp sets acc to rd[a].
func CopyOp(a Slot) Op { return Op{Kind: Copy, Slot: a} }

// AndOp sets acc to acc & rd[a].
func AndOp(a Slot) Op { return Op{Kind: And, Slot: a} }

// OrOp sets acc to acc | rd[a].
func OrOp(a Slot) Op { return Op{Kind: Or, Slot: a} }

// XorOp sets acc to acc ^ rd[a].
func XorOp(a Slot) Op { return Op{Kind: Xor, Slot: a} }

// AndiOp sets acc to acc & imm.
func AndiOp(imm uint32) Op { return Op{Kind: Andi, Imm: imm} }

// XoriOp sets acc to acc ^ imm.
func XoriOp(imm uint32) Op { return Op{Kind: Xori, Imm: imm} }

// SlliOp sets acc to acc << imm.
func SlliOp(imm uint32) Op { return Op{Kind: Slli, Imm: imm} }

// SrliOp sets acc to acc >> imm.
func SrliOp(imm uint32) Op { return Op{Kind: Srli, Imm: imm} }

// ReadOp sets acc to memory[acc] read from table memIdx.
func ReadOp(memIdx int) Op { return Op{Kind: Read, Memory: memIdx} }

// SaveOp writes acc to wr[out].
func SaveOp(out Slot) Op { return Op{Kind: Save, Slot: out} }

// CheckDirtyOp schedules node when wr[a]'s low bit changed from rd[a]'s.
func CheckDirtyOp(a Slot, node int) Op { return Op{Kind: CheckDirty, Slot: a, Node: node} }

// EmitFunc appends an instruction to the op list currently being built for
// a node. It is the function form of Emitter.Emit; Component.GenerateIR
// receives an Emitter, not an EmitFunc.
type EmitFunc func(Op)

// Emitter is handed to Component.GenerateIR. Beyond emitting instructions it
// lets a stateful component (currently only ReadOnlyMemory, per spec §4.3's
// note that extra_memory exists for things like "ROM snapshot pointers,
// future RAM") register a read-only lookup table shared by reference with
// every State built from the compiled Program, and get back the table index
// a Read op should carry.
type Emitter interface {
	Emit(op Op)
	RegisterTable(data []uint32) (tableIndex int)
}
