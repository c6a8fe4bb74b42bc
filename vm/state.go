package vm

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/circuitsim/isa"
)

// HookPosStep marks the completion of one State.Step call.
var HookPosStep = &sim.HookPos{Name: "VM Step"}

// HookPosNodeDirty marks a node being scheduled into the next dirty set by
// a CheckDirty op.
var HookPosNodeDirty = &sim.HookPos{Name: "VM Node Dirty"}

// OutputKind distinguishes the three ways an external output can read back.
type OutputKind int

const (
	// OutputFloating means nothing drives this external output.
	OutputFloating OutputKind = iota
	// OutputSet means the output carries a defined value.
	OutputSet
	// OutputShort means the nexus behind this output has more than one
	// driving output port — the spec's coarse multi-driver indication.
	OutputShort
)

func (k OutputKind) String() string {
	switch k {
	case OutputFloating:
		return "Floating"
	case OutputSet:
		return "Set"
	case OutputShort:
		return "Short"
	default:
		return "Output(?)"
	}
}

// OutputValue is what State.ReadOutputs returns for one external output.
type OutputValue struct {
	Kind  OutputKind
	Value uint32
}

// State is the mutable execution context bound to a Program: double
// buffered memory and two dirty sets, per spec §3/§4.6.
type State struct {
	sim.HookableBase

	prog *Program

	read  []uint32
	write []uint32

	updateDirty map[int]struct{}
	markDirty   map[int]struct{}
}

// NewState constructs a fresh State for prog: memory zeroed, every node
// scheduled for its first evaluation.
func NewState(prog *Program) *State {
	s := &State{
		prog:        prog,
		read:        make([]uint32, prog.MemorySize),
		write:       make([]uint32, prog.MemorySize),
		updateDirty: make(map[int]struct{}, len(prog.Nodes)),
		markDirty:   make(map[int]struct{}),
	}

	for i := range prog.Nodes {
		s.updateDirty[i] = struct{}{}
	}

	return s
}

// NewState is also reachable as a Program method, matching the spec's
// Program::new_state() entry point.
func (p *Program) NewState() *State { return NewState(p) }

// Step runs the convergence engine once: it evaluates every node against
// the current read/write banks (the spec's reference behavior — a stricter
// implementation could restrict itself to nodes drained from updateDirty,
// but evaluating everyone is simpler and still correct since CheckDirty is
// what actually governs whether a step did anything), swaps read and
// write, then swaps the dirty sets. It returns the size of the new
// updateDirty set; zero means the circuit has reached a fixed point.
func (s *State) Step() int {
	if len(s.markDirty) != 0 {
		panic("vm: Step called with a non-empty mark_dirty set")
	}

	for i := range s.prog.Nodes {
		s.runNode(i)
	}

	copy(s.read, s.write)
	s.updateDirty, s.markDirty = s.markDirty, s.updateDirty
	clearSet(s.markDirty)

	s.InvokeHook(sim.HookCtx{Domain: s, Pos: HookPosStep, Item: len(s.updateDirty)})

	return len(s.updateDirty)
}

func clearSet(m map[int]struct{}) {
	for k := range m {
		delete(m, k)
	}
}

func (s *State) runNode(nodeIdx int) {
	var acc uint32
	for _, op := range s.prog.Nodes[nodeIdx].Ops {
		switch op.Kind {
		case isa.Load:
			acc = op.Imm
		case isa.Copy:
			if op.Slot.Valid() {
				acc = s.read[op.Slot]
			}
		case isa.And:
			if op.Slot.Valid() {
				acc &= s.read[op.Slot]
			}
		case isa.Or:
			if op.Slot.Valid() {
				acc |= s.read[op.Slot]
			}
		case isa.Xor:
			if op.Slot.Valid() {
				acc ^= s.read[op.Slot]
			}
		case isa.Andi:
			acc &= op.Imm
		case isa.Xori:
			acc ^= op.Imm
		case isa.Slli:
			acc <<= op.Imm
		case isa.Srli:
			acc >>= op.Imm
		case isa.Read:
			acc = s.readTable(op.Memory, acc)
		case isa.Save:
			if op.Slot.Valid() {
				s.write[op.Slot] = acc
			}
		case isa.CheckDirty:
			s.checkDirty(op)
		default:
			panic(fmt.Sprintf("vm: unknown op kind %v", op.Kind))
		}
	}
}

func (s *State) readTable(table int, addr uint32) uint32 {
	if table < 0 || table >= len(s.prog.Tables) {
		return 0
	}

	t := s.prog.Tables[table]
	if int(addr) >= len(t) {
		return 0
	}

	return t[addr]
}

func (s *State) checkDirty(op isa.Op) {
	if !op.Slot.Valid() {
		return
	}

	if s.write[op.Slot]&1 != s.read[op.Slot]&1 {
		s.markDirty[op.Node] = struct{}{}
		s.InvokeHook(sim.HookCtx{Domain: s, Pos: HookPosNodeDirty, Item: op.Node})
	}
}

// WriteInputs drives external input values into the circuit. For each
// index with a mapped slot, it masks the value, and if it differs from the
// slot's current contents, writes it into both banks and wakes the nodes
// in InputNodesMap[idx].
func (s *State) WriteInputs(values map[int]uint32) {
	for idx, value := range values {
		if idx < 0 || idx >= len(s.prog.InputMap) {
			continue
		}

		entry := s.prog.InputMap[idx]
		if !entry.Slot.Valid() {
			continue
		}

		v := value & entry.Mask
		if s.read[entry.Slot] == v {
			continue
		}

		s.read[entry.Slot] = v
		s.write[entry.Slot] = v

		if idx < len(s.prog.InputNodesMap) {
			for _, n := range s.prog.InputNodesMap[idx] {
				s.updateDirty[n] = struct{}{}
			}
		}
	}
}

// ReadOutputs returns the current value of every external output named in
// out (by index). Indices outside the program's OutputMap read as
// Floating.
func (s *State) ReadOutputs(out []int) map[int]OutputValue {
	result := make(map[int]OutputValue, len(out))
	for _, idx := range out {
		result[idx] = s.readOutput(idx)
	}

	return result
}

func (s *State) readOutput(idx int) OutputValue {
	if idx < 0 || idx >= len(s.prog.OutputMap) {
		return OutputValue{Kind: OutputFloating}
	}

	entry := s.prog.OutputMap[idx]
	if !entry.Slot.Valid() {
		return OutputValue{Kind: OutputFloating}
	}

	if s.prog.Shorted[entry.Slot] {
		return OutputValue{Kind: OutputShort}
	}

	return OutputValue{Kind: OutputSet, Value: s.read[entry.Slot] & entry.Mask}
}

// ReadNexus returns the raw value currently stored in the slot a compiled
// nexus maps to, mainly for tests exercising the mask-discipline property.
func (s *State) ReadNexus(slot isa.Slot) (uint32, bool) {
	if !slot.Valid() || int(slot) >= len(s.read) {
		return 0, false
	}

	return s.read[slot], true
}

// Adapt builds a fresh State for newProg and copies as much of the
// previous read bank as fits, element-wise. Dirty sets are fully
// repopulated, matching the spec's live-edit contract.
func (s *State) Adapt(newProg *Program) *State {
	next := NewState(newProg)

	n := len(s.read)
	if len(next.read) < n {
		n = len(next.read)
	}

	copy(next.read, s.read[:n])
	copy(next.write, s.read[:n])

	return next
}

// Program returns the Program this State executes.
func (s *State) Program() *Program { return s.prog }
