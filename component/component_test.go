//go:generate mockgen -write_package_comment=false -package=component -destination=mock_isa_test.go github.com/sarchlab/circuitsim/isa Emitter

package component

import (
	"testing"

	gomock "github.com/golang/mock/gomock"

	"github.com/sarchlab/circuitsim/isa"
)

type fakeEmitter struct {
	ops    []isa.Op
	tables [][]uint32
}

func (e *fakeEmitter) Emit(op isa.Op) { e.ops = append(e.ops, op) }

func (e *fakeEmitter) RegisterTable(data []uint32) int {
	e.tables = append(e.tables, data)
	return len(e.tables) - 1
}

func TestGateFoldsAllConnectedInputs(t *testing.T) {
	g := Gate{Op: AndGate, N: 3, Bits: 1}
	em := &fakeEmitter{}

	in := []isa.Slot{0, 1, isa.Sentinel}
	out := []isa.Slot{2}

	g.GenerateIR(in, out, em, 0)

	if len(em.ops) != 4 {
		t.Fatalf("Gate emitted %d ops, want 4 (start + 2 folds incl. sentinel + save)", len(em.ops))
	}
	if em.ops[0].Kind != isa.Copy || em.ops[0].Slot != 0 {
		t.Fatalf("op0 = %+v, want Copy(0)", em.ops[0])
	}
	if em.ops[1].Kind != isa.And || em.ops[1].Slot != 1 {
		t.Fatalf("op1 = %+v, want And(1)", em.ops[1])
	}
	if em.ops[2].Kind != isa.And || em.ops[2].Slot != isa.Sentinel {
		t.Fatalf("op2 = %+v, want And(Sentinel)", em.ops[2])
	}
}

func TestGateWithUnconnectedFirstInputLoadsZero(t *testing.T) {
	g := Gate{Op: OrGate, N: 2, Bits: 1}
	em := &fakeEmitter{}

	g.GenerateIR([]isa.Slot{isa.Sentinel, 0}, []isa.Slot{1}, em, 0)

	if em.ops[0].Kind != isa.Load || em.ops[0].Imm != 0 {
		t.Fatalf("op0 = %+v, want Load(0)", em.ops[0])
	}
}

func TestNotEmitsInvertWithWidthMask(t *testing.T) {
	n := Not{Bits: 4}
	em := &fakeEmitter{}

	n.GenerateIR([]isa.Slot{0}, []isa.Slot{1}, em, 0)

	if len(em.ops) != 3 {
		t.Fatalf("Not emitted %d ops, want 3", len(em.ops))
	}
	if em.ops[1].Kind != isa.Xori || em.ops[1].Imm != 0xF {
		t.Fatalf("op1 = %+v, want Xori(0xF)", em.ops[1])
	}
	if em.ops[2].Kind != isa.Save || em.ops[2].Slot != 1 {
		t.Fatalf("op2 = %+v, want Save(1)", em.ops[2])
	}
}

func TestROMRegistersTableAndReads(t *testing.T) {
	r := NewROM([]uint32{10, 20, 30})
	em := &fakeEmitter{}

	r.GenerateIR([]isa.Slot{0}, []isa.Slot{1}, em, 0)

	if len(em.tables) != 1 || len(em.tables[0]) != 3 {
		t.Fatalf("RegisterTable called with %v, want one 3-element table", em.tables)
	}
	if em.ops[1].Kind != isa.Read || em.ops[1].Memory != 0 {
		t.Fatalf("op1 = %+v, want Read(table 0)", em.ops[1])
	}
}

func TestInAndOutPortCounts(t *testing.T) {
	in := In{Bits: 8}
	if in.InputCount() != 0 || in.OutputCount() != 1 {
		t.Fatalf("In port counts = %d/%d, want 0/1", in.InputCount(), in.OutputCount())
	}

	out := Out{Bits: 8}
	if out.InputCount() != 1 || out.OutputCount() != 0 {
		t.Fatalf("Out port counts = %d/%d, want 1/0", out.InputCount(), out.OutputCount())
	}
}

func TestROMRegisterTableCallIsObservedByMock(t *testing.T) {
	ctrl := gomock.NewController(t)
	em := NewMockEmitter(ctrl)

	em.EXPECT().RegisterTable([]uint32{1, 2, 3}).Return(0)
	em.EXPECT().Emit(gomock.Any()).Times(3)

	r := NewROM([]uint32{1, 2, 3})
	r.GenerateIR([]isa.Slot{0}, []isa.Slot{1}, em, 0)
}

func TestWidthOfOutOfRangeIndex(t *testing.T) {
	g := Gate{Op: AndGate, N: 2, Bits: 4}
	if _, ok := g.InputWidth(5); ok {
		t.Fatal("InputWidth on an out-of-range index should report false")
	}
	if w, ok := g.InputWidth(0); !ok || w != 4 {
		t.Fatalf("InputWidth(0) = %d, %v; want 4, true", w, ok)
	}
}
