package vm_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/circuitsim/component"
	"github.com/sarchlab/circuitsim/graph"
	"github.com/sarchlab/circuitsim/vm"
)

func TestVM(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "VM Suite")
}

func buildNotCircuit() *graph.Graph[component.Component, struct{}, []int] {
	g := graph.New[component.Component, struct{}, []int]()

	in := g.Add(component.Component(component.In{ExternalIndex: 0, Bits: 1}), struct{}{})
	not := g.Add(component.Component(component.Not{Bits: 1}), struct{}{})
	out := g.Add(component.Component(component.Out{ExternalIndex: 0, Bits: 1}), struct{}{})

	nex1 := g.NewNexus(nil)
	g.Connect(graph.Port{Side: graph.Output, Node: in, Index: 0}, nex1)
	g.Connect(graph.Port{Side: graph.Input, Node: not, Index: 0}, nex1)

	nex2 := g.NewNexus(nil)
	g.Connect(graph.Port{Side: graph.Output, Node: not, Index: 0}, nex2)
	g.Connect(graph.Port{Side: graph.Input, Node: out, Index: 0}, nex2)

	return g
}

var _ = Describe("Compile", func() {
	It("is idempotent on an unchanged graph modulo the compiled program's own id", func() {
		g := buildNotCircuit()

		p1 := vm.Compile(g)
		p2 := vm.Compile(g)

		diff := cmp.Diff(p1, p2, cmpopts.IgnoreFields(vm.Program{}, "ID"))
		Expect(diff).To(BeEmpty())
	})

	It("produces a program whose node count matches the graph's node count", func() {
		g := buildNotCircuit()

		p := vm.Compile(g)

		Expect(p.Nodes).To(HaveLen(g.NodeCount()))
	})
})

var _ = Describe("State", func() {
	It("builds a fresh state that can be stepped", func() {
		g := buildNotCircuit()
		p := vm.Compile(g)
		s := p.NewState()

		Expect(s).NotTo(BeNil())

		remaining := s.Step()
		Expect(remaining).To(BeNumerically(">=", 0))
	})

	It("returns the program it was built from", func() {
		g := buildNotCircuit()
		p := vm.Compile(g)
		s := p.NewState()

		Expect(s.Program()).To(Equal(p))
	})
})
