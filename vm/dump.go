package vm

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/circuitsim/isa"
)

// Dump renders a human-readable summary of the compiled program: one row
// per node listing its op count, and the boundary maps.
func (p *Program) Dump() string {
	var out string

	nodeTable := table.NewWriter()
	nodeTable.SetTitle(fmt.Sprintf("Program %s — %d nodes, %d memory slots", p.ID, len(p.Nodes), p.MemorySize))
	nodeTable.AppendHeader(table.Row{"Node", "Ops"})

	for i, n := range p.Nodes {
		nodeTable.AppendRow(table.Row{i, len(n.Ops)})
	}

	out += nodeTable.Render() + "\n\n"

	boundaryTable := table.NewWriter()
	boundaryTable.SetTitle("Boundary Map")
	boundaryTable.AppendHeader(table.Row{"Kind", "Index", "Slot", "Mask"})

	for i, e := range p.InputMap {
		boundaryTable.AppendRow(table.Row{"In", i, slotString(e.Slot), fmt.Sprintf("%#x", e.Mask)})
	}
	for i, e := range p.OutputMap {
		boundaryTable.AppendRow(table.Row{"Out", i, slotString(e.Slot), fmt.Sprintf("%#x", e.Mask)})
	}

	out += boundaryTable.Render()

	return out
}

func slotString(s interface{ Valid() bool }) string {
	if !s.Valid() {
		return "-"
	}

	return fmt.Sprintf("%v", s)
}

// DumpMemory renders the current contents of both memory banks, marking
// any slot flagged as multiply driven.
func (s *State) DumpMemory() string {
	t := table.NewWriter()
	t.SetTitle("Memory Banks")
	t.AppendHeader(table.Row{"Slot", "Read", "Write", "Shorted"})

	for i := range s.read {
		shorted := s.prog.Shorted[isa.Slot(i)]
		t.AppendRow(table.Row{i, s.read[i], s.write[i], shorted})
	}

	return t.Render()
}
