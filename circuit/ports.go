package circuit

import (
	"github.com/sarchlab/circuitsim/component"
	"github.com/sarchlab/circuitsim/graph"
)

// portOffset describes one port's fixed position relative to a component's
// placement origin, before rotation.
type portOffset struct {
	Side  graph.Side
	Index int
	Dx    int32
	Dy    int32
}

// portLayout returns the geometry of every port a component kind exposes.
// The spec leaves exact offsets to the implementation ("a component's port
// at offset (dx, dy)"); we lay inputs out one grid point apart on the west
// face and outputs on the east face, which is the layout every sample
// circuit in the test suite assumes.
func portLayout(c component.Component) []portOffset {
	switch v := c.(type) {
	case component.In:
		return []portOffset{{Side: graph.Output, Index: 0, Dx: 1, Dy: 0}}
	case component.Out:
		return []portOffset{{Side: graph.Input, Index: 0, Dx: -1, Dy: 0}}
	case component.Not:
		return []portOffset{
			{Side: graph.Input, Index: 0, Dx: -1, Dy: 0},
			{Side: graph.Output, Index: 0, Dx: 1, Dy: 0},
		}
	case component.Gate:
		specs := make([]portOffset, 0, v.N+1)
		for i := 0; i < v.N; i++ {
			specs = append(specs, portOffset{Side: graph.Input, Index: i, Dx: -1, Dy: int32(i)})
		}

		return append(specs, portOffset{Side: graph.Output, Index: 0, Dx: 1, Dy: 0})
	case component.ROM:
		return []portOffset{
			{Side: graph.Input, Index: 0, Dx: -1, Dy: 0},
			{Side: graph.Output, Index: 0, Dx: 1, Dy: 0},
		}
	default:
		return nil
	}
}

// portsAt returns every port of value (placed per meta) whose location is
// exactly p. GeometryOverflow on an individual offset is swallowed: that
// offset simply contributes no port, per spec §4.4.
func portsAt(value component.Component, meta Placement, p Point) []portOffset {
	var hits []portOffset

	for _, spec := range portLayout(value) {
		loc, err := PlacePort(meta.Pos, meta.Dir, spec.Dx, spec.Dy)
		if err == nil && loc == p {
			hits = append(hits, spec)
		}
	}

	return hits
}
