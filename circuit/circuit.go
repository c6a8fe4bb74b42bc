// Package circuit is the spatial layer above package graph: it places
// components on an integer grid, auto-connects them through wires, and
// accelerates point/AABB queries with a zone grid. It does not know how to
// turn the result into executable IR — that's package vm's job — but it
// hands vm a fully assembled graph.Graph to walk.
package circuit

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/circuitsim/component"
	"github.com/sarchlab/circuitsim/graph"
)

// HookPosWireAdded marks when a wire has been added and auto-connect has
// settled (new or merged nexus, ports reconnected).
var HookPosWireAdded = &sim.HookPos{Name: "Circuit Wire Added"}

// HookPosNexusMerged marks when add_wire merges two previously distinct
// nexuses into one.
var HookPosNexusMerged = &sim.HookPos{Name: "Circuit Nexus Merged"}

// HookPosComponentAdded marks when a component is placed.
var HookPosComponentAdded = &sim.HookPos{Name: "Circuit Component Added"}

// Placement is the positional metadata a Circuit attaches to every graph
// node: where the component sits and which way it faces.
type Placement struct {
	Pos Point
	Dir Direction
}

// NodeHandle and NexusHandle re-export the underlying graph handles so
// callers of this package never need to import graph directly.
type (
	NodeHandle  = graph.NodeHandle
	NexusHandle = graph.NexusHandle
)

type wireRecord struct {
	wire  Wire
	nexus NexusHandle
}

// Circuit is the spatial layer: wires, placed components, and the zone
// grid, all materializing into the underlying graph.
type Circuit struct {
	sim.HookableBase

	g     *graph.Graph[component.Component, Placement, []int]
	wires []wireRecord
	zones *zoneGrid
}

// New creates an empty Circuit.
func New() *Circuit {
	return &Circuit{
		g:     graph.New[component.Component, Placement, []int](),
		zones: newZoneGrid(),
	}
}

// Graph exposes the underlying graph for the IR compiler.
func (c *Circuit) Graph() *graph.Graph[component.Component, Placement, []int] {
	return c.g
}

// AddComponent inserts c into the graph at the given position and
// orientation, then connects any of its ports that land exactly on an
// already-present wire to that wire's nexus. This mirrors AddWire's own
// auto-connect so that the persisted-format load order — wires first,
// then components (spec §6) — produces the same graph as adding them in
// the opposite order whenever every port sits on a wire endpoint. A port
// lying on the interior of a wire is connected here, but not when the
// wire is added after the component, since AddWire only connects ports at
// its own endpoints.
func (c *Circuit) AddComponent(value component.Component, pos Point, dir Direction) NodeHandle {
	h := c.g.Add(value, Placement{Pos: pos, Dir: dir})

	c.zones.registerComponent(int(h), pos)
	registered := map[tileKey]bool{tileOf(pos): true}

	meta := Placement{Pos: pos, Dir: dir}
	for _, spec := range portLayout(value) {
		loc, err := PlacePort(meta.Pos, meta.Dir, spec.Dx, spec.Dy)
		if err != nil {
			continue
		}

		// Also register in every tile a port falls in, so a later wire
		// endpoint in a neighbouring tile still finds this component.
		if k := tileOf(loc); !registered[k] {
			registered[k] = true
			c.zones.registerComponent(int(h), loc)
		}

		touching := c.nexusesTouching(loc)
		if len(touching) == 0 {
			continue
		}

		nexus := c.resolveTargetNexus(touching)
		_ = c.g.Connect(graph.Port{Side: spec.Side, Node: h, Index: spec.Index}, nexus)
	}

	c.InvokeHook(sim.HookCtx{Domain: c, Pos: HookPosComponentAdded, Item: h})

	return h
}

// RemoveComponent removes a previously placed component and disconnects
// its ports.
func (c *Circuit) RemoveComponent(h NodeHandle) {
	c.g.Remove(h)
}

// AddWire adds a wire to the circuit, auto-connecting it to any existing
// nets and component ports at its endpoints, per spec §4.4.
func (c *Circuit) AddWire(w Wire) NexusHandle {
	existing := c.nexusesTouching(w.From)
	for _, n := range c.nexusesTouching(w.To) {
		existing = appendUnique(existing, n)
	}

	nexus := c.resolveTargetNexus(existing)

	idx := len(c.wires)
	c.wires = append(c.wires, wireRecord{wire: w, nexus: nexus})

	data, _ := c.g.NexusData(nexus)
	data = append(data, idx)
	c.g.SetNexusData(nexus, data)

	c.zones.registerWire(idx, w.aabb())

	c.connectEndpoint(w.From, nexus)
	c.connectEndpoint(w.To, nexus)

	c.InvokeHook(sim.HookCtx{Domain: c, Pos: HookPosWireAdded, Item: w})

	return nexus
}

// resolveTargetNexus implements the spec's three-way policy: zero existing
// nexuses creates a fresh one, one existing nexus is reused, and two
// distinct nexuses are merged (keeping the lower handle).
func (c *Circuit) resolveTargetNexus(existing []NexusHandle) NexusHandle {
	switch len(existing) {
	case 0:
		return c.g.NewNexus(nil)
	case 1:
		return existing[0]
	default:
		a, b := existing[0], existing[1]
		if b < a {
			a, b = b, a
		}

		merged, err := c.g.MergeNexuses(a, b, func(x, y []int) []int {
			return append(x, y...)
		})
		if err != nil {
			// Both handles were read from live nexuses a moment ago;
			// only concurrent mutation could make this fail, which this
			// single-threaded API never permits.
			panic(fmt.Sprintf("circuit: merge of live nexuses failed: %v", err))
		}

		c.InvokeHook(sim.HookCtx{Domain: c, Pos: HookPosNexusMerged, Item: merged})

		return merged
	}
}

// nexusesTouching returns every distinct nexus whose wires cover p.
func (c *Circuit) nexusesTouching(p Point) []NexusHandle {
	var found []NexusHandle

	for _, o := range c.zones.occupantsAt(p) {
		if o.kind != occWire {
			continue
		}

		rec := c.wires[o.idx]
		if rec.wire.Covers(p) {
			found = appendUnique(found, rec.nexus)
		}
	}

	return found
}

func appendUnique(list []NexusHandle, h NexusHandle) []NexusHandle {
	for _, x := range list {
		if x == h {
			return list
		}
	}

	return append(list, h)
}

// connectEndpoint looks for an unclaimed component port sitting exactly at
// p and, if found, connects it to nexus.
func (c *Circuit) connectEndpoint(p Point, nexus NexusHandle) {
	for _, o := range c.zones.occupantsAt(p) {
		if o.kind != occComponent {
			continue
		}

		node := graph.NodeHandle(o.idx)
		value, meta, ok := c.g.Node(node)
		if !ok {
			continue
		}

		for _, port := range portsAt(value, meta, p) {
			gp := graph.Port{Side: port.Side, Node: node, Index: port.Index}
			if _, claimed := c.g.PortNexus(gp); claimed {
				continue
			}

			_ = c.g.Connect(gp, nexus)
		}
	}
}

// IntersectPoint invokes onWire for every wire and onComponent for every
// component occupying p,
// looking up a single zone tile and filtering to bodies that actually
// cover the point.
func (c *Circuit) IntersectPoint(p Point, onWire func(wireIndex int), onComponent func(h NodeHandle)) {
	for _, o := range c.zones.occupantsAt(p) {
		switch o.kind {
		case occWire:
			if c.wires[o.idx].wire.Covers(p) {
				if onWire != nil {
					onWire(o.idx)
				}
			}
		case occComponent:
			node := graph.NodeHandle(o.idx)
			if _, meta, ok := c.g.Node(node); ok && meta.Pos == p {
				if onComponent != nil {
					onComponent(node)
				}
			}
		}
	}
}

// Wires invokes fn for every wire whose AABB overlaps box. Only the
// bounding boxes are compared: a diagonal wire whose AABB overlaps box is
// reported even when the segment itself passes outside box.
func (c *Circuit) Wires(box AABB, fn func(wireIndex int, w Wire)) {
	for _, o := range c.zones.occupantsIn(box) {
		if o.kind != occWire {
			continue
		}

		w := c.wires[o.idx].wire
		if w.aabb().overlaps(box) {
			fn(o.idx, w)
		}
	}
}

// Components invokes fn for every component whose position falls inside
// box.
func (c *Circuit) Components(box AABB, fn func(h NodeHandle)) {
	for _, o := range c.zones.occupantsIn(box) {
		if o.kind != occComponent {
			continue
		}

		node := graph.NodeHandle(o.idx)
		if _, meta, ok := c.g.Node(node); ok && box.contains(meta.Pos) {
			fn(node)
		}
	}
}

// WireCount reports how many wires have been added.
func (c *Circuit) WireCount() int { return len(c.wires) }

// Wire returns the i'th added wire and the nexus it belongs to.
func (c *Circuit) Wire(i int) (Wire, NexusHandle, bool) {
	if i < 0 || i >= len(c.wires) {
		return Wire{}, 0, false
	}

	return c.wires[i].wire, c.wires[i].nexus, true
}
