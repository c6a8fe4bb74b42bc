// Package graph implements the typed bipartite structure underneath a
// Circuit: component nodes with ports on one side, nexuses (electrical
// equipotential groups) on the other, with edges being port-to-nexus
// connections.
//
// Graph is generic over the component value type C, a piece of positional
// metadata M carried alongside each node, and a piece of user data U carried
// by each nexus (the Circuit layer stashes its wire-index list there). The
// only thing Graph needs to know about C is its port shape, expressed by the
// PortCounter constraint below — it never inspects C's IR-generation
// behavior, which keeps this package independent of the component registry.
package graph

import (
	"fmt"

	"github.com/sarchlab/circuitsim/arena"
	"github.com/sarchlab/circuitsim/simerr"
)

// PortCounter is the only capability Graph requires from a component value.
type PortCounter interface {
	InputCount() int
	OutputCount() int
}

// NodeHandle addresses a component node.
type NodeHandle arena.Handle

// NexusHandle addresses a nexus.
type NexusHandle arena.Handle

// Side distinguishes the two kinds of port a Graph edge can terminate at.
type Side int

const (
	// Input identifies a component's input port.
	Input Side = iota
	// Output identifies a component's output port.
	Output
)

func (s Side) String() string {
	if s == Input {
		return "Input"
	}

	return "Output"
}

// Port addresses a single pin on a node: Input{node, index} or
// Output{node, index} in the spec's vocabulary.
type Port struct {
	Side  Side
	Node  NodeHandle
	Index int
}

type node[C PortCounter, M any] struct {
	Value   C
	Meta    M
	inputs  []NexusHandle // inputs[i] == invalidNexus when unconnected
	outputs []NexusHandle
}

type nexus[U any] struct {
	inputs  map[Port]struct{}
	outputs map[Port]struct{}
	Data    U
}

const invalidNexus = NexusHandle(arena.Invalid)

// Graph is the bipartite node/nexus structure described above.
type Graph[C PortCounter, M any, U any] struct {
	nodes   *arena.Arena[node[C, M]]
	nexuses *arena.Arena[nexus[U]]
}

// New creates an empty Graph.
func New[C PortCounter, M any, U any]() *Graph[C, M, U] {
	return &Graph[C, M, U]{
		nodes:   arena.New[node[C, M]](),
		nexuses: arena.New[nexus[U]](),
	}
}

// Add inserts a new component node and returns its handle.
func (g *Graph[C, M, U]) Add(value C, meta M) NodeHandle {
	h := g.nodes.Insert(node[C, M]{
		Value:   value,
		Meta:    meta,
		inputs:  fill(value.InputCount()),
		outputs: fill(value.OutputCount()),
	})

	return NodeHandle(h)
}

func fill(n int) []NexusHandle {
	s := make([]NexusHandle, n)
	for i := range s {
		s[i] = invalidNexus
	}

	return s
}

// Node returns the component value and metadata stored at h.
func (g *Graph[C, M, U]) Node(h NodeHandle) (value C, meta M, ok bool) {
	n, ok := g.nodes.Get(arena.Handle(h))
	if !ok {
		return value, meta, false
	}

	return n.Value, n.Meta, true
}

// SetMeta overwrites the metadata of the node at h.
func (g *Graph[C, M, U]) SetMeta(h NodeHandle, meta M) bool {
	n, ok := g.nodes.Get(arena.Handle(h))
	if !ok {
		return false
	}

	n.Meta = meta

	return true
}

// Remove disconnects every port of the node at h, then destroys the node.
func (g *Graph[C, M, U]) Remove(h NodeHandle) {
	n, ok := g.nodes.Get(arena.Handle(h))
	if !ok {
		return
	}

	for i := range n.inputs {
		g.Disconnect(Port{Side: Input, Node: h, Index: i})
	}
	for i := range n.outputs {
		g.Disconnect(Port{Side: Output, Node: h, Index: i})
	}

	g.nodes.Remove(arena.Handle(h))
}

// NewNexus creates an empty nexus carrying the given user data.
func (g *Graph[C, M, U]) NewNexus(data U) NexusHandle {
	h := g.nexuses.Insert(nexus[U]{
		inputs:  make(map[Port]struct{}),
		outputs: make(map[Port]struct{}),
		Data:    data,
	})

	return NexusHandle(h)
}

// NexusData returns the user data attached to a nexus.
func (g *Graph[C, M, U]) NexusData(h NexusHandle) (U, bool) {
	n, ok := g.nexuses.Get(arena.Handle(h))
	if !ok {
		var zero U
		return zero, false
	}

	return n.Data, true
}

// SetNexusData overwrites the user data attached to a nexus.
func (g *Graph[C, M, U]) SetNexusData(h NexusHandle, data U) bool {
	n, ok := g.nexuses.Get(arena.Handle(h))
	if !ok {
		return false
	}

	n.Data = data

	return true
}

// RemoveNexus disconnects every port currently on the nexus, then destroys
// it. Per the spec's cascading policy, a non-empty nexus is not an error.
func (g *Graph[C, M, U]) RemoveNexus(h NexusHandle) {
	n, ok := g.nexuses.Get(arena.Handle(h))
	if !ok {
		return
	}

	ports := make([]Port, 0, len(n.inputs)+len(n.outputs))
	for p := range n.inputs {
		ports = append(ports, p)
	}
	for p := range n.outputs {
		ports = append(ports, p)
	}

	for _, p := range ports {
		g.Disconnect(p)
	}

	g.nexuses.Remove(arena.Handle(h))
}

// Connect assigns port to nexus, replacing any prior assignment of that
// port (removing it from its previous nexus's port set first).
func (g *Graph[C, M, U]) Connect(port Port, nex NexusHandle) error {
	n, ok := g.nodes.Get(arena.Handle(port.Node))
	if !ok {
		return fmt.Errorf("connect node %v: %w", port.Node, simerr.Dangling)
	}

	nx, ok := g.nexuses.Get(arena.Handle(nex))
	if !ok {
		return fmt.Errorf("connect nexus %v: %w", nex, simerr.Dangling)
	}

	var table []NexusHandle
	var portSet map[Port]struct{}

	switch port.Side {
	case Input:
		if port.Index < 0 || port.Index >= n.Value.InputCount() {
			return fmt.Errorf("port %d: %w", port.Index, simerr.InvalidPort)
		}
		table, portSet = n.inputs, nx.inputs
	case Output:
		if port.Index < 0 || port.Index >= n.Value.OutputCount() {
			return fmt.Errorf("port %d: %w", port.Index, simerr.InvalidPort)
		}
		table, portSet = n.outputs, nx.outputs
	default:
		return fmt.Errorf("port side %v: %w", port.Side, simerr.InvalidPort)
	}

	g.Disconnect(port)

	table[port.Index] = nex
	portSet[port] = struct{}{}

	return nil
}

// Disconnect removes port from whatever nexus it currently belongs to, if
// any. It is a no-op if the port is unconnected or the node is gone.
func (g *Graph[C, M, U]) Disconnect(port Port) {
	n, ok := g.nodes.Get(arena.Handle(port.Node))
	if !ok {
		return
	}

	table := n.inputs
	if port.Side == Output {
		table = n.outputs
	}

	if port.Index < 0 || port.Index >= len(table) {
		return
	}

	cur := table[port.Index]
	if cur == invalidNexus {
		return
	}

	table[port.Index] = invalidNexus

	if nx, ok := g.nexuses.Get(arena.Handle(cur)); ok {
		if port.Side == Input {
			delete(nx.inputs, port)
		} else {
			delete(nx.outputs, port)
		}
	}
}

// PortNexus returns the nexus currently assigned to port, if any.
func (g *Graph[C, M, U]) PortNexus(port Port) (NexusHandle, bool) {
	n, ok := g.nodes.Get(arena.Handle(port.Node))
	if !ok {
		return invalidNexus, false
	}

	table := n.inputs
	if port.Side == Output {
		table = n.outputs
	}

	if port.Index < 0 || port.Index >= len(table) {
		return invalidNexus, false
	}

	h := table[port.Index]

	return h, h != invalidNexus
}

// Inputs returns the set of input ports currently connected to a nexus.
func (g *Graph[C, M, U]) Inputs(h NexusHandle) []Port {
	nx, ok := g.nexuses.Get(arena.Handle(h))
	if !ok {
		return nil
	}

	ports := make([]Port, 0, len(nx.inputs))
	for p := range nx.inputs {
		ports = append(ports, p)
	}

	return ports
}

// Outputs returns the set of output ports currently connected to a nexus.
func (g *Graph[C, M, U]) Outputs(h NexusHandle) []Port {
	nx, ok := g.nexuses.Get(arena.Handle(h))
	if !ok {
		return nil
	}

	ports := make([]Port, 0, len(nx.outputs))
	for p := range nx.outputs {
		ports = append(ports, p)
	}

	return ports
}

// MergeNexuses reassigns every port of b onto a, concatenates their user
// data with combine, and destroys b. a's handle is the one that survives;
// callers that need the "keep lower handle" policy from the spec pass the
// smaller handle as a.
func (g *Graph[C, M, U]) MergeNexuses(a, b NexusHandle, combine func(a, b U) U) (NexusHandle, error) {
	if a == b {
		return a, nil
	}

	na, ok := g.nexuses.Get(arena.Handle(a))
	if !ok {
		return invalidNexus, fmt.Errorf("merge a=%v: %w", a, simerr.Dangling)
	}

	nb, ok := g.nexuses.Get(arena.Handle(b))
	if !ok {
		return invalidNexus, fmt.Errorf("merge b=%v: %w", b, simerr.Dangling)
	}

	for p := range nb.inputs {
		if err := g.Connect(p, a); err != nil {
			return invalidNexus, err
		}
	}
	for p := range nb.outputs {
		if err := g.Connect(p, a); err != nil {
			return invalidNexus, err
		}
	}

	na.Data = combine(na.Data, nb.Data)
	g.nexuses.Remove(arena.Handle(b))

	return a, nil
}

// Nodes calls fn for every live node, in ascending handle order.
func (g *Graph[C, M, U]) Nodes(fn func(h NodeHandle, value C, meta M)) {
	g.nodes.Iter(func(h arena.Handle, n *node[C, M]) {
		fn(NodeHandle(h), n.Value, n.Meta)
	})
}

// Nexuses calls fn for every live nexus, in ascending handle order.
func (g *Graph[C, M, U]) Nexuses(fn func(h NexusHandle, data U)) {
	g.nexuses.Iter(func(h arena.Handle, n *nexus[U]) {
		fn(NexusHandle(h), n.Data)
	})
}

// NodeCount reports how many nodes are currently live.
func (g *Graph[C, M, U]) NodeCount() int { return g.nodes.Len() }

// NexusCount reports how many nexuses are currently live.
func (g *Graph[C, M, U]) NexusCount() int { return g.nexuses.Len() }
