// Package persist implements the YAML encoding of the external persisted
// circuit format (spec §6): an ordered wire list followed by an ordered
// component list, each component carrying a tagged-union kind payload, a
// grid position, and a direction tag. It is a reference codec over that
// semantic contract — any self-describing encoding is acceptable, and
// nothing in package circuit or vm depends on this package existing.
//
// The codec follows zeonica's own yaml-driven program loading
// (core.LoadProgramFileFromYAML): a plain exported struct tree decoded
// with gopkg.in/yaml.v3, validated field-by-field rather than through
// struct tags doing the enforcement.
package persist

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/circuitsim/circuit"
	"github.com/sarchlab/circuitsim/component"
	"github.com/sarchlab/circuitsim/simerr"
)

// Doc is the top-level persisted shape.
type Doc struct {
	Wires      []WireDoc      `yaml:"wires"`
	Components []ComponentDoc `yaml:"components"`
}

// WireDoc is one persisted wire endpoint pair.
type WireDoc struct {
	From PointDoc `yaml:"from"`
	To   PointDoc `yaml:"to"`
}

// PointDoc is a persisted grid coordinate.
type PointDoc struct {
	X int32 `yaml:"x"`
	Y int32 `yaml:"y"`
}

// ComponentDoc is one persisted component: a tagged-union kind payload
// plus placement. Exactly one of the kind-specific fields is populated,
// selected by Kind.
type ComponentDoc struct {
	Kind      string    `yaml:"kind"`
	Pos       PointDoc  `yaml:"pos"`
	Direction string    `yaml:"direction"`
	In        *InDoc    `yaml:"in,omitempty"`
	Out       *OutDoc   `yaml:"out,omitempty"`
	Gate      *GateDoc  `yaml:"gate,omitempty"`
	Not       *NotDoc   `yaml:"not,omitempty"`
	ROM       *ROMDoc   `yaml:"rom,omitempty"`
}

// InDoc is the payload for an external-input label.
type InDoc struct {
	Label         string `yaml:"label"`
	ExternalIndex int    `yaml:"external_index"`
	Bits          int    `yaml:"bits"`
}

// OutDoc is the payload for an external-output label.
type OutDoc struct {
	Label         string `yaml:"label"`
	ExternalIndex int    `yaml:"external_index"`
	Bits          int    `yaml:"bits"`
}

// GateDoc is the payload for an AND/OR/XOR gate.
type GateDoc struct {
	Op   string `yaml:"op"`
	N    int    `yaml:"n"`
	Bits int    `yaml:"bits"`
}

// NotDoc is the payload for an inverter.
type NotDoc struct {
	Bits int `yaml:"bits"`
}

// ROMDoc is the payload for a read-only memory.
type ROMDoc struct {
	Contents []uint32 `yaml:"contents"`
	AddrBits int      `yaml:"addr_bits"`
	DataBits int      `yaml:"data_bits"`
}

// Encode renders c into the persisted YAML form, in the order wires were
// added followed by components in ascending node-handle order (their order
// of addition, unless a removed component's handle was reused).
func Encode(c *circuit.Circuit) ([]byte, error) {
	doc := Doc{}

	for i := 0; i < c.WireCount(); i++ {
		w, _, ok := c.Wire(i)
		if !ok {
			continue
		}

		doc.Wires = append(doc.Wires, WireDoc{
			From: PointDoc{X: w.From.X, Y: w.From.Y},
			To:   PointDoc{X: w.To.X, Y: w.To.Y},
		})
	}

	var encErr error
	c.Graph().Nodes(func(_ graphNodeHandle, value component.Component, meta circuit.Placement) {
		if encErr != nil {
			return
		}

		cd, err := encodeComponent(value, meta)
		if err != nil {
			encErr = err
			return
		}

		doc.Components = append(doc.Components, cd)
	})

	if encErr != nil {
		return nil, encErr
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("persist: encode: %w: %v", simerr.EncodingError, err)
	}

	return out, nil
}

// graphNodeHandle avoids importing package graph here just for the
// callback signature; circuit.NodeHandle is the same underlying type.
type graphNodeHandle = circuit.NodeHandle

func encodeComponent(value component.Component, meta circuit.Placement) (ComponentDoc, error) {
	cd := ComponentDoc{
		Pos:       PointDoc{X: meta.Pos.X, Y: meta.Pos.Y},
		Direction: meta.Dir.String(),
	}

	switch v := value.(type) {
	case component.In:
		cd.Kind = "In"
		cd.In = &InDoc{Label: v.Label, ExternalIndex: v.ExternalIndex, Bits: v.Bits}
	case component.Out:
		cd.Kind = "Out"
		cd.Out = &OutDoc{Label: v.Label, ExternalIndex: v.ExternalIndex, Bits: v.Bits}
	case component.Gate:
		cd.Kind = "Gate"
		cd.Gate = &GateDoc{Op: v.Op.String(), N: v.N, Bits: v.Bits}
	case component.Not:
		cd.Kind = "Not"
		cd.Not = &NotDoc{Bits: v.Bits}
	case component.ROM:
		cd.Kind = "ROM"
		cd.ROM = &ROMDoc{Contents: v.Contents, AddrBits: v.AddrBits, DataBits: v.DataBits}
	default:
		return ComponentDoc{}, fmt.Errorf("persist: encode: %w: unknown component type %T", simerr.EncodingError, value)
	}

	return cd, nil
}

// Decode parses a persisted YAML document and replays it into a fresh
// Circuit: wires first, then components, exactly as spec §6 requires for
// deterministic nexus formation.
func Decode(data []byte) (*circuit.Circuit, error) {
	var doc Doc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("persist: decode: %w: %v", simerr.EncodingError, err)
	}

	c := circuit.New()

	for _, w := range doc.Wires {
		c.AddWire(circuit.Wire{
			From: circuit.Point{X: w.From.X, Y: w.From.Y},
			To:   circuit.Point{X: w.To.X, Y: w.To.Y},
		})
	}

	for _, cd := range doc.Components {
		value, err := decodeComponent(cd)
		if err != nil {
			return nil, err
		}

		dir, err := parseDirection(cd.Direction)
		if err != nil {
			return nil, err
		}

		c.AddComponent(value, circuit.Point{X: cd.Pos.X, Y: cd.Pos.Y}, dir)
	}

	return c, nil
}

func decodeComponent(cd ComponentDoc) (component.Component, error) {
	switch cd.Kind {
	case "In":
		if cd.In == nil {
			return nil, fmt.Errorf("persist: decode: %w: In payload missing", simerr.EncodingError)
		}
		return component.In{Label: cd.In.Label, ExternalIndex: cd.In.ExternalIndex, Bits: cd.In.Bits}, nil
	case "Out":
		if cd.Out == nil {
			return nil, fmt.Errorf("persist: decode: %w: Out payload missing", simerr.EncodingError)
		}
		return component.Out{Label: cd.Out.Label, ExternalIndex: cd.Out.ExternalIndex, Bits: cd.Out.Bits}, nil
	case "Gate":
		if cd.Gate == nil {
			return nil, fmt.Errorf("persist: decode: %w: Gate payload missing", simerr.EncodingError)
		}
		op, err := parseGateOp(cd.Gate.Op)
		if err != nil {
			return nil, err
		}
		return component.Gate{Op: op, N: cd.Gate.N, Bits: cd.Gate.Bits}, nil
	case "Not":
		if cd.Not == nil {
			return nil, fmt.Errorf("persist: decode: %w: Not payload missing", simerr.EncodingError)
		}
		return component.Not{Bits: cd.Not.Bits}, nil
	case "ROM":
		if cd.ROM == nil {
			return nil, fmt.Errorf("persist: decode: %w: ROM payload missing", simerr.EncodingError)
		}
		return component.ROM{Contents: cd.ROM.Contents, AddrBits: cd.ROM.AddrBits, DataBits: cd.ROM.DataBits}, nil
	default:
		return nil, fmt.Errorf("persist: decode: %w: unknown component kind %q", simerr.EncodingError, cd.Kind)
	}
}

func parseDirection(tag string) (circuit.Direction, error) {
	switch tag {
	case "Right":
		return circuit.Right, nil
	case "Down":
		return circuit.Down, nil
	case "Left":
		return circuit.Left, nil
	case "Up":
		return circuit.Up, nil
	default:
		return 0, fmt.Errorf("persist: decode: %w: unknown direction tag %q", simerr.EncodingError, tag)
	}
}

func parseGateOp(tag string) (component.GateOp, error) {
	switch tag {
	case "And":
		return component.AndGate, nil
	case "Or":
		return component.OrGate, nil
	case "Xor":
		return component.XorGate, nil
	default:
		return 0, fmt.Errorf("persist: decode: %w: unknown gate op %q", simerr.EncodingError, tag)
	}
}
