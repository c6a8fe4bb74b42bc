package persist

import (
	"testing"

	"github.com/sarchlab/circuitsim/circuit"
	"github.com/sarchlab/circuitsim/component"
)

func buildSampleCircuit() *circuit.Circuit {
	c := circuit.New()

	c.AddWire(circuit.Wire{From: circuit.Point{X: 1, Y: 0}, To: circuit.Point{X: 3, Y: 0}})
	c.AddComponent(component.In{Label: "a", ExternalIndex: 0, Bits: 1}, circuit.Point{X: 0, Y: 0}, circuit.Right)
	c.AddComponent(component.Not{Bits: 1}, circuit.Point{X: 4, Y: 0}, circuit.Right)

	return c
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := buildSampleCircuit()

	data, err := Encode(c)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	c2, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if c2.WireCount() != c.WireCount() {
		t.Fatalf("WireCount() = %d, want %d", c2.WireCount(), c.WireCount())
	}

	if c2.Graph().NodeCount() != c.Graph().NodeCount() {
		t.Fatalf("NodeCount() = %d, want %d", c2.Graph().NodeCount(), c.Graph().NodeCount())
	}

	if c2.Graph().NexusCount() != c.Graph().NexusCount() {
		t.Fatalf("NexusCount() = %d, want %d", c2.Graph().NexusCount(), c.Graph().NexusCount())
	}
}

func TestDecodeRejectsUnknownComponentKind(t *testing.T) {
	_, err := Decode([]byte("components:\n  - kind: Bogus\n    pos: {x: 0, y: 0}\n    direction: Right\n"))
	if err == nil {
		t.Fatal("Decode should reject an unrecognized component kind")
	}
}

func TestDecodeRejectsUnknownDirection(t *testing.T) {
	yaml := "components:\n  - kind: Not\n    pos: {x: 0, y: 0}\n    direction: Sideways\n    not: {bits: 1}\n"
	_, err := Decode([]byte(yaml))
	if err == nil {
		t.Fatal("Decode should reject an unrecognized direction tag")
	}
}
