// Package simerr defines the sentinel error taxonomy shared by the circuit
// core. Recoverable conditions (a dangling handle, a stray port index) are
// reported through these sentinels and never panic; callers compare with
// errors.Is. Invariant violations that indicate arena or dirty-set
// corruption are programmer errors and panic instead, by design — they are
// not part of this taxonomy.
package simerr

import "errors"

var (
	// InvalidHandle names a Handle that does not address a live value. No
	// operation in this module returns it: lookups report that case with
	// ok=false, and graph operations wrap Dangling.
	InvalidHandle = errors.New("simerr: invalid handle")

	// InvalidPort is returned when a port index is out of range for its
	// component's input or output count.
	InvalidPort = errors.New("simerr: invalid port")

	// Dangling is returned when an operation references a node or nexus
	// handle that has since been removed.
	Dangling = errors.New("simerr: dangling reference")

	// MultiplyDrivenNexus marks a nexus with more than one connected output
	// port at compile time. The compiler does not fail on this; it routes a
	// runtime Short value through the affected output map entries instead.
	MultiplyDrivenNexus = errors.New("simerr: nexus driven by more than one output")

	// GeometryOverflow marks an integer overflow while placing a rotated
	// port offset. Callers treat it as "no port there", never as a crash.
	GeometryOverflow = errors.New("simerr: port placement overflow")

	// EncodingError wraps failures at the serialization boundary.
	EncodingError = errors.New("simerr: encoding error")
)
