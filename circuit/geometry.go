package circuit

import "github.com/sarchlab/circuitsim/simerr"

// MaxCoord bounds the integer grid per the spec's non-goal: circuits larger
// than 2^16 x 2^16 grid points are out of scope.
const MaxCoord = 1<<16 - 1

// Point is a location on the integer placement grid.
type Point struct {
	X, Y int32
}

// Direction is a component's placed orientation.
type Direction int

const (
	// Right is the identity orientation.
	Right Direction = iota
	// Down rotates 90 degrees clockwise from Right.
	Down
	// Left rotates 180 degrees from Right.
	Left
	// Up rotates 90 degrees counter-clockwise from Right.
	Up
)

func (d Direction) String() string {
	switch d {
	case Right:
		return "Right"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Up:
		return "Up"
	default:
		return "Direction(?)"
	}
}

// rotate applies the spec's rotation table to an offset:
// Right -> (x,y); Down -> (-y,x); Left -> (-x,-y); Up -> (y,-x).
func (d Direction) rotate(dx, dy int32) (int32, int32) {
	switch d {
	case Down:
		return -dy, dx
	case Left:
		return -dx, -dy
	case Up:
		return dy, -dx
	default: // Right
		return dx, dy
	}
}

// PlacePort computes the grid location of a port at offset (dx, dy) on a
// component placed at pos with orientation dir. Any overflow of the
// intermediate or final coordinates out of the representable grid is
// reported as simerr.GeometryOverflow and must be treated as "no such port
// here", never as a crash, per spec §4.4.
func PlacePort(pos Point, dir Direction, dx, dy int32) (Point, error) {
	rx, ry := dir.rotate(dx, dy)

	x := int64(pos.X) + int64(rx)
	y := int64(pos.Y) + int64(ry)

	if x < 0 || x > MaxCoord || y < 0 || y > MaxCoord {
		return Point{}, simerr.GeometryOverflow
	}

	return Point{X: int32(x), Y: int32(y)}, nil
}
