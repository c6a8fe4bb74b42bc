package circuit

import "testing"

func TestPlacePortRotation(t *testing.T) {
	cases := []struct {
		dir    Direction
		dx, dy int32
		wantX  int32
		wantY  int32
	}{
		{Right, 1, 0, 11, 10},
		{Down, 1, 0, 10, 11},
		{Left, 1, 0, 9, 10},
		{Up, 1, 0, 10, 9},
	}

	origin := Point{X: 10, Y: 10}

	for _, tc := range cases {
		got, err := PlacePort(origin, tc.dir, tc.dx, tc.dy)
		if err != nil {
			t.Fatalf("PlacePort(%v): %v", tc.dir, err)
		}
		if got.X != tc.wantX || got.Y != tc.wantY {
			t.Fatalf("PlacePort(%v) = %v, want (%d,%d)", tc.dir, got, tc.wantX, tc.wantY)
		}
	}
}

func TestPlacePortOverflowBelowZero(t *testing.T) {
	_, err := PlacePort(Point{X: 0, Y: 0}, Right, -5, 0)
	if err == nil {
		t.Fatal("expected an error placing a port below coordinate zero")
	}
}

func TestPlacePortOverflowAboveMax(t *testing.T) {
	_, err := PlacePort(Point{X: MaxCoord, Y: 0}, Right, 1, 0)
	if err == nil {
		t.Fatal("expected an error placing a port above MaxCoord")
	}
}

func TestWireCoversDiagonalSegment(t *testing.T) {
	w := Wire{From: Point{X: 0, Y: 0}, To: Point{X: 4, Y: 4}}

	if !w.Covers(Point{X: 2, Y: 2}) {
		t.Fatal("expected the diagonal wire to cover its own midpoint")
	}

	if w.Covers(Point{X: 2, Y: 3}) {
		t.Fatal("a point off the diagonal line should not be covered")
	}
}

func TestWireCoversRespectsSegmentBounds(t *testing.T) {
	w := Wire{From: Point{X: 0, Y: 0}, To: Point{X: 4, Y: 0}}

	if w.Covers(Point{X: 5, Y: 0}) {
		t.Fatal("a collinear point past the segment's end should not be covered")
	}
}
