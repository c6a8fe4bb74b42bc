package circuit

// zoneSize is the edge length of a zone tile; the grid is partitioned into
// 1024x1024 tiles of zoneSize x zoneSize grid points each, per spec §3.
const zoneSize = 64

// occupantKind distinguishes what an occupant tag in a tile refers to.
// The spec's reference layout packs this into the high bit of a machine
// word; the Design Notes call that out as a portability hazard and suggest
// a plain tagged struct instead, which is what we do here.
type occupantKind uint8

const (
	occWire occupantKind = iota
	occComponent
)

type occupant struct {
	kind occupantKind
	idx  int
}

type tileKey struct{ x, y int32 }

// zoneGrid is an O(1)-average spatial index over the placement grid. The
// spec allows either an eagerly allocated 1024x1024 array of tiles or a
// hashed tile map "laziness" variant; we take the hashed map, since most
// circuits only occupy a small fraction of the addressable 2^16 x 2^16
// grid and an eager allocation would reserve megabytes up front for no
// benefit.
type zoneGrid struct {
	tiles map[tileKey][]occupant
}

func newZoneGrid() *zoneGrid {
	return &zoneGrid{tiles: make(map[tileKey][]occupant)}
}

func tileOf(p Point) tileKey {
	return tileKey{x: p.X / zoneSize, y: p.Y / zoneSize}
}

// tilesOverlapping returns every tile key whose 64x64 region intersects
// box, computed as floor(min/64)..=floor(max/64) on each axis so that even
// a zero-width segment lands in at least one tile.
func tilesOverlapping(box AABB) []tileKey {
	minTX, maxTX := box.MinX/zoneSize, box.MaxX/zoneSize
	minTY, maxTY := box.MinY/zoneSize, box.MaxY/zoneSize

	keys := make([]tileKey, 0, (maxTX-minTX+1)*(maxTY-minTY+1))
	for tx := minTX; tx <= maxTX; tx++ {
		for ty := minTY; ty <= maxTY; ty++ {
			keys = append(keys, tileKey{x: tx, y: ty})
		}
	}

	return keys
}

func (z *zoneGrid) registerWire(idx int, box AABB) {
	for _, k := range tilesOverlapping(box) {
		z.tiles[k] = append(z.tiles[k], occupant{kind: occWire, idx: idx})
	}
}

func (z *zoneGrid) registerComponent(idx int, p Point) {
	k := tileOf(p)
	z.tiles[k] = append(z.tiles[k], occupant{kind: occComponent, idx: idx})
}

// occupantsAt returns the occupant tags registered in p's tile, regardless
// of whether their actual body covers p — callers filter further.
func (z *zoneGrid) occupantsAt(p Point) []occupant {
	return z.tiles[tileOf(p)]
}

// occupantsIn returns the union of occupant tags across every tile
// overlapping box.
func (z *zoneGrid) occupantsIn(box AABB) []occupant {
	var out []occupant
	seen := make(map[occupant]bool)

	for _, k := range tilesOverlapping(box) {
		for _, o := range z.tiles[k] {
			if !seen[o] {
				seen[o] = true
				out = append(out, o)
			}
		}
	}

	return out
}
