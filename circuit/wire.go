package circuit

// Wire is a line segment on the integer grid between two endpoints. Wires
// are normally axis-aligned or 45-degree; arbitrary segments are accepted
// and cover their endpoints plus any other grid point lying exactly on the
// segment.
type Wire struct {
	From, To Point
}

// AABB is an axis-aligned bounding box, inclusive on both ends.
type AABB struct {
	MinX, MinY, MaxX, MaxY int32
}

func (w Wire) aabb() AABB {
	minX, maxX := w.From.X, w.To.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}

	minY, maxY := w.From.Y, w.To.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}

	return AABB{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

func (box AABB) contains(p Point) bool {
	return p.X >= box.MinX && p.X <= box.MaxX && p.Y >= box.MinY && p.Y <= box.MaxY
}

func (box AABB) overlaps(o AABB) bool {
	return box.MinX <= o.MaxX && o.MinX <= box.MaxX && box.MinY <= o.MaxY && o.MinY <= box.MaxY
}

// Covers reports whether p lies on the closed segment w: the cross product
// of (w.To-w.From) and (p-w.From) is zero and p falls within w's AABB.
func (w Wire) Covers(p Point) bool {
	x1, y1 := int64(w.From.X), int64(w.From.Y)
	x2, y2 := int64(w.To.X), int64(w.To.Y)
	xp, yp := int64(p.X), int64(p.Y)

	cross := (x2-x1)*(yp-y1) - (y2-y1)*(xp-x1)
	if cross != 0 {
		return false
	}

	return w.aabb().contains(p)
}
