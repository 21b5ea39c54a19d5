package maze

// IsWall maps a world coordinate to the nearest cell and answers whether
// it is blocked. Anything outside the grid counts as a wall, so movement
// and probes fail closed at the edges.
func (g *Grid) IsWall(worldX, worldZ float64) bool {
	gridX := int(worldX/g.CellSize + 0.5)
	gridZ := int(worldZ/g.CellSize + 0.5)
	if gridX < 0 || gridX >= g.Width || gridZ < 0 || gridZ >= g.Height {
		return true
	}
	return g.Cells[gridZ][gridX] == Wall
}

// FootprintBlocked samples the center plus the four cardinal and four
// diagonal offsets at the given radius. One wall hit blocks the whole
// footprint, approximating a circular player against the square grid.
func (g *Grid) FootprintBlocked(worldX, worldZ, radius float64) bool {
	offsets := [9][2]float64{
		{0, 0},
		{radius, 0}, {-radius, 0},
		{0, radius}, {0, -radius},
		{radius, radius}, {radius, -radius},
		{-radius, radius}, {-radius, -radius},
	}
	for _, o := range offsets {
		if g.IsWall(worldX+o[0], worldZ+o[1]) {
			return true
		}
	}
	return false
}

// ResolveMove applies a candidate displacement one axis at a time: X
// first, then Z against the possibly-updated X. A diagonal push into a
// corner then degrades into a slide along whichever axis stays clear.
func (g *Grid) ResolveMove(pos, delta Vec2, radius float64) Vec2 {
	next := pos
	if !g.FootprintBlocked(next.X+delta.X, next.Z, radius) {
		next.X += delta.X
	}
	if !g.FootprintBlocked(next.X, next.Z+delta.Z, radius) {
		next.Z += delta.Z
	}
	return next
}
