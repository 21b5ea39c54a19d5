// Package maze holds the grid model for one game session: a perfect maze
// carved by a randomized spanning tree, plus the collision queries the
// movement code and the renderer both work from.
package maze

// CellState is what a single grid cell holds.
type CellState int

const (
	Wall CellState = iota
	PathCell
)

// CellSize maps one grid step to world units.
const CellSize = 1.0

// PlayerRadius is the horizontal extent used by the footprint check.
const PlayerRadius = 0.25

// Coord is an integer grid position, X across columns, Z down rows.
type Coord struct {
	X, Z int
}

// WorldX returns the world-space center of the cell on the X axis.
func (c Coord) WorldX() float64 {
	return float64(c.X) * CellSize
}

// WorldZ returns the world-space center of the cell on the Z axis.
func (c Coord) WorldZ() float64 {
	return float64(c.Z) * CellSize
}

// Vec2 is a world-space point or displacement on the walkable plane.
type Vec2 struct {
	X, Z float64
}

// Grid is the generated maze. Cells is row-major, indexed [z][x].
// A Grid is immutable once Generate returns it.
type Grid struct {
	Width, Height int
	Cells         [][]CellState
	Start         Coord
	Goal          Coord
	CellSize      float64
}

// At returns the state of cell (x, z). Out of range reads as Wall so the
// callers never have to bounds-check themselves.
func (g *Grid) At(x, z int) CellState {
	if x < 0 || x >= g.Width || z < 0 || z >= g.Height {
		return Wall
	}
	return g.Cells[z][x]
}

// findStart scans rows first to last, columns first to last, for the
// first path cell.
func (g *Grid) findStart() Coord {
	for z := 0; z < g.Height; z++ {
		for x := 0; x < g.Width; x++ {
			if g.Cells[z][x] == PathCell {
				return Coord{X: x, Z: z}
			}
		}
	}
	return Coord{}
}

// findGoal scans rows last to first, columns last to first, for the last
// path cell. This is a deterministic tie-break, not a farthest-cell
// computation.
func (g *Grid) findGoal() Coord {
	for z := g.Height - 1; z >= 0; z-- {
		for x := g.Width - 1; x >= 0; x-- {
			if g.Cells[z][x] == PathCell {
				return Coord{X: x, Z: z}
			}
		}
	}
	return Coord{}
}
