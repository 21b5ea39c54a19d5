package maze

import (
	"errors"
	"fmt"
	"math/rand"

	log "github.com/sirupsen/logrus"
)

// ErrBadDimensions is returned for non-positive width or height.
var ErrBadDimensions = errors.New("maze dimensions must be positive")

// disjointSet is a plain union-find over integer node ids, with path
// compression and union by rank.
type disjointSet struct {
	parent []int
	rank   []int
}

func newDisjointSet(n int) *disjointSet {
	d := &disjointSet{
		parent: make([]int, n),
		rank:   make([]int, n),
	}
	for i := range d.parent {
		d.parent[i] = i
	}
	return d
}

func (d *disjointSet) find(i int) int {
	for d.parent[i] != i {
		d.parent[i] = d.parent[d.parent[i]]
		i = d.parent[i]
	}
	return i
}

// union merges the sets of a and b. Returns false when they were already
// in the same set, which is exactly the cycle case the generator skips.
func (d *disjointSet) union(a, b int) bool {
	ra, rb := d.find(a), d.find(b)
	if ra == rb {
		return false
	}
	if d.rank[ra] < d.rank[rb] {
		ra, rb = rb, ra
	}
	d.parent[rb] = ra
	if d.rank[ra] == d.rank[rb] {
		d.rank[ra]++
	}
	return true
}

// edge joins two neighbouring nodes of the odd/odd sublattice. The cell
// between them is the wall that gets carved when the edge enters the tree.
type edge struct {
	ax, az int
	bx, bz int
}

// Generate builds a perfect maze of roughly the requested size. Even
// dimensions are bumped to the next odd number: odd coordinates are cell
// nodes, even coordinates are the walls between them, so the lattice only
// lines up on odd sizes.
func Generate(width, height int) (*Grid, error) {
	return GenerateRand(width, height, nil)
}

// GenerateRand is Generate with an explicit random source, so tests can
// pin the layout down.
func GenerateRand(width, height int, rng *rand.Rand) (g *Grid, err error) {
	if width < 1 || height < 1 {
		log.Errorf("maze: refusing %dx%d: %v", width, height, ErrBadDimensions)
		return nil, ErrBadDimensions
	}
	if width%2 == 0 {
		width++
	}
	if height%2 == 0 {
		height++
	}

	// The construction indexes slices all over; keep a bug here from
	// taking the whole process down with it.
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("maze: generation panicked: %v", r)
			g, err = nil, fmt.Errorf("maze: generation failed: %v", r)
		}
	}()

	cells := make([][]CellState, height)
	for z := range cells {
		cells[z] = make([]CellState, width)
	}

	// Nodes sit on the odd/odd sublattice. A width or height of 1 leaves
	// no room for a single node, which makes the session unplayable.
	nodeCols := width / 2
	nodeRows := height / 2
	if nodeCols == 0 || nodeRows == 0 {
		log.Errorf("maze: %dx%d leaves no cell nodes", width, height)
		return nil, ErrBadDimensions
	}
	nodeID := func(x, z int) int {
		return (z/2)*nodeCols + x/2
	}

	edges := make([]edge, 0, 2*nodeCols*nodeRows)
	for z := 1; z < height; z += 2 {
		for x := 1; x < width; x += 2 {
			if x+2 < width {
				edges = append(edges, edge{ax: x, az: z, bx: x + 2, bz: z})
			}
			if z+2 < height {
				edges = append(edges, edge{ax: x, az: z, bx: x, bz: z + 2})
			}
		}
	}

	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}
	shuffle(len(edges), func(i, j int) {
		edges[i], edges[j] = edges[j], edges[i]
	})

	// Kruskal: take edges in random order, keep the ones that connect two
	// different components, carve the wall cell between their endpoints.
	sets := newDisjointSet(nodeCols * nodeRows)
	for _, e := range edges {
		if !sets.union(nodeID(e.ax, e.az), nodeID(e.bx, e.bz)) {
			continue
		}
		cells[e.az][e.ax] = PathCell
		cells[e.bz][e.bx] = PathCell
		cells[(e.az+e.bz)/2][(e.ax+e.bx)/2] = PathCell
	}

	// A single-node lattice has no edges to carve, but the node itself is
	// still walkable.
	if nodeCols == 1 && nodeRows == 1 {
		cells[1][1] = PathCell
	}

	g = &Grid{
		Width:    width,
		Height:   height,
		Cells:    cells,
		CellSize: CellSize,
	}
	g.Start = g.findStart()
	g.Goal = g.findGoal()
	log.Infof("maze: generated %dx%d, start (%d,%d), goal (%d,%d)",
		width, height, g.Start.X, g.Start.Z, g.Goal.X, g.Goal.Z)
	return g, nil
}
