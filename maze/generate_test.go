package maze

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisjointSetUnionFind(t *testing.T) {
	d := newDisjointSet(6)
	for i := 0; i < 6; i++ {
		assert.Equal(t, i, d.find(i))
	}

	require.True(t, d.union(0, 1))
	require.True(t, d.union(2, 3))
	assert.Equal(t, d.find(0), d.find(1))
	assert.NotEqual(t, d.find(1), d.find(2))

	// Joining two components succeeds once, then reports the cycle.
	require.True(t, d.union(1, 3))
	assert.False(t, d.union(0, 2))
	assert.Equal(t, d.find(0), d.find(3))

	assert.NotEqual(t, d.find(4), d.find(0))
}

// countPathStats walks the path cells of a grid and returns how many
// there are, how many a flood fill from Start reaches, and how many
// 4-adjacent path-cell pairs exist.
func countPathStats(g *Grid) (paths, reached, edges int) {
	for z := 0; z < g.Height; z++ {
		for x := 0; x < g.Width; x++ {
			if g.Cells[z][x] != PathCell {
				continue
			}
			paths++
			if g.At(x+1, z) == PathCell {
				edges++
			}
			if g.At(x, z+1) == PathCell {
				edges++
			}
		}
	}

	seen := map[Coord]bool{g.Start: true}
	stack := []Coord{g.Start}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		reached++
		for _, n := range []Coord{
			{c.X + 1, c.Z}, {c.X - 1, c.Z}, {c.X, c.Z + 1}, {c.X, c.Z - 1},
		} {
			if !seen[n] && g.At(n.X, n.Z) == PathCell {
				seen[n] = true
				stack = append(stack, n)
			}
		}
	}
	return paths, reached, edges
}

func TestGeneratePerfectMaze(t *testing.T) {
	sizes := [][2]int{{3, 3}, {7, 11}, {15, 15}, {31, 9}}
	for _, wh := range sizes {
		rng := rand.New(rand.NewSource(int64(wh[0]*100 + wh[1])))
		g, err := GenerateRand(wh[0], wh[1], rng)
		require.NoError(t, err)

		// Every node on the odd/odd sublattice joined the tree.
		nodes := (g.Width / 2) * (g.Height / 2)
		paths, reached, edges := countPathStats(g)

		// A spanning tree over n nodes carves n-1 corridors, each one
		// path cell between two node cells.
		assert.Equal(t, 2*nodes-1, paths, "%dx%d path cell count", wh[0], wh[1])
		assert.Equal(t, paths, reached, "%dx%d connectivity", wh[0], wh[1])
		assert.Equal(t, paths-1, edges, "%dx%d acyclicity", wh[0], wh[1])
	}
}

func TestGenerateCoercesEvenDimensions(t *testing.T) {
	g, err := Generate(10, 14)
	require.NoError(t, err)
	assert.Equal(t, 11, g.Width)
	assert.Equal(t, 15, g.Height)

	odd, err := Generate(11, 15)
	require.NoError(t, err)
	assert.Equal(t, odd.Width, g.Width)
	assert.Equal(t, odd.Height, g.Height)
}

func TestGenerateRejectsBadDimensions(t *testing.T) {
	for _, wh := range [][2]int{{0, 5}, {5, 0}, {-3, 7}, {1, 1}, {1, 9}} {
		_, err := Generate(wh[0], wh[1])
		assert.ErrorIs(t, err, ErrBadDimensions, "%dx%d", wh[0], wh[1])
	}
}

func TestGenerateStartAndGoalScanOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g, err := GenerateRand(15, 15, rng)
	require.NoError(t, err)

	assert.Equal(t, PathCell, g.Cells[g.Start.Z][g.Start.X])
	assert.Equal(t, PathCell, g.Cells[g.Goal.Z][g.Goal.X])

	// Nothing before the start in forward row-major order is a path.
	for z := 0; z <= g.Start.Z; z++ {
		for x := 0; x < g.Width; x++ {
			if z == g.Start.Z && x >= g.Start.X {
				break
			}
			assert.Equal(t, Wall, g.Cells[z][x])
		}
	}
	// Nothing after the goal in that order is a path either.
	for z := g.Goal.Z; z < g.Height; z++ {
		for x := 0; x < g.Width; x++ {
			if z == g.Goal.Z && x <= g.Goal.X {
				continue
			}
			assert.Equal(t, Wall, g.Cells[z][x])
		}
	}
}

func TestGenerateDeterministicUnderSeed(t *testing.T) {
	a, err := GenerateRand(15, 15, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	b, err := GenerateRand(15, 15, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	assert.Equal(t, a.Cells, b.Cells)
	assert.Equal(t, a.Goal, b.Goal)
	assert.Equal(t, a.Start, b.Start)
}
