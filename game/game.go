// Package game is the per-process gameplay core: one player moving
// through one generated maze, feeding proximity events into the session
// protocol. The presentation shell pushes delta time and key state in
// and reads position, lock state and tint back out; no rendering concern
// lives here.
package game

import (
	"math"

	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween/ease"

	"github.com/zucenko/gatemaze/config"
	"github.com/zucenko/gatemaze/maze"
	"github.com/zucenko/gatemaze/session"
)

// InputState is the raw key snapshot the shell collects each frame.
type InputState struct {
	Up, Down, Left, Right bool

	// Retry asks a disconnected client to dial the host again.
	Retry bool
}

// Tint endpoints: far from the goal the player renders near-white,
// close to it the color pulls toward the goal portal's purple.
var (
	tintFar  = session.Tint{R: 0.9, G: 0.9, B: 0.9}
	tintNear = session.Tint{R: 0.4, G: 0.2, B: 1.0}
)

// Game owns the session-lifetime state of one process.
type Game struct {
	Grid    *maze.Grid
	Session *session.Session

	Pos maze.Vec2

	MoveSpeed     float64
	GoalThreshold float64

	// Won flips on the first tick GoalReached is observed; Paused
	// follows it and freezes movement for the victory screen.
	Won    bool
	Paused bool

	maxDist float64
}

// New generates the maze and opens the session for the given role. A
// generation failure is fatal for the session: there is no maze to play.
func New(role session.Role, cfg config.Config) (*Game, error) {
	grid, err := maze.Generate(cfg.MazeWidth, cfg.MazeHeight)
	if err != nil {
		log.Errorf("game: no playable maze: %v", err)
		return nil, err
	}

	var s *session.Session
	if role == session.RoleHost {
		s = session.NewHost(cfg.Port)
	} else {
		s = session.NewClient(cfg.HostAddr, cfg.Port)
	}

	g := &Game{
		Grid:          grid,
		Session:       s,
		MoveSpeed:     cfg.MoveSpeed,
		GoalThreshold: cfg.GoalThreshold,
		Pos:           maze.Vec2{X: grid.Start.WorldX(), Z: grid.Start.WorldZ()},
	}
	// Longest possible world distance inside this grid, used to
	// normalize the tint curve.
	w := float64(grid.Width) * grid.CellSize
	h := float64(grid.Height) * grid.CellSize
	g.maxDist = math.Hypot(w, h)

	log.Infof("game: %s session %s up, spawn (%.1f, %.1f)",
		role.Name(), s.ID, g.Pos.X, g.Pos.Z)
	return g, nil
}

// Locked reports whether movement is currently gated by the protocol.
func (g *Game) Locked() bool {
	return g.Session.MovementLocked
}

// DistanceToGoal is the live world distance from the player to the goal
// cell center.
func (g *Game) DistanceToGoal() float64 {
	dx := g.Pos.X - g.Grid.Goal.WorldX()
	dz := g.Pos.Z - g.Grid.Goal.WorldZ()
	return math.Hypot(dx, dz)
}

// NearGoal is the proximity trigger handed to the session each tick.
func (g *Game) NearGoal() bool {
	return g.DistanceToGoal() < g.GoalThreshold
}

// Tint is the live display color, eased along the distance to the goal.
// It is what a host sends in its unlock message, and what the UX layer
// paints the player with.
func (g *Game) Tint() session.Tint {
	d := g.maxDist - g.DistanceToGoal()
	if d < 0 {
		d = 0
	}
	t, max := float32(d), float32(g.maxDist)
	return session.Tint{
		R: float64(ease.InOutQuad(t, float32(tintFar.R), float32(tintNear.R-tintFar.R), max)),
		G: float64(ease.InOutQuad(t, float32(tintFar.G), float32(tintNear.G-tintFar.G), max)),
		B: float64(ease.InOutQuad(t, float32(tintFar.B), float32(tintNear.B-tintFar.B), max)),
	}
}

// Step advances one frame: resolve movement against the grid, then run
// the protocol tick with the fresh proximity reading.
func (g *Game) Step(dt float64, in InputState) {
	if in.Retry {
		g.Session.Retry()
	}

	if !g.Paused && !g.Locked() {
		v := g.MoveSpeed * dt
		var delta maze.Vec2
		if in.Up {
			delta.Z -= v
		}
		if in.Down {
			delta.Z += v
		}
		if in.Left {
			delta.X -= v
		}
		if in.Right {
			delta.X += v
		}
		g.Pos = g.Grid.ResolveMove(g.Pos, delta, maze.PlayerRadius)
	}

	g.Session.Tick(g.NearGoal(), g.Tint())

	if g.Session.GoalReached && !g.Won {
		g.Won = true
		g.Paused = true
		log.Infof("game: victory")
	}
}

// Close releases the session sockets.
func (g *Game) Close() {
	g.Session.Close()
}
