// Package app is the presentation shell around the game core: an ebiten
// top-down view that collects key state, hands delta time to the game
// step, and draws the grid, the player and the lock/victory overlays.
// Everything here is replaceable without touching the core packages.
package app

import (
	"image/color"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/zucenko/gatemaze/game"
	"github.com/zucenko/gatemaze/maze"
	"github.com/zucenko/gatemaze/observe"
	"github.com/zucenko/gatemaze/session"
)

// cellPx is the on-screen size of one grid cell.
const cellPx = 32

var overlayFace font.Face

func init() {
	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("app: parse font: %v", err)
	}
	overlayFace = truetype.NewFace(tt, &truetype.Options{
		Size:    24,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

var (
	colorWall   = color.RGBA{0x44, 0x44, 0x44, 0xff}
	colorFloor  = color.RGBA{0x99, 0x99, 0x99, 0xff}
	colorGoal   = color.RGBA{0x0a, 0xbd, 0x38, 0xff}
	colorBanner = color.RGBA{0xed, 0xbc, 0x1e, 0xff}
)

// App drives one game through ebiten's fixed-step loop.
type App struct {
	Game     *game.Game
	Observer *observe.Server // nil when the observer is off

	banner      string
	bannerAlpha float32
	fade        *gween.Tween

	wasLocked bool
	wasWon    bool
}

// New wires the shell to a game. observer may be nil.
func New(g *game.Game, observer *observe.Server) *App {
	a := &App{
		Game:      g,
		Observer:  observer,
		wasLocked: g.Locked(),
	}
	if a.wasLocked {
		a.showBanner("WAITING FOR HOST  (R retries connection)")
	}
	return a
}

func (a *App) showBanner(s string) {
	a.banner = s
	a.bannerAlpha = 0
	a.fade = gween.New(0, 1, 0.8, ease.OutQuad)
}

// Update runs one fixed-step frame: input in, game step, UX transitions.
func (a *App) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	in := game.InputState{
		Up:    ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:  ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Retry: inpututil.IsKeyJustPressed(ebiten.KeyR),
	}

	a.Game.Step(dt, in)

	if a.wasLocked && !a.Game.Locked() {
		a.wasLocked = false
		a.showBanner("UNLOCKED - GO")
	}
	if !a.wasWon && a.Game.Won {
		a.wasWon = true
		a.showBanner("YOU MADE IT")
	}

	if a.fade != nil {
		v, done := a.fade.Update(float32(dt))
		a.bannerAlpha = v
		if done {
			a.fade = nil
		}
	}

	if a.Observer != nil {
		t := a.Game.Tint()
		a.Observer.Publish(observe.Snapshot{
			SessionID: a.Game.Session.ID.String(),
			Role:      a.Game.Session.Role.Name(),
			X:         a.Game.Pos.X,
			Z:         a.Game.Pos.Z,
			Locked:    a.Game.Locked(),
			Won:       a.Game.Won,
			Tint:      [3]float64{t.R, t.G, t.B},
		})
	}
	return nil
}

func tintColor(t session.Tint, alpha float64) color.RGBA {
	return color.RGBA{
		R: uint8(t.R * 255),
		G: uint8(t.G * 255),
		B: uint8(t.B * 255),
		A: uint8(alpha * 255),
	}
}

// Draw paints the grid, player, goal and overlays.
func (a *App) Draw(screen *ebiten.Image) {
	grid := a.Game.Grid

	for z := 0; z < grid.Height; z++ {
		for x := 0; x < grid.Width; x++ {
			c := colorFloor
			switch {
			case grid.Cells[z][x] == maze.Wall:
				c = colorWall
			case x == grid.Goal.X && z == grid.Goal.Z:
				c = colorGoal
			}
			vector.DrawFilledRect(screen,
				float32(x*cellPx), float32(z*cellPx),
				cellPx, cellPx, c, false)
		}
	}

	// Player: world coordinates back to pixels, cell centers on cell
	// origins, drawn with the live distance tint.
	px := float32(a.Game.Pos.X/grid.CellSize)*cellPx - cellPx/4 + cellPx/2
	pz := float32(a.Game.Pos.Z/grid.CellSize)*cellPx - cellPx/4 + cellPx/2
	vector.DrawFilledRect(screen, px, pz, cellPx/2, cellPx/2,
		tintColor(a.Game.Tint(), 1), false)

	if a.banner != "" && a.bannerAlpha > 0 {
		c := colorBanner
		c.A = uint8(a.bannerAlpha * 255)
		text.Draw(screen, a.banner, overlayFace, cellPx/2, cellPx+8, c)
	}

	status := a.Game.Session.Role.Name()
	if a.Game.Session.Connected() {
		status += " connected"
	}
	ebitenutil.DebugPrintAt(screen, status, 2, grid.Height*cellPx-16)
}

// Layout sizes the window to the grid.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.Game.Grid.Width * cellPx, a.Game.Grid.Height * cellPx
}
