package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/gatemaze/app"
	"github.com/zucenko/gatemaze/config"
	"github.com/zucenko/gatemaze/game"
	"github.com/zucenko/gatemaze/observe"
	"github.com/zucenko/gatemaze/session"
)

func main() {
	cfg := config.Load()

	g, err := game.New(session.RoleHost, cfg)
	if err != nil {
		log.Fatalf("host: %v", err)
	}
	defer g.Close()

	var obs *observe.Server
	if cfg.ObserveAddr != "" {
		obs = observe.New(g.Grid)
		obs.Start(cfg.ObserveAddr)
	}

	shell := app.New(g, obs)
	ebiten.SetWindowTitle("gatemaze HOST")
	ebiten.SetWindowSize(shell.Layout(0, 0))
	if err := ebiten.RunGame(shell); err != nil {
		log.Fatalln(err)
	}
}
