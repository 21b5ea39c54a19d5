package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/gatemaze/app"
	"github.com/zucenko/gatemaze/config"
	"github.com/zucenko/gatemaze/game"
	"github.com/zucenko/gatemaze/session"
)

func main() {
	cfg := config.Load()

	g, err := game.New(session.RoleClient, cfg)
	if err != nil {
		log.Fatalf("client: %v", err)
	}
	defer g.Close()

	shell := app.New(g, nil)
	ebiten.SetWindowTitle("gatemaze CLIENT")
	ebiten.SetWindowSize(shell.Layout(0, 0))
	if err := ebiten.RunGame(shell); err != nil {
		log.Fatalln(err)
	}
}
