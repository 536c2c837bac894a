package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/soldane/ballistic/game"
)

func main() {
	cfgPath := flag.String("config", "ballistic.yaml", "path to the tunables file (missing file uses defaults)")
	flag.Parse()

	session, err := game.NewSession(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	defer session.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("ballistic")

	if err := ebiten.RunGame(session); err != nil {
		log.Fatal(err)
	}
}
