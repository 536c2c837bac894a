package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/soldane/ballistic/game"
)

func main() {
	scriptPath := flag.String("scene", "", "scene script path (.tengo); empty shows the built-in scene")
	flag.Parse()

	viewer, err := game.NewViewer(*scriptPath)
	if err != nil {
		log.Fatal(err)
	}
	defer viewer.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("ballistic viewer")

	if err := ebiten.RunGame(viewer); err != nil {
		log.Fatal(err)
	}
}
