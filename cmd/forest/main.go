//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"forest-ca/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	forestCfg, err := cfg.Forest()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	game := app.New(forestCfg, cfg.Start)

	ebiten.SetWindowTitle("Forest fire")
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
