package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"

	"forest-ca/internal/app"
	"forest-ca/internal/term"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Cell = 1
	cfg.Border = 0
	cfg.TickMS = 200
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	forestCfg, err := cfg.Forest()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("creating screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("initializing screen: %v", err)
	}
	screen.EnableMouse()
	screen.Clear()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = term.New(screen, forestCfg, cfg.Start).Run(ctx)
	screen.Fini()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
