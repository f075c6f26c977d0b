package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"time"

	"forest-ca/internal/sweep"
)

func main() {
	def := sweep.DefaultOptions()
	size := flag.Int("size", def.Size, "forest edge length in cells")
	trials := flag.Int("trials", def.Trials, "forests burned per density")
	steps := flag.Int("steps", def.MaxSteps, "generation limit per burn")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	seed := flag.Int64("seed", def.Seed, "seed of the first trial")
	densities := flag.String("densities", "0.3,0.4,0.5,0.55,0.6,0.65,0.7,0.8", "comma separated tree densities")
	flag.Parse()

	list, err := sweep.ParseDensities(*densities)
	if err != nil {
		log.Fatal(err)
	}
	opts := sweep.Options{
		Size:      *size,
		Trials:    *trials,
		MaxSteps:  *steps,
		Workers:   *workers,
		Seed:      *seed,
		Densities: list,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Burning %d forests of %dx%d (%d densities, %d workers, %d step limit)\n",
		len(list)*opts.Trials, opts.Size, opts.Size, len(list), opts.Workers, opts.MaxSteps)

	start := time.Now()
	results, err := sweep.Run(ctx, opts)
	if err != nil {
		log.Fatalf("sweep failed: %v", err)
	}
	for _, res := range results {
		fmt.Println(res)
	}
	fmt.Printf("\nElapsed %s\n", time.Since(start).Round(time.Millisecond))
}
