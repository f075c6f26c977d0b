// Package sweep measures how far fires spread through random forests of
// varying density.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"forest-ca/internal/cell"
	"forest-ca/internal/forest"

	"golang.org/x/sync/errgroup"
)

// Ignition selects where a trial's fire starts.
type Ignition int

const (
	// IgniteCentre sets the middle cell on fire.
	IgniteCentre Ignition = iota
	// IgniteWestEdge sets every tree in the leftmost column on fire.
	IgniteWestEdge
)

func (i Ignition) String() string {
	switch i {
	case IgniteCentre:
		return "centre"
	case IgniteWestEdge:
		return "west"
	}
	return "Ignition(" + strconv.Itoa(int(i)) + ")"
}

// ErrNoDensities is returned when a sweep has nothing to measure.
var ErrNoDensities = errors.New("sweep: no densities")

// Options configures a sweep.
type Options struct {
	Size       int
	Trials     int
	MaxSteps   int
	Workers    int
	Seed       int64
	ChunkCells int
	Densities  []float64
}

// DefaultOptions returns a sweep over the interesting range around the
// percolation threshold.
func DefaultOptions() Options {
	return Options{
		Size:      128,
		Trials:    8,
		MaxSteps:  4096,
		Seed:      1337,
		Densities: []float64{0.3, 0.4, 0.5, 0.55, 0.6, 0.65, 0.7, 0.8},
	}
}

// TrialResult is the outcome of burning one forest.
type TrialResult struct {
	Density  float64
	Trial    int
	Ignition Ignition
	Trees    int
	Burned   int
	Steps    int
	Crossed  bool
}

// Fraction returns the share of planted trees that burned.
func (r TrialResult) Fraction() float64 {
	if r.Trees == 0 {
		return 0
	}
	return float64(r.Burned) / float64(r.Trees)
}

// Result aggregates the trials of one density and ignition.
type Result struct {
	Density    float64
	Ignition   Ignition
	Trials     int
	MeanBurned float64
	MeanSteps  float64
	Crossed    int
}

func (r Result) String() string {
	return fmt.Sprintf("density=%.3f ignition=%-6s burned=%5.1f%% steps=%7.1f crossed=%d/%d",
		r.Density, r.Ignition, 100*r.MeanBurned, r.MeanSteps, r.Crossed, r.Trials)
}

// ParseDensities reads a comma separated list of densities in [0,1].
func ParseDensities(list string) ([]float64, error) {
	var out []float64
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		d, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("sweep: density %q: %w", field, err)
		}
		if d < 0 || d > 1 {
			return nil, fmt.Errorf("%w: density %g not in [0,1]", forest.ErrInvalidSetting, d)
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return nil, ErrNoDensities
	}
	return out, nil
}

// Plant returns a size x size forest planted at density.
func Plant(opts Options, density float64, seed int64) *forest.Keeper {
	cfg := forest.DefaultConfig()
	cfg.Workers = 1
	if opts.ChunkCells > 0 {
		cfg.ChunkCells = opts.ChunkCells
	}
	k := forest.NewWithConfig(cfg)
	k.ResizeTo(opts.Size, opts.Size, 1, 0)
	k.Scatter(seed, density)
	return k
}

// Burn copies base, ignites the copy and evolves it until the fire is out or
// maxSteps generations have passed. base is left untouched.
func Burn(ctx context.Context, base *forest.Keeper, ignition Ignition, maxSteps int) (TrialResult, error) {
	cfg := forest.DefaultConfig()
	cfg.Workers = 1
	k := forest.NewWithConfig(cfg)
	k.CloneFrom(base)
	columns, rows := k.Dimensions()
	res := TrialResult{Ignition: ignition, Trees: k.Census()[cell.Tree]}
	if columns == 0 || rows == 0 {
		return res, nil
	}

	switch ignition {
	case IgniteCentre:
		if _, err := k.Ignite(columns/2, rows/2); err != nil {
			return res, err
		}
	case IgniteWestEdge:
		for row := 0; row < rows; row++ {
			if s, _ := k.StateAt(0, row); s == cell.Tree {
				if _, err := k.Ignite(0, row); err != nil {
					return res, err
				}
			}
		}
	default:
		return res, fmt.Errorf("sweep: unknown ignition %v", ignition)
	}

	for res.Steps < maxSteps && k.Burning() {
		if res.Steps%64 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}
		k.Evolve()
		res.Steps++
	}

	res.Burned = res.Trees - k.Census()[cell.Tree]
	if ignition == IgniteWestEdge && columns > 1 {
		for row := 0; row < rows; row++ {
			if s, _ := k.StateAt(columns-1, row); s == cell.BurnedSlightly || s == cell.Burned || s == cell.Fire {
				res.Crossed = true
				break
			}
		}
	}
	return res, nil
}

// Run burns opts.Trials forests per density and ignition site on a bounded
// worker pool and returns one aggregate per (density, ignition), ordered by
// density then ignition. Trial t of every density uses seed opts.Seed+t, so
// results are reproducible whatever the worker count.
func Run(ctx context.Context, opts Options) ([]Result, error) {
	if len(opts.Densities) == 0 {
		return nil, ErrNoDensities
	}
	if opts.Size <= 0 || opts.Trials <= 0 {
		return nil, fmt.Errorf("%w: size %d trials %d", forest.ErrInvalidSetting, opts.Size, opts.Trials)
	}
	ignitions := []Ignition{IgniteCentre, IgniteWestEdge}
	trials := make([]TrialResult, len(opts.Densities)*opts.Trials*len(ignitions))

	g, ctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}
	for di, density := range opts.Densities {
		for t := 0; t < opts.Trials; t++ {
			slot := (di*opts.Trials + t) * len(ignitions)
			g.Go(func() error {
				base := Plant(opts, density, opts.Seed+int64(t))
				for i, ignition := range ignitions {
					res, err := Burn(ctx, base, ignition, opts.MaxSteps)
					if err != nil {
						return err
					}
					res.Density = density
					res.Trial = t
					trials[slot+i] = res
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return Aggregate(trials), nil
}

// Aggregate folds trial results into per (density, ignition) means.
func Aggregate(trials []TrialResult) []Result {
	type key struct {
		density  float64
		ignition Ignition
	}
	byKey := map[key]*Result{}
	var order []key
	for _, tr := range trials {
		k := key{tr.Density, tr.Ignition}
		r, ok := byKey[k]
		if !ok {
			r = &Result{Density: tr.Density, Ignition: tr.Ignition}
			byKey[k] = r
			order = append(order, k)
		}
		r.Trials++
		r.MeanBurned += tr.Fraction()
		r.MeanSteps += float64(tr.Steps)
		if tr.Crossed {
			r.Crossed++
		}
	}
	out := make([]Result, 0, len(order))
	for _, k := range order {
		r := byKey[k]
		r.MeanBurned /= float64(r.Trials)
		r.MeanSteps /= float64(r.Trials)
		out = append(out, *r)
	}
	slices.SortStableFunc(out, func(a, b Result) int {
		switch {
		case a.Density < b.Density:
			return -1
		case a.Density > b.Density:
			return 1
		}
		return int(a.Ignition) - int(b.Ignition)
	})
	return out
}
