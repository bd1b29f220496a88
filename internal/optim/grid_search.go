// Package optim searches preset parameter grids for the run that
// minimizes or maximizes a metric.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/san-kum/mechsim/internal/sim"
)

var (
	// ErrEmptyGrid indicates a search with no parameters or an empty range.
	ErrEmptyGrid = errors.New("optim: empty parameter grid")

	// ErrUnknownMetric indicates the metric was not reported by any run.
	ErrUnknownMetric = errors.New("optim: metric not reported")
)

// Build creates a fresh stepper for one grid point.
type Build func(params map[string]float64) (*sim.Stepper, error)

// Point is one evaluated grid point.
type Point struct {
	Params map[string]float64
	Value  float64
	Err    error
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	workers    int
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges, workers: 4}
}

// SetWorkers bounds the number of concurrent runs.
func (g *GridSearch) SetWorkers(n int) {
	if n > 0 {
		g.workers = n
	}
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

func (g *GridSearch) points() []map[string]float64 {
	out := []map[string]float64{{}}
	for i, name := range g.paramNames {
		next := make([]map[string]float64, 0, len(out)*len(g.ranges[i]))
		for _, base := range out {
			for _, v := range g.ranges[i] {
				p := make(map[string]float64, len(base)+1)
				for k, bv := range base {
					p[k] = bv
				}
				p[name] = v
				next = append(next, p)
			}
		}
		out = next
	}
	return out
}

// Search runs every grid point to its time ceiling and returns all points,
// best first. Failed points sort last and keep their error.
func (g *GridSearch) Search(ctx context.Context, build Build, metric string, maximize bool) ([]Point, error) {
	if len(g.paramNames) == 0 || len(g.paramNames) != len(g.ranges) {
		return nil, ErrEmptyGrid
	}
	for _, r := range g.ranges {
		if len(r) == 0 {
			return nil, ErrEmptyGrid
		}
	}

	grid := g.points()
	results := make([]Point, len(grid))
	sem := make(chan struct{}, g.workers)

	var wg sync.WaitGroup
	for i, params := range grid {
		wg.Add(1)
		go func(idx int, params map[string]float64) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[idx] = evaluate(ctx, build, params, metric)
		}(i, params)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ok := 0
	for _, p := range results {
		if p.Err == nil {
			ok++
		}
	}
	if ok == 0 {
		return results, fmt.Errorf("optim: every run failed: %w", results[0].Err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if (a.Err == nil) != (b.Err == nil) {
			return a.Err == nil
		}
		if maximize {
			return a.Value > b.Value
		}
		return a.Value < b.Value
	})
	return results, nil
}

func evaluate(ctx context.Context, build Build, params map[string]float64, metric string) Point {
	p := Point{Params: params, Value: math.NaN()}
	st, err := build(params)
	if err != nil {
		p.Err = err
		return p
	}
	res, err := st.Run(ctx)
	if err != nil {
		p.Err = err
		return p
	}
	v, found := res.Metrics[metric]
	if !found {
		p.Err = fmt.Errorf("%w: %s", ErrUnknownMetric, metric)
		return p
	}
	p.Value = v
	return p
}
