package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/mechsim/internal/optim"
	"github.com/san-kum/mechsim/internal/scenario"
	"github.com/san-kum/mechsim/internal/sim"
)

// parseRange accepts "lo:hi:n" or a comma separated list of values.
func parseRange(raw string) ([]float64, error) {
	if parts := strings.Split(raw, ":"); len(parts) == 3 {
		lo, err1 := strconv.ParseFloat(parts[0], 64)
		hi, err2 := strconv.ParseFloat(parts[1], 64)
		n, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil || n < 1 {
			return nil, fmt.Errorf("range %q: want lo:hi:n", raw)
		}
		return optim.Linspace(lo, hi, n), nil
	}
	var out []float64
	for _, s := range strings.Split(raw, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("range %q: %q is not a number", raw, s)
		}
		out = append(out, v)
	}
	return out, nil
}

func newSweepCmd() *cobra.Command {
	var (
		sf       scenarioFlags
		ranges   map[string]string
		metric   string
		maximize bool
		workers  int
		top      int
	)
	cmd := &cobra.Command{
		Use:   "sweep <preset>",
		Short: "run a preset over a parameter grid and rank the runs by a metric",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if len(ranges) == 0 {
				return fmt.Errorf("need at least one --range")
			}

			names := make([]string, 0, len(ranges))
			for k := range ranges {
				names = append(names, k)
			}
			sort.Strings(names)
			grid := make([][]float64, len(names))
			for i, k := range names {
				vals, err := parseRange(ranges[k])
				if err != nil {
					return err
				}
				grid[i] = vals
			}

			build := func(params map[string]float64) (*sim.Stepper, error) {
				sc, err := scenario.Preset(name, params)
				if err != nil {
					return nil, err
				}
				return sf.newStepper(sc)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			gs := optim.NewGridSearch(names, grid)
			gs.SetWorkers(workers)
			logger.Info("sweeping", "preset", name, "params", names, "metric", metric, "maximize", maximize)
			points, err := gs.Search(ctx, build, metric, maximize)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "%s\t%s\n", strings.ToUpper(strings.Join(names, "\t")), strings.ToUpper(metric))
			for i, p := range points {
				if top > 0 && i >= top {
					break
				}
				cols := make([]string, len(names))
				for j, k := range names {
					cols[j] = fmt.Sprintf("%.3f", p.Params[k])
				}
				val := fmt.Sprintf("%.4f", p.Value)
				if p.Err != nil {
					val = "error: " + p.Err.Error()
				}
				fmt.Fprintf(tw, "%s\t%s\n", strings.Join(cols, "\t"), val)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringToStringVarP(&ranges, "range", "r", nil, "parameter range (name=lo:hi:n or name=a,b,c)")
	cmd.Flags().StringVarP(&metric, "metric", "m", "max_height", "metric to rank by")
	cmd.Flags().BoolVar(&maximize, "max", false, "rank highest first")
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "concurrent runs")
	cmd.Flags().IntVar(&top, "top", 10, "rows to print (0 for all)")
	cmd.Flags().Float64Var(&sf.dt, "dt", 0, "timestep (default from config)")
	cmd.Flags().Float64Var(&sf.maxTime, "time", 0, "simulated time ceiling (default from config)")
	return cmd
}
