package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/mechsim/internal/config"
	"github.com/san-kum/mechsim/internal/metrics"
	"github.com/san-kum/mechsim/internal/physics"
	"github.com/san-kum/mechsim/internal/scenario"
	"github.com/san-kum/mechsim/internal/sim"
	"github.com/san-kum/mechsim/internal/storage"
)

// scenarioFlags selects a scenario from a file or a preset.
type scenarioFlags struct {
	file    string
	variant string
	params  map[string]string
	dt      float64
	maxTime float64
}

func (f *scenarioFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "scenario file (yaml or json)")
	cmd.Flags().StringVar(&f.variant, "variant", "", "named preset variant")
	cmd.Flags().StringToStringVarP(&f.params, "param", "p", nil, "preset parameter override (name=value)")
	cmd.Flags().Float64Var(&f.dt, "dt", 0, "timestep (default from config)")
	cmd.Flags().Float64Var(&f.maxTime, "time", 0, "simulated time ceiling (default from config)")
}

func (f *scenarioFlags) load(args []string) (scenario.Scenario, error) {
	if f.file != "" {
		return scenario.LoadFile(f.file)
	}
	if len(args) == 0 {
		return scenario.Scenario{}, fmt.Errorf("need a preset name or --file (presets: %v)", scenario.PresetNames())
	}
	name := args[0]

	params := map[string]float64{}
	if f.variant != "" {
		v := config.GetVariant(name, f.variant)
		if v == nil {
			return scenario.Scenario{}, fmt.Errorf("unknown variant %q (available: %v)", f.variant, config.ListVariants(name))
		}
		params = v
	}
	for k, raw := range f.params {
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return scenario.Scenario{}, fmt.Errorf("parameter %s: %q is not a number", k, raw)
		}
		params[k] = val
	}
	return scenario.Preset(name, params)
}

func (f *scenarioFlags) simConfig() sim.Config {
	c := sim.Config{Dt: cfg.Sim.Dt, MaxTime: cfg.Sim.MaxTime}
	if f.dt > 0 {
		c.Dt = f.dt
	}
	if f.maxTime > 0 {
		c.MaxTime = f.maxTime
	}
	return c
}

// newStepper builds the world and a stepper carrying the default metrics.
func (f *scenarioFlags) newStepper(sc scenario.Scenario) (*sim.Stepper, error) {
	w, err := scenario.Build(sc)
	if err != nil {
		return nil, err
	}
	st, err := sim.New(w, f.simConfig())
	if err != nil {
		return nil, err
	}
	for _, m := range metrics.Default() {
		st.AddMetric(m)
	}
	return st, nil
}

func newRunCmd() *cobra.Command {
	var (
		sf     scenarioFlags
		noSave bool
	)
	cmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a scenario to its time ceiling and save the run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := sf.load(args)
			if err != nil {
				return err
			}
			st, err := sf.newStepper(sc)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			logger.Info("running", "scenario", sc.ScenarioType, "bodies", st.World().Len(), "dt", st.Dt(), "max_time", st.MaxTime())
			res, err := st.Run(ctx)
			if err != nil {
				return err
			}

			name := sc.ScenarioType
			if name == "" {
				name = "custom"
			}
			if !noSave {
				store := storage.New(cfg.Storage.DataDir)
				if err := store.Init(); err != nil {
					return err
				}
				runID, err := store.Save(storage.Capture(name, sc.Description, st.Dt(), st.World(), res))
				if err != nil {
					return err
				}
				fmt.Printf("run: %s\n", runID)
			}

			fmt.Printf("steps: %d\n", res.Steps)
			fmt.Printf("time: %.3fs\n", res.Time)
			return printResult(res, st.World())
		},
	}
	sf.register(cmd)
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")
	return cmd
}

func printResult(res *sim.Result, w *physics.World) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\nMETRIC\tVALUE")
	fmt.Fprintf(tw, "initial_energy\t%.4f\n", res.InitialEnergy)
	fmt.Fprintf(tw, "energy_loss\t%.4f\n", res.EnergyLoss)

	names := make([]string, 0, len(res.Metrics))
	for k := range res.Metrics {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Fprintf(tw, "%s\t%.4f\n", k, res.Metrics[k])
	}

	fmt.Fprintln(tw, "\nBODY\tPOSITION\tVELOCITY\tDISTANCE")
	for _, b := range w.Bodies() {
		fmt.Fprintf(tw, "%s\t(%.2f, %.2f)\t(%.2f, %.2f)\t%.2f\n",
			b.ID, b.Position.X, b.Position.Y, b.Velocity.X, b.Velocity.Y, b.DistanceTraveled())
	}
	return tw.Flush()
}
