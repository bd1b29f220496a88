package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/mechsim/internal/analysis"
	"github.com/san-kum/mechsim/internal/storage"
	"github.com/san-kum/mechsim/internal/viz"
)

func openStore() *storage.Store {
	return storage.New(cfg.Storage.DataDir)
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := openStore().List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no runs found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tSTEPS\tSIM TIME\tDT\tENERGY LOSS")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2fs\t%.4fs\t%.4f\n",
					run.ID,
					run.Scenario,
					run.Timestamp.Format("2006-01-02 15:04:05"),
					run.Steps,
					run.SimTime,
					run.Dt,
					run.EnergyLoss,
				)
			}
			return w.Flush()
		},
	}
}

func newPlotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot energy and body heights of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := args[0]
			st := openStore()
			meta, err := st.Load(runID)
			if err != nil {
				return err
			}
			energy, err := st.LoadEnergy(runID)
			if err != nil {
				return err
			}
			if len(energy) == 0 {
				return errors.New("no data to plot")
			}

			fmt.Printf("run: %s\n", meta.ID)
			fmt.Printf("scenario: %s\n", meta.Scenario)
			fmt.Printf("samples: %d\n\n", len(energy))

			kinetic := make([]float64, len(energy))
			potential := make([]float64, len(energy))
			for i, e := range energy {
				kinetic[i], potential[i] = e.Kinetic, e.Potential
			}
			graph := asciigraph.PlotMany([][]float64{kinetic, potential, viz.MechanicalSeries(energy)},
				asciigraph.Height(12),
				asciigraph.Width(80),
				asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue, asciigraph.Green),
				asciigraph.Caption("energy (red kinetic, blue potential, green mechanical)"),
			)
			fmt.Println(graph)
			fmt.Println()

			traj, err := st.LoadTrajectories(runID)
			if err != nil {
				return err
			}
			ids := make([]string, 0, len(traj))
			for id := range traj {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			const maxPlots = 4
			for i, id := range ids {
				if i == maxPlots {
					break
				}
				ys := analysis.Series(traj[id], analysis.AxisY)
				if len(ys) < 2 {
					continue
				}
				fmt.Println(asciigraph.Plot(ys,
					asciigraph.Height(8),
					asciigraph.Width(80),
					asciigraph.Caption(id+" height"),
				))
				fmt.Println()
			}
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	var out, svg string
	cmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run as json, or its trajectories as svg",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := openStore()
			if svg != "" {
				traj, err := st.LoadTrajectories(args[0])
				if err != nil {
					return err
				}
				doc := viz.TrajectoriesSVG(traj, 800, 600)
				if doc == "" {
					return errors.New("no trajectories to draw")
				}
				if err := os.WriteFile(svg, []byte(doc), 0644); err != nil {
					return err
				}
				fmt.Printf("trajectories written to %s\n", svg)
				return nil
			}

			if out == "" {
				return st.ExportJSON(os.Stdout, args[0])
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := st.ExportJSON(f, args[0]); err != nil {
				return err
			}
			fmt.Printf("exported to %s\n", out)
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&svg, "svg", "", "write trajectories as svg to this file instead")
	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	var (
		body  string
		axis  string
		phase bool
	)
	cmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a body's trajectory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := args[0]
			st := openStore()
			meta, err := st.Load(runID)
			if err != nil {
				return err
			}
			traj, err := st.LoadTrajectories(runID)
			if err != nil {
				return err
			}

			if body == "" {
				for _, id := range meta.Bodies {
					if len(traj[id]) > 0 {
						body = id
						break
					}
				}
			}
			points := traj[body]
			if len(points) < 2 {
				return fmt.Errorf("no trajectory for body %q (bodies: %v)", body, meta.Bodies)
			}

			ax := analysis.AxisX
			if axis == "y" {
				ax = analysis.AxisY
			}
			series := analysis.Series(points, ax)
			dt := points[1].Time - points[0].Time

			fmt.Printf("frequency analysis: %s\n", meta.ID)
			fmt.Printf("scenario: %s\n", meta.Scenario)
			fmt.Printf("body: %s (%s)\n\n", body, axis)

			ps := analysis.PowerSpectrum(series)
			if len(ps) > 8 {
				ps = ps[:len(ps)/4]
			}
			fmt.Println(asciigraph.Plot(ps,
				asciigraph.Height(15),
				asciigraph.Width(80),
				asciigraph.Caption("power spectrum ("+axis+")"),
			))
			fmt.Println()

			freq, err := analysis.DominantFrequency(series, dt)
			if err != nil {
				return err
			}
			fmt.Printf("dominant frequency: %.3f hz\n", freq)
			fmt.Printf("period: %.3f s\n", 1/freq)
			if p, err := analysis.CrossingPeriod(series, dt); err == nil {
				fmt.Printf("crossing period: %.3f s\n", p)
			}

			if phase {
				fmt.Println()
				fmt.Print(analysis.NewPhasePortrait(points, ax).ASCII(80, 20))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&body, "body", "", "body id (default first body with a trajectory)")
	cmd.Flags().StringVar(&axis, "axis", "x", "trajectory axis (x or y)")
	cmd.Flags().BoolVar(&phase, "phase", false, "also draw the phase portrait")
	return cmd
}
