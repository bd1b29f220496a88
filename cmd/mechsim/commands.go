package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/mechsim/internal/config"
	"github.com/san-kum/mechsim/internal/parser"
	"github.com/san-kum/mechsim/internal/scenario"
	"github.com/san-kum/mechsim/internal/server"
	"github.com/san-kum/mechsim/internal/service"
	"github.com/san-kum/mechsim/internal/viz"
)

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets, their parameters and variants",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tPARAMETERS\tVARIANTS")
			for _, name := range scenario.PresetNames() {
				defaults, err := scenario.PresetDefaults(name)
				if err != nil {
					return err
				}
				keys := make([]string, 0, len(defaults))
				for k := range defaults {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				params := make([]string, len(keys))
				for i, k := range keys {
					params[i] = fmt.Sprintf("%s=%g", k, defaults[k])
				}
				variants := config.ListVariants(name)
				sort.Strings(variants)
				fmt.Fprintf(w, "%s\t%s\t%s\n", name, strings.Join(params, " "), strings.Join(variants, ", "))
			}
			return w.Flush()
		},
	}
}

func newParseCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "parse [problem text]",
		Short: "turn a word problem into a scenario file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := parser.New(cfg.Parser, logger)
			if !p.RemoteEnabled() {
				logger.Info("remote parser disabled, using keyword fallback", "env", cfg.Parser.APIKeyEnv)
			}
			sc, err := p.Parse(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if out != "" {
				if err := scenario.SaveFile(out, sc); err != nil {
					return err
				}
				fmt.Printf("scenario written to %s\n", out)
				return nil
			}
			data, err := yaml.Marshal(sc)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the scenario to a file")
	return cmd
}

func newLiveCmd() *cobra.Command {
	var (
		sf    scenarioFlags
		fps   int
		theme string
	)
	cmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run a scenario with live terminal visualization",
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
			title := sc.ScenarioType
			if title == "" {
				title = "custom"
			}
			m := viz.NewModel(st, title, fps, theme)
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
	sf.register(cmd)
	cmd.Flags().IntVar(&fps, "fps", 60, "frames per second")
	cmd.Flags().StringVar(&theme, "theme", viz.Themes[0].Name, "color theme")
	return cmd
}

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the HTTP and WebSocket API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			p := parser.New(cfg.Parser, logger)
			svc := service.New(cfg.Sim, p, logger)
			srv := server.New(svc, cfg.Server, logger)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	return cmd
}
