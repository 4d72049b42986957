package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nvandessel/opspread/internal/config"
	"github.com/nvandessel/opspread/internal/constants"
	"github.com/nvandessel/opspread/internal/logging"
	"github.com/nvandessel/opspread/internal/metrics"
	"github.com/nvandessel/opspread/internal/simulation"
	"github.com/nvandessel/opspread/internal/visualization"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evolve an operator through brickwork periods",
		Long: `Build a chain, seed the starting operator on it, and apply random
two-qubit Clifford gates in a brickwork pattern for the requested number of
periods. One line is printed per period, starting with the seeded operator:

  <period>  <pauli string>  <#I> <#X> <#Y> <#Z>

Settings come from ~/.opspread/config.yaml and OPSPREAD_* environment
variables; flags override both.

Examples:
  opspread run                                  # L=200, X on site 0, 10 periods
  opspread run --length 40 --periods 5 --seed 7
  opspread run --initial Z@10,X@11 --phase-rule textbook
  opspread run --json --metrics
  opspread run --render text                    # spacetime picture in the terminal
  opspread run --render html --out run.html --open`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := applyRunFlags(cmd, cfg); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			sc, err := simulation.ScenarioFromConfig("run", cfg.Simulation)
			if err != nil {
				return err
			}

			renderName, _ := cmd.Flags().GetString("render")
			outPath, _ := cmd.Flags().GetString("out")
			openOut, _ := cmd.Flags().GetBool("open")
			var format visualization.Format
			if renderName != "" {
				if format, err = visualization.ParseFormat(renderName); err != nil {
					return err
				}
			}
			if openOut && outPath == "" {
				return fmt.Errorf("--open requires --out")
			}

			trace := logging.NewTraceLogger(cfg.Logging.TraceDir, cfg.Logging.Level)
			defer trace.Close()

			opts := []simulation.RunnerOption{
				simulation.WithLogger(logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())),
				simulation.WithTrace(trace),
			}
			var collector *metrics.Collector
			if cfg.Metrics.Enabled {
				collector = metrics.NewCollector()
				opts = append(opts, simulation.WithMetrics(collector))
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			result, runErr := simulation.NewRunner(opts...).Run(ctx, sc)
			if result == nil {
				return runErr
			}

			out := cmd.OutOrStdout()
			switch {
			case format != "":
				if err := writeRendering(out, outPath, result, format); err != nil {
					return err
				}
				if openOut {
					if err := visualization.OpenBrowser(outPath); err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not open browser: %v\n", err)
					}
				}
			case jsonOut:
				if err := json.NewEncoder(out).Encode(result); err != nil {
					return fmt.Errorf("failed to encode result: %w", err)
				}
			default:
				printPeriods(out, result)
			}

			if collector != nil {
				if err := collector.WriteText(cmd.ErrOrStderr()); err != nil {
					return fmt.Errorf("failed to write metrics: %w", err)
				}
			}

			if runErr != nil {
				return fmt.Errorf("run stopped after %d periods: %w", len(result.Periods), runErr)
			}
			return nil
		},
	}

	cmd.Flags().Int("length", constants.DefaultChainLength, "Chain length L")
	cmd.Flags().Int("defects", 0, "Number of defect chains (stored only)")
	cmd.Flags().Int("periods", constants.DefaultPeriods, "Number of brickwork periods")
	cmd.Flags().Uint64("seed", constants.DefaultSeed, "Gate sampler seed")
	cmd.Flags().String("initial", constants.DefaultInitialOperator, "Starting operator: <P>@<site>[,...] or a full Pauli string")
	cmd.Flags().String("phase-rule", string(constants.PhaseRuleDocumented), "Phase gate rule: documented or textbook")
	cmd.Flags().Int("classes", constants.DocumentedEntanglingClasses, "Entangling class draw size: 21 or 20")
	cmd.Flags().Bool("metrics", false, "Print prometheus metrics to stderr after the run")
	cmd.Flags().String("trace-dir", "", "Write a per-period JSONL trace to this directory (needs --log-level debug or trace)")
	cmd.Flags().String("log-level", "info", "Log level: info, debug, or trace")
	cmd.Flags().String("render", "", "Render the spacetime picture instead of the period table: text or html")
	cmd.Flags().String("out", "", "Write the rendering to this file instead of stdout")
	cmd.Flags().Bool("open", false, "Open the rendered file in the default browser (requires --out)")

	return cmd
}

// applyRunFlags copies explicitly set flags over cfg.
func applyRunFlags(cmd *cobra.Command, cfg *config.OpspreadConfig) error {
	flags := cmd.Flags()
	var errs []error
	set := func(name string, apply func() error) {
		if flags.Changed(name) {
			if err := apply(); err != nil {
				errs = append(errs, fmt.Errorf("--%s: %w", name, err))
			}
		}
	}

	set("length", func() (err error) { cfg.Simulation.ChainLength, err = flags.GetInt("length"); return })
	set("defects", func() (err error) { cfg.Simulation.DefectChains, err = flags.GetInt("defects"); return })
	set("periods", func() (err error) { cfg.Simulation.Periods, err = flags.GetInt("periods"); return })
	set("seed", func() (err error) { cfg.Simulation.Seed, err = flags.GetUint64("seed"); return })
	set("initial", func() (err error) { cfg.Simulation.Initial, err = flags.GetString("initial"); return })
	set("phase-rule", func() error {
		v, err := flags.GetString("phase-rule")
		cfg.Simulation.PhaseRule = constants.PhaseRule(v)
		return err
	})
	set("classes", func() (err error) { cfg.Simulation.EntanglingClasses, err = flags.GetInt("classes"); return })
	set("metrics", func() (err error) { cfg.Metrics.Enabled, err = flags.GetBool("metrics"); return })
	set("trace-dir", func() (err error) { cfg.Logging.TraceDir, err = flags.GetString("trace-dir"); return })
	set("log-level", func() (err error) { cfg.Logging.Level, err = flags.GetString("log-level"); return })

	return errors.Join(errs...)
}

// writeRendering renders result to path, or to w when path is empty.
func writeRendering(w io.Writer, path string, result *simulation.Result, format visualization.Format) error {
	if path == "" {
		return visualization.Render(w, result, format)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := visualization.Render(f, result, format); err != nil {
		f.Close()
		return fmt.Errorf("failed to render: %w", err)
	}
	return f.Close()
}

// printPeriods writes the seeded operator and every completed period.
func printPeriods(w io.Writer, result *simulation.Result) {
	rows := append([]simulation.PeriodResult{result.Initial}, result.Periods...)
	for _, pr := range rows {
		fmt.Fprintf(w, "%d  %s  %d %d %d %d\n", pr.Period, pr.Pauli,
			pr.Counts[0], pr.Counts[1], pr.Counts[2], pr.Counts[3])
	}
}
