package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/san-kum/physical/internal/analysis"
	"github.com/san-kum/physical/internal/config"
	"github.com/san-kum/physical/internal/experiment"
	"github.com/san-kum/physical/internal/sim"
	"github.com/san-kum/physical/internal/storage"
	"github.com/san-kum/physical/internal/viz"
)

// scenarioFlags are shared by every command that builds a run.
type scenarioFlags struct {
	preset     string
	configFile string
	dt         string
	duration   string
	integrator string
	seed       int64
}

func (f *scenarioFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&f.configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&f.dt, "dt", "", "time step, e.g. '0.01*second'")
	cmd.Flags().StringVar(&f.duration, "time", "", "duration, e.g. '10*second'")
	cmd.Flags().StringVar(&f.integrator, "integrator", "", "integrator")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "random seed")
}

// load builds the config for model: defaults, then the preset, then the
// config file, then flags.
func (f *scenarioFlags) load(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if f.preset != "" {
		cfg = config.GetPreset(model, f.preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", f.preset, config.ListPresets(model))
		}
	}
	if f.configFile != "" {
		var err error
		if cfg, err = config.Load(f.configFile); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if model != "" {
		cfg.Model = model
	}

	if f.dt != "" {
		e, err := config.ParseExpr(f.dt)
		if err != nil {
			return nil, fmt.Errorf("--dt: %w", err)
		}
		cfg.Dt = e
	}
	if f.duration != "" {
		e, err := config.ParseExpr(f.duration)
		if err != nil {
			return nil, fmt.Errorf("--time: %w", err)
		}
		cfg.Duration = e
	}
	if f.integrator != "" {
		cfg.Integrator = f.integrator
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = f.seed
	}
	return cfg, cfg.Validate()
}

func newRunCmd() *cobra.Command {
	var (
		flags      scenarioFlags
		saveConfig string
		noSave     bool
	)
	cmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model := ""
			if len(args) > 0 {
				model = args[0]
			}
			cfg, err := flags.load(cmd, model)
			if err != nil {
				return err
			}
			if saveConfig != "" {
				if err := config.Save(saveConfig, cfg); err != nil {
					return err
				}
			}

			exp := experiment.New(cfg, experiment.NewRegistry())
			if err := exp.Setup(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, viz.Heading.Render("running "+cfg.Model))
			start := time.Now()
			result, err := exp.Run(cmd.Context())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(out, "%s %v\n", viz.Label.Render("completed in"), elapsed.Round(time.Millisecond))
			fmt.Fprintf(out, "%s %d\n", viz.Label.Render("steps:"), result.StepsTaken)
			if result.Halted {
				fmt.Fprintln(out, viz.Warning.Render("halted early"))
			}

			if !noSave {
				st := storage.New(dataDir)
				runID, err := st.Save(exp.Info(), result)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s %s\n", viz.Label.Render("run id:"), viz.Value.Render(runID))
			}

			printMetrics(out, result)
			if tr := exp.Trail(); tr != nil {
				fmt.Fprintf(out, "%s %s, %d points\n", viz.Label.Render("trail:"), cfg.Trail, tr.Len())
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&saveConfig, "save-config", "", "write the resolved config to this file")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	return cmd
}

func printMetrics(w io.Writer, result *sim.Result) {
	if len(result.Metrics) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, viz.Heading.Render("metrics"))
	for _, name := range sets.List(sets.KeySet(result.Metrics)) {
		fmt.Fprintln(w, "  "+viz.KeyValue(name, result.Metrics[name]))
	}
}

func parseSeeds(s string) ([]int64, error) {
	var seeds []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if lo, hi, ok := strings.Cut(part, "-"); ok {
			a, err := strconv.ParseInt(lo, 10, 64)
			if err != nil {
				return nil, err
			}
			b, err := strconv.ParseInt(hi, 10, 64)
			if err != nil {
				return nil, err
			}
			for i := a; i <= b; i++ {
				seeds = append(seeds, i)
			}
			continue
		}
		v, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, v)
	}
	if len(seeds) == 0 {
		return nil, fmt.Errorf("no seeds in %q", s)
	}
	return seeds, nil
}

func newSweepCmd() *cobra.Command {
	var (
		flags    scenarioFlags
		seedList string
		parallel int
	)
	cmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "run one scenario over several seeds in parallel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seeds, err := parseSeeds(seedList)
			if err != nil {
				return err
			}
			cfg, err := flags.load(cmd, args[0])
			if err != nil {
				return err
			}
			exp := experiment.New(cfg, experiment.NewRegistry())
			if err := exp.Setup(); err != nil {
				return err
			}

			start := time.Now()
			results, err := exp.Sweep(cmd.Context(), seeds, parallel)
			if err != nil {
				return err
			}
			logr.FromContextOrDiscard(cmd.Context()).V(1).Info("sweep finished", "elapsed", time.Since(start).String())

			names := exp.Metrics()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprint(w, "SEED\tSTEPS")
			for _, n := range names {
				fmt.Fprintf(w, "\t%s", strings.ToUpper(n))
			}
			fmt.Fprintln(w)
			for i, r := range results {
				fmt.Fprintf(w, "%d\t%d", seeds[i], r.StepsTaken)
				for _, n := range names {
					fmt.Fprintf(w, "\t%s", r.Metrics[n])
				}
				fmt.Fprintln(w)
			}
			return w.Flush()
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&seedList, "seeds", "1-4", "seeds, e.g. 1,2,5-8")
	cmd.Flags().IntVar(&parallel, "parallel", 0, "maximum concurrent runs (0 = no limit)")
	return cmd
}

func newLyapunovCmd() *cobra.Command {
	var (
		flags        scenarioFlags
		perturbation string
	)
	cmd := &cobra.Command{
		Use:   "lyapunov [model]",
		Short: "estimate the largest Lyapunov exponent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd, args[0])
			if err != nil {
				return err
			}
			delta, err := config.ParseExpr(perturbation)
			if err != nil {
				return fmt.Errorf("--perturbation: %w", err)
			}
			d, err := delta.Scalar()
			if err != nil {
				return fmt.Errorf("--perturbation: %w", err)
			}

			exp := experiment.New(cfg, experiment.NewRegistry())
			if err := exp.Setup(); err != nil {
				return err
			}
			integ, err := experiment.NewRegistry().GetIntegrator(cfg.Integrator)
			if err != nil {
				return err
			}
			info := exp.Info()
			lambda, err := analysis.LyapunovExponent(cmd.Context(), exp.System(), integ, exp.Bodies(), info.Dt, info.Duration, d)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), viz.KeyValue("lyapunov exponent", lambda))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&perturbation, "perturbation", "1e-8*meter", "initial separation of the two trajectories")
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			models := config.Models()
			if len(args) > 0 {
				models = args
			}
			for _, model := range models {
				presets := config.ListPresets(model)
				if len(presets) == 0 {
					fmt.Fprintf(out, "no presets for model: %s\n", model)
					continue
				}
				fmt.Fprintf(out, "presets for %s:\n", viz.Value.Render(model))
				for _, p := range presets {
					fmt.Fprintf(out, "  %s\n", p)
				}
			}
			return nil
		},
	}
}
