package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/san-kum/physical/internal/logging"
	"github.com/san-kum/physical/internal/viz"
)

var (
	dataDir   string
	verbosity int
	theme     string
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, viz.Errorf("%v", err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "physical",
		Short:         "physics simulations with dimension-checked quantities",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !viz.SetTheme(theme) {
				return fmt.Errorf("unknown theme %q (available: %v)", theme, viz.ThemeNames())
			}
			log := logging.New(cmd.ErrOrStderr(), verbosity)
			cmd.SetContext(logr.NewContext(cmd.Context(), log))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".physical", "data directory")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "log verbosity (repeat for more)")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", viz.ThemeCyberpunk.Name, "color theme")

	rootCmd.AddCommand(
		newEvalCmd(),
		newCheckCmd(),
		newRunCmd(),
		newSweepCmd(),
		newLyapunovCmd(),
		newSearchCmd(),
		newListCmd(),
		newPlotCmd(),
		newPhaseCmd(),
		newAnalyzeCmd(),
		newTrailCmd(),
		newExportCSVCmd(),
		newExportJSONCmd(),
		newExportSVGCmd(),
		newPresetsCmd(),
	)
	return rootCmd
}
