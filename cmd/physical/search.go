package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/san-kum/physical/internal/config"
	"github.com/san-kum/physical/internal/experiment"
	"github.com/san-kum/physical/internal/optim"
	"github.com/san-kum/physical/internal/viz"
)

// parseGrid turns repeated "name=expr" flags into parameter value lists,
// keeping the order in which names first appear.
func parseGrid(specs []string) ([]string, [][]config.Expr, error) {
	var names []string
	index := make(map[string]int)
	var values [][]config.Expr
	for _, spec := range specs {
		name, src, ok := strings.Cut(spec, "=")
		if !ok || name == "" {
			return nil, nil, fmt.Errorf("--param %q: want name=expression", spec)
		}
		e, err := config.ParseExpr(src)
		if err != nil {
			return nil, nil, fmt.Errorf("--param %s: %w", name, err)
		}
		i, seen := index[name]
		if !seen {
			i = len(names)
			index[name] = i
			names = append(names, name)
			values = append(values, nil)
		}
		values[i] = append(values[i], e)
	}
	if len(names) == 0 {
		return nil, nil, fmt.Errorf("at least one --param is required")
	}
	return names, values, nil
}

func newSearchCmd() *cobra.Command {
	var (
		flags  scenarioFlags
		params []string
		metric string
	)
	cmd := &cobra.Command{
		Use:   "search [model]",
		Short: "grid search parameters for the smallest metric",
		Example: `  physical search falling --time '60*second' \
    --param terminal='40*m/s' --param terminal='60*m/s' --metric displacement`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, values, err := parseGrid(params)
			if err != nil {
				return err
			}
			cfg, err := flags.load(cmd, args[0])
			if err != nil {
				return err
			}
			g, err := optim.NewGridSearch(names, values)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, viz.Heading.Render(fmt.Sprintf("searching %d runs of %s", g.Size(), cfg.Model)))
			best, err := g.Search(cmd.Context(), cfg, experiment.NewRegistry(), metric)
			if err != nil {
				return err
			}
			for _, name := range sets.List(sets.KeySet(best.Params)) {
				fmt.Fprintln(out, "  "+viz.KeyValue(name, best.Params[name].Value))
			}
			fmt.Fprintln(out, "  "+viz.KeyValue(metric, best.Value))
			if best.Failed > 0 {
				fmt.Fprintln(out, viz.Warning.Render(fmt.Sprintf("%d of %d runs failed", best.Failed, best.Runs)))
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringArrayVar(&params, "param", nil, "parameter value as name=expression; repeat for more values")
	cmd.Flags().StringVar(&metric, "metric", "max_speed", "metric to minimize")
	return cmd
}
