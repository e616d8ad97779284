package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/physical/internal/expr"
	"github.com/san-kum/physical/internal/units"
	"github.com/san-kum/physical/internal/viz"
)

func newEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval [expression]",
		Short: "evaluate a quantity expression",
		Example: `  physical eval '3*meter + 2*meter'
  physical eval 'norm(vector(3, 4, 0)*meter)'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := expr.Eval(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), viz.Quantity(q))
			return nil
		},
	}
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "check [message] [expression]...",
		Short:   "check that expressions share units",
		Example: `  physical check 'speeds must match' '3*meter/second' '2*m/s'`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qs := make([]units.Quantity, 0, len(args)-1)
			for _, src := range args[1:] {
				q, err := expr.Eval(src)
				if err != nil {
					return fmt.Errorf("%q: %w", src, err)
				}
				qs = append(qs, q)
			}
			if err := units.CheckUnits(args[0], qs...); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), viz.Success.Render("ok"), viz.Unit.Render(units.DimensionOf(qs[0]).String()))
			return nil
		},
	}
}
