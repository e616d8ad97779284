package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/physical/internal/analysis"
	"github.com/san-kum/physical/internal/export"
	"github.com/san-kum/physical/internal/expr"
	"github.com/san-kum/physical/internal/plot"
	"github.com/san-kum/physical/internal/storage"
	"github.com/san-kum/physical/internal/trail"
	"github.com/san-kum/physical/internal/viz"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := storage.New(dataDir).List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no runs found")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tMODEL\tTIME\tDURATION\tDT\tINTEG\tSTEPS")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
					run.ID,
					run.Model,
					run.Timestamp.Format("2006-01-02 15:04:05"),
					run.Duration,
					run.Dt,
					run.Integrator,
					run.Steps,
				)
			}
			return w.Flush()
		},
	}
}

// loadRun reads the metadata and states of a stored run.
func loadRun(runID string) (*storage.RunMetadata, *storage.Table, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	table, err := st.LoadStates(runID)
	if err != nil {
		return nil, nil, err
	}
	if table.Len() == 0 {
		return nil, nil, fmt.Errorf("no data to plot")
	}
	return meta, table, nil
}

func newPlotCmd() *cobra.Command {
	var (
		bodies []string
		axis   string
		hlines []string
		width  int
		height int
	)
	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot one coordinate of each body against time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, table, err := loadRun(args[0])
			if err != nil {
				return err
			}
			if len(bodies) == 0 {
				bodies = meta.Bodies
			}
			times, err := table.Times()
			if err != nil {
				return err
			}

			fig := plot.NewFigure(fmt.Sprintf("%s %s", meta.ID, axis))
			for _, body := range bodies {
				ys, err := table.Series(body + "." + axis)
				if err != nil {
					return err
				}
				s := fig.NewSeries(body)
				for i := range ys {
					if err := s.Plot(times[i], ys[i]); err != nil {
						return fmt.Errorf("body %s: %w", body, err)
					}
				}
			}
			for i, src := range hlines {
				q, err := expr.Eval(src)
				if err != nil {
					return fmt.Errorf("--hline %q: %w", src, err)
				}
				if _, err := fig.HLine(strconv.Itoa(i), q); err != nil {
					return err
				}
			}

			graph, err := fig.Render(width, height)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, viz.Heading.Render("run "+meta.ID))
			fmt.Fprintln(out, graph)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&bodies, "body", nil, "bodies to plot (default all)")
	cmd.Flags().StringVar(&axis, "axis", "z", "coordinate to plot: x, y, z, vx, vy or vz")
	cmd.Flags().StringArrayVar(&hlines, "hline", nil, "draw a horizontal line at this quantity")
	cmd.Flags().IntVar(&width, "width", 80, "plot width")
	cmd.Flags().IntVar(&height, "height", 12, "plot height")
	return cmd
}

func newPhaseCmd() *cobra.Command {
	var xCol, yCol string
	cmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "scatter one column against another",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, table, err := loadRun(args[0])
			if err != nil {
				return err
			}
			if xCol == "" {
				xCol = meta.Bodies[0] + ".z"
			}
			if yCol == "" {
				yCol = meta.Bodies[0] + ".vz"
			}
			xs, err := table.Series(xCol)
			if err != nil {
				return err
			}
			ys, err := table.Series(yCol)
			if err != nil {
				return err
			}

			s := plot.NewFigure(meta.ID).NewSeries(xCol + " vs " + yCol)
			for i := range xs {
				if err := s.Plot(xs[i], ys[i]); err != nil {
					return err
				}
			}
			graph, err := s.Scatter(60, 20)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, viz.Heading.Render("phase space: "+meta.ID))
			fmt.Fprintf(out, "x-axis: %s, y-axis: %s\n\n", xCol, yCol)
			fmt.Fprintln(out, graph)
			return nil
		},
	}
	cmd.Flags().StringVar(&xCol, "x", "", "column for the x-axis (default first body z)")
	cmd.Flags().StringVar(&yCol, "y", "", "column for the y-axis (default first body vz)")
	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	var column string
	cmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, table, err := loadRun(args[0])
			if err != nil {
				return err
			}
			if column == "" {
				column = meta.Bodies[0] + ".z"
			}
			samples, err := table.Series(column)
			if err != nil {
				return err
			}
			dt, err := meta.Quantity(meta.Dt)
			if err != nil {
				return err
			}

			data := make([]float64, len(samples))
			for i, s := range samples {
				data[i] = s.Value()
			}
			ps := analysis.PowerSpectrum(data)
			if n := len(ps) / 4; n > 1 {
				ps = ps[:n]
			}

			out := cmd.OutOrStdout()
			if len(ps) > 1 {
				fmt.Fprintln(out, asciigraph.Plot(ps,
					asciigraph.Height(15),
					asciigraph.Width(80),
					asciigraph.Caption("power spectrum ("+column+")"),
				))
				fmt.Fprintln(out)
			}

			freq, err := analysis.DominantFrequency(samples, dt)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, viz.KeyValue("dominant frequency", freq))
			if freq.Value() > 0 {
				fmt.Fprintln(out, viz.KeyValue("period", freq.Inverse()))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&column, "column", "", "column to analyze (default first body z)")
	return cmd
}

func newTrailCmd() *cobra.Command {
	var width, height int
	cmd := &cobra.Command{
		Use:   "trail [run_id] [body]",
		Short: "draw the path of a body seen from above",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, table, err := loadRun(args[0])
			if err != nil {
				return err
			}
			path, err := table.Positions(args[1])
			if err != nil {
				return err
			}
			c := viz.NewCanvas(width, height)
			extent, err := c.DrawPath(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, viz.Panel.Render(c.String()))
			fmt.Fprintln(out)
			fmt.Fprintln(out, viz.KeyValue("extent", extent))
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 40, "canvas width in cells")
	cmd.Flags().IntVar(&height, "height", 20, "canvas height in cells")
	return cmd
}

func newExportCSVCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := storage.New(dataDir).LoadStates(args[0])
			if err != nil {
				return err
			}
			w := csv.NewWriter(cmd.OutOrStdout())
			header := make([]string, len(table.Columns))
			for i, c := range table.Columns {
				header[i] = c.Name
				if c.Unit != "" {
					header[i] += " [" + c.Unit + "]"
				}
			}
			if err := w.Write(header); err != nil {
				return err
			}
			for _, row := range table.Rows {
				rec := make([]string, len(row))
				for i, v := range row {
					rec[i] = strconv.FormatFloat(v, 'g', -1, 64)
				}
				if err := w.Write(rec); err != nil {
					return err
				}
			}
			w.Flush()
			return w.Error()
		},
	}
}

func newExportJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportRun(cmd.OutOrStdout(), args[0])
		},
	}
}

func newExportSVGCmd() *cobra.Command {
	var (
		output string
		dashed bool
		color  string
	)
	cmd := &cobra.Command{
		Use:   "export-svg [run_id] [body]",
		Short: "export the x/y path of a body as SVG",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, table, err := loadRun(args[0])
			if err != nil {
				return err
			}
			path, err := table.Positions(args[1])
			if err != nil {
				return err
			}

			var svg string
			if dashed {
				times, err := table.Times()
				if err != nil {
					return err
				}
				tr, err := trail.New(trail.DefaultDashTime)
				if err != nil {
					return err
				}
				for i := range path {
					if err := tr.Record(times[i], path[i]); err != nil {
						return err
					}
				}
				svg, err = export.TrailToSVG(tr, 800, 600, color)
				if err != nil {
					return err
				}
			} else {
				if svg, err = export.PathToSVG(path, 800, 600, color); err != nil {
					return err
				}
			}

			if output == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), svg)
				return err
			}
			return os.WriteFile(output, []byte(svg), 0644)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&dashed, "dashed", false, "draw the path as trail dashes")
	cmd.Flags().StringVar(&color, "color", "#00ccff", "stroke color")
	return cmd
}
