package plot

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/physical/internal/units"
)

var ErrEmpty = errors.New("plot: no data")

// Render draws every series and horizontal line of the figure on shared
// axes. Series are resampled onto width columns spanning the x range.
func (f *Figure) Render(width, height int) (string, error) {
	xmin, xmax, _, _, err := f.Bounds()
	if err != nil {
		return "", err
	}
	if xmin == nil {
		return "", ErrEmpty
	}
	if width < 2 {
		width = 2
	}

	lo, hi := magnitude(xmin), magnitude(xmax)
	grid := make([]float64, width)
	for k := range grid {
		grid[k] = lo + (hi-lo)*float64(k)/float64(width-1)
	}

	data := make([][]float64, 0, len(f.series)+len(f.hlines))
	for _, s := range f.series {
		if s.Len() == 0 {
			continue
		}
		xs, ys := s.Points()
		data = append(data, resample(xs, ys, grid))
	}
	for _, h := range f.hlines {
		line := make([]float64, width)
		for k := range line {
			line[k] = magnitude(h.Y)
		}
		data = append(data, line)
	}

	graph := asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(f.caption(xmin, xmax)),
	)
	return graph, nil
}

func (f *Figure) caption(xmin, xmax units.Quantity) string {
	var b strings.Builder
	if f.Title != "" {
		b.WriteString(f.Title)
		b.WriteString("  ")
	}
	fmt.Fprintf(&b, "x: %s to %s", xmin, xmax)
	if yu, ok := f.YUnits(); ok {
		if u := units.DimensionOf(yu).String(); u != "" {
			fmt.Fprintf(&b, "  y: [%s]", u)
		}
	}
	return b.String()
}

// resample linearly interpolates (xs, ys) at each grid point, holding the
// end values outside the data.
func resample(xs, ys, grid []float64) []float64 {
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })

	out := make([]float64, len(grid))
	j := 0
	for k, g := range grid {
		for j < len(idx)-1 && xs[idx[j+1]] < g {
			j++
		}
		a := idx[j]
		switch {
		case g <= xs[a] || j == len(idx)-1:
			out[k] = ys[a]
		default:
			b := idx[j+1]
			span := xs[b] - xs[a]
			if span == 0 {
				out[k] = ys[b]
				continue
			}
			w := (g - xs[a]) / span
			out[k] = ys[a] + w*(ys[b]-ys[a])
		}
	}
	return out
}

// Scatter draws the series as points on a width×height character grid.
// Early points are drawn '.', middle ones 'o' and late ones '●'.
func (s *Series) Scatter(width, height int) (string, error) {
	if s.Len() == 0 {
		return "", ErrEmpty
	}
	xs, ys := s.Points()

	xMin, xMax := magnitude(s.xmin), magnitude(s.xmax)
	yMin, yMax := magnitude(s.ymin), magnitude(s.ymax)
	xRange := xMax - xMin
	yRange := yMax - yMin
	if xRange == 0 {
		xRange = 1
	}
	if yRange == 0 {
		yRange = 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for i := range xs {
		px := int(float64(width-1) * (xs[i] - xMin) / xRange)
		py := height - 1 - int(float64(height-1)*(ys[i]-yMin)/yRange)
		if px < 0 || px >= width || py < 0 || py >= height || math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		switch {
		case i < len(xs)/3:
			canvas[py][px] = '.'
		case i < 2*len(xs)/3:
			canvas[py][px] = 'o'
		default:
			canvas[py][px] = '●'
		}
	}

	var b strings.Builder
	label := func(v float64) string { return fmt.Sprintf("%10.3g ", v) }
	blank := strings.Repeat(" ", 11)
	fmt.Fprintf(&b, "%s┌%s┐\n", label(yMax), strings.Repeat("─", width))
	for i := range canvas {
		prefix := blank
		if i == height/2 {
			prefix = label((yMax + yMin) / 2)
		}
		fmt.Fprintf(&b, "%s│%s│\n", prefix, string(canvas[i]))
	}
	fmt.Fprintf(&b, "%s└%s┘\n", label(yMin), strings.Repeat("─", width))

	left := fmt.Sprintf("%.3g", xMin)
	right := fmt.Sprintf("%.3g", xMax)
	gap := width - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	fmt.Fprintf(&b, "%s %s%s%s\n", blank, left, strings.Repeat(" ", gap), right)
	fmt.Fprintf(&b, "%s x: [%s]  y: [%s]\n", blank, units.DimensionOf(s.xmin), units.DimensionOf(s.ymin))
	return b.String(), nil
}
