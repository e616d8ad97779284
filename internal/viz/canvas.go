package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/physical/internal/units"
)

const brailleBlank = 0x2800

// dotBits maps a sub-cell position to its braille dot:
//
//	1 4
//	2 5
//	3 6
//	7 8
var dotBits = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells, each holding 2x4 dots.
type Canvas struct {
	Width, Height int
	grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, grid: make([][]rune, h)}
	for i := range c.grid {
		c.grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

// Set lights the dot at (x, y); dots outside the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.grid[row][col] |= dotBits[y%4][x%2]
}

func (c *Canvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = brailleBlank
		}
	}
}

// DrawLine joins two dots with Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	e := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 > -dy {
			e -= dy
			x0 += sx
		}
		if e2 < dx {
			e += dx
			y0 += sy
		}
	}
}

// DrawPath draws positions projected onto the x/y plane, scaled to fill
// the canvas with the same scale on both axes. It returns the extent of
// the drawing.
func (c *Canvas) DrawPath(path []units.Vector) (units.Scalar, error) {
	if len(path) == 0 {
		return units.Scalar{}, fmt.Errorf("empty path")
	}
	qs := make([]units.Quantity, 0, len(path)+1)
	qs = append(qs, units.Meter)
	for _, p := range path {
		qs = append(qs, p)
	}
	if err := units.CheckUnits("position must have dimensions of distance", qs...); err != nil {
		return units.Scalar{}, err
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range path {
		v := p.Vec3()
		minX, maxX = math.Min(minX, v[0]), math.Max(maxX, v[0])
		minY, maxY = math.Min(minY, v[1]), math.Max(maxY, v[1])
	}
	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 {
		span = 1
	}

	w, h := c.Dots()
	scale := float64(min(w, h)-1) / span
	project := func(p units.Vector) (int, int) {
		v := p.Vec3()
		x := int(math.Round((v[0] - minX) * scale))
		// screen y grows downward
		y := h - 1 - int(math.Round((v[1]-minY)*scale))
		return x, y
	}

	x0, y0 := project(path[0])
	c.Set(x0, y0)
	for _, p := range path[1:] {
		x1, y1 := project(p)
		c.DrawLine(x0, y0, x1, y1)
		x0, y0 = x1, y1
	}
	return units.Meter.Scale(span), nil
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
