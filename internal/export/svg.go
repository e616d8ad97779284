// Package export writes body paths and trails as SVG images, projected
// onto the x/y plane.
package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/physical/internal/trail"
	"github.com/san-kum/physical/internal/units"
)

var ErrTooFewPoints = errors.New("export: need at least two points")

// frame maps x/y positions in meters onto a width×height canvas with 10%
// padding on each side.
type frame struct {
	minX, minY     float64
	rangeX, rangeY float64
	width, height  int
}

func newFrame(positions []units.Vector, width, height int) (*frame, error) {
	if len(positions) < 2 {
		return nil, ErrTooFewPoints
	}
	for i, p := range positions {
		if err := units.CheckUnits("position must have dimensions of distance", p, units.Meter); err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
	}

	first := positions[0].Vec3()
	minX, maxX := first[0], first[0]
	minY, maxY := first[1], first[1]
	for _, p := range positions {
		v := p.Vec3()
		minX, maxX = min(minX, v[0]), max(maxX, v[0])
		minY, maxY = min(minY, v[1]), max(maxY, v[1])
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1

	return &frame{
		minX:   minX,
		minY:   minY,
		rangeX: rangeX * 1.2,
		rangeY: rangeY * 1.2,
		width:  width,
		height: height,
	}, nil
}

func (f *frame) project(p units.Vector) (x, y float64) {
	v := p.Vec3()
	x = (v[0] - f.minX) / f.rangeX * float64(f.width)
	y = float64(f.height) - (v[1]-f.minY)/f.rangeY*float64(f.height)
	return x, y
}

func (f *frame) header(sb *strings.Builder) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, f.width, f.height, f.width, f.height)
}

// footer labels the extent of the view and closes the document.
func (f *frame) footer(sb *strings.Builder) {
	fmt.Fprintf(sb, `<text x="4" y="%d" fill="#888888" font-size="10">%s × %s</text>
</svg>`, f.height-4, units.Meter.Scale(f.rangeX), units.Meter.Scale(f.rangeY))
}

// PathToSVG draws positions as one connected line.
func PathToSVG(positions []units.Vector, width, height int, strokeColor string) (string, error) {
	f, err := newFrame(positions, width, height)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	f.header(&sb)
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor)
	for i, p := range positions {
		x, y := f.project(p)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n")
	f.footer(&sb)
	return sb.String(), nil
}

// TrailToSVG draws each dash of tr as a separate segment.
func TrailToSVG(tr *trail.Trail, width, height int, strokeColor string) (string, error) {
	dashes := tr.Dashes()
	positions := make([]units.Vector, 0, 2*len(dashes))
	for _, d := range dashes {
		positions = append(positions, d.From.Pos, d.To.Pos)
	}
	f, err := newFrame(positions, width, height)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	f.header(&sb)
	fmt.Fprintf(&sb, "<g stroke=\"%s\" stroke-width=\"2\">\n", strokeColor)
	for _, d := range dashes {
		x1, y1 := f.project(d.From.Pos)
		x2, y2 := f.project(d.To.Pos)
		fmt.Fprintf(&sb, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\"/>\n", x1, y1, x2, y2)
	}
	sb.WriteString("</g>\n")
	f.footer(&sb)
	return sb.String(), nil
}
