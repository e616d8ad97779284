package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/physical/internal/units"
)

var (
	Heading lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Unit    lipgloss.Style
	Subtle  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Panel   lipgloss.Style

	sparkHigh lipgloss.Style
	sparkMid  lipgloss.Style
	sparkLow  lipgloss.Style
)

func init() { applyTheme(CurrentTheme) }

func applyTheme(t Theme) {
	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(t.Muted)
	Label = lipgloss.NewStyle().Foreground(t.Muted)
	Value = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	Unit = lipgloss.NewStyle().Italic(true).Foreground(t.Primary)
	Subtle = lipgloss.NewStyle().Foreground(t.Muted)
	Success = lipgloss.NewStyle().Bold(true).Foreground(t.Success)
	Warning = lipgloss.NewStyle().Bold(true).Foreground(t.Warning)
	Error = lipgloss.NewStyle().Bold(true).Foreground(t.Error)
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Muted).
		Padding(0, 1)

	sparkHigh = lipgloss.NewStyle().Foreground(t.Success)
	sparkMid = lipgloss.NewStyle().Foreground(t.Warning)
	sparkLow = lipgloss.NewStyle().Foreground(t.Error)
}

// Quantity renders q with its number and unit styled apart.
func Quantity(q units.Quantity) string {
	if q == nil {
		return Value.Render("0")
	}
	u := q.Dimension().String()
	var num string
	switch q := q.(type) {
	case units.Vector:
		v := q.Vec3()
		num = fmt.Sprintf("(%.6g, %.6g, %.6g)", v[0], v[1], v[2])
	case units.Scalar:
		num = fmt.Sprintf("%.6g", q.Value())
	default:
		num = q.String()
	}
	if u == "" {
		return Value.Render(num)
	}
	return Value.Render(num) + " " + Unit.Render(u)
}

// KeyValue renders one "label: quantity" line.
func KeyValue(label string, q units.Quantity) string {
	return Label.Render(label+":") + " " + Quantity(q)
}

// Errorf renders an error message for the terminal.
func Errorf(format string, args ...any) string {
	return Error.Render("error:") + " " + fmt.Sprintf(format, args...)
}

// Sparkline renders values as a one-line bar chart followed by their
// unit. All values must have the same units.
func Sparkline(values []units.Scalar, width int) (string, error) {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0)), nil
	}
	qs := make([]units.Quantity, len(values))
	for i, v := range values {
		qs[i] = v
	}
	if err := units.CheckUnits("sparkline values must all have same units", qs...); err != nil {
		return "", err
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v.Value())
		hi = math.Max(hi, v.Value())
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step].Value() - lo) / span
		idx := int(norm * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))

		c := string(chars[idx])
		switch {
		case norm > 0.7:
			b.WriteString(sparkHigh.Render(c))
		case norm > 0.3:
			b.WriteString(sparkMid.Render(c))
		default:
			b.WriteString(sparkLow.Render(c))
		}
	}
	if u := values[0].Dimension().String(); u != "" {
		b.WriteString(" " + Unit.Render(u))
	}
	return b.String(), nil
}

func Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", max(mid-3, 0))
	right := strings.Repeat("─", max(width-mid-3, 0))
	return Subtle.Render(left + " ◆ " + right)
}
