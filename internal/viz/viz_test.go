package viz

import (
	"errors"
	"strings"
	"testing"

	"github.com/san-kum/physical/internal/units"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(10, 10)

	got := []rune(strings.TrimSuffix(c.String(), "\n"))
	if got[0] != brailleBlank+0x1 {
		t.Errorf("cell 0 = %U", got[0])
	}
	if got[1] != brailleBlank+0x80 {
		t.Errorf("cell 1 = %U", got[1])
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0)
	for i, r := range []rune(strings.TrimSuffix(c.String(), "\n")) {
		if r != brailleBlank+0x1+0x8 {
			t.Errorf("cell %d = %U, want both top dots", i, r)
		}
	}
}

func TestDrawPath(t *testing.T) {
	c := NewCanvas(10, 5)
	path := []units.Vector{
		units.Vec(0, 0, 0).Mul(units.Meter),
		units.Vec(4, 0, 0).Mul(units.Meter),
		units.Vec(4, 2, 7).Mul(units.Meter),
	}
	extent, err := c.DrawPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if !extent.ApproxEqual(units.Meter.Scale(4), 1e-12) {
		t.Errorf("extent = %v, want 4 m", extent)
	}
	if !strings.ContainsFunc(c.String(), func(r rune) bool { return r > brailleBlank && r < brailleBlank+0x100 }) {
		t.Error("nothing drawn")
	}

	_, err = NewCanvas(10, 5).DrawPath([]units.Vector{units.Vec(1, 0, 0).Mul(units.Second)})
	if !errors.Is(err, units.ErrDimensionMismatch) {
		t.Errorf("err = %v, want dimension mismatch", err)
	}
	if _, err := c.DrawPath(nil); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestSparkline(t *testing.T) {
	vals := []units.Scalar{units.Meter.Scale(1), units.Meter.Scale(2), units.Meter.Scale(3)}
	got, err := Sparkline(vals, 3)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range []string{"▁", "█", "meter"} {
		if !strings.Contains(got, r) {
			t.Errorf("sparkline %q is missing %q", got, r)
		}
	}

	vals = append(vals, units.Second)
	if _, err := Sparkline(vals, 4); !errors.Is(err, units.ErrDimensionMismatch) {
		t.Errorf("err = %v, want dimension mismatch", err)
	}
}

func TestQuantity(t *testing.T) {
	tests := []struct {
		q    units.Quantity
		want []string
	}{
		{units.Raw(2), []string{"2"}},
		{units.Meter.Scale(1.5), []string{"1.5", "meter"}},
		{units.Vec(1, 2, 3).Mul(units.Second), []string{"(1, 2, 3)", "second"}},
	}
	for _, tt := range tests {
		got := Quantity(tt.q)
		for _, w := range tt.want {
			if !strings.Contains(got, w) {
				t.Errorf("Quantity(%v) = %q, missing %q", tt.q, got, w)
			}
		}
	}
}

func TestSetTheme(t *testing.T) {
	defer SetTheme(ThemeCyberpunk.Name)

	if !SetTheme("retro") {
		t.Error("retro should be a known theme")
	}
	if CurrentTheme.Name != "retro" {
		t.Errorf("current theme = %s", CurrentTheme.Name)
	}
	if SetTheme("nope") {
		t.Error("unknown theme reported as found")
	}
	if CurrentTheme.Name != ThemeCyberpunk.Name {
		t.Errorf("unknown theme should fall back to %s", ThemeCyberpunk.Name)
	}
}
