package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/physical/internal/units"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model != "falling" {
		t.Errorf("expected model falling, got %s", cfg.Model)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	dt, err := cfg.Dt.Scalar()
	if err != nil {
		t.Fatal(err)
	}
	if !dt.ApproxEqual(units.Second.Scale(0.01), 1e-15) {
		t.Errorf("dt = %v", dt)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("falling", "wizard")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if len(cfg.Bodies) != 2 {
		t.Fatalf("expected 2 bodies, got %d", len(cfg.Bodies))
	}
	pos, err := cfg.Bodies[1].Pos.Vector()
	if err != nil {
		t.Fatal(err)
	}
	if pos.Z().Value() != 960 {
		t.Errorf("expected victim at 960 m, got %v", pos)
	}

	cfg.Params["terminal"] = MustExpr("1*meter/second")
	cfg.Bodies[0].Name = "changed"
	again := GetPreset("falling", "wizard")
	if again.Params["terminal"].Source == "1*meter/second" || again.Bodies[0].Name == "changed" {
		t.Error("GetPreset returned a shared config")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	cfg := GetPreset("falling", "nonexistent")
	if cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}

	cfg = GetPreset("nonexistent", "wizard")
	if cfg != nil {
		t.Error("expected nil for nonexistent model")
	}
}

func TestListPresets(t *testing.T) {
	if diff := cmp.Diff([]string{"skydiver", "toss", "wizard"}, ListPresets("falling")); diff != "" {
		t.Errorf("falling presets (-want +got):\n%s", diff)
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent model")
	}
	if diff := cmp.Diff([]string{"crystal", "falling", "gravity"}, Models()); diff != "" {
		t.Errorf("models (-want +got):\n%s", diff)
	}
}

func TestPresetsValidate(t *testing.T) {
	for model, presets := range Presets {
		for name, cfg := range presets {
			if err := cfg.Validate(); err != nil {
				t.Errorf("%s/%s: %v", model, name, err)
			}
			if cfg.Model != model {
				t.Errorf("%s/%s: model field is %q", model, name, cfg.Model)
			}
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   []string
	}{
		{"dt in meters", func(c *Config) { c.Dt = MustExpr("0.01*meter") }, []string{"dt", "time step dt must be a time"}},
		{"bare duration", func(c *Config) { c.Duration = MustExpr("10") }, []string{"duration", "duration must be a time"}},
		{"negative dt", func(c *Config) { c.Dt = MustExpr("-1*second") }, []string{"must be positive"}},
		{"vector dt", func(c *Config) { c.Dt = MustExpr("vector(1, 0, 0)*second") }, []string{"not a scalar"}},
		{"no model", func(c *Config) { c.Model = "" }, []string{"model"}},
		{"mass as length", func(c *Config) {
			c.Bodies = []BodyConfig{{Name: "a", Mass: MustExpr("3*meter"), Pos: MustExpr("0")}}
		}, []string{"bodies[0].mass", "mass must have dimensions of mass"}},
		{"scalar position", func(c *Config) {
			c.Bodies = []BodyConfig{{Name: "a", Mass: MustExpr("kg"), Pos: MustExpr("3*meter")}}
		}, []string{"bodies[0].pos", "not a vector"}},
		{"velocity in meters", func(c *Config) {
			c.Bodies = []BodyConfig{{Name: "a", Mass: MustExpr("kg"), Pos: MustExpr("0"), Vel: MustExpr("vector(1, 0, 0)*meter")}}
		}, []string{"bodies[0].vel", "velocity must have dimensions of distance/time"}},
		{"duplicate names", func(c *Config) {
			b := BodyConfig{Name: "a", Mass: MustExpr("kg"), Pos: MustExpr("0")}
			c.Bodies = []BodyConfig{b, b}
		}, []string{"bodies[1].name", "Duplicate"}},
		{"two errors", func(c *Config) {
			c.Dt = MustExpr("kg")
			c.Duration = MustExpr("meter")
		}, []string{"time step dt must be a time", "duration must be a time"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			for _, w := range tt.want {
				if !strings.Contains(err.Error(), w) {
					t.Errorf("error %q does not mention %q", err, w)
				}
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := GetPreset("falling", "wizard")
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "vector(0, 0, 960)*meter") {
		t.Errorf("saved file lost the source text:\n%s", data)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	opt := cmp.Comparer(func(a, b Expr) bool { return a.Source == b.Source })
	if diff := cmp.Diff(cfg, loaded, opt); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsBadFile(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "model: falling\ndt: 3 +* second\n", "line 2"},
		{"units", "model: falling\nintegrator: euler\ndt: 3*meter\nduration: 1*second\n", "time step dt must be a time"},
		{"mapping", "model: falling\ndt:\n  value: 1\n", "must be a string expression"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestExprShapes(t *testing.T) {
	zero := MustExpr("0")
	if v, err := zero.Vector(); err != nil || !v.IsZero() {
		t.Errorf("0 as vector = %v, %v", v, err)
	}
	if _, err := MustExpr("2").Vector(); err == nil {
		t.Error("a bare 2 is not a vector")
	}
	s, err := MustExpr("3").Scalar()
	if err != nil || s.Value() != 3 || !s.Dimension().IsZero() {
		t.Errorf("3 as scalar = %v, %v", s, err)
	}

	q := Quantity(units.Meter.Scale(2.5))
	if _, err := ParseExpr(q.Source); err != nil {
		t.Errorf("formatted quantity %q does not parse: %v", q.Source, err)
	}
}
