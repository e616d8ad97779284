package config

import (
	"k8s.io/apimachinery/pkg/util/sets"
)

var qty = MustExpr

var Presets = map[string]map[string]*Config{
	"falling": {
		"wizard": {
			Model: "falling", Integrator: "symplectic", Dt: qty("0.01*second"), Duration: qty("10*60*second"),
			Params: map[string]Expr{
				"gravity":         qty("vector(0, 0, -9.8)*meter/second**2"),
				"terminal":        qty("120*0.44704*meter/second"),
				"terminal.wizard": qty("150*0.44704*meter/second"),
			},
			Bodies: []BodyConfig{
				{Name: "wizard", Mass: qty("80*kg"), Pos: qty("vector(0, 0, 960)*meter"), Vel: qty("vector(0, 0, 0)*meter/second")},
				{Name: "victim", Mass: qty("70*kg"), Pos: qty("vector(3, 0, 960)*meter"), Vel: qty("vector(0, 0, 0)*meter/second")},
			},
			Metrics: []string{"max_speed", "displacement"},
			Trail:   "victim",
		},
		"skydiver": {
			Model: "falling", Integrator: "symplectic", Dt: qty("0.01*second"), Duration: qty("5*60*second"),
			Params: map[string]Expr{
				"terminal": qty("55*meter/second"),
				"height":   qty("4000*meter"),
			},
			Metrics: []string{"max_speed", "energy_drift"},
		},
		"toss": {
			Model: "falling", Integrator: "verlet", Dt: qty("0.001*second"), Duration: qty("10*second"),
			Params: map[string]Expr{
				"terminal": qty("30*meter/second"),
			},
			Bodies: []BodyConfig{
				{Name: "ball", Mass: qty("0.145*kg"), Pos: qty("vector(0, 0, 2)*meter"), Vel: qty("vector(20, 0, 20)*meter/second")},
			},
			Metrics: []string{"max_speed", "displacement"},
			Trail:   "ball",
		},
	},
	"crystal": {
		"cube": {
			Model: "crystal", Integrator: "euler", Dt: qty("0.001*second"), Duration: qty("10*second"),
			Params: map[string]Expr{
				"n":    qty("2"),
				"k":    qty("10*Newton/meter"),
				"rest": qty("1*meter"),
				"mass": qty("0.1*kg"),
			},
			Metrics: []string{"kinetic_energy", "displacement"},
			Trail:   "ball-0-0-0",
		},
		"large": {
			Model: "crystal", Integrator: "verlet", Dt: qty("0.001*second"), Duration: qty("5*second"),
			Seed: 1,
			Params: map[string]Expr{
				"n":      qty("3"),
				"k":      qty("10*Newton/meter"),
				"rest":   qty("1*meter"),
				"mass":   qty("0.1*kg"),
				"jitter": qty("0.01*meter"),
			},
			Metrics: []string{"kinetic_energy", "energy_drift"},
		},
	},
	"gravity": {
		"binary": {
			Model: "gravity", Integrator: "verlet", Dt: qty("3600*second"), Duration: qty("365.25*24*3600*second"),
			Params: map[string]Expr{
				"m1":         qty("1.989e30*kg"),
				"m2":         qty("5.972e24*kg"),
				"separation": qty("1.496e11*meter"),
				"softening":  qty("0*meter"),
			},
			Metrics: []string{"energy_drift", "max_speed"},
			Trail:   "secondary",
		},
		"equal": {
			Model: "gravity", Integrator: "leapfrog", Dt: qty("60*second"), Duration: qty("30*24*3600*second"),
			Params: map[string]Expr{
				"m1":         qty("1e24*kg"),
				"m2":         qty("1e24*kg"),
				"separation": qty("4e8*meter"),
				"softening":  qty("1e3*meter"),
			},
			Metrics: []string{"energy_drift"},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// ListPresets returns the preset names of a model in sorted order.
func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	return sets.List(sets.KeySet(modelPresets))
}

// Models returns every model that has presets, sorted.
func Models() []string {
	return sets.List(sets.KeySet(Presets))
}
