package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/physical/internal/config"
	"github.com/san-kum/physical/internal/experiment"
	"github.com/san-kum/physical/internal/units"
)

func exprs(srcs ...string) []config.Expr {
	out := make([]config.Expr, len(srcs))
	for i, s := range srcs {
		out[i] = config.MustExpr(s)
	}
	return out
}

func baseConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Duration = config.MustExpr("5*second")
	cfg.Metrics = []string{"displacement"}
	return cfg
}

func TestGridSearchFindsSlowestFall(t *testing.T) {
	g, err := NewGridSearch([]string{"terminal"}, [][]config.Expr{
		exprs("-5*meter/second", "30*meter/second", "10*meter/second"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if g.Size() != 3 {
		t.Errorf("size = %d, want 3", g.Size())
	}

	best, err := g.Search(context.Background(), baseConfig(), experiment.NewRegistry(), "max_speed")
	if err != nil {
		t.Fatal(err)
	}
	if best.Runs != 3 || best.Failed != 1 {
		t.Errorf("runs = %d, failed = %d, want 3 and 1", best.Runs, best.Failed)
	}
	if got := best.Params["terminal"].Source; got != "10*meter/second" {
		t.Errorf("best terminal = %s, want 10*meter/second", got)
	}
	speed := units.Meter.Div(units.Second)
	if !best.Value.Dimension().Equal(speed.Dimension()) {
		t.Errorf("best value %v is not a speed", best.Value)
	}
	if best.Value.Value() > 10+1e-6 {
		t.Errorf("max speed %v exceeds the terminal speed", best.Value)
	}
}

func TestGridSearchCombinations(t *testing.T) {
	g, err := NewGridSearch([]string{"terminal", "height"}, [][]config.Expr{
		exprs("20*meter/second", "40*meter/second"),
		exprs("100*meter", "200*meter", "300*meter"),
	})
	if err != nil {
		t.Fatal(err)
	}
	cfg := baseConfig()
	cfg.Duration = config.MustExpr("0.1*second")

	best, err := g.Search(context.Background(), cfg, experiment.NewRegistry(), "kinetic_energy")
	if err != nil {
		t.Fatal(err)
	}
	if best.Runs != 6 {
		t.Errorf("runs = %d, want 6", best.Runs)
	}
	if len(best.Params) != 2 {
		t.Errorf("best params = %v", best.Params)
	}
}

func TestNewGridSearchRejectsMixedUnits(t *testing.T) {
	_, err := NewGridSearch([]string{"terminal"}, [][]config.Expr{
		exprs("10*meter/second", "10*second"),
	})
	if !errors.Is(err, units.ErrDimensionMismatch) {
		t.Errorf("err = %v, want dimension mismatch", err)
	}
	if _, err := NewGridSearch([]string{"a", "b"}, [][]config.Expr{exprs("1")}); err == nil {
		t.Error("expected error for missing value list")
	}
	if _, err := NewGridSearch([]string{"a"}, [][]config.Expr{nil}); err == nil {
		t.Error("expected error for empty value list")
	}
}

func TestGridSearchAllFail(t *testing.T) {
	g, err := NewGridSearch([]string{"terminal"}, [][]config.Expr{exprs("-1*meter/second")})
	if err != nil {
		t.Fatal(err)
	}
	_, err = g.Search(context.Background(), baseConfig(), experiment.NewRegistry(), "max_speed")
	if !errors.Is(err, ErrNoRuns) {
		t.Errorf("err = %v, want ErrNoRuns", err)
	}

	if _, err := g.Search(context.Background(), baseConfig(), experiment.NewRegistry(), "nope"); err == nil {
		t.Error("expected error for unknown metric")
	}
}

func TestGridSearchCanceled(t *testing.T) {
	g, err := NewGridSearch([]string{"terminal"}, [][]config.Expr{exprs("10*meter/second")})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.Search(ctx, baseConfig(), experiment.NewRegistry(), "max_speed"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
