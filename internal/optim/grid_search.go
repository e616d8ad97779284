// Package optim searches scenario parameters for the run that minimizes a
// metric.
package optim

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/go-logr/logr"

	"github.com/san-kum/physical/internal/config"
	"github.com/san-kum/physical/internal/experiment"
	"github.com/san-kum/physical/internal/units"
)

var ErrNoRuns = errors.New("optim: every run failed")

// GridSearch tries every combination of parameter values. All values of
// one parameter must have the same units.
type GridSearch struct {
	paramNames []string
	values     [][]config.Expr
}

func NewGridSearch(params []string, values [][]config.Expr) (*GridSearch, error) {
	if len(params) != len(values) {
		return nil, fmt.Errorf("optim: %d parameters but %d value lists", len(params), len(values))
	}
	for i, vs := range values {
		if len(vs) == 0 {
			return nil, fmt.Errorf("optim: parameter %s has no values", params[i])
		}
		qs := make([]units.Quantity, len(vs))
		for j, v := range vs {
			qs[j] = v.Value
		}
		if err := units.CheckUnits("values of "+params[i]+" must all have same units", qs...); err != nil {
			return nil, err
		}
	}
	return &GridSearch{paramNames: params, values: values}, nil
}

// Size is the number of runs a search makes.
func (g *GridSearch) Size() int {
	n := 1
	for _, vs := range g.values {
		n *= len(vs)
	}
	return n
}

// Best is the outcome of a search.
type Best struct {
	Params map[string]config.Expr
	Value  units.Scalar
	Runs   int
	Failed int
}

// Search runs base once per combination and returns the parameters with
// the smallest value of metric. Runs that fail are logged and skipped.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, registry *experiment.Registry, metric string) (*Best, error) {
	log := logr.FromContextOrDiscard(ctx).WithName("optim")
	if !slices.Contains(registry.ListMetrics(), metric) {
		return nil, fmt.Errorf("unknown metric: %s", metric)
	}

	best := &Best{}
	var found bool
	err := g.each(0, make(map[string]config.Expr), func(params map[string]config.Expr) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		cfg := base.Clone()
		for k, v := range params {
			cfg.Params[k] = v
		}
		if len(cfg.Metrics) > 0 && !slices.Contains(cfg.Metrics, metric) {
			cfg.Metrics = append(cfg.Metrics, metric)
		}
		cfg.Trail = ""

		best.Runs++
		val, err := runOnce(ctx, cfg, registry, metric)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			best.Failed++
			log.Info("run failed", "params", fmt.Sprint(params), "err", err.Error())
			return nil
		}

		if found {
			less, err := units.Less(val, best.Value)
			if err != nil {
				return err
			}
			if !less {
				return nil
			}
		}
		found = true
		best.Value = val
		best.Params = make(map[string]config.Expr, len(params))
		for k, v := range params {
			best.Params[k] = v
		}
		log.V(1).Info("new best", metric, val.String())
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return best, ErrNoRuns
	}
	return best, nil
}

func (g *GridSearch) each(depth int, current map[string]config.Expr, fn func(map[string]config.Expr) error) error {
	if depth == len(g.paramNames) {
		return fn(current)
	}
	name := g.paramNames[depth]
	for _, v := range g.values[depth] {
		next := make(map[string]config.Expr, len(current)+1)
		for k, cv := range current {
			next[k] = cv
		}
		next[name] = v
		if err := g.each(depth+1, next, fn); err != nil {
			return err
		}
	}
	return nil
}

func runOnce(ctx context.Context, cfg *config.Config, registry *experiment.Registry, metric string) (units.Scalar, error) {
	exp := experiment.New(cfg, registry)
	if err := exp.Setup(); err != nil {
		return units.Scalar{}, err
	}
	result, err := exp.Run(ctx)
	if err != nil {
		return units.Scalar{}, err
	}
	val, ok := result.Metrics[metric]
	if !ok {
		return units.Scalar{}, fmt.Errorf("run has no metric %q", metric)
	}
	return val, nil
}
