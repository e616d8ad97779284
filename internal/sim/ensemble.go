package sim

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Ensemble runs one configuration from several starting states in
// parallel. Metrics carry per-run state, so every run gets a fresh
// Simulator from build.
type Ensemble struct {
	build func() *Simulator
	limit int
}

// NewEnsemble returns an ensemble running at most limit simulations at
// once; limit <= 0 means no limit.
func NewEnsemble(build func() *Simulator, limit int) *Ensemble {
	return &Ensemble{build: build, limit: limit}
}

// Run returns one result per starting state, in order. The first failing
// run cancels the others.
func (e *Ensemble) Run(ctx context.Context, starts []State, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(starts))

	g, ctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}
	for i, start := range starts {
		g.Go(func() error {
			r, err := e.build().Run(ctx, start, cfg)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
