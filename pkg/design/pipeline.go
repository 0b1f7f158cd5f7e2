package design

import (
	"context"
	"runtime"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Pipeline runs the full search: generate candidates, evaluate each across
// the ensemble, rank, and keep the top N.
type Pipeline struct {
	Generator *Generator
	Evaluator *Evaluator

	// Workers caps concurrent evaluations; 0 means GOMAXPROCS.
	Workers int
}

// Run executes the search for n candidates under the given seed and returns
// the top best-ranked ones. Evaluations run in parallel; each result lands
// in its candidate's slot, so parallelism never affects output order or
// content.
func (p *Pipeline) Run(ctx context.Context, n, top int, seed int64) ([]RankedCandidate, error) {
	candidates := p.Generator.Generate(n, seed)
	log.Debugf("generated %d candidates", len(candidates))

	scored := make([]RankedCandidate, len(candidates))

	workers := p.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range candidates {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			scored[i] = RankedCandidate{
				Candidate: candidates[i],
				Result:    p.Evaluator.Evaluate(candidates[i]),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	ranked := Rank(scored, top)
	log.Debugf("ranked %d candidates, kept %d", len(scored), len(ranked))
	return ranked, nil
}
