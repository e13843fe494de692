package equity

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type Request struct {
	Players    []PlayerInput `json:"players"`
	Board      []string      `json:"board"`
	Iterations int           `json:"iterations"`
	Seed       int64         `json:"seed"`
}

// CalculateBatch runs independent requests in parallel, each on its own
// calculator. A request with a zero seed gets one derived from baseSeed.
func CalculateBatch(ctx context.Context, reqs []Request, workers int, baseSeed int64, opts ...Option) ([]Result, error) {
	if workers <= 0 {
		workers = 1
	}

	results := make([]Result, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			seed := req.Seed
			if seed == 0 {
				seed = baseSeed + int64(i) + 1
			}

			calc := NewCalculator(append(append([]Option{}, opts...), WithSeed(seed))...)
			results[i] = calc.Calculate(req.Players, req.Board, req.Iterations)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
