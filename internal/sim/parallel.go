package sim

import (
	"context"
	"sync"

	"github.com/san-kum/quantsim/internal/quantity"
)

// RunAll runs every runner concurrently, one goroutine each, and
// returns the results in input order. The first error wins and the
// partial results are discarded. Each runner owns its own system, so
// the goroutines never share mutable state.
func RunAll(ctx context.Context, runners []Runner) ([]quantity.Frame, error) {
	results := make([]quantity.Frame, len(runners))
	errs := make([]error, len(runners))

	var wg sync.WaitGroup
	for i := range runners {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = runners[idx].Run()
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
