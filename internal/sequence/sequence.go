// Package sequence drives repeated pipeline selections to grow operator
// sequences. Each branch owns its state, phase and history, so independent
// branches run concurrently without synchronization.
package sequence

import (
	"context"
	"errors"
	"sync"

	"github.com/aretw0/espalier/internal/pipeline"
	"github.com/aretw0/espalier/pkg/config"
	"github.com/aretw0/espalier/pkg/domain"
)

// Seed is the starting point of one generated branch.
type Seed struct {
	State      domain.ScalarStateVector
	Phase      domain.Phase
	History    domain.History
	Scale      string
	InputCount int
}

// Result is one finished branch. Steps holds every accepted decision in
// order; State, Phase and History are the branch's final position.
// Exhausted is set when generation stopped because no legal operator
// remained, rather than by reaching the configured cap.
type Result struct {
	Steps     []domain.Decision
	State     domain.ScalarStateVector
	Phase     domain.Phase
	History   domain.History
	Exhausted bool
}

// Generate grows one branch until the configured recursion cap is reached or
// the candidate set empties. Running out of legal operators ends the branch
// cleanly; any other selection failure is returned as an error.
func Generate(seed Seed, cfg config.Config) (Result, error) {
	res := Result{
		State:   seed.State,
		Phase:   seed.Phase,
		History: seed.History,
	}

	for len(res.Steps) < cfg.RecursionMax {
		decision, err := pipeline.Select(pipeline.Request{
			State:      res.State,
			Phase:      res.Phase,
			History:    res.History,
			Scale:      seed.Scale,
			InputCount: seed.InputCount,
		}, cfg)
		if errors.Is(err, domain.ErrNoLegalOperator) {
			res.Exhausted = true
			return res, nil
		}
		if err != nil {
			return Result{}, err
		}

		res.Steps = append(res.Steps, decision)
		res.State = decision.State
		res.Phase = decision.Phase
		res.History = res.History.Push(decision.Operator)
	}
	return res, nil
}

// GenerateBranches evaluates independent seeds in parallel, one goroutine per
// branch. Results are returned in seed order. The context is checked before
// each branch starts; cancellation abandons not-yet-started branches.
func GenerateBranches(ctx context.Context, seeds []Seed, cfg config.Config) ([]Result, error) {
	results := make([]Result, len(seeds))
	errs := make([]error, len(seeds))

	var wg sync.WaitGroup
	for i, seed := range seeds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		wg.Add(1)
		go func(i int, seed Seed) {
			defer wg.Done()
			results[i], errs[i] = Generate(seed, cfg)
		}(i, seed)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
