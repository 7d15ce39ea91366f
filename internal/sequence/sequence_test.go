package sequence_test

import (
	"context"
	"testing"

	"github.com/aretw0/espalier/internal/sequence"
	"github.com/aretw0/espalier/pkg/config"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fineSeed() sequence.Seed {
	return sequence.Seed{
		State: domain.DefaultState(),
		Phase: domain.PhaseP1,
		Scale: config.ScaleFine,
	}
}

func TestGenerate_Reference(t *testing.T) {
	res, err := sequence.Generate(fineSeed(), config.Reference())
	require.NoError(t, err)
	require.Len(t, res.Steps, 3, "generation stops at the recursion cap")
	assert.False(t, res.Exhausted)

	var ops []token.Operator
	for _, step := range res.Steps {
		ops = append(ops, step.Operator)
	}
	assert.Equal(t, []token.Operator{token.OpBoundary, token.OpAmplify, token.OpGroup}, ops)
	assert.Equal(t, domain.History(ops), res.History)
	assert.Equal(t, domain.PhaseP4, res.Phase)
	assert.Equal(t, res.Steps[2].State, res.State)
}

func TestGenerate_Exhaustion(t *testing.T) {
	cfg := config.Reference()
	cfg.Scales["disjoint"] = []token.Operator{token.OpDecohere}

	seed := fineSeed()
	seed.Scale = "disjoint"

	res, err := sequence.Generate(seed, cfg)
	require.NoError(t, err, "running out of operators ends the branch cleanly")
	assert.True(t, res.Exhausted)
	assert.Empty(t, res.Steps)
	assert.Equal(t, domain.PhaseP1, res.Phase)
}

func TestGenerate_HonorsCap(t *testing.T) {
	cfg := config.Reference()
	cfg.RecursionMax = 1

	res, err := sequence.Generate(fineSeed(), cfg)
	require.NoError(t, err)
	require.Len(t, res.Steps, 1)
	assert.Equal(t, token.OpBoundary, res.Steps[0].Operator)
}

func TestGenerate_UnknownScale(t *testing.T) {
	seed := fineSeed()
	seed.Scale = "glacial"

	_, err := sequence.Generate(seed, config.Reference())
	assert.Error(t, err)
}

func TestGenerateBranches(t *testing.T) {
	cfg := config.Reference()
	seeds := []sequence.Seed{fineSeed(), fineSeed(), fineSeed()}
	seeds[1].Scale = config.ScaleCoarse

	results, err := sequence.GenerateBranches(context.Background(), seeds, cfg)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Branches are independent: identical seeds converge, and each matches a
	// sequential run.
	solo, err := sequence.Generate(seeds[0], cfg)
	require.NoError(t, err)
	assert.Equal(t, solo, results[0])
	assert.Equal(t, results[0], results[2])

	coarse, err := sequence.Generate(seeds[1], cfg)
	require.NoError(t, err)
	assert.Equal(t, coarse, results[1])
}

func TestGenerateBranches_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sequence.GenerateBranches(ctx, []sequence.Seed{fineSeed()}, config.Reference())
	assert.ErrorIs(t, err, context.Canceled)
}
