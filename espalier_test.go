package espalier_test

import (
	"context"
	"testing"

	espalier "github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/catalog"
	"github.com/aretw0/espalier/pkg/config"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	eng, err := espalier.New()
	require.NoError(t, err)

	parsed, err := eng.ParseToken("Φ:U(boundary)TRUE@1")
	require.NoError(t, err)
	assert.Equal(t, "Φ:U(boundary)TRUE@1", eng.FormatToken(parsed))

	_, err = eng.Describe("Φ:U(boundary)TRUE@1")
	assert.ErrorIs(t, err, catalog.ErrNotFound, "the default catalog is empty")
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := config.Reference()
	cfg.RecursionMax = 0

	_, err := espalier.New(espalier.WithConfig(cfg))
	assert.Error(t, err)
}

func TestEngine_ValidateOperator(t *testing.T) {
	eng, err := espalier.New()
	require.NoError(t, err)

	state := domain.DefaultState()

	err = eng.ValidateOperator(domain.Application{Operator: token.OpAmplify}, nil, state)
	var lv *domain.LegalityViolation
	require.ErrorAs(t, err, &lv)
	assert.Equal(t, domain.CodeGrounding, lv.Code)

	err = eng.ValidateOperator(domain.Application{Operator: token.OpAmplify},
		domain.History{token.OpBoundary}, state)
	assert.NoError(t, err)

	// When the application breaks a structural rule and its predicted
	// post-state would also leave a field range, the structural violation
	// is the one reported.
	hot := domain.DefaultState()
	hot.Coherence = 0.95

	err = eng.ValidateOperator(domain.Application{Operator: token.OpAmplify}, nil, hot)
	require.ErrorAs(t, err, &lv)
	assert.Equal(t, domain.CodeGrounding, lv.Code)

	// With grounding satisfied, the same state surfaces the range breach.
	err = eng.ValidateOperator(domain.Application{Operator: token.OpAmplify},
		domain.History{token.OpBoundary}, hot)
	var sv *domain.ScalarBoundsViolation
	require.ErrorAs(t, err, &sv)
	assert.Equal(t, domain.FieldCoherence, sv.Field)
}

func TestEngine_SelectAndEvolve(t *testing.T) {
	eng, err := espalier.New()
	require.NoError(t, err)

	decision, err := eng.SelectNextOperator(domain.Selection{
		State: domain.DefaultState(),
		Phase: domain.PhaseP1,
		Scale: config.ScaleFine,
	})
	require.NoError(t, err)
	assert.Equal(t, token.OpBoundary, decision.Operator)

	evolved, err := eng.EvolveState(domain.DefaultState(), token.OpBoundary)
	require.NoError(t, err)
	assert.Equal(t, decision.State, evolved)
}

func TestEngine_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	eng, err := espalier.New()
	require.NoError(t, err)

	session, err := eng.StartSession(ctx, "run-1", "")
	require.NoError(t, err)
	assert.Equal(t, config.ScaleFine, session.Scale)
	assert.Equal(t, domain.PhaseP1, session.Phase)

	stepped, decision, err := eng.Step(ctx, "run-1", 0)
	require.NoError(t, err)
	assert.Equal(t, token.OpBoundary, decision.Operator)
	assert.Equal(t, domain.PhaseP2, stepped.Phase)
	assert.Equal(t, domain.History{token.OpBoundary}, stepped.History)

	// The step was persisted.
	loaded, err := eng.Session(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, stepped.History, loaded.History)

	ids, err := eng.Sessions(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, "run-1")

	require.NoError(t, eng.EndSession(ctx, "run-1"))
	_, err = eng.Session(ctx, "run-1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestEngine_StepWithInputs(t *testing.T) {
	ctx := context.Background()
	eng, err := espalier.New()
	require.NoError(t, err)

	_, err = eng.StartSession(ctx, "coarse-1", config.ScaleCoarse)
	require.NoError(t, err)

	_, decision, err := eng.Step(ctx, "coarse-1", 0)
	require.NoError(t, err)
	require.Equal(t, token.OpBoundary, decision.Operator)

	// With two inputs available, Fusion clears the plurality rule and wins
	// at P2 on the coarse scale.
	stepped, decision, err := eng.Step(ctx, "coarse-1", 2)
	require.NoError(t, err)
	assert.Equal(t, token.OpFusion, decision.Operator)
	assert.Equal(t, domain.PhaseP3, stepped.Phase)

	// Without inputs the plurality rule keeps Fusion out of every step.
	_, err = eng.StartSession(ctx, "coarse-2", config.ScaleCoarse)
	require.NoError(t, err)
	_, _, err = eng.Step(ctx, "coarse-2", 0)
	require.NoError(t, err)
	_, decision, err = eng.Step(ctx, "coarse-2", 0)
	require.NoError(t, err)
	assert.Equal(t, token.OpBoundary, decision.Operator)
}

func TestEngine_Generate(t *testing.T) {
	eng, err := espalier.New()
	require.NoError(t, err)

	run, err := eng.Generate(domain.Selection{
		State: domain.DefaultState(),
		Phase: domain.PhaseP1,
		Scale: config.ScaleFine,
	})
	require.NoError(t, err)
	require.Len(t, run.Steps, 3)
	assert.False(t, run.Exhausted)

	runs, err := eng.GenerateBranches(context.Background(), []domain.Selection{
		{State: domain.DefaultState(), Phase: domain.PhaseP1, Scale: config.ScaleFine},
		{State: domain.DefaultState(), Phase: domain.PhaseP1, Scale: config.ScaleCoarse},
	})
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, run, runs[0])
}
