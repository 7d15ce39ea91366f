package pipeline_test

import (
	"testing"

	"github.com/aretw0/espalier/internal/pipeline"
	"github.com/aretw0/espalier/pkg/config"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_Reference(t *testing.T) {
	decision, err := pipeline.Select(pipeline.Request{
		State: domain.DefaultState(),
		Phase: domain.PhaseP1,
		Scale: config.ScaleFine,
	}, config.Reference())
	require.NoError(t, err)

	// From P1 at the fine scale only Boundary and Group survive the filters;
	// Boundary advances the phase and closes more of the coherence gap.
	assert.Equal(t, token.OpBoundary, decision.Operator)
	assert.Equal(t, domain.PhaseP2, decision.Phase)
	assert.InDelta(t, 0.600, decision.State.Grounding, 1e-9)
	assert.InDelta(t, 0.850, decision.State.Coherence, 1e-9)

	// The candidate table covers all six operators with rejection reasons.
	require.Len(t, decision.Candidates, 6)
	byOp := map[token.Operator]domain.Candidate{}
	for _, c := range decision.Candidates {
		byOp[c.Operator] = c
	}
	assert.Contains(t, byOp[token.OpFusion].Rejected, "scale")
	assert.Contains(t, byOp[token.OpAmplify].Rejected, "phase")
	assert.Empty(t, byOp[token.OpGroup].Rejected)
}

func TestSelect_StructuralFilter(t *testing.T) {
	cfg := config.Reference()
	req := pipeline.Request{
		State: domain.DefaultState(),
		Phase: domain.PhaseP2,
		Scale: config.ScaleFine,
	}

	// With an empty history Amplify is ungrounded and Boundary wins by default.
	decision, err := pipeline.Select(req, cfg)
	require.NoError(t, err)
	assert.Equal(t, token.OpBoundary, decision.Operator)
	for _, c := range decision.Candidates {
		if c.Operator == token.OpAmplify {
			assert.Contains(t, c.Rejected, domain.CodeGrounding)
		}
	}

	// Once history carries a Boundary, Amplify is legal, advances to P3 and
	// prices cheaper than a phase-holding Boundary.
	req.History = domain.History{token.OpBoundary}
	decision, err = pipeline.Select(req, cfg)
	require.NoError(t, err)
	assert.Equal(t, token.OpAmplify, decision.Operator)
	assert.Equal(t, domain.PhaseP3, decision.Phase)
	assert.InDelta(t, 0.360, decision.State.Curvature, 1e-9)
}

func TestSelect_MinimumCostWins(t *testing.T) {
	cfg := config.Reference()
	cfg.Scales["both"] = []token.Operator{token.OpBoundary, token.OpGroup}
	cfg.Deltas[token.OpBoundary] = nil
	cfg.Deltas[token.OpGroup] = []config.Delta{
		{Field: domain.FieldCoherence, Op: config.OpAdd, Value: 0.100},
	}
	cfg.Cost.PhaseWeight = 0

	decision, err := pipeline.Select(pipeline.Request{
		State: domain.DefaultState(),
		Phase: domain.PhaseP1,
		Scale: "both",
	}, cfg)
	require.NoError(t, err)

	// Group closes more of the coherence gap, so it beats the
	// earlier-enumerated Boundary on cost alone.
	assert.Equal(t, token.OpGroup, decision.Operator)
	byOp := map[token.Operator]domain.Candidate{}
	for _, c := range decision.Candidates {
		byOp[c.Operator] = c
	}
	assert.Less(t, byOp[token.OpGroup].Cost, byOp[token.OpBoundary].Cost)
}

func TestSelect_TieBreakIsCanonicalOrder(t *testing.T) {
	cfg := config.Reference()
	cfg.Scales["both"] = []token.Operator{token.OpBoundary, token.OpGroup}
	cfg.Deltas[token.OpBoundary] = nil
	cfg.Deltas[token.OpGroup] = nil
	cfg.Cost.PhaseWeight = 0

	decision, err := pipeline.Select(pipeline.Request{
		State: domain.DefaultState(),
		Phase: domain.PhaseP1,
		Scale: "both",
	}, cfg)
	require.NoError(t, err)
	assert.Equal(t, token.OpBoundary, decision.Operator)
}

func TestSelect_NoLegalOperator(t *testing.T) {
	cfg := config.Reference()
	// Disjoint from P1's allow-list {Boundary, Group}.
	cfg.Scales["disjoint"] = []token.Operator{token.OpDecohere, token.OpSeparate}

	decision, err := pipeline.Select(pipeline.Request{
		State: domain.DefaultState(),
		Phase: domain.PhaseP1,
		Scale: "disjoint",
	}, cfg)
	require.ErrorIs(t, err, domain.ErrNoLegalOperator)

	// The candidate table survives the failure for observability.
	require.Len(t, decision.Candidates, 6)
	for _, c := range decision.Candidates {
		assert.NotEmpty(t, c.Rejected, c.Operator)
	}
}

func TestSelect_UnknownScale(t *testing.T) {
	_, err := pipeline.Select(pipeline.Request{
		State: domain.DefaultState(),
		Phase: domain.PhaseP1,
		Scale: "glacial",
	}, config.Reference())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNoLegalOperator)
}

func TestSelect_BoundsFilter(t *testing.T) {
	cfg := config.Reference()
	state, err := domain.DefaultState().WithField(domain.FieldCurvature, 1.70)
	require.NoError(t, err)

	// Amplify would push curvature to 2.04, past the 2.00 ceiling.
	decision, err := pipeline.Select(pipeline.Request{
		State:   state,
		Phase:   domain.PhaseP2,
		History: domain.History{token.OpBoundary},
		Scale:   config.ScaleFine,
	}, cfg)
	require.NoError(t, err)
	assert.NotEqual(t, token.OpAmplify, decision.Operator)
	for _, c := range decision.Candidates {
		if c.Operator == token.OpAmplify {
			assert.Contains(t, c.Rejected, domain.FieldCurvature)
		}
	}
}

func TestSelect_IsPure(t *testing.T) {
	cfg := config.Reference()
	state := domain.DefaultState()
	history := domain.History{token.OpBoundary}

	first, err := pipeline.Select(pipeline.Request{
		State: state, Phase: domain.PhaseP2, History: history, Scale: config.ScaleFine,
	}, cfg)
	require.NoError(t, err)
	second, err := pipeline.Select(pipeline.Request{
		State: state, Phase: domain.PhaseP2, History: history, Scale: config.ScaleFine,
	}, cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, domain.DefaultState(), state)
	assert.Equal(t, domain.History{token.OpBoundary}, history)
}
