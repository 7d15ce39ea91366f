package rules_test

import (
	"testing"

	"github.com/aretw0/espalier/internal/rules"
	"github.com/aretw0/espalier/pkg/config"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opPtr(op token.Operator) *token.Operator { return &op }

func setField(t *testing.T, v domain.ScalarStateVector, field string, value float64) domain.ScalarStateVector {
	t.Helper()
	next, err := v.WithField(field, value)
	require.NoError(t, err)
	return next
}

func TestCheck_Grounding(t *testing.T) {
	v := rules.Check(domain.Application{Operator: token.OpAmplify}, nil)
	require.NotNil(t, v)
	assert.Equal(t, domain.CodeGrounding, v.Code)

	assert.Nil(t, rules.Check(
		domain.Application{Operator: token.OpAmplify},
		domain.History{token.OpBoundary},
	))
	assert.Nil(t, rules.Check(
		domain.Application{Operator: token.OpAmplify},
		domain.History{token.OpFusion},
	))
}

func TestCheck_Plurality(t *testing.T) {
	v := rules.Check(domain.Application{Operator: token.OpFusion, InputCount: 1}, nil)
	require.NotNil(t, v)
	assert.Equal(t, domain.CodePlurality, v.Code)

	assert.Nil(t, rules.Check(domain.Application{Operator: token.OpFusion, InputCount: 2}, nil))
}

func TestCheck_Structure(t *testing.T) {
	v := rules.Check(domain.Application{Operator: token.OpDecohere}, domain.History{token.OpBoundary})
	require.NotNil(t, v)
	assert.Equal(t, domain.CodeStructure, v.Code)

	for _, prior := range []token.Operator{token.OpAmplify, token.OpFusion, token.OpGroup, token.OpSeparate} {
		assert.Nil(t, rules.Check(
			domain.Application{Operator: token.OpDecohere},
			domain.History{prior},
		), prior)
	}
}

func TestCheck_GroupingContinuation(t *testing.T) {
	v := rules.Check(domain.Application{Operator: token.OpGroup, Successor: opPtr(token.OpBoundary)}, nil)
	require.NotNil(t, v)
	assert.Equal(t, domain.CodeGroupingContinuation, v.Code)

	assert.Nil(t, rules.Check(domain.Application{Operator: token.OpGroup, Successor: opPtr(token.OpFusion)}, nil))
	assert.Nil(t, rules.Check(domain.Application{Operator: token.OpGroup}, nil),
		"an unplanned successor is not a violation")
}

func TestCheck_SeparationContinuation(t *testing.T) {
	v := rules.Check(domain.Application{Operator: token.OpSeparate, Successor: opPtr(token.OpAmplify)}, nil)
	require.NotNil(t, v)
	assert.Equal(t, domain.CodeSeparationContinuation, v.Code)

	assert.Nil(t, rules.Check(domain.Application{Operator: token.OpSeparate, Successor: opPtr(token.OpBoundary)}, nil))
	assert.Nil(t, rules.Check(domain.Application{Operator: token.OpSeparate, Successor: opPtr(token.OpGroup)}, nil))
}

func TestCheck_Order(t *testing.T) {
	// Boundary triggers no structural rule regardless of history.
	assert.Nil(t, rules.Check(domain.Application{Operator: token.OpBoundary}, nil))
}

func TestCheckBounds(t *testing.T) {
	th := config.Reference().Thresholds

	assert.Nil(t, rules.CheckBounds(domain.DefaultState(), th))

	cases := []struct {
		name  string
		state domain.ScalarStateVector
		field string
		limit float64
	}{
		{"residue at threshold", setField(t, domain.DefaultState(), domain.FieldResidue, 0.30), domain.FieldResidue, 0.30},
		{"decoherence above max", setField(t, domain.DefaultState(), domain.FieldDecoherenceRate, 0.81), domain.FieldDecoherenceRate, 0.80},
		{"curvature above max", setField(t, domain.DefaultState(), domain.FieldCurvature, 2.10), domain.FieldCurvature, 2.00},
		{"coherence below min", setField(t, domain.DefaultState(), domain.FieldCoherence, 0.55), domain.FieldCoherence, 0.60},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := rules.CheckBounds(tc.state, th)
			require.NotNil(t, v)
			assert.Equal(t, tc.field, v.Field)
			assert.Equal(t, tc.limit, v.Limit, "the crossed threshold is carried")
		})
	}
}

func TestValidate_StructuralBeforeBounds(t *testing.T) {
	th := config.Reference().Thresholds
	// Both a structural violation and a bounds breach are present; the
	// structural one wins.
	bad := setField(t, domain.DefaultState(), domain.FieldCoherence, 0.10)

	err := rules.Validate(domain.Application{Operator: token.OpAmplify}, nil, bad, th)
	var lv *domain.LegalityViolation
	require.ErrorAs(t, err, &lv)
	assert.Equal(t, domain.CodeGrounding, lv.Code)

	err = rules.Validate(domain.Application{Operator: token.OpBoundary}, nil, bad, th)
	var sv *domain.ScalarBoundsViolation
	require.ErrorAs(t, err, &sv)
	assert.Equal(t, domain.FieldCoherence, sv.Field)
}
