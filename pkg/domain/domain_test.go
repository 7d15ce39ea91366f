package domain_test

import (
	"testing"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_PushIsAppendOnly(t *testing.T) {
	h := domain.History{token.OpBoundary}
	extended := h.Push(token.OpFusion)

	assert.Len(t, h, 1, "original history must not grow")
	assert.Len(t, extended, 2)
	assert.True(t, extended.Contains(token.OpBoundary))
	assert.True(t, extended.Contains(token.OpFusion))

	last, ok := extended.Last()
	require.True(t, ok)
	assert.Equal(t, token.OpFusion, last)

	_, ok = domain.History{}.Last()
	assert.False(t, ok)
}

func TestHistory_ContainsAny(t *testing.T) {
	h := domain.History{token.OpBoundary, token.OpGroup}
	assert.True(t, h.ContainsAny(token.OpAmplify, token.OpGroup))
	assert.False(t, h.ContainsAny(token.OpAmplify, token.OpDecohere))
}

func TestScalarStateVector_GetWithField(t *testing.T) {
	v := domain.DefaultState()

	for _, field := range domain.ScalarFields() {
		_, err := v.Get(field)
		require.NoError(t, err, field)
	}

	coherence, err := v.Get(domain.FieldCoherence)
	require.NoError(t, err)
	assert.Equal(t, 0.800, coherence)

	next, err := v.WithField(domain.FieldCoherence, 0.9)
	require.NoError(t, err)
	assert.Equal(t, 0.9, next.Coherence)
	assert.Equal(t, 0.800, v.Coherence, "WithField must not mutate the receiver")

	_, err = v.Get("bogus")
	assert.Error(t, err)
	_, err = v.WithField("bogus", 1)
	assert.Error(t, err)
}

func TestPhase_Cycle(t *testing.T) {
	assert.Equal(t, domain.PhaseP2, domain.PhaseP1.Successor())
	assert.Equal(t, domain.PhaseP1, domain.PhaseP5.Successor(), "cycle must close")
	assert.True(t, domain.PhaseP3.Valid())
	assert.False(t, domain.Phase("P9").Valid())
}
