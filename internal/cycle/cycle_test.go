package cycle_test

import (
	"testing"

	"github.com/aretw0/espalier/internal/cycle"
	"github.com/aretw0/espalier/pkg/config"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/token"
	"github.com/stretchr/testify/assert"
)

func TestNext(t *testing.T) {
	table := config.Reference().PhaseTable

	assert.Equal(t, domain.PhaseP2, cycle.Next(domain.PhaseP1, token.OpBoundary, table))
	assert.Equal(t, domain.PhaseP3, cycle.Next(domain.PhaseP2, token.OpAmplify, table))
	assert.Equal(t, domain.PhaseP1, cycle.Next(domain.PhaseP5, token.OpBoundary, table))

	// Pairs absent from the table self-loop.
	assert.Equal(t, domain.PhaseP1, cycle.Next(domain.PhaseP1, token.OpSeparate, table))
	assert.Equal(t, domain.PhaseP3, cycle.Next(domain.PhaseP3, token.OpBoundary, table))
}

func TestClosureOperators(t *testing.T) {
	ops := cycle.ClosureOperators(config.Reference())
	assert.NotEmpty(t, ops, "the reference table must route P5 back to P1")
	assert.Contains(t, ops, token.OpBoundary)
	assert.Contains(t, ops, token.OpGroup)
}
