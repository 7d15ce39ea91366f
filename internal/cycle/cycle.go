// Package cycle advances the five-phase process state. Transitions come from
// the configured table; any (phase, operator) pair absent from the table
// leaves the phase unchanged.
package cycle

import (
	"github.com/aretw0/espalier/pkg/config"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/token"
)

// Next returns the phase reached by applying an operator. Missing pairs
// self-loop.
func Next(phase domain.Phase, op token.Operator, table config.PhaseTable) domain.Phase {
	if next, ok := table[phase][op]; ok {
		return next
	}
	return phase
}

// ClosureOperators lists the operators that both transition P5 back to P1 and
// are allowed from P5. The reference table must keep this non-empty; Validate
// enforces that on load.
func ClosureOperators(cfg config.Config) []token.Operator {
	var ops []token.Operator
	row := cfg.PhaseTable[domain.PhaseP5]
	for _, op := range cfg.PhaseAllowed[domain.PhaseP5] {
		if row[op] == domain.PhaseP1 {
			ops = append(ops, op)
		}
	}
	return ops
}
