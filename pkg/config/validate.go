package config

import (
	"fmt"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/token"
)

// Validate checks the configuration for hard errors: deltas on unknown
// fields, bad delta kinds, unknown bound fields, and a phase table without a
// route from P5 back to P1. Transition-table pairs may be sparse (absent
// pairs self-loop), but the cycle-reset edge is load-bearing and required.
func (c Config) Validate() error {
	known := make(map[string]bool, 9)
	for _, f := range domain.ScalarFields() {
		known[f] = true
	}

	for op, deltas := range c.Deltas {
		for _, d := range deltas {
			if !known[d.Field] {
				return fmt.Errorf("deltas.%s: unknown scalar field %q", op, d.Field)
			}
			switch d.Op {
			case OpAdd, OpMul:
			default:
				return fmt.Errorf("deltas.%s.%s: unknown op kind %q", op, d.Field, d.Op)
			}
			if d.Op == OpMul && d.Value <= 0 {
				return fmt.Errorf("deltas.%s.%s: multiplicative factor must be positive", op, d.Field)
			}
		}
	}

	for field, r := range c.Bounds {
		if !known[field] {
			return fmt.Errorf("bounds: unknown scalar field %q", field)
		}
		if r.Min > r.Max {
			return fmt.Errorf("bounds.%s: min %.4f above max %.4f", field, r.Min, r.Max)
		}
	}

	if c.RecursionMax < 1 {
		return fmt.Errorf("recursion_max must be at least 1, got %d", c.RecursionMax)
	}

	if !c.hasCycleClosure() {
		return fmt.Errorf("phase table provides no legal route from %s back to %s", domain.PhaseP5, domain.PhaseP1)
	}

	return nil
}

// hasCycleClosure reports whether some operator both transitions P5 to P1 and
// is allowed from P5.
func (c Config) hasCycleClosure() bool {
	row := c.PhaseTable[domain.PhaseP5]
	for _, op := range c.PhaseAllowed[domain.PhaseP5] {
		if row[op] == domain.PhaseP1 {
			return true
		}
	}
	return false
}

// Warnings reports configuration smells that are legal but likely
// unintended. An unreachable coherence target is flagged here rather than
// silently adjusted: when the target exceeds the coherence ceiling, the
// coherence term dominates every candidate's cost.
func (c Config) Warnings() []string {
	var warnings []string

	if r, ok := c.Bounds[domain.FieldCoherence]; ok && c.Cost.TargetCoherence > r.Max {
		warnings = append(warnings, fmt.Sprintf(
			"target coherence %.4f exceeds the coherence ceiling %.4f; the coherence term will dominate every cost",
			c.Cost.TargetCoherence, r.Max))
	}

	for _, op := range token.Operators() {
		if len(c.Deltas[op]) == 0 {
			warnings = append(warnings, fmt.Sprintf("operator %s has no configured deltas; applying it leaves the state unchanged", op))
		}
	}

	return warnings
}
