// Package evolve applies configured per-operator deltas to the scalar state
// vector. Evolution is purely functional: the input vector is never touched
// and identical inputs always produce identical outputs.
package evolve

import (
	"fmt"

	"github.com/aretw0/espalier/pkg/config"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/token"
)

// Apply evolves the state under one operator. Each configured delta either
// adds to or multiplies its field; deltas touch disjoint fields, so listed
// order does not affect the result. A result outside the field's configured
// range is a ScalarBoundsViolation unless the configuration opts into
// clamping. An operator with no configured deltas leaves the state unchanged.
func Apply(state domain.ScalarStateVector, op token.Operator, cfg config.Config) (domain.ScalarStateVector, error) {
	next := state
	for _, d := range cfg.Deltas[op] {
		value, err := next.Get(d.Field)
		if err != nil {
			return state, fmt.Errorf("deltas.%s: %w", op, err)
		}

		switch d.Op {
		case config.OpAdd:
			value += d.Value
		case config.OpMul:
			value *= d.Value
		default:
			return state, fmt.Errorf("deltas.%s.%s: unknown op kind %q", op, d.Field, d.Op)
		}

		if r, ok := cfg.Bounds[d.Field]; ok && (value < r.Min || value > r.Max) {
			if !cfg.Clamp {
				limit := r.Max
				if value < r.Min {
					limit = r.Min
				}
				return state, &domain.ScalarBoundsViolation{Field: d.Field, Value: value, Limit: limit}
			}
			value = clamp(value, r)
		}

		next, err = next.WithField(d.Field, value)
		if err != nil {
			return state, fmt.Errorf("deltas.%s: %w", op, err)
		}
	}
	return next, nil
}

func clamp(value float64, r config.Range) float64 {
	if value < r.Min {
		return r.Min
	}
	if value > r.Max {
		return r.Max
	}
	return value
}
