// Package pipeline orchestrates operator selection: temporal and phase
// filters, structural and scalar legality, post-state prediction, and
// weighted-cost scoring. The pipeline is a pure function; it never mutates
// the caller's state or history.
package pipeline

import (
	"fmt"

	"github.com/aretw0/espalier/internal/cycle"
	"github.com/aretw0/espalier/internal/evolve"
	"github.com/aretw0/espalier/internal/rules"
	"github.com/aretw0/espalier/pkg/config"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/token"
)

// Request carries one selection's inputs. InputCount parameterizes a Fusion
// candidate and is supplied by the caller, never inferred. Successor is the
// planned next operator when the caller already knows it.
type Request struct {
	State      domain.ScalarStateVector
	Phase      domain.Phase
	History    domain.History
	Scale      string
	InputCount int
	Successor  *token.Operator
}

// Select runs the full pipeline and returns the minimum-cost decision.
// Candidates are evaluated in canonical operator order, which doubles as the
// tie-break for equal costs. When every operator is filtered out the returned
// error wraps domain.ErrNoLegalOperator and the decision still carries the
// candidate table so callers can observe each rejection.
func Select(req Request, cfg config.Config) (domain.Decision, error) {
	scaleOps, ok := cfg.ScaleOperators(req.Scale)
	if !ok {
		return domain.Decision{}, fmt.Errorf("unknown temporal scale %q", req.Scale)
	}
	phaseOps := cfg.PhaseOperators(req.Phase)

	table := make([]domain.Candidate, 0, len(token.Operators()))
	best := -1

	for _, op := range token.Operators() {
		row := domain.Candidate{Operator: op}

		switch {
		case !contains(scaleOps, op):
			row.Rejected = fmt.Sprintf("not legal at the %s scale", req.Scale)
		case !contains(phaseOps, op):
			row.Rejected = fmt.Sprintf("not allowed from phase %s", req.Phase)
		default:
			row = score(req, cfg, op)
		}

		table = append(table, row)
		if row.Rejected == "" && (best < 0 || row.Cost < table[best].Cost) {
			best = len(table) - 1
		}
	}

	if best < 0 {
		return domain.Decision{
			State:      req.State,
			Phase:      req.Phase,
			Candidates: table,
		}, fmt.Errorf("phase %s, scale %s: %w", req.Phase, req.Scale, domain.ErrNoLegalOperator)
	}

	chosen := table[best]
	return domain.Decision{
		Operator:   chosen.Operator,
		State:      chosen.State,
		Phase:      chosen.Phase,
		Candidates: table,
	}, nil
}

// score validates one surviving candidate, predicts its post-state and phase,
// and prices the deviation from the configured targets.
func score(req Request, cfg config.Config, op token.Operator) domain.Candidate {
	row := domain.Candidate{Operator: op}

	candidate := domain.Application{
		Operator:   op,
		InputCount: req.InputCount,
		Successor:  req.Successor,
	}
	if v := rules.Check(candidate, req.History); v != nil {
		row.Rejected = v.Error()
		return row
	}

	predicted, err := evolve.Apply(req.State, op, cfg)
	if err != nil {
		row.Rejected = err.Error()
		return row
	}
	if v := rules.CheckBounds(predicted, cfg.Thresholds); v != nil {
		row.Rejected = v.Error()
		return row
	}

	row.State = predicted
	row.Phase = cycle.Next(req.Phase, op, cfg.PhaseTable)
	row.Cost = cost(cfg, predicted, req.Phase, row.Phase)
	return row
}

// cost is the weighted squared deviation of a predicted state from the
// configured targets, plus a penalty for holding the current phase.
func cost(cfg config.Config, s domain.ScalarStateVector, from, to domain.Phase) float64 {
	w := cfg.Cost
	gap := w.TargetCoherence - s.Coherence
	total := w.CoherenceWeight * gap * gap
	total += w.DecoherenceWeight * s.DecoherenceRate * s.DecoherenceRate
	if excess := s.Residue - cfg.Thresholds.ResidueThreshold; excess > 0 {
		total += w.ResidueWeight * excess * excess
	}
	if to == from {
		total += w.PhaseWeight * w.PhaseHoldPenalty
	}
	return total
}

func contains(ops []token.Operator, op token.Operator) bool {
	for _, o := range ops {
		if o == op {
			return true
		}
	}
	return false
}
