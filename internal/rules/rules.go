// Package rules implements the five structural legality rules and the
// scalar-bounds checks. Each rule is a pure predicate over the candidate
// application and the running history; they run in a fixed order so the
// first violation reported is reproducible.
package rules

import (
	"fmt"

	"github.com/aretw0/espalier/pkg/config"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/token"
)

// rule is one structural predicate. A nil return means the rule passes.
type rule func(app domain.Application, history domain.History) *domain.LegalityViolation

// ordered rules; evaluation order is part of the contract.
var structural = []rule{
	grounding,
	plurality,
	structure,
	groupingContinuation,
	separationContinuation,
}

// Check evaluates the five structural rules in order and returns the first
// violation, or nil when the candidate is structurally legal.
func Check(app domain.Application, history domain.History) *domain.LegalityViolation {
	for _, r := range structural {
		if v := r(app, history); v != nil {
			return v
		}
	}
	return nil
}

// grounding: Amplify needs an established structure to act on.
func grounding(app domain.Application, history domain.History) *domain.LegalityViolation {
	if app.Operator != token.OpAmplify {
		return nil
	}
	if history.ContainsAny(token.OpBoundary, token.OpFusion) {
		return nil
	}
	return &domain.LegalityViolation{
		Code:   domain.CodeGrounding,
		Reason: "Amplify requires a prior Boundary or Fusion in history",
	}
}

// plurality: Fusion is only meaningful across two or more inputs.
func plurality(app domain.Application, _ domain.History) *domain.LegalityViolation {
	if app.Operator != token.OpFusion {
		return nil
	}
	if app.InputCount >= 2 {
		return nil
	}
	return &domain.LegalityViolation{
		Code:   domain.CodePlurality,
		Reason: fmt.Sprintf("Fusion requires at least 2 inputs, got %d", app.InputCount),
	}
}

// structure: Decohere needs something structured to decohere.
func structure(app domain.Application, history domain.History) *domain.LegalityViolation {
	if app.Operator != token.OpDecohere {
		return nil
	}
	if history.ContainsAny(token.OpAmplify, token.OpFusion, token.OpGroup, token.OpSeparate) {
		return nil
	}
	return &domain.LegalityViolation{
		Code:   domain.CodeStructure,
		Reason: "Decohere requires a prior Amplify, Fusion, Group or Separate in history",
	}
}

// groupingContinuation: a Group must be followed by Group, Fusion or
// Amplify; Boundary would cut across the grouping.
func groupingContinuation(app domain.Application, _ domain.History) *domain.LegalityViolation {
	if app.Operator != token.OpGroup || app.Successor == nil {
		return nil
	}
	switch *app.Successor {
	case token.OpGroup, token.OpFusion, token.OpAmplify:
		return nil
	}
	return &domain.LegalityViolation{
		Code:   domain.CodeGroupingContinuation,
		Reason: fmt.Sprintf("Group cannot be followed by %s; next must be Group, Fusion or Amplify", *app.Successor),
	}
}

// separationContinuation: a Separate must be followed by Boundary or Group.
func separationContinuation(app domain.Application, _ domain.History) *domain.LegalityViolation {
	if app.Operator != token.OpSeparate || app.Successor == nil {
		return nil
	}
	switch *app.Successor {
	case token.OpBoundary, token.OpGroup:
		return nil
	}
	return &domain.LegalityViolation{
		Code:   domain.CodeSeparationContinuation,
		Reason: fmt.Sprintf("Separate cannot be followed by %s; next must be Boundary or Group", *app.Successor),
	}
}

// CheckBounds compares a predicted post-state against the configured safety
// thresholds and returns the first breach. Checks run in a fixed order:
// residue, decoherence rate, curvature, coherence.
func CheckBounds(state domain.ScalarStateVector, th config.Thresholds) *domain.ScalarBoundsViolation {
	if state.Residue >= th.ResidueThreshold {
		return &domain.ScalarBoundsViolation{Field: domain.FieldResidue, Value: state.Residue, Limit: th.ResidueThreshold}
	}
	if state.DecoherenceRate >= th.DecoherenceMax {
		return &domain.ScalarBoundsViolation{Field: domain.FieldDecoherenceRate, Value: state.DecoherenceRate, Limit: th.DecoherenceMax}
	}
	if state.Curvature >= th.CurvatureMax {
		return &domain.ScalarBoundsViolation{Field: domain.FieldCurvature, Value: state.Curvature, Limit: th.CurvatureMax}
	}
	if state.Coherence <= th.CoherenceMin {
		return &domain.ScalarBoundsViolation{Field: domain.FieldCoherence, Value: state.Coherence, Limit: th.CoherenceMin}
	}
	return nil
}

// Validate runs the structural rules and then the scalar-bounds checks
// against an already-predicted post-state, reporting the first violation.
// Callers holding the raw pre-state should run Check before predicting, so
// an illegal application is rejected without predicting at all.
func Validate(app domain.Application, history domain.History, predicted domain.ScalarStateVector, th config.Thresholds) error {
	if v := Check(app, history); v != nil {
		return v
	}
	if v := CheckBounds(predicted, th); v != nil {
		return v
	}
	return nil
}
