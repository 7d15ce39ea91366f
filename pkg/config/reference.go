package config

import (
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/token"
)

// Temporal scale names used by the reference configuration.
const (
	ScaleFine   = "fine-grained"
	ScaleCoarse = "coarse-grained"
)

// Reference returns the conformance configuration. Its deltas reproduce the
// published reference values bit-for-bit and are exercised by the scenario
// tests; callers wanting different behavior load their own document.
func Reference() Config {
	return Config{
		Deltas: map[token.Operator][]Delta{
			token.OpBoundary: {
				{Field: domain.FieldGrounding, Op: OpAdd, Value: 0.100},
				{Field: domain.FieldCoherence, Op: OpAdd, Value: 0.050},
			},
			token.OpFusion: {
				{Field: domain.FieldCoupling, Op: OpAdd, Value: 0.150},
				{Field: domain.FieldTension, Op: OpAdd, Value: 0.050},
				{Field: domain.FieldCoherence, Op: OpAdd, Value: 0.040},
			},
			token.OpAmplify: {
				{Field: domain.FieldCurvature, Op: OpMul, Value: 1.200},
				{Field: domain.FieldCoherence, Op: OpMul, Value: 1.080},
			},
			token.OpDecohere: {
				{Field: domain.FieldCoherence, Op: OpMul, Value: 0.900},
				{Field: domain.FieldResidue, Op: OpAdd, Value: 0.080},
				{Field: domain.FieldDecoherenceRate, Op: OpAdd, Value: 0.050},
			},
			token.OpGroup: {
				{Field: domain.FieldAttractorAlignment, Op: OpAdd, Value: 0.120},
				{Field: domain.FieldGrounding, Op: OpAdd, Value: 0.050},
			},
			token.OpSeparate: {
				{Field: domain.FieldResidue, Op: OpAdd, Value: 0.060},
				{Field: domain.FieldDecoherenceRate, Op: OpAdd, Value: 0.040},
				{Field: domain.FieldPhaseAngle, Op: OpMul, Value: 0.900},
			},
		},
		Bounds: map[string]Range{
			domain.FieldGrounding:          {Min: 0, Max: 1},
			domain.FieldCoupling:           {Min: 0, Max: 1},
			domain.FieldResidue:            {Min: 0, Max: 1},
			domain.FieldCurvature:          {Min: 0, Max: 3},
			domain.FieldTension:            {Min: 0, Max: 1},
			domain.FieldPhaseAngle:         {Min: 0, Max: 6.2832},
			domain.FieldDecoherenceRate:    {Min: 0, Max: 1},
			domain.FieldAttractorAlignment: {Min: 0, Max: 1},
			domain.FieldCoherence:          {Min: 0, Max: 1},
		},
		Thresholds: Thresholds{
			CoherenceMin:     0.60,
			DecoherenceMax:   0.80,
			CurvatureMax:     2.00,
			ResidueThreshold: 0.30,
		},
		PhaseTable: PhaseTable{
			domain.PhaseP1: {token.OpBoundary: domain.PhaseP2},
			domain.PhaseP2: {
				token.OpAmplify: domain.PhaseP3,
				token.OpFusion:  domain.PhaseP3,
			},
			domain.PhaseP3: {
				token.OpGroup:  domain.PhaseP4,
				token.OpFusion: domain.PhaseP4,
			},
			domain.PhaseP4: {
				token.OpDecohere: domain.PhaseP5,
				token.OpSeparate: domain.PhaseP5,
			},
			domain.PhaseP5: {
				token.OpBoundary: domain.PhaseP1,
				token.OpGroup:    domain.PhaseP1,
			},
		},
		PhaseAllowed: map[domain.Phase][]token.Operator{
			domain.PhaseP1: {token.OpBoundary, token.OpGroup},
			domain.PhaseP2: {token.OpBoundary, token.OpFusion, token.OpAmplify},
			domain.PhaseP3: {token.OpFusion, token.OpAmplify, token.OpGroup},
			domain.PhaseP4: {token.OpDecohere, token.OpGroup, token.OpSeparate},
			domain.PhaseP5: {token.OpBoundary, token.OpGroup, token.OpSeparate},
		},
		Scales: map[string][]token.Operator{
			ScaleFine:   {token.OpBoundary, token.OpAmplify, token.OpGroup, token.OpSeparate},
			ScaleCoarse: {token.OpBoundary, token.OpFusion, token.OpDecohere, token.OpGroup},
		},
		Cost: Cost{
			TargetCoherence:   0.95,
			CoherenceWeight:   1.00,
			DecoherenceWeight: 0.50,
			ResidueWeight:     0.75,
			PhaseWeight:       0.25,
			PhaseHoldPenalty:  1.00,
		},
		Clamp:        false,
		RecursionMax: 3,
	}
}
