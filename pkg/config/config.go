package config

import (
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/token"
)

// OpKind selects how a delta is applied to a scalar field.
type OpKind string

const (
	// OpAdd applies field += value.
	OpAdd OpKind = "add"
	// OpMul applies field *= value.
	OpMul OpKind = "mul"
)

// Delta is one per-field operation applied when an operator fires.
// Deltas for different fields under the same operator are independent and
// order-insensitive.
type Delta struct {
	Field string  `mapstructure:"field" yaml:"field"`
	Op    OpKind  `mapstructure:"op" yaml:"op"`
	Value float64 `mapstructure:"value" yaml:"value"`
}

// Range is the configured valid interval for a scalar field.
type Range struct {
	Min float64 `mapstructure:"min" yaml:"min"`
	Max float64 `mapstructure:"max" yaml:"max"`
}

// Thresholds are the safety limits checked against predicted post-states.
type Thresholds struct {
	CoherenceMin     float64 `mapstructure:"coherence_min" yaml:"coherence_min"`
	DecoherenceMax   float64 `mapstructure:"decoherence_max" yaml:"decoherence_max"`
	CurvatureMax     float64 `mapstructure:"curvature_max" yaml:"curvature_max"`
	ResidueThreshold float64 `mapstructure:"residue_threshold" yaml:"residue_threshold"`
}

// Cost holds the weights of the deviation cost function.
type Cost struct {
	TargetCoherence   float64 `mapstructure:"target_coherence" yaml:"target_coherence"`
	CoherenceWeight   float64 `mapstructure:"coherence_weight" yaml:"coherence_weight"`
	DecoherenceWeight float64 `mapstructure:"decoherence_weight" yaml:"decoherence_weight"`
	ResidueWeight     float64 `mapstructure:"residue_weight" yaml:"residue_weight"`
	PhaseWeight       float64 `mapstructure:"phase_weight" yaml:"phase_weight"`
	PhaseHoldPenalty  float64 `mapstructure:"phase_hold_penalty" yaml:"phase_hold_penalty"`
}

// PhaseTable maps (phase, operator) to the next phase. Pairs absent from the
// table self-loop.
type PhaseTable map[domain.Phase]map[token.Operator]domain.Phase

// Config is the externally supplied rule set for one evaluation. It is owned
// by the caller and passed explicitly into every call; the engine keeps no
// module-level configuration.
type Config struct {
	Deltas       map[token.Operator][]Delta
	Bounds       map[string]Range
	Thresholds   Thresholds
	PhaseTable   PhaseTable
	PhaseAllowed map[domain.Phase][]token.Operator
	Scales       map[string][]token.Operator
	Cost         Cost

	// Clamp switches out-of-range evolution results from violations to
	// silent clamping at the range edge.
	Clamp bool

	// RecursionMax caps sequence generation length.
	RecursionMax int
}

// ScaleOperators returns the legal operator set for a temporal scale.
func (c Config) ScaleOperators(scale string) ([]token.Operator, bool) {
	ops, ok := c.Scales[scale]
	return ops, ok
}

// PhaseOperators returns the operators permitted from a phase.
func (c Config) PhaseOperators(p domain.Phase) []token.Operator {
	return c.PhaseAllowed[p]
}
