package domain

import "fmt"

// Scalar field names, used by configuration documents and violations.
const (
	FieldGrounding          = "grounding"
	FieldCoupling           = "coupling"
	FieldResidue            = "residue"
	FieldCurvature          = "curvature"
	FieldTension            = "tension"
	FieldPhaseAngle         = "phase_angle"
	FieldDecoherenceRate    = "decoherence_rate"
	FieldAttractorAlignment = "attractor_alignment"
	FieldCoherence          = "coherence"
)

// ScalarFields lists the nine scalar field names in canonical order.
func ScalarFields() []string {
	return []string{
		FieldGrounding,
		FieldCoupling,
		FieldResidue,
		FieldCurvature,
		FieldTension,
		FieldPhaseAngle,
		FieldDecoherenceRate,
		FieldAttractorAlignment,
		FieldCoherence,
	}
}

// ScalarStateVector is the nine-field numeric bookkeeping structure evolved
// deterministically per applied operator. It is a value type: evolution
// produces a new vector, never an in-place mutation.
type ScalarStateVector struct {
	Grounding          float64 `json:"grounding" yaml:"grounding" mapstructure:"grounding"`
	Coupling           float64 `json:"coupling" yaml:"coupling" mapstructure:"coupling"`
	Residue            float64 `json:"residue" yaml:"residue" mapstructure:"residue"`
	Curvature          float64 `json:"curvature" yaml:"curvature" mapstructure:"curvature"`
	Tension            float64 `json:"tension" yaml:"tension" mapstructure:"tension"`
	PhaseAngle         float64 `json:"phase_angle" yaml:"phase_angle" mapstructure:"phase_angle"`
	DecoherenceRate    float64 `json:"decoherence_rate" yaml:"decoherence_rate" mapstructure:"decoherence_rate"`
	AttractorAlignment float64 `json:"attractor_alignment" yaml:"attractor_alignment" mapstructure:"attractor_alignment"`
	Coherence          float64 `json:"coherence" yaml:"coherence" mapstructure:"coherence"`
}

// DefaultState returns the reference starting vector.
func DefaultState() ScalarStateVector {
	return ScalarStateVector{
		Grounding:          0.500,
		Coupling:           0.500,
		Residue:            0.100,
		Curvature:          0.300,
		Tension:            0.500,
		PhaseAngle:         0.500,
		DecoherenceRate:    0.050,
		AttractorAlignment: 0.500,
		Coherence:          0.800,
	}
}

// Get returns the named scalar field.
func (v ScalarStateVector) Get(field string) (float64, error) {
	switch field {
	case FieldGrounding:
		return v.Grounding, nil
	case FieldCoupling:
		return v.Coupling, nil
	case FieldResidue:
		return v.Residue, nil
	case FieldCurvature:
		return v.Curvature, nil
	case FieldTension:
		return v.Tension, nil
	case FieldPhaseAngle:
		return v.PhaseAngle, nil
	case FieldDecoherenceRate:
		return v.DecoherenceRate, nil
	case FieldAttractorAlignment:
		return v.AttractorAlignment, nil
	case FieldCoherence:
		return v.Coherence, nil
	}
	return 0, fmt.Errorf("unknown scalar field %q", field)
}

// WithField returns a copy of the vector with the named field set.
func (v ScalarStateVector) WithField(field string, value float64) (ScalarStateVector, error) {
	next := v
	switch field {
	case FieldGrounding:
		next.Grounding = value
	case FieldCoupling:
		next.Coupling = value
	case FieldResidue:
		next.Residue = value
	case FieldCurvature:
		next.Curvature = value
	case FieldTension:
		next.Tension = value
	case FieldPhaseAngle:
		next.PhaseAngle = value
	case FieldDecoherenceRate:
		next.DecoherenceRate = value
	case FieldAttractorAlignment:
		next.AttractorAlignment = value
	case FieldCoherence:
		next.Coherence = value
	default:
		return v, fmt.Errorf("unknown scalar field %q", field)
	}
	return next, nil
}
