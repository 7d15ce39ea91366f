package domain

// Phase is the five-step cyclic process state advanced by operator
// application: P1 → P2 → P3 → P4 → P5 → P1.
type Phase string

const (
	PhaseP1 Phase = "P1"
	PhaseP2 Phase = "P2"
	PhaseP3 Phase = "P3"
	PhaseP4 Phase = "P4"
	PhaseP5 Phase = "P5"
)

// InitialPhase is where every sequence starts.
const InitialPhase = PhaseP1

// Phases returns the five phases in cycle order.
func Phases() []Phase {
	return []Phase{PhaseP1, PhaseP2, PhaseP3, PhaseP4, PhaseP5}
}

// Valid reports whether p is one of the five phases.
func (p Phase) Valid() bool {
	switch p {
	case PhaseP1, PhaseP2, PhaseP3, PhaseP4, PhaseP5:
		return true
	}
	return false
}

// Successor returns the next phase in the strict cycle.
func (p Phase) Successor() Phase {
	switch p {
	case PhaseP1:
		return PhaseP2
	case PhaseP2:
		return PhaseP3
	case PhaseP3:
		return PhaseP4
	case PhaseP4:
		return PhaseP5
	case PhaseP5:
		return PhaseP1
	}
	return p
}
