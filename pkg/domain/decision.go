package domain

import "github.com/aretw0/espalier/pkg/token"

// Candidate is one scored row of the decision table. Rejected candidates keep
// their rejection reason so callers can observe why each operator was
// filtered out.
type Candidate struct {
	Operator token.Operator    `json:"operator"`
	State    ScalarStateVector `json:"state,omitempty"`
	Phase    Phase             `json:"phase,omitempty"`
	Cost     float64           `json:"cost"`
	Rejected string            `json:"rejected,omitempty"`
}

// Decision is the outcome of one pipeline selection: the chosen operator, its
// predicted state and phase, and the full candidate table.
type Decision struct {
	Operator   token.Operator    `json:"operator"`
	State      ScalarStateVector `json:"state"`
	Phase      Phase             `json:"phase"`
	Candidates []Candidate       `json:"candidates"`
}

// Selection carries the inputs of one operator selection. InputCount
// parameterizes a Fusion candidate and is supplied by the caller.
type Selection struct {
	State      ScalarStateVector `json:"state"`
	Phase      Phase             `json:"phase"`
	History    History           `json:"history,omitempty"`
	Scale      string            `json:"scale"`
	InputCount int               `json:"input_count,omitempty"`
}
