package domain

import "github.com/aretw0/espalier/pkg/token"

// Application describes one prospective operator application. InputCount
// parameterizes Fusion and is supplied by the caller, never inferred.
// Successor is the planned next operator when already known; nil means
// unplanned, which the continuation rules treat as permitted.
type Application struct {
	Operator   token.Operator  `json:"operator"`
	InputCount int             `json:"input_count,omitempty"`
	Successor  *token.Operator `json:"successor,omitempty"`
}
