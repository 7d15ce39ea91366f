package domain

// Session is a persistable snapshot of one generation run: the evolving
// scalar state, the current phase, and the operator history.
type Session struct {
	ID      string            `json:"id"`
	State   ScalarStateVector `json:"state"`
	Phase   Phase             `json:"phase"`
	History History           `json:"history"`
	Scale   string            `json:"scale,omitempty"`
}

// NewSession creates a session at the reference starting point.
func NewSession(id string) *Session {
	return &Session{
		ID:    id,
		State: DefaultState(),
		Phase: InitialPhase,
	}
}
