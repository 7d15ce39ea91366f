package domain

import "github.com/aretw0/espalier/pkg/token"

// History is the ordered sequence of canonical operators applied so far.
// It is append-only: Push returns a new slice and never mutates entries.
type History []token.Operator

// Push appends an operator, returning the extended history.
func (h History) Push(op token.Operator) History {
	next := make(History, len(h), len(h)+1)
	copy(next, h)
	return append(next, op)
}

// Contains reports whether the operator was ever applied.
func (h History) Contains(op token.Operator) bool {
	for _, applied := range h {
		if applied == op {
			return true
		}
	}
	return false
}

// ContainsAny reports whether any of the operators was ever applied.
func (h History) ContainsAny(ops ...token.Operator) bool {
	for _, op := range ops {
		if h.Contains(op) {
			return true
		}
	}
	return false
}

// Last returns the most recently applied operator.
func (h History) Last() (token.Operator, bool) {
	if len(h) == 0 {
		return "", false
	}
	return h[len(h)-1], true
}
