package token

import "fmt"

// ParseError reports malformed token text. It is always surfaced to the
// caller; the parser never defaults a component silently.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("token parse error: %s", e.Reason)
}

// ImmutabilityViolation reports an attempted mutation of a Tier-1 token.
type ImmutabilityViolation struct {
	Token string
}

func (e *ImmutabilityViolation) Error() string {
	return fmt.Sprintf("tier-1 token %s is immutable", e.Token)
}
