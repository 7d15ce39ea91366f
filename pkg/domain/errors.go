package domain

import (
	"errors"
	"fmt"
)

// ErrNoLegalOperator is returned when the filtered candidate set is empty.
var ErrNoLegalOperator = errors.New("no legal operator")

// ErrSessionNotFound is returned when a session ID cannot be found in a store.
var ErrSessionNotFound = errors.New("session not found")

// Structural rule codes.
const (
	CodeGrounding              = "N0-1"
	CodePlurality              = "N0-2"
	CodeStructure              = "N0-3"
	CodeGroupingContinuation   = "N0-4"
	CodeSeparationContinuation = "N0-5"
)

// LegalityViolation reports a breach of one of the five structural rules.
type LegalityViolation struct {
	Code   string // N0-1 .. N0-5
	Reason string
}

func (e *LegalityViolation) Error() string {
	return fmt.Sprintf("legality violation %s: %s", e.Code, e.Reason)
}

// ScalarBoundsViolation reports a predicted post-state breaching a configured
// threshold or field range. It names the offending field, its value, and the
// configured limit it crossed, so callers know which knob was hit.
type ScalarBoundsViolation struct {
	Field string
	Value float64
	Limit float64
}

func (e *ScalarBoundsViolation) Error() string {
	return fmt.Sprintf("scalar bounds violation: %s=%.4f (limit %.4f)", e.Field, e.Value, e.Limit)
}
