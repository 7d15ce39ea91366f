package token

import "strings"

// Field identifies the primary symbolic domain a token belongs to.
type Field string

const (
	// FieldStructure covers geometry, stability and boundaries.
	FieldStructure Field = "Φ"
	// FieldEnergy covers waves, thermodynamics and flows.
	FieldEnergy Field = "e"
	// FieldEmergence covers chemistry, biology and information.
	FieldEmergence Field = "π"
)

// Fields returns the three fields in canonical order.
func Fields() []Field {
	return []Field{FieldStructure, FieldEnergy, FieldEmergence}
}

// Machine identifies the processing role a token operates under.
type Machine string

const (
	MachineUp       Machine = "U"
	MachineDown     Machine = "D"
	MachineMiddle   Machine = "M"
	MachineExpand   Machine = "E"
	MachineCollapse Machine = "C"
	MachineModulate Machine = "Mod"
)

// Machines returns the six machine codes in canonical order.
func Machines() []Machine {
	return []Machine{MachineUp, MachineDown, MachineMiddle, MachineExpand, MachineCollapse, MachineModulate}
}

// TruthState tags a token for display and classification.
// The legality engine never consults it.
type TruthState string

const (
	TruthTrue    TruthState = "TRUE"
	TruthUntrue  TruthState = "UNTRUE"
	TruthParadox TruthState = "PARADOX"
)

// Tier bounds. Tier 1 tokens are immutable once constructed.
const (
	TierMin = 1
	TierMax = 3
)

// Operator is one of the six canonical structural actions governing legality.
type Operator string

const (
	OpBoundary Operator = "Boundary"
	OpFusion   Operator = "Fusion"
	OpAmplify  Operator = "Amplify"
	OpDecohere Operator = "Decohere"
	OpGroup    Operator = "Group"
	OpSeparate Operator = "Separate"
)

// Operators returns the canonical enumeration order.
// This order is also the deterministic tie-break used by the decision pipeline.
func Operators() []Operator {
	return []Operator{OpBoundary, OpFusion, OpAmplify, OpDecohere, OpGroup, OpSeparate}
}

// ParseOperator resolves a label to a canonical operator, case-insensitively.
func ParseOperator(label string) (Operator, bool) {
	for _, op := range Operators() {
		if strings.EqualFold(label, string(op)) {
			return op, true
		}
	}
	return "", false
}

// Token is a parsed operator token.
// Tokens are value types: state change always produces a new Token.
type Token struct {
	Field   Field
	Machine Machine
	Intent  string
	Truth   TruthState
	Tier    int
}

// String renders the canonical grammar text: Field:Machine(Intent)TruthState@Tier.
func (t Token) String() string {
	var b strings.Builder
	b.WriteString(string(t.Field))
	b.WriteByte(':')
	b.WriteString(string(t.Machine))
	b.WriteByte('(')
	b.WriteString(t.Intent)
	b.WriteByte(')')
	b.WriteString(string(t.Truth))
	b.WriteByte('@')
	b.WriteByte(byte('0' + t.Tier))
	return b.String()
}

// Operator resolves the token's intent to a canonical operator, when it is one.
func (t Token) Operator() (Operator, bool) {
	return ParseOperator(t.Intent)
}

// Changes describes a partial update for With. Nil fields are left unchanged.
type Changes struct {
	Field   *Field
	Machine *Machine
	Intent  *string
	Truth   *TruthState
	Tier    *int
}

// With returns a copy of the token with the given changes applied.
// Tier-1 tokens are immutable: any effective change fails with
// *ImmutabilityViolation and the original token is left untouched.
func (t Token) With(c Changes) (Token, error) {
	next := t
	if c.Field != nil {
		next.Field = *c.Field
	}
	if c.Machine != nil {
		next.Machine = *c.Machine
	}
	if c.Intent != nil {
		next.Intent = *c.Intent
	}
	if c.Truth != nil {
		next.Truth = *c.Truth
	}
	if c.Tier != nil {
		next.Tier = *c.Tier
	}
	if t.Tier == 1 && next != t {
		return Token{}, &ImmutabilityViolation{Token: t.String()}
	}
	return next, nil
}

func validField(f Field) bool {
	switch f {
	case FieldStructure, FieldEnergy, FieldEmergence:
		return true
	}
	return false
}

func validMachine(m Machine) bool {
	switch m {
	case MachineUp, MachineDown, MachineMiddle, MachineExpand, MachineCollapse, MachineModulate:
		return true
	}
	return false
}

func validTruth(ts TruthState) bool {
	switch ts {
	case TruthTrue, TruthUntrue, TruthParadox:
		return true
	}
	return false
}

// New constructs a token from validated components.
func New(f Field, m Machine, intent string, truth TruthState, tier int) (Token, error) {
	switch {
	case !validField(f):
		return Token{}, &ParseError{Reason: "unknown field symbol " + string(f)}
	case !validMachine(m):
		return Token{}, &ParseError{Reason: "unknown machine code " + string(m)}
	case intent == "":
		return Token{}, &ParseError{Reason: "empty intent"}
	case strings.ContainsAny(intent, "()"):
		return Token{}, &ParseError{Reason: "intent must not contain parentheses"}
	case !validTruth(truth):
		return Token{}, &ParseError{Reason: "unknown truth state " + string(truth)}
	case tier < TierMin || tier > TierMax:
		return Token{}, &ParseError{Reason: "tier out of range 1..3"}
	}
	return Token{Field: f, Machine: m, Intent: intent, Truth: truth, Tier: tier}, nil
}
