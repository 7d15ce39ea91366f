package token

import (
	"fmt"
	"strings"
)

// Parse reads the canonical grammar Field:Machine(Intent)TruthState@Tier.
//
// Examples:
//
//	Φ:U(boundary)TRUE@1
//	e:M(fusion)UNTRUE@2
//	π:E(transcend)PARADOX@3
func Parse(text string) (Token, error) {
	colon := strings.Index(text, ":")
	if colon < 0 {
		return Token{}, &ParseError{Reason: "missing ':' after field symbol"}
	}

	field := Field(text[:colon])
	if !validField(field) {
		return Token{}, &ParseError{Reason: fmt.Sprintf("unknown field symbol %q", text[:colon])}
	}

	rest := text[colon+1:]
	open := strings.Index(rest, "(")
	if open < 0 {
		return Token{}, &ParseError{Reason: "missing '(' before intent"}
	}

	machine := Machine(rest[:open])
	if !validMachine(machine) {
		return Token{}, &ParseError{Reason: fmt.Sprintf("unknown machine code %q", rest[:open])}
	}

	rest = rest[open+1:]
	closing := strings.Index(rest, ")")
	if closing < 0 {
		return Token{}, &ParseError{Reason: "missing ')' after intent"}
	}

	intent := rest[:closing]
	if intent == "" {
		return Token{}, &ParseError{Reason: "empty intent"}
	}
	if strings.Contains(intent, "(") {
		return Token{}, &ParseError{Reason: "intent must not contain parentheses"}
	}

	rest = rest[closing+1:]
	at := strings.Index(rest, "@")
	if at < 0 {
		return Token{}, &ParseError{Reason: "missing '@' before tier"}
	}

	truth := TruthState(rest[:at])
	if !validTruth(truth) {
		return Token{}, &ParseError{Reason: fmt.Sprintf("unknown truth state %q", rest[:at])}
	}

	tierStr := rest[at+1:]
	if len(tierStr) != 1 || tierStr[0] < '1' || tierStr[0] > '3' {
		return Token{}, &ParseError{Reason: fmt.Sprintf("tier %q out of range 1..3", tierStr)}
	}

	return Token{
		Field:   field,
		Machine: machine,
		Intent:  intent,
		Truth:   truth,
		Tier:    int(tierStr[0] - '0'),
	}, nil
}

// Format renders a token as canonical grammar text.
// Parse(Format(t)) == t holds for every valid token.
func Format(t Token) string {
	return t.String()
}
