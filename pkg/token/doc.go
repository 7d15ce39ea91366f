// Package token defines the operator token model and its textual grammar.
//
// A token is the tuple (Field, Machine, Intent, TruthState, Tier) rendered as
// Field:Machine(Intent)TruthState@Tier. The six canonical operator symbols
// (Boundary, Fusion, Amplify, Decohere, Group, Separate) drive the legality
// rules in internal/rules; any other intent label is free-form and carries no
// structural meaning.
package token
