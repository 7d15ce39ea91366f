// Package domain holds the shared value types of the espalier engine: the
// scalar state vector, the five-phase cycle, the append-only operator
// history, decisions, sessions, and the error taxonomy shared by the
// validator and the pipeline.
package domain
