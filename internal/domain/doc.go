// Package domain contains shared domain types used across entity sub-packages.
// The escrow aggregate and its state machines live in domain/escrow. This
// root package holds sentinel errors, validation types, and domain-level
// interfaces (Action, WriteStager) that are shared across layers.
package domain
