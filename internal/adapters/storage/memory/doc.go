// Package memory provides in-process implementations of the storage and
// ledger ports. They back the local profile and the application tests; state
// is lost when the process exits.
package memory
