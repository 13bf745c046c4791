// Package middleware holds the inbound HTTP pipeline. The server installs it
// in this order:
//
//	Recovery → RequestIDs → AppContext → Tracing → AccessLog → Timeout
//
// Mutating routes add Authenticate and then Idempotency.
package middleware
