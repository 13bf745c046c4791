// Package escrow implements the milestone escrow aggregate: the project and
// schedule state machines, the authorization guard, fee arithmetic, and the
// storage-reserve accounting that protects the escrow's operating balance.
//
// Everything here is pure. Host facts (caller, attached deposit, storage
// figures) arrive through Env; effects leave through Outcome.
package escrow
