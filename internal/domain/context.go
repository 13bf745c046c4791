package domain

import "context"

// Action is one write step of an escrow operation's commit. Rollback undoes
// a successful Execute and is called only after Execute returned nil.
type Action interface {
	Execute(ctx context.Context) error
	Rollback(ctx context.Context) error

	// Description names the step in logs, e.g. "save contract after FundTask".
	Description() string
}

// WriteStager collects the writes of one operation. Stage also makes entity
// the value later reads of key observe once the writes commit.
type WriteStager interface {
	Stage(key string, entity any, action Action) error
	Add(action Action) error
}
