package appctx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jsamuelsen11/milestone-escrow/internal/domain"
	"github.com/jsamuelsen11/milestone-escrow/internal/platform/logging"
)

// Compile-time check that Unit implements domain.WriteStager.
var _ domain.WriteStager = (*Unit)(nil)

var (
	// ErrUnitClosed is returned when a Unit is used after Commit.
	ErrUnitClosed = errors.New("appctx: unit already committed")
	// ErrNilAction is returned when Stage or Add receives a nil action.
	ErrNilAction = errors.New("appctx: nil action")
)

// CommitError describes a failed Commit. Err is the failing step's error;
// Compensation lists rollback failures, which leave the store inconsistent
// and need operator attention.
type CommitError struct {
	Step         int
	Action       string
	Err          error
	Compensation []error
}

func (e *CommitError) Error() string {
	msg := fmt.Sprintf("step %d (%s): %v", e.Step, e.Action, e.Err)
	if len(e.Compensation) > 0 {
		msg += fmt.Sprintf("; %d rollback failures", len(e.Compensation))
	}
	return msg
}

func (e *CommitError) Unwrap() error { return e.Err }

// Consistent reports whether every completed step was rolled back.
func (e *CommitError) Consistent() bool { return len(e.Compensation) == 0 }

// Unit is the write set of one operation. Stage and Add are safe for
// concurrent use; Commit runs at most once.
type Unit struct {
	rc  *RequestContext
	seq int

	mu     sync.Mutex
	steps  []domain.Action
	staged map[string]any
	closed bool
}

// Stage queues action and records entity as the post-commit value of key.
func (u *Unit) Stage(key string, entity any, action domain.Action) error {
	return u.push(action, func() { u.staged[key] = entity })
}

// Add queues action with no memo effect.
func (u *Unit) Add(action domain.Action) error {
	return u.push(action, nil)
}

func (u *Unit) push(action domain.Action, also func()) error {
	if action == nil {
		return ErrNilAction
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.closed {
		return ErrUnitClosed
	}
	u.steps = append(u.steps, action)
	if also != nil {
		also()
	}
	return nil
}

// Len returns the number of queued steps.
func (u *Unit) Len() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.steps)
}

// Commit executes the steps in order. On failure the completed steps are
// rolled back newest first on a context that ignores ctx's cancellation,
// and a *CommitError is returned. On success the staged entities replace
// their memo entries.
func (u *Unit) Commit(ctx context.Context) error {
	u.mu.Lock()
	if u.closed {
		u.mu.Unlock()
		return ErrUnitClosed
	}
	u.closed = true
	steps, staged := u.steps, u.staged
	u.mu.Unlock()

	logger := logging.FromContext(ctx).With(slog.Int("unit", u.seq))

	for i, step := range steps {
		logger.DebugContext(ctx, "commit step",
			slog.Int("step", i+1),
			slog.Int("total", len(steps)),
			slog.String("action", step.Description()),
		)
		if err := step.Execute(ctx); err != nil {
			cerr := &CommitError{Step: i + 1, Action: step.Description(), Err: err}
			cerr.Compensation = compensate(context.WithoutCancel(ctx), steps[:i], logger)
			logger.ErrorContext(ctx, "commit failed",
				slog.Int("step", i+1),
				slog.String("action", step.Description()),
				slog.Bool("consistent", cerr.Consistent()),
				slog.Any("error", err),
			)
			return cerr
		}
	}

	u.rc.publish(staged)
	return nil
}

func compensate(ctx context.Context, done []domain.Action, logger *slog.Logger) []error {
	var errs []error
	for i := len(done) - 1; i >= 0; i-- {
		if err := done[i].Rollback(ctx); err != nil {
			logger.ErrorContext(ctx, "rollback failed",
				slog.Int("step", i+1),
				slog.String("action", done[i].Description()),
				slog.Any("error", err),
			)
			errs = append(errs, fmt.Errorf("rolling back %s: %w", done[i].Description(), err))
		}
	}
	return errs
}
