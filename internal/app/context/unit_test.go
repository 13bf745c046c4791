package appctx_test

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"

	appctx "github.com/jsamuelsen11/milestone-escrow/internal/app/context"
)

// recorder collects Execute and Rollback calls across actions in order.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, s)
}

func (r *recorder) got() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

type fakeAction struct {
	name        string
	rec         *recorder
	execErr     error
	rollbackErr error
	sawCanceled bool
}

func (a *fakeAction) Execute(context.Context) error {
	a.rec.add("exec:" + a.name)
	return a.execErr
}

func (a *fakeAction) Rollback(ctx context.Context) error {
	a.sawCanceled = ctx.Err() != nil
	a.rec.add("undo:" + a.name)
	return a.rollbackErr
}

func (a *fakeAction) Description() string { return a.name }

func TestUnit_CommitRunsInOrderAndPublishes(t *testing.T) {
	t.Parallel()

	rc := appctx.New(context.Background())
	rec := &recorder{}
	unit := rc.Begin()

	if err := unit.Stage("contract", "next", &fakeAction{name: "save", rec: rec}); err != nil {
		t.Fatalf("Stage() error = %v", err)
	}
	if err := unit.Add(&fakeAction{name: "enqueue", rec: rec}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if unit.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", unit.Len())
	}

	if err := unit.Commit(context.Background()); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	if want := []string{"exec:save", "exec:enqueue"}; !slices.Equal(rec.got(), want) {
		t.Errorf("calls = %v, want %v", rec.got(), want)
	}

	got, err := appctx.GetOrFetch(context.Background(), rc, "contract", func(context.Context) (string, error) {
		t.Error("fetch called, want published value")
		return "", nil
	})
	if err != nil || got != "next" {
		t.Errorf("GetOrFetch() after commit = %q, %v; want next, nil", got, err)
	}
}

func TestUnit_FailureRollsBackCompletedSteps(t *testing.T) {
	t.Parallel()

	rc := appctx.New(context.Background())
	rec := &recorder{}
	errBoom := errors.New("boom")
	unit := rc.Begin()

	_ = unit.Stage("contract", "next", &fakeAction{name: "a", rec: rec})
	_ = unit.Add(&fakeAction{name: "b", rec: rec})
	_ = unit.Add(&fakeAction{name: "c", rec: rec, execErr: errBoom})
	_ = unit.Add(&fakeAction{name: "d", rec: rec})

	err := unit.Commit(context.Background())
	if !errors.Is(err, errBoom) {
		t.Fatalf("Commit() error = %v, want %v", err, errBoom)
	}

	var cerr *appctx.CommitError
	if !errors.As(err, &cerr) {
		t.Fatalf("Commit() error type = %T, want *CommitError", err)
	}
	if cerr.Step != 3 || cerr.Action != "c" || !cerr.Consistent() {
		t.Errorf("CommitError = %+v, want step 3 action c consistent", cerr)
	}

	want := []string{"exec:a", "exec:b", "exec:c", "undo:b", "undo:a"}
	if !slices.Equal(rec.got(), want) {
		t.Errorf("calls = %v, want %v", rec.got(), want)
	}

	// The staged value must not leak into the memo.
	got, _ := appctx.GetOrFetch(context.Background(), rc, "contract", func(context.Context) (string, error) {
		return "stored", nil
	})
	if got != "stored" {
		t.Errorf("GetOrFetch() after failed commit = %q, want stored", got)
	}
}

func TestUnit_RollbackFailuresAreReported(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	unit := appctx.New(context.Background()).Begin()

	_ = unit.Add(&fakeAction{name: "a", rec: rec, rollbackErr: errors.New("disk gone")})
	_ = unit.Add(&fakeAction{name: "b", rec: rec, execErr: errors.New("boom")})

	var cerr *appctx.CommitError
	if err := unit.Commit(context.Background()); !errors.As(err, &cerr) {
		t.Fatalf("Commit() error = %v, want *CommitError", err)
	}
	if cerr.Consistent() || len(cerr.Compensation) != 1 {
		t.Errorf("Compensation = %v, want one failure", cerr.Compensation)
	}
}

func TestUnit_RollbackIgnoresCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	rec := &recorder{}
	first := &fakeAction{name: "a", rec: rec}
	unit := appctx.New(ctx).Begin()
	_ = unit.Add(first)
	_ = unit.Add(&actionFunc{exec: func() error {
		cancel()
		return context.Canceled
	}})

	if err := unit.Commit(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Commit() error = %v, want context.Canceled", err)
	}
	if first.sawCanceled {
		t.Error("rollback ran on a canceled context")
	}
}

func TestUnit_ClosedAfterCommit(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	unit := appctx.New(context.Background()).Begin()
	if err := unit.Commit(context.Background()); err != nil {
		t.Fatalf("Commit() on empty unit error = %v", err)
	}

	tests := []struct {
		name string
		call func() error
	}{
		{name: "Commit", call: func() error { return unit.Commit(context.Background()) }},
		{name: "Add", call: func() error { return unit.Add(&fakeAction{name: "x", rec: rec}) }},
		{name: "Stage", call: func() error { return unit.Stage("k", 1, &fakeAction{name: "x", rec: rec}) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := tt.call(); !errors.Is(err, appctx.ErrUnitClosed) {
				t.Errorf("%s() error = %v, want ErrUnitClosed", tt.name, err)
			}
		})
	}
}

func TestUnit_NilAction(t *testing.T) {
	t.Parallel()

	unit := appctx.New(context.Background()).Begin()
	if err := unit.Add(nil); !errors.Is(err, appctx.ErrNilAction) {
		t.Errorf("Add(nil) error = %v, want ErrNilAction", err)
	}
	if err := unit.Stage("k", 1, nil); !errors.Is(err, appctx.ErrNilAction) {
		t.Errorf("Stage(nil) error = %v, want ErrNilAction", err)
	}
}

type actionFunc struct {
	exec func() error
}

func (a *actionFunc) Execute(context.Context) error  { return a.exec() }
func (a *actionFunc) Rollback(context.Context) error { return nil }
func (a *actionFunc) Description() string            { return "func" }
