// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	appctx "github.com/jsamuelsen11/milestone-escrow/internal/app/context"
	"github.com/jsamuelsen11/milestone-escrow/internal/domain"
	"github.com/jsamuelsen11/milestone-escrow/internal/domain/escrow"
	"github.com/jsamuelsen11/milestone-escrow/internal/platform/metrics"
	"github.com/jsamuelsen11/milestone-escrow/internal/platform/telemetry"
	"github.com/jsamuelsen11/milestone-escrow/internal/ports"
)

// Compile-time check that EscrowService implements ports.EscrowService.
var _ ports.EscrowService = (*EscrowService)(nil)

// contractKey is the RequestContext cache key for the loaded aggregate.
const contractKey = "contract"

var errNotConstructed = domain.Rejectf(domain.ErrInvalidState, "contract not constructed")

// EscrowSettings carries the deployment parameters of the contract.
type EscrowSettings struct {
	// Self is the contract's own account identity.
	Self escrow.AccountID
	// ByteCost is the price of one byte of stored state.
	ByteCost escrow.Amount
	// Policy applies at construction only; a stored contract keeps its own.
	Policy escrow.Policy
}

// EscrowService implements ports.EscrowService. Each mutator takes the
// operation lock, loads the contract, applies the domain transition to a
// clone, and commits the new state together with its outbox messages.
// A deposit is collected from the caller through the ledger before the
// contract records it. Payouts and events leave the process only through
// the outbox.
type EscrowService struct {
	store    ports.ContractStore
	outbox   ports.Outbox
	ledger   ports.Transferer
	locker   ports.OperationLocker
	settings EscrowSettings
	metrics  *metrics.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

// NewEscrowService creates an EscrowService. m may be nil; a nil logger
// discards output.
func NewEscrowService(
	store ports.ContractStore,
	outbox ports.Outbox,
	ledger ports.Transferer,
	locker ports.OperationLocker,
	settings EscrowSettings,
	m *metrics.Metrics,
	logger *slog.Logger,
) *EscrowService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &EscrowService{
		store:    store,
		outbox:   outbox,
		ledger:   ledger,
		locker:   locker,
		settings: settings,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// Construct creates the contract with the caller as freelancer.
func (s *EscrowService) Construct(ctx context.Context, caller, owner, treasury escrow.AccountID) (*ports.ProjectSummary, error) {
	const op = "Construct"
	ctx, span, start := s.begin(ctx, op)
	defer span.End()

	s.logger.InfoContext(ctx, "constructing contract",
		slog.String("caller", caller.String()),
		slog.String("owner", owner.String()),
		slog.String("treasury", treasury.String()),
	)

	c, err := s.construct(ctx, caller, owner, treasury)
	s.finish(span, op, start, err)
	if err != nil {
		return nil, err
	}
	return s.summary(ctx, c)
}

func (s *EscrowService) construct(ctx context.Context, caller, owner, treasury escrow.AccountID) (*escrow.Contract, error) {
	unlock, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if _, err := s.store.Load(ctx); err == nil {
		return nil, domain.Rejectf(domain.ErrInvalidState, "contract already constructed")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("loading contract: %w", err)
	}

	c, err := escrow.New(s.settings.Self, caller, owner, treasury, s.settings.Policy)
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, c); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.Rejectf(domain.ErrInvalidState, "contract already constructed")
		}
		return nil, fmt.Errorf("creating contract: %w", err)
	}
	if rc := appctx.FromContext(ctx); rc != nil {
		rc.Forget(contractKey)
	}
	return c, nil
}

// Bootstrap constructs the contract on behalf of freelancer unless one
// already exists. Used at startup for single-deployment profiles.
func (s *EscrowService) Bootstrap(ctx context.Context, freelancer, owner, treasury escrow.AccountID) error {
	_, err := s.Construct(ctx, freelancer, owner, treasury)
	if errors.Is(err, domain.ErrInvalidState) {
		s.logger.InfoContext(ctx, "contract already constructed, skipping bootstrap")
		return nil
	}
	return err
}

// SetTreasury replaces the treasury identity.
func (s *EscrowService) SetTreasury(ctx context.Context, caller, treasury escrow.AccountID) error {
	_, _, err := s.mutate(ctx, "SetTreasury", caller, escrow.Zero, func(c *escrow.Contract, env escrow.Env) (escrow.Outcome, error) {
		return c.SetTreasury(env, treasury)
	})
	return err
}

// AddSchedule appends a Planned schedule.
func (s *EscrowService) AddSchedule(
	ctx context.Context,
	caller escrow.AccountID,
	shortCode, description string,
	value escrow.Amount,
) (*escrow.Schedule, error) {
	_, out, err := s.mutate(ctx, "AddSchedule", caller, escrow.Zero, func(c *escrow.Contract, env escrow.Env) (escrow.Outcome, error) {
		return c.AddSchedule(env, shortCode, description, value)
	})
	if err != nil {
		return nil, err
	}
	return out.Schedule, nil
}

// AcceptProject makes the caller the client.
func (s *EscrowService) AcceptProject(ctx context.Context, caller escrow.AccountID) (*ports.ProjectSummary, error) {
	c, _, err := s.mutate(ctx, "AcceptProject", caller, escrow.Zero, (*escrow.Contract).Accept)
	if err != nil {
		return nil, err
	}
	return s.summary(ctx, c)
}

// EndProject closes the project.
func (s *EscrowService) EndProject(ctx context.Context, caller escrow.AccountID) (*ports.ProjectSummary, error) {
	c, _, err := s.mutate(ctx, "EndProject", caller, escrow.Zero, (*escrow.Contract).Close)
	if err != nil {
		return nil, err
	}
	return s.summary(ctx, c)
}

// FundTask funds a Planned schedule with deposit, collected from the
// caller's ledger account before the contract records it.
func (s *EscrowService) FundTask(ctx context.Context, caller escrow.AccountID, id uint64, deposit escrow.Amount) (*escrow.Schedule, error) {
	return s.transition(ctx, "FundTask", caller, id, deposit, (*escrow.Contract).Fund)
}

// StartTask marks a Funded schedule as Started.
func (s *EscrowService) StartTask(ctx context.Context, caller escrow.AccountID, id uint64) (*escrow.Schedule, error) {
	return s.transition(ctx, "StartTask", caller, id, escrow.Zero, (*escrow.Contract).Start)
}

// ApproveTask marks a Started schedule as Approved.
func (s *EscrowService) ApproveTask(ctx context.Context, caller escrow.AccountID, id uint64) (*escrow.Schedule, error) {
	return s.transition(ctx, "ApproveTask", caller, id, escrow.Zero, (*escrow.Contract).Approve)
}

// ReleaseFunds pays out an Approved schedule and sweeps the spendable rest.
func (s *EscrowService) ReleaseFunds(ctx context.Context, caller escrow.AccountID, id uint64) (*escrow.Schedule, error) {
	return s.transition(ctx, "ReleaseFunds", caller, id, escrow.Zero, (*escrow.Contract).Release)
}

func (s *EscrowService) transition(
	ctx context.Context,
	op string,
	caller escrow.AccountID,
	id uint64,
	deposit escrow.Amount,
	apply func(*escrow.Contract, escrow.Env, uint64) (escrow.Outcome, error),
) (*escrow.Schedule, error) {
	_, out, err := s.mutate(ctx, op, caller, deposit, func(c *escrow.Contract, env escrow.Env) (escrow.Outcome, error) {
		return apply(c, env, id)
	}, slog.Uint64("schedule_id", id))
	if err != nil {
		return nil, err
	}
	return out.Schedule, nil
}

// mutate runs one serialized operation. apply receives a clone of the stored
// contract; the clone is persisted only if apply succeeds and every staged
// action commits.
func (s *EscrowService) mutate(
	ctx context.Context,
	op string,
	caller escrow.AccountID,
	deposit escrow.Amount,
	apply func(*escrow.Contract, escrow.Env) (escrow.Outcome, error),
	attrs ...slog.Attr,
) (*escrow.Contract, escrow.Outcome, error) {
	ctx, span, start := s.begin(ctx, op)
	defer span.End()

	logAttrs := append([]slog.Attr{
		slog.String("operation", op),
		slog.String("caller", caller.String()),
	}, attrs...)
	s.logger.LogAttrs(ctx, slog.LevelDebug, "applying operation", logAttrs...)

	next, out, err := s.apply(ctx, op, caller, deposit, apply)
	s.finish(span, op, start, err)
	if err != nil {
		level := slog.LevelWarn
		if !isRejection(err) {
			level = slog.LevelError
		}
		s.logger.LogAttrs(ctx, level, "operation rejected", append(logAttrs, slog.Any("error", err))...)
		return nil, escrow.Outcome{}, err
	}

	s.record(ctx, op, next, out)
	return next, out, nil
}

func (s *EscrowService) apply(
	ctx context.Context,
	op string,
	caller escrow.AccountID,
	deposit escrow.Amount,
	apply func(*escrow.Contract, escrow.Env) (escrow.Outcome, error),
) (*escrow.Contract, escrow.Outcome, error) {
	unlock, err := s.lock(ctx)
	if err != nil {
		return nil, escrow.Outcome{}, err
	}
	defer unlock()

	// Reads memoized earlier in the request predate the lock.
	rc := requestContext(ctx)
	rc.Forget(contractKey)
	current, err := appctx.GetOrFetch(ctx, rc, contractKey, s.load)
	if err != nil {
		return nil, escrow.Outcome{}, err
	}
	env, err := s.env(ctx, caller, deposit)
	if err != nil {
		return nil, escrow.Outcome{}, err
	}

	next := current.Clone()
	out, err := apply(next, env)
	if err != nil {
		return nil, escrow.Outcome{}, err
	}

	msgs, err := s.messages(out)
	if err != nil {
		return nil, escrow.Outcome{}, err
	}

	unit := rc.Begin()
	if !deposit.IsZero() {
		collect := &collectDepositAction{
			ledger: s.ledger,
			from:   caller,
			self:   s.settings.Self,
			amount: deposit,
		}
		if out.Schedule != nil {
			collect.scheduleID = out.Schedule.ID
		}
		if err := unit.Add(collect); err != nil {
			return nil, escrow.Outcome{}, err
		}
	}
	if err := unit.Stage(contractKey, next, &saveContractAction{
		store:  s.store,
		outbox: s.outbox,
		next:   next,
		prev:   current,
		msgs:   msgs,
		what:   op,
	}); err != nil {
		return nil, escrow.Outcome{}, err
	}

	if err := unit.Commit(ctx); err != nil {
		return nil, escrow.Outcome{}, fmt.Errorf("committing %s: %w", op, err)
	}
	return next, out, nil
}

// record emits the committed event to the log and updates business metrics.
func (s *EscrowService) record(ctx context.Context, op string, c *escrow.Contract, out escrow.Outcome) {
	if !out.Event.IsZero() {
		body, err := out.Event.JSON()
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to encode event",
				slog.String("operation", op),
				slog.Any("error", err),
			)
		} else {
			s.logger.InfoContext(ctx, "escrow event",
				slog.String("operation", op),
				slog.String("event", string(body)),
			)
		}
		trace.SpanFromContext(ctx).SetAttributes(telemetry.AttrEvent.String(string(out.Event.Name)))
		s.metrics.IncEvent(string(out.Event.Name))
	}
	for _, t := range out.Transfers {
		s.metrics.IncTransfer(string(t.Kind))
	}
	if held, err := strconv.ParseFloat(c.Held.String(), 64); err == nil {
		s.metrics.SetHeldBalance(held)
	}
}

// GetScheduleCount returns the number of schedules ever created.
func (s *EscrowService) GetScheduleCount(ctx context.Context) (uint64, error) {
	c, err := s.view(ctx)
	if err != nil {
		return 0, err
	}
	return c.ScheduleCount, nil
}

// GetSchedule returns the schedule with the given id.
func (s *EscrowService) GetSchedule(ctx context.Context, id uint64) (*escrow.Schedule, error) {
	c, err := s.view(ctx)
	if err != nil {
		return nil, err
	}
	sched, err := c.Schedule(id)
	if err != nil {
		return nil, err
	}
	return &sched, nil
}

// ListSchedules returns all schedules in creation order.
func (s *EscrowService) ListSchedules(ctx context.Context) ([]escrow.Schedule, error) {
	c, err := s.view(ctx)
	if err != nil {
		return nil, err
	}
	return c.ListSchedules(), nil
}

// GetFreelancer returns the freelancer identity.
func (s *EscrowService) GetFreelancer(ctx context.Context) (escrow.AccountID, error) {
	c, err := s.view(ctx)
	if err != nil {
		return "", err
	}
	return c.Freelancer, nil
}

// GetClient returns the client identity. Before acceptance this is the
// contract's own identity.
func (s *EscrowService) GetClient(ctx context.Context) (escrow.AccountID, error) {
	c, err := s.view(ctx)
	if err != nil {
		return "", err
	}
	return c.Client, nil
}

// GetProjectState returns the project lifecycle state.
func (s *EscrowService) GetProjectState(ctx context.Context) (escrow.ProjectState, error) {
	c, err := s.view(ctx)
	if err != nil {
		return "", err
	}
	return c.State, nil
}

// GetSpendableBalance returns the held balance less the storage reserve.
func (s *EscrowService) GetSpendableBalance(ctx context.Context) (escrow.Amount, error) {
	c, err := s.view(ctx)
	if err != nil {
		return escrow.Zero, err
	}
	env, err := s.env(ctx, "", escrow.Zero)
	if err != nil {
		return escrow.Zero, err
	}
	return c.Spendable(env), nil
}

// GetProject returns the contract summary.
func (s *EscrowService) GetProject(ctx context.Context) (*ports.ProjectSummary, error) {
	c, err := s.view(ctx)
	if err != nil {
		return nil, err
	}
	return s.summary(ctx, c)
}

func (s *EscrowService) summary(ctx context.Context, c *escrow.Contract) (*ports.ProjectSummary, error) {
	env, err := s.env(ctx, "", escrow.Zero)
	if err != nil {
		return nil, err
	}
	return &ports.ProjectSummary{
		Owner:            c.Owner,
		Treasury:         c.Treasury,
		Client:           c.Client,
		Freelancer:       c.Freelancer,
		State:            c.State,
		ScheduleCount:    c.ScheduleCount,
		ClientFeeBps:     c.Policy.ClientFeeBps,
		FreelancerFeeBps: c.Policy.FreelancerFeeBps,
		HeldBalance:      c.Held,
		SpendableBalance: c.Spendable(env),
	}, nil
}

// view loads the contract for a read, memoized on the request's
// RequestContext when the appctx middleware installed one.
func (s *EscrowService) view(ctx context.Context) (*escrow.Contract, error) {
	return appctx.GetOrFetch(ctx, appctx.FromContext(ctx), contractKey, s.load)
}

// requestContext returns the request's RequestContext, or a fresh one for
// callers outside HTTP.
func requestContext(ctx context.Context) *appctx.RequestContext {
	if rc := appctx.FromContext(ctx); rc != nil {
		return rc
	}
	return appctx.New(ctx)
}

func (s *EscrowService) load(ctx context.Context) (*escrow.Contract, error) {
	c, err := s.store.Load(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errNotConstructed
	}
	if err != nil {
		return nil, fmt.Errorf("loading contract: %w", err)
	}
	return c, nil
}

func (s *EscrowService) env(ctx context.Context, caller escrow.AccountID, deposit escrow.Amount) (escrow.Env, error) {
	usage, err := s.store.Usage(ctx)
	if err != nil {
		return escrow.Env{}, fmt.Errorf("reading storage usage: %w", err)
	}
	return escrow.Env{
		Caller:       caller,
		Deposit:      deposit,
		StorageBytes: usage,
		ByteCost:     s.settings.ByteCost,
	}, nil
}

func (s *EscrowService) lock(ctx context.Context) (func(), error) {
	unlock, err := s.locker.Lock(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring operation lock: %w", err)
	}
	return unlock, nil
}

func (s *EscrowService) begin(ctx context.Context, op string) (context.Context, trace.Span, time.Time) {
	ctx, span := telemetry.Tracer().Start(ctx, "escrow."+op,
		trace.WithAttributes(telemetry.AttrOperation.String(op)))
	return ctx, span, s.now()
}

func (s *EscrowService) finish(span trace.Span, op string, start time.Time, err error) {
	result := "ok"
	switch {
	case err == nil:
	case isRejection(err):
		result = "rejected"
		span.RecordError(err)
	default:
		result = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.metrics.ObserveOperation(op, result, s.now().Sub(start))
}

// isRejection reports whether err is a business rejection rather than an
// infrastructure failure.
func isRejection(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized) ||
		errors.Is(err, domain.ErrInvalidState) ||
		errors.Is(err, domain.ErrInsufficientFunds) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrValidation)
}
