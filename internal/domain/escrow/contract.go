package escrow

import (
	"fmt"
	"maps"
	"slices"

	"github.com/jsamuelsen11/milestone-escrow/internal/domain"
)

// Policy holds the fee rates and close threshold fixed at construction.
type Policy struct {
	ClientFeeBps     uint16
	FreelancerFeeBps uint16
	MaxDust          Amount
}

// DefaultPolicy returns the construction-time defaults.
func DefaultPolicy() Policy {
	return Policy{
		ClientFeeBps:     DefaultClientFeeBps,
		FreelancerFeeBps: DefaultFreelancerFeeBps,
		MaxDust:          DefaultMaxDust,
	}
}

// TransferKind tells a payout to the freelancer from a sweep to the treasury.
type TransferKind string

const (
	TransferPayout TransferKind = "payout"
	TransferSweep  TransferKind = "sweep"
)

// Transfer is an outgoing movement of value requested by a committed call.
// Dispatch happens after commit and never feeds back into contract state.
type Transfer struct {
	Kind       TransferKind
	To         AccountID
	Amount     Amount
	ScheduleID uint64
}

// Outcome is what a successful mutator produced besides the new state.
type Outcome struct {
	Event     Event
	Transfers []Transfer
	// Schedule is a snapshot of the schedule the call touched, if any.
	Schedule *Schedule
}

// Contract is the single escrow aggregate. Mutators check every precondition
// before touching the receiver, so a returned error always means the contract
// is unchanged. Check order: authorization, project state, schedule lookup,
// schedule state, funds.
type Contract struct {
	Self          AccountID
	Owner         AccountID
	Treasury      AccountID
	Client        AccountID
	Freelancer    AccountID
	State         ProjectState
	ScheduleCount uint64
	Schedules     map[uint64]Schedule
	Policy        Policy
	Held          Amount
}

// New constructs a contract in the Initiated state. The deployer becomes the
// freelancer; the client slot holds the contract's own identity until a
// counterparty accepts.
func New(self, deployer, owner, treasury AccountID, policy Policy) (*Contract, error) {
	c := &Contract{
		Self:       self,
		Owner:      owner,
		Treasury:   treasury,
		Client:     self,
		Freelancer: deployer,
		State:      ProjectInitiated,
		Schedules:  make(map[uint64]Schedule),
		Policy:     policy,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks structural rules. Stores call it on every load.
func (c *Contract) Validate() error {
	fields := make(map[string]string)

	for name, id := range map[string]AccountID{
		"self":       c.Self,
		"owner":      c.Owner,
		"treasury":   c.Treasury,
		"client":     c.Client,
		"freelancer": c.Freelancer,
	} {
		if id.IsZero() {
			fields[name] = domain.MsgRequired
		}
	}
	if !c.State.IsValid() {
		fields["project_state"] = fmt.Sprintf("invalid: %q", c.State)
	}
	if c.State == ProjectAccepted && c.Client == c.Self {
		fields["client"] = "must differ from the contract identity once accepted"
	}
	if c.Policy.ClientFeeBps > BpsDenominator {
		fields["client_fee_bps"] = fmt.Sprintf("must be 0-%d, got %d", BpsDenominator, c.Policy.ClientFeeBps)
	}
	if c.Policy.FreelancerFeeBps > BpsDenominator {
		fields["freelancer_fee_bps"] = fmt.Sprintf("must be 0-%d, got %d", BpsDenominator, c.Policy.FreelancerFeeBps)
	}
	if uint64(len(c.Schedules)) > c.ScheduleCount {
		fields["schedules"] = fmt.Sprintf("%d records exceed schedule count %d", len(c.Schedules), c.ScheduleCount)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Clone returns a deep copy. Callers apply mutators to a clone and keep the
// original as the rollback image.
func (c *Contract) Clone() *Contract {
	out := *c
	out.Schedules = maps.Clone(c.Schedules)
	if out.Schedules == nil {
		out.Schedules = make(map[uint64]Schedule)
	}
	return &out
}

// SetTreasury replaces the fee recipient. Owner only; emits no event.
func (c *Contract) SetTreasury(env Env, treasury AccountID) (Outcome, error) {
	if err := c.Authorize(env.Caller, RoleOwner); err != nil {
		return Outcome{}, err
	}
	if treasury.IsZero() {
		return Outcome{}, &domain.ValidationError{Fields: map[string]string{"treasury": domain.MsgRequired}}
	}
	c.Treasury = treasury
	return Outcome{}, nil
}

// AddSchedule appends a Planned milestone with the next sequential id.
func (c *Contract) AddSchedule(env Env, shortCode, description string, value Amount) (Outcome, error) {
	if err := c.Authorize(env.Caller, RoleFreelancer); err != nil {
		return Outcome{}, err
	}
	if err := c.requireProject(ProjectInitiated); err != nil {
		return Outcome{}, err
	}

	s := Schedule{
		ID:          c.ScheduleCount + 1,
		ShortCode:   shortCode,
		Description: description,
		Value:       value,
		State:       SchedulePlanned,
	}
	if err := s.Validate(); err != nil {
		return Outcome{}, err
	}

	c.ScheduleCount = s.ID
	c.Schedules[s.ID] = s
	return Outcome{
		Event:    Event{Name: EventAddSchedule, Params: map[string]any{"shortcode": shortCode}},
		Schedule: &s,
	}, nil
}

// Accept makes the caller the client and moves the project to Accepted.
// Any identity other than the contract itself may accept.
func (c *Contract) Accept(env Env) (Outcome, error) {
	if env.Caller.IsZero() || env.Caller == c.Self {
		return Outcome{}, domain.Rejectf(domain.ErrUnauthorized, "contract identity cannot be the client")
	}
	if err := c.requireProject(ProjectInitiated); err != nil {
		return Outcome{}, err
	}

	c.Client = env.Caller
	c.State = ProjectAccepted
	return Outcome{Event: partiesEvent(EventProjectAccept, c)}, nil
}

// Close ends the project once no more than dust is spendable. It has no
// project-state precondition and may be repeated.
func (c *Contract) Close(env Env) (Outcome, error) {
	if err := c.Authorize(env.Caller, RoleClient|RoleFreelancer); err != nil {
		return Outcome{}, err
	}
	if spendable := c.Spendable(env); spendable.Cmp(c.Policy.MaxDust) > 0 {
		return Outcome{}, domain.Rejectf(domain.ErrInsufficientFunds,
			"spendable balance %s exceeds close threshold %s", spendable, c.Policy.MaxDust)
	}

	c.State = ProjectClosed
	return Outcome{Event: partiesEvent(EventProjectEnd, c)}, nil
}

// Fund moves a Planned schedule to Funded when the attached deposit covers
// the value after the client fee. The deposit is credited to the held balance.
func (c *Contract) Fund(env Env, id uint64) (Outcome, error) {
	s, err := c.prepare(env, id, RoleClient, SchedulePlanned)
	if err != nil {
		return Outcome{}, err
	}

	net, err := NetFunding(env.Deposit, c.Policy.ClientFeeBps)
	if err != nil {
		return Outcome{}, err
	}
	if net.Cmp(s.Value) < 0 {
		return Outcome{}, domain.Rejectf(domain.ErrInsufficientFunds,
			"deposit %s nets %s, schedule %d needs %s", env.Deposit, net, id, s.Value)
	}
	held, err := c.Held.Add(env.Deposit)
	if err != nil {
		return Outcome{}, err
	}

	if err := s.advance(SchedulePlanned); err != nil {
		return Outcome{}, err
	}
	c.Held = held
	c.Schedules[id] = s
	return Outcome{Event: scheduleEvent(EventTaskFunded, id), Schedule: &s}, nil
}

// Start moves a Funded schedule to Started.
func (c *Contract) Start(env Env, id uint64) (Outcome, error) {
	return c.step(env, id, RoleFreelancer, ScheduleFunded, EventTaskStarted)
}

// Approve moves a Started schedule to Approved.
func (c *Contract) Approve(env Env, id uint64) (Outcome, error) {
	return c.step(env, id, RoleClient, ScheduleStarted, EventTaskApproved)
}

// Release pays the freelancer the net value of an Approved schedule, sweeps
// what is then spendable to the treasury, and marks the schedule Released.
// The sweep is not limited to this schedule's fee.
func (c *Contract) Release(env Env, id uint64) (Outcome, error) {
	s, err := c.prepare(env, id, RoleFreelancer, ScheduleApproved)
	if err != nil {
		return Outcome{}, err
	}

	payout, err := NetPayout(s.Value, c.Policy.FreelancerFeeBps)
	if err != nil {
		return Outcome{}, err
	}
	afterPayout := c.Held.SaturatingSub(payout)
	sweep := SpendableBalance(afterPayout, env)

	if err := s.advance(ScheduleApproved); err != nil {
		return Outcome{}, err
	}
	c.Held = afterPayout.SaturatingSub(sweep)
	c.Schedules[id] = s

	transfers := []Transfer{{Kind: TransferPayout, To: c.Freelancer, Amount: payout, ScheduleID: id}}
	if !sweep.IsZero() {
		transfers = append(transfers, Transfer{Kind: TransferSweep, To: c.Treasury, Amount: sweep, ScheduleID: id})
	}
	return Outcome{Event: scheduleEvent(EventTaskReleased, id), Transfers: transfers, Schedule: &s}, nil
}

// Schedule returns the schedule with the given id.
func (c *Contract) Schedule(id uint64) (Schedule, error) {
	if id == 0 || id > c.ScheduleCount {
		return Schedule{}, domain.Rejectf(domain.ErrNotFound, "schedule %d", id)
	}
	s, ok := c.Schedules[id]
	if !ok {
		return Schedule{}, domain.Rejectf(domain.ErrNotFound, "schedule %d", id)
	}
	return s, nil
}

// ListSchedules returns every schedule in creation order.
func (c *Contract) ListSchedules() []Schedule {
	ids := slices.Sorted(maps.Keys(c.Schedules))
	out := make([]Schedule, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.Schedules[id])
	}
	return out
}

// Spendable is the held balance less the storage reserve described by env.
func (c *Contract) Spendable(env Env) Amount {
	return SpendableBalance(c.Held, env)
}

func (c *Contract) step(env Env, id uint64, role Role, from ScheduleState, name EventName) (Outcome, error) {
	s, err := c.prepare(env, id, role, from)
	if err != nil {
		return Outcome{}, err
	}
	if err := s.advance(from); err != nil {
		return Outcome{}, err
	}
	c.Schedules[id] = s
	return Outcome{Event: scheduleEvent(name, id), Schedule: &s}, nil
}

// prepare runs the shared checks for schedule transitions and returns a copy
// of the schedule for the caller to advance.
func (c *Contract) prepare(env Env, id uint64, role Role, from ScheduleState) (Schedule, error) {
	if err := c.Authorize(env.Caller, role); err != nil {
		return Schedule{}, err
	}
	if err := c.requireProject(ProjectAccepted); err != nil {
		return Schedule{}, err
	}
	s, err := c.Schedule(id)
	if err != nil {
		return Schedule{}, err
	}
	if s.State != from {
		return Schedule{}, domain.Rejectf(domain.ErrInvalidState, "schedule %d is %s, want %s", id, s.State, from)
	}
	return s, nil
}

func (c *Contract) requireProject(want ProjectState) error {
	if c.State != want {
		return domain.Rejectf(domain.ErrInvalidState, "project is %s, want %s", c.State, want)
	}
	return nil
}
