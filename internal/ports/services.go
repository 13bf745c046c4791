package ports

import (
	"context"

	"github.com/jsamuelsen11/milestone-escrow/internal/domain/escrow"
)

// EscrowService defines the service port for the escrow controller.
// Implemented by the application layer; called by inbound adapters (handlers).
// Every mutator is a serialized all-or-nothing unit: a returned error means no
// state changed and nothing was queued for dispatch.
type EscrowService interface {
	// Construct creates the contract. The caller becomes the freelancer.
	// Returns domain.ErrInvalidState if a contract already exists.
	Construct(ctx context.Context, caller, owner, treasury escrow.AccountID) (*ProjectSummary, error)

	// SetTreasury replaces the treasury identity. Owner only.
	SetTreasury(ctx context.Context, caller, treasury escrow.AccountID) error

	// AddSchedule appends a Planned schedule. Freelancer only, project Initiated.
	AddSchedule(ctx context.Context, caller escrow.AccountID, shortCode, description string, value escrow.Amount) (*escrow.Schedule, error)

	// AcceptProject makes the caller the client.
	AcceptProject(ctx context.Context, caller escrow.AccountID) (*ProjectSummary, error)

	// EndProject closes the project once only dust is spendable.
	EndProject(ctx context.Context, caller escrow.AccountID) (*ProjectSummary, error)

	// FundTask funds a Planned schedule with the attached deposit.
	FundTask(ctx context.Context, caller escrow.AccountID, id uint64, deposit escrow.Amount) (*escrow.Schedule, error)

	// StartTask marks a Funded schedule as Started.
	StartTask(ctx context.Context, caller escrow.AccountID, id uint64) (*escrow.Schedule, error)

	// ApproveTask marks a Started schedule as Approved.
	ApproveTask(ctx context.Context, caller escrow.AccountID, id uint64) (*escrow.Schedule, error)

	// ReleaseFunds pays out an Approved schedule and sweeps the treasury share.
	ReleaseFunds(ctx context.Context, caller escrow.AccountID, id uint64) (*escrow.Schedule, error)

	// GetScheduleCount returns the number of schedules ever created.
	GetScheduleCount(ctx context.Context) (uint64, error)

	// GetSchedule returns domain.ErrNotFound for unknown ids.
	GetSchedule(ctx context.Context, id uint64) (*escrow.Schedule, error)

	// ListSchedules returns all schedules in creation order.
	ListSchedules(ctx context.Context) ([]escrow.Schedule, error)

	GetFreelancer(ctx context.Context) (escrow.AccountID, error)
	GetClient(ctx context.Context) (escrow.AccountID, error)
	GetProjectState(ctx context.Context) (escrow.ProjectState, error)
	GetSpendableBalance(ctx context.Context) (escrow.Amount, error)

	// GetProject returns a summary of the whole contract.
	GetProject(ctx context.Context) (*ProjectSummary, error)
}

// ProjectSummary is the read view of the contract without its schedules.
type ProjectSummary struct {
	Owner            escrow.AccountID
	Treasury         escrow.AccountID
	Client           escrow.AccountID
	Freelancer       escrow.AccountID
	State            escrow.ProjectState
	ScheduleCount    uint64
	ClientFeeBps     uint16
	FreelancerFeeBps uint16
	HeldBalance      escrow.Amount
	SpendableBalance escrow.Amount
}
