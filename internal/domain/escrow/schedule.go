package escrow

import (
	"fmt"
	"strings"

	"github.com/jsamuelsen11/milestone-escrow/internal/domain"
)

// ScheduleState is the lifecycle position of a single milestone.
type ScheduleState string

const (
	SchedulePlanned  ScheduleState = "planned"
	ScheduleFunded   ScheduleState = "funded"
	ScheduleStarted  ScheduleState = "started"
	ScheduleApproved ScheduleState = "approved"
	ScheduleReleased ScheduleState = "released"
)

// IsValid returns true if the state is one of the defined constants.
func (s ScheduleState) IsValid() bool {
	switch s {
	case SchedulePlanned, ScheduleFunded, ScheduleStarted, ScheduleApproved, ScheduleReleased:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s ScheduleState) String() string {
	return string(s)
}

// Next returns the only state s may advance to. Released is terminal.
func (s ScheduleState) Next() (ScheduleState, bool) {
	switch s {
	case SchedulePlanned:
		return ScheduleFunded, true
	case ScheduleFunded:
		return ScheduleStarted, true
	case ScheduleStarted:
		return ScheduleApproved, true
	case ScheduleApproved:
		return ScheduleReleased, true
	case ScheduleReleased:
		return "", false
	default:
		return "", false
	}
}

// Schedule is one milestone. Value is fixed at creation; only State moves.
type Schedule struct {
	ID          uint64        `json:"id"`
	ShortCode   string        `json:"short_code"`
	Description string        `json:"description"`
	Value       Amount        `json:"value"`
	State       ScheduleState `json:"state"`
}

// Validate checks the fields a new schedule is created from.
func (s *Schedule) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(s.ShortCode) == "" {
		fields["short_code"] = domain.MsgRequired
	}
	if !s.State.IsValid() {
		fields["state"] = fmt.Sprintf("invalid: %q", s.State)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// advance moves the schedule from want to its successor, failing with
// domain.ErrInvalidState when the schedule is anywhere else.
func (s *Schedule) advance(want ScheduleState) error {
	if s.State != want {
		return domain.Rejectf(domain.ErrInvalidState, "schedule %d is %s, want %s", s.ID, s.State, want)
	}
	next, ok := want.Next()
	if !ok {
		return domain.Rejectf(domain.ErrInvalidState, "schedule %d is %s", s.ID, s.State)
	}
	s.State = next
	return nil
}
