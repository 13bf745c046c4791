package escrow

import (
	"encoding/json"
	"fmt"
)

// snapshot is the persisted form of a Contract. Its encoded length is what
// stores report as storage usage, so field names stay short and stable.
type snapshot struct {
	Self             AccountID    `json:"self"`
	Owner            AccountID    `json:"owner"`
	Treasury         AccountID    `json:"treasury"`
	Client           AccountID    `json:"client"`
	Freelancer       AccountID    `json:"freelancer"`
	State            ProjectState `json:"state"`
	ScheduleCount    uint64       `json:"schedule_count"`
	Schedules        []Schedule   `json:"schedules"`
	ClientFeeBps     uint16       `json:"client_fee_bps"`
	FreelancerFeeBps uint16       `json:"freelancer_fee_bps"`
	MaxDust          Amount       `json:"max_dust"`
	Held             Amount       `json:"held"`
}

// MarshalJSON encodes the contract with schedules in id order.
func (c *Contract) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshot{
		Self:             c.Self,
		Owner:            c.Owner,
		Treasury:         c.Treasury,
		Client:           c.Client,
		Freelancer:       c.Freelancer,
		State:            c.State,
		ScheduleCount:    c.ScheduleCount,
		Schedules:        c.ListSchedules(),
		ClientFeeBps:     c.Policy.ClientFeeBps,
		FreelancerFeeBps: c.Policy.FreelancerFeeBps,
		MaxDust:          c.Policy.MaxDust,
		Held:             c.Held,
	})
}

// UnmarshalJSON decodes and validates a stored contract.
func (c *Contract) UnmarshalJSON(b []byte) error {
	var s snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	schedules := make(map[uint64]Schedule, len(s.Schedules))
	for _, sc := range s.Schedules {
		if _, dup := schedules[sc.ID]; dup {
			return fmt.Errorf("duplicate schedule id %d", sc.ID)
		}
		schedules[sc.ID] = sc
	}

	decoded := Contract{
		Self:          s.Self,
		Owner:         s.Owner,
		Treasury:      s.Treasury,
		Client:        s.Client,
		Freelancer:    s.Freelancer,
		State:         s.State,
		ScheduleCount: s.ScheduleCount,
		Schedules:     schedules,
		Policy: Policy{
			ClientFeeBps:     s.ClientFeeBps,
			FreelancerFeeBps: s.FreelancerFeeBps,
			MaxDust:          s.MaxDust,
		},
		Held: s.Held,
	}
	if err := decoded.Validate(); err != nil {
		return fmt.Errorf("stored contract: %w", err)
	}
	*c = decoded
	return nil
}
