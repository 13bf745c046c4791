package escrow

import "encoding/json"

// EventName identifies a committed state change. The values are part of the
// external contract and must not change.
type EventName string

const (
	EventAddSchedule   EventName = "add_schedule"
	EventProjectAccept EventName = "project_accept"
	EventProjectEnd    EventName = "project_end"
	EventTaskFunded    EventName = "task_funded"
	EventTaskStarted   EventName = "task_started"
	EventTaskApproved  EventName = "task_approved"
	EventTaskReleased  EventName = "task_released"
)

// Event is the structured record emitted once per state-changing operation.
// It encodes as {"event": <name>, "params": {...}}.
type Event struct {
	Name   EventName      `json:"event"`
	Params map[string]any `json:"params"`
}

// IsZero reports whether no event was produced.
func (e Event) IsZero() bool {
	return e.Name == ""
}

// JSON returns the canonical encoding. Params keys are emitted sorted.
func (e Event) JSON() ([]byte, error) {
	return json.Marshal(e)
}

func scheduleEvent(name EventName, id uint64) Event {
	return Event{Name: name, Params: map[string]any{"schedule_id": id}}
}

func partiesEvent(name EventName, c *Contract) Event {
	return Event{Name: name, Params: map[string]any{
		"client_id":     c.Client.String(),
		"freelancer_id": c.Freelancer.String(),
	}}
}
