// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"github.com/jsamuelsen11/milestone-escrow/internal/domain/escrow"
	"github.com/jsamuelsen11/milestone-escrow/internal/ports"
)

// ProjectResponse is the contract summary. Amounts are decimal strings.
type ProjectResponse struct {
	Owner            string `json:"owner"`
	Treasury         string `json:"treasury"`
	Client           string `json:"client,omitempty"`
	Freelancer       string `json:"freelancer"`
	State            string `json:"state"`
	ScheduleCount    uint64 `json:"schedule_count"`
	ClientFeeBps     uint16 `json:"client_fee_bps"`
	FreelancerFeeBps uint16 `json:"freelancer_fee_bps"`
	HeldBalance      string `json:"held_balance"`
	SpendableBalance string `json:"spendable_balance"`
}

// ScheduleResponse represents one milestone.
type ScheduleResponse struct {
	ID          uint64 `json:"id"`
	ShortCode   string `json:"short_code"`
	Description string `json:"description"`
	Value       string `json:"value"`
	State       string `json:"state"`
}

// ScheduleListResponse lists schedules in creation order.
type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
	Count     int                `json:"count"`
}

// CountResponse carries getScheduleCount.
type CountResponse struct {
	Count uint64 `json:"count"`
}

// AccountResponse carries getClient and getFreelancer. An unset client is
// the empty string.
type AccountResponse struct {
	Account string `json:"account"`
}

// StateResponse carries getProjectState.
type StateResponse struct {
	State string `json:"state"`
}

// BalanceResponse carries getSpendableBalance.
type BalanceResponse struct {
	Spendable string `json:"spendable"`
}

// ToProjectResponse converts a service summary to its HTTP form.
func ToProjectResponse(p *ports.ProjectSummary) ProjectResponse {
	return ProjectResponse{
		Owner:            p.Owner.String(),
		Treasury:         p.Treasury.String(),
		Client:           p.Client.String(),
		Freelancer:       p.Freelancer.String(),
		State:            p.State.String(),
		ScheduleCount:    p.ScheduleCount,
		ClientFeeBps:     p.ClientFeeBps,
		FreelancerFeeBps: p.FreelancerFeeBps,
		HeldBalance:      p.HeldBalance.String(),
		SpendableBalance: p.SpendableBalance.String(),
	}
}

// ToScheduleResponse converts a domain schedule to its HTTP form.
func ToScheduleResponse(s *escrow.Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:          s.ID,
		ShortCode:   s.ShortCode,
		Description: s.Description,
		Value:       s.Value.String(),
		State:       s.State.String(),
	}
}

// ToScheduleListResponse converts schedules, preserving order.
func ToScheduleListResponse(schedules []escrow.Schedule) ScheduleListResponse {
	items := make([]ScheduleResponse, len(schedules))
	for i := range schedules {
		items[i] = ToScheduleResponse(&schedules[i])
	}
	return ScheduleListResponse{Schedules: items, Count: len(items)}
}
