// Package handlers provides HTTP request handlers for the service's API endpoints.
package handlers

import (
	"context"
	"net/http"

	"github.com/jsamuelsen11/milestone-escrow/internal/adapters/http/dto"
	"github.com/jsamuelsen11/milestone-escrow/internal/domain/escrow"
	"github.com/jsamuelsen11/milestone-escrow/internal/ports"
)

// EscrowHandler serves the escrow contract. Mutating endpoints act on behalf
// of the authenticated caller; read views are public.
type EscrowHandler struct {
	svc ports.EscrowService
}

// NewEscrowHandler creates a new EscrowHandler with the given service port.
func NewEscrowHandler(svc ports.EscrowService) *EscrowHandler {
	return &EscrowHandler{svc: svc}
}

// Construct handles POST /api/v1/escrow.
func (h *EscrowHandler) Construct(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}
	var req dto.ConstructRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	p, err := h.svc.Construct(r.Context(), caller, escrow.AccountID(req.Owner), escrow.AccountID(req.Treasury))
	if err != nil {
		dto.WriteError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.ToProjectResponse(p))
}

// GetProject handles GET /api/v1/escrow.
func (h *EscrowHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProject(r.Context())
	if err != nil {
		dto.WriteError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToProjectResponse(p))
}

// SetTreasury handles PUT /api/v1/escrow/treasury.
func (h *EscrowHandler) SetTreasury(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}
	var req dto.SetTreasuryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.svc.SetTreasury(r.Context(), caller, escrow.AccountID(req.Treasury)); err != nil {
		dto.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Accept handles POST /api/v1/escrow/accept.
func (h *EscrowHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.projectTransition(w, r, h.svc.AcceptProject)
}

// Close handles POST /api/v1/escrow/close.
func (h *EscrowHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.projectTransition(w, r, h.svc.EndProject)
}

func (h *EscrowHandler) projectTransition(
	w http.ResponseWriter,
	r *http.Request,
	op func(context.Context, escrow.AccountID) (*ports.ProjectSummary, error),
) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}

	p, err := op(r.Context(), caller)
	if err != nil {
		dto.WriteError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToProjectResponse(p))
}

// GetClient handles GET /api/v1/escrow/client.
func (h *EscrowHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	h.account(w, r, h.svc.GetClient)
}

// GetFreelancer handles GET /api/v1/escrow/freelancer.
func (h *EscrowHandler) GetFreelancer(w http.ResponseWriter, r *http.Request) {
	h.account(w, r, h.svc.GetFreelancer)
}

func (h *EscrowHandler) account(w http.ResponseWriter, r *http.Request, get func(context.Context) (escrow.AccountID, error)) {
	id, err := get(r.Context())
	if err != nil {
		dto.WriteError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.AccountResponse{Account: id.String()})
}

// GetState handles GET /api/v1/escrow/state.
func (h *EscrowHandler) GetState(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.GetProjectState(r.Context())
	if err != nil {
		dto.WriteError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.StateResponse{State: s.String()})
}

// GetBalance handles GET /api/v1/escrow/balance.
func (h *EscrowHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.GetSpendableBalance(r.Context())
	if err != nil {
		dto.WriteError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.BalanceResponse{Spendable: b.String()})
}

// ListSchedules handles GET /api/v1/escrow/schedules.
func (h *EscrowHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.svc.ListSchedules(r.Context())
	if err != nil {
		dto.WriteError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToScheduleListResponse(schedules))
}

// AddSchedule handles POST /api/v1/escrow/schedules.
func (h *EscrowHandler) AddSchedule(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}
	var req dto.AddScheduleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	s, err := h.svc.AddSchedule(r.Context(), caller, req.ShortCode, req.Description, req.Amount())
	if err != nil {
		dto.WriteError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.ToScheduleResponse(s))
}

// ScheduleCount handles GET /api/v1/escrow/schedules/count.
func (h *EscrowHandler) ScheduleCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.GetScheduleCount(r.Context())
	if err != nil {
		dto.WriteError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.CountResponse{Count: n})
}

// GetSchedule handles GET /api/v1/escrow/schedules/{id}.
func (h *EscrowHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteError(w, r, err)
		return
	}

	s, err := h.svc.GetSchedule(r.Context(), id)
	if err != nil {
		dto.WriteError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToScheduleResponse(s))
}

// FundTask handles POST /api/v1/escrow/schedules/{id}/fund.
func (h *EscrowHandler) FundTask(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteError(w, r, err)
		return
	}
	var req dto.FundRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	s, err := h.svc.FundTask(r.Context(), caller, id, req.Amount())
	if err != nil {
		dto.WriteError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToScheduleResponse(s))
}

// StartTask handles POST /api/v1/escrow/schedules/{id}/start.
func (h *EscrowHandler) StartTask(w http.ResponseWriter, r *http.Request) {
	h.scheduleTransition(w, r, h.svc.StartTask)
}

// ApproveTask handles POST /api/v1/escrow/schedules/{id}/approve.
func (h *EscrowHandler) ApproveTask(w http.ResponseWriter, r *http.Request) {
	h.scheduleTransition(w, r, h.svc.ApproveTask)
}

// ReleaseFunds handles POST /api/v1/escrow/schedules/{id}/release.
func (h *EscrowHandler) ReleaseFunds(w http.ResponseWriter, r *http.Request) {
	h.scheduleTransition(w, r, h.svc.ReleaseFunds)
}

func (h *EscrowHandler) scheduleTransition(
	w http.ResponseWriter,
	r *http.Request,
	op func(context.Context, escrow.AccountID, uint64) (*escrow.Schedule, error),
) {
	caller, ok := callerOf(w, r)
	if !ok {
		return
	}
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteError(w, r, err)
		return
	}

	s, err := op(r.Context(), caller, id)
	if err != nil {
		dto.WriteError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ToScheduleResponse(s))
}
