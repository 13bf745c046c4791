package handlers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/milestone-escrow/internal/adapters/http/dto"
	"github.com/jsamuelsen11/milestone-escrow/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/milestone-escrow/internal/domain"
	"github.com/jsamuelsen11/milestone-escrow/internal/domain/escrow"
	"github.com/jsamuelsen11/milestone-escrow/mocks"
)

func newEscrowHandler(t *testing.T) (*handlers.EscrowHandler, *mocks.MockEscrowService) {
	t.Helper()
	svc := mocks.NewMockEscrowService(t)
	return handlers.NewEscrowHandler(svc), svc
}

// --- Construct ---

func TestConstruct_Success(t *testing.T) {
	t.Parallel()
	h, svc := newEscrowHandler(t)

	svc.EXPECT().Construct(mock.Anything, freelancerID, ownerID, treasuryID).
		Return(summary(escrow.ProjectInitiated), nil)

	body := jsonBody(t, dto.ConstructRequest{Owner: ownerID.String(), Treasury: treasuryID.String()})
	rec := httptest.NewRecorder()
	h.Construct(rec, newRequest(http.MethodPost, "/api/v1/escrow", body, freelancerID))

	requireStatus(t, rec, http.StatusCreated)
	resp := decodeJSON[dto.ProjectResponse](t, rec)
	if resp.Freelancer != freelancerID.String() || resp.State != "initiated" {
		t.Errorf("response = %+v, want freelancer %s in state initiated", resp, freelancerID)
	}
}

func TestConstruct_AlreadyConstructed(t *testing.T) {
	t.Parallel()
	h, svc := newEscrowHandler(t)

	svc.EXPECT().Construct(mock.Anything, freelancerID, ownerID, treasuryID).
		Return(nil, domain.Rejectf(domain.ErrInvalidState, "contract already constructed"))

	body := jsonBody(t, dto.ConstructRequest{Owner: ownerID.String(), Treasury: treasuryID.String()})
	rec := httptest.NewRecorder()
	h.Construct(rec, newRequest(http.MethodPost, "/api/v1/escrow", body, freelancerID))

	requireStatus(t, rec, http.StatusConflict)
}

func TestConstruct_Unauthenticated(t *testing.T) {
	t.Parallel()
	h, _ := newEscrowHandler(t)

	body := jsonBody(t, dto.ConstructRequest{Owner: ownerID.String(), Treasury: treasuryID.String()})
	rec := httptest.NewRecorder()
	h.Construct(rec, newRequest(http.MethodPost, "/api/v1/escrow", body, ""))

	requireStatus(t, rec, http.StatusUnauthorized)
}

func TestConstruct_InvalidBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed JSON", body: `{"owner":`},
		{name: "unknown field", body: `{"owner":"o","treasury":"t","admin":true}`},
		{name: "missing treasury", body: `{"owner":"o"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, _ := newEscrowHandler(t)

			rec := httptest.NewRecorder()
			h.Construct(rec, newRequest(http.MethodPost, "/api/v1/escrow", strings.NewReader(tt.body), freelancerID))

			requireStatus(t, rec, http.StatusBadRequest)
		})
	}
}

// --- Project transitions ---

func TestSetTreasury(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "owner", wantStatus: http.StatusNoContent},
		{name: "not owner", err: domain.Rejectf(domain.ErrUnauthorized, "caller is not the owner"), wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, svc := newEscrowHandler(t)

			svc.EXPECT().SetTreasury(mock.Anything, ownerID, escrow.AccountID("treasury2.test")).Return(tt.err)

			body := jsonBody(t, dto.SetTreasuryRequest{Treasury: "treasury2.test"})
			rec := httptest.NewRecorder()
			h.SetTreasury(rec, newRequest(http.MethodPut, "/api/v1/escrow/treasury", body, ownerID))

			requireStatus(t, rec, tt.wantStatus)
		})
	}
}

func TestAccept(t *testing.T) {
	t.Parallel()
	h, svc := newEscrowHandler(t)

	accepted := summary(escrow.ProjectAccepted)
	accepted.Client = clientID
	svc.EXPECT().AcceptProject(mock.Anything, clientID).Return(accepted, nil)

	rec := httptest.NewRecorder()
	h.Accept(rec, newRequest(http.MethodPost, "/api/v1/escrow/accept", nil, clientID))

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.ProjectResponse](t, rec)
	if resp.Client != clientID.String() || resp.State != "accepted" {
		t.Errorf("response = %+v, want client %s accepted", resp, clientID)
	}
}

func TestClose_DustRemaining(t *testing.T) {
	t.Parallel()
	h, svc := newEscrowHandler(t)

	svc.EXPECT().EndProject(mock.Anything, clientID).
		Return(nil, domain.Rejectf(domain.ErrInvalidState, "spendable balance exceeds dust"))

	rec := httptest.NewRecorder()
	h.Close(rec, newRequest(http.MethodPost, "/api/v1/escrow/close", nil, clientID))

	requireStatus(t, rec, http.StatusConflict)
}

// --- Read views ---

func TestReadViews(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		setup  func(*mocks.MockEscrowService)
		call   func(*handlers.EscrowHandler) http.HandlerFunc
		target string
		want   string
	}{
		{
			name:   "client unset",
			setup:  func(s *mocks.MockEscrowService) { s.EXPECT().GetClient(mock.Anything).Return("", nil) },
			call:   func(h *handlers.EscrowHandler) http.HandlerFunc { return h.GetClient },
			target: "/api/v1/escrow/client",
			want:   `{"account":""}`,
		},
		{
			name:   "freelancer",
			setup:  func(s *mocks.MockEscrowService) { s.EXPECT().GetFreelancer(mock.Anything).Return(freelancerID, nil) },
			call:   func(h *handlers.EscrowHandler) http.HandlerFunc { return h.GetFreelancer },
			target: "/api/v1/escrow/freelancer",
			want:   `{"account":"freelancer.test"}`,
		},
		{
			name:   "state",
			setup:  func(s *mocks.MockEscrowService) { s.EXPECT().GetProjectState(mock.Anything).Return(escrow.ProjectClosed, nil) },
			call:   func(h *handlers.EscrowHandler) http.HandlerFunc { return h.GetState },
			target: "/api/v1/escrow/state",
			want:   `{"state":"closed"}`,
		},
		{
			name: "balance",
			setup: func(s *mocks.MockEscrowService) {
				s.EXPECT().GetSpendableBalance(mock.Anything).Return(escrow.NewAmount(51), nil)
			},
			call:   func(h *handlers.EscrowHandler) http.HandlerFunc { return h.GetBalance },
			target: "/api/v1/escrow/balance",
			want:   `{"spendable":"51"}`,
		},
		{
			name:   "schedule count",
			setup:  func(s *mocks.MockEscrowService) { s.EXPECT().GetScheduleCount(mock.Anything).Return(3, nil) },
			call:   func(h *handlers.EscrowHandler) http.HandlerFunc { return h.ScheduleCount },
			target: "/api/v1/escrow/schedules/count",
			want:   `{"count":3}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, svc := newEscrowHandler(t)
			tt.setup(svc)

			rec := httptest.NewRecorder()
			tt.call(h)(rec, newRequest(http.MethodGet, tt.target, nil, ""))

			requireStatus(t, rec, http.StatusOK)
			if got := strings.TrimSpace(rec.Body.String()); got != tt.want {
				t.Errorf("body = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestGetProject_NotConstructed(t *testing.T) {
	t.Parallel()
	h, svc := newEscrowHandler(t)

	svc.EXPECT().GetProject(mock.Anything).
		Return(nil, domain.Rejectf(domain.ErrInvalidState, "contract not constructed"))

	rec := httptest.NewRecorder()
	h.GetProject(rec, newRequest(http.MethodGet, "/api/v1/escrow", nil, ""))

	requireStatus(t, rec, http.StatusConflict)
}

func TestListSchedules(t *testing.T) {
	t.Parallel()
	h, svc := newEscrowHandler(t)

	svc.EXPECT().ListSchedules(mock.Anything).Return([]escrow.Schedule{
		{ID: 0, ShortCode: "DESIGN", Value: escrow.NewAmount(1000), State: escrow.ScheduleFunded},
	}, nil)

	rec := httptest.NewRecorder()
	h.ListSchedules(rec, newRequest(http.MethodGet, "/api/v1/escrow/schedules", nil, ""))

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.ScheduleListResponse](t, rec)
	if resp.Count != 1 || resp.Schedules[0].State != "funded" {
		t.Errorf("response = %+v, want one funded schedule", resp)
	}
}

func TestGetSchedule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		id         string
		setup      func(*mocks.MockEscrowService)
		wantStatus int
	}{
		{
			name: "found",
			id:   "0",
			setup: func(s *mocks.MockEscrowService) {
				s.EXPECT().GetSchedule(mock.Anything, uint64(0)).
					Return(&escrow.Schedule{ShortCode: "DESIGN", Value: escrow.NewAmount(1), State: escrow.SchedulePlanned}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "unknown id",
			id:   "9",
			setup: func(s *mocks.MockEscrowService) {
				s.EXPECT().GetSchedule(mock.Anything, uint64(9)).
					Return(nil, fmt.Errorf("schedule 9: %w", domain.ErrNotFound))
			},
			wantStatus: http.StatusNotFound,
		},
		{name: "negative id", id: "-1", setup: func(*mocks.MockEscrowService) {}, wantStatus: http.StatusBadRequest},
		{name: "non-numeric id", id: "abc", setup: func(*mocks.MockEscrowService) {}, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, svc := newEscrowHandler(t)
			tt.setup(svc)

			req := withChiParams(newRequest(http.MethodGet, "/api/v1/escrow/schedules/"+tt.id, nil, ""),
				map[string]string{"id": tt.id})
			rec := httptest.NewRecorder()
			h.GetSchedule(rec, req)

			requireStatus(t, rec, tt.wantStatus)
		})
	}
}

// --- Schedule operations ---

func TestAddSchedule(t *testing.T) {
	t.Parallel()
	h, svc := newEscrowHandler(t)

	svc.EXPECT().AddSchedule(mock.Anything, freelancerID, "DESIGN", "mockups", escrow.NewAmount(1000)).
		Return(&escrow.Schedule{ID: 0, ShortCode: "DESIGN", Description: "mockups", Value: escrow.NewAmount(1000), State: escrow.SchedulePlanned}, nil)

	body := jsonBody(t, dto.AddScheduleRequest{ShortCode: "DESIGN", Description: "mockups", Value: "1000"})
	rec := httptest.NewRecorder()
	h.AddSchedule(rec, newRequest(http.MethodPost, "/api/v1/escrow/schedules", body, freelancerID))

	requireStatus(t, rec, http.StatusCreated)
	resp := decodeJSON[dto.ScheduleResponse](t, rec)
	want := dto.ScheduleResponse{ID: 0, ShortCode: "DESIGN", Description: "mockups", Value: "1000", State: "planned"}
	if resp != want {
		t.Errorf("response = %+v, want %+v", resp, want)
	}
}

func TestAddSchedule_NotFreelancer(t *testing.T) {
	t.Parallel()
	h, svc := newEscrowHandler(t)

	svc.EXPECT().AddSchedule(mock.Anything, clientID, "DESIGN", "", escrow.NewAmount(5)).
		Return(nil, domain.Rejectf(domain.ErrUnauthorized, "caller is not the freelancer"))

	body := jsonBody(t, dto.AddScheduleRequest{ShortCode: "DESIGN", Value: "5"})
	rec := httptest.NewRecorder()
	h.AddSchedule(rec, newRequest(http.MethodPost, "/api/v1/escrow/schedules", body, clientID))

	requireStatus(t, rec, http.StatusForbidden)
	resp := decodeJSON[dto.Problem](t, rec)
	if !strings.Contains(resp.Detail, "not the freelancer") {
		t.Errorf("Detail = %q, want the rejection reason", resp.Detail)
	}
}

func TestFundTask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "funded", wantStatus: http.StatusOK},
		{name: "short deposit", err: domain.Rejectf(domain.ErrInsufficientFunds, "deposit 1000 below 1020"), wantStatus: http.StatusUnprocessableEntity},
		{name: "wrong state", err: domain.Rejectf(domain.ErrInvalidState, "schedule 1 is funded, want planned"), wantStatus: http.StatusConflict},
		{name: "store down", err: fmt.Errorf("loading contract: %w", domain.ErrUnavailable), wantStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, svc := newEscrowHandler(t)

			call := svc.EXPECT().FundTask(mock.Anything, clientID, uint64(1), escrow.NewAmount(1021))
			if tt.err != nil {
				call.Return(nil, tt.err)
			} else {
				call.Return(&escrow.Schedule{ShortCode: "DESIGN", Value: escrow.NewAmount(1000), State: escrow.ScheduleFunded}, nil)
			}

			body := jsonBody(t, dto.FundRequest{Deposit: "1021"})
			req := withChiParams(newRequest(http.MethodPost, "/api/v1/escrow/schedules/1/fund", body, clientID),
				map[string]string{"id": "1"})
			rec := httptest.NewRecorder()
			h.FundTask(rec, req)

			requireStatus(t, rec, tt.wantStatus)
		})
	}
}

func TestScheduleTransitions(t *testing.T) {
	t.Parallel()

	type op = func(*handlers.EscrowHandler) http.HandlerFunc
	tests := []struct {
		name   string
		expect func(*mocks.MockEscrowService, *escrow.Schedule)
		call   op
		caller escrow.AccountID
	}{
		{
			name: "start",
			expect: func(s *mocks.MockEscrowService, out *escrow.Schedule) {
				s.EXPECT().StartTask(mock.Anything, freelancerID, uint64(2)).Return(out, nil)
			},
			call:   func(h *handlers.EscrowHandler) http.HandlerFunc { return h.StartTask },
			caller: freelancerID,
		},
		{
			name: "approve",
			expect: func(s *mocks.MockEscrowService, out *escrow.Schedule) {
				s.EXPECT().ApproveTask(mock.Anything, clientID, uint64(2)).Return(out, nil)
			},
			call:   func(h *handlers.EscrowHandler) http.HandlerFunc { return h.ApproveTask },
			caller: clientID,
		},
		{
			name: "release",
			expect: func(s *mocks.MockEscrowService, out *escrow.Schedule) {
				s.EXPECT().ReleaseFunds(mock.Anything, freelancerID, uint64(2)).Return(out, nil)
			},
			call:   func(h *handlers.EscrowHandler) http.HandlerFunc { return h.ReleaseFunds },
			caller: freelancerID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, svc := newEscrowHandler(t)
			tt.expect(svc, &escrow.Schedule{ID: 2, ShortCode: "SHIP", Value: escrow.NewAmount(7), State: escrow.ScheduleStarted})

			req := withChiParams(newRequest(http.MethodPost, "/api/v1/escrow/schedules/2/"+tt.name, nil, tt.caller),
				map[string]string{"id": "2"})
			rec := httptest.NewRecorder()
			tt.call(h)(rec, req)

			requireStatus(t, rec, http.StatusOK)
			if resp := decodeJSON[dto.ScheduleResponse](t, rec); resp.ID != 2 {
				t.Errorf("ID = %d, want 2", resp.ID)
			}
		})
	}
}

func TestScheduleTransition_Unauthenticated(t *testing.T) {
	t.Parallel()
	h, _ := newEscrowHandler(t)

	req := withChiParams(newRequest(http.MethodPost, "/api/v1/escrow/schedules/1/release", nil, ""),
		map[string]string{"id": "1"})
	rec := httptest.NewRecorder()
	h.ReleaseFunds(rec, req)

	requireStatus(t, rec, http.StatusUnauthorized)
}
