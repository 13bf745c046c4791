package escrow

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/jsamuelsen11/milestone-escrow/internal/domain"
)

const (
	self       AccountID = "escrow.test"
	owner      AccountID = "owner.test"
	treasury   AccountID = "treasury.test"
	freelancer AccountID = "freelancer.test"
	client     AccountID = "client.test"
	stranger   AccountID = "stranger.test"
)

func as(caller AccountID) Env {
	return Env{Caller: caller, ByteCost: NewAmount(1)}
}

func fundEnv(deposit uint64) Env {
	env := as(client)
	env.Deposit = NewAmount(deposit)
	return env
}

func newContract(t *testing.T) *Contract {
	t.Helper()

	c, err := New(self, freelancer, owner, treasury, DefaultPolicy())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

// acceptedWith returns an accepted contract holding one Planned schedule per value.
func acceptedWith(t *testing.T, values ...uint64) *Contract {
	t.Helper()

	c := newContract(t)
	for _, v := range values {
		if _, err := c.AddSchedule(as(freelancer), "M", "milestone", NewAmount(v)); err != nil {
			t.Fatalf("AddSchedule() error = %v", err)
		}
	}
	if _, err := c.Accept(as(client)); err != nil {
		t.Fatalf("Accept() error = %v", err)
	}
	return c
}

func requireErr(t *testing.T, err, want error) {
	t.Helper()

	if !errors.Is(err, want) {
		t.Fatalf("error = %v, want %v", err, want)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	c := newContract(t)

	if c.Freelancer != freelancer {
		t.Errorf("Freelancer = %q, want deployer %q", c.Freelancer, freelancer)
	}
	if c.Client != self {
		t.Errorf("Client = %q, want self %q before acceptance", c.Client, self)
	}
	if c.State != ProjectInitiated {
		t.Errorf("State = %q, want initiated", c.State)
	}
	if c.Policy.ClientFeeBps != 200 || c.Policy.FreelancerFeeBps != 300 {
		t.Errorf("Policy = %+v, want 200/300 bps", c.Policy)
	}

	if _, err := New(self, freelancer, "", treasury, DefaultPolicy()); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("New(empty owner) error = %v, want ErrValidation", err)
	}
}

func TestAddSchedule_SequentialIDs(t *testing.T) {
	t.Parallel()

	c := newContract(t)
	for i := uint64(1); i <= 5; i++ {
		out, err := c.AddSchedule(as(freelancer), "M", "d", NewAmount(i*100))
		if err != nil {
			t.Fatalf("AddSchedule(#%d) error = %v", i, err)
		}
		if out.Schedule.ID != i {
			t.Errorf("AddSchedule(#%d) id = %d", i, out.Schedule.ID)
		}
		if out.Schedule.State != SchedulePlanned {
			t.Errorf("AddSchedule(#%d) state = %s", i, out.Schedule.State)
		}
	}
	if c.ScheduleCount != 5 {
		t.Errorf("ScheduleCount = %d, want 5", c.ScheduleCount)
	}

	list := c.ListSchedules()
	for i, s := range list {
		if s.ID != uint64(i+1) {
			t.Errorf("ListSchedules()[%d].ID = %d", i, s.ID)
		}
	}
}

func TestAddSchedule_ZeroValue(t *testing.T) {
	t.Parallel()

	c := newContract(t)
	out, err := c.AddSchedule(as(freelancer), "FREE", "", Zero)
	if err != nil {
		t.Fatalf("AddSchedule() error = %v", err)
	}
	if !out.Schedule.Value.IsZero() || out.Schedule.Description != "" {
		t.Errorf("schedule = %+v, want zero value and no description", out.Schedule)
	}
}

func TestAddSchedule_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		setup  func(t *testing.T) *Contract
		caller AccountID
		code   string
		want   error
	}{
		{name: "client is not freelancer", setup: newContract, caller: client, code: "M", want: domain.ErrUnauthorized},
		{name: "owner is not freelancer", setup: newContract, caller: owner, code: "M", want: domain.ErrUnauthorized},
		{name: "after acceptance", setup: func(t *testing.T) *Contract { return acceptedWith(t) }, caller: freelancer, code: "M", want: domain.ErrInvalidState},
		{name: "blank short code", setup: newContract, caller: freelancer, code: " ", want: domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := tt.setup(t)
			before := c.Clone()
			_, err := c.AddSchedule(as(tt.caller), tt.code, "d", NewAmount(1))
			requireErr(t, err, tt.want)
			if !reflect.DeepEqual(c, before) {
				t.Error("contract changed on rejected call")
			}
		})
	}
}

func TestAccept(t *testing.T) {
	t.Parallel()

	t.Run("sets client and emits parties", func(t *testing.T) {
		t.Parallel()

		c := newContract(t)
		out, err := c.Accept(as(client))
		if err != nil {
			t.Fatalf("Accept() error = %v", err)
		}
		if c.Client != client || c.State != ProjectAccepted {
			t.Errorf("after Accept client=%q state=%q", c.Client, c.State)
		}
		b, _ := out.Event.JSON()
		want := `{"event":"project_accept","params":{"client_id":"client.test","freelancer_id":"freelancer.test"}}`
		if string(b) != want {
			t.Errorf("event = %s, want %s", b, want)
		}
	})

	t.Run("second accept is invalid state", func(t *testing.T) {
		t.Parallel()

		c := acceptedWith(t)
		_, err := c.Accept(as(stranger))
		requireErr(t, err, domain.ErrInvalidState)
		if c.Client != client {
			t.Errorf("Client = %q, want unchanged %q", c.Client, client)
		}
	})

	t.Run("contract identity cannot accept", func(t *testing.T) {
		t.Parallel()

		c := newContract(t)
		_, err := c.Accept(as(self))
		requireErr(t, err, domain.ErrUnauthorized)
	})

	t.Run("freelancer may accept own project", func(t *testing.T) {
		t.Parallel()

		c := newContract(t)
		if _, err := c.Accept(as(freelancer)); err != nil {
			t.Fatalf("Accept(freelancer) error = %v", err)
		}
		if c.Client != freelancer {
			t.Errorf("Client = %q, want %q", c.Client, freelancer)
		}
	})
}

func TestFund_Threshold(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		deposit uint64
		want    error
	}{
		{name: "one below cover", deposit: 1020, want: domain.ErrInsufficientFunds},
		{name: "zero", deposit: 0, want: domain.ErrInsufficientFunds},
		{name: "exact cover", deposit: 1021},
		{name: "above cover", deposit: 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := acceptedWith(t, 1000)
			out, err := c.Fund(fundEnv(tt.deposit), 1)
			if tt.want != nil {
				requireErr(t, err, tt.want)
				if c.Schedules[1].State != SchedulePlanned || !c.Held.IsZero() {
					t.Errorf("state=%s held=%s, want planned/0", c.Schedules[1].State, c.Held)
				}
				return
			}
			if err != nil {
				t.Fatalf("Fund() error = %v", err)
			}
			if c.Schedules[1].State != ScheduleFunded {
				t.Errorf("state = %s, want funded", c.Schedules[1].State)
			}
			if c.Held.Cmp(NewAmount(tt.deposit)) != 0 {
				t.Errorf("Held = %s, want %d", c.Held, tt.deposit)
			}
			if out.Event.Name != EventTaskFunded {
				t.Errorf("event = %s", out.Event.Name)
			}
		})
	}
}

func TestScheduleLifecycle_OutOfOrder(t *testing.T) {
	t.Parallel()

	type op func(c *Contract) error
	start := func(c *Contract) error { _, err := c.Start(as(freelancer), 1); return err }
	approve := func(c *Contract) error { _, err := c.Approve(as(client), 1); return err }
	release := func(c *Contract) error { _, err := c.Release(as(freelancer), 1); return err }
	fund := func(c *Contract) error { _, err := c.Fund(fundEnv(1021), 1); return err }

	tests := []struct {
		name  string
		setup []op
		call  op
	}{
		{name: "start planned", call: start},
		{name: "approve planned", call: approve},
		{name: "release planned", call: release},
		{name: "fund funded", setup: []op{fund}, call: fund},
		{name: "approve funded", setup: []op{fund}, call: approve},
		{name: "release started", setup: []op{fund, start}, call: release},
		{name: "start approved", setup: []op{fund, start, approve}, call: start},
		{name: "release released", setup: []op{fund, start, approve, release}, call: release},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := acceptedWith(t, 1000)
			for _, s := range tt.setup {
				if err := s(c); err != nil {
					t.Fatalf("setup error = %v", err)
				}
			}
			before := c.Clone()
			requireErr(t, tt.call(c), domain.ErrInvalidState)
			if !reflect.DeepEqual(c, before) {
				t.Error("contract changed on rejected call")
			}
		})
	}
}

func TestRelease(t *testing.T) {
	t.Parallel()

	c := acceptedWith(t, 1000)
	steps := []func() (Outcome, error){
		func() (Outcome, error) { return c.Fund(fundEnv(1021), 1) },
		func() (Outcome, error) { return c.Start(as(freelancer), 1) },
		func() (Outcome, error) { return c.Approve(as(client), 1) },
	}
	for i, s := range steps {
		if _, err := s(); err != nil {
			t.Fatalf("step %d error = %v", i, err)
		}
	}

	env := as(freelancer)
	env.StorageBytes = 10
	out, err := c.Release(env, 1)
	if err != nil {
		t.Fatalf("Release() error = %v", err)
	}

	if c.Schedules[1].State != ScheduleReleased {
		t.Errorf("state = %s, want released", c.Schedules[1].State)
	}
	if len(out.Transfers) != 2 {
		t.Fatalf("transfers = %+v, want payout and sweep", out.Transfers)
	}
	payout, sweep := out.Transfers[0], out.Transfers[1]
	if payout.To != freelancer || payout.Amount.String() != "970" || payout.Kind != TransferPayout {
		t.Errorf("payout = %+v, want 970 to freelancer", payout)
	}
	// 1021 held, 970 paid, 10 bytes reserved at cost 1.
	if sweep.To != treasury || sweep.Amount.String() != "41" || sweep.Kind != TransferSweep {
		t.Errorf("sweep = %+v, want 41 to treasury", sweep)
	}
	if c.Held.String() != "10" {
		t.Errorf("Held = %s, want reserve 10", c.Held)
	}

	b, _ := out.Event.JSON()
	if string(b) != `{"event":"task_released","params":{"schedule_id":1}}` {
		t.Errorf("event = %s", b)
	}

	_, err = c.Release(env, 1)
	requireErr(t, err, domain.ErrInvalidState)
}

func TestRelease_SweepsOtherFundedSchedules(t *testing.T) {
	t.Parallel()

	c := acceptedWith(t, 1000, 2000)
	for _, call := range []func() error{
		func() error { _, err := c.Fund(fundEnv(1021), 1); return err },
		func() error { _, err := c.Fund(fundEnv(2041), 2); return err },
		func() error { _, err := c.Start(as(freelancer), 1); return err },
		func() error { _, err := c.Approve(as(client), 1); return err },
	} {
		if err := call(); err != nil {
			t.Fatalf("setup error = %v", err)
		}
	}

	out, err := c.Release(Env{Caller: freelancer, ByteCost: NewAmount(1)}, 1)
	if err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if got := out.Transfers[1].Amount.String(); got != "2092" {
		t.Errorf("sweep = %s, want 2092 (everything but the payout)", got)
	}
	if !c.Held.IsZero() {
		t.Errorf("Held = %s, want 0", c.Held)
	}
}

func TestSchedule_NotFound(t *testing.T) {
	t.Parallel()

	c := acceptedWith(t, 1000)
	for _, id := range []uint64{0, 2, 99} {
		if _, err := c.Schedule(id); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("Schedule(%d) error = %v, want ErrNotFound", id, err)
		}
	}

	// In range but never materialised.
	c.ScheduleCount = 3
	if _, err := c.Schedule(3); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Schedule(3) error = %v, want ErrNotFound", err)
	}
	if _, err := c.Start(as(freelancer), 3); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Start(3) error = %v, want ErrNotFound", err)
	}
}

func TestRoleGuards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		call func(c *Contract, caller AccountID) error
		deny []AccountID
	}{
		{
			name: "fund is client only",
			call: func(c *Contract, caller AccountID) error {
				env := fundEnv(1021)
				env.Caller = caller
				_, err := c.Fund(env, 1)
				return err
			},
			deny: []AccountID{freelancer, owner, stranger, ""},
		},
		{
			name: "start is freelancer only",
			call: func(c *Contract, caller AccountID) error { _, err := c.Start(as(caller), 1); return err },
			deny: []AccountID{client, owner, stranger},
		},
		{
			name: "approve is client only",
			call: func(c *Contract, caller AccountID) error { _, err := c.Approve(as(caller), 1); return err },
			deny: []AccountID{freelancer, owner, stranger},
		},
		{
			name: "release is freelancer only",
			call: func(c *Contract, caller AccountID) error { _, err := c.Release(as(caller), 1); return err },
			deny: []AccountID{client, owner, stranger},
		},
		{
			name: "close is client or freelancer",
			call: func(c *Contract, caller AccountID) error { _, err := c.Close(as(caller)); return err },
			deny: []AccountID{owner, stranger, self},
		},
		{
			name: "set treasury is owner only",
			call: func(c *Contract, caller AccountID) error {
				_, err := c.SetTreasury(as(caller), "new.test")
				return err
			},
			deny: []AccountID{client, freelancer, stranger},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for _, caller := range tt.deny {
				c := acceptedWith(t, 1000)
				before := c.Clone()
				if err := tt.call(c, caller); !errors.Is(err, domain.ErrUnauthorized) {
					t.Errorf("caller %q error = %v, want ErrUnauthorized", caller, err)
				}
				if !reflect.DeepEqual(c, before) {
					t.Errorf("caller %q changed the contract", caller)
				}
			}
		})
	}
}

func TestClientRole_UnsatisfiableBeforeAcceptance(t *testing.T) {
	t.Parallel()

	c := newContract(t)
	if err := c.Authorize(self, RoleClient); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("Authorize(self, client) error = %v, want ErrUnauthorized", err)
	}
	if err := c.Authorize(freelancer, RoleClient|RoleFreelancer); err != nil {
		t.Errorf("Authorize(freelancer, client|freelancer) error = %v", err)
	}
}

func TestClose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(t *testing.T) *Contract
		held  string
		want  error
	}{
		{name: "initiated with no funds", setup: newContract, held: "0"},
		{name: "accepted at dust threshold", setup: func(t *testing.T) *Contract { return acceptedWith(t) }, held: "1000000000000000000000010"},
		{name: "accepted above dust", setup: func(t *testing.T) *Contract { return acceptedWith(t) }, held: "1000000000000000000000011", want: domain.ErrInsufficientFunds},
		{name: "initiated above dust", setup: newContract, held: "2000000000000000000000000", want: domain.ErrInsufficientFunds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := tt.setup(t)
			c.Held = MustParseAmount(tt.held)
			env := as(freelancer)
			env.StorageBytes = 10

			out, err := c.Close(env)
			if tt.want != nil {
				requireErr(t, err, tt.want)
				if c.State == ProjectClosed {
					t.Error("State = closed after rejected close")
				}
				return
			}
			if err != nil {
				t.Fatalf("Close() error = %v", err)
			}
			if c.State != ProjectClosed || out.Event.Name != EventProjectEnd {
				t.Errorf("state=%s event=%s", c.State, out.Event.Name)
			}
		})
	}
}

func TestClose_Repeatable(t *testing.T) {
	t.Parallel()

	c := acceptedWith(t)
	for i := range 2 {
		if _, err := c.Close(as(client)); err != nil {
			t.Fatalf("Close() #%d error = %v", i+1, err)
		}
	}
}

func TestSetTreasury(t *testing.T) {
	t.Parallel()

	c := newContract(t)
	out, err := c.SetTreasury(as(owner), "new.test")
	if err != nil {
		t.Fatalf("SetTreasury() error = %v", err)
	}
	if c.Treasury != "new.test" {
		t.Errorf("Treasury = %q", c.Treasury)
	}
	if !out.Event.IsZero() {
		t.Errorf("event = %+v, want none", out.Event)
	}

	_, err = c.SetTreasury(as(owner), "")
	requireErr(t, err, domain.ErrValidation)
}

func TestEvent_JSONShapes(t *testing.T) {
	t.Parallel()

	c := newContract(t)
	out, err := c.AddSchedule(as(freelancer), "DESIGN", "mockups", NewAmount(10))
	if err != nil {
		t.Fatalf("AddSchedule() error = %v", err)
	}

	var decoded map[string]any
	b, _ := out.Event.JSON()
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded["event"] != "add_schedule" {
		t.Errorf("event = %v", decoded["event"])
	}
	params, ok := decoded["params"].(map[string]any)
	if !ok || params["shortcode"] != "DESIGN" {
		t.Errorf("params = %v", decoded["params"])
	}
}

func TestClone_IsIndependent(t *testing.T) {
	t.Parallel()

	c := acceptedWith(t, 1000)
	cp := c.Clone()
	if _, err := cp.Fund(fundEnv(1021), 1); err != nil {
		t.Fatalf("Fund() error = %v", err)
	}
	if c.Schedules[1].State != SchedulePlanned || !c.Held.IsZero() {
		t.Error("mutating the clone changed the original")
	}
}
