package httpclient

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestRetryPolicy_Delay(t *testing.T) {
	t.Parallel()

	p := retryPolicy{attempts: 5, initial: 100 * time.Millisecond, ceiling: time.Second, multiplier: 2}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		n          int
		retryAfter string
		lo, hi     time.Duration
	}{
		{name: "first retry", n: 1, lo: 75 * time.Millisecond, hi: 125 * time.Millisecond},
		{name: "grows", n: 3, lo: 300 * time.Millisecond, hi: 500 * time.Millisecond},
		{name: "capped", n: 10, lo: 750 * time.Millisecond, hi: 1250 * time.Millisecond},
		{name: "retry-after seconds", n: 1, retryAfter: "0", lo: 0, hi: 0},
		{name: "retry-after capped", n: 1, retryAfter: "120", lo: time.Second, hi: time.Second},
		{name: "retry-after date", n: 1, retryAfter: now.Add(500 * time.Millisecond).Format(http.TimeFormat), lo: 0, hi: time.Second},
		{name: "retry-after garbage ignored", n: 1, retryAfter: "soon", lo: 75 * time.Millisecond, hi: 125 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var resp *http.Response
			if tt.retryAfter != "" {
				resp = &http.Response{Header: http.Header{"Retry-After": {tt.retryAfter}}}
			}
			for range 50 {
				d := p.delay(tt.n, resp, now)
				if d < tt.lo || d > tt.hi {
					t.Fatalf("delay(%d) = %v, want within [%v, %v]", tt.n, d, tt.lo, tt.hi)
				}
			}
		})
	}
}

func TestRetryAfter(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		in     string
		want   time.Duration
		wantOK bool
	}{
		{in: "", wantOK: false},
		{in: "3", want: 3 * time.Second, wantOK: true},
		{in: "-1", wantOK: false},
		{in: now.Add(2 * time.Second).Format(http.TimeFormat), want: 2 * time.Second, wantOK: true},
		{in: now.Add(-time.Minute).Format(http.TimeFormat), want: 0, wantOK: true},
	}

	for _, tt := range tests {
		got, ok := retryAfter(tt.in, now)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("retryAfter(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestReplayable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method string
		key    string
		want   bool
	}{
		{method: http.MethodGet, want: true},
		{method: http.MethodPut, want: true},
		{method: http.MethodPost, want: false},
		{method: http.MethodPost, key: "k", want: true},
		{method: http.MethodPatch, want: false},
	}

	for _, tt := range tests {
		req, _ := http.NewRequestWithContext(context.Background(), tt.method, "http://ledger/", http.NoBody)
		if tt.key != "" {
			req.Header.Set(IdempotencyKeyHeader, tt.key)
		}
		if got := replayable(req); got != tt.want {
			t.Errorf("replayable(%s, key=%q) = %v, want %v", tt.method, tt.key, got, tt.want)
		}
	}
}

func TestRetryableErrAndStatus(t *testing.T) {
	t.Parallel()

	if retryableErr(nil) {
		t.Error("retryableErr(nil) = true")
	}
	if retryableErr(context.Canceled) || retryableErr(context.DeadlineExceeded) {
		t.Error("context errors must not be retried")
	}
	if !retryableErr(errors.New("connection reset")) {
		t.Error("transport error not retried")
	}

	for code, want := range map[int]bool{200: false, 404: false, 409: false, 429: true, 500: true, 503: true} {
		if got := retryableStatus(code); got != want {
			t.Errorf("retryableStatus(%d) = %v, want %v", code, got, want)
		}
	}
}
