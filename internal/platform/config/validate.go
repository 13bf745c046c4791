package config

import (
	"errors"
	"fmt"
	"strings"
)

const maxBps = 10_000

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Log.validate(),
		c.Telemetry.validate(),
		c.Escrow.validate(),
		c.Storage.validate(),
		c.Redis.validate(),
		c.Events.validate(),
		c.Auth.validate(),
		c.Ledger.validate(),
		c.Dispatcher.validate(),
	)
}

func (s *ServerConfig) validate() error {
	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}
	if s.RequestTimeout <= 0 {
		errs = append(errs, errors.New("server.request_timeout must be positive"))
	}
	if s.DrainTimeout <= 0 {
		errs = append(errs, errors.New("server.drain_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
		// Valid levels.
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
		// Valid formats.
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
		// Valid exporters.
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}
	if t.SampleRatio < 0 || t.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("telemetry.sample_ratio must be between 0 and 1, got %v", t.SampleRatio))
	}

	return errors.Join(errs...)
}

func (e *EscrowConfig) validate() error {
	var errs []error

	if strings.TrimSpace(e.AccountID) == "" {
		errs = append(errs, errors.New("escrow.account_id must not be empty"))
	}
	if !isDecimal(e.StorageByteCost) {
		errs = append(errs, fmt.Errorf("escrow.storage_byte_cost must be a non-negative integer, got %q", e.StorageByteCost))
	}
	if !isDecimal(e.MaxDust) {
		errs = append(errs, fmt.Errorf("escrow.max_dust must be a non-negative integer, got %q", e.MaxDust))
	}
	if e.ClientFeeBps < 0 || e.ClientFeeBps > maxBps {
		errs = append(errs, fmt.Errorf("escrow.client_fee_bps must be 0-%d, got %d", maxBps, e.ClientFeeBps))
	}
	if e.FreelancerFeeBps < 0 || e.FreelancerFeeBps > maxBps {
		errs = append(errs, fmt.Errorf("escrow.freelancer_fee_bps must be 0-%d, got %d", maxBps, e.FreelancerFeeBps))
	}
	if e.Bootstrap {
		for name, v := range map[string]string{"owner": e.Owner, "treasury": e.Treasury, "freelancer": e.Freelancer} {
			if strings.TrimSpace(v) == "" {
				errs = append(errs, fmt.Errorf("escrow.%s must not be empty when escrow.bootstrap is set", name))
			}
		}
	}

	return errors.Join(errs...)
}

func (s *StorageConfig) validate() error {
	var errs []error

	switch s.Driver {
	case "memory":
	case "postgres":
		if s.DSN == "" {
			errs = append(errs, errors.New("storage.dsn must not be empty when driver is postgres"))
		}
		if s.MaxConns < 1 {
			errs = append(errs, fmt.Errorf("storage.max_conns must be >= 1, got %d", s.MaxConns))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.driver must be one of: memory, postgres; got %q", s.Driver))
	}

	return errors.Join(errs...)
}

func (r *RedisConfig) validate() error {
	if !r.Enabled {
		return nil
	}

	var errs []error

	if r.Addr == "" {
		errs = append(errs, errors.New("redis.addr must not be empty when redis is enabled"))
	}
	if r.LockTTL <= 0 {
		errs = append(errs, errors.New("redis.lock_ttl must be positive"))
	}
	if r.LockRetry <= 0 {
		errs = append(errs, errors.New("redis.lock_retry must be positive"))
	}
	if r.IdempotencyTTL <= 0 {
		errs = append(errs, errors.New("redis.idempotency_ttl must be positive"))
	}

	return errors.Join(errs...)
}

func (e *EventsConfig) validate() error {
	var errs []error

	switch e.Driver {
	case "log":
	case "rabbitmq":
		if e.URL == "" {
			errs = append(errs, errors.New("events.url must not be empty when driver is rabbitmq"))
		}
		if e.Exchange == "" {
			errs = append(errs, errors.New("events.exchange must not be empty when driver is rabbitmq"))
		}
	default:
		errs = append(errs, fmt.Errorf("events.driver must be one of: log, rabbitmq; got %q", e.Driver))
	}

	return errors.Join(errs...)
}

func (a *AuthConfig) validate() error {
	if len(a.JWTSecret) < 32 {
		return errors.New("auth.jwt_secret must be at least 32 bytes")
	}
	return nil
}

func (l *LedgerConfig) validate() error {
	switch l.Driver {
	case "memory":
		var errs []error
		for i, s := range l.Seed {
			if s.Account == "" {
				errs = append(errs, fmt.Errorf("ledger.seed[%d].account must not be empty", i))
			}
			if !isDecimal(s.Amount) {
				errs = append(errs, fmt.Errorf("ledger.seed[%d].amount must be a base-10 integer, got %q", i, s.Amount))
			}
		}
		return errors.Join(errs...)
	case "http":
		return l.Client.validate()
	default:
		return fmt.Errorf("ledger.driver must be one of: memory, http; got %q", l.Driver)
	}
}

func (cl *ClientConfig) validate() error {
	var errs []error

	if cl.BaseURL == "" {
		errs = append(errs, errors.New("ledger.client.base_url must not be empty"))
	}
	if cl.Timeout <= 0 {
		errs = append(errs, errors.New("ledger.client.timeout must be positive"))
	}
	if cl.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("ledger.client.retry.max_attempts must be >= 1, got %d", cl.Retry.MaxAttempts))
	}
	if cl.Retry.Multiplier <= 0 {
		errs = append(errs, fmt.Errorf("ledger.client.retry.multiplier must be positive, got %f", cl.Retry.Multiplier))
	}
	if cl.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("ledger.client.circuit_breaker.max_failures must be >= 1, got %d",
			cl.CircuitBreaker.MaxFailures))
	}
	if cl.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("ledger.client.rate_limit.requests_per_second must not be negative, got %f",
			cl.RateLimit.RequestsPerSecond))
	}
	if cl.RateLimit.RequestsPerSecond > 0 && cl.RateLimit.BurstSize < 1 {
		errs = append(errs, fmt.Errorf("ledger.client.rate_limit.burst_size must be >= 1, got %d", cl.RateLimit.BurstSize))
	}

	return errors.Join(errs...)
}

func (d *DispatcherConfig) validate() error {
	if !d.Enabled {
		return nil
	}

	var errs []error

	if d.Interval <= 0 {
		errs = append(errs, errors.New("dispatcher.interval must be positive"))
	}
	if d.BatchSize < 1 {
		errs = append(errs, fmt.Errorf("dispatcher.batch_size must be >= 1, got %d", d.BatchSize))
	}
	if d.Workers < 1 {
		errs = append(errs, fmt.Errorf("dispatcher.workers must be >= 1, got %d", d.Workers))
	}
	if d.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("dispatcher.max_attempts must be >= 1, got %d", d.MaxAttempts))
	}
	if d.Backoff < 0 {
		errs = append(errs, errors.New("dispatcher.backoff must not be negative"))
	}
	if d.Lease <= 0 {
		errs = append(errs, errors.New("dispatcher.lease must be positive"))
	}

	return errors.Join(errs...)
}

// isDecimal reports whether s is a non-empty string of ASCII digits.
func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
