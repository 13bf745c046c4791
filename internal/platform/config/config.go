// Package config provides configuration loading and validation for the service.
// Configuration is loaded from YAML files with environment variable overrides
// using a layered system: defaults -> base.yaml -> {profile}.yaml -> env vars.
package config

import "time"

// Config holds all configuration for the service.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Log        LogConfig        `koanf:"log"`
	Telemetry  TelemetryConfig  `koanf:"telemetry"`
	Escrow     EscrowConfig     `koanf:"escrow"`
	Storage    StorageConfig    `koanf:"storage"`
	Redis      RedisConfig      `koanf:"redis"`
	Events     EventsConfig     `koanf:"events"`
	Auth       AuthConfig       `koanf:"auth"`
	Ledger     LedgerConfig     `koanf:"ledger"`
	Dispatcher DispatcherConfig `koanf:"dispatcher"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string        `koanf:"host"`
	Port           int           `koanf:"port"`
	ReadTimeout    time.Duration `koanf:"read_timeout"`
	WriteTimeout   time.Duration `koanf:"write_timeout"`
	IdleTimeout    time.Duration `koanf:"idle_timeout"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
	DrainTimeout   time.Duration `koanf:"drain_timeout"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
	// SampleRatio is the fraction of root traces kept, 0 to 1.
	SampleRatio float64 `koanf:"sample_ratio"`
}

// EscrowConfig holds the contract identity and construction parameters.
// Amounts are base-10 strings in the smallest unit.
type EscrowConfig struct {
	AccountID        string `koanf:"account_id"`
	Owner            string `koanf:"owner"`
	Treasury         string `koanf:"treasury"`
	Freelancer       string `koanf:"freelancer"`
	StorageByteCost  string `koanf:"storage_byte_cost"`
	MaxDust          string `koanf:"max_dust"`
	ClientFeeBps     int    `koanf:"client_fee_bps"`
	FreelancerFeeBps int    `koanf:"freelancer_fee_bps"`
	// Bootstrap constructs the contract at startup when none exists.
	Bootstrap bool `koanf:"bootstrap"`
}

// StorageConfig selects the contract store and outbox backend.
type StorageConfig struct {
	Driver         string        `koanf:"driver"`
	DSN            string        `koanf:"dsn"`
	MaxConns       int32         `koanf:"max_conns"`
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
	Migrate        bool          `koanf:"migrate"`
}

// RedisConfig enables the distributed operation lock and idempotency cache.
type RedisConfig struct {
	Enabled        bool          `koanf:"enabled"`
	Addr           string        `koanf:"addr"`
	Password       string        `koanf:"password"`
	DB             int           `koanf:"db"`
	LockTTL        time.Duration `koanf:"lock_ttl"`
	LockRetry      time.Duration `koanf:"lock_retry"`
	IdempotencyTTL time.Duration `koanf:"idempotency_ttl"`
}

// EventsConfig selects the event sink.
type EventsConfig struct {
	Driver   string `koanf:"driver"`
	URL      string `koanf:"url"`
	Exchange string `koanf:"exchange"`
}

// AuthConfig holds bearer token verification settings.
type AuthConfig struct {
	JWTSecret string        `koanf:"jwt_secret"`
	Issuer    string        `koanf:"issuer"`
	Leeway    time.Duration `koanf:"leeway"`
}

// LedgerConfig selects the transfer backend.
type LedgerConfig struct {
	Driver string       `koanf:"driver"`
	Client ClientConfig `koanf:"client"`
	// Seed credits accounts of the memory ledger at startup.
	Seed []LedgerSeed `koanf:"seed"`
}

// LedgerSeed is one opening balance. Amount is base-10.
type LedgerSeed struct {
	Account string `koanf:"account"`
	Amount  string `koanf:"amount"`
}

// ClientConfig holds downstream HTTP client settings.
type ClientConfig struct {
	BaseURL        string               `koanf:"base_url"`
	Timeout        time.Duration        `koanf:"timeout"`
	Retry          RetryConfig          `koanf:"retry"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
	RateLimit      RateLimitConfig      `koanf:"rate_limit"`
}

// RetryConfig holds retry policy settings with exponential backoff.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"`
	InitialInterval time.Duration `koanf:"initial_interval"`
	MaxInterval     time.Duration `koanf:"max_interval"`
	Multiplier      float64       `koanf:"multiplier"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// RateLimitConfig caps outbound request rate. Zero disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	BurstSize         int     `koanf:"burst_size"`
}

// DispatcherConfig controls outbox draining.
type DispatcherConfig struct {
	Enabled     bool          `koanf:"enabled"`
	Interval    time.Duration `koanf:"interval"`
	BatchSize   int           `koanf:"batch_size"`
	Workers     int           `koanf:"workers"`
	MaxAttempts int           `koanf:"max_attempts"`
	Backoff     time.Duration `koanf:"backoff"`
	Lease       time.Duration `koanf:"lease"`
}
