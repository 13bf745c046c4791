package config

const (
	defaultServerPort = 8080

	defaultRetryMaxAttempts = 3
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1

	defaultClientFeeBps     = 200
	defaultFreelancerFeeBps = 300

	defaultStorageMaxConns = 10

	defaultDispatcherBatchSize   = 100
	defaultDispatcherWorkers     = 4
	defaultDispatcherMaxAttempts = 5
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":            "0.0.0.0",
		"server.port":            defaultServerPort,
		"server.read_timeout":    "5s",
		"server.write_timeout":   "10s",
		"server.idle_timeout":    "120s",
		"server.request_timeout": "15s",
		"server.drain_timeout":   "15s",

		"log.level":  "info",
		"log.format": "json",

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "milestone-escrow",
		"telemetry.sample_ratio": 1.0,

		"escrow.account_id":         "escrow",
		"escrow.owner":              "",
		"escrow.treasury":           "",
		"escrow.freelancer":         "",
		"escrow.storage_byte_cost":  "10000000000000000000",
		"escrow.max_dust":           "1000000000000000000000000",
		"escrow.client_fee_bps":     defaultClientFeeBps,
		"escrow.freelancer_fee_bps": defaultFreelancerFeeBps,
		"escrow.bootstrap":          false,

		"storage.driver":          "memory",
		"storage.dsn":             "",
		"storage.max_conns":       defaultStorageMaxConns,
		"storage.connect_timeout": "5s",
		"storage.migrate":         true,

		"redis.enabled":         false,
		"redis.addr":            "localhost:6379",
		"redis.password":        "",
		"redis.db":              0,
		"redis.lock_ttl":        "10s",
		"redis.lock_retry":      "50ms",
		"redis.idempotency_ttl": "24h",

		"events.driver":   "log",
		"events.url":      "",
		"events.exchange": "escrow.events",

		"auth.jwt_secret": "",
		"auth.issuer":     "",
		"auth.leeway":     "30s",

		"ledger.driver":                                 "memory",
		"ledger.client.base_url":                        "http://localhost:8081",
		"ledger.client.timeout":                         "30s",
		"ledger.client.retry.max_attempts":              defaultRetryMaxAttempts,
		"ledger.client.retry.initial_interval":          "100ms",
		"ledger.client.retry.max_interval":              "10s",
		"ledger.client.retry.multiplier":                defaultRetryMultiplier,
		"ledger.client.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"ledger.client.circuit_breaker.timeout":         "30s",
		"ledger.client.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"ledger.client.rate_limit.requests_per_second":  0,
		"ledger.client.rate_limit.burst_size":           1,

		"dispatcher.enabled":      true,
		"dispatcher.interval":     "1s",
		"dispatcher.batch_size":   defaultDispatcherBatchSize,
		"dispatcher.workers":      defaultDispatcherWorkers,
		"dispatcher.max_attempts": defaultDispatcherMaxAttempts,
		"dispatcher.backoff":      "5s",
		"dispatcher.lease":        "1m",
	}
}
