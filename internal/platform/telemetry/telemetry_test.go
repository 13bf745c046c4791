package telemetry_test

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/jsamuelsen11/milestone-escrow/internal/platform/config"
	"github.com/jsamuelsen11/milestone-escrow/internal/platform/telemetry"
)

func TestStart(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.TelemetryConfig
		wantErr bool
	}{
		{name: "stdout", cfg: config.TelemetryConfig{Exporter: telemetry.ExporterStdout, ServiceName: "escrow-test", SampleRatio: 1}},
		{name: "otlp url", cfg: config.TelemetryConfig{Exporter: telemetry.ExporterOTLP, Endpoint: "http://localhost:4318", ServiceName: "escrow-test", SampleRatio: 1}},
		{name: "otlp host port", cfg: config.TelemetryConfig{Exporter: telemetry.ExporterOTLP, Endpoint: "localhost:4318", ServiceName: "escrow-test"}},
		{name: "otlp without endpoint", cfg: config.TelemetryConfig{Exporter: telemetry.ExporterOTLP}, wantErr: true},
		{name: "unknown exporter", cfg: config.TelemetryConfig{Exporter: "zipkin"}, wantErr: true},
	}

	// Start registers global providers, so these cases run sequentially.
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			p, err := telemetry.Start(ctx, tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Start() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Start() error = %v", err)
			}
			// Shutdown may fail to flush without a collector.
			t.Cleanup(func() { _ = p.Shutdown(ctx) })

			if p.Metrics == nil {
				t.Error("Providers.Metrics = nil, want instruments")
			}
			if len(otel.GetTextMapPropagator().Fields()) == 0 {
				t.Error("global propagator has no fields, want traceparent and baggage")
			}
		})
	}
}

func TestProviders_ZeroValueShutdown(t *testing.T) {
	t.Parallel()

	var p telemetry.Providers
	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() on zero Providers error = %v", err)
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()

	var m *telemetry.Metrics
	m.RecordServer(context.Background(), "GET", "/api/v1/project", 200, time.Millisecond)
	m.RecordClient(context.Background(), "ledger", "POST", 201, "success", time.Millisecond)
}

func TestMetrics_Record(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := telemetry.NewMetrics(mp, "escrow-test")
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}

	ctx := context.Background()
	m.RecordServer(ctx, "POST", "/api/v1/schedules/{id}/fund", 422, 3*time.Millisecond)
	m.RecordServer(ctx, "GET", "/api/v1/project", 200, time.Millisecond)
	m.RecordClient(ctx, "ledger", "POST", 0, "circuit_open", time.Millisecond)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	totals := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			sum, ok := md.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				totals[md.Name] += dp.Value
			}
		}
	}

	if totals["http.server.request.total"] != 2 {
		t.Errorf("http.server.request.total = %d, want 2", totals["http.server.request.total"])
	}
	if totals["http.client.request.total"] != 1 {
		t.Errorf("http.client.request.total = %d, want 1", totals["http.client.request.total"])
	}
}
