package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"complaintcli/internal/config"
)

const (
	// InstrumentationName names the tracer and meter
	InstrumentationName = "complaintcli"
)

// OTelConfig holds OpenTelemetry configuration
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	TraceExporter  string // "stdout", "file", "none"
	TraceFile      string
	SampleRatio    float64
	// TraceWriter overrides the stdout destination of the "stdout" exporter
	TraceWriter io.Writer
}

// OTelProviders holds the OpenTelemetry providers
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Registry       *promclient.Registry
	Logger         *slog.Logger

	traceFile *os.File
}

// DefaultOTelConfig returns a configuration with tracing disabled
func DefaultOTelConfig() *OTelConfig {
	return &OTelConfig{
		ServiceName:    config.AppName,
		ServiceVersion: config.AppVersion,
		Environment:    "development",
		TraceExporter:  "none",
		SampleRatio:    1.0,
	}
}

// NewOTelConfig maps the telemetry section of the application config
func NewOTelConfig(cfg config.TelemetryConfig) *OTelConfig {
	return &OTelConfig{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: config.AppVersion,
		Environment:    cfg.Environment,
		TraceExporter:  cfg.TraceExporter,
		TraceFile:      cfg.TraceFile,
		SampleRatio:    cfg.SampleRatio,
	}
}

// InitializeOTel sets up tracing and metrics for one run. Providers are not
// installed globally; callers pass the returned Tracer and Meter along.
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil {
		cfg = DefaultOTelConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx := context.Background()

	res, err := createResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	providers := &OTelProviders{
		Logger: logger,
	}

	if err := initializeTracing(ctx, cfg, res, providers); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if err := initializeMetrics(ctx, cfg, res, providers); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	return providers, nil
}

// createResource creates the OpenTelemetry resource
func createResource(cfg *OTelConfig) (*resource.Resource, error) {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
		attribute.String("service.instance.id", GenerateTraceID()),
	), nil
}

// initializeTracing sets up OpenTelemetry tracing
func initializeTracing(ctx context.Context, cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	var opts []stdouttrace.Option

	switch cfg.TraceExporter {
	case "stdout":
		opts = append(opts, stdouttrace.WithPrettyPrint())
		if cfg.TraceWriter != nil {
			opts = append(opts, stdouttrace.WithWriter(cfg.TraceWriter))
		}
	case "file":
		if err := os.MkdirAll(filepath.Dir(cfg.TraceFile), 0755); err != nil {
			return fmt.Errorf("failed to create trace directory: %w", err)
		}
		file, err := os.Create(cfg.TraceFile)
		if err != nil {
			return fmt.Errorf("failed to create trace file: %w", err)
		}
		providers.traceFile = file
		opts = append(opts, stdouttrace.WithWriter(file))
	case "none", "":
		providers.Tracer = noop.NewTracerProvider().Tracer(InstrumentationName)
		return nil
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}

	exporter, err := stdouttrace.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	// A batch job ends right after the last span, so export synchronously.
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
	)

	providers.TracerProvider = tp
	providers.Tracer = tp.Tracer(InstrumentationName, trace.WithInstrumentationVersion(cfg.ServiceVersion))

	providers.Logger.DebugContext(ctx, "Tracing initialized",
		slog.String("exporter", cfg.TraceExporter),
		slog.Float64("sample_ratio", cfg.SampleRatio))

	return nil
}

// initializeMetrics backs the meter with a private Prometheus registry
func initializeMetrics(ctx context.Context, cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	registry := promclient.NewRegistry()

	exporter, err := prometheus.New(
		prometheus.WithRegisterer(registry),
		prometheus.WithoutScopeInfo(),
		prometheus.WithoutTargetInfo(),
	)
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	providers.Registry = registry
	providers.MeterProvider = mp
	providers.Meter = mp.Meter(InstrumentationName, metric.WithInstrumentationVersion(cfg.ServiceVersion))

	providers.Logger.DebugContext(ctx, "Metrics initialized", slog.String("exporter", "prometheus"))
	return nil
}

// WriteMetrics dumps the registry in Prometheus text format to path
// (node exporter textfile collector layout).
func (p *OTelProviders) WriteMetrics(path string) error {
	if p.Registry == nil {
		return errors.New("metrics are not initialized")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	return promclient.WriteToTextfile(path, p.Registry)
}

// Shutdown flushes and stops the providers
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var errs []error

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}
	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}
	if p.traceFile != nil {
		if err := p.traceFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("trace file close: %w", err))
		}
		p.traceFile = nil
	}

	return errors.Join(errs...)
}

// PipelineMetrics holds the instruments recorded by a complaint run
type PipelineMetrics struct {
	rowsLoaded    metric.Int64Counter
	cellsFilled   metric.Int64Counter
	datesCoerced  metric.Int64Counter
	stageDuration metric.Float64Histogram
}

// NewPipelineMetrics creates the pipeline instruments on meter
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	rowsLoaded, err := meter.Int64Counter(
		"complaint_rows_loaded",
		metric.WithDescription("Number of complaint rows loaded from the input file"),
	)
	if err != nil {
		return nil, err
	}

	cellsFilled, err := meter.Int64Counter(
		"complaint_cells_filled",
		metric.WithDescription("Number of missing cells replaced with the sentinel value"),
	)
	if err != nil {
		return nil, err
	}

	datesCoerced, err := meter.Int64Counter(
		"complaint_dates_coerced_null",
		metric.WithDescription("Number of unparsable date cells turned into nulls"),
	)
	if err != nil {
		return nil, err
	}

	stageDuration, err := meter.Float64Histogram(
		"complaint_stage_duration",
		metric.WithDescription("Pipeline stage duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		rowsLoaded:    rowsLoaded,
		cellsFilled:   cellsFilled,
		datesCoerced:  datesCoerced,
		stageDuration: stageDuration,
	}, nil
}

// RecordRowsLoaded counts loaded rows
func (m *PipelineMetrics) RecordRowsLoaded(ctx context.Context, rows int) {
	if m == nil {
		return
	}
	m.rowsLoaded.Add(ctx, int64(rows))
}

// RecordFilled counts sentinel fills for one column
func (m *PipelineMetrics) RecordFilled(ctx context.Context, column string, cells int) {
	if m == nil || cells == 0 {
		return
	}
	m.cellsFilled.Add(ctx, int64(cells), metric.WithAttributes(attribute.String("column", column)))
}

// RecordDatesCoerced counts date cells coerced to null for one column
func (m *PipelineMetrics) RecordDatesCoerced(ctx context.Context, column string, cells int) {
	if m == nil || cells == 0 {
		return
	}
	m.datesCoerced.Add(ctx, int64(cells), metric.WithAttributes(attribute.String("column", column)))
}

// RecordStage records a stage duration
func (m *PipelineMetrics) RecordStage(ctx context.Context, stage string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.stageDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.Bool("success", err == nil),
	))
}

// StartStage opens a span for a pipeline stage. The returned func ends the
// span, marks errors on it and records the stage duration.
func (p *OTelProviders) StartStage(ctx context.Context, stage string, metrics *PipelineMetrics) (context.Context, func(error)) {
	tracer := p.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(InstrumentationName)
	}

	start := time.Now()
	ctx, span := tracer.Start(ctx, stage, trace.WithAttributes(attribute.String("stage", stage)))
	if traceID := GetTraceID(ctx); traceID != "" {
		span.SetAttributes(attribute.String("run_id", traceID))
	}

	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
		metrics.RecordStage(ctx, stage, time.Since(start), err)
	}
}
