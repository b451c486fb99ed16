package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"complaintcli/internal/config"
	"complaintcli/internal/dataprocessing"
	"complaintcli/internal/dataset"
	"complaintcli/internal/exporter"
	"complaintcli/internal/infrastructure"
	"complaintcli/internal/report"
	"complaintcli/internal/validation"
	"complaintcli/pkg/contracts"
)

// Pipeline stage names, used for spans and the stage duration histogram
const (
	StageLoad      = "load"
	StageNormalize = "normalize"
	StageAnalyze   = "analyze"
	StageCharts    = "render_charts"
	StageExport    = "export"
	StageReport    = "report"
)

// Application wires configuration, logging and telemetry around one
// complaint run
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.PipelineMetrics

	out        io.Writer
	ownsLogger bool
}

// Options overrides the process-wide defaults of NewApplication
type Options struct {
	// Stdout receives diagnostics and the report. Defaults to os.Stdout.
	Stdout io.Writer
	// Stderr receives console logs of the configured logger. Defaults to
	// os.Stderr.
	Stderr io.Writer
	// Logger replaces the configured global logger
	Logger *slog.Logger
	// BaseDir anchors relative paths. Defaults to the working directory.
	BaseDir string
}

// Result is what a run produced
type Result struct {
	RunID      string
	Rows       int
	Stats      dataprocessing.NormalizeStats
	Analysis   *dataprocessing.Analysis
	Report     string
	ReportPath string
	ChartsPath string
	Exported   []string
}

// NewApplication creates an application for cfg
func NewApplication(cfg *config.Config, opts Options) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	var paths *config.Paths
	if opts.BaseDir != "" {
		paths = config.NewPaths(opts.BaseDir)
	} else {
		p, err := config.GetPaths()
		if err != nil {
			return nil, fmt.Errorf("failed to get paths: %w", err)
		}
		paths = p
	}

	if err := paths.EnsureDirectories(cfg); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	a := &Application{
		Config: cfg,
		Paths:  paths,
		Logger: opts.Logger,
		out:    opts.Stdout,
	}
	if a.out == nil {
		a.out = os.Stdout
	}

	if a.Logger == nil {
		logCfg := cfg.Logging
		logCfg.FilePath = paths.Resolve(logCfg.FilePath)
		logger, err := infrastructure.InitializeLogger(logCfg, opts.Stderr)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.Logger = logger
		a.ownsLogger = true
	}

	a.Logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.GetVersionString()))
	paths.LogPathResolution(a.Logger, cfg)

	otelCfg := infrastructure.NewOTelConfig(cfg.Telemetry)
	otelCfg.TraceFile = paths.Resolve(otelCfg.TraceFile)
	providers, err := infrastructure.InitializeOTel(otelCfg, a.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	a.OTelProviders = providers

	metrics, err := infrastructure.NewPipelineMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
	}
	a.Metrics = metrics

	return a, nil
}

// Run executes load, normalize, analyze and report in order. Load and
// output failures are returned; diagnostics and chart rendering failures are
// logged and the run continues.
func (a *Application) Run(ctx context.Context) (*Result, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	result := &Result{RunID: infrastructure.GetTraceID(ctx)}

	a.Logger.InfoContext(ctx, "Complaint run started", slog.String("input", a.Config.Input.Path))

	table, err := a.load(ctx)
	if err != nil {
		return nil, err
	}
	result.Rows = table.Len()

	inspector := dataprocessing.NewInspector(a.out, infrastructure.WithComponent(a.Logger, "inspect"))
	a.diagnose(ctx, "head", func() error { return inspector.Head(table) })
	a.diagnose(ctx, "info", func() error { return inspector.Info(table) })
	a.diagnose(ctx, "describe", func() error { return inspector.Describe(table) })

	result.Stats = a.normalize(ctx, table)
	a.diagnose(ctx, "null_counts", func() error { return inspector.NullCounts(table) })

	result.Analysis = a.analyze(ctx, table)
	a.printAnalysis(result.Analysis)

	if a.Config.Charts.Enabled {
		result.ChartsPath = a.renderCharts(ctx, result.Analysis)
	}

	exported, err := a.export(ctx, result.Analysis)
	if err != nil {
		return nil, err
	}
	result.Exported = exported

	if err := a.report(ctx, table, result); err != nil {
		return nil, err
	}

	a.Logger.InfoContext(ctx, "Complaint run finished",
		slog.Int("rows", result.Rows),
		slog.String("report_path", result.ReportPath),
		slog.String("charts_path", result.ChartsPath))

	return result, nil
}

func (a *Application) load(ctx context.Context) (table *dataset.Table, err error) {
	ctx, end := a.OTelProviders.StartStage(ctx, StageLoad, a.Metrics)
	defer func() { end(err) }()

	table, err = dataprocessing.LoadFile(ctx, a.Paths.Resolve(a.Config.Input.Path), dataprocessing.LoadOptions{
		Delimiter: a.Config.DelimiterRune(),
		Sheet:     a.Config.Input.Sheet,
		Logger:    infrastructure.WithComponent(a.Logger, "loader"),
	})
	if err != nil {
		a.Logger.ErrorContext(ctx, "Failed to load input", slog.String("error", err.Error()))
		return nil, err
	}
	a.Metrics.RecordRowsLoaded(ctx, table.Len())
	return table, nil
}

func (a *Application) normalize(ctx context.Context, table *dataset.Table) dataprocessing.NormalizeStats {
	ctx, end := a.OTelProviders.StartStage(ctx, StageNormalize, a.Metrics)
	defer end(nil)

	stats := dataprocessing.NewNormalizer(infrastructure.WithComponent(a.Logger, "normalizer")).Normalize(ctx, table)
	for column, cells := range stats.Filled {
		a.Metrics.RecordFilled(ctx, column, cells)
	}
	for column, cells := range stats.DatesCoerced {
		a.Metrics.RecordDatesCoerced(ctx, column, cells)
	}

	a.Logger.InfoContext(ctx, "Table normalized",
		slog.Int("renamed", len(stats.Renamed)),
		slog.Any("filled", stats.Filled),
		slog.Any("dates_coerced", stats.DatesCoerced))
	return stats
}

func (a *Application) analyze(ctx context.Context, table *dataset.Table) *dataprocessing.Analysis {
	_, end := a.OTelProviders.StartStage(ctx, StageAnalyze, a.Metrics)
	defer end(nil)

	return dataprocessing.Analyze(table, dataprocessing.AnalysisOptions{
		TopCategories:  a.Config.Analysis.TopCategories,
		ResamplePolicy: dataprocessing.ParseResamplePolicy(a.Config.Analysis.ResamplePolicy),
	})
}

// printAnalysis writes each available breakdown to the console. The monthly
// trend shows its first five periods.
func (a *Application) printAnalysis(analysis *dataprocessing.Analysis) {
	if analysis.Products != nil {
		fmt.Fprintf(a.out, "\nComplaint Volume by Product:\n%s\n", report.FormatFrequency(analysis.Products))
	}
	if analysis.Companies != nil {
		fmt.Fprintf(a.out, "\nComplaint Volume by Company:\n%s\n", report.FormatFrequency(analysis.Companies))
	}
	if analysis.Monthly != nil {
		fmt.Fprintf(a.out, "\nComplaint Trends Over Time:\n%s\n", report.FormatTimeSeries(analysis.Monthly.Head(5)))
	}
	if analysis.Resolution != nil {
		fmt.Fprintf(a.out, "\nComplaint Resolution Analysis:\n%s\n", report.FormatFrequency(analysis.Resolution))
	}
}

func (a *Application) renderCharts(ctx context.Context, analysis *dataprocessing.Analysis) string {
	ctx, end := a.OTelProviders.StartStage(ctx, StageCharts, a.Metrics)

	path := a.Paths.Resolve(a.Config.Charts.OutputFile)
	err := exporter.NewChartWriter(infrastructure.WithComponent(a.Logger, "charts")).Render(ctx, analysis, path)
	end(err)
	if err != nil {
		a.Logger.WarnContext(ctx, "Chart rendering failed", slog.String("error", err.Error()))
		return ""
	}
	if analysis.Empty() {
		return ""
	}
	return path
}

func (a *Application) export(ctx context.Context, analysis *dataprocessing.Analysis) (written []string, err error) {
	writer := exporter.NewCSVWriter(a.Paths, a.Config.Export, infrastructure.WithComponent(a.Logger, "csv"))
	if !writer.Enabled() {
		return nil, nil
	}

	ctx, end := a.OTelProviders.StartStage(ctx, StageExport, a.Metrics)
	defer func() { end(err) }()

	dir := a.Paths.Resolve(a.Config.Export.Dir)
	if err := validation.NewFileValidator(a.Logger).ValidateOutputDirectory(dir); err != nil {
		return nil, err
	}
	return writer.ExportAnalysis(ctx, analysis)
}

func (a *Application) report(ctx context.Context, table *dataset.Table, result *Result) (err error) {
	ctx, end := a.OTelProviders.StartStage(ctx, StageReport, a.Metrics)
	defer func() { end(err) }()

	result.Report = report.GenerateWithOptions(table, report.Options{
		TopN:           a.Config.Report.TopN,
		RecentMonths:   a.Config.Report.RecentMonths,
		ResamplePolicy: dataprocessing.ParseResamplePolicy(a.Config.Analysis.ResamplePolicy),
	})
	if _, err := fmt.Fprintln(a.out, result.Report); err != nil {
		return fmt.Errorf("failed to print report: %w", err)
	}

	if a.Config.Report.OutputFile == "" {
		return nil
	}
	path := a.Paths.Resolve(a.Config.Report.OutputFile)
	if err := report.Save(path, result.Report); err != nil {
		a.Logger.ErrorContext(ctx, "Failed to save report", slog.String("error", err.Error()))
		return err
	}
	result.ReportPath = path
	a.Logger.InfoContext(ctx, "Report saved", slog.String("path", path))
	return nil
}

func (a *Application) diagnose(ctx context.Context, name string, fn func() error) {
	if err := fn(); err != nil {
		a.Logger.WarnContext(ctx, "Diagnostics failed",
			slog.String("diagnostic", name),
			slog.String("error", err.Error()))
	}
}

// Stop writes the metrics textfile when configured and shuts telemetry down
func (a *Application) Stop(ctx context.Context) error {
	var firstErr error

	if a.OTelProviders != nil {
		if path := a.Config.Telemetry.MetricsFile; path != "" {
			if err := a.OTelProviders.WriteMetrics(a.Paths.Resolve(path)); err != nil {
				a.Logger.ErrorContext(ctx, "Failed to write metrics", slog.String("error", err.Error()))
				firstErr = err
			}
		}
		if err := a.OTelProviders.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if a.ownsLogger {
		if err := infrastructure.CloseLogFile(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

