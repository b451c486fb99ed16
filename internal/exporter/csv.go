package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"complaintcli/internal/config"
	"complaintcli/internal/dataprocessing"
	"complaintcli/pkg/contracts/domain"
)

// Export file names written by ExportAnalysis
const (
	ProductsFile   = "products.csv"
	CompaniesFile  = "companies.csv"
	MonthlyFile    = "monthly.csv"
	ResolutionFile = "resolution.csv"
)

// CSVWriter provides CSV export of aggregates
type CSVWriter struct {
	paths     *config.Paths
	dir       string
	bomPrefix bool
	logger    *slog.Logger
}

// NewCSVWriter creates a CSV writer for the export section of the config.
// An empty export directory disables the writer.
func NewCSVWriter(paths *config.Paths, cfg config.ExportConfig, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{
		paths:     paths,
		dir:       cfg.Dir,
		bomPrefix: cfg.BOMPrefix,
		logger:    logger,
	}
}

// Enabled reports whether an export directory is configured
func (w *CSVWriter) Enabled() bool {
	return w.dir != ""
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(ctx context.Context, filePath string, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	w.logger.DebugContext(ctx, "Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return file.Close()
}

// WriteFrequency writes a frequency table as value,count,percent rows
func (w *CSVWriter) WriteFrequency(ctx context.Context, filePath string, ft *domain.FrequencyTable) error {
	shares := ft.Shares()
	records := make([][]string, len(shares))
	for i, s := range shares {
		records[i] = []string{s.Value, formatInt(s.Count), formatPercent(s.Percent)}
	}
	return w.WriteCSV(ctx, filePath, WriteOptions{
		Headers:   []string{ft.Column, "count", "percent"},
		Records:   records,
		BOMPrefix: w.bomPrefix,
	})
}

// WriteTimeSeries writes a time series as period,count rows labelled by
// month end
func (w *CSVWriter) WriteTimeSeries(ctx context.Context, filePath string, ts *domain.TimeSeries) error {
	records := make([][]string, len(ts.Points))
	for i, p := range ts.Points {
		records[i] = []string{p.Label(), formatInt(p.Count)}
	}
	return w.WriteCSV(ctx, filePath, WriteOptions{
		Headers:   []string{ts.Column, "count"},
		Records:   records,
		BOMPrefix: w.bomPrefix,
	})
}

// ExportAnalysis writes every available result of analysis to the export
// directory. It returns the written paths.
func (w *CSVWriter) ExportAnalysis(ctx context.Context, analysis *dataprocessing.Analysis) ([]string, error) {
	if !w.Enabled() || analysis == nil {
		return nil, nil
	}

	var written []string
	frequencies := []struct {
		file string
		ft   *domain.FrequencyTable
	}{
		{ProductsFile, analysis.Products},
		{CompaniesFile, analysis.Companies},
		{ResolutionFile, analysis.Resolution},
	}
	for _, f := range frequencies {
		if f.ft == nil {
			continue
		}
		if err := w.WriteFrequency(ctx, f.file, f.ft); err != nil {
			return written, fmt.Errorf("export %s: %w", f.file, err)
		}
		written = append(written, w.resolvePath(f.file))
	}

	if analysis.Monthly != nil {
		if err := w.WriteTimeSeries(ctx, MonthlyFile, analysis.Monthly); err != nil {
			return written, fmt.Errorf("export %s: %w", MonthlyFile, err)
		}
		written = append(written, w.resolvePath(MonthlyFile))
	}

	w.logger.InfoContext(ctx, "Aggregates exported",
		slog.String("dir", w.resolvePath("")),
		slog.Int("files", len(written)))
	return written, nil
}

// resolvePath places relative file names under the export directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) {
		return filePath
	}
	dir := w.dir
	if w.paths != nil {
		dir = w.paths.Resolve(dir)
	}
	return filepath.Join(dir, filePath)
}
