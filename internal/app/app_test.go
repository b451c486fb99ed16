package app

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complaintcli/internal/config"
	"complaintcli/internal/errors"
	"complaintcli/internal/exporter"
	"complaintcli/internal/shared/testutil"
)

type fixture struct {
	base   string
	cfg    *config.Config
	stdout *bytes.Buffer
	logs   *testutil.CaptureHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	base := t.TempDir()
	testutil.WriteFile(t, base, "rows.csv", testutil.ComplaintsCSV)

	cfg := config.Default()
	cfg.Report.OutputFile = "reports/complaint_report.txt"
	cfg.Export.Dir = "exports"
	cfg.Telemetry.MetricsFile = "metrics/complaint.prom"

	return &fixture{base: base, cfg: cfg, stdout: &bytes.Buffer{}, logs: testutil.NewCaptureHandler(t)}
}

func (f *fixture) app(t *testing.T) *Application {
	t.Helper()
	application, err := NewApplication(f.cfg, Options{
		Stdout:  f.stdout,
		Logger:  slog.New(f.logs),
		BaseDir: f.base,
	})
	require.NoError(t, err)
	return application
}

func TestApplication_Run(t *testing.T) {
	f := newFixture(t)
	application := f.app(t)

	result, err := application.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, application.Stop(context.Background()))

	t.Run("result", func(t *testing.T) {
		assert.NotEmpty(t, result.RunID)
		assert.Equal(t, 3, result.Rows)
		assert.Equal(t, map[string]int{"mortgage": 2, "credit card": 1}, result.Analysis.Products.Map())
		assert.Equal(t, map[string]int{"closed with explanation": 2, "in progress": 1}, result.Analysis.Resolution.Map())
		assert.Equal(t, 2, result.Stats.Filled["consumer_complaint"])
		assert.Equal(t, 1, result.Stats.Filled["consumer_disputed"], "N/A is read as missing")
		assert.Equal(t, 1, result.Stats.DatesCoerced["date_received"])
	})

	t.Run("console output", func(t *testing.T) {
		out := f.stdout.String()
		assert.Contains(t, out, "RangeIndex: 3 entries")
		assert.Contains(t, out, "dtype: int64")
		assert.Contains(t, out, "Complaint Volume by Product:")
		assert.Contains(t, out, "Complaint Resolution Analysis:")
		assert.Contains(t, out, result.Report)
	})

	t.Run("report saved", func(t *testing.T) {
		assert.Equal(t, filepath.Join(f.base, "reports", "complaint_report.txt"), result.ReportPath)
		data, err := os.ReadFile(result.ReportPath)
		require.NoError(t, err)
		assert.Equal(t, result.Report, string(data))
		assert.Contains(t, result.Report, "Top 5 Products with Most Complaints:")
	})

	t.Run("charts rendered", func(t *testing.T) {
		assert.Equal(t, filepath.Join(f.base, config.DefaultChartsFile), result.ChartsPath)
		assert.FileExists(t, result.ChartsPath)
	})

	t.Run("aggregates exported", func(t *testing.T) {
		assert.Len(t, result.Exported, 4)
		assert.FileExists(t, filepath.Join(f.base, "exports", exporter.MonthlyFile))
	})

	t.Run("logs", func(t *testing.T) {
		testutil.AssertLogContains(t, f.logs, slog.LevelInfo, "Complaint run finished")
		r := testutil.AssertLogContains(t, f.logs, slog.LevelWarn, "Unparsable dates set to null")
		assert.Equal(t, "date_received", r.Attrs["column"])
		testutil.AssertNoErrors(t, f.logs)
	})

	t.Run("metrics written", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(f.base, "metrics", "complaint.prom"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "complaint_rows_loaded_total 3")
		assert.Contains(t, string(data), "complaint_stage_duration_seconds")
	})
}

func TestApplication_RunMissingInput(t *testing.T) {
	f := newFixture(t)
	f.cfg.Input.Path = "absent.csv"
	application := f.app(t)
	defer application.Stop(context.Background())

	result, err := application.Run(context.Background())

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.IsType(err, errors.ErrTypeNotFound))
	testutil.AssertLogContains(t, f.logs, slog.LevelError, "Failed to load input")
}

func TestApplication_OptionalOutputsDisabled(t *testing.T) {
	f := newFixture(t)
	f.cfg.Charts.Enabled = false
	f.cfg.Report.OutputFile = ""
	f.cfg.Export.Dir = ""
	f.cfg.Telemetry.MetricsFile = ""
	application := f.app(t)

	result, err := application.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, application.Stop(context.Background()))

	assert.Empty(t, result.ChartsPath)
	assert.Empty(t, result.ReportPath)
	assert.Empty(t, result.Exported)
	assert.NoFileExists(t, filepath.Join(f.base, config.DefaultChartsFile))
	assert.Contains(t, f.stdout.String(), "Complaint Report")
}

func TestApplication_RunWithoutKnownColumns(t *testing.T) {
	f := newFixture(t)
	testutil.WriteFile(t, f.base, "rows.csv", "State\nNY\n")
	application := f.app(t)
	defer application.Stop(context.Background())

	result, err := application.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Analysis.Empty())
	assert.Empty(t, result.ChartsPath)
	assert.Equal(t, "Complaint Report\n\n", result.Report)
}

func TestNewApplication_RequiresConfig(t *testing.T) {
	_, err := NewApplication(nil, Options{})
	require.Error(t, err)
}
