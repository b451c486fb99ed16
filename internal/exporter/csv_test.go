package exporter

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complaintcli/internal/config"
	"complaintcli/internal/dataprocessing"
	"complaintcli/pkg/contracts/domain"
)

func sampleAnalysis() *dataprocessing.Analysis {
	return &dataprocessing.Analysis{
		Products: &domain.FrequencyTable{
			Column: domain.ColumnProduct,
			Entries: []domain.CategoryCount{
				{Value: "mortgage", Count: 2},
				{Value: "credit card", Count: 1},
			},
		},
		Companies: &domain.FrequencyTable{
			Column:  domain.ColumnCompany,
			Entries: []domain.CategoryCount{{Value: "bank a", Count: 3}},
		},
		Monthly: &domain.TimeSeries{
			Column: domain.ColumnDateReceived,
			Points: []domain.MonthlyCount{
				{Month: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), Count: 1},
				{Month: time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC), Count: 0},
				{Month: time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC), Count: 2},
			},
		},
		Resolution: &domain.FrequencyTable{
			Column: domain.ColumnResponseToConsumer,
			Entries: []domain.CategoryCount{
				{Value: "closed with explanation", Count: 2},
				{Value: "unknown", Count: 1},
			},
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}))).ReadAll()
	require.NoError(t, err)
	return records
}

func newTestWriter(t *testing.T, bom bool) (*CSVWriter, string) {
	t.Helper()
	base := t.TempDir()
	writer := NewCSVWriter(config.NewPaths(base), config.ExportConfig{Dir: "exports", BOMPrefix: bom}, nil)
	return writer, filepath.Join(base, "exports")
}

func TestCSVWriter_WriteFrequency(t *testing.T) {
	writer, dir := newTestWriter(t, false)

	err := writer.WriteFrequency(context.Background(), ProductsFile, sampleAnalysis().Products)
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"product", "count", "percent"},
		{"mortgage", "2", "66.7"},
		{"credit card", "1", "33.3"},
	}, readCSV(t, filepath.Join(dir, ProductsFile)))
}

func TestCSVWriter_WriteTimeSeries(t *testing.T) {
	writer, dir := newTestWriter(t, false)

	err := writer.WriteTimeSeries(context.Background(), MonthlyFile, sampleAnalysis().Monthly)
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"date_received", "count"},
		{"2020-01-31", "1"},
		{"2020-02-29", "0"},
		{"2020-03-31", "2"},
	}, readCSV(t, filepath.Join(dir, MonthlyFile)))
}

func TestCSVWriter_BOMPrefix(t *testing.T) {
	tests := []struct {
		name    string
		bom     bool
		wantBOM bool
	}{
		{name: "with bom", bom: true, wantBOM: true},
		{name: "without bom", bom: false, wantBOM: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer, dir := newTestWriter(t, tt.bom)
			require.NoError(t, writer.WriteFrequency(context.Background(), CompaniesFile, sampleAnalysis().Companies))

			data, err := os.ReadFile(filepath.Join(dir, CompaniesFile))
			require.NoError(t, err)
			assert.Equal(t, tt.wantBOM, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
		})
	}
}

func TestCSVWriter_ExportAnalysis(t *testing.T) {
	t.Run("writes every available result", func(t *testing.T) {
		writer, dir := newTestWriter(t, true)

		written, err := writer.ExportAnalysis(context.Background(), sampleAnalysis())
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{
			filepath.Join(dir, ProductsFile),
			filepath.Join(dir, CompaniesFile),
			filepath.Join(dir, ResolutionFile),
			filepath.Join(dir, MonthlyFile),
		}, written)

		resolution := readCSV(t, filepath.Join(dir, ResolutionFile))
		assert.Equal(t, []string{"closed with explanation", "2", "66.7"}, resolution[1])
	})

	t.Run("skips missing results", func(t *testing.T) {
		writer, dir := newTestWriter(t, false)
		analysis := sampleAnalysis()
		analysis.Companies = nil
		analysis.Monthly = nil

		written, err := writer.ExportAnalysis(context.Background(), analysis)
		require.NoError(t, err)
		assert.Len(t, written, 2)
		assert.NoFileExists(t, filepath.Join(dir, CompaniesFile))
	})

	t.Run("disabled without directory", func(t *testing.T) {
		writer := NewCSVWriter(config.NewPaths(t.TempDir()), config.ExportConfig{}, nil)
		assert.False(t, writer.Enabled())

		written, err := writer.ExportAnalysis(context.Background(), sampleAnalysis())
		require.NoError(t, err)
		assert.Empty(t, written)
	})
}
