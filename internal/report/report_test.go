package report

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complaintcli/internal/dataprocessing"
	"complaintcli/internal/dataset"
	"complaintcli/internal/errors"
	"complaintcli/pkg/contracts/domain"
)

func normalized(t *testing.T, header []string, records [][]string) *dataset.Table {
	t.Helper()
	table := dataset.New(header, records)
	dataprocessing.NewNormalizer(nil).Normalize(context.Background(), table)
	return table
}

func TestGenerate(t *testing.T) {
	table := normalized(t,
		[]string{"Product", "Company", "Date received", "Complaint ID"},
		[][]string{
			{"Mortgage", "Bank A", "2020-01-15", "1"},
			{"Mortgage", "Bank B", "2020-02-10", "2"},
			{"Credit card", "Bank A", "13/45/2020", "3"},
		})

	want := "Complaint Report\n\n" +
		"\nTop 5 Products with Most Complaints:\n" +
		"product\n" +
		"mortgage       2\n" +
		"credit card    1\n" +
		"\nTop 5 Companies with Most Complaints:\n" +
		"company\n" +
		"bank a     2\n" +
		"bank b     1\n" +
		"\nComplaint Trends (Last 3 Months):\n" +
		"date_received\n" +
		"2020-01-31       1\n" +
		"2020-02-29       1\n"

	assert.Equal(t, want, Generate(table, 5))
}

func TestGenerate_DefaultTopN(t *testing.T) {
	table := normalized(t, []string{"Product"}, [][]string{{"a"}, {"b"}, {"c"}, {"d"}, {"e"}, {"f"}, {"g"}})

	out := Generate(table, 0)

	assert.Contains(t, out, "Top 5 Products with Most Complaints:")
	assert.Equal(t, 5, strings.Count(out, "    1"))
}

func TestGenerate_TopNLimits(t *testing.T) {
	table := normalized(t, []string{"Company"}, [][]string{{"x"}, {"y"}, {"y"}, {"z"}})

	out := Generate(table, 2)

	assert.Equal(t, "Complaint Report\n\n\nTop 2 Companies with Most Complaints:\ncompany\ny          2\nx          1\n", out)
}

func TestGenerate_RecentMonths(t *testing.T) {
	var records [][]string
	for m := 1; m <= 6; m++ {
		for i := 0; i < m; i++ {
			records = append(records, []string{time.Date(2021, time.Month(m), 10, 0, 0, 0, 0, time.UTC).Format("2006-01-02")})
		}
	}
	table := normalized(t, []string{"Date received"}, records)

	out := Generate(table, 5)

	assert.Contains(t, out, "2021-04-30       4\n2021-05-31       5\n2021-06-30       6\n")
	assert.NotContains(t, out, "2021-03-31")
}

func TestGenerate_SectionsFollowColumns(t *testing.T) {
	tests := []struct {
		name    string
		header  []string
		present []string
		absent  []string
	}{
		{
			name:    "no known columns",
			header:  []string{"State"},
			absent:  []string{"Products", "Companies", "Trends"},
			present: []string{"Complaint Report"},
		},
		{
			name:    "product only",
			header:  []string{"Product"},
			present: []string{"Top 5 Products"},
			absent:  []string{"Companies", "Trends"},
		},
		{
			name:    "dates only",
			header:  []string{"Date received"},
			present: []string{"Complaint Trends (Last 3 Months):"},
			absent:  []string{"Products", "Companies"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := make([]string, len(tt.header))
			for i := range row {
				row[i] = "2020-01-01"
			}
			out := Generate(normalized(t, tt.header, [][]string{row}), 5)
			for _, s := range tt.present {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestGenerate_EmptyTable(t *testing.T) {
	table := normalized(t, []string{"Product", "Company", "Date received"}, nil)

	var out string
	require.NotPanics(t, func() { out = Generate(table, 5) })

	assert.Equal(t, "Complaint Report\n\n"+
		"\nTop 5 Products with Most Complaints:\n\n"+
		"\nTop 5 Companies with Most Complaints:\n\n"+
		"\nComplaint Trends (Last 3 Months):\n\n", out)
}

func TestGenerateWithOptions(t *testing.T) {
	table := normalized(t, []string{"Date received"}, [][]string{{"2020-01-05"}, {"2020-03-05"}})

	out := GenerateWithOptions(table, Options{RecentMonths: 2, ResamplePolicy: dataprocessing.SkipEmpty})

	assert.Contains(t, out, "Complaint Trends (Last 2 Months):\ndate_received\n2020-01-31       1\n2020-03-31       1\n")
}

func TestFormatFrequency(t *testing.T) {
	ft := &domain.FrequencyTable{
		Column: "response_to_consumer",
		Entries: []domain.CategoryCount{
			{Value: "closed", Count: 120},
			{Value: "in progress", Count: 7},
		},
	}

	assert.Equal(t, "response_to_consumer\nclosed                  120\nin progress               7", FormatFrequency(ft))
	assert.Empty(t, FormatFrequency(&domain.FrequencyTable{Column: "product"}))
	assert.Empty(t, FormatFrequency(nil))
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "complaint_report.txt")

	require.NoError(t, Save(path, "Complaint Report\n\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Complaint Report\n\n", string(data))

	err = Save("", "x")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeValidation))
}
