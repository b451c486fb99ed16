package dataprocessing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"complaintcli/internal/errors"
	"complaintcli/pkg/contracts/domain"
)

const sampleCSV = `Product,Company,Date received,Complaint ID
Mortgage,Bank A,2020-01-15,1001
Mortgage,Bank B,2020-02-10,1002
Credit card,Bank A,13/45/2020,1003
`

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile_Delimited(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		content   string
		opts      LoadOptions
		wantNames []string
		wantRows  int
	}{
		{
			name:      "csv with header",
			file:      "rows.csv",
			content:   sampleCSV,
			wantNames: []string{"Product", "Company", "Date received", "Complaint ID"},
			wantRows:  3,
		},
		{
			name:      "utf-8 bom is stripped from first header",
			file:      "rows.csv",
			content:   "\ufeffProduct,Company\nMortgage,Bank A\n",
			wantNames: []string{"Product", "Company"},
			wantRows:  1,
		},
		{
			name:      "tsv defaults to tab",
			file:      "rows.tsv",
			content:   "Product\tCompany\nMortgage\tBank A\n",
			wantNames: []string{"Product", "Company"},
			wantRows:  1,
		},
		{
			name:      "explicit delimiter",
			file:      "rows.txt",
			content:   "Product;Company\nMortgage;Bank A\n",
			opts:      LoadOptions{Delimiter: ';'},
			wantNames: []string{"Product", "Company"},
			wantRows:  1,
		},
		{
			name:      "ragged rows are tolerated",
			file:      "rows.csv",
			content:   "Product,Company,State\nMortgage\nCredit card,Bank A,NY,extra\n",
			wantNames: []string{"Product", "Company", "State"},
			wantRows:  2,
		},
		{
			name:     "empty file",
			file:     "rows.csv",
			content:  "",
			wantRows: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeInput(t, tt.file, tt.content)

			table, err := LoadFile(context.Background(), path, tt.opts)
			require.NoError(t, err)

			if tt.wantNames == nil {
				assert.Zero(t, table.Width())
			} else {
				assert.Equal(t, tt.wantNames, table.Names())
			}
			assert.Equal(t, tt.wantRows, table.Len())
		})
	}
}

func TestLoadFile_RaggedRowsPadWithNull(t *testing.T) {
	path := writeInput(t, "rows.csv", "Product,Company,State\nMortgage\n")

	table, err := LoadFile(context.Background(), path, LoadOptions{})
	require.NoError(t, err)

	row := table.Row(0)
	assert.Equal(t, "Mortgage", row["Product"].String())
	assert.True(t, row["Company"].IsNull())
	assert.True(t, row["State"].IsNull())
}

func TestLoadFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(context.Background(), filepath.Join(t.TempDir(), "absent.csv"), LoadOptions{})
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrTypeNotFound))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := LoadFile(context.Background(), t.TempDir(), LoadOptions{})
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrTypeParsing))
	})

	t.Run("invalid delimiter", func(t *testing.T) {
		path := writeInput(t, "rows.csv", sampleCSV)
		_, err := LoadFile(context.Background(), path, LoadOptions{Delimiter: '"'})
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrTypeParsing))
	})

	t.Run("corrupt workbook", func(t *testing.T) {
		path := writeInput(t, "rows.xlsx", "not a zip archive")
		_, err := LoadFile(context.Background(), path, LoadOptions{})
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrTypeParsing))
	})
}

func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}

	path := filepath.Join(t.TempDir(), "rows.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadFile_Workbook(t *testing.T) {
	rows := [][]interface{}{
		{"Product", "Company", "Date received"},
		{"Mortgage", "Bank A", "2020-01-15"},
		{"Credit card", "Bank B", "2020-02-10"},
	}

	t.Run("first sheet by default", func(t *testing.T) {
		path := writeWorkbook(t, "Sheet1", rows)

		table, err := LoadFile(context.Background(), path, LoadOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"Product", "Company", "Date received"}, table.Names())
		assert.Equal(t, 2, table.Len())
		assert.Equal(t, "Credit card", table.Row(1)["Product"].String())
	})

	t.Run("named sheet", func(t *testing.T) {
		path := writeWorkbook(t, "Complaints", rows)

		table, err := LoadFile(context.Background(), path, LoadOptions{Sheet: "Complaints"})
		require.NoError(t, err)
		assert.Equal(t, 2, table.Len())
	})

	t.Run("missing sheet", func(t *testing.T) {
		path := writeWorkbook(t, "Sheet1", rows)

		_, err := LoadFile(context.Background(), path, LoadOptions{Sheet: "Absent"})
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrTypeNotFound))
	})
}

func TestLoadFile_NATokensAreMissing(t *testing.T) {
	const content = `Product,Consumer disputed?,Date received
Mortgage,N/A,2020-01-15
Mortgage,NA,2020-01-20
Mortgage,#N/A,2020-02-01
Credit card,No,NULL
`
	path := writeInput(t, "rows.csv", content)

	t.Run("default tokens fill as unknown", func(t *testing.T) {
		table, err := LoadFile(context.Background(), path, LoadOptions{})
		require.NoError(t, err)

		disputed, ok := table.Column("Consumer disputed?")
		require.True(t, ok)
		assert.Equal(t, 3, disputed.Nulls())

		stats := NewNormalizer(nil).Normalize(context.Background(), table)
		assert.Equal(t, 3, stats.Filled[domain.ColumnConsumerDisputed])
		assert.Zero(t, stats.DatesCoerced[domain.ColumnDateReceived], "NULL is missing, not an unparsable date")

		counts, ok := ValueCounts(table, domain.ColumnConsumerDisputed, 0)
		require.True(t, ok)
		assert.Equal(t, map[string]int{"unknown": 3, "no": 1}, counts.Map())
	})

	t.Run("empty token list keeps cells", func(t *testing.T) {
		table, err := LoadFile(context.Background(), path, LoadOptions{NAValues: []string{}})
		require.NoError(t, err)

		disputed, _ := table.Column("Consumer disputed?")
		assert.Zero(t, disputed.Nulls())
		assert.Equal(t, "N/A", disputed.Values[0].String())
	})
}
