package dataprocessing

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-gota/gota/dataframe"

	"complaintcli/internal/dataset"
)

// DefaultHeadRows is the number of rows printed by Head
const DefaultHeadRows = 5

// gotaNaNValues are the null renderings of dataset.Column.Display
var gotaNaNValues = []string{"NaN", "NaT"}

// Inspector writes console diagnostics for a table
type Inspector struct {
	out      io.Writer
	logger   *slog.Logger
	headRows int
}

// NewInspector creates an inspector writing to out
func NewInspector(out io.Writer, logger *slog.Logger) *Inspector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Inspector{
		out:      out,
		logger:   logger,
		headRows: DefaultHeadRows,
	}
}

// frame converts the first n rows of table (all rows when n < 0) into a
// gota data frame with detected column types.
func frame(table *dataset.Table, n int) (dataframe.DataFrame, error) {
	records := append([][]string{table.Names()}, table.Records(n)...)
	df := dataframe.LoadRecords(records,
		dataframe.DetectTypes(true),
		dataframe.NaNValues(gotaNaNValues),
	)
	return df, df.Err
}

// Head prints the first rows of the table
func (i *Inspector) Head(table *dataset.Table) error {
	if table.Width() == 0 || table.Len() == 0 {
		return i.printEmpty(table)
	}
	df, err := frame(table, i.headRows)
	if err != nil {
		return fmt.Errorf("build head frame: %w", err)
	}
	_, err = fmt.Fprintln(i.out, df.String())
	return err
}

// Info prints the schema with per-column non-null counts and kinds
func (i *Inspector) Info(table *dataset.Table) error {
	var b strings.Builder
	fmt.Fprintf(&b, "RangeIndex: %d entries\n", table.Len())
	fmt.Fprintf(&b, "Data columns (total %d columns):\n", table.Width())

	width := len("Column")
	for _, name := range table.Names() {
		if len(name) > width {
			width = len(name)
		}
	}

	fmt.Fprintf(&b, " #   %-*s  Non-Null Count  Kind\n", width, "Column")
	for idx, col := range table.Columns() {
		nonNull := table.Len() - col.Nulls()
		fmt.Fprintf(&b, " %-3d %-*s  %-14s  %s\n", idx, width, col.Name, fmt.Sprintf("%d non-null", nonNull), col.Kind)
	}

	_, err := io.WriteString(i.out, b.String())
	return err
}

// Describe prints summary statistics for every column
func (i *Inspector) Describe(table *dataset.Table) error {
	if table.Width() == 0 || table.Len() == 0 {
		return i.printEmpty(table)
	}
	df, err := frame(table, -1)
	if err != nil {
		return fmt.Errorf("build describe frame: %w", err)
	}
	desc := df.Describe()
	if desc.Err != nil {
		return fmt.Errorf("describe: %w", desc.Err)
	}
	_, err = fmt.Fprintln(i.out, desc.String())
	return err
}

// NullCounts prints the number of missing cells per column
func (i *Inspector) NullCounts(table *dataset.Table) error {
	counts := table.NullCounts()

	width := 0
	for _, c := range counts {
		if len(c.Column) > width {
			width = len(c.Column)
		}
	}

	var b strings.Builder
	for _, c := range counts {
		fmt.Fprintf(&b, "%-*s    %d\n", width, c.Column, c.Nulls)
	}
	b.WriteString("dtype: int64\n")

	i.logger.Debug("Null counts computed", slog.Int("columns", len(counts)))
	_, err := io.WriteString(i.out, b.String())
	return err
}

func (i *Inspector) printEmpty(table *dataset.Table) error {
	_, err := fmt.Fprintf(i.out, "Empty DataFrame\nColumns: [%s]\nIndex: []\n", strings.Join(table.Names(), ", "))
	return err
}
