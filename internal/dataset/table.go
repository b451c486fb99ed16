package dataset

import (
	"fmt"
	"strings"
	"time"
)

// Column is a named, typed column of cells, one per row
type Column struct {
	Name   string
	Kind   Kind
	Values []Value
}

// NullCount is the number of missing cells in one column
type NullCount struct {
	Column string
	Nulls  int
}

// Table is an in-memory record table. Columns keep their load order and the
// row count is fixed once the table is built; only labels, kinds and cell
// contents change afterwards.
type Table struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// Option configures New
type Option func(*buildOptions)

type buildOptions struct {
	naValues map[string]struct{}
}

// WithNAValues makes New read cells equal to one of tokens as null, in
// addition to empty cells. Matching is exact.
func WithNAValues(tokens ...string) Option {
	return func(o *buildOptions) {
		if o.naValues == nil {
			o.naValues = make(map[string]struct{}, len(tokens))
		}
		for _, tok := range tokens {
			o.naValues[tok] = struct{}{}
		}
	}
}

// New builds a text table from a header and string records. Empty cells
// and configured NA tokens become null, short records are padded with nulls
// and extra fields are dropped.
func New(header []string, records [][]string, opts ...Option) *Table {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	t := &Table{rows: len(records)}

	for i, name := range header {
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("unnamed_%d", i)
		}
		col := &Column{Name: name, Kind: KindText, Values: make([]Value, len(records))}
		for r, rec := range records {
			if i >= len(rec) || rec[i] == "" {
				continue
			}
			if _, na := o.naValues[rec[i]]; na {
				continue
			}
			col.Values[r] = Text(rec[i])
		}
		t.columns = append(t.columns, col)
	}

	t.reindex()
	return t
}

// reindex maps names to positions. With duplicate labels the first wins.
func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.columns))
	for i, col := range t.columns {
		if _, exists := t.index[col.Name]; !exists {
			t.index[col.Name] = i
		}
	}
}

// Len returns the number of rows
func (t *Table) Len() int {
	return t.rows
}

// Width returns the number of columns
func (t *Table) Width() int {
	return len(t.columns)
}

// Names returns the column labels in schema order
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	return names
}

// Has reports whether a column exists
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the named column
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

// Columns returns every column in schema order
func (t *Table) Columns() []*Column {
	return t.columns
}

// RenameColumns relabels every column through fn
func (t *Table) RenameColumns(fn func(string) string) {
	for _, col := range t.columns {
		col.Name = fn(col.Name)
	}
	t.reindex()
}

// Rename relabels the columns named by the keys of mapping. Keys that are not
// in the schema are skipped. It returns the old names that were renamed.
func (t *Table) Rename(mapping map[string]string) []string {
	var renamed []string
	for _, col := range t.columns {
		if to, ok := mapping[col.Name]; ok {
			renamed = append(renamed, col.Name)
			col.Name = to
		}
	}
	t.reindex()
	return renamed
}

// Fill replaces missing cells of a column with sentinel. It returns the number
// of cells filled and false when the column does not exist.
func (t *Table) Fill(name, sentinel string) (int, bool) {
	col, ok := t.Column(name)
	if !ok {
		return 0, false
	}
	filled := 0
	for i, v := range col.Values {
		if v.IsNull() {
			col.Values[i] = Text(sentinel)
			filled++
		}
	}
	return filled, true
}

// ParseDates converts a text column to dates with parse. Cells parse rejects
// become null instead of failing. It returns how many non-null cells were
// coerced to null and false when the column does not exist.
func (t *Table) ParseDates(name string, parse func(string) (time.Time, bool)) (int, bool) {
	col, ok := t.Column(name)
	if !ok {
		return 0, false
	}
	if col.Kind == KindDate {
		return 0, true
	}

	coerced := 0
	for i, v := range col.Values {
		if v.IsNull() {
			continue
		}
		if ts, ok := parse(v.String()); ok {
			col.Values[i] = Date(ts)
		} else {
			col.Values[i] = Null()
			coerced++
		}
	}
	col.Kind = KindDate
	return coerced, true
}

// ToText coerces a column to text. Null cells stay null.
func (t *Table) ToText(name string) bool {
	col, ok := t.Column(name)
	if !ok {
		return false
	}
	if col.Kind != KindText {
		for i, v := range col.Values {
			if !v.IsNull() {
				col.Values[i] = Text(v.String())
			}
		}
		col.Kind = KindText
	}
	return true
}

// MapText rewrites every non-null cell of a text column with fn
func (t *Table) MapText(name string, fn func(string) string) bool {
	col, ok := t.Column(name)
	if !ok || col.Kind != KindText {
		return false
	}
	for i, v := range col.Values {
		if !v.IsNull() {
			col.Values[i] = Text(fn(v.String()))
		}
	}
	return true
}

// Nulls returns the number of missing cells in the column
func (c *Column) Nulls() int {
	n := 0
	for _, v := range c.Values {
		if v.IsNull() {
			n++
		}
	}
	return n
}

// Display renders a cell for console output, using NaN and NaT for nulls
func (c *Column) Display(row int) string {
	v := c.Values[row]
	if v.IsNull() {
		if c.Kind == KindDate {
			return "NaT"
		}
		return "NaN"
	}
	return v.String()
}

// NullCounts returns per-column missing counts in schema order
func (t *Table) NullCounts() []NullCount {
	counts := make([]NullCount, len(t.columns))
	for i, col := range t.columns {
		counts[i] = NullCount{Column: col.Name, Nulls: col.Nulls()}
	}
	return counts
}

// Row returns a view of row i keyed by column name
func (t *Table) Row(i int) map[string]Value {
	row := make(map[string]Value, len(t.columns))
	for _, col := range t.columns {
		if _, exists := row[col.Name]; !exists {
			row[col.Name] = col.Values[i]
		}
	}
	return row
}

// Records renders the first n rows (all rows when n < 0) as display strings
func (t *Table) Records(n int) [][]string {
	if n < 0 || n > t.rows {
		n = t.rows
	}
	records := make([][]string, n)
	for r := 0; r < n; r++ {
		rec := make([]string, len(t.columns))
		for c, col := range t.columns {
			rec[c] = col.Display(r)
		}
		records[r] = rec
	}
	return records
}
