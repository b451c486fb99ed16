package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryCount is one row of a frequency table
type CategoryCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// FrequencyTable maps category values to occurrence counts, ordered by
// descending count.
type FrequencyTable struct {
	Column  string          `json:"column"`
	Entries []CategoryCount `json:"entries"`
}

// Len returns the number of categories
func (f *FrequencyTable) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Entries)
}

// Head returns a copy holding at most n entries
func (f *FrequencyTable) Head(n int) *FrequencyTable {
	if f == nil {
		return nil
	}
	if n < 0 || n > len(f.Entries) {
		n = len(f.Entries)
	}
	entries := make([]CategoryCount, n)
	copy(entries, f.Entries[:n])
	return &FrequencyTable{Column: f.Column, Entries: entries}
}

// Map returns the counts keyed by value
func (f *FrequencyTable) Map() map[string]int {
	m := make(map[string]int, f.Len())
	if f == nil {
		return m
	}
	for _, e := range f.Entries {
		m[e.Value] = e.Count
	}
	return m
}

// Total returns the sum of all counts
func (f *FrequencyTable) Total() int {
	total := 0
	if f == nil {
		return total
	}
	for _, e := range f.Entries {
		total += e.Count
	}
	return total
}

// CategoryShare is a category's percentage of the table total
type CategoryShare struct {
	Value   string          `json:"value"`
	Count   int             `json:"count"`
	Percent decimal.Decimal `json:"percent"`
}

// Shares returns each entry's percentage of Total, rounded to one decimal
// place.
func (f *FrequencyTable) Shares() []CategoryShare {
	total := f.Total()
	if total == 0 {
		return nil
	}
	denominator := decimal.NewFromInt(int64(total))
	hundred := decimal.NewFromInt(100)

	shares := make([]CategoryShare, len(f.Entries))
	for i, e := range f.Entries {
		pct := decimal.NewFromInt(int64(e.Count)).Mul(hundred).Div(denominator).Round(1)
		shares[i] = CategoryShare{Value: e.Value, Count: e.Count, Percent: pct}
	}
	return shares
}

// MonthlyCount is the number of records in one calendar month
type MonthlyCount struct {
	// Month is the first instant of the month, UTC
	Month time.Time `json:"month"`
	Count int       `json:"count"`
}

// PeriodEnd returns the last day of the month
func (m MonthlyCount) PeriodEnd() time.Time {
	return m.Month.AddDate(0, 1, -1)
}

// Label renders the period by its month-end date
func (m MonthlyCount) Label() string {
	return m.PeriodEnd().Format("2006-01-02")
}

// TimeSeries maps months to record counts in chronological order
type TimeSeries struct {
	Column string         `json:"column"`
	Points []MonthlyCount `json:"points"`
}

// Len returns the number of periods
func (ts *TimeSeries) Len() int {
	if ts == nil {
		return 0
	}
	return len(ts.Points)
}

// Tail returns a copy holding the last n periods
func (ts *TimeSeries) Tail(n int) *TimeSeries {
	if ts == nil {
		return nil
	}
	if n < 0 || n > len(ts.Points) {
		n = len(ts.Points)
	}
	points := make([]MonthlyCount, n)
	copy(points, ts.Points[len(ts.Points)-n:])
	return &TimeSeries{Column: ts.Column, Points: points}
}

// Head returns a copy holding the first n periods
func (ts *TimeSeries) Head(n int) *TimeSeries {
	if ts == nil {
		return nil
	}
	if n < 0 || n > len(ts.Points) {
		n = len(ts.Points)
	}
	points := make([]MonthlyCount, n)
	copy(points, ts.Points[:n])
	return &TimeSeries{Column: ts.Column, Points: points}
}
