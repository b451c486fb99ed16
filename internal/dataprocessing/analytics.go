package dataprocessing

import (
	"sort"
	"time"

	"complaintcli/internal/dataset"
	"complaintcli/pkg/contracts/domain"
)

// ValueCounts counts the non-null values of a column, most frequent first.
// Equal counts keep first-seen order. A limit of zero or less returns every
// category. ok is false when the column does not exist.
func ValueCounts(table *dataset.Table, column string, limit int) (*domain.FrequencyTable, bool) {
	col, ok := table.Column(column)
	if !ok {
		return nil, false
	}

	counts := make(map[string]int)
	var order []string
	for _, v := range col.Values {
		if v.IsNull() {
			continue
		}
		key := v.String()
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	entries := make([]domain.CategoryCount, len(order))
	for i, key := range order {
		entries[i] = domain.CategoryCount{Value: key, Count: counts[key]}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return &domain.FrequencyTable{Column: column, Entries: entries}, true
}

// ResampleMonthly counts the timestamps of a date column per calendar month
// in chronological order. Null cells are ignored. ok is false when the column
// does not exist.
func ResampleMonthly(table *dataset.Table, column string, policy ResamplePolicy) (*domain.TimeSeries, bool) {
	col, ok := table.Column(column)
	if !ok {
		return nil, false
	}

	counts := make(map[time.Time]int)
	for _, v := range col.Values {
		ts, ok := v.Time()
		if !ok {
			continue
		}
		counts[monthStart(ts)]++
	}

	series := &domain.TimeSeries{Column: column, Points: []domain.MonthlyCount{}}
	if len(counts) == 0 {
		return series, true
	}

	months := make([]time.Time, 0, len(counts))
	for m := range counts {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	if policy == SkipEmpty {
		for _, m := range months {
			series.Points = append(series.Points, domain.MonthlyCount{Month: m, Count: counts[m]})
		}
		return series, true
	}

	last := months[len(months)-1]
	for m := months[0]; !m.After(last); m = m.AddDate(0, 1, 0) {
		series.Points = append(series.Points, domain.MonthlyCount{Month: m, Count: counts[m]})
	}
	return series, true
}

// monthStart buckets t by the calendar month of its own zone
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Analyze computes the product, company, monthly and resolution breakdowns
func Analyze(table *dataset.Table, opts AnalysisOptions) *Analysis {
	if opts.TopCategories <= 0 {
		opts.TopCategories = DefaultTopCategories
	}
	if opts.ResamplePolicy == "" {
		opts.ResamplePolicy = FillZero
	}

	analysis := &Analysis{}
	if ft, ok := ValueCounts(table, domain.ColumnProduct, opts.TopCategories); ok {
		analysis.Products = ft
	}
	if ft, ok := ValueCounts(table, domain.ColumnCompany, opts.TopCategories); ok {
		analysis.Companies = ft
	}
	if ts, ok := ResampleMonthly(table, domain.ColumnDateReceived, opts.ResamplePolicy); ok {
		analysis.Monthly = ts
	}
	if ft, ok := ValueCounts(table, domain.ColumnResponseToConsumer, 0); ok {
		analysis.Resolution = ft
	}
	return analysis
}
