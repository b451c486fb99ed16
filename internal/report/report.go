package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"complaintcli/internal/dataprocessing"
	"complaintcli/internal/dataset"
	"complaintcli/internal/errors"
	"complaintcli/pkg/contracts/domain"
)

const (
	// DefaultTopN is the number of products and companies listed
	DefaultTopN = 5

	// RecentMonths is the number of trailing months in the trend section
	RecentMonths = 3

	// columnGap separates labels from counts in rendered tables
	columnGap = 4
)

// Options configures GenerateWithOptions
type Options struct {
	TopN           int
	RecentMonths   int
	ResamplePolicy dataprocessing.ResamplePolicy
}

// Generate renders the fixed-template complaint report for a normalized
// table. It lists the topN products and companies and the last three months
// of complaint volume. A topN of zero or less uses DefaultTopN.
func Generate(table *dataset.Table, topN int) string {
	return GenerateWithOptions(table, Options{TopN: topN})
}

// GenerateWithOptions is Generate with a configurable trend window and
// resample policy
func GenerateWithOptions(table *dataset.Table, opts Options) string {
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}
	if opts.RecentMonths <= 0 {
		opts.RecentMonths = RecentMonths
	}
	if opts.ResamplePolicy == "" {
		opts.ResamplePolicy = dataprocessing.FillZero
	}

	var b strings.Builder
	b.WriteString("Complaint Report\n\n")

	if ft, ok := dataprocessing.ValueCounts(table, domain.ColumnProduct, opts.TopN); ok {
		fmt.Fprintf(&b, "\nTop %d Products with Most Complaints:\n", opts.TopN)
		b.WriteString(FormatFrequency(ft) + "\n")
	}

	if ft, ok := dataprocessing.ValueCounts(table, domain.ColumnCompany, opts.TopN); ok {
		fmt.Fprintf(&b, "\nTop %d Companies with Most Complaints:\n", opts.TopN)
		b.WriteString(FormatFrequency(ft) + "\n")
	}

	if ts, ok := dataprocessing.ResampleMonthly(table, domain.ColumnDateReceived, opts.ResamplePolicy); ok {
		fmt.Fprintf(&b, "\nComplaint Trends (Last %d Months):\n", opts.RecentMonths)
		b.WriteString(FormatTimeSeries(ts.Tail(opts.RecentMonths)) + "\n")
	}

	return b.String()
}

// FormatFrequency renders a frequency table as an index header line followed
// by one label and count per line. An empty table renders as "".
func FormatFrequency(ft *domain.FrequencyTable) string {
	if ft.Len() == 0 {
		return ""
	}
	labels := make([]string, len(ft.Entries))
	counts := make([]int, len(ft.Entries))
	for i, e := range ft.Entries {
		labels[i] = e.Value
		counts[i] = e.Count
	}
	return formatTable(ft.Column, labels, counts)
}

// FormatTimeSeries renders a series with month-end labels
func FormatTimeSeries(ts *domain.TimeSeries) string {
	if ts.Len() == 0 {
		return ""
	}
	labels := make([]string, len(ts.Points))
	counts := make([]int, len(ts.Points))
	for i, p := range ts.Points {
		labels[i] = p.Label()
		counts[i] = p.Count
	}
	return formatTable(ts.Column, labels, counts)
}

// formatTable left-aligns labels and right-aligns counts
func formatTable(index string, labels []string, counts []int) string {
	labelWidth := utf8.RuneCountInString(index)
	countWidth := 0
	rendered := make([]string, len(counts))
	for i, label := range labels {
		if n := utf8.RuneCountInString(label); n > labelWidth {
			labelWidth = n
		}
		rendered[i] = fmt.Sprintf("%d", counts[i])
		if len(rendered[i]) > countWidth {
			countWidth = len(rendered[i])
		}
	}

	lines := make([]string, 0, len(labels)+1)
	lines = append(lines, index)
	for i, label := range labels {
		pad := labelWidth - utf8.RuneCountInString(label) + columnGap
		lines = append(lines, label+strings.Repeat(" ", pad)+fmt.Sprintf("%*s", countWidth, rendered[i]))
	}
	return strings.Join(lines, "\n")
}

// Save writes report to path, creating parent directories
func Save(path, report string) error {
	if path == "" {
		return errors.NewValidationError("report path is empty", nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create report directory", err).WithContext("path", path)
	}
	if err := os.WriteFile(path, []byte(report), 0644); err != nil {
		return errors.NewStorageError("failed to write report", err).WithContext("path", path)
	}
	return nil
}
