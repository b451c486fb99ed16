package dataprocessing

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"complaintcli/internal/dataset"
	"complaintcli/pkg/contracts/domain"
)

// DateLayouts are tried in order when parsing date columns
var DateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"01-02-2006",
	"01-02-06",
	"1/2/06",
}

// NormalizeStats describes what a normalization pass changed
type NormalizeStats struct {
	Renamed      []string
	Filled       map[string]int
	DatesCoerced map[string]int
	Lowered      []string
}

// Normalizer cleans the schema and cells of a freshly loaded complaint table
type Normalizer struct {
	logger   *slog.Logger
	sentinel string
}

// NewNormalizer creates a normalizer that fills with domain.SentinelUnknown
func NewNormalizer(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{
		logger:   logger,
		sentinel: domain.SentinelUnknown,
	}
}

// Normalize rewrites table in place. Steps naming a column that is not in
// the schema are skipped.
func (n *Normalizer) Normalize(ctx context.Context, table *dataset.Table) NormalizeStats {
	stats := NormalizeStats{
		Filled:       make(map[string]int),
		DatesCoerced: make(map[string]int),
	}

	table.RenameColumns(NormalizeColumnName)

	stats.Renamed = table.Rename(domain.ColumnAliases)
	n.logger.DebugContext(ctx, "Columns renamed",
		slog.Any("columns", table.Names()),
		slog.Int("renamed", len(stats.Renamed)))

	for _, name := range domain.FillColumns {
		if filled, ok := table.Fill(name, n.sentinel); ok {
			stats.Filled[name] = filled
		}
	}
	n.logger.DebugContext(ctx, "Missing values filled", slog.Any("filled", stats.Filled))

	for _, name := range domain.DateColumns {
		if coerced, ok := table.ParseDates(name, ParseDate); ok {
			stats.DatesCoerced[name] = coerced
			if coerced > 0 {
				n.logger.WarnContext(ctx, "Unparsable dates set to null",
					slog.String("column", name),
					slog.Int("cells", coerced))
			}
		}
	}

	table.ToText(domain.ColumnComplaintID)

	// A Caser keeps state between calls; one per pass.
	lower := cases.Lower(language.Und)
	for _, name := range domain.TextColumns {
		if table.ToText(name) && table.MapText(name, lower.String) {
			stats.Lowered = append(stats.Lowered, name)
		}
	}
	n.logger.DebugContext(ctx, "Text columns lower-cased", slog.Any("columns", stats.Lowered))

	return stats
}

// NormalizeColumnName trims and lower-cases a header label, replaces spaces
// with underscores and drops question marks.
func NormalizeColumnName(name string) string {
	name = strings.TrimSpace(name)
	name = cases.Lower(language.Und).String(name)
	name = strings.ReplaceAll(name, " ", "_")
	return strings.ReplaceAll(name, "?", "")
}

// Timestamps must fit in int64 nanoseconds since the epoch, the range a
// pandas Timestamp can hold. MinInt64 itself is pandas' NaT.
var (
	MinTimestamp = time.Unix(0, math.MinInt64+1).UTC()
	MaxTimestamp = time.Unix(0, math.MaxInt64).UTC()
)

// ParseDate parses s with the first matching layout of DateLayouts. The
// result keeps the zone written in s; values without one are UTC. Times
// outside MinTimestamp..MaxTimestamp are rejected.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range DateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Before(MinTimestamp) || t.After(MaxTimestamp) {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}
