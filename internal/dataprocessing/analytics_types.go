package dataprocessing

import (
	"complaintcli/pkg/contracts/domain"
)

// ResamplePolicy decides how months without records appear in a time series
type ResamplePolicy string

const (
	// FillZero emits every month between the first and last record, with
	// zero for empty months
	FillZero ResamplePolicy = "fill_zero"
	// SkipEmpty emits only months that hold records
	SkipEmpty ResamplePolicy = "skip_empty"
)

// DefaultTopCategories bounds the product and company breakdowns
const DefaultTopCategories = 10

// ParseResamplePolicy maps a configuration value to a policy. Unknown values
// select FillZero.
func ParseResamplePolicy(s string) ResamplePolicy {
	if ResamplePolicy(s) == SkipEmpty {
		return SkipEmpty
	}
	return FillZero
}

// AnalysisOptions configures Analyze
type AnalysisOptions struct {
	// TopCategories limits the product and company breakdowns
	TopCategories int

	// ResamplePolicy controls empty months in the monthly trend
	ResamplePolicy ResamplePolicy
}

// DefaultAnalysisOptions returns the top-10, zero-filled defaults
func DefaultAnalysisOptions() AnalysisOptions {
	return AnalysisOptions{
		TopCategories:  DefaultTopCategories,
		ResamplePolicy: FillZero,
	}
}

// Analysis holds the aggregate results of one run. A result is nil when its
// source column is missing from the table.
type Analysis struct {
	Products   *domain.FrequencyTable
	Companies  *domain.FrequencyTable
	Monthly    *domain.TimeSeries
	Resolution *domain.FrequencyTable
}

// Empty reports whether no result could be computed
func (a *Analysis) Empty() bool {
	return a == nil || (a.Products == nil && a.Companies == nil && a.Monthly == nil && a.Resolution == nil)
}
