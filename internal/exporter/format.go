package exporter

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// formatInt formats a count for CSV output
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// formatPercent formats a share with exactly one decimal place
func formatPercent(d decimal.Decimal) string {
	return d.StringFixed(1)
}
