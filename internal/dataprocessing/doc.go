// Package dataprocessing loads, cleans and aggregates consumer complaint
// records.
//
// # Architecture
//
// The package covers the first three stages of a complaint run:
//
// 1. Loader: reads a delimited text file or an Excel workbook into a dataset.Table
// 2. Normalizer: canonicalizes column labels, fills gaps, parses dates and lower-cases text
// 3. Analytics: value counts and monthly resampling over the cleaned table
//
// An Inspector prints head, schema, describe and null-count diagnostics.
//
// # Usage
//
//	table, err := dataprocessing.LoadFile(ctx, "rows.csv", dataprocessing.LoadOptions{})
//	if err != nil {
//	    return err
//	}
//
//	stats := dataprocessing.NewNormalizer(logger).Normalize(ctx, table)
//	analysis := dataprocessing.Analyze(table, dataprocessing.DefaultAnalysisOptions())
//
// # Data Flow
//
//	File → LoadFile → Table → Normalizer → Table → Analyze → Analysis
//
// # Error Handling
//
// Only loading returns errors. Missing columns are skipped, unparsable dates
// become null and missing values in fill targets become "unknown".
package dataprocessing
