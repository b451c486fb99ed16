// Package exporter writes complaint aggregates to files.
//
// This package contains two components:
//
// CSVWriter: writes frequency tables and monthly series as CSV, with an
// optional UTF-8 BOM for Excel compatibility.
//
// ChartWriter: renders the product, company, monthly trend and resolution
// results into one Excel workbook with a native chart per result.
//
// Example usage:
//
//	charts := exporter.NewChartWriter(logger)
//	err := charts.Render(ctx, analysis, "reports/complaint_charts.xlsx")
//
//	csvWriter := exporter.NewCSVWriter(paths, cfg.Export, logger)
//	written, err := csvWriter.ExportAnalysis(ctx, analysis)
package exporter
