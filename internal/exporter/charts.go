package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"complaintcli/internal/dataprocessing"
	"complaintcli/internal/errors"
	"complaintcli/pkg/contracts/domain"
)

// Chart titles and axis labels
const (
	TitleProducts   = "Complaint Volume by Product"
	TitleCompanies  = "Complaint Volume by Company"
	TitleTrends     = "Complaint Trends Over Time"
	TitleResolution = "Complaint Resolution"
	AxisComplaints  = "Number of Complaints"
)

// Worksheet names, one per rendered result
const (
	SheetProducts   = "Products"
	SheetCompanies  = "Companies"
	SheetTrends     = "Trends"
	SheetResolution = "Resolution"
)

// chartSpec is one data sheet and the chart drawn over it
type chartSpec struct {
	sheet     string
	chartType excelize.ChartType
	title     string
	xLabel    string
	header    []string
	labels    []string
	counts    []int
	shares    []domain.CategoryShare
	width     uint
	height    uint
}

// ChartWriter renders aggregate results into an Excel workbook with native
// charts
type ChartWriter struct {
	logger *slog.Logger
}

// NewChartWriter creates a chart writer
func NewChartWriter(logger *slog.Logger) *ChartWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChartWriter{logger: logger}
}

// Render writes one workbook to path holding a data sheet and chart for each
// available result of analysis. Nothing is written when analysis is empty.
func (w *ChartWriter) Render(ctx context.Context, analysis *dataprocessing.Analysis, path string) error {
	specs := chartSpecs(analysis)
	if len(specs) == 0 {
		w.logger.InfoContext(ctx, "No aggregates to chart", slog.String("path", path))
		return nil
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, spec := range specs {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), spec.sheet); err != nil {
				return errors.NewRenderError("failed to name worksheet", err).WithContext("sheet", spec.sheet)
			}
		} else if _, err := f.NewSheet(spec.sheet); err != nil {
			return errors.NewRenderError("failed to add worksheet", err).WithContext("sheet", spec.sheet)
		}

		if err := writeChartData(f, spec); err != nil {
			return errors.NewRenderError("failed to write chart data", err).WithContext("sheet", spec.sheet)
		}

		if len(spec.labels) == 0 {
			w.logger.DebugContext(ctx, "Chart skipped for empty result", slog.String("sheet", spec.sheet))
			continue
		}
		if err := f.AddChart(spec.sheet, "E2", newChart(spec)); err != nil {
			return errors.NewRenderError("failed to add chart", err).WithContext("sheet", spec.sheet)
		}
	}

	f.SetActiveSheet(0)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create chart directory", err).WithContext("path", path)
	}
	if err := f.SaveAs(path); err != nil {
		return errors.NewStorageError("failed to save chart workbook", err).WithContext("path", path)
	}

	w.logger.InfoContext(ctx, "Charts rendered",
		slog.String("path", path),
		slog.Int("charts", len(specs)))
	return nil
}

func chartSpecs(analysis *dataprocessing.Analysis) []chartSpec {
	if analysis.Empty() {
		return nil
	}

	var specs []chartSpec
	if ft := analysis.Products; ft != nil {
		specs = append(specs, frequencySpec(SheetProducts, excelize.Col, TitleProducts, "Product", ft))
	}
	if ft := analysis.Companies; ft != nil {
		specs = append(specs, frequencySpec(SheetCompanies, excelize.Col, TitleCompanies, "Company", ft))
	}
	if ts := analysis.Monthly; ts != nil {
		spec := chartSpec{
			sheet:     SheetTrends,
			chartType: excelize.Line,
			title:     TitleTrends,
			xLabel:    "Date",
			header:    []string{ts.Column, "count"},
			width:     640,
			height:    384,
		}
		for _, p := range ts.Points {
			spec.labels = append(spec.labels, p.Label())
			spec.counts = append(spec.counts, p.Count)
		}
		specs = append(specs, spec)
	}
	if ft := analysis.Resolution; ft != nil {
		spec := frequencySpec(SheetResolution, excelize.Pie, TitleResolution, "", ft)
		spec.header = append(spec.header, "percent")
		spec.shares = ft.Shares()
		spec.width, spec.height = 512, 512
		specs = append(specs, spec)
	}
	return specs
}

func frequencySpec(sheet string, chartType excelize.ChartType, title, xLabel string, ft *domain.FrequencyTable) chartSpec {
	spec := chartSpec{
		sheet:     sheet,
		chartType: chartType,
		title:     title,
		xLabel:    xLabel,
		header:    []string{ft.Column, "count"},
		width:     640,
		height:    384,
	}
	for _, e := range ft.Entries {
		spec.labels = append(spec.labels, e.Value)
		spec.counts = append(spec.counts, e.Count)
	}
	return spec
}

func writeChartData(f *excelize.File, spec chartSpec) error {
	header := make([]interface{}, len(spec.header))
	for i, h := range spec.header {
		header[i] = h
	}
	if err := f.SetSheetRow(spec.sheet, "A1", &header); err != nil {
		return err
	}

	for i, label := range spec.labels {
		row := []interface{}{label, spec.counts[i]}
		if i < len(spec.shares) {
			row = append(row, spec.shares[i].Percent.InexactFloat64())
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(spec.sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func newChart(spec chartSpec) *excelize.Chart {
	last := len(spec.labels) + 1
	series := excelize.ChartSeries{
		Name:       fmt.Sprintf("%s!$B$1", spec.sheet),
		Categories: fmt.Sprintf("%s!$A$2:$A$%d", spec.sheet, last),
		Values:     fmt.Sprintf("%s!$B$2:$B$%d", spec.sheet, last),
	}

	chart := &excelize.Chart{
		Type:   spec.chartType,
		Series: []excelize.ChartSeries{series},
		Title:  []excelize.RichTextRun{{Text: spec.title}},
		Dimension: excelize.ChartDimension{
			Width:  spec.width,
			Height: spec.height,
		},
	}

	if spec.chartType == excelize.Pie {
		chart.Legend = excelize.ChartLegend{Position: "right"}
		chart.PlotArea = excelize.ChartPlotArea{ShowPercent: true}
		return chart
	}

	chart.Legend = excelize.ChartLegend{Position: "none"}
	chart.XAxis = excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: spec.xLabel}}}
	chart.YAxis = excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: AxisComplaints}}}
	return chart
}
