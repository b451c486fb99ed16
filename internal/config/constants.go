package config

// Application constants
const (
	AppName    = "complaint-report"
	AppVersion = "1.0.0"

	// EnvPrefix namespaces every environment variable, e.g. COMPLAINT_REPORT_TOP_N
	EnvPrefix = "COMPLAINT"

	// File paths (relative to the base directory)
	DefaultInputFile  = "rows.csv"
	DefaultReportsDir = "reports"
	DefaultLogsDir    = "logs"
	DefaultChartsFile = "reports/complaint_charts.xlsx"
	DefaultReportFile = "reports/complaint_report.txt"
	DefaultLogFile    = "logs/complaint-report.log"

	// Report settings
	DefaultTopN          = 5
	DefaultRecentMonths  = 3
	DefaultTopCategories = 10
	DefaultHeadRows      = 5

	// Resample policies
	ResampleFillZero  = "fill_zero"
	ResampleSkipEmpty = "skip_empty"

	// Log settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)
