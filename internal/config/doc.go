// Package config provides centralized configuration management for the
// complaint report tool. It loads settings from several sources, validates
// them and resolves every input and output path.
//
// # Configuration Sources
//
// Configuration is built in the following order, later sources winning:
//
//	1. Default values (Default)
//	2. A YAML file (config.yaml, configs/config.yaml, or COMPLAINT_CONFIG_FILE)
//	3. Environment variables
//
// # Environment Variables
//
// All environment variables follow the pattern COMPLAINT_<SECTION>_<FIELD>:
//
//	COMPLAINT_INPUT_PATH=data/rows.csv
//	COMPLAINT_REPORT_TOP_N=10
//	COMPLAINT_REPORT_OUTPUT_FILE=reports/complaint_report.txt
//	COMPLAINT_ANALYSIS_RESAMPLE_POLICY=skip_empty
//	COMPLAINT_LOGGING_LEVEL=debug
//	COMPLAINT_TELEMETRY_METRICS_FILE=reports/complaint.prom
//
// # Validation
//
// Every section carries validator struct tags. Load fails with the offending
// YAML field names when a value is out of range or an enum is unknown.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	paths, _ := config.GetPaths()
//	input := paths.Resolve(cfg.Input.Path)
package config
