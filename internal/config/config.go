package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Report    ReportConfig    `yaml:"report"`
	Charts    ChartsConfig    `yaml:"charts"`
	Export    ExportConfig    `yaml:"export"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// InputConfig describes the complaint dataset to load
type InputConfig struct {
	Path      string `yaml:"path" split_words:"true" validate:"required"`
	Delimiter string `yaml:"delimiter" split_words:"true" validate:"omitempty,len=1"`
	Sheet     string `yaml:"sheet" split_words:"true"`
}

// ReportConfig contains text report options
type ReportConfig struct {
	TopN         int    `yaml:"top_n" split_words:"true" validate:"min=1,max=100"`
	RecentMonths int    `yaml:"recent_months" split_words:"true" validate:"min=1,max=120"`
	OutputFile   string `yaml:"output_file" split_words:"true"`
}

// ChartsConfig contains chart workbook options
type ChartsConfig struct {
	Enabled    bool   `yaml:"enabled" split_words:"true"`
	OutputFile string `yaml:"output_file" split_words:"true" validate:"required_if=Enabled true"`
}

// ExportConfig contains aggregate CSV export options. An empty Dir disables export.
type ExportConfig struct {
	Dir       string `yaml:"dir" split_words:"true"`
	BOMPrefix bool   `yaml:"bom_prefix" split_words:"true"`
}

// AnalysisConfig contains aggregation options
type AnalysisConfig struct {
	ResamplePolicy string `yaml:"resample_policy" split_words:"true" validate:"oneof=fill_zero skip_empty"`
	TopCategories  int    `yaml:"top_categories" split_words:"true" validate:"min=1"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" split_words:"true" validate:"oneof=debug info warn warning error"`
	Format      string `yaml:"format" split_words:"true" validate:"oneof=json text"`
	Output      string `yaml:"output" split_words:"true" validate:"oneof=console file both"`
	FilePath    string `yaml:"file_path" split_words:"true" validate:"required_unless=Output console"`
	Development bool   `yaml:"development" split_words:"true"`
}

// TelemetryConfig contains tracing and metrics configuration
type TelemetryConfig struct {
	ServiceName   string  `yaml:"service_name" split_words:"true" validate:"required"`
	Environment   string  `yaml:"environment" split_words:"true"`
	TraceExporter string  `yaml:"trace_exporter" split_words:"true" validate:"oneof=none stdout file"`
	TraceFile     string  `yaml:"trace_file" split_words:"true" validate:"required_if=TraceExporter file"`
	SampleRatio   float64 `yaml:"sample_ratio" split_words:"true" validate:"min=0,max=1"`
	MetricsFile   string  `yaml:"metrics_file" split_words:"true"`
}

// Load loads configuration from the first config file found in the usual
// locations and then from COMPLAINT_* environment variables.
func Load() (*Config, error) {
	return LoadFrom(getConfigFilePath())
}

// LoadFrom loads configuration starting from defaults, then the YAML file at
// filePath (if non-empty), then environment variables. Env takes precedence.
func LoadFrom(filePath string) (*Config, error) {
	cfg := Default()

	if filePath != "" {
		if err := loadFromFile(filePath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// No default or envconfig tags on the struct: unset variables leave file
	// values alone and never fall back to unprefixed names such as PATH.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// normalize lower-cases enum-like settings before validation
func (c *Config) normalize() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Output = strings.ToLower(strings.TrimSpace(c.Logging.Output))
	c.Analysis.ResamplePolicy = strings.ToLower(strings.TrimSpace(c.Analysis.ResamplePolicy))
	c.Telemetry.TraceExporter = strings.ToLower(strings.TrimSpace(c.Telemetry.TraceExporter))
	if c.Input.Delimiter == `\t` {
		c.Input.Delimiter = "\t"
	}
}

// Validate checks the struct tags on every section
func (c *Config) Validate() error {
	v := validator.New()

	// Report field names as they appear in config.yaml
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.Struct(c); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid fields: %s", strings.Join(fields, ", "))
		}
		return err
	}
	return nil
}

// DelimiterRune returns the configured input delimiter, or 0 to pick one from the file extension
func (c *Config) DelimiterRune() rune {
	if c.Input.Delimiter == "" {
		return 0
	}
	return []rune(c.Input.Delimiter)[0]
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if p := os.Getenv(EnvPrefix + "_CONFIG_FILE"); p != "" {
		return p
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Path: DefaultInputFile,
		},
		Report: ReportConfig{
			TopN:         DefaultTopN,
			RecentMonths: DefaultRecentMonths,
		},
		Charts: ChartsConfig{
			Enabled:    true,
			OutputFile: DefaultChartsFile,
		},
		Analysis: AnalysisConfig{
			ResamplePolicy: ResampleFillZero,
			TopCategories:  DefaultTopCategories,
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Telemetry: TelemetryConfig{
			ServiceName:   AppName,
			Environment:   "development",
			TraceExporter: "none",
			SampleRatio:   1.0,
		},
	}
}
