package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths resolves every file the run reads or writes against one base directory.
// The input dataset is named by a path relative to the working directory, so
// the base defaults to the working directory rather than the executable.
type Paths struct {
	BaseDir    string
	ReportsDir string
	LogsDir    string
}

// GetPaths returns paths rooted at the current working directory
func GetPaths() (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewPaths(wd), nil
}

// NewPaths returns paths rooted at baseDir
func NewPaths(baseDir string) *Paths {
	return &Paths{
		BaseDir:    baseDir,
		ReportsDir: filepath.Join(baseDir, DefaultReportsDir),
		LogsDir:    filepath.Join(baseDir, DefaultLogsDir),
	}
}

// Resolve returns path unchanged when absolute, otherwise joined to BaseDir.
// An empty path stays empty so optional outputs remain disabled.
func (p *Paths) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.BaseDir, path)
}

// EnsureParent creates the parent directory of a resolved output path
func (p *Paths) EnsureParent(path string) error {
	if path == "" {
		return nil
	}
	dir := filepath.Dir(p.Resolve(path))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// EnsureDirectories creates the directories of every enabled output in cfg
func (p *Paths) EnsureDirectories(cfg *Config) error {
	outputs := []string{cfg.Report.OutputFile, cfg.Telemetry.MetricsFile}
	if cfg.Charts.Enabled {
		outputs = append(outputs, cfg.Charts.OutputFile)
	}
	if cfg.Logging.Output != "console" {
		outputs = append(outputs, cfg.Logging.FilePath)
	}
	if cfg.Telemetry.TraceExporter == "file" {
		outputs = append(outputs, cfg.Telemetry.TraceFile)
	}

	for _, out := range outputs {
		if err := p.EnsureParent(out); err != nil {
			return err
		}
	}

	if cfg.Export.Dir != "" {
		dir := p.Resolve(cfg.Export.Dir)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory %s: %w", dir, err)
		}
	}
	return nil
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LogPathResolution logs resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger, cfg *Config) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Path resolution",
		slog.String("base_dir", p.BaseDir),
		slog.String("input", p.Resolve(cfg.Input.Path)),
		slog.String("report_output", p.Resolve(cfg.Report.OutputFile)),
		slog.String("charts_output", p.Resolve(cfg.Charts.OutputFile)),
		slog.String("export_dir", p.Resolve(cfg.Export.Dir)))
}
