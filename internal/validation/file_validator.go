package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"complaintcli/internal/errors"
)

// InputFormat is the reader an input file is routed to
type InputFormat string

const (
	FormatDelimited InputFormat = "delimited"
	FormatWorkbook  InputFormat = "xlsx"
)

// inputFormats maps supported extensions to their reader
var inputFormats = map[string]InputFormat{
	".csv":  FormatDelimited,
	".tsv":  FormatDelimited,
	".txt":  FormatDelimited,
	".xlsx": FormatWorkbook,
	".xlsm": FormatWorkbook,
}

// FileValidator checks input and output locations before a run touches them
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateInputFile checks that path is a readable regular file and returns
// the format its extension selects. Unknown extensions are read as
// delimited text.
func (v *FileValidator) ValidateInputFile(path string) (InputFormat, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("Input file does not exist", slog.String("file", path))
		return "", errors.NewNotFoundError(fmt.Sprintf("input file %s", path), err)
	}
	if err != nil {
		v.logger.Error("Failed to stat input file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return "", errors.NewStorageError("failed to stat input file", err).WithContext("path", path)
	}
	if info.IsDir() {
		v.logger.Error("Input path is a directory, not a file", slog.String("path", path))
		return "", errors.NewParsingError("input path is a directory", nil).WithContext("path", path)
	}

	if strings.HasPrefix(filepath.Base(path), "~$") {
		v.logger.Warn("Input is a temporary Excel lock file", slog.String("file", path))
		return "", errors.NewParsingError("input is a temporary Excel lock file", nil).WithContext("path", path)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("Input file is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return "", errors.NewStorageError("input file is not readable", err).WithContext("path", path)
	}
	file.Close()

	ext := strings.ToLower(filepath.Ext(path))
	format, ok := inputFormats[ext]
	if !ok {
		v.logger.Warn("Unrecognized input extension, reading as delimited text",
			slog.String("file", path),
			slog.String("extension", ext))
		format = FormatDelimited
	}

	v.logger.Debug("Input file validated",
		slog.String("file", path),
		slog.String("format", string(format)),
		slog.Int64("size", info.Size()))
	return format, nil
}

// ValidateOutputDirectory ensures an output directory exists and is writable
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return errors.NewStorageError("failed to create output directory", err).WithContext("directory", dir)
	}

	probe, err := os.CreateTemp(dir, ".write_test_*")
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return errors.NewStorageError("output directory is not writable", err).WithContext("directory", dir)
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)

	v.logger.Debug("Output directory validated", slog.String("directory", dir))
	return nil
}
