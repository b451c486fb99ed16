package dataprocessing

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"complaintcli/internal/dataset"
	"complaintcli/internal/errors"
	"complaintcli/internal/validation"
)

const utf8BOM = "\ufeff"

// DefaultNAValues are the cell texts read as missing, the same set pandas
// read_csv treats as NaN by default. CFPB exports use "N/A" heavily.
var DefaultNAValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// LoadOptions controls how an input file is read
type LoadOptions struct {
	// Delimiter separates fields in text inputs. Zero selects ',' or, for
	// .tsv files, a tab.
	Delimiter rune
	// Sheet names the worksheet of a workbook input. Empty reads the first.
	Sheet string
	// NAValues are cell texts read as null. Nil selects DefaultNAValues; an
	// empty non-nil slice keeps every non-empty cell.
	NAValues []string
	Logger   *slog.Logger
}

// LoadFile reads a delimited text file or an Excel workbook into a text
// table. The first record is the header. Rows may be ragged.
func LoadFile(ctx context.Context, path string, opts LoadOptions) (*dataset.Table, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	format, err := validation.NewFileValidator(logger).ValidateInputFile(path)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	switch format {
	case validation.FormatWorkbook:
		rows, err = readWorkbook(ctx, logger, path, opts.Sheet)
	default:
		delimiter := opts.Delimiter
		if delimiter == 0 {
			delimiter = ','
			if strings.ToLower(filepath.Ext(path)) == ".tsv" {
				delimiter = '\t'
			}
		}
		rows, err = readDelimited(path, delimiter)
	}
	if err != nil {
		return nil, err
	}

	var header []string
	var records [][]string
	if len(rows) > 0 {
		header = rows[0]
		records = rows[1:]
		if len(header) > 0 {
			header[0] = strings.TrimPrefix(header[0], utf8BOM)
		}
	}

	naValues := opts.NAValues
	if naValues == nil {
		naValues = DefaultNAValues
	}

	table := dataset.New(header, records, dataset.WithNAValues(naValues...))
	logger.InfoContext(ctx, "Input loaded",
		slog.String("path", path),
		slog.String("format", string(format)),
		slog.Int("rows", table.Len()),
		slog.Int("columns", table.Width()))

	return table, nil
}

// readDelimited reads every record of a text file
func readDelimited(path string, delimiter rune) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewStorageError("failed to open input file", err).WithContext("path", path)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewParsingError("failed to read delimited input", err).WithContext("path", path)
	}
	return rows, nil
}

// readWorkbook reads the rows of one worksheet as formatted cell text
func readWorkbook(ctx context.Context, logger *slog.Logger, path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewParsingError("failed to open workbook", err).WithContext("path", path)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil
		}
		sheet = sheets[0]
	}

	index, err := f.GetSheetIndex(sheet)
	if err != nil || index < 0 {
		return nil, errors.NewNotFoundError(fmt.Sprintf("sheet %q", sheet), err).WithContext("path", path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.NewParsingError("failed to read worksheet", err).
			WithContext("path", path).
			WithContext("sheet", sheet)
	}

	logger.DebugContext(ctx, "Worksheet selected",
		slog.String("sheet", sheet),
		slog.Int("rows", len(rows)))

	return rows, nil
}
