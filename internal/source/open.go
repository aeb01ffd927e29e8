package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound reports that the input file does not exist.
var ErrNotFound = errors.New("input file not found")

// Supported formats.
const (
	FormatXLSX   = "xlsx"
	FormatCSV    = "csv"
	FormatTSV    = "tsv"
	FormatSQLite = "sqlite"
)

// Options selects and parameterizes a reader.
type Options struct {
	Path string
	// Format overrides extension-based detection.
	Format string
	// Sheet is the zero-based worksheet index for workbooks.
	Sheet int
	// SheetName selects a worksheet by name and wins over Sheet.
	SheetName string
	// Table names the SQLite table to read.
	Table string
}

// DetectFormat maps a file extension to a format name.
func DetectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	case ".tsv", ".tab":
		return FormatTSV, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("cannot infer input format from %q; set input.format", filepath.Base(path))
	}
}

// Open reads the whole table described by opts.
func Open(ctx context.Context, opts Options) (*Table, error) {
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		return nil, errors.New("input path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat input: %w", err)
	}

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		detected, err := DetectFormat(path)
		if err != nil {
			return nil, err
		}
		format = detected
	}

	switch format {
	case FormatXLSX:
		return ReadWorkbook(path, opts.Sheet, opts.SheetName)
	case FormatCSV:
		return ReadDelimitedFile(path, ',')
	case FormatTSV:
		return ReadDelimitedFile(path, '\t')
	case FormatSQLite:
		return ReadSQLite(ctx, path, opts.Table)
	default:
		return nil, fmt.Errorf("unsupported input format %q", opts.Format)
	}
}
