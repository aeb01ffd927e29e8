package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadDelimitedFile reads a CSV or TSV file whose first record is the header.
func ReadDelimitedFile(path string, comma rune) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	table, err := ReadDelimited(file, comma)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return table, nil
}

// ReadDelimited parses delimited records from r. Every field becomes a text
// cell; empty fields become blank cells. A UTF-8 byte order mark on the header
// is ignored.
func ReadDelimited(r io.Reader, comma rune) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("input has no header row")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		row := make(Row, len(record))
		for i, field := range record {
			row[i] = Text(field)
		}
		if row.blank() {
			continue
		}
		rows = append(rows, row)
	}
	return NewTable(header, rows), nil
}

func (r Row) blank() bool {
	for _, c := range r {
		if c.Kind() == KindText && strings.TrimSpace(c.String()) != "" {
			return false
		}
		if c.Kind() == KindNumber {
			return false
		}
	}
	return true
}
