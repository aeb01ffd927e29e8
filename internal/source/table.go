package source

import (
	"math"
	"strconv"
	"strings"
)

// Kind distinguishes how a cell value was stored in the source.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindText
	KindNumber
)

// Cell is one spreadsheet value.
type Cell struct {
	kind Kind
	text string
	num  float64
}

// Empty returns a blank cell.
func Empty() Cell { return Cell{} }

// Text returns a text cell. The empty string yields a blank cell.
func Text(value string) Cell {
	if value == "" {
		return Cell{}
	}
	return Cell{kind: KindText, text: value}
}

// Number returns a numeric cell.
func Number(value float64) Cell {
	return Cell{kind: KindNumber, num: value}
}

// Kind reports how the value was stored.
func (c Cell) Kind() Kind { return c.kind }

// IsBlank reports whether the cell holds no value at all. A numeric NaN counts
// as blank, matching how spreadsheet readers surface missing numbers.
func (c Cell) IsBlank() bool {
	switch c.kind {
	case KindEmpty:
		return true
	case KindNumber:
		return math.IsNaN(c.num)
	default:
		return false
	}
}

// Float returns the numeric value of a number cell.
func (c Cell) Float() (float64, bool) {
	if c.kind != KindNumber {
		return 0, false
	}
	return c.num, true
}

// String renders the cell the way it reads in the sheet. Integral numbers have
// no fractional part so that 7 and 7.0 both render as "7".
func (c Cell) String() string {
	switch c.kind {
	case KindText:
		return c.text
	case KindNumber:
		if math.IsNaN(c.num) {
			return "nan"
		}
		if c.num == math.Trunc(c.num) && math.Abs(c.num) < 1e15 {
			return strconv.FormatInt(int64(c.num), 10)
		}
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Row is one record of the table, aligned with Table.Columns.
type Row []Cell

// Table is a fully materialized tabular source.
type Table struct {
	Columns []string
	Rows    []Row

	index map[string]int
}

// NewTable builds a table from a header and rows. Header names are trimmed;
// when a name repeats, the first column wins lookups.
func NewTable(columns []string, rows []Row) *Table {
	cols := make([]string, len(columns))
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		name = strings.TrimSpace(name)
		cols[i] = name
		if _, exists := index[name]; !exists {
			index[name] = i
		}
	}
	return &Table{Columns: cols, Rows: rows, index: index}
}

// Has reports whether the named column exists.
func (t *Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Missing returns the requested columns absent from the table, in request order
// and without duplicates.
func (t *Table) Missing(columns ...string) []string {
	var missing []string
	seen := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		if _, dup := seen[col]; dup {
			continue
		}
		seen[col] = struct{}{}
		if !t.Has(col) {
			missing = append(missing, col)
		}
	}
	return missing
}

// Cell returns the value of column in row. Unknown columns and short rows read
// as blank.
func (t *Table) Cell(row Row, column string) Cell {
	idx, ok := t.index[column]
	if !ok || idx >= len(row) {
		return Empty()
	}
	return row[idx]
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }
