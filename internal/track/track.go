package track

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Infa60/Circos/internal/classify"
	"github.com/Infa60/Circos/internal/source"
)

// Category is one discrete value of a track and one karyotype segment.
type Category struct {
	// ID names the segment and joins links and labels to it.
	ID string
	// Column is the spreadsheet column feeding the category. Unused for the
	// unspecified bucket.
	Column string
	Color  string
	// Label overrides the display name.
	Label string
}

// DisplayName is the ideogram label: Label when set, otherwise the id with
// every "type" substring removed.
func (c Category) DisplayName() string {
	if c.Label != "" {
		return c.Label
	}
	return strings.ReplaceAll(c.ID, "type", "")
}

// Track is one classification axis.
type Track struct {
	Name string
	// Prefix names the output files: <Prefix>.links.txt and friends.
	Prefix     string
	Categories []Category
	// Unspecified is the optional bucket for cells holding the "???" marker.
	Unspecified *Category

	Dedup             bool
	Sort              bool
	TreatEmptyAsError bool
}

// Columns returns the spreadsheet columns the track reads.
func (t *Track) Columns() []string {
	cols := make([]string, 0, len(t.Categories))
	for _, c := range t.Categories {
		cols = append(cols, c.Column)
	}
	return cols
}

// Sections returns the output order: configured categories, then the
// unspecified bucket.
func (t *Track) Sections() []Category {
	out := append([]Category(nil), t.Categories...)
	if t.Unspecified != nil {
		out = append(out, *t.Unspecified)
	}
	return out
}

func (t *Track) policy() classify.Policy {
	return classify.Policy{
		TreatEmptyAsError: t.TreatEmptyAsError,
		HasUnspecified:    t.Unspecified != nil,
	}
}

// MissingColumnsError reports columns a track needs that the table lacks. It
// aborts the run before any output is written.
type MissingColumnsError struct {
	Track   string
	Missing []string
	Found   []string
}

func (e *MissingColumnsError) Error() string {
	found := append([]string(nil), e.Found...)
	sort.Strings(found)
	return fmt.Sprintf("track %q: missing columns [%s]; columns found: [%s]",
		e.Track, strings.Join(e.Missing, ", "), strings.Join(found, ", "))
}

// CheckColumns verifies that every column the track reads, plus the article
// column, exists in table.
func CheckColumns(t *Track, table *source.Table, articleColumn string) error {
	need := append([]string{articleColumn}, t.Columns()...)
	if missing := table.Missing(need...); len(missing) > 0 {
		return &MissingColumnsError{Track: t.Name, Missing: missing, Found: table.Columns}
	}
	return nil
}
