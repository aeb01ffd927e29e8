// Package articles builds the article axis of the diagram: one karyotype
// segment per reviewed article, labelled with its normalized reference.
package articles

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/Infa60/Circos/internal/fileutil"
	"github.com/Infa60/Circos/internal/label"
	"github.com/Infa60/Circos/internal/layout"
	"github.com/Infa60/Circos/internal/logging"
	"github.com/Infa60/Circos/internal/source"
	"github.com/Infa60/Circos/internal/track"
)

// FileName is the article karyotype written into the output directory.
const FileName = "articles.data.txt"

// unnumbered sorts keys without any digit after every numbered key.
const unnumbered = 999999

var digitRun = regexp.MustCompile(`\d+`)

// Options selects the columns and the segment styling of the article axis.
type Options struct {
	ArticleColumn   string
	ReferenceColumn string
	Style           label.Style
	Color           string
	// End is the segment length of every article.
	End int
}

// Entry is one article segment.
type Entry struct {
	Key   label.ArticleKey
	Label string
}

// Axis is the collected article axis.
type Axis struct {
	Entries []Entry
	// Blank counts rows without an article id.
	Blank int
	// Duplicates counts rows repeating an earlier article id.
	Duplicates int
	// ReferenceFallback is set when the reference column is missing and the
	// article column labels the segments.
	ReferenceFallback bool
}

// Collect reads one entry per distinct article id, ordered by the first
// number in the key. The first row of a repeated id wins.
func Collect(table *source.Table, opts Options, logger *slog.Logger) (*Axis, error) {
	if !table.Has(opts.ArticleColumn) {
		return nil, &track.MissingColumnsError{
			Track:   layout.ArticlesBlock,
			Missing: []string{opts.ArticleColumn},
			Found:   table.Columns,
		}
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	axis := &Axis{}
	refColumn := opts.ReferenceColumn
	if refColumn == "" || !table.Has(refColumn) {
		logging.WarnWithContext(logger, "reference column not found; labelling articles by id",
			"reference_column_missing",
			logging.String("reference_column", opts.ReferenceColumn),
			logging.String("article_column", opts.ArticleColumn),
			logging.String(logging.FieldErrorHint, "add the reference column or set input.reference_column"),
			logging.String(logging.FieldImpact, "article segments show ids instead of references"),
		)
		axis.ReferenceFallback = true
		refColumn = opts.ArticleColumn
	}

	seen := make(map[label.ArticleKey]struct{})
	for _, row := range table.Rows {
		key := track.ArticleKeyOf(table.Cell(row, opts.ArticleColumn))
		if key == "" {
			axis.Blank++
			continue
		}
		if _, ok := seen[key]; ok {
			axis.Duplicates++
			continue
		}
		seen[key] = struct{}{}

		ref := label.NormalizeReference(table.Cell(row, refColumn).String(), opts.Style)
		if table.Cell(row, refColumn).IsBlank() || ref == "" {
			ref = string(key)
		}
		axis.Entries = append(axis.Entries, Entry{Key: key, Label: ref})
	}

	slices.SortStableFunc(axis.Entries, func(a, b Entry) int {
		return articleNumber(a.Key) - articleNumber(b.Key)
	})

	if axis.Blank > 0 || axis.Duplicates > 0 {
		logger.Info("article rows skipped",
			logging.Int("blank", axis.Blank),
			logging.Int("duplicates", axis.Duplicates),
		)
	}
	return axis, nil
}

func articleNumber(key label.ArticleKey) int {
	m := digitRun.FindString(string(key))
	if m == "" {
		return unnumbered
	}
	n, err := strconv.Atoi(m)
	if err != nil || n > unnumbered {
		return unnumbered
	}
	return n
}

// Span returns the first and last article of the axis in file order.
func (a *Axis) Span() layout.Span {
	if len(a.Entries) == 0 {
		return layout.Span{}
	}
	return layout.Span{
		First: string(a.Entries[0].Key),
		Last:  string(a.Entries[len(a.Entries)-1].Key),
	}
}

// Render returns the article karyotype text.
func Render(a *Axis, end int, color string) []byte {
	var sb strings.Builder
	for _, e := range a.Entries {
		fmt.Fprintf(&sb, "chr -\t%s\t%s\t0\t%d\t%s\n", e.Key, e.Label, end, color)
	}
	return []byte(sb.String())
}

// Write renders the axis into dir and returns the written path.
func Write(dir string, a *Axis, opts Options) (string, error) {
	path := filepath.Join(dir, FileName)
	if err := fileutil.WriteFileAtomic(path, Render(a, opts.End, opts.Color), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", FileName, err)
	}
	return path, nil
}
