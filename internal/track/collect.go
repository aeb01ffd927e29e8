package track

import (
	"slices"

	"github.com/Infa60/Circos/internal/classify"
	"github.com/Infa60/Circos/internal/label"
	"github.com/Infa60/Circos/internal/source"
)

// EmptyArticlePlaceholder stands in for the article key of a row whose
// article cell is blank.
const EmptyArticlePlaceholder = "(empty article)"

// ErrorRecord is a cell that could not be bucketed.
type ErrorRecord struct {
	Article string
	Column  string
}

// Section is one category with its ordered members.
type Section struct {
	Category Category
	Members  []label.ArticleKey
	// Size is the scaled segment length; zero until the section is scaled.
	Size int
}

// Count is the number of members after dedup.
func (s Section) Count() int { return len(s.Members) }

// Active reports whether the section gets a segment.
func (s Section) Active() bool { return s.Size > 0 }

// Collection is the classified content of one track.
type Collection struct {
	Sections []Section
	Errors   []ErrorRecord
}

// ArticleKeyOf normalizes an article-id cell. Blank, NA-like and "???" cells
// give the empty key.
func ArticleKeyOf(cell source.Cell) label.ArticleKey {
	switch classify.Classify(cell) {
	case classify.Absent, classify.Unspecified:
		return ""
	}
	return label.NormalizeArticleID(cell.String())
}

// Collect classifies every (article, column) cell of the track and returns
// its sections in output order, deduplicated and sorted per the track's
// policies. Collect has no side effects.
func Collect(t *Track, table *source.Table, articleColumn string) *Collection {
	sections := t.Sections()
	out := &Collection{Sections: make([]Section, len(sections))}
	byColumn := make(map[string]int, len(t.Categories))
	for i, c := range sections {
		out.Sections[i].Category = c
		if i < len(t.Categories) {
			byColumn[c.Column] = i
		}
	}
	unspecified := -1
	if t.Unspecified != nil {
		unspecified = len(sections) - 1
	}

	policy := t.policy()
	for _, row := range table.Rows {
		art := ArticleKeyOf(table.Cell(row, articleColumn))
		if art == "" {
			if t.TreatEmptyAsError {
				out.Errors = append(out.Errors, ErrorRecord{Article: EmptyArticlePlaceholder, Column: articleColumn})
			}
			continue
		}
		for _, c := range t.Categories {
			switch classify.Decide(table.Cell(row, c.Column), policy) {
			case classify.AddToCategory:
				idx := byColumn[c.Column]
				out.Sections[idx].Members = append(out.Sections[idx].Members, art)
			case classify.AddToUnspecified:
				out.Sections[unspecified].Members = append(out.Sections[unspecified].Members, art)
			case classify.RecordError:
				out.Errors = append(out.Errors, ErrorRecord{Article: string(art), Column: c.Column})
			}
		}
	}

	for i := range out.Sections {
		members := out.Sections[i].Members
		if t.Dedup {
			members = dedupKeys(members)
		}
		if t.Sort {
			slices.SortStableFunc(members, label.CompareKeys)
		}
		out.Sections[i].Members = members
	}
	return out
}

func dedupKeys(keys []label.ArticleKey) []label.ArticleKey {
	if len(keys) < 2 {
		return keys
	}
	seen := make(map[label.ArticleKey]struct{}, len(keys))
	out := keys[:0]
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// CategoryCount is one category's membership count.
type CategoryCount struct {
	ID    string
	Count int
}

// Count is the count-only pass over one track.
func Count(t *Track, table *source.Table, articleColumn string) []CategoryCount {
	col := Collect(t, table, articleColumn)
	counts := make([]CategoryCount, len(col.Sections))
	for i, s := range col.Sections {
		counts[i] = CategoryCount{ID: s.Category.ID, Count: s.Count()}
	}
	return counts
}

// Scale sets every section's Size from s and returns the span of the first
// and last active section.
func (c *Collection) Scale(s GlobalScale, v VisualRange) (first, last string) {
	for i := range c.Sections {
		c.Sections[i].Size = s.Size(c.Sections[i].Count(), v)
		if !c.Sections[i].Active() {
			continue
		}
		if first == "" {
			first = c.Sections[i].Category.ID
		}
		last = c.Sections[i].Category.ID
	}
	return first, last
}
