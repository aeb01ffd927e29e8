package track

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Infa60/Circos/internal/label"
	"github.com/Infa60/Circos/internal/layout"
	"github.com/Infa60/Circos/internal/source"
)

var testVisual = VisualRange{Min: 70, Max: 400}

func newTable(columns []string, rows ...[]source.Cell) *source.Table {
	out := make([]source.Row, len(rows))
	for i, r := range rows {
		out[i] = source.Row(r)
	}
	return source.NewTable(columns, out)
}

func txt(s string) source.Cell { return source.Text(s) }

func num(f float64) source.Cell { return source.Number(f) }

func spasticTrack() *Track {
	return &Track{
		Name:              "CP Type",
		Prefix:            "cp_type",
		Categories:        []Category{{ID: "typeSpastic", Column: "Spastic", Color: "120,45,0"}},
		Dedup:             true,
		Sort:              true,
		TreatEmptyAsError: true,
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestBuildSingleCategory(t *testing.T) {
	table := newTable([]string{"ArtNb", "Spastic"},
		[]source.Cell{num(1), txt("X")},
		[]source.Cell{num(2), txt("0")},
	)
	dir := t.TempDir()
	b := &Builder{Table: table, ArticleColumn: "ArtNb", Visual: testVisual, OutputDir: dir}
	tr := spasticTrack()

	scale := b.GlobalScale(context.Background(), []*Track{tr})
	res, err := b.Build(context.Background(), tr, layout.Window{Start: 10, End: 19}, scale)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := res.Sections[0].Count(); got != 1 {
		t.Fatalf("typeSpastic count = %d, want 1", got)
	}
	if len(res.Errors) != 0 {
		t.Fatalf("errors = %v, want none", res.Errors)
	}

	wantLinks := "# typeSpastic (Real: 1, Scaled: 400)\n" +
		"art1\t10\t19\ttypeSpastic\t0\t400\tcolor=120,45,0\n"
	if diff := cmp.Diff(wantLinks, readFile(t, filepath.Join(dir, "cp_type.links.txt"))); diff != "" {
		t.Fatalf("links mismatch (-want +got):\n%s", diff)
	}
	wantNumbers := "typeSpastic\t0\t400\t1 color=black\n"
	if diff := cmp.Diff(wantNumbers, readFile(t, filepath.Join(dir, "cp_type.numbers.txt"))); diff != "" {
		t.Fatalf("numbers mismatch (-want +got):\n%s", diff)
	}
	wantData := KaryotypeHeader + "chr -\ttypeSpastic\tSpastic\t0\t400\t120,45,0\n"
	if diff := cmp.Diff(wantData, readFile(t, filepath.Join(dir, "cp_type.data.txt"))); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
	if res.Span != (layout.Span{First: "typeSpastic", Last: "typeSpastic"}) {
		t.Fatalf("span = %+v", res.Span)
	}
	if len(res.Files) != 3 {
		t.Fatalf("files = %v", res.Files)
	}
}

func TestBuildBlankCellIsError(t *testing.T) {
	table := newTable([]string{"ArtNb", "Spastic", "Ataxic"},
		[]source.Cell{num(1), source.Empty(), txt("1")},
		[]source.Cell{num(2), txt("1"), txt("0")},
	)
	tr := spasticTrack()
	tr.Categories = append(tr.Categories, Category{ID: "typeAtaxic", Column: "Ataxic", Color: "210,85,0"})

	col := Collect(tr, table, "ArtNb")
	want := []ErrorRecord{{Article: "art1", Column: "Spastic"}}
	if diff := cmp.Diff(want, col.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]label.ArticleKey{"art2"}, col.Sections[0].Members); diff != "" {
		t.Fatalf("spastic members (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]label.ArticleKey{"art1"}, col.Sections[1].Members); diff != "" {
		t.Fatalf("ataxic members (-want +got):\n%s", diff)
	}
}

func TestCollectBlankCellSkippedWithoutPolicy(t *testing.T) {
	table := newTable([]string{"ArtNb", "Spastic"},
		[]source.Cell{num(1), source.Empty()},
		[]source.Cell{source.Empty(), txt("X")},
	)
	tr := spasticTrack()
	tr.TreatEmptyAsError = false
	col := Collect(tr, table, "ArtNb")
	if len(col.Errors) != 0 || col.Sections[0].Count() != 0 {
		t.Fatalf("unexpected collection: %+v", col)
	}
}

func TestCollectEmptyArticlePlaceholder(t *testing.T) {
	table := newTable([]string{"ArtNb", "Spastic"},
		[]source.Cell{txt("  "), txt("X")},
		[]source.Cell{txt("nan"), txt("X")},
	)
	col := Collect(spasticTrack(), table, "ArtNb")
	want := []ErrorRecord{
		{Article: EmptyArticlePlaceholder, Column: "ArtNb"},
		{Article: EmptyArticlePlaceholder, Column: "ArtNb"},
	}
	if diff := cmp.Diff(want, col.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectUnspecifiedBucket(t *testing.T) {
	table := newTable([]string{"ArtNb", "Spastic"},
		[]source.Cell{num(3), txt("???")},
	)
	tr := spasticTrack()
	tr.Unspecified = &Category{ID: "typeType-Unspecified", Color: "255,160,80"}

	col := Collect(tr, table, "ArtNb")
	if len(col.Errors) != 0 {
		t.Fatalf("errors = %v, want none", col.Errors)
	}
	if diff := cmp.Diff([]label.ArticleKey{"art3"}, col.Sections[1].Members); diff != "" {
		t.Fatalf("unspecified members (-want +got):\n%s", diff)
	}

	tr.Unspecified = nil
	col = Collect(tr, table, "ArtNb")
	if diff := cmp.Diff([]ErrorRecord{{Article: "art3", Column: "Spastic"}}, col.Errors); diff != "" {
		t.Fatalf("errors without bucket (-want +got):\n%s", diff)
	}
}

func TestCollectDedupAndSort(t *testing.T) {
	table := newTable([]string{"ArtNb", "Spastic"},
		[]source.Cell{num(10), txt("X")},
		[]source.Cell{txt("artB"), txt("X")},
		[]source.Cell{num(2), txt("X")},
		[]source.Cell{txt("Art 10"), txt("X")},
		[]source.Cell{txt("artA"), txt("X")},
	)
	tr := spasticTrack()
	col := Collect(tr, table, "ArtNb")
	want := []label.ArticleKey{"art2", "art10", "artA", "artB"}
	if diff := cmp.Diff(want, col.Sections[0].Members); diff != "" {
		t.Fatalf("members (-want +got):\n%s", diff)
	}

	tr.Dedup, tr.Sort = false, false
	col = Collect(tr, table, "ArtNb")
	want = []label.ArticleKey{"art10", "artB", "art2", "art10", "artA"}
	if diff := cmp.Diff(want, col.Sections[0].Members); diff != "" {
		t.Fatalf("raw members (-want +got):\n%s", diff)
	}
}

func TestGlobalScaleSharedAcrossTracks(t *testing.T) {
	var rows [][]source.Cell
	for i := 1; i <= 5; i++ {
		rows = append(rows, []source.Cell{num(float64(i)), txt("X"), txt("1"), txt("0")})
	}
	rows = append(rows, []source.Cell{num(6), txt("0"), txt("0"), txt("1")})
	table := newTable([]string{"ArtNb", "Spastic", "GMFCS-I", "GMFCS-II"}, rows...)

	a := spasticTrack()
	b := &Track{
		Name:   "GMFCS",
		Prefix: "gmfcs_level",
		Categories: []Category{
			{ID: "typeGMFCS-I", Column: "GMFCS-I", Color: "120,0,0"},
			{ID: "typeGMFCS-II", Column: "GMFCS-II", Color: "160,20,20"},
		},
		Dedup: true, Sort: true,
	}
	builder := &Builder{Table: table, ArticleColumn: "ArtNb", Visual: testVisual, OutputDir: t.TempDir()}
	scale := builder.GlobalScale(context.Background(), []*Track{a, b})
	if scale != (GlobalScale{Min: 1, Max: 5}) {
		t.Fatalf("scale = %+v, want {1 5}", scale)
	}

	ra, err := builder.Build(context.Background(), a, layout.Window{Start: 10, End: 19}, scale)
	if err != nil {
		t.Fatalf("Build a: %v", err)
	}
	rb, err := builder.Build(context.Background(), b, layout.Window{Start: 20, End: 29}, scale)
	if err != nil {
		t.Fatalf("Build b: %v", err)
	}
	if ra.Sections[0].Size != rb.Sections[0].Size || ra.Sections[0].Size != 400 {
		t.Fatalf("sizes = %d and %d, want both 400", ra.Sections[0].Size, rb.Sections[0].Size)
	}
	if rb.Sections[1].Size != 70 {
		t.Fatalf("GMFCS-II size = %d, want 70", rb.Sections[1].Size)
	}
}

func TestBuildEmptyTrack(t *testing.T) {
	table := newTable([]string{"ArtNb", "Spastic"},
		[]source.Cell{num(1), txt("0")},
	)
	b := &Builder{Table: table, ArticleColumn: "ArtNb", Visual: testVisual, OutputDir: t.TempDir()}
	tr := spasticTrack()
	scale := b.GlobalScale(context.Background(), []*Track{tr})
	if !scale.Empty || scale.Min != 0 || scale.Max != 1 {
		t.Fatalf("scale = %+v, want default", scale)
	}
	res, err := b.Build(context.Background(), tr, layout.Window{Start: 10, End: 19}, scale)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !res.Span.Empty() {
		t.Fatalf("span = %+v, want empty", res.Span)
	}
	if got := string(RenderData(res)); got != KaryotypeHeader {
		t.Fatalf("data = %q", got)
	}
}

func TestBuildMissingColumns(t *testing.T) {
	table := newTable([]string{"ArtNb"}, []source.Cell{num(1)})
	b := &Builder{Table: table, ArticleColumn: "ArtNb", Visual: testVisual, OutputDir: t.TempDir()}
	_, err := b.Build(context.Background(), spasticTrack(), layout.Window{}, DefaultScale)
	var missing *MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnsError, got %v", err)
	}
	if diff := cmp.Diff([]string{"Spastic"}, missing.Missing); diff != "" {
		t.Fatalf("missing (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"ArtNb"}, missing.Found); diff != "" {
		t.Fatalf("found (-want +got):\n%s", diff)
	}
}

func TestRenderLinksErrorsSection(t *testing.T) {
	res := &Result{
		Window: layout.Window{Start: 20, End: 29},
		Sections: []Section{
			{Category: Category{ID: "typeA", Color: "1,2,3"}, Members: []label.ArticleKey{"art1", "art4"}, Size: 70},
			{Category: Category{ID: "typeB", Color: "4,5,6"}},
		},
		Errors: []ErrorRecord{{Article: "art2", Column: "A"}},
	}
	want := "# typeA (Real: 2, Scaled: 70)\n" +
		"art1\t20\t29\ttypeA\t0\t70\tcolor=1,2,3\n" +
		"art4\t20\t29\ttypeA\t0\t70\tcolor=1,2,3\n" +
		"\n# ERRORS\n" +
		"art2\tA\t<empty>\n"
	if diff := cmp.Diff(want, string(RenderLinks(res))); diff != "" {
		t.Fatalf("links (-want +got):\n%s", diff)
	}
}

func TestDisplayName(t *testing.T) {
	cases := []struct {
		cat  Category
		want string
	}{
		{Category{ID: "typeGMFCS-I"}, "GMFCS-I"},
		{Category{ID: "typetypeX"}, "X"},
		{Category{ID: "typeA", Label: "Alpha"}, "Alpha"},
	}
	for _, tc := range cases {
		if got := tc.cat.DisplayName(); got != tc.want {
			t.Fatalf("DisplayName(%q) = %q, want %q", tc.cat.ID, got, tc.want)
		}
	}
}
