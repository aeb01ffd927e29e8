package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Infa60/Circos/internal/config"
	"github.com/Infa60/Circos/internal/fileutil"
	"github.com/Infa60/Circos/internal/layout"
	"github.com/Infa60/Circos/internal/testsupport"
	"github.com/Infa60/Circos/internal/track"
)

const (
	reviewCSV    = testsupport.ReviewCSV
	reviewTracks = testsupport.ReviewTracks
)

func newFixture(t *testing.T, csv, tracks string) (*config.Config, testsupport.Review) {
	t.Helper()
	r := testsupport.NewReview(t, testsupport.WithCSV(csv), testsupport.WithTracks(tracks))
	return testsupport.LoadConfig(t, r), r
}

func readOutput(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

func TestRunEndToEnd(t *testing.T) {
	cfg, f := newFixture(t, reviewCSV, reviewTracks)
	summary, err := New(cfg, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.Scale != (track.GlobalScale{Min: 1, Max: 2}) {
		t.Fatalf("scale = %+v", summary.Scale)
	}
	if summary.RunID == "" {
		t.Fatal("expected run id")
	}

	wantArticles := "chr -\tart1\tDoe-2020\t0\t30\tblack\n" +
		"chr -\tart2\tRoe-2021\t0\t30\tblack\n" +
		"chr -\tart3\tPoe-2022\t0\t30\tblack\n"
	if diff := cmp.Diff(wantArticles, readOutput(t, f.Output, "articles.data.txt")); diff != "" {
		t.Fatalf("articles (-want +got):\n%s", diff)
	}

	wantLinks := "# typeSpastic (Real: 2, Scaled: 400)\n" +
		"art1\t10\t19\ttypeSpastic\t0\t400\tcolor=120,45,0\n" +
		"art3\t10\t19\ttypeSpastic\t0\t400\tcolor=120,45,0\n" +
		"# typeAtaxic (Real: 1, Scaled: 70)\n" +
		"art2\t10\t19\ttypeAtaxic\t0\t70\tcolor=210,85,0\n" +
		"\n# ERRORS\n" +
		"art3\tAtaxic\t<empty>\n"
	if diff := cmp.Diff(wantLinks, readOutput(t, f.Output, "cp_type.links.txt")); diff != "" {
		t.Fatalf("cp_type links (-want +got):\n%s", diff)
	}

	wantNumbers := "typeGMFCS-I\t0\t400\t2 color=black\n" +
		"typeGMFCS-II\t0\t70\t1 color=black\n" +
		"typeGMFCS-Unspecified\t0\t70\t1 color=black\n"
	if diff := cmp.Diff(wantNumbers, readOutput(t, f.Output, "gmfcs_level.numbers.txt")); diff != "" {
		t.Fatalf("gmfcs numbers (-want +got):\n%s", diff)
	}

	conf := readOutput(t, f.Output, "circos.conf")
	for _, fragment := range []string{
		"karyotype = articles.data.txt, cp_type.data.txt, gmfcs_level.data.txt\n",
		"<pairwise art3,typeSpastic>",
		"<pairwise typeAtaxic,typeGMFCS-I>",
		"<pairwise typeGMFCS-Unspecified,art1>",
		"file           = gmfcs_level.numbers.txt",
		"file          = cp_type.links.txt",
	} {
		if !strings.Contains(conf, fragment) {
			t.Fatalf("circos.conf missing %q:\n%s", fragment, conf)
		}
	}

	if len(summary.Tracks) != 2 {
		t.Fatalf("tracks = %d", len(summary.Tracks))
	}
	cp := summary.Tracks[0]
	if cp.Window != (layout.Window{Start: 10, End: 19}) || cp.Errors != 1 || cp.Members != 3 {
		t.Fatalf("cp_type summary = %+v", cp)
	}
	if summary.TotalErrors() != 1 {
		t.Fatalf("total errors = %d", summary.TotalErrors())
	}
	if len(summary.Files) != 8 {
		t.Fatalf("files = %v", summary.Files)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	cfg, _ := newFixture(t, reviewCSV, reviewTracks)
	runner := New(cfg, nil)
	first, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	before := make(map[string]string, len(first.Files))
	for _, p := range first.Files {
		before[p] = readOutput(t, filepath.Dir(p), filepath.Base(p))
	}
	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	for p, want := range before {
		if got := readOutput(t, filepath.Dir(p), filepath.Base(p)); got != want {
			t.Fatalf("%s changed between runs", filepath.Base(p))
		}
	}
}

func TestRunMissingColumnWritesNothing(t *testing.T) {
	tracks := reviewTracks + `
[[tracks]]
prefix = "laterality"

[[tracks.categories]]
column = "Hemiplegic"
color = "150,120,0"
`
	cfg, f := newFixture(t, reviewCSV, tracks)
	_, err := New(cfg, nil).Run(context.Background())
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	var missing *track.MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnsError, got %v", err)
	}
	if diff := cmp.Diff([]string{"Hemiplegic"}, missing.Missing); diff != "" {
		t.Fatalf("missing (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(f.Output); !os.IsNotExist(err) {
		t.Fatalf("expected no output directory, stat err = %v", err)
	}
}

func TestRunMissingArticleColumn(t *testing.T) {
	cfg, _ := newFixture(t, "Spastic\nX\n", reviewTracks)
	_, err := New(cfg, nil).Run(context.Background())
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestRunInputNotFound(t *testing.T) {
	cfg, f := newFixture(t, reviewCSV, reviewTracks)
	if err := os.Remove(f.Input); err != nil {
		t.Fatalf("remove input: %v", err)
	}
	_, err := New(cfg, nil).Run(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if ExitCode(err) != 3 {
		t.Fatalf("exit code = %d", ExitCode(err))
	}
}

func TestRunLockedOutput(t *testing.T) {
	cfg, f := newFixture(t, reviewCSV, reviewTracks)
	lock, err := fileutil.LockDir(f.Output)
	if err != nil {
		t.Fatalf("LockDir: %v", err)
	}
	defer lock.Unlock()

	_, err = New(cfg, nil).Run(context.Background())
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestRunEmptyDataUsesDefaultScale(t *testing.T) {
	csv := "ArtNb,ref,Spastic,Ataxic,GMFCS-I,GMFCS-II\n1,Doe,0,0,0,0\n"
	cfg, f := newFixture(t, csv, reviewTracks)
	summary, err := New(cfg, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !summary.Scale.Empty {
		t.Fatalf("scale = %+v, want default", summary.Scale)
	}
	conf := readOutput(t, f.Output, "circos.conf")
	if !strings.Contains(conf, "karyotype = articles.data.txt\n") {
		t.Fatalf("unexpected karyotype line:\n%s", conf)
	}
	if strings.Contains(conf, "<pairwise") {
		t.Fatalf("expected no pairwise rules with a single block:\n%s", conf)
	}
}

func TestScanWritesNothing(t *testing.T) {
	cfg, f := newFixture(t, reviewCSV, reviewTracks)
	report, err := New(cfg, nil).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []ScanCategory{
		{ID: "typeGMFCS-I", Count: 2, Size: 400},
		{ID: "typeGMFCS-II", Count: 1, Size: 70},
		{ID: "typeGMFCS-Unspecified", Count: 1, Size: 70},
	}
	if diff := cmp.Diff(want, report.Tracks[1].Categories); diff != "" {
		t.Fatalf("gmfcs scan (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(f.Output); !os.IsNotExist(err) {
		t.Fatalf("scan created output, stat err = %v", err)
	}
}

func TestWriteArticles(t *testing.T) {
	cfg, f := newFixture(t, reviewCSV, reviewTracks)
	res, err := New(cfg, nil).WriteArticles(context.Background())
	if err != nil {
		t.Fatalf("WriteArticles: %v", err)
	}
	if res.Count != 3 || res.Span != (layout.Span{First: "art1", Last: "art3"}) {
		t.Fatalf("articles = %+v", res)
	}
	if _, err := os.Stat(filepath.Join(f.Output, "circos.conf")); !os.IsNotExist(err) {
		t.Fatal("articles command must not write circos.conf")
	}
}

func TestRescale(t *testing.T) {
	rows, err := Rescale(1, 53, track.VisualRange{Min: 70, Max: 400})
	if err != nil {
		t.Fatalf("Rescale: %v", err)
	}
	if len(rows) != 53 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0] != (RescaleRow{Count: 1, Size: 70}) || rows[52] != (RescaleRow{Count: 53, Size: 400}) {
		t.Fatalf("endpoints = %+v %+v", rows[0], rows[52])
	}
	// 70 + 26*330/52 = 235
	if rows[26].Size != 235 {
		t.Fatalf("midpoint size = %d, want 235", rows[26].Size)
	}
	if _, err := Rescale(5, 2, track.VisualRange{Min: 70, Max: 400}); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}
