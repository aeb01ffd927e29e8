package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Infa60/Circos/internal/config"
)

// ReviewCSV is a three-article review with one blank cell and one "???".
const ReviewCSV = "ArtNb,ref,Spastic,Ataxic,GMFCS-I,GMFCS-II\n" +
	"1,Doe 2020,X,0,1,0\n" +
	"2,Roe 2021,0,X,1,???\n" +
	"3,Poe 2022,X,,0,1\n"

// ReviewTracks declares the two tracks matching ReviewCSV.
const ReviewTracks = `
[[tracks]]
name = "CP Type"
prefix = "cp_type"

[[tracks.categories]]
column = "Spastic"
color = "120,45,0"

[[tracks.categories]]
column = "Ataxic"
color = "210,85,0"

[[tracks]]
name = "GMFCS Level"
prefix = "gmfcs_level"

[tracks.unspecified]
id = "typeGMFCS-Unspecified"
color = "255,150,150"

[[tracks.categories]]
column = "GMFCS-I"
color = "120,0,0"

[[tracks.categories]]
column = "GMFCS-II"
color = "160,20,20"
`

// Review holds the paths of a generated review workspace.
type Review struct {
	Dir        string
	Input      string
	Output     string
	ConfigPath string
}

// ReviewOption customizes the generated workspace.
type ReviewOption func(*reviewBuilder)

type reviewBuilder struct {
	csv    string
	tracks string
	extra  string
}

// WithCSV replaces the input spreadsheet contents.
func WithCSV(csv string) ReviewOption {
	return func(b *reviewBuilder) {
		b.csv = csv
	}
}

// WithTracks replaces the [[tracks]] tables.
func WithTracks(tracks string) ReviewOption {
	return func(b *reviewBuilder) {
		b.tracks = tracks
	}
}

// WithConfig appends extra TOML tables after [input] and [output].
func WithConfig(tables string) ReviewOption {
	return func(b *reviewBuilder) {
		b.extra = tables
	}
}

// NewReview writes a CSV input and a circosgen.toml pointing at it into a
// fresh temp directory. The output directory is not created.
func NewReview(t testing.TB, opts ...ReviewOption) Review {
	t.Helper()

	b := &reviewBuilder{csv: ReviewCSV, tracks: ReviewTracks}
	for _, opt := range opts {
		opt(b)
	}

	dir := t.TempDir()
	r := Review{
		Dir:        dir,
		Input:      filepath.Join(dir, "review.csv"),
		Output:     filepath.Join(dir, "out"),
		ConfigPath: filepath.Join(dir, config.ProjectConfigName),
	}
	if err := os.WriteFile(r.Input, []byte(b.csv), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	conf := "[input]\npath = \"" + filepath.ToSlash(r.Input) + "\"\n\n" +
		"[output]\ndir = \"" + filepath.ToSlash(r.Output) + "\"\n" +
		b.extra + b.tracks
	if err := os.WriteFile(r.ConfigPath, []byte(conf), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return r
}

// LoadConfig loads and validates the workspace configuration.
func LoadConfig(t testing.TB, r Review) *config.Config {
	t.Helper()
	cfg, _, _, err := config.Load(r.ConfigPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}
