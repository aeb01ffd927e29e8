package track

import (
	"fmt"
	"strings"

	"github.com/Infa60/Circos/internal/fileutil"
)

// Artifact file suffixes appended to a track prefix.
const (
	LinksSuffix   = ".links.txt"
	NumbersSuffix = ".numbers.txt"
	DataSuffix    = ".data.txt"
)

// KaryotypeHeader opens every karyotype file.
const KaryotypeHeader = "# chr - CHRNAME CHRLABEL START END COLOR\n"

// RenderLinks renders one header and one link line per member for every
// section that has members, followed by the ERRORS section when any cell
// failed.
func RenderLinks(r *Result) []byte {
	var sb strings.Builder
	for _, s := range r.Sections {
		if len(s.Members) == 0 {
			continue
		}
		id := s.Category.ID
		fmt.Fprintf(&sb, "# %s (Real: %d, Scaled: %d)\n", id, s.Count(), s.Size)
		for _, art := range s.Members {
			fmt.Fprintf(&sb, "%s\t%d\t%d\t%s\t0\t%d\tcolor=%s\n",
				art, r.Window.Start, r.Window.End, id, s.Size, s.Category.Color)
		}
	}
	if len(r.Errors) > 0 {
		sb.WriteString("\n# ERRORS\n")
		for _, e := range r.Errors {
			fmt.Fprintf(&sb, "%s\t%s\t<empty>\n", e.Article, e.Column)
		}
	}
	return []byte(sb.String())
}

// RenderNumbers renders the label plot data: one line per active section.
func RenderNumbers(r *Result) []byte {
	var sb strings.Builder
	for _, s := range r.Sections {
		if !s.Active() {
			continue
		}
		fmt.Fprintf(&sb, "%s\t0\t%d\t%d color=black\n", s.Category.ID, s.Size, s.Count())
	}
	return []byte(sb.String())
}

// RenderData renders the karyotype: one segment per active section.
func RenderData(r *Result) []byte {
	var sb strings.Builder
	sb.WriteString(KaryotypeHeader)
	for _, s := range r.Sections {
		if !s.Active() {
			continue
		}
		fmt.Fprintf(&sb, "chr -\t%s\t%s\t0\t%d\t%s\n",
			s.Category.ID, s.Category.DisplayName(), s.Size, s.Category.Color)
	}
	return []byte(sb.String())
}

func writeArtifact(path string, data []byte) error {
	return fileutil.WriteFileAtomic(path, data, 0o644)
}
