// Package circosconf assembles circos.conf from the laid-out blocks of a
// run: the karyotype file list, one label plot and one link block per
// active track, and the circular spacing rules between neighbouring blocks.
package circosconf

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Infa60/Circos/internal/fileutil"
	"github.com/Infa60/Circos/internal/layout"
	"github.com/Infa60/Circos/internal/track"
)

// FileName is the assembled configuration written into the output directory.
const FileName = "circos.conf"

//go:embed circos.conf.tmpl
var confTemplate string

var conf = template.Must(template.New(FileName).Parse(confTemplate))

// Document is the input of Render.
type Document struct {
	// ArticleFile is the article karyotype, always listed first.
	ArticleFile string
	// Tracks are the prefixes of active tracks in configured order.
	Tracks []string
	// Ring is the circular block sequence used for spacing rules.
	Ring []layout.Block
}

// FromTracker builds a document from the blocks recorded by t.
func FromTracker(t *layout.Tracker, articleFile string) Document {
	return Document{
		ArticleFile: articleFile,
		Tracks:      t.Active(),
		Ring:        t.Blocks(),
	}
}

// Karyotype returns the comma separated karyotype file list.
func Karyotype(articleFile string, tracks []string) string {
	files := make([]string, 0, len(tracks)+1)
	files = append(files, articleFile)
	for _, p := range tracks {
		files = append(files, p+track.DataSuffix)
	}
	return strings.Join(files, ", ")
}

// Plots returns one text plot block per track.
func Plots(tracks []string) string {
	var sb strings.Builder
	for _, p := range tracks {
		fmt.Fprintf(&sb, `
    <plot>
        type           = text
        file           = %s%s
        r1             = 1200p
        r0             = 710p
        label_font     = bold
        label_size     = 20p
        label_parallel = no
        rpadding       = 0p
        padding        = 0p
    </plot>`, p, track.NumbersSuffix)
	}
	return sb.String()
}

// Links returns one ribbon link block per track.
func Links(tracks []string) string {
	var sb strings.Builder
	for _, p := range tracks {
		fmt.Fprintf(&sb, `
    <link>
        file          = %s%s
        radius        = dims(ideogram,radius) - 70p
        bezier_radius = 0r
        crest         = 0.3
        thickness     = 1p
        ribbon        = yes
    </link>`, p, track.LinksSuffix)
	}
	return sb.String()
}

// Spacing returns the default spacing followed by one pairwise rule from
// the end of each block to the start of the next, wrapping around from the
// last block to the first. A single block gets no pairwise rule.
func Spacing(ring []layout.Block) string {
	var sb strings.Builder
	sb.WriteString("default = 0.003r\n")
	if len(ring) < 2 {
		return sb.String()
	}
	for i, cur := range ring {
		next := ring[(i+1)%len(ring)]
		fmt.Fprintf(&sb, `
        # Spacing between %s and %s
        <pairwise %s,%s>
            spacing = 5r
        </pairwise>`, cur.Name, next.Name, cur.Span.Last, next.Span.First)
	}
	return sb.String()
}

// Render returns the circos.conf text for doc.
func Render(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	err := conf.Execute(&buf, struct {
		Karyotype string
		Spacing   string
		Plots     string
		Links     string
	}{
		Karyotype: Karyotype(doc.ArticleFile, doc.Tracks),
		Spacing:   Spacing(doc.Ring),
		Plots:     Plots(doc.Tracks),
		Links:     Links(doc.Tracks),
	})
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", FileName, err)
	}
	return buf.Bytes(), nil
}

// Write renders doc into dir and returns the written path.
func Write(dir string, doc Document) (string, error) {
	data, err := Render(doc)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName)
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", FileName, err)
	}
	return path, nil
}
