package main

import (
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Cell errors", statusWarn, "3", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Cell errors:", "[WARN] 3")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Articles", statusOK, "53", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestRenderStatusLineWithoutMessage(t *testing.T) {
	got := renderStatusLine("Scale", statusInfo, "", false)
	if !strings.HasSuffix(got, "[INFO]") {
		t.Fatalf("expected bare status label, got %q", got)
	}
}

func TestRenderSectionHeader(t *testing.T) {
	lines := renderSectionHeader(" Circos Build ", false)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "== Circos Build ==" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != strings.Repeat("-", len(lines[0])) {
		t.Fatalf("rule = %q", lines[1])
	}
}

func TestCountKind(t *testing.T) {
	if countKind(0) != statusOK {
		t.Fatal("zero count should be OK")
	}
	if countKind(2) != statusWarn {
		t.Fatal("nonzero count should warn")
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatal("expected no colorization for non-file writer")
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]string{"A", "B"}, [][]string{{"only"}}, []columnAlignment{alignLeft, alignRight})
	if !strings.Contains(out, "only") {
		t.Fatalf("expected row content, got:\n%s", out)
	}
	if renderTable(nil, nil, nil) != "" {
		t.Fatal("expected empty output without headers")
	}
}
