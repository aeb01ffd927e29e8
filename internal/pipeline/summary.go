package pipeline

import (
	"time"

	"github.com/Infa60/Circos/internal/layout"
	"github.com/Infa60/Circos/internal/track"
)

// Summary reports one completed run.
type Summary struct {
	RunID     string
	Input     string
	OutputDir string
	Visual    track.VisualRange
	Scale     track.GlobalScale
	Articles  ArticleSummary
	Tracks    []TrackSummary
	// Ring is the spacing sequence written to circos.conf.
	Ring     []layout.Block
	Files    []string
	Duration time.Duration
}

// TotalErrors sums the cell errors of every track.
func (s *Summary) TotalErrors() int {
	n := 0
	for _, t := range s.Tracks {
		n += t.Errors
	}
	return n
}

// ArticleSummary reports the article axis.
type ArticleSummary struct {
	Count      int
	Skipped    int
	Span       layout.Span
	Window     layout.Window
	Fallback   bool
	File       string
	SegmentEnd int
}

// TrackSummary reports one built track.
type TrackSummary struct {
	Name       string
	Prefix     string
	Window     layout.Window
	Categories int
	Active     int
	Members    int
	Errors     int
	Span       layout.Span
	Sections   []track.Section
	CellErrors []track.ErrorRecord
}

func newTrackSummary(res *track.Result, window layout.Window) TrackSummary {
	return TrackSummary{
		Name:       res.Track.Name,
		Prefix:     res.Track.Prefix,
		Window:     window,
		Categories: len(res.Sections),
		Active:     res.ActiveSections(),
		Members:    res.Members(),
		Errors:     len(res.Errors),
		Span:       res.Span,
		Sections:   res.Sections,
		CellErrors: res.Errors,
	}
}
