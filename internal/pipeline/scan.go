package pipeline

import (
	"context"
	"fmt"

	"github.com/Infa60/Circos/internal/logging"
	"github.com/Infa60/Circos/internal/track"
)

// ScanReport is the count-only view of a run.
type ScanReport struct {
	Scale  track.GlobalScale
	Visual track.VisualRange
	Tracks []ScanTrack
}

// ScanTrack lists the categories of one track.
type ScanTrack struct {
	Name       string
	Prefix     string
	Categories []ScanCategory
}

// ScanCategory is one category's count and the size it would be drawn at.
type ScanCategory struct {
	ID    string
	Count int
	Size  int
}

// Scan runs the count-only pass over every track and reports the global
// scale and the resulting segment sizes. Nothing is written.
func (r *Runner) Scan(ctx context.Context) (*ScanReport, error) {
	table, err := r.Open(ctx)
	if err != nil {
		return nil, err
	}
	tracks := Tracks(r.cfg)
	if err := r.Validate(table, tracks); err != nil {
		return nil, err
	}

	b := r.builder(table)
	scale := b.GlobalScale(ctx, tracks)
	report := &ScanReport{Scale: scale, Visual: b.Visual}
	for _, t := range tracks {
		st := ScanTrack{Name: t.Name, Prefix: t.Prefix}
		for _, c := range b.Count(t) {
			st.Categories = append(st.Categories, ScanCategory{
				ID:    c.ID,
				Count: c.Count,
				Size:  scale.Size(c.Count, b.Visual),
			})
		}
		report.Tracks = append(report.Tracks, st)
	}
	r.logger.Info("scan complete",
		logging.Int("tracks", len(report.Tracks)),
		logging.Int("global_min", scale.Min),
		logging.Int("global_max", scale.Max),
	)
	return report, nil
}

// RescaleRow is one line of a rescale preview.
type RescaleRow struct {
	Count int
	Size  int
}

// Rescale previews the segment size of every count in [from, to] under the
// scale (from, to) and visual range v.
func Rescale(from, to int, v track.VisualRange) ([]RescaleRow, error) {
	if from <= 0 || to < from {
		return nil, Wrap(ErrConfiguration, "rescale", "", fmt.Sprintf("invalid count range %d..%d", from, to), nil)
	}
	if v.Min <= 0 || v.Max < v.Min {
		return nil, Wrap(ErrConfiguration, "rescale", "", fmt.Sprintf("invalid visual range %d..%d", v.Min, v.Max), nil)
	}
	scale := track.GlobalScale{Min: from, Max: to}
	rows := make([]RescaleRow, 0, to-from+1)
	for n := from; n <= to; n++ {
		rows = append(rows, RescaleRow{Count: n, Size: scale.Size(n, v)})
	}
	return rows, nil
}
