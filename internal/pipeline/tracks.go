package pipeline

import (
	"github.com/Infa60/Circos/internal/config"
	"github.com/Infa60/Circos/internal/track"
)

// Tracks converts configured tracks into engine tracks, in configured order.
func Tracks(cfg *config.Config) []*track.Track {
	out := make([]*track.Track, 0, len(cfg.Tracks))
	for _, t := range cfg.Tracks {
		tr := &track.Track{
			Name:              t.Name,
			Prefix:            t.Prefix,
			Dedup:             t.DedupEnabled(),
			Sort:              t.SortEnabled(),
			TreatEmptyAsError: t.EmptyIsError(),
		}
		for _, c := range t.Categories {
			tr.Categories = append(tr.Categories, track.Category{
				ID:     c.ID,
				Column: c.Column,
				Color:  c.Color,
				Label:  c.Label,
			})
		}
		if u := t.Unspecified; u != nil {
			tr.Unspecified = &track.Category{ID: u.ID, Color: u.Color, Label: u.Label}
		}
		out = append(out, tr)
	}
	return out
}

// Visual returns the configured visual size range.
func Visual(cfg *config.Config) track.VisualRange {
	return track.VisualRange{Min: cfg.Scale.VisualMin, Max: cfg.Scale.VisualMax}
}
