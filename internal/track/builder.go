package track

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/Infa60/Circos/internal/layout"
	"github.com/Infa60/Circos/internal/logging"
	"github.com/Infa60/Circos/internal/source"
)

// Builder runs tracks against one parsed table.
type Builder struct {
	Table         *source.Table
	ArticleColumn string
	Visual        VisualRange
	OutputDir     string
	Logger        *slog.Logger
}

// Result describes one built track.
type Result struct {
	Track    *Track
	Window   layout.Window
	Sections []Section
	Errors   []ErrorRecord
	Span     layout.Span
	Files    []string
}

// Members is the total membership count over all sections.
func (r *Result) Members() int {
	n := 0
	for _, s := range r.Sections {
		n += s.Count()
	}
	return n
}

// ActiveSections counts sections with a segment.
func (r *Result) ActiveSections() int {
	n := 0
	for _, s := range r.Sections {
		if s.Active() {
			n++
		}
	}
	return n
}

// Count is the count-only pass for t.
func (b *Builder) Count(t *Track) []CategoryCount {
	return Count(t, b.Table, b.ArticleColumn)
}

// GlobalScale counts every track and pools the nonzero counts into one scale.
// It must complete before any Build call of the same run.
func (b *Builder) GlobalScale(ctx context.Context, tracks []*Track) GlobalScale {
	var pool []int
	for _, t := range tracks {
		for _, c := range b.Count(t) {
			pool = append(pool, c.Count)
		}
	}
	s := NewGlobalScale(pool)
	logger := logging.WithContext(ctx, b.logger())
	if s.Empty {
		logger.Info("no category has any member; using default scale",
			logging.Int("global_min", s.Min),
			logging.Int("global_max", s.Max),
		)
	} else {
		logger.Debug("global scale computed",
			logging.Int("global_min", s.Min),
			logging.Int("global_max", s.Max),
			logging.Int("pool", len(pool)),
		)
	}
	return s
}

// Build classifies t, scales its sections with s and writes the links,
// numbers and karyotype files using window as every link's coordinates.
func (b *Builder) Build(ctx context.Context, t *Track, window layout.Window, s GlobalScale) (*Result, error) {
	if err := CheckColumns(t, b.Table, b.ArticleColumn); err != nil {
		return nil, err
	}
	ctx = logging.WithTrack(ctx, t.Name)
	logger := logging.WithContext(ctx, b.logger())

	col := Collect(t, b.Table, b.ArticleColumn)
	first, last := col.Scale(s, b.Visual)
	res := &Result{
		Track:    t,
		Window:   window,
		Sections: col.Sections,
		Errors:   col.Errors,
		Span:     layout.Span{First: first, Last: last},
	}

	artifacts := []struct {
		suffix string
		write  func() []byte
	}{
		{LinksSuffix, func() []byte { return RenderLinks(res) }},
		{NumbersSuffix, func() []byte { return RenderNumbers(res) }},
		{DataSuffix, func() []byte { return RenderData(res) }},
	}
	for _, a := range artifacts {
		path := filepath.Join(b.OutputDir, t.Prefix+a.suffix)
		if err := writeArtifact(path, a.write()); err != nil {
			return nil, fmt.Errorf("track %q: write %s: %w", t.Name, filepath.Base(path), err)
		}
		res.Files = append(res.Files, path)
	}

	if len(res.Errors) > 0 {
		logging.WarnWithContext(logger, "track has unbucketed cells",
			"cell_errors",
			logging.Int("errors", len(res.Errors)),
			logging.String(logging.FieldErrorHint, "fill or mark the listed cells, see the ERRORS section of "+t.Prefix+LinksSuffix),
			logging.String(logging.FieldImpact, "cells are excluded from the diagram"),
		)
	}
	logger.Info("track built",
		logging.String("window", window.String()),
		logging.Int("active", res.ActiveSections()),
		logging.Int("members", res.Members()),
		logging.String("span", res.Span.String()),
	)
	return res, nil
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger == nil {
		return logging.NewNop()
	}
	return b.Logger
}
