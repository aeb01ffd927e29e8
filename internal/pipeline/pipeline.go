package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Infa60/Circos/internal/articles"
	"github.com/Infa60/Circos/internal/circosconf"
	"github.com/Infa60/Circos/internal/config"
	"github.com/Infa60/Circos/internal/fileutil"
	"github.com/Infa60/Circos/internal/label"
	"github.com/Infa60/Circos/internal/layout"
	"github.com/Infa60/Circos/internal/logging"
	"github.com/Infa60/Circos/internal/source"
	"github.com/Infa60/Circos/internal/track"
)

// Runner executes runs for one configuration.
type Runner struct {
	cfg    *config.Config
	logger *slog.Logger
	now    func() time.Time
}

// New constructs a runner. A nil logger discards output.
func New(cfg *config.Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "pipeline"),
		now:    time.Now,
	}
}

// Open reads the configured input table.
func (r *Runner) Open(ctx context.Context) (*source.Table, error) {
	in := r.cfg.Input
	table, err := source.Open(ctx, source.Options{
		Path:      in.Path,
		Format:    in.Format,
		Sheet:     in.Sheet,
		SheetName: in.SheetName,
		Table:     in.Table,
	})
	if err != nil {
		if errors.Is(err, source.ErrNotFound) {
			return nil, Wrap(ErrNotFound, "input", "open", "", err)
		}
		return nil, Wrap(ErrConfiguration, "input", "open", in.Path, err)
	}
	r.logger.Debug("input loaded",
		logging.String("path", in.Path),
		logging.Int("rows", table.Len()),
		logging.Int("columns", len(table.Columns)),
	)
	return table, nil
}

// Validate checks every track and the article column against table. The
// first failing track is reported with its missing and found column sets.
func (r *Runner) Validate(table *source.Table, tracks []*track.Track) error {
	if !table.Has(r.cfg.Input.ArticleColumn) {
		return Wrap(ErrValidation, "validate", "columns", "", &track.MissingColumnsError{
			Track:   layout.ArticlesBlock,
			Missing: []string{r.cfg.Input.ArticleColumn},
			Found:   table.Columns,
		})
	}
	for _, t := range tracks {
		if err := track.CheckColumns(t, table, r.cfg.Input.ArticleColumn); err != nil {
			return Wrap(ErrValidation, "validate", "columns", "", err)
		}
	}
	return nil
}

func (r *Runner) builder(table *source.Table) *track.Builder {
	return &track.Builder{
		Table:         table,
		ArticleColumn: r.cfg.Input.ArticleColumn,
		Visual:        Visual(r.cfg),
		OutputDir:     r.cfg.Output.Dir,
		Logger:        logging.NewComponentLogger(r.logger, "track"),
	}
}

func (r *Runner) articleOptions() (articles.Options, error) {
	style, err := label.StyleForSeparator(r.cfg.Articles.LabelSeparator)
	if err != nil {
		return articles.Options{}, Wrap(ErrConfiguration, "articles", "", "", err)
	}
	return articles.Options{
		ArticleColumn:   r.cfg.Input.ArticleColumn,
		ReferenceColumn: r.cfg.Input.ReferenceColumn,
		Style:           style,
		Color:           r.cfg.Articles.Color,
		End:             r.cfg.Articles.EndValue,
	}, nil
}

// Run performs a full generation: article axis, global scale, every track and
// circos.conf.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	start := r.now()
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, r.logger)

	table, err := r.Open(ctx)
	if err != nil {
		return nil, err
	}
	tracks := Tracks(r.cfg)
	if err := r.Validate(table, tracks); err != nil {
		return nil, err
	}
	artOpts, err := r.articleOptions()
	if err != nil {
		return nil, err
	}

	lock, err := fileutil.LockDir(r.cfg.Output.Dir)
	if err != nil {
		if errors.Is(err, fileutil.ErrLocked) {
			return nil, Wrap(ErrLocked, "output", "lock", "", err)
		}
		return nil, Wrap(ErrOutput, "output", "lock", "", err)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("output lock release failed", logging.Error(err))
		}
	}()

	summary := &Summary{
		RunID:     runID,
		Input:     r.cfg.Input.Path,
		OutputDir: r.cfg.Output.Dir,
		Visual:    Visual(r.cfg),
	}

	tracker, err := layout.NewTracker(r.cfg.Layout.WindowWidth)
	if err != nil {
		return nil, Wrap(ErrConfiguration, "layout", "", "", err)
	}

	axis, err := articles.Collect(table, artOpts, logging.NewComponentLogger(r.logger, "articles"))
	if err != nil {
		return nil, Wrap(ErrValidation, "articles", "collect", "", err)
	}
	artPath, err := articles.Write(r.cfg.Output.Dir, axis, artOpts)
	if err != nil {
		return nil, Wrap(ErrOutput, "articles", "write", "", err)
	}
	tracker.SetArticleSpan(axis.Span())
	summary.Articles = ArticleSummary{
		Count:      len(axis.Entries),
		Skipped:    axis.Blank + axis.Duplicates,
		Span:       axis.Span(),
		Window:     tracker.ArticleWindow(),
		Fallback:   axis.ReferenceFallback,
		File:       artPath,
		SegmentEnd: artOpts.End,
	}
	summary.Files = append(summary.Files, artPath)

	b := r.builder(table)
	scale := b.GlobalScale(ctx, tracks)
	summary.Scale = scale

	for _, t := range tracks {
		var res *track.Result
		window, _, err := tracker.Place(t.Prefix, func(w layout.Window) (layout.Span, error) {
			built, err := b.Build(ctx, t, w, scale)
			if err != nil {
				return layout.Span{}, err
			}
			res = built
			return built.Span, nil
		})
		if err != nil {
			var missing *track.MissingColumnsError
			if errors.As(err, &missing) {
				return nil, Wrap(ErrValidation, "build", t.Name, "", err)
			}
			return nil, Wrap(ErrOutput, "build", t.Name, "", err)
		}
		summary.Tracks = append(summary.Tracks, newTrackSummary(res, window))
		summary.Files = append(summary.Files, res.Files...)
	}

	confPath, err := circosconf.Write(r.cfg.Output.Dir, circosconf.FromTracker(tracker, articles.FileName))
	if err != nil {
		return nil, Wrap(ErrOutput, "circosconf", "write", "", err)
	}
	summary.Files = append(summary.Files, confPath)
	summary.Ring = tracker.Blocks()
	summary.Duration = r.now().Sub(start)

	logger.Info("run complete",
		logging.String("output_dir", r.cfg.Output.Dir),
		logging.Int("tracks", len(summary.Tracks)),
		logging.Int("active_tracks", len(tracker.Active())),
		logging.Int("files", len(summary.Files)),
		logging.Int("cell_errors", summary.TotalErrors()),
		logging.String("global_scale", fmt.Sprintf("%d..%d", scale.Min, scale.Max)),
		logging.Duration("duration", summary.Duration),
	)
	return summary, nil
}

// WriteArticles writes only the article karyotype.
func (r *Runner) WriteArticles(ctx context.Context) (*ArticleSummary, error) {
	table, err := r.Open(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := r.articleOptions()
	if err != nil {
		return nil, err
	}
	if opts.End <= 0 {
		return nil, Wrap(ErrConfiguration, "articles", "", "articles.end_value must be positive", nil)
	}
	axis, err := articles.Collect(table, opts, logging.NewComponentLogger(r.logger, "articles"))
	if err != nil {
		return nil, Wrap(ErrValidation, "articles", "collect", "", err)
	}
	tracker, err := layout.NewTracker(r.cfg.Layout.WindowWidth)
	if err != nil {
		return nil, Wrap(ErrConfiguration, "layout", "", "", err)
	}

	lock, err := fileutil.LockDir(r.cfg.Output.Dir)
	if err != nil {
		if errors.Is(err, fileutil.ErrLocked) {
			return nil, Wrap(ErrLocked, "output", "lock", "", err)
		}
		return nil, Wrap(ErrOutput, "output", "lock", "", err)
	}
	defer lock.Unlock()

	path, err := articles.Write(r.cfg.Output.Dir, axis, opts)
	if err != nil {
		return nil, Wrap(ErrOutput, "articles", "write", "", err)
	}
	r.logger.Info("article karyotype written",
		logging.String("path", path),
		logging.Int("articles", len(axis.Entries)),
	)
	return &ArticleSummary{
		Count:      len(axis.Entries),
		Skipped:    axis.Blank + axis.Duplicates,
		Span:       axis.Span(),
		Window:     tracker.ArticleWindow(),
		Fallback:   axis.ReferenceFallback,
		File:       path,
		SegmentEnd: opts.End,
	}, nil
}
