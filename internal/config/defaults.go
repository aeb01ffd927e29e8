package config

const (
	defaultOutputDir       = "circos_output"
	defaultArticleColumn   = "ArtNb"
	defaultReferenceColumn = "ref"
	defaultVisualMin       = 70
	defaultVisualMax       = 400
	defaultWindowWidth     = 10
	defaultArticleColor    = "black"
	defaultLabelSeparator  = "-"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults. It has no
// tracks, so it does not validate on its own.
func Default() Config {
	return Config{
		Input: Input{
			ArticleColumn:   defaultArticleColumn,
			ReferenceColumn: defaultReferenceColumn,
		},
		Output: Output{
			Dir: defaultOutputDir,
		},
		Scale: Scale{
			VisualMin: defaultVisualMin,
			VisualMax: defaultVisualMax,
		},
		Layout: Layout{
			WindowWidth: defaultWindowWidth,
		},
		Articles: Articles{
			Color:          defaultArticleColor,
			LabelSeparator: defaultLabelSeparator,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
