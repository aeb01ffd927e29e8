package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeTracks(); err != nil {
		return err
	}
	c.normalizeInput()
	c.normalizeArticles()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Input.Path, err = expandPath(strings.TrimSpace(c.Input.Path)); err != nil {
		return fmt.Errorf("input.path: %w", err)
	}
	if strings.TrimSpace(c.Output.Dir) == "" {
		c.Output.Dir = defaultOutputDir
	}
	if c.Output.Dir, err = expandPath(strings.TrimSpace(c.Output.Dir)); err != nil {
		return fmt.Errorf("output.dir: %w", err)
	}
	if c.TracksFile, err = expandPath(strings.TrimSpace(c.TracksFile)); err != nil {
		return fmt.Errorf("tracks_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeTracks() error {
	if c.TracksFile != "" {
		tracks, err := LoadTracks(c.TracksFile)
		if err != nil {
			return fmt.Errorf("tracks_file: %w", err)
		}
		c.Tracks = tracks
	}
	for i := range c.Tracks {
		t := &c.Tracks[i]
		t.Name = strings.TrimSpace(t.Name)
		t.Prefix = strings.TrimSpace(t.Prefix)
		if t.Name == "" {
			t.Name = t.Prefix
		}
		for j := range t.Categories {
			cat := &t.Categories[j]
			cat.Column = strings.TrimSpace(cat.Column)
			cat.ID = strings.TrimSpace(cat.ID)
			cat.Color = strings.TrimSpace(cat.Color)
			if cat.ID == "" && cat.Column != "" {
				cat.ID = "type" + cat.Column
			}
		}
		if t.Unspecified != nil {
			t.Unspecified.ID = strings.TrimSpace(t.Unspecified.ID)
			t.Unspecified.Color = strings.TrimSpace(t.Unspecified.Color)
		}
	}
	return nil
}

func (c *Config) normalizeInput() {
	c.Input.Format = strings.ToLower(strings.TrimSpace(c.Input.Format))
	c.Input.SheetName = strings.TrimSpace(c.Input.SheetName)
	c.Input.Table = strings.TrimSpace(c.Input.Table)
	c.Input.ArticleColumn = strings.TrimSpace(c.Input.ArticleColumn)
	if c.Input.ArticleColumn == "" {
		c.Input.ArticleColumn = defaultArticleColumn
	}
	c.Input.ReferenceColumn = strings.TrimSpace(c.Input.ReferenceColumn)
}

func (c *Config) normalizeArticles() {
	c.Articles.Color = strings.TrimSpace(c.Articles.Color)
	if c.Articles.Color == "" {
		c.Articles.Color = defaultArticleColor
	}
	c.Articles.LabelSeparator = strings.TrimSpace(c.Articles.LabelSeparator)
	if c.Articles.LabelSeparator == "" {
		c.Articles.LabelSeparator = defaultLabelSeparator
	}
	if c.Articles.EndValue == 0 && c.Layout.WindowWidth > 0 {
		c.Articles.EndValue = c.LayoutExtent()
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// LayoutExtent is the coordinate length used by the article window plus one
// window per track.
func (c *Config) LayoutExtent() int {
	return c.Layout.WindowWidth * (len(c.Tracks) + 1)
}
