package config

import (
	"errors"
	"fmt"
	"strings"
)

// reservedPrefix is the block name of the article axis.
const reservedPrefix = "articles"

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateInput(); err != nil {
		return err
	}
	if err := c.validateScale(); err != nil {
		return err
	}
	if err := c.validateArticles(); err != nil {
		return err
	}
	if err := c.validateTracks(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateInput() error {
	if c.Input.Path == "" {
		return errors.New("input.path must be set")
	}
	switch c.Input.Format {
	case "", "xlsx", "csv", "tsv", "sqlite":
	default:
		return fmt.Errorf("input.format %q is not supported (want xlsx, csv, tsv or sqlite)", c.Input.Format)
	}
	if c.Input.Sheet < 0 {
		return errors.New("input.sheet must be >= 0")
	}
	return nil
}

func (c *Config) validateScale() error {
	if err := ensurePositiveMap(map[string]int{
		"scale.visual_min":    c.Scale.VisualMin,
		"scale.visual_max":    c.Scale.VisualMax,
		"layout.window_width": c.Layout.WindowWidth,
	}); err != nil {
		return err
	}
	if c.Scale.VisualMin > c.Scale.VisualMax {
		return errors.New("scale.visual_min must not exceed scale.visual_max")
	}
	return nil
}

func (c *Config) validateArticles() error {
	if extent := c.LayoutExtent(); c.Articles.EndValue < extent {
		return fmt.Errorf("articles.end_value %d is shorter than the layout extent %d (%d tracks + article window, width %d)",
			c.Articles.EndValue, extent, len(c.Tracks), c.Layout.WindowWidth)
	}
	switch c.Articles.LabelSeparator {
	case "-", "_":
	default:
		return fmt.Errorf("articles.label_separator %q is not supported (want \"-\" or \"_\")", c.Articles.LabelSeparator)
	}
	return nil
}

func (c *Config) validateTracks() error {
	if len(c.Tracks) == 0 {
		return errors.New("at least one [[tracks]] entry is required (inline or through tracks_file)")
	}
	prefixes := make(map[string]struct{}, len(c.Tracks))
	for i, t := range c.Tracks {
		key := fmt.Sprintf("tracks[%d]", i)
		if t.Prefix == "" {
			return fmt.Errorf("%s.prefix must be set", key)
		}
		if t.Prefix == reservedPrefix {
			return fmt.Errorf("%s.prefix %q is reserved for the article axis", key, t.Prefix)
		}
		if strings.ContainsAny(t.Prefix, `/\`) {
			return fmt.Errorf("%s.prefix %q must not contain path separators", key, t.Prefix)
		}
		if _, dup := prefixes[t.Prefix]; dup {
			return fmt.Errorf("%s.prefix %q is used by another track", key, t.Prefix)
		}
		prefixes[t.Prefix] = struct{}{}

		if err := validateCategories(key, t); err != nil {
			return err
		}
	}
	return nil
}

func validateCategories(key string, t Track) error {
	if len(t.Categories) == 0 {
		return fmt.Errorf("%s (%s) must define at least one category", key, t.Name)
	}
	ids := make(map[string]struct{}, len(t.Categories)+1)
	columns := make(map[string]struct{}, len(t.Categories))
	for j, cat := range t.Categories {
		ckey := fmt.Sprintf("%s.categories[%d]", key, j)
		if cat.Column == "" {
			return fmt.Errorf("%s.column must be set", ckey)
		}
		if cat.ID == "" {
			return fmt.Errorf("%s.id must be set", ckey)
		}
		if cat.Color == "" {
			return fmt.Errorf("%s.color must be set", ckey)
		}
		if _, dup := ids[cat.ID]; dup {
			return fmt.Errorf("%s.id %q is used by another category of %s", ckey, cat.ID, t.Name)
		}
		ids[cat.ID] = struct{}{}
		if _, dup := columns[cat.Column]; dup {
			return fmt.Errorf("%s.column %q is mapped by another category of %s", ckey, cat.Column, t.Name)
		}
		columns[cat.Column] = struct{}{}
	}
	if u := t.Unspecified; u != nil {
		if u.ID == "" || u.Color == "" {
			return fmt.Errorf("%s.unspecified requires id and color", key)
		}
		if _, dup := ids[u.ID]; dup {
			return fmt.Errorf("%s.unspecified.id %q collides with a category id", key, u.ID)
		}
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
