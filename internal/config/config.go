package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Input selects the tabular data source.
type Input struct {
	Path            string `toml:"path"`
	Format          string `toml:"format"`
	Sheet           int    `toml:"sheet"`
	SheetName       string `toml:"sheet_name"`
	Table           string `toml:"table"`
	ArticleColumn   string `toml:"article_column"`
	ReferenceColumn string `toml:"reference_column"`
}

// Output contains the directory receiving every generated file.
type Output struct {
	Dir string `toml:"dir"`
}

// Scale is the visual segment length range.
type Scale struct {
	VisualMin int `toml:"visual_min"`
	VisualMax int `toml:"visual_max"`
}

// Layout controls the coordinate windows on article segments.
type Layout struct {
	WindowWidth int `toml:"window_width"`
}

// Articles styles the article axis.
type Articles struct {
	// EndValue is the article segment length. Zero derives it from the
	// number of tracks and the window width.
	EndValue       int    `toml:"end_value"`
	Color          string `toml:"color"`
	LabelSeparator string `toml:"label_separator"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Category maps one source column onto one karyotype segment.
type Category struct {
	Column string `toml:"column" yaml:"column"`
	ID     string `toml:"id" yaml:"id"`
	Color  string `toml:"color" yaml:"color"`
	Label  string `toml:"label,omitempty" yaml:"label,omitempty"`
}

// Unspecified is the optional bucket for "???" cells.
type Unspecified struct {
	ID    string `toml:"id" yaml:"id"`
	Color string `toml:"color" yaml:"color"`
	Label string `toml:"label,omitempty" yaml:"label,omitempty"`
}

// Track is one classification axis. Policy flags default to true.
type Track struct {
	Name              string       `toml:"name" yaml:"name"`
	Prefix            string       `toml:"prefix" yaml:"prefix"`
	Dedup             *bool        `toml:"dedup,omitempty" yaml:"dedup,omitempty"`
	Sort              *bool        `toml:"sort,omitempty" yaml:"sort,omitempty"`
	TreatEmptyAsError *bool        `toml:"treat_empty_as_error,omitempty" yaml:"treat_empty_as_error,omitempty"`
	Unspecified       *Unspecified `toml:"unspecified,omitempty" yaml:"unspecified,omitempty"`
	Categories        []Category   `toml:"categories" yaml:"categories"`
}

// DedupEnabled reports the dedup policy.
func (t Track) DedupEnabled() bool { return boolOr(t.Dedup, true) }

// SortEnabled reports the sort-in-section policy.
func (t Track) SortEnabled() bool { return boolOr(t.Sort, true) }

// EmptyIsError reports the treat-empty-as-error policy.
func (t Track) EmptyIsError() bool { return boolOr(t.TreatEmptyAsError, true) }

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

// Config encapsulates all configuration values for circosgen.
//
// Sections:
//   - Input: data source path, format and column names
//   - Output: generated file directory
//   - Scale: visual segment length range
//   - Layout: coordinate window width
//   - Articles: article axis styling
//   - Logging: log format and level
//   - Tracks: classification axes, inline or through TracksFile
type Config struct {
	Input      Input    `toml:"input"`
	Output     Output   `toml:"output"`
	Scale      Scale    `toml:"scale"`
	Layout     Layout   `toml:"layout"`
	Articles   Articles `toml:"articles"`
	Logging    Logging  `toml:"logging"`
	TracksFile string   `toml:"tracks_file"`
	Tracks     []Track  `toml:"tracks"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(filepath.Join(xdg.ConfigHome, "circosgen", "config.toml"))
}

// ProjectConfigName is the configuration file looked up in the working directory.
const ProjectConfigName = "circosgen.toml"

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(ProjectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Sample returns the embedded sample configuration.
func Sample() string {
	return sampleConfig
}
