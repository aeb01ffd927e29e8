package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type trackFile struct {
	Tracks []Track `toml:"tracks" yaml:"tracks"`
}

// LoadTracks reads track definitions from a TOML or YAML file chosen by
// extension. The file holds a top-level tracks list.
func LoadTracks(path string) ([]Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read track file: %w", err)
	}
	var doc trackFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
		}
	default:
		return nil, fmt.Errorf("unsupported track file extension %q (want .toml, .yaml or .yml)", ext)
	}
	return doc.Tracks, nil
}
