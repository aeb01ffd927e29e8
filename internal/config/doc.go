// Package config loads, normalizes, and validates circosgen configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// the TOML run file and an optional external track file (TOML or YAML), and
// rejects track definitions that would produce colliding segment ids or file
// names. Always obtain settings through this package so downstream code
// receives absolute paths, canonical log formats, and clear validation errors.
package config
