// Package testsupport builds throwaway review workspaces for tests: a CSV
// input, a matching circosgen.toml and an output directory path.
package testsupport
