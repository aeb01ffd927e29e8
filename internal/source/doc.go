// Package source reads the tabular review data that drives a build.
//
// A Table is a header row plus one row of Cells per article. Readers exist
// for Excel workbooks, delimited text (CSV/TSV) and SQLite tables; Open picks
// one from the configured format or the file extension. The whole table is
// read once per run and shared read-only between the counting and writing
// passes.
package source
