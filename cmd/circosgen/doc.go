// Package main hosts the circosgen CLI entrypoint and command graph.
//
// The Cobra-based command tree turns a review spreadsheet into the Circos
// input set: build runs the whole pipeline, scan and rescale preview the
// shared scale without writing, articles regenerates only the article
// karyotype, and config scaffolds or checks the run file. Configuration
// resolution and logger setup live in the command context so subcommands
// stay declarative.
package main
