// Package track builds one classification axis of the review diagram.
//
// A Track is a declarative list of categories, each fed by one spreadsheet
// column. Building a track classifies every (article, column) cell, buckets
// articles per category, rescales each category's count through the run's
// shared GlobalScale and writes the links, numbers and karyotype files the
// renderer consumes.
//
// Scaling is two-phase: Count runs over every track first, the pooled
// nonzero counts give one GlobalScale, and only then does Build write output.
// The scale is an immutable value passed to Build, never package state.
package track
