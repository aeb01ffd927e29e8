// Package pipeline runs a complete diagram generation.
//
// A run is all-or-nothing with respect to configuration: the input table is
// read once, every track and the article columns are checked against it, and
// only then is the output directory locked and written. Scaling is
// two-phase. The count-only pass over every track yields one immutable
// track.GlobalScale which the build pass receives as an argument.
//
// Errors returned by the pipeline carry one of the exported markers
// (ErrValidation, ErrConfiguration, ErrNotFound, ErrLocked, ErrOutput) so the
// CLI can choose an exit code with errors.Is.
package pipeline
