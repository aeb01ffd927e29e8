// Package label canonicalizes the identifiers that appear in generated
// karyotype and link files.
//
// Article identifiers collapse to a stable "artN" key no matter how the sheet
// spells them, and free-text references become token-safe display labels.
package label
