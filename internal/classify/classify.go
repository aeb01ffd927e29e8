// Package classify decides what a single spreadsheet cell contributes to a
// track.
//
// Classification is one pure function with a fixed decision order, first
// match wins:
//
//  1. blank cell or numeric NaN: Absent
//  2. the marker "???" (trimmed, any case): Unspecified
//  3. an NA-like token ("", "na", "n/a", "nan", "-", "--", "?", "??"): Absent
//  4. a number equal to zero, comma accepted as decimal separator: ZeroLike
//  5. anything else: Present
//
// The marker must be tested before the NA tokens and the zero parse because
// it is neither empty nor zero. Resolve then turns an Outcome into a concrete
// Action under a track's policy.
package classify

import (
	"strconv"
	"strings"

	"github.com/Infa60/Circos/internal/source"
)

// Outcome is the policy-free classification of one cell.
type Outcome int

const (
	Absent Outcome = iota
	Unspecified
	ZeroLike
	Present
)

func (o Outcome) String() string {
	switch o {
	case Absent:
		return "absent"
	case Unspecified:
		return "unspecified"
	case ZeroLike:
		return "zero"
	case Present:
		return "present"
	default:
		return "unknown"
	}
}

// UnspecifiedMarker routes a cell into a track's catch-all category.
const UnspecifiedMarker = "???"

var naTokens = map[string]struct{}{
	"":    {},
	"na":  {},
	"n/a": {},
	"nan": {},
	"-":   {},
	"--":  {},
	"?":   {},
	"??":  {},
}

// Classify applies the decision order to a cell.
func Classify(cell source.Cell) Outcome {
	if cell.IsBlank() {
		return Absent
	}
	token := strings.ToLower(strings.TrimSpace(cell.String()))
	if token == UnspecifiedMarker {
		return Unspecified
	}
	if _, ok := naTokens[token]; ok {
		return Absent
	}
	if isZero(cell, token) {
		return ZeroLike
	}
	return Present
}

func isZero(cell source.Cell, token string) bool {
	if v, ok := cell.Float(); ok {
		return v == 0
	}
	if strings.HasPrefix(strings.TrimLeft(token, "+-"), "0x") {
		return false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(token, ",", "."), 64)
	return err == nil && v == 0
}

// Action is what the track builder does with a classified cell.
type Action int

const (
	// Skip drops the cell silently.
	Skip Action = iota
	// RecordError adds an ErrorRecord for the (article, column) pair.
	RecordError
	// AddToCategory records membership in the column's category.
	AddToCategory
	// AddToUnspecified records membership in the track's NA bucket.
	AddToUnspecified
)

// Policy carries the track settings that influence routing.
type Policy struct {
	TreatEmptyAsError bool
	HasUnspecified    bool
}

// Resolve maps an outcome onto an action. An Unspecified cell on a track
// without an NA bucket is handled exactly like an Absent one.
func Resolve(outcome Outcome, policy Policy) Action {
	switch outcome {
	case Present:
		return AddToCategory
	case ZeroLike:
		return Skip
	case Unspecified:
		if policy.HasUnspecified {
			return AddToUnspecified
		}
		fallthrough
	default:
		if policy.TreatEmptyAsError {
			return RecordError
		}
		return Skip
	}
}

// Decide classifies and resolves in one step.
func Decide(cell source.Cell, policy Policy) Action {
	return Resolve(Classify(cell), policy)
}
