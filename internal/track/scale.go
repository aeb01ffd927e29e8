package track

import (
	"math"

	"github.com/aclements/go-moremath/scale"
)

// VisualRange is the segment length range every nonzero category maps into.
type VisualRange struct {
	Min int
	Max int
}

// GlobalScale is the (min, max) of every nonzero category count across all
// tracks of a run.
type GlobalScale struct {
	Min int
	Max int
	// Empty marks the fallback scale used when no track had any member.
	Empty bool
}

// DefaultScale is used when the pool of counts is empty.
var DefaultScale = GlobalScale{Min: 0, Max: 1, Empty: true}

// NewGlobalScale derives the scale from a pool of counts. Zero and negative
// counts are ignored.
func NewGlobalScale(pool []int) GlobalScale {
	s := GlobalScale{}
	seen := false
	for _, n := range pool {
		if n <= 0 {
			continue
		}
		if !seen {
			s.Min, s.Max = n, n
			seen = true
			continue
		}
		s.Min = min(s.Min, n)
		s.Max = max(s.Max, n)
	}
	if !seen {
		return DefaultScale
	}
	return s
}

// Degenerate reports whether every nonzero count is the same.
func (s GlobalScale) Degenerate() bool { return s.Min == s.Max }

// Size maps a category count onto its segment length. Zero counts have no
// segment. When the scale is degenerate every nonzero count gets v.Max.
func (s GlobalScale) Size(count int, v VisualRange) int {
	if count <= 0 {
		return 0
	}
	if s.Degenerate() {
		return v.Max
	}
	lin := scale.Linear{Min: float64(s.Min), Max: float64(s.Max)}
	frac := lin.Map(float64(count))
	return int(math.Round(float64(v.Min) + frac*float64(v.Max-v.Min)))
}
