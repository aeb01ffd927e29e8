package label

import (
	"regexp"
	"strconv"
	"strings"
)

// ArticleKey is the normalized symbolic identifier of one article ("art7").
// The zero value means the source cell held no identifier.
type ArticleKey string

var (
	prefixedIDPattern = regexp.MustCompile(`(?i)^art\s*([0-9]+)$`)
	bareIDPattern     = regexp.MustCompile(`^([0-9]+)$`)
	keyIndexPattern   = regexp.MustCompile(`^art(\d+)`)
)

// NormalizeArticleID maps a raw identifier cell onto its ArticleKey. "7",
// "Art 7", "ART7" and "art7" all yield "art7". Inputs that are not numeric
// keep their text and gain an "art" prefix unless they already carry one in
// any case. Blank input yields the empty key. The mapping is idempotent.
func NormalizeArticleID(raw string) ArticleKey {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if m := prefixedIDPattern.FindStringSubmatch(s); m != nil {
		return ArticleKey("art" + m[1])
	}
	if m := bareIDPattern.FindStringSubmatch(s); m != nil {
		return ArticleKey("art" + m[1])
	}
	if strings.HasPrefix(strings.ToLower(s), "art") {
		return ArticleKey(s)
	}
	return ArticleKey("art" + s)
}

// Index returns the integer following the "art" prefix, if any.
func (k ArticleKey) Index() (int, bool) {
	m := keyIndexPattern.FindStringSubmatch(string(k))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// CompareKeys orders keys by numeric index first; keys without a numeric index
// sort after every numeric key, lexicographically and case-insensitively.
func CompareKeys(a, b ArticleKey) int {
	ai, aok := a.Index()
	bi, bok := b.Index()
	switch {
	case aok && bok:
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		default:
			return 0
		}
	case aok:
		return -1
	case bok:
		return 1
	default:
		return strings.Compare(strings.ToLower(string(a)), strings.ToLower(string(b)))
	}
}
