package label

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Style controls how a reference string is turned into a display token.
type Style struct {
	// Separator replaces every rune that is neither a word character nor in Keep.
	Separator rune
	// Keep lists punctuation that survives unchanged.
	Keep string
}

var (
	// KaryotypeStyle is used for ideogram labels in articles.data.txt.
	KaryotypeStyle = Style{Separator: '-', Keep: ".,&"}
	// ExportStyle is the stricter underscore variant.
	ExportStyle = Style{Separator: '_', Keep: "."}
)

// StyleForSeparator resolves the configured separator to a style.
func StyleForSeparator(sep string) (Style, error) {
	switch sep {
	case "", "-":
		return KaryotypeStyle, nil
	case "_":
		return ExportStyle, nil
	default:
		return Style{}, fmt.Errorf("unsupported label separator %q (want \"-\" or \"_\")", sep)
	}
}

// NormalizeReference turns a free-text reference such as
// `{Doe et al. 2020}` into a token-safe label ("Doe-et-al.-2020"). Collisions
// are possible and are not resolved here.
func NormalizeReference(raw string, style Style) string {
	s := stripEnclosing(strings.TrimSpace(raw))
	s = strings.TrimSpace(norm.NFC.String(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	var prev rune
	for _, r := range s {
		if !isWordRune(r) && !strings.ContainsRune(style.Keep, r) {
			r = style.Separator
		}
		if (r == style.Separator || r == '_') && r == prev {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return strings.TrimSpace(b.String())
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsNumber(r)
}

func stripEnclosing(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if (first == '{' && last == '}') || (first == '"' && last == '"') || (first == '\'' && last == '\'') {
		return strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}
