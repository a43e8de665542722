// Package normalize canonicalizes ingredient-name strings for comparison.
//
// Normalization is deterministic, pure, and total: it never fails, and
// normalizing an already-normalized string is a no-op (idempotence is part
// of the contract and covered by tests).
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fillerPrefixes are marketing/connector words that carry no chemical
// meaning when they lead an ingredient name.
var fillerPrefixes = []string{
	"derived from",
	"contains",
	"with",
	"from",
	"and",
	"or",
}

// qualifierTokens mark parenthetical spans that disambiguate colorants and
// grades. Spans containing one of these are kept; all other parentheticals
// are marketing noise and are dropped.
var qualifierTokens = map[string]struct{}{
	"ci":     {},
	"lake":   {},
	"grade":  {},
	"usp":    {},
	"fcc":    {},
	"red":    {},
	"yellow": {},
	"blue":   {},
	"green":  {},
	"violet": {},
	"orange": {},
	"black":  {},
	"white":  {},
	"brown":  {},
}

var (
	parenRe      = regexp.MustCompile(`\(([^()]*)\)`)
	percentRe    = regexp.MustCompile(`\b\d+(\.\d+)?%`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// foldAccents strips combining marks so accented label text ("Ingrédients",
// "Élastine") compares equal to its ASCII form.
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes a raw ingredient name. The steps are ordered and
// each one narrows the candidate space further; none is reversible.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	s := raw
	if folded, _, err := transform.String(foldAccents, s); err == nil {
		s = folded
	}

	s = strings.TrimSpace(strings.ToLower(s))
	s = resolveParentheticals(s)
	s = percentRe.ReplaceAllString(s, " ")

	// Separators become whitespace, not nothing, so unrelated tokens are
	// never merged ("water/aqua" -> "water aqua", not "wateraqua").
	s = strings.Map(func(r rune) rune {
		switch r {
		case '-', '/', ',':
			return ' '
		}
		return r
	}, s)

	s = keepWordRunes(s)
	s = whitespaceRe.ReplaceAllString(s, " ")
	return stripFillerPrefix(s)
}

// stripFillerPrefix removes leading connector phrases. It runs after every
// other step so a filler exposed by parenthetical or percentage removal
// ("(organic) and glycerin") is still caught, and it loops because fillers
// stack ("with and glycerin"). Both matter for idempotence.
func stripFillerPrefix(s string) string {
	for {
		s = strings.TrimSpace(s)
		stripped := false
		for _, p := range fillerPrefixes {
			if strings.HasPrefix(s, p+" ") {
				s = s[len(p)+1:]
				stripped = true
				break
			}
		}
		if !stripped {
			return s
		}
	}
}

// resolveParentheticals drops parenthesized spans unless the span holds a
// chemical qualifier (a CI color index, a color name, a grade marker), in
// which case the span text is kept in place. Colorant codes must survive
// normalization or "ci 77891" style synonyms become unreachable.
func resolveParentheticals(s string) string {
	return parenRe.ReplaceAllStringFunc(s, func(m string) string {
		inner := m[1 : len(m)-1]
		for _, w := range strings.Fields(inner) {
			if _, ok := qualifierTokens[strings.Trim(w, ".,;:")]; ok {
				return " " + inner + " "
			}
		}
		return " "
	})
}

// keepWordRunes removes everything that is not alphanumeric, whitespace, or
// a hyphen.
func keepWordRunes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
