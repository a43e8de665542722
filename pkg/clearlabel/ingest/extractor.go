// Package ingest turns raw label text into a cleaned, ordered sequence of
// candidate ingredient strings. Granularity here is "split into items";
// per-item canonicalization is the normalize package's job.
package ingest

import (
	"regexp"
	"strings"
	"unicode"
)

// Extractor splits raw label text into candidate ingredient strings,
// discarding non-ingredient noise.
type Extractor struct {
	noise map[string]struct{}
}

// NewExtractor creates an extractor with the default noise vocabulary.
func NewExtractor() *Extractor {
	e := &Extractor{noise: make(map[string]struct{}, len(defaultNoiseWords))}
	for _, w := range defaultNoiseWords {
		e.noise[w] = struct{}{}
	}
	return e
}

// AddNoiseWord adds a word to the noise vocabulary.
func (e *Extractor) AddNoiseWord(word string) {
	e.noise[strings.ToLower(word)] = struct{}{}
}

// RemoveNoiseWord removes a word from the noise vocabulary.
func (e *Extractor) RemoveNoiseWord(word string) {
	delete(e.noise, strings.ToLower(word))
}

var (
	bracketRe = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]|\{[^}]*\}`)
	headerRe  = regexp.MustCompile(`(?i)\b(may contain|contains|ingredients|ingr[ée]dients|ingredientes|composition)\b`)
	percentRe = regexp.MustCompile(`\d+(\.\d+)?%`)
	symbolRe  = regexp.MustCompile(`[^\w\s\-.]`)
	spaceRe   = regexp.MustCompile(`\s+`)

	pureNumberRe = regexp.MustCompile(`^\d+$`)
	phoneLikeRe  = regexp.MustCompile(`^[\d\s\-.()+]+$`)
	streetNumRe  = regexp.MustCompile(`^\d+[A-Za-z]`)
	connectorRe  = regexp.MustCompile(`(?i)^(and|or|with|contains)\s+`)
)

// Extract splits raw label text into lowercased candidate ingredient
// strings, in order of first appearance, deduplicated case-insensitively.
// It never fails: text with no separators at all comes back as a single
// candidate (or none, if it is all noise).
func (e *Extractor) Extract(rawText string) []string {
	text := bracketRe.ReplaceAllString(rawText, " ")
	text = headerRe.ReplaceAllString(text, " ")

	// Statement separators all become commas so one split pass suffices.
	text = strings.Map(func(r rune) rune {
		switch r {
		case ';', '|', '\n', '/', '•':
			return ','
		}
		return r
	}, text)

	var candidates []string
	seen := make(map[string]struct{})
	for _, segment := range strings.Split(text, ",") {
		cleaned, ok := e.cleanSegment(segment)
		if !ok {
			continue
		}
		if _, dup := seen[cleaned]; dup {
			continue
		}
		seen[cleaned] = struct{}{}
		candidates = append(candidates, cleaned)
	}
	return candidates
}

// cleanSegment trims and denoises one comma-separated segment. The second
// return value is false when the segment is rejected.
func (e *Extractor) cleanSegment(segment string) (string, bool) {
	s := strings.TrimSpace(segment)
	if len(s) <= 1 {
		return "", false
	}

	s = percentRe.ReplaceAllString(s, " ")
	s = symbolRe.ReplaceAllString(s, " ")
	s = spaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = connectorRe.ReplaceAllString(s, "")
	if len(s) <= 1 {
		return "", false
	}

	// Noise rejection happens on the case-preserved form: the
	// all-uppercase acronym heuristic needs the original casing.
	if e.isNoise(s) {
		return "", false
	}

	return strings.ToLower(s), true
}

// isNoise applies the noise-rejection filter to a cleaned segment.
// Ingredient names on labels are expected digit-free; chemical codes like
// "CI 77891" are deliberately excluded here and recovered, if at all,
// through the match cascade's synonym table.
func (e *Extractor) isNoise(s string) bool {
	if pureNumberRe.MatchString(s) {
		return true
	}

	lower := strings.ToLower(s)
	if strings.ContainsRune(lower, '@') ||
		strings.Contains(lower, "www.") ||
		strings.Contains(lower, ".com") ||
		strings.HasPrefix(lower, "http") {
		return true
	}

	if phoneLikeRe.MatchString(s) {
		return true
	}
	if streetNumRe.MatchString(s) {
		return true
	}
	if strings.ContainsFunc(s, unicode.IsDigit) {
		return true
	}

	words := strings.Fields(s)
	if len(words) > 4 {
		return true
	}
	for _, w := range words {
		if len(w) == 1 {
			return true
		}
		if _, ok := e.noise[strings.ToLower(strings.Trim(w, ".-"))]; ok {
			return true
		}
		if len(w) > 2 && w == strings.ToUpper(w) && strings.ContainsFunc(w, unicode.IsLetter) {
			return true
		}
	}
	return false
}
