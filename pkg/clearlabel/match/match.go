// Package match implements the multi-stage cascade that classifies a
// normalized ingredient candidate against a hazard database snapshot.
//
// Stages run in fixed priority order: exact, chemical-pattern, compound,
// fuzzy. The first stage to accept wins; a later stage's higher raw score
// can never override an earlier stage's verdict. Within the fuzzy stage the
// single best record across the whole snapshot is chosen.
package match

import (
	"math"
	"strings"

	"github.com/clearlabel/clearlabel/pkg/clearlabel/hazard"
)

// Stage identifies which cascade stage produced a result.
type Stage int

const (
	StageNone Stage = iota
	StageExact
	StagePattern
	StageCompound
	StageFuzzy
)

func (s Stage) String() string {
	switch s {
	case StageExact:
		return "exact"
	case StagePattern:
		return "pattern"
	case StageCompound:
		return "compound"
	case StageFuzzy:
		return "fuzzy"
	default:
		return "none"
	}
}

// Result is the verdict for one candidate. Ephemeral: produced per
// candidate, never persisted.
type Result struct {
	IsHarmful   bool     `json:"is_harmful"`
	MatchedName string   `json:"matched_name,omitempty"`
	Score       int      `json:"score"`
	Categories  []string `json:"categories,omitempty"`
	Concerns    []string `json:"concerns,omitempty"`
	FoundIn     []string `json:"found_in,omitempty"`
	Confidence  float64  `json:"confidence"`
	Stage       Stage    `json:"-"`
}

// Thresholds tune the acceptance floors of the later cascade stages.
// They are calibrated to bound false positives on short common words while
// still catching chemical synonyms and misspellings.
type Thresholds struct {
	Pattern float64 // chemical-pattern stage minimum confidence
	Family  float64 // compound stage family-signal minimum overlap
	Fuzzy   float64 // fuzzy stage confidence must exceed this
}

// DefaultThresholds returns the calibrated defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{Pattern: 0.85, Family: 0.8, Fuzzy: 0.75}
}

// compoundConfidence is the band reported for hyphen-part compound matches,
// which are exact containment checks rather than scored similarities.
const compoundConfidence = 0.95

// Cascade matches normalized candidates against hazard snapshots.
// Stateless apart from thresholds; safe for concurrent use.
type Cascade struct {
	t Thresholds
}

// NewCascade creates a cascade. Zero-valued threshold fields fall back to
// the defaults.
func NewCascade(t Thresholds) *Cascade {
	d := DefaultThresholds()
	if t.Pattern == 0 {
		t.Pattern = d.Pattern
	}
	if t.Family == 0 {
		t.Family = d.Family
	}
	if t.Fuzzy == 0 {
		t.Fuzzy = d.Fuzzy
	}
	return &Cascade{t: t}
}

// outcome is a single stage's accepted match.
type outcome struct {
	entry      hazard.Entry
	confidence float64
}

// Match classifies a normalized candidate. Total: it always returns a
// result, defaulting to not-harmful with confidence 0 when no stage
// accepts. Deterministic for a fixed snapshot.
func (c *Cascade) Match(candidate string, snap *hazard.Snapshot) Result {
	if candidate == "" || snap == nil || snap.Len() == 0 {
		return Result{}
	}

	if o, ok := exactStage(candidate, snap); ok {
		return verdict(o, StageExact)
	}
	if o, ok := c.patternStage(candidate, snap); ok {
		return verdict(o, StagePattern)
	}
	if o, ok := c.compoundStage(candidate, snap); ok {
		return verdict(o, StageCompound)
	}
	if o, ok := c.fuzzyStage(candidate, snap); ok {
		return verdict(o, StageFuzzy)
	}
	return Result{}
}

func verdict(o outcome, stage Stage) Result {
	return Result{
		IsHarmful:   true,
		MatchedName: o.entry.Name,
		Score:       o.entry.Score,
		Categories:  o.entry.Categories,
		Concerns:    o.entry.Concerns,
		FoundIn:     o.entry.FoundIn,
		Confidence:  o.confidence,
		Stage:       stage,
	}
}

// exactStage accepts when the candidate equals a normalized canonical name
// or synonym. Confidence is always 1.0.
func exactStage(candidate string, snap *hazard.Snapshot) (outcome, bool) {
	if e, ok := snap.Exact(candidate); ok {
		return outcome{entry: e, confidence: 1.0}, true
	}
	return outcome{}, false
}

// patternStage accepts when the candidate and a database name share a
// prefix+suffix pair from the compatibility table and the combined
// confidence clears the threshold. Confidence is a weighted sum of string
// similarity, prefix/suffix position agreement, and length-ratio
// similarity (0.4/0.4/0.2).
func (c *Cascade) patternStage(candidate string, snap *hazard.Snapshot) (outcome, bool) {
	for _, e := range snap.Entries() {
		for _, name := range entryNames(e) {
			prefix, suffix, ok := patternPair(candidate, name)
			if !ok {
				continue
			}
			conf := 0.4*similarityRatio(candidate, name) +
				0.4*positionAgreement(candidate, name, prefix, suffix) +
				0.2*lengthRatio(candidate, name)
			if conf >= c.t.Pattern {
				return outcome{entry: e, confidence: conf}, true
			}
		}
	}
	return outcome{}, false
}

// compoundStage accepts when a stored name decomposes into parts that are
// all contained in the candidate (chained descriptive names), or, failing
// that, when both strings share a chemical family keyword and the keyword
// overlap clears the family threshold.
func (c *Cascade) compoundStage(candidate string, snap *hazard.Snapshot) (outcome, bool) {
	// Part containment is zero-ambiguity and checked across the whole
	// snapshot before the looser family signal is considered.
	for _, e := range snap.Entries() {
		for _, raw := range append([]string{e.Name}, e.AlternativeNames...) {
			if compoundParts(raw, candidate) {
				return outcome{entry: e, confidence: compoundConfidence}, true
			}
		}
	}

	for _, e := range snap.Entries() {
		for _, name := range entryNames(e) {
			if _, ok := sharedFamily(candidate, name); !ok {
				continue
			}
			if overlap := chemicalOverlap(candidate, name); overlap >= c.t.Family {
				conf := overlap
				if conf > 1.0 {
					conf = 1.0
				}
				return outcome{entry: e, confidence: conf}, true
			}
		}
	}
	return outcome{}, false
}

// compoundParts reports whether the stored name splits into two or more
// hyphen/space-separated parts that all occur in the candidate.
func compoundParts(storedName, candidate string) bool {
	parts := strings.FieldsFunc(strings.ToLower(storedName), func(r rune) bool {
		return r == '-' || r == ' '
	})
	if len(parts) < 2 {
		return false
	}
	for _, p := range parts {
		if len(p) <= 1 || !strings.Contains(candidate, p) {
			return false
		}
	}
	return true
}

// fuzzyStage scores the candidate against every name and synonym in the
// snapshot and keeps the single highest confidence. Accepts only when that
// best confidence strictly exceeds the fuzzy threshold.
//
// Confidence = 0.2*length-ratio + 0.3*whole-string similarity +
// 0.2*common-substring coverage + 0.3*chemical keyword overlap.
func (c *Cascade) fuzzyStage(candidate string, snap *hazard.Snapshot) (outcome, bool) {
	var best outcome
	for _, e := range snap.Entries() {
		for _, name := range entryNames(e) {
			conf := 0.2*lengthRatio(candidate, name) +
				0.3*similarityRatio(candidate, name) +
				0.2*substringCoverage(candidate, name) +
				0.3*chemicalOverlap(candidate, name)
			if conf > best.confidence {
				best = outcome{entry: e, confidence: conf}
			}
		}
	}
	if best.confidence > c.t.Fuzzy {
		return best, true
	}
	return outcome{}, false
}

// entryNames yields the normalized comparison forms of an entry: canonical
// name first, then synonyms.
func entryNames(e hazard.Entry) []string {
	if len(e.NormalizedAlternatives) == 0 {
		return []string{e.NormalizedName}
	}
	names := make([]string, 0, 1+len(e.NormalizedAlternatives))
	names = append(names, e.NormalizedName)
	return append(names, e.NormalizedAlternatives...)
}

// positionAgreement compares where the prefix and suffix tokens sit in the
// two strings, as fractions of string length. Matching tokens at
// substantially different offsets ("sodium" leading one name, trailing the
// other) are penalized.
func positionAgreement(a, b, prefix, suffix string) float64 {
	agree := func(tok string) float64 {
		d := math.Abs(relativeOffset(a, tok) - relativeOffset(b, tok))
		if d > 1 {
			d = 1
		}
		return 1 - d
	}
	return (agree(prefix) + agree(suffix)) / 2
}

func relativeOffset(s, tok string) float64 {
	idx := strings.Index(s, tok)
	if idx < 0 || len(s) == 0 {
		return 0
	}
	return float64(idx) / float64(len(s))
}
