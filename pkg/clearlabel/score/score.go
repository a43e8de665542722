// Package score aggregates per-ingredient verdicts into a single 0-100
// product safety score.
package score

import "github.com/clearlabel/clearlabel/pkg/clearlabel/match"

// categoryWeights is the fixed deduction per category tag. Process-wide
// constant, never mutated.
var categoryWeights = map[string]int{
	"carcinogen":          15,
	"developmental_toxin": 12,
	"neurotoxin":          12,
	"endocrine_disruptor": 10,
	"organ_toxin":         10,
	"respiratory_toxin":   8,
	"bioaccumulative":     8,
	"allergen":            6,
	"skin_penetrator":     6,
	"irritant":            5,
	"environmental_toxin": 5,
	"photosensitizer":     5,
}

// crowdingThreshold is the ingredient count past which each extra
// ingredient shaves half a point: long formulations carry marginally more
// aggregate risk even absent specific hazards.
const crowdingThreshold = 15

// Safety computes the product safety score from all per-candidate match
// results. Zero candidates yields 0: that is "insufficient data", not
// "perfectly safe". The result is always clamped to [0,100].
func Safety(matches []match.Result, totalCandidates int) int {
	if totalCandidates == 0 {
		return 0
	}

	base := 100.0
	for _, m := range matches {
		if !m.IsHarmful {
			continue
		}
		base -= float64(m.Score)
		for _, cat := range m.Categories {
			if w, ok := categoryWeights[cat]; ok {
				base -= float64(w)
			}
		}
		// Compounding penalty: an ingredient flagged across many
		// categories is worse than its per-category sum suggests.
		if n := len(m.Categories); n > 2 {
			base -= float64(3 * (n - 2))
		}
	}

	if totalCandidates > crowdingThreshold {
		base -= 0.5 * float64(totalCandidates-crowdingThreshold)
	}

	if base < 0 {
		return 0
	}
	if base > 100 {
		return 100
	}
	return int(base)
}
