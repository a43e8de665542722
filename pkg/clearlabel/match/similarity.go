package match

// similarityRatio is a normalized edit-distance ratio in [0,1]:
// 1 - levenshtein(a,b) / max(len(a), len(b)).
func similarityRatio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	longer := len(a)
	if len(b) > longer {
		longer = len(b)
	}
	return 1.0 - float64(levenshtein(a, b))/float64(longer)
}

// lengthRatio is min(len)/max(len) in [0,1].
func lengthRatio(a, b string) float64 {
	la, lb := len(a), len(b)
	if la == 0 || lb == 0 {
		return 0.0
	}
	if la > lb {
		la, lb = lb, la
	}
	return float64(la) / float64(lb)
}

// levenshtein computes edit distance with a two-row table.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// block is one common substring shared by both inputs.
type block struct {
	posA, posB, length int
}

// matchingBlocks decomposes two strings into their common substrings by
// repeatedly taking the longest common substring and recursing into the
// unmatched regions on either side.
func matchingBlocks(a, b string) []block {
	var blocks []block
	collectBlocks([]rune(a), []rune(b), 0, 0, &blocks)
	return blocks
}

func collectBlocks(a, b []rune, offA, offB int, out *[]block) {
	pa, pb, l := longestCommonSubstring(a, b)
	if l == 0 {
		return
	}
	collectBlocks(a[:pa], b[:pb], offA, offB, out)
	*out = append(*out, block{posA: offA + pa, posB: offB + pb, length: l})
	collectBlocks(a[pa+l:], b[pb+l:], offA+pa+l, offB+pb+l, out)
}

// longestCommonSubstring returns the start positions and length of the
// longest substring common to a and b. Earliest occurrence wins ties, which
// keeps block decomposition deterministic.
func longestCommonSubstring(a, b []rune) (posA, posB, length int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
				if curr[j] > length {
					length = curr[j]
					posA = i - length
					posB = j - length
				}
			} else {
				curr[j] = 0
			}
		}
		prev, curr = curr, prev
		for j := range curr {
			curr[j] = 0
		}
	}
	return posA, posB, length
}

// substringCoverage sums the lengths of common substrings longer than two
// runes and normalizes by the longer string's length. Short shared scraps
// ("al", "te") say nothing about chemical identity and are ignored.
func substringCoverage(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	longer := la
	if lb > longer {
		longer = lb
	}
	if longer == 0 {
		return 0.0
	}

	covered := 0
	for _, blk := range matchingBlocks(a, b) {
		if blk.length > 2 {
			covered += blk.length
		}
	}

	ratio := float64(covered) / float64(longer)
	if ratio > 1.0 {
		return 1.0
	}
	return ratio
}
