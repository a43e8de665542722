package match

import "strings"

// prefixFamily pairs a chemical prefix token with its compatible
// suffix/family tokens.
type prefixFamily struct {
	prefix   string
	suffixes []string
}

// prefixSuffixTable is the fixed compatibility table for the
// chemical-pattern stage: a candidate and a database name only pattern-match
// when both contain one of these prefix tokens together with a suffix from
// that prefix's family list. Kept as an ordered slice so pair selection is
// deterministic.
var prefixSuffixTable = []prefixFamily{
	{"aluminum", []string{"oxide", "chloride", "chlorohydrate"}},
	{"ammonium", []string{"sulfate", "sulfonate"}},
	{"butyl", []string{"paraben", "phthalate", "glycol"}},
	{"butylene", []string{"glycol"}},
	{"cyclopenta", []string{"siloxane"}},
	{"cyclotetra", []string{"siloxane"}},
	{"dimethyl", []string{"siloxane", "phthalate"}},
	{"ethyl", []string{"paraben", "phthalate", "amine"}},
	{"iron", []string{"oxide"}},
	{"isobutyl", []string{"paraben"}},
	{"isopropyl", []string{"paraben", "alcohol"}},
	{"laureth", []string{"sulfate"}},
	{"lauryl", []string{"sulfate"}},
	{"methyl", []string{"paraben", "phthalate", "siloxane", "isothiazolinone"}},
	{"polyethylene", []string{"glycol"}},
	{"propyl", []string{"paraben", "glycol"}},
	{"propylene", []string{"glycol"}},
	{"sodium", []string{"sulfate", "sulfonate", "benzoate", "chloride"}},
	{"titanium", []string{"oxide", "dioxide"}},
	{"zinc", []string{"oxide"}},
}

// familyKeywords flag chemical families where sharing the family token is a
// strong signal on its own (chained descriptive names vary wildly around
// these roots).
var familyKeywords = []string{"phthalate", "paraben", "siloxane", "glycol"}

// chemicalTokens is the fixed vocabulary for the keyword-overlap score used
// by the compound and fuzzy stages.
var chemicalTokens = []string{
	"methyl", "ethyl", "propyl", "butyl", "lauryl", "laureth",
	"paraben", "phthalate", "sulfate", "sulfonate",
	"oxide", "dioxide", "siloxane", "silicone", "glycol",
	"peg", "formaldehyde", "benzene", "toluene", "phenol",
	"chloride", "urea", "amine",
}

// chemicalOverlap counts how many fixed chemical tokens appear in both
// strings, scaled by 0.25 per shared token and capped at 1.0.
func chemicalOverlap(a, b string) float64 {
	score := 0.0
	for _, tok := range chemicalTokens {
		if strings.Contains(a, tok) && strings.Contains(b, tok) {
			score += 0.25
		}
	}
	if score > 1.0 {
		return 1.0
	}
	return score
}

// sharedFamily returns the first family keyword present in both strings.
func sharedFamily(a, b string) (string, bool) {
	for _, kw := range familyKeywords {
		if strings.Contains(a, kw) && strings.Contains(b, kw) {
			return kw, true
		}
	}
	return "", false
}

// patternPair finds the first (prefix, suffix) pair from the compatibility
// table present in both strings.
func patternPair(a, b string) (prefix, suffix string, ok bool) {
	for _, pf := range prefixSuffixTable {
		if !strings.Contains(a, pf.prefix) || !strings.Contains(b, pf.prefix) {
			continue
		}
		for _, sfx := range pf.suffixes {
			if strings.Contains(a, sfx) && strings.Contains(b, sfx) {
				return pf.prefix, sfx, true
			}
		}
	}
	return "", "", false
}
