// Package hazard defines the in-memory hazardous-ingredient database.
//
// A Snapshot is built once from a Dataset and never mutated afterwards.
// Reload is the caller's concern: build a fresh Snapshot and swap the
// pointer atomically, so in-flight matches always see one consistent
// database.
package hazard

import (
	"sort"

	"github.com/clearlabel/clearlabel/pkg/clearlabel/normalize"
)

// Record describes one known harmful ingredient, keyed by canonical name.
type Record struct {
	Name             string   `json:"name" yaml:"name"`
	Score            int      `json:"score" yaml:"score"` // severity, 0-10
	Categories       []string `json:"categories" yaml:"categories"`
	Concerns         []string `json:"concerns" yaml:"concerns"`
	FoundIn          []string `json:"found_in" yaml:"found_in"`
	AlternativeNames []string `json:"alternative_names" yaml:"alternative_names"`
}

// Alternative suggests safer replacements for a harmful ingredient.
type Alternative struct {
	Alternatives []string `json:"alternatives" yaml:"alternatives"`
	Explanation  string   `json:"explanation" yaml:"explanation"`
}

// Dataset is the bulk form a store hands over on load or refresh: hazard
// records, safe-alternative suggestions keyed by canonical name, and
// category-tag descriptions.
type Dataset struct {
	Records      []Record
	Alternatives map[string]Alternative
	Categories   map[string]string
}

// Entry is a Record with its comparison forms precomputed at snapshot
// build time, so the match cascade never re-normalizes database names.
type Entry struct {
	Record
	NormalizedName         string
	NormalizedAlternatives []string
}

// Snapshot is an immutable view of the hazard database. Safe for
// concurrent readers without coordination.
type Snapshot struct {
	entries      []Entry
	exact        map[string]int // normalized name or synonym -> entries index
	alternatives map[string]Alternative
	categories   map[string]string
}

// NewSnapshot builds an immutable snapshot from a dataset. Records are
// ordered by canonical name so every downstream scan is deterministic.
// Exact-name collisions across records are not expected; last write wins.
func NewSnapshot(ds Dataset) *Snapshot {
	records := make([]Record, len(ds.Records))
	copy(records, ds.Records)
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })

	s := &Snapshot{
		entries:      make([]Entry, 0, len(records)),
		exact:        make(map[string]int, len(records)*2),
		alternatives: make(map[string]Alternative, len(ds.Alternatives)),
		categories:   make(map[string]string, len(ds.Categories)),
	}

	for _, r := range records {
		r.Score = clampScore(r.Score)
		e := Entry{
			Record:         r,
			NormalizedName: normalize.Normalize(r.Name),
		}
		if len(r.AlternativeNames) > 0 {
			e.NormalizedAlternatives = make([]string, 0, len(r.AlternativeNames))
			for _, alt := range r.AlternativeNames {
				if n := normalize.Normalize(alt); n != "" {
					e.NormalizedAlternatives = append(e.NormalizedAlternatives, n)
				}
			}
		}

		idx := len(s.entries)
		s.entries = append(s.entries, e)
		if e.NormalizedName != "" {
			s.exact[e.NormalizedName] = idx
		}
		for _, n := range e.NormalizedAlternatives {
			s.exact[n] = idx
		}
	}

	for name, alt := range ds.Alternatives {
		s.alternatives[name] = alt
	}
	for tag, desc := range ds.Categories {
		s.categories[tag] = desc
	}
	return s
}

// Empty returns a snapshot with no records. Matching against it yields
// all-candidates-safe, which is the mandated degradation for a missing or
// malformed store.
func Empty() *Snapshot {
	return NewSnapshot(Dataset{})
}

// Len reports the number of hazard records.
func (s *Snapshot) Len() int { return len(s.entries) }

// Entries returns the records in canonical-name order. Callers must not
// modify the returned slice.
func (s *Snapshot) Entries() []Entry { return s.entries }

// Exact looks up an entry whose normalized canonical name or synonym
// equals the given normalized string.
func (s *Snapshot) Exact(normalized string) (Entry, bool) {
	if idx, ok := s.exact[normalized]; ok {
		return s.entries[idx], true
	}
	return Entry{}, false
}

// Alternative returns the safe-alternative suggestion for a canonical
// hazard name, if one is known.
func (s *Snapshot) Alternative(canonical string) (Alternative, bool) {
	alt, ok := s.alternatives[canonical]
	return alt, ok
}

// CategoryDescription returns the human-readable description of a
// category tag, if one is known.
func (s *Snapshot) CategoryDescription(tag string) (string, bool) {
	desc, ok := s.categories[tag]
	return desc, ok
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}
