// Package jsonstore reads the hazard database from a single JSON document,
// the format produced by the external refresh job:
//
//	{
//	  "harmful_ingredients": { "<name>": {"score": 7, "categories": [...], ...} },
//	  "safe_alternatives":   { "<name>": {"alternatives": [...], "explanation": "..."} },
//	  "toxicity_categories": { "<tag>": "<description>" }
//	}
package jsonstore

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/clearlabel/clearlabel/pkg/clearlabel/hazard"
)

// defaultScore is assumed when a record carries no score field.
const defaultScore = 5

// Store reads datasets from a JSON file.
type Store struct {
	path   string
	logger *slog.Logger
}

// New creates a JSON file store. A nil logger falls back to slog.Default().
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

type document struct {
	HarmfulIngredients map[string]recordDoc          `json:"harmful_ingredients"`
	SafeAlternatives   map[string]hazard.Alternative `json:"safe_alternatives"`
	ToxicityCategories map[string]string             `json:"toxicity_categories"`
}

type recordDoc struct {
	Score            *int     `json:"score"`
	Categories       []string `json:"categories"`
	Concerns         []string `json:"concerns"`
	FoundIn          []string `json:"found_in"`
	AlternativeNames []string `json:"alternative_names"`
}

// LoadSnapshot implements store.Store. A missing or malformed file
// degrades to an empty dataset with a logged warning; the analyzer then
// reports every candidate as safe rather than failing.
func (s *Store) LoadSnapshot(ctx context.Context) (hazard.Dataset, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.Warn("hazard database unreadable, using empty database",
			"path", s.path, "error", err)
		return hazard.Dataset{}, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("hazard database malformed, using empty database",
			"path", s.path, "error", err)
		return hazard.Dataset{}, nil
	}

	ds := hazard.Dataset{
		Records:      make([]hazard.Record, 0, len(doc.HarmfulIngredients)),
		Alternatives: doc.SafeAlternatives,
		Categories:   doc.ToxicityCategories,
	}
	for name, r := range doc.HarmfulIngredients {
		score := defaultScore
		if r.Score != nil {
			score = *r.Score
		}
		ds.Records = append(ds.Records, hazard.Record{
			Name:             name,
			Score:            score,
			Categories:       r.Categories,
			Concerns:         r.Concerns,
			FoundIn:          r.FoundIn,
			AlternativeNames: r.AlternativeNames,
		})
	}

	s.logger.Debug("hazard database loaded",
		"path", s.path,
		"records", len(ds.Records),
		"alternatives", len(ds.Alternatives),
		"categories", len(ds.Categories))
	return ds, nil
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }
