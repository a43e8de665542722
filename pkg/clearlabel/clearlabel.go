// Package clearlabel analyzes cosmetic-ingredient label text against a
// curated hazard database, producing a safety verdict per ingredient and
// an aggregate product safety score.
//
// The pipeline is: raw text -> candidate extraction -> per-candidate
// normalization and match cascade -> safety scoring. All of it is pure
// computation over an immutable database snapshot; reloads swap the
// snapshot atomically so in-flight analyses always see one consistent
// database.
package clearlabel

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/clearlabel/clearlabel/pkg/clearlabel/classifier"
	"github.com/clearlabel/clearlabel/pkg/clearlabel/hazard"
	"github.com/clearlabel/clearlabel/pkg/clearlabel/ingest"
	"github.com/clearlabel/clearlabel/pkg/clearlabel/match"
	"github.com/clearlabel/clearlabel/pkg/clearlabel/normalize"
	"github.com/clearlabel/clearlabel/pkg/clearlabel/score"
	"github.com/clearlabel/clearlabel/pkg/clearlabel/store"
)

// Options configures an Analyzer.
type Options struct {
	// Snapshot is the initial hazard database. Nil means empty: every
	// candidate reports safe until a reload supplies data.
	Snapshot *hazard.Snapshot

	// Thresholds tune the cascade. Zero fields use the defaults.
	Thresholds match.Thresholds

	// Classifier is an optional advisory signal. May be nil.
	Classifier classifier.Signal

	// Logger receives diagnostic output. May be nil.
	Logger *slog.Logger

	// MaxParallel bounds the per-candidate match fan-out (default 4).
	MaxParallel int

	// CacheSize is the per-snapshot verdict cache capacity (default
	// 1024).
	CacheSize int
}

// Analyzer is the end-to-end analysis pipeline. Safe for concurrent use.
type Analyzer struct {
	extractor   *ingest.Extractor
	cascade     *match.Cascade
	signal      classifier.Signal
	logger      *slog.Logger
	maxParallel int
	cacheSize   int

	state atomic.Pointer[snapshotState]

	idMu    sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// snapshotState binds a database snapshot to its verdict cache. The cache
// lives and dies with the snapshot, so a reload can never serve verdicts
// computed against stale data.
type snapshotState struct {
	snap  *hazard.Snapshot
	cache *lru.Cache[string, match.Result]
}

// New creates an Analyzer.
func New(opts Options) *Analyzer {
	if opts.MaxParallel <= 0 {
		opts.MaxParallel = 4
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 1024
	}

	a := &Analyzer{
		extractor:   ingest.NewExtractor(),
		cascade:     match.NewCascade(opts.Thresholds),
		signal:      opts.Classifier,
		logger:      opts.Logger,
		maxParallel: opts.MaxParallel,
		cacheSize:   opts.CacheSize,
		entropy:     ulid.Monotonic(rand.Reader, 0),
	}

	snap := opts.Snapshot
	if snap == nil {
		snap = hazard.Empty()
	}
	a.state.Store(newSnapshotState(snap, a.cacheSize))
	return a
}

func newSnapshotState(snap *hazard.Snapshot, cacheSize int) *snapshotState {
	cache, err := lru.New[string, match.Result](cacheSize)
	if err != nil {
		cache = nil
	}
	return &snapshotState{snap: snap, cache: cache}
}

// SetSnapshot atomically swaps in a new database snapshot. In-flight
// analyses finish against the snapshot they started with.
func (a *Analyzer) SetSnapshot(snap *hazard.Snapshot) {
	if snap == nil {
		snap = hazard.Empty()
	}
	a.state.Store(newSnapshotState(snap, a.cacheSize))
}

// Snapshot returns the current database snapshot.
func (a *Analyzer) Snapshot() *hazard.Snapshot {
	return a.state.Load().snap
}

// Reload loads a fresh dataset from the store and swaps it in.
func (a *Analyzer) Reload(ctx context.Context, st store.Store) error {
	ds, err := st.LoadSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("reload hazard database: %w", err)
	}
	snap := hazard.NewSnapshot(ds)
	a.SetSnapshot(snap)
	if a.logger != nil {
		a.logger.Info("hazard database reloaded", "records", snap.Len())
	}
	return nil
}

// Analyze runs the full pipeline over raw label text. It never fails for
// well-formed string input; the only error source is context
// cancellation. Empty or all-noise input yields a report with zero counts
// and safety score 0.
func (a *Analyzer) Analyze(ctx context.Context, rawText string) (*Report, error) {
	st := a.state.Load()

	text := ingest.StripHTML(rawText)
	candidates := a.extractor.Extract(text)
	if a.logger != nil {
		a.logger.Debug("label text tokenized", "candidates", len(candidates))
	}

	// Candidates are independent: fan out, then reassemble in source
	// order, which is part of the report's contract.
	results := make([]match.Result, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.maxParallel)
	for i, candidate := range candidates {
		i, candidate := i, candidate
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = a.matchCandidate(st, normalize.Normalize(candidate))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return a.buildReport(st.snap, candidates, results), nil
}

// Lookup checks a single ingredient name against the current database.
func (a *Analyzer) Lookup(name string) match.Result {
	return a.matchCandidate(a.state.Load(), normalize.Normalize(name))
}

func (a *Analyzer) matchCandidate(st *snapshotState, normalized string) match.Result {
	if st.cache != nil {
		if r, ok := st.cache.Get(normalized); ok {
			return r
		}
	}
	r := a.cascade.Match(normalized, st.snap)
	if st.cache != nil {
		st.cache.Add(normalized, r)
	}
	return r
}

func (a *Analyzer) buildReport(snap *hazard.Snapshot, candidates []string, results []match.Result) *Report {
	report := &Report{
		ID:              a.newID(),
		TotalCount:      len(candidates),
		CategoriesFound: make(map[string]int),
	}

	recommended := make(map[string]struct{})
	for i, candidate := range candidates {
		r := results[i]
		if !r.IsHarmful {
			report.Safe = append(report.Safe, candidate)
			a.advise(report, candidate, r)
			continue
		}

		report.Harmful = append(report.Harmful, IngredientVerdict{Ingredient: candidate, Result: r})
		for _, cat := range r.Categories {
			report.CategoriesFound[cat]++
		}
		if _, done := recommended[r.MatchedName]; !done {
			recommended[r.MatchedName] = struct{}{}
			if alt, ok := snap.Alternative(r.MatchedName); ok {
				report.Recommendations = append(report.Recommendations, Recommendation{
					HarmfulIngredient: r.MatchedName,
					SaferAlternatives: alt.Alternatives,
					Explanation:       alt.Explanation,
					ProductTypes:      r.FoundIn,
				})
			}
		}
	}

	for cat := range report.CategoriesFound {
		if desc, ok := snap.CategoryDescription(cat); ok {
			if report.CategoryDescriptions == nil {
				report.CategoryDescriptions = make(map[string]string)
			}
			report.CategoryDescriptions[cat] = desc
		}
	}

	report.Tips = safetyTips(report.CategoriesFound)
	report.SafetyScore = score.Safety(results, len(candidates))
	return report
}

// advise consults the optional classifier for candidates the cascade
// passed over. The cascade verdict always stands; the prediction only
// lands in the advisory list.
func (a *Analyzer) advise(report *Report, candidate string, r match.Result) {
	if a.signal == nil || r.IsHarmful {
		return
	}
	p, ok := a.signal.Predict(normalize.Normalize(candidate))
	if ok && p.Harmful {
		report.Advisories = append(report.Advisories, Advisory{Ingredient: candidate, Prediction: p})
	}
}

func (a *Analyzer) newID() string {
	a.idMu.Lock()
	defer a.idMu.Unlock()
	return ulid.MustNew(ulid.Now(), a.entropy).String()
}
