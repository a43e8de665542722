package clearlabel

import (
	"context"
	"testing"

	"github.com/clearlabel/clearlabel/pkg/clearlabel/classifier"
	"github.com/clearlabel/clearlabel/pkg/clearlabel/hazard"
)

func testDataset() hazard.Dataset {
	return hazard.Dataset{
		Records: []hazard.Record{
			{
				Name:       "methylparaben",
				Score:      7,
				Categories: []string{"endocrine_disruptor"},
				Concerns:   []string{"hormone disruption"},
				FoundIn:    []string{"moisturizers"},
			},
			{
				Name:             "fragrance",
				Score:            5,
				Categories:       []string{"allergen"},
				AlternativeNames: []string{"parfum", "aroma"},
			},
			{
				Name:             "titanium dioxide",
				Score:            6,
				Categories:       []string{"carcinogen"},
				AlternativeNames: []string{"ci 77891"},
			},
		},
		Alternatives: map[string]hazard.Alternative{
			"methylparaben": {
				Alternatives: []string{"phenoxyethanol"},
				Explanation:  "gentler preservative",
			},
		},
		Categories: map[string]string{
			"endocrine_disruptor": "interferes with hormone systems",
			"allergen":            "can trigger allergic reactions",
		},
	}
}

func testAnalyzer() *Analyzer {
	return New(Options{Snapshot: hazard.NewSnapshot(testDataset())})
}

func TestAnalyzeLabelText(t *testing.T) {
	a := testAnalyzer()

	report, err := a.Analyze(context.Background(),
		"INGREDIENTS: Water, Glycerin, Methylparaben, Parfum")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if report.TotalCount != 4 {
		t.Errorf("TotalCount = %d, want 4", report.TotalCount)
	}
	if len(report.Harmful)+len(report.Safe) != report.TotalCount {
		t.Errorf("count invariant broken: %d harmful + %d safe != %d",
			len(report.Harmful), len(report.Safe), report.TotalCount)
	}

	if len(report.Safe) != 2 || report.Safe[0] != "water" || report.Safe[1] != "glycerin" {
		t.Errorf("Safe = %v", report.Safe)
	}
	if len(report.Harmful) != 2 {
		t.Fatalf("Harmful = %+v, want 2 entries", report.Harmful)
	}
	if report.Harmful[0].Ingredient != "methylparaben" || report.Harmful[0].MatchedName != "methylparaben" {
		t.Errorf("Harmful[0] = %+v", report.Harmful[0])
	}
	// Synonym resolves to its canonical record.
	if report.Harmful[1].Ingredient != "parfum" || report.Harmful[1].MatchedName != "fragrance" {
		t.Errorf("Harmful[1] = %+v", report.Harmful[1])
	}

	// 100 - (7+10) - (5+6) = 72.
	if report.SafetyScore != 72 {
		t.Errorf("SafetyScore = %d, want 72", report.SafetyScore)
	}

	if report.CategoriesFound["endocrine_disruptor"] != 1 || report.CategoriesFound["allergen"] != 1 {
		t.Errorf("CategoriesFound = %v", report.CategoriesFound)
	}
	if report.CategoryDescriptions["allergen"] == "" {
		t.Errorf("CategoryDescriptions = %v", report.CategoryDescriptions)
	}

	if len(report.Recommendations) != 1 || report.Recommendations[0].HarmfulIngredient != "methylparaben" {
		t.Errorf("Recommendations = %+v", report.Recommendations)
	}
	if len(report.Tips) == 0 {
		t.Error("harmful findings should carry safety tips")
	}
	if report.ID == "" {
		t.Error("report must carry an ID")
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	a := testAnalyzer()

	report, err := a.Analyze(context.Background(), "")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.TotalCount != 0 || len(report.Harmful) != 0 || len(report.Safe) != 0 {
		t.Errorf("empty input should yield zero counts: %+v", report)
	}
	if report.SafetyScore != 0 {
		t.Errorf("SafetyScore = %d, want 0 (insufficient data)", report.SafetyScore)
	}
}

func TestAnalyzeAllNoiseInput(t *testing.T) {
	a := testAnalyzer()

	report, err := a.Analyze(context.Background(),
		"Visit www.example.com, Tel: 555-0100, 123Main Street")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.TotalCount != 0 || report.SafetyScore != 0 {
		t.Errorf("all-noise input should behave like empty input: %+v", report)
	}
}

func TestAnalyzeDeterministicUnderParallelism(t *testing.T) {
	a := New(Options{Snapshot: hazard.NewSnapshot(testDataset()), MaxParallel: 8})
	text := "Water, Methylparaben, Glycerin, Parfum, Squalane, CI 77891"

	first, err := a.Analyze(context.Background(), text)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := a.Analyze(context.Background(), text)
		if err != nil {
			t.Fatal(err)
		}
		if len(again.Harmful) != len(first.Harmful) || len(again.Safe) != len(first.Safe) {
			t.Fatalf("run %d diverged: %+v vs %+v", i, again, first)
		}
		for j := range first.Harmful {
			if again.Harmful[j].Ingredient != first.Harmful[j].Ingredient {
				t.Fatalf("harmful ordering diverged: %+v vs %+v", again.Harmful, first.Harmful)
			}
		}
		for j := range first.Safe {
			if again.Safe[j] != first.Safe[j] {
				t.Fatalf("safe ordering diverged: %v vs %v", again.Safe, first.Safe)
			}
		}
		if again.SafetyScore != first.SafetyScore {
			t.Fatalf("score diverged: %d vs %d", again.SafetyScore, first.SafetyScore)
		}
	}
}

func TestAnalyzeHTMLInput(t *testing.T) {
	a := testAnalyzer()

	report, err := a.Analyze(context.Background(),
		"<html><body><p>Ingredients: Water, Methylparaben</p></body></html>")
	if err != nil {
		t.Fatal(err)
	}
	if report.TotalCount != 2 || len(report.Harmful) != 1 {
		t.Errorf("markup should be stripped before extraction: %+v", report)
	}
}

func TestAnalyzeCancelledContext(t *testing.T) {
	a := testAnalyzer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := a.Analyze(ctx, "Water, Glycerin"); err == nil {
		t.Error("cancelled context should surface as an error")
	}
}

func TestLookup(t *testing.T) {
	a := testAnalyzer()

	got := a.Lookup("Methylparaben")
	if !got.IsHarmful || got.Confidence != 1.0 || got.MatchedName != "methylparaben" {
		t.Errorf("Lookup = %+v", got)
	}

	// A filler word uncovered by parenthetical removal must not block the
	// exact stage.
	got = a.Lookup("(organic) and Methylparaben")
	if !got.IsHarmful || got.Confidence != 1.0 || got.MatchedName != "methylparaben" {
		t.Errorf("Lookup with filler noise = %+v", got)
	}

	if safe := a.Lookup("water"); safe.IsHarmful {
		t.Errorf("Lookup(water) = %+v, want safe", safe)
	}
}

func TestLookupCached(t *testing.T) {
	a := testAnalyzer()

	first := a.Lookup("methylparaben")
	second := a.Lookup("methylparaben")
	if first.MatchedName != second.MatchedName || first.Confidence != second.Confidence ||
		first.IsHarmful != second.IsHarmful {
		t.Errorf("cached lookup diverged: %+v vs %+v", first, second)
	}
}

func TestAdvisoryDoesNotOverrideCascade(t *testing.T) {
	signal := classifier.SignalFunc(func(normalized string) (classifier.Prediction, bool) {
		if normalized == "glycerin" {
			return classifier.Prediction{Harmful: true, Confidence: 0.9, Category: "irritant"}, true
		}
		return classifier.Prediction{}, false
	})

	a := New(Options{Snapshot: hazard.NewSnapshot(testDataset()), Classifier: signal})
	report, err := a.Analyze(context.Background(), "Water, Glycerin")
	if err != nil {
		t.Fatal(err)
	}

	// The cascade found nothing, so both stay safe and the score is
	// untouched; the classifier's opinion lands in the advisory list.
	if len(report.Harmful) != 0 || len(report.Safe) != 2 {
		t.Fatalf("advisory must not change verdicts: %+v", report)
	}
	if report.SafetyScore != 100 {
		t.Errorf("SafetyScore = %d, want 100", report.SafetyScore)
	}
	if len(report.Advisories) != 1 || report.Advisories[0].Ingredient != "glycerin" {
		t.Errorf("Advisories = %+v", report.Advisories)
	}
}

func TestSafetyScoreBounds(t *testing.T) {
	a := testAnalyzer()

	texts := []string{
		"",
		"Water",
		"Methylparaben, Parfum, Titanium Dioxide (CI 77891), Methylparaben",
		"Water, Glycerin, Squalane, Panthenol, Niacinamide, Allantoin, Bisabolol, Betaine, Urea Compound, Trehalose, Sorbitol, Mannitol, Xylitol, Erythritol, Inositol, Raffinose, Fucose, Rhamnose",
	}
	for _, text := range texts {
		report, err := a.Analyze(context.Background(), text)
		if err != nil {
			t.Fatal(err)
		}
		if report.SafetyScore < 0 || report.SafetyScore > 100 {
			t.Errorf("SafetyScore = %d for %q, outside [0,100]", report.SafetyScore, text)
		}
		if len(report.Harmful)+len(report.Safe) != report.TotalCount {
			t.Errorf("count invariant broken for %q", text)
		}
	}
}
