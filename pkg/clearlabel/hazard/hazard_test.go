package hazard

import "testing"

func TestSnapshotExactLookup(t *testing.T) {
	snap := NewSnapshot(Dataset{
		Records: []Record{
			{
				Name:             "Titanium Dioxide",
				Score:            6,
				Categories:       []string{"carcinogen"},
				AlternativeNames: []string{"TiO2", "CI 77891"},
			},
		},
	})

	if snap.Len() != 1 {
		t.Fatalf("Len = %d, want 1", snap.Len())
	}

	e, ok := snap.Exact("titanium dioxide")
	if !ok || e.Name != "Titanium Dioxide" {
		t.Errorf("canonical lookup failed: %+v, ok=%v", e, ok)
	}

	// Synonyms resolve to the same record, through normalization.
	if _, ok := snap.Exact("ci 77891"); !ok {
		t.Error("synonym lookup via normalized alternative name failed")
	}
	if _, ok := snap.Exact("tio2"); !ok {
		t.Error("synonym lookup failed")
	}
	if _, ok := snap.Exact("parfum"); ok {
		t.Error("unknown name should not resolve")
	}
}

func TestSnapshotDeterministicOrder(t *testing.T) {
	ds := Dataset{Records: []Record{
		{Name: "zinc oxide", Score: 3},
		{Name: "methylparaben", Score: 7},
		{Name: "triclosan", Score: 8},
	}}
	snap := NewSnapshot(ds)

	names := make([]string, 0, snap.Len())
	for _, e := range snap.Entries() {
		names = append(names, e.Name)
	}
	want := []string{"methylparaben", "triclosan", "zinc oxide"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("entries order %v, want %v", names, want)
		}
	}
}

func TestSnapshotScoreClamped(t *testing.T) {
	snap := NewSnapshot(Dataset{Records: []Record{
		{Name: "a", Score: 42},
		{Name: "b", Score: -1},
	}})
	for _, e := range snap.Entries() {
		if e.Score < 0 || e.Score > 10 {
			t.Errorf("score %d for %q outside [0,10]", e.Score, e.Name)
		}
	}
}

func TestSnapshotCollisionLastWriteWins(t *testing.T) {
	snap := NewSnapshot(Dataset{Records: []Record{
		{Name: "parfum", Score: 3},
		{Name: "zz fragrance", Score: 8, AlternativeNames: []string{"parfum"}},
	}})

	// "zz fragrance" sorts after "parfum", so its synonym wins the slot.
	e, ok := snap.Exact("parfum")
	if !ok {
		t.Fatal("lookup failed")
	}
	if e.Name != "zz fragrance" {
		t.Errorf("last write should win, got %q", e.Name)
	}
}

func TestEmptySnapshot(t *testing.T) {
	snap := Empty()
	if snap.Len() != 0 {
		t.Errorf("Len = %d, want 0", snap.Len())
	}
	if _, ok := snap.Exact("water"); ok {
		t.Error("empty snapshot should match nothing")
	}
}

func TestSnapshotAlternativesAndCategories(t *testing.T) {
	snap := NewSnapshot(Dataset{
		Alternatives: map[string]Alternative{
			"methylparaben": {Alternatives: []string{"phenoxyethanol"}, Explanation: "gentler preservative"},
		},
		Categories: map[string]string{
			"endocrine_disruptor": "interferes with hormone systems",
		},
	})

	if alt, ok := snap.Alternative("methylparaben"); !ok || len(alt.Alternatives) != 1 {
		t.Errorf("Alternative lookup failed: %+v, ok=%v", alt, ok)
	}
	if desc, ok := snap.CategoryDescription("endocrine_disruptor"); !ok || desc == "" {
		t.Error("CategoryDescription lookup failed")
	}
}
