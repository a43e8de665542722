package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/clearlabel/clearlabel/pkg/clearlabel/hazard"
	"github.com/clearlabel/clearlabel/pkg/clearlabel/internalerr"
)

func testDataset() hazard.Dataset {
	return hazard.Dataset{
		Records: []hazard.Record{
			{
				Name:             "methylparaben",
				Score:            7,
				Categories:       []string{"endocrine_disruptor"},
				Concerns:         []string{"hormone disruption"},
				FoundIn:          []string{"moisturizers"},
				AlternativeNames: []string{"methyl paraben"},
			},
			{Name: "triclosan", Score: 8, Categories: []string{"endocrine_disruptor", "environmental_toxin"}},
		},
		Alternatives: map[string]hazard.Alternative{
			"methylparaben": {Alternatives: []string{"phenoxyethanol"}, Explanation: "gentler preservative"},
		},
		Categories: map[string]string{
			"endocrine_disruptor": "interferes with hormone systems",
		},
	}
}

func TestImportAndLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, filepath.Join(t.TempDir(), "hazards.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if err := s.ImportDataset(ctx, testDataset()); err != nil {
		t.Fatalf("ImportDataset: %v", err)
	}

	ds, err := s.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	if len(ds.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(ds.Records))
	}
	byName := make(map[string]hazard.Record)
	for _, r := range ds.Records {
		byName[r.Name] = r
	}

	mp := byName["methylparaben"]
	if mp.Score != 7 {
		t.Errorf("score = %d, want 7", mp.Score)
	}
	if len(mp.AlternativeNames) != 1 || mp.AlternativeNames[0] != "methyl paraben" {
		t.Errorf("alternative names = %v", mp.AlternativeNames)
	}
	if len(byName["triclosan"].Categories) != 2 {
		t.Errorf("triclosan categories = %v", byName["triclosan"].Categories)
	}

	if alt, ok := ds.Alternatives["methylparaben"]; !ok || alt.Explanation == "" {
		t.Errorf("alternatives not round-tripped: %+v", ds.Alternatives)
	}
	if ds.Categories["endocrine_disruptor"] == "" {
		t.Error("category descriptions not round-tripped")
	}
}

func TestImportUpsert(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, filepath.Join(t.TempDir(), "hazards.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if err := s.ImportDataset(ctx, testDataset()); err != nil {
		t.Fatal(err)
	}

	// Re-import with a changed score: update, not duplicate.
	ds := testDataset()
	ds.Records[0].Score = 9
	if err := s.ImportDataset(ctx, ds); err != nil {
		t.Fatal(err)
	}

	got, err := s.LoadSnapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Records) != 2 {
		t.Fatalf("records = %d, want 2 after re-import", len(got.Records))
	}
	for _, r := range got.Records {
		if r.Name == "methylparaben" && r.Score != 9 {
			t.Errorf("score = %d, want updated 9", r.Score)
		}
	}
}

func TestOpenUnavailablePath(t *testing.T) {
	// A directory is not a database file; Open must surface the sentinel.
	_, err := Open(context.Background(), t.TempDir())
	if !errors.Is(err, internalerr.ErrStoreUnavailable) {
		t.Errorf("err = %v, want ErrStoreUnavailable", err)
	}
}

func TestLoadSnapshotEmptyDatabase(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, filepath.Join(t.TempDir(), "empty.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	ds, err := s.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(ds.Records) != 0 || len(ds.Alternatives) != 0 || len(ds.Categories) != 0 {
		t.Errorf("fresh database should load empty, got %+v", ds)
	}
}
