package db

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"seodash/internal/fixtures"
	"seodash/internal/keywords"
	"seodash/internal/models"
)

func TestReplaceSiteKeywords(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	records := fixtures.NewFake(1).Keywords("example.com", 50)

	batch, err := db.ReplaceSiteKeywords(ctx, "example.com", records)
	if err != nil {
		t.Fatalf("ReplaceSiteKeywords() error = %v", err)
	}
	if batch == uuid.Nil {
		t.Error("ReplaceSiteKeywords() returned nil batch")
	}

	got, err := db.ListKeywords(ctx, "example.com")
	if err != nil {
		t.Fatalf("ListKeywords() error = %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("ListKeywords() len = %d, want %d", len(got), len(records))
	}
	for i := range records {
		if got[i].Keyword != records[i].Keyword || got[i].CurrentPosition != records[i].CurrentPosition {
			t.Fatalf("record %d = %+v, want %+v", i, got[i], records[i])
		}
	}

	// A stored collection summarises exactly like the in-memory one.
	if a, b := keywords.Summarize(got), keywords.Summarize(records); a.TotalTraffic != b.TotalTraffic || a.TotalVolume != b.TotalVolume {
		t.Errorf("stored summary %+v differs from %+v", a, b)
	}

	// Replacing swaps the whole collection.
	if _, err := db.ReplaceSiteKeywords(ctx, "example.com", records[:5]); err != nil {
		t.Fatalf("ReplaceSiteKeywords() second error = %v", err)
	}
	counts, err := db.CountKeywordsBySite(ctx)
	if err != nil {
		t.Fatalf("CountKeywordsBySite() error = %v", err)
	}
	if counts["example.com"] != 5 {
		t.Errorf("count = %d, want 5", counts["example.com"])
	}
}

func TestSites(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	err := db.SyncSites(ctx, []models.Site{
		{Name: "tokyocheapo.com", DisplayName: "Tokyo Cheapo"},
		{Name: "www.timeout.jp", DisplayName: "Time Out Tokyo"},
	}, "tokyoweekender.com")
	if err != nil {
		t.Fatalf("SyncSites() error = %v", err)
	}

	sites, err := db.Sites(ctx)
	if err != nil {
		t.Fatalf("Sites() error = %v", err)
	}
	if len(sites) != 3 || sites[0].Name != "tokyoweekender.com" || !sites[0].Tracked {
		t.Fatalf("Sites() = %+v, want tracked site first", sites)
	}

	if _, err := db.Site(ctx, "missing.com"); !errors.Is(err, ErrSiteNotFound) {
		t.Errorf("Site(missing) error = %v, want ErrSiteNotFound", err)
	}

	if err := db.SetTrackedSite(ctx, "www.timeout.jp"); err != nil {
		t.Fatalf("SetTrackedSite() error = %v", err)
	}
	tracked, err := db.GetTrackedSite(ctx)
	if err != nil || tracked.Name != "www.timeout.jp" {
		t.Errorf("GetTrackedSite() = %v, %v", tracked, err)
	}
}

func TestEnsureTrackedSite(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	got, err := db.EnsureTrackedSite(ctx, "tokyoweekender.com")
	if err != nil || got != "tokyoweekender.com" {
		t.Fatalf("EnsureTrackedSite(empty) = %q, %v, want tokyoweekender.com", got, err)
	}
	tracked, err := db.GetTrackedSite(ctx)
	if err != nil || tracked.Name != "tokyoweekender.com" {
		t.Fatalf("GetTrackedSite() = %v, %v", tracked, err)
	}

	if err := db.SyncSites(ctx, []models.Site{{Name: "www.timeout.jp"}}, "www.timeout.jp"); err != nil {
		t.Fatalf("SyncSites() error = %v", err)
	}
	got, err = db.EnsureTrackedSite(ctx, "tokyoweekender.com")
	if err != nil || got != "www.timeout.jp" {
		t.Errorf("EnsureTrackedSite(existing) = %q, %v, want www.timeout.jp", got, err)
	}
}

func TestKeywordSearchesAndSnapshots(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	for range 3 {
		if err := db.IncrementKeywordSearch(ctx, "local", models.OutcomeResults); err != nil {
			t.Fatalf("IncrementKeywordSearch() error = %v", err)
		}
	}
	searches, err := db.GetAllKeywordSearches(ctx)
	if err != nil {
		t.Fatalf("GetAllKeywordSearches() error = %v", err)
	}
	if len(searches) != 1 || searches[0].Count != 3 {
		t.Errorf("GetAllKeywordSearches() = %+v, want one row with count 3", searches)
	}

	if _, err := db.LatestSnapshot(ctx, "example.com", models.SnapshotSummary); !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("LatestSnapshot() error = %v, want ErrSnapshotNotFound", err)
	}
	if err := db.UpsertSite(ctx, &models.Site{Name: "example.com"}); err != nil {
		t.Fatal(err)
	}
	saved, err := db.SaveSnapshot(ctx, "example.com", models.SnapshotSummary, keywords.Summarize(nil))
	if err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}
	latest, err := db.LatestSnapshot(ctx, "example.com", models.SnapshotSummary)
	if err != nil {
		t.Fatalf("LatestSnapshot() error = %v", err)
	}
	if latest.ID != saved.ID {
		t.Errorf("LatestSnapshot() ID = %v, want %v", latest.ID, saved.ID)
	}
}

func TestSeedDevKeywords(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	if err := db.SyncSites(ctx, []models.Site{{Name: "rival.jp"}}, "ours.jp"); err != nil {
		t.Fatal(err)
	}
	if err := db.SeedDevKeywords(ctx, fixtures.NewFake(3), 20); err != nil {
		t.Fatalf("SeedDevKeywords() error = %v", err)
	}
	counts, _ := db.CountKeywordsBySite(ctx)
	if counts["rival.jp"] != 20 || counts["ours.jp"] != 20 {
		t.Errorf("counts = %v, want 20 per site", counts)
	}

	// Seeding again leaves populated sites alone.
	if err := db.SeedDevKeywords(ctx, fixtures.NewFake(4), 5); err != nil {
		t.Fatal(err)
	}
	counts, _ = db.CountKeywordsBySite(ctx)
	if counts["rival.jp"] != 20 {
		t.Errorf("reseed changed count to %d", counts["rival.jp"])
	}
}
