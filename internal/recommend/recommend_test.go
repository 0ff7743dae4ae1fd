package recommend

import (
	"testing"

	"seodash/internal/models"
)

func rec(keyword string, volume int64, position int, url string) models.KeywordRecord {
	return models.KeywordRecord{
		Site:            "example.com",
		Keyword:         keyword,
		Volume:          volume,
		CurrentPosition: position,
		CurrentURL:      url,
	}
}

func TestCTR(t *testing.T) {
	tests := []struct {
		position int
		want     float64
	}{
		{1, 0.28},
		{3, 0.11},
		{10, 0.02},
		{11, 0.01},
		{20, 0.01},
		{21, 0},
		{0, 0},
		{-1, 0},
		{models.NotRankingPosition, 0},
	}
	for _, tt := range tests {
		if got := CTR(tt.position); got != tt.want {
			t.Errorf("CTR(%d) = %v, want %v", tt.position, got, tt.want)
		}
	}
}

func TestCTR_Monotonic(t *testing.T) {
	for p := 2; p <= 25; p++ {
		if CTR(p) > CTR(p-1) {
			t.Errorf("CTR(%d) = %v > CTR(%d) = %v", p, CTR(p), p-1, CTR(p-1))
		}
	}
}

func TestEstimatedTraffic(t *testing.T) {
	if got := EstimatedTraffic(1000, 3); got != 110 {
		t.Errorf("EstimatedTraffic(1000, 3) = %d, want 110", got)
	}
	if got := EstimatedTraffic(1000, models.NotRankingPosition); got != 0 {
		t.Errorf("EstimatedTraffic(1000, 999) = %d, want 0", got)
	}
}

func TestNewContentIdeas(t *testing.T) {
	records := []models.KeywordRecord{
		rec("tokyo ramen guide", 5000, models.NotRankingPosition, ""),
		rec("tokyo events", 2000, 25, "https://example.com/events"),
		rec("page one", 9000, 2, "https://example.com/one"),
		rec("small gap", 300, 40, ""),
	}
	records[0].Informational = true

	got := NewContentIdeas(records, 8)
	if len(got) != 2 {
		t.Fatalf("NewContentIdeas() returned %d items, want 2", len(got))
	}
	first := got[0]
	if first.Keyword != "tokyo ramen guide" {
		t.Errorf("first keyword = %q, want %q", first.Keyword, "tokyo ramen guide")
	}
	if first.Title != "Tokyo Ramen Guide" {
		t.Errorf("Title = %q, want %q", first.Title, "Tokyo Ramen Guide")
	}
	if first.PotentialTraffic != 550 {
		t.Errorf("PotentialTraffic = %d, want 550", first.PotentialTraffic)
	}
	if first.ContentType != "Guide" {
		t.Errorf("ContentType = %q, want Guide", first.ContentType)
	}
	if first.Priority != PriorityMedium {
		t.Errorf("Priority = %q, want %q", first.Priority, PriorityMedium)
	}
	if got[1].ContentType != "Article" {
		t.Errorf("ContentType = %q, want Article", got[1].ContentType)
	}

	if got := NewContentIdeas(records, 1); len(got) != 1 {
		t.Errorf("NewContentIdeas(n=1) returned %d items, want 1", len(got))
	}
	if got := NewContentIdeas(nil, 8); got == nil || len(got) != 0 {
		t.Errorf("NewContentIdeas(nil) = %v, want empty non-nil", got)
	}
}

func TestImprovements(t *testing.T) {
	records := []models.KeywordRecord{
		rec("already top", 10000, 2, "https://example.com/a"),
		rec("page one", 10000, 6, "https://example.com/b"),
		rec("page two", 10000, 15, "https://example.com/c"),
		rec("no url", 10000, 8, ""),
		rec("too deep", 10000, 25, "https://example.com/d"),
	}

	got := Improvements(records, 12)
	if len(got) != 2 {
		t.Fatalf("Improvements() returned %d items, want 2", len(got))
	}

	// 10000 * (0.11 - 0.05) = 600 beats 10000 * (0.02 - 0.01) = 100.
	if got[0].Keyword != "page one" || got[0].TargetPosition != 3 || got[0].PotentialTrafficGain != 600 {
		t.Errorf("got[0] = %+v, want page one -> 3 gaining 600", got[0])
	}
	if got[0].ImprovementType != "Content Enhancement" || got[0].Priority != PriorityMedium {
		t.Errorf("got[0] type/priority = %q/%q", got[0].ImprovementType, got[0].Priority)
	}
	if got[1].Keyword != "page two" || got[1].TargetPosition != 10 || got[1].PotentialTrafficGain != 100 {
		t.Errorf("got[1] = %+v, want page two -> 10 gaining 100", got[1])
	}
	if got[1].ImprovementType != "On-Page Optimization" || got[1].Priority != PriorityLow {
		t.Errorf("got[1] type/priority = %q/%q", got[1].ImprovementType, got[1].Priority)
	}
}

func TestTopicClusters(t *testing.T) {
	records := []models.KeywordRecord{
		rec("tokyo food markets", 800, 12, ""),
		rec("tokyo food", 5000, 30, ""),
		rec("Tokyo Food tours", 400, 0, ""),
		rec("tokyo food halls", 300, 50, ""),
		rec("tokyo food blog", 250, 50, ""),
		rec("tokyo food delivery", 200, 50, ""),
		rec("tokyo food trucks", 150, 50, ""),
		rec("tokyo food tiny", 50, 50, ""),
		rec("osaka castle", 3000, 5, ""),
		rec("kyoto temples", 1000, 5, ""),
		rec("kyoto temples map", 900, 5, ""),
	}

	got := TopicClusters(records, 3)
	if len(got) != 2 {
		t.Fatalf("TopicClusters() returned %d clusters, want 2", len(got))
	}

	food := got[0]
	if food.Name != "Tokyo Food" {
		t.Errorf("Name = %q, want %q", food.Name, "Tokyo Food")
	}
	if food.PrimaryKeyword != "tokyo food" {
		t.Errorf("PrimaryKeyword = %q, want %q", food.PrimaryKeyword, "tokyo food")
	}
	wantSupporting := []string{"tokyo food markets", "Tokyo Food tours", "tokyo food halls", "tokyo food blog", "tokyo food delivery"}
	if len(food.SupportingKeywords) != len(wantSupporting) {
		t.Fatalf("SupportingKeywords = %v, want %v", food.SupportingKeywords, wantSupporting)
	}
	for i := range wantSupporting {
		if food.SupportingKeywords[i] != wantSupporting[i] {
			t.Errorf("SupportingKeywords[%d] = %q, want %q", i, food.SupportingKeywords[i], wantSupporting[i])
		}
	}
	if food.ContentPieces != 6 {
		t.Errorf("ContentPieces = %d, want 6", food.ContentPieces)
	}
	// (5000 + 800 + 400 + 300 + 250 + 200) * 0.11
	if food.PotentialTraffic != 550+88+44+33+28+22 {
		t.Errorf("PotentialTraffic = %d, want %d", food.PotentialTraffic, 550+88+44+33+28+22)
	}

	if got[1].PrimaryKeyword != "kyoto temples" {
		t.Errorf("second cluster primary = %q, want kyoto temples", got[1].PrimaryKeyword)
	}
}

func TestBuild_SummaryPriority(t *testing.T) {
	tests := []struct {
		name   string
		volume int64
		want   string
	}{
		{"high", 200000, PriorityHigh},
		{"medium", 100000, PriorityMedium},
		{"low", 50000, PriorityLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := []models.KeywordRecord{rec("gap keyword", tt.volume, models.NotRankingPosition, "")}
			report := Build(records, DefaultLimits())
			if report.Summary.Priority != tt.want {
				t.Errorf("Priority = %q (potential %d), want %q", report.Summary.Priority, report.Summary.PotentialTraffic, tt.want)
			}
			if report.Summary.NewContentProposals != 1 {
				t.Errorf("NewContentProposals = %d, want 1", report.Summary.NewContentProposals)
			}
		})
	}
}

func TestBuild_Empty(t *testing.T) {
	report := Build(nil, DefaultLimits())
	if report.Summary.PotentialTraffic != 0 || report.Summary.Priority != PriorityLow {
		t.Errorf("Summary = %+v, want zero potential and Low priority", report.Summary)
	}
	if report.NewContent == nil || report.Improvements == nil || report.TopicClusters == nil {
		t.Error("Build(nil) lists should be empty, not nil")
	}
}
