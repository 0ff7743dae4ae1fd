package keywords

import (
	"testing"

	"seodash/internal/models"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		records []models.KeywordRecord
		want    Summary
		wantAvg *float64
	}{
		{
			name:    "empty",
			records: nil,
			want:    Summary{},
		},
		{
			name: "only unranked",
			records: []models.KeywordRecord{
				kw("a", 100, models.NotRankingPosition, 0),
				kw("b", 50, 140, 3),
			},
			want: Summary{TotalKeywords: 2, TotalVolume: 150, TotalTraffic: 3},
		},
		{
			name: "mixed",
			records: []models.KeywordRecord{
				kw("a", 100, 2, 40),
				kw("b", 300, 5, 10),
				kw("c", 20, models.NotRankingPosition, 0),
			},
			want:    Summary{TotalKeywords: 3, TotalVolume: 420, TotalTraffic: 50, RankedKeywords: 2},
			wantAvg: ptr(3.5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.records)
			gotAvg := got.AvgPosition
			got.AvgPosition = nil
			if got != tt.want {
				t.Errorf("Summarize() = %+v, want %+v", got, tt.want)
			}
			switch {
			case tt.wantAvg == nil && gotAvg != nil:
				t.Errorf("AvgPosition = %v, want nil", *gotAvg)
			case tt.wantAvg != nil && (gotAvg == nil || *gotAvg != *tt.wantAvg):
				t.Errorf("AvgPosition = %v, want %v", gotAvg, *tt.wantAvg)
			}
		})
	}
}

func TestSummarizeCompetitor(t *testing.T) {
	c := SummarizeCompetitor("rival.jp", "", []models.KeywordRecord{
		kw("a", 100, 4, 20),
		kw("b", 200, 8, 30),
	})

	if c.SiteName != "rival.jp" || c.DisplayName != "rival.jp" {
		t.Errorf("names = %q/%q, want rival.jp for both", c.SiteName, c.DisplayName)
	}
	if c.TotalKeywords != 2 || c.TotalVolume != 300 || c.TotalTraffic != 50 {
		t.Errorf("totals = %+v", c)
	}
	if c.AveragePosition == nil || *c.AveragePosition != 6 {
		t.Errorf("AveragePosition = %v, want 6", c.AveragePosition)
	}
}

func ptr[T any](v T) *T {
	return &v
}
