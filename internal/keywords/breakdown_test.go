package keywords

import (
	"testing"

	"seodash/internal/models"
)

func TestIntentBreakdown(t *testing.T) {
	a := kw("a", 100, 2, 0)
	a.Informational, a.Local = true, true
	b := kw("b", 300, 6, 0)
	b.Informational = true
	c := kw("c", 50, models.NotRankingPosition, 0)
	c.Local = true

	got := IntentBreakdown([]models.KeywordRecord{a, b, c})
	if len(got) != len(Intents) {
		t.Fatalf("len = %d, want %d", len(got), len(Intents))
	}

	byIntent := make(map[Intent]IntentStat)
	for _, s := range got {
		byIntent[s.Intent] = s
	}

	info := byIntent[IntentInformational]
	if info.Count != 2 || info.TotalVolume != 400 || info.AvgPosition == nil || *info.AvgPosition != 4 {
		t.Errorf("informational = %+v", info)
	}
	local := byIntent[IntentLocal]
	if local.Count != 2 || local.AvgPosition == nil || *local.AvgPosition != 2 {
		t.Errorf("local = %+v", local)
	}
	if br := byIntent[IntentBranded]; br.Count != 0 || br.AvgPosition != nil {
		t.Errorf("branded = %+v, want empty with nil average", br)
	}
}

func TestLocationBreakdown(t *testing.T) {
	records := []models.KeywordRecord{
		{Location: "Tokyo", OrganicTraffic: 5},
		{Location: "Osaka", OrganicTraffic: 1},
		{Location: "Tokyo", OrganicTraffic: 7},
		{Location: "Kyoto", OrganicTraffic: 2},
	}

	got := LocationBreakdown(records)
	want := []LocationStat{
		{Location: "Tokyo", Count: 2, TotalTraffic: 12},
		{Location: "Kyoto", Count: 1, TotalTraffic: 2},
		{Location: "Osaka", Count: 1, TotalTraffic: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("LocationBreakdown() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("LocationBreakdown()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSERPFeatureBreakdown(t *testing.T) {
	records := []models.KeywordRecord{
		{SERPFeatures: "Sitelinks, People also ask", Volume: 100, CurrentPosition: 2, OrganicTraffic: 10},
		{SERPFeatures: "people also ask", Volume: 300, CurrentPosition: models.NotRankingPosition, OrganicTraffic: 0},
		{SERPFeatures: "", Volume: 900, CurrentPosition: 1},
	}

	got := SERPFeatureBreakdown(records, []string{"People also ask", "Shopping"})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}

	paa := got[0]
	if paa.Count != 2 || paa.AvgVolume != 200 || paa.TotalTraffic != 10 {
		t.Errorf("people also ask = %+v", paa)
	}
	if paa.AvgPosition == nil || *paa.AvgPosition != 2 {
		t.Errorf("AvgPosition = %v, want 2 (ranked only)", paa.AvgPosition)
	}
	if shop := got[1]; shop.Count != 0 || shop.Percentage != 0 || shop.AvgPosition != nil {
		t.Errorf("shopping = %+v, want empty", shop)
	}

	if n := len(SERPFeatureBreakdown(records, nil)); n != len(DefaultSERPFeatures) {
		t.Errorf("default features: len = %d, want %d", n, len(DefaultSERPFeatures))
	}
}

func TestFindContentGaps(t *testing.T) {
	records := []models.KeywordRecord{
		kw("high unranked", 5000, models.NotRankingPosition, 0),
		kw("high deep", 800, 30, 0),
		kw("high ranked", 800, 3, 0),
		kw("medium", 300, 18, 0),
		kw("medium too deep", 300, 31, 0),
		kw("low", 20, 40, 0),
	}

	got := FindContentGaps(records)
	if want := []string{"high unranked", "high deep"}; !equalStrings(keywordsOf(got.HighVolumeGaps), want) {
		t.Errorf("HighVolumeGaps = %v, want %v", keywordsOf(got.HighVolumeGaps), want)
	}
	if want := []string{"medium"}; !equalStrings(keywordsOf(got.MediumVolumeOpportunities), want) {
		t.Errorf("MediumVolumeOpportunities = %v, want %v", keywordsOf(got.MediumVolumeOpportunities), want)
	}
}

func TestFindContentGaps_Capped(t *testing.T) {
	var records []models.KeywordRecord
	for i := range 40 {
		records = append(records, kw("k", int64(1000+i), 60, 0))
	}
	got := FindContentGaps(records)
	if len(got.HighVolumeGaps) != 15 {
		t.Fatalf("len = %d, want 15", len(got.HighVolumeGaps))
	}
	if got.HighVolumeGaps[0].Volume != 1039 {
		t.Errorf("first volume = %d, want 1039", got.HighVolumeGaps[0].Volume)
	}
}

func TestHighPerformers(t *testing.T) {
	records := []models.KeywordRecord{
		kw("a", 500, 3, 100),
		kw("b", 90, 1, 900),
		kw("c", 200, 10, 300),
		kw("d", 900, 11, 1000),
	}
	got := HighPerformers(records, 5)
	if want := []string{"c", "a"}; !equalStrings(keywordsOf(got), want) {
		t.Errorf("HighPerformers() = %v, want %v", keywordsOf(got), want)
	}
	if got := HighPerformers(records, 1); len(got) != 1 {
		t.Errorf("HighPerformers(n=1) len = %d", len(got))
	}
}

func TestImprovementOpportunities(t *testing.T) {
	records := []models.KeywordRecord{
		kw("a", 60, 11, 0),
		kw("b", 40, 15, 0),
		kw("c", 600, 20, 0),
		kw("d", 900, 21, 0),
		kw("e", 900, 10, 0),
	}
	got := ImprovementOpportunities(records, 10)
	if want := []string{"c", "a"}; !equalStrings(keywordsOf(got), want) {
		t.Errorf("ImprovementOpportunities() = %v, want %v", keywordsOf(got), want)
	}
}
