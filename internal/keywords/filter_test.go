package keywords

import (
	"errors"
	"testing"

	"seodash/internal/models"
)

func kw(keyword string, volume int64, position int, traffic int64) models.KeywordRecord {
	return models.KeywordRecord{
		Keyword:         keyword,
		Volume:          volume,
		CurrentPosition: position,
		OrganicTraffic:  traffic,
	}
}

func keywordsOf(records []models.KeywordRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Keyword
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilter(t *testing.T) {
	tokyo := kw("tokyo events", 800, 15, 40)
	tokyo.Location = "Tokyo"
	tokyo.Informational = true

	osaka := kw("osaka food", 50, 4, 10)
	osaka.Location = "Osaka"
	osaka.Commercial = true

	unranked := kw("kyoto temples", 1200, models.NotRankingPosition, 0)
	unranked.Location = "Tokyo"
	unranked.Informational = true

	deep := kw("nara deer", 300, 150, 0)

	records := []models.KeywordRecord{tokyo, osaka, unranked, deep}

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"zero criteria keeps everything", Criteria{}, []string{"tokyo events", "osaka food", "kyoto temples", "nara deer"}},
		{"min volume", Criteria{MinVolume: 100}, []string{"tokyo events", "kyoto temples", "nara deer"}},
		{"max position excludes sentinel", Criteria{MaxPosition: 50}, []string{"tokyo events", "osaka food"}},
		{"sentinel never meets a large bound", Criteria{MaxPosition: 1000}, []string{"tokyo events", "osaka food", "nara deer"}},
		{"intent", Criteria{Intent: IntentInformational}, []string{"tokyo events", "kyoto temples"}},
		{"intent is case-insensitive", Criteria{Intent: "Commercial"}, []string{"osaka food"}},
		{"intent none", Criteria{Intent: IntentNone}, []string{"tokyo events", "osaka food", "kyoto temples", "nara deer"}},
		{"location", Criteria{Location: "Tokyo"}, []string{"tokyo events", "kyoto temples"}},
		{"location any", Criteria{Location: AnyLocation}, []string{"tokyo events", "osaka food", "kyoto temples", "nara deer"}},
		{"location is exact", Criteria{Location: "tokyo"}, []string{}},
		{"combined", Criteria{MinVolume: 100, MaxPosition: 50, Intent: IntentInformational, Location: "Tokyo"}, []string{"tokyo events"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Filter(records, tt.criteria)
			if err != nil {
				t.Fatalf("Filter() error = %v", err)
			}
			if !equalStrings(keywordsOf(got), tt.want) {
				t.Errorf("Filter() = %v, want %v", keywordsOf(got), tt.want)
			}
		})
	}
}

func TestFilter_Scenarios(t *testing.T) {
	got, _ := Filter([]models.KeywordRecord{kw("a", 800, 15, 0)}, Criteria{MinVolume: 100, MaxPosition: 50})
	if len(got) != 1 {
		t.Errorf("volume 800 position 15: got %d records, want 1", len(got))
	}

	got, _ = Filter([]models.KeywordRecord{kw("b", 50, 15, 0)}, Criteria{MinVolume: 100, MaxPosition: 50})
	if len(got) != 0 {
		t.Errorf("volume 50: got %d records, want 0", len(got))
	}
}

func TestFilter_Empty(t *testing.T) {
	got, err := Filter(nil, Criteria{MinVolume: 10})
	if err != nil {
		t.Fatalf("Filter(nil) error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Filter(nil) = %#v, want empty non-nil slice", got)
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	records := []models.KeywordRecord{kw("a", 10, 1, 0), kw("b", 200, 2, 0)}
	got, _ := Filter(records, Criteria{MinVolume: 100})
	got[0].Keyword = "changed"
	if records[1].Keyword != "b" {
		t.Error("Filter() result aliases the input")
	}
}

func TestFilter_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		wantErr  error
	}{
		{"unknown intent", Criteria{Intent: "shopping"}, ErrUnsupportedIntent},
		{"negative volume", Criteria{MinVolume: -1}, ErrInvalidCriteria},
		{"negative position", Criteria{MaxPosition: -5}, ErrInvalidCriteria},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Filter([]models.KeywordRecord{kw("a", 1, 1, 1)}, tt.criteria)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Filter() error = %v, want %v", err, tt.wantErr)
			}
			if !IsParamError(err) {
				t.Errorf("Filter() error %v is not a ParamError", err)
			}
		})
	}
}

func TestParseIntent(t *testing.T) {
	tests := []struct {
		in      string
		want    Intent
		wantErr bool
	}{
		{"", IntentNone, false},
		{"none", IntentNone, false},
		{"Informational", IntentInformational, false},
		{" local ", IntentLocal, false},
		{"BRANDED", IntentBranded, false},
		{"navigational", IntentNavigational, false},
		{"transactional", IntentTransactional, false},
		{"any", "", true},
		{"buy", "", true},
	}

	for _, tt := range tests {
		got, err := ParseIntent(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseIntent(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseIntent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParamError_Message(t *testing.T) {
	_, err := ParseIntent("buy")
	want := `unsupported parameter intent="buy": unsupported intent`
	if err == nil || err.Error() != want {
		t.Errorf("error = %v, want %q", err, want)
	}
}
