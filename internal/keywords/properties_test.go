package keywords

import (
	"testing"

	"seodash/internal/fixtures"
	"seodash/internal/models"
)

var propertyCriteria = []Criteria{
	{},
	{MinVolume: 1000},
	{MaxPosition: 10},
	{MaxPosition: 50, Intent: IntentCommercial},
	{Location: "Tokyo", Intent: IntentLocal},
	{MinVolume: 100, MaxPosition: 50, Location: "Japan"},
}

func TestProperty_FilterSubsetAndIdempotent(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		records := fixtures.NewFake(seed).Keywords("example.com", 300)

		for _, c := range propertyCriteria {
			once, err := Filter(records, c)
			if err != nil {
				t.Fatal(err)
			}

			// Ordered subsequence, each element satisfying the predicates.
			j := 0
			for i := range once {
				for j < len(records) && records[j].Keyword != once[i].Keyword {
					j++
				}
				if j == len(records) {
					t.Fatalf("seed %d %+v: result not an ordered subsequence", seed, c)
				}
				if !c.match(&once[i]) {
					t.Errorf("seed %d %+v: %q does not satisfy criteria", seed, c, once[i].Keyword)
				}
				j++
			}

			twice, _ := Filter(once, c)
			if !equalStrings(keywordsOf(once), keywordsOf(twice)) {
				t.Errorf("seed %d %+v: filter not idempotent", seed, c)
			}
		}
	}
}

func TestProperty_SortStableAndOrdered(t *testing.T) {
	metrics := []Metric{MetricTraffic, MetricVolume, MetricPosition, MetricDifficulty}

	for seed := int64(1); seed <= 10; seed++ {
		records := fixtures.NewFake(seed).Keywords("example.com", 300)
		index := make(map[string]int, len(records))
		for i, r := range records {
			index[r.Keyword] = i
		}

		for _, m := range metrics {
			sorted, err := Sort(records, m, Ascending)
			if err != nil {
				t.Fatal(err)
			}
			if len(sorted) != len(records) {
				t.Fatalf("len = %d, want %d", len(sorted), len(records))
			}
			key := SortKey{Metric: m, Direction: Ascending}
			for i := 1; i < len(sorted); i++ {
				c := key.compare(&sorted[i-1], &sorted[i])
				if c > 0 {
					t.Fatalf("seed %d %s: out of order at %d", seed, m, i)
				}
				if c == 0 && index[sorted[i-1].Keyword] > index[sorted[i].Keyword] {
					t.Fatalf("seed %d %s: unstable at %d", seed, m, i)
				}
			}
		}
	}
}

func TestProperty_BucketPartition(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		records := fixtures.NewFake(seed).Keywords("example.com", 250)
		d := BucketByPosition(records)

		var count int
		var traffic, want int64
		for _, b := range d.Buckets() {
			count += b.Count
			traffic += b.TotalTraffic
		}
		for _, r := range records {
			want += r.OrganicTraffic
		}
		if count != len(records) {
			t.Errorf("seed %d: bucket counts sum to %d, want %d", seed, count, len(records))
		}
		if traffic != want {
			t.Errorf("seed %d: bucket traffic sums to %d, want %d", seed, traffic, want)
		}
		if s := Summarize(records); s.TotalTraffic != want {
			t.Errorf("seed %d: Summarize().TotalTraffic = %d, want %d", seed, s.TotalTraffic, want)
		}
	}
}

func TestProperty_TopNMatchesSortThenTruncate(t *testing.T) {
	records := fixtures.NewFake(99).Keywords("example.com", 120)
	for _, m := range []Metric{MetricTraffic, MetricVolume, MetricPosition, MetricDifficulty} {
		sorted, _ := Sort(records, m, DefaultDirection(m))
		for _, n := range []int{0, 1, 10, 120, 500} {
			top, _ := TopN(records, n, m)
			want := sorted[:min(max(n, 0), len(sorted))]
			if !equalStrings(keywordsOf(top), keywordsOf(want)) {
				t.Errorf("TopN(%d, %s) differs from Sort then truncate", n, m)
			}
		}
	}
}

func TestProperty_ComparisonCoverage(t *testing.T) {
	fake := fixtures.NewFake(5)
	tracked := fake.Keywords("ours.jp", 100)
	competitor := append(fake.Keywords("rival.jp", 100), tracked[:20]...)

	got := CompareToCompetitor(tracked, competitor, nil)
	if len(got) != len(competitor) {
		t.Fatalf("len = %d, want %d", len(got), len(competitor))
	}

	present := make(map[string]bool)
	for _, r := range tracked {
		if r.IsRanked() {
			present[r.Keyword] = true
		}
	}
	for i, c := range got {
		if c.Keyword != competitor[i].Keyword {
			t.Fatalf("got[%d].Keyword = %q, want %q", i, c.Keyword, competitor[i].Keyword)
		}
		if !present[c.Keyword] {
			if c.Status != models.StatusNotRanking || c.TrackedPosition != models.NotRankingPosition {
				t.Errorf("%q: status %s position %d, want not_ranking at sentinel", c.Keyword, c.Status, c.TrackedPosition)
			}
		}
		if c.OpportunityScore < 0 || c.OpportunityScore > 100 {
			t.Errorf("%q: score %v out of range", c.Keyword, c.OpportunityScore)
		}
	}
}
