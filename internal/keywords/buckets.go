package keywords

import "seodash/internal/models"

// Bucket names.
const (
	BucketTop3       = "top3"
	BucketTop10      = "top10"
	BucketTop20      = "top20"
	BucketTop50      = "top50"
	BucketNotRanking = "notRanking"
)

// Bucket is one position cohort.
type Bucket struct {
	Name         string  `json:"name"`
	Count        int     `json:"count"`
	TotalTraffic int64   `json:"totalTraffic"`
	TotalVolume  int64   `json:"totalVolume"`
	Percentage   float64 `json:"percentage"`
}

// Distribution partitions records into position cohorts.
type Distribution struct {
	Top3       Bucket `json:"top3"`
	Top10      Bucket `json:"top10"`
	Top20      Bucket `json:"top20"`
	Top50      Bucket `json:"top50"`
	NotRanking Bucket `json:"notRanking"`
}

// Buckets returns the cohorts in rank order.
func (d *Distribution) Buckets() []Bucket {
	return []Bucket{d.Top3, d.Top10, d.Top20, d.Top50, d.NotRanking}
}

// BucketFor returns the cohort name for a position.
func BucketFor(position int) string {
	switch {
	case position >= 1 && position <= 3:
		return BucketTop3
	case position >= 4 && position <= 10:
		return BucketTop10
	case position >= 11 && position <= 20:
		return BucketTop20
	case position >= 21 && position <= 50:
		return BucketTop50
	default:
		return BucketNotRanking
	}
}

func (d *Distribution) bucket(name string) *Bucket {
	switch name {
	case BucketTop3:
		return &d.Top3
	case BucketTop10:
		return &d.Top10
	case BucketTop20:
		return &d.Top20
	case BucketTop50:
		return &d.Top50
	default:
		return &d.NotRanking
	}
}

// BucketByPosition assigns every record to exactly one cohort and sums its
// traffic and volume.
func BucketByPosition(records []models.KeywordRecord) Distribution {
	d := Distribution{
		Top3:       Bucket{Name: BucketTop3},
		Top10:      Bucket{Name: BucketTop10},
		Top20:      Bucket{Name: BucketTop20},
		Top50:      Bucket{Name: BucketTop50},
		NotRanking: Bucket{Name: BucketNotRanking},
	}
	for i := range records {
		b := d.bucket(BucketFor(records[i].CurrentPosition))
		b.Count++
		b.TotalTraffic += records[i].OrganicTraffic
		b.TotalVolume += records[i].Volume
	}
	if n := len(records); n > 0 {
		for _, name := range []string{BucketTop3, BucketTop10, BucketTop20, BucketTop50, BucketNotRanking} {
			b := d.bucket(name)
			b.Percentage = float64(b.Count) / float64(n) * 100
		}
	}
	return d
}
