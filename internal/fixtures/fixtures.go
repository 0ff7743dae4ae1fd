// Package fixtures generates realistic keyword collections for tests and
// development seeding.
package fixtures

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"seodash/internal/models"
)

// Provider supplies keyword collections for a site.
type Provider interface {
	Keywords(site string, n int) []models.KeywordRecord
}

// Fake generates pseudo-random keywords from a seeded faker, so the same
// seed always yields the same collection.
type Fake struct {
	faker *gofakeit.Faker
}

// NewFake returns a generator seeded with seed.
func NewFake(seed int64) *Fake {
	return &Fake{faker: gofakeit.New(seed)}
}

var (
	locations    = []string{"Japan", "Tokyo", "Osaka", "United States", "United Kingdom", ""}
	serpFeatures = []string{"Sitelinks", "People also ask", "Local pack", "Thumbnail", "Video preview", "Knowledge panel", "AI Overview", "Shopping"}
)

// Keywords returns n keywords for site. Keyword strings are unique within
// the collection.
func (f *Fake) Keywords(site string, n int) []models.KeywordRecord {
	out := make([]models.KeywordRecord, 0, n)
	for i := range n {
		k := f.Keyword(site)
		k.Keyword = fmt.Sprintf("%s %d", k.Keyword, i)
		out = append(out, k)
	}
	return out
}

// Keyword returns a single keyword for site.
func (f *Fake) Keyword(site string) models.KeywordRecord {
	fk := f.faker
	position := f.position()
	var traffic int64
	volume := int64(fk.Number(0, 50000))
	if position <= 20 {
		traffic = volume * int64(fk.Number(1, 30)) / 100
	}
	return models.KeywordRecord{
		Site:              site,
		Keyword:           fmt.Sprintf("%s %s", fk.Adjective(), fk.Noun()),
		CountryCode:       "jp",
		Location:          fk.RandomString(locations),
		SERPFeatures:      fk.RandomString(serpFeatures),
		Volume:            volume,
		KeywordDifficulty: float64(fk.Number(0, 100)),
		CPC:               fk.Float64Range(0, 5),
		OrganicTraffic:    traffic,
		CurrentPosition:   position,
		CurrentURL:        fk.URL(),
		Informational:     fk.Bool(),
		Commercial:        fk.Bool(),
		Transactional:     fk.Bool(),
		Navigational:      fk.Bool(),
		Branded:           fk.Number(0, 9) == 0,
		Local:             fk.Bool(),
		UpdatedAt:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

// position is ranked most of the time, with a tail of sentinels and
// positions past the rank ceiling.
func (f *Fake) position() int {
	switch roll := f.faker.Number(1, 100); {
	case roll <= 10:
		return models.NotRankingPosition
	case roll <= 15:
		return f.faker.Number(models.RankCeiling+1, 150)
	default:
		return f.faker.Number(1, models.RankCeiling)
	}
}

// Static serves fixed collections keyed by site.
type Static map[string][]models.KeywordRecord

// Keywords returns up to n records for site.
func (s Static) Keywords(site string, n int) []models.KeywordRecord {
	recs := s[site]
	if n < len(recs) {
		recs = recs[:n]
	}
	out := make([]models.KeywordRecord, len(recs))
	copy(out, recs)
	return out
}
