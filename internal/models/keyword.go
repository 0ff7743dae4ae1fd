package models

import "time"

// Position sentinels.
const (
	// NotRankingPosition marks a keyword the site does not rank for.
	NotRankingPosition = 999
	// RankCeiling is the deepest position still counted as ranked.
	RankCeiling = 100
)

// KeywordRecord is one observed keyword's performance snapshot for a site.
type KeywordRecord struct {
	Site              string    `json:"site,omitempty"`
	Keyword           string    `json:"keyword"`
	CountryCode       string    `json:"country_code"`
	Location          string    `json:"location"`
	Entities          string    `json:"entities,omitempty"`
	SERPFeatures      string    `json:"serp_features,omitempty"`
	Volume            int64     `json:"volume"`
	KeywordDifficulty float64   `json:"keyword_difficulty"`
	CPC               float64   `json:"cpc"`
	OrganicTraffic    int64     `json:"organic_traffic"`
	PaidTraffic       int64     `json:"paid_traffic"`
	CurrentPosition   int       `json:"current_position"`
	CurrentURL        string    `json:"current_url"`
	Informational     bool      `json:"informational"`
	Commercial        bool      `json:"commercial"`
	Transactional     bool      `json:"transactional"`
	Navigational      bool      `json:"navigational"`
	Branded           bool      `json:"branded"`
	Local             bool      `json:"local"`
	UpdatedAt         time.Time `json:"updated_at,omitzero"`
}

// IsRanked reports whether the record holds a real position within the rank ceiling.
func (k *KeywordRecord) IsRanked() bool {
	return k.CurrentPosition >= 1 && k.CurrentPosition <= RankCeiling
}

// EffectivePosition returns the position with anything unranked folded into the sentinel.
func (k *KeywordRecord) EffectivePosition() int {
	if !k.IsRanked() {
		return NotRankingPosition
	}
	return k.CurrentPosition
}
