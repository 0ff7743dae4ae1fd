package models

import "time"

// CompetitorRecord is the aggregate view of one competitor site.
type CompetitorRecord struct {
	SiteName        string   `json:"site_name"`
	DisplayName     string   `json:"display_name"`
	TotalKeywords   int      `json:"total_keywords"`
	TotalTraffic    int64    `json:"total_traffic"`
	AveragePosition *float64 `json:"average_position"`
	TotalVolume     int64    `json:"total_volume"`
}

// Site is a row in the site catalogue. Exactly one site is the tracked one;
// every other site is a competitor.
type Site struct {
	Name        string    `json:"site_name"`
	DisplayName string    `json:"display_name"`
	Tracked     bool      `json:"tracked"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
