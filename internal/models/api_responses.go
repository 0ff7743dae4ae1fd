package models

import "time"

// KeywordPage is one page of the keyword listing.
type KeywordPage struct {
	Keywords []KeywordRecord `json:"keywords"`
	Total    int             `json:"total"`
	Limit    int             `json:"limit"`
	Offset   int             `json:"offset"`
}

// DatabaseStatus reports what the store currently holds.
type DatabaseStatus struct {
	Connected     bool           `json:"connected"`
	Sites         int            `json:"sites"`
	KeywordCounts map[string]int `json:"keyword_counts"`
	CheckedAt     time.Time      `json:"checked_at"`
}

// ImportResponse summarises a CSV import.
type ImportResponse struct {
	Site      string   `json:"site"`
	TotalRows int      `json:"total_rows"`
	Imported  int      `json:"imported"`
	Errors    []string `json:"errors,omitempty"`
}

// TokenResponse carries an issued API bearer token.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
