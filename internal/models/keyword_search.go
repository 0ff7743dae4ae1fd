package models

import "time"

// Keyword search outcome constants
const (
	OutcomeResults  = "results"
	OutcomeEmpty    = "empty"
	OutcomeRejected = "rejected"
)

// KeywordSearch is a per-intent hit count of keyword searches by outcome.
type KeywordSearch struct {
	Intent     string
	Outcome    string
	Count      int64
	LastSeenAt time.Time
}
