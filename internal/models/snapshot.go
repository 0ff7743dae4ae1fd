package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Snapshot kinds.
const (
	SnapshotSummary     = "summary"
	SnapshotPerformance = "performance"
	SnapshotContentGaps = "content_gaps"
)

// Snapshot is a persisted analysis result for a site.
type Snapshot struct {
	ID        uuid.UUID       `json:"id"`
	Site      string          `json:"site"`
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}
