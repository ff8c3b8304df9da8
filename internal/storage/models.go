package storage

import (
	"encoding/json"
	"time"
)

// Run represents one stored report run
type Run struct {
	ID         string          `json:"id"`
	Trigger    string          `json:"trigger"`
	Account    string          `json:"account"`
	Total      int             `json:"total"`
	Urgent     int             `json:"urgent"`
	Drafts     int             `json:"drafts"`
	Categories json.RawMessage `json:"categories"`
	Sent       bool            `json:"sent"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Trigger values for a run.
const (
	TriggerCron = "cron"
	TriggerAPI  = "api"
	TriggerCLI  = "cli"
)

// RunStats represents aggregate run statistics
type RunStats struct {
	TotalRuns       int64 `json:"total_runs"`
	SentRuns        int64 `json:"sent_runs"`
	EmailsProcessed int64 `json:"emails_processed"`
}
