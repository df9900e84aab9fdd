package domain

import "time"

// StatsAction tells subscribers which direction a snapshot moved the aggregates
type StatsAction string

const (
	// StatsActionApplied means a NEW snapshot's deltas were folded in
	StatsActionApplied StatsAction = "applied"
	// StatsActionRetracted means a DEPRECATED snapshot's deltas were compensated
	StatsActionRetracted StatsAction = "retracted"
)

// StatsEvent is the notification published after a queue entry has been
// processed and its aggregate changes committed
type StatsEvent struct {
	// EventID is a ULID, unique and time sortable
	EventID     string      `json:"event_id"`
	PayloadType PayloadType `json:"payload_type"`
	// SnapshotID is the id of the snapshotted game or game event
	SnapshotID int64       `json:"snapshot_id"`
	Action     StatsAction `json:"action"`
	Timestamp  time.Time   `json:"timestamp"`
}
