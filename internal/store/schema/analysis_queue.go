package schema

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EntryStatus is the processing direction of a queue entry
type EntryStatus int

const (
	// EntryStatusNew applies the payload's statistical effect (sign +1)
	EntryStatusNew EntryStatus = 1
	// EntryStatusDeprecated retracts the payload's statistical effect (sign -1)
	EntryStatusDeprecated EntryStatus = 2
)

// AnalysisQueueEntry represents the game_events_analysis_queue table - the durable
// FIFO queue of apply/retract instructions consumed by the analyzer
type AnalysisQueueEntry struct {
	// ID is the entry identifier exposed on the wire
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	// Seq is an auto-incrementing sequence number; FIFO order is by Seq so that
	// entries enqueued within one transaction keep their relative order even
	// with identical timestamps
	Seq int64 `gorm:"column:seq;not null;autoIncrement;uniqueIndex"`
	// Status selects apply (NEW) or retract (DEPRECATED)
	Status EntryStatus `gorm:"column:status;not null"`
	// Payload is the immutable game or game_event snapshot, tagged by its
	// "type" discriminator field
	Payload datatypes.JSON `gorm:"column:payload;not null;type:jsonb"`
	// EnqueuedAt is the timestamp the producer appended this entry
	EnqueuedAt time.Time `gorm:"column:enqueued_at;not null;default:now();type:timestamptz"`
	// ErrorMessage is set when processing failed terminally; entries with a
	// non-null error are excluded from processing until cleared by an operator
	ErrorMessage *string `gorm:"column:error_message;type:text"`
}

// TableName specifies the table name for the AnalysisQueueEntry model
func (AnalysisQueueEntry) TableName() string {
	return "game_events_analysis_queue"
}
