package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rinkstats/stats-analyzer/internal/domain"
	"github.com/rinkstats/stats-analyzer/internal/store/schema"
)

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// NextQueueEntry returns the oldest queue entry without an error annotation,
	// or nil when the queue is drained
	NextQueueEntry(ctx context.Context) (*schema.AnalysisQueueEntry, error)
	// MarkQueueEntryError annotates an entry with a terminal error; annotated
	// entries are excluded from NextQueueEntry until cleared by an operator
	MarkQueueEntryError(ctx context.Context, entryID uuid.UUID, message string) error
	// ApplyDeltas folds a set of signed counter mutations into the aggregate
	// rows and removes the queue entry, all inside one transaction. Missing
	// aggregate rows are created as zero rows before the delta is applied.
	ApplyDeltas(ctx context.Context, entryID uuid.UUID, deltas []domain.Delta) error
	// Enqueue appends entries to the queue tail in argument order within one
	// transaction, preserving the DEPRECATED-before-NEW reconcile ordering
	Enqueue(ctx context.Context, entries ...*schema.AnalysisQueueEntry) error
	// CountQueueErrors returns the number of entries stuck with an error
	CountQueueErrors(ctx context.Context) (int64, error)

	// BeginProcessStatus upserts the process status row and marks it RUNNING
	BeginProcessStatus(ctx context.Context, name string, now time.Time) error
	// FinishProcessStatus records the sweep outcome and finish time
	FinishProcessStatus(ctx context.Context, name string, state schema.ProcessState, now time.Time) error
	// AppendProcessLog prepends lines to the rolling process log, newest first,
	// trimming it to the retention cap
	AppendProcessLog(ctx context.Context, name string, lines ...string) error
}
