package analyzer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/rinkstats/stats-analyzer/internal/adapter"
	"github.com/rinkstats/stats-analyzer/internal/domain"
	"github.com/rinkstats/stats-analyzer/internal/logger"
	"github.com/rinkstats/stats-analyzer/internal/messaging"
	"github.com/rinkstats/stats-analyzer/internal/store"
	"github.com/rinkstats/stats-analyzer/internal/store/schema"
)

const (
	// DEFAULT_SWEEP_INTERVAL is the time to sleep between sweep cycles
	DEFAULT_SWEEP_INTERVAL = 3 * time.Second

	// processLogTimeFormat matches the legacy rolling-log timestamp layout
	processLogTimeFormat = "2006-01-02 15:04:05"
)

// QueueAnalyzerConfig holds configuration for the queue analyzer
type QueueAnalyzerConfig struct {
	SweepInterval time.Duration // Time to sleep between sweep cycles
}

// queueAnalyzer implements the Sweeper interface for the analysis queue. Each
// sweep drains the queue head to tail, one entry per transaction, folding every
// payload's signed deltas into the aggregate tables.
type queueAnalyzer struct {
	config    *QueueAnalyzerConfig
	store     store.Store
	clock     adapter.Clock
	publisher messaging.Publisher // optional, may be nil
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewQueueAnalyzer creates a new analysis queue sweeper. The publisher is
// optional; when nil, processed entries produce no broker notifications.
func NewQueueAnalyzer(
	config *QueueAnalyzerConfig,
	st store.Store,
	clock adapter.Clock,
	publisher messaging.Publisher,
) Sweeper {
	if config.SweepInterval <= 0 {
		config.SweepInterval = DEFAULT_SWEEP_INTERVAL
	}
	return &queueAnalyzer{
		config:    config,
		store:     st,
		clock:     clock,
		publisher: publisher,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (a *queueAnalyzer) Name() string {
	return "game-events-analyzer"
}

// Start begins the sweeper's main loop - drains the queue, sleeps, repeats
func (a *queueAnalyzer) Start(ctx context.Context) error {
	if !a.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		a.running.Store(false)
		close(a.stoppedCh) // Signal that we've stopped
	}()

	logger.InfoCtx(ctx, "Starting game events analyzer",
		zap.Duration("sweep_interval", a.config.SweepInterval),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Game events analyzer stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-a.stopChan:
			logger.InfoCtx(ctx, "Game events analyzer stop requested")
			return nil
		default:
			if err := a.runSweep(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
			}

			// Sleep between sweeps; context-aware so we can be interrupted
			if !a.sleep(ctx, a.config.SweepInterval) {
				continue // Loop re-checks ctx/stop and exits
			}
		}
	}
}

// Stop gracefully stops the sweeper with timeout support
func (a *queueAnalyzer) Stop(ctx context.Context) error {
	if !a.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping game events analyzer")

	close(a.stopChan)

	select {
	case <-a.stoppedCh:
		logger.InfoCtx(ctx, "Game events analyzer stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Game events analyzer stop interrupted by context timeout")
		return ctx.Err()
	}
}

// sleep sleeps for the given duration but can be interrupted by context cancellation
// Returns true if sleep completed normally, false if interrupted by context
func (a *queueAnalyzer) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-a.clock.After(duration):
		return true // Sleep completed
	case <-ctx.Done():
		return false // Interrupted by context cancellation
	case <-a.stopChan:
		return false // Interrupted by stop signal
	}
}

// runSweep drains the queue head to tail. Validation failures park the entry
// and the sweep moves on; any other failure aborts the sweep, leaves the entry
// in place and marks the process status ERROR so the next tick retries it.
func (a *queueAnalyzer) runSweep(ctx context.Context) error {
	startTime := a.clock.Now()

	if err := a.store.BeginProcessStatus(ctx, schema.ProcessStatusName, startTime); err != nil {
		return fmt.Errorf("failed to mark process status running: %w", err)
	}

	var processed, parked int
	var sweepErr error

	for {
		select {
		case <-ctx.Done():
			sweepErr = ctx.Err()
		case <-a.stopChan:
			sweepErr = context.Canceled
		default:
		}
		if sweepErr != nil {
			break
		}

		entry, err := a.store.NextQueueEntry(ctx)
		if err != nil {
			sweepErr = fmt.Errorf("failed to fetch next queue entry: %w", err)
			break
		}
		if entry == nil {
			break // Queue drained
		}

		if err := a.processEntry(ctx, entry); err != nil {
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				// The payload can never be applied: park the entry with the
				// error text and keep sweeping
				if markErr := a.store.MarkQueueEntryError(ctx, entry.ID, ve.Message); markErr != nil {
					sweepErr = fmt.Errorf("failed to park queue entry %s: %w", entry.ID, markErr)
					break
				}
				a.appendProcessLog(ctx, ve.Message)
				logger.WarnCtx(ctx, "Parked unprocessable queue entry",
					zap.String("entry_id", entry.ID.String()),
					zap.String("error_message", ve.Message),
				)
				parked++
				continue
			}

			sweepErr = fmt.Errorf("failed to process queue entry %s: %w", entry.ID, err)
			break
		}
		processed++
	}

	// A shutdown mid-sweep is not a failure; the next start resumes the queue
	finishState := schema.ProcessStateOK
	if sweepErr != nil && !errors.Is(sweepErr, context.Canceled) {
		finishState = schema.ProcessStateError
		a.appendProcessLog(ctx, fmt.Sprintf("ERROR: %v", sweepErr))
	}

	if err := a.store.FinishProcessStatus(ctx, schema.ProcessStatusName, finishState, a.clock.Now()); err != nil {
		if sweepErr == nil {
			sweepErr = fmt.Errorf("failed to finish process status: %w", err)
		} else {
			logger.ErrorCtx(ctx, err)
		}
	}

	if processed > 0 || parked > 0 {
		logger.InfoCtx(ctx, "Sweep completed",
			zap.Duration("duration", a.clock.Since(startTime)),
			zap.Int("processed", processed),
			zap.Int("parked", parked),
			zap.String("state", string(finishState)),
		)
	}

	return sweepErr
}

// processEntry computes one entry's signed deltas and commits them atomically
// together with the entry's deletion
func (a *queueAnalyzer) processEntry(ctx context.Context, entry *schema.AnalysisQueueEntry) error {
	var sign int64
	switch entry.Status {
	case schema.EntryStatusNew:
		sign = 1
	case schema.EntryStatusDeprecated:
		sign = -1
	default:
		return domain.UnknownStatusError(entry.ID.String(), int(entry.Status))
	}

	payload, err := domain.ParsePayload(entry.Payload)
	if err != nil {
		return err
	}

	var deltas []domain.Delta
	if payload.Game != nil {
		deltas, err = gameDeltas(payload.Game, sign)
	} else {
		deltas, err = eventDeltas(payload.GameEvent, sign)
	}
	if err != nil {
		return err
	}

	if err := a.store.ApplyDeltas(ctx, entry.ID, deltas); err != nil {
		return fmt.Errorf("failed to apply deltas: %w", err)
	}

	statusStr := "Applied"
	action := domain.StatsActionApplied
	if sign < 0 {
		statusStr = "Deleted"
		action = domain.StatsActionRetracted
	}
	a.appendProcessLog(ctx, fmt.Sprintf("INFO: %s %s %d.", statusStr, payload.PayloadType(), payload.SnapshotID()))

	a.publishStatsEvent(ctx, payload, action)

	return nil
}

// appendProcessLog adds a timestamped line to the operator-facing rolling log.
// Log failures never fail the sweep.
func (a *queueAnalyzer) appendProcessLog(ctx context.Context, message string) {
	line := a.clock.Now().UTC().Format(processLogTimeFormat) + " - " + message
	if err := a.store.AppendProcessLog(ctx, schema.ProcessStatusName, line); err != nil {
		logger.WarnCtx(ctx, "Failed to append process log",
			zap.Error(err),
			zap.String("line", line),
		)
	}
}

// publishStatsEvent notifies subscribers that a snapshot was folded in. Best
// effort: the aggregates are already committed, so a publish failure only logs.
func (a *queueAnalyzer) publishStatsEvent(ctx context.Context, payload *domain.Payload, action domain.StatsAction) {
	if a.publisher == nil {
		return
	}

	now := a.clock.Now()
	event := &domain.StatsEvent{
		EventID:     ulid.MustNewDefault(now).String(),
		PayloadType: payload.PayloadType(),
		SnapshotID:  payload.SnapshotID(),
		Action:      action,
		Timestamp:   now,
	}

	if err := a.publisher.PublishStatsEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish stats event",
			zap.Error(err),
			zap.String("event_id", event.EventID),
			zap.String("payload_type", string(event.PayloadType)),
			zap.Int64("snapshot_id", event.SnapshotID),
		)
	}
}
