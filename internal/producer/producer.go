// Package producer turns game and event lifecycle transitions into analysis
// queue entries. Edits reconcile by compensation: a DEPRECATED entry carrying
// the previously applied snapshot is enqueued before the NEW entry carrying the
// current one, in a single transaction, so the aggregates never observe a state
// where an old snapshot is retracted without its replacement pending.
package producer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rinkstats/stats-analyzer/internal/adapter"
	"github.com/rinkstats/stats-analyzer/internal/domain"
	"github.com/rinkstats/stats-analyzer/internal/snapshot"
	"github.com/rinkstats/stats-analyzer/internal/store"
	"github.com/rinkstats/stats-analyzer/internal/store/schema"
)

// Producer enqueues snapshot entries for the analyzer to consume
type Producer struct {
	store store.Store
	clock adapter.Clock
	json  adapter.JSON
}

// NewProducer creates a new queue producer
func NewProducer(st store.Store, clock adapter.Clock, jsonAdapter adapter.JSON) *Producer {
	return &Producer{
		store: st,
		clock: clock,
		json:  jsonAdapter,
	}
}

// GameFinished enqueues a NEW snapshot of a game that just reached the finished
// state. The returned payload is what the caller must retain and hand back on a
// later edit or reopen, since compensation retracts exactly what was applied.
func (p *Producer) GameFinished(ctx context.Context, game *schema.Game, events []*schema.GameEvent) (*domain.GamePayload, error) {
	payload := snapshot.Game(game, events)

	entry, err := p.entry(schema.EntryStatusNew, payload)
	if err != nil {
		return nil, err
	}
	if err := p.store.Enqueue(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to enqueue game snapshot: %w", err)
	}
	return payload, nil
}

// GameEdited reconciles an edit to a finished game: the previously applied
// snapshot is retracted and the current state applied, enqueued in that order
// within one transaction
func (p *Producer) GameEdited(ctx context.Context, applied *domain.GamePayload, game *schema.Game, events []*schema.GameEvent) (*domain.GamePayload, error) {
	payload := snapshot.Game(game, events)

	deprecated, err := p.entry(schema.EntryStatusDeprecated, applied)
	if err != nil {
		return nil, err
	}
	replacement, err := p.entry(schema.EntryStatusNew, payload)
	if err != nil {
		return nil, err
	}
	if err := p.store.Enqueue(ctx, deprecated, replacement); err != nil {
		return nil, fmt.Errorf("failed to enqueue game edit: %w", err)
	}
	return payload, nil
}

// GameReopened retracts a finished game's applied snapshot without a
// replacement, returning its statistical footprint to zero. Also used when a
// finished game is deleted outright.
func (p *Producer) GameReopened(ctx context.Context, applied *domain.GamePayload) error {
	entry, err := p.entry(schema.EntryStatusDeprecated, applied)
	if err != nil {
		return err
	}
	if err := p.store.Enqueue(ctx, entry); err != nil {
		return fmt.Errorf("failed to enqueue game retraction: %w", err)
	}
	return nil
}

// EventCreated enqueues a NEW snapshot of a freshly recorded event
func (p *Producer) EventCreated(ctx context.Context, ev *schema.GameEvent, game *schema.Game) (*domain.GameEventPayload, error) {
	payload := snapshot.GameEvent(ev, game)

	entry, err := p.entry(schema.EntryStatusNew, payload)
	if err != nil {
		return nil, err
	}
	if err := p.store.Enqueue(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to enqueue event snapshot: %w", err)
	}
	return payload, nil
}

// EventEdited reconciles an edit to an event whose snapshot was already
// applied: retract the applied snapshot, apply the current one, in order
func (p *Producer) EventEdited(ctx context.Context, applied *domain.GameEventPayload, ev *schema.GameEvent, game *schema.Game) (*domain.GameEventPayload, error) {
	payload := snapshot.GameEvent(ev, game)

	deprecated, err := p.entry(schema.EntryStatusDeprecated, applied)
	if err != nil {
		return nil, err
	}
	replacement, err := p.entry(schema.EntryStatusNew, payload)
	if err != nil {
		return nil, err
	}
	if err := p.store.Enqueue(ctx, deprecated, replacement); err != nil {
		return nil, fmt.Errorf("failed to enqueue event edit: %w", err)
	}
	return payload, nil
}

// EventDeleted retracts a deleted event's applied snapshot
func (p *Producer) EventDeleted(ctx context.Context, applied *domain.GameEventPayload) error {
	entry, err := p.entry(schema.EntryStatusDeprecated, applied)
	if err != nil {
		return err
	}
	if err := p.store.Enqueue(ctx, entry); err != nil {
		return fmt.Errorf("failed to enqueue event retraction: %w", err)
	}
	return nil
}

// entry builds one queue entry around a marshaled payload
func (p *Producer) entry(status schema.EntryStatus, payload interface{}) (*schema.AnalysisQueueEntry, error) {
	data, err := p.json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	return &schema.AnalysisQueueEntry{
		ID:         uuid.New(),
		Status:     status,
		Payload:    data,
		EnqueuedAt: p.clock.Now(),
	}, nil
}
