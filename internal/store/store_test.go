package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rinkstats/stats-analyzer/internal/domain"
	"github.com/rinkstats/stats-analyzer/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

// buildQueueEntry creates a queue entry carrying a minimal turnover snapshot
func buildQueueEntry(t *testing.T, status schema.EntryStatus, eventID int64) *schema.AnalysisQueueEntry {
	playerID := int64(7)
	payload, err := json.Marshal(&domain.GameEventPayload{
		Type:         domain.PayloadTypeGameEvent,
		ID:           eventID,
		GameID:       10,
		GameSeasonID: 3,
		EventName:    domain.EventTurnover,
		Period:       1,
		TeamID:       100,
		Team2ID:      200,
		PlayerID:     &playerID,
	})
	require.NoError(t, err)

	return &schema.AnalysisQueueEntry{
		ID:         uuid.New(),
		Status:     status,
		Payload:    payload,
		EnqueuedAt: time.Now().UTC(),
	}
}

// storeDB unwraps the gorm handle for direct assertions on aggregate rows
func storeDB(t *testing.T, st Store) *gorm.DB {
	pg, ok := st.(*pgStore)
	require.True(t, ok)
	return pg.db
}

// =============================================================================
// Suite
// =============================================================================

// RunStoreTests runs the full store test suite against an implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(t *testing.T, st Store)
	}{
		{"QueueFIFOOrder", testQueueFIFOOrder},
		{"QueueEmptyReturnsNil", testQueueEmptyReturnsNil},
		{"QueueSkipsParkedEntries", testQueueSkipsParkedEntries},
		{"EnqueuePreservesArgumentOrder", testEnqueuePreservesArgumentOrder},
		{"ApplyDeltasCreatesZeroRow", testApplyDeltasCreatesZeroRow},
		{"ApplyDeltasAccumulates", testApplyDeltasAccumulates},
		{"ApplyDeltasRetractsToZero", testApplyDeltasRetractsToZero},
		{"ApplyDeltasRemovesEntry", testApplyDeltasRemovesEntry},
		{"ApplyDeltasRejectsUnknownCounter", testApplyDeltasRejectsUnknownCounter},
		{"ApplyDeltasRollsBackAtomically", testApplyDeltasRollsBackAtomically},
		{"CountQueueErrors", testCountQueueErrors},
		{"ProcessStatusLifecycle", testProcessStatusLifecycle},
		{"ProcessLogNewestFirst", testProcessLogNewestFirst},
		{"ProcessLogTrimsToCap", testProcessLogTrimsToCap},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := initDB(t)
			defer cleanupDB(t)
			tc.fn(t, st)
		})
	}
}

func testQueueFIFOOrder(t *testing.T, st Store) {
	ctx := context.Background()

	first := buildQueueEntry(t, schema.EntryStatusNew, 1)
	second := buildQueueEntry(t, schema.EntryStatusNew, 2)
	require.NoError(t, st.Enqueue(ctx, first))
	require.NoError(t, st.Enqueue(ctx, second))

	next, err := st.NextQueueEntry(ctx)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, first.ID, next.ID)

	// Consuming the head surfaces the next entry
	require.NoError(t, st.ApplyDeltas(ctx, first.ID, nil))

	next, err = st.NextQueueEntry(ctx)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, second.ID, next.ID)
}

func testQueueEmptyReturnsNil(t *testing.T, st Store) {
	ctx := context.Background()

	next, err := st.NextQueueEntry(ctx)
	require.NoError(t, err)
	assert.Nil(t, next)
}

func testQueueSkipsParkedEntries(t *testing.T, st Store) {
	ctx := context.Background()

	parked := buildQueueEntry(t, schema.EntryStatusNew, 1)
	live := buildQueueEntry(t, schema.EntryStatusNew, 2)
	require.NoError(t, st.Enqueue(ctx, parked, live))

	require.NoError(t, st.MarkQueueEntryError(ctx, parked.ID, "ERROR: No player specified."))

	next, err := st.NextQueueEntry(ctx)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, live.ID, next.ID)

	// The parked entry keeps its error annotation
	var reloaded schema.AnalysisQueueEntry
	require.NoError(t, storeDB(t, st).First(&reloaded, "id = ?", parked.ID).Error)
	require.NotNil(t, reloaded.ErrorMessage)
	assert.Equal(t, "ERROR: No player specified.", *reloaded.ErrorMessage)
}

// testEnqueuePreservesArgumentOrder enqueues a retraction and its replacement in
// one call and checks the retraction is consumed first
func testEnqueuePreservesArgumentOrder(t *testing.T, st Store) {
	ctx := context.Background()

	deprecated := buildQueueEntry(t, schema.EntryStatusDeprecated, 1)
	replacement := buildQueueEntry(t, schema.EntryStatusNew, 1)
	require.NoError(t, st.Enqueue(ctx, deprecated, replacement))

	next, err := st.NextQueueEntry(ctx)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, deprecated.ID, next.ID)
	assert.Equal(t, schema.EntryStatusDeprecated, next.Status)
	assert.Less(t, next.Seq, replacement.Seq)
}

func testApplyDeltasCreatesZeroRow(t *testing.T, st Store) {
	ctx := context.Background()

	entry := buildQueueEntry(t, schema.EntryStatusNew, 1)
	require.NoError(t, st.Enqueue(ctx, entry))

	deltas := []domain.Delta{
		{Key: domain.PlayerSeasonKey(7, 3), Counter: domain.CounterTurnovers, Amount: 1},
	}
	require.NoError(t, st.ApplyDeltas(ctx, entry.ID, deltas))

	var row schema.PlayerSeason
	require.NoError(t, storeDB(t, st).First(&row, "season_id = ? AND player_id = ?", 3, 7).Error)
	assert.Equal(t, int64(1), row.Turnovers)
	// Untouched counters stay at zero
	assert.Zero(t, row.Goals)
	assert.Zero(t, row.GamesPlayed)
}

func testApplyDeltasAccumulates(t *testing.T, st Store) {
	ctx := context.Background()

	first := buildQueueEntry(t, schema.EntryStatusNew, 1)
	second := buildQueueEntry(t, schema.EntryStatusNew, 2)
	require.NoError(t, st.Enqueue(ctx, first, second))

	deltas := []domain.Delta{
		{Key: domain.GoalieSeasonKey(31, 3), Counter: domain.CounterSaves, Amount: 1},
		{Key: domain.GoalieSeasonKey(31, 3), Counter: domain.CounterShotsOnGoal, Amount: 1},
	}
	require.NoError(t, st.ApplyDeltas(ctx, first.ID, deltas))
	require.NoError(t, st.ApplyDeltas(ctx, second.ID, deltas))

	var row schema.GoalieSeason
	require.NoError(t, storeDB(t, st).First(&row, "season_id = ? AND goalie_id = ?", 3, 31).Error)
	assert.Equal(t, int64(2), row.Saves)
	assert.Equal(t, int64(2), row.ShotsOnGoal)
}

func testApplyDeltasRetractsToZero(t *testing.T, st Store) {
	ctx := context.Background()

	applied := buildQueueEntry(t, schema.EntryStatusNew, 1)
	retracted := buildQueueEntry(t, schema.EntryStatusDeprecated, 1)
	require.NoError(t, st.Enqueue(ctx, applied, retracted))

	require.NoError(t, st.ApplyDeltas(ctx, applied.ID, []domain.Delta{
		{Key: domain.TeamSeasonKey(100, 3), Counter: domain.CounterWins, Amount: 1},
		{Key: domain.TeamSeasonKey(100, 3), Counter: domain.CounterGoalsFor, Amount: 3},
	}))
	require.NoError(t, st.ApplyDeltas(ctx, retracted.ID, []domain.Delta{
		{Key: domain.TeamSeasonKey(100, 3), Counter: domain.CounterWins, Amount: -1},
		{Key: domain.TeamSeasonKey(100, 3), Counter: domain.CounterGoalsFor, Amount: -3},
	}))

	var row schema.TeamSeason
	require.NoError(t, storeDB(t, st).First(&row, "season_id = ? AND team_id = ?", 3, 100).Error)
	// Row survives retraction as a zero row
	assert.Zero(t, row.Wins)
	assert.Zero(t, row.GoalsFor)
}

func testApplyDeltasRemovesEntry(t *testing.T, st Store) {
	ctx := context.Background()

	entry := buildQueueEntry(t, schema.EntryStatusNew, 1)
	require.NoError(t, st.Enqueue(ctx, entry))

	require.NoError(t, st.ApplyDeltas(ctx, entry.ID, []domain.Delta{
		{Key: domain.PlayerGameKey(7, 10), Counter: domain.CounterTurnovers, Amount: 1},
	}))

	var count int64
	require.NoError(t, storeDB(t, st).Model(&schema.AnalysisQueueEntry{}).Where("id = ?", entry.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func testApplyDeltasRejectsUnknownCounter(t *testing.T, st Store) {
	ctx := context.Background()

	entry := buildQueueEntry(t, schema.EntryStatusNew, 1)
	require.NoError(t, st.Enqueue(ctx, entry))

	// Wins are not a per-game goalie counter
	err := st.ApplyDeltas(ctx, entry.ID, []domain.Delta{
		{Key: domain.GoalieGameKey(31, 10), Counter: domain.CounterWins, Amount: 1},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid for scope")
}

// testApplyDeltasRollsBackAtomically verifies a failing delta leaves no partial
// state: earlier deltas in the batch are rolled back and the entry stays queued
func testApplyDeltasRollsBackAtomically(t *testing.T, st Store) {
	ctx := context.Background()

	entry := buildQueueEntry(t, schema.EntryStatusNew, 1)
	require.NoError(t, st.Enqueue(ctx, entry))

	err := st.ApplyDeltas(ctx, entry.ID, []domain.Delta{
		{Key: domain.PlayerSeasonKey(7, 3), Counter: domain.CounterGoals, Amount: 1},
		{Key: domain.PlayerSeasonKey(7, 3), Counter: domain.CounterWins, Amount: 1}, // invalid
	})
	require.Error(t, err)

	db := storeDB(t, st)
	var rows int64
	require.NoError(t, db.Model(&schema.PlayerSeason{}).Where("season_id = ? AND player_id = ?", 3, 7).Count(&rows).Error)
	assert.Zero(t, rows, "zero row from the failed batch must not persist")

	next, err := st.NextQueueEntry(ctx)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, entry.ID, next.ID)
}

func testCountQueueErrors(t *testing.T, st Store) {
	ctx := context.Background()

	count, err := st.CountQueueErrors(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	parked := buildQueueEntry(t, schema.EntryStatusNew, 1)
	live := buildQueueEntry(t, schema.EntryStatusNew, 2)
	require.NoError(t, st.Enqueue(ctx, parked, live))
	require.NoError(t, st.MarkQueueEntryError(ctx, parked.ID, "ERROR: bad payload"))

	count, err = st.CountQueueErrors(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func testProcessStatusLifecycle(t *testing.T, st Store) {
	ctx := context.Background()
	began := time.Date(2024, 11, 2, 19, 30, 0, 0, time.UTC)

	require.NoError(t, st.BeginProcessStatus(ctx, schema.ProcessStatusName, began))

	db := storeDB(t, st)
	var status schema.ProcessStatus
	require.NoError(t, db.First(&status, "name = ?", schema.ProcessStatusName).Error)
	assert.Equal(t, schema.ProcessStateRunning, status.Status)
	assert.Nil(t, status.LastFinished)

	finished := began.Add(2 * time.Second)
	require.NoError(t, st.FinishProcessStatus(ctx, schema.ProcessStatusName, schema.ProcessStateOK, finished))

	require.NoError(t, db.First(&status, "name = ?", schema.ProcessStatusName).Error)
	assert.Equal(t, schema.ProcessStateOK, status.Status)
	require.NotNil(t, status.LastFinished)
	assert.True(t, status.LastFinished.Equal(finished))

	// Re-running upserts rather than duplicating the row
	require.NoError(t, st.BeginProcessStatus(ctx, schema.ProcessStatusName, finished.Add(time.Second)))
	var count int64
	require.NoError(t, db.Model(&schema.ProcessStatus{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func testProcessLogNewestFirst(t *testing.T, st Store) {
	ctx := context.Background()

	require.NoError(t, st.BeginProcessStatus(ctx, schema.ProcessStatusName, time.Now().UTC()))
	require.NoError(t, st.AppendProcessLog(ctx, schema.ProcessStatusName, "first"))
	require.NoError(t, st.AppendProcessLog(ctx, schema.ProcessStatusName, "second"))

	var status schema.ProcessStatus
	require.NoError(t, storeDB(t, st).First(&status, "name = ?", schema.ProcessStatusName).Error)
	assert.Equal(t, "second\nfirst", status.Log)
}

func testProcessLogTrimsToCap(t *testing.T, st Store) {
	ctx := context.Background()

	require.NoError(t, st.BeginProcessStatus(ctx, schema.ProcessStatusName, time.Now().UTC()))

	lines := make([]string, MaxProcessLogLines+5)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	require.NoError(t, st.AppendProcessLog(ctx, schema.ProcessStatusName, lines...))

	var status schema.ProcessStatus
	require.NoError(t, storeDB(t, st).First(&status, "name = ?", schema.ProcessStatusName).Error)

	logged := strings.Split(status.Log, "\n")
	assert.Len(t, logged, MaxProcessLogLines)
	// The newest line is the last one appended
	assert.Equal(t, fmt.Sprintf("line %d", MaxProcessLogLines+4), logged[0])
}
