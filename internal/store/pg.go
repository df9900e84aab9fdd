package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rinkstats/stats-analyzer/internal/domain"
	"github.com/rinkstats/stats-analyzer/internal/store/schema"
)

// MaxProcessLogLines caps the rolling process log at the most recent lines
const MaxProcessLogLines = 10000

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to defaults: MaxOpenConns 20,
// MaxIdleConns 5, ConnMaxLifetime 5m, ConnMaxIdleTime 10m.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// aggregateTable describes how one aggregate scope maps onto its table: key
// columns, the allowed counter columns, and a zero-row constructor
type aggregateTable struct {
	name         string
	entityColumn string
	scopeColumn  string
	counters     map[domain.Counter]struct{}
	zeroRow      func(key domain.AggregateKey) interface{}
}

func counterSet(counters ...domain.Counter) map[domain.Counter]struct{} {
	set := make(map[domain.Counter]struct{}, len(counters))
	for _, c := range counters {
		set[c] = struct{}{}
	}
	return set
}

// aggregateTables whitelists every (scope, counter) pair the rules engine may
// emit; anything outside it is a programming error, not bad data
var aggregateTables = map[domain.AggregateScope]aggregateTable{
	domain.ScopePlayerSeason: {
		name:         schema.PlayerSeason{}.TableName(),
		entityColumn: "player_id",
		scopeColumn:  "season_id",
		counters: counterSet(
			domain.CounterShotsOnGoal, domain.CounterGamesPlayed, domain.CounterGoals,
			domain.CounterAssists, domain.CounterScoringChances, domain.CounterBlockedShots,
			domain.CounterShortHandedGoals, domain.CounterPowerPlayGoals, domain.CounterTurnovers,
			domain.CounterFaceoffs, domain.CounterFaceoffsWon,
			domain.CounterPenaltiesDrawn, domain.CounterPenaltyMinutes,
		),
		zeroRow: func(key domain.AggregateKey) interface{} {
			return &schema.PlayerSeason{SeasonID: key.ScopeID, PlayerID: key.EntityID}
		},
	},
	domain.ScopePlayerGame: {
		name:         schema.GamePlayer{}.TableName(),
		entityColumn: "player_id",
		scopeColumn:  "game_id",
		counters: counterSet(
			domain.CounterShotsOnGoal, domain.CounterGoals, domain.CounterAssists,
			domain.CounterScoringChances, domain.CounterBlockedShots,
			domain.CounterShortHandedGoals, domain.CounterPowerPlayGoals, domain.CounterTurnovers,
			domain.CounterFaceoffs, domain.CounterFaceoffsWon,
			domain.CounterPenaltiesDrawn, domain.CounterPenaltyMinutes,
		),
		zeroRow: func(key domain.AggregateKey) interface{} {
			return &schema.GamePlayer{GameID: key.ScopeID, PlayerID: key.EntityID}
		},
	},
	domain.ScopeGoalieSeason: {
		name:         schema.GoalieSeason{}.TableName(),
		entityColumn: "goalie_id",
		scopeColumn:  "season_id",
		counters: counterSet(
			domain.CounterShotsOnGoal, domain.CounterSaves, domain.CounterGoalsAgainst,
			domain.CounterGamesPlayed, domain.CounterWins, domain.CounterLosses,
			domain.CounterGoals, domain.CounterAssists,
			domain.CounterShortHandedGoalsAgainst, domain.CounterPowerPlayGoalsAgainst,
			domain.CounterPenaltyMinutes,
		),
		zeroRow: func(key domain.AggregateKey) interface{} {
			return &schema.GoalieSeason{SeasonID: key.ScopeID, GoalieID: key.EntityID}
		},
	},
	domain.ScopeGoalieGame: {
		name:         schema.GameGoalie{}.TableName(),
		entityColumn: "goalie_id",
		scopeColumn:  "game_id",
		counters: counterSet(
			domain.CounterShotsOnGoal, domain.CounterGoalsAgainst, domain.CounterSaves,
			domain.CounterShortHandedGoalsAgainst, domain.CounterPowerPlayGoalsAgainst,
			domain.CounterPenaltyMinutes,
		),
		zeroRow: func(key domain.AggregateKey) interface{} {
			return &schema.GameGoalie{GameID: key.ScopeID, GoalieID: key.EntityID}
		},
	},
	domain.ScopeTeamSeason: {
		name:         schema.TeamSeason{}.TableName(),
		entityColumn: "team_id",
		scopeColumn:  "season_id",
		counters: counterSet(
			domain.CounterGamesPlayed, domain.CounterWins, domain.CounterLosses,
			domain.CounterTies, domain.CounterGoalsFor, domain.CounterGoalsAgainst,
		),
		zeroRow: func(key domain.AggregateKey) interface{} {
			return &schema.TeamSeason{SeasonID: key.ScopeID, TeamID: key.EntityID}
		},
	},
}

// NextQueueEntry returns the oldest queue entry without an error annotation
func (s *pgStore) NextQueueEntry(ctx context.Context) (*schema.AnalysisQueueEntry, error) {
	var entry schema.AnalysisQueueEntry
	err := s.db.WithContext(ctx).
		Where("error_message IS NULL").
		Order("seq ASC").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get next queue entry: %w", err)
	}
	return &entry, nil
}

// MarkQueueEntryError annotates an entry with a terminal error
func (s *pgStore) MarkQueueEntryError(ctx context.Context, entryID uuid.UUID, message string) error {
	err := s.db.WithContext(ctx).
		Model(&schema.AnalysisQueueEntry{}).
		Where("id = ?", entryID).
		Update("error_message", message).Error
	if err != nil {
		return fmt.Errorf("failed to mark queue entry error: %w", err)
	}
	return nil
}

// ApplyDeltas folds signed counter mutations into the aggregate rows and removes
// the queue entry in the same transaction, so a crash leaves the entry either
// fully applied and gone or untouched and still queued
func (s *pgStore) ApplyDeltas(ctx context.Context, entryID uuid.UUID, deltas []domain.Delta) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, delta := range deltas {
			table, ok := aggregateTables[delta.Key.Scope]
			if !ok {
				return fmt.Errorf("unknown aggregate scope %q", delta.Key.Scope)
			}
			if _, ok := table.counters[delta.Counter]; !ok {
				return fmt.Errorf("counter %q is not valid for scope %q", delta.Counter, delta.Key.Scope)
			}

			// Find-or-insert the zero row atomically so concurrent producers
			// cannot race the existence check
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: table.scopeColumn}, {Name: table.entityColumn}},
				DoNothing: true,
			}).Create(table.zeroRow(delta.Key)).Error; err != nil {
				return fmt.Errorf("failed to create %s zero row: %w", delta.Key.Scope, err)
			}

			// Counter names are whitelisted above, never caller-supplied
			column := string(delta.Counter)
			err := tx.Table(table.name).
				Where(fmt.Sprintf("%s = ? AND %s = ?", table.scopeColumn, table.entityColumn), delta.Key.ScopeID, delta.Key.EntityID).
				UpdateColumn(column, gorm.Expr(fmt.Sprintf("%s + ?", column), delta.Amount)).Error
			if err != nil {
				return fmt.Errorf("failed to apply delta %s.%s: %w", delta.Key, delta.Counter, err)
			}
		}

		if err := tx.Delete(&schema.AnalysisQueueEntry{}, "id = ?", entryID).Error; err != nil {
			return fmt.Errorf("failed to remove queue entry: %w", err)
		}
		return nil
	})
}

// Enqueue appends entries to the queue tail preserving argument order
func (s *pgStore) Enqueue(ctx context.Context, entries ...*schema.AnalysisQueueEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// One insert per entry so the seq sequence follows argument order
		for _, entry := range entries {
			if err := tx.Create(entry).Error; err != nil {
				return fmt.Errorf("failed to enqueue entry %s: %w", entry.ID, err)
			}
		}
		return nil
	})
}

// CountQueueErrors returns the number of entries stuck with an error annotation
func (s *pgStore) CountQueueErrors(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.AnalysisQueueEntry{}).
		Where("error_message IS NOT NULL").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count queue errors: %w", err)
	}
	return count, nil
}

// BeginProcessStatus upserts the process status row and marks it RUNNING
func (s *pgStore) BeginProcessStatus(ctx context.Context, name string, now time.Time) error {
	status := schema.ProcessStatus{
		Name:        name,
		Status:      schema.ProcessStateRunning,
		LastUpdated: now,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "last_updated"}),
	}).Create(&status).Error
	if err != nil {
		return fmt.Errorf("failed to begin process status: %w", err)
	}
	return nil
}

// FinishProcessStatus records the sweep outcome and finish time
func (s *pgStore) FinishProcessStatus(ctx context.Context, name string, state schema.ProcessState, now time.Time) error {
	err := s.db.WithContext(ctx).
		Model(&schema.ProcessStatus{}).
		Where("name = ?", name).
		Updates(map[string]interface{}{
			"status":        state,
			"last_updated":  now,
			"last_finished": now,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to finish process status: %w", err)
	}
	return nil
}

// AppendProcessLog prepends lines to the rolling process log, newest first,
// trimming to MaxProcessLogLines
func (s *pgStore) AppendProcessLog(ctx context.Context, name string, lines ...string) error {
	if len(lines) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var status schema.ProcessStatus
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("name = ?", name).
			First(&status).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			status = schema.ProcessStatus{Name: name, Status: schema.ProcessStateRunning}
			if err := tx.Create(&status).Error; err != nil {
				return fmt.Errorf("failed to create process status: %w", err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to load process status: %w", err)
		}

		var logLines []string
		if status.Log != "" {
			logLines = strings.Split(status.Log, "\n")
		}
		for _, line := range lines {
			logLines = append([]string{line}, logLines...)
		}
		if len(logLines) > MaxProcessLogLines {
			logLines = logLines[:MaxProcessLogLines]
		}

		err = tx.Model(&schema.ProcessStatus{}).
			Where("name = ?", name).
			Update("log", strings.Join(logLines, "\n")).Error
		if err != nil {
			return fmt.Errorf("failed to append process log: %w", err)
		}
		return nil
	})
}
