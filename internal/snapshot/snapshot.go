// Package snapshot serializes live game and game-event rows into the immutable
// payloads carried by the analysis queue. Snapshots are fully denormalized so a
// payload's statistical effect stays computable after the source rows change or
// disappear, which is what makes compensation (retracting a DEPRECATED snapshot)
// possible at all.
package snapshot

import (
	"sort"

	"github.com/rinkstats/stats-analyzer/internal/domain"
	"github.com/rinkstats/stats-analyzer/internal/store/schema"
)

// Game serializes a game row and its events into a game payload. The event list
// is copied and sorted into chronological order: period ascending, then clock
// reading descending, because the period clock counts down.
func Game(game *schema.Game, events []*schema.GameEvent) *domain.GamePayload {
	sorted := make([]*schema.GameEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Period != sorted[j].Period {
			return sorted[i].Period < sorted[j].Period
		}
		return clockReading(sorted[i].Time) > clockReading(sorted[j].Time)
	})

	payload := &domain.GamePayload{
		Type:              domain.PayloadTypeGame,
		ID:                game.ID,
		HomeTeamID:        game.HomeTeamID,
		AwayTeamID:        game.AwayTeamID,
		HomeStartGoalieID: copyID(game.HomeStartGoalieID),
		AwayStartGoalieID: copyID(game.AwayStartGoalieID),
		HomeGoals:         game.HomeGoals,
		AwayGoals:         game.AwayGoals,
		HomeGoalies:       goalieIDs(game.HomeGoalies),
		AwayGoalies:       goalieIDs(game.AwayGoalies),
		HomePlayers:       playerIDs(game.HomePlayers),
		AwayPlayers:       playerIDs(game.AwayPlayers),
		SeasonID:          game.SeasonID,
		Events:            make([]domain.GameEventPayload, 0, len(sorted)),
	}

	for _, ev := range sorted {
		payload.Events = append(payload.Events, *GameEvent(ev, game))
	}

	return payload
}

// GameEvent serializes one event row into an event payload, resolving the
// season and the opposing team from the parent game
func GameEvent(ev *schema.GameEvent, game *schema.Game) *domain.GameEventPayload {
	team2ID := game.HomeTeamID
	if ev.TeamID == game.HomeTeamID {
		team2ID = game.AwayTeamID
	}

	return &domain.GameEventPayload{
		Type:            domain.PayloadTypeGameEvent,
		ID:              ev.ID,
		GameID:          ev.GameID,
		GameSeasonID:    game.SeasonID,
		EventName:       domain.EventType(ev.EventName),
		Time:            copyString(ev.Time),
		Period:          ev.Period,
		TeamID:          ev.TeamID,
		Team2ID:         team2ID,
		PlayerID:        copyID(ev.PlayerID),
		Player2ID:       copyID(ev.Player2ID),
		GoalieID:        copyID(ev.GoalieID),
		ShotType:        copyString(ev.ShotType),
		GoalType:        copyString(ev.GoalType),
		Zone:            copyString(ev.Zone),
		TimeLength:      copyFloat(ev.TimeLength),
		IsScoringChance: ev.IsScoringChance,
	}
}

// clockReading normalizes a nullable "15:04:05" clock string for comparison.
// Nil sorts last within its period.
func clockReading(t *string) string {
	if t == nil {
		return ""
	}
	return *t
}

func goalieIDs(goalies []schema.Goalie) []int64 {
	ids := make([]int64, 0, len(goalies))
	for _, g := range goalies {
		ids = append(ids, g.ID)
	}
	return ids
}

func playerIDs(players []schema.Player) []int64 {
	ids := make([]int64, 0, len(players))
	for _, p := range players {
		ids = append(ids, p.ID)
	}
	return ids
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
