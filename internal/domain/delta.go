package domain

import "fmt"

// AggregateScope identifies which aggregate table a delta targets
type AggregateScope string

const (
	// ScopePlayerSeason targets player_seasons, keyed by (player, season)
	ScopePlayerSeason AggregateScope = "player_season"
	// ScopePlayerGame targets game_players, keyed by (player, game)
	ScopePlayerGame AggregateScope = "player_game"
	// ScopeGoalieSeason targets goalie_seasons, keyed by (goalie, season)
	ScopeGoalieSeason AggregateScope = "goalie_season"
	// ScopeGoalieGame targets game_goalies, keyed by (goalie, game)
	ScopeGoalieGame AggregateScope = "goalie_game"
	// ScopeTeamSeason targets team_seasons, keyed by (team, season)
	ScopeTeamSeason AggregateScope = "team_season"
)

// Counter names a single aggregate column. The values double as column names;
// the store validates each (scope, counter) pair against a whitelist before
// building an update.
type Counter string

const (
	CounterShotsOnGoal             Counter = "shots_on_goal"
	CounterScoringChances          Counter = "scoring_chances"
	CounterGoals                   Counter = "goals"
	CounterAssists                 Counter = "assists"
	CounterShortHandedGoals        Counter = "short_handed_goals"
	CounterPowerPlayGoals          Counter = "power_play_goals"
	CounterBlockedShots            Counter = "blocked_shots"
	CounterSaves                   Counter = "saves"
	CounterGoalsAgainst            Counter = "goals_against"
	CounterShortHandedGoalsAgainst Counter = "short_handed_goals_against"
	CounterPowerPlayGoalsAgainst   Counter = "power_play_goals_against"
	CounterTurnovers               Counter = "turnovers"
	CounterFaceoffs                Counter = "faceoffs"
	CounterFaceoffsWon             Counter = "faceoffs_won"
	// CounterPenaltyMinutes and CounterPenaltiesDrawn hold signed durations in
	// seconds; retraction is plain signed arithmetic on the same column
	CounterPenaltyMinutes Counter = "penalty_minutes"
	CounterPenaltiesDrawn Counter = "penalties_drawn"
	CounterGamesPlayed    Counter = "games_played"
	CounterWins           Counter = "wins"
	CounterLosses         Counter = "losses"
	CounterTies           Counter = "ties"
	CounterGoalsFor       Counter = "goals_for"
)

// AggregateKey addresses one aggregate row. ScopeID is the season id for season
// scopes and the game id for game scopes. Rows are created lazily: the first
// delta for a never-seen key inserts a zero row in the same transaction.
type AggregateKey struct {
	Scope    AggregateScope
	EntityID int64
	ScopeID  int64
}

func (k AggregateKey) String() string {
	return fmt.Sprintf("%s(%d,%d)", k.Scope, k.EntityID, k.ScopeID)
}

// Delta is one signed counter mutation. A row's counters must always equal the
// fold of every delta ever applied for its key.
type Delta struct {
	Key     AggregateKey
	Counter Counter
	Amount  int64
}

// PlayerSeasonKey builds the key for a player's season aggregate row
func PlayerSeasonKey(playerID, seasonID int64) AggregateKey {
	return AggregateKey{Scope: ScopePlayerSeason, EntityID: playerID, ScopeID: seasonID}
}

// PlayerGameKey builds the key for a player's per-game aggregate row
func PlayerGameKey(playerID, gameID int64) AggregateKey {
	return AggregateKey{Scope: ScopePlayerGame, EntityID: playerID, ScopeID: gameID}
}

// GoalieSeasonKey builds the key for a goalie's season aggregate row
func GoalieSeasonKey(goalieID, seasonID int64) AggregateKey {
	return AggregateKey{Scope: ScopeGoalieSeason, EntityID: goalieID, ScopeID: seasonID}
}

// GoalieGameKey builds the key for a goalie's per-game aggregate row
func GoalieGameKey(goalieID, gameID int64) AggregateKey {
	return AggregateKey{Scope: ScopeGoalieGame, EntityID: goalieID, ScopeID: gameID}
}

// TeamSeasonKey builds the key for a team's season aggregate row
func TeamSeasonKey(teamID, seasonID int64) AggregateKey {
	return AggregateKey{Scope: ScopeTeamSeason, EntityID: teamID, ScopeID: seasonID}
}
