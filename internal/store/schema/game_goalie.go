package schema

// GameGoalie represents the game_goalies table - a goalie's per-game aggregates.
// Win/loss attribution lives only on the season row.
type GameGoalie struct {
	ID       int64 `gorm:"column:id;primaryKey;autoIncrement"`
	GameID   int64 `gorm:"column:game_id;not null;uniqueIndex:idx_game_goalies_key,priority:1"`
	GoalieID int64 `gorm:"column:goalie_id;not null;uniqueIndex:idx_game_goalies_key,priority:2"`

	ShotsOnGoal             int64 `gorm:"column:shots_on_goal;not null;default:0"`
	GoalsAgainst            int64 `gorm:"column:goals_against;not null;default:0"`
	Saves                   int64 `gorm:"column:saves;not null;default:0"`
	ShortHandedGoalsAgainst int64 `gorm:"column:short_handed_goals_against;not null;default:0"`
	PowerPlayGoalsAgainst   int64 `gorm:"column:power_play_goals_against;not null;default:0"`

	// Signed duration in seconds
	PenaltyMinutes int64 `gorm:"column:penalty_minutes;not null;default:0"`
}

// TableName specifies the table name for the GameGoalie model
func (GameGoalie) TableName() string {
	return "game_goalies"
}
