package schema

// GamePlayer represents the game_players table - a player's per-game aggregates,
// created lazily on the first delta for a (player, game) pair
type GamePlayer struct {
	ID       int64 `gorm:"column:id;primaryKey;autoIncrement"`
	GameID   int64 `gorm:"column:game_id;not null;uniqueIndex:idx_game_players_key,priority:1"`
	PlayerID int64 `gorm:"column:player_id;not null;uniqueIndex:idx_game_players_key,priority:2"`

	Goals            int64 `gorm:"column:goals;not null;default:0"`
	Assists          int64 `gorm:"column:assists;not null;default:0"`
	ShotsOnGoal      int64 `gorm:"column:shots_on_goal;not null;default:0"`
	ScoringChances   int64 `gorm:"column:scoring_chances;not null;default:0"`
	BlockedShots     int64 `gorm:"column:blocked_shots;not null;default:0"`
	ShortHandedGoals int64 `gorm:"column:short_handed_goals;not null;default:0"`
	PowerPlayGoals   int64 `gorm:"column:power_play_goals;not null;default:0"`
	Turnovers        int64 `gorm:"column:turnovers;not null;default:0"`
	Faceoffs         int64 `gorm:"column:faceoffs;not null;default:0"`
	FaceoffsWon      int64 `gorm:"column:faceoffs_won;not null;default:0"`

	// Signed durations in seconds
	PenaltiesDrawn int64 `gorm:"column:penalties_drawn;not null;default:0"`
	PenaltyMinutes int64 `gorm:"column:penalty_minutes;not null;default:0"`
}

// TableName specifies the table name for the GamePlayer model
func (GamePlayer) TableName() string {
	return "game_players"
}
