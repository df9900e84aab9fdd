package schema

// PlayerSeason represents the player_seasons table - a player's running season
// aggregates. Rows are created lazily as zero rows when the first delta for a
// (player, season) pair arrives and are only ever mutated through signed deltas.
type PlayerSeason struct {
	ID       int64 `gorm:"column:id;primaryKey;autoIncrement"`
	SeasonID int64 `gorm:"column:season_id;not null;uniqueIndex:idx_player_seasons_key,priority:1"`
	PlayerID int64 `gorm:"column:player_id;not null;uniqueIndex:idx_player_seasons_key,priority:2"`

	ShotsOnGoal      int64 `gorm:"column:shots_on_goal;not null;default:0"`
	GamesPlayed      int64 `gorm:"column:games_played;not null;default:0"`
	Goals            int64 `gorm:"column:goals;not null;default:0"`
	Assists          int64 `gorm:"column:assists;not null;default:0"`
	ScoringChances   int64 `gorm:"column:scoring_chances;not null;default:0"`
	BlockedShots     int64 `gorm:"column:blocked_shots;not null;default:0"`
	ShortHandedGoals int64 `gorm:"column:short_handed_goals;not null;default:0"`
	PowerPlayGoals   int64 `gorm:"column:power_play_goals;not null;default:0"`
	Turnovers        int64 `gorm:"column:turnovers;not null;default:0"`
	Faceoffs         int64 `gorm:"column:faceoffs;not null;default:0"`
	FaceoffsWon      int64 `gorm:"column:faceoffs_won;not null;default:0"`

	// PenaltiesDrawn and PenaltyMinutes are signed durations in seconds
	PenaltiesDrawn int64 `gorm:"column:penalties_drawn;not null;default:0"`
	PenaltyMinutes int64 `gorm:"column:penalty_minutes;not null;default:0"`

	// Plus/minus differentials maintained by an external ingest path, kept so
	// the zero row matches the full legacy column set
	PowerPlayGoalsDiff int64 `gorm:"column:power_play_goals_diff;not null;default:0"`
	PenaltyKillDiff    int64 `gorm:"column:penalty_kill_diff;not null;default:0"`
	FiveOnFiveDiff     int64 `gorm:"column:five_on_five_diff;not null;default:0"`
	OverallDiff        int64 `gorm:"column:overall_diff;not null;default:0"`
}

// TableName specifies the table name for the PlayerSeason model
func (PlayerSeason) TableName() string {
	return "player_seasons"
}
