package schema

// GoalieSeason represents the goalie_seasons table - a goalie's running season
// aggregates including win/loss attribution
type GoalieSeason struct {
	ID       int64 `gorm:"column:id;primaryKey;autoIncrement"`
	SeasonID int64 `gorm:"column:season_id;not null;uniqueIndex:idx_goalie_seasons_key,priority:1"`
	GoalieID int64 `gorm:"column:goalie_id;not null;uniqueIndex:idx_goalie_seasons_key,priority:2"`

	ShotsOnGoal             int64 `gorm:"column:shots_on_goal;not null;default:0"`
	Saves                   int64 `gorm:"column:saves;not null;default:0"`
	GoalsAgainst            int64 `gorm:"column:goals_against;not null;default:0"`
	GamesPlayed             int64 `gorm:"column:games_played;not null;default:0"`
	Wins                    int64 `gorm:"column:wins;not null;default:0"`
	Losses                  int64 `gorm:"column:losses;not null;default:0"`
	Goals                   int64 `gorm:"column:goals;not null;default:0"`
	Assists                 int64 `gorm:"column:assists;not null;default:0"`
	ShortHandedGoalsAgainst int64 `gorm:"column:short_handed_goals_against;not null;default:0"`
	PowerPlayGoalsAgainst   int64 `gorm:"column:power_play_goals_against;not null;default:0"`

	// Signed duration in seconds
	PenaltyMinutes int64 `gorm:"column:penalty_minutes;not null;default:0"`
}

// TableName specifies the table name for the GoalieSeason model
func (GoalieSeason) TableName() string {
	return "goalie_seasons"
}
