package schema

// TeamSeason represents the team_seasons table - a team's season standings counters
type TeamSeason struct {
	ID       int64 `gorm:"column:id;primaryKey;autoIncrement"`
	SeasonID int64 `gorm:"column:season_id;not null;uniqueIndex:idx_team_seasons_key,priority:1"`
	TeamID   int64 `gorm:"column:team_id;not null;uniqueIndex:idx_team_seasons_key,priority:2"`

	GamesPlayed  int64 `gorm:"column:games_played;not null;default:0"`
	Wins         int64 `gorm:"column:wins;not null;default:0"`
	Losses       int64 `gorm:"column:losses;not null;default:0"`
	Ties         int64 `gorm:"column:ties;not null;default:0"`
	GoalsFor     int64 `gorm:"column:goals_for;not null;default:0"`
	GoalsAgainst int64 `gorm:"column:goals_against;not null;default:0"`
}

// TableName specifies the table name for the TeamSeason model
func (TeamSeason) TableName() string {
	return "team_seasons"
}
