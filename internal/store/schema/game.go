package schema

import "time"

// GameStatus is the lifecycle state of a game
type GameStatus int

const (
	// GameStatusNotStarted means the game has not begun
	GameStatusNotStarted GameStatus = 1
	// GameStatusInProgress means the game is being played
	GameStatusInProgress GameStatus = 2
	// GameStatusFinished means the game is over; only finished games contribute
	// to aggregate statistics
	GameStatusFinished GameStatus = 3
)

// Game represents the games table - the live game record mutated by the API
// layer. The analyzer never reads this table directly; it works exclusively from
// immutable snapshots taken at lifecycle transitions.
type Game struct {
	ID       int64 `gorm:"column:id;primaryKey;autoIncrement"`
	SeasonID int64 `gorm:"column:season_id;not null;index"`

	HomeTeamID int64 `gorm:"column:home_team_id;not null"`
	AwayTeamID int64 `gorm:"column:away_team_id;not null"`
	HomeGoals  int64 `gorm:"column:home_goals;not null;default:0"`
	AwayGoals  int64 `gorm:"column:away_goals;not null;default:0"`

	// Starting goalies; nullable because a game can be scheduled before the
	// lineups are set
	HomeStartGoalieID *int64 `gorm:"column:home_start_goalie_id"`
	AwayStartGoalieID *int64 `gorm:"column:away_start_goalie_id"`

	Status GameStatus `gorm:"column:status;not null"`
	Date   time.Time  `gorm:"column:date;not null;type:date"`

	// Rosters of everyone dressed for the game, per side
	HomeGoalies []Goalie `gorm:"many2many:games_home_goalies;"`
	AwayGoalies []Goalie `gorm:"many2many:games_away_goalies;"`
	HomePlayers []Player `gorm:"many2many:games_home_players;"`
	AwayPlayers []Player `gorm:"many2many:games_away_players;"`
}

// TableName specifies the table name for the Game model
func (Game) TableName() string {
	return "games"
}
