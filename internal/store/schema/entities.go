package schema

// Season represents the seasons table
type Season struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;not null;type:text"`
}

func (Season) TableName() string {
	return "seasons"
}

// Team represents the teams table
type Team struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;not null;type:text"`
	City string `gorm:"column:city;not null;type:text"`
}

func (Team) TableName() string {
	return "teams"
}

// Player represents the players table (identity fields only; running statistics
// live in player_seasons and game_players)
type Player struct {
	ID           int64  `gorm:"column:id;primaryKey;autoIncrement"`
	TeamID       *int64 `gorm:"column:team_id"`
	FirstName    string `gorm:"column:first_name;not null;type:text"`
	LastName     string `gorm:"column:last_name;not null;type:text"`
	JerseyNumber int    `gorm:"column:jersey_number;not null;default:0"`
}

func (Player) TableName() string {
	return "players"
}

// Goalie represents the goalies table (identity fields only; running statistics
// live in goalie_seasons and game_goalies)
type Goalie struct {
	ID           int64  `gorm:"column:id;primaryKey;autoIncrement"`
	TeamID       *int64 `gorm:"column:team_id"`
	FirstName    string `gorm:"column:first_name;not null;type:text"`
	LastName     string `gorm:"column:last_name;not null;type:text"`
	JerseyNumber int    `gorm:"column:jersey_number;not null;default:0"`
}

func (Goalie) TableName() string {
	return "goalies"
}
