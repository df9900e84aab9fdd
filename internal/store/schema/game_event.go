package schema

// GameEvent represents the game_events table - the live event record mutated by
// the API layer. Like games, events feed the analyzer only through snapshots.
type GameEvent struct {
	ID     int64 `gorm:"column:id;primaryKey;autoIncrement"`
	GameID int64 `gorm:"column:game_id;not null;index"`
	// Number is the event's ordinal within its game; presentation bookkeeping
	// only, never consulted by the delta rules
	Number    int    `gorm:"column:number;not null;default:0"`
	EventName string `gorm:"column:event_name;not null;type:text"`
	// Time is the period clock reading ("15:04:05"); the clock counts down
	Time   *string `gorm:"column:time;type:text"`
	Period int     `gorm:"column:period;not null"`
	TeamID int64   `gorm:"column:team_id;not null"`

	PlayerID  *int64 `gorm:"column:player_id"`
	Player2ID *int64 `gorm:"column:player_2_id"`
	GoalieID  *int64 `gorm:"column:goalie_id"`

	ShotType *string `gorm:"column:shot_type;type:text"`
	GoalType *string `gorm:"column:goal_type;type:text"`
	Zone     *string `gorm:"column:zone;type:text"`
	// TimeLength is a penalty duration in seconds
	TimeLength      *float64 `gorm:"column:time_length"`
	IsScoringChance bool     `gorm:"column:is_scoring_chance;not null;default:false"`
}

// TableName specifies the table name for the GameEvent model
func (GameEvent) TableName() string {
	return "game_events"
}
