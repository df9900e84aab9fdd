package domain

import (
	"encoding/json"
	"fmt"
)

// PayloadType discriminates the two snapshot kinds carried by the analysis queue
type PayloadType string

const (
	// PayloadTypeGame is a full finished-game snapshot including its event list
	PayloadTypeGame PayloadType = "game"
	// PayloadTypeGameEvent is a single game-event snapshot
	PayloadTypeGameEvent PayloadType = "game_event"
)

// EventType is the closed set of game event kinds the rules engine understands.
// The wire names match the legacy event_name values (lowercased, space separated).
type EventType string

const (
	// EventShotOnGoal is a shot on goal, optionally a goal, a blocked shot or a save
	EventShotOnGoal EventType = "shot on goal"
	// EventTurnover is a puck turnover by the primary player
	EventTurnover EventType = "turnover"
	// EventFaceoff is a faceoff between the primary (winner) and secondary player
	EventFaceoff EventType = "faceoff"
	// EventPenalty is a penalty against the primary player or goalie
	EventPenalty EventType = "penalty"
	// EventGoalieChange records a goalie substitution; it carries no counters of its
	// own but drives game-level win/loss attribution
	EventGoalieChange EventType = "goalie change"
)

// Shot subtypes (shot_type field of a shot-on-goal event)
const (
	ShotTypeGoal    = "goal"
	ShotTypeBlocked = "blocked"
	ShotTypeSave    = "save"
)

// Goal subtypes (goal_type field of a goal). At most one applies; even-strength
// goals carry no goal_type.
const (
	GoalTypeShortHanded = "Short Handed"
	GoalTypePowerPlay   = "Power Play"
)

// GameEventPayload is an immutable snapshot of one game event, fully denormalized
// so its statistical effect stays computable after the source row changes or is
// deleted. Field names match the legacy analysis payload wire format.
type GameEventPayload struct {
	Type         PayloadType `json:"type"`
	ID           int64       `json:"id"`
	GameID       int64       `json:"game_id"`
	GameSeasonID int64       `json:"game_season_id"`
	EventName    EventType   `json:"event_name"`
	// Time is the period clock reading formatted as "15:04:05"; the clock counts
	// down within a period
	Time   *string `json:"time"`
	Period int     `json:"period"`
	TeamID int64   `json:"team_id"`
	// Team2ID is the opposing team, resolved at snapshot time
	Team2ID  int64  `json:"team_2_id"`
	PlayerID *int64 `json:"player_id"`
	// Player2ID is the secondary participant: assister on a goal, blocker on a
	// blocked shot, faceoff opponent, drawer of a penalty
	Player2ID *int64  `json:"player_2_id"`
	GoalieID  *int64  `json:"goalie_id"`
	ShotType  *string `json:"shot_type"`
	GoalType  *string `json:"goal_type"`
	Zone      *string `json:"zone"`
	// TimeLength is the penalty duration in seconds
	TimeLength      *float64 `json:"time_length"`
	IsScoringChance bool     `json:"is_scoring_chance"`
}

// GamePayload is an immutable snapshot of a finished game: final score, goalie and
// player rosters, starting goalies and the full ordered event list at snapshot time.
// Every finished-game lifecycle transition produces a new, distinct snapshot.
type GamePayload struct {
	Type              PayloadType        `json:"type"`
	ID                int64              `json:"id"`
	HomeTeamID        int64              `json:"home_team_id"`
	AwayTeamID        int64              `json:"away_team_id"`
	HomeStartGoalieID *int64             `json:"home_start_goalie_id"`
	AwayStartGoalieID *int64             `json:"away_start_goalie_id"`
	HomeGoals         int64              `json:"home_goals"`
	AwayGoals         int64              `json:"away_goals"`
	HomeGoalies       []int64            `json:"home_goalies"`
	AwayGoalies       []int64            `json:"away_goalies"`
	HomePlayers       []int64            `json:"home_players"`
	AwayPlayers       []int64            `json:"away_players"`
	SeasonID          int64              `json:"season_id"`
	Events            []GameEventPayload `json:"events"`
}

// Payload is the tagged union carried by a queue entry: exactly one of Game or
// GameEvent is set, selected by the payload's "type" discriminator.
type Payload struct {
	Game      *GamePayload
	GameEvent *GameEventPayload
}

// ParsePayload decodes a raw queue entry payload, dispatching on the "type"
// discriminator. An unknown or missing discriminator is a validation failure:
// the entry can never be processed and must be parked with an error.
func ParsePayload(raw []byte) (*Payload, error) {
	var probe struct {
		Type PayloadType `json:"type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, NewValidationError(fmt.Sprintf("ERROR: Malformed payload: %v.", err))
	}

	switch probe.Type {
	case PayloadTypeGame:
		var game GamePayload
		if err := json.Unmarshal(raw, &game); err != nil {
			return nil, NewValidationError(fmt.Sprintf("ERROR: Malformed game payload: %v.", err))
		}
		return &Payload{Game: &game}, nil
	case PayloadTypeGameEvent:
		var event GameEventPayload
		if err := json.Unmarshal(raw, &event); err != nil {
			return nil, NewValidationError(fmt.Sprintf("ERROR: Malformed game event payload: %v.", err))
		}
		return &Payload{GameEvent: &event}, nil
	default:
		return nil, NewValidationError(fmt.Sprintf("ERROR: Payload has no game event or game (type %q).", probe.Type))
	}
}

// PayloadType returns the discriminator of the decoded payload
func (p *Payload) PayloadType() PayloadType {
	if p.Game != nil {
		return PayloadTypeGame
	}
	return PayloadTypeGameEvent
}

// SnapshotID returns the identifier of the snapshotted game or event
func (p *Payload) SnapshotID() int64 {
	if p.Game != nil {
		return p.Game.ID
	}
	return p.GameEvent.ID
}
