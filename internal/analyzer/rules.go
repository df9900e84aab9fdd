package analyzer

import (
	"github.com/rinkstats/stats-analyzer/internal/domain"
)

// deltaSet accumulates counter mutations while a payload is being analyzed
type deltaSet struct {
	deltas []domain.Delta
}

func (d *deltaSet) add(key domain.AggregateKey, counter domain.Counter, amount int64) {
	d.deltas = append(d.deltas, domain.Delta{Key: key, Counter: counter, Amount: amount})
}

// both adds the same counter mutation to an entity's season and game rows
func (d *deltaSet) both(seasonKey, gameKey domain.AggregateKey, counter domain.Counter, amount int64) {
	d.add(seasonKey, counter, amount)
	d.add(gameKey, counter, amount)
}

// eventDeltas maps one game-event payload and a sign (+1 apply, -1 retract) to
// its counter mutations. Pure; any error is a ValidationError meaning the
// payload can never be applied.
func eventDeltas(ev *domain.GameEventPayload, sign int64) ([]domain.Delta, error) {
	var ds deltaSet

	var playerSeason, playerGame, player2Season, player2Game, goalieSeason, goalieGame domain.AggregateKey
	hasPlayer := ev.PlayerID != nil
	hasPlayer2 := ev.Player2ID != nil
	hasGoalie := ev.GoalieID != nil
	if hasPlayer {
		playerSeason = domain.PlayerSeasonKey(*ev.PlayerID, ev.GameSeasonID)
		playerGame = domain.PlayerGameKey(*ev.PlayerID, ev.GameID)
	}
	if hasPlayer2 {
		player2Season = domain.PlayerSeasonKey(*ev.Player2ID, ev.GameSeasonID)
		player2Game = domain.PlayerGameKey(*ev.Player2ID, ev.GameID)
	}
	if hasGoalie {
		goalieSeason = domain.GoalieSeasonKey(*ev.GoalieID, ev.GameSeasonID)
		goalieGame = domain.GoalieGameKey(*ev.GoalieID, ev.GameID)
	}

	switch ev.EventName {
	case domain.EventShotOnGoal:
		if !hasPlayer {
			return nil, domain.MissingParticipantError("player", ev)
		}
		if !hasGoalie {
			return nil, domain.MissingParticipantError("goalie", ev)
		}

		ds.both(goalieSeason, goalieGame, domain.CounterShotsOnGoal, sign)
		ds.both(playerSeason, playerGame, domain.CounterShotsOnGoal, sign)

		if ev.IsScoringChance {
			ds.both(playerSeason, playerGame, domain.CounterScoringChances, sign)
		}

		shotType := ""
		if ev.ShotType != nil {
			shotType = *ev.ShotType
		}
		switch shotType {
		case domain.ShotTypeGoal:
			ds.both(playerSeason, playerGame, domain.CounterGoals, sign)
			if hasPlayer2 {
				ds.both(player2Season, player2Game, domain.CounterAssists, sign)
			}
			ds.both(goalieSeason, goalieGame, domain.CounterGoalsAgainst, sign)

			// At most one strength bonus applies; even-strength goals have no
			// goal_type
			if ev.GoalType != nil {
				switch *ev.GoalType {
				case domain.GoalTypeShortHanded:
					ds.both(playerSeason, playerGame, domain.CounterShortHandedGoals, sign)
					ds.both(goalieSeason, goalieGame, domain.CounterShortHandedGoalsAgainst, sign)
				case domain.GoalTypePowerPlay:
					ds.both(playerSeason, playerGame, domain.CounterPowerPlayGoals, sign)
					ds.both(goalieSeason, goalieGame, domain.CounterPowerPlayGoalsAgainst, sign)
				}
			}
		case domain.ShotTypeBlocked:
			if !hasPlayer2 {
				return nil, domain.MissingParticipantError("second player", ev)
			}
			ds.both(player2Season, player2Game, domain.CounterBlockedShots, sign)
		case domain.ShotTypeSave:
			ds.both(goalieSeason, goalieGame, domain.CounterSaves, sign)
		}

	case domain.EventTurnover:
		if !hasPlayer {
			return nil, domain.MissingParticipantError("player", ev)
		}
		ds.both(playerSeason, playerGame, domain.CounterTurnovers, sign)

	case domain.EventFaceoff:
		if !hasPlayer {
			return nil, domain.MissingParticipantError("player", ev)
		}
		if !hasPlayer2 {
			return nil, domain.MissingParticipantError("second player", ev)
		}
		ds.both(playerSeason, playerGame, domain.CounterFaceoffs, sign)
		ds.both(player2Season, player2Game, domain.CounterFaceoffs, sign)
		// The primary player is the faceoff winner
		ds.both(playerSeason, playerGame, domain.CounterFaceoffsWon, sign)

	case domain.EventPenalty:
		if !hasGoalie && !hasPlayer {
			return nil, domain.MissingParticipantError("goalie or player", ev)
		}
		if ev.TimeLength == nil {
			return nil, domain.MissingParticipantError("time length", ev)
		}
		seconds := sign * int64(*ev.TimeLength)

		if hasGoalie {
			ds.both(goalieSeason, goalieGame, domain.CounterPenaltyMinutes, seconds)
		}
		if hasPlayer {
			ds.both(playerSeason, playerGame, domain.CounterPenaltyMinutes, seconds)
		}
		if hasPlayer2 {
			ds.both(player2Season, player2Game, domain.CounterPenaltiesDrawn, seconds)
		}

	case domain.EventGoalieChange:
		// No counters; goalie changes only feed the game-level win/loss
		// attribution in gameDeltas.

	default:
		return nil, domain.UnknownEventTypeError(ev)
	}

	return ds.deltas, nil
}

// gameDeltas maps a full game payload to its counter mutations: every embedded
// event's deltas (reconstructing the game's statistical footprint independent
// of the live event list), then the game-level team, goalie and roster rules.
func gameDeltas(game *domain.GamePayload, sign int64) ([]domain.Delta, error) {
	var ds deltaSet

	for i := range game.Events {
		eventDS, err := eventDeltas(&game.Events[i], sign)
		if err != nil {
			return nil, err
		}
		ds.deltas = append(ds.deltas, eventDS...)
	}

	homeOnIce := goaliesOnIce(game, game.HomeTeamID, game.HomeStartGoalieID)
	awayOnIce := goaliesOnIce(game, game.AwayTeamID, game.AwayStartGoalieID)

	goalieGameRules(&ds, game.HomeGoalies, homeOnIce, game.HomeStartGoalieID,
		game.SeasonID, game.HomeGoals, game.AwayGoals, sign)
	goalieGameRules(&ds, game.AwayGoalies, awayOnIce, game.AwayStartGoalieID,
		game.SeasonID, game.AwayGoals, game.HomeGoals, sign)

	for _, playerID := range game.HomePlayers {
		ds.add(domain.PlayerSeasonKey(playerID, game.SeasonID), domain.CounterGamesPlayed, sign)
	}
	for _, playerID := range game.AwayPlayers {
		ds.add(domain.PlayerSeasonKey(playerID, game.SeasonID), domain.CounterGamesPlayed, sign)
	}

	homeTeam := domain.TeamSeasonKey(game.HomeTeamID, game.SeasonID)
	awayTeam := domain.TeamSeasonKey(game.AwayTeamID, game.SeasonID)

	ds.add(homeTeam, domain.CounterGamesPlayed, sign)
	ds.add(awayTeam, domain.CounterGamesPlayed, sign)

	switch {
	case game.HomeGoals > game.AwayGoals:
		ds.add(homeTeam, domain.CounterWins, sign)
		ds.add(awayTeam, domain.CounterLosses, sign)
	case game.HomeGoals < game.AwayGoals:
		ds.add(homeTeam, domain.CounterLosses, sign)
		ds.add(awayTeam, domain.CounterWins, sign)
	default:
		ds.add(homeTeam, domain.CounterTies, sign)
		ds.add(awayTeam, domain.CounterTies, sign)
	}

	ds.add(homeTeam, domain.CounterGoalsFor, sign*game.HomeGoals)
	ds.add(awayTeam, domain.CounterGoalsFor, sign*game.AwayGoals)
	ds.add(homeTeam, domain.CounterGoalsAgainst, sign*game.AwayGoals)
	ds.add(awayTeam, domain.CounterGoalsAgainst, sign*game.HomeGoals)

	return ds.deltas, nil
}

// goaliesOnIce reconstructs, in chronological order, every goalie who was in net
// for one team: the starter followed by each goalie-change for that team in the
// payload's event order
func goaliesOnIce(game *domain.GamePayload, teamID int64, starterID *int64) []int64 {
	var onIce []int64
	if starterID != nil {
		onIce = append(onIce, *starterID)
	}
	for i := range game.Events {
		ev := &game.Events[i]
		if ev.EventName == domain.EventGoalieChange && ev.TeamID == teamID && ev.GoalieID != nil {
			onIce = append(onIce, *ev.GoalieID)
		}
	}
	return onIce
}

// goalieGameRules applies the per-goalie game-level rules for one side's roster:
// games_played for goalies who actually saw ice, the loss to the starter of the
// losing team, and the win to the last goalie in net for the winning team. Ties
// produce no goalie decision.
func goalieGameRules(ds *deltaSet, roster []int64, onIce []int64, starterID *int64,
	seasonID, goalsFor, goalsAgainst, sign int64) {
	var lastInNet *int64
	if len(onIce) > 0 {
		lastInNet = &onIce[len(onIce)-1]
	}

	for _, goalieID := range roster {
		seasonKey := domain.GoalieSeasonKey(goalieID, seasonID)

		if containsID(onIce, goalieID) {
			ds.add(seasonKey, domain.CounterGamesPlayed, sign)
		}

		switch {
		case goalsAgainst > goalsFor && starterID != nil && goalieID == *starterID:
			// The goalie that started the game in net gets the loss if the team
			// loses the game.
			ds.add(seasonKey, domain.CounterLosses, sign)
		case goalsAgainst < goalsFor && lastInNet != nil && goalieID == *lastInNet:
			// The goalie that finishes the game in net gets the win if the team
			// wins the game.
			ds.add(seasonKey, domain.CounterWins, sign)
		}
	}
}

func containsID(ids []int64, id int64) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
