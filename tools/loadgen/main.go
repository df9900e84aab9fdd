// loadgen seeds the analysis queue with synthetic finished-game snapshots and
// optionally watches the analyzer drain it, reporting throughput. Useful for
// sizing the sweep interval and the database pool before a season starts.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rinkstats/stats-analyzer/internal/adapter"
	"github.com/rinkstats/stats-analyzer/internal/config"
	"github.com/rinkstats/stats-analyzer/internal/producer"
	"github.com/rinkstats/stats-analyzer/internal/store"
	"github.com/rinkstats/stats-analyzer/internal/store/schema"
)

const pollInterval = 2 * time.Second

type options struct {
	configFile string
	envPath    string
	games      int
	events     int
	seasonID   int64
	watch      bool
	timeout    time.Duration
}

func main() {
	var opts options
	flag.StringVar(&opts.configFile, "config", "", "Path to configuration file")
	flag.StringVar(&opts.envPath, "env", "", "Path to environment directory")
	flag.IntVar(&opts.games, "games", 100, "Number of synthetic games to enqueue")
	flag.IntVar(&opts.events, "events", 40, "Number of events per game")
	flag.Int64Var(&opts.seasonID, "season", 9999, "Season id for synthetic rows")
	flag.BoolVar(&opts.watch, "watch", false, "Wait for the analyzer to drain the queue and report throughput")
	flag.DurationVar(&opts.timeout, "timeout", 10*time.Minute, "Give up watching after this long")
	flag.Parse()

	if err := run(&opts); err != nil {
		fmt.Fprintf(os.Stderr, "loadgen: %v\n", err)
		os.Exit(1)
	}
}

func run(opts *options) error {
	config.ChdirRepoRoot()

	cfg, err := config.LoadAnalyzerConfig(opts.configFile, opts.envPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := gorm.Open(pgdriver.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	st := store.NewPGStore(db)
	prod := producer.NewProducer(st, adapter.NewClock(), adapter.NewJSON())

	fmt.Printf("Enqueueing %d games with %d events each (season %d)\n",
		opts.games, opts.events, opts.seasonID)

	enqueueStart := time.Now()
	for i := 0; i < opts.games; i++ {
		game, events := syntheticGame(opts.seasonID, int64(i), opts.events)
		if _, err := prod.GameFinished(ctx, game, events); err != nil {
			return fmt.Errorf("failed to enqueue game %d: %w", i, err)
		}
	}
	fmt.Printf("Enqueued %d entries in %s\n", opts.games, time.Since(enqueueStart).Round(time.Millisecond))

	if !opts.watch {
		return nil
	}
	return watchDrain(ctx, db, opts.games)
}

// watchDrain polls the queue until it is empty (parked entries excluded) and
// prints the observed drain rate
func watchDrain(ctx context.Context, db *gorm.DB, enqueued int) error {
	start := time.Now()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("queue did not drain: %w", ctx.Err())
		case <-ticker.C:
		}

		var pending, parked int64
		err := db.WithContext(ctx).Model(&schema.AnalysisQueueEntry{}).
			Where("error_message IS NULL").Count(&pending).Error
		if err != nil {
			return fmt.Errorf("failed to count pending entries: %w", err)
		}
		if err := db.WithContext(ctx).Model(&schema.AnalysisQueueEntry{}).
			Where("error_message IS NOT NULL").Count(&parked).Error; err != nil {
			return fmt.Errorf("failed to count parked entries: %w", err)
		}

		fmt.Printf("  pending=%d parked=%d elapsed=%s\n",
			pending, parked, time.Since(start).Round(time.Second))

		if pending == 0 {
			elapsed := time.Since(start)
			fmt.Printf("Drained %d entries in %s (%.1f entries/s), %d parked\n",
				enqueued, elapsed.Round(time.Millisecond),
				float64(enqueued)/elapsed.Seconds(), parked)
			return nil
		}
	}
}

// syntheticGame builds one finished game with plausible rosters and a random
// mix of events. Ids are offset by the game index so rows never collide.
func syntheticGame(seasonID, n int64, eventsPerGame int) (*schema.Game, []*schema.GameEvent) {
	base := n * 1000
	homeTeam, awayTeam := base+1, base+2
	homeGoalie, awayGoalie := base+10, base+11

	game := &schema.Game{
		ID:                base + 100,
		SeasonID:          seasonID,
		HomeTeamID:        homeTeam,
		AwayTeamID:        awayTeam,
		HomeStartGoalieID: &homeGoalie,
		AwayStartGoalieID: &awayGoalie,
		Status:            schema.GameStatusFinished,
		Date:              time.Now(),
		HomeGoalies:       []schema.Goalie{{ID: homeGoalie}},
		AwayGoalies:       []schema.Goalie{{ID: awayGoalie}},
	}
	for i := int64(0); i < 12; i++ {
		game.HomePlayers = append(game.HomePlayers, schema.Player{ID: base + 20 + i})
		game.AwayPlayers = append(game.AwayPlayers, schema.Player{ID: base + 40 + i})
	}

	events := make([]*schema.GameEvent, 0, eventsPerGame)
	for i := 0; i < eventsPerGame; i++ {
		ev := syntheticEvent(game, base+200+int64(i), i)
		if ev.EventName == "shot on goal" && ev.ShotType != nil && *ev.ShotType == "goal" {
			if ev.TeamID == homeTeam {
				game.HomeGoals++
			} else {
				game.AwayGoals++
			}
		}
		events = append(events, ev)
	}
	return game, events
}

func syntheticEvent(game *schema.Game, id int64, i int) *schema.GameEvent {
	attacking := game.HomeTeamID
	shooter, opponent := game.HomePlayers, game.AwayPlayers
	keeper := *game.AwayStartGoalieID
	if i%2 == 1 {
		attacking = game.AwayTeamID
		shooter, opponent = opponent, shooter
		keeper = *game.HomeStartGoalieID
	}

	period := i/20 + 1
	clock := fmt.Sprintf("%02d:%02d:00", 19-(i%20), rand.Intn(60))
	player := shooter[rand.Intn(len(shooter))].ID
	player2 := opponent[rand.Intn(len(opponent))].ID

	ev := &schema.GameEvent{
		ID:       id,
		GameID:   game.ID,
		Number:   i + 1,
		Time:     &clock,
		Period:   period,
		TeamID:   attacking,
		PlayerID: &player,
	}

	switch rand.Intn(10) {
	case 0, 1, 2, 3, 4:
		ev.EventName = "shot on goal"
		ev.GoalieID = &keeper
		shotType := "save"
		if rand.Intn(10) == 0 {
			shotType = "goal"
			if rand.Intn(2) == 0 {
				ev.Player2ID = &player2
			}
		}
		ev.ShotType = &shotType
		ev.IsScoringChance = rand.Intn(4) == 0
	case 5, 6:
		ev.EventName = "turnover"
	case 7, 8:
		ev.EventName = "faceoff"
		ev.Player2ID = &player2
	default:
		ev.EventName = "penalty"
		length := 120.0
		ev.TimeLength = &length
		ev.Player2ID = &player2
	}
	return ev
}
