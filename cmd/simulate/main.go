package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/cardroom/holdem/internal/ai"
	"github.com/cardroom/holdem/internal/display"
	"github.com/cardroom/holdem/internal/game"
	"github.com/cardroom/holdem/internal/randutil"
)

type CLI struct {
	Tables     int    `short:"t" help:"Number of tables to run in parallel." default:"4"`
	Hands      int    `short:"n" help:"Maximum hands per table." default:"200"`
	Players    int    `short:"p" help:"Players per table (2-10)." default:"6"`
	Chips      int    `help:"Starting stack per player." default:"1000"`
	SmallBlind int    `help:"Small blind." default:"10"`
	BigBlind   int    `help:"Big blind." default:"20"`
	Seed       uint64 `short:"s" help:"Base seed; table i uses seed+i." default:"1"`
	LogLevel   string `help:"Log level (debug, info, warn, error)." default:"warn"`
}

// tableStats aggregates one table's run.
type tableStats struct {
	HandsPlayed int
	FoldOuts    int
	Showdowns   int
	BiggestPot  int
	Eliminated  int
	Winner      string
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("simulate"),
		kong.Description("Run bot-only Hold'em tables in parallel and report statistics."))

	if cli.Players < 2 || cli.Players > 10 {
		log.Fatal("players per table must be between 2 and 10", "players", cli.Players)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if parsed, err := log.ParseLevel(cli.LogLevel); err == nil {
		logger.SetLevel(parsed)
	}

	results := make([]tableStats, cli.Tables)
	var eg errgroup.Group
	for i := 0; i < cli.Tables; i++ {
		eg.Go(func() error {
			stats, err := runTable(cli, cli.Seed+uint64(i), logger.With("table", i))
			if err != nil {
				return err
			}
			results[i] = stats
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		log.Fatal("simulation failed", "error", err)
	}

	printSummary(cli, results)
	ctx.Exit(0)
}

func runTable(cli CLI, seed uint64, logger *log.Logger) (tableStats, error) {
	seats := make([]game.Seat, cli.Players)
	agents := make(map[string]game.Agent, cli.Players)
	for i := range seats {
		id := fmt.Sprintf("bot-%d", i+1)
		seats[i] = game.Seat{ID: id, Name: id, Chips: cli.Chips}
		agents[id] = ai.New(randutil.NewSeededSource(seed*1000 + uint64(i)))
	}

	engine, err := game.NewGameEngine(seats, cli.SmallBlind, cli.BigBlind,
		game.WithSource(randutil.NewSeededSource(seed)),
		game.WithLogger(logger),
	)
	if err != nil {
		return tableStats{}, err
	}
	flow := game.NewGameFlowManager(engine, logger)

	var stats tableStats
	for stats.HandsPlayed < cli.Hands && !flow.ShouldGameEnd() {
		record, err := flow.PlayHand(agents)
		if err != nil {
			return tableStats{}, err
		}
		stats.HandsPlayed++
		if record.WonByFold {
			stats.FoldOuts++
		} else {
			stats.Showdowns++
		}
		if record.PotTotal > stats.BiggestPot {
			stats.BiggestPot = record.PotTotal
		}
		stats.Eliminated += len(flow.HandlePlayerEliminations())
	}

	if winner, ok := flow.GameWinner(); ok {
		stats.Winner = winner.ID
	}
	return stats, nil
}

func printSummary(cli CLI, results []tableStats) {
	fmt.Println(display.Title())
	fmt.Println()

	totalHands, totalFoldOuts, totalShowdowns := 0, 0, 0
	for i, r := range results {
		outcome := "no winner yet"
		if r.Winner != "" {
			outcome = r.Winner + " won"
		}
		fmt.Printf("table %d: %4d hands, %4d fold-outs, %4d showdowns, biggest pot %5d, %d busted, %s\n",
			i, r.HandsPlayed, r.FoldOuts, r.Showdowns, r.BiggestPot, r.Eliminated, outcome)
		totalHands += r.HandsPlayed
		totalFoldOuts += r.FoldOuts
		totalShowdowns += r.Showdowns
	}

	fmt.Printf("\n%d tables, %d hands total", cli.Tables, totalHands)
	if totalHands > 0 {
		fmt.Printf(", %.0f%% reached showdown", float64(totalShowdowns)/float64(totalHands)*100)
	}
	fmt.Println()
}
