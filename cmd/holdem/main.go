package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/cardroom/holdem/internal/ai"
	"github.com/cardroom/holdem/internal/config"
	"github.com/cardroom/holdem/internal/display"
	"github.com/cardroom/holdem/internal/game"
	"github.com/cardroom/holdem/internal/randutil"
	"github.com/cardroom/holdem/internal/session"
)

type CLI struct {
	Config   string `short:"c" help:"Path to HCL config file." default:"holdem.hcl"`
	Hands    int    `help:"Stop after this many hands (0 plays until one player holds every chip)." default:"0"`
	Seed     uint64 `help:"Seed for deterministic shuffles and bot play (0 uses crypto randomness)." default:"0"`
	Resume   bool   `help:"Resume chip balances and the button from the session file."`
	LogLevel string `help:"Log level override (debug, info, warn, error)."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("Play Texas Hold'em against the house bots."))

	if err := run(cli); err != nil {
		log.Fatal("game ended with an error", "error", err)
	}
	ctx.Exit(0)
}

func run(cli CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := cfg.Table.LogLevel
	if cli.LogLevel != "" {
		level = cli.LogLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	if parsed, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(parsed)
	}

	store := session.NewStore(cfg.Table.SessionFile)
	state, err := store.Load()
	if err != nil {
		return err
	}

	seats := make([]game.Seat, len(cfg.Players))
	for i, p := range cfg.Players {
		seats[i] = game.Seat{ID: p.Name, Name: p.Name, Chips: p.Chips}
	}

	opts := []game.Option{game.WithLogger(logger)}
	if cli.Seed != 0 {
		opts = append(opts, game.WithSource(randutil.NewSeededSource(cli.Seed)))
	}
	if cli.Resume && len(state.Balances) > 0 {
		opts = append(opts, game.WithDealerPosition(state.DealerPosition))
	}

	engine, err := game.NewGameEngine(seats, cfg.Table.SmallBlind, cfg.Table.BigBlind, opts...)
	if err != nil {
		return err
	}

	handsPlayed := 0
	if cli.Resume && len(state.Balances) > 0 {
		if err := engine.RestoreBalances(state.Balances); err != nil {
			logger.Warn("could not resume session, starting fresh", "error", err)
		} else {
			handsPlayed = state.HandsPlayed
			logger.Info("session resumed", "handsPlayed", handsPlayed)
		}
	}

	agents := make(map[string]game.Agent, len(cfg.Players))
	names := make(map[string]string, len(cfg.Players))
	for i, p := range cfg.Players {
		names[p.Name] = p.Name
		if p.Human {
			agents[p.Name] = display.NewHumanAgent(os.Stdin, os.Stdout)
			continue
		}
		var source randutil.Source
		if cli.Seed != 0 {
			source = randutil.NewSeededSource(cli.Seed + uint64(i) + 1)
		}
		agents[p.Name] = ai.New(source)
	}

	flow := game.NewGameFlowManager(engine, logger)

	save := func() {
		if err := store.Save(session.State{
			Balances:       engine.Balances(),
			DealerPosition: engine.DealerPosition(),
			HandsPlayed:    handsPlayed,
			SavedAt:        time.Now(),
		}); err != nil {
			logger.Error("failed to save session", "error", err)
		}
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		save()
		fmt.Println()
		logger.Info("session saved", "file", store.Path())
		os.Exit(0)
	}()

	fmt.Println(display.Title())
	fmt.Println()

	limit := cfg.Table.HandLimit
	if cli.Hands > 0 {
		limit = cli.Hands
	}

	for !flow.ShouldGameEnd() {
		if limit > 0 && handsPlayed >= limit {
			logger.Info("hand limit reached", "hands", handsPlayed)
			break
		}

		record, err := flow.PlayHand(agents)
		if err != nil {
			return err
		}
		handsPlayed++

		fmt.Println()
		fmt.Print(display.RenderHandResult(*record, names))

		for _, id := range flow.HandlePlayerEliminations() {
			fmt.Printf("%s is out of chips\n", names[id])
		}
		save()
	}

	if winner, ok := flow.GameWinner(); ok {
		fmt.Printf("\n%s wins the game with %d chips after %d hands\n",
			winner.Name, winner.ChipStack, handsPlayed)
	}
	return nil
}
