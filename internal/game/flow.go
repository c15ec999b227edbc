package game

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// Agent decides a player's next action from the public snapshot. Human
// input and AI both arrive through this interface; neither has privileged
// access to engine internals.
type Agent interface {
	Decide(snapshot Snapshot, playerID string) PlayerAction
}

// GameFlowManager sequences hands across a session: dealer rotation,
// position naming, eliminations and session termination. Chip stacks live
// in the engine's player list; the manager reads through it.
type GameFlowManager struct {
	engine *GameEngine
	logger *log.Logger
}

// NewGameFlowManager creates a flow manager for one engine.
func NewGameFlowManager(engine *GameEngine, logger *log.Logger) *GameFlowManager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &GameFlowManager{engine: engine, logger: logger}
}

// Engine returns the managed engine.
func (fm *GameFlowManager) Engine() *GameEngine {
	return fm.engine
}

// StartNextHand rotates the dealer button to the next funded seat,
// recomputes every player's named position relative to it and starts the
// hand.
func (fm *GameFlowManager) StartNextHand() error {
	fm.engine.AdvanceDealer()
	fm.assignPositions()
	if err := fm.engine.StartNewHand(); err != nil {
		return err
	}
	fm.logger.Debug("hand started", "dealer", fm.engine.DealerPosition())
	return nil
}

// assignPositions names each funded seat's position clockwise from the
// dealer: dealer, small blind, big blind, then early, middle and late
// thirds of the remaining seats.
func (fm *GameFlowManager) assignPositions() {
	players := fm.engine.Players()
	n := len(players)
	dealer := fm.engine.DealerPosition()

	funded := make([]*Player, 0, n)
	for i := 0; i < n; i++ {
		p := players[(dealer+i)%n]
		if p.ChipStack > 0 {
			funded = append(funded, p)
		}
	}

	for i, p := range funded {
		switch {
		case i == 0:
			p.Position = Dealer
		case i == 1:
			p.Position = SmallBlind
		case i == 2:
			p.Position = BigBlind
		default:
			// Split the remaining seats into thirds.
			rest := len(funded) - 3
			offset := i - 3
			switch {
			case offset < rest/3:
				p.Position = Early
			case offset < 2*rest/3:
				p.Position = Middle
			default:
				p.Position = Late
			}
		}
	}
}

// PlayHand drives one complete hand, asking each agent for a decision when
// its player is due to act. Invalid decisions are rejected by the engine
// and retried as a fold so a misbehaving agent cannot stall the table.
func (fm *GameFlowManager) PlayHand(agents map[string]Agent) (*HandRecord, error) {
	if err := fm.StartNextHand(); err != nil {
		return nil, err
	}

	// A hand cannot need more actions than seats times stages times a
	// generous reraise allowance; anything beyond that is a stuck loop.
	maxActions := len(fm.engine.Players()) * 4 * 32
	for i := 0; i < maxActions; i++ {
		playerID, ok := fm.engine.ActivePlayerID()
		if !ok {
			break
		}
		agent, found := agents[playerID]
		if !found {
			return nil, errors.Errorf("no agent registered for player %q", playerID)
		}

		action := agent.Decide(fm.engine.Snapshot(), playerID)
		if err := fm.engine.ProcessPlayerAction(playerID, action); err != nil {
			if IsFatal(err) {
				return nil, err
			}
			fm.logger.Warn("agent decision rejected, folding",
				"player", playerID, "action", action.Type, "error", err)
			if err := fm.engine.ProcessPlayerAction(playerID, PlayerAction{Type: Fold}); err != nil {
				return nil, err
			}
		}
	}

	if fm.engine.HandInProgress() {
		return nil, errors.New("hand did not complete")
	}
	history := fm.engine.History()
	if len(history) == 0 {
		return nil, errors.New("hand completed without a record")
	}
	record := history[len(history)-1]
	return &record, nil
}

// HandlePlayerEliminations marks busted players eliminated and returns the
// IDs newly eliminated by this call. Already-eliminated players are not
// re-reported.
func (fm *GameFlowManager) HandlePlayerEliminations() []string {
	var eliminated []string
	for _, p := range fm.engine.Players() {
		if p.ChipStack == 0 && !p.Eliminated {
			p.Eliminated = true
			p.IsActive = false
			eliminated = append(eliminated, p.ID)
			fm.logger.Info("player eliminated", "player", p.ID)
		}
	}
	return eliminated
}

// ShouldGameEnd reports whether at most one player still has chips.
func (fm *GameFlowManager) ShouldGameEnd() bool {
	funded := 0
	for _, p := range fm.engine.Players() {
		if p.ChipStack > 0 {
			funded++
		}
	}
	return funded <= 1
}

// GameWinner returns the last funded player once the game has ended.
func (fm *GameFlowManager) GameWinner() (*Player, bool) {
	if !fm.ShouldGameEnd() {
		return nil, false
	}
	for _, p := range fm.engine.Players() {
		if p.ChipStack > 0 {
			return p, true
		}
	}
	return nil, false
}
