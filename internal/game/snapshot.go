package game

import (
	"github.com/cardroom/holdem/internal/deck"
)

// PlayerView is a player's state as published to callers. Hole cards are
// included; hiding opponents' cards from a particular viewer is the
// rendering layer's concern.
type PlayerView struct {
	ID         string
	Name       string
	Seat       int
	ChipStack  int
	HoleCards  []deck.Card
	CurrentBet int
	TotalBet   int
	IsActive   bool
	IsAllIn    bool
	LastAction *PlayerAction
	Position   Position
	Eliminated bool
}

// Snapshot is an immutable copy of the table state for rendering, AI and
// persistence layers. Mutating a snapshot never affects the engine.
type Snapshot struct {
	HandID            string
	Players           []PlayerView
	CommunityCards    []deck.Card
	Pot               PotState
	Stage             Stage
	DealerPosition    int
	ActivePlayerIndex int
	BettingRound      int
	SmallBlind        int
	BigBlind          int
	HandInProgress    bool
	History           []HandRecord
}

// Snapshot publishes a deep copy of the current game state.
func (ge *GameEngine) Snapshot() Snapshot {
	players := make([]PlayerView, len(ge.players))
	for i, p := range ge.players {
		view := PlayerView{
			ID:         p.ID,
			Name:       p.Name,
			Seat:       p.Seat,
			ChipStack:  p.ChipStack,
			HoleCards:  append([]deck.Card(nil), p.HoleCards...),
			CurrentBet: p.CurrentBet,
			TotalBet:   p.TotalBet,
			IsActive:   p.IsActive,
			IsAllIn:    p.IsAllIn,
			Position:   p.Position,
			Eliminated: p.Eliminated,
		}
		if p.LastAction != nil {
			act := *p.LastAction
			view.LastAction = &act
		}
		players[i] = view
	}

	pot := PotState{MainPot: ge.pot.MainPot, TotalPot: ge.pot.TotalPot}
	for _, sp := range ge.pot.SidePots {
		pot.SidePots = append(pot.SidePots, SidePot{
			Amount:            sp.Amount,
			EligiblePlayerIDs: append([]string(nil), sp.EligiblePlayerIDs...),
		})
	}

	return Snapshot{
		HandID:            ge.handID,
		Players:           players,
		CommunityCards:    append([]deck.Card(nil), ge.communityCards...),
		Pot:               pot,
		Stage:             ge.stage,
		DealerPosition:    ge.dealerPos,
		ActivePlayerIndex: ge.activeIdx,
		BettingRound:      ge.bettingRound,
		SmallBlind:        ge.smallBlind,
		BigBlind:          ge.bigBlind,
		HandInProgress:    ge.handInProgress,
		History:           append([]HandRecord(nil), ge.history...),
	}
}

// TableBet returns the highest current-round commitment in the snapshot.
func (s Snapshot) TableBet() int {
	bet := 0
	for _, p := range s.Players {
		if p.CurrentBet > bet {
			bet = p.CurrentBet
		}
	}
	return bet
}

// PlayerByID finds a player view by ID.
func (s Snapshot) PlayerByID(id string) (PlayerView, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return PlayerView{}, false
}
