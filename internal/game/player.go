package game

import (
	"github.com/cardroom/holdem/internal/deck"
)

// Position is a player's named table position relative to the dealer.
type Position int

const (
	Dealer Position = iota
	SmallBlind
	BigBlind
	Early
	Middle
	Late
)

// String returns the position name.
func (p Position) String() string {
	switch p {
	case Dealer:
		return "dealer"
	case SmallBlind:
		return "small-blind"
	case BigBlind:
		return "big-blind"
	case Early:
		return "early"
	case Middle:
		return "middle"
	case Late:
		return "late"
	default:
		return "unknown"
	}
}

// ActionType is one of the five player action kinds.
type ActionType int

const (
	Fold ActionType = iota
	Check
	Call
	Bet
	Raise
)

// String returns the action name.
func (a ActionType) String() string {
	switch a {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Bet:
		return "bet"
	case Raise:
		return "raise"
	default:
		return "unknown"
	}
}

// PlayerAction is an input value describing one action. For Bet and Raise,
// Amount is the total the player wants committed for the current round
// ("raise to"), not the increment.
type PlayerAction struct {
	Type     ActionType
	Amount   int
	PlayerID string
}

// Player holds one seat's mutable per-hand state. ChipStack persists across
// hands; everything else resets when a new hand starts.
type Player struct {
	ID        string
	Name      string
	Seat      int
	ChipStack int

	HoleCards  []deck.Card
	CurrentBet int // committed this betting round
	TotalBet   int // committed this hand, drives side-pot tiers
	IsActive   bool
	IsAllIn    bool
	LastAction *PlayerAction

	Position   Position
	Eliminated bool
}

// resetForHand clears the per-hand fields. A player starts the hand active
// exactly when they still have chips.
func (p *Player) resetForHand() {
	p.HoleCards = nil
	p.CurrentBet = 0
	p.TotalBet = 0
	p.IsAllIn = false
	p.LastAction = nil
	p.IsActive = p.ChipStack > 0
}

// CanAct reports whether the player may take a betting action.
func (p *Player) CanAct() bool {
	return p.IsActive && !p.IsAllIn
}
