package game

import (
	"github.com/pkg/errors"
)

// BettingSystem validates and applies single player actions. It is
// stateless apart from the big blind it was configured with; per-round
// state (table bet, last raise increment) is passed in by the engine.
type BettingSystem struct {
	bigBlind int
}

// NewBettingSystem creates a betting system. The big blind must be positive.
func NewBettingSystem(bigBlind int) (*BettingSystem, error) {
	if bigBlind <= 0 {
		return nil, errors.Errorf("big blind must be positive, got %d", bigBlind)
	}
	return &BettingSystem{bigBlind: bigBlind}, nil
}

// BigBlind returns the configured big blind amount.
func (bs *BettingSystem) BigBlind() int {
	return bs.bigBlind
}

// TableBet returns the highest current-round commitment at the table.
func TableBet(players []*Player) int {
	bet := 0
	for _, p := range players {
		if p.CurrentBet > bet {
			bet = p.CurrentBet
		}
	}
	return bet
}

// minRaiseTo returns the smallest legal raise target. The last raise
// increment is tracked by the engine per round; before any raise it falls
// back to the big blind.
func (bs *BettingSystem) minRaiseTo(tableBet, lastRaise int) int {
	if lastRaise <= 0 {
		lastRaise = bs.bigBlind
	}
	return tableBet + lastRaise
}

// ValidateAction checks an action against the table state without mutating
// anything. A nil return means the action is legal; otherwise the error is
// a *ValidationError explaining why.
func (bs *BettingSystem) ValidateAction(player *Player, action PlayerAction, tableBet, lastRaise int) error {
	if !player.IsActive {
		return invalidAction(player.ID, "player is not active in this hand")
	}
	if player.IsAllIn {
		return invalidAction(player.ID, "player is all-in and cannot act")
	}

	switch action.Type {
	case Fold:
		return nil

	case Check:
		if tableBet != player.CurrentBet {
			return invalidAction(player.ID, "cannot check, %d owed to call", tableBet-player.CurrentBet)
		}
		return nil

	case Call:
		if tableBet <= player.CurrentBet {
			return invalidAction(player.ID, "no bet to call")
		}
		if player.ChipStack <= 0 {
			return invalidAction(player.ID, "no chips remaining")
		}
		return nil

	case Bet:
		if tableBet != 0 {
			return invalidAction(player.ID, "cannot bet when a bet is outstanding, raise instead")
		}
		if action.Amount <= 0 {
			return invalidAction(player.ID, "bet amount must be positive")
		}
		if action.Amount > player.ChipStack {
			return invalidAction(player.ID, "bet %d exceeds stack %d", action.Amount, player.ChipStack)
		}
		// Below the big blind is only legal as an all-in for the stack.
		if action.Amount < bs.bigBlind && action.Amount != player.ChipStack {
			return invalidAction(player.ID, "bet %d below minimum %d", action.Amount, bs.bigBlind)
		}
		return nil

	case Raise:
		if tableBet == 0 {
			return invalidAction(player.ID, "nothing to raise, bet instead")
		}
		committed := player.ChipStack + player.CurrentBet
		if action.Amount > committed {
			return invalidAction(player.ID, "raise to %d exceeds stack", action.Amount)
		}
		if min := bs.minRaiseTo(tableBet, lastRaise); action.Amount < min && action.Amount != committed {
			return invalidAction(player.ID, "raise to %d below minimum %d", action.Amount, min)
		}
		if action.Amount <= tableBet {
			return invalidAction(player.ID, "raise to %d does not exceed current bet %d", action.Amount, tableBet)
		}
		return nil

	default:
		return invalidAction(player.ID, "unknown action type")
	}
}

// ProcessAction applies a validated action, mutating the player and the
// pot. The amount actually moved is capped at the player's stack; a stack
// reaching exactly zero flips the player all-in. Every branch keeps
// player chips plus pot total invariant.
func (bs *BettingSystem) ProcessAction(player *Player, action PlayerAction, players []*Player, pot *PotState) {
	tableBet := TableBet(players)

	switch action.Type {
	case Fold:
		player.IsActive = false

	case Check:
		// Nothing moves.

	case Call:
		bs.commit(player, tableBet-player.CurrentBet, pot)

	case Bet, Raise:
		bs.commit(player, action.Amount-player.CurrentBet, pot)
	}

	act := action
	player.LastAction = &act
}

// commit moves up to amount chips from the player's stack into the pot.
func (bs *BettingSystem) commit(player *Player, amount int, pot *PotState) {
	if amount > player.ChipStack {
		amount = player.ChipStack
	}
	if amount <= 0 {
		return
	}
	player.ChipStack -= amount
	player.CurrentBet += amount
	player.TotalBet += amount
	pot.add(amount)
	if player.ChipStack == 0 {
		player.IsAllIn = true
	}
}

// IsBettingRoundComplete reports whether no further action is possible this
// round: at most one player can still act, or every player who can act has
// acted and matched the table bet. Blinds do not count as having acted, so
// the big blind keeps its preflop option.
func (bs *BettingSystem) IsBettingRoundComplete(players []*Player) bool {
	tableBet := TableBet(players)

	canAct := 0
	for _, p := range players {
		if p.CanAct() {
			canAct++
		}
	}
	if canAct == 0 {
		return true
	}
	if canAct == 1 {
		// The lone remaining actor may still owe a call to an all-in.
		for _, p := range players {
			if p.CanAct() && p.CurrentBet != tableBet {
				return false
			}
		}
		return true
	}

	for _, p := range players {
		if !p.CanAct() {
			continue
		}
		if p.LastAction == nil || p.CurrentBet != tableBet {
			return false
		}
	}
	return true
}
