// Package ai implements a heuristic poker agent. It plays from the public
// table snapshot alone, the same information a remote client would have,
// and only ever proposes legal actions.
package ai

import (
	"github.com/cardroom/holdem/internal/deck"
	"github.com/cardroom/holdem/internal/evaluator"
	"github.com/cardroom/holdem/internal/game"
	"github.com/cardroom/holdem/internal/randutil"
)

// Strength thresholds on the 0..1 scale returned by handStrength.
const (
	raiseThreshold = 0.72
	callThreshold  = 0.34
	allInThreshold = 0.6
)

// Bot is a rule-based agent. The random source drives occasional bluffs;
// with a seeded source its play is fully reproducible.
type Bot struct {
	source randutil.Source
}

// New creates a bot. A nil source defaults to crypto randomness.
func New(source randutil.Source) *Bot {
	if source == nil {
		source = randutil.NewCryptoSource()
	}
	return &Bot{source: source}
}

// Decide picks an action for playerID from the snapshot. The returned
// action is legal for the snapshot it was derived from.
func (b *Bot) Decide(snap game.Snapshot, playerID string) game.PlayerAction {
	pv, ok := snap.PlayerByID(playerID)
	if !ok || !pv.IsActive || pv.IsAllIn {
		return game.PlayerAction{Type: game.Fold}
	}

	strength := b.handStrength(pv.HoleCards, snap.CommunityCards)
	tableBet := snap.TableBet()
	owed := tableBet - pv.CurrentBet

	if owed <= 0 {
		return b.decideUnpressured(snap, pv, tableBet, strength)
	}
	return b.decideFacingBet(pv, tableBet, owed, strength)
}

// decideUnpressured handles the no-chips-owed case: open a bet, raise after
// matching, or check.
func (b *Bot) decideUnpressured(snap game.Snapshot, pv game.PlayerView, tableBet int, strength float64) game.PlayerAction {
	aggressive := strength >= raiseThreshold || b.bluff()
	if !aggressive || pv.ChipStack == 0 {
		return game.PlayerAction{Type: game.Check}
	}

	if tableBet == 0 {
		amount := snap.Pot.TotalPot / 2
		if amount < snap.BigBlind {
			amount = snap.BigBlind
		}
		if amount > pv.ChipStack {
			amount = pv.ChipStack
		}
		return game.PlayerAction{Type: game.Bet, Amount: amount}
	}

	// Already matched (the big blind's option): raising to double the
	// table bet always clears the minimum increment.
	return b.raiseTo(pv, tableBet, tableBet*2)
}

// decideFacingBet handles the chips-owed case: raise strong hands, call
// medium ones and cheap bets, fold the rest.
func (b *Bot) decideFacingBet(pv game.PlayerView, tableBet, owed int, strength float64) game.PlayerAction {
	if owed >= pv.ChipStack {
		// Calling puts the whole stack in.
		if strength >= allInThreshold {
			return game.PlayerAction{Type: game.Call}
		}
		return game.PlayerAction{Type: game.Fold}
	}

	if strength >= raiseThreshold {
		return b.raiseTo(pv, tableBet, tableBet*2)
	}
	if strength >= callThreshold || owed <= pv.ChipStack/20 || b.bluff() {
		return game.PlayerAction{Type: game.Call}
	}
	return game.PlayerAction{Type: game.Fold}
}

// raiseTo clamps a raise target to the player's committable chips, falling
// back to a call when the stack cannot exceed the table bet.
func (b *Bot) raiseTo(pv game.PlayerView, tableBet, target int) game.PlayerAction {
	committed := pv.ChipStack + pv.CurrentBet
	if target > committed {
		target = committed
	}
	if target <= tableBet {
		return game.PlayerAction{Type: game.Call}
	}
	return game.PlayerAction{Type: game.Raise, Amount: target}
}

// bluff fires roughly one time in twelve.
func (b *Bot) bluff() bool {
	return b.source.IntN(12) == 0
}

// handStrength scores the player's hand on 0..1. Before the flop the score
// comes from hole-card heuristics; after it, from the evaluator's category
// for the best five-card hand available.
func (b *Bot) handStrength(hole, community []deck.Card) float64 {
	if len(community) < 3 {
		return preflopStrength(hole)
	}
	cards := make([]deck.Card, 0, len(hole)+len(community))
	cards = append(cards, hole...)
	cards = append(cards, community...)
	rank, err := evaluator.BestHand(cards)
	if err != nil {
		return 0
	}
	return postflopStrength(rank)
}

// preflopStrength is a coarse Sklansky-style grading of two hole cards.
func preflopStrength(hole []deck.Card) float64 {
	if len(hole) != 2 {
		return 0
	}
	high, low := hole[0].Rank, hole[1].Rank
	if low > high {
		high, low = low, high
	}

	score := float64(high+low) / float64(2*deck.Ace) * 0.5
	switch {
	case high == low:
		// Pocket pairs: 22 scores ~0.5, aces ~0.95.
		score = 0.45 + float64(high-deck.Two)*0.042
	case high >= deck.Queen && low >= deck.Ten:
		score += 0.25
	case high == deck.Ace:
		score += 0.15
	}
	if hole[0].Suit == hole[1].Suit {
		score += 0.05
	}
	if gap := high - low; gap >= 1 && gap <= 2 && high != low {
		score += 0.03
	}
	if score > 1 {
		score = 1
	}
	return score
}

// postflopStrength maps a made hand to a score. The fraction of the
// category's primary-rank range nudges the score so a king-high flush rates
// above a nine-high one.
func postflopStrength(rank evaluator.HandRank) float64 {
	base := map[evaluator.Category]float64{
		evaluator.HighCard:      0.10,
		evaluator.OnePair:       0.35,
		evaluator.TwoPair:       0.58,
		evaluator.ThreeOfAKind:  0.68,
		evaluator.Straight:      0.76,
		evaluator.Flush:         0.82,
		evaluator.FullHouse:     0.89,
		evaluator.FourOfAKind:   0.95,
		evaluator.StraightFlush: 0.99,
		evaluator.RoyalFlush:    1.0,
	}[rank.Category]

	nudge := float64(rank.PrimaryRank-deck.Two) / float64(deck.Ace-deck.Two) * 0.05
	score := base + nudge
	if score > 1 {
		score = 1
	}
	return score
}
