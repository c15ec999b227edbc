// Package evaluator ranks poker hands: best five-card hand out of seven,
// with a total order over the results.
package evaluator

import (
	"fmt"
	"sort"

	"github.com/cardroom/holdem/internal/deck"
)

// InvalidCardCountError reports an evaluation request with the wrong number
// of cards.
type InvalidCardCountError struct {
	Got  int
	Want string
}

func (e *InvalidCardCountError) Error() string {
	return fmt.Sprintf("evaluator: got %d cards, want %s", e.Got, e.Want)
}

// Evaluate ranks the best five-card hand from exactly two hole cards and
// five community cards.
func Evaluate(holeCards, communityCards []deck.Card) (HandRank, error) {
	if len(holeCards) != 2 {
		return HandRank{}, &InvalidCardCountError{Got: len(holeCards), Want: "exactly 2 hole cards"}
	}
	if len(communityCards) != 5 {
		return HandRank{}, &InvalidCardCountError{Got: len(communityCards), Want: "exactly 5 community cards"}
	}
	cards := make([]deck.Card, 0, 7)
	cards = append(cards, holeCards...)
	cards = append(cards, communityCards...)
	return BestHand(cards)
}

// BestHand ranks the best five-card hand from an arbitrary set of at least
// five cards.
func BestHand(cards []deck.Card) (HandRank, error) {
	if len(cards) < 5 {
		return HandRank{}, &InvalidCardCountError{Got: len(cards), Want: "at least 5 cards"}
	}

	// Flushes and straight flushes dominate the pair-family checks: with at
	// most seven cards a flush cannot coexist with quads or a full house,
	// so finding one settles the category immediately.
	if flushRanks, ok := flushSuitRanks(cards); ok {
		if high, ok := straightHigh(flushRanks); ok {
			if high == deck.Ace {
				return newHandRank(RoyalFlush, deck.Ace), nil
			}
			return newHandRank(StraightFlush, high), nil
		}
		return newHandRank(Flush, flushRanks[0], flushRanks[1:5]...), nil
	}

	counts := countRanks(cards)

	if quad, ok := highestWithCount(counts, 4); ok {
		kickers := bestRemaining(counts, 1, quad)
		return newHandRank(FourOfAKind, quad, kickers...), nil
	}

	trips := ranksWithCount(counts, 3)
	if len(trips) >= 2 {
		// Two sets of trips: the higher plays as the trips, the lower
		// supplies the pair.
		return newHandRank(FullHouse, trips[0], trips[1]), nil
	}
	pairs := ranksWithCount(counts, 2)
	if len(trips) == 1 && len(pairs) >= 1 {
		return newHandRank(FullHouse, trips[0], pairs[0]), nil
	}

	if high, ok := straightHigh(distinctRanksDesc(counts)); ok {
		return newHandRank(Straight, high), nil
	}

	if len(trips) == 1 {
		kickers := bestRemaining(counts, 2, trips[0])
		return newHandRank(ThreeOfAKind, trips[0], kickers...), nil
	}

	if len(pairs) >= 2 {
		// With three pairs in seven cards the lowest pair never forms a
		// second two-pair; its rank simply competes as a kicker.
		kickers := bestRemaining(counts, 1, pairs[0], pairs[1])
		all := append([]deck.Rank{pairs[1]}, kickers...)
		return newHandRank(TwoPair, pairs[0], all...), nil
	}

	if len(pairs) == 1 {
		kickers := bestRemaining(counts, 3, pairs[0])
		return newHandRank(OnePair, pairs[0], kickers...), nil
	}

	ranks := distinctRanksDesc(counts)
	return newHandRank(HighCard, ranks[0], ranks[1:5]...), nil
}

// flushSuitRanks returns the distinct ranks of the first suit holding five
// or more cards, sorted descending.
func flushSuitRanks(cards []deck.Card) ([]deck.Rank, bool) {
	bySuit := make(map[deck.Suit][]deck.Rank, deck.NumSuits)
	for _, c := range cards {
		bySuit[c.Suit] = append(bySuit[c.Suit], c.Rank)
	}
	for _, ranks := range bySuit {
		if len(ranks) >= 5 {
			sort.Slice(ranks, func(i, j int) bool { return ranks[i] > ranks[j] })
			return ranks, true
		}
	}
	return nil, false
}

func countRanks(cards []deck.Card) map[deck.Rank]int {
	counts := make(map[deck.Rank]int, len(cards))
	for _, c := range cards {
		counts[c.Rank]++
	}
	return counts
}

// highestWithCount returns the highest rank appearing exactly n times.
func highestWithCount(counts map[deck.Rank]int, n int) (deck.Rank, bool) {
	for rank := deck.Ace; rank >= deck.Two; rank-- {
		if counts[rank] == n {
			return rank, true
		}
	}
	return 0, false
}

// ranksWithCount returns all ranks appearing exactly n times, descending.
func ranksWithCount(counts map[deck.Rank]int, n int) []deck.Rank {
	var ranks []deck.Rank
	for rank := deck.Ace; rank >= deck.Two; rank-- {
		if counts[rank] == n {
			ranks = append(ranks, rank)
		}
	}
	return ranks
}

// bestRemaining returns the top n ranks present in counts, excluding the
// given ranks, descending.
func bestRemaining(counts map[deck.Rank]int, n int, exclude ...deck.Rank) []deck.Rank {
	excluded := make(map[deck.Rank]bool, len(exclude))
	for _, r := range exclude {
		excluded[r] = true
	}
	kickers := make([]deck.Rank, 0, n)
	for rank := deck.Ace; rank >= deck.Two && len(kickers) < n; rank-- {
		if counts[rank] > 0 && !excluded[rank] {
			kickers = append(kickers, rank)
		}
	}
	return kickers
}

func distinctRanksDesc(counts map[deck.Rank]int) []deck.Rank {
	ranks := make([]deck.Rank, 0, len(counts))
	for rank := deck.Ace; rank >= deck.Two; rank-- {
		if counts[rank] > 0 {
			ranks = append(ranks, rank)
		}
	}
	return ranks
}

// straightHigh scans descending for the highest run of five consecutive
// distinct ranks. The wheel (A-2-3-4-5) ranks as five-high, so it loses to
// a six-high straight.
func straightHigh(ranksDesc []deck.Rank) (deck.Rank, bool) {
	present := make(map[deck.Rank]bool, len(ranksDesc))
	for _, r := range ranksDesc {
		present[r] = true
	}
	for high := deck.Ace; high >= deck.Six; high-- {
		run := true
		for off := deck.Rank(0); off < 5; off++ {
			if !present[high-off] {
				run = false
				break
			}
		}
		if run {
			return high, true
		}
	}
	if present[deck.Ace] && present[deck.Two] && present[deck.Three] && present[deck.Four] && present[deck.Five] {
		return deck.Five, true
	}
	return 0, false
}
