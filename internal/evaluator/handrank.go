package evaluator

import (
	"fmt"
	"strings"

	"github.com/cardroom/holdem/internal/deck"
)

// Category is the hand-type tier of a ranking. Categories are numerically
// ordered so a higher category always beats a lower one.
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// HandRank is the ranking of a best five-card hand. It is immutable once
// computed. PrimaryRank carries the deciding rank for the category (pair
// rank, trips rank, straight high card, top flush card, ...); Kickers carry
// the tie-breaking ranks, most significant first.
type HandRank struct {
	Category    Category
	PrimaryRank deck.Rank
	Kickers     []deck.Rank
	Strength    uint32
}

// newHandRank builds a ranking and derives its packed strength scalar.
// Category occupies the top nibble, then the primary rank, then up to four
// kickers, each shifted so that comparing Strength values is equivalent to
// the field-wise comparison in Compare.
func newHandRank(cat Category, primary deck.Rank, kickers ...deck.Rank) HandRank {
	strength := uint32(cat)<<28 | uint32(primary-deck.Two+1)<<24
	shift := 20
	for _, k := range kickers {
		strength |= uint32(k-deck.Two+1) << shift
		shift -= 4
	}
	return HandRank{
		Category:    cat,
		PrimaryRank: primary,
		Kickers:     kickers,
		Strength:    strength,
	}
}

// String renders the ranking for logs and hand histories, e.g.
// "Two Pair (K high, kickers Q 9)".
func (hr HandRank) String() string {
	if len(hr.Kickers) == 0 {
		return fmt.Sprintf("%s (%s high)", hr.Category, hr.PrimaryRank)
	}
	parts := make([]string, len(hr.Kickers))
	for i, k := range hr.Kickers {
		parts[i] = k.String()
	}
	return fmt.Sprintf("%s (%s high, kickers %s)", hr.Category, hr.PrimaryRank, strings.Join(parts, " "))
}

// Compare defines the total order over rankings: category first, then
// primary rank, then kickers element-wise; the first difference decides.
// It returns a negative value if a loses to b, a positive value if a beats
// b and zero on an exact tie.
func Compare(a, b HandRank) int {
	if a.Category != b.Category {
		return int(a.Category) - int(b.Category)
	}
	if a.PrimaryRank != b.PrimaryRank {
		return int(a.PrimaryRank) - int(b.PrimaryRank)
	}
	for i := 0; i < len(a.Kickers) && i < len(b.Kickers); i++ {
		if a.Kickers[i] != b.Kickers[i] {
			return int(a.Kickers[i]) - int(b.Kickers[i])
		}
	}
	return 0
}
