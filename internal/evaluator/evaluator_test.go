package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardroom/holdem/internal/deck"
	"github.com/cardroom/holdem/internal/randutil"
)

func card(rank deck.Rank, suit deck.Suit) deck.Card {
	return deck.NewCard(rank, suit)
}

func TestEvaluateRequiresSevenCards(t *testing.T) {
	t.Parallel()

	community := []deck.Card{
		card(deck.Two, deck.Spades), card(deck.Five, deck.Hearts), card(deck.Nine, deck.Clubs),
		card(deck.Jack, deck.Diamonds), card(deck.King, deck.Spades),
	}

	_, err := Evaluate([]deck.Card{card(deck.Ace, deck.Spades)}, community)
	var countErr *InvalidCardCountError
	require.ErrorAs(t, err, &countErr)

	_, err = Evaluate([]deck.Card{card(deck.Ace, deck.Spades), card(deck.Ace, deck.Hearts)}, community[:4])
	require.ErrorAs(t, err, &countErr)

	_, err = BestHand(community[:4])
	require.ErrorAs(t, err, &countErr)
}

func TestKnownHands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		hole        []deck.Card
		community   []deck.Card
		wantCat     Category
		wantPrimary deck.Rank
		wantKickers []deck.Rank
	}{
		{
			name: "royal flush",
			hole: []deck.Card{card(deck.Ace, deck.Spades), card(deck.King, deck.Spades)},
			community: []deck.Card{
				card(deck.Queen, deck.Spades), card(deck.Jack, deck.Spades), card(deck.Ten, deck.Spades),
				card(deck.Two, deck.Hearts), card(deck.Three, deck.Diamonds),
			},
			wantCat:     RoyalFlush,
			wantPrimary: deck.Ace,
		},
		{
			name: "nine high straight flush",
			hole: []deck.Card{card(deck.Nine, deck.Clubs), card(deck.Eight, deck.Clubs)},
			community: []deck.Card{
				card(deck.Seven, deck.Clubs), card(deck.Six, deck.Clubs), card(deck.Five, deck.Clubs),
				card(deck.Ace, deck.Hearts), card(deck.Ace, deck.Diamonds),
			},
			wantCat:     StraightFlush,
			wantPrimary: deck.Nine,
		},
		{
			name: "four kings with ace kicker",
			hole: []deck.Card{card(deck.King, deck.Hearts), card(deck.King, deck.Diamonds)},
			community: []deck.Card{
				card(deck.King, deck.Clubs), card(deck.King, deck.Spades), card(deck.Ace, deck.Hearts),
				card(deck.Two, deck.Clubs), card(deck.Three, deck.Diamonds),
			},
			wantCat:     FourOfAKind,
			wantPrimary: deck.King,
			wantKickers: []deck.Rank{deck.Ace},
		},
		{
			name: "full house from two sets of trips keeps higher trips",
			hole: []deck.Card{card(deck.Queen, deck.Hearts), card(deck.Queen, deck.Diamonds)},
			community: []deck.Card{
				card(deck.Queen, deck.Clubs), card(deck.Nine, deck.Spades), card(deck.Nine, deck.Hearts),
				card(deck.Nine, deck.Diamonds), card(deck.Two, deck.Clubs),
			},
			wantCat:     FullHouse,
			wantPrimary: deck.Queen,
			wantKickers: []deck.Rank{deck.Nine},
		},
		{
			name: "flush picks top five suited cards",
			hole: []deck.Card{card(deck.Ace, deck.Hearts), card(deck.Four, deck.Hearts)},
			community: []deck.Card{
				card(deck.Ten, deck.Hearts), card(deck.Eight, deck.Hearts), card(deck.Six, deck.Hearts),
				card(deck.Two, deck.Hearts), card(deck.King, deck.Spades),
			},
			wantCat:     Flush,
			wantPrimary: deck.Ace,
			wantKickers: []deck.Rank{deck.Ten, deck.Eight, deck.Six, deck.Four},
		},
		{
			name: "wheel straight ranks five high",
			hole: []deck.Card{card(deck.Ace, deck.Spades), card(deck.Two, deck.Hearts)},
			community: []deck.Card{
				card(deck.Three, deck.Clubs), card(deck.Four, deck.Diamonds), card(deck.Five, deck.Spades),
				card(deck.Nine, deck.Hearts), card(deck.Jack, deck.Clubs),
			},
			wantCat:     Straight,
			wantPrimary: deck.Five,
		},
		{
			name: "trips with two kickers",
			hole: []deck.Card{card(deck.Seven, deck.Spades), card(deck.Seven, deck.Hearts)},
			community: []deck.Card{
				card(deck.Seven, deck.Clubs), card(deck.King, deck.Diamonds), card(deck.Nine, deck.Spades),
				card(deck.Four, deck.Hearts), card(deck.Two, deck.Clubs),
			},
			wantCat:     ThreeOfAKind,
			wantPrimary: deck.Seven,
			wantKickers: []deck.Rank{deck.King, deck.Nine},
		},
		{
			name: "three pairs demote lowest to kicker",
			hole: []deck.Card{card(deck.Ace, deck.Spades), card(deck.Ace, deck.Hearts)},
			community: []deck.Card{
				card(deck.Ten, deck.Clubs), card(deck.Ten, deck.Diamonds), card(deck.Six, deck.Spades),
				card(deck.Six, deck.Hearts), card(deck.Three, deck.Clubs),
			},
			wantCat:     TwoPair,
			wantPrimary: deck.Ace,
			wantKickers: []deck.Rank{deck.Ten, deck.Six},
		},
		{
			name: "one pair with three kickers",
			hole: []deck.Card{card(deck.Jack, deck.Spades), card(deck.Jack, deck.Hearts)},
			community: []deck.Card{
				card(deck.Ace, deck.Clubs), card(deck.Eight, deck.Diamonds), card(deck.Five, deck.Spades),
				card(deck.Three, deck.Hearts), card(deck.Two, deck.Clubs),
			},
			wantCat:     OnePair,
			wantPrimary: deck.Jack,
			wantKickers: []deck.Rank{deck.Ace, deck.Eight, deck.Five},
		},
		{
			name: "high card takes top five ranks",
			hole: []deck.Card{card(deck.Ace, deck.Spades), card(deck.Jack, deck.Hearts)},
			community: []deck.Card{
				card(deck.Nine, deck.Clubs), card(deck.Seven, deck.Diamonds), card(deck.Five, deck.Spades),
				card(deck.Four, deck.Hearts), card(deck.Two, deck.Clubs),
			},
			wantCat:     HighCard,
			wantPrimary: deck.Ace,
			wantKickers: []deck.Rank{deck.Jack, deck.Nine, deck.Seven, deck.Five},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rank, err := Evaluate(tc.hole, tc.community)
			require.NoError(t, err)
			assert.Equal(t, tc.wantCat, rank.Category)
			assert.Equal(t, tc.wantPrimary, rank.PrimaryRank)
			if tc.wantKickers != nil {
				assert.Equal(t, tc.wantKickers, rank.Kickers)
			}
		})
	}
}

func TestRoyalBeatsStraightFlush(t *testing.T) {
	t.Parallel()

	royal, err := BestHand([]deck.Card{
		card(deck.Ace, deck.Spades), card(deck.King, deck.Spades), card(deck.Queen, deck.Spades),
		card(deck.Jack, deck.Spades), card(deck.Ten, deck.Spades),
	})
	require.NoError(t, err)

	nineHigh, err := BestHand([]deck.Card{
		card(deck.Nine, deck.Clubs), card(deck.Eight, deck.Clubs), card(deck.Seven, deck.Clubs),
		card(deck.Six, deck.Clubs), card(deck.Five, deck.Clubs),
	})
	require.NoError(t, err)

	assert.Positive(t, Compare(royal, nineHigh))
}

func TestWheelLosesToSixHighStraight(t *testing.T) {
	t.Parallel()

	wheel, err := BestHand([]deck.Card{
		card(deck.Ace, deck.Spades), card(deck.Two, deck.Hearts), card(deck.Three, deck.Clubs),
		card(deck.Four, deck.Diamonds), card(deck.Five, deck.Spades),
	})
	require.NoError(t, err)
	require.Equal(t, Straight, wheel.Category)
	require.Equal(t, deck.Five, wheel.PrimaryRank)

	sixHigh, err := BestHand([]deck.Card{
		card(deck.Six, deck.Spades), card(deck.Five, deck.Hearts), card(deck.Four, deck.Clubs),
		card(deck.Three, deck.Diamonds), card(deck.Two, deck.Spades),
	})
	require.NoError(t, err)
	require.Equal(t, Straight, sixHigh.Category)
	require.Equal(t, deck.Six, sixHigh.PrimaryRank)

	assert.Negative(t, Compare(wheel, sixHigh))
}

func TestKickerDecidesQuads(t *testing.T) {
	t.Parallel()

	aceKicker, err := BestHand([]deck.Card{
		card(deck.King, deck.Hearts), card(deck.King, deck.Diamonds), card(deck.King, deck.Clubs),
		card(deck.King, deck.Spades), card(deck.Ace, deck.Hearts), card(deck.Two, deck.Clubs),
		card(deck.Three, deck.Diamonds),
	})
	require.NoError(t, err)

	queenKicker, err := BestHand([]deck.Card{
		card(deck.King, deck.Hearts), card(deck.King, deck.Diamonds), card(deck.King, deck.Clubs),
		card(deck.King, deck.Spades), card(deck.Queen, deck.Hearts), card(deck.Two, deck.Clubs),
		card(deck.Three, deck.Diamonds),
	})
	require.NoError(t, err)

	assert.Positive(t, Compare(aceKicker, queenKicker))
}

// drawSeven deals seven cards from a freshly shuffled deterministic deck.
func drawSeven(t *testing.T, seed uint64) []deck.Card {
	t.Helper()
	d := deck.New(randutil.NewSeededSource(seed))
	d.Shuffle()
	cards := make([]deck.Card, 7)
	for i := range cards {
		c, err := d.Deal()
		require.NoError(t, err)
		cards[i] = c
	}
	return cards
}

func TestEvaluationTotalityAndDeterminism(t *testing.T) {
	t.Parallel()

	for seed := uint64(0); seed < 500; seed++ {
		cards := drawSeven(t, seed)

		first, err := BestHand(cards)
		require.NoError(t, err)
		second, err := BestHand(cards)
		require.NoError(t, err)

		assert.Equal(t, first, second, "evaluation not deterministic for %v", cards)
		assert.GreaterOrEqual(t, first.Category, HighCard)
		assert.LessOrEqual(t, first.Category, RoyalFlush)
		assert.GreaterOrEqual(t, first.PrimaryRank, deck.Two)
		assert.LessOrEqual(t, first.PrimaryRank, deck.Ace)
		assert.LessOrEqual(t, len(first.Kickers), 4)
	}
}

func TestCompareOrderProperties(t *testing.T) {
	t.Parallel()

	// Sample rankings from random deals and verify reflexivity, antisymmetry
	// and transitivity over all triples.
	var ranks []HandRank
	for seed := uint64(1000); seed < 1030; seed++ {
		r, err := BestHand(drawSeven(t, seed))
		require.NoError(t, err)
		ranks = append(ranks, r)
	}

	sign := func(x int) int {
		switch {
		case x < 0:
			return -1
		case x > 0:
			return 1
		default:
			return 0
		}
	}

	for _, a := range ranks {
		assert.Zero(t, Compare(a, a), "compare not reflexive for %s", a)
	}
	for _, a := range ranks {
		for _, b := range ranks {
			assert.Equal(t, -sign(Compare(b, a)), sign(Compare(a, b)))
		}
	}
	for _, a := range ranks {
		for _, b := range ranks {
			for _, c := range ranks {
				if Compare(a, b) > 0 && Compare(b, c) > 0 {
					assert.Positive(t, Compare(a, c))
				}
			}
		}
	}
}

func TestStrengthAgreesWithCompare(t *testing.T) {
	t.Parallel()

	var ranks []HandRank
	for seed := uint64(2000); seed < 2100; seed++ {
		r, err := BestHand(drawSeven(t, seed))
		require.NoError(t, err)
		ranks = append(ranks, r)
	}

	for _, a := range ranks {
		for _, b := range ranks {
			cmp := Compare(a, b)
			switch {
			case cmp > 0:
				assert.Greater(t, a.Strength, b.Strength)
			case cmp < 0:
				assert.Less(t, a.Strength, b.Strength)
			default:
				assert.Equal(t, a.Strength, b.Strength)
			}
		}
	}
}
