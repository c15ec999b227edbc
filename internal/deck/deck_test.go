package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardroom/holdem/internal/randutil"
)

func TestDeckDealsAllUniqueCards(t *testing.T) {
	t.Parallel()

	d := New(randutil.NewSeededSource(1))
	d.Shuffle()

	seen := make(map[Card]bool, Size)
	suitCounts := make(map[Suit]int)
	rankCounts := make(map[Rank]int)

	for i := 0; i < Size; i++ {
		card, err := d.Deal()
		require.NoError(t, err, "deal %d", i)
		require.False(t, seen[card], "card %s dealt twice", card)
		seen[card] = true
		suitCounts[card.Suit]++
		rankCounts[card.Rank]++
	}

	assert.Equal(t, 0, d.Remaining())
	for suit := Spades; suit <= Clubs; suit++ {
		assert.Equal(t, 13, suitCounts[suit], "suit %s", suit)
	}
	for rank := Two; rank <= Ace; rank++ {
		assert.Equal(t, 4, rankCounts[rank], "rank %s", rank)
	}
}

func TestDealFromEmptyDeckFails(t *testing.T) {
	t.Parallel()

	d := New(randutil.NewSeededSource(2))
	for i := 0; i < Size; i++ {
		_, err := d.Deal()
		require.NoError(t, err)
	}

	_, err := d.Deal()
	require.ErrorIs(t, err, ErrExhausted)
}

func TestResetRestoresFullDeck(t *testing.T) {
	t.Parallel()

	d := New(randutil.NewSeededSource(3))
	d.Shuffle()
	for i := 0; i < 10; i++ {
		_, err := d.Deal()
		require.NoError(t, err)
	}
	require.Equal(t, Size-10, d.Remaining())

	d.Reset()
	assert.Equal(t, Size, d.Remaining())

	// Cards dealt before the reset may be dealt again afterwards.
	for i := 0; i < Size; i++ {
		_, err := d.Deal()
		require.NoError(t, err)
	}
}

func TestShuffleProducesDifferentOrderings(t *testing.T) {
	t.Parallel()

	// Statistical property: two independently shuffled decks should differ
	// in the vast majority of positions.
	a := New(randutil.NewSeededSource(100))
	b := New(randutil.NewSeededSource(200))
	a.Shuffle()
	b.Shuffle()

	differing := 0
	for i := 0; i < Size; i++ {
		ca, err := a.Deal()
		require.NoError(t, err)
		cb, err := b.Deal()
		require.NoError(t, err)
		if ca != cb {
			differing++
		}
	}

	assert.GreaterOrEqual(t, differing, 40, "shuffles too similar: %d positions differ", differing)
}

func TestCryptoSourceShuffle(t *testing.T) {
	t.Parallel()

	d := New(nil) // defaults to the crypto source
	d.Shuffle()

	seen := make(map[Card]bool, Size)
	for i := 0; i < Size; i++ {
		card, err := d.Deal()
		require.NoError(t, err)
		require.False(t, seen[card])
		seen[card] = true
	}
}

func TestCardString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "A♠", NewCard(Ace, Spades).String())
	assert.Equal(t, "T♦", NewCard(Ten, Diamonds).String())
	assert.Equal(t, "2♣", NewCard(Two, Clubs).String())
	assert.Equal(t, "K♥", NewCard(King, Hearts).String())
}
