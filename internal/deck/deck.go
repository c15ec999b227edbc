package deck

import (
	"fmt"

	"github.com/cardroom/holdem/internal/randutil"
)

// Size is the number of cards in a full deck.
const Size = 52

// ErrExhausted is returned when a card is requested from an empty deck.
// Callers treat it as fatal: the engine never deals more than 52 cards per
// hand, so hitting it means an engine defect.
var ErrExhausted = fmt.Errorf("deck: no cards remaining")

// DuplicateCardError reports the same card leaving the deck twice since the
// last reset. It can only arise from internal corruption and is fatal.
type DuplicateCardError struct {
	Card Card
}

func (e *DuplicateCardError) Error() string {
	return fmt.Sprintf("deck: card %s dealt twice since reset", e.Card)
}

// Deck is a shuffled, depletable sequence of unique cards.
type Deck struct {
	cards  []Card
	dealt  map[Card]bool
	source randutil.Source
}

// New creates a full deck in canonical order using the given random source.
// A nil source falls back to the crypto-strong default.
func New(source randutil.Source) *Deck {
	if source == nil {
		source = randutil.NewCryptoSource()
	}
	d := &Deck{source: source}
	d.Reset()
	return d
}

// Reset repopulates all 52 unique cards and clears dealt tracking. It does
// not shuffle.
func (d *Deck) Reset() {
	d.cards = d.cards[:0]
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	d.dealt = make(map[Card]bool, Size)
}

// Shuffle permutes the remaining cards with an unbiased Fisher-Yates pass.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.source.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the top card. It fails with ErrExhausted when the
// deck is empty and with a DuplicateCardError if the unique-card invariant
// has been violated since the last reset.
func (d *Deck) Deal() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrExhausted
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	if d.dealt[card] {
		return Card{}, &DuplicateCardError{Card: card}
	}
	d.dealt[card] = true
	return card, nil
}

// Remaining reports how many cards are left.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
