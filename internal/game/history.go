package game

import (
	"time"

	"github.com/cardroom/holdem/internal/deck"
	"github.com/cardroom/holdem/internal/evaluator"
)

// Result is the plain per-winner outcome emitted at hand end.
type Result struct {
	PlayerID  string
	AmountWon int
}

// ShownHand records a hand revealed at showdown.
type ShownHand struct {
	PlayerID  string
	HoleCards []deck.Card
	Rank      evaluator.HandRank
}

// HandRecord is the audit record appended to the engine history when a hand
// completes.
type HandRecord struct {
	HandID     string
	Board      []deck.Card
	PotTotal   int
	Results    []Result
	ShownHands []ShownHand
	WonByFold  bool
	EndedAt    time.Time
}
