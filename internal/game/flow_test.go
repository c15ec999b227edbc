package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardroom/holdem/internal/randutil"
)

// callBot calls any bet and otherwise checks.
type callBot struct{}

func (callBot) Decide(snap Snapshot, playerID string) PlayerAction {
	pv, _ := snap.PlayerByID(playerID)
	if snap.TableBet() > pv.CurrentBet {
		return PlayerAction{Type: Call}
	}
	return PlayerAction{Type: Check}
}

// shoveBot moves all-in at every opportunity.
type shoveBot struct{}

func (shoveBot) Decide(snap Snapshot, playerID string) PlayerAction {
	pv, _ := snap.PlayerByID(playerID)
	if snap.TableBet() == 0 {
		return PlayerAction{Type: Bet, Amount: pv.ChipStack}
	}
	return PlayerAction{Type: Raise, Amount: pv.ChipStack + pv.CurrentBet}
}

// brokenBot always checks, even when a bet is owed.
type brokenBot struct{}

func (brokenBot) Decide(Snapshot, string) PlayerAction {
	return PlayerAction{Type: Check}
}

func newTestFlow(t *testing.T, seats []Seat, seed uint64, dealer int) *GameFlowManager {
	t.Helper()
	ge, err := NewGameEngine(seats, 10, 20,
		WithSource(randutil.NewSeededSource(seed)),
		WithDealerPosition(dealer),
	)
	require.NoError(t, err)
	return NewGameFlowManager(ge, nil)
}

func TestStartNextHandRotatesDealerPastBustedSeats(t *testing.T) {
	t.Parallel()

	seats := []Seat{
		{ID: "a", Chips: 1000},
		{ID: "b", Chips: 0},
		{ID: "c", Chips: 1000},
	}
	fm := newTestFlow(t, seats, 1, 0)

	require.NoError(t, fm.StartNextHand())
	assert.Equal(t, 2, fm.Engine().DealerPosition(), "busted seat 1 never holds the button")
}

func TestAssignPositionsNamesSeatsClockwiseFromDealer(t *testing.T) {
	t.Parallel()

	seats := []Seat{
		{ID: "a", Chips: 1000},
		{ID: "b", Chips: 1000},
		{ID: "c", Chips: 1000},
		{ID: "d", Chips: 1000},
		{ID: "e", Chips: 1000},
		{ID: "f", Chips: 1000},
	}
	// The dealer advances to seat 0 when the hand starts.
	fm := newTestFlow(t, seats, 1, 5)
	require.NoError(t, fm.StartNextHand())

	want := map[string]Position{
		"a": Dealer,
		"b": SmallBlind,
		"c": BigBlind,
		"d": Early,
		"e": Middle,
		"f": Late,
	}
	for _, p := range fm.Engine().Players() {
		assert.Equal(t, want[p.ID], p.Position, "player %s", p.ID)
	}
}

func TestPlayHandCompletesWithPassiveAgents(t *testing.T) {
	t.Parallel()

	fm := newTestFlow(t, headsUpSeats(), 21, 1)
	agents := map[string]Agent{"alice": callBot{}, "bob": callBot{}}

	record, err := fm.PlayHand(agents)
	require.NoError(t, err)
	assert.Equal(t, 40, record.PotTotal, "both players saw all five streets for the blind")
	assert.False(t, fm.Engine().HandInProgress())
	assert.Equal(t, 2000, stackTotal(fm.Engine()))
}

func TestPlayHandFoldsMisbehavingAgent(t *testing.T) {
	t.Parallel()

	// The dealer rotates to seat 0, so bob posts the small blind and acts
	// first, owing half a blind. brokenBot checks anyway.
	fm := newTestFlow(t, headsUpSeats(), 23, 1)
	agents := map[string]Agent{"alice": callBot{}, "bob": brokenBot{}}

	record, err := fm.PlayHand(agents)
	require.NoError(t, err)
	assert.True(t, record.WonByFold, "broken agent is folded on an illegal decision")
	require.Len(t, record.Results, 1)
	assert.Equal(t, "alice", record.Results[0].PlayerID)
	assert.Equal(t, 2000, stackTotal(fm.Engine()))
}

func TestPlayHandRequiresAnAgentPerPlayer(t *testing.T) {
	t.Parallel()

	fm := newTestFlow(t, headsUpSeats(), 25, 1)
	_, err := fm.PlayHand(map[string]Agent{"alice": callBot{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no agent registered")
}

func TestHandlePlayerEliminationsReportsEachBustOnce(t *testing.T) {
	t.Parallel()

	seats := []Seat{
		{ID: "a", Chips: 1000},
		{ID: "b", Chips: 1000},
		{ID: "c", Chips: 1000},
	}
	fm := newTestFlow(t, seats, 1, 0)

	fm.Engine().Players()[1].ChipStack = 0
	assert.Equal(t, []string{"b"}, fm.HandlePlayerEliminations())
	assert.Empty(t, fm.HandlePlayerEliminations(), "an elimination is reported once")

	fm.Engine().Players()[2].ChipStack = 0
	assert.Equal(t, []string{"c"}, fm.HandlePlayerEliminations())
}

func TestShouldGameEndAndWinner(t *testing.T) {
	t.Parallel()

	fm := newTestFlow(t, headsUpSeats(), 1, 0)
	assert.False(t, fm.ShouldGameEnd())
	_, ok := fm.GameWinner()
	assert.False(t, ok)

	fm.Engine().Players()[1].ChipStack = 0
	assert.True(t, fm.ShouldGameEnd())
	winner, ok := fm.GameWinner()
	require.True(t, ok)
	assert.Equal(t, "alice", winner.ID)
}

func TestSessionConservesChipsUntilGameEnds(t *testing.T) {
	t.Parallel()

	seats := []Seat{
		{ID: "a", Chips: 200},
		{ID: "b", Chips: 200},
		{ID: "c", Chips: 200},
	}
	fm := newTestFlow(t, seats, 77, 0)
	agents := map[string]Agent{
		"a": shoveBot{},
		"b": callBot{},
		"c": callBot{},
	}

	for hand := 0; hand < 100 && !fm.ShouldGameEnd(); hand++ {
		_, err := fm.PlayHand(agents)
		require.NoError(t, err)
		require.Equal(t, 600, stackTotal(fm.Engine()), "hand %d leaked chips", hand)
		fm.HandlePlayerEliminations()
	}

	if fm.ShouldGameEnd() {
		winner, ok := fm.GameWinner()
		require.True(t, ok)
		assert.Equal(t, 600, winner.ChipStack, "the last player holds every chip")
	}
}
