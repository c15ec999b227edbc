package game

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/cardroom/holdem/internal/deck"
	"github.com/cardroom/holdem/internal/evaluator"
	"github.com/cardroom/holdem/internal/randutil"
)

// Seat describes one player joining the table.
type Seat struct {
	ID    string
	Name  string
	Chips int
}

// GameEngine owns one table's hand lifecycle: dealing, betting rounds,
// stage transitions and showdown resolution. It is not safe for concurrent
// use; callers drive it from a single logical thread, one table per engine.
type GameEngine struct {
	players []*Player
	betting *BettingSystem
	deck    *deck.Deck
	clock   quartz.Clock
	logger  *log.Logger
	bus     *EventBus

	smallBlind int
	bigBlind   int

	handID         string
	communityCards []deck.Card
	pot            PotState
	stage          Stage
	dealerPos      int
	activeIdx      int
	bettingRound   int
	lastRaise      int
	handInProgress bool
	history        []HandRecord

	startingChips int
	fatalErr      error
}

// Option configures a GameEngine at construction.
type Option func(*GameEngine)

// WithLogger sets the engine logger. The default discards output.
func WithLogger(logger *log.Logger) Option {
	return func(ge *GameEngine) { ge.logger = logger }
}

// WithClock sets the clock used to timestamp events and history records.
func WithClock(clock quartz.Clock) Option {
	return func(ge *GameEngine) { ge.clock = clock }
}

// WithSource sets the random source used for shuffling, making deals
// reproducible in tests and simulations.
func WithSource(source randutil.Source) Option {
	return func(ge *GameEngine) { ge.deck = deck.New(source) }
}

// WithDealerPosition sets the initial dealer seat.
func WithDealerPosition(seat int) Option {
	return func(ge *GameEngine) { ge.dealerPos = seat }
}

// NewGameEngine creates an engine for one table. It fails fast on
// configuration errors: fewer than two seats, a non-positive blind, blinds
// out of order, or duplicate player IDs.
func NewGameEngine(seats []Seat, smallBlind, bigBlind int, opts ...Option) (*GameEngine, error) {
	if len(seats) < 2 {
		return nil, errors.Errorf("need at least 2 players, got %d", len(seats))
	}
	if bigBlind <= 0 {
		return nil, errors.Errorf("big blind must be positive, got %d", bigBlind)
	}
	if smallBlind <= 0 || smallBlind > bigBlind {
		return nil, errors.Errorf("small blind %d must be positive and at most the big blind %d", smallBlind, bigBlind)
	}

	betting, err := NewBettingSystem(bigBlind)
	if err != nil {
		return nil, err
	}

	ge := &GameEngine{
		betting:    betting,
		clock:      quartz.NewReal(),
		logger:     log.New(io.Discard),
		bus:        NewEventBus(),
		smallBlind: smallBlind,
		bigBlind:   bigBlind,
		stage:      Showdown, // no hand in progress yet
	}

	seen := make(map[string]bool, len(seats))
	for i, seat := range seats {
		if seat.ID == "" {
			return nil, errors.Errorf("seat %d has an empty player ID", i)
		}
		if seen[seat.ID] {
			return nil, errors.Errorf("duplicate player ID %q", seat.ID)
		}
		if seat.Chips < 0 {
			return nil, errors.Errorf("player %q has negative chips", seat.ID)
		}
		seen[seat.ID] = true
		ge.players = append(ge.players, &Player{
			ID:        seat.ID,
			Name:      seat.Name,
			Seat:      i,
			ChipStack: seat.Chips,
		})
		ge.startingChips += seat.Chips
	}

	for _, opt := range opts {
		opt(ge)
	}
	if ge.deck == nil {
		ge.deck = deck.New(randutil.NewCryptoSource())
	}
	if ge.dealerPos < 0 || ge.dealerPos >= len(ge.players) {
		return nil, errors.Errorf("dealer position %d out of range", ge.dealerPos)
	}
	return ge, nil
}

// EventBus returns the bus publishing this engine's lifecycle events.
func (ge *GameEngine) EventBus() *EventBus {
	return ge.bus
}

// Players exposes the authoritative player list. It is the single owner of
// chip stacks; the flow manager reads through it rather than keeping a
// parallel balance map.
func (ge *GameEngine) Players() []*Player {
	return ge.players
}

// Stage returns the current hand stage.
func (ge *GameEngine) Stage() Stage {
	return ge.stage
}

// DealerPosition returns the current dealer seat.
func (ge *GameEngine) DealerPosition() int {
	return ge.dealerPos
}

// HandInProgress reports whether a hand is being played.
func (ge *GameEngine) HandInProgress() bool {
	return ge.handInProgress
}

// History returns the completed hand records, oldest first.
func (ge *GameEngine) History() []HandRecord {
	return ge.history
}

// ActivePlayerID returns the player whose turn it is, if any.
func (ge *GameEngine) ActivePlayerID() (string, bool) {
	if !ge.handInProgress || ge.activeIdx < 0 || ge.activeIdx >= len(ge.players) {
		return "", false
	}
	p := ge.players[ge.activeIdx]
	if !p.CanAct() {
		return "", false
	}
	return p.ID, true
}

// AdvanceDealer rotates the dealer button to the next seat that still has
// chips, skipping busted seats. The scan is bounded by the table size.
func (ge *GameEngine) AdvanceDealer() {
	n := len(ge.players)
	for i := 1; i <= n; i++ {
		seat := (ge.dealerPos + i) % n
		if ge.players[seat].ChipStack > 0 {
			ge.dealerPos = seat
			return
		}
	}
}

// Balances returns the per-player chip balances for serialization.
func (ge *GameEngine) Balances() map[string]int {
	balances := make(map[string]int, len(ge.players))
	for _, p := range ge.players {
		balances[p.ID] = p.ChipStack
	}
	return balances
}

// RestoreBalances replaces chip stacks from a previously serialized balance
// map. It restores session state only, never a hand in progress.
func (ge *GameEngine) RestoreBalances(balances map[string]int) error {
	if ge.handInProgress {
		return errors.New("cannot restore balances while a hand is in progress")
	}
	total := 0
	for _, p := range ge.players {
		chips, ok := balances[p.ID]
		if !ok {
			return errors.Errorf("no balance recorded for player %q", p.ID)
		}
		if chips < 0 {
			return errors.Errorf("negative balance for player %q", p.ID)
		}
		total += chips
	}
	for _, p := range ge.players {
		p.ChipStack = balances[p.ID]
	}
	ge.startingChips = total
	return nil
}

// StartNewHand resets per-hand state, shuffles, deals two hole cards to
// every funded player (one card per player per pass), posts the blinds and
// opens the pre-flop betting round.
func (ge *GameEngine) StartNewHand() error {
	if ge.fatalErr != nil {
		return ge.fatalErr
	}
	if ge.handInProgress {
		return errors.New("hand already in progress")
	}

	funded := 0
	for _, p := range ge.players {
		if p.ChipStack > 0 {
			funded++
		}
	}
	if funded < 2 {
		return errors.Errorf("need at least 2 funded players, got %d", funded)
	}

	ge.handID = uuid.NewString()
	ge.deck.Reset()
	ge.deck.Shuffle()
	ge.communityCards = nil
	ge.pot = PotState{}
	ge.lastRaise = 0
	ge.bettingRound = 1
	ge.stage = PreFlop
	ge.handInProgress = true
	for _, p := range ge.players {
		p.resetForHand()
	}

	// Two passes starting left of the dealer, one card per player per pass.
	n := len(ge.players)
	for pass := 0; pass < 2; pass++ {
		for i := 1; i <= n; i++ {
			p := ge.players[(ge.dealerPos+i)%n]
			if !p.IsActive {
				continue
			}
			card, err := ge.deck.Deal()
			if err != nil {
				return ge.fail(err, "dealing hole cards")
			}
			p.HoleCards = append(p.HoleCards, card)
		}
	}

	sb := ge.nextActiveSeat(ge.dealerPos + 1)
	bb := ge.nextActiveSeat(sb + 1)
	ge.postBlind(ge.players[sb], ge.smallBlind, SmallBlind)
	ge.postBlind(ge.players[bb], ge.bigBlind, BigBlind)

	ge.logger.Debug("hand started",
		"handID", ge.handID,
		"dealer", ge.dealerPos,
		"smallBlind", ge.players[sb].ID,
		"bigBlind", ge.players[bb].ID,
		"pot", ge.pot.TotalPot)
	ge.bus.Publish(HandStartEvent{
		HandID:         ge.handID,
		DealerPosition: ge.dealerPos,
		PlayerCount:    funded,
		timestamp:      ge.clock.Now(),
	})

	// First to act sits after the big blind. If the blinds already left
	// nobody able to act (short stacks all-in), run the board out.
	if ge.betting.IsBettingRoundComplete(ge.players) {
		return ge.advanceStage()
	}
	first := ge.nextEligible(bb + 1)
	if first == -1 {
		return ge.advanceStage()
	}
	ge.activeIdx = first
	return nil
}

// postBlind commits a forced bet capped at the poster's stack. Blinds do
// not count as a voluntary action, so LastAction stays nil and the big
// blind keeps its pre-flop option.
func (ge *GameEngine) postBlind(p *Player, amount int, pos Position) {
	if amount > p.ChipStack {
		amount = p.ChipStack
	}
	p.ChipStack -= amount
	p.CurrentBet += amount
	p.TotalBet += amount
	ge.pot.add(amount)
	if p.ChipStack == 0 {
		p.IsAllIn = true
	}
	if pos == SmallBlind || pos == BigBlind {
		p.Position = pos
	}
}

// ProcessPlayerAction validates and applies one action. Validation and
// lookup failures are returned as recoverable errors with no state change;
// invariant violations are fatal and end the hand.
func (ge *GameEngine) ProcessPlayerAction(playerID string, action PlayerAction) error {
	if ge.fatalErr != nil {
		return ge.fatalErr
	}
	p := ge.findPlayer(playerID)
	if p == nil {
		return &PlayerNotFoundError{PlayerID: playerID}
	}
	if !ge.handInProgress {
		return invalidAction(playerID, "no hand in progress")
	}
	if ge.players[ge.activeIdx].ID != playerID {
		return invalidAction(playerID, "acting out of turn")
	}
	action.PlayerID = playerID

	tableBet := TableBet(ge.players)
	if err := ge.betting.ValidateAction(p, action, tableBet, ge.lastRaise); err != nil {
		return err
	}
	ge.betting.ProcessAction(p, action, ge.players, &ge.pot)

	// A bet or raise that moved the table bet sets the increment the next
	// raise must at least match.
	if p.CurrentBet > tableBet {
		ge.lastRaise = p.CurrentBet - tableBet
	}

	ge.logger.Debug("player action",
		"handID", ge.handID,
		"player", playerID,
		"action", action.Type,
		"amount", action.Amount,
		"pot", ge.pot.TotalPot)
	ge.bus.Publish(PlayerActionEvent{
		PlayerID:  playerID,
		Action:    action.Type,
		Amount:    action.Amount,
		Stage:     ge.stage,
		PotTotal:  ge.pot.TotalPot,
		timestamp: ge.clock.Now(),
	})

	if ge.betting.IsBettingRoundComplete(ge.players) {
		return ge.advanceStage()
	}
	next := ge.nextEligible(ge.activeIdx + 1)
	if next == -1 {
		return ge.advanceStage()
	}
	ge.activeIdx = next
	return nil
}

// advanceStage moves the hand to its next stage. With one player left the
// hand jumps straight to showdown without dealing further community cards.
func (ge *GameEngine) advanceStage() error {
	if ge.countActive() <= 1 {
		ge.stage = Showdown
		return ge.resolveShowdown()
	}

	for _, p := range ge.players {
		p.CurrentBet = 0
		p.LastAction = nil
	}
	ge.lastRaise = 0

	switch ge.stage {
	case PreFlop:
		if err := ge.dealCommunity(3); err != nil {
			return err
		}
		ge.stage = Flop
	case Flop:
		if err := ge.dealCommunity(1); err != nil {
			return err
		}
		ge.stage = Turn
	case Turn:
		if err := ge.dealCommunity(1); err != nil {
			return err
		}
		ge.stage = River
	case River:
		ge.stage = Showdown
		return ge.resolveShowdown()
	case Showdown:
		return nil
	}

	ge.bettingRound++
	ge.logger.Debug("stage advanced", "handID", ge.handID, "stage", ge.stage, "board", ge.communityCards)
	ge.bus.Publish(StageChangeEvent{
		Stage:          ge.stage,
		CommunityCards: append([]deck.Card(nil), ge.communityCards...),
		PotTotal:       ge.pot.TotalPot,
		timestamp:      ge.clock.Now(),
	})

	// Action opens at the first seat after the dealer. If everyone left is
	// all-in, keep dealing to showdown.
	if ge.betting.IsBettingRoundComplete(ge.players) {
		return ge.advanceStage()
	}
	first := ge.nextEligible(ge.dealerPos + 1)
	if first == -1 {
		return ge.advanceStage()
	}
	ge.activeIdx = first
	return nil
}

// dealCommunity burns one card, then deals n to the board.
func (ge *GameEngine) dealCommunity(n int) error {
	if _, err := ge.deck.Deal(); err != nil {
		return ge.fail(err, "burning card")
	}
	for i := 0; i < n; i++ {
		card, err := ge.deck.Deal()
		if err != nil {
			return ge.fail(err, "dealing community card")
		}
		ge.communityCards = append(ge.communityCards, card)
	}
	return nil
}

// resolveShowdown partitions the pot, determines the winners of each tier
// and credits their stacks. It is the only place chips flow back out of
// the pot.
func (ge *GameEngine) resolveShowdown() error {
	contributed := 0
	for _, p := range ge.players {
		contributed += p.TotalBet
	}
	tiers := ge.betting.CalculateSidePots(ge.players)
	if tiers.TotalPot != ge.pot.TotalPot || contributed != ge.pot.TotalPot {
		return ge.fail(
			errors.Errorf("pot %d, tiers %d, contributed %d", ge.pot.TotalPot, tiers.TotalPot, contributed),
			"pot reconciliation")
	}
	ge.pot = tiers

	actives := make([]*Player, 0, len(ge.players))
	for _, p := range ge.players {
		if p.IsActive {
			actives = append(actives, p)
		}
	}
	if len(actives) == 0 {
		return ge.fail(errors.New("no active players at showdown"), "determining winner")
	}

	results := make(map[string]int, len(actives))
	var shown []ShownHand
	wonByFold := len(actives) == 1

	if wonByFold {
		dist, _ := splitAmount([]string{actives[0].ID}, ge.pot.TotalPot)
		results = dist
	} else {
		ranks := make(map[string]evaluator.HandRank, len(actives))
		for _, p := range actives {
			rank, err := evaluator.Evaluate(p.HoleCards, ge.communityCards)
			if err != nil {
				return ge.fail(err, "evaluating showdown hand")
			}
			ranks[p.ID] = rank
			shown = append(shown, ShownHand{
				PlayerID:  p.ID,
				HoleCards: append([]deck.Card(nil), p.HoleCards...),
				Rank:      rank,
			})
		}

		mainEligible := make([]string, len(actives))
		for i, p := range actives {
			mainEligible[i] = p.ID
		}
		if err := ge.awardTier(ge.pot.MainPot, mainEligible, ranks, results); err != nil {
			return err
		}
		for _, sp := range ge.pot.SidePots {
			if err := ge.awardTier(sp.Amount, sp.EligiblePlayerIDs, ranks, results); err != nil {
				return err
			}
		}
	}

	credited := 0
	for id, amount := range results {
		ge.findPlayer(id).ChipStack += amount
		credited += amount
	}
	if credited != ge.pot.TotalPot {
		return ge.fail(errors.Errorf("credited %d of pot %d", credited, ge.pot.TotalPot), "pot distribution")
	}
	totalChips := 0
	for _, p := range ge.players {
		totalChips += p.ChipStack
	}
	if totalChips != ge.startingChips {
		return ge.fail(errors.Errorf("table holds %d chips, started with %d", totalChips, ge.startingChips), "chip conservation")
	}

	ordered := make([]Result, 0, len(results))
	for _, p := range ge.players {
		if amount, ok := results[p.ID]; ok && amount > 0 {
			ordered = append(ordered, Result{PlayerID: p.ID, AmountWon: amount})
		}
	}
	record := HandRecord{
		HandID:     ge.handID,
		Board:      append([]deck.Card(nil), ge.communityCards...),
		PotTotal:   ge.pot.TotalPot,
		Results:    ordered,
		ShownHands: shown,
		WonByFold:  wonByFold,
		EndedAt:    ge.clock.Now(),
	}
	ge.history = append(ge.history, record)
	ge.handInProgress = false

	ge.logger.Info("hand complete",
		"handID", ge.handID,
		"pot", ge.pot.TotalPot,
		"winners", len(ordered),
		"wonByFold", wonByFold)
	ge.bus.Publish(HandEndEvent{
		HandID:    ge.handID,
		Results:   ordered,
		PotTotal:  ge.pot.TotalPot,
		WonByFold: wonByFold,
		Board:     record.Board,
		timestamp: ge.clock.Now(),
	})
	return nil
}

// awardTier splits one pot tier among the best-ranked eligible players.
func (ge *GameEngine) awardTier(amount int, eligible []string, ranks map[string]evaluator.HandRank, results map[string]int) error {
	if amount == 0 {
		return nil
	}
	if len(eligible) == 0 {
		return ge.fail(errors.Errorf("pot tier of %d has no eligible players", amount), "awarding pot")
	}

	var winners []string
	for _, id := range eligible {
		rank, ok := ranks[id]
		if !ok {
			continue
		}
		if len(winners) == 0 {
			winners = []string{id}
			continue
		}
		switch cmp := evaluator.Compare(rank, ranks[winners[0]]); {
		case cmp > 0:
			winners = []string{id}
		case cmp == 0:
			winners = append(winners, id)
		}
	}
	if len(winners) == 0 {
		return ge.fail(errors.Errorf("pot tier of %d has no ranked players", amount), "awarding pot")
	}

	dist, _ := splitAmount(winners, amount)
	for id, won := range dist {
		results[id] += won
	}
	return nil
}

func (ge *GameEngine) findPlayer(id string) *Player {
	for _, p := range ge.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (ge *GameEngine) countActive() int {
	count := 0
	for _, p := range ge.players {
		if p.IsActive {
			count++
		}
	}
	return count
}

// nextActiveSeat scans clockwise for the next seat active in this hand.
func (ge *GameEngine) nextActiveSeat(from int) int {
	n := len(ge.players)
	for i := 0; i < n; i++ {
		seat := (from + i) % n
		if ge.players[seat].IsActive {
			return seat
		}
	}
	return from % n
}

// nextEligible scans clockwise for the next player who can act, checking at
// most one full rotation.
func (ge *GameEngine) nextEligible(from int) int {
	n := len(ge.players)
	for i := 0; i < n; i++ {
		seat := (from + i) % n
		if ge.players[seat].CanAct() {
			return seat
		}
	}
	return -1
}

// fail records an invariant violation. The hand is abandoned and every
// subsequent engine call returns the same fatal error.
func (ge *GameEngine) fail(err error, msg string) error {
	ge.fatalErr = fatal(err, msg)
	ge.handInProgress = false
	ge.logger.Error("fatal engine error", "handID", ge.handID, "error", ge.fatalErr)
	return ge.fatalErr
}
