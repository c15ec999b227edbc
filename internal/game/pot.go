package game

import "sort"

// SidePot is one pot tier above the main pot. Only the listed players can
// win it.
type SidePot struct {
	Amount            int
	EligiblePlayerIDs []string
}

// PotState tracks the chips committed this hand. TotalPot always equals
// MainPot plus the sum of the side pots, and equals the total of all player
// contributions; chips are never created or destroyed.
type PotState struct {
	MainPot  int
	SidePots []SidePot
	TotalPot int
}

// add moves amount into the main pot. Tier partitioning happens separately
// in CalculateSidePots; until then everything accumulates in MainPot.
func (p *PotState) add(amount int) {
	p.MainPot += amount
	p.TotalPot += amount
}

// CalculateSidePots partitions the players' hand contributions into a main
// pot and side pots. Distinct contribution levels are sorted ascending; each
// level's increment is contributed by every player who bet at least that
// much (folded players included, they paid in). Eligibility to win a tier is
// restricted to unfolded players who bet at least the tier's level.
func (bs *BettingSystem) CalculateSidePots(players []*Player) PotState {
	levels := make([]int, 0, len(players))
	seen := make(map[int]bool, len(players))
	for _, p := range players {
		if p.TotalBet > 0 && !seen[p.TotalBet] {
			seen[p.TotalBet] = true
			levels = append(levels, p.TotalBet)
		}
	}
	sort.Ints(levels)

	var pot PotState
	prev := 0
	for i, level := range levels {
		increment := level - prev
		amount := 0
		var eligible []string
		for _, p := range players {
			if p.TotalBet >= level {
				amount += increment
				if p.IsActive {
					eligible = append(eligible, p.ID)
				}
			} else if p.TotalBet > prev {
				// Partial contribution from a player who could not reach
				// this level (folded short or smaller all-in rounding).
				amount += p.TotalBet - prev
			}
		}
		if i == 0 {
			pot.MainPot = amount
		} else {
			pot.SidePots = append(pot.SidePots, SidePot{Amount: amount, EligiblePlayerIDs: eligible})
		}
		pot.TotalPot += amount
		prev = level
	}
	return pot
}

// DistributePot splits the whole pot among the winners. A single winner
// takes everything; multiple winners each receive the floor share, and the
// indivisible remainder is handed out one chip at a time in winner order
// starting from the first. The distributed total always equals TotalPot.
func (bs *BettingSystem) DistributePot(winners []*Player, pot PotState) (map[string]int, int) {
	ids := make([]string, len(winners))
	for i, w := range winners {
		ids[i] = w.ID
	}
	return splitAmount(ids, pot.TotalPot)
}

// splitAmount divides amount among ids with the deterministic remainder
// policy described on DistributePot.
func splitAmount(ids []string, amount int) (map[string]int, int) {
	distributions := make(map[string]int, len(ids))
	if len(ids) == 0 || amount == 0 {
		return distributions, 0
	}

	share := amount / len(ids)
	remainder := amount % len(ids)
	for i, id := range ids {
		won := share
		if i < remainder {
			won++
		}
		distributions[id] += won
	}
	return distributions, amount
}
