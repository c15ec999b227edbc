// Package display renders table state for the terminal and collects human
// actions. It depends only on snapshots; it never touches engine internals.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cardroom/holdem/internal/deck"
	"github.com/cardroom/holdem/internal/game"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	redCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5C5C")).
			Bold(true)

	blackCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true)

	potStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F2C94C")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C6C6C"))

	winnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6FCF97")).
			Bold(true)
)

// Title returns the styled application banner.
func Title() string {
	return headerStyle.Render(" ♠ ♥ Texas Hold'em ♦ ♣ ")
}

// FormatCard renders one card, red suits in red.
func FormatCard(c deck.Card) string {
	if c.Suit == deck.Hearts || c.Suit == deck.Diamonds {
		return redCardStyle.Render(c.String())
	}
	return blackCardStyle.Render(c.String())
}

// FormatCards renders a card list separated by spaces.
func FormatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return dimStyle.Render("--")
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = FormatCard(c)
	}
	return strings.Join(parts, " ")
}

// RenderTable renders the table from one viewer's perspective. Only the
// viewer's hole cards are shown; opponents' stay face down until showdown.
func RenderTable(snap game.Snapshot, viewerID string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s  board: %s\n",
		headerStyle.Render(fmt.Sprintf(" %s ", snap.Stage)),
		potStyle.Render(fmt.Sprintf("pot %d", snap.Pot.TotalPot)),
		FormatCards(snap.CommunityCards))

	for i, p := range snap.Players {
		marker := " "
		if snap.HandInProgress && i == snap.ActivePlayerIndex {
			marker = ">"
		}

		hole := dimStyle.Render("🂠 🂠")
		if p.ID == viewerID || snap.Stage == game.Showdown {
			hole = FormatCards(p.HoleCards)
		}

		status := ""
		switch {
		case p.Eliminated:
			status = dimStyle.Render(" out")
		case !p.IsActive && snap.HandInProgress:
			status = dimStyle.Render(" folded")
		case p.IsAllIn:
			status = potStyle.Render(" all-in")
		}

		button := ""
		if i == snap.DealerPosition {
			button = " (D)"
		}

		fmt.Fprintf(&b, "%s %-12s%s %5d chips  bet %4d  %s%s\n",
			marker, p.Name, button, p.ChipStack, p.CurrentBet, hole, status)
	}
	return b.String()
}

// RenderHandResult renders the end-of-hand summary from a hand record.
func RenderHandResult(record game.HandRecord, names map[string]string) string {
	var b strings.Builder

	if record.WonByFold {
		fmt.Fprintln(&b, dimStyle.Render("everyone else folded"))
	} else {
		fmt.Fprintf(&b, "board: %s\n", FormatCards(record.Board))
		for _, sh := range record.ShownHands {
			fmt.Fprintf(&b, "  %-12s %s  %s\n", displayName(names, sh.PlayerID), FormatCards(sh.HoleCards), sh.Rank)
		}
	}
	for _, r := range record.Results {
		fmt.Fprintln(&b, winnerStyle.Render(
			fmt.Sprintf("  %s wins %d", displayName(names, r.PlayerID), r.AmountWon)))
	}
	return b.String()
}

func displayName(names map[string]string, id string) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return id
}
