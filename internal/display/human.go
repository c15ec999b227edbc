package display

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cardroom/holdem/internal/game"
)

// HumanAgent prompts for actions on a terminal. It implements game.Agent.
type HumanAgent struct {
	in  *bufio.Reader
	out io.Writer
}

// NewHumanAgent creates an agent reading commands from in and writing
// prompts to out.
func NewHumanAgent(in io.Reader, out io.Writer) *HumanAgent {
	return &HumanAgent{in: bufio.NewReader(in), out: out}
}

// Decide renders the table and reads one action. Commands are a single
// letter with an optional amount: f, k (check), c, b <amount>, r <amount>.
// Unparseable input re-prompts; EOF folds so a closed pipe cannot hang the
// game.
func (h *HumanAgent) Decide(snap game.Snapshot, playerID string) game.PlayerAction {
	fmt.Fprintln(h.out)
	fmt.Fprint(h.out, RenderTable(snap, playerID))

	pv, _ := snap.PlayerByID(playerID)
	owed := snap.TableBet() - pv.CurrentBet

	for {
		if owed > 0 {
			fmt.Fprintf(h.out, "%d to call. [f]old, [c]all, [r]aise <to>: ", owed)
		} else {
			fmt.Fprint(h.out, "[k] check, [b]et <amount>, [f]old: ")
		}

		line, err := h.in.ReadString('\n')
		if err != nil && line == "" {
			return game.PlayerAction{Type: game.Fold}
		}

		action, ok := parseAction(line)
		if ok {
			return action
		}
		fmt.Fprintln(h.out, "did not understand that, try again")
	}
}

// parseAction turns a command line into an action.
func parseAction(line string) (game.PlayerAction, bool) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(line)))
	if len(fields) == 0 {
		return game.PlayerAction{}, false
	}

	amount := 0
	if len(fields) > 1 {
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return game.PlayerAction{}, false
		}
		amount = n
	}

	switch fields[0] {
	case "f", "fold":
		return game.PlayerAction{Type: game.Fold}, true
	case "k", "check":
		return game.PlayerAction{Type: game.Check}, true
	case "c", "call":
		return game.PlayerAction{Type: game.Call}, true
	case "b", "bet":
		if amount <= 0 {
			return game.PlayerAction{}, false
		}
		return game.PlayerAction{Type: game.Bet, Amount: amount}, true
	case "r", "raise":
		if amount <= 0 {
			return game.PlayerAction{}, false
		}
		return game.PlayerAction{Type: game.Raise, Amount: amount}, true
	default:
		return game.PlayerAction{}, false
	}
}
