package game

// Stage is the phase of a hand. Stages advance linearly; there are no
// back-edges. Showdown is terminal — the flow manager starts the next hand.
type Stage int

const (
	PreFlop Stage = iota
	Flop
	Turn
	River
	Showdown
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case PreFlop:
		return "pre-flop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case Showdown:
		return "showdown"
	default:
		return "unknown"
	}
}
