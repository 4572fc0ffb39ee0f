package entity

// Outcome is the result of a position from the maximizer's point of view.
type Outcome int

const (
	Ongoing Outcome = iota
	MaximizerWins
	MinimizerWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case Ongoing:
		return "ongoing"
	case MaximizerWins:
		return "maximizer_wins"
	case MinimizerWins:
		return "minimizer_wins"
	case Draw:
		return "draw"
	default:
		return "unknown"
	}
}

// OutcomeOf derives the outcome of board with maximizer as the side being maximized.
func OutcomeOf(board *Board, maximizer Mark) Outcome {
	switch owner := board.LineOwner(); {
	case owner == maximizer:
		return MaximizerWins
	case owner == maximizer.Opponent():
		return MinimizerWins
	case !board.HasEmptyCell():
		return Draw
	default:
		return Ongoing
	}
}
