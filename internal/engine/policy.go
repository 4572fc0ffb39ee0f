package engine

import (
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

// ChooseMove picks the AI move for one turn. Medium re-rolls on every call. An unknown
// difficulty plays like hard.
func (that *Engine) ChooseMove(board *entity.Board, difficulty entity.Difficulty) (entity.Move, bool) {
	switch difficulty {
	case entity.EasyDifficulty:
		return that.RandomMove(board)
	case entity.MediumDifficulty:
		return that.MediumMove(board)
	default:
		return that.FindBestMove(board)
	}
}

// RandomMove samples cells uniformly until it hits an empty one.
func (that *Engine) RandomMove(board *entity.Board) (entity.Move, bool) {
	if !board.HasEmptyCell() {
		return entity.Move{}, false
	}

	for {
		move := entity.Move{
			Row: that.rand.Intn(entity.BoardSize),
			Col: that.rand.Intn(entity.BoardSize),
		}
		if board.IsEmptyAt(move) {
			return move, true
		}
	}
}

// MediumMove plays randomly half of the time and optimally otherwise.
func (that *Engine) MediumMove(board *entity.Board) (entity.Move, bool) {
	if that.rand.Intn(2) == 0 {
		return that.RandomMove(board)
	}
	return that.FindBestMove(board)
}
