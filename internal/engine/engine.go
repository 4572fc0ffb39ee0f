// Package engine implements the Tic-Tac-Toe AI: a board evaluator, a minimax search with
// alpha-beta pruning and the easy/medium/hard move policies built on top of it.
//
// An Engine owns its mark assignment and random source. It is not safe for concurrent use;
// give every game its own Engine.
package engine

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const (
	WinScore  = 10
	LossScore = -10
	DrawScore = 0

	// infinity bounds the initial pruning window.
	infinity = 1000
)

// Solver is the contract front ends use to drive the AI.
type Solver interface {
	Evaluate(board *entity.Board) int
	HasMovesLeft(board *entity.Board) bool
	FindBestMove(board *entity.Board) (entity.Move, bool)
	ChooseMove(board *entity.Board, difficulty entity.Difficulty) (entity.Move, bool)
}

type Config struct {
	// AIMark is the maximizer. The opponent gets the other mark.
	AIMark entity.Mark
	// Seed for the easy and medium policies, 0 means time based.
	Seed int64
}

// Stats counts the work done by the last FindBestMove call.
type Stats struct {
	Visited  uint64
	Terminal uint64
	Cutoffs  uint64
}

// MoveValue is the minimax value of playing Move at the root.
type MoveValue struct {
	Move  entity.Move `json:"move"`
	Value int         `json:"value"`
}

type Engine struct {
	logger *slog.Logger

	player   entity.Mark
	opponent entity.Mark

	rand *rand.Rand
	st   Stats
}

var _ Solver = (*Engine)(nil)

func New(logger *slog.Logger, cfg Config) *Engine {
	player := cfg.AIMark
	if !player.IsPlayer() {
		player = entity.PlayerO
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Engine{
		logger:   logger.With("component", "engine", "ai_mark", player),
		player:   player,
		opponent: player.Opponent(),
		rand:     rand.New(rand.NewSource(seed)), //nolint: gosec // game randomness
	}
}

func (that *Engine) AIMark() entity.Mark {
	return that.player
}

func (that *Engine) OpponentMark() entity.Mark {
	return that.opponent
}

// LastStats returns the counters of the most recent search.
func (that *Engine) LastStats() Stats {
	return that.st
}

// Evaluate returns WinScore if the AI owns a line, LossScore if the opponent does and
// DrawScore otherwise.
func (that *Engine) Evaluate(board *entity.Board) int {
	for _, line := range entity.WinLines {
		a, b, c := board.At(line[0]), board.At(line[1]), board.At(line[2])
		if a != b || b != c {
			continue
		}

		switch a {
		case that.player:
			return WinScore
		case that.opponent:
			return LossScore
		}
	}

	return DrawScore
}

func (that *Engine) HasMovesLeft(board *entity.Board) bool {
	return board.HasEmptyCell()
}

// FindBestMove returns the first row-major cell with the highest minimax value for the AI.
// ok is false when the board has no empty cell. The board is left as it was passed in.
func (that *Engine) FindBestMove(board *entity.Board) (entity.Move, bool) {
	that.st = Stats{}

	var (
		bestMove entity.Move
		found    bool
	)
	bestValue := -infinity

	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			move := entity.Move{Row: row, Col: col}
			if !board.IsEmptyAt(move) {
				continue
			}

			value := that.probe(board, move, that.player, false, -infinity, infinity)
			if value > bestValue {
				bestMove = move
				bestValue = value
				found = true
			}
		}
	}

	that.logger.Debug("search finished",
		"move", bestMove,
		"value", bestValue,
		"visited", that.st.Visited,
		"cutoffs", that.st.Cutoffs,
	)

	return bestMove, found
}

// Analyze returns the value of every empty cell in row-major order.
func (that *Engine) Analyze(board *entity.Board) []MoveValue {
	that.st = Stats{}

	values := make([]MoveValue, 0, entity.CellCount)
	for _, move := range board.EmptyCells() {
		values = append(values, MoveValue{
			Move:  move,
			Value: that.probe(board, move, that.player, false, -infinity, infinity),
		})
	}

	return values
}

// minimax returns the value of board with isMax telling whose ply it is. alpha is the best
// value the AI can already guarantee, beta the best the opponent can.
func (that *Engine) minimax(board *entity.Board, isMax bool, alpha, beta int) int {
	that.st.Visited++

	if score := that.Evaluate(board); score == WinScore || score == LossScore {
		that.st.Terminal++
		return score
	}

	if !board.HasEmptyCell() {
		that.st.Terminal++
		return DrawScore
	}

	if isMax {
		best := -infinity
		for row := 0; row < entity.BoardSize; row++ {
			for col := 0; col < entity.BoardSize; col++ {
				move := entity.Move{Row: row, Col: col}
				if !board.IsEmptyAt(move) {
					continue
				}

				if value := that.probe(board, move, that.player, false, alpha, beta); value > best {
					best = value
				}

				alpha = max(alpha, best)
				if beta <= alpha {
					that.st.Cutoffs++
					return best
				}
			}
		}
		return best
	}

	best := infinity
	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			move := entity.Move{Row: row, Col: col}
			if !board.IsEmptyAt(move) {
				continue
			}

			if value := that.probe(board, move, that.opponent, true, alpha, beta); value < best {
				best = value
			}

			beta = min(beta, best)
			if beta <= alpha {
				that.st.Cutoffs++
				return best
			}
		}
	}
	return best
}

// probe places mark on move, searches the resulting position and clears the cell again.
func (that *Engine) probe(board *entity.Board, move entity.Move, mark entity.Mark, isMax bool, alpha, beta int) int {
	board.Set(move, mark)
	defer board.Set(move, entity.EmptyCell)

	return that.minimax(board, isMax, alpha, beta)
}
