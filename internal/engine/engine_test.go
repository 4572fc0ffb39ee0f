package engine

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.EmptyCell
)

func newTestEngine(aiMark entity.Mark) *Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(logger, Config{AIMark: aiMark, Seed: 42})
}

func TestEngine_Evaluate(t *testing.T) {
	eng := newTestEngine(o)

	for _, line := range entity.WinLines {
		t.Run("Line "+line[0].String()+line[2].String(), func(t *testing.T) {
			// Given: a board where only the AI completes this line
			var board entity.Board
			for _, move := range line {
				board.Set(move, o)
			}

			// Then: the AI scores +10
			assert.Equal(t, WinScore, eng.Evaluate(&board))

			// Given: the same line owned by the opponent
			for _, move := range line {
				board.Set(move, x)
			}

			// Then: the AI scores -10
			assert.Equal(t, LossScore, eng.Evaluate(&board))
		})
	}

	t.Run("No line scores zero", func(t *testing.T) {
		board := entity.Board{
			{x, o, x},
			{e, o, e},
			{e, x, e},
		}

		assert.Equal(t, DrawScore, eng.Evaluate(&board))
	})

	t.Run("Empty board scores zero", func(t *testing.T) {
		var board entity.Board

		assert.Equal(t, DrawScore, eng.Evaluate(&board))
	})
}

func TestEngine_HasMovesLeft(t *testing.T) {
	eng := newTestEngine(o)

	full := entity.Board{
		{x, o, x},
		{x, o, o},
		{o, x, x},
	}
	assert.False(t, eng.HasMovesLeft(&full))

	for cell := 0; cell < entity.CellCount; cell++ {
		board := full
		board.Set(entity.MoveFromCell(cell), e)
		assert.True(t, eng.HasMovesLeft(&board), "cell %d empty", cell)
	}
}

func TestEngine_FindBestMove(t *testing.T) {
	t.Run("Empty board picks the first row-major optimal cell", func(t *testing.T) {
		// Given: an empty board with the AI moving first
		eng := newTestEngine(o)
		var board entity.Board

		// When: searching for the best move
		move, ok := eng.FindBestMove(&board)

		// Then: every opening draws, so the top-left corner wins the tie
		require.True(t, ok)
		assert.Equal(t, entity.Move{Row: 0, Col: 0}, move)
		assert.Equal(t, entity.Board{}, board)

		stats := eng.LastStats()
		assert.Positive(t, stats.Visited)
		assert.Positive(t, stats.Cutoffs)
	})

	t.Run("Corner opening is answered in the centre", func(t *testing.T) {
		eng := newTestEngine(o)
		board := entity.Board{
			{x, e, e},
			{e, e, e},
			{e, e, e},
		}

		move, ok := eng.FindBestMove(&board)

		require.True(t, ok)
		assert.Equal(t, entity.Move{Row: 1, Col: 1}, move)
	})

	t.Run("Centre opening is answered in a corner", func(t *testing.T) {
		eng := newTestEngine(o)
		board := entity.Board{
			{e, e, e},
			{e, x, e},
			{e, e, e},
		}

		move, ok := eng.FindBestMove(&board)

		require.True(t, ok)
		assert.Equal(t, entity.Move{Row: 0, Col: 0}, move)
	})

	t.Run("Takes an immediate win", func(t *testing.T) {
		eng := newTestEngine(o)
		board := entity.Board{
			{o, o, e},
			{x, x, e},
			{x, e, e},
		}

		move, ok := eng.FindBestMove(&board)

		require.True(t, ok)
		assert.Equal(t, entity.Move{Row: 0, Col: 2}, move)
	})

	t.Run("Blocks the opponent", func(t *testing.T) {
		eng := newTestEngine(o)
		board := entity.Board{
			{x, x, e},
			{e, o, e},
			{e, e, e},
		}

		move, ok := eng.FindBestMove(&board)

		require.True(t, ok)
		assert.Equal(t, entity.Move{Row: 0, Col: 2}, move)
	})

	t.Run("Full board reports no move", func(t *testing.T) {
		eng := newTestEngine(o)
		board := entity.Board{
			{x, o, x},
			{x, o, o},
			{o, x, x},
		}

		_, ok := eng.FindBestMove(&board)

		assert.False(t, ok)
	})

	t.Run("Repeated calls return the same move", func(t *testing.T) {
		eng := newTestEngine(x)
		board := entity.Board{
			{o, e, e},
			{e, x, e},
			{e, e, e},
		}

		first, ok := eng.FindBestMove(&board)
		require.True(t, ok)
		second, ok := eng.FindBestMove(&board)
		require.True(t, ok)

		assert.Equal(t, first, second)
	})
}

func TestEngine_BoardIsRestored(t *testing.T) {
	eng := newTestEngine(o)

	// Given: every position reachable within three plies
	var boards []entity.Board
	var collect func(board entity.Board, turn entity.Mark, depth int)
	collect = func(board entity.Board, turn entity.Mark, depth int) {
		boards = append(boards, board)
		if depth == 0 || board.LineOwner() != e {
			return
		}
		for _, move := range board.EmptyCells() {
			next := board
			next.Set(move, turn)
			collect(next, turn.Opponent(), depth-1)
		}
	}
	collect(entity.Board{}, x, 3)

	for _, board := range boards {
		before := board

		// When: running the selector and narrow-window searches that prune early
		eng.FindBestMove(&board)
		eng.minimax(&board, true, -1, 1)
		eng.minimax(&board, false, 0, 0)
		eng.Analyze(&board)

		// Then: the board is bit-identical
		require.Equal(t, before, board)
	}
}

func TestEngine_Scenarios(t *testing.T) {
	t.Run("Completed diagonal for the AI short-circuits", func(t *testing.T) {
		// Given: X owns the main diagonal and X is the AI
		eng := newTestEngine(x)
		board := entity.Board{
			{x, o, x},
			{o, x, o},
			{e, e, x},
		}

		// Then: the evaluator and the search both report +10
		assert.Equal(t, WinScore, eng.Evaluate(&board))
		assert.Equal(t, WinScore, eng.minimax(&board, false, -infinity, infinity))
		assert.Equal(t, entity.MaximizerWins, entity.OutcomeOf(&board, eng.AIMark()))
	})

	t.Run("Full board without a line is a draw", func(t *testing.T) {
		eng := newTestEngine(o)
		board := entity.Board{
			{x, o, x},
			{x, o, o},
			{o, x, x},
		}

		assert.Equal(t, DrawScore, eng.Evaluate(&board))
		assert.False(t, eng.HasMovesLeft(&board))
		assert.Equal(t, entity.Draw, entity.OutcomeOf(&board, eng.AIMark()))
	})
}

// playEveryReply walks every legal opponent sequence against the hard policy and reports
// the number of finished games and how many the AI lost.
func playEveryReply(t *testing.T, eng *Engine, board *entity.Board, aiToMove bool) (games, losses int) {
	t.Helper()

	switch entity.OutcomeOf(board, eng.AIMark()) {
	case entity.MinimizerWins:
		return 1, 1
	case entity.MaximizerWins, entity.Draw:
		return 1, 0
	}

	if aiToMove {
		move, ok := eng.ChooseMove(board, entity.HardDifficulty)
		require.True(t, ok)
		board.Set(move, eng.AIMark())
		defer board.Set(move, e)

		return playEveryReply(t, eng, board, false)
	}

	for _, move := range board.EmptyCells() {
		board.Set(move, eng.OpponentMark())
		g, l := playEveryReply(t, eng, board, true)
		board.Set(move, e)

		games += g
		losses += l
	}

	return games, losses
}

func TestEngine_HardNeverLoses(t *testing.T) {
	for _, aiFirst := range []bool{true, false} {
		eng := newTestEngine(o)
		var board entity.Board

		games, losses := playEveryReply(t, eng, &board, aiFirst)

		assert.Positive(t, games)
		assert.Zero(t, losses, "ai first: %v", aiFirst)
		assert.Equal(t, entity.Board{}, board)
	}
}

func TestEngine_HardVersusHardDraws(t *testing.T) {
	for _, first := range []entity.Mark{x, o} {
		players := map[entity.Mark]*Engine{
			x: newTestEngine(x),
			o: newTestEngine(o),
		}

		var board entity.Board
		turn := first
		for entity.OutcomeOf(&board, x) == entity.Ongoing {
			move, ok := players[turn].ChooseMove(&board, entity.HardDifficulty)
			require.True(t, ok)
			board.Set(move, turn)
			turn = turn.Opponent()
		}

		assert.Equal(t, entity.Draw, entity.OutcomeOf(&board, x), "first: %s\n%s", first, board)
	}
}

func TestEngine_ChooseMove(t *testing.T) {
	oneEmpty := entity.Board{
		{x, o, x},
		{x, o, o},
		{o, e, x},
	}

	t.Run("Easy on a single empty cell always returns it", func(t *testing.T) {
		eng := newTestEngine(o)

		for i := 0; i < 500; i++ {
			move, ok := eng.ChooseMove(&oneEmpty, entity.EasyDifficulty)
			require.True(t, ok)
			require.Equal(t, entity.Move{Row: 2, Col: 1}, move)
		}
	})

	t.Run("Every policy reports no move on a full board", func(t *testing.T) {
		eng := newTestEngine(o)
		full := oneEmpty
		full.Set(entity.Move{Row: 2, Col: 1}, x)

		for _, difficulty := range entity.Difficulties {
			_, ok := eng.ChooseMove(&full, difficulty)
			assert.False(t, ok, difficulty)
		}
	})

	t.Run("Medium only returns empty cells and mixes both policies", func(t *testing.T) {
		eng := newTestEngine(o)
		board := entity.Board{
			{x, e, e},
			{e, e, e},
			{e, e, e},
		}

		seen := map[entity.Move]int{}
		for i := 0; i < 300; i++ {
			move, ok := eng.ChooseMove(&board, entity.MediumDifficulty)
			require.True(t, ok)
			require.True(t, board.IsEmptyAt(move))
			seen[move]++
		}

		// Then: the optimal reply shows up well above its uniform share
		assert.Greater(t, seen[entity.Move{Row: 1, Col: 1}], 300/8)
		assert.Greater(t, len(seen), 1)
	})

	t.Run("Unknown difficulty plays optimally", func(t *testing.T) {
		eng := newTestEngine(o)
		var board entity.Board

		move, ok := eng.ChooseMove(&board, entity.Difficulty("nightmare"))

		require.True(t, ok)
		assert.Equal(t, entity.Move{Row: 0, Col: 0}, move)
	})
}

func TestEngine_Analyze(t *testing.T) {
	eng := newTestEngine(o)
	board := entity.Board{
		{x, e, e},
		{e, e, e},
		{e, e, e},
	}

	values := eng.Analyze(&board)

	require.Len(t, values, 8)
	for _, mv := range values {
		expected := LossScore
		if mv.Move == (entity.Move{Row: 1, Col: 1}) {
			expected = DrawScore
		}
		assert.Equal(t, expected, mv.Value, mv.Move.String())
	}
}
