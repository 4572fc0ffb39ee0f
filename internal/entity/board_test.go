package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

func TestBoard_LineOwner(t *testing.T) {
	t.Run("Column", func(t *testing.T) {
		board := Board{
			{PlayerX, PlayerO, EmptyCell},
			{PlayerX, PlayerO, EmptyCell},
			{PlayerX, EmptyCell, EmptyCell},
		}

		assert.Equal(t, PlayerX, board.LineOwner())
	})

	t.Run("Anti-diagonal", func(t *testing.T) {
		board := Board{
			{PlayerX, PlayerX, PlayerO},
			{EmptyCell, PlayerO, EmptyCell},
			{PlayerO, EmptyCell, PlayerX},
		}

		assert.Equal(t, PlayerO, board.LineOwner())
	})

	t.Run("No line", func(t *testing.T) {
		board := Board{
			{PlayerX, PlayerO, PlayerX},
			{EmptyCell, PlayerO, EmptyCell},
			{EmptyCell, PlayerX, EmptyCell},
		}

		assert.Equal(t, EmptyCell, board.LineOwner())
	})
}

func TestBoard_EmptyCells(t *testing.T) {
	// Given: a board with three empty cells
	board := Board{
		{PlayerX, EmptyCell, PlayerX},
		{PlayerO, PlayerX, PlayerO},
		{EmptyCell, EmptyCell, PlayerO},
	}

	// Then: they are returned in row-major order
	assert.Equal(t, []Move{{0, 1}, {2, 0}, {2, 1}}, board.EmptyCells())
	assert.True(t, board.HasEmptyCell())
	assert.Equal(t, 3, board.Count(PlayerX))
}

func TestParseBoard(t *testing.T) {
	t.Run("Round trip through Compact", func(t *testing.T) {
		board, err := ParseBoard("XOX|OX_|__O")
		require.NoError(t, err)

		assert.Equal(t, "XOXOX___O", board.Compact())
		assert.Equal(t, PlayerO, board[2][2])
	})

	t.Run("Rejects unknown characters", func(t *testing.T) {
		_, err := ParseBoard("XOX/OXZ/__O")
		require.ErrorIs(t, err, apperror.ErrInvalidCell)
	})

	t.Run("Rejects short input", func(t *testing.T) {
		_, err := ParseBoard("XO")
		require.ErrorIs(t, err, apperror.ErrInvalidCell)
	})
}

func TestMove_Numbering(t *testing.T) {
	move := MoveFromNumber(6)

	assert.Equal(t, Move{Row: 1, Col: 2}, move)
	assert.Equal(t, 5, move.Cell())
	assert.Equal(t, 6, move.Number())
	assert.False(t, MoveFromNumber(10).InRange())
}

func TestBoard_String(t *testing.T) {
	board := Board{
		{PlayerX, EmptyCell, EmptyCell},
		{EmptyCell, PlayerO, EmptyCell},
		{EmptyCell, EmptyCell, EmptyCell},
	}

	expected := " X | _ | _ \n-----------\n _ | O | _ \n-----------\n _ | _ | _ "
	assert.Equal(t, expected, board.String())
}

func TestParseDifficulty(t *testing.T) {
	for input, expected := range map[string]Difficulty{
		"1":      EasyDifficulty,
		"Medium": MediumDifficulty,
		" hard ": HardDifficulty,
	} {
		difficulty, err := ParseDifficulty(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, difficulty)
	}

	_, err := ParseDifficulty("impossible")
	require.ErrorIs(t, err, apperror.ErrUnknownDifficulty)
}
