package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

// Mark is the content of a single cell.
type Mark string

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"

	// PlayerTie is reported as the winner of a drawn game.
	PlayerTie Mark = "-"
)

// BoardSize is the side length of the grid.
const BoardSize = 3

// CellCount is the number of cells on the board.
const CellCount = BoardSize * BoardSize

// ParseMark accepts "X" or "O" in any case.
func ParseMark(value string) (Mark, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case string(PlayerX):
		return PlayerX, nil
	case string(PlayerO):
		return PlayerO, nil
	default:
		return EmptyCell, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, value)
	}
}

// Opponent returns the other side's mark.
func (m Mark) Opponent() Mark {
	if m == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (m Mark) IsPlayer() bool {
	return m == PlayerX || m == PlayerO
}

// Move is a board coordinate. Row and Col are zero based.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// MoveFromCell converts a 0..8 cell index into a Move.
func MoveFromCell(cell int) Move {
	return Move{Row: cell / BoardSize, Col: cell % BoardSize}
}

// MoveFromNumber converts the 1..9 keypad numbering into a Move.
func MoveFromNumber(number int) Move {
	return MoveFromCell(number - 1)
}

func (m Move) InRange() bool {
	return m.Row >= 0 && m.Row < BoardSize && m.Col >= 0 && m.Col < BoardSize
}

// Cell returns the 0..8 index of the move.
func (m Move) Cell() int {
	return m.Row*BoardSize + m.Col
}

// Number returns the 1..9 keypad number of the move.
func (m Move) Number() int {
	return m.Cell() + 1
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}

// WinLines lists every line in the order it is checked: rows, columns, main diagonal,
// anti-diagonal.
var WinLines = [8][3]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is the 3x3 grid, indexed [row][col].
type Board [BoardSize][BoardSize]Mark

func (that *Board) At(move Move) Mark {
	return that[move.Row][move.Col]
}

func (that *Board) Set(move Move, mark Mark) {
	that[move.Row][move.Col] = mark
}

func (that *Board) IsEmptyAt(move Move) bool {
	return that[move.Row][move.Col] == EmptyCell
}

// HasEmptyCell reports whether any cell is still empty.
func (that *Board) HasEmptyCell() bool {
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if that[row][col] == EmptyCell {
				return true
			}
		}
	}
	return false
}

// EmptyCells returns the empty cells in row-major order.
func (that *Board) EmptyCells() []Move {
	cells := make([]Move, 0, CellCount)
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if that[row][col] == EmptyCell {
				cells = append(cells, Move{Row: row, Col: col})
			}
		}
	}
	return cells
}

// Count returns how many cells hold the given mark.
func (that *Board) Count(mark Mark) int {
	n := 0
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if that[row][col] == mark {
				n++
			}
		}
	}
	return n
}

// LineOwner returns the mark of the first completed line, or EmptyCell.
func (that *Board) LineOwner() Mark {
	for _, line := range WinLines {
		a, b, c := that.At(line[0]), that.At(line[1]), that.At(line[2])
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}
	return EmptyCell
}

// String renders the board the way the console front end prints it.
func (that Board) String() string {
	var sb strings.Builder
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			mark := that[row][col]
			if mark == EmptyCell {
				mark = "_"
			}
			sb.WriteString(" " + string(mark) + " ")
			if col < BoardSize-1 {
				sb.WriteString("|")
			}
		}
		if row < BoardSize-1 {
			sb.WriteString("\n-----------\n")
		}
	}
	return sb.String()
}

// Compact renders the board as nine characters, '_' for empty.
func (that Board) Compact() string {
	var sb strings.Builder
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if that[row][col] == EmptyCell {
				sb.WriteByte('_')
				continue
			}
			sb.WriteString(string(that[row][col]))
		}
	}
	return sb.String()
}

// ParseBoard reads nine cells from s. 'X' and 'O' are marks, '_', '.' and '-' are empty,
// whitespace, '|' and '/' are ignored.
func ParseBoard(s string) (Board, error) {
	var board Board
	n := 0
	for _, r := range strings.ToUpper(s) {
		var mark Mark
		switch r {
		case ' ', '\t', '\n', '|', '/':
			continue
		case 'X':
			mark = PlayerX
		case 'O':
			mark = PlayerO
		case '_', '.', '-':
			mark = EmptyCell
		default:
			return Board{}, fmt.Errorf("%w: unexpected character %q", apperror.ErrInvalidCell, r)
		}
		if n >= CellCount {
			return Board{}, fmt.Errorf("%w: more than %d cells", apperror.ErrInvalidCell, CellCount)
		}
		board.Set(MoveFromCell(n), mark)
		n++
	}
	if n != CellCount {
		return Board{}, fmt.Errorf("%w: expected %d cells, got %d", apperror.ErrInvalidCell, CellCount, n)
	}
	return board, nil
}
