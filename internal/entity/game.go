package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

// State is the position of a game in the turn-alternation state machine.
type State int

const (
	AwaitingMaximizerMove State = iota
	AwaitingMinimizerMove
	Terminal
)

func (s State) String() string {
	switch s {
	case AwaitingMaximizerMove:
		return "awaiting_maximizer"
	case AwaitingMinimizerMove:
		return "awaiting_minimizer"
	case Terminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Game is one session against the AI. The AI plays BotMark and is the maximizer.
type Game struct {
	ID         string     `json:"id"`
	Board      Board      `json:"board"`
	Turn       Mark       `json:"player_turn"`
	FirstTurn  Mark       `json:"first_turn"`
	BotMark    Mark       `json:"bot_mark"`
	Difficulty Difficulty `json:"difficulty"`
	Moves      []Move     `json:"moves,omitempty"`
	Players    []*Player  `json:"players,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewGame returns an empty game. botFirst selects which side moves first.
func NewGame(id string, botMark Mark, difficulty Difficulty, botFirst bool) *Game {
	first := botMark.Opponent()
	if botFirst {
		first = botMark
	}

	return &Game{
		ID:         id,
		Turn:       first,
		FirstTurn:  first,
		BotMark:    botMark,
		Difficulty: difficulty,
		CreatedAt:  time.Now().UTC(),
	}
}

// HumanMark is the mark of the side playing against the AI.
func (that *Game) HumanMark() Mark {
	return that.BotMark.Opponent()
}

// Outcome is derived from the board each time it is asked for.
func (that *Game) Outcome() Outcome {
	return OutcomeOf(&that.Board, that.BotMark)
}

func (that *Game) State() State {
	if that.Outcome() != Ongoing {
		return Terminal
	}

	if that.Turn == that.BotMark {
		return AwaitingMaximizerMove
	}

	return AwaitingMinimizerMove
}

// Winner returns the winning mark, PlayerTie for a draw and EmptyCell while ongoing.
func (that *Game) Winner() Mark {
	switch that.Outcome() {
	case MaximizerWins:
		return that.BotMark
	case MinimizerWins:
		return that.HumanMark()
	case Draw:
		return PlayerTie
	default:
		return EmptyCell
	}
}

func (that *Game) Status() string {
	if that.IsFinished() {
		return StatusFinished
	}
	return StatusOngoing
}

func (that *Game) IsFinished() bool {
	return that.State() == Terminal
}

func (that *Game) IsBotTurn() bool {
	return that.State() == AwaitingMaximizerMove
}

// MakeTurn commits a move for playerMark and advances the turn.
func (that *Game) MakeTurn(playerMark Mark, move Move) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if !move.InRange() {
		return fmt.Errorf("%w: cell %s", apperror.ErrInvalidCell, move)
	}

	if that.Turn != playerMark {
		return apperror.ErrNotYourTurn
	}

	if !that.Board.IsEmptyAt(move) {
		return apperror.ErrCellOccupied
	}

	that.Board.Set(move, playerMark)
	that.Moves = append(that.Moves, move)

	if that.IsFinished() {
		that.Turn = EmptyCell
		return nil
	}

	that.Turn = playerMark.Opponent()

	return nil
}

// ConfirmOngoingState returns ErrGameFinished once the game reached a terminal state.
func (that *Game) ConfirmOngoingState() error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}
	return nil
}
