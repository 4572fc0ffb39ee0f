package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const (
	actionConnect   = "connect"
	actionGameNew   = "game:new"
	actionGameTurn  = "game:turn"
	actionGameLeave = "game:leave"

	gameStatusLeave = "leave"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload is shared by requests and responses.
type Payload struct {
	Player *entity.Player `json:"player,omitempty"`
	Game   *GameView      `json:"game,omitempty"`
	Error  string         `json:"error,omitempty"`

	Difficulty entity.Difficulty `json:"difficulty,omitempty"`
	AIFirst    bool              `json:"ai_first,omitempty"`
	Cell       *int              `json:"cell,omitempty"`
}

// GameView is the client facing part of a game. Board cells are indexed 0..8.
type GameView struct {
	ID         string                        `json:"id"`
	Board      [entity.CellCount]entity.Mark `json:"board"`
	Turn       entity.Mark                   `json:"player_turn,omitempty"`
	BotMark    entity.Mark                   `json:"bot_mark"`
	Difficulty entity.Difficulty             `json:"difficulty"`
	Status     string                        `json:"status"`
	Winner     entity.Mark                   `json:"winner,omitempty"`
	Moves      []int                         `json:"moves,omitempty"`
}

func newGameView(game *entity.Game) *GameView {
	view := &GameView{
		ID:         game.ID,
		Turn:       game.Turn,
		BotMark:    game.BotMark,
		Difficulty: game.Difficulty,
		Status:     game.Status(),
		Winner:     game.Winner(),
	}

	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			move := entity.Move{Row: row, Col: col}
			view.Board[move.Cell()] = game.Board.At(move)
		}
	}

	for _, move := range game.Moves {
		view.Moves = append(view.Moves, move.Cell())
	}

	return view
}
