package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

func (that *Server) handleConnect(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleConnect")

	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return that.sendErrorResponse(conn, msg.Action, "malformed payload")
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Player is required")
	}

	player, err := that.gameUseCase.GetOrCreatePlayer(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to create or get", "player", payloadReq.Player.ID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to create a new player")
	}

	that.register(player.ID, conn)

	if player.GameID != "" {
		return that.handleExistingGame(ctx, conn, msg, player)
	}

	if err = that.sendMessage(conn, msg.Action, Payload{Player: player}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "playerID", player.ID)

	return nil
}

// handleExistingGame processes a player already in a game.
func (that *Server) handleExistingGame(ctx context.Context, conn *connection, msg *Message, player *entity.Player) error {
	log := that.logger.With("method", "handleExistingGame")

	game, err := that.gameUseCase.GetGameByPlayerID(ctx, player.ID)
	if err != nil {
		log.Error("failed to get game", "gameID", player.GameID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to get the game")
	}

	return that.sendMessage(conn, msg.Action, Payload{Player: player, Game: newGameView(game)})
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleNewGame")

	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return that.sendErrorResponse(conn, msg.Action, "malformed payload")
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Player is required")
	}

	difficulty := entity.HardDifficulty
	if payloadReq.Difficulty != "" {
		parsed, err := entity.ParseDifficulty(string(payloadReq.Difficulty))
		if err != nil {
			return that.sendErrorResponse(conn, msg.Action, err.Error())
		}
		difficulty = parsed
	}

	that.register(payloadReq.Player.ID, conn)

	game, err := that.gameUseCase.GetOrCreateGame(ctx, payloadReq.Player.ID, difficulty, payloadReq.AIFirst)
	if err != nil {
		log.Error("failed to create or get", "playerID", payloadReq.Player.ID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to create a new game")
	}

	log.Info("game ready", "gameID", game.ID, "difficulty", game.Difficulty)

	return that.sendGame(msg.Action, game)
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleGameTurn")

	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return that.sendErrorResponse(conn, msg.Action, "malformed payload")
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Player is required")
	}

	if payloadReq.Cell == nil {
		log.Error("Cell is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Cell is required")
	}

	that.register(payloadReq.Player.ID, conn)

	log = log.With("playerID", payloadReq.Player.ID)

	game, err := that.gameUseCase.MakeTurn(ctx, payloadReq.Player.ID, *payloadReq.Cell)
	switch {
	case errors.Is(err, apperror.ErrGameFinished) && game != nil:
		log.Info("Game finished", "gameID", game.ID, "winner", game.Winner())
		return that.sendGame(msg.Action, game)

	case errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrNoActiveGames),
		errors.Is(err, apperror.ErrGameFinished):
		return that.sendErrorResponse(conn, msg.Action, rootMessage(err))

	case err != nil:
		log.Error("failed to make turn", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to make turn")
	}

	log.Info("Player made a turn", "gameID", game.ID, "cell", *payloadReq.Cell)

	return that.sendGame(msg.Action, game)
}

func (that *Server) handleGameLeave(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleGameLeave")

	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return that.sendErrorResponse(conn, msg.Action, "malformed payload")
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "Player is required")
	}

	that.register(payloadReq.Player.ID, conn)

	game, err := that.gameUseCase.LeaveGame(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to leave game", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "game doesn't exist")
	}

	for _, player := range game.Players {
		payloadResp := Payload{
			Player: player,
			Game:   newGameView(game),
		}
		payloadResp.Game.Status = gameStatusLeave

		if err = that.sendTo(player.ID, msg.Action, payloadResp); err != nil {
			log.Error("failed to send game update", "error", err)
		}
	}

	log.Info("Player leaving", "gameID", game.ID)

	return nil
}

// sendGame sends the game to every seated player with a live connection.
func (that *Server) sendGame(action string, game *entity.Game) error {
	var errs []error
	for _, player := range game.Players {
		if err := that.sendTo(player.ID, action, Payload{Player: player, Game: newGameView(game)}); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (that *Server) sendTo(playerID, action string, payload Payload) error {
	that.connectionsMutex.RLock()
	conn, ok := that.connections[playerID]
	that.connectionsMutex.RUnlock()

	if !ok {
		that.logger.Warn("connection not found for player", "playerID", playerID)
		return nil
	}

	if err := that.sendMessage(conn, action, payload); err != nil {
		return fmt.Errorf("failed to send to player %s: %w", playerID, err)
	}

	return nil
}

// rootMessage returns the innermost error text, which is what clients see.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
