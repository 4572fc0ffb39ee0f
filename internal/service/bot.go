package service

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/engine"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

type BotService interface {
	MakeTurn(game *entity.Game) (entity.Move, error)
}

type botService struct {
	logger *slog.Logger

	mu    sync.Mutex
	seeds *rand.Rand
}

// NewBotService returns a bot that plays with a fresh engine per move. seed 0 is time based.
func NewBotService(logger *slog.Logger, seed int64) BotService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &botService{
		logger: logger.With("component", "bot"),
		seeds:  rand.New(rand.NewSource(seed)), //nolint: gosec // game randomness
	}
}

func (that *botService) MakeTurn(game *entity.Game) (entity.Move, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", game.ID)

	if game.IsFinished() {
		return entity.Move{}, apperror.ErrGameFinished
	}

	if !game.IsBotTurn() {
		return entity.Move{}, apperror.ErrNotYourTurn
	}

	eng := engine.New(that.logger, engine.Config{
		AIMark: game.BotMark,
		Seed:   that.nextSeed(),
	})

	move, ok := eng.ChooseMove(&game.Board, game.Difficulty)
	if !ok {
		return entity.Move{}, apperror.ErrNoAvailableMoves
	}

	if err := game.MakeTurn(game.BotMark, move); err != nil {
		return entity.Move{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	log.Debug("bot placed mark", "mark", game.BotMark, "cell", move.Number(), "difficulty", game.Difficulty)

	return move, nil
}

func (that *botService) nextSeed() int64 {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.seeds.Int63()
}
