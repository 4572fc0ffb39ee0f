package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

type HistoryService interface {
	Record(ctx context.Context, game *entity.Game) error
	Recent(ctx context.Context, limit int) ([]*entity.MatchRecord, error)
	Summary(ctx context.Context) ([]entity.MatchSummary, error)
}

type historyRepo interface {
	Save(ctx context.Context, record *entity.MatchRecord) error
	Recent(ctx context.Context, limit int) ([]*entity.MatchRecord, error)
	Summary(ctx context.Context) ([]entity.MatchSummary, error)
}

type historyService struct {
	historyRepo historyRepo
	now         func() time.Time
}

func NewHistoryService(historyRepo historyRepo) HistoryService {
	return &historyService{
		historyRepo: historyRepo,
		now:         time.Now,
	}
}

// Record stores a terminal game. Unfinished games are rejected with ErrGameNotFinished.
func (that *historyService) Record(ctx context.Context, game *entity.Game) error {
	if !game.IsFinished() {
		return apperror.ErrGameNotFinished
	}

	if err := that.historyRepo.Save(ctx, entity.NewMatchRecord(game, that.now().UTC())); err != nil {
		return fmt.Errorf("failed to save match: %w", err)
	}

	return nil
}

func (that *historyService) Recent(ctx context.Context, limit int) ([]*entity.MatchRecord, error) {
	records, err := that.historyRepo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent matches: %w", err)
	}

	return records, nil
}

func (that *historyService) Summary(ctx context.Context) ([]entity.MatchSummary, error) {
	summaries, err := that.historyRepo.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get match summary: %w", err)
	}

	return summaries, nil
}
