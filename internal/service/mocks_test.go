package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockPlayerService struct {
	mock.Mock
}

func (m *mockPlayerService) CreatePlayer(ctx context.Context) (*entity.Player, error) {
	args := m.Called(ctx)
	player, _ := args.Get(0).(*entity.Player)
	return player, args.Error(1)
}

func (m *mockPlayerService) GetPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	args := m.Called(ctx, id)
	player, _ := args.Get(0).(*entity.Player)
	return player, args.Error(1)
}

func (m *mockPlayerService) UpdatePlayer(ctx context.Context, player *entity.Player) error {
	return m.Called(ctx, player).Error(0)
}

type mockGameService struct {
	mock.Mock
}

func (m *mockGameService) CreateGame(ctx context.Context, player *entity.Player, difficulty entity.Difficulty, botFirst bool) (*entity.Game, *entity.Player, error) {
	args := m.Called(ctx, player, difficulty, botFirst)
	game, _ := args.Get(0).(*entity.Game)
	updated, _ := args.Get(1).(*entity.Player)
	return game, updated, args.Error(2)
}

func (m *mockGameService) UpdateGame(ctx context.Context, game *entity.Game) error {
	return m.Called(ctx, game).Error(0)
}

func (m *mockGameService) DeleteGame(ctx context.Context, gameID string) error {
	return m.Called(ctx, gameID).Error(0)
}

func (m *mockGameService) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	args := m.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

type mockHistoryService struct {
	mock.Mock
}

func (m *mockHistoryService) Record(ctx context.Context, game *entity.Game) error {
	return m.Called(ctx, game).Error(0)
}

func (m *mockHistoryService) Recent(ctx context.Context, limit int) ([]*entity.MatchRecord, error) {
	args := m.Called(ctx, limit)
	records, _ := args.Get(0).([]*entity.MatchRecord)
	return records, args.Error(1)
}

func (m *mockHistoryService) Summary(ctx context.Context) ([]entity.MatchSummary, error) {
	args := m.Called(ctx)
	summaries, _ := args.Get(0).([]entity.MatchSummary)
	return summaries, args.Error(1)
}

type mockHistoryRepo struct {
	mock.Mock
}

func (m *mockHistoryRepo) Save(ctx context.Context, record *entity.MatchRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *mockHistoryRepo) Recent(ctx context.Context, limit int) ([]*entity.MatchRecord, error) {
	args := m.Called(ctx, limit)
	records, _ := args.Get(0).([]*entity.MatchRecord)
	return records, args.Error(1)
}

func (m *mockHistoryRepo) Summary(ctx context.Context) ([]entity.MatchSummary, error) {
	args := m.Called(ctx)
	summaries, _ := args.Get(0).([]entity.MatchSummary)
	return summaries, args.Error(1)
}

type mockGameRepo struct {
	mock.Mock
}

func (m *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	return m.Called(ctx, game).Error(0)
}

func (m *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := m.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (m *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
