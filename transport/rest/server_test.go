package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

var errDatabaseLocked = errors.New("database is locked")

type mockHistoryService struct {
	mock.Mock
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

func newTestServer(t *testing.T) (http.Handler, *mockHistoryService) {
	t.Helper()

	history := &mockHistoryService{}
	t.Cleanup(func() { history.AssertExpectations(t) })

	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), history).Handler(), history
}

func serve(handler http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestServer_Ping(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := serve(handler, http.MethodGet, "/ping")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestServer_History(t *testing.T) {
	t.Run("Recent matches use the default limit", func(t *testing.T) {
		// Given: one stored match
		handler, history := newTestServer(t)
		history.On("Recent", mock.Anything, defaultHistoryLimit).Return([]*entity.MatchRecord{
			{ID: 1, GameID: "g1", Difficulty: entity.HardDifficulty, Winner: entity.PlayerTie, Outcome: entity.Draw},
		}, nil).Once()

		// When: the history is requested without a limit
		rec := serve(handler, http.MethodGet, "/history")

		// Then: the match is returned as JSON
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var records []entity.MatchRecord
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
		require.Len(t, records, 1)
		assert.Equal(t, "g1", records[0].GameID)
	})

	t.Run("Limit is capped", func(t *testing.T) {
		handler, history := newTestServer(t)
		history.On("Recent", mock.Anything, maxHistoryLimit).Return([]*entity.MatchRecord{}, nil).Once()

		rec := serve(handler, http.MethodGet, "/history?limit=5000")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Error on bad limit", func(t *testing.T) {
		handler, _ := newTestServer(t)

		rec := serve(handler, http.MethodGet, "/history?limit=-1")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Storage failure is a server error", func(t *testing.T) {
		handler, history := newTestServer(t)
		history.On("Summary", mock.Anything).Return(nil, errDatabaseLocked).Once()

		rec := serve(handler, http.MethodGet, "/history/summary")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("Summary per difficulty", func(t *testing.T) {
		handler, history := newTestServer(t)
		history.On("Summary", mock.Anything).Return([]entity.MatchSummary{
			{Difficulty: entity.EasyDifficulty, Games: 3, BotWins: 1, HumanWins: 1, Draws: 1},
		}, nil).Once()

		rec := serve(handler, http.MethodGet, "/history/summary")

		require.Equal(t, http.StatusOK, rec.Code)
		var summaries []entity.MatchSummary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
		assert.Equal(t, 3, summaries[0].Games)
	})

	t.Run("Only GET is allowed", func(t *testing.T) {
		handler, _ := newTestServer(t)

		rec := serve(handler, http.MethodPost, "/history")

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
