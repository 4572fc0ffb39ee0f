package tui

import (
	"context"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
)

type fakeHistory struct {
	games []*entity.Game
}

func (f *fakeHistory) Record(_ context.Context, game *entity.Game) error {
	f.games = append(f.games, game)
	return nil
}

func newTestModel(history historyService, opts Options) Model {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(context.Background(), logger, service.NewBotService(logger, 3), history, opts)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)

		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}

	return m, cmd
}

func TestModel_New(t *testing.T) {
	t.Run("Bot opening is played immediately", func(t *testing.T) {
		m := newTestModel(nil, Options{Difficulty: entity.HardDifficulty, BotFirst: true})

		assert.Equal(t, []entity.Move{{Row: 0, Col: 0}}, m.Game().Moves)
		assert.Equal(t, "COMPUTER placed O at 1", m.status)
	})

	t.Run("Unknown difficulty plays hard", func(t *testing.T) {
		m := newTestModel(nil, Options{Difficulty: "impossible"})

		assert.Equal(t, entity.HardDifficulty, m.Game().Difficulty)
		assert.Equal(t, "Your turn (X)", m.status)
	})
}

func TestModel_Update(t *testing.T) {
	t.Run("Number key places the mark and the bot answers", func(t *testing.T) {
		// Given: a hard game with the human first
		m := newTestModel(nil, Options{Difficulty: entity.HardDifficulty})

		// When: the human takes the centre
		m, _ = press(t, m, runes("5"))

		// Then: the bot takes the top-left corner
		assert.Equal(t, []entity.Move{{Row: 1, Col: 1}, {Row: 0, Col: 0}}, m.Game().Moves)
		assert.Equal(t, "COMPUTER placed O at 1", m.status)
	})

	t.Run("Cursor moves and wraps", func(t *testing.T) {
		m := newTestModel(nil, Options{Difficulty: entity.EasyDifficulty})

		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight}, runes("w"))
		assert.Equal(t, entity.Move{Row: 0, Col: 2}, m.cursor)

		m, _ = press(t, m, runes("d"), tea.KeyMsg{Type: tea.KeyUp})
		assert.Equal(t, entity.Move{Row: 2, Col: 0}, m.cursor)

		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		assert.Equal(t, entity.PlayerX, m.Game().Board.At(entity.Move{Row: 2, Col: 0}))
	})

	t.Run("Occupied cell is rejected", func(t *testing.T) {
		m := newTestModel(nil, Options{Difficulty: entity.HardDifficulty, BotFirst: true})

		m, _ = press(t, m, runes("1"))

		assert.Len(t, m.Game().Moves, 1)
		assert.Equal(t, "Invalid move! Try again.", m.status)
	})

	t.Run("Finished game is announced and recorded", func(t *testing.T) {
		// Given: a hard game and a history store
		history := &fakeHistory{}
		m := newTestModel(history, Options{Difficulty: entity.HardDifficulty})

		// When: the human tries every cell until the game ends
		var finishing tea.Cmd
		for range 5 {
			for number := 1; number <= entity.CellCount && !m.Game().IsFinished(); number++ {
				var cmd tea.Cmd
				m, cmd = press(t, m, runes(string(rune('0'+number))))
				if cmd != nil {
					finishing = cmd
				}
			}
		}

		// Then: the bot did not lose and the record command saves the game
		require.True(t, m.Game().IsFinished())
		assert.Contains(t, []string{"COMPUTER wins!", "It's a draw!"}, m.status)
		require.NotNil(t, finishing)

		msg, ok := finishing().(recordedMsg)
		require.True(t, ok)
		require.NoError(t, msg.err)
		assert.Len(t, history.games, 1)

		m, _ = press(t, m, runes("5"))
		assert.True(t, m.Game().IsFinished())
	})

	t.Run("Restart and difficulty switch start a new game", func(t *testing.T) {
		m := newTestModel(nil, Options{Difficulty: entity.HardDifficulty})
		m, _ = press(t, m, runes("5"))
		first := m.Game().ID

		m, _ = press(t, m, runes("r"))
		assert.NotEqual(t, first, m.Game().ID)
		assert.Empty(t, m.Game().Moves)

		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
		assert.Equal(t, entity.EasyDifficulty, m.Game().Difficulty)
	})

	t.Run("Quit key stops the program", func(t *testing.T) {
		m := newTestModel(nil, Options{})

		m, cmd := press(t, m, runes("q"))

		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
		assert.Empty(t, m.View())
	})
}

func TestModel_View(t *testing.T) {
	m := newTestModel(nil, Options{Difficulty: entity.MediumDifficulty})

	view := m.View()

	assert.Contains(t, view, "TIC-TAC-TOE")
	assert.Contains(t, view, "difficulty: medium")
	assert.Contains(t, view, "Your turn (X)")
	assert.Contains(t, view, "-----------")
}
