// Package tui is the Bubble Tea front end: a cursor driven board against the bot.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/pkg"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	cursorStyle = cellStyle.Reverse(true)
	xStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	oStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

type botService interface {
	MakeTurn(game *entity.Game) (entity.Move, error)
}

type historyService interface {
	Record(ctx context.Context, game *entity.Game) error
}

// recordedMsg reports the result of saving a finished game.
type recordedMsg struct {
	gameID string
	err    error
}

type Options struct {
	BotMark    entity.Mark
	Difficulty entity.Difficulty
	BotFirst   bool
}

type Model struct {
	ctx    context.Context
	logger *slog.Logger

	bot     botService
	history historyService

	keys KeyMap
	help help.Model

	opts   Options
	game   *entity.Game
	cursor entity.Move
	status string
	err    error

	quitting bool
}

// New returns a model with a fresh game. history may be nil.
func New(ctx context.Context, logger *slog.Logger, bot botService, history historyService, opts Options) Model {
	if !opts.BotMark.IsPlayer() {
		opts.BotMark = entity.PlayerO
	}
	if !opts.Difficulty.IsValid() {
		opts.Difficulty = entity.HardDifficulty
	}

	m := Model{
		ctx:     ctx,
		logger:  logger.With("component", "tui"),
		bot:     bot,
		history: history,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		opts:    opts,
		cursor:  entity.Move{Row: 1, Col: 1},
	}
	m.newGame()

	return m
}

// Run starts the program on the alternate screen and blocks until it exits.
func Run(ctx context.Context, m Model) error {
	if _, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return fmt.Errorf("failed to run tui: %w", err)
	}

	return nil
}

func (m Model) Game() *entity.Game {
	return m.game
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case recordedMsg:
		if msg.err != nil {
			m.logger.Warn("failed to record game", "gameID", msg.gameID, "error", msg.err)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Restart):
		m.newGame()
		return m, nil

	case key.Matches(msg, m.keys.Difficulty):
		m.opts.Difficulty = nextDifficulty(m.opts.Difficulty)
		m.newGame()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.cursor.Row = (m.cursor.Row + entity.BoardSize - 1) % entity.BoardSize
	case key.Matches(msg, m.keys.Down):
		m.cursor.Row = (m.cursor.Row + 1) % entity.BoardSize
	case key.Matches(msg, m.keys.Left):
		m.cursor.Col = (m.cursor.Col + entity.BoardSize - 1) % entity.BoardSize
	case key.Matches(msg, m.keys.Right):
		m.cursor.Col = (m.cursor.Col + 1) % entity.BoardSize

	case key.Matches(msg, m.keys.Place):
		return m.place(m.cursor)

	case key.Matches(msg, m.keys.Cell):
		move := entity.MoveFromNumber(int(msg.String()[0] - '0'))
		m.cursor = move
		return m.place(move)
	}

	return m, nil
}

// place plays the human move and lets the bot answer.
func (m Model) place(move entity.Move) (tea.Model, tea.Cmd) {
	if m.game.IsFinished() {
		return m, nil
	}

	m.err = nil
	if err := m.game.MakeTurn(m.game.HumanMark(), move); err != nil {
		if errors.Is(err, apperror.ErrCellOccupied) {
			m.status = "Invalid move! Try again."
			return m, nil
		}
		m.err = err
		return m, nil
	}

	m.botTurn()

	return m, m.finish()
}

func (m *Model) botTurn() {
	if !m.game.IsBotTurn() {
		m.status = m.turnStatus()
		return
	}

	move, err := m.bot.MakeTurn(m.game)
	if err != nil {
		m.err = err
		return
	}

	m.status = fmt.Sprintf("COMPUTER placed %s at %d", m.game.BotMark, move.Number())
}

// finish announces the outcome and saves the game once it ended.
func (m *Model) finish() tea.Cmd {
	switch m.game.Outcome() {
	case entity.MaximizerWins:
		m.status = "COMPUTER wins!"
	case entity.MinimizerWins:
		m.status = "You win!"
	case entity.Draw:
		m.status = "It's a draw!"
	default:
		return nil
	}

	if m.history == nil {
		return nil
	}

	ctx, history, game := m.ctx, m.history, m.game
	return func() tea.Msg {
		return recordedMsg{gameID: game.ID, err: history.Record(ctx, game)}
	}
}

func (m *Model) newGame() {
	m.game = entity.NewGame(pkg.GenerateGameID(), m.opts.BotMark, m.opts.Difficulty, m.opts.BotFirst)
	m.err = nil
	m.botTurn()
}

func (m Model) turnStatus() string {
	return fmt.Sprintf("Your turn (%s)", m.game.HumanMark())
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("TIC-TAC-TOE"))
	fmt.Fprintf(&sb, "  difficulty: %s  you: %s\n\n", m.game.Difficulty, m.game.HumanMark())

	for row := 0; row < entity.BoardSize; row++ {
		cells := make([]string, 0, entity.BoardSize)
		for col := 0; col < entity.BoardSize; col++ {
			cells = append(cells, m.renderCell(entity.Move{Row: row, Col: col}))
		}
		sb.WriteString(strings.Join(cells, "|"))
		sb.WriteString("\n")
		if row < entity.BoardSize-1 {
			sb.WriteString("-----------\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render(m.status))
	sb.WriteString("\n")
	if m.err != nil {
		sb.WriteString(errorStyle.Render(m.err.Error()))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))

	return sb.String()
}

func (m Model) renderCell(move entity.Move) string {
	var mark string
	switch m.game.Board.At(move) {
	case entity.PlayerX:
		mark = xStyle.Render(string(entity.PlayerX))
	case entity.PlayerO:
		mark = oStyle.Render(string(entity.PlayerO))
	default:
		mark = emptyStyle.Render("_")
	}

	if move == m.cursor && !m.game.IsFinished() {
		return cursorStyle.Render(mark)
	}
	return cellStyle.Render(mark)
}

func nextDifficulty(current entity.Difficulty) entity.Difficulty {
	for i, difficulty := range entity.Difficulties {
		if difficulty == current {
			return entity.Difficulties[(i+1)%len(entity.Difficulties)]
		}
	}
	return entity.HardDifficulty
}
