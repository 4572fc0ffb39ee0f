// Package console is the line-oriented front end: a main menu, a difficulty and first-mover
// prompt, then the turn loop against the bot with keypad numbering 1..9.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/pkg"
)

const (
	menuPlay         = 1
	menuInstructions = 2
	menuQuit         = 3
)

const instructions = `
==== Instructions ====
1. Enter a number from 1 to 9 to place your mark:

 1 | 2 | 3
-----------
 4 | 5 | 6
-----------
 7 | 8 | 9

2. Only empty cells can be chosen.

Starting a new game discards the previous one.

Press Enter to return to the main menu.
`

type botService interface {
	MakeTurn(game *entity.Game) (entity.Move, error)
}

type historyService interface {
	Record(ctx context.Context, game *entity.Game) error
}

type Options struct {
	BotMark entity.Mark

	// Difficulty skips the difficulty prompt when set.
	Difficulty entity.Difficulty
	// BotFirst skips the first-mover prompt when set.
	BotFirst *bool
}

type Console struct {
	logger *slog.Logger

	in  *bufio.Scanner
	out io.Writer
	tty bool

	bot     botService
	history historyService
	opts    Options
}

// New builds a console front end. history may be nil.
func New(logger *slog.Logger, in io.Reader, out io.Writer, bot botService, history historyService, opts Options) *Console {
	if !opts.BotMark.IsPlayer() {
		opts.BotMark = entity.PlayerO
	}

	tty := false
	if f, ok := out.(*os.File); ok {
		tty = term.IsTerminal(int(f.Fd()))
	}

	return &Console{
		logger:  logger.With("component", "console"),
		in:      bufio.NewScanner(in),
		out:     out,
		tty:     tty,
		bot:     bot,
		history: history,
		opts:    opts,
	}
}

// Run shows the main menu until the player quits or input ends.
func (that *Console) Run(ctx context.Context) error {
	for {
		that.clearScreen()
		that.printf("\n==== TIC-TAC-TOE ====")
		that.printf("\n%d. Play", menuPlay)
		that.printf("\n%d. Instructions", menuInstructions)
		that.printf("\n%d. Quit", menuQuit)
		that.printf("\n\nEnter your choice: ")

		line, err := that.readLine()
		if err != nil {
			return that.finish(err)
		}

		choice, err := strconv.Atoi(line)
		if err != nil {
			that.printf("Invalid choice! Enter 1, 2, or 3.\n")
			continue
		}

		switch choice {
		case menuPlay:
			if _, err = that.Play(ctx); err != nil {
				return that.finish(err)
			}

			again, err := that.askYesNo("Back to the main menu? (y/n): ", "Invalid choice! Enter y or n: ")
			if err != nil {
				return that.finish(err)
			}
			if !again {
				that.printf("\nLeaving the game. Goodbye!\n")
				return nil
			}
		case menuInstructions:
			that.clearScreen()
			that.printf("%s", instructions)
			if _, err = that.readLine(); err != nil {
				return that.finish(err)
			}
		case menuQuit:
			that.printf("\nLeaving the game. Goodbye!\n")
			return nil
		default:
			that.printf("Invalid choice! Enter 1, 2, or 3.\n")
		}
	}
}

// Play runs a single game and returns it once finished.
func (that *Console) Play(ctx context.Context) (*entity.Game, error) {
	log := that.logger.With("method", "Play")

	difficulty, err := that.askDifficulty()
	if err != nil {
		return nil, err
	}

	botFirst, err := that.askBotFirst()
	if err != nil {
		return nil, err
	}

	game := entity.NewGame(pkg.GenerateGameID(), that.opts.BotMark, difficulty, botFirst)
	log.Debug("game started", "gameID", game.ID, "difficulty", difficulty, "botFirst", botFirst)

	if err = that.loop(game); err != nil {
		return game, err
	}

	that.announce(game)

	if that.history != nil {
		if err = that.history.Record(ctx, game); err != nil {
			log.Warn("failed to record game", "gameID", game.ID, "error", err)
		}
	}

	return game, nil
}

func (that *Console) loop(game *entity.Game) error {
	that.printBoard(&game.Board)

	for !game.IsFinished() {
		if game.IsBotTurn() {
			move, err := that.bot.MakeTurn(game)
			if err != nil {
				return fmt.Errorf("failed to make bot turn: %w", err)
			}

			that.printf("COMPUTER placed %s at %d\n", game.BotMark, move.Number())
			that.printBoard(&game.Board)
			continue
		}

		that.printf("Enter your move (1-9): ")
		line, err := that.readLine()
		if err != nil {
			return err
		}

		number, err := strconv.Atoi(line)
		if err != nil || number < 1 || number > entity.CellCount {
			that.printf("Invalid input! Enter a number between 1 and 9.\n")
			continue
		}

		err = game.MakeTurn(game.HumanMark(), entity.MoveFromNumber(number))
		switch {
		case errors.Is(err, apperror.ErrCellOccupied):
			that.printf("Invalid move! Try again.\n")
			continue
		case err != nil:
			return fmt.Errorf("failed to make turn: %w", err)
		}

		that.printBoard(&game.Board)
	}

	return nil
}

func (that *Console) announce(game *entity.Game) {
	switch game.Outcome() {
	case entity.MaximizerWins:
		that.printf("COMPUTER wins!\n")
	case entity.MinimizerWins:
		that.printf("You win!\n")
	case entity.Draw:
		that.printf("It's a draw!\n")
	}
}

func (that *Console) askDifficulty() (entity.Difficulty, error) {
	if that.opts.Difficulty.IsValid() {
		return that.opts.Difficulty, nil
	}

	that.printf("Choose difficulty: 1. Easy  2. Medium  3. Hard\n")
	for {
		line, err := that.readLine()
		if err != nil {
			return "", err
		}

		if _, err = strconv.Atoi(line); err == nil {
			if difficulty, err := entity.ParseDifficulty(line); err == nil {
				return difficulty, nil
			}
		}

		that.printf("Invalid choice! Enter 1, 2, or 3: ")
	}
}

func (that *Console) askBotFirst() (bool, error) {
	if that.opts.BotFirst != nil {
		return *that.opts.BotFirst, nil
	}

	that.printf("Go first? (1 = YES, 2 = NO): ")
	for {
		line, err := that.readLine()
		if err != nil {
			return false, err
		}

		switch line {
		case "1":
			return false, nil
		case "2":
			return true, nil
		}

		that.printf("Invalid choice! Enter 1 or 2: ")
	}
}

func (that *Console) askYesNo(prompt, retry string) (bool, error) {
	that.printf("%s", prompt)
	for {
		line, err := that.readLine()
		if err != nil {
			return false, err
		}

		switch strings.ToLower(line) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}

		that.printf("%s", retry)
	}
}

func (that *Console) printBoard(board *entity.Board) {
	that.printf("\n%s\n\n", board.String())
}

// readLine returns the next trimmed input line or io.EOF once input is exhausted.
func (that *Console) readLine() (string, error) {
	if !that.in.Scan() {
		if err := that.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", io.EOF
	}

	return strings.TrimSpace(that.in.Text()), nil
}

func (that *Console) finish(err error) error {
	if errors.Is(err, io.EOF) {
		that.printf("\n")
		return nil
	}
	return err
}

func (that *Console) clearScreen() {
	if that.tty {
		that.printf("\033[H\033[2J")
	}
}

func (that *Console) printf(format string, args ...any) {
	fmt.Fprintf(that.out, format, args...)
}
