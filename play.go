package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe-ai/internal"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/frontend/console"
	"github.com/rocketscienceinc/tictactoe-ai/internal/frontend/tui"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
)

var (
	flagDifficulty string
	flagAIFirst    bool
	flagNoHistory  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the console",
	Long: `Play against the AI with the board printed as text and moves entered
as cell numbers 1 to 9. Without --difficulty and --ai-first the game asks.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Play in a full screen terminal UI",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	for _, cmd := range []*cobra.Command{playCmd, tuiCmd} {
		cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "AI difficulty: easy, medium, hard (or 1, 2, 3)")
		cmd.Flags().BoolVar(&flagAIFirst, "ai-first", false, "Let the AI make the first move")
		cmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "Do not record finished games")
	}
}

func runPlay(cmd *cobra.Command, _ []string) error {
	logger := initLogger(os.Stderr)

	botMark, err := conf.Engine.Mark()
	if err != nil {
		return err
	}

	opts := console.Options{BotMark: botMark}

	if cmd.Flags().Changed("difficulty") {
		if opts.Difficulty, err = entity.ParseDifficulty(flagDifficulty); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("ai-first") {
		opts.BotFirst = &flagAIFirst
	}

	history, closeHistory := openHistory(cmd, logger)
	defer closeHistory()

	c := console.New(logger, os.Stdin, os.Stdout, service.NewBotService(logger, conf.Engine.Seed), history, opts)

	return c.Run(cmd.Context())
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// the alternate screen owns the terminal, so logs are dropped
	logger := initLogger(io.Discard)

	botMark, err := conf.Engine.Mark()
	if err != nil {
		return err
	}

	difficulty, err := conf.Engine.Level()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("difficulty") {
		if difficulty, err = entity.ParseDifficulty(flagDifficulty); err != nil {
			return err
		}
	}

	botFirst := conf.Engine.AIFirst
	if cmd.Flags().Changed("ai-first") {
		botFirst = flagAIFirst
	}

	history, closeHistory := openHistory(cmd, logger)
	defer closeHistory()

	model := tui.New(cmd.Context(), logger, service.NewBotService(logger, conf.Engine.Seed), history, tui.Options{
		BotMark:    botMark,
		Difficulty: difficulty,
		BotFirst:   botFirst,
	})

	return tui.Run(cmd.Context(), model)
}

// openHistory returns the history service, or nil when recording is off or unavailable.
func openHistory(cmd *cobra.Command, logger *slog.Logger) (service.HistoryService, func()) {
	if flagNoHistory {
		return nil, func() {}
	}

	history, closeFn, err := newHistoryService(cmd, logger)
	if err != nil {
		logger.Warn("match history disabled", "error", err)
		return nil, func() {}
	}

	return history, closeFn
}

func newHistoryService(cmd *cobra.Command, logger *slog.Logger) (service.HistoryService, func(), error) {
	storage, err := app.OpenHistory(cmd.Context(), conf.SQLiteStoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open match history: %w", err)
	}

	closeFn := func() {
		if err := storage.Close(); err != nil {
			logger.Error("could not close history storage", "error", err)
		}
	}

	return service.NewHistoryService(repository.NewHistoryRepository(storage.Connection)), closeFn, nil
}
