// tictactoe plays Tic-Tac-Toe against a minimax AI.
//
// Usage:
//
//	tictactoe play            - Play in the console
//	tictactoe tui             - Play in a full screen terminal UI
//	tictactoe solve <board>   - Show the best move for a position
//	tictactoe selfplay        - Pit two difficulties against each other
//	tictactoe history         - Show finished games
//	tictactoe serve           - Run the REST and WebSocket servers
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-ai/internal/config"
)

var (
	flagConfigPath string
	flagLogLevel   string
	flagLogFormat  string

	conf *config.Config
)

// main - is the entry point of the application.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tictactoe",
	Short: "Tic-Tac-Toe against a minimax AI",
	Long: `Tic-Tac-Toe against an AI that searches the game tree with minimax and
alpha-beta pruning. Easy plays random moves, medium flips a coin between a
random and the best move, hard never loses.

Examples:
  tictactoe play --difficulty hard
  tictactoe tui --ai-first
  tictactoe solve "X_O_X____"
  tictactoe selfplay --games 1000 --opponent-difficulty medium
  tictactoe serve`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := config.Load(flagConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cmd.Flags().Changed("log-level") {
			loaded.LogLevel = flagLogLevel
		}
		if cmd.Flags().Changed("log-format") {
			loaded.LogFormat = flagLogFormat
		}

		conf = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "config.yml", "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(selfplayCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// initLogger builds the slog logger. Text output goes through charmbracelet/log.
func initLogger(w io.Writer) *slog.Logger {
	var level slog.Level

	switch strings.ToLower(conf.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	if conf.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}

	return slog.New(log.NewWithOptions(w, log.Options{
		Level:           log.Level(level),
		ReportTimestamp: true,
	}))
}
