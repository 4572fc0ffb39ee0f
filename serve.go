package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe-ai/internal"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the REST and WebSocket servers",
	Long: `Serve games over WebSocket (actions connect, game:new, game:turn and
game:leave on /ws) and the match history over REST (/ping, /history,
/history/summary). Live games are kept in Redis, finished ones in SQLite.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := initLogger(os.Stdout)

		if err := app.RunApp(cmd.Context(), logger, conf); err != nil {
			return fmt.Errorf("app run failed: %w", err)
		}

		return nil
	},
}
