package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show finished games",
	Long: `Display the most recent finished games and the results per difficulty.

Examples:
  tictactoe history
  tictactoe history --limit 25`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of recent games to show")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	logger := initLogger(os.Stderr)

	history, closeHistory, err := newHistoryService(cmd, logger)
	if err != nil {
		return err
	}
	defer closeHistory()

	records, err := history.Recent(cmd.Context(), flagHistoryLimit)
	if err != nil {
		return err
	}

	summaries, err := history.Summary(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Recent games")
	fmt.Fprintln(out)

	if len(records) == 0 {
		fmt.Fprintln(out, "No games recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'tictactoe play' to record the first one!")
		return nil
	}

	fmt.Fprintf(out, "  %-16s  %-6s  %-5s  %-6s  %-17s  %s\n", "Date", "Level", "First", "Winner", "Outcome", "Moves")
	fmt.Fprintf(out, "  %-16s  %-6s  %-5s  %-6s  %-17s  %s\n", "----", "-----", "-----", "------", "-------", "-----")
	for _, record := range records {
		winner := string(record.Winner)
		if winner == "" {
			winner = "-"
		}

		fmt.Fprintf(out, "  %-16s  %-6s  %-5s  %-6s  %-17s  %s\n",
			record.PlayedAt.Local().Format("2006-01-02 15:04"),
			record.Difficulty,
			record.FirstTurn,
			winner,
			describeOutcome(record.Outcome),
			entity.FormatMoves(record.Moves),
		)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Per difficulty")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-6s  %5s  %8s  %10s  %5s\n", "Level", "Games", "AI wins", "Human wins", "Draws")
	for _, summary := range summaries {
		fmt.Fprintf(out, "  %-6s  %5d  %8d  %10d  %5d\n",
			summary.Difficulty, summary.Games, summary.BotWins, summary.HumanWins, summary.Draws)
	}

	return nil
}

func describeOutcome(outcome entity.Outcome) string {
	switch outcome {
	case entity.MaximizerWins:
		return "computer wins"
	case entity.MinimizerWins:
		return "human wins"
	case entity.Draw:
		return "draw"
	default:
		return outcome.String()
	}
}
