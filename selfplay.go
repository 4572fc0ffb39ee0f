package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/selfplay"
)

var (
	flagGames              int
	flagThreads            int
	flagSeed               int64
	flagAIDifficulty       string
	flagOpponentDifficulty string
	flagSwap               bool
	flagRecord             bool
)

var selfplayCmd = &cobra.Command{
	Use:   "selfplay",
	Short: "Pit two difficulties against each other",
	Long: `Play many games between two engine policies in parallel and print the
results from the point of view of the AI side.

Examples:
  tictactoe selfplay --games 1000
  tictactoe selfplay --ai-difficulty medium --opponent-difficulty easy --record`,
	Args: cobra.NoArgs,
	RunE: runSelfplay,
}

func init() {
	selfplayCmd.Flags().IntVar(&flagGames, "games", 100, "Number of games")
	selfplayCmd.Flags().IntVar(&flagThreads, "threads", 0, "Parallel games (0 = number of CPUs)")
	selfplayCmd.Flags().Int64Var(&flagSeed, "seed", 0, "Master seed (0 = engine.seed, then time based)")
	selfplayCmd.Flags().StringVar(&flagAIDifficulty, "ai-difficulty", "hard", "Difficulty of the AI side")
	selfplayCmd.Flags().StringVar(&flagOpponentDifficulty, "opponent-difficulty", "easy", "Difficulty of the opponent side")
	selfplayCmd.Flags().BoolVar(&flagSwap, "swap", true, "Alternate the first mover between games")
	selfplayCmd.Flags().BoolVar(&flagRecord, "record", false, "Record every game in the match history")
}

func runSelfplay(cmd *cobra.Command, _ []string) error {
	logger := initLogger(os.Stderr)

	aiDifficulty, err := entity.ParseDifficulty(flagAIDifficulty)
	if err != nil {
		return err
	}

	opponentDifficulty, err := entity.ParseDifficulty(flagOpponentDifficulty)
	if err != nil {
		return err
	}

	aiMark, err := conf.Engine.Mark()
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = conf.Engine.Seed
	}

	var recorder selfplay.Recorder
	if flagRecord {
		history, closeHistory, err := newHistoryService(cmd, logger)
		if err != nil {
			return err
		}
		defer closeHistory()
		recorder = history
	}

	st, err := selfplay.Simulate(cmd.Context(), logger, selfplay.Config{
		Games:              flagGames,
		Threads:            flagThreads,
		Seed:               seed,
		AIMark:             aiMark,
		AIDifficulty:       aiDifficulty,
		OpponentDifficulty: opponentDifficulty,
		Swap:               flagSwap,
	}, recorder)
	if err != nil {
		return fmt.Errorf("self-play failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s) vs %s (%s), %d games\n", aiDifficulty, aiMark, opponentDifficulty, aiMark.Opponent(), st.Count())
	fmt.Fprintf(out, "  %-14s %d\n", "AI wins", st.AIWins)
	fmt.Fprintf(out, "  %-14s %d\n", "Opponent wins", st.OpponentWins)
	fmt.Fprintf(out, "  %-14s %d\n", "Draws", st.Draws)

	return nil
}
