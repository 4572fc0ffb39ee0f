package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-ai/internal/engine"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

var flagSolveMark string

var solveCmd = &cobra.Command{
	Use:   "solve <board>",
	Short: "Show the best move for a position",
	Long: `Print the minimax value of every empty cell and the move hard difficulty
would play. The board is nine cells in row-major order, X and O for marks and
_ . or - for empty cells; spaces, | and / are ignored.

Examples:
  tictactoe solve "XO_/_X_/__O" --ai-mark X
  tictactoe solve _________`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&flagSolveMark, "ai-mark", "", "Mark to find a move for (default engine.ai-mark)")
}

func runSolve(cmd *cobra.Command, args []string) error {
	logger := initLogger(os.Stderr)

	board, err := entity.ParseBoard(args[0])
	if err != nil {
		return fmt.Errorf("failed to parse board: %w", err)
	}

	mark, err := conf.Engine.Mark()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("ai-mark") {
		if mark, err = entity.ParseMark(flagSolveMark); err != nil {
			return err
		}
	}

	eng := engine.New(logger, engine.Config{AIMark: mark, Seed: conf.Engine.Seed})

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n%s\n\n", board)
	fmt.Fprintf(out, "AI plays %s, evaluation %d, outcome %s\n", mark, eng.Evaluate(&board), entity.OutcomeOf(&board, mark))

	move, ok := eng.FindBestMove(&board)
	if !ok {
		fmt.Fprintln(out, "No moves left.")
		return nil
	}
	st := eng.LastStats()

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-4s  %-6s  %s\n", "Cell", "Move", "Value")
	fmt.Fprintf(out, "  %-4s  %-6s  %s\n", "----", "----", "-----")
	for _, mv := range eng.Analyze(&board) {
		fmt.Fprintf(out, "  %-4d  %-6s  %+d\n", mv.Move.Number(), mv.Move, mv.Value)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Best move: cell %d %s (visited %d nodes, %d cutoffs)\n", move.Number(), move, st.Visited, st.Cutoffs)

	return nil
}
