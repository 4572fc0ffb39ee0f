// Package selfplay pits two engine policies against each other and tallies the results.
package selfplay

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/engine"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/pkg"
)

type Config struct {
	Games   int
	Threads int
	Seed    int64

	AIMark             entity.Mark
	AIDifficulty       entity.Difficulty
	OpponentDifficulty entity.Difficulty

	// Swap alternates the first mover between games. Otherwise the AI always opens.
	Swap bool
}

type Result struct {
	Index   int
	AIFirst bool
	Game    *entity.Game
}

type Stats struct {
	AIWins       int
	OpponentWins int
	Draws        int

	Games []Result `json:"-"`
}

func (s *Stats) Count() int {
	return s.AIWins + s.OpponentWins + s.Draws
}

func (s *Stats) Merge(other *Stats) Stats {
	out := *s
	out.AIWins += other.AIWins
	out.OpponentWins += other.OpponentWins
	out.Draws += other.Draws
	out.Games = append(append([]Result(nil), s.Games...), other.Games...)
	return out
}

// Recorder receives every finished game, e.g. the history service.
type Recorder interface {
	Record(ctx context.Context, game *entity.Game) error
}

type gameSetup struct {
	index   int
	aiFirst bool
	aiSeed  int64
	opSeed  int64
}

// Simulate plays cfg.Games games on up to cfg.Threads goroutines. recorder may be nil.
func Simulate(ctx context.Context, logger *slog.Logger, cfg Config, recorder Recorder) (Stats, error) {
	log := logger.With("component", "selfplay")

	if cfg.Threads <= 0 {
		cfg.Threads = runtime.NumCPU()
	}
	if !cfg.AIMark.IsPlayer() {
		cfg.AIMark = entity.PlayerO
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	// seeds are drawn up front so results do not depend on scheduling
	r := rand.New(rand.NewSource(cfg.Seed)) //nolint: gosec // game randomness
	setups := make([]gameSetup, cfg.Games)
	for i := range setups {
		setups[i] = gameSetup{
			index:   i,
			aiFirst: !cfg.Swap || i%2 == 0,
			aiSeed:  r.Int63(),
			opSeed:  r.Int63(),
		}
	}

	results := make([]Result, cfg.Games)

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(cfg.Threads)
	for _, setup := range setups {
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			game, err := play(logger, cfg, setup)
			if err != nil {
				return fmt.Errorf("game %d: %w", setup.index, err)
			}

			if recorder != nil {
				if err = recorder.Record(ctx, game); err != nil {
					return fmt.Errorf("failed to record game %d: %w", setup.index, err)
				}
			}

			results[setup.index] = Result{Index: setup.index, AIFirst: setup.aiFirst, Game: game}

			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return Stats{}, err
	}

	var st Stats
	for _, res := range results {
		switch res.Game.Outcome() {
		case entity.MaximizerWins:
			st.AIWins++
		case entity.MinimizerWins:
			st.OpponentWins++
		default:
			st.Draws++
		}
	}
	st.Games = results

	log.Info("self-play finished",
		"games", st.Count(),
		"ai_wins", st.AIWins,
		"opponent_wins", st.OpponentWins,
		"draws", st.Draws,
	)

	return st, nil
}

func play(logger *slog.Logger, cfg Config, setup gameSetup) (*entity.Game, error) {
	game := entity.NewGame(pkg.GenerateGameID(), cfg.AIMark, cfg.AIDifficulty, setup.aiFirst)

	players := map[entity.Mark]struct {
		eng        *engine.Engine
		difficulty entity.Difficulty
	}{
		cfg.AIMark: {
			eng:        engine.New(logger, engine.Config{AIMark: cfg.AIMark, Seed: setup.aiSeed}),
			difficulty: cfg.AIDifficulty,
		},
		cfg.AIMark.Opponent(): {
			eng:        engine.New(logger, engine.Config{AIMark: cfg.AIMark.Opponent(), Seed: setup.opSeed}),
			difficulty: cfg.OpponentDifficulty,
		},
	}

	for !game.IsFinished() {
		mover := players[game.Turn]

		move, ok := mover.eng.ChooseMove(&game.Board, mover.difficulty)
		if !ok {
			return nil, apperror.ErrNoAvailableMoves
		}

		if err := game.MakeTurn(game.Turn, move); err != nil {
			return nil, fmt.Errorf("failed to make turn: %w", err)
		}
	}

	return game, nil
}
