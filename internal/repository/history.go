package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const (
	insertMatch = `
		INSERT OR IGNORE INTO matches (game_id, difficulty, bot_mark, first_turn, winner, outcome, moves, played_at)
		VALUES (:game_id, :difficulty, :bot_mark, :first_turn, :winner, :outcome, :moves, :played_at)`

	selectRecentMatches = `
		SELECT id, game_id, difficulty, bot_mark, first_turn, winner, outcome, moves, played_at
		FROM matches
		ORDER BY played_at DESC, id DESC
		LIMIT ?`

	selectSummary = `
		SELECT difficulty,
			COUNT(*) AS games,
			COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0) AS bot_wins,
			COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0) AS human_wins,
			COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0) AS draws
		FROM matches
		GROUP BY difficulty
		ORDER BY difficulty`
)

type HistoryRepository interface {
	Save(ctx context.Context, record *entity.MatchRecord) error
	Recent(ctx context.Context, limit int) ([]*entity.MatchRecord, error)
	Summary(ctx context.Context) ([]entity.MatchSummary, error)
}

type matchRow struct {
	ID         int64  `db:"id"`
	GameID     string `db:"game_id"`
	Difficulty string `db:"difficulty"`
	BotMark    string `db:"bot_mark"`
	FirstTurn  string `db:"first_turn"`
	Winner     string `db:"winner"`
	Outcome    string `db:"outcome"`
	Moves      string `db:"moves"`
	PlayedAt   int64  `db:"played_at"`
}

type summaryRow struct {
	Difficulty string `db:"difficulty"`
	Games      int    `db:"games"`
	BotWins    int    `db:"bot_wins"`
	HumanWins  int    `db:"human_wins"`
	Draws      int    `db:"draws"`
}

type dbHistory struct {
	db *sqlx.DB
}

func NewHistoryRepository(db *sqlx.DB) HistoryRepository {
	return &dbHistory{
		db: db,
	}
}

// Save stores a finished game. Saving the same game twice keeps the first record.
func (that *dbHistory) Save(ctx context.Context, record *entity.MatchRecord) error {
	row := matchRow{
		GameID:     record.GameID,
		Difficulty: string(record.Difficulty),
		BotMark:    string(record.BotMark),
		FirstTurn:  string(record.FirstTurn),
		Winner:     string(record.Winner),
		Outcome:    record.Outcome.String(),
		Moves:      entity.FormatMoves(record.Moves),
		PlayedAt:   record.PlayedAt.UnixMilli(),
	}

	result, err := that.db.NamedExecContext(ctx, insertMatch, &row)
	if err != nil {
		return fmt.Errorf("failed to insert match: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}

	if affected == 0 {
		return nil
	}

	if record.ID, err = result.LastInsertId(); err != nil {
		return fmt.Errorf("failed to read inserted id: %w", err)
	}

	return nil
}

func (that *dbHistory) Recent(ctx context.Context, limit int) ([]*entity.MatchRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []matchRow
	if err := that.db.SelectContext(ctx, &rows, selectRecentMatches, limit); err != nil {
		return nil, fmt.Errorf("failed to select matches: %w", err)
	}

	records := make([]*entity.MatchRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, &entity.MatchRecord{
			ID:         row.ID,
			GameID:     row.GameID,
			Difficulty: entity.Difficulty(row.Difficulty),
			BotMark:    entity.Mark(row.BotMark),
			FirstTurn:  entity.Mark(row.FirstTurn),
			Winner:     entity.Mark(row.Winner),
			Outcome:    entity.ParseOutcome(row.Outcome),
			Moves:      entity.ParseMoves(row.Moves),
			PlayedAt:   time.UnixMilli(row.PlayedAt).UTC(),
		})
	}

	return records, nil
}

func (that *dbHistory) Summary(ctx context.Context) ([]entity.MatchSummary, error) {
	var rows []summaryRow
	err := that.db.SelectContext(ctx, &rows, selectSummary,
		entity.MaximizerWins.String(),
		entity.MinimizerWins.String(),
		entity.Draw.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize matches: %w", err)
	}

	summaries := make([]entity.MatchSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, entity.MatchSummary{
			Difficulty: entity.Difficulty(row.Difficulty),
			Games:      row.Games,
			BotWins:    row.BotWins,
			HumanWins:  row.HumanWins,
			Draws:      row.Draws,
		})
	}

	return summaries, nil
}
