package entity

import (
	"strconv"
	"strings"
	"time"
)

// MatchRecord is a finished game as kept in the history store.
type MatchRecord struct {
	ID         int64      `json:"id"`
	GameID     string     `json:"game_id"`
	Difficulty Difficulty `json:"difficulty"`
	BotMark    Mark       `json:"bot_mark"`
	FirstTurn  Mark       `json:"first_turn"`
	Winner     Mark       `json:"winner"`
	Outcome    Outcome    `json:"outcome"`
	Moves      []Move     `json:"moves"`
	PlayedAt   time.Time  `json:"played_at"`
}

// NewMatchRecord snapshots a terminal game.
func NewMatchRecord(game *Game, playedAt time.Time) *MatchRecord {
	return &MatchRecord{
		GameID:     game.ID,
		Difficulty: game.Difficulty,
		BotMark:    game.BotMark,
		FirstTurn:  game.FirstTurn,
		Winner:     game.Winner(),
		Outcome:    game.Outcome(),
		Moves:      append([]Move(nil), game.Moves...),
		PlayedAt:   playedAt,
	}
}

// MatchSummary aggregates finished games of one difficulty.
type MatchSummary struct {
	Difficulty Difficulty `json:"difficulty"`
	Games      int        `json:"games"`
	BotWins    int        `json:"bot_wins"`
	HumanWins  int        `json:"human_wins"`
	Draws      int        `json:"draws"`
}

// FormatMoves renders moves as their 1..9 cell numbers, e.g. "5 1 9".
func FormatMoves(moves []Move) string {
	numbers := make([]string, 0, len(moves))
	for _, move := range moves {
		numbers = append(numbers, strconv.Itoa(move.Number()))
	}

	return strings.Join(numbers, " ")
}

// ParseMoves is the inverse of FormatMoves. Tokens that are not 1..9 are skipped.
func ParseMoves(s string) []Move {
	fields := strings.Fields(s)
	moves := make([]Move, 0, len(fields))
	for _, field := range fields {
		number, err := strconv.Atoi(field)
		if err != nil {
			continue
		}

		if move := MoveFromNumber(number); move.InRange() {
			moves = append(moves, move)
		}
	}

	return moves
}

// ParseOutcome is the inverse of Outcome.String.
func ParseOutcome(s string) Outcome {
	for _, outcome := range []Outcome{MaximizerWins, MinimizerWins, Draw} {
		if outcome.String() == s {
			return outcome
		}
	}

	return Ongoing
}
