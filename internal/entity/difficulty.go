package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

// Difficulty selects the move policy of the AI.
type Difficulty string

const (
	EasyDifficulty   Difficulty = "easy"
	MediumDifficulty Difficulty = "medium"
	HardDifficulty   Difficulty = "hard"
)

// Difficulties lists every policy in menu order.
var Difficulties = []Difficulty{EasyDifficulty, MediumDifficulty, HardDifficulty}

// ParseDifficulty accepts a policy name or its menu number (1, 2, 3).
func ParseDifficulty(value string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", string(EasyDifficulty):
		return EasyDifficulty, nil
	case "2", string(MediumDifficulty):
		return MediumDifficulty, nil
	case "3", string(HardDifficulty):
		return HardDifficulty, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, value)
	}
}

func (d Difficulty) IsValid() bool {
	switch d {
	case EasyDifficulty, MediumDifficulty, HardDifficulty:
		return true
	default:
		return false
	}
}
