package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrGameNotFinished   = errors.New("game is not finished yet")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrNoActiveGames     = errors.New("no active games")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrInvalidCell       = errors.New("invalid cell index")
	ErrGameNotFound      = errors.New("game not found")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrInvalidMark       = errors.New("invalid mark")
	ErrNoAvailableMoves  = errors.New("no available moves")
)
