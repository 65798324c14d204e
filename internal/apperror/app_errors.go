package apperror

import "errors"

var (
	ErrNotFound          = errors.New("game not found")
	ErrModeMismatch      = errors.New("game mode does not match")
	ErrAlreadyJoined     = errors.New("player already joined this game")
	ErrGameFull          = errors.New("game is full")
	ErrColumnFull        = errors.New("column is full")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrGameIsNotStarted  = errors.New("game is not started")
	ErrGameFinished      = errors.New("game is already finished")
	ErrNotInGame         = errors.New("player is not in this game")
	ErrInvalidColumn     = errors.New("invalid column index")
	ErrInvalidMode       = errors.New("invalid game mode")
	ErrInvalidRoomCode   = errors.New("invalid room code")
	ErrNoActiveGames     = errors.New("no active games")
	ErrRegistryExhausted = errors.New("could not allocate a free room code")
)
