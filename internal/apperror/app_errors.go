package apperror

import "errors"

var (
	ErrInvalidMove     = errors.New("invalid move")
	ErrCellOutOfBounds = errors.New("cell is out of bounds")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrGameFinished    = errors.New("game is already finished")
	ErrNotYourTurn     = errors.New("it's not your turn")

	ErrNoAvailableMoves = errors.New("no available moves")

	ErrGameNotFound = errors.New("game not found")
	ErrInvalidMode  = errors.New("invalid game mode")
	ErrInvalidLevel = errors.New("invalid ai level")

	ErrSaveNotFound = errors.New("saved game not found")
	ErrCorruptSave  = errors.New("saved game is corrupt")
)
