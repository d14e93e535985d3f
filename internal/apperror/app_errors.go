package apperror

import "errors"

var (
	ErrOutOfRange           = errors.New("cell index is out of range")
	ErrCellOccupied         = errors.New("cell is already occupied")
	ErrGameAlreadyOver      = errors.New("game is already over")
	ErrInvalidPlayer        = errors.New("invalid player mark")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyExists = errors.New("session already exists")
)
