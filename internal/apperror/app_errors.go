package apperror

import "errors"

var (
	ErrLobbyFull          = errors.New("Lobby full")
	ErrInvalidBoardSize   = errors.New("unsupported board size")
	ErrInvalidPlayerCount = errors.New("unsupported player count")
	ErrUnknownMode        = errors.New("unknown game mode")
)
