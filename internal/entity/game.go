package entity

import (
	"fmt"
	"sort"

	"github.com/playgrid/gridline-backend/internal/apperror"
)

const (
	MinPlayers = 2
	MaxPlayers = 4
)

// Game is the classic N-in-a-row state. Values are immutable once published:
// Apply returns a fresh copy and never touches the receiver, so a Game held
// by a lobby is only ever replaced wholesale, never mutated in place.
type Game struct {
	Board       []Cell   `json:"board"`
	Size        int      `json:"size"`
	WinLength   int      `json:"winLength"`
	Turn        int      `json:"turn"`
	Symbols     []string `json:"symbols"`
	Over        bool     `json:"over"`
	Winner      string   `json:"winner,omitempty"`
	WinningLine []int    `json:"winningLine"`
}

// NewGame - creates an empty board for the given size and player count.
// A 3x3 board needs three in a row to win, larger boards need four.
func NewGame(size, players int) (*Game, error) {
	if size != 3 && size != 4 && size != 5 {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidBoardSize, size)
	}

	if players < MinPlayers || players > MaxPlayers {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidPlayerCount, players)
	}

	winLength := 4
	if size == 3 {
		winLength = 3
	}

	return &Game{
		Board:       make([]Cell, size*size),
		Size:        size,
		WinLength:   winLength,
		Turn:        0,
		Symbols:     Symbols(players),
		WinningLine: []int{},
	}, nil
}

// Apply - places the current player's symbol at cell and returns the next
// state. Illegal moves (finished game, bad index, occupied cell) return the
// receiver unchanged; turn ownership is the caller's concern, this guard is
// only a last line of defense.
func (that *Game) Apply(cell int) *Game {
	if that.Over || cell < 0 || cell >= len(that.Board) || that.Board[cell] != EmptyCell {
		return that
	}

	next := that.clone()
	sym := next.Symbols[next.Turn]
	next.Board[cell] = Cell(sym)

	switch line := next.winningRun(cell, sym); {
	case line != nil:
		next.Over = true
		next.Winner = sym
		next.WinningLine = line
	case boardFull(next.Board):
		next.Over = true
	default:
		next.Turn = (next.Turn + 1) % len(next.Symbols)
	}

	return next
}

func (that *Game) Finished() bool {
	return that.Over
}

func (that *Game) CurrentTurn() int {
	return that.Turn
}

func (that *Game) Capacity() int {
	return len(that.Symbols)
}

// winningRun - scans the four axes through the just-played cell and returns
// the contiguous run of sym once it reaches WinLength. The run is exactly the
// connected cells, not the whole axis.
func (that *Game) winningRun(cell int, sym string) []int {
	size := that.Size
	row0, col0 := cell/size, cell%size

	dirs := [4][2]int{
		{0, 1},  // horizontal
		{1, 0},  // vertical
		{1, 1},  // diagonal
		{1, -1}, // anti-diagonal
	}

	for _, dir := range dirs {
		run := []int{cell}

		for _, sign := range []int{1, -1} {
			row, col := row0+sign*dir[0], col0+sign*dir[1]
			for row >= 0 && row < size && col >= 0 && col < size && that.Board[row*size+col] == Cell(sym) {
				run = append(run, row*size+col)
				row += sign * dir[0]
				col += sign * dir[1]
			}
		}

		if len(run) >= that.WinLength {
			sort.Ints(run)
			return run
		}
	}

	return nil
}

func (that *Game) clone() *Game {
	next := *that

	next.Board = make([]Cell, len(that.Board))
	copy(next.Board, that.Board)

	next.Symbols = make([]string, len(that.Symbols))
	copy(next.Symbols, that.Symbols)

	next.WinningLine = make([]int, len(that.WinningLine))
	copy(next.WinningLine, that.WinningLine)

	return &next
}
