package entity

import (
	"fmt"

	"github.com/playgrid/gridline-backend/internal/apperror"
)

// UltimateGame is the nested variant: nine 3x3 local boards summarized on a
// 3x3 macro board. ActiveLocal pins the next mover to one local board; nil
// means any unlocked board is legal.
type UltimateGame struct {
	Macro        []Cell   `json:"macro"`
	Locals       [][]Cell `json:"locals"`
	ActiveLocal  *int     `json:"activeLocal"`
	Turn         int      `json:"turn"`
	Symbols      []string `json:"symbols"`
	Over         bool     `json:"over"`
	Winner       string   `json:"winner,omitempty"`
	MacroWinLine []int    `json:"macroWinLine"`
}

// NewUltimateGame - creates the fixed 3x3-of-3x3 layout with the first move
// unrestricted.
func NewUltimateGame(players int) (*UltimateGame, error) {
	if players < MinPlayers || players > MaxPlayers {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidPlayerCount, players)
	}

	locals := make([][]Cell, 9)
	for i := range locals {
		locals[i] = make([]Cell, 9)
	}

	return &UltimateGame{
		Macro:        make([]Cell, 9),
		Locals:       locals,
		ActiveLocal:  nil,
		Turn:         0,
		Symbols:      Symbols(players),
		MacroWinLine: []int{},
	}, nil
}

// Apply - places the current player's symbol at cell of the given local board
// and returns the next state. Illegal moves (finished game, bad index, wrong
// local board, occupied sub-cell) return the receiver unchanged.
func (that *UltimateGame) Apply(local, cell int) *UltimateGame {
	if that.Over || local < 0 || local > 8 || cell < 0 || cell > 8 {
		return that
	}

	if that.ActiveLocal != nil && *that.ActiveLocal != local {
		return that
	}

	if that.Locals[local][cell] != EmptyCell {
		return that
	}

	next := that.clone()
	sym := next.Symbols[next.Turn]
	next.Locals[local][cell] = Cell(sym)

	if lineOf3(next.Locals[local], sym) != nil {
		next.Macro[local] = Cell(sym)
		// Back-fill is display-only: the macro mark above already locks this
		// board out of every future legality and win check.
		for i, c := range next.Locals[local] {
			if c == EmptyCell {
				next.Locals[local][i] = Cell(sym)
			}
		}
	} else if boardFull(next.Locals[local]) {
		next.Macro[local] = LockedCell
	}

	if line := lineOf3(next.Macro, sym); line != nil {
		next.Over = true
		next.Winner = sym
		next.MacroWinLine = line
	} else if boardFull(next.Macro) {
		next.Over = true
	}

	if !next.Over {
		if next.Macro[cell] != EmptyCell {
			// The mirrored board is decided already, so the opponent moves freely.
			next.ActiveLocal = nil
		} else {
			target := cell
			next.ActiveLocal = &target
		}

		next.Turn = (next.Turn + 1) % len(next.Symbols)
	}

	return next
}

func (that *UltimateGame) Finished() bool {
	return that.Over
}

func (that *UltimateGame) CurrentTurn() int {
	return that.Turn
}

func (that *UltimateGame) Capacity() int {
	return len(that.Symbols)
}

func (that *UltimateGame) clone() *UltimateGame {
	next := *that

	next.Macro = make([]Cell, len(that.Macro))
	copy(next.Macro, that.Macro)

	next.Locals = make([][]Cell, len(that.Locals))
	for i, local := range that.Locals {
		next.Locals[i] = make([]Cell, len(local))
		copy(next.Locals[i], local)
	}

	if that.ActiveLocal != nil {
		active := *that.ActiveLocal
		next.ActiveLocal = &active
	}

	next.Symbols = make([]string, len(that.Symbols))
	copy(next.Symbols, that.Symbols)

	next.MacroWinLine = make([]int, len(that.MacroWinLine))
	copy(next.MacroWinLine, that.MacroWinLine)

	return &next
}
