package entity

import "encoding/json"

const (
	PlayerX = "X"
	PlayerO = "O"
	PlayerT = "△"
	PlayerS = "□"

	EmptyCell = Cell("")

	// LockedCell marks a full ultimate sub-board that nobody won.
	LockedCell = Cell("F")
)

// symbolAlphabet is the fixed join-order alphabet; player count is bounded by its length.
var symbolAlphabet = []string{PlayerX, PlayerO, PlayerT, PlayerS}

// Symbols returns the first n marks of the alphabet.
func Symbols(n int) []string {
	marks := make([]string, n)
	copy(marks, symbolAlphabet[:n])

	return marks
}

// Cell is one board square. An empty cell serializes as JSON null so the
// client can distinguish "nobody played here" from any real mark.
type Cell string

func (that Cell) MarshalJSON() ([]byte, error) {
	if that == EmptyCell {
		return []byte("null"), nil
	}

	return json.Marshal(string(that))
}

func (that *Cell) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*that = EmptyCell
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	*that = Cell(s)

	return nil
}

// WinCombos are the eight lines of a flat 3x3 board, shared by ultimate
// local boards and the macro board.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// lineOf3 - returns the first full line of sym on a 9-cell board, or nil.
// A LockedCell never matches a symbol, so locked macro slots can't win.
func lineOf3(board []Cell, sym string) []int {
	for _, combo := range WinCombos {
		if board[combo[0]] == Cell(sym) && board[combo[1]] == Cell(sym) && board[combo[2]] == Cell(sym) {
			return []int{combo[0], combo[1], combo[2]}
		}
	}

	return nil
}

func boardFull(board []Cell) bool {
	for _, cell := range board {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}
