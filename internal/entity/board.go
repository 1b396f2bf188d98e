package entity

import (
	"errors"
	"fmt"
)

const (
	Rows = 3
	Cols = 3
)

var ErrInvalidMark = errors.New("invalid mark")

// Mark is the content of a single cell.
type Mark int

const (
	Empty Mark = iota
	Player1
	Player2
)

func (m Mark) IsValid() bool {
	return m >= Empty && m <= Player2
}

func (m Mark) IsPlayer() bool {
	return m == Player1 || m == Player2
}

// Next - returns the mark that moves after m.
func (m Mark) Next() Mark {
	return m%2 + 1
}

func (m Mark) String() string {
	switch m {
	case Player1:
		return "X"
	case Player2:
		return "O"
	default:
		return ""
	}
}

// Move identifies one cell of the board.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Move) InBounds() bool {
	return that.Row >= 0 && that.Row < Rows && that.Col >= 0 && that.Col < Cols
}

func (that Move) String() string {
	return fmt.Sprintf("(%d, %d)", that.Row, that.Col)
}

type TerminalState int

const (
	NoWinner TerminalState = iota
	Player1Wins
	Player2Wins
)

func (s TerminalState) String() string {
	switch s {
	case Player1Wins:
		return "player1_wins"
	case Player2Wins:
		return "player2_wins"
	default:
		return "none"
	}
}

// Board is a value type: assigning it copies the grid, so a copy never aliases the original.
type Board struct {
	cells       [Rows][Cols]Mark
	markedCount int
}

func NewBoard() Board {
	return Board{}
}

// NewBoardFromGrid - builds a board from raw cells and recounts the marked cells.
func NewBoardFromGrid(grid [Rows][Cols]Mark) (Board, error) {
	board := Board{}

	for row := range Rows {
		for col := range Cols {
			mark := grid[row][col]
			if !mark.IsValid() {
				return Board{}, fmt.Errorf("%w: %d at %s", ErrInvalidMark, mark, Move{Row: row, Col: col})
			}

			if mark != Empty {
				board.MarkCell(row, col, mark)
			}
		}
	}

	return board, nil
}

// MarkCell - puts the player's mark into an empty cell. The caller checks bounds and emptiness.
func (that *Board) MarkCell(row, col int, player Mark) {
	that.cells[row][col] = player
	that.markedCount++
}

func (that *Board) Cell(row, col int) Mark {
	return that.cells[row][col]
}

func (that *Board) IsEmptyCell(row, col int) bool {
	return that.cells[row][col] == Empty
}

// EmptyCells - returns the empty cells in row-major order.
func (that *Board) EmptyCells() []Move {
	moves := make([]Move, 0, Rows*Cols-that.markedCount)

	for row := range Rows {
		for col := range Cols {
			if that.IsEmptyCell(row, col) {
				moves = append(moves, Move{Row: row, Col: col})
			}
		}
	}

	return moves
}

func (that *Board) MarkedCount() int {
	return that.markedCount
}

func (that *Board) IsFull() bool {
	return that.markedCount == Rows*Cols
}

func (that *Board) IsEmpty() bool {
	return that.markedCount == 0
}

// Grid - returns a copy of the cells.
func (that *Board) Grid() [Rows][Cols]Mark {
	return that.cells
}

func (that *Board) TerminalState() TerminalState {
	state, _ := that.WinningLine()
	return state
}

// WinningLine - checks columns, rows, the falling and the rising diagonal in that order
// and reports the first completed line.
func (that *Board) WinningLine() (TerminalState, WinLine) {
	for _, line := range winLines {
		a := that.cells[line.cells[0].Row][line.cells[0].Col]
		b := that.cells[line.cells[1].Row][line.cells[1].Col]
		c := that.cells[line.cells[2].Row][line.cells[2].Col]

		if a != Empty && a == b && b == c {
			return stateOf(a), line.line
		}
	}

	return NoWinner, LineNone
}

func (that *Board) Winner() Mark {
	switch that.TerminalState() {
	case Player1Wins:
		return Player1
	case Player2Wins:
		return Player2
	default:
		return Empty
	}
}

// IsDraw - the board is full and nobody completed a line.
func (that *Board) IsDraw() bool {
	return that.IsFull() && that.TerminalState() == NoWinner
}

func stateOf(mark Mark) TerminalState {
	if mark == Player1 {
		return Player1Wins
	}
	return Player2Wins
}
