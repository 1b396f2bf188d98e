package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

// Mode selects who plays the second mark.
type Mode string

const (
	ModeAI  Mode = "ai"
	ModePVP Mode = "pvp"
)

func (m Mode) IsValid() bool {
	return m == ModeAI || m == ModePVP
}

func (m Mode) Toggle() Mode {
	if m == ModePVP {
		return ModeAI
	}
	return ModePVP
}

// Result describes how a board stands after a move.
type Result struct {
	State TerminalState
	Line  WinLine
	Draw  bool
}

func (that Result) IsOver() bool {
	return that.State != NoWinner || that.Draw
}

func (that Result) Winner() Mark {
	switch that.State {
	case Player1Wins:
		return Player1
	case Player2Wins:
		return Player2
	default:
		return Empty
	}
}

func ResultOf(board *Board) Result {
	state, line := board.WinningLine()

	return Result{
		State: state,
		Line:  line,
		Draw:  state == NoWinner && board.IsFull(),
	}
}

// GameState is the read model handed to rendering collaborators.
type GameState struct {
	ID      string           `json:"id"`
	Board   [Rows][Cols]Mark `json:"board"`
	Player  Mark             `json:"player"`
	Mode    Mode             `json:"mode"`
	AILevel int              `json:"ai_level"`
	Running bool             `json:"running"`
	Winner  Mark             `json:"winner"`
	WinLine WinLine          `json:"win_line"`
	Draw    bool             `json:"draw"`
}

// Snapshot is the persisted form of a game.
type Snapshot struct {
	Board    [][]Mark `json:"board"`
	Player   Mark     `json:"player"`
	GameMode Mode     `json:"gamemode"`
	AILevel  int      `json:"ai_level"`
}

func NewSnapshot(board *Board, player Mark, mode Mode, level int) *Snapshot {
	grid := board.Grid()

	rows := make([][]Mark, Rows)
	for row := range Rows {
		rows[row] = append([]Mark(nil), grid[row][:]...)
	}

	return &Snapshot{
		Board:    rows,
		Player:   player,
		GameMode: mode,
		AILevel:  level,
	}
}

// Validate - checks shape and values; every failure wraps apperror.ErrCorruptSave.
func (that *Snapshot) Validate() error {
	if len(that.Board) != Rows {
		return fmt.Errorf("%w: board has %d rows", apperror.ErrCorruptSave, len(that.Board))
	}

	for row, cells := range that.Board {
		if len(cells) != Cols {
			return fmt.Errorf("%w: row %d has %d cells", apperror.ErrCorruptSave, row, len(cells))
		}

		for col, mark := range cells {
			if !mark.IsValid() {
				return fmt.Errorf("%w: invalid mark %d at %s", apperror.ErrCorruptSave, mark, Move{Row: row, Col: col})
			}
		}
	}

	if !that.Player.IsPlayer() {
		return fmt.Errorf("%w: invalid player %d", apperror.ErrCorruptSave, that.Player)
	}

	if !that.GameMode.IsValid() {
		return fmt.Errorf("%w: invalid game mode %q", apperror.ErrCorruptSave, that.GameMode)
	}

	if that.AILevel < 0 {
		return fmt.Errorf("%w: invalid ai level %d", apperror.ErrCorruptSave, that.AILevel)
	}

	return nil
}

// ToBoard - validates the snapshot and rebuilds its board.
func (that *Snapshot) ToBoard() (Board, error) {
	if err := that.Validate(); err != nil {
		return Board{}, err
	}

	var grid [Rows][Cols]Mark
	for row := range Rows {
		copy(grid[row][:], that.Board[row])
	}

	board, err := NewBoardFromGrid(grid)
	if err != nil {
		return Board{}, fmt.Errorf("%w: %w", apperror.ErrCorruptSave, err)
	}

	return board, nil
}

// GameSettings are the defaults a frontend applies when the client does not say otherwise.
type GameSettings struct {
	Mode     Mode
	AILevel  int
	SaveSlot string
}
