package entity

import "fmt"

// WinLine names one of the eight lines of the board.
type WinLine int

const (
	LineNone WinLine = iota
	LineColumn0
	LineColumn1
	LineColumn2
	LineRow0
	LineRow1
	LineRow2
	LineFallingDiagonal
	LineRisingDiagonal
)

var winLineNames = map[WinLine]string{
	LineNone:            "none",
	LineColumn0:         "column_0",
	LineColumn1:         "column_1",
	LineColumn2:         "column_2",
	LineRow0:            "row_0",
	LineRow1:            "row_1",
	LineRow2:            "row_2",
	LineFallingDiagonal: "falling_diagonal",
	LineRisingDiagonal:  "rising_diagonal",
}

// winLines is ordered by check priority.
var winLines = [...]struct {
	line  WinLine
	cells [3]Move
}{
	{LineColumn0, [3]Move{{0, 0}, {1, 0}, {2, 0}}},
	{LineColumn1, [3]Move{{0, 1}, {1, 1}, {2, 1}}},
	{LineColumn2, [3]Move{{0, 2}, {1, 2}, {2, 2}}},
	{LineRow0, [3]Move{{0, 0}, {0, 1}, {0, 2}}},
	{LineRow1, [3]Move{{1, 0}, {1, 1}, {1, 2}}},
	{LineRow2, [3]Move{{2, 0}, {2, 1}, {2, 2}}},
	{LineFallingDiagonal, [3]Move{{0, 0}, {1, 1}, {2, 2}}},
	{LineRisingDiagonal, [3]Move{{2, 0}, {1, 1}, {0, 2}}},
}

// Cells - returns the cells the line runs through, or nil for LineNone.
func (l WinLine) Cells() []Move {
	for _, line := range winLines {
		if line.line == l {
			return line.cells[:]
		}
	}
	return nil
}

func (l WinLine) String() string {
	if name, ok := winLineNames[l]; ok {
		return name
	}
	return fmt.Sprintf("line(%d)", int(l))
}

func (l WinLine) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *WinLine) UnmarshalText(text []byte) error {
	for line, name := range winLineNames {
		if name == string(text) {
			*l = line
			return nil
		}
	}
	return fmt.Errorf("unknown win line %q", text)
}
