package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

var (
	styleGrid    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleCross   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleNought  = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	styleWinning = tcell.StyleDefault.Background(tcell.ColorYellow)
	styleLast    = tcell.StyleDefault.Background(tcell.ColorDarkSlateGray)
	styleStatus  = tcell.StyleDefault.Reverse(true)
)

func (that *UI) draw() {
	that.screen.Clear()

	w, h := that.screen.Size()
	cellW, cellH := w/entity.Cols, (h-statusRows)/entity.Rows

	if that.state != nil && cellW > 0 && cellH > 0 {
		that.drawBoard(cellW, cellH)
	}

	that.drawStatus(w, h)
	that.screen.Show()
}

func (that *UI) drawBoard(cellW, cellH int) {
	winning := make(map[entity.Move]bool)
	for _, cell := range that.state.WinLine.Cells() {
		winning[cell] = true
	}

	for row := 0; row < entity.Rows; row++ {
		for col := 0; col < entity.Cols; col++ {
			move := entity.Move{Row: row, Col: col}
			left, top := col*cellW, row*cellH

			background := tcell.StyleDefault
			switch {
			case winning[move]:
				background = styleWinning
			case that.lastMove != nil && *that.lastMove == move:
				background = styleLast
			}
			fill(that.screen, left, top, cellW, cellH, background)

			that.drawMark(that.state.Board[row][col], left, top, cellW, cellH, background)
		}
	}

	for i := 1; i < entity.Cols; i++ {
		for y := 0; y < entity.Rows*cellH; y++ {
			that.screen.SetContent(i*cellW, y, tcell.RuneVLine, nil, styleGrid)
		}
	}

	for i := 1; i < entity.Rows; i++ {
		for x := 0; x < entity.Cols*cellW; x++ {
			that.screen.SetContent(x, i*cellH, tcell.RuneHLine, nil, styleGrid)
		}
	}
}

// drawMark - a 3x3 glyph when the cell has room for it, a single letter otherwise.
func (that *UI) drawMark(mark entity.Mark, left, top, cellW, cellH int, background tcell.Style) {
	if mark == entity.Empty {
		return
	}

	style := styleCross
	glyph := [3]string{`\ /`, ` X `, `/ \`}
	if mark == entity.Player2 {
		style = styleNought
		glyph = [3]string{`/-\`, `| |`, `\-/`}
	}

	_, bg, _ := background.Decompose()
	style = style.Background(bg)

	centerX, centerY := left+cellW/2, top+cellH/2

	if cellW < 5 || cellH < 5 {
		that.screen.SetContent(centerX, centerY, []rune(mark.String())[0], nil, style)
		return
	}

	for dy, line := range glyph {
		for dx, r := range line {
			that.screen.SetContent(centerX-1+dx, centerY-1+dy, r, nil, style)
		}
	}
}

func (that *UI) drawStatus(w, h int) {
	y := h - statusRows
	fill(that.screen, 0, y, w, statusRows, styleStatus)

	text := "r reset  g mode  s save  l load  0/1 level  q quit"
	if that.state != nil {
		text = fmt.Sprintf(" %s to move | mode %s | level %d | %s", that.state.Player, that.state.Mode, that.state.AILevel, text)
		if that.notice != "" {
			text = fmt.Sprintf(" %s | mode %s | level %d | %s", that.notice, that.state.Mode, that.state.AILevel, "r reset  q quit")
		}
	}

	drawText(that.screen, 0, y, w, text, styleStatus)
}

func fill(screen tcell.Screen, left, top, width, height int, style tcell.Style) {
	for y := top; y < top+height; y++ {
		for x := left; x < left+width; x++ {
			screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

func drawText(screen tcell.Screen, left, y, width int, text string, style tcell.Style) {
	x := left
	for _, r := range text {
		if x >= left+width {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
