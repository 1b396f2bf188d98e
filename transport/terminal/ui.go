package terminal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

// statusRows is the space under the board kept for the status line.
const statusRows = 1

type uGame interface {
	NewGame(mode entity.Mode, level int, listeners ...tictactoe.Listener) (*entity.GameState, error)
	MakeTurn(ctx context.Context, id string, row, col int) (*entity.GameState, error)
	ChangeMode(ctx context.Context, id string) (*entity.GameState, error)
	SetLevel(id string, level int) (*entity.GameState, error)
	Reset(id string) (*entity.GameState, error)
	SaveGame(ctx context.Context, id, slot string) (*entity.GameState, error)
	LoadGame(ctx context.Context, id, slot string) (*entity.GameState, error)
}

// UI is a mouse driven terminal frontend for a single game.
type UI struct {
	logger   *slog.Logger
	uGame    uGame
	settings entity.GameSettings
	screen   tcell.Screen

	state    *entity.GameState
	lastMove *entity.Move
	notice   string
	pressed  bool
}

func New(logger *slog.Logger, uGame uGame, settings entity.GameSettings, screen tcell.Screen) *UI {
	return &UI{
		logger:   logger.With("component", "terminal"),
		uGame:    uGame,
		settings: settings,
		screen:   screen,
	}
}

// Run - owns the screen until the player quits or ctx is canceled.
func (that *UI) Run(ctx context.Context) error {
	if err := that.screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer that.screen.Fini()

	that.screen.EnableMouse()
	that.screen.HideCursor()

	if err := that.start(); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			_ = that.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	for {
		that.draw()

		ev := that.screen.PollEvent()
		if ev == nil {
			return nil
		}

		if that.handleEvent(ctx, ev) {
			return nil
		}
	}
}

func (that *UI) start() error {
	state, err := that.uGame.NewGame(that.settings.Mode, that.settings.AILevel, that)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	that.state = state

	return nil
}

// MoveMade - remembers the last mark for highlighting.
func (that *UI) MoveMade(move entity.Move, _ entity.Mark) {
	that.lastMove = &move
}

// GameOver - rings the terminal bell and reports the result.
func (that *UI) GameOver(result entity.Result, botLost bool) {
	_ = that.screen.Beep()

	switch {
	case result.Draw:
		that.notice = "Draw!"
	case that.state != nil && that.state.Mode == entity.ModeAI && botLost:
		that.notice = "You win!"
	case that.state != nil && that.state.Mode == entity.ModeAI:
		that.notice = "You lose!"
	default:
		that.notice = fmt.Sprintf("%s wins!", result.Winner())
	}
}

// handleEvent - returns true when the UI should quit.
func (that *UI) handleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventInterrupt:
		return true
	case *tcell.EventResize:
		that.screen.Sync()
	case *tcell.EventMouse:
		that.handleMouse(ctx, ev)
	case *tcell.EventKey:
		return that.handleKey(ctx, ev)
	}

	return false
}

func (that *UI) handleMouse(ctx context.Context, ev *tcell.EventMouse) {
	down := ev.Buttons()&tcell.Button1 != 0
	click := down && !that.pressed
	that.pressed = down

	if !click {
		return
	}

	w, h := that.screen.Size()
	x, y := ev.Position()

	row, col, ok := cellAt(x, y, w, h)
	if !ok {
		return
	}

	that.notice = ""
	that.apply(that.uGame.MakeTurn(ctx, that.state.ID, row, col))
}

func (that *UI) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return true
	}

	if ev.Key() != tcell.KeyRune {
		return false
	}

	that.notice = ""

	switch ev.Rune() {
	case 'q':
		return true
	case 'r':
		that.lastMove = nil
		that.apply(that.uGame.Reset(that.state.ID))
	case 'g':
		that.apply(that.uGame.ChangeMode(ctx, that.state.ID))
	case 's':
		if that.apply(that.uGame.SaveGame(ctx, that.state.ID, that.settings.SaveSlot)) {
			that.notice = "Game saved"
		}
	case 'l':
		if that.apply(that.uGame.LoadGame(ctx, that.state.ID, that.settings.SaveSlot)) {
			that.lastMove = nil
			that.notice = "Game loaded"
		}
	case '0', '1':
		that.apply(that.uGame.SetLevel(that.state.ID, int(ev.Rune()-'0')))
	}

	return false
}

// apply - takes the new state; a failed action keeps the game and shows the error.
func (that *UI) apply(state *entity.GameState, err error) bool {
	if state != nil {
		that.state = state
	}

	if err != nil {
		that.logger.Info("action failed", "error", err)
		that.notice = err.Error()

		return false
	}

	return true
}

// cellAt - maps a screen position to a board cell. The last rows are the status line.
func cellAt(x, y, width, height int) (row, col int, ok bool) {
	cellW, cellH := width/entity.Cols, (height-statusRows)/entity.Rows
	if cellW <= 0 || cellH <= 0 || x < 0 || y < 0 {
		return 0, 0, false
	}

	row, col = y/cellH, x/cellW
	if row >= entity.Rows || col >= entity.Cols {
		return 0, 0, false
	}

	return row, col, true
}
