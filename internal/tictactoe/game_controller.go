package tictactoe

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

type decisionEngine interface {
	ChooseMove(board entity.Board) (entity.Move, error)
	Player() entity.Mark
	Level() int
	SetLevel(level int)
}

// Listener is notified about what happened on the board; frontends use it for redraws and sound cues.
type Listener interface {
	MoveMade(move entity.Move, mark entity.Mark)
	GameOver(result entity.Result, botLost bool)
}

// GameController owns one live game. Nothing here is shared between controllers.
type GameController struct {
	logger    *slog.Logger
	bot       decisionEngine
	listeners []Listener

	board   entity.Board
	player  entity.Mark
	mode    entity.Mode
	running bool
}

func NewGameController(logger *slog.Logger, engine decisionEngine, mode entity.Mode) *GameController {
	return &GameController{
		logger:  logger.With("component", "game_controller"),
		bot:     engine,
		board:   entity.NewBoard(),
		player:  entity.Player1,
		mode:    mode,
		running: true,
	}
}

func (that *GameController) AddListener(listener Listener) {
	that.listeners = append(that.listeners, listener)
}

// Board - returns a copy of the live board.
func (that *GameController) Board() entity.Board {
	return that.board
}

func (that *GameController) CurrentPlayer() entity.Mark {
	return that.player
}

func (that *GameController) Mode() entity.Mode {
	return that.mode
}

func (that *GameController) Level() int {
	return that.bot.Level()
}

func (that *GameController) SetLevel(level int) {
	that.bot.SetLevel(level)
}

func (that *GameController) IsRunning() bool {
	return that.running
}

func (that *GameController) Result() entity.Result {
	return entity.ResultOf(&that.board)
}

// MakeMove - marks the cell for the current player and passes the turn.
func (that *GameController) MakeMove(row, col int) error {
	if !that.running {
		return apperror.ErrGameFinished
	}

	if err := that.validateMove(row, col); err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	move := entity.Move{Row: row, Col: col}
	mark := that.player

	that.board.MarkCell(row, col, mark)
	for _, listener := range that.listeners {
		listener.MoveMade(move, mark)
	}

	that.nextTurn()

	if result := that.Result(); result.IsOver() {
		that.running = false
		that.logger.Info("game over", "state", result.State.String(), "line", result.Line.String(), "draw", result.Draw)

		botLost := that.mode == entity.ModeAI && result.Winner() != entity.Empty && result.Winner() != that.bot.Player()
		for _, listener := range that.listeners {
			listener.GameOver(result, botLost)
		}
	}

	return nil
}

// IsEngineTurn - the bot plays in ai mode whenever the current mover is its mark.
func (that *GameController) IsEngineTurn() bool {
	return that.mode == entity.ModeAI && that.running && that.player == that.bot.Player()
}

// PlayEngineTurn - asks the bot for a move on a copy of the board and applies it.
func (that *GameController) PlayEngineTurn() (entity.Move, error) {
	if !that.IsEngineTurn() {
		return entity.Move{}, apperror.ErrNotYourTurn
	}

	move, err := that.bot.ChooseMove(that.board)
	if err != nil {
		return entity.Move{}, fmt.Errorf("bot failed to choose move: %w", err)
	}

	if err = that.MakeMove(move.Row, move.Col); err != nil {
		return entity.Move{}, fmt.Errorf("bot failed to make move: %w", err)
	}

	return move, nil
}

func (that *GameController) ChangeGameMode() {
	that.mode = that.mode.Toggle()
}

// Reset - starts a new game with the same mode and level.
func (that *GameController) Reset() {
	that.board = entity.NewBoard()
	that.player = entity.Player1
	that.running = true
}

func (that *GameController) Snapshot() *entity.Snapshot {
	return entity.NewSnapshot(&that.board, that.player, that.mode, that.bot.Level())
}

// Restore - replaces the game with a saved one. The game is left untouched if the snapshot is invalid.
func (that *GameController) Restore(snapshot *entity.Snapshot) error {
	board, err := snapshot.ToBoard()
	if err != nil {
		return fmt.Errorf("failed to restore game: %w", err)
	}

	that.board = board
	that.player = snapshot.Player
	that.mode = snapshot.GameMode
	that.bot.SetLevel(snapshot.AILevel)
	that.running = !that.Result().IsOver()

	return nil
}

// State - builds the read model of the game.
func (that *GameController) State(id string) *entity.GameState {
	result := that.Result()

	return &entity.GameState{
		ID:      id,
		Board:   that.board.Grid(),
		Player:  that.player,
		Mode:    that.mode,
		AILevel: that.bot.Level(),
		Running: that.running,
		Winner:  result.Winner(),
		WinLine: result.Line,
		Draw:    result.Draw,
	}
}

// validateMove - checks if the move is valid.
func (that *GameController) validateMove(row, col int) error {
	move := entity.Move{Row: row, Col: col}

	if !move.InBounds() {
		return fmt.Errorf("%w: %w %s", apperror.ErrInvalidMove, apperror.ErrCellOutOfBounds, move)
	}

	if !that.board.IsEmptyCell(row, col) {
		return fmt.Errorf("%w: %w %s", apperror.ErrInvalidMove, apperror.ErrCellOccupied, move)
	}

	return nil
}

func (that *GameController) nextTurn() {
	that.player = that.player.Next()
}
