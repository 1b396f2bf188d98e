package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

type saveRepo interface {
	Save(ctx context.Context, slot string, snapshot *entity.Snapshot) error
	Load(ctx context.Context, slot string) (*entity.Snapshot, error)
}

// session is one live game. Its lock serialises every operation on the controller.
type session struct {
	mu         sync.Mutex
	controller *tictactoe.GameController
}

// GameManager keeps many independent games; each one has its own controller and bot.
type GameManager struct {
	logger   *slog.Logger
	saveRepo saveRepo
	botOpts  []service.BotOption

	mu    sync.RWMutex
	games map[string]*session
}

func NewGameManager(logger *slog.Logger, saveRepo saveRepo, botOpts ...service.BotOption) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		saveRepo: saveRepo,
		botOpts:  botOpts,
		games:    make(map[string]*session),
	}
}

// NewGame - starts a game with player 1 to move. The bot always plays the second mark.
func (that *GameManager) NewGame(mode entity.Mode, level int, listeners ...tictactoe.Listener) (*entity.GameState, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMode, mode)
	}

	if level < service.LevelRandom {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidLevel, level)
	}

	bot := service.NewBot(that.logger, level, entity.Player2, that.botOpts...)
	controller := tictactoe.NewGameController(that.logger, bot, mode)
	for _, listener := range listeners {
		controller.AddListener(listener)
	}

	gameID := pkg.GenerateGameID()

	that.mu.Lock()
	that.games[gameID] = &session{controller: controller}
	that.mu.Unlock()

	that.logger.Info("game created", "game_id", gameID, "mode", string(mode), "ai_level", level)

	return controller.State(gameID), nil
}

func (that *GameManager) GetGame(id string) (*entity.GameState, error) {
	return that.withGame(id, func(_ *tictactoe.GameController) error {
		return nil
	})
}

// MakeTurn - applies the human move and, in ai mode, the bot's reply.
func (that *GameManager) MakeTurn(ctx context.Context, id string, row, col int) (*entity.GameState, error) {
	return that.withGame(id, func(controller *tictactoe.GameController) error {
		if controller.IsEngineTurn() {
			return apperror.ErrNotYourTurn
		}

		if err := controller.MakeMove(row, col); err != nil {
			return fmt.Errorf("failed make turn: %w", err)
		}

		return that.playEngineTurn(ctx, controller)
	})
}

// ChangeMode - toggles ai/pvp. Switching to ai on the bot's turn lets the bot move right away.
func (that *GameManager) ChangeMode(ctx context.Context, id string) (*entity.GameState, error) {
	return that.withGame(id, func(controller *tictactoe.GameController) error {
		controller.ChangeGameMode()

		return that.playEngineTurn(ctx, controller)
	})
}

func (that *GameManager) SetLevel(id string, level int) (*entity.GameState, error) {
	if level < service.LevelRandom {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidLevel, level)
	}

	return that.withGame(id, func(controller *tictactoe.GameController) error {
		controller.SetLevel(level)
		return nil
	})
}

func (that *GameManager) Reset(id string) (*entity.GameState, error) {
	return that.withGame(id, func(controller *tictactoe.GameController) error {
		controller.Reset()
		return nil
	})
}

func (that *GameManager) SaveGame(ctx context.Context, id, slot string) (*entity.GameState, error) {
	return that.withGame(id, func(controller *tictactoe.GameController) error {
		if err := that.saveRepo.Save(ctx, slot, controller.Snapshot()); err != nil {
			return fmt.Errorf("failed to save game: %w", err)
		}

		that.logger.Info("game saved", "game_id", id, "slot", slot)

		return nil
	})
}

// LoadGame - replaces the game with the one saved in slot. On any failure the game stays as it was.
func (that *GameManager) LoadGame(ctx context.Context, id, slot string) (*entity.GameState, error) {
	return that.withGame(id, func(controller *tictactoe.GameController) error {
		snapshot, err := that.saveRepo.Load(ctx, slot)
		if err != nil {
			return fmt.Errorf("failed to load game: %w", err)
		}

		if err = controller.Restore(snapshot); err != nil {
			return fmt.Errorf("failed to load game: %w", err)
		}

		that.logger.Info("game loaded", "game_id", id, "slot", slot)

		return that.playEngineTurn(ctx, controller)
	})
}

func (that *GameManager) DeleteGame(id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[id]; !ok {
		return fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
	}

	delete(that.games, id)
	that.logger.Info("game deleted", "game_id", id)

	return nil
}

// withGame - runs fn under the game's lock and returns the state afterwards, also when fn fails.
func (that *GameManager) withGame(id string, fn func(controller *tictactoe.GameController) error) (*entity.GameState, error) {
	that.mu.RLock()
	game, ok := that.games[id]
	that.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
	}

	game.mu.Lock()
	defer game.mu.Unlock()

	err := fn(game.controller)

	return game.controller.State(id), err
}

func (that *GameManager) playEngineTurn(ctx context.Context, controller *tictactoe.GameController) error {
	log := that.logger.With("method", "playEngineTurn")

	if !controller.IsEngineTurn() {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("bot turn canceled: %w", err)
	}

	move, err := controller.PlayEngineTurn()
	if err != nil {
		return fmt.Errorf("failed bot turn: %w", err)
	}

	log.Debug("bot moved", "move", move.String())

	return nil
}
