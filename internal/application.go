package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/tictactoe-ai/internal/config"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
	"github.com/rocketscienceinc/tictactoe-ai/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-ai/transport/rest"
	"github.com/rocketscienceinc/tictactoe-ai/transport/terminal"
	"github.com/rocketscienceinc/tictactoe-ai/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	saveRepo, closeStorage, err := newSaveRepository(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeStorage()

	gameManager := usecase.NewGameManager(logger, saveRepo, botOptions(conf)...)
	settings := entity.GameSettings{
		Mode:     entity.Mode(conf.Game.Mode),
		AILevel:  conf.Game.AILevel,
		SaveSlot: conf.Save.Slot,
	}

	if conf.Frontend == config.FrontendTerminal {
		return runTerminal(ctx, logger, gameManager, settings)
	}

	return runServers(ctx, logger, conf, gameManager, settings)
}

func newSaveRepository(ctx context.Context, logger *slog.Logger, conf *config.Config) (repository.SaveRepository, func(), error) {
	log := logger.With("component", "app")

	if conf.Save.Storage == config.StorageFile {
		return repository.NewFileSaveRepository(conf.Save.Dir), func() {}, nil
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.Host, conf.Redis.Port)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeStorage := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewSaveRepository(redisStorage.Connection), closeStorage, nil
}

func botOptions(conf *config.Config) []service.BotOption {
	opts := []service.BotOption{service.WithParallelSearch(conf.Game.ParallelSearch)}
	if conf.Game.Seed != 0 {
		opts = append(opts, service.WithSeed(conf.Game.Seed))
	}

	return opts
}

func runTerminal(ctx context.Context, logger *slog.Logger, gameManager *usecase.GameManager, settings entity.GameSettings) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("could not create screen: %w", err)
	}

	if err = terminal.New(logger, gameManager, settings, screen).Run(ctx); err != nil {
		return fmt.Errorf("terminal error: %w", err)
	}

	return nil
}

func runServers(ctx context.Context, logger *slog.Logger, conf *config.Config, gameManager *usecase.GameManager, settings entity.GameSettings) error {
	log := logger.With("component", "app")

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(ctx, conf.HTTPPort, rest.NewRouter(logger, gameManager, settings)); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameManager, settings)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err := <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
