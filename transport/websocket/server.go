package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

const (
	shutdownTimeout = 5 * time.Second
	maxMessageSize  = 1 << 12
)

type uGame interface {
	NewGame(mode entity.Mode, level int, listeners ...tictactoe.Listener) (*entity.GameState, error)
	MakeTurn(ctx context.Context, id string, row, col int) (*entity.GameState, error)
	ChangeMode(ctx context.Context, id string) (*entity.GameState, error)
	SetLevel(id string, level int) (*entity.GameState, error)
	Reset(id string) (*entity.GameState, error)
	SaveGame(ctx context.Context, id, slot string) (*entity.GameState, error)
	LoadGame(ctx context.Context, id, slot string) (*entity.GameState, error)
}

type handlerFunc func(ctx context.Context, payload *RequestPayload) (*entity.GameState, error)

type Server struct {
	logger   *slog.Logger
	uGame    uGame
	settings entity.GameSettings
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, uGame uGame, settings entity.GameSettings) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		uGame:    uGame,
		settings: settings,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(_ *http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers["game:new"] = server.handleNewGame
	server.handlers["game:turn"] = server.handleGameTurn
	server.handlers["game:mode"] = server.handleChangeMode
	server.handlers["game:level"] = server.handleSetLevel
	server.handlers["game:reset"] = server.handleReset
	server.handlers["game:save"] = server.handleSave
	server.handlers["game:load"] = server.handleLoad

	return server
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.upgradeToWebSocket)

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx) //nolint: contextcheck // parent is already canceled
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket", "session", pkg.GenerateNewSessionID())

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)

	log.Info("WebSocket connection established")

	if err = that.handleMessages(req.Context(), conn); err != nil {
		log.Error("error handling messages", "error", err)
	}

	log.Info("WebSocket connection closed")
}

// handleMessages - processes messages from the client until it goes away.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages")

	for {
		var message Message
		if err := conn.ReadJSON(&message); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}

			var syntaxErr *json.SyntaxError
			if errors.As(err, &syntaxErr) {
				log.Warn("failed to unmarshal message", "error", err)
				if err = that.sendErrorResponse(conn, "", nil, "malformed message"); err != nil {
					return err
				}
				continue
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		if err := that.processMessage(ctx, conn, &message); err != nil {
			return err
		}
	}
}

func (that *Server) processMessage(ctx context.Context, conn *websocket.Conn, message *Message) error {
	log := that.logger.With("method", "processMessage", "action", message.Action)

	handler, ok := that.handlers[message.Action]
	if !ok {
		log.Warn("unknown action")
		return that.sendErrorResponse(conn, message.Action, nil, "unknown action")
	}

	var payload RequestPayload
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			log.Warn("failed to unmarshal payload", "error", err)
			return that.sendErrorResponse(conn, message.Action, nil, "invalid payload")
		}
	}

	game, err := handler(ctx, &payload)
	if err != nil {
		log.Info("action failed", "error", err)
		return that.sendErrorResponse(conn, message.Action, game, err.Error())
	}

	return that.sendMessage(conn, message.Action, ResponsePayload{Game: game})
}
