package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

const maxBodyBytes = 1 << 12

var errInvalidPayload = errors.New("invalid payload")

type uGame interface {
	NewGame(mode entity.Mode, level int, listeners ...tictactoe.Listener) (*entity.GameState, error)
	GetGame(id string) (*entity.GameState, error)
	MakeTurn(ctx context.Context, id string, row, col int) (*entity.GameState, error)
	ChangeMode(ctx context.Context, id string) (*entity.GameState, error)
	SetLevel(id string, level int) (*entity.GameState, error)
	Reset(id string) (*entity.GameState, error)
	SaveGame(ctx context.Context, id, slot string) (*entity.GameState, error)
	LoadGame(ctx context.Context, id, slot string) (*entity.GameState, error)
	DeleteGame(id string) error
}

type Handlers interface {
	CreateGame(w http.ResponseWriter, r *http.Request)
	GetGame(w http.ResponseWriter, r *http.Request)
	DeleteGame(w http.ResponseWriter, r *http.Request)
	MakeTurn(w http.ResponseWriter, r *http.Request)
	ChangeMode(w http.ResponseWriter, r *http.Request)
	SetLevel(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)
	SaveGame(w http.ResponseWriter, r *http.Request)
	LoadGame(w http.ResponseWriter, r *http.Request)
}

type gameResponse struct {
	Game  *entity.GameState `json:"game,omitempty"`
	Error string            `json:"error,omitempty"`
}

type createGameRequest struct {
	Mode    *entity.Mode `json:"mode"`
	AILevel *int         `json:"ai_level"`
}

type turnRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type levelRequest struct {
	AILevel *int `json:"ai_level"`
}

type slotRequest struct {
	Slot string `json:"slot"`
}

type handlers struct {
	logger   *slog.Logger
	uGame    uGame
	settings entity.GameSettings
}

func NewHandlers(logger *slog.Logger, uGame uGame, settings entity.GameSettings) Handlers {
	return &handlers{
		logger:   logger.With("component", "rest"),
		uGame:    uGame,
		settings: settings,
	}
}

func (that *handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, gameResponse{Error: err.Error()})
		return
	}

	mode, level := that.settings.Mode, that.settings.AILevel
	if req.Mode != nil {
		mode = *req.Mode
	}
	if req.AILevel != nil {
		level = *req.AILevel
	}

	game, err := that.uGame.NewGame(mode, level)
	if err != nil {
		that.writeResult(w, "CreateGame", nil, err)
		return
	}

	writeJSON(w, http.StatusCreated, gameResponse{Game: game})
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.GetGame(chi.URLParam(r, "id"))
	that.writeResult(w, "GetGame", game, err)
}

func (that *handlers) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.uGame.DeleteGame(chi.URLParam(r, "id")); err != nil {
		that.writeResult(w, "DeleteGame", nil, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) MakeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := decodeBody(r, &req); err != nil || req.Row == nil || req.Col == nil {
		writeJSON(w, http.StatusBadRequest, gameResponse{Error: "row and col are required"})
		return
	}

	game, err := that.uGame.MakeTurn(r.Context(), chi.URLParam(r, "id"), *req.Row, *req.Col)
	that.writeResult(w, "MakeTurn", game, err)
}

func (that *handlers) ChangeMode(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.ChangeMode(r.Context(), chi.URLParam(r, "id"))
	that.writeResult(w, "ChangeMode", game, err)
}

func (that *handlers) SetLevel(w http.ResponseWriter, r *http.Request) {
	var req levelRequest
	if err := decodeBody(r, &req); err != nil || req.AILevel == nil {
		writeJSON(w, http.StatusBadRequest, gameResponse{Error: "ai_level is required"})
		return
	}

	game, err := that.uGame.SetLevel(chi.URLParam(r, "id"), *req.AILevel)
	that.writeResult(w, "SetLevel", game, err)
}

func (that *handlers) Reset(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.Reset(chi.URLParam(r, "id"))
	that.writeResult(w, "Reset", game, err)
}

func (that *handlers) SaveGame(w http.ResponseWriter, r *http.Request) {
	slot, ok := that.slotFrom(w, r)
	if !ok {
		return
	}

	game, err := that.uGame.SaveGame(r.Context(), chi.URLParam(r, "id"), slot)
	that.writeResult(w, "SaveGame", game, err)
}

func (that *handlers) LoadGame(w http.ResponseWriter, r *http.Request) {
	slot, ok := that.slotFrom(w, r)
	if !ok {
		return
	}

	game, err := that.uGame.LoadGame(r.Context(), chi.URLParam(r, "id"), slot)
	that.writeResult(w, "LoadGame", game, err)
}

func (that *handlers) slotFrom(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req slotRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, gameResponse{Error: err.Error()})
		return "", false
	}

	if req.Slot == "" {
		return that.settings.SaveSlot, true
	}

	return req.Slot, true
}

// writeResult - answers with the game state and, if the call failed, the error next to it.
func (that *handlers) writeResult(w http.ResponseWriter, method string, game *entity.GameState, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, gameResponse{Game: game})
		return
	}

	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
	}

	writeJSON(w, status, gameResponse{Game: game, Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound), errors.Is(err, apperror.ErrSaveNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrInvalidMove),
		errors.Is(err, apperror.ErrInvalidMode),
		errors.Is(err, apperror.ErrInvalidLevel):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrGameFinished), errors.Is(err, apperror.ErrNotYourTurn):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrCorruptSave):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody - an empty body leaves dst untouched.
func decodeBody(r *http.Request, dst any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	return errInvalidPayload
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
