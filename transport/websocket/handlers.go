package websocket

import (
	"context"
	"errors"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

var (
	errGameIDRequired = errors.New("game_id is required")
	errCellRequired   = errors.New("row and col are required")
	errLevelRequired  = errors.New("ai_level is required")
)

func (that *Server) handleNewGame(_ context.Context, payload *RequestPayload) (*entity.GameState, error) {
	mode, level := that.settings.Mode, that.settings.AILevel
	if payload.Mode != nil {
		mode = *payload.Mode
	}
	if payload.AILevel != nil {
		level = *payload.AILevel
	}

	return that.uGame.NewGame(mode, level)
}

func (that *Server) handleGameTurn(ctx context.Context, payload *RequestPayload) (*entity.GameState, error) {
	if payload.GameID == "" {
		return nil, errGameIDRequired
	}

	if payload.Row == nil || payload.Col == nil {
		return nil, errCellRequired
	}

	return that.uGame.MakeTurn(ctx, payload.GameID, *payload.Row, *payload.Col)
}

func (that *Server) handleChangeMode(ctx context.Context, payload *RequestPayload) (*entity.GameState, error) {
	if payload.GameID == "" {
		return nil, errGameIDRequired
	}

	return that.uGame.ChangeMode(ctx, payload.GameID)
}

func (that *Server) handleSetLevel(_ context.Context, payload *RequestPayload) (*entity.GameState, error) {
	if payload.GameID == "" {
		return nil, errGameIDRequired
	}

	if payload.AILevel == nil {
		return nil, errLevelRequired
	}

	return that.uGame.SetLevel(payload.GameID, *payload.AILevel)
}

func (that *Server) handleReset(_ context.Context, payload *RequestPayload) (*entity.GameState, error) {
	if payload.GameID == "" {
		return nil, errGameIDRequired
	}

	return that.uGame.Reset(payload.GameID)
}

func (that *Server) handleSave(ctx context.Context, payload *RequestPayload) (*entity.GameState, error) {
	if payload.GameID == "" {
		return nil, errGameIDRequired
	}

	return that.uGame.SaveGame(ctx, payload.GameID, that.slotOf(payload))
}

func (that *Server) handleLoad(ctx context.Context, payload *RequestPayload) (*entity.GameState, error) {
	if payload.GameID == "" {
		return nil, errGameIDRequired
	}

	return that.uGame.LoadGame(ctx, payload.GameID, that.slotOf(payload))
}

func (that *Server) slotOf(payload *RequestPayload) string {
	if payload.Slot == "" {
		return that.settings.SaveSlot
	}

	return payload.Slot
}
