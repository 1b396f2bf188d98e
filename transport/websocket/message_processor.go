package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	GameID  string       `json:"game_id,omitempty"`
	Mode    *entity.Mode `json:"mode,omitempty"`
	AILevel *int         `json:"ai_level,omitempty"`
	Row     *int         `json:"row,omitempty"`
	Col     *int         `json:"col,omitempty"`
	Slot    string       `json:"slot,omitempty"`
}

type ResponsePayload struct {
	Game  *entity.GameState `json:"game,omitempty"`
	Error string            `json:"error,omitempty"`
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload ResponsePayload) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response := Message{
		Action:  action,
		Payload: payloadJSON,
	}

	if err = conn.WriteJSON(response); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(conn *websocket.Conn, action string, game *entity.GameState, errorMsg string) error {
	if err := that.sendMessage(conn, action, ResponsePayload{Game: game, Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
