package rest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
	"github.com/rocketscienceinc/tictactoe-ai/internal/usecase"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := usecase.NewGameManager(logger, repository.NewFileSaveRepository(t.TempDir()), service.WithSeed(1))
	settings := entity.GameSettings{Mode: entity.ModeAI, AILevel: 1, SaveSlot: "savegame"}

	server := httptest.NewServer(NewRouter(logger, manager, settings))
	t.Cleanup(server.Close)

	return server
}

func doRequest(t *testing.T, method, url, body string) (int, gameResponse) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded gameResponse
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	}

	return resp.StatusCode, decoded
}

func createGame(t *testing.T, server *httptest.Server, body string) *entity.GameState {
	t.Helper()

	status, resp := doRequest(t, http.MethodPost, server.URL+"/games", body)
	require.Equal(t, http.StatusCreated, status, resp.Error)
	require.NotNil(t, resp.Game)

	return resp.Game
}

func TestPingHandler(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))
}

func TestHandlers_CreateGame(t *testing.T) {
	t.Run("Uses the configured defaults", func(t *testing.T) {
		server := newTestServer(t)

		game := createGame(t, server, "")

		assert.Equal(t, entity.ModeAI, game.Mode)
		assert.Equal(t, 1, game.AILevel)
		assert.Equal(t, entity.Player1, game.Player)
		assert.True(t, game.Running)
	})

	t.Run("Accepts mode and level from the body", func(t *testing.T) {
		server := newTestServer(t)

		game := createGame(t, server, `{"mode":"pvp","ai_level":0}`)

		assert.Equal(t, entity.ModePVP, game.Mode)
		assert.Equal(t, 0, game.AILevel)
	})

	t.Run("Rejects an unknown mode", func(t *testing.T) {
		server := newTestServer(t)

		status, resp := doRequest(t, http.MethodPost, server.URL+"/games", `{"mode":"online"}`)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, resp.Error, "invalid game mode")
	})
}

func TestHandlers_MakeTurn(t *testing.T) {
	t.Run("Human move is answered by the bot", func(t *testing.T) {
		// Given: an ai game
		server := newTestServer(t)
		game := createGame(t, server, "")

		// When: player 1 plays the center
		status, resp := doRequest(t, http.MethodPost, server.URL+"/games/"+game.ID+"/moves", `{"row":1,"col":1}`)

		// Then: both marks are on the board
		require.Equal(t, http.StatusOK, status, resp.Error)
		marks := 0
		for _, row := range resp.Game.Board {
			for _, mark := range row {
				if mark != entity.Empty {
					marks++
				}
			}
		}
		assert.Equal(t, 2, marks)
		assert.Equal(t, entity.Player1, resp.Game.Board[1][1])
	})

	t.Run("Occupied cell is a bad request with the current state", func(t *testing.T) {
		server := newTestServer(t)
		game := createGame(t, server, `{"mode":"pvp"}`)
		url := server.URL + "/games/" + game.ID + "/moves"

		status, _ := doRequest(t, http.MethodPost, url, `{"row":0,"col":0}`)
		require.Equal(t, http.StatusOK, status)

		status, resp := doRequest(t, http.MethodPost, url, `{"row":0,"col":0}`)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, resp.Error, "cell is already occupied")
		require.NotNil(t, resp.Game)
		assert.Equal(t, entity.Player2, resp.Game.Player)
	})

	t.Run("Missing coordinates are rejected", func(t *testing.T) {
		server := newTestServer(t)
		game := createGame(t, server, "")

		status, resp := doRequest(t, http.MethodPost, server.URL+"/games/"+game.ID+"/moves", `{"row":1}`)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.NotEmpty(t, resp.Error)
	})

	t.Run("Finished game is a conflict", func(t *testing.T) {
		server := newTestServer(t)
		game := createGame(t, server, `{"mode":"pvp"}`)
		url := server.URL + "/games/" + game.ID + "/moves"

		for _, move := range []string{
			`{"row":0,"col":0}`, `{"row":1,"col":0}`,
			`{"row":0,"col":1}`, `{"row":1,"col":1}`,
			`{"row":0,"col":2}`,
		} {
			status, resp := doRequest(t, http.MethodPost, url, move)
			require.Equal(t, http.StatusOK, status, resp.Error)
		}

		status, resp := doRequest(t, http.MethodPost, url, `{"row":2,"col":2}`)

		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, entity.Player1, resp.Game.Winner)
		assert.Equal(t, entity.LineRow0, resp.Game.WinLine)
	})
}

func TestHandlers_GameLifecycle(t *testing.T) {
	// Given: a pvp game with one move
	server := newTestServer(t)
	game := createGame(t, server, `{"mode":"pvp","ai_level":1}`)
	base := server.URL + "/games/" + game.ID

	status, _ := doRequest(t, http.MethodPost, base+"/moves", `{"row":2,"col":0}`)
	require.Equal(t, http.StatusOK, status)

	// When: the game is saved, reset and loaded back
	status, resp := doRequest(t, http.MethodPost, base+"/save", "")
	require.Equal(t, http.StatusOK, status, resp.Error)

	status, resp = doRequest(t, http.MethodPost, base+"/reset", "")
	require.Equal(t, http.StatusOK, status, resp.Error)
	assert.Equal(t, entity.Empty, resp.Game.Board[2][0])

	status, resp = doRequest(t, http.MethodPost, base+"/load", `{"slot":"savegame"}`)

	// Then: the saved position is back
	require.Equal(t, http.StatusOK, status, resp.Error)
	assert.Equal(t, entity.Player1, resp.Game.Board[2][0])
	assert.Equal(t, entity.Player2, resp.Game.Player)

	// And: level and mode can be changed
	status, resp = doRequest(t, http.MethodPost, base+"/level", `{"ai_level":0}`)
	require.Equal(t, http.StatusOK, status, resp.Error)
	assert.Equal(t, 0, resp.Game.AILevel)

	status, resp = doRequest(t, http.MethodPost, base+"/mode", "")
	require.Equal(t, http.StatusOK, status, resp.Error)
	assert.Equal(t, entity.ModeAI, resp.Game.Mode)

	// And: an unknown slot is not found
	status, resp = doRequest(t, http.MethodPost, base+"/load", `{"slot":"other"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.NotEmpty(t, resp.Error)

	// And: a deleted game is gone
	status, _ = doRequest(t, http.MethodDelete, base, "")
	require.Equal(t, http.StatusNoContent, status)

	status, resp = doRequest(t, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, resp.Error, "game not found")
}
