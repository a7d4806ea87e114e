package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cricklet/chessboard/internal/game"
	. "github.com/cricklet/chessboard/internal/helpers"
	"github.com/cricklet/chessboard/internal/session"
	"github.com/cricklet/chessboard/internal/store"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts ...session.ManagerOption) *httptest.Server {
	server := NewServer(session.NewManager(opts...), &SilentLogger)
	ts := httptest.NewServer(server.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func decode[T any](t *testing.T, response *http.Response) T {
	defer response.Body.Close()
	var result T
	require.NoError(t, json.NewDecoder(response.Body).Decode(&result))
	return result
}

func createGame(t *testing.T, ts *httptest.Server) GameState {
	response, err := http.Post(ts.URL+"/games", "application/json", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, response.StatusCode)
	return decode[GameState](t, response)
}

func postMove(t *testing.T, ts *httptest.Server, id string, move string) *http.Response {
	body, err := json.Marshal(MoveRequest{Move: move})
	require.NoError(t, err)
	response, err := http.Post(ts.URL+"/games/"+id+"/move", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return response
}

func TestCreateAndGetGame(t *testing.T) {
	ts := newTestServer(t)

	created := createGame(t, ts)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, game.StartingFen, created.FenString)
	assert.Equal(t, "white", created.Player)
	assert.Empty(t, created.Moves)

	response, err := http.Get(ts.URL + "/games/" + created.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, created, decode[GameState](t, response))

	response, err = http.Get(ts.URL + "/games/nope")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, response.StatusCode)
	assert.Contains(t, decode[ErrorResponse](t, response).Error, "game not found")
}

func TestListGames(t *testing.T) {
	ts := newTestServer(t)

	response, err := http.Get(ts.URL + "/games")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Empty(t, decode[GamesResponse](t, response).Games)

	a := createGame(t, ts)
	b := createGame(t, ts)

	response, err = http.Get(ts.URL + "/games")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, decode[GamesResponse](t, response).Games)
}

func TestMovesForSquare(t *testing.T) {
	ts := newTestServer(t)
	created := createGame(t, ts)

	response, err := http.Get(ts.URL + "/games/" + created.ID + "/moves/g1")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, SelectionResponse{
		Selection:     "g1",
		PossibleMoves: []string{"g1f3", "g1h3"},
	}, decode[SelectionResponse](t, response))

	response, err = http.Get(ts.URL + "/games/" + created.ID + "/moves/j9")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	response.Body.Close()
}

func TestPostMove(t *testing.T) {
	ts := newTestServer(t)
	created := createGame(t, ts)

	response := postMove(t, ts, created.ID, "e2e4")
	require.Equal(t, http.StatusOK, response.StatusCode)
	state := decode[GameState](t, response)
	assert.Equal(t, "black", state.Player)
	assert.Equal(t, "e2e4", state.LastMove)
	assert.Equal(t, []string{"e2e4"}, state.Moves)

	response = postMove(t, ts, created.ID, "e2e4")
	assert.Equal(t, http.StatusConflict, response.StatusCode)
	assert.Contains(t, decode[ErrorResponse](t, response).Error, "empty square")

	response = postMove(t, ts, created.ID, "d2d4")
	assert.Equal(t, http.StatusConflict, response.StatusCode)
	assert.Contains(t, decode[ErrorResponse](t, response).Error, "wrong side")

	response = postMove(t, ts, created.ID, "xx")
	assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	response.Body.Close()
}

func TestGamesSurviveRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.db")

	db, err := store.Open(path)
	require.NoError(t, err)
	first := newTestServer(t, session.WithStore(db))
	created := createGame(t, first)
	response := postMove(t, first, created.ID, "g1f3")
	require.Equal(t, http.StatusOK, response.StatusCode)
	response.Body.Close()
	first.Close()
	require.NoError(t, db.Close())

	db, err = store.Open(path)
	require.NoError(t, err)
	defer db.Close()
	second := newTestServer(t, session.WithStore(db))

	response, err = http.Get(second.URL + "/games/" + created.ID)
	require.NoError(t, err)
	state := decode[GameState](t, response)
	assert.Equal(t, []string{"g1f3"}, state.Moves)
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/8/5N2/PPPPPPPP/RNBQKB1R b - - 0 1", state.FenString)

	response, err = http.Get(second.URL + "/games")
	require.NoError(t, err)
	assert.Equal(t, []string{created.ID}, decode[GamesResponse](t, response).Games)
}

// readUpdate skips forwarded log lines, which arrive as JSON arrays.
func readUpdate(t *testing.T, c *websocket.Conn) UpdateToWeb {
	for {
		_, message, err := c.ReadMessage()
		require.NoError(t, err)
		if strings.HasPrefix(string(message), "[") {
			continue
		}
		var update UpdateToWeb
		require.NoError(t, json.Unmarshal(message, &update))
		return update
	}
}

func TestWebsocket(t *testing.T) {
	ts := newTestServer(t)
	created := createGame(t, ts)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/games/" + created.ID + "/ws"
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.WriteJSON(map[string]string{"selection": "e2"}))
	update := readUpdate(t, c)
	assert.Equal(t, "e2", update.Selection)
	assert.Equal(t, []string{"e2e3", "e2e4"}, update.PossibleMoves)
	assert.Equal(t, game.StartingFen, update.FenString)
	assert.Empty(t, update.Error)

	require.NoError(t, c.WriteJSON(map[string]string{"move": "e2e4"}))
	update = readUpdate(t, c)
	assert.Equal(t, "e2e4", update.LastMove)
	assert.Equal(t, "black", update.Player)

	require.NoError(t, c.WriteJSON(map[string]string{"move": "e2e4"}))
	update = readUpdate(t, c)
	assert.Contains(t, update.Error, "empty square")
	assert.Equal(t, "e2e4", update.LastMove)

	fen := "4k3/8/8/8/8/8/8/4K2R w - - 0 1"
	require.NoError(t, c.WriteJSON(map[string]string{"newFen": fen}))
	update = readUpdate(t, c)
	assert.Equal(t, fen, update.FenString)
	assert.Empty(t, update.LastMove)

	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte("{}")))
	update = readUpdate(t, c)
	assert.Contains(t, update.Error, "unknown message")
}
