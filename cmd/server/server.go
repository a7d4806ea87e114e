package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/cricklet/chessboard/internal/game"
	. "github.com/cricklet/chessboard/internal/helpers"
	"github.com/cricklet/chessboard/internal/session"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

type GameState struct {
	ID        string   `json:"id"`
	FenString string   `json:"fenString"`
	LastMove  string   `json:"lastMove"`
	Player    string   `json:"player"`
	Moves     []string `json:"moves"`
}

type GamesResponse struct {
	Games []string `json:"games"`
}

type SelectionResponse struct {
	Selection     string   `json:"selection"`
	PossibleMoves []string `json:"possibleMoves"`
}

type MoveRequest struct {
	Move string `json:"move"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type UpdateToWeb struct {
	FenString     string   `json:"fenString"`
	LastMove      string   `json:"lastMove"`
	Selection     string   `json:"selection"`
	PossibleMoves []string `json:"possibleMoves"`
	Player        string   `json:"player"`
	Error         string   `json:"error,omitempty"`
}

func (u UpdateToWeb) String() string {
	return fmt.Sprint("UpdateToWeb: ", u.FenString, ", ", u.LastMove, ", ", u.Selection, ", ", u.PossibleMoves)
}

type MessageFromWeb struct {
	NewFen    *string `json:"newFen"`
	Selection *string `json:"selection"`
	Move      *string `json:"move"`
}

func (u MessageFromWeb) String() string {
	if u.NewFen != nil {
		return fmt.Sprint("MessageFromWeb NewFen: ", *u.NewFen)
	}
	if u.Selection != nil {
		return fmt.Sprint("MessageFromWeb Selection: ", *u.Selection)
	}
	if u.Move != nil {
		return fmt.Sprint("MessageFromWeb Move: ", *u.Move)
	}
	return "MessageFromWeb unknown"
}

type Server struct {
	Logger   Logger
	manager  *session.Manager
	upgrader websocket.Upgrader
}

func NewServer(manager *session.Manager, logger Logger) *Server {
	return &Server{
		Logger:  logger,
		manager: manager,
	}
}

func (s *Server) Routes() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/games", s.createGame).Methods(http.MethodPost)
	router.HandleFunc("/games", s.listGames).Methods(http.MethodGet)
	router.HandleFunc("/games/{id}", s.getGame).Methods(http.MethodGet)
	router.HandleFunc("/games/{id}/moves/{square}", s.getMoves).Methods(http.MethodGet)
	router.HandleFunc("/games/{id}/move", s.postMove).Methods(http.MethodPost)
	router.HandleFunc("/games/{id}/ws", s.ws)
	return router
}

func stateFor(g *session.Session) GameState {
	state := GameState{
		ID:        g.ID(),
		FenString: g.FenString(),
		Player:    g.Player().String(),
		Moves:     g.MoveHistory(),
	}
	if lastMove := g.LastMove(); lastMove.HasValue() {
		state.LastMove = lastMove.Value().String()
	}
	return state
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Println("write response:", err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrWrongSide), errors.Is(err, game.ErrIllegalMove), errors.Is(err, game.ErrEmptySquare):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func (s *Server) writeError(w http.ResponseWriter, err Error) {
	s.Logger.Println("request failed:", err)
	s.writeJSON(w, statusFor(err), ErrorResponse{Error: err.Error()})
}

func (s *Server) game(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	g, err := s.manager.Get(mux.Vars(r)["id"])
	if !IsNil(err) {
		s.writeError(w, err)
		return nil, false
	}
	return g, true
}

func (s *Server) createGame(w http.ResponseWriter, r *http.Request) {
	g := s.manager.NewGame()
	s.writeJSON(w, http.StatusCreated, stateFor(g))
}

func (s *Server) listGames(w http.ResponseWriter, r *http.Request) {
	ids, err := s.manager.List(r.Context())
	if !IsNil(err) {
		s.Logger.Println("list games:", err)
		s.writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, GamesResponse{Games: ids})
}

func (s *Server) getGame(w http.ResponseWriter, r *http.Request) {
	if g, ok := s.game(w, r); ok {
		s.writeJSON(w, http.StatusOK, stateFor(g))
	}
}

func (s *Server) getMoves(w http.ResponseWriter, r *http.Request) {
	g, ok := s.game(w, r)
	if !ok {
		return
	}

	selection := mux.Vars(r)["square"]
	moves, err := g.MovesForSelection(selection)
	if !IsNil(err) {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, SelectionResponse{Selection: selection, PossibleMoves: moves})
}

func (s *Server) postMove(w http.ResponseWriter, r *http.Request) {
	g, ok := s.game(w, r)
	if !ok {
		return
	}

	var request MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		s.writeError(w, Errorf("decode move: %w", err))
		return
	}

	if _, err := g.PerformMoveFromString(request.Move); !IsNil(err) {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stateFor(g))
}

// ws serves one client of a game. Every message gets exactly one update
// back; log lines from handling it are forwarded first as JSON arrays.
func (s *Server) ws(w http.ResponseWriter, r *http.Request) {
	g, ok := s.game(w, r)
	if !ok {
		return
	}

	c, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.Logger.Println("upgrade:", err)
		return
	}
	defer c.Close()

	logger := FuncLogger(func(message string) {
		s.Logger.Print("ws: ", message)
		bytes, err := json.Marshal([]string{message})
		if err != nil {
			s.Logger.Println("ws: json marshal:", err)
			return
		}
		if err := c.WriteMessage(websocket.TextMessage, bytes); err != nil {
			s.Logger.Println("ws: write:", err)
		}
	})

	for {
		_, bytes, err := c.ReadMessage()
		if err != nil {
			s.Logger.Println("ws: closed:", err)
			return
		}

		update := handleMessageFromWeb(g, bytes, logger)
		logger.Println("sending", update)

		response, err := json.Marshal(update)
		if err != nil {
			s.Logger.Println("ws: json marshal:", err)
			continue
		}
		if err := c.WriteMessage(websocket.TextMessage, response); err != nil {
			s.Logger.Println("ws: write:", err)
			return
		}
	}
}

func handleMessageFromWeb(g *session.Session, bytes []byte, logger Logger) UpdateToWeb {
	var update UpdateToWeb
	var err Error

	var message MessageFromWeb
	if jsonErr := json.Unmarshal(bytes, &message); jsonErr != nil {
		err = Errorf("json unmarshal: %w", jsonErr)
	} else {
		logger.Println("received", message)

		if message.NewFen != nil {
			err = g.SetupPosition(session.Position{Fen: *message.NewFen, Moves: []string{}})
		} else if message.Selection != nil {
			if *message.Selection != "" {
				update.Selection = *message.Selection
				update.PossibleMoves, err = g.MovesForSelection(*message.Selection)
			}
		} else if message.Move != nil {
			_, err = g.PerformMoveFromString(*message.Move)
		} else {
			err = Errorf("unknown message %s", bytes)
		}
	}

	if !IsNil(err) {
		update.Error = err.Error()
	}

	update.FenString = g.FenString()
	update.Player = g.Player().String()
	if lastMove := g.LastMove(); lastMove.HasValue() {
		update.LastMove = lastMove.Value().String()
	}
	return update
}
