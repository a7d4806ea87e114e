package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/cricklet/chessboard/internal/game"
	. "github.com/cricklet/chessboard/internal/helpers"
	"github.com/cricklet/chessboard/internal/store"
)

type Position struct {
	Fen   string
	Moves []string
}

type Saver interface {
	Save(ctx context.Context, record store.Record) error
}

// Session is one game shared by any number of callers. Every method takes
// the session lock, so moves are applied one at a time.
type Session struct {
	Logger Logger

	id    string
	lock  sync.Mutex
	board *game.Board
	saver Saver

	startFen string
	history  []HistoryValue
}

type HistoryValue struct {
	move    game.Move
	outcome game.MoveOutcome
}

type Option func(*Session)

func WithLogger(logger Logger) Option {
	return func(s *Session) {
		s.Logger = logger
	}
}

func WithSaver(saver Saver) Option {
	return func(s *Session) {
		s.saver = saver
	}
}

func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// NewSession starts from the standard position.
func NewSession(opts ...Option) *Session {
	s := &Session{
		Logger: &SilentLogger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.reset()
	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) reset() {
	s.board = game.NewStandardBoard()
	s.startFen = game.StartingFen
	s.history = []HistoryValue{}
}

func (s *Session) Reset() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.reset()
	s.save()
}

func (s *Session) IsNew() bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.startFen == game.StartingFen && len(s.history) == 0
}

func (s *Session) StartFen() string {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.startFen
}

// SetupPosition replaces the game with position. Nothing changes unless
// every move in the position applies.
func (s *Session) SetupPosition(position Position) Error {
	s.lock.Lock()
	defer s.lock.Unlock()

	board, err := game.BoardFromFenString(position.Fen)
	if !IsNil(err) {
		return Errorf("couldn't create game from %v: %w", position.Fen, err)
	}
	startFen := game.FenString(board)

	history, err := playMoves(board, []HistoryValue{}, position.Moves)
	if !IsNil(err) {
		return err
	}

	s.board = board
	s.startFen = startFen
	s.history = history

	s.Logger.Println("setup", s.startFen, "with", len(position.Moves), "moves")
	s.save()

	return NilError
}

// playMoves applies moves to board in order, extending history.
func playMoves(board *game.Board, history []HistoryValue, moves []string) ([]HistoryValue, Error) {
	for _, m := range moves {
		move, err := game.MoveFromString(m)
		if !IsNil(err) {
			return history, err
		}
		h, err := playMove(board, move)
		if !IsNil(err) {
			return history, err
		}
		history = append(history, h)
	}
	return history, NilError
}

func playMove(board *game.Board, move game.Move) (HistoryValue, Error) {
	outcome, err := board.ApplyMove(move.From, move.To)
	if err != nil {
		return HistoryValue{}, Errorf("perform %v: %w", move, err)
	}
	return HistoryValue{move: move, outcome: outcome}, NilError
}

func (s *Session) LastMove() Optional[game.Move] {
	s.lock.Lock()
	defer s.lock.Unlock()

	if len(s.history) > 0 {
		return Some(s.history[len(s.history)-1].move)
	}
	return Empty[game.Move]()
}

func (s *Session) performMove(move game.Move) (game.MoveOutcome, Error) {
	h, err := playMove(s.board, move)
	if !IsNil(err) {
		return h.outcome, err
	}

	s.history = append(s.history, h)
	s.Logger.Println("performed", move, h.outcome)
	return h.outcome, NilError
}

func (s *Session) performMoveFromString(m string) (game.MoveOutcome, Error) {
	move, err := game.MoveFromString(m)
	if !IsNil(err) {
		return game.MoveOutcome{}, err
	}
	return s.performMove(move)
}

func (s *Session) PerformMove(move game.Move) (game.MoveOutcome, Error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	outcome, err := s.performMove(move)
	if IsNil(err) {
		s.save()
	}
	return outcome, err
}

func (s *Session) PerformMoveFromString(m string) (game.MoveOutcome, Error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	outcome, err := s.performMoveFromString(m)
	if IsNil(err) {
		s.save()
	}
	return outcome, err
}

func firstIndexNotMatching[A any, B any](a []A, b []B, matches func(A, B) bool) int {
	for i := 0; i < MinInt(len(a), len(b)); i++ {
		if !matches(a[i], b[i]) {
			return i
		}
	}
	return MinInt(len(a), len(b))
}

// PerformMoves brings the session up to date with a move list that extends
// what has already been played. Moves cannot be taken back, so a list that
// diverges from the history is rejected. A move that fails leaves the
// session as it was.
func (s *Session) PerformMoves(startFen string, moves []string) Error {
	s.lock.Lock()
	defer s.lock.Unlock()

	board, err := game.BoardFromFenString(startFen)
	if !IsNil(err) {
		return err
	}
	if game.FenString(board) != s.startFen {
		return Errorf("positions don't match: %v != %v", startFen, s.startFen)
	}

	startIndex := firstIndexNotMatching(s.history, moves, func(a HistoryValue, b string) bool {
		return a.move.String() == b
	})
	if startIndex < len(s.history) {
		return Errorf("moves diverge from history at %v: %v", startIndex, moves)
	}

	board = s.board.Clone()
	history, err := playMoves(board, append([]HistoryValue{}, s.history...), moves[startIndex:])
	if !IsNil(err) {
		return err
	}

	s.board = board
	s.history = history
	s.Logger.Println("caught up with", len(moves)-startIndex, "moves")
	s.save()
	return NilError
}

// MovesForSelection lists the moves of the piece on the selected square in
// coordinate notation. Pieces of the side not to move have none.
func (s *Session) MovesForSelection(selection string) ([]string, Error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	location, err := FileRankFromString(selection)
	if !IsNil(err) {
		return nil, Errorf("failed to parse selection %w", err)
	}

	piece, _ := s.board.At(location)
	if piece.IsEmpty() || piece.Value().Player != s.board.SideToMove() {
		return []string{}, NilError
	}

	destinations, moveErr := game.LegalDestinations(s.board, location)
	if moveErr != nil {
		return nil, Wrap(moveErr)
	}

	return MapSlice(destinations.FileRanks(), func(to FileRank) string {
		return game.Move{From: location, To: to}.String()
	}), NilError
}

func (s *Session) FenString() string {
	s.lock.Lock()
	defer s.lock.Unlock()

	return game.FenString(s.board)
}

func (s *Session) MoveHistory() []string {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.moveHistory()
}

func (s *Session) moveHistory() []string {
	return MapSlice(s.history, func(h HistoryValue) string {
		return h.move.String()
	})
}

func (s *Session) Captures() []game.Piece {
	s.lock.Lock()
	defer s.lock.Unlock()

	result := []game.Piece{}
	for _, h := range s.history {
		if h.outcome.Captured.HasValue() {
			result = append(result, h.outcome.Captured.Value())
		}
	}
	return result
}

// MoveListString numbers the moves in pairs, "1. e2e4 e7e5 2. ...".
func (s *Session) MoveListString() string {
	s.lock.Lock()
	defer s.lock.Unlock()

	result := ""
	fullMove := 1
	halfMove := 0
	for _, h := range s.history {
		if halfMove == 0 {
			result += fmt.Sprintf("%v. ", fullMove)
		}

		result += fmt.Sprintf("%v ", h.move.String())

		halfMove += 1
		if halfMove == 2 {
			halfMove = 0
			fullMove += 1
		}
	}
	return result
}

func (s *Session) Player() Player {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.board.SideToMove()
}

// Snapshot returns a copy of the board that the caller may read freely.
func (s *Session) Snapshot() *game.Board {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.board.Clone()
}

// save must be called with the lock held. Failures are logged; the move
// itself has already been committed.
func (s *Session) save() {
	if s.saver == nil || s.id == "" {
		return
	}
	err := s.saver.Save(context.Background(), store.Record{
		ID:       s.id,
		StartFen: s.startFen,
		Moves:    s.moveHistory(),
		Fen:      game.FenString(s.board),
	})
	if err != nil {
		s.Logger.Println("save:", err)
	}
}
