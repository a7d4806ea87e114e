package console

import (
	"fmt"
	"strings"

	. "github.com/cricklet/chessboard/internal/bitboards"
	"github.com/cricklet/chessboard/internal/game"
	. "github.com/cricklet/chessboard/internal/helpers"
	"github.com/cricklet/chessboard/internal/session"
)

// Console answers one line of text commands at a time against a session.
type Console struct {
	Session *session.Session
}

func NewConsole(s *session.Session) *Console {
	return &Console{Session: s}
}

func parseFen(input string) (string, Error) {
	s := strings.TrimPrefix(input, "position ")

	if strings.HasPrefix(s, "fen ") {
		s = strings.TrimPrefix(s, "fen ")
		return strings.TrimSpace(strings.Split(s, " moves")[0]), NilError
	} else if strings.HasPrefix(s, "startpos") {
		return game.StartingFen, NilError
	}

	return "", Errorf("couldn't parse '%v'", s)
}

func parseMoves(input string) []string {
	result := []string{}
	if strings.Contains(input, " moves ") {
		fields := strings.Fields(strings.SplitN(input, " moves ", 2)[1])
		result = append(result, fields...)
	}
	return result
}

func parsePosition(input string) (session.Position, Error) {
	fen, err := parseFen(input)
	if !IsNil(err) {
		return session.Position{}, err
	}
	return session.Position{Fen: fen, Moves: parseMoves(input)}, NilError
}

func (c *Console) HandleInput(input string) ([]string, Error) {
	input = strings.TrimSpace(input)
	result := []string{}

	if input == "" {
		return result, NilError
	} else if input == "isready" {
		result = append(result, "readyok")
	} else if input == "newgame" {
		c.Session.Reset()
	} else if strings.HasPrefix(input, "position ") {
		position, err := parsePosition(input)
		if !IsNil(err) {
			return result, err
		}
		if c.Session.IsNew() {
			err = c.Session.SetupPosition(position)
		} else {
			err = c.Session.PerformMoves(position.Fen, position.Moves)
		}
		if !IsNil(err) {
			return result, err
		}
	} else if strings.HasPrefix(input, "select ") {
		return c.handleSelect(strings.TrimSpace(strings.TrimPrefix(input, "select ")))
	} else if strings.HasPrefix(input, "move ") {
		outcome, err := c.Session.PerformMoveFromString(strings.TrimSpace(strings.TrimPrefix(input, "move ")))
		if !IsNil(err) {
			return result, err
		}
		result = append(result, outcome.String())
	} else if input == "fen" {
		result = append(result, c.Session.FenString())
	} else if input == "board" {
		result = append(result, lines(c.Session.Snapshot().Unicode())...)
	} else if input == "turn" {
		result = append(result, c.Session.Player().String())
	} else if input == "moves" {
		result = append(result, c.Session.MoveListString())
	} else {
		return result, Errorf("unknown command '%v'", input)
	}
	return result, NilError
}

// handleSelect lists the moves of the selected piece and draws the board
// with their destinations highlighted.
func (c *Console) handleSelect(selection string) ([]string, Error) {
	moves, err := c.Session.MovesForSelection(selection)
	if !IsNil(err) {
		return []string{}, err
	}

	highlights := AllZeros
	for _, m := range moves {
		move, err := game.MoveFromString(m)
		if !IsNil(err) {
			return []string{}, err
		}
		highlights = highlights.With(move.To)
	}

	result := []string{fmt.Sprintf("%v: %v", selection, strings.Join(moves, " "))}
	result = append(result, lines(c.Session.Snapshot().UnicodeWithHighlights(highlights))...)
	return result, NilError
}

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
