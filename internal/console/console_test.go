package console

import (
	"errors"
	"strings"
	"testing"

	"github.com/acarl005/stripansi"
	"github.com/cricklet/chessboard/internal/game"
	. "github.com/cricklet/chessboard/internal/helpers"
	"github.com/cricklet/chessboard/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handle(t *testing.T, c *Console, input string) []string {
	result, err := c.HandleInput(input)
	require.True(t, IsNil(err), "%v: %v", input, err)
	return result
}

func TestConsole(t *testing.T) {
	c := NewConsole(session.NewSession())

	assert.Equal(t, []string{"readyok"}, handle(t, c, "isready"))
	assert.Equal(t, []string{game.StartingFen}, handle(t, c, "fen"))
	assert.Equal(t, []string{"white"}, handle(t, c, "turn"))

	assert.Equal(t, []string{"P@e4"}, handle(t, c, "move e2e4"))
	assert.Equal(t, []string{"black"}, handle(t, c, "turn"))
	assert.Equal(t, []string{"1. e2e4 "}, handle(t, c, "moves"))

	handle(t, c, "newgame")
	assert.Equal(t, []string{game.StartingFen}, handle(t, c, "fen"))
}

func TestConsolePosition(t *testing.T) {
	c := NewConsole(session.NewSession())

	fen := "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1"
	handle(t, c, "position fen "+fen)
	assert.Equal(t, []string{fen}, handle(t, c, "fen"))

	handle(t, c, "position fen "+fen+" moves e4d5")
	handle(t, c, "position fen "+fen+" moves e4d5 e8d7")
	assert.Equal(t, []string{"8/3k4/8/3P4/8/8/8/4K3 w - - 0 1"}, handle(t, c, "fen"))

	_, err := c.HandleInput("position fen " + fen + " moves e1e2")
	assert.False(t, IsNil(err))

	_, err = c.HandleInput("position somewhere")
	assert.False(t, IsNil(err))
}

func TestConsoleStartpos(t *testing.T) {
	c := NewConsole(session.NewSession())

	handle(t, c, "position startpos moves e2e4 e7e5")
	assert.Equal(t, []string{"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w - - 0 1"}, handle(t, c, "fen"))
}

func TestConsoleSelect(t *testing.T) {
	c := NewConsole(session.NewSession())

	result := handle(t, c, "select b1")
	require.Len(t, result, 10)
	assert.Equal(t, "b1: b1a3 b1c3", result[0])

	third := stripansi.Strip(result[7])
	assert.Equal(t, "3 "+" · "+strings.Repeat("   ", 1)+" · "+strings.Repeat("   ", 5), third)

	result = handle(t, c, "select b8")
	assert.Equal(t, "b8: ", result[0])
}

func TestConsoleBoard(t *testing.T) {
	c := NewConsole(session.NewSession())

	result := handle(t, c, "board")
	require.Len(t, result, 9)
	assert.Equal(t, "8  ♜  ♞  ♝  ♛  ♚  ♝  ♞  ♜ ", stripansi.Strip(result[1]))
}

func TestConsoleErrors(t *testing.T) {
	c := NewConsole(session.NewSession())

	_, err := c.HandleInput("move e2e5")
	assert.True(t, errors.Is(err, game.ErrIllegalMove), err.Error())

	_, err = c.HandleInput("move e7e5")
	assert.True(t, errors.Is(err, game.ErrWrongSide), err.Error())

	_, err = c.HandleInput("select k9")
	assert.False(t, IsNil(err))

	_, err = c.HandleInput("castle")
	assert.False(t, IsNil(err))

	assert.Empty(t, handle(t, c, ""))
}
