package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cricklet/chessboard/internal/game"
	. "github.com/cricklet/chessboard/internal/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pipedTerminal(input string) (Terminal, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return Terminal{
		In:  strings.NewReader(input),
		Out: out,
		Err: &bytes.Buffer{},
	}, out
}

func TestRunPiped(t *testing.T) {
	term, out := pipedTerminal("move e2e4\nfen\nboard\nquit\nfen\n")

	err := run([]string{}, term)
	require.True(t, IsNil(err), err)

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 11)
	assert.Equal(t, "P@e4", lines[0])
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b - - 0 1", lines[1])
	assert.Equal(t, "   a  b  c  d  e  f  g  h ", lines[2])
	assert.NotContains(t, out.String(), "\033[")
}

func TestRunStartsFromFen(t *testing.T) {
	term, out := pipedTerminal("fen\n")

	err := run([]string{"-fen", "4k3/8/8/8/8/8/8/4K3 b"}, term)
	require.True(t, IsNil(err), err)
	assert.Equal(t, "4k3/8/8/8/8/8/8/4K3 b - - 0 1\n", out.String())
}

func TestRunReturnsFirstPipedError(t *testing.T) {
	profileDir := t.TempDir()
	term, out := pipedTerminal("move e2e4\nmove e2e4\nfen\n")

	err := run([]string{"-profile", profileDir}, term)
	assert.True(t, errors.Is(err, game.ErrEmptySquare), err.Error())
	assert.Equal(t, "P@e4\n", out.String())

	_, statErr := os.Stat(filepath.Join(profileDir, "cpu.pprof"))
	assert.NoError(t, statErr)
}

func TestRunInteractiveKeepsGoing(t *testing.T) {
	term, out := pipedTerminal("move e2e5\nturn\n")
	term.Interactive = true

	err := run([]string{}, term)
	require.True(t, IsNil(err), err)
	assert.Equal(t, "white> white> white\nwhite> ", out.String())
}

func TestRunRejectsBadFen(t *testing.T) {
	term, _ := pipedTerminal("")

	err := run([]string{"-fen", "nonsense"}, term)
	assert.True(t, errors.Is(err, game.ErrInvalidFen), err.Error())
}
