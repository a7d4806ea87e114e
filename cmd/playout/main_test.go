package main

import (
	"math/rand"
	"testing"

	. "github.com/cricklet/chessboard/internal/helpers"
	"github.com/stretchr/testify/assert"
)

func TestPlayoutKeepsBoardConsistent(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	totals := Totals{}
	for i := 0; i < 50; i++ {
		err := playout(r, 120, &totals)
		assert.True(t, IsNil(err), err)
	}
	assert.Equal(t, 50, totals.Games)
	assert.Greater(t, totals.Plies, 0)
	assert.Greater(t, totals.Captures, 0)
}
