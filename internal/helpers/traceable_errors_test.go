package helpers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNil(t *testing.T) {
	var err error
	assert.True(t, IsNil(err))

	var traceableErr Error = NilError
	assert.True(t, IsNil(traceableErr))

	var ptr *Error
	assert.True(t, IsNil(ptr))

	assert.False(t, IsNil(Errorf("boom")))
}

func TestJoin(t *testing.T) {
	assert.True(t, IsNil(Join()))
	assert.True(t, IsNil(Join(NilError, NilError)))

	a := Errorf("a")
	assert.Equal(t, a, Join(NilError, a))

	joined := Join(a, Errorf("b"))
	assert.Equal(t, 2, joined.NumErrors())
	assert.Equal(t, "a; b", joined.Error())
}

var errSentinel = errors.New("sentinel")

func TestWrapKeepsSentinel(t *testing.T) {
	err := Wrap(errSentinel)
	assert.False(t, IsNil(err))
	assert.True(t, errors.Is(err, errSentinel))

	wrapped := Errorf("context: %w", errSentinel)
	assert.True(t, errors.Is(wrapped, errSentinel))

	assert.True(t, IsNil(Wrap(nil)))
}
