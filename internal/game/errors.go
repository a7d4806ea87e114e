package game

import (
	"errors"
	"fmt"

	. "github.com/cricklet/chessboard/internal/helpers"
)

var (
	ErrOutOfBounds    = errors.New("out of bounds")
	ErrEmptySquare    = errors.New("empty square")
	ErrWrongSide      = errors.New("wrong side to move")
	ErrIllegalMove    = errors.New("illegal move")
	ErrSquareOccupied = errors.New("square occupied")
	ErrInvalidFen     = errors.New("invalid fen")
)

// MoveError is returned by ApplyMove. It unwraps to one of the sentinels
// above, and the board is unchanged whenever one is returned.
type MoveError struct {
	Err    error
	From   FileRank
	To     FileRank
	Player Optional[Player]
}

func (e *MoveError) Error() string {
	if e.Player.HasValue() {
		return fmt.Sprintf("%v %v%v: %v", e.Player.Value(), describeLocation(e.From), describeLocation(e.To), e.Err)
	}
	return fmt.Sprintf("%v%v: %v", describeLocation(e.From), describeLocation(e.To), e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

func describeLocation(location FileRank) string {
	if location.IsValid() {
		return location.String()
	}
	return fmt.Sprintf("(%d,%d)", location.Rank, location.File)
}

func outOfBounds(location FileRank) error {
	return fmt.Errorf("%v: %w", describeLocation(location), ErrOutOfBounds)
}
