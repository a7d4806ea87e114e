package game

import (
	"fmt"

	. "github.com/cricklet/chessboard/internal/helpers"
)

// PieceID is stable for the lifetime of a piece on one board.
type PieceID int

type Piece struct {
	ID        PieceID
	Player    Player
	PieceType PieceType
	Position  FileRank
}

func (p Piece) String() string {
	return fmt.Sprintf("%v@%v", PieceLetter(p.Player, p.PieceType), p.Position)
}

func (p Piece) Letter() string {
	return PieceLetter(p.Player, p.PieceType)
}

func (p Piece) Unicode() string {
	return PieceUnicode(p.Player, p.PieceType)
}

// Square is one cell of the grid. Occupant is an index into the board's
// piece table and is kept in sync with Piece.Position.
type Square struct {
	Location FileRank
	Occupant Optional[PieceID]
}

func (s Square) IsEmpty() bool {
	return s.Occupant.IsEmpty()
}
