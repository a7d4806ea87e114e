package game

import (
	"fmt"

	. "github.com/cricklet/chessboard/internal/helpers"
)

type TurnState struct {
	sideToMove Player
}

func (t TurnState) SideToMove() Player {
	return t.sideToMove
}

func (t TurnState) IsTurn(player Player) bool {
	return t.sideToMove == player
}

func (t *TurnState) flip() {
	t.sideToMove = t.sideToMove.Other()
}

func (b *Board) Turn() TurnState {
	return b.turn
}

func (b *Board) SideToMove() Player {
	return b.turn.SideToMove()
}

type MoveOutcome struct {
	Type     MoveType
	Moved    Piece
	Captured Optional[Piece]
}

func (o MoveOutcome) String() string {
	if o.Captured.HasValue() {
		return fmt.Sprintf("%v x %v", o.Moved, o.Captured.Value())
	}
	return fmt.Sprintf("%v", o.Moved)
}

// ApplyMove commits a move for the side to move. Every check runs before
// the first write, so a returned error leaves the board untouched.
func (b *Board) ApplyMove(from FileRank, to FileRank) (MoveOutcome, error) {
	if !from.IsValid() || !to.IsValid() {
		return MoveOutcome{}, &MoveError{Err: ErrOutOfBounds, From: from, To: to}
	}

	moving, ok := b.pieceAt(from)
	if !ok {
		return MoveOutcome{}, &MoveError{Err: ErrEmptySquare, From: from, To: to}
	}

	if !b.turn.IsTurn(moving.Player) {
		return MoveOutcome{}, &MoveError{Err: ErrWrongSide, From: from, To: to, Player: Some(moving.Player)}
	}

	destinations, err := LegalDestinations(b, from)
	if err != nil {
		return MoveOutcome{}, &MoveError{Err: err, From: from, To: to, Player: Some(moving.Player)}
	}
	if !destinations.Has(to) {
		return MoveOutcome{}, &MoveError{Err: ErrIllegalMove, From: from, To: to, Player: Some(moving.Player)}
	}

	outcome := MoveOutcome{Type: QuietMove, Captured: Empty[Piece]()}
	if captured, ok := b.pieceAt(to); ok {
		delete(b.pieces, captured.ID)
		outcome.Type = CaptureMove
		outcome.Captured = Some(captured)
	}

	b.square(from).Occupant = Empty[PieceID]()
	moving.Position = to
	b.pieces[moving.ID] = moving
	b.square(to).Occupant = Some(moving.ID)

	b.turn.flip()

	outcome.Moved = moving
	return outcome, nil
}

func (b *Board) ApplyMoveFromString(s string) (MoveOutcome, error) {
	move, err := MoveFromString(s)
	if !IsNil(err) {
		return MoveOutcome{}, err
	}
	return b.ApplyMove(move.From, move.To)
}
