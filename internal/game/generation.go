package game

import (
	. "github.com/cricklet/chessboard/internal/bitboards"
	. "github.com/cricklet/chessboard/internal/helpers"
)

type Move struct {
	From FileRank
	To   FileRank
}

func MoveFromString(s string) (Move, Error) {
	if len(s) != 4 {
		return Move{}, Errorf("invalid move %q", s)
	}
	from, err := FileRankFromString(s[0:2])
	if !IsNil(err) {
		return Move{}, Errorf("invalid move %q: %w", s, err)
	}
	to, err := FileRankFromString(s[2:4])
	if !IsNil(err) {
		return Move{}, Errorf("invalid move %q: %w", s, err)
	}
	return Move{From: from, To: to}, NilError
}

func (m Move) String() string {
	return m.From.String() + m.To.String()
}

// LegalDestinations returns every square the piece on origin can end on.
// It ignores whose turn it is and never reports check. An empty origin
// yields an empty set.
func LegalDestinations(b *Board, origin FileRank) (Bitboard, error) {
	if !origin.IsValid() {
		return AllZeros, outOfBounds(origin)
	}

	piece, ok := b.pieceAt(origin)
	if !ok {
		return AllZeros, nil
	}

	rule := RuleFor(piece.PieceType)

	result := AllZeros
	for _, ray := range rule.rays {
		result |= walkRay(b, piece, rule.oriented(ray, piece.Player), stepsFor(ray, piece))
	}
	return result, nil
}

// walkRay steps from the piece's square until it leaves the board, hits a
// piece or runs out of steps. A blocking enemy is included unless the ray
// never captures; a blocking friend never is.
func walkRay(b *Board, piece Piece, ray Ray, maxSteps int) Bitboard {
	result := AllZeros

	location := piece.Position
	for step := 0; step < maxSteps; step++ {
		location = location.Offset(ray.RankStep, ray.FileStep)
		if !location.IsValid() {
			break
		}

		occupant, occupied := b.pieceAt(location)
		if !occupied {
			if ray.Capture != CaptureOnly {
				result = result.With(location)
			}
			continue
		}

		if occupant.Player != piece.Player && ray.Capture != CaptureNever {
			result = result.With(location)
		}
		break
	}

	return result
}

func IsLegalMove(b *Board, from FileRank, to FileRank) (bool, error) {
	if !to.IsValid() {
		return false, outOfBounds(to)
	}
	destinations, err := LegalDestinations(b, from)
	if err != nil {
		return false, err
	}
	return destinations.Has(to), nil
}

// AllLegalMoves lists the moves of the side to move, ordered by origin then
// destination square index.
func AllLegalMoves(b *Board) []Move {
	moves := []Move{}
	b.Occupied(b.SideToMove()).EachIndexOfOneCallback(func(index int) {
		from := FileRankFromIndex(index)
		destinations, err := LegalDestinations(b, from)
		if err != nil {
			return
		}
		destinations.EachIndexOfOneCallback(func(to int) {
			moves = append(moves, Move{From: from, To: FileRankFromIndex(to)})
		})
	})
	return moves
}
