package game

import (
	"fmt"
	"strconv"
	"strings"

	. "github.com/cricklet/chessboard/internal/helpers"
)

const StartingFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"

func FenStringForPlayer(p Player) string {
	if p == White {
		return "w"
	} else {
		return "b"
	}
}

func FenStringForBoard(b *Board) string {
	s := ""
	for rank := 7; rank >= 0; rank-- {
		numSpaces := 0
		for file := 0; file < 8; file++ {
			piece, ok := b.pieceAt(RankFile(rank, file))
			if !ok {
				numSpaces++
				continue
			}
			if numSpaces > 0 {
				s += fmt.Sprint(numSpaces)
				numSpaces = 0
			}
			s += piece.Letter()
		}
		if numSpaces > 0 {
			s += fmt.Sprint(numSpaces)
		}
		if rank != 0 {
			s += "/"
		}
	}
	return s
}

// FenString writes the placement and side to move. Castling, en passant and
// clocks are outside the engine and always written as "- - 0 1".
func FenString(b *Board) string {
	return fmt.Sprintf("%v %v - - 0 1", FenStringForBoard(b), FenStringForPlayer(b.SideToMove()))
}

// BoardFromFenString accepts 2, 4 or 6 fields. Only placement and side to
// move are read. The short "<placement> <side>" form is accepted on purpose
// so tests and the console can write positions without the unused fields.
func BoardFromFenString(s string) (*Board, Error) {
	ss := strings.Fields(s)
	if len(ss) != 6 && len(ss) != 4 && len(ss) != 2 {
		return nil, Errorf("wrong num %v of fields in '%v': %w", len(ss), s, ErrInvalidFen)
	}

	boardStr, playerString := ss[0], ss[1]

	b := NewEmptyBoard()

	var rankIndex Rank = 7
	var fileIndex File = 0
	for _, c := range boardStr {
		if c == '/' {
			if fileIndex != 8 {
				return nil, Errorf("not enough squares in rank %v of '%v': %w", rankIndex, s, ErrInvalidFen)
			}
			if rankIndex == 0 {
				return nil, Errorf("too many ranks in '%v': %w", s, ErrInvalidFen)
			}
			rankIndex--
			fileIndex = 0
		} else if indicesToSkip, err := strconv.ParseInt(string(c), 10, 0); err == nil {
			if indicesToSkip < 1 || indicesToSkip > 8 {
				return nil, Errorf("invalid skip '%c' in '%v': %w", c, s, ErrInvalidFen)
			}
			fileIndex += File(indicesToSkip)
			if fileIndex > 8 {
				return nil, Errorf("too many squares in rank %v of '%v': %w", rankIndex, s, ErrInvalidFen)
			}
		} else if player, pieceType, err := PieceFromRune(c); IsNil(err) {
			if fileIndex >= 8 {
				return nil, Errorf("too many squares in rank %v of '%v': %w", rankIndex, s, ErrInvalidFen)
			}
			b.place(player, pieceType, FileRank{File: fileIndex, Rank: rankIndex})
			fileIndex++
		} else {
			return nil, Errorf("unknown character '%c' in '%v': %w", c, s, ErrInvalidFen)
		}
	}

	if rankIndex != 0 || fileIndex != 8 {
		return nil, Errorf("incomplete board in '%v': %w", s, ErrInvalidFen)
	}

	player, err := PlayerFromString(playerString)
	if !IsNil(err) {
		return nil, Errorf("invalid player '%v' in '%v': %w", playerString, s, ErrInvalidFen)
	}
	b.SetSideToMove(player)

	return b, NilError
}
