package game

import (
	"fmt"
	"sort"
	"strings"

	. "github.com/cricklet/chessboard/internal/bitboards"
	. "github.com/cricklet/chessboard/internal/helpers"
)

// Board owns every piece. The piece table is authoritative; the grid is an
// index over it and is updated on every mutation. The zero Board is an
// empty board with White to move.
type Board struct {
	grid   [8][8]Square // [rank][file]
	pieces map[PieceID]Piece
	nextID PieceID
	turn   TurnState
}

var BackRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func NewEmptyBoard() *Board {
	b := &Board{}
	b.clear()
	return b
}

func NewStandardBoard() *Board {
	b := &Board{}
	b.SetupStandardPosition()
	return b
}

// lazyInit sets up the grid of a zero Board.
func (b *Board) lazyInit() {
	if b.pieces == nil {
		b.clear()
	}
}

func (b *Board) clear() {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			b.grid[rank][file] = Square{Location: RankFile(rank, file), Occupant: Empty[PieceID]()}
		}
	}
	b.pieces = make(map[PieceID]Piece, 32)
	b.nextID = 0
	b.turn = TurnState{White}
}

// SetupStandardPosition resets b to the chess starting position: white on
// ranks 1 and 2, black on ranks 7 and 8, white to move.
func (b *Board) SetupStandardPosition() {
	b.clear()

	homeRanks := [2][2]Rank{
		{0, 1}, // white: back rank, pawn rank
		{7, 6},
	}

	for _, player := range []Player{White, Black} {
		backRank, pawnRank := homeRanks[player][0], homeRanks[player][1]
		for file := File(0); file < 8; file++ {
			b.place(player, BackRank[file], FileRank{File: file, Rank: backRank})
		}
		for file := File(0); file < 8; file++ {
			b.place(player, Pawn, FileRank{File: file, Rank: pawnRank})
		}
	}
}

// Place adds a piece to an empty square. It does not change the side to
// move.
func (b *Board) Place(player Player, pieceType PieceType, location FileRank) (PieceID, error) {
	if !location.IsValid() {
		return 0, outOfBounds(location)
	}
	if !pieceType.IsValid() || player > Black {
		return 0, fmt.Errorf("place %v %v: invalid piece", player, pieceType)
	}
	b.lazyInit()
	if !b.square(location).IsEmpty() {
		return 0, fmt.Errorf("place %v: %w", location, ErrSquareOccupied)
	}
	return b.place(player, pieceType, location), nil
}

func (b *Board) place(player Player, pieceType PieceType, location FileRank) PieceID {
	id := b.nextID
	b.nextID++

	b.pieces[id] = Piece{ID: id, Player: player, PieceType: pieceType, Position: location}
	b.square(location).Occupant = Some(id)
	return id
}

// SetSideToMove is used when loading positions.
func (b *Board) SetSideToMove(player Player) {
	b.turn = TurnState{player}
}

func (b *Board) square(location FileRank) *Square {
	return &b.grid[location.Rank][location.File]
}

// pieceAt expects an in-bounds location.
func (b *Board) pieceAt(location FileRank) (Piece, bool) {
	occupant := b.square(location).Occupant
	if occupant.IsEmpty() {
		return Piece{}, false
	}
	piece, ok := b.pieces[occupant.Value()]
	return piece, ok
}

func (b *Board) At(location FileRank) (Optional[Piece], error) {
	if !location.IsValid() {
		return Empty[Piece](), outOfBounds(location)
	}
	if piece, ok := b.pieceAt(location); ok {
		return Some(piece), nil
	}
	return Empty[Piece](), nil
}

func (b *Board) Square(location FileRank) (Square, error) {
	if !location.IsValid() {
		return Square{}, outOfBounds(location)
	}
	square := *b.square(location)
	square.Location = location
	return square, nil
}

func (b *Board) Piece(id PieceID) Optional[Piece] {
	if piece, ok := b.pieces[id]; ok {
		return Some(piece)
	}
	return Empty[Piece]()
}

// Pieces returns the live pieces ordered by id.
func (b *Board) Pieces() []Piece {
	result := make([]Piece, 0, len(b.pieces))
	for _, piece := range b.pieces {
		result = append(result, piece)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

func (b *Board) PieceCount() int {
	return len(b.pieces)
}

func (b *Board) Occupied(player Player) Bitboard {
	result := AllZeros
	for _, piece := range b.pieces {
		if piece.Player == player {
			result = result.With(piece.Position)
		}
	}
	return result
}

func (b *Board) Clone() *Board {
	if b.pieces == nil {
		return &Board{turn: b.turn}
	}
	result := &Board{
		grid:   b.grid,
		pieces: make(map[PieceID]Piece, len(b.pieces)),
		nextID: b.nextID,
		turn:   b.turn,
	}
	for id, piece := range b.pieces {
		result.pieces[id] = piece
	}
	return result
}

// Validate checks that the grid and the piece table agree.
func (b *Board) Validate() Error {
	if b.pieces == nil {
		return NilError
	}

	var errs []Error

	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			s := b.grid[rank][file]
			if s.Location != RankFile(rank, file) {
				errs = append(errs, Errorf("square (%d,%d) labelled %v", rank, file, s.Location))
			}
			if s.Occupant.IsEmpty() {
				continue
			}
			piece, ok := b.pieces[s.Occupant.Value()]
			if !ok {
				errs = append(errs, Errorf("%v holds dead piece %v", s.Location, s.Occupant.Value()))
			} else if piece.Position != s.Location {
				errs = append(errs, Errorf("%v holds %v", s.Location, piece))
			}
		}
	}

	for id, piece := range b.pieces {
		if piece.ID != id {
			errs = append(errs, Errorf("piece %v stored under id %v", piece, id))
		}
		if !piece.Position.IsValid() {
			errs = append(errs, Errorf("piece %v off the board", piece))
			continue
		}
		occupant := b.square(piece.Position).Occupant
		if occupant.IsEmpty() || occupant.Value() != id {
			errs = append(errs, Errorf("piece %v missing from its square", piece))
		}
	}

	return Join(errs...)
}

// String prints one line per rank, rank 8 first, '.' for empty squares.
func (b *Board) String() string {
	lines := []string{}
	for rank := 7; rank >= 0; rank-- {
		line := ""
		for file := 0; file < 8; file++ {
			if piece, ok := b.pieceAt(RankFile(rank, file)); ok {
				line += piece.Letter()
			} else {
				line += "."
			}
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

const _hintForeground = "\033[38;5;244m"
const _highlightBackground = "\033[48;5;130m"
const _whiteForeground = "\033[38;5;255m"
const _blackForeground = "\033[38;5;232m"
const _whiteBackground = "\033[48;5;244m"
const _blackBackground = "\033[48;5;243m"
const _resetColors = "\x1b[0m"

func (b *Board) Unicode() string {
	return b.UnicodeWithHighlights(AllZeros)
}

// UnicodeWithHighlights renders the board for a terminal, marking the
// squares in highlights.
func (b *Board) UnicodeWithHighlights(highlights Bitboard) string {
	result := "  "
	for file := 0; file < 8; file++ {
		result += _hintForeground + " " + File(file).String() + " " + _resetColors
	}
	result += "\n"

	for rank := 7; rank >= 0; rank-- {
		result += _hintForeground + Rank(rank).String() + " " + _resetColors
		for file := 0; file < 8; file++ {
			location := RankFile(rank, file)
			squareColor := (file%2 + rank%2) % 2

			if highlights.Has(location) {
				result += _highlightBackground
			} else if squareColor == int(White) {
				result += _whiteBackground
			} else {
				result += _blackBackground
			}

			glyph := " "
			if piece, ok := b.pieceAt(location); ok {
				if piece.Player == White {
					result += _whiteForeground
				} else {
					result += _blackForeground
				}
				glyph = PieceUnicode(Black, piece.PieceType)
			} else if highlights.Has(location) {
				glyph = "·"
			}

			result += " " + glyph + " " + _resetColors
		}
		result += "\n"
	}

	return result
}
